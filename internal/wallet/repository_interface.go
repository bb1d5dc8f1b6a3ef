package wallet

import "context"

type Repository interface {
	GetByOwner(ctx context.Context, ownerID int) (*Wallet, error)
	Create(ctx context.Context, ownerID int, paymentAccountRef string) (*Wallet, error)
	Debit(ctx context.Context, ownerID int, amountCents int64, kind, description string, reference *string) (*Wallet, error)
	Credit(ctx context.Context, ownerID int, amountCents int64, kind, description string, reference *string) (*Wallet, error)
	GetTransactions(ctx context.Context, ownerID int, limit, offset int) ([]Transaction, error)
}
