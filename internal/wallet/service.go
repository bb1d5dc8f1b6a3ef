package wallet

import (
	"context"
	"errors"

	"github.com/BenedictUkwenya/lifekitbackend/internal/metrics"
	"github.com/BenedictUkwenya/lifekitbackend/internal/payment"
)

var ErrPaymentNotSettled = errors.New("payment has not succeeded")

type Service interface {
	GetOrCreate(ctx context.Context, ownerID int) (*Wallet, error)
	Debit(ctx context.Context, ownerID int, amountCents int64, kind, description string) (*Wallet, error)
	Credit(ctx context.Context, ownerID int, amountCents int64, kind, description string) (*Wallet, error)
	TopUp(ctx context.Context, ownerID int, reference string) (*Wallet, error)
	Transactions(ctx context.Context, ownerID int, limit, offset int) ([]Transaction, error)
}

type service struct {
	repo      Repository
	processor payment.Processor
}

func NewService(repo Repository, processor payment.Processor) Service {
	return &service{repo: repo, processor: processor}
}

// GetOrCreate returns the owner's wallet, provisioning it lazily on first
// financial interaction. Wallets are never deleted.
func (s *service) GetOrCreate(ctx context.Context, ownerID int) (*Wallet, error) {
	w, err := s.repo.GetByOwner(ctx, ownerID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, ErrWalletNotFound) {
		return nil, err
	}

	ref, err := s.processor.CreateCustomer(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, ownerID, ref)
}

func (s *service) Debit(ctx context.Context, ownerID int, amountCents int64, kind, description string) (*Wallet, error) {
	if _, err := s.GetOrCreate(ctx, ownerID); err != nil {
		return nil, err
	}

	w, err := s.repo.Debit(ctx, ownerID, amountCents, kind, description, nil)
	if err != nil {
		return nil, err
	}

	metrics.RecordWalletOperation(kind)
	return w, nil
}

func (s *service) Credit(ctx context.Context, ownerID int, amountCents int64, kind, description string) (*Wallet, error) {
	if _, err := s.GetOrCreate(ctx, ownerID); err != nil {
		return nil, err
	}

	w, err := s.repo.Credit(ctx, ownerID, amountCents, kind, description, nil)
	if err != nil {
		return nil, err
	}

	metrics.RecordWalletOperation(kind)
	return w, nil
}

// TopUp books an external payment into the wallet. The processor is the source
// of truth for the amount; the unique reference makes a replayed payment event
// fail with ErrDuplicateReference instead of crediting twice.
func (s *service) TopUp(ctx context.Context, ownerID int, reference string) (*Wallet, error) {
	if _, err := s.GetOrCreate(ctx, ownerID); err != nil {
		return nil, err
	}

	intent, err := s.processor.GetIntent(ctx, reference)
	if err != nil {
		return nil, err
	}
	if intent.Status != payment.IntentStatusSucceeded {
		return nil, ErrPaymentNotSettled
	}

	w, err := s.repo.Credit(ctx, ownerID, intent.AmountCents, KindDeposit, "wallet top-up", &reference)
	if err != nil {
		return nil, err
	}

	metrics.RecordWalletTopUp()
	return w, nil
}

func (s *service) Transactions(ctx context.Context, ownerID int, limit, offset int) ([]Transaction, error) {
	return s.repo.GetTransactions(ctx, ownerID, limit, offset)
}
