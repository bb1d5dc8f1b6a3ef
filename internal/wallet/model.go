package wallet

import "time"

// Transaction kinds. Sign of amount_cents encodes direction: credits are
// positive, debits negative.
const (
	KindDeposit         = "deposit"
	KindWithdrawal      = "withdrawal"
	KindPayment         = "payment"
	KindRefund          = "refund"
	KindEarning         = "earning"
	KindAdminWithdrawal = "admin_withdrawal"
)

const (
	StatusSuccess = "success"
	StatusPending = "pending"
	StatusFailed  = "failed"
)

// Wallet — кошелёк пользователя. Balance never goes below zero.
type Wallet struct {
	ID                int       `db:"id" json:"id"`
	OwnerID           int       `db:"owner_id" json:"owner_id"`
	BalanceCents      int64     `db:"balance_cents" json:"balance_cents"`
	Currency          string    `db:"currency" json:"currency"`
	PaymentAccountRef string    `db:"payment_account_ref" json:"payment_account_ref"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// Transaction is an append-only ledger row; never mutated after insert.
// Reference holds the external payment reference for deposits and is unique,
// so a replayed payment event cannot be booked twice.
type Transaction struct {
	ID           int       `db:"id" json:"id"`
	WalletID     *int      `db:"wallet_id" json:"wallet_id"`
	Kind         string    `db:"kind" json:"kind"`
	AmountCents  int64     `db:"amount_cents" json:"amount_cents"`
	BalanceAfter int64     `db:"balance_after" json:"balance_after"`
	Status       string    `db:"status" json:"status"`
	Description  string    `db:"description" json:"description"`
	Reference    *string   `db:"reference" json:"reference,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
