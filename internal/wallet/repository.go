package wallet

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrDuplicateReference  = errors.New("transaction reference already processed")
)

const walletColumns = `id, owner_id, balance_cents, currency, payment_account_ref, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByOwner(ctx context.Context, ownerID int) (*Wallet, error) {
	w := &Wallet{}
	err := r.db.GetContext(ctx, w,
		`SELECT `+walletColumns+` FROM wallets WHERE owner_id = $1`, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return w, nil
}

// Create inserts a wallet with zero balance. Two concurrent calls can both see
// "no wallet"; the losing insert hits the owner_id uniqueness and falls back to
// re-reading the row that won.
func (r *repository) Create(ctx context.Context, ownerID int, paymentAccountRef string) (*Wallet, error) {
	w := &Wallet{}
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO wallets (owner_id, payment_account_ref)
		 VALUES ($1, $2)
		 ON CONFLICT (owner_id) DO NOTHING
		 RETURNING `+walletColumns,
		ownerID, paymentAccountRef,
	).StructScan(w)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return r.GetByOwner(ctx, ownerID)
}

// Debit subtracts amountCents only if the balance covers it; the check and the
// write are one statement, so two concurrent debits cannot both pass.
func (r *repository) Debit(ctx context.Context, ownerID int, amountCents int64, kind, description string, reference *string) (*Wallet, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	w := &Wallet{}
	err = tx.QueryRowxContext(ctx,
		`UPDATE wallets
		 SET balance_cents = balance_cents - $1, updated_at = NOW()
		 WHERE owner_id = $2 AND balance_cents >= $1
		 RETURNING `+walletColumns,
		amountCents, ownerID,
	).StructScan(w)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.debitFailure(ctx, ownerID)
		}
		return nil, err
	}

	if err := appendTransaction(ctx, tx, w.ID, kind, -amountCents, w.BalanceCents, description, reference); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return w, nil
}

// Credit adds amountCents unconditionally (wallet must exist).
func (r *repository) Credit(ctx context.Context, ownerID int, amountCents int64, kind, description string, reference *string) (*Wallet, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	w := &Wallet{}
	err = tx.QueryRowxContext(ctx,
		`UPDATE wallets
		 SET balance_cents = balance_cents + $1, updated_at = NOW()
		 WHERE owner_id = $2
		 RETURNING `+walletColumns,
		amountCents, ownerID,
	).StructScan(w)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}

	if err := appendTransaction(ctx, tx, w.ID, kind, amountCents, w.BalanceCents, description, reference); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *repository) GetTransactions(ctx context.Context, ownerID int, limit, offset int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 50
	}

	var walletID int
	err := r.db.GetContext(ctx, &walletID, `SELECT id FROM wallets WHERE owner_id = $1`, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []Transaction{}, nil
		}
		return nil, err
	}

	var txs []Transaction
	err = r.db.SelectContext(ctx, &txs, `
		SELECT id, wallet_id, kind, amount_cents, balance_after, status, description, reference, created_at
		FROM transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, walletID, limit, offset)
	if err != nil {
		return nil, err
	}

	return txs, nil
}

// debitFailure decides whether a zero-row debit means a missing wallet or a
// short balance.
func (r *repository) debitFailure(ctx context.Context, ownerID int) error {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM wallets WHERE owner_id = $1)`, ownerID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrWalletNotFound
	}
	return ErrInsufficientBalance
}

// appendTransaction writes the ledger row inside the same db transaction as
// the balance update, so a balance change without its audit row cannot commit.
func appendTransaction(ctx context.Context, tx *sqlx.Tx, walletID int, kind string, amountCents, balanceAfter int64, description string, reference *string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (wallet_id, kind, amount_cents, balance_after, status, description, reference)
		 VALUES ($1, $2, $3, $4, 'success', $5, $6)`,
		walletID, kind, amountCents, balanceAfter, description, reference,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateReference
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
