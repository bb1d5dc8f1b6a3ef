package notification

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotificationNotFound = errors.New("notification not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, userID int, title, message, kind string, referenceID int) (*Notification, error) {
	query := `
		INSERT INTO notifications (user_id, title, message, kind, reference_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, message, kind, reference_id, is_read, created_at
	`

	var n Notification
	err := r.db.GetContext(ctx, &n, query, userID, title, message, kind, referenceID)
	if err != nil {
		return nil, err
	}

	return &n, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int, limit, offset int) ([]Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	var items []Notification
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, user_id, title, message, kind, reference_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return items, nil
}

// MarkRead is scoped to the owner; marking someone else's notification looks
// identical to marking a missing one.
func (r *repository) MarkRead(ctx context.Context, id, userID int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}
