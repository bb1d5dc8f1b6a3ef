package review

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrDuplicateReview = errors.New("booking already has a review")

const reviewColumns = `id, booking_id, service_id, client_id, rating, comment, created_at`

type Repository interface {
	Create(ctx context.Context, bookingID, serviceID, clientID, rating int, comment string) (*Review, error)
	ListByService(ctx context.Context, serviceID int) ([]Review, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts the review. One review per booking is enforced by a unique
// index on booking_id, so concurrent duplicates surface as ErrDuplicateReview
// instead of a second row.
func (r *repository) Create(ctx context.Context, bookingID, serviceID, clientID, rating int, comment string) (*Review, error) {
	query := `
		INSERT INTO reviews (booking_id, service_id, client_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + reviewColumns

	var rev Review
	err := r.db.GetContext(ctx, &rev, query, bookingID, serviceID, clientID, rating, comment)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	return &rev, nil
}

func (r *repository) ListByService(ctx context.Context, serviceID int) ([]Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE service_id = $1
		ORDER BY created_at DESC
	`

	var reviews []Review
	err := r.db.SelectContext(ctx, &reviews, query, serviceID)
	if err != nil {
		return nil, err
	}

	return reviews, nil
}
