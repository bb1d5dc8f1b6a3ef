package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrServiceNotFound = errors.New("service not found")

const serviceColumns = `id, provider_id, title, description, price_type, price_cents, duration_hours, average_rating, total_reviews, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetServiceByID(ctx context.Context, id int) (*Service, error) {
	var s Service
	err := r.db.GetContext(ctx, &s,
		`SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) ListServices(ctx context.Context, limit, offset int) ([]Service, error) {
	if limit <= 0 {
		limit = 50
	}

	var services []Service
	err := r.db.SelectContext(ctx, &services, `
		SELECT `+serviceColumns+`
		FROM services
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}

	return services, nil
}

func (r *repository) ListServicesByProvider(ctx context.Context, providerID int) ([]Service, error) {
	var services []Service
	err := r.db.SelectContext(ctx, &services, `
		SELECT `+serviceColumns+`
		FROM services
		WHERE provider_id = $1
		ORDER BY created_at DESC
	`, providerID)
	if err != nil {
		return nil, err
	}

	return services, nil
}

// RecomputeRating re-scans every review for the service and persists the
// denormalized average (one decimal) and count. Full recompute keeps the
// aggregate correct without incremental bookkeeping.
func (r *repository) RecomputeRating(ctx context.Context, serviceID int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE services
		SET average_rating = COALESCE(agg.avg_rating, 0),
		    total_reviews  = COALESCE(agg.review_count, 0)
		FROM (
			SELECT ROUND(AVG(rating)::numeric, 1) AS avg_rating,
			       COUNT(*) AS review_count
			FROM reviews
			WHERE service_id = $1
		) agg
		WHERE services.id = $1
	`, serviceID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrServiceNotFound
	}

	return nil
}
