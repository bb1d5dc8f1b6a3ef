package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrBookingNotFound deliberately covers "does not exist", "not yours"
	// and "no longer in the required state", so callers cannot probe for
	// bookings they are not a party to.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrNotConfirmed is returned when a confirmation write finds the booking
	// outside the confirmed state (raced by a concurrent transition).
	ErrNotConfirmed = errors.New("booking is not in confirmed state")
)

const bookingColumns = `id, client_id, provider_id, service_id, scheduled_time, total_price_cents, status, client_confirmed, provider_confirmed, location_details, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBooking(ctx context.Context, clientID, providerID, serviceID int, scheduledTime time.Time, totalPriceCents int64, locationDetails string) (*Booking, error) {
	query := `
		INSERT INTO bookings (client_id, provider_id, service_id, scheduled_time, total_price_cents, status, location_details)
		VALUES ($1, $2, $3, $4, $5, 'pending', $6)
		RETURNING ` + bookingColumns

	var b Booking
	err := r.db.GetContext(ctx, &b, query, clientID, providerID, serviceID, scheduledTime, totalPriceCents, locationDetails)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) GetBookingByID(ctx context.Context, id int) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &b, nil
}

// DecideBooking claims the pending -> status transition for the provider in a
// single conditional update. Zero rows means missing, not theirs, or already
// decided; all three look the same to the caller.
func (r *repository) DecideBooking(ctx context.Context, id, providerID int, status string) (*Booking, error) {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND provider_id = $2 AND status = 'pending'
		RETURNING ` + bookingColumns

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id, providerID, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &b, nil
}

// SetConfirmation flips the caller's confirmation flag and reads the row back
// in one round trip, so a concurrent confirmation by the other party is never
// lost. Re-asserting an already-set flag is a no-op.
func (r *repository) SetConfirmation(ctx context.Context, id, callerID int) (*Booking, error) {
	query := `
		UPDATE bookings
		SET client_confirmed   = client_confirmed OR (client_id = $2),
		    provider_confirmed = provider_confirmed OR (provider_id = $2),
		    updated_at = NOW()
		WHERE id = $1 AND status = 'confirmed' AND (client_id = $2 OR provider_id = $2)
		RETURNING ` + bookingColumns

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id, callerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotConfirmed
		}
		return nil, err
	}

	return &b, nil
}

// ClaimSettlement moves confirmed -> completed once both flags are set.
// Exactly one of two racing completion calls gets rows == 1, so settlement
// side effects run exactly once.
func (r *repository) ClaimSettlement(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE bookings
		SET status = 'completed', updated_at = NOW()
		WHERE id = $1 AND status = 'confirmed' AND client_confirmed AND provider_confirmed
	`, id)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}

func (r *repository) ListByClient(ctx context.Context, clientID int) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE client_id = $1
		ORDER BY created_at DESC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, clientID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListByProvider(ctx context.Context, providerID int) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE provider_id = $1
		ORDER BY created_at DESC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, providerID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) GetProviderScheduleEntries(ctx context.Context, providerID int) ([]ScheduleEntry, error) {
	query := `
		SELECT b.scheduled_time, s.price_type, s.duration_hours
		FROM bookings b
		JOIN services s ON b.service_id = s.id
		WHERE b.provider_id = $1 AND b.status IN ('pending', 'confirmed')
		ORDER BY b.scheduled_time
	`

	var entries []ScheduleEntry
	err := r.db.SelectContext(ctx, &entries, query, providerID)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
