package notification

import "time"

const (
	KindBookingCreated   = "booking_created"
	KindBookingConfirmed = "booking_confirmed"
	KindBookingCancelled = "booking_cancelled"
	KindBookingCompleted = "booking_completed"
	KindPaymentReceived  = "payment_received"
)

// Notification is an in-app notification row. ReferenceID points at the entity
// that triggered it (booking, transaction).
type Notification struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Message     string    `db:"message" json:"message"`
	Kind        string    `db:"kind" json:"kind"`
	ReferenceID int       `db:"reference_id" json:"reference_id"`
	IsRead      bool      `db:"is_read" json:"is_read"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
