package booking

import "time"

// Booking lifecycle: pending -> confirmed | cancelled; confirmed -> completed
// once both parties confirm. cancelled and completed are terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

type Booking struct {
	ID                int       `db:"id" json:"id"`
	ClientID          int       `db:"client_id" json:"client_id"`
	ProviderID        int       `db:"provider_id" json:"provider_id"`
	ServiceID         int       `db:"service_id" json:"service_id"`
	ScheduledTime     time.Time `db:"scheduled_time" json:"scheduled_time"`
	TotalPriceCents   int64     `db:"total_price_cents" json:"total_price_cents"`
	Status            string    `db:"status" json:"status"`
	ClientConfirmed   bool      `db:"client_confirmed" json:"client_confirmed"`
	ProviderConfirmed bool      `db:"provider_confirmed" json:"provider_confirmed"`
	LocationDetails   string    `db:"location_details" json:"location_details"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// CompletionState tells the caller whether their confirmation settled the
// booking or is still waiting on the other party.
type CompletionState string

const (
	CompletionWaitingOther CompletionState = "waiting_other"
	CompletionCompleted    CompletionState = "completed"
)

// ScheduleEntry is one active booking joined with its service's pricing,
// the raw material for blocked-slot derivation.
type ScheduleEntry struct {
	ScheduledTime time.Time `db:"scheduled_time"`
	PriceType     string    `db:"price_type"`
	DurationHours int       `db:"duration_hours"`
}

// BlockedSlot is a derived calendar interval. Hourly bookings carry start/end;
// fixed-price bookings block the whole day.
type BlockedSlot struct {
	Day          string  `json:"day"`
	Start        *string `json:"start,omitempty"`
	End          *string `json:"end,omitempty"`
	FullyBlocked bool    `json:"fully_blocked"`
}
