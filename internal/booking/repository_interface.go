package booking

import (
	"context"
	"time"
)

type Repository interface {
	CreateBooking(ctx context.Context, clientID, providerID, serviceID int, scheduledTime time.Time, totalPriceCents int64, locationDetails string) (*Booking, error)
	GetBookingByID(ctx context.Context, id int) (*Booking, error)
	DecideBooking(ctx context.Context, id, providerID int, status string) (*Booking, error)
	SetConfirmation(ctx context.Context, id, callerID int) (*Booking, error)
	ClaimSettlement(ctx context.Context, id int) (bool, error)
	ListByClient(ctx context.Context, clientID int) ([]Booking, error)
	ListByProvider(ctx context.Context, providerID int) ([]Booking, error)
	GetProviderScheduleEntries(ctx context.Context, providerID int) ([]ScheduleEntry, error)
}
