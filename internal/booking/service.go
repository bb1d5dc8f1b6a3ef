package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BenedictUkwenya/lifekitbackend/internal/catalog"
	"github.com/BenedictUkwenya/lifekitbackend/internal/logger"
	"github.com/BenedictUkwenya/lifekitbackend/internal/metrics"
	"github.com/BenedictUkwenya/lifekitbackend/internal/notification"
	"github.com/BenedictUkwenya/lifekitbackend/internal/wallet"
)

var (
	ErrServiceNotFound   = errors.New("service not found")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrInvalidDecision   = errors.New("decision must be confirmed or cancelled")
	ErrNotParticipant    = errors.New("caller is not a party to this booking")
	ErrConflictingState  = errors.New("booking is not in a state that allows this action")
)

// Notifier delivers user notifications. Delivery failures never fail the
// booking operation that triggered them.
type Notifier interface {
	Emit(ctx context.Context, userID int, title, message, kind string, referenceID int) error
}

type Service interface {
	Create(ctx context.Context, clientID, serviceID int, scheduledTime time.Time, totalPriceCents int64, locationDetails string) (*Booking, error)
	Decide(ctx context.Context, bookingID, providerID int, decision string) (*Booking, error)
	Complete(ctx context.Context, bookingID, callerID int) (*Booking, CompletionState, error)
	ListForClient(ctx context.Context, clientID int) ([]Booking, error)
	ListForProvider(ctx context.Context, providerID int) ([]Booking, error)
	ProviderSchedule(ctx context.Context, providerID int) ([]BlockedSlot, error)
}

type service struct {
	repo        Repository
	catalogRepo catalog.Repository
	wallets     wallet.Service
	notifier    Notifier
}

func NewService(repo Repository, catalogRepo catalog.Repository, wallets wallet.Service, notifier Notifier) Service {
	return &service{
		repo:        repo,
		catalogRepo: catalogRepo,
		wallets:     wallets,
		notifier:    notifier,
	}
}

// Create places a booking request and puts the agreed price on hold in the
// client's wallet. The price comes from the request, not the listing — parties
// negotiate (a zero price is a skill swap even against a priced service). The
// hold happens before the insert; if the insert then fails, the hold is
// released so the client is never charged for a booking that does not exist.
func (s *service) Create(ctx context.Context, clientID, serviceID int, scheduledTime time.Time, totalPriceCents int64, locationDetails string) (*Booking, error) {
	if totalPriceCents < 0 {
		return nil, ErrInvalidPrice
	}

	svc, err := s.catalogRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	price := totalPriceCents

	if price > 0 {
		_, err = s.wallets.Debit(ctx, clientID, price, wallet.KindPayment,
			fmt.Sprintf("Hold for booking of service %q", svc.Title))
		if err != nil {
			if errors.Is(err, wallet.ErrInsufficientBalance) {
				return nil, ErrInsufficientFunds
			}
			return nil, err
		}
	}

	b, err := s.repo.CreateBooking(ctx, clientID, svc.ProviderID, serviceID, scheduledTime, price, locationDetails)
	if err != nil {
		if price > 0 {
			// возвращаем холд, бронь не создана
			if _, refundErr := s.wallets.Credit(ctx, clientID, price, wallet.KindRefund,
				fmt.Sprintf("Refund: booking of service %q was not created", svc.Title)); refundErr != nil {
				logger.Error("failed to refund hold after booking insert failure",
					"client_id", clientID, "amount_cents", price, "error", refundErr)
			}
		}
		return nil, err
	}

	metrics.RecordBookingCreated()

	if notifyErr := s.notifier.Emit(ctx, b.ProviderID, "New booking request",
		fmt.Sprintf("You have a new booking request for %q", svc.Title),
		notification.KindBookingCreated, b.ID); notifyErr != nil {
		logger.Error("failed to notify provider of new booking", "booking_id", b.ID, "error", notifyErr)
	}

	return b, nil
}

// Decide lets the provider accept or reject a pending booking. The status
// transition is claimed first; the refund on rejection runs only for the
// caller that actually won the transition, so it happens at most once.
func (s *service) Decide(ctx context.Context, bookingID, providerID int, decision string) (*Booking, error) {
	if decision != StatusConfirmed && decision != StatusCancelled {
		return nil, ErrInvalidDecision
	}

	b, err := s.repo.DecideBooking(ctx, bookingID, providerID, decision)
	if err != nil {
		return nil, err
	}

	metrics.RecordBookingDecision(decision)

	if decision == StatusCancelled && b.TotalPriceCents > 0 {
		if _, refundErr := s.wallets.Credit(ctx, b.ClientID, b.TotalPriceCents, wallet.KindRefund,
			fmt.Sprintf("Refund for cancelled booking #%d", b.ID)); refundErr != nil {
			logger.Error("failed to refund cancelled booking", "booking_id", b.ID, "error", refundErr)
			return nil, refundErr
		}
	}

	kind := notification.KindBookingConfirmed
	title := "Booking confirmed"
	message := fmt.Sprintf("Your booking #%d has been confirmed", b.ID)
	if decision == StatusCancelled {
		kind = notification.KindBookingCancelled
		title = "Booking cancelled"
		message = fmt.Sprintf("Your booking #%d was declined and your payment refunded", b.ID)
	}
	if notifyErr := s.notifier.Emit(ctx, b.ClientID, title, message, kind, b.ID); notifyErr != nil {
		logger.Error("failed to notify client of booking decision", "booking_id", b.ID, "error", notifyErr)
	}

	return b, nil
}

// Complete records the caller's confirmation of a confirmed booking. Once
// both parties have confirmed, exactly one call claims the settlement and
// pays the provider out of escrow.
func (s *service) Complete(ctx context.Context, bookingID, callerID int) (*Booking, CompletionState, error) {
	b, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}

	if callerID != b.ClientID && callerID != b.ProviderID {
		return nil, "", ErrNotParticipant
	}
	if b.Status != StatusConfirmed {
		return nil, "", ErrConflictingState
	}

	b, err = s.repo.SetConfirmation(ctx, bookingID, callerID)
	if err != nil {
		if errors.Is(err, ErrNotConfirmed) {
			return nil, "", ErrConflictingState
		}
		return nil, "", err
	}

	if !b.ClientConfirmed || !b.ProviderConfirmed {
		return b, CompletionWaitingOther, nil
	}

	claimed, err := s.repo.ClaimSettlement(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	if !claimed {
		// проиграли гонку, другая сторона уже рассчиталась
		b.Status = StatusCompleted
		return b, CompletionCompleted, nil
	}

	b.Status = StatusCompleted

	if b.TotalPriceCents > 0 {
		if _, payErr := s.wallets.Credit(ctx, b.ProviderID, b.TotalPriceCents, wallet.KindEarning,
			fmt.Sprintf("Earning for completed booking #%d", b.ID)); payErr != nil {
			logger.Error("failed to credit provider for completed booking", "booking_id", b.ID, "error", payErr)
			return nil, "", payErr
		}
	}

	metrics.RecordBookingSettlement()

	for _, userID := range []int{b.ClientID, b.ProviderID} {
		if notifyErr := s.notifier.Emit(ctx, userID, "Booking completed",
			fmt.Sprintf("Booking #%d is completed", b.ID),
			notification.KindBookingCompleted, b.ID); notifyErr != nil {
			logger.Error("failed to notify of booking completion", "booking_id", b.ID, "user_id", userID, "error", notifyErr)
		}
	}

	return b, CompletionCompleted, nil
}

func (s *service) ListForClient(ctx context.Context, clientID int) ([]Booking, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *service) ListForProvider(ctx context.Context, providerID int) ([]Booking, error) {
	return s.repo.ListByProvider(ctx, providerID)
}

func (s *service) ProviderSchedule(ctx context.Context, providerID int) ([]BlockedSlot, error) {
	entries, err := s.repo.GetProviderScheduleEntries(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return deriveBlockedSlots(entries), nil
}
