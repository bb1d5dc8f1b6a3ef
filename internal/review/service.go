package review

import (
	"context"
	"errors"

	"github.com/BenedictUkwenya/lifekitbackend/internal/booking"
	"github.com/BenedictUkwenya/lifekitbackend/internal/catalog"
	"github.com/BenedictUkwenya/lifekitbackend/internal/logger"
	"github.com/BenedictUkwenya/lifekitbackend/internal/metrics"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBookingClient = errors.New("only the booking's client can review it")
	ErrNotCompleted     = errors.New("booking is not completed")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)

type Service interface {
	Submit(ctx context.Context, clientID, bookingID, rating int, comment string) (*Review, error)
	ListByService(ctx context.Context, serviceID int) ([]Review, error)
}

type service struct {
	repo        Repository
	bookingRepo booking.Repository
	catalogRepo catalog.Repository
}

func NewService(repo Repository, bookingRepo booking.Repository, catalogRepo catalog.Repository) Service {
	return &service{
		repo:        repo,
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
	}
}

// Submit records a review for a completed booking and refreshes the service's
// cached rating aggregate.
func (s *service) Submit(ctx context.Context, clientID, bookingID, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	b, err := s.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.ClientID != clientID {
		return nil, ErrNotBookingClient
	}
	if b.Status != booking.StatusCompleted {
		return nil, ErrNotCompleted
	}

	rev, err := s.repo.Create(ctx, bookingID, b.ServiceID, clientID, rating, comment)
	if err != nil {
		return nil, err
	}

	metrics.RecordReviewSubmitted()

	// Агрегат пересчитывается из таблицы отзывов, рассинхрон невозможен.
	if err := s.catalogRepo.RecomputeRating(ctx, b.ServiceID); err != nil {
		logger.Error("failed to recompute service rating", "service_id", b.ServiceID, "error", err)
	}

	return rev, nil
}

func (s *service) ListByService(ctx context.Context, serviceID int) ([]Review, error) {
	return s.repo.ListByService(ctx, serviceID)
}
