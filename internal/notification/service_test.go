package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/BenedictUkwenya/lifekitbackend/internal/logger"
	"github.com/BenedictUkwenya/lifekitbackend/internal/metrics"
	"github.com/BenedictUkwenya/lifekitbackend/internal/user"

	"github.com/go-redis/redismock/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	logger.Init()
}

type MockNotificationRepo struct{ mock.Mock }

func (m *MockNotificationRepo) Create(ctx context.Context, userID int, title, message, kind string, referenceID int) (*Notification, error) {
	args := m.Called(ctx, userID, title, message, kind, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Notification), args.Error(1)
}

func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID int, limit, offset int) ([]Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Notification), args.Error(1)
}

func (m *MockNotificationRepo) MarkRead(ctx context.Context, id, userID int) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) FindByID(ctx context.Context, id int) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func TestEmit_CreatesRowAndQueuesDelivery(t *testing.T) {
	repo := new(MockNotificationRepo)
	users := new(MockUserRepo)
	client, redisMock := redismock.NewClientMock()

	repo.On("Create", mock.Anything, 5, "Booking request", "You have a new booking request", KindBookingCreated, 10).
		Return(&Notification{ID: 1, UserID: 5, Kind: KindBookingCreated}, nil)

	redisMock.CustomMatch(func(expected, actual []interface{}) error {
		var data []byte
		switch v := actual[2].(type) {
		case []byte:
			data = v
		case string:
			data = []byte(v)
		default:
			return errors.New("unexpected argument type")
		}
		var job DeliveryJob
		if err := json.Unmarshal(data, &job); err != nil {
			return err
		}
		if job.UserID != 5 || job.Kind != KindBookingCreated {
			return errors.New("unexpected job payload")
		}
		return nil
	}).ExpectLPush(deliveryQueue, []byte("ignored")).SetVal(1)

	s := NewWithClient(repo, users, client, "noreply@lifekit.app", "LifeKit", "localhost", "1025", "", "")

	err := s.Emit(context.Background(), 5, "Booking request", "You have a new booking request", KindBookingCreated, 10)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestEmit_QueueFailureIsNonFatal(t *testing.T) {
	repo := new(MockNotificationRepo)
	users := new(MockUserRepo)
	client, redisMock := redismock.NewClientMock()

	repo.On("Create", mock.Anything, 5, "Booking declined", "Your booking was declined and refunded", KindBookingCancelled, 10).
		Return(&Notification{ID: 2, UserID: 5, Kind: KindBookingCancelled}, nil)

	redisMock.CustomMatch(func(expected, actual []interface{}) error {
		return nil
	}).ExpectLPush(deliveryQueue, []byte("ignored")).SetErr(errors.New("redis down"))

	s := NewWithClient(repo, users, client, "noreply@lifekit.app", "LifeKit", "localhost", "1025", "", "")

	queuedBefore := testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues(KindBookingCancelled, "queued"))
	dbOnlyBefore := testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues(KindBookingCancelled, "db_only"))

	// The row insert succeeded, so the emit itself succeeds.
	err := s.Emit(context.Background(), 5, "Booking declined", "Your booking was declined and refunded", KindBookingCancelled, 10)

	assert.NoError(t, err)
	repo.AssertExpectations(t)

	// The failed push is counted as db_only, never as queued.
	assert.Equal(t, queuedBefore, testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues(KindBookingCancelled, "queued")))
	assert.Equal(t, dbOnlyBefore+1, testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues(KindBookingCancelled, "db_only")))
}

func TestEmit_RowInsertFailureSurfaces(t *testing.T) {
	repo := new(MockNotificationRepo)
	users := new(MockUserRepo)
	client, _ := redismock.NewClientMock()

	repo.On("Create", mock.Anything, 5, "t", "m", KindBookingCompleted, 10).
		Return(nil, errors.New("db down"))

	s := NewWithClient(repo, users, client, "noreply@lifekit.app", "LifeKit", "localhost", "1025", "", "")

	err := s.Emit(context.Background(), 5, "t", "m", KindBookingCompleted, 10)

	assert.Error(t, err)
}
