package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/BenedictUkwenya/lifekitbackend/internal/logger"
	"github.com/BenedictUkwenya/lifekitbackend/internal/metrics"
	"github.com/BenedictUkwenya/lifekitbackend/internal/user"

	"github.com/redis/go-redis/v9"
)

const (
	deliveryQueue = "notifications"
	failedQueue   = "notifications:failed"
	maxTries      = 3
)

// DeliveryJob is the payload queued for async email delivery of a notification.
type DeliveryJob struct {
	UserID  int       `json:"user_id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Kind    string    `json:"kind"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Service struct {
	repo  Repository
	users user.Repository
	redis *redis.Client

	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(repo Repository, users user.Repository, redisAddr, fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass string) *Service {
	return NewWithClient(repo, users,
		redis.NewClient(&redis.Options{Addr: redisAddr}),
		fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass)
}

func NewWithClient(repo Repository, users user.Repository, client *redis.Client, fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass string) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		redis:    client,
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

// Emit records a notification and queues its email delivery. The row insert is
// the operation; queueing is best-effort and its failure only downgrades the
// notification to in-app-only.
func (s *Service) Emit(ctx context.Context, userID int, title, message, kind string, referenceID int) error {
	n, err := s.repo.Create(ctx, userID, title, message, kind, referenceID)
	if err != nil {
		metrics.RecordNotification(kind, "failed")
		return err
	}

	job := DeliveryJob{
		UserID:  userID,
		Title:   title,
		Message: message,
		Kind:    kind,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err == nil {
		err = s.redis.LPush(ctx, deliveryQueue, data).Err()
	}
	if err != nil {
		logger.Error("failed to queue notification delivery",
			"user_id", userID, "kind", kind, "error", err)
		metrics.RecordNotification(kind, "db_only")
	} else {
		metrics.RecordNotification(kind, "queued")
	}
	logger.Debug("notification emitted",
		"notification_id", n.ID, "user_id", userID, "kind", kind)
	return nil
}

func (s *Service) List(ctx context.Context, userID int, limit, offset int) ([]Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, id, userID int) error {
	return s.repo.MarkRead(ctx, id, userID)
}

// Start runs the delivery worker until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("notification delivery worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification delivery worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, deliveryQueue).Result()
	if err != nil {
		return
	}

	var job DeliveryJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("bad delivery job payload: %v", err)
		return
	}

	recipient, err := s.users.FindByID(ctx, job.UserID)
	if err != nil {
		logger.Error("delivery recipient lookup failed", "user_id", job.UserID, "error", err)
		return
	}

	job.Tries++
	if err := s.sendNow(recipient, job); err != nil {
		logger.Error("notification delivery failed",
			"user_id", job.UserID, "attempt", job.Tries, "error", err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), deliveryQueue, data)
		} else {
			s.saveFailed(job, err)
		}
		return
	}

	logger.Debug("notification delivered", "user_id", job.UserID, "kind", job.Kind)
}

func (s *Service) sendNow(recipient *user.User, job DeliveryJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", recipient.Email)
	message += fmt.Sprintf("Subject: %s\r\n", job.Title)
	message += "\r\n" + fmt.Sprintf("Hi %s,\n\n%s\n\n- LifeKit", recipient.Name, job.Message)

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{recipient.Email}, []byte(message))
}

func (s *Service) saveFailed(job DeliveryJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueue, data)
	logger.Error("notification moved to failed queue", "user_id", job.UserID)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, deliveryQueue).Result()
	metrics.NotificationQueueLength.Set(float64(length))
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}
