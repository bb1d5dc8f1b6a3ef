package notification

import "context"

type Repository interface {
	Create(ctx context.Context, userID int, title, message, kind string, referenceID int) (*Notification, error)
	ListByUser(ctx context.Context, userID int, limit, offset int) ([]Notification, error)
	MarkRead(ctx context.Context, id, userID int) error
}
