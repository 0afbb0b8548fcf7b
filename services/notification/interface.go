package notification

import (
	"context"

	notificationRepo "flynext/database/repository/notification"
	userRepo "flynext/database/repository/user"
	"flynext/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NotificationService persists in-app notifications and fans them out as pushes.
type NotificationService interface {
	NotifyUser(ctx context.Context, userID, message string) error
	NotifyHotelOwner(ctx context.Context, ownerID, message string) error
	List(ctx context.Context, recipientID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, recipientID string, ids []string) (int64, error)
	// UnreadCount reports the badge value and whether it came from cache.
	UnreadCount(ctx context.Context, recipientID string) (int64, bool, error)
	SendPush(ctx context.Context, payload models.PushPayload) error
}

// Enqueuer is the part of asynq.Client used here.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Pusher delivers a push message to a device token.
type Pusher interface {
	Push(ctx context.Context, token, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
// Queue and Pusher may be nil, which disables push delivery.
type DefaultNotificationService struct {
	Repo   notificationRepo.NotificationRepository
	Users  userRepo.UserRepository
	Badges BadgeCache
	Queue  Enqueuer
	Pusher Pusher
	Logger *zap.Logger
}
