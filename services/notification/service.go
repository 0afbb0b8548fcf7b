package notification

import (
	"context"
	"fmt"

	"flynext/models"
	"flynext/services/tasks"
	"flynext/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultNotificationService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

func (s *DefaultNotificationService) NotifyUser(ctx context.Context, userID, message string) error {
	return s.create(ctx, &models.Notification{UserID: userID, Message: message})
}

func (s *DefaultNotificationService) NotifyHotelOwner(ctx context.Context, ownerID, message string) error {
	return s.create(ctx, &models.Notification{HotelOwnerID: ownerID, Message: message})
}

func (s *DefaultNotificationService) create(ctx context.Context, n *models.Notification) error {
	n.ID = uuid.NewString()
	if err := s.Repo.Create(ctx, n); err != nil {
		return fmt.Errorf("notification: %w", err)
	}

	recipient := n.Recipient()
	if s.Badges != nil {
		if err := s.Badges.Invalidate(ctx, recipient); err != nil {
			s.logger().Warn("badge invalidation failed", zap.String("recipient", recipient), zap.Error(err))
		}
	}
	s.enqueuePush(ctx, models.PushPayload{
		RecipientID: recipient,
		Title:       "FlyNext",
		Body:        n.Message,
		Kind:        "booking_update",
	})
	return nil
}

// enqueuePush is best effort; the in-app notification is already stored.
func (s *DefaultNotificationService) enqueuePush(ctx context.Context, payload models.PushPayload) {
	if s.Queue == nil {
		return
	}
	task, opts, err := tasks.NewPushTask(payload)
	if err != nil {
		s.logger().Warn("push task encoding failed", zap.Error(err))
		return
	}
	if _, err := s.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		s.logger().Warn("push task enqueue failed", zap.String("recipient", payload.RecipientID), zap.Error(err))
	}
}

func (s *DefaultNotificationService) List(ctx context.Context, recipientID string) ([]models.Notification, error) {
	list, err := s.Repo.ListForRecipient(ctx, recipientID)
	if err != nil {
		return nil, utils.Internal("failed to load notifications", err)
	}
	return list, nil
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, recipientID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := s.Repo.MarkRead(ctx, recipientID, ids)
	if err != nil {
		return 0, utils.Internal("failed to mark notifications read", err)
	}
	if n > 0 && s.Badges != nil {
		if err := s.Badges.Invalidate(ctx, recipientID); err != nil {
			s.logger().Warn("badge invalidation failed", zap.String("recipient", recipientID), zap.Error(err))
		}
	}
	return n, nil
}

// UnreadCount serves from the badge cache and falls back to the database on a miss or cache error.
func (s *DefaultNotificationService) UnreadCount(ctx context.Context, recipientID string) (int64, bool, error) {
	if s.Badges != nil {
		n, hit, err := s.Badges.Get(ctx, recipientID)
		if err != nil {
			s.logger().Warn("badge cache read failed", zap.Error(err))
		} else if hit {
			return n, true, nil
		}
	}

	n, err := s.Repo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, false, utils.Internal("failed to count notifications", err)
	}
	if s.Badges != nil {
		if err := s.Badges.Set(ctx, recipientID, n); err != nil {
			s.logger().Warn("badge cache write failed", zap.Error(err))
		}
	}
	return n, false, nil
}
