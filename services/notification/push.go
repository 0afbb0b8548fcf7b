package notification

import (
	"context"
	"fmt"

	"flynext/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMPusher sends through Firebase Cloud Messaging.
type FCMPusher struct {
	Client *messaging.Client
}

func (p *FCMPusher) Push(ctx context.Context, token, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{"apns-priority": "10"},
			Payload: &messaging.APNSPayload{Aps: &messaging.Aps{Sound: "default"}},
		},
	}
	if _, err := p.Client.Send(ctx, msg); err != nil {
		return fmt.Errorf("fcm send: %w", err)
	}
	return nil
}

// SendPush looks up the recipient's device token and delivers the payload.
// Recipients without a token are skipped.
func (s *DefaultNotificationService) SendPush(ctx context.Context, payload models.PushPayload) error {
	if s.Pusher == nil {
		return nil
	}
	u, err := s.Users.GetByID(ctx, payload.RecipientID)
	if err != nil {
		return fmt.Errorf("SendPush: could not find user %s: %w", payload.RecipientID, err)
	}
	if u.FCMToken == "" {
		s.logger().Debug("push skipped, no device token", zap.String("recipient", payload.RecipientID))
		return nil
	}
	data := map[string]string{"kind": payload.Kind}
	return s.Pusher.Push(ctx, u.FCMToken, payload.Title, payload.Body, data)
}
