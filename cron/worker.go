package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"flynext/config"
	"flynext/database"
	"flynext/models"
	"flynext/services/notification"
	"flynext/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt is the asynq connection shared by the client and the worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// BookingLookup is the part of the booking repository the reminder handler reads.
type BookingLookup interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}

// NewMux routes task types to their handlers.
func NewMux(notifSvc notification.NotificationService, bookings BookingLookup, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendPush, handlePushTask(notifSvc, logger))
	mux.HandleFunc(tasks.TypeCheckInReminder, handleReminderTask(notifSvc, bookings, logger))
	return mux
}

// InitWorker runs the async worker in background and returns it for shutdown.
func InitWorker(ctx context.Context, notifSvc notification.NotificationService, bookings BookingLookup, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	mux := NewMux(notifSvc, bookings, logger)

	go monitorRedisConnection(ctx, logger)

	go func() {
		logger.Info("starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("worker failed to start", zap.Int("attempt", attempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("worker gave up; push and reminders are disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

func handlePushTask(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PushPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid push payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if err := notifSvc.SendPush(ctx, p); err != nil {
			logger.Warn("push delivery failed", zap.String("recipient", p.RecipientID), zap.Error(err))
			return err
		}
		return nil
	}
}

func handleReminderTask(notifSvc notification.NotificationService, bookings BookingLookup, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		// The stay may have been cancelled, dropped or moved since the task was queued.
		b, err := bookings.GetByID(ctx, p.BookingID)
		if errors.Is(err, database.ErrNotFound) {
			logger.Info("reminder skipped, booking gone", zap.String("bookingId", p.BookingID))
			return nil
		}
		if err != nil {
			return err
		}
		if reason := staleReminder(b, p); reason != "" {
			logger.Info("reminder skipped", zap.String("bookingId", p.BookingID), zap.String("reason", reason))
			return nil
		}

		msg := fmt.Sprintf("Reminder: your stay for booking #%s begins on %s.", p.BookingID, p.CheckIn)
		if p.HotelName != "" {
			msg = fmt.Sprintf("Reminder: your stay at %s (booking #%s) begins on %s.", p.HotelName, p.BookingID, p.CheckIn)
		}
		logger.Info("sending check-in reminder", zap.String("bookingId", p.BookingID), zap.String("userId", p.UserID))
		return notifSvc.NotifyUser(ctx, p.UserID, msg)
	}
}

func staleReminder(b *models.Booking, p models.ReminderPayload) string {
	switch {
	case b.UserID != p.UserID:
		return "owner changed"
	case b.BookStatus == models.BookingCancelled:
		return "booking cancelled"
	case !b.HasRoom() || b.CheckIn == nil:
		return "room cancelled"
	case b.CheckIn.Format("2006-01-02") != p.CheckIn:
		return "check-in moved"
	}
	return ""
}

// monitorRedisConnection pings the queue Redis periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				logger.Warn("queue redis connection lost", zap.Error(err))
			}
		}
	}
}
