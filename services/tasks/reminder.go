package tasks

import (
	"encoding/json"
	"time"

	"flynext/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendPush        = "notification:push"
	TypeCheckInReminder = "booking:reminder"
)

// NewPushTask wraps a push payload for the worker.
func NewPushTask(payload models.PushPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendPush, b)
	opts := []asynq.Option{asynq.MaxRetry(3), asynq.Timeout(30 * time.Second)}
	return task, opts, nil
}

// NewReminderTask fires a check-in reminder at fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeCheckInReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.TaskID("reminder:" + payload.BookingID)}

	return task, opts, nil
}
