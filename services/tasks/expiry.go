package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeTransferExpire = "transfer:expire"

// ExpiryPayload identifies the payment session whose window lapsed.
type ExpiryPayload struct {
	SessionID string `json:"sessionId"`
}

func NewTransferExpiryTask(payload ExpiryPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeTransferExpire, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqExpiryScheduler enqueues expiry tasks on the shared queue client.
type AsynqExpiryScheduler struct {
	Client *asynq.Client
}

func NewAsynqExpiryScheduler(client *asynq.Client) *AsynqExpiryScheduler {
	return &AsynqExpiryScheduler{Client: client}
}

func (s *AsynqExpiryScheduler) ScheduleExpiry(sessionID string, at time.Time) error {
	task, opts, err := NewTransferExpiryTask(ExpiryPayload{SessionID: sessionID}, at)
	if err != nil {
		return err
	}
	_, err = s.Client.Enqueue(task, opts...)
	return err
}
