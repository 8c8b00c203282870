// Package queue decouples gift submission from the slow browser extraction.
// Jobs are processed at-least-once, out of band, with no ordering guarantee
// and no shared state between them.
package queue

import (
	"context"
	"errors"
	"time"
)

var ErrQueueClosed = errors.New("queue is closed")

// Task is one extraction job: the submitted URL plus the ownership metadata
// the worker merges back into the persisted gift.
type Task struct {
	ID        string    `json:"id"`
	GiftID    string    `json:"gift_id"`
	UserID    string    `json:"user_id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type Queue interface {
	Push(ctx context.Context, task *Task) error
	// Pop blocks until a task is available, the context is cancelled, or
	// the queue is closed.
	Pop(ctx context.Context) (*Task, error)
	Size(ctx context.Context) (int, error)
	Close() error
}
