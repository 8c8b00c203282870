// Package worker runs extraction jobs pulled from the task queue and merges
// their results into persisted gifts.
package worker

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Nikcet/get-gifts-backend/internal/extractor"
	"github.com/Nikcet/get-gifts-backend/internal/queue"
	"github.com/Nikcet/get-gifts-backend/internal/ratelimit"
)

// Extractor is the slice of the extraction engine the worker needs.
type Extractor interface {
	Extract(ctx context.Context, url string) (*extractor.Result, error)
}

// GiftStore resolves processing rows to their terminal state.
type GiftStore interface {
	Complete(ctx context.Context, id, name, photo string, cost float64) error
	Fail(ctx context.Context, id, message string) error
}

type Worker struct {
	queue     queue.Queue
	extractor Extractor
	gifts     GiftStore
	limiter   ratelimit.Limiter
	logger    *slog.Logger
}

func New(q queue.Queue, ex Extractor, gifts GiftStore, limiter ratelimit.Limiter, logger *slog.Logger) *Worker {
	if limiter == nil {
		limiter = ratelimit.None{}
	}
	return &Worker{
		queue:     q,
		extractor: ex,
		gifts:     gifts,
		limiter:   limiter,
		logger:    logger.With("component", "worker"),
	}
}

// Run consumes tasks until the context is cancelled or the queue closes.
// Jobs are strictly sequential: the browser session is an exclusive
// resource, and field strategies may mutate the page state they share.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("worker started")

	for {
		task, err := w.queue.Pop(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, queue.ErrQueueClosed) {
				w.logger.Info("worker stopping")
				return
			}
			w.logger.Error("failed to pop task", "error", err)
			continue
		}

		if err := w.limiter.Wait(ctx); err != nil {
			// The task is lost on shutdown; record it so the row does not
			// sit in processing forever.
			if failErr := w.gifts.Fail(context.WithoutCancel(ctx), task.GiftID, "extraction cancelled during shutdown"); failErr != nil {
				w.logger.Error("failed to record job failure", "error", failErr, "gift_id", task.GiftID)
			}
			w.logger.Info("worker stopping")
			return
		}

		w.process(ctx, task)
	}
}

func (w *Worker) process(ctx context.Context, task *queue.Task) {
	log := w.logger.With("gift_id", task.GiftID, "user_id", task.UserID, "url", task.URL)
	log.Info("processing extraction job")

	result, err := w.extractor.Extract(ctx, task.URL)
	if err != nil {
		// No automatic retry: resubmitting creates a new job.
		log.Error("extraction failed", "error", err)
		if failErr := w.gifts.Fail(ctx, task.GiftID, err.Error()); failErr != nil {
			log.Error("failed to record job failure", "error", failErr)
		}
		return
	}

	if err := w.gifts.Complete(ctx, task.GiftID, result.Title, result.ImageURL, result.Price); err != nil {
		log.Error("failed to save extraction result", "error", err)
		return
	}

	log.Info("gift saved", "title", result.Title, "price", result.Price)
}
