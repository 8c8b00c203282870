package worker

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nikcet/get-gifts-backend/internal/extractor"
	"github.com/Nikcet/get-gifts-backend/internal/queue"
)

// MockExtractor is a mock for the extraction engine
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, url string) (*extractor.Result, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extractor.Result), args.Error(1)
}

// MockGiftStore is a mock for the gift persistence
type MockGiftStore struct {
	mock.Mock
}

func (m *MockGiftStore) Complete(ctx context.Context, id, name, photo string, cost float64) error {
	args := m.Called(ctx, id, name, photo, cost)
	return args.Error(0)
}

func (m *MockGiftStore) Fail(ctx context.Context, id, message string) error {
	args := m.Called(ctx, id, message)
	return args.Error(0)
}

func TestWorker_ProcessSuccess(t *testing.T) {
	ctx := context.Background()
	mockExtractor := new(MockExtractor)
	mockGifts := new(MockGiftStore)

	task := &queue.Task{
		ID:     "task-1",
		GiftID: "gift-1",
		UserID: "user-1",
		URL:    "https://example.com/product/123",
	}

	result := &extractor.Result{
		Title:    "Wireless Mouse",
		ImageURL: "https://cdn.example.com/img/mouse.jpg",
		Price:    1990.00,
	}

	mockExtractor.On("Extract", ctx, task.URL).Return(result, nil)
	mockGifts.On("Complete", ctx, "gift-1", "Wireless Mouse", "https://cdn.example.com/img/mouse.jpg", 1990.00).Return(nil)

	w := New(queue.NewInMemoryQueue(), mockExtractor, mockGifts, nil, slog.Default())
	w.process(ctx, task)

	mockExtractor.AssertExpectations(t)
	mockGifts.AssertExpectations(t)
}

func TestWorker_ProcessExtractionFault(t *testing.T) {
	ctx := context.Background()
	mockExtractor := new(MockExtractor)
	mockGifts := new(MockGiftStore)

	task := &queue.Task{GiftID: "gift-1", URL: "https://unreachable.example.com/product/1"}

	navErr := &extractor.NavigationError{URL: task.URL, Err: context.DeadlineExceeded}
	mockExtractor.On("Extract", ctx, task.URL).Return(nil, navErr)
	mockGifts.On("Fail", ctx, "gift-1", navErr.Error()).Return(nil)

	w := New(queue.NewInMemoryQueue(), mockExtractor, mockGifts, nil, slog.Default())
	w.process(ctx, task)

	mockExtractor.AssertExpectations(t)
	mockGifts.AssertExpectations(t)
	mockGifts.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorker_RunConsumesQueue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mockExtractor := new(MockExtractor)
	mockGifts := new(MockGiftStore)
	q := queue.NewInMemoryQueue()

	done := make(chan struct{})
	result := &extractor.Result{Title: "Wireless Mouse"}
	mockExtractor.On("Extract", mock.Anything, "https://example.com/product/123").Return(result, nil)
	mockGifts.On("Complete", mock.Anything, "gift-1", "Wireless Mouse", "", 0.0).
		Run(func(mock.Arguments) { close(done) }).
		Return(nil)

	w := New(q, mockExtractor, mockGifts, nil, slog.Default())
	go w.Run(ctx)

	require.NoError(t, q.Push(ctx, &queue.Task{GiftID: "gift-1", URL: "https://example.com/product/123"}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not process the task")
	}

	mockExtractor.AssertExpectations(t)
	mockGifts.AssertExpectations(t)
}

func TestWorker_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	w := New(queue.NewInMemoryQueue(), new(MockExtractor), new(MockGiftStore), nil, slog.Default())

	stopped := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(stopped)
	}()

	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancellation")
	}
}
