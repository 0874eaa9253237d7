package cron

import (
	"context"
	"errors"
	"testing"

	"urbanset/models"
	"urbanset/services/tasks"
	"urbanset/utils"

	"github.com/hibiken/asynq"
)

type fakeRefresher struct {
	calls []string
	err   error
}

func (f *fakeRefresher) RefreshRating(_ context.Context, workerID string) (models.RatingSummary, error) {
	f.calls = append(f.calls, workerID)
	return models.RatingSummary{Average: 4.5, Count: 2}, f.err
}

func TestHandleRatingRefresh(t *testing.T) {
	task, _, err := tasks.NewRatingRefreshTask("worker-1")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("refreshes the worker", func(t *testing.T) {
		r := &fakeRefresher{}
		if err := HandleRatingRefresh(r)(context.Background(), task); err != nil {
			t.Fatal(err)
		}
		if len(r.calls) != 1 || r.calls[0] != "worker-1" {
			t.Fatalf("calls = %v", r.calls)
		}
	})

	t.Run("unknown worker is not retried", func(t *testing.T) {
		r := &fakeRefresher{err: utils.NewNotFoundError("worker missing")}
		if err := HandleRatingRefresh(r)(context.Background(), task); err != nil {
			t.Fatalf("want nil, got %v", err)
		}
	})

	t.Run("store failure is retried", func(t *testing.T) {
		r := &fakeRefresher{err: utils.NewUnexpectedError("boom", errors.New("db down"))}
		if err := HandleRatingRefresh(r)(context.Background(), task); err == nil {
			t.Fatal("expected an error so asynq retries")
		}
	})

	t.Run("bad payload skips retry", func(t *testing.T) {
		r := &fakeRefresher{}
		err := HandleRatingRefresh(r)(context.Background(), asynq.NewTask(tasks.TypeWorkerRatingRefresh, []byte("{")))
		if !errors.Is(err, asynq.SkipRetry) {
			t.Fatalf("want SkipRetry, got %v", err)
		}
		if len(r.calls) != 0 {
			t.Fatal("refresher should not run")
		}
	})
}
