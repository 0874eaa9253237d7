package cron

import (
	"context"
	"time"

	"urbanset/config"
	"urbanset/models"
	"urbanset/services/tasks"
	"urbanset/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RatingRefresher recomputes a worker's rating from stored feedback.
type RatingRefresher interface {
	RefreshRating(ctx context.Context, workerID string) (models.RatingSummary, error)
}

// RatingWorker processes rating refresh tasks in the background.
type RatingWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	cancel context.CancelFunc
}

func NewRatingWorker(refresher RatingRefresher) *RatingWorker {
	srv := asynq.NewServer(
		tasks.RedisClientOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: utils.GetLogger().Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeWorkerRatingRefresh, HandleRatingRefresh(refresher))

	return &RatingWorker{srv: srv, mux: mux}
}

// Start runs the worker in the background, retrying with backoff when the
// queue is unreachable.
func (w *RatingWorker) Start() {
	logger := utils.GetLogger()
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	go monitorRedisConnection(ctx)

	go func() {
		logger.Info("starting rating worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			logger.Error("rating worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("rating worker gave up; ratings will only refresh inline")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
}

// Shutdown stops accepting tasks and waits for in-flight ones.
func (w *RatingWorker) Shutdown() {
	if w.cancel != nil {
		w.cancel()
	}
	w.srv.Shutdown()
	utils.GetLogger().Info("rating worker stopped")
}

func HandleRatingRefresh(refresher RatingRefresher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()
		p, err := tasks.ParseRatingRefreshTask(task)
		if err != nil {
			logger.Error("dropping rating refresh task", zap.Error(err))
			return asynq.SkipRetry
		}

		summary, err := refresher.RefreshRating(ctx, p.WorkerID)
		if err != nil {
			if utils.KindOf(err) == utils.KindNotFound {
				logger.Warn("rating refresh for unknown worker", zap.String("workerId", p.WorkerID))
				return nil
			}
			logger.Error("rating refresh failed", zap.String("workerId", p.WorkerID), zap.Error(err))
			return err
		}

		logger.Debug("worker rating refreshed",
			zap.String("workerId", p.WorkerID),
			zap.Float64("rating", summary.Average),
			zap.Int("reviewCount", summary.Count))
		return nil
	}
}

// monitorRedisConnection pings the queue database periodically to detect
// failures at runtime.
func monitorRedisConnection(ctx context.Context) {
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
			if err := client.Ping(ctx).Err(); err != nil {
				utils.GetLogger().Warn("queue redis connection lost", zap.Error(err))
			}
		}
	}
}
