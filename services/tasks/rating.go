package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"urbanset/config"
	"urbanset/models"

	"github.com/hibiken/asynq"
)

const TypeWorkerRatingRefresh = "worker:rating:refresh"

func NewRatingRefreshTask(workerID string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(models.RatingRefreshPayload{WorkerID: workerID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeWorkerRatingRefresh, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

// ParseRatingRefreshTask decodes the payload of a rating refresh task.
func ParseRatingRefreshTask(task *asynq.Task) (models.RatingRefreshPayload, error) {
	var p models.RatingRefreshPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid rating refresh payload: %w", err)
	}
	if p.WorkerID == "" {
		return p, fmt.Errorf("rating refresh payload has no workerId")
	}
	return p, nil
}

// RedisClientOpt points asynq at the queue database.
func RedisClientOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// RatingScheduler enqueues rating refresh tasks through an asynq client.
type RatingScheduler struct {
	Client *asynq.Client
}

func NewRatingScheduler(client *asynq.Client) *RatingScheduler {
	return &RatingScheduler{Client: client}
}

func (s *RatingScheduler) ScheduleRatingRefresh(ctx context.Context, workerID string) error {
	task, opts, err := NewRatingRefreshTask(workerID)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue rating refresh for worker %s: %w", workerID, err)
	}
	return nil
}
