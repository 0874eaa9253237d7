package feedback

import (
	"context"
	"time"

	feedbackRepo "urbanset/database/repository/feedback"
	userRepo "urbanset/database/repository/user"
	workerRepo "urbanset/database/repository/worker"
	"urbanset/models"
)

// FeedbackService records customer feedback and keeps worker ratings current.
type FeedbackService interface {
	Submit(ctx context.Context, p models.Principal, in FeedbackInput) (*models.Feedback, error)
	ListForWorker(ctx context.Context, workerID string) ([]models.Feedback, error)
	ListOwn(ctx context.Context, p models.Principal) ([]models.Feedback, error)
	RefreshRating(ctx context.Context, workerID string) (models.RatingSummary, error)
}

// RatingScheduler queues a background recomputation of a worker's rating.
type RatingScheduler interface {
	ScheduleRatingRefresh(ctx context.Context, workerID string) error
}

type FeedbackInput struct {
	WorkerID string `json:"workerId" validate:"required"`
	Rating   int    `json:"rating" validate:"gte=1,lte=5"`
	Comment  string `json:"comment" validate:"max=1000"`
}

// DefaultFeedbackService is the production implementation. Scheduler is
// optional; without it ratings are refreshed inline.
type DefaultFeedbackService struct {
	Feedback  feedbackRepo.FeedbackRepository
	Workers   workerRepo.WorkerRepository
	Users     userRepo.UserRepository
	Scheduler RatingScheduler
	Now       func() time.Time
}

func NewDefaultFeedbackService(
	feedback feedbackRepo.FeedbackRepository,
	workers workerRepo.WorkerRepository,
	users userRepo.UserRepository,
	scheduler RatingScheduler,
) *DefaultFeedbackService {
	return &DefaultFeedbackService{
		Feedback:  feedback,
		Workers:   workers,
		Users:     users,
		Scheduler: scheduler,
		Now:       time.Now,
	}
}
