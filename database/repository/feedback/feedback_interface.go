package feedbackRepo

import (
	"context"

	"urbanset/models"
)

// FeedbackRepository defines methods for customer feedback data access.
type FeedbackRepository interface {
	Create(ctx context.Context, f *models.Feedback) error
	// ListByWorker returns the newest entries first; limit <= 0 means all.
	ListByWorker(ctx context.Context, workerID string, limit int64) ([]models.Feedback, error)
	// RatingSummary averages every rating left for the worker.
	RatingSummary(ctx context.Context, workerID string) (models.RatingSummary, error)
}
