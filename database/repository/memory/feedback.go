package memory

import (
	"context"
	"sort"
	"sync"

	"urbanset/models"
)

type FeedbackRepo struct {
	mu      sync.RWMutex
	entries []models.Feedback
}

func NewFeedbackRepo() *FeedbackRepo {
	return &FeedbackRepo{}
}

func (r *FeedbackRepo) Create(_ context.Context, f *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, *f)
	return nil
}

func (r *FeedbackRepo) ListByWorker(_ context.Context, workerID string, limit int64) ([]models.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Feedback{}
	for _, f := range r.entries {
		if f.WorkerID == workerID {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *FeedbackRepo) RatingSummary(_ context.Context, workerID string) (models.RatingSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum models.RatingSummary
	total := 0
	for _, f := range r.entries {
		if f.WorkerID == workerID {
			total += f.Rating
			sum.Count++
		}
	}
	if sum.Count > 0 {
		sum.Average = float64(total) / float64(sum.Count)
	}
	return sum, nil
}
