package feedback

import (
	"context"
	"errors"
	"strings"

	"urbanset/database/repository"
	"urbanset/models"
	"urbanset/utils"

	"go.uber.org/zap"
)

// Submit stores a rating for an existing worker on behalf of the caller.
func (s *DefaultFeedbackService) Submit(ctx context.Context, p models.Principal, in FeedbackInput) (*models.Feedback, error) {
	in.WorkerID = strings.TrimSpace(in.WorkerID)
	in.Comment = strings.TrimSpace(in.Comment)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	workerID, err := models.ParseID(in.WorkerID)
	if err != nil {
		return nil, utils.NewValidationError("workerId is not a valid identifier")
	}
	if _, err := s.loadWorker(ctx, workerID); err != nil {
		return nil, err
	}

	userName := ""
	if u, err := s.Users.GetByID(ctx, p.ID); err == nil {
		userName = u.Name
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewUnexpectedError("could not load account", err)
	}

	f := &models.Feedback{
		ID:        models.NewID(),
		WorkerID:  workerID,
		UserID:    p.ID,
		UserName:  userName,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: s.Now().UTC(),
	}
	if err := s.Feedback.Create(ctx, f); err != nil {
		return nil, utils.NewUnexpectedError("could not save feedback", err)
	}

	s.scheduleRefresh(ctx, workerID)
	return f, nil
}

func (s *DefaultFeedbackService) scheduleRefresh(ctx context.Context, workerID string) {
	logger := utils.GetLogger()
	if s.Scheduler != nil {
		err := s.Scheduler.ScheduleRatingRefresh(ctx, workerID)
		if err == nil {
			return
		}
		logger.Warn("rating refresh enqueue failed, refreshing inline", zap.String("workerId", workerID), zap.Error(err))
	}
	if _, err := s.RefreshRating(ctx, workerID); err != nil {
		logger.Error("rating refresh failed", zap.String("workerId", workerID), zap.Error(err))
	}
}

// ListForWorker returns every feedback entry for a worker, newest first.
func (s *DefaultFeedbackService) ListForWorker(ctx context.Context, workerID string) ([]models.Feedback, error) {
	id, err := models.ParseID(workerID)
	if err != nil {
		return nil, utils.NewValidationError("workerId is not a valid identifier")
	}
	if _, err := s.loadWorker(ctx, id); err != nil {
		return nil, err
	}
	return s.list(ctx, id)
}

// ListOwn returns the feedback left for the caller's worker profile.
func (s *DefaultFeedbackService) ListOwn(ctx context.Context, p models.Principal) ([]models.Feedback, error) {
	if !p.IsWorker() {
		return nil, utils.NewAuthorizationError("only workers have feedback")
	}
	w, err := s.Workers.GetByOwner(ctx, p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("no worker profile for this account")
		}
		return nil, utils.NewUnexpectedError("could not load worker profile", err)
	}
	return s.list(ctx, w.ID)
}

func (s *DefaultFeedbackService) list(ctx context.Context, workerID string) ([]models.Feedback, error) {
	entries, err := s.Feedback.ListByWorker(ctx, workerID, 0)
	if err != nil {
		return nil, utils.NewUnexpectedError("could not list feedback", err)
	}
	if entries == nil {
		entries = []models.Feedback{}
	}
	return entries, nil
}

// RefreshRating recomputes the average rating and review count from stored
// feedback and writes them onto the worker profile.
func (s *DefaultFeedbackService) RefreshRating(ctx context.Context, workerID string) (models.RatingSummary, error) {
	summary, err := s.Feedback.RatingSummary(ctx, workerID)
	if err != nil {
		return models.RatingSummary{}, utils.NewUnexpectedError("could not summarize ratings", err)
	}
	if err := s.Workers.UpdateRating(ctx, workerID, summary.Average, summary.Count); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.RatingSummary{}, utils.NewNotFoundError("worker %s not found", workerID)
		}
		return models.RatingSummary{}, utils.NewUnexpectedError("could not update worker rating", err)
	}
	return summary, nil
}

func (s *DefaultFeedbackService) loadWorker(ctx context.Context, id string) (*models.Worker, error) {
	w, err := s.Workers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("worker %s not found", id)
		}
		return nil, utils.NewUnexpectedError("could not load worker", err)
	}
	return w, nil
}
