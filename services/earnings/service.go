package earnings

import (
	"context"
	"errors"

	"urbanset/database/repository"
	bookingRepo "urbanset/database/repository/booking"
	feedbackRepo "urbanset/database/repository/feedback"
	workerRepo "urbanset/database/repository/worker"
	"urbanset/models"
	"urbanset/utils"

	"go.uber.org/zap"
)

const recentFeedbackLimit = 5

// AggregationService summarizes a worker's bookings.
type AggregationService interface {
	ComputeBookingStats(ctx context.Context, workerID string) (models.BookingStats, error)
	BuildEarningsLedger(ctx context.Context, workerID string) ([]models.EarningsEntry, error)
	OwnEarnings(ctx context.Context, p models.Principal) ([]models.EarningsEntry, error)
	Dashboard(ctx context.Context, p models.Principal) (*models.WorkerDashboard, error)
}

// DefaultAggregationService is the production implementation. Cache is optional.
type DefaultAggregationService struct {
	Workers  workerRepo.WorkerRepository
	Bookings bookingRepo.BookingRepository
	Feedback feedbackRepo.FeedbackRepository
	Cache    StatsCache
}

func NewDefaultAggregationService(
	workers workerRepo.WorkerRepository,
	bookings bookingRepo.BookingRepository,
	feedback feedbackRepo.FeedbackRepository,
	cache StatsCache,
) *DefaultAggregationService {
	return &DefaultAggregationService{Workers: workers, Bookings: bookings, Feedback: feedback, Cache: cache}
}

// ComputeBookingStats counts the worker's bookings per status and sums the
// price of completed ones. Statuses with no bookings report zero.
func (s *DefaultAggregationService) ComputeBookingStats(ctx context.Context, workerID string) (models.BookingStats, error) {
	w, err := s.loadWorker(ctx, workerID)
	if err != nil {
		return models.BookingStats{}, err
	}
	return s.statsFor(ctx, w.ID)
}

func (s *DefaultAggregationService) statsFor(ctx context.Context, workerID string) (models.BookingStats, error) {
	logger := utils.GetLogger()
	var generation int64
	fill := false
	if s.Cache != nil {
		cached, gen, err := s.Cache.Get(ctx, workerID)
		switch {
		case err != nil:
			logger.Warn("stats cache read failed", zap.String("workerId", workerID), zap.Error(err))
		case cached != nil:
			return *cached, nil
		default:
			generation, fill = gen, true
		}
	}

	rows, err := s.Bookings.StatsByWorker(ctx, workerID)
	if err != nil {
		return models.BookingStats{}, utils.NewUnexpectedError("could not compute booking stats", err)
	}
	stats := foldStats(rows)

	if fill {
		if err := s.Cache.Set(ctx, workerID, generation, stats); err != nil {
			logger.Warn("stats cache write failed", zap.String("workerId", workerID), zap.Error(err))
		}
	}
	return stats, nil
}

func foldStats(rows []models.StatusCount) models.BookingStats {
	var stats models.BookingStats
	for _, r := range rows {
		switch r.Status {
		case models.StatusPending:
			stats.Pending += r.Count
		case models.StatusConfirmed:
			stats.Confirmed += r.Count
		case models.StatusCompleted:
			stats.Completed += r.Count
			stats.TotalEarnings += r.Amount
		}
	}
	return stats
}

// BuildEarningsLedger maps each of the worker's bookings to an earnings row,
// newest date first.
func (s *DefaultAggregationService) BuildEarningsLedger(ctx context.Context, workerID string) ([]models.EarningsEntry, error) {
	w, err := s.loadWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	return s.ledgerFor(ctx, w.ID)
}

func (s *DefaultAggregationService) ledgerFor(ctx context.Context, workerID string) ([]models.EarningsEntry, error) {
	bookings, err := s.Bookings.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, utils.NewUnexpectedError("could not list bookings", err)
	}
	ledger := make([]models.EarningsEntry, len(bookings))
	for i, b := range bookings {
		ledger[i] = models.EarningsEntry{
			BookingID:    b.ID,
			Date:         b.Date,
			ServiceLabel: b.Service,
			Amount:       b.Price,
			Status:       b.Status,
		}
	}
	return ledger, nil
}

func (s *DefaultAggregationService) OwnEarnings(ctx context.Context, p models.Principal) ([]models.EarningsEntry, error) {
	w, err := s.ownProfile(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.ledgerFor(ctx, w.ID)
}

// Dashboard returns the caller's profile, stats and latest feedback.
func (s *DefaultAggregationService) Dashboard(ctx context.Context, p models.Principal) (*models.WorkerDashboard, error) {
	w, err := s.ownProfile(ctx, p)
	if err != nil {
		return nil, err
	}
	stats, err := s.statsFor(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	recent, err := s.Feedback.ListByWorker(ctx, w.ID, recentFeedbackLimit)
	if err != nil {
		return nil, utils.NewUnexpectedError("could not load feedback", err)
	}
	return &models.WorkerDashboard{Worker: w, Stats: stats, RecentFeedback: recent}, nil
}

func (s *DefaultAggregationService) loadWorker(ctx context.Context, rawID string) (*models.Worker, error) {
	id, err := models.ParseID(rawID)
	if err != nil {
		return nil, utils.NewValidationError("workerId is not a valid identifier")
	}
	w, err := s.Workers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("worker %s not found", id)
		}
		return nil, utils.NewUnexpectedError("could not load worker", err)
	}
	return w, nil
}

func (s *DefaultAggregationService) ownProfile(ctx context.Context, p models.Principal) (*models.Worker, error) {
	if !p.IsWorker() {
		return nil, utils.NewAuthorizationError("only workers have earnings")
	}
	w, err := s.Workers.GetByOwner(ctx, p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("worker profile not found")
		}
		return nil, utils.NewUnexpectedError("could not load worker", err)
	}
	return w, nil
}
