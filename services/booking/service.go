package booking

import (
	"context"
	"errors"

	"urbanset/database/repository"
	"urbanset/models"
	"urbanset/utils"

	"go.uber.org/zap"
)

// CreateBooking validates the request, checks the worker exists and stores
// a pending booking carrying the submitted price.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, p models.Principal, in models.BookingInput) (*models.Booking, error) {
	b, err := newBooking(p.ID, in, s.Now())
	if err != nil {
		return nil, err
	}

	if _, err := s.Workers.GetByID(ctx, b.WorkerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("worker %s not found", b.WorkerID)
		}
		return nil, utils.NewUnexpectedError("could not load worker", err)
	}

	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, utils.NewUnexpectedError("could not create booking", err)
	}
	s.invalidateStats(ctx, b.WorkerID)
	return b, nil
}

// GetBooking returns a booking to its customer or to the worker it references.
func (s *DefaultBookingService) GetBooking(ctx context.Context, p models.Principal, bookingID string) (*models.BookingView, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.CustomerID == p.ID {
		views, err := s.withWorkers(ctx, []models.Booking{*b})
		if err != nil {
			return nil, err
		}
		return &views[0], nil
	}

	if p.IsWorker() {
		if w, err := s.Workers.GetByOwner(ctx, p.ID); err == nil && w.ID == b.WorkerID {
			views, err := s.withCustomers(ctx, []models.Booking{*b})
			if err != nil {
				return nil, err
			}
			return &views[0], nil
		}
	}
	return nil, utils.NewAuthorizationError("booking %s is not visible to this account", b.ID)
}

// ListBookingsForCustomer returns the customer's bookings, newest date first,
// each with the worker's name, avatar and skills.
func (s *DefaultBookingService) ListBookingsForCustomer(ctx context.Context, customerID string) ([]models.BookingView, error) {
	bookings, err := s.Bookings.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, utils.NewUnexpectedError("could not list bookings", err)
	}
	return s.withWorkers(ctx, bookings)
}

// ListBookingsForWorker lists a worker's bookings for the identity that owns
// the profile.
func (s *DefaultBookingService) ListBookingsForWorker(ctx context.Context, p models.Principal, workerID string) ([]models.BookingView, error) {
	id, err := models.ParseID(workerID)
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
	if w.OwnerID != p.ID {
		return nil, utils.NewAuthorizationError("only the worker can list these bookings")
	}
	return s.listForWorker(ctx, w.ID)
}

// ListOwnWorkerBookings resolves the caller's profile and lists its bookings.
func (s *DefaultBookingService) ListOwnWorkerBookings(ctx context.Context, p models.Principal) ([]models.BookingView, error) {
	if !p.IsWorker() {
		return nil, utils.NewAuthorizationError("only workers have worker bookings")
	}
	w, err := s.Workers.GetByOwner(ctx, p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("worker profile not found")
		}
		return nil, utils.NewUnexpectedError("could not load worker", err)
	}
	return s.listForWorker(ctx, w.ID)
}

func (s *DefaultBookingService) listForWorker(ctx context.Context, workerID string) ([]models.BookingView, error) {
	bookings, err := s.Bookings.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, utils.NewUnexpectedError("could not list bookings", err)
	}
	return s.withCustomers(ctx, bookings)
}

// UpdateStatus moves a booking to newStatus on behalf of the worker who owns
// it. The write is a compare-and-set on the status that was read, so a
// concurrent update surfaces as a conflict instead of being overwritten.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID string, p models.Principal, newStatus string) (*models.Booking, error) {
	if !p.IsWorker() {
		return nil, utils.NewAuthorizationError("only the assigned worker can update a booking")
	}
	to, ok := models.ParseBookingStatus(newStatus)
	if !ok {
		return nil, utils.NewValidationError("status must be one of pending, confirmed, completed")
	}

	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	w, err := s.Workers.GetByOwner(ctx, p.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, utils.NewAuthorizationError("only the assigned worker can update a booking")
	case err != nil:
		return nil, utils.NewUnexpectedError("could not load worker", err)
	case w.ID != b.WorkerID:
		return nil, utils.NewAuthorizationError("only the assigned worker can update a booking")
	}

	if b.Status == to {
		return b, nil
	}
	if !s.Policy.Allows(b.Status, to) {
		return nil, utils.NewConflictError("cannot move booking from %s to %s", b.Status, to)
	}

	updated, err := s.Bookings.CompareAndSetStatus(ctx, b.ID, b.Status, to, s.Now())
	switch {
	case errors.Is(err, repository.ErrStaleWrite):
		return nil, utils.NewConflictError("booking %s was updated concurrently, reload and retry", b.ID)
	case errors.Is(err, repository.ErrNotFound):
		return nil, utils.NewNotFoundError("booking %s not found", b.ID)
	case err != nil:
		return nil, utils.NewUnexpectedError("could not update booking", err)
	}

	utils.GetLogger().Info("booking status changed",
		zap.String("bookingId", b.ID),
		zap.String("from", string(b.Status)),
		zap.String("to", string(to)),
		zap.String("policy", s.Policy.Name()),
	)
	s.invalidateStats(ctx, b.WorkerID)
	return updated, nil
}

// UpdateDetails lets the customer edit address and notes while the booking
// is still pending.
func (s *DefaultBookingService) UpdateDetails(ctx context.Context, p models.Principal, bookingID string, in DetailsInput) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != p.ID {
		return nil, utils.NewAuthorizationError("only the customer can edit booking details")
	}
	if b.Status != models.StatusPending {
		return nil, utils.NewConflictError("booking details can only change while pending")
	}

	address, notes := b.Address, b.Notes
	if in.Address != nil {
		address = trimmed(*in.Address)
	}
	if in.Notes != nil {
		notes = trimmed(*in.Notes)
	}
	if address == "" {
		return nil, utils.NewValidationError("address is required")
	}
	if len(address) > 500 || len(notes) > 1000 {
		return nil, utils.NewValidationError("address or notes too long")
	}

	updated, err := s.Bookings.UpdateDetails(ctx, b.ID, p.ID, address, notes)
	switch {
	case errors.Is(err, repository.ErrStaleWrite):
		return nil, utils.NewConflictError("booking %s changed, reload and retry", b.ID)
	case errors.Is(err, repository.ErrNotFound):
		return nil, utils.NewNotFoundError("booking %s not found", b.ID)
	case err != nil:
		return nil, utils.NewUnexpectedError("could not update booking", err)
	}
	return updated, nil
}

func (s *DefaultBookingService) loadBooking(ctx context.Context, rawID string) (*models.Booking, error) {
	id, err := models.ParseID(rawID)
	if err != nil {
		return nil, utils.NewValidationError("booking id is not a valid identifier")
	}
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("booking %s not found", id)
		}
		return nil, utils.NewUnexpectedError("could not load booking", err)
	}
	return b, nil
}

func (s *DefaultBookingService) invalidateStats(ctx context.Context, workerID string) {
	if s.Stats == nil {
		return
	}
	if err := s.Stats.Invalidate(ctx, workerID); err != nil {
		utils.GetLogger().Warn("failed to invalidate booking stats",
			zap.String("workerId", workerID), zap.Error(err))
	}
}
