package booking

import (
	"context"
	"time"

	bookingRepo "urbanset/database/repository/booking"
	userRepo "urbanset/database/repository/user"
	workerRepo "urbanset/database/repository/worker"
	"urbanset/models"
)

// BookingService is the booking ledger: creation, listings and the status
// state machine.
type BookingService interface {
	CreateBooking(ctx context.Context, p models.Principal, in models.BookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, p models.Principal, bookingID string) (*models.BookingView, error)
	ListBookingsForCustomer(ctx context.Context, customerID string) ([]models.BookingView, error)
	ListBookingsForWorker(ctx context.Context, p models.Principal, workerID string) ([]models.BookingView, error)
	ListOwnWorkerBookings(ctx context.Context, p models.Principal) ([]models.BookingView, error)
	UpdateStatus(ctx context.Context, bookingID string, p models.Principal, newStatus string) (*models.Booking, error)
	UpdateDetails(ctx context.Context, p models.Principal, bookingID string, in DetailsInput) (*models.Booking, error)
}

// StatsInvalidator drops cached aggregates after a booking write.
type StatsInvalidator interface {
	Invalidate(ctx context.Context, workerID string) error
}

// DetailsInput is the customer-editable subset of a pending booking.
// Nil fields are left unchanged.
type DetailsInput struct {
	Address *string
	Notes   *string
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Bookings bookingRepo.BookingRepository
	Workers  workerRepo.WorkerRepository
	Users    userRepo.UserRepository
	Policy   TransitionPolicy
	Stats    StatsInvalidator
	Now      func() time.Time
}

func NewDefaultBookingService(
	bookings bookingRepo.BookingRepository,
	workers workerRepo.WorkerRepository,
	users userRepo.UserRepository,
	policy TransitionPolicy,
	stats StatsInvalidator,
) *DefaultBookingService {
	if policy == nil {
		policy = StrictTransitions{}
	}
	return &DefaultBookingService{
		Bookings: bookings,
		Workers:  workers,
		Users:    users,
		Policy:   policy,
		Stats:    stats,
		Now:      func() time.Time { return time.Now().UTC() },
	}
}
