package bookingRepo

import (
	"context"
	"time"

	"urbanset/models"
)

// BookingRepository defines methods for booking data access. Bookings are
// never deleted.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	// GetByID returns ErrNotFound when no booking matches.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByCustomer and ListByWorker order by date, then creation time, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	ListByWorker(ctx context.Context, workerID string) ([]models.Booking, error)
	// CompareAndSetStatus moves the booking from one status to another only if
	// it is still in the expected status. ErrStaleWrite when it is not.
	CompareAndSetStatus(ctx context.Context, id string, from, to models.BookingStatus, at time.Time) (*models.Booking, error)
	// UpdateDetails edits address and notes of a pending booking owned by customerID.
	UpdateDetails(ctx context.Context, id, customerID, address, notes string) (*models.Booking, error)
	// StatsByWorker groups the worker's bookings by status.
	StatsByWorker(ctx context.Context, workerID string) ([]models.StatusCount, error)
}
