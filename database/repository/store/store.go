// Package store bundles every repository behind one value so main can pick
// a backend from configuration.
package store

import (
	"fmt"

	bookingRepo "urbanset/database/repository/booking"
	catalogRepo "urbanset/database/repository/catalog"
	feedbackRepo "urbanset/database/repository/feedback"
	"urbanset/database/repository/memory"
	userRepo "urbanset/database/repository/user"
	workerRepo "urbanset/database/repository/worker"
)

type Store struct {
	Workers  workerRepo.WorkerRepository
	Bookings bookingRepo.BookingRepository
	Users    userRepo.UserRepository
	Feedback feedbackRepo.FeedbackRepository
	Catalog  catalogRepo.CatalogRepository
}

// NewMongoStore builds MongoDB-backed repositories on the global client.
func NewMongoStore() *Store {
	return &Store{
		Workers:  workerRepo.NewMongoWorkerRepo(),
		Bookings: bookingRepo.NewMongoBookingRepo(),
		Users:    userRepo.NewMongoUserRepo(),
		Feedback: feedbackRepo.NewMongoFeedbackRepo(),
		Catalog:  catalogRepo.NewMongoCatalogRepo(),
	}
}

// NewMemoryStore builds process-local repositories.
func NewMemoryStore() *Store {
	return &Store{
		Workers:  memory.NewWorkerRepo(),
		Bookings: memory.NewBookingRepo(),
		Users:    memory.NewUserRepo(),
		Feedback: memory.NewFeedbackRepo(),
		Catalog:  memory.NewCatalogRepo(),
	}
}

// New selects the backend named by driver ("mongo" or "memory").
func New(driver string) (*Store, error) {
	switch driver {
	case "", "mongo":
		return NewMongoStore(), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
