package booking

import (
	"context"
	"strings"

	"urbanset/models"
	"urbanset/utils"
)

// withWorkers attaches the minimal worker projection for customer listings.
func (s *DefaultBookingService) withWorkers(ctx context.Context, bookings []models.Booking) ([]models.BookingView, error) {
	workers, err := s.Workers.GetByIDs(ctx, distinct(bookings, func(b models.Booking) string { return b.WorkerID }))
	if err != nil {
		return nil, utils.NewUnexpectedError("could not load workers", err)
	}
	byID := make(map[string]*models.WorkerSummary, len(workers))
	for i := range workers {
		byID[workers[i].ID] = workers[i].Summary()
	}

	views := make([]models.BookingView, len(bookings))
	for i, b := range bookings {
		views[i] = models.BookingView{Booking: b, Worker: byID[b.WorkerID]}
	}
	return views, nil
}

// withCustomers attaches the customer's name and email for worker listings.
func (s *DefaultBookingService) withCustomers(ctx context.Context, bookings []models.Booking) ([]models.BookingView, error) {
	users, err := s.Users.GetByIDs(ctx, distinct(bookings, func(b models.Booking) string { return b.CustomerID }))
	if err != nil {
		return nil, utils.NewUnexpectedError("could not load customers", err)
	}
	byID := make(map[string]*models.CustomerSummary, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].Summary()
	}

	views := make([]models.BookingView, len(bookings))
	for i, b := range bookings {
		views[i] = models.BookingView{Booking: b, Customer: byID[b.CustomerID]}
	}
	return views, nil
}

func distinct(bookings []models.Booking, key func(models.Booking) string) []string {
	seen := make(map[string]bool, len(bookings))
	var ids []string
	for _, b := range bookings {
		if k := key(b); !seen[k] {
			seen[k] = true
			ids = append(ids, k)
		}
	}
	return ids
}

func trimmed(s string) string { return strings.TrimSpace(s) }
