package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"urbanset/database/repository"
	"urbanset/models"
)

type BookingRepo struct {
	mu   sync.RWMutex
	byID map[string]*models.Booking
}

func NewBookingRepo() *BookingRepo {
	return &BookingRepo{byID: make(map[string]*models.Booking)}
}

func (r *BookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[b.ID]; ok {
		return repository.ErrDuplicate
	}
	c := *b
	r.byID[b.ID] = &c
	return nil
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *b
	return &c, nil
}

func (r *BookingRepo) ListByCustomer(_ context.Context, customerID string) ([]models.Booking, error) {
	return r.list(func(b *models.Booking) bool { return b.CustomerID == customerID }), nil
}

func (r *BookingRepo) ListByWorker(_ context.Context, workerID string) ([]models.Booking, error) {
	return r.list(func(b *models.Booking) bool { return b.WorkerID == workerID }), nil
}

func (r *BookingRepo) list(keep func(*models.Booking) bool) []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range r.byID {
		if keep(b) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *BookingRepo) CompareAndSetStatus(_ context.Context, id string, from, to models.BookingStatus, at time.Time) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if b.Status != from {
		return nil, repository.ErrStaleWrite
	}
	b.Status = to
	b.UpdatedAt = at
	c := *b
	return &c, nil
}

func (r *BookingRepo) UpdateDetails(_ context.Context, id, customerID, address, notes string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if b.CustomerID != customerID || b.Status != models.StatusPending {
		return nil, repository.ErrStaleWrite
	}
	b.Address = address
	b.Notes = notes
	b.UpdatedAt = time.Now().UTC()
	c := *b
	return &c, nil
}

func (r *BookingRepo) StatsByWorker(_ context.Context, workerID string) ([]models.StatusCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	groups := make(map[models.BookingStatus]*models.StatusCount)
	for _, b := range r.byID {
		if b.WorkerID != workerID {
			continue
		}
		g, ok := groups[b.Status]
		if !ok {
			g = &models.StatusCount{Status: b.Status}
			groups[b.Status] = g
		}
		g.Count++
		g.Amount += b.Price
	}

	rows := make([]models.StatusCount, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, *g)
	}
	return rows, nil
}
