// Package memory holds in-process implementations of every repository.
// They back tests and the STORE_DRIVER=memory mode.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"urbanset/database/repository"
	"urbanset/models"
)

type WorkerRepo struct {
	mu      sync.RWMutex
	byID    map[string]*models.Worker
	byOwner map[string]string
}

func NewWorkerRepo() *WorkerRepo {
	return &WorkerRepo{
		byID:    make(map[string]*models.Worker),
		byOwner: make(map[string]string),
	}
}

func copyWorker(w *models.Worker) *models.Worker {
	c := *w
	c.Skills = append([]string(nil), w.Skills...)
	c.SkillKeys = append([]string(nil), w.SkillKeys...)
	c.Availability = append([]string(nil), w.Availability...)
	if w.Location.Geo != nil {
		geo := *w.Location.Geo
		geo.Coordinates = append([]float64(nil), w.Location.Geo.Coordinates...)
		c.Location.Geo = &geo
	}
	return &c
}

func (r *WorkerRepo) Create(_ context.Context, w *models.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[w.ID]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := r.byOwner[w.OwnerID]; ok {
		return repository.ErrDuplicate
	}
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
	r.byID[w.ID] = copyWorker(w)
	r.byOwner[w.OwnerID] = w.ID
	return nil
}

func (r *WorkerRepo) GetByID(_ context.Context, id string) (*models.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyWorker(w), nil
}

func (r *WorkerRepo) GetByOwner(_ context.Context, ownerID string) (*models.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byOwner[ownerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyWorker(r.byID[id]), nil
}

func (r *WorkerRepo) GetByIDs(_ context.Context, ids []string) ([]models.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Worker{}
	for _, id := range ids {
		if w, ok := r.byID[id]; ok {
			out = append(out, *copyWorker(w))
		}
	}
	return out, nil
}

func (r *WorkerRepo) ListByServiceKey(_ context.Context, key string) ([]models.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Worker{}
	for _, w := range r.byID {
		if w.RegistrationState == models.RegistrationComplete && w.HasSkill(key) {
			out = append(out, *copyWorker(w))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *WorkerRepo) Update(_ context.Context, w *models.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[w.ID]
	if !ok {
		return repository.ErrNotFound
	}
	next := copyWorker(w)
	// Identity, rating and saga state are owned by other writes.
	next.OwnerID = cur.OwnerID
	next.Rating = cur.Rating
	next.ReviewCount = cur.ReviewCount
	next.Verified = cur.Verified
	next.RegistrationState = cur.RegistrationState
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = time.Now().UTC()
	w.UpdatedAt = next.UpdatedAt
	r.byID[w.ID] = next
	return nil
}

func (r *WorkerRepo) UpdateServices(_ context.Context, ownerID string, skills, keys []string, price float64) (*models.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byOwner[ownerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	w := r.byID[id]
	w.Skills = append([]string(nil), skills...)
	w.SkillKeys = append([]string(nil), keys...)
	w.Price = price
	w.UpdatedAt = time.Now().UTC()
	return copyWorker(w), nil
}

func (r *WorkerRepo) UpdateRating(_ context.Context, id string, rating float64, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	w.Rating = rating
	w.ReviewCount = count
	w.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *WorkerRepo) SetRegistrationState(_ context.Context, id string, state models.RegistrationState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	w.RegistrationState = state
	w.UpdatedAt = time.Now().UTC()
	return nil
}
