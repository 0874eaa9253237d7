package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"urbanset/database/repository"
	"urbanset/models"
)

type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if _, ok := r.byID[user.ID]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return repository.ErrDuplicate
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	c := *user
	r.byID[user.ID] = &c
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepo) GetByIDs(_ context.Context, ids []string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.User{}
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			c := *u
			c.PasswordHash = ""
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *UserRepo) SetRole(_ context.Context, id, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepo) Update(_ context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.City != nil {
		u.City = *upd.City
	}
	u.UpdatedAt = time.Now().UTC()
	c := *u
	return &c, nil
}
