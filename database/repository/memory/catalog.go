package memory

import (
	"context"
	"sort"
	"sync"

	"urbanset/database/repository"
	"urbanset/models"
)

type CatalogRepo struct {
	mu     sync.RWMutex
	bySlug map[string]models.Service
}

func NewCatalogRepo() *CatalogRepo {
	return &CatalogRepo{bySlug: make(map[string]models.Service)}
}

func (r *CatalogRepo) List(_ context.Context) ([]models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Service, 0, len(r.bySlug))
	for _, s := range r.bySlug {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CatalogRepo) GetBySlug(_ context.Context, slug string) (*models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.bySlug[slug]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *CatalogRepo) Upsert(_ context.Context, svc *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.bySlug[svc.Slug]; ok {
		svc.ID = cur.ID
	}
	r.bySlug[svc.Slug] = *svc
	return nil
}
