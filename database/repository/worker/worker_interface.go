package workerRepo

import (
	"context"

	"urbanset/models"
)

// WorkerRepository defines methods for worker profile data access.
type WorkerRepository interface {
	// Create inserts a new profile; ErrDuplicate if the owner already has one.
	Create(ctx context.Context, w *models.Worker) error
	// GetByID retrieves a profile by id; ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*models.Worker, error)
	// GetByOwner retrieves the profile owned by an identity; ErrNotFound if absent.
	GetByOwner(ctx context.Context, ownerID string) (*models.Worker, error)
	// GetByIDs retrieves every profile whose id is listed. Missing ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]models.Worker, error)
	// ListByServiceKey returns completed profiles whose skill keys contain key.
	ListByServiceKey(ctx context.Context, key string) ([]models.Worker, error)
	// Update overwrites the mutable profile fields of an existing profile.
	Update(ctx context.Context, w *models.Worker) error
	// UpdateServices replaces skills and price in one write and returns the result.
	UpdateServices(ctx context.Context, ownerID string, skills, keys []string, price float64) (*models.Worker, error)
	// UpdateRating stores the recomputed rating aggregate.
	UpdateRating(ctx context.Context, id string, rating float64, count int) error
	// SetRegistrationState moves a profile through the registration saga.
	SetRegistrationState(ctx context.Context, id string, state models.RegistrationState) error
}
