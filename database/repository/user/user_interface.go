package userRepo

import (
	"context"

	"urbanset/models"
)

// UserRepository defines methods for identity account data access.
type UserRepository interface {
	// Create inserts a new account; ErrDuplicate if the email is taken.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves an account by id; ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves an account by email; ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDs retrieves every listed account, skipping missing ids.
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// SetRole changes the account's role.
	SetRole(ctx context.Context, id, role string) error
	// Update applies the non-nil fields and returns the stored account.
	Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error)
}
