package auth

import (
	"context"
	"time"

	userRepo "urbanset/database/repository/user"
	"urbanset/models"
)

// AuthService manages identity accounts and the role carried by each one.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, in LoginInput) (*AuthResponse, error)
	Me(ctx context.Context, p models.Principal) (*models.User, error)
	// UpdateMe edits the caller's display name and city.
	UpdateMe(ctx context.Context, p models.Principal, in UpdateMeInput) (*models.User, error)
	// SetRole flips an identity's role and caches the new one.
	SetRole(ctx context.Context, identityID, role string) error
	// ResolveRole returns the identity's current role, preferring the cache.
	ResolveRole(ctx context.Context, identityID string) (string, error)
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	City     string `json:"city" validate:"max=100"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateMeInput lists the editable account fields; omitted fields keep
// their stored value and an empty city clears it.
type UpdateMeInput struct {
	Name *string `json:"name" validate:"omitempty,max=100"`
	City *string `json:"city" validate:"omitempty,max=100"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// DefaultAuthService is the production implementation. Cache is optional.
type DefaultAuthService struct {
	Users    userRepo.UserRepository
	Cache    RoleCache
	TokenTTL time.Duration
	Now      func() time.Time
}

func NewDefaultAuthService(users userRepo.UserRepository, cache RoleCache, tokenTTL time.Duration) *DefaultAuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &DefaultAuthService{Users: users, Cache: cache, TokenTTL: tokenTTL, Now: time.Now}
}
