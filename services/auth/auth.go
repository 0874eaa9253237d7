package auth

import (
	"context"
	"errors"
	"strings"

	"urbanset/database/repository"
	"urbanset/models"
	"urbanset/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a "user" account and signs the caller in.
func (s *DefaultAuthService) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.City = strings.TrimSpace(in.City)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewUnexpectedError("could not secure password", err)
	}

	now := s.Now().UTC()
	user := &models.User{
		ID:           models.NewID(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		City:         in.City,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.NewConflictError("an account with email %s already exists", in.Email)
		}
		return nil, utils.NewUnexpectedError("could not create account", err)
	}

	utils.GetLogger().Info("account registered", zap.String("userId", user.ID))
	return s.issue(user)
}

// Login checks the password and returns a fresh token.
func (s *DefaultAuthService) Login(ctx context.Context, in LoginInput) (*AuthResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	user, err := s.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewUnauthenticatedError("invalid email or password")
		}
		return nil, utils.NewUnexpectedError("authentication failed, please try again", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, utils.NewUnauthenticatedError("invalid email or password")
	}
	return s.issue(user)
}

func (s *DefaultAuthService) issue(user *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, user.Role, s.TokenTTL)
	if err != nil {
		return nil, utils.NewUnexpectedError("could not issue token", err)
	}
	return &AuthResponse{Token: token, User: user}, nil
}

func (s *DefaultAuthService) Me(ctx context.Context, p models.Principal) (*models.User, error) {
	user, err := s.Users.GetByID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("account not found")
		}
		return nil, utils.NewUnexpectedError("could not load account", err)
	}
	return user, nil
}

func (s *DefaultAuthService) UpdateMe(ctx context.Context, p models.Principal, in UpdateMeInput) (*models.User, error) {
	if in.Name == nil && in.City == nil {
		return nil, utils.NewValidationError("nothing to update: provide name or city")
	}
	var upd models.UserUpdate
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, utils.NewValidationError("name must not be empty")
		}
		upd.Name = &name
		in.Name = &name
	}
	if in.City != nil {
		city := strings.TrimSpace(*in.City)
		upd.City = &city
		in.City = &city
	}
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	user, err := s.Users.Update(ctx, p.ID, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("account not found")
		}
		return nil, utils.NewUnexpectedError("could not update account", err)
	}
	utils.GetLogger().Info("account updated", zap.String("userId", user.ID))
	return user, nil
}

func (s *DefaultAuthService) SetRole(ctx context.Context, identityID, role string) error {
	if role != models.RoleUser && role != models.RoleWorker {
		return utils.NewValidationError("unknown role %q", role)
	}
	if err := s.Users.SetRole(ctx, identityID, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NewNotFoundError("account %s not found", identityID)
		}
		return utils.NewUnexpectedError("could not update role", err)
	}
	if s.Cache != nil {
		if err := s.Cache.SetRole(ctx, identityID, role); err != nil {
			return utils.NewUnexpectedError("could not cache new role", err)
		}
	}
	return nil
}

// ResolveRole reads the cache first and falls back to the account record.
// A missing account means the token no longer maps to an identity.
func (s *DefaultAuthService) ResolveRole(ctx context.Context, identityID string) (string, error) {
	logger := utils.GetLogger()
	if s.Cache != nil {
		role, err := s.Cache.GetRole(ctx, identityID)
		if err != nil {
			logger.Warn("role cache read failed", zap.String("identityId", identityID), zap.Error(err))
		} else if role != "" {
			return role, nil
		}
	}

	user, err := s.Users.GetByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", utils.NewUnauthenticatedError("account no longer exists")
		}
		return "", utils.NewUnexpectedError("could not resolve role", err)
	}

	if s.Cache != nil {
		if err := s.Cache.FillRole(ctx, identityID, user.Role); err != nil {
			logger.Warn("role cache write failed", zap.String("identityId", identityID), zap.Error(err))
		}
	}
	return user.Role, nil
}
