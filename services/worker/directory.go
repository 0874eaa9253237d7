package worker

import (
	"context"
	"errors"

	"urbanset/database/repository"
	"urbanset/models"
	"urbanset/utils"
)

// FindByOwner returns the single profile owned by the identity.
func (s *DefaultDirectoryService) FindByOwner(ctx context.Context, identityID string) (*models.Worker, error) {
	w, err := s.Repo.GetByOwner(ctx, identityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("worker profile not found")
		}
		return nil, utils.NewUnexpectedError("could not load worker profile", err)
	}
	return w, nil
}

func (s *DefaultDirectoryService) FindByID(ctx context.Context, workerID string) (*models.Worker, error) {
	id, err := models.ParseID(workerID)
	if err != nil {
		return nil, utils.NewValidationError("workerId is not a valid identifier")
	}
	w, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("worker %s not found", id)
		}
		return nil, utils.NewUnexpectedError("could not load worker profile", err)
	}
	return w, nil
}

// FindByService returns every registered worker offering the category.
// Matching ignores case, surrounding whitespace and hyphen/underscore/space
// differences ("Home Cleaning" matches "home-cleaning").
func (s *DefaultDirectoryService) FindByService(ctx context.Context, category string) ([]models.Worker, error) {
	key := models.NormalizeSkill(category)
	if key == "" {
		return nil, utils.NewValidationError("category is required")
	}
	workers, err := s.Repo.ListByServiceKey(ctx, key)
	if err != nil {
		return nil, utils.NewUnexpectedError("could not list workers", err)
	}
	return workers, nil
}

func (s *DefaultDirectoryService) GetServices(ctx context.Context, identityID string) (*models.WorkerServices, error) {
	w, err := s.FindByOwner(ctx, identityID)
	if err != nil {
		return nil, err
	}
	return &models.WorkerServices{Skills: w.Skills, Price: w.Price}, nil
}

// UpdateSkillsAndPrice replaces the skills set and price in a single write.
func (s *DefaultDirectoryService) UpdateSkillsAndPrice(ctx context.Context, identityID string, skills []string, price float64) (*models.Worker, error) {
	display, keys := models.NormalizeSkills(skills)
	if len(display) == 0 {
		return nil, utils.NewValidationError("at least one skill is required")
	}
	if !validPrice(price) {
		return nil, utils.NewValidationError("price must be a positive number")
	}

	w, err := s.Repo.UpdateServices(ctx, identityID, display, keys, price)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("worker profile not found")
		}
		return nil, utils.NewUnexpectedError("could not update services", err)
	}
	return w, nil
}
