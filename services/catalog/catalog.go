package catalog

import (
	"context"
	"errors"
	"strings"

	"urbanset/database/repository"
	catalogRepo "urbanset/database/repository/catalog"
	"urbanset/models"
	"urbanset/utils"

	"go.uber.org/zap"
)

// CatalogService exposes the browsable service categories.
type CatalogService interface {
	List(ctx context.Context) ([]models.Service, error)
	GetBySlug(ctx context.Context, slug string) (*models.Service, error)
	// Seed upserts each category by slug. Slugs that collide with the fixed
	// /api/workers segments are rejected.
	Seed(ctx context.Context, services []models.Service) error
}

type DefaultCatalogService struct {
	Repo catalogRepo.CatalogRepository
}

func NewDefaultCatalogService(repo catalogRepo.CatalogRepository) *DefaultCatalogService {
	return &DefaultCatalogService{Repo: repo}
}

// reservedSlugs are path segments under /api/workers that would shadow a
// category search.
var reservedSlugs = map[string]bool{"me": true, "id": true, "register": true}

// DefaultCategories is the catalog a fresh deployment starts with.
var DefaultCategories = []models.Service{
	{Name: "Electrician", Slug: "electrician", Description: "Wiring, repairs and electrical installations."},
	{Name: "House Cleaning", Slug: "house-cleaning", Description: "Professional cleaning for homes and offices."},
	{Name: "Carpenter", Slug: "carpenter", Description: "Furniture repair, assembly and custom woodwork."},
	{Name: "Painter", Slug: "painter", Description: "Interior and exterior painting."},
	{Name: "Plumber", Slug: "plumber", Description: "Leak fixes, installations and plumbing work."},
	{Name: "Dancer", Slug: "dancer", Description: "Classical, hip-hop and freestyle lessons."},
	{Name: "Maids", Slug: "maids", Description: "Deep cleaning, dusting and mopping."},
	{Name: "AC Repairers", Slug: "ac-repairers", Description: "Filter cleaning, thermostat checks and gas refill."},
	{Name: "Fridge Repairer", Slug: "fridge-repairer", Description: "Cooling issues and faulty part replacement."},
	{Name: "Cooks", Slug: "cooks", Description: "Hygienic home-cooked meals."},
	{Name: "Beauticians", Slug: "beauticians", Description: "Hair, skin and makeup treatments."},
	{Name: "Tailors", Slug: "tailors", Description: "Alterations, custom fits and stitching."},
	{Name: "RO Technicians", Slug: "ro-technicians", Description: "Water purifier installation and repair."},
	{Name: "Tutors", Slug: "tutors", Description: "Personalized lessons for students."},
	{Name: "Decorators", Slug: "decorators", Description: "Event and space decoration."},
}

func (s *DefaultCatalogService) List(ctx context.Context) ([]models.Service, error) {
	services, err := s.Repo.List(ctx)
	if err != nil {
		return nil, utils.NewUnexpectedError("could not list services", err)
	}
	if services == nil {
		services = []models.Service{}
	}
	return services, nil
}

func (s *DefaultCatalogService) GetBySlug(ctx context.Context, slug string) (*models.Service, error) {
	key := models.NormalizeSkill(slug)
	if key == "" {
		return nil, utils.NewValidationError("service slug is required")
	}
	svc, err := s.Repo.GetBySlug(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("service %s not found", key)
		}
		return nil, utils.NewUnexpectedError("could not load service", err)
	}
	return svc, nil
}

func (s *DefaultCatalogService) Seed(ctx context.Context, services []models.Service) error {
	prepared := make([]models.Service, 0, len(services))
	for _, svc := range services {
		svc.Name = strings.TrimSpace(svc.Name)
		svc.Slug = models.NormalizeSkill(svc.Slug)
		if svc.Slug == "" {
			svc.Slug = models.NormalizeSkill(svc.Name)
		}
		if svc.Slug == "" {
			return utils.NewValidationError("service %q needs a name or slug", svc.Name)
		}
		if reservedSlugs[svc.Slug] {
			return utils.NewValidationError("service slug %q is reserved", svc.Slug)
		}
		if svc.ID == "" {
			svc.ID = models.NewID()
		}
		prepared = append(prepared, svc)
	}

	for i := range prepared {
		if err := s.Repo.Upsert(ctx, &prepared[i]); err != nil {
			return utils.NewUnexpectedError("could not seed service "+prepared[i].Slug, err)
		}
	}
	utils.GetLogger().Info("service catalog seeded", zap.Int("count", len(prepared)))
	return nil
}
