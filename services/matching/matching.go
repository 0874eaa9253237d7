package matching

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"urbanset/models"
	"urbanset/utils"
)

type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortRating    SortKey = "rating"
	SortPriceLow  SortKey = "priceLow"
	SortPriceHigh SortKey = "priceHigh"
)

// Filters narrow and order a category's workers. Zero values disable a filter.
type Filters struct {
	Query         string
	Place         string
	MinExperience int
	MinRating     float64
	MaxPrice      float64
	SortBy        SortKey
}

// WorkerFinder is the directory lookup the engine reads from.
type WorkerFinder interface {
	FindByService(ctx context.Context, category string) ([]models.Worker, error)
}

// MatchingService produces the customer-facing worker list for a category.
type MatchingService interface {
	Search(ctx context.Context, category string, f Filters) ([]models.Worker, error)
}

type DefaultMatchingService struct {
	Directory WorkerFinder
}

func NewDefaultMatchingService(directory WorkerFinder) *DefaultMatchingService {
	return &DefaultMatchingService{Directory: directory}
}

// Search fetches the category's workers, filters them and sorts by the
// requested key. Equal keys are ordered by worker id so repeated calls
// return the same sequence. An empty result is not an error.
func (s *DefaultMatchingService) Search(ctx context.Context, category string, f Filters) ([]models.Worker, error) {
	candidates, err := s.Directory.FindByService(ctx, category)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	place := strings.ToLower(strings.TrimSpace(f.Place))

	matched := make([]models.Worker, 0, len(candidates))
	for _, w := range candidates {
		if query != "" && !matchesQuery(&w, query) {
			continue
		}
		if place != "" && !strings.Contains(strings.ToLower(w.Location.City), place) {
			continue
		}
		if w.Experience < f.MinExperience {
			continue
		}
		if f.MinRating > 0 && w.Rating < f.MinRating {
			continue
		}
		if f.MaxPrice > 0 && w.Price > f.MaxPrice {
			continue
		}
		matched = append(matched, w)
	}

	less := primaryOrder(f.SortBy)
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := &matched[i], &matched[j]
		if before, decided := less(a, b); decided {
			return before
		}
		return a.ID < b.ID
	})
	return matched, nil
}

func matchesQuery(w *models.Worker, q string) bool {
	if strings.Contains(strings.ToLower(w.Name), q) || strings.Contains(strings.ToLower(w.Location.City), q) {
		return true
	}
	for _, s := range w.Skills {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// primaryOrder returns a comparison reporting (a before b, keys differ).
func primaryOrder(key SortKey) func(a, b *models.Worker) (bool, bool) {
	switch key {
	case SortRating:
		return func(a, b *models.Worker) (bool, bool) { return a.Rating > b.Rating, a.Rating != b.Rating }
	case SortPriceLow:
		return func(a, b *models.Worker) (bool, bool) { return a.Price < b.Price, a.Price != b.Price }
	case SortPriceHigh:
		return func(a, b *models.Worker) (bool, bool) { return a.Price > b.Price, a.Price != b.Price }
	default:
		return func(a, b *models.Worker) (bool, bool) {
			return a.Experience > b.Experience, a.Experience != b.Experience
		}
	}
}

// ParseSortKey accepts the four sort keys; empty means relevance.
func ParseSortKey(raw string) (SortKey, error) {
	switch k := SortKey(strings.TrimSpace(raw)); k {
	case "":
		return SortRelevance, nil
	case SortRelevance, SortRating, SortPriceLow, SortPriceHigh:
		return k, nil
	}
	return "", utils.NewValidationError("sortBy must be one of relevance, rating, priceLow, priceHigh")
}

// FiltersFromQuery parses search filters from query string values.
func FiltersFromQuery(get func(key string) string) (Filters, error) {
	f := Filters{
		Query: strings.TrimSpace(get("q")),
		Place: strings.TrimSpace(get("place")),
	}

	var err error
	if f.SortBy, err = ParseSortKey(get("sortBy")); err != nil {
		return f, err
	}
	if raw := strings.TrimSpace(get("minExperience")); raw != "" {
		f.MinExperience, err = strconv.Atoi(raw)
		if err != nil || f.MinExperience < 0 {
			return f, utils.NewValidationError("minExperience must be a non-negative whole number")
		}
	}
	if raw := strings.TrimSpace(get("minRating")); raw != "" {
		f.MinRating, err = strconv.ParseFloat(raw, 64)
		if err != nil || f.MinRating < 0 || f.MinRating > 5 {
			return f, utils.NewValidationError("minRating must be between 0 and 5")
		}
	}
	if raw := strings.TrimSpace(get("maxPrice")); raw != "" {
		f.MaxPrice, err = strconv.ParseFloat(raw, 64)
		if err != nil || !(f.MaxPrice > 0) {
			return f, utils.NewValidationError("maxPrice must be a positive number")
		}
	}
	return f, nil
}
