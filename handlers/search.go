package handlers

import (
	"net/http"

	"urbanset/models"
	"urbanset/services/matching"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	Matching matching.MatchingService
}

func NewSearchHandler(svc matching.MatchingService) *SearchHandler {
	return &SearchHandler{Matching: svc}
}

type searchResult struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Workers  []models.Worker `json:"workers"`
}

// SearchWorkersHandler ranks the workers offering a category using the
// q, place, minExperience, minRating, maxPrice and sortBy query parameters.
func (h *SearchHandler) SearchWorkersHandler(c *gin.Context) {
	category := c.Param("category")
	filters, err := matching.FiltersFromQuery(c.Query)
	if err != nil {
		respondError(c, err)
		return
	}

	workers, err := h.Matching.Search(c.Request.Context(), category, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	if workers == nil {
		workers = []models.Worker{}
	}
	respondOK(c, http.StatusOK, searchResult{Category: category, Count: len(workers), Workers: workers})
}
