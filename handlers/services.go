package handlers

import (
	"net/http"

	"urbanset/services/catalog"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the service categories customers browse.
type CatalogHandler struct {
	Catalog catalog.CatalogService
}

func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: svc}
}

func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.Catalog.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, services)
}

func (h *CatalogHandler) GetServiceHandler(c *gin.Context) {
	svc, err := h.Catalog.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, svc)
}
