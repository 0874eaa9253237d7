package handlers

import (
	"net/http"

	"urbanset/services/earnings"

	"github.com/gin-gonic/gin"
)

// EarningsHandler serves worker statistics and earnings.
type EarningsHandler struct {
	Aggregation earnings.AggregationService
}

func NewEarningsHandler(svc earnings.AggregationService) *EarningsHandler {
	return &EarningsHandler{Aggregation: svc}
}

func (h *EarningsHandler) WorkerStatsHandler(c *gin.Context) {
	stats, err := h.Aggregation.ComputeBookingStats(c.Request.Context(), c.Param("workerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, stats)
}

func (h *EarningsHandler) OwnEarningsHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	ledger, err := h.Aggregation.OwnEarnings(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, ledger)
}

func (h *EarningsHandler) DashboardHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	d, err := h.Aggregation.Dashboard(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, d)
}
