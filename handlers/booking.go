package handlers

import (
	"net/http"

	"urbanset/models"
	"urbanset/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the booking ledger endpoints.
type BookingHandler struct {
	Bookings booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: svc}
}

// CreateBookingHandler books a worker for the caller.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var in models.BookingInput
	if !bindJSON(c, &in) {
		return
	}
	b, err := h.Bookings.CreateBooking(c.Request.Context(), p, in)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Sugar().Infof("booking %s created for worker %s", b.ID, b.WorkerID)
	respondOK(c, http.StatusCreated, b)
}

// ListMyBookingsHandler lists the bookings the caller made as a customer.
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	views, err := h.Bookings.ListBookingsForCustomer(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, views)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	view, err := h.Bookings.GetBooking(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, view)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatusHandler moves a booking to a new status; only the owning
// worker may do this.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req updateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), p, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, b)
}

type updateDetailsRequest struct {
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// UpdateDetailsHandler lets the customer edit a pending booking's address
// and notes.
func (h *BookingHandler) UpdateDetailsHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req updateDetailsRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Bookings.UpdateDetails(c.Request.Context(), p, c.Param("id"), booking.DetailsInput{
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, b)
}

// ListOwnWorkerBookingsHandler lists bookings made with the caller's worker profile.
func (h *BookingHandler) ListOwnWorkerBookingsHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	views, err := h.Bookings.ListOwnWorkerBookings(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, views)
}

func (h *BookingHandler) ListWorkerBookingsHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	views, err := h.Bookings.ListBookingsForWorker(c.Request.Context(), p, c.Param("workerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, views)
}
