package booking

import (
	"math"
	"strings"
	"time"

	"urbanset/models"
	"urbanset/utils"
)

const dateLayout = "2006-01-02"

type bookingRequest struct {
	WorkerID string  `json:"workerId" validate:"required"`
	Service  string  `json:"service" validate:"required,max=100"`
	Date     string  `json:"date" validate:"required"`
	Slot     string  `json:"slot" validate:"required,max=50"`
	Address  string  `json:"address" validate:"required,max=500"`
	Price    float64 `json:"price" validate:"gt=0"`
	Notes    string  `json:"notes" validate:"max=1000"`
}

// newBooking validates the input eagerly and builds a pending booking.
// Nothing is persisted here.
func newBooking(customerID string, in models.BookingInput, now time.Time) (*models.Booking, error) {
	req := bookingRequest{
		WorkerID: strings.TrimSpace(in.WorkerID),
		Service:  strings.TrimSpace(in.Service),
		Date:     strings.TrimSpace(in.Date),
		Slot:     strings.TrimSpace(in.Slot),
		Address:  strings.TrimSpace(in.Address),
		Price:    in.Price,
		Notes:    strings.TrimSpace(in.Notes),
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if math.IsInf(req.Price, 0) || math.IsNaN(req.Price) {
		return nil, utils.NewValidationError("price must be a positive number")
	}

	workerID, err := models.ParseID(req.WorkerID)
	if err != nil {
		return nil, utils.NewValidationError("workerId is not a valid identifier")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, utils.NewValidationError("date must be YYYY-MM-DD or RFC 3339")
	}

	return &models.Booking{
		ID:         models.NewID(),
		CustomerID: customerID,
		WorkerID:   workerID,
		Service:    req.Service,
		Date:       date,
		Slot:       req.Slot,
		Address:    req.Address,
		Price:      req.Price,
		Notes:      req.Notes,
		Status:     models.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
