package booking

import "urbanset/models"

// TransitionPolicy decides which status changes a booking may take.
// Same-status updates never reach the policy.
type TransitionPolicy interface {
	Allows(from, to models.BookingStatus) bool
	Name() string
}

// StrictTransitions moves bookings forward only; completed is terminal.
type StrictTransitions struct{}

var forward = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCompleted},
	models.StatusConfirmed: {models.StatusCompleted},
}

func (StrictTransitions) Allows(from, to models.BookingStatus) bool {
	for _, next := range forward[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (StrictTransitions) Name() string { return "strict" }

// PermissiveTransitions allows any known status to move to any other.
type PermissiveTransitions struct{}

func (PermissiveTransitions) Allows(from, to models.BookingStatus) bool {
	_, okFrom := models.ParseBookingStatus(string(from))
	_, okTo := models.ParseBookingStatus(string(to))
	return okFrom && okTo
}

func (PermissiveTransitions) Name() string { return "permissive" }

// PolicyFor returns the policy selected by BOOKING_STRICT_TRANSITIONS.
func PolicyFor(strict bool) TransitionPolicy {
	if strict {
		return StrictTransitions{}
	}
	return PermissiveTransitions{}
}
