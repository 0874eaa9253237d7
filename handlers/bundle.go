package handlers

import (
	"urbanset/middleware"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Roles resolves the caller's current role for authenticated routes.
	Roles middleware.RoleResolver

	Auth     *AuthHandler
	Workers  *WorkerHandler
	Search   *SearchHandler
	Bookings *BookingHandler
	Earnings *EarningsHandler
	Feedback *FeedbackHandler
	Catalog  *CatalogHandler
	Health   *HealthHandler
}
