package routes

import (
	"urbanset/handlers"
	"urbanset/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the booking ledger endpoints. Every route
// requires authentication; ownership is checked by the service.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookings := r.Group("/api/bookings")
	{
		bookings.Use(middleware.Authenticate(hb.Roles))
		bookings.POST("", hb.Bookings.CreateBookingHandler)
		bookings.GET("", hb.Bookings.ListMyBookingsHandler)
		bookings.GET("/:id", hb.Bookings.GetBookingHandler)
		bookings.PATCH("/:id", hb.Bookings.UpdateStatusHandler)
		bookings.PATCH("/:id/details", hb.Bookings.UpdateDetailsHandler)
	}
}
