package routes

import (
	"net/http"
	"time"

	"urbanset/config"
	"urbanset/handlers"
	"urbanset/middleware"
	"urbanset/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", hb.Auth.RegisterUserHandler)
		authGroup.POST("/login", hb.Auth.LoginHandler)
	}

	users := r.Group("/api/users")
	{
		users.Use(middleware.Authenticate(hb.Roles))
		users.GET("/me", hb.Auth.MeHandler)
		users.PATCH("/me", hb.Auth.UpdateMeHandler)
	}
}

// RegisterWorkerRoutes registers worker directory, search, stats and
// feedback endpoints.
func RegisterWorkerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/workers")
	{
		// Public endpoints.
		api.GET("/id/:workerId", hb.Workers.GetWorkerByIDHandler)
		api.GET("/id/:workerId/feedback", hb.Feedback.WorkerFeedbackHandler)
		api.GET("/:category", hb.Search.SearchWorkersHandler)

		// Any signed-in identity may register as a worker.
		authed := api.Group("")
		authed.Use(middleware.Authenticate(hb.Roles))
		authed.POST("/register", hb.Workers.RegisterWorkerHandler)
		authed.GET("/id/:workerId/stats", hb.Earnings.WorkerStatsHandler)
		authed.GET("/id/:workerId/bookings", hb.Bookings.ListWorkerBookingsHandler)

		// Self-service endpoints for workers.
		me := api.Group("/me")
		me.Use(middleware.Authenticate(hb.Roles), middleware.RequireRole(models.RoleWorker))
		me.GET("", hb.Workers.GetOwnProfileHandler)
		me.PATCH("/profile", hb.Workers.UpdateOwnProfileHandler)
		me.GET("/services", hb.Workers.GetOwnServicesHandler)
		me.PATCH("/services", hb.Workers.UpdateOwnServicesHandler)
		me.GET("/bookings", hb.Bookings.ListOwnWorkerBookingsHandler)
		me.GET("/earnings", hb.Earnings.OwnEarningsHandler)
		me.GET("/dashboard", hb.Earnings.DashboardHandler)
		me.GET("/feedback", hb.Feedback.OwnFeedbackHandler)
	}
}

// RegisterFeedbackRoutes registers feedback submission.
func RegisterFeedbackRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	feedback := r.Group("/api/feedback")
	{
		feedback.Use(middleware.Authenticate(hb.Roles))
		feedback.POST("", hb.Feedback.SubmitFeedbackHandler)
	}
}

// RegisterCatalogRoutes registers the public service catalog.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	services := r.Group("/api/services")
	{
		services.GET("", hb.Catalog.ListServicesHandler)
		services.GET("/:slug", hb.Catalog.GetServiceHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.Health == nil {
		r.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok"})
		})
		return
	}
	r.GET("/health", hb.Health.HealthHandler)
}

func corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	origins := config.AllowedOrigins()
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(corsConfig()))

	RegisterAuthRoutes(r, hb)
	RegisterWorkerRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterFeedbackRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
