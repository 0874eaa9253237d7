package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"urbanset/config"
	"urbanset/cron"
	"urbanset/database"
	"urbanset/database/repository/store"
	"urbanset/handlers"
	"urbanset/middleware"
	"urbanset/routes"
	"urbanset/services/auth"
	"urbanset/services/booking"
	"urbanset/services/catalog"
	"urbanset/services/earnings"
	"urbanset/services/feedback"
	"urbanset/services/matching"
	"urbanset/services/storage"
	"urbanset/services/tasks"
	"urbanset/services/worker"
	"urbanset/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	checks := map[string]utils.HealthCheck{}

	// Persistence.
	if config.AppConfig.StoreDriver != "memory" {
		database.InitDB()
		checks["mongo"] = database.Ping
	}
	st, err := store.New(config.AppConfig.StoreDriver)
	if err != nil {
		logger.Fatal("main: failed to build store", zap.Error(err))
	}

	// Redis caches.
	utils.InitCache()
	utils.InitAuthCache()
	checks["redis"] = func(ctx context.Context) error { return utils.GetCacheClient().Ping(ctx).Err() }
	roleCache := auth.NewRedisRoleCache(utils.GetAuthCacheClient(), config.AppConfig.AuthCacheTTL)
	statsCache := earnings.NewRedisStatsCache(utils.GetCacheClient(), config.AppConfig.StatsCacheTTL)

	fileStore, err := storage.NewFileStore(context.Background(), config.AppConfig)
	if err != nil {
		logger.Fatal("main: failed to initialize file storage", zap.Error(err))
	}

	// Background queue.
	queueClient := asynq.NewClient(tasks.RedisClientOpt())
	defer queueClient.Close()

	// services.
	authService := auth.NewDefaultAuthService(st.Users, roleCache, config.AppConfig.TokenTTL)
	directoryService := worker.NewDefaultDirectoryService(st.Workers, authService, fileStore, config.AppConfig.CloudinaryFolder)
	matchingService := matching.NewDefaultMatchingService(directoryService)
	bookingService := booking.NewDefaultBookingService(
		st.Bookings,
		st.Workers,
		st.Users,
		booking.PolicyFor(config.AppConfig.BookingStrictTransitions),
		statsCache,
	)
	aggregationService := earnings.NewDefaultAggregationService(st.Workers, st.Bookings, st.Feedback, statsCache)
	feedbackService := feedback.NewDefaultFeedbackService(st.Feedback, st.Workers, st.Users, tasks.NewRatingScheduler(queueClient))
	catalogService := catalog.NewDefaultCatalogService(st.Catalog)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := catalogService.Seed(seedCtx, catalog.DefaultCategories); err != nil {
		logger.Error("main: failed to seed service catalog", zap.Error(err))
	}
	cancelSeed()

	ratingWorker := cron.NewRatingWorker(feedbackService)
	ratingWorker.Start()

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	utils.StartHealthMonitor(monitorCtx, checks, 30*time.Second)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Roles:    authService,
		Auth:     handlers.NewAuthHandler(authService),
		Workers:  handlers.NewWorkerHandler(directoryService, config.AppConfig.UploadMaxBytes),
		Search:   handlers.NewSearchHandler(matchingService),
		Bookings: handlers.NewBookingHandler(bookingService),
		Earnings: handlers.NewEarningsHandler(aggregationService),
		Feedback: handlers.NewFeedbackHandler(feedbackService),
		Catalog:  handlers.NewCatalogHandler(catalogService),
		Health:   handlers.NewHealthHandler(checks),
	}

	// Create the Gin router.
	router := gin.New()
	router.MaxMultipartMemory = config.AppConfig.UploadMaxBytes * 3
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	stopMonitor()
	ratingWorker.Shutdown()
	utils.CloseCaches()
	if config.AppConfig.StoreDriver != "memory" {
		if err := database.CloseDB(ctx); err != nil {
			logger.Error("main: failed to close database", zap.Error(err))
		}
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
