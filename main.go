package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taxline/config"
	"taxline/database"
	taxrecordRepo "taxline/database/repository/taxrecord"
	"taxline/handlers"
	"taxline/middleware"
	"taxline/routes"
	"taxline/services/agent"
	calendarRepo "taxline/services/calendar"
	"taxline/services/identity"
	"taxline/services/scheduling"
	"taxline/services/search"
	"taxline/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	location, err := time.LoadLocation(config.AppConfig.BusinessTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid business timezone %q: %v", config.AppConfig.BusinessTimezone, err)
	}

	ctx := context.Background()
	googleCalendar, err := calendarRepo.NewGoogleCalendarRepo(
		ctx,
		config.AppConfig.GoogleServiceAccountFile,
		config.AppConfig.CalendarID,
		config.AppConfig.BusinessTimezone,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar: %v", err)
	}

	gemini, err := agent.NewGeminiClient(ctx, config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	recordsRepo := taxrecordRepo.NewMongoTaxRecordRepo()
	sessionStore := agent.NewRedisSessionStore(utils.GetSessionCacheClient(), 30*time.Minute)

	// Services.
	identityService := &identity.DefaultIdentityService{
		Records: recordsRepo,
	}
	schedulingService := &scheduling.DefaultSchedulingService{
		Calendar: googleCalendar,
		Location: location,
	}
	searchService := search.NewTavilyClient(
		config.AppConfig.TavilyAPIKey,
		&http.Client{Timeout: 10 * time.Second},
	)
	agentService := &agent.DefaultAgentService{
		Gemini:    gemini,
		Identity:  identityService,
		Records:   recordsRepo,
		Scheduler: schedulingService,
		Search:    searchService,
		Sessions:  sessionStore,
		Location:  location,
	}

	sessionHandler := handlers.NewSessionHandler(sessionStore, identityService)
	chatHandler := handlers.NewChatHandler(agentService)
	bookingHandler := handlers.NewBookingHandler(schedulingService)
	adminHandler := handlers.NewAdminHandler(recordsRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		OpenSession:    sessionHandler.OpenSessionHandler,
		VerifyIdentity: sessionHandler.VerifyIdentityHandler,

		Chat:       chatHandler.HandleChat,
		Transcribe: handlers.TranscribeHandler,

		CreateBooking:     bookingHandler.CreateBookingHandler,
		ListBookings:      bookingHandler.ListBookingsHandler,
		CancelBooking:     bookingHandler.CancelBookingHandler,
		RescheduleBooking: bookingHandler.RescheduleBookingHandler,

		ImportTaxRecords: adminHandler.ImportTaxRecordsHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, sessionStore)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
