package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/urbanoasis/venue-backend/internal/config"
	"github.com/urbanoasis/venue-backend/internal/database"
	"github.com/urbanoasis/venue-backend/internal/handlers"
	"github.com/urbanoasis/venue-backend/internal/middleware"
	"github.com/urbanoasis/venue-backend/internal/services"
	"github.com/urbanoasis/venue-backend/pkg/jwt"
	"github.com/urbanoasis/venue-backend/pkg/validator"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting UrbanOasis Venue Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize repositories
	orderRepo := database.NewOrderRepository(db)
	reservationRepo := database.NewReservationRepository(db)
	bookingRepo := database.NewEventBookingRepository(db)
	spaceRepo := database.NewEventSpaceRepository(db)
	planRepo := database.NewFitnessPlanRepository(db)
	membershipRepo := database.NewMembershipRepository(db)
	adminRepo := database.NewAdminUserRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	phoneValidator := validator.NewPhoneValidator()
	paymentService := services.NewPaystackService(&cfg.Payment, logger)
	transitionService := services.NewTransitionService(orderRepo, reservationRepo, bookingRepo, membershipRepo, logger)
	fitnessService := services.NewFitnessService(planRepo, logger)
	expirationService := services.NewExpirationService(orderRepo, bookingRepo, logger, cfg.Booking.PendingPaymentTTL)

	// Start cron jobs
	cronService := services.NewCronService(expirationService, cfg.Booking.ExpirationCron)
	if err := cronService.Start(); err != nil {
		logger.Fatalf("Failed to start cron service: %v", err)
	}

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(orderRepo, paymentService, transitionService)
	reservationHandler := handlers.NewReservationHandler(reservationRepo, transitionService, phoneValidator)
	bookingHandler := handlers.NewEventBookingHandler(bookingRepo, spaceRepo, paymentService, transitionService)
	fitnessHandler := handlers.NewFitnessHandler(planRepo, membershipRepo, fitnessService, paymentService, transitionService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	adminAuthHandler := handlers.NewAdminAuthHandler(adminRepo, jwtService)

	// Set up router
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(gin.Logger())
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": version})
	})

	v1 := router.Group("/api/v1")
	{
		// Public booking surface
		v1.POST("/orders", orderHandler.CreateOrder)
		v1.GET("/orders/:id", orderHandler.GetOrder)
		v1.POST("/reservations", reservationHandler.CreateReservation)
		v1.POST("/bookings", bookingHandler.CreateBooking)
		v1.GET("/event-spaces", bookingHandler.ListSpaces)
		v1.GET("/fitness-plans", fitnessHandler.ListPlans)
		v1.POST("/memberships", fitnessHandler.CreateMembership)

		// Payment gateway surface
		v1.POST("/payments/initialize", paymentHandler.InitializePayment)
		v1.GET("/payments/verify", paymentHandler.VerifyPayment)

		// Admin surface
		admin := v1.Group("/admin")
		admin.POST("/login", adminAuthHandler.Login)
		admin.POST("/refresh", adminAuthHandler.Refresh)

		protected := admin.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService), middleware.RequireAdmin())
		{
			protected.GET("/orders", orderHandler.ListOrders)
			protected.PATCH("/orders/:id", orderHandler.UpdateOrderStatus)
			protected.GET("/reservations", reservationHandler.ListReservations)
			protected.PATCH("/reservations/:id", reservationHandler.UpdateReservationStatus)
			protected.GET("/bookings", bookingHandler.ListBookings)
			protected.PATCH("/bookings/:id", bookingHandler.UpdateBooking)
			protected.GET("/memberships", fitnessHandler.ListMemberships)
			protected.PATCH("/memberships/:id/payment", fitnessHandler.ConfirmMembershipPayment)
			protected.POST("/fitness-plans", fitnessHandler.CreatePlan)
			protected.PUT("/fitness-plans/:id", fitnessHandler.UpdatePlan)
			protected.DELETE("/fitness-plans/:id", fitnessHandler.DeletePlan)
		}
	}

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Infof("Server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	cronService.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
