package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sporthub/court-booking-backend/internal/config"
	"github.com/sporthub/court-booking-backend/internal/database"
	"github.com/sporthub/court-booking-backend/internal/handlers"
	"github.com/sporthub/court-booking-backend/internal/middleware"
	"github.com/sporthub/court-booking-backend/internal/models"
	"github.com/sporthub/court-booking-backend/internal/pricing"
	"github.com/sporthub/court-booking-backend/internal/schedule"
	"github.com/sporthub/court-booking-backend/internal/services"
	"github.com/sporthub/court-booking-backend/internal/utils"
	"github.com/sporthub/court-booking-backend/pkg/jwt"
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

	logger.Info("Starting SportHub Court Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

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

	logger.Info("Applying migrations...")
	if err := database.RunMigrations(cfg.Database.URL); err != nil {
		logger.Fatalf("Failed to apply migrations: %v", err)
	}
	logger.Info("Migrations up to date")

	loc := cfg.Location()

	// Initialize repositories
	courtRepo := database.NewCourtRepository(db)
	hoursRepo := database.NewOperatingHoursRepository(db)
	blockRepo := database.NewBlockRepository(db)
	ruleRepo := database.NewPricingRuleRepository(db)
	promoRepo := database.NewPromotionRepository(db)
	reservationRepo := database.NewReservationRepository(db)

	// Initialize services
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	defaultOpen, err := models.ParseClock(cfg.Booking.DefaultOpenTime)
	if err != nil {
		logger.Fatalf("Invalid BOOKING_DEFAULT_OPEN_TIME: %v", err)
	}
	defaultClose, err := models.ParseClock(cfg.Booking.DefaultCloseTime)
	if err != nil {
		logger.Fatalf("Invalid BOOKING_DEFAULT_CLOSE_TIME: %v", err)
	}
	defaultWindow := schedule.Window{OpenMinutes: defaultOpen, CloseMinutes: defaultClose}

	calculator := &pricing.Calculator{
		TaxRate:          cfg.Booking.TaxRate,
		PriceIncludesTax: cfg.Booking.PriceIncludesTax,
		Currency:         cfg.Booking.Currency,
	}

	authorizer := services.NewAuthorizer(courtRepo)
	availabilityService := services.NewAvailabilityService(
		courtRepo, hoursRepo, blockRepo, reservationRepo, ruleRepo, loc, defaultWindow)
	quoteService := services.NewQuoteService(courtRepo, ruleRepo, promoRepo, calculator, loc)
	reservationService := services.NewReservationService(courtRepo, reservationRepo, quoteService, authorizer)
	logger.Info("Services initialized")

	// Initialize handlers
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService, cfg.Booking.DefaultSlotMinutes)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	reservationHandler := handlers.NewReservationHandler(reservationService, loc)
	scheduleAdminHandler := handlers.NewScheduleAdminHandler(hoursRepo, blockRepo, courtRepo, authorizer, loc)
	pricingAdminHandler := handlers.NewPricingAdminHandler(ruleRepo, promoRepo, authorizer)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Availability and quotes (public)
		v1.GET("/availability", availabilityHandler.GetAvailability)
		v1.POST("/quotes", quoteHandler.CreateQuote)

		// Reservations (protected)
		reservations := v1.Group("/reservations")
		reservations.Use(middleware.AuthMiddleware(jwtService))
		{
			reservations.POST("", reservationHandler.CreateReservation)
			reservations.GET("/mine", reservationHandler.GetMyReservations)
			reservations.GET("/:id", reservationHandler.GetReservation)
			reservations.PATCH("/:id", reservationHandler.RescheduleReservation)
			reservations.POST("/:id/cancel", reservationHandler.CancelReservation)

			managed := reservations.Group("")
			managed.Use(middleware.RequireRole(
				middleware.RoleOwner, middleware.RoleAdmin, middleware.RoleSuperadmin))
			{
				managed.GET("", reservationHandler.ListReservations)
				managed.POST("/:id/confirm", reservationHandler.ConfirmReservation)
			}
		}

		// Facility administration (owner/admin)
		admin := v1.Group("")
		admin.Use(middleware.AuthMiddleware(jwtService))
		admin.Use(middleware.RequireRole(
			middleware.RoleOwner, middleware.RoleAdmin, middleware.RoleSuperadmin))
		{
			admin.POST("/operating-hours", scheduleAdminHandler.CreateOperatingHours)
			admin.PATCH("/operating-hours/:id", scheduleAdminHandler.UpdateOperatingHours)
			admin.DELETE("/operating-hours/:id", scheduleAdminHandler.DeleteOperatingHours)

			admin.POST("/blocks", scheduleAdminHandler.CreateBlock)
			admin.DELETE("/blocks/:id", scheduleAdminHandler.DeleteBlock)

			admin.POST("/pricing-rules", pricingAdminHandler.CreatePricingRule)
			admin.DELETE("/pricing-rules/:id", pricingAdminHandler.DeletePricingRule)

			admin.POST("/promotions", pricingAdminHandler.CreatePromotion)
			admin.DELETE("/promotions/:id", pricingAdminHandler.DeletePromotion)
		}
	}

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
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
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

// requestLogger logs each request with a generated request id and the
// parsed client device.
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		c.Next()

		device := utils.ParseUserAgent(c.Request.UserAgent())
		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"query":      c.Request.URL.RawQuery,
			"ip":         utils.GetRealIP(c),
			"latency_ms": time.Since(start).Milliseconds(),
			"device":     device.DeviceType,
			"platform":   device.Platform,
		}).Info("Request completed")
	}
}

// healthCheckHandler reports service and database health
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"version": version,
				"error":   "database unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
		})
	}
}
