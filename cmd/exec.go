package cmd

import (
	"log"
	"log/slog"
	"time"

	"court-booking/config"
	"court-booking/internal/handlers"
	"court-booking/internal/services"
	"court-booking/internal/store"
	"court-booking/monitoring"
	"court-booking/security"
	"court-booking/utils"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	pubnub "github.com/pubnub/go"

	_ "court-booking/migrations"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg)
	defer redisClient.Close()

	// Initialize PubNub
	pnConfig := pubnub.NewConfig()
	pnConfig.PublishKey = cfg.PubNubPublishKey
	pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
	pnConfig.SecretKey = cfg.PubNubSecretKey

	pn := pubnub.NewPubNub(pnConfig)

	// Initialize engine
	bookingStore := store.NewRedisStore(redisClient)
	notifier := services.NewPubNubNotifier(pn)

	var monitor *monitoring.Monitor
	if cfg.EnableMetrics {
		monitor = monitoring.NewMonitor()
	}

	bookingService := services.NewBookingService(
		bookingStore,
		handlers.NewCourtRecordResolver(app),
		handlers.NewUserRecordDirectory(app),
		notifier,
		monitor,
	)

	// Initialize handlers
	bookingHandler := handlers.NewBookingHandler(app, bookingService)
	adminHandler := handlers.NewAdminHandler(app, bookingService)
	rateLimiter := security.NewRateLimiter(redisClient)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Booking endpoints
		e.Router.GET("/api/v1/bookings", bookingHandler.GetMyBookings)
		e.Router.DELETE("/api/v1/bookings/{bookingId}", bookingHandler.CancelBooking)

		throttle := rateLimiter.Throttle(30, time.Minute)

		// Outdoor RSVP endpoints
		e.Router.POST("/api/v1/courts/{courtId}/rsvp", bookingHandler.CreateRSVP).
			BindFunc(throttle)
		e.Router.DELETE("/api/v1/courts/{courtId}/rsvp", bookingHandler.CancelRSVP)

		// Indoor slot endpoints
		e.Router.POST("/api/v1/courts/{courtId}/slots", bookingHandler.RequestSlot).
			BindFunc(throttle)
		e.Router.GET("/api/v1/courts/{courtId}/participants", bookingHandler.GetParticipants)
		e.Router.GET("/api/v1/courts/{courtId}/status", bookingHandler.GetMyStatus)

		// Admin endpoints
		e.Router.POST("/api/v1/admin/courts/{courtId}/move", adminHandler.MoveParticipant).
			Bind(apis.RequireSuperuserAuth())

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	slog.Info("Starting court booking server", "port", cfg.Port, "env", cfg.Environment)

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}
