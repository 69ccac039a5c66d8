package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FlareMindsTech/righttouch-backend/config"
	"github.com/FlareMindsTech/righttouch-backend/cron"
	"github.com/FlareMindsTech/righttouch-backend/database"
	bookingRepoPkg "github.com/FlareMindsTech/righttouch-backend/database/repository/booking"
	offerRepoPkg "github.com/FlareMindsTech/righttouch-backend/database/repository/offer"
	profileRepoPkg "github.com/FlareMindsTech/righttouch-backend/database/repository/profile"
	serviceRepoPkg "github.com/FlareMindsTech/righttouch-backend/database/repository/service"
	technicianRepoPkg "github.com/FlareMindsTech/righttouch-backend/database/repository/technician"
	"github.com/FlareMindsTech/righttouch-backend/handlers"
	"github.com/FlareMindsTech/righttouch-backend/middleware"
	"github.com/FlareMindsTech/righttouch-backend/routes"
	bookingSvc "github.com/FlareMindsTech/righttouch-backend/services/booking"
	"github.com/FlareMindsTech/righttouch-backend/services/dispatch"
	"github.com/FlareMindsTech/righttouch-backend/services/notification"
	"github.com/FlareMindsTech/righttouch-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	ctx := context.Background()
	client, err := database.Connect(ctx, config.AppConfig.DatabaseURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(shutdownCtx); err != nil {
			logger.Warn("failed to disconnect MongoDB cleanly")
		}
	}()
	db := client.Database(config.AppConfig.DatabaseName)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo(db)
	offerRepo := offerRepoPkg.NewMongoOfferRepo(db)
	techRepo := technicianRepoPkg.NewMongoTechnicianRepo(db)
	svcRepo := serviceRepoPkg.NewCachedServiceRepo(
		serviceRepoPkg.NewMongoServiceRepo(db), utils.GetCacheClient())

	// Offer-created pushes are best effort; without Firebase credentials the
	// core still runs, events are just dropped.
	var notifier notification.Service = notification.NoopService{}
	if path := config.AppConfig.FirebaseCredentialsFile; path != "" {
		fcmClient, err := utils.NewMessagingClient(ctx, path)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize firebase messaging: %v", err)
		}
		notifier = notification.NewFCMService(fcmClient, techRepo)
	}

	// services.
	matcher := &dispatch.DefaultMatcherService{
		TechRepo:      techRepo,
		RadiusMeters:  config.AppConfig.BroadcastRadiusMeters,
		MaxCandidates: config.AppConfig.BroadcastMaxCandidates,
		Logger:        logger,
	}
	fanout := &dispatch.DefaultFanoutService{
		OfferRepo:    offerRepo,
		Notification: notifier,
		Logger:       logger,
	}
	resolver := &dispatch.DefaultResolverService{
		Bookings: bookingRepo,
		Offers:   offerRepo,
		Tx:       database.NewMongoTxRunner(client),
		Logger:   logger,
	}
	feed := &dispatch.DefaultFeedService{
		Offers:   offerRepo,
		Bookings: bookingRepo,
		Services: svcRepo,
	}
	bookingService := &bookingSvc.DefaultBookingService{
		Repo:     bookingRepo,
		Services: svcRepo,
		Matcher:  matcher,
		Fanout:   fanout,
		Logger:   logger,
	}

	// handlers and routes. The auth middleware carries one profile
	// repository per role; the role variant is picked there, once.
	auth := middleware.AuthMiddleware(
		profileRepoPkg.NewCustomerProfileRepo(db),
		profileRepoPkg.NewTechnicianProfileRepo(db),
	)
	routes.RegisterBookingRoutes(router, auth, handlers.NewBookingHandler(bookingService, logger))
	routes.RegisterJobRoutes(router, auth, handlers.NewJobHandler(feed, resolver, bookingService, logger))
	routes.RegisterTechnicianRoutes(router, auth, handlers.NewTechnicianHandler(techRepo, logger))

	// Optional background sweep for stale offers.
	var expiry *cron.ExpiryWorker
	if config.AppConfig.BroadcastExpiryEnabled {
		expiry = cron.NewExpiryWorker(offerRepo, logger)
		if err := expiry.Start(); err != nil {
			logger.Sugar().Fatalf("main: failed to start expiry worker: %v", err)
		}
	}

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("listening on port %s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if expiry != nil {
		expiry.Shutdown()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
}
