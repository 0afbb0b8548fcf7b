// File: flynext/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flynext/config"
	"flynext/cron"
	"flynext/database"
	bookingRepo "flynext/database/repository/booking"
	hotelRepo "flynext/database/repository/hotel"
	locationRepo "flynext/database/repository/location"
	notificationRepo "flynext/database/repository/notification"
	userRepoPkg "flynext/database/repository/user"
	"flynext/handlers"
	"flynext/middleware"
	"flynext/routes"
	"flynext/services/booking"
	"flynext/services/flights"
	"flynext/services/hotel"
	"flynext/services/location"
	"flynext/services/notification"
	"flynext/services/payment"
	"flynext/services/storage"
	"flynext/services/user"
	"flynext/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	database.InitDB()
	utils.InitCache()
	utils.StartHealthMonitor(ctx, 30*time.Second, utils.GetCacheClient(), database.MongoClient)

	if err := utils.FirebaseInit(config.AppConfig.FirebaseCredentials); err != nil {
		logger.Warn("main: firebase disabled", zap.Error(err))
	}

	var gateway payment.PaymentGateway = payment.SimulatedGateway{}
	if config.AppConfig.StripeKey != "" {
		stripe.Key = config.AppConfig.StripeKey
		gateway = payment.StripeGateway{}
		logger.Info("main: using Stripe payment gateway")
	}

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	hotels := hotelRepo.NewMongoHotelRepo()
	rooms := hotelRepo.NewMongoRoomRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	payments := bookingRepo.NewMongoPaymentRepo()
	notifications := notificationRepo.NewMongoNotificationRepo()
	locations := locationRepo.NewMongoLocationRepo()

	queue := asynq.NewClient(cron.QueueRedisOpt())
	defer queue.Close()

	// services.
	userService := &user.DefaultUserService{
		Repo:       userRepo,
		SaltRounds: config.AppConfig.SaltRounds,
	}

	notificationService := &notification.DefaultNotificationService{
		Repo:   notifications,
		Users:  userRepo,
		Badges: notification.NewRedisBadgeCache(utils.GetCacheClient(), config.AppConfig.BadgeCacheTTL),
		Queue:  queue,
		Logger: logger,
	}
	if utils.FCMClient != nil {
		notificationService.Pusher = &notification.FCMPusher{Client: utils.FCMClient}
	}

	afs := flights.NewAFSClient(config.AppConfig.AFSBaseURL, config.AppConfig.AFSAPIKey)
	if !afs.Configured() {
		logger.Warn("main: AFS_API_KEY not set; flight search and flight checkout are disabled")
	}

	hotelService := &hotel.DefaultHotelService{
		Hotels:    hotels,
		Rooms:     rooms,
		Bookings:  bookings,
		Locations: locations,
		Users:     userService,
	}

	bookingService := &booking.DefaultBookingService{
		Bookings: bookings,
		Payments: payments,
		Hotels:   hotels,
		Rooms:    rooms,
		Users:    userService,
		Flights:  afs,
		Gateway:  gateway,
		Notifier: notificationService,
		Queue:    queue,
		Logger:   logger,
	}

	store, err := storage.NewLocalStore(config.AppConfig.UploadDir)
	if err != nil {
		logger.Fatal("main: failed to prepare upload directory", zap.Error(err))
	}
	storageService := &storage.DefaultStorageService{Store: store, Logger: logger}
	if config.AppConfig.CloudinaryURL != "" {
		mirror, err := storage.NewCloudinaryMirror(config.AppConfig.CloudinaryURL)
		if err != nil {
			logger.Warn("main: cloudinary mirror disabled", zap.Error(err))
		} else {
			storageService.Mirror = mirror
		}
	}

	worker := cron.InitWorker(ctx, notificationService, bookings, logger)

	handlerBundle := handlers.NewHandlerBundle(handlers.Services{
		Users:         userService,
		Hotels:        hotelService,
		Bookings:      bookingService,
		Notifications: notificationService,
		Storage:       storageService,
		Locations:     &location.LocationService{Repo: locations},
		Flights:       &flights.SearchService{Provider: afs},
	})

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.Disconnect(shutdownCtx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
