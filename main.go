package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scrapiz/config"
	"scrapiz/cron"
	"scrapiz/database"
	addressRepo "scrapiz/database/repository/address"
	bookingRepo "scrapiz/database/repository/booking"
	memoryRepo "scrapiz/database/repository/memory"
	profileRepo "scrapiz/database/repository/profile"
	"scrapiz/handlers"
	"scrapiz/middleware"
	"scrapiz/routes"
	"scrapiz/services/address"
	"scrapiz/services/admin"
	"scrapiz/services/booking"
	"scrapiz/services/notification"
	"scrapiz/services/profile"
	"scrapiz/services/storage"
	"scrapiz/services/tasks"
	"scrapiz/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	loc := config.Location()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := utils.NewMetrics(reg)

	var (
		addresses   addressRepo.AddressRepository
		bookings    bookingRepo.BookingRepository
		submissions bookingRepo.SubmissionRepository
		profiles    profileRepo.ProfileRepository
		drafts      booking.DraftStore
		denylist    utils.TokenDenylist
		photos      storage.PhotoStore
		reminders   tasks.ReminderScheduler = tasks.NopReminderScheduler{}
		worker      *cron.Worker
		queue       *asynq.Client
	)

	memoryMode := database.MemoryMode()
	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()

	if memoryMode {
		logger.Warn("DATABASE_URL selects the in-memory store; data is lost on restart")
		store := memoryRepo.NewStore()
		addresses = store.Addresses()
		bookings = store.Bookings()
		submissions = store.Bookings()
		profiles = store.Profiles()
		drafts = booking.NewMemoryDraftStore()
		denylist = utils.NewMemoryTokenDenylist()
		photos = storage.NewMemoryPhotoStore("memory://" + config.AppConfig.SupabasePhotoBucket)
		utils.StartHealthMonitor(healthCtx, nil, nil)
	} else {
		database.InitDB()
		utils.InitRedis()

		addresses = addressRepo.NewMongoAddressRepo()
		mongoBookings := bookingRepo.NewMongoBookingRepo()
		bookings = mongoBookings
		submissions = mongoBookings
		profiles = profileRepo.NewMongoProfileRepo()
		drafts = booking.NewRedisDraftStore(utils.GetCacheClient(), config.AppConfig.DraftTTL)
		denylist = utils.NewRedisTokenDenylist(utils.GetAuthCacheClient())

		var err error
		photos, err = newPhotoStore()
		if err != nil {
			logger.Fatal("main: failed to initialize photo storage", zap.Error(err))
		}

		queue = asynq.NewClient(cron.RedisOpt())
		reminders = tasks.NewAsynqReminderScheduler(queue, loc)

		utils.StartHealthMonitor(healthCtx, []*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}, database.MongoClient)
	}

	if err := utils.FirebaseInit(); err != nil {
		logger.Warn("main: push notifications disabled", zap.Error(err))
	}
	var pusher notification.Pusher
	if utils.FCMClient != nil {
		pusher = utils.FCMClient
	}
	notifications := notification.NewDefaultNotificationService(profiles, pusher, logger)

	var ops notification.OpsNotifier = notification.NopOpsNotifier{}
	bot, err := utils.NewTelegramBot()
	if err != nil {
		logger.Warn("main: Telegram ops channel disabled", zap.Error(err))
	} else if bot != nil {
		ops = notification.NewOpsNotifier(bot, config.AppConfig.TelegramOpsChatID)
	}

	// services.
	wizard := booking.NewWizard(loc)
	addressService := address.NewAddressService(addresses, logger)
	profileService := profile.NewProfileService(profiles, logger)
	draftService := booking.NewDraftService(wizard, drafts, addressService, logger)
	submitter := &booking.Submitter{
		Wizard:      wizard,
		Drafts:      drafts,
		Addresses:   addressService,
		Bookings:    bookings,
		Submissions: submissions,
		Photos:      photos,
		Reminders:   reminders,
		Ops:         ops,
		Metrics:     metrics,
		Logger:      logger,
		Now:         time.Now,
	}
	historyService := booking.NewHistoryService(bookings, config.AppConfig.SupportWhatsAppNumber, logger)
	adminService := admin.NewAdminService(
		bookings,
		profiles,
		booking.NewStatusMachine(config.AppConfig.StrictStatusTransitions),
		notifications,
		metrics,
		loc,
		logger,
	)
	reconciler := &booking.Reconciler{
		Submissions: submissions,
		Bookings:    bookings,
		After:       config.AppConfig.ReconcileAfter,
		Metrics:     metrics,
		Logger:      logger,
		Now:         time.Now,
	}

	if !memoryMode {
		worker, err = cron.NewWorker(bookings, notifications, reconciler, logger)
		if err != nil {
			logger.Fatal("main: failed to set up background worker", zap.Error(err))
		}
		worker.Start()
	}

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewAuthHandler(profileService, denylist),
		handlers.NewProfileHandler(profileService),
		handlers.NewAddressHandler(addressService),
		handlers.NewBookingHandler(draftService, submitter),
		handlers.NewHistoryHandler(historyService),
		handlers.NewAdminHandler(adminService),
	)
	handlerBundle.ProfileRepo = profiles
	handlerBundle.Metrics = metrics
	handlerBundle.MetricsHandler = gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(config.AppConfig.TrustedProxies); err != nil {
		logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
	}
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queue != nil {
		if err := queue.Close(); err != nil {
			logger.Warn("main: failed to close queue client", zap.Error(err))
		}
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}

// newPhotoStore selects the booking photo backend from PHOTO_STORE.
func newPhotoStore() (storage.PhotoStore, error) {
	switch config.AppConfig.PhotoStore {
	case "cloudinary":
		cld, err := utils.NewCloudinary()
		if err != nil {
			return nil, err
		}
		return storage.NewCloudinaryPhotoStore(cld, config.AppConfig.SupabasePhotoBucket), nil
	default:
		client, err := utils.NewSupabaseClient()
		if err != nil {
			return nil, err
		}
		return storage.NewSupabasePhotoStore(client, config.AppConfig.SupabasePhotoBucket), nil
	}
}
