package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	adminsHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/admins"
	applyInternshipHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/apply_internship"
	authHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/auth"
	bookSessionHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/book_session"
	cancelBookingHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/cancel_booking"
	companiesHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/companies"
	getAnalyticsHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/get_analytics"
	getAvailableSlotsHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/get_booking"
	getBookingCVHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/get_booking_cv"
	getUserBookingsHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/get_user_bookings"
	healthHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/health"
	industriesHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/industries"
	initializePaymentHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/initialize_payment"
	internshipsHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/internships"
	listAdminBookingsHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/list_admin_bookings"
	mentorsHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/mentors"
	paymentWebhookHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/payment_webhook"
	setMentorAvailabilityHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/set_mentor_availability"
	updateBookingStatusHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/update_booking_status"
	verifyPaymentHandler "github.com/m04kA/InternHub-Service/internal/api/handlers/verify_payment"
	"github.com/m04kA/InternHub-Service/internal/api/middleware"
	"github.com/m04kA/InternHub-Service/internal/config"
	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/infra/filestorage"
	"github.com/m04kA/InternHub-Service/internal/infra/otp"
	"github.com/m04kA/InternHub-Service/internal/infra/ratelimit"
	analyticsRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/analytics"
	availabilityRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/booking"
	companyRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/company"
	industryRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/industry"
	internshipRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/internship"
	mentorRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/mentor"
	userRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/user"
	"github.com/m04kA/InternHub-Service/internal/integrations/mailer"
	"github.com/m04kA/InternHub-Service/internal/integrations/paystack"
	"github.com/m04kA/InternHub-Service/internal/service/access"
	adminsService "github.com/m04kA/InternHub-Service/internal/service/admins"
	analyticsService "github.com/m04kA/InternHub-Service/internal/service/analytics"
	authService "github.com/m04kA/InternHub-Service/internal/service/auth"
	bookingsService "github.com/m04kA/InternHub-Service/internal/service/bookings"
	catalogService "github.com/m04kA/InternHub-Service/internal/service/catalog"
	mentorsService "github.com/m04kA/InternHub-Service/internal/service/mentors"
	notificationsService "github.com/m04kA/InternHub-Service/internal/service/notifications"
	applyInternshipUC "github.com/m04kA/InternHub-Service/internal/usecase/apply_internship"
	bookSessionUC "github.com/m04kA/InternHub-Service/internal/usecase/book_session"
	expireBookingsUC "github.com/m04kA/InternHub-Service/internal/usecase/expire_bookings"
	getAvailableSlotsUC "github.com/m04kA/InternHub-Service/internal/usecase/get_available_slots"
	initializePaymentUC "github.com/m04kA/InternHub-Service/internal/usecase/initialize_payment"
	verifyPaymentUC "github.com/m04kA/InternHub-Service/internal/usecase/verify_payment"
	"github.com/m04kA/InternHub-Service/pkg/dbmetrics"
	"github.com/m04kA/InternHub-Service/pkg/jwtauth"
	"github.com/m04kA/InternHub-Service/pkg/logger"
	"github.com/m04kA/InternHub-Service/pkg/metrics"
	"github.com/m04kA/InternHub-Service/pkg/password"
	"github.com/m04kA/InternHub-Service/pkg/txmanager"
)

const localUploadsPrefix = "/uploads/"

func main() {
	configPath := "config.toml"
	if v, ok := os.LookupEnv("CONFIG_PATH"); ok && v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting InternHub-Service...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}

	// Метрики (nil, если выключены: все методы nil-safe)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis: OTP коды и rate limit
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
	}
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	// Хранилище файлов
	var (
		storage      filestorage.Storage
		localStorage *filestorage.LocalStorage
	)
	switch cfg.Storage.Driver {
	case "s3":
		storage = filestorage.NewS3Storage(filestorage.S3Config{
			Endpoint:        cfg.Storage.S3Endpoint,
			Region:          cfg.Storage.S3Region,
			Bucket:          cfg.Storage.S3Bucket,
			AccessKeyID:     cfg.Storage.S3AccessKeyID,
			SecretAccessKey: cfg.Storage.S3SecretAccessKey,
		})
		log.Info("File storage: s3 (bucket=%s)", cfg.Storage.S3Bucket)
	default:
		publicURL := cfg.Storage.PublicBaseURL
		if publicURL == "" {
			publicURL = fmt.Sprintf("http://localhost:%d%s", cfg.Server.HTTPPort, strings.TrimSuffix(localUploadsPrefix, "/"))
		}
		localStorage = filestorage.NewLocalStorage(cfg.Storage.LocalDir, publicURL)
		storage = localStorage
		log.Info("File storage: local (dir=%s)", cfg.Storage.LocalDir)
	}
	presignTTL := time.Duration(cfg.Storage.PresignTTLMinutes) * time.Minute

	// Почта: SendGrid или вывод писем в лог для разработки
	var mailSender mailer.Sender
	if cfg.Mail.SendGridAPIKey != "" {
		mailSender = mailer.NewSendGridMailer(cfg.Mail.SendGridAPIKey, "", cfg.Mail.FromName, cfg.Mail.FromEmail)
		log.Info("Mailer: sendgrid (from=%s)", cfg.Mail.FromEmail)
	} else {
		mailSender = mailer.NewLogMailer(log)
		log.Warn("Mailer: SENDGRID_API_KEY is not set, emails are written to the log")
	}

	paystackClient := paystack.NewClient(
		cfg.Paystack.BaseURL,
		cfg.Paystack.SecretKey,
		time.Duration(cfg.Paystack.Timeout)*time.Second,
		log,
	)

	tokens := jwtauth.NewProvider(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL())
	hasher := password.NewHasher(cfg.Auth.BcryptCost)

	// Репозитории
	userRepository := userRepo.NewRepository(wrappedDB)
	industryRepository := industryRepo.NewRepository(wrappedDB)
	companyRepository := companyRepo.NewRepository(wrappedDB)
	internshipRepository := internshipRepo.NewRepository(wrappedDB)
	mentorRepository := mentorRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	analyticsRepository := analyticsRepo.NewRepository(wrappedDB)

	otpStore := otp.NewStore(redisClient)
	otpLimiter := ratelimit.NewRedisLimiter(
		redisClient,
		cfg.OTP.SendLimit,
		time.Duration(cfg.OTP.SendWindowMinutes)*time.Minute,
		"otp",
	)

	// Сервисы
	actorResolver := access.NewResolver(userRepository)
	notifier := notificationsService.NewService(userRepository, mailSender, log)

	authSvc := authService.NewService(
		userRepository,
		otpStore,
		otpLimiter,
		hasher,
		tokens,
		mailSender,
		metricsCollector,
		authService.Config{
			OTPTTL:         time.Duration(cfg.OTP.TTLMinutes) * time.Minute,
			MaxAttempts:    cfg.OTP.MaxAttempts,
			ResendInterval: time.Duration(cfg.OTP.ResendIntervalSec) * time.Second,
		},
		log,
	)
	catalogSvc := catalogService.NewService(
		industryRepository,
		companyRepository,
		internshipRepository,
		storage,
		txMgr,
		catalogService.Config{ImageURLTTL: presignTTL, Location: location},
		log,
	)
	mentorSvc := mentorsService.NewService(
		mentorRepository,
		availabilityRepository,
		bookingRepository,
		actorResolver,
		storage,
		txMgr,
		presignTTL,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		actorResolver,
		storage,
		notifier,
		metricsCollector,
		txMgr,
		log,
	)
	adminSvc := adminsService.NewService(
		userRepository,
		industryRepository,
		hasher,
		txMgr,
		log,
	)
	analyticsSvc := analyticsService.NewService(
		analyticsRepository,
		actorResolver,
		txMgr,
		analyticsService.Config{Currency: cfg.Booking.Currency, Location: location},
		log,
	)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		mentorRepository,
		availabilityRepository,
		bookingRepository,
		getAvailableSlotsUC.Config{
			AdvanceBookingDays:      cfg.Booking.AdvanceBookingDays,
			MinBookingNoticeMinutes: cfg.Booking.MinBookingNoticeMinutes,
			Location:                location,
		},
		log,
	)
	bookSessionUseCase := bookSessionUC.NewUseCase(
		bookingRepository,
		mentorRepository,
		availabilityRepository,
		txMgr,
		metricsCollector,
		bookSessionUC.Config{
			AdvanceBookingDays:      cfg.Booking.AdvanceBookingDays,
			MinBookingNoticeMinutes: cfg.Booking.MinBookingNoticeMinutes,
			Currency:                cfg.Booking.Currency,
			Location:                location,
		},
		log,
	)
	maxCVSize := int64(cfg.Storage.MaxCVSizeMB) << 20
	applyInternshipUseCase := applyInternshipUC.NewUseCase(
		bookingRepository,
		internshipRepository,
		txMgr,
		storage,
		metricsCollector,
		applyInternshipUC.Config{
			MaxCVSizeBytes: maxCVSize,
			Currency:       cfg.Booking.Currency,
			Location:       location,
		},
		log,
	)
	initializePaymentUseCase := initializePaymentUC.NewUseCase(
		bookingRepository,
		userRepository,
		paystackClient,
		metricsCollector,
		initializePaymentUC.Config{CallbackURL: cfg.Paystack.CallbackURL},
		log,
	)
	verifyPaymentUseCase := verifyPaymentUC.NewUseCase(
		bookingRepository,
		paystackClient,
		txMgr,
		notifier,
		metricsCollector,
		log,
	)
	expireBookingsUseCase := expireBookingsUC.NewUseCase(
		bookingRepository,
		txMgr,
		notifier,
		metricsCollector,
		expireBookingsUC.Config{
			Interval:              time.Duration(cfg.Booking.ExpiryCheckIntervalSeconds) * time.Second,
			ApplicationReviewDays: cfg.Booking.ApplicationReviewDays,
			Location:              location,
		},
		log,
	)

	// Handlers
	auth := authHandler.NewHandler(authSvc, log)
	industries := industriesHandler.NewHandler(catalogSvc, log)
	companies := companiesHandler.NewHandler(catalogSvc, log)
	internships := internshipsHandler.NewHandler(catalogSvc, log)
	mentors := mentorsHandler.NewHandler(mentorSvc, log)
	admins := adminsHandler.NewHandler(adminSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	bookSession := bookSessionHandler.NewHandler(bookSessionUseCase, log)
	applyInternship := applyInternshipHandler.NewHandler(applyInternshipUseCase, maxCVSize, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	initializePayment := initializePaymentHandler.NewHandler(initializePaymentUseCase, log)
	verifyPayment := verifyPaymentHandler.NewHandler(verifyPaymentUseCase, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(verifyPaymentUseCase, log)
	listAdminBookings := listAdminBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getBookingCV := getBookingCVHandler.NewHandler(bookingSvc, log)
	getAnalytics := getAnalyticsHandler.NewHandler(analyticsSvc, log)
	setMentorAvailability := setMentorAvailabilityHandler.NewHandler(mentorSvc, log)
	health := healthHandler.NewHandler(map[string]healthHandler.Pinger{
		"postgres": wrappedDB,
		"redis": healthHandler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}),
	}, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	if localStorage != nil {
		r.PathPrefix(localUploadsPrefix).Handler(
			http.StripPrefix(localUploadsPrefix, http.FileServer(http.Dir(localStorage.BaseDir()))),
		).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-otp", auth.VerifyOTP).Methods(http.MethodPost)
	api.HandleFunc("/auth/resend-otp", auth.ResendOTP).Methods(http.MethodPost)
	api.HandleFunc("/auth/forgot-password", auth.ForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password", auth.ResetPassword).Methods(http.MethodPost)

	api.HandleFunc("/industries", industries.List).Methods(http.MethodGet)
	api.HandleFunc("/companies", companies.List).Methods(http.MethodGet)
	api.HandleFunc("/companies/{id}", companies.Get).Methods(http.MethodGet)
	api.HandleFunc("/internships", internships.List).Methods(http.MethodGet)
	api.HandleFunc("/internships/{id}", internships.Get).Methods(http.MethodGet)
	api.HandleFunc("/mentors", mentors.List).Methods(http.MethodGet)
	api.HandleFunc("/mentors/{id}", mentors.Get).Methods(http.MethodGet)
	api.HandleFunc("/mentors/{id}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	api.HandleFunc("/payments/verify", verifyPayment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens, log))

	protected.HandleFunc("/auth/me", auth.Me).Methods(http.MethodGet)
	protected.HandleFunc("/internships/{id}/apply", applyInternship.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/mentors/{id}/bookings", bookSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{id}/payment", initializePayment.Handle).Methods(http.MethodPost)

	// --- Администраторы (admin и industry_admin) ---
	staff := api.PathPrefix("/admin").Subrouter()
	staff.Use(middleware.Auth(tokens, log))
	staff.Use(middleware.ResolveStaff(actorResolver, log))
	staff.Use(middleware.RequireRoles(domain.RoleAdmin, domain.RoleIndustryAdmin))

	staff.HandleFunc("/bookings", listAdminBookings.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/{id}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/bookings/{id}/cv", getBookingCV.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/analytics", getAnalytics.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/mentors", mentors.AdminList).Methods(http.MethodGet)
	staff.HandleFunc("/mentors/{id}/availability", setMentorAvailability.Handle).Methods(http.MethodPut)

	// --- Только глобальный админ ---
	globalOnly := middleware.RequireRoles(domain.RoleAdmin)

	staff.Handle("/industries", globalOnly(http.HandlerFunc(industries.Create))).Methods(http.MethodPost)
	staff.Handle("/industries/{id}", globalOnly(http.HandlerFunc(industries.Delete))).Methods(http.MethodDelete)
	staff.Handle("/companies", globalOnly(http.HandlerFunc(companies.Create))).Methods(http.MethodPost)
	staff.Handle("/companies/{id}", globalOnly(http.HandlerFunc(companies.Update))).Methods(http.MethodPut)
	staff.Handle("/companies/{id}", globalOnly(http.HandlerFunc(companies.Delete))).Methods(http.MethodDelete)
	staff.Handle("/internships", globalOnly(http.HandlerFunc(internships.Create))).Methods(http.MethodPost)
	staff.Handle("/internships/{id}", globalOnly(http.HandlerFunc(internships.Update))).Methods(http.MethodPut)
	staff.Handle("/internships/{id}", globalOnly(http.HandlerFunc(internships.Delete))).Methods(http.MethodDelete)
	staff.Handle("/mentors", globalOnly(http.HandlerFunc(mentors.Create))).Methods(http.MethodPost)
	staff.Handle("/mentors/{id}", globalOnly(http.HandlerFunc(mentors.Update))).Methods(http.MethodPut)
	staff.Handle("/mentors/{id}", globalOnly(http.HandlerFunc(mentors.Delete))).Methods(http.MethodDelete)
	staff.Handle("/admins", globalOnly(http.HandlerFunc(admins.Create))).Methods(http.MethodPost)
	staff.Handle("/admins", globalOnly(http.HandlerFunc(admins.List))).Methods(http.MethodGet)
	staff.Handle("/admins/{id}/industries", globalOnly(http.HandlerFunc(admins.UpdateIndustries))).Methods(http.MethodPut)
	staff.Handle("/admins/{id}", globalOnly(http.HandlerFunc(admins.Delete))).Methods(http.MethodDelete)

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler(r),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Фоновое истечение бронирований
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		expireBookingsUseCase.Run(workerCtx)
	}()

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	stopWorker()
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		log.Warn("Expiry worker did not stop in time")
	}

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
