package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	adminBookingsHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/admin_bookings"
	adminSlotsHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/admin_slots"
	adminWorkshopsHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/admin_workshops"
	createBookingHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/get_available_slots"
	listWorkshopsHandler "github.com/m04kA/SMC-StudioBooking/internal/api/handlers/list_workshops"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/config"
	"github.com/m04kA/SMC-StudioBooking/internal/infra/broker"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioBooking/internal/infra/storage/migrations"
	seatHoldRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/seathold"
	slotRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/slot"
	workshopRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/workshop"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/telegram"
	bookingsService "github.com/m04kA/SMC-StudioBooking/internal/service/bookings"
	"github.com/m04kA/SMC-StudioBooking/internal/service/capacity"
	"github.com/m04kA/SMC-StudioBooking/internal/service/notifications"
	"github.com/m04kA/SMC-StudioBooking/internal/service/seatholds"
	slotsService "github.com/m04kA/SMC-StudioBooking/internal/service/slots"
	workshopsService "github.com/m04kA/SMC-StudioBooking/internal/service/workshops"
	createBookingUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/metrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-StudioBooking...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены)
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

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.RunMigrations {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Без метрик обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)

	// Репозитории и транзакции
	workshopRepository := workshopRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	seatHoldRepository := seatHoldRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Интеграции уведомлений (необязательные)
	var (
		publisher notifications.Publisher
		messenger notifications.Messenger
	)

	if cfg.Broker.Enabled {
		p, err := broker.NewPublisher(cfg.Broker.URL, cfg.Broker.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to broker: %v", err)
		}
		defer p.Close()
		publisher = p
		log.Info("Booking events are published to exchange %s", cfg.Broker.Exchange)
	}

	if cfg.Telegram.Enabled {
		messenger = telegram.NewClient(
			cfg.Telegram.APIURL,
			cfg.Telegram.BotToken,
			cfg.Telegram.ChatID,
			time.Duration(cfg.Telegram.Timeout)*time.Second,
			log,
		)
		log.Info("Telegram notifications enabled (timeout=%ds)", cfg.Telegram.Timeout)
	}

	// Инициализируем сервисы
	ledger := capacity.NewLedger(bookingRepository, seatHoldRepository)
	holdManager := seatholds.NewManager(
		seatHoldRepository,
		time.Duration(cfg.Booking.HoldTTLMinutes)*time.Minute,
		metricsCollector,
		log,
	)
	log.Info("Overflow seat hold TTL: %s", holdManager.TTL())
	notifier := notifications.NewService(publisher, messenger, log)

	workshopSvc := workshopsService.NewService(workshopRepository, log)
	slotSvc := slotsService.NewService(
		slotRepository,
		workshopRepository,
		bookingRepository,
		seatHoldRepository,
		ledger,
		txMgr,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		seatHoldRepository,
		holdManager,
		ledger,
		txMgr,
		notifier,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		workshopRepository,
		slotRepository,
		bookingRepository,
		ledger,
		holdManager,
		txMgr,
		notifier,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		workshopRepository,
		slotRepository,
		ledger,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	listWorkshops := listWorkshopsHandler.NewHandler(workshopSvc, log)
	adminWorkshops := adminWorkshopsHandler.NewHandler(workshopSvc, log)
	adminSlots := adminSlotsHandler.NewHandler(slotSvc, log)
	adminBookings := adminBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api").Subrouter()

	var limiter middleware.Counter
	if cfg.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
			DB:       cfg.RateLimit.RedisDB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// Лимитер пропускает запросы, пока redis недоступен
			log.Warn("Redis is not reachable at %s: %v", cfg.RateLimit.RedisAddr, err)
		}
		cancel()

		limiter = middleware.NewRedisCounter(rdb)
		api.Use(middleware.RateLimit(limiter, middleware.Limit{
			Prefix:     cfg.RateLimit.GeneralPrefix,
			Max:        cfg.RateLimit.GeneralMaxRequests,
			Window:     time.Duration(cfg.RateLimit.GeneralWindowSeconds) * time.Second,
			Message:    "Too many requests",
			TrustProxy: cfg.RateLimit.TrustProxy,
		}, log))
		log.Info("API rate limit: %d requests per %ds, trust proxy: %v",
			cfg.RateLimit.GeneralMaxRequests, cfg.RateLimit.GeneralWindowSeconds, cfg.RateLimit.TrustProxy)
	}

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	public := api.PathPrefix("/public").Subrouter()
	public.HandleFunc("/workshops", listWorkshops.Handle).Methods(http.MethodGet)
	public.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	bookingRoute := public.PathPrefix("/bookings").Subrouter()
	if limiter != nil {
		bookingRoute.Use(middleware.RateLimit(limiter, middleware.Limit{
			Prefix:     cfg.RateLimit.Prefix,
			Max:        cfg.RateLimit.MaxRequests,
			Window:     time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
			Message:    "Too many booking attempts. Try again later.",
			TrustProxy: cfg.RateLimit.TrustProxy,
		}, log))
		log.Info("Booking rate limit: %d requests per %ds", cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSeconds)
	}
	bookingRoute.HandleFunc("", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (bearer JWT)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// --- Мастер-классы ---
	admin.HandleFunc("/workshops", adminWorkshops.List).Methods(http.MethodGet)
	admin.HandleFunc("/workshops", adminWorkshops.Create).Methods(http.MethodPost)
	admin.HandleFunc("/workshops/{id}", adminWorkshops.Update).Methods(http.MethodPatch)
	admin.HandleFunc("/workshops/{id}", adminWorkshops.Delete).Methods(http.MethodDelete)

	// --- Слоты ---
	admin.HandleFunc("/slots", adminSlots.List).Methods(http.MethodGet)
	admin.HandleFunc("/slots", adminSlots.Upsert).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{id}", adminSlots.Update).Methods(http.MethodPatch)
	admin.HandleFunc("/slots/{id}", adminSlots.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/slots/{id}/hold", adminSlots.Hold).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{id}/unhold", adminSlots.Unhold).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{id}/cancel", adminSlots.Cancel).Methods(http.MethodPost)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", adminBookings.List).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}", adminBookings.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/{id}/approve", adminBookings.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id}/reject", adminBookings.Reject).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id}/confirm", adminBookings.Confirm).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id}/cancel", adminBookings.Cancel).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
