package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	blockSlotHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/block_slot"
	bookSlotsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/book_slots"
	cancelBookingHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_booking"
	getFacilityBookingsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_facility_bookings"
	getFacilityStatsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_facility_stats"
	getRecentActivityHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_recent_activity"
	getTakenSlotsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_taken_slots"
	getUserBookingsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_user_bookings"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	userServiceClient "github.com/m04kA/SMC-FieldBookingService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
	reportingService "github.com/m04kA/SMC-FieldBookingService/internal/service/reporting"
	bookSlotsUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/book_slots"
	createBookingUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ratelimit"
	"github.com/m04kA/SMC-FieldBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-FieldBookingService...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка только прокидывает вызовы: repositories и transaction manager
	// работают с одним и тем же типом в обоих режимах
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Rate limiter на Redis (если включен)
	var limiter *ratelimit.Limiter
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// ограничитель пропускает запросы при недоступном Redis
			log.Warn("Redis is not reachable at %s, rate limiting will fail open: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		limiter = ratelimit.New(redisClient, int(cfg.RateLimit.Requests), time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)
		log.Info("Rate limiter enabled: %d requests per %ds", cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	fieldRepository := fieldRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	reportingSvc := reportingService.NewService(
		bookingRepository,
		fieldRepository,
		userClient,
		txMgr,
		cfg.Booking.RecentActivityLimit,
		cfg.Booking.MaxRecentActivityLimit,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		fieldRepository,
		txMgr,
		metricsCollector,
		log,
	)
	bookSlotsUseCase := bookSlotsUC.NewUseCase(
		createBookingUseCase,
		fieldRepository,
		cfg.Booking.MaxSlotsPerBatch,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		fieldRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	blockSlot := blockSlotHandler.NewHandler(createBookingUseCase, log)
	bookSlots := bookSlotsHandler.NewHandler(bookSlotsUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getTakenSlots := getTakenSlotsHandler.NewHandler(reportingSvc, log)
	getFacilityBookings := getFacilityBookingsHandler.NewHandler(reportingSvc, log)
	getRecentActivity := getRecentActivityHandler.NewHandler(reportingSvc, log)
	getFacilityStats := getFacilityStatsHandler.NewHandler(reportingSvc, log)

	// Изменяющие маршруты проходят через rate limiter
	limited := func(h http.HandlerFunc) http.Handler {
		if limiter == nil {
			return h
		}
		return middleware.RateLimit(limiter, log)(h)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободен ли интервал поля
	api.HandleFunc("/fields/{fieldId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Сетка слотов поля на день
	api.HandleFunc("/fields/{fieldId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Занятые интервалы объекта за день (без данных клиентов)
	api.HandleFunc("/facilities/{facilityId}/taken-slots", getTakenSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.Handle("/bookings", limited(createBooking.Handle)).Methods(http.MethodPost)
	protected.Handle("/fields/{fieldId}/bookings/batch", limited(bookSlots.Handle)).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.Handle("/bookings/{bookingId}/cancel", limited(cancelBooking.Handle)).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Владелец объекта ---
	protected.Handle("/fields/{fieldId}/blocks", limited(blockSlot.Handle)).Methods(http.MethodPost)
	protected.Handle("/owner/bookings/{bookingId}/cancel", limited(cancelBooking.HandleAsOwner)).Methods(http.MethodPatch)
	protected.HandleFunc("/owner/facilities/{facilityId}/bookings", getFacilityBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/owner/facilities/{facilityId}/recent", getRecentActivity.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/owner/facilities/{facilityId}/stats", getFacilityStats.Handle).Methods(http.MethodGet)

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
