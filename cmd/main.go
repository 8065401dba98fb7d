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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/MST-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/MST-BookingService/internal/api/handlers/create_booking"
	deleteDayScheduleHandler "github.com/m04kA/MST-BookingService/internal/api/handlers/delete_day_schedule"
	getAvailableDatesHandler "github.com/m04kA/MST-BookingService/internal/api/handlers/get_available_dates"
	getBookingHandler "github.com/m04kA/MST-BookingService/internal/api/handlers/get_booking"
	getDayScheduleHandler "github.com/m04kA/MST-BookingService/internal/api/handlers/get_day_schedule"
	getMasterBookingsHandler "github.com/m04kA/MST-BookingService/internal/api/handlers/get_master_bookings"
	getMonthScheduleHandler "github.com/m04kA/MST-BookingService/internal/api/handlers/get_month_schedule"
	getSettingsHandler "github.com/m04kA/MST-BookingService/internal/api/handlers/get_settings"
	getTimeSlotsHandler "github.com/m04kA/MST-BookingService/internal/api/handlers/get_time_slots"
	getUserBookingsHandler "github.com/m04kA/MST-BookingService/internal/api/handlers/get_user_bookings"
	updateBookingStatusHandler "github.com/m04kA/MST-BookingService/internal/api/handlers/update_booking_status"
	updateSettingsHandler "github.com/m04kA/MST-BookingService/internal/api/handlers/update_settings"
	upsertDayScheduleHandler "github.com/m04kA/MST-BookingService/internal/api/handlers/upsert_day_schedule"
	"github.com/m04kA/MST-BookingService/internal/api/middleware"
	"github.com/m04kA/MST-BookingService/internal/config"
	bookingRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/service"
	settingsRepo "github.com/m04kA/MST-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/MST-BookingService/internal/notify"
	bookingsService "github.com/m04kA/MST-BookingService/internal/service/bookings"
	scheduleService "github.com/m04kA/MST-BookingService/internal/service/schedule"
	settingsService "github.com/m04kA/MST-BookingService/internal/service/settings"
	createBookingUC "github.com/m04kA/MST-BookingService/internal/usecase/create_booking"
	getAvailableDatesUC "github.com/m04kA/MST-BookingService/internal/usecase/get_available_dates"
	getTimeSlotsUC "github.com/m04kA/MST-BookingService/internal/usecase/get_time_slots"
	"github.com/m04kA/MST-BookingService/internal/worker/completion"
	"github.com/m04kA/MST-BookingService/pkg/dbmetrics"
	"github.com/m04kA/MST-BookingService/pkg/logger"
	"github.com/m04kA/MST-BookingService/pkg/metrics"
	"github.com/m04kA/MST-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/MST-BookingService/pkg/txmanager"
)

// noopMetrics заглушка бизнес-метрик, когда метрики выключены в конфиге
type noopMetrics struct{}

func (noopMetrics) IncBookingCreated(string)   {}
func (noopMetrics) IncBookingCancelled(string) {}
func (noopMetrics) IncNotification(string)     {}

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

	log.Info("Starting MST-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		settingsRepository *settingsRepo.Repository
		serviceRepository  *serviceRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	// Бизнес-метрики: при выключенных метриках подставляем заглушку
	type businessMetrics interface {
		IncBookingCreated(status string)
		IncBookingCancelled(by string)
		IncNotification(result string)
	}
	var bizMetrics businessMetrics = noopMetrics{}

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		bizMetrics = metricsCollector
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем Telegram нотификатор (пустой токен выключает отправку)
	notifier, err := notify.New(cfg.Telegram.Token, cfg.Telegram.ChatID, log, bizMetrics)
	if err != nil {
		log.Fatal("Failed to initialize telegram notifier: %v", err)
	}
	if notifier.Enabled() {
		log.Info("Telegram notifications enabled (chat_id=%d)", cfg.Telegram.ChatID)
	} else {
		log.Info("Telegram notifications disabled")
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		notifier,
		bizMetrics,
		log,
	)
	scheduleSvc := scheduleService.NewService(scheduleRepository, log)
	settingsSvc := settingsService.NewService(settingsRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		settingsRepository,
		serviceRepository,
		txMgr,
		notifier,
		bizMetrics,
		log,
	)

	getTimeSlotsUseCase := getTimeSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		settingsRepository,
		serviceRepository,
		log,
	)

	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		settingsRepository,
		serviceRepository,
		log,
	)

	// Запускаем воркер завершения прошедших записей
	completionWorker := completion.New(bookingRepository, log, cfg.Worker.CompletionSchedule)
	if err := completionWorker.Start(context.Background()); err != nil {
		log.Fatal("Failed to start completion worker: %v", err)
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getTimeSlots := getTimeSlotsHandler.NewHandler(getTimeSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getMasterBookings := getMasterBookingsHandler.NewHandler(bookingSvc, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(scheduleSvc, log)
	getMonthSchedule := getMonthScheduleHandler.NewHandler(scheduleSvc, log)
	upsertDaySchedule := upsertDayScheduleHandler.NewHandler(scheduleSvc, log)
	deleteDaySchedule := deleteDayScheduleHandler.NewHandler(scheduleSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты на день для услуги
	api.HandleFunc("/services/{serviceId}/time-slots", getTimeSlots.Handle).Methods(http.MethodGet)

	// Календарь доступных дат для услуги
	api.HandleFunc("/services/{serviceId}/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Кабинет мастера ---
	// Журнал записей мастера
	protected.HandleFunc("/masters/{masterId}/bookings", getMasterBookings.Handle).Methods(http.MethodGet)

	// Расписание
	protected.HandleFunc("/masters/{masterId}/schedule", getMonthSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/masters/{masterId}/schedule/{date}", getDaySchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/masters/{masterId}/schedule/{date}", upsertDaySchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/masters/{masterId}/schedule/{date}", deleteDaySchedule.Handle).Methods(http.MethodDelete)

	// Настройки бронирования
	protected.HandleFunc("/masters/{masterId}/settings", getSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/masters/{masterId}/settings", updateSettings.Handle).Methods(http.MethodPut)

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

	// Останавливаем воркер завершения
	completionWorker.Stop()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
