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

	cancelBookingHandler "github.com/avdmitr/YMS-SlotService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/avdmitr/YMS-SlotService/internal/api/handlers/create_booking"
	createSlotHandler "github.com/avdmitr/YMS-SlotService/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/avdmitr/YMS-SlotService/internal/api/handlers/delete_slot"
	deleteSlotRangeHandler "github.com/avdmitr/YMS-SlotService/internal/api/handlers/delete_slot_range"
	generateSlotsHandler "github.com/avdmitr/YMS-SlotService/internal/api/handlers/generate_slots"
	getBookingHandler "github.com/avdmitr/YMS-SlotService/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/avdmitr/YMS-SlotService/internal/api/handlers/get_bookings"
	getCalendarHandler "github.com/avdmitr/YMS-SlotService/internal/api/handlers/get_calendar"
	getQuotaAvailabilityHandler "github.com/avdmitr/YMS-SlotService/internal/api/handlers/get_quota_availability"
	getSlotJournalHandler "github.com/avdmitr/YMS-SlotService/internal/api/handlers/get_slot_journal"
	getUserBookingsHandler "github.com/avdmitr/YMS-SlotService/internal/api/handlers/get_user_bookings"
	resolvePrrDurationHandler "github.com/avdmitr/YMS-SlotService/internal/api/handlers/resolve_prr_duration"
	updateSlotAvailabilityHandler "github.com/avdmitr/YMS-SlotService/internal/api/handlers/update_slot_availability"
	"github.com/avdmitr/YMS-SlotService/internal/api/middleware"
	"github.com/avdmitr/YMS-SlotService/internal/config"
	bookingRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/booking"
	catalogRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/catalog"
	prrlimitRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/prrlimit"
	quotaRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/quota"
	scheduleRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/schedule"
	slotRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/slot"
	bookingsService "github.com/avdmitr/YMS-SlotService/internal/service/bookings"
	slotsService "github.com/avdmitr/YMS-SlotService/internal/service/slots"
	createBookingUC "github.com/avdmitr/YMS-SlotService/internal/usecase/create_booking"
	generateSlotsUC "github.com/avdmitr/YMS-SlotService/internal/usecase/generate_slots"
	getCalendarUC "github.com/avdmitr/YMS-SlotService/internal/usecase/get_calendar"
	quotaAvailabilityUC "github.com/avdmitr/YMS-SlotService/internal/usecase/quota_availability"
	resolveDurationUC "github.com/avdmitr/YMS-SlotService/internal/usecase/resolve_duration"
	"github.com/avdmitr/YMS-SlotService/pkg/dbmetrics"
	"github.com/avdmitr/YMS-SlotService/pkg/logger"
	"github.com/avdmitr/YMS-SlotService/pkg/metrics"
	"github.com/avdmitr/YMS-SlotService/pkg/simpletxmanager"
	"github.com/avdmitr/YMS-SlotService/pkg/txmanager"
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

	log.Info("Starting YMS-SlotService...")
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
		catalogRepository  *catalogRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		slotRepository     *slotRepo.Repository
		bookingRepository  *bookingRepo.Repository
		quotaRepository    *quotaRepo.Repository
		prrlimitRepository *prrlimitRepo.Repository
	)

	// Интерфейс transaction manager, общий для обеих реализаций
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		quotaRepository = quotaRepo.NewRepository(wrappedDB)
		prrlimitRepository = prrlimitRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		catalogRepository = catalogRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		quotaRepository = quotaRepo.NewRepository(db)
		prrlimitRepository = prrlimitRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, slotRepository, txMgr, log)
	slotSvc := slotsService.NewService(slotRepository, bookingRepository, catalogRepository, txMgr, log)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(catalogRepository, scheduleRepository, slotRepository, log)
	getCalendarUseCase := getCalendarUC.NewUseCase(catalogRepository, slotRepository, bookingRepository, log)
	quotaAvailabilityUseCase := quotaAvailabilityUC.NewUseCase(quotaRepository, bookingRepository, log)
	resolveDurationUseCase := resolveDurationUC.NewUseCase(prrlimitRepository, catalogRepository, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		catalogRepository,
		slotRepository,
		bookingRepository,
		quotaRepository,
		prrlimitRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	getQuotaAvailability := getQuotaAvailabilityHandler.NewHandler(quotaAvailabilityUseCase, log)
	resolvePrrDuration := resolvePrrDurationHandler.NewHandler(resolveDurationUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	getSlotJournal := getSlotJournalHandler.NewHandler(slotSvc, log)
	updateSlotAvailability := updateSlotAvailabilityHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	deleteSlotRange := deleteSlotRangeHandler.NewHandler(slotSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Календарь доступности слотов
	api.HandleFunc("/time-slots", getCalendar.Handle).Methods(http.MethodGet)

	// Остатки квот объёма
	api.HandleFunc("/volume-quotas/availability", getQuotaAvailability.Handle).Methods(http.MethodGet)

	// Длительность погрузочно-разгрузочных работ
	api.HandleFunc("/prr-limits/duration", resolvePrrDuration.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Журнал бронирований (для администраторов)
	protected.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление слотами (для администраторов) ---
	// Генерация слотов по расписаниям доков
	protected.HandleFunc("/time-slots/generate", generateSlots.Handle).Methods(http.MethodPost)

	// Ручное создание слота вне расписания
	protected.HandleFunc("/time-slots", createSlot.Handle).Methods(http.MethodPost)

	// Журнал слотов, включая выключенные
	protected.HandleFunc("/time-slots/journal", getSlotJournal.Handle).Methods(http.MethodGet)

	// Включение/выключение слота
	protected.HandleFunc("/time-slots/{slotId}/availability", updateSlotAvailability.Handle).Methods(http.MethodPatch)

	// Удаление слота
	protected.HandleFunc("/time-slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

	// Удаление слотов дока за период
	protected.HandleFunc("/time-slots", deleteSlotRange.Handle).Methods(http.MethodDelete)

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

	log.Info("Server exited")
}
