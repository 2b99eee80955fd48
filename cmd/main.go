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

	advanceBookingHandler "github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers/advance_booking"
	cancelBookingHandler "github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers/get_booking"
	getCenterConfigHandler "github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers/get_center_config"
	getPatientBookingsHandler "github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers/get_patient_bookings"
	quotePriceHandler "github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers/quote_price"
	recordPaymentHandler "github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers/record_payment"
	updateCenterConfigHandler "github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers/update_center_config"
	"github.com/m04kA/SMC-DiagnosticsService/internal/api/middleware"
	"github.com/m04kA/SMC-DiagnosticsService/internal/config"
	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/booking"
	centercfgRepo "github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/centercfg"
	couponRepo "github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/coupon"
	referralRepo "github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/referral"
	slotRepo "github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/slot"
	catalogServiceClient "github.com/m04kA/SMC-DiagnosticsService/internal/integrations/catalogservice"
	notifyServiceClient "github.com/m04kA/SMC-DiagnosticsService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-DiagnosticsService/internal/reaper"
	bookingsService "github.com/m04kA/SMC-DiagnosticsService/internal/service/bookings"
	centerConfigService "github.com/m04kA/SMC-DiagnosticsService/internal/service/centerconfig"
	pricingService "github.com/m04kA/SMC-DiagnosticsService/internal/service/pricing"
	referralService "github.com/m04kA/SMC-DiagnosticsService/internal/service/referral"
	createBookingUC "github.com/m04kA/SMC-DiagnosticsService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-DiagnosticsService/internal/usecase/get_available_slots"
	quotePriceUC "github.com/m04kA/SMC-DiagnosticsService/internal/usecase/quote_price"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/logger"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/metrics"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/txmanager"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/types"
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

	log.Info("Starting SMC-DiagnosticsService...")
	log.Info("Configuration loaded from config.toml")

	// Рабочая сетка слотов
	openTime, err := types.NewTimeStringFromString(cfg.Booking.SlotOpenTime)
	if err != nil {
		log.Fatal("Invalid slot_open_time %q: %v", cfg.Booking.SlotOpenTime, err)
	}
	closeTime, err := types.NewTimeStringFromString(cfg.Booking.SlotCloseTime)
	if err != nil {
		log.Fatal("Invalid slot_close_time %q: %v", cfg.Booking.SlotCloseTime, err)
	}
	slotUniverse := domain.SlotUniverse{
		OpenTime:        openTime,
		CloseTime:       closeTime,
		DurationMinutes: cfg.Booking.SlotDurationMinutes,
	}

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

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository   *bookingRepo.Repository
		slotRepository      *slotRepo.Repository
		referralRepository  *referralRepo.Repository
		couponRepository    *couponRepo.Repository
		centercfgRepository *centercfgRepo.Repository
		txMgr               bookingsService.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		referralRepository = referralRepo.NewRepository(wrappedDB)
		couponRepository = couponRepo.NewRepository(wrappedDB)
		centercfgRepository = centercfgRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		referralRepository = referralRepo.NewRepository(db)
		couponRepository = couponRepo.NewRepository(db)
		centercfgRepository = centercfgRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	pricingSvc := pricingService.NewService(
		cfg.Booking.HomeServiceCharge,
		cfg.Booking.TaxRate,
		cfg.Booking.DefaultUrgentFee,
		couponRepository,
		log,
	)
	referralSvc := referralService.NewService(referralRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, slotRepository, txMgr, log)
	centerConfigSvc := centerConfigService.NewService(centercfgRepository, cfg.Booking.DefaultSlotCapacity, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		centercfgRepository,
		catalogClient,
		notifyClient,
		pricingSvc,
		referralSvc,
		txMgr,
		log,
		slotUniverse,
		cfg.Booking.DefaultSlotCapacity,
	)
	quotePriceUseCase := quotePriceUC.NewUseCase(catalogClient, pricingSvc, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotRepository,
		centercfgRepository,
		catalogClient,
		log,
		slotUniverse,
		cfg.Booking.DefaultSlotCapacity,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	advanceBooking := advanceBookingHandler.NewHandler(bookingSvc, log)
	recordPayment := recordPaymentHandler.NewHandler(bookingSvc, log)
	getPatientBookings := getPatientBookingsHandler.NewHandler(bookingSvc, log)
	getCenterConfig := getCenterConfigHandler.NewHandler(centerConfigSvc, log)
	updateCenterConfig := updateCenterConfigHandler.NewHandler(centerConfigSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Котировка стоимости без создания бронирования
	api.HandleFunc("/quotes", quotePrice.Handle).Methods(http.MethodPost)

	// Доступные слоты центра на дату
	api.HandleFunc("/centers/{centerId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Конфигурация слотов центра
	api.HandleFunc("/centers/{centerId}/config",
		getCenterConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingRef}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingRef}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingRef}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingRef}/advance", advanceBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingRef}/payment", recordPayment.Handle).Methods(http.MethodPatch)

	// История бронирований пациента
	protected.HandleFunc("/patients/{email}/bookings", getPatientBookings.Handle).Methods(http.MethodGet)

	// --- Управление центрами ---
	protected.HandleFunc("/centers/{centerId}/config", updateCenterConfig.Handle).Methods(http.MethodPut)

	// Запускаем reaper неоплаченных бронирований (если включен)
	var pendingReaper *reaper.Reaper
	if cfg.Reaper.Enabled {
		pendingReaper = reaper.New(
			bookingSvc,
			cfg.Reaper.Schedule,
			time.Duration(cfg.Reaper.TTLMinutes)*time.Minute,
			log,
		)
		if err := pendingReaper.Start(); err != nil {
			log.Fatal("Failed to start reaper: %v", err)
		}
	}

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

	// Останавливаем reaper
	if pendingReaper != nil {
		pendingReaper.Stop()
	}

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
