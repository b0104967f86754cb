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

	confirmPaymentHandler "github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers/confirm_payment"
	copyWeekHandler "github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers/copy_week"
	createBookingHandler "github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers/create_booking"
	getAdminBookingsHandler "github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers/get_admin_bookings"
	getAvailabilityHandler "github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers/get_client_bookings"
	rescheduleBookingHandler "github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers/reschedule_booking"
	setAvailabilityHandler "github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers/set_availability"
	setAvailabilityBulkHandler "github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers/set_availability_bulk"
	updateNoteHandler "github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers/update_note"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/api/middleware"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/config"
	bookingRepo "github.com/dlazarev-dev/TPS-SchedulingService/internal/infra/storage/booking"
	scheduleRepo "github.com/dlazarev-dev/TPS-SchedulingService/internal/infra/storage/schedule"
	notifyServiceClient "github.com/dlazarev-dev/TPS-SchedulingService/internal/integrations/notifyservice"
	"github.com/dlazarev-dev/TPS-SchedulingService/internal/reminder"
	availabilityService "github.com/dlazarev-dev/TPS-SchedulingService/internal/service/availability"
	bookingsService "github.com/dlazarev-dev/TPS-SchedulingService/internal/service/bookings"
	confirmPaymentUC "github.com/dlazarev-dev/TPS-SchedulingService/internal/usecase/confirm_payment"
	createBookingUC "github.com/dlazarev-dev/TPS-SchedulingService/internal/usecase/create_booking"
	rescheduleBookingUC "github.com/dlazarev-dev/TPS-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/dbmetrics"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/logger"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/metrics"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/simpletxmanager"
	"github.com/dlazarev-dev/TPS-SchedulingService/pkg/txmanager"
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

	log.Info("Starting TPS-SchedulingService...")
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

	// Инициализируем клиент сервиса уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Notify service client initialized (url=%s, timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(scheduleRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		notifyClient,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		txMgr,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		txMgr,
		log,
	)

	// Инициализируем планировщик напоминаний
	if cfg.Reminders.Enabled {
		reminderScheduler := reminder.NewScheduler(
			bookingRepository,
			notifyClient,
			time.Duration(cfg.Reminders.WindowHalfMinutes)*time.Minute,
			log,
		)
		if err := reminderScheduler.Start(cfg.Reminders.CronSpec); err != nil {
			log.Fatal("Failed to start reminder scheduler: %v", err)
		}
		defer reminderScheduler.Stop()
	}

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	setAvailability := setAvailabilityHandler.NewHandler(availabilitySvc, log)
	setAvailabilityBulk := setAvailabilityBulkHandler.NewHandler(availabilitySvc, log)
	copyWeek := copyWeekHandler.NewHandler(availabilitySvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	updateNote := updateNoteHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// Чтение расписания админа (прошедшие дни вычищаются при чтении)
	api.HandleFunc("/admins/{adminId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Клиентская запись на сессию
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Подтверждение оплаты (вызывается после ответа платежной системы)
	api.HandleFunc("/bookings/{bookingId}/confirm-payment",
		confirmPayment.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Admin-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание ---
	// Установка/снятие одного слота
	protected.HandleFunc("/admins/{adminId}/availability",
		setAvailability.Handle).Methods(http.MethodPut)

	// Массовая установка/снятие слотов дня
	protected.HandleFunc("/admins/{adminId}/availability/bulk",
		setAvailabilityBulk.Handle).Methods(http.MethodPut)

	// Копирование слотов дня на неделю
	protected.HandleFunc("/admins/{adminId}/availability/copy-week",
		copyWeek.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	// Прямая запись админом (сразу confirmed)
	protected.HandleFunc("/admins/{adminId}/bookings",
		createBooking.HandleAdminDirect).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Перенос сессии
	protected.HandleFunc("/bookings/{bookingId}", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// Обновление заметки
	protected.HandleFunc("/bookings/{bookingId}/note", updateNote.Handle).Methods(http.MethodPut)

	// Бронирования админа на день
	protected.HandleFunc("/admins/{adminId}/bookings", getAdminBookings.Handle).Methods(http.MethodGet)

	// История бронирований клиента
	protected.HandleFunc("/clients/{email}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

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

	log.Info("Server stopped gracefully")
}
