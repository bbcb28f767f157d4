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
	"github.com/redis/go-redis/v9"

	abandonWizardSessionHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/abandon_wizard_session"
	advanceWizardStepHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/advance_wizard_step"
	backWizardStepHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/back_wizard_step"
	cancelAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getMaxDurationHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_max_duration"
	getWizardSessionHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_wizard_session"
	listClientAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_client_appointments"
	startChangeSessionHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/start_change_session"
	startWizardSessionHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/start_wizard_session"
	submitBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/submit_booking"
	submitChangeHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/submit_change"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	sessionStore "github.com/m04kA/SMC-AppointmentService/internal/infra/session"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	quoteRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/quote"
	rescheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/reschedule"
	providerServiceClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
	wizardSessionService "github.com/m04kA/SMC-AppointmentService/internal/service/wizardsession"
	cancelAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_appointment"
	getAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	getMaxDurationUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_max_duration"
	listClientAppointmentsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/list_client_appointments"
	startChangeSessionUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/start_change_session"
	submitBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/submit_booking"
	submitChangeUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/submit_change"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
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

	log.Info("Starting SMC-AppointmentService...")
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

	// Подключаемся к Redis (хранилище сессий мастера записи)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем интеграционного клиента ProviderService
	providerClient := providerServiceClient.NewClient(
		cfg.ProviderService.URL,
		time.Duration(cfg.ProviderService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (ProviderService=%s timeout=%ds)",
		cfg.ProviderService.URL, cfg.ProviderService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		quoteRepository       *quoteRepo.Repository
		rescheduleRepository  *rescheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		quoteRepository = quoteRepo.NewRepository(wrappedDB)
		rescheduleRepository = rescheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		quoteRepository = quoteRepo.NewRepository(db)
		rescheduleRepository = rescheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Хранилище сессий мастера записи
	sessions := sessionStore.NewStore(redisClient,
		time.Duration(cfg.Wizard.SessionTTLMinutes)*time.Minute)

	// Инициализируем сервисы
	wizardSvc := wizardSessionService.NewService(
		sessions,
		quoteRepository,
		providerClient,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		providerClient,
		cfg.Wizard.SlotGranularityMinutes,
		cfg.Wizard.MinLeadTimeMinutes,
		cfg.Wizard.MaxAdvanceDays,
		log,
	)
	getMaxDurationUseCase := getMaxDurationUC.NewUseCase(providerClient, log)
	getAppointmentUseCase := getAppointmentUC.NewUseCase(appointmentRepository, log)
	listClientAppointmentsUseCase := listClientAppointmentsUC.NewUseCase(appointmentRepository, log)
	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(appointmentRepository, log)
	submitBookingUseCase := submitBookingUC.NewUseCase(
		appointmentRepository,
		quoteRepository,
		sessions,
		txMgr,
		cfg.Wizard.MaxAdvanceDays,
		log,
	)
	startChangeSessionUseCase := startChangeSessionUC.NewUseCase(
		appointmentRepository,
		wizardSvc,
		log,
	)
	submitChangeUseCase := submitChangeUC.NewUseCase(
		appointmentRepository,
		rescheduleRepository,
		sessions,
		txMgr,
		cfg.Wizard.MaxAdvanceDays,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getMaxDuration := getMaxDurationHandler.NewHandler(getMaxDurationUseCase, log)
	startWizardSession := startWizardSessionHandler.NewHandler(wizardSvc, log)
	getWizardSession := getWizardSessionHandler.NewHandler(wizardSvc, log)
	advanceWizardStep := advanceWizardStepHandler.NewHandler(wizardSvc, log)
	backWizardStep := backWizardStepHandler.NewHandler(wizardSvc, log)
	abandonWizardSession := abandonWizardSessionHandler.NewHandler(wizardSvc, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(getAppointmentUseCase, log)
	listClientAppointments := listClientAppointmentsHandler.NewHandler(listClientAppointmentsUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	startChangeSession := startChangeSessionHandler.NewHandler(startChangeSessionUseCase, log)
	submitChange := submitChangeHandler.NewHandler(submitChangeUseCase, log)

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

	// Доступные слоты мастера на дату
	api.HandleFunc("/providers/{providerId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Максимальная длительность от выбранного времени
	api.HandleFunc("/providers/{providerId}/max-duration",
		getMaxDuration.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сессии мастера записи ---
	// Открытие сессии (новая запись, предвыбранный слот или смета)
	protected.HandleFunc("/wizard-sessions", startWizardSession.Handle).Methods(http.MethodPost)

	// Состояние сессии (возобновление после перезагрузки страницы)
	protected.HandleFunc("/wizard-sessions/{sessionId}", getWizardSession.Handle).Methods(http.MethodGet)

	// Переход к следующему шагу
	protected.HandleFunc("/wizard-sessions/{sessionId}/advance", advanceWizardStep.Handle).Methods(http.MethodPost)

	// Навигация назад
	protected.HandleFunc("/wizard-sessions/{sessionId}/back", backWizardStep.Handle).Methods(http.MethodPost)

	// Отмена сессии
	protected.HandleFunc("/wizard-sessions/{sessionId}", abandonWizardSession.Handle).Methods(http.MethodDelete)

	// Отправка собранного черновика
	protected.HandleFunc("/wizard-sessions/{sessionId}/submit", submitBooking.Handle).Methods(http.MethodPost)

	// --- Записи ---
	// Список записей клиента
	protected.HandleFunc("/clients/{clientId}/appointments", listClientAppointments.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Открытие сессии изменения (edit или reschedule по статусу)
	protected.HandleFunc("/appointments/{appointmentId}/change-session", startChangeSession.Handle).Methods(http.MethodPost)

	// Отправка изменений
	protected.HandleFunc("/appointments/{appointmentId}/change", submitChange.Handle).Methods(http.MethodPost)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

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
		log.Fatal("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
