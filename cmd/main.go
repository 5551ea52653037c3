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
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/cancel_booking"
	cancelBookingByTokenHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/cancel_booking_by_token"
	cancelHoldHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/cancel_hold"
	completeBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/complete_booking"
	createBlockedDateHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/create_blocked_date"
	createHoldHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/create_hold"
	deleteBlockedDateHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/delete_blocked_date"
	deleteBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_available_slots"
	getBlockedDatesHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_blocked_dates"
	getBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_booking"
	getRescheduleOptionsHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_reschedule_options"
	getSalonBookingsHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_salon_bookings"
	getUnavailableDatesHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_unavailable_dates"
	getWorkingHoursHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_working_hours"
	rescheduleBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/update_booking_status"
	updateWorkingHoursHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/update_working_hours"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/config"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
	holdRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/hold"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	scheduleRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/schedule"
	captchaClient "github.com/m04kA/Salon-BookingService/internal/integrations/captcha"
	mailerClient "github.com/m04kA/Salon-BookingService/internal/integrations/mailer"
	availabilityService "github.com/m04kA/Salon-BookingService/internal/service/availability"
	bookingsService "github.com/m04kA/Salon-BookingService/internal/service/bookings"
	scheduleService "github.com/m04kA/Salon-BookingService/internal/service/schedule"
	cancelHoldUC "github.com/m04kA/Salon-BookingService/internal/usecase/cancel_hold"
	completeBookingUC "github.com/m04kA/Salon-BookingService/internal/usecase/complete_booking"
	createHoldUC "github.com/m04kA/Salon-BookingService/internal/usecase/create_hold"
	getAvailableSlotsUC "github.com/m04kA/Salon-BookingService/internal/usecase/get_available_slots"
	getRescheduleOptionsUC "github.com/m04kA/Salon-BookingService/internal/usecase/get_reschedule_options"
	getUnavailableDatesUC "github.com/m04kA/Salon-BookingService/internal/usecase/get_unavailable_dates"
	rescheduleBookingUC "github.com/m04kA/Salon-BookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/logger"
	"github.com/m04kA/Salon-BookingService/pkg/metrics"
	"github.com/m04kA/Salon-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/Salon-BookingService/pkg/txmanager"
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

	log.Info("Starting Salon-BookingService...")
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

	// Применяем миграции
	if cfg.Database.MigrationsDir != "" {
		if err := goose.Up(db, cfg.Database.MigrationsDir); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied successfully")
	}

	// Инициализируем интеграционных клиентов
	mailer := mailerClient.NewClient(
		cfg.Mailer.URL,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	captcha := captchaClient.NewClient(
		cfg.Captcha.VerifyURL,
		cfg.Captcha.Secret,
		cfg.Captcha.Enabled,
		time.Duration(cfg.Captcha.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Mailer=%s timeout=%ds, Captcha enabled=%t)",
		cfg.Mailer.URL, cfg.Mailer.Timeout, cfg.Captcha.Enabled)

	// Инициализируем репозитории (с метриками или без)
	var (
		salonRepository    *salonRepo.Repository
		catalogRepository  *catalogRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		bookingRepository  *bookingRepo.Repository
		holdRepository     *holdRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		salonRepository = salonRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		holdRepository = holdRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		salonRepository = salonRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		holdRepository = holdRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		scheduleRepository,
		bookingRepository,
		holdRepository,
		log,
	)
	bookingsSvc := bookingsService.NewService(
		bookingRepository,
		mailer,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		log,
	)

	// Инициализируем use cases
	getUnavailableDatesUseCase := getUnavailableDatesUC.NewUseCase(
		salonRepository,
		catalogRepository,
		availabilitySvc,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		salonRepository,
		catalogRepository,
		availabilitySvc,
		log,
	)
	createHoldUseCase := createHoldUC.NewUseCase(
		salonRepository,
		catalogRepository,
		holdRepository,
		availabilitySvc,
		txMgr,
		log,
	)
	cancelHoldUseCase := cancelHoldUC.NewUseCase(
		holdRepository,
		log,
	)
	completeBookingUseCase := completeBookingUC.NewUseCase(
		salonRepository,
		catalogRepository,
		holdRepository,
		bookingRepository,
		txMgr,
		captcha,
		mailer,
		log,
	)
	getRescheduleOptionsUseCase := getRescheduleOptionsUC.NewUseCase(
		salonRepository,
		catalogRepository,
		bookingRepository,
		availabilitySvc,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		salonRepository,
		catalogRepository,
		bookingRepository,
		availabilitySvc,
		txMgr,
		captcha,
		mailer,
		log,
	)

	// Инициализируем handlers
	getUnavailableDates := getUnavailableDatesHandler.NewHandler(getUnavailableDatesUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createHold := createHoldHandler.NewHandler(createHoldUseCase, log)
	cancelHold := cancelHoldHandler.NewHandler(cancelHoldUseCase, log)
	completeBooking := completeBookingHandler.NewHandler(completeBookingUseCase, log)
	cancelBookingByToken := cancelBookingByTokenHandler.NewHandler(salonRepository, bookingsSvc, log)
	getRescheduleOptions := getRescheduleOptionsHandler.NewHandler(getRescheduleOptionsUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)

	getBooking := getBookingHandler.NewHandler(salonRepository, bookingsSvc, log)
	getSalonBookings := getSalonBookingsHandler.NewHandler(salonRepository, bookingsSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(salonRepository, bookingsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(salonRepository, bookingsSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(salonRepository, bookingsSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(salonRepository, scheduleSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(salonRepository, scheduleSvc, log)
	getBlockedDates := getBlockedDatesHandler.NewHandler(salonRepository, scheduleSvc, log)
	createBlockedDate := createBlockedDateHandler.NewHandler(salonRepository, scheduleSvc, log)
	deleteBlockedDate := deleteBlockedDateHandler.NewHandler(salonRepository, scheduleSvc, log)

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
	// PUBLIC ROUTES (виджет, без аутентификации)
	// ============================================================

	widget := api.PathPrefix("/salons/{salonSlug}").Subrouter()

	// Недоступные даты периода
	widget.HandleFunc("/availability", getUnavailableDates.Handle).Methods(http.MethodGet)

	// Доступные слоты дня
	widget.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Резервация слота
	widget.HandleFunc("/holds", createHold.Handle).Methods(http.MethodPost)

	// Досрочное освобождение слота
	widget.HandleFunc("/holds/{holdId}/cancel", cancelHold.Handle).Methods(http.MethodPost)

	// Подтверждение бронирования
	widget.HandleFunc("/bookings", completeBooking.Handle).Methods(http.MethodPost)

	// Отмена по клиентской ссылке
	widget.HandleFunc("/bookings/cancel/{cancelToken}", cancelBookingByToken.Handle).Methods(http.MethodPost)

	// Перенос по клиентской ссылке
	widget.HandleFunc("/reschedule/{token}", getRescheduleOptions.Handle).Methods(http.MethodGet)
	widget.HandleFunc("/reschedule/{token}/slots", getRescheduleOptions.HandleSlots).Methods(http.MethodGet)
	widget.HandleFunc("/reschedule/{token}", rescheduleBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (дашборд, требуют X-Salon-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/salons/{salonId:[0-9]+}/bookings", getSalonBookings.Handle).Methods(http.MethodGet)

	// --- Расписание салона ---
	protected.HandleFunc("/salons/{salonId:[0-9]+}/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId:[0-9]+}/working-hours", updateWorkingHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/salons/{salonId:[0-9]+}/blocked-dates", getBlockedDates.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId:[0-9]+}/blocked-dates", createBlockedDate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId:[0-9]+}/blocked-dates/{blockedDateId}", deleteBlockedDate.Handle).Methods(http.MethodDelete)

	// Зачистка истёкших hold'ов (housekeeping, корректность от неё не зависит)
	stopReaperCh := make(chan struct{})
	if cfg.Booking.ReaperEnabled {
		go runHoldReaper(holdRepository, time.Duration(cfg.Booking.ReaperIntervalMinutes)*time.Minute, stopReaperCh, log)
		log.Info("Hold reaper started (interval=%dm)", cfg.Booking.ReaperIntervalMinutes)
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
	if cfg.Booking.ReaperEnabled {
		close(stopReaperCh)
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

// runHoldReaper периодически удаляет истёкшие hold'ы
func runHoldReaper(repo *holdRepo.Repository, interval time.Duration, stopCh <-chan struct{}, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			deleted, err := repo.DeleteExpired(ctx, time.Now())
			cancel()

			if err != nil {
				log.Error("Hold reaper: failed to delete expired holds: %v", err)
				continue
			}
			if deleted > 0 {
				log.Info("Hold reaper: deleted %d expired holds", deleted)
			}

		case <-stopCh:
			return
		}
	}
}
