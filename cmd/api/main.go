package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/platform-admin/internal/api/http"
	"github.com/spec-kit/platform-admin/internal/api/http/handlers"
	"github.com/spec-kit/platform-admin/internal/auth"
	"github.com/spec-kit/platform-admin/internal/config"
	"github.com/spec-kit/platform-admin/internal/events"
	"github.com/spec-kit/platform-admin/internal/observability"
	"github.com/spec-kit/platform-admin/internal/persistence"
	"github.com/spec-kit/platform-admin/internal/repository"
	"github.com/spec-kit/platform-admin/internal/schedule"
	"github.com/spec-kit/platform-admin/internal/service"
	"github.com/spec-kit/platform-admin/internal/sysinfo"
	"github.com/spec-kit/platform-admin/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	deviceRepo := repository.NewDeviceRepository(pool)
	jobRepo := repository.NewJobRepository(pool)
	flowRepo := repository.NewFlowRepository(pool)
	packageRepo := repository.NewServicePackageRepository(pool)
	transactionRepo := repository.NewTransactionRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	apiLogRepo := repository.NewAPILogRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, userRepo)
	accountService := service.NewAccountService(userRepo, dispatcher)
	deviceService := service.NewDeviceService(deviceRepo, redis.Client, cfg.Schedule, logger)
	jobService := service.NewJobService(jobRepo, deviceRepo, flowRepo)
	flowService := service.NewFlowService(flowRepo)
	billingService := service.NewBillingService(packageRepo, transactionRepo)
	settingsService := service.NewSettingsService(settingRepo)
	dashboardService := service.NewDashboardService(statsRepo, logger)

	notificationService := service.NewNotificationService(notificationRepo, logger)
	worker.StartNotificationWorker(notificationService, dispatcher)

	registry := schedule.NewRegistry()
	schedule.RegisterMaintenanceTasks(registry, schedule.TaskDependencies{
		Devices:       deviceRepo,
		Jobs:          jobRepo,
		APILogs:       apiLogRepo,
		Notifications: notificationRepo,
		Redis:         redis.Client,
		Dispatcher:    dispatcher,
		Config:        cfg.Schedule,
		Logger:        logger,
	})
	runStore := schedule.NewRedisRunStore(redis.Client, cfg.Schedule.LastRunTTL())
	runner := schedule.NewRunner(registry, runStore, dispatcher, logger)

	go worker.StartSchedulerWorker(ctx, runner, cfg.Schedule.Interval(), logger)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	collector := sysinfo.NewCollector(logger, ".")

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	app.Use(httptransport.APILogRecorder(apiLogRepo, logger))

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(accountService),
		Devices:        handlers.NewDevicesHandler(deviceService),
		Jobs:           handlers.NewJobsHandler(jobService),
		Flows:          handlers.NewFlowsHandler(flowService),
		Billing:        handlers.NewBillingHandler(billingService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Settings:       handlers.NewSettingsHandler(settingsService),
		APILogs:        handlers.NewAPILogsHandler(apiLogRepo),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		System:         handlers.NewSystemHandler(collector, metrics),
		Schedule:       handlers.NewScheduleHandler(runner, cfg.Schedule.CleanupLogPath),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
