package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hrhller/registro-bot/internal/app"
	"github.com/hrhller/registro-bot/internal/catalog"
	"github.com/hrhller/registro-bot/internal/config"
	"github.com/hrhller/registro-bot/internal/controller"
	"github.com/hrhller/registro-bot/internal/controller/state"
	"github.com/hrhller/registro-bot/internal/repository"
	"github.com/hrhller/registro-bot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting registration bot",
		zap.String("environment", cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	// Two long-polling instances on one token steal each other's updates,
	// so only one instance may run against a database.
	lock, err := app.AcquireInstanceLock(ctx, pool, logger)
	if err != nil {
		if errors.Is(err, app.ErrAlreadyRunning) {
			logger.Fatal("Another bot instance is already running, exiting")
		}
		logger.Fatal("Failed to acquire instance lock", zap.Error(err))
	}
	defer lock.Release(context.Background())

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	cctCatalog, err := catalog.Load(cfg.CCTFile, logger)
	if err != nil {
		logger.Fatal("Failed to load CCT catalog", zap.Error(err))
	}

	contactRepo := repository.NewContactRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	registrationService := service.NewRegistrationService(contactRepo, studentRepo, logger)

	stateManager := state.NewManager()

	sweeper := app.NewStateSweeper(stateManager, cfg.StateTTL, logger)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	b, err := bot.New(cfg.TelegramToken,
		bot.WithMiddlewares(controller.TraceRequests(logger)))
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, registrationService, cctCatalog, stateManager, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	logger.Info("Bot is up, waiting for updates")
	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
