package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/cyclecart/internal/api"
	"github.com/terraincognita07/cyclecart/internal/config"
	"github.com/terraincognita07/cyclecart/internal/db"
	"github.com/terraincognita07/cyclecart/internal/i18n"
	"github.com/terraincognita07/cyclecart/internal/logger"
	"github.com/terraincognita07/cyclecart/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", "err", err)
	}
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		logger.Fatal("logger init failed", "err", err)
	}
	time.Local = cfg.Location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("database init failed", "err", err)
	}
	repos := db.NewRepositories(database)

	i18nManager, err := i18n.NewEmbeddedManager(cfg.DefaultLanguage)
	if err != nil {
		logger.Fatal("i18n init failed", "err", err)
	}

	handler, err := api.NewHandler(api.Dependencies{
		Cycles:        services.NewCycleService(repos.CycleRecords, cfg.Location),
		Subscriptions: repos.ReminderSubscriptions,
		I18n:          i18nManager,
		SecretKey:     cfg.SecretKey,
		Location:      cfg.Location,
		CookieSecure:  cfg.CookieSecure,
	})
	if err != nil {
		logger.Fatal("handler init failed", "err", err)
	}
	app := newApp(handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	if _, err := startReminderDispatcher(lifecycleCtx, cfg, repos, i18nManager); err != nil {
		logger.Fatal("reminder dispatcher init failed", "err", err)
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "err", err)
		}
	}()

	logger.Info("cyclecart listening", "addr", "0.0.0.0:"+cfg.Port, "db", cfg.DBPath, "tz", cfg.Location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", "err", err)
	}
}

func newApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "cyclecart",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)
	return app
}

func startReminderDispatcher(ctx context.Context, cfg config.Config, repos *db.Repositories, messages *i18n.Manager) (bool, error) {
	notifier := services.NewTelegramNotifier(cfg.TelegramBotToken)
	if !notifier.Enabled() {
		logger.Warn("TELEGRAM_BOT_TOKEN is not set, reminder dispatch disabled")
		return false, nil
	}

	dispatcher := services.NewReminderDispatcher(repos.CycleRecords, repos.ReminderSubscriptions, notifier, messages, cfg.Location).
		WithShopURL(cfg.ShopURL)
	if err := dispatcher.Start(ctx, cfg.ReminderSchedule); err != nil {
		return false, err
	}
	logger.Info("reminder dispatcher scheduled", "schedule", cfg.ReminderSchedule)
	return true, nil
}
