package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"content_watcher/internal/config"
	"content_watcher/internal/dispatcher"
	"content_watcher/internal/notify"
	"content_watcher/internal/publisher"
	"content_watcher/internal/scheduler"
	"content_watcher/internal/service"
	"content_watcher/internal/source/instagram"
	"content_watcher/internal/source/rss"
	"content_watcher/internal/source/youtube"
	"content_watcher/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize stores
	checkStateStore := postgres.NewCheckStateStore(db)
	notificationStore := postgres.NewNotificationStore(db)

	// Initialize Telegram channel
	channel, err := notify.NewTelegram(notify.Config{
		Token:  cfg.Telegram.Token,
		ChatID: cfg.Telegram.ChatID,
	}, logger)
	if err != nil {
		logger.Error("failed to create telegram channel", "error", err)
		os.Exit(1)
	}

	// Optional notification event feed
	var events dispatcher.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	disp := dispatcher.New(channel, notificationStore, events, cfg.Check.MessageDelay, logger)

	// Initialize source pollers; unconfigured sources are skipped per
	// cycle, disabled ones are not registered at all.
	var pollers []service.Poller
	if cfg.Sources.YouTube.Enabled {
		pollers = append(pollers, youtube.New(youtube.Config{
			APIKey:    cfg.Sources.YouTube.APIKey,
			ChannelID: cfg.Sources.YouTube.ChannelID,
		}, logger))
	}
	if cfg.Sources.Instagram.Enabled {
		pollers = append(pollers, instagram.New(instagram.Config{
			Username:  cfg.Sources.Instagram.Username,
			SessionID: cfg.Sources.Instagram.SessionID,
		}, logger))
	}
	if cfg.Sources.RSS.Enabled {
		pollers = append(pollers, rss.New(rss.Config{
			FeedURL: cfg.Sources.RSS.FeedURL,
			Title:   cfg.Sources.RSS.Title,
		}, logger))
	}

	checkService := service.NewCheckService(
		pollers,
		checkStateStore,
		notificationStore,
		disp,
		logger,
		service.Config{FetchLimit: cfg.Check.FetchLimit},
	)

	sched, err := scheduler.New(checkService, notificationStore, disp, scheduler.Config{
		IntervalMinutes:      cfg.Check.IntervalMinutes,
		InitialDelay:         cfg.Check.InitialDelay,
		CleanupTime:          cfg.Check.CleanupTime,
		RetentionDays:        cfg.Check.RetentionDays,
		ErrorSummaryInterval: cfg.Check.ErrorSummaryInterval,
	}, logger)
	if err != nil {
		logger.Error("failed to create scheduler", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("starting content watcher",
		"sources", len(pollers),
		"interval_minutes", cfg.Check.IntervalMinutes,
	)

	if err := sched.Start(ctx); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	if err := disp.SendRaw(ctx, fmt.Sprintf("👀 Content watcher started, watching %d source(s)", len(pollers))); err != nil {
		logger.Warn("failed to announce startup", "error", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig)

	sched.Stop()
	if err := disp.SendRaw(ctx, "💤 Content watcher stopped"); err != nil {
		logger.Warn("failed to announce shutdown", "error", err)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
