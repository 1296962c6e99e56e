package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/drivewatch/internal/config"
	"github.com/aleister1102/drivewatch/internal/datastore"
	"github.com/aleister1102/drivewatch/internal/drive"
	"github.com/aleister1102/drivewatch/internal/logger"
	"github.com/aleister1102/drivewatch/internal/monitor"
	"github.com/aleister1102/drivewatch/internal/notifier"
	"github.com/aleister1102/drivewatch/internal/reporter"
	"github.com/aleister1102/drivewatch/internal/scheduler"
)

// The summary job runs in the morning, outside any reasonable monitoring
// window, so it never competes with a cycle for the daily run budget.
const summaryHour = 7

func main() {
	flags := ParseFlags()

	fileCfg, err := config.LoadConfigFile(flags.ConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load config file: %v", err)
	}

	zLogger, err := logger.New(fileCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}
	zLogger.Info().Str("mode", flags.Mode).Msg("drivewatch starting")

	store, err := config.NewPropertyStore(fileCfg.StorageConfig.SQLiteDBPath, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to open configuration store")
	}
	defer store.Close()

	// The file config seeds the store on first run; afterwards the store is
	// authoritative and the file only supplies paths and log settings.
	if err := store.Bootstrap(fileCfg); err != nil {
		zLogger.Warn().Err(err).Msg("Configuration bootstrap failed, store may be unseeded")
	}

	cfg, err := store.Load()
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to load configuration from store")
	}

	accessToken := os.Getenv("DRIVEWATCH_ACCESS_TOKEN")
	if accessToken == "" {
		zLogger.Fatal().Msg("DRIVEWATCH_ACCESS_TOKEN is not set")
	}
	source, err := drive.NewClient(accessToken, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to initialize storage API client")
	}

	db, err := datastore.NewDB(fileCfg.StorageConfig.SQLiteDBPath, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to open change log database")
	}
	defer db.Close()

	notificationHelper := notifier.NewNotificationHelperFromConfig(cfg.NotificationConfig.RetryConfig, zLogger)
	engine := monitor.NewEngine(store, source, db, notificationHelper, zLogger)
	publisher := reporter.NewSummaryPublisher(db, notificationHelper, zLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch flags.Mode {
	case "once":
		runOnce(ctx, engine, flags, zLogger)
	case "daemon":
		runDaemon(ctx, engine, publisher, store, zLogger)
	}
}

func runOnce(ctx context.Context, engine *monitor.Engine, flags AppFlags, zLogger zerolog.Logger) {
	result := engine.Execute(ctx, monitor.ExecuteOptions{
		ForceRun: flags.ForceRun,
		UserID:   flags.UserID,
	})
	if !result.Success {
		zLogger.Warn().
			Str("cycle_id", result.CycleID).
			Str("message", result.Message).
			Msg("Cycle did not complete")
		os.Exit(1)
	}
	zLogger.Info().
		Str("cycle_id", result.CycleID).
		Int("changes_found", result.ChangesFound).
		Int("notifications_sent", result.NotificationsSent).
		Msg("Cycle finished")
}

func runDaemon(
	ctx context.Context,
	engine *monitor.Engine,
	publisher *reporter.SummaryPublisher,
	store config.Store,
	zLogger zerolog.Logger,
) {
	registry := scheduler.NewCronRegistry(zLogger)
	registry.SetJob(scheduler.EntryPointMonitorCycle, func(jobCtx context.Context) {
		engine.Execute(jobCtx, monitor.ExecuteOptions{})
	})
	registry.SetJob(scheduler.EntryPointDailySummary, func(jobCtx context.Context) {
		publishSummaries(jobCtx, publisher, store, zLogger)
	})

	cfg, err := store.Load()
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to load configuration for scheduling")
	}

	reconciler := scheduler.NewReconciler(registry, zLogger)
	if _, err := reconciler.Reconcile(cfg.ScheduleConfig); err != nil {
		zLogger.Fatal().Err(err).Msg("Schedule reconciliation failed")
	}
	if cfg.NotificationConfig.SummaryEnabled {
		if _, err := registry.RegisterDailyRun(scheduler.EntryPointDailySummary, summaryHour); err != nil {
			zLogger.Error().Err(err).Msg("Failed to register summary job")
		}
	}

	registry.Start()
	zLogger.Info().Msg("Scheduler started, waiting for run times")

	<-ctx.Done()
	zLogger.Info().Msg("Shutdown signal received, stopping scheduler")
	registry.Stop()
}

func publishSummaries(ctx context.Context, publisher *reporter.SummaryPublisher, store config.Store, zLogger zerolog.Logger) {
	cfg, err := store.Load()
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to load configuration for summaries")
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if _, err := publisher.PublishDaily(publishCtx, "", cfg.NotificationConfig); err != nil {
		zLogger.Error().Err(err).Msg("Daily summary publish failed")
	}
	if publisher.DueWeekly(cfg.NotificationConfig) {
		if _, err := publisher.PublishWeekly(publishCtx, cfg.NotificationConfig); err != nil {
			zLogger.Error().Err(err).Msg("Weekly summary publish failed")
		}
	}
}
