// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/sntracker/backend/internal/adapters/db"
	"github.com/sntracker/backend/internal/adapters/storage"
	"github.com/sntracker/backend/internal/core/services"
	"github.com/sntracker/backend/internal/pkg/config"
	"github.com/sntracker/backend/internal/pkg/logger"
	"github.com/sntracker/backend/internal/workers"
)

func main() {
	slogger := logger.SetupLogger("info", "json")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	ctx := context.Background()

	if cfg.IsProduction() {
		sm, err := config.NewAWSSecretsManager(cfg.AWS.Region, cfg.App.Name, slogger)
		if err != nil {
			slogger.Error("failed to create secrets manager", slog.Any("error", err))
			os.Exit(1)
		}
		if err := cfg.ApplySecrets(ctx, sm, slogger); err != nil {
			slogger.Error("failed to apply secrets", slog.Any("error", err))
			os.Exit(1)
		}
	}

	database, err := initDatabase(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize database", slog.Any("error", err))
		os.Exit(1)
	}
	defer database.Close()

	store, err := storage.NewS3Storage(ctx, &storage.S3Config{
		Region:          cfg.AWS.Region,
		Bucket:          cfg.AWS.S3Bucket,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Endpoint:        cfg.AWS.S3Endpoint,
		UsePathStyle:    cfg.AWS.UsePathStyle,
	}, slogger)
	if err != nil {
		slogger.Error("failed to initialize storage", slog.Any("error", err))
		os.Exit(1)
	}

	// Read-only view over stock and ledger for snapshots
	stockRepo := db.NewStockRepository(database, cfg.Inventory.WipePageSize, slogger)
	ledgerRepo := db.NewLedgerRepository(database, cfg.Inventory.WipePageSize, slogger)
	importLogRepo := db.NewImportLogRepository(database, cfg.Inventory.WipePageSize, slogger)
	readService := services.NewInventoryService(stockRepo, ledgerRepo, importLogRepo, slogger)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:     cfg.Asynq.Concurrency,
		Queues:          cfg.Asynq.Queues,
		StrictPriority:  cfg.Asynq.StrictPriority,
		ErrorHandler:    asynq.ErrorHandlerFunc(handleError),
		RetryDelayFunc:  exponentialBackoff,
		ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
		Logger:          newAsynqLogger(slogger),
	})

	mux := asynq.NewServeMux()

	backupProcessor := workers.NewBackupProcessor(readService, store, cfg.Inventory.ExportTempDir, slogger)
	mux.HandleFunc(workers.TypeBackupSnapshot, backupProcessor.ProcessSnapshot)

	cleanupProcessor := workers.NewCleanupProcessor(store, cfg.Inventory.ExportTempDir, slogger)
	mux.HandleFunc(workers.TypeCleanupBackups, cleanupProcessor.ProcessBackupRetention)
	mux.HandleFunc(workers.TypeCleanupTempFiles, cleanupProcessor.ProcessTempFiles)

	scheduler, err := setupScheduler(cfg, redisOpt, slogger)
	if err != nil {
		slogger.Error("failed to set up scheduler", slog.Any("error", err))
		os.Exit(1)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(mux); err != nil {
			slogger.Error("failed to run worker server", slog.Any("error", err))
			shutdown <- syscall.SIGTERM
		}
	}()

	go func() {
		if err := scheduler.Run(); err != nil {
			slogger.Error("failed to run scheduler", slog.Any("error", err))
			shutdown <- syscall.SIGTERM
		}
	}()

	slogger.Info("worker started",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues),
		slog.String("backup_schedule", cfg.Asynq.BackupSchedule))

	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	scheduler.Shutdown()
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

// setupScheduler registers the nightly snapshot and the retention sweeps
func setupScheduler(cfg *config.Config, redisOpt asynq.RedisClientOpt, slogger *slog.Logger) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Logger: newAsynqLogger(slogger),
	})

	backupTask, err := workers.NewBackupSnapshotTask("scheduler")
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(cfg.Asynq.BackupSchedule, backupTask); err != nil {
		return nil, fmt.Errorf("failed to register backup schedule: %w", err)
	}

	cleanupTask, err := workers.NewCleanupBackupsTask(30)
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register("0 4 * * *", cleanupTask); err != nil {
		return nil, fmt.Errorf("failed to register backup retention schedule: %w", err)
	}

	if _, err := scheduler.Register("30 4 * * *", workers.NewCleanupTempFilesTask()); err != nil {
		return nil, fmt.Errorf("failed to register temp file schedule: %w", err)
	}

	return scheduler, nil
}

func initDatabase(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (*db.Database, error) {
	dbConfig := &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     10, // Fewer connections for worker
		MinConnections:     2,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		StatementCacheMode: cfg.Database.StatementCacheMode,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}

	return db.NewDatabase(ctx, dbConfig, slogger)
}

func handleError(ctx context.Context, task *asynq.Task, err error) {
	slog.ErrorContext(ctx, "task processing failed",
		slog.String("type", task.Type()),
		slog.String("payload", string(task.Payload())),
		slog.Any("error", err))
}

func exponentialBackoff(n int, e error, t *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	delay := baseDelay * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

// asynqLogger adapts slog for Asynq
type asynqLogger struct {
	logger *slog.Logger
}

func newAsynqLogger(slogger *slog.Logger) *asynqLogger {
	return &asynqLogger{
		logger: slogger.With(slog.String("component", "asynq")),
	}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
