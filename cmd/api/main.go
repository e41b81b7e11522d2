// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/sntracker/backend/internal/adapters/db"
	redis_a "github.com/sntracker/backend/internal/adapters/redis_adapter"
	"github.com/sntracker/backend/internal/core/services"
	"github.com/sntracker/backend/internal/handlers"
	"github.com/sntracker/backend/internal/handlers/middleware"
	"github.com/sntracker/backend/internal/pkg/config"
	"github.com/sntracker/backend/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting serialized inventory tracker",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	if cfg.IsProduction() {
		sm, err := config.NewAWSSecretsManager(cfg.AWS.Region, cfg.App.Name, slogger)
		if err != nil {
			slogger.Error("failed to initialize secrets manager", slog.Any("error", err))
			os.Exit(1)
		}
		if err := cfg.ApplySecrets(ctx, sm, slogger); err != nil {
			slogger.Error("failed to apply secrets", slog.Any("error", err))
			os.Exit(1)
		}
	}

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.Any("error", err))
		os.Exit(1)
	}
	defer deps.cleanup()

	if !cfg.IsProduction() {
		if err := runMigrations(ctx, cfg, slogger); err != nil {
			slogger.Error("failed to run migrations", slog.Any("error", err))
			// Don't exit in development, just warn
		}
	}

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
			slog.Bool("tls", cfg.Server.TLSEnabled),
		)

		if cfg.Server.TLSEnabled {
			serverErrors <- server.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			serverErrors <- server.ListenAndServe()
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.Any("error", err))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.Any("error", err))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database       *db.Database
	redisClient    *redis.Client
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector

	inventoryHandler *handlers.InventoryHandler
	checkoutHandler  *handlers.CheckoutHandler
	ingestHandler    *handlers.IngestHandler
	historyHandler   *handlers.HistoryHandler
	adminHandler     *handlers.AdminHandler
	dashboardHandler *handlers.DashboardHandler
	exportHandler    *handlers.ExportHandler
	healthHandler    *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.asynqInspector != nil {
		d.asynqInspector.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.database != nil {
		d.database.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	slogger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		StatementCacheMode: cfg.Database.StatementCacheMode,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, slogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	slogger.Info("connecting to Redis",
		slog.String("host", cfg.Redis.Host),
		slog.String("port", cfg.Redis.Port),
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:            fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		MaxRetries:      cfg.Redis.MaxRetries,
		MinRetryBackoff: cfg.Redis.MinRetryBackoff,
		MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
		DialTimeout:     cfg.Redis.DialTimeout,
		ReadTimeout:     cfg.Redis.ReadTimeout,
		WriteTimeout:    cfg.Redis.WriteTimeout,
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		ConnMaxLifetime: cfg.Redis.MaxConnAge,
		PoolTimeout:     cfg.Redis.PoolTimeout,
		ConnMaxIdleTime: cfg.Redis.IdleTimeout,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	deps.redisClient = redisClient

	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, slogger)
	invalidator := redis_a.NewInvalidator(cache, slogger)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
	deps.asynqClient = asynq.NewClient(asynqRedisOpt)
	deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)

	// Repositories
	stockRepo := db.NewStockRepository(database, cfg.Inventory.WipePageSize, slogger)
	ledgerRepo := db.NewLedgerRepository(database, cfg.Inventory.WipePageSize, slogger)
	importLogRepo := db.NewImportLogRepository(database, cfg.Inventory.WipePageSize, slogger)

	// Services
	ingestService := services.NewIngestService(stockRepo, importLogRepo, invalidator, cfg.Inventory.ImportChunkSize, slogger)
	checkoutService := services.NewCheckoutService(ledgerRepo, invalidator, slogger)
	maintenanceService := services.NewMaintenanceService(stockRepo, invalidator, slogger)
	adminService := services.NewAdminService(stockRepo, ledgerRepo, importLogRepo, invalidator, slogger)
	readService := services.NewInventoryService(stockRepo, ledgerRepo, importLogRepo, slogger)

	// Handlers
	deps.inventoryHandler = handlers.NewInventoryHandler(readService, maintenanceService, cache, slogger)
	deps.checkoutHandler = handlers.NewCheckoutHandler(checkoutService, slogger)
	deps.ingestHandler = handlers.NewIngestHandler(ingestService, slogger, int64(cfg.Inventory.ImportMaxSizeMB)*1024*1024)
	deps.historyHandler = handlers.NewHistoryHandler(readService, cache, cfg.Inventory.ImportLogDisplay, slogger)
	deps.adminHandler = handlers.NewAdminHandler(adminService, slogger)
	deps.dashboardHandler = handlers.NewDashboardHandler(readService, cache, slogger)
	deps.exportHandler = handlers.NewExportHandler(readService, slogger)
	deps.healthHandler = handlers.NewHealthHandler(database, redisClient, deps.asynqInspector, cfg, slogger)

	slogger.Info("all dependencies initialized")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, slogger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	registerRoutes(mux, deps, cfg, slogger)

	// Apply middleware in reverse order (innermost first)
	var handler http.Handler = mux

	if cfg.Server.WriteTimeout > 0 {
		handler = middleware.Timeout(cfg.Server.WriteTimeout)(handler)
	}
	if cfg.Security.SecureHeaders {
		handler = middleware.SecureHeaders(handler)
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}
	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}
	handler = middleware.Recovery(slogger)(handler)
	handler = middleware.Logger(slogger)(handler)
	handler = middleware.RequestID(handler)

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(slogger.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies, cfg *config.Config, slogger *slog.Logger) {
	if cfg.Server.EnableHealthCheck {
		mux.HandleFunc("GET /health", deps.healthHandler.Health)
		mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)
	}

	// Every /api/v1 route requires credentials; authed is the per-route
	// wrapper since ServeMux has no route groups.
	auth := middleware.BasicAuth(cfg.Security, slogger)
	authed := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}
	adminOnly := middleware.RequireRole(middleware.RoleAdmin)
	adminAuthed := func(h http.HandlerFunc) http.Handler {
		return auth(adminOnly(h))
	}
	pin := middleware.RequireAdminPIN(cfg.Security, slogger)
	pinAuthed := func(h http.HandlerFunc) http.Handler {
		return auth(adminOnly(pin(h)))
	}

	apiV1 := "/api/v1"

	// Inventory; maintenance edits require the admin PIN on top of the role
	mux.Handle("GET "+apiV1+"/inventory", authed(deps.inventoryHandler.ScanInventory))
	mux.Handle("GET "+apiV1+"/inventory/{serial}", authed(deps.inventoryHandler.GetItem))
	mux.Handle("PATCH "+apiV1+"/inventory/{serial}/price", pinAuthed(deps.inventoryHandler.UpdatePrice))
	mux.Handle("DELETE "+apiV1+"/inventory/{serial}", pinAuthed(deps.inventoryHandler.DeleteItem))

	// Ingestion is admin-only; cashiers browse and check out.
	mux.Handle("POST "+apiV1+"/inventory/manual", adminAuthed(deps.ingestHandler.IngestManual))
	mux.Handle("POST "+apiV1+"/inventory/import", adminAuthed(deps.ingestHandler.IngestSpreadsheet))

	// Checkout and history
	mux.Handle("POST "+apiV1+"/checkout", authed(deps.checkoutHandler.Checkout))
	mux.Handle("GET "+apiV1+"/transactions", authed(deps.historyHandler.ListTransactions))
	mux.Handle("GET "+apiV1+"/import-logs", authed(deps.historyHandler.ListImportLogs))

	// Dashboards
	mux.Handle("GET "+apiV1+"/dashboard/stock", authed(deps.dashboardHandler.GetStockRecap))
	mux.Handle("GET "+apiV1+"/dashboard/sales", authed(deps.dashboardHandler.GetSalesRecap))

	// Exports
	mux.Handle("GET "+apiV1+"/export/inventory", authed(deps.exportHandler.ExportInventory))
	mux.Handle("GET "+apiV1+"/export/transactions", authed(deps.exportHandler.ExportTransactions))

	// Destructive admin surface: admin role plus a second-factor PIN
	mux.Handle("DELETE "+apiV1+"/admin/collections/{name}",
		pinAuthed(deps.adminHandler.WipeCollection))

	// pprof endpoints (development only)
	if cfg.Server.EnablePprof && cfg.IsDevelopment() {
		mux.HandleFunc("GET /debug/pprof/", http.HandlerFunc(http.DefaultServeMux.ServeHTTP))
	}
}

func runMigrations(ctx context.Context, cfg *config.Config, slogger *slog.Logger) error {
	slogger.Info("running database migrations")

	migrationConfig := &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		SourcePath:  cfg.Database.MigrationPath,
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}

	return db.RunMigrationsWithRetry(ctx, migrationConfig, slogger, 3)
}
