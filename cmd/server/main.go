package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	sellerapp "github.com/venta/backend/internal/application/seller"
	"github.com/venta/backend/internal/infrastructure/cache"
	"github.com/venta/backend/internal/infrastructure/config"
	"github.com/venta/backend/internal/infrastructure/directory"
	"github.com/venta/backend/internal/infrastructure/event"
	"github.com/venta/backend/internal/infrastructure/logger"
	"github.com/venta/backend/internal/infrastructure/messaging"
	"github.com/venta/backend/internal/infrastructure/migration"
	"github.com/venta/backend/internal/infrastructure/persistence"
	"github.com/venta/backend/internal/infrastructure/storage"
	"github.com/venta/backend/internal/infrastructure/telemetry"
	"github.com/venta/backend/internal/interfaces/http/handler"
	"github.com/venta/backend/internal/interfaces/http/router"
	"github.com/venta/backend/migrations"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Starting seller service",
		zap.String("port", cfg.App.Port),
		zap.String("version", telemetry.ServiceVersion),
	)

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return fmt.Errorf("init log export: %w", err)
	}
	log = logsProvider.Bridge(log, logger.ParseLevel(cfg.Log.Level))
	defer shutdownTelemetry(log, tracerProvider, meterProvider, logsProvider)

	meter := meterProvider.Meter(telemetry.TracerName)
	sellerMetrics, err := telemetry.NewSellerMetrics(meter)
	if err != nil {
		return fmt.Errorf("init seller metrics: %w", err)
	}

	// Database
	if cfg.Database.AutoMigrate {
		if err := migrateUp(cfg, log); err != nil {
			return err
		}
	}
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log)
	db, err := persistence.Open(ctx, &cfg.Database,
		persistence.WithGormLogger(logger.NewGormLogger(log, cfg.Log.Level, cfg.Telemetry.DBSlowQueryThresh)),
		persistence.WithPlugin(dbTracing),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Employee directory
	store, err := cache.NewStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer func() { _ = store.Close() }()

	employees, err := directory.New(cfg.Directory, store, log)
	if err != nil {
		return fmt.Errorf("init employee directory: %w", err)
	}
	employees = directory.NewInstrumentedDirectory(employees, sellerMetrics)

	// Application
	sellerService := sellerapp.NewSellerService(
		persistence.NewGormSellerRepository(db.DB),
		persistence.NewGormBranchRepository(db.DB),
		employees,
		persistence.NewGormTransactor(db.DB),
		log.Named("seller"),
	)

	bus := event.NewInMemoryEventBus(log.Named("events"))
	closeObservers, err := subscribeObservers(ctx, cfg, bus, sellerMetrics, log)
	if err != nil {
		return err
	}
	defer closeObservers()
	sellerService.SetEventPublisher(bus)

	// HTTP
	systemHandler := handler.NewSystemHandler(cfg.App.Name, telemetry.ServiceVersion,
		handler.HealthCheck{Name: "database", Check: db.Ping},
	)
	routerCfg := router.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: tracerProvider.IsEnabled(),
		BodyLimit:      cfg.HTTP.MaxBodySize,
	}
	if meterProvider.IsEnabled() {
		routerCfg.Meter = meter
	}
	engine := router.NewEngine(routerCfg, router.Handlers{
		Sellers:  handler.NewSellerHandler(sellerService),
		Branches: handler.NewBranchHandler(sellerService),
		System:   systemHandler,
	}, log)
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("Server exited gracefully")
	return nil
}

// subscribeObservers wires the lifecycle observers onto bus. The audit trail
// is subscribed first so it records an event before any notification goes out.
func subscribeObservers(ctx context.Context, cfg *config.Config, bus *event.InMemoryEventBus, metrics *telemetry.SellerMetrics, log *zap.Logger) (func(), error) {
	var closers []func() error

	var sink sellerapp.AuditSink = sellerapp.NewLoggingAuditSink(log.Named("audit"))
	if cfg.Audit.Sink == config.AuditSinkS3 {
		archive, err := storage.NewS3AuditArchive(&cfg.Audit, storage.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("init audit archive: %w", err)
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("prepare audit bucket: %w", err)
		}
		sink = archive
	}

	bus.Subscribe(sellerapp.NewAuditHandler(log, sink))
	bus.Subscribe(sellerapp.NewEmailHandler(log, sellerapp.NewLoggingEmailNotifier(log.Named("email"))))
	bus.Subscribe(sellerapp.NewFinanceHandler(log, sellerapp.NewLoggingFinanceAccountOpener(log.Named("finance")),
		cfg.Finance.CommissionRate, cfg.Finance.InternalBonus))
	bus.Subscribe(sellerapp.NewTrainingHandler(log, sellerapp.NewLoggingTrainingEnroller(log.Named("training"))))
	bus.Subscribe(sellerapp.NewMetricsHandler(metrics))

	if cfg.Kafka.Enabled {
		forwarder, err := messaging.NewKafkaLifecycleForwarder(cfg.Kafka, event.NewSellerEventSerializer(), log)
		if err != nil {
			return nil, fmt.Errorf("init kafka forwarder: %w", err)
		}
		bus.Subscribe(forwarder)
		closers = append(closers, forwarder.Close)
	}

	return func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Warn("Error closing event observer", zap.Error(err))
			}
		}
	}, nil
}

// migrateUp applies the embedded migrations over a dedicated connection,
// which the migrator closes when done.
func migrateUp(cfg *config.Config, log *zap.Logger) error {
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	m, err := migration.NewFromFS(sqlDB, migrations.FS, log.Named("migrate"))
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer func() { _ = m.Close() }()
	return m.Up()
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

func shutdownTelemetry(log *zap.Logger, providers ...shutdowner) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, p := range providers {
		if err := p.Shutdown(ctx); err != nil {
			log.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}
}
