package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	invoiceapp "github.com/ecommerce/backend/internal/application/invoice"
	orderapp "github.com/ecommerce/backend/internal/application/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/cache"
	"github.com/ecommerce/backend/internal/infrastructure/command"
	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/ecommerce/backend/internal/infrastructure/event"
	"github.com/ecommerce/backend/internal/infrastructure/logger"
	"github.com/ecommerce/backend/internal/infrastructure/migration"
	"github.com/ecommerce/backend/internal/infrastructure/persistence"
	"github.com/ecommerce/backend/internal/infrastructure/storage"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"github.com/ecommerce/backend/internal/interfaces/http/handler"
	"github.com/ecommerce/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// App owns every long-lived component of the service
type App struct {
	db       *persistence.Database
	store    shared.IdempotencyStore
	events   *event.InMemoryEventBus
	commands *command.InMemoryCommandBus
	engine   *gin.Engine
}

// NewApp connects the database, applies the schema and wires the order and
// invoice contexts behind one HTTP engine. Components opened before a
// failure are released before returning.
func NewApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (app *App, err error) {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))

	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithGormLogger(gormLog))
	if err != nil {
		return nil, err
	}
	app = &App{db: db}
	defer func() {
		if err != nil {
			_ = app.Close(context.Background())
			app = nil
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver))

	if err = telemetry.NewDBTracingPlugin(telemetry.DBTracingConfigFrom(cfg), log).RegisterOtelGorm(db.DB); err != nil {
		return nil, fmt.Errorf("failed to register database tracing: %w", err)
	}
	if err = migrateSchema(ctx, cfg, db, log); err != nil {
		return nil, err
	}

	files, err := storage.NewFileStorage(ctx, &cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// Outside production a missing Redis only costs cross-instance dedup
	app.store, err = cache.NewIdempotencyStoreFactory(cfg,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	).CreateStore(ctx)
	if err != nil {
		return nil, err
	}

	orderRepo := persistence.NewGormOrderRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	projectionRepo := persistence.NewGormOrderProjectionRepository(db.DB)

	app.events = event.NewInMemoryEventBus(log)
	app.commands = command.NewInMemoryCommandBus(log)

	command.Register(app.commands, orderapp.NewCreateOrderHandler(orderRepo, app.events, log).Handle)
	command.Register(app.commands, orderapp.NewUpdateOrderStatusHandler(orderRepo, app.events, log).Handle)
	command.Register(app.commands, invoiceapp.NewUploadInvoiceHandler(
		invoiceRepo, projectionRepo, files, app.events, log).Handle)
	command.Register(app.commands, invoiceapp.NewSendInvoiceHandler(invoiceRepo, app.events, log).Handle)

	// Instruments bind to the global provider, a no-op unless metrics are enabled
	meter := otel.Meter(telemetry.MeterName)
	metrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{Meter: meter})
	if err != nil {
		return nil, err
	}

	app.events.Subscribe(event.NewAuditHandler(log))
	app.events.Subscribe(event.NewMetricsHandler(metrics))
	choreography := event.WrapHandlersWithIdempotency(
		[]shared.EventHandler{
			invoiceapp.NewCreateOrderProjectionHandler(projectionRepo, log),
			invoiceapp.NewSendInvoiceToCustomerHandler(app.commands, log),
		},
		app.store,
		log,
		event.WithIdempotencyConfig(shared.IdempotencyConfig{
			TTL:     cfg.Event.IdempotencyTTL,
			Enabled: cfg.Event.IdempotencyEnabled,
		}),
		event.WithDeliveryRecorder(metrics),
	)
	for _, h := range choreography {
		app.events.Subscribe(h)
	}
	if err = app.events.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start event bus: %w", err)
	}
	log.Info("Command handlers registered", zap.Strings("commands", []string{
		orderapp.CommandNameCreateOrder,
		orderapp.CommandNameUpdateOrderStatus,
		invoiceapp.CommandNameUploadInvoice,
		invoiceapp.CommandNameSendInvoice,
	}))

	app.engine, err = router.NewEngine(router.EngineConfig{
		HTTP:        cfg.HTTP,
		ServiceName: cfg.Telemetry.ServiceName,
		Tracing:     cfg.Telemetry.Enabled,
		Meter:       meter,
		Logger:      log,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Storage.Driver == storage.DriverLocal {
		app.engine.Static(cfg.Storage.PublicPath, cfg.Storage.LocalDir)
	}
	var invoiceQueryOpts []invoiceapp.QueryOption
	if linker, ok := files.(invoiceapp.DownloadLinker); ok {
		invoiceQueryOpts = append(invoiceQueryOpts, invoiceapp.WithDownloadLinker(linker))
	}

	routes := router.NewRouter(app.engine).
		Register(router.SystemRoutes(handler.NewSystemHandler(db))).
		Register(router.OrderRoutes(
			handler.NewOrderHandler(app.commands, orderapp.NewQueryService(orderRepo)),
			cfg.HTTP.MaxBodySize,
		)).
		Register(router.InvoiceRoutes(
			handler.NewInvoiceHandler(app.commands, invoiceapp.NewQueryService(invoiceRepo, invoiceQueryOpts...), cfg.HTTP.MaxUploadSize),
			cfg.HTTP.MaxUploadSize,
		)).
		Setup()
	log.Debug("Routes registered", zap.Strings("routes", routes))

	return app, nil
}

// migrateSchema runs the versioned SQL migrations on PostgreSQL. SQLite is
// for local runs and tests, so its schema comes from the models.
func migrateSchema(ctx context.Context, cfg *config.Config, db *persistence.Database, log *zap.Logger) error {
	switch db.Driver {
	case "postgres":
		if err := migration.UpDSN(cfg.Database.DSN(), log); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	default:
		if err := db.AutoMigrate(ctx); err != nil {
			return err
		}
	}
	log.Info("Database schema ready")
	return nil
}

// Handler returns the HTTP entry point
func (a *App) Handler() http.Handler {
	return a.engine
}

// Dispatcher exposes the command bus for in-process callers
func (a *App) Dispatcher() shared.CommandDispatcher {
	return a.commands
}

// Close stops the event bus, then releases the idempotency store and the
// database. It returns every error encountered.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.events != nil {
		if err := a.events.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("event bus: %w", err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("idempotency store: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}
