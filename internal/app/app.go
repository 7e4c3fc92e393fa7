// -----------------------------------------------------------------------
// Last Modified: Monday, 19th October 2026 3:05:12 pm
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/common"
	"github.com/ternarybob/propcast/internal/handlers"
	"github.com/ternarybob/propcast/internal/interfaces"
	"github.com/ternarybob/propcast/internal/services/cache"
	"github.com/ternarybob/propcast/internal/services/curves"
	"github.com/ternarybob/propcast/internal/services/projection"
	"github.com/ternarybob/propcast/internal/storage"
	"github.com/ternarybob/propcast/internal/worker"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Curve snapshot and management
	CurveService *curves.Service

	// Projection engine and request boundary
	Engine            *projection.Engine
	ProjectionService *projection.Service
	ReportCache       interfaces.ReportCache
	BatchPool         *worker.Pool

	// HTTP handlers
	APIHandler        *handlers.APIHandler
	ProjectionHandler *handlers.ProjectionHandler
	CurveHandler      *handlers.CurveHandler
	HandoverHandler   *handlers.HandoverHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	ctx := context.Background()

	if err := app.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initServices(ctx); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	logger.Info().
		Str("storage", cfg.Storage.Type).
		Str("cache", cfg.Cache.Backend).
		Int("curves", len(app.CurveService.List(ctx))).
		Msg("Application initialized")

	return app, nil
}

// initDatabase initializes the storage layer and seeds curves from files
func (a *App) initDatabase(ctx context.Context) error {
	storageManager, err := storage.NewStorageManager(ctx, a.Logger, a.Config)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", a.Config.Storage.Type).
		Msg("Storage layer initialized")

	// Load curves from files. Failures are logged, stored curves remain usable.
	if err := a.StorageManager.LoadCurvesFromFiles(ctx, a.Config.Curves.Dir); err != nil {
		a.Logger.Warn().Err(err).Str("dir", a.Config.Curves.Dir).Msg("Failed to load curves from files")
	}

	return nil
}

// initServices builds the curve snapshot, report cache and projection service
func (a *App) initServices(ctx context.Context) error {
	a.CurveService = curves.NewService(a.StorageManager.CurveStorage(), a.Logger)
	if err := a.CurveService.Reload(ctx); err != nil {
		return fmt.Errorf("failed to load curves: %w", err)
	}

	if err := a.CurveService.StartReloadSchedule(a.Config.Curves.ReloadSchedule); err != nil {
		return fmt.Errorf("failed to start curve reload schedule: %w", err)
	}

	reportCache, err := cache.NewReportCache(ctx, a.Config.Cache, a.Logger)
	if err != nil {
		// Projections stay correct without a shared cache
		a.Logger.Warn().Err(err).Str("backend", a.Config.Cache.Backend).Msg("Report cache unavailable, falling back to memory cache")
		reportCache = cache.NewMemoryCache(a.Config.Cache.TTLDuration(), time.Now)
	}
	a.ReportCache = reportCache

	a.Engine = projection.NewEngine(a.Logger)
	a.ProjectionService = projection.NewService(a.Engine, a.CurveService, a.Logger,
		projection.WithReportCache(a.ReportCache),
		projection.WithHandoverGrowthRate(a.Config.Projection.HandoverGrowthRate),
	)
	a.BatchPool = worker.NewPool(a.Logger, a.Config.Projection.BatchWorkers)

	return nil
}

// initHandlers creates the HTTP handlers
func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.CurveService, a.Logger)
	a.ProjectionHandler = handlers.NewProjectionHandler(a.ProjectionService, a.BatchPool, a.Config.Projection.MaxBatchSize, a.Logger)
	a.CurveHandler = handlers.NewCurveHandler(a.CurveService, a.Logger)
	a.HandoverHandler = handlers.NewHandoverHandler(a.ProjectionService, a.Logger)
}

// Close releases all resources in reverse order of creation
func (a *App) Close() error {
	if a.CurveService != nil {
		a.CurveService.Stop()
	}

	if a.ReportCache != nil {
		if err := a.ReportCache.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close report cache")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}
