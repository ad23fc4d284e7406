// Package scraper builds the dataset catalogs: it walks the GOES-18 and
// NEXRAD bucket hierarchies, fetches the station reference feed and replaces
// the catalog tables, either once or on a cron schedule.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"github.com/dpatil-neu/skycatalog/internal/catalog"
	"github.com/dpatil-neu/skycatalog/internal/logging"
	"github.com/dpatil-neu/skycatalog/internal/objstore"
	"github.com/dpatil-neu/skycatalog/internal/scraper/config"
	catalogstore "github.com/dpatil-neu/skycatalog/internal/server/catalog"
	"github.com/dpatil-neu/skycatalog/internal/server/shared/db"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	catalog catalogstore.Repository
	store   objstore.Store
	client  *http.Client
	clock   clockwork.Clock
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewDefault().With("module", "scraper")

	rm, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	store, err := objstore.NewS3Store(ctx, objstore.Options{
		Region:       cfg.S3Region,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
		BaseEndpoint: cfg.S3BaseEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("object store init error: %w", err)
	}

	return &App{
		config:  cfg,
		logger:  logger,
		catalog: rm.Catalog(),
		store:   store,
		client:  &http.Client{Timeout: cfg.FeedTimeout},
		clock:   clockwork.NewRealClock(),
	}, nil
}

// BuildCatalogs performs one full rebuild. The station feed is fetched
// first: it is a hard dependency, and failing early leaves every table
// untouched. Each table replace is an atomic staging swap, so readers never
// see partial content even mid-run.
func (app *App) BuildCatalogs(ctx context.Context) error {

	start := app.clock.Now()

	lines, err := catalog.FetchStationFeed(ctx, app.client, app.config.StationFeedURL)
	if err != nil {
		return fmt.Errorf("station feed fetch failed, aborting build: %w", err)
	}
	stations := catalog.ParseStations(lines)
	app.logger.Info(ctx, "station feed parsed", "stations", len(stations))

	goesBuilder := catalog.NewBuilder(app.store, app.config.GoesBucket, app.logger)
	goesRecords, err := goesBuilder.Build(ctx, catalog.GoesSchema(app.config.GoesProducts))
	if err != nil {
		return fmt.Errorf("goes catalog build failed: %w", err)
	}
	app.logger.Info(ctx, "goes catalog built", "records", len(goesRecords))

	nexradBuilder := catalog.NewBuilder(app.store, app.config.NexradBucket, app.logger)
	nexradRecords, err := nexradBuilder.Build(ctx, catalog.NexradSchema(app.config.NexradYears))
	if err != nil {
		return fmt.Errorf("nexrad catalog build failed: %w", err)
	}
	app.logger.Info(ctx, "nexrad catalog built", "records", len(nexradRecords))

	if err := app.catalog.ReplaceGoes(ctx, goesRecords); err != nil {
		return fmt.Errorf("goes catalog replace failed: %w", err)
	}
	if err := app.catalog.ReplaceNexrad(ctx, nexradRecords); err != nil {
		return fmt.Errorf("nexrad catalog replace failed: %w", err)
	}
	if err := app.catalog.ReplaceStations(ctx, stations); err != nil {
		return fmt.Errorf("station table replace failed: %w", err)
	}

	app.logger.Info(ctx, "catalog build finished",
		"goes_records", len(goesRecords),
		"nexrad_records", len(nexradRecords),
		"stations", len(stations),
		"elapsed", app.clock.Since(start).String())

	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run executes one build when RunOnce is set, otherwise schedules recurring
// builds on the configured cron expression until interrupted.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	if app.config.RunOnce {
		return app.BuildCatalogs(ctx)
	}

	c := cron.New()
	_, err := c.AddFunc(app.config.CronSchedule, func() {
		if err := app.BuildCatalogs(ctx); err != nil {
			app.logger.Error(ctx, "scheduled catalog build failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", app.config.CronSchedule, err)
	}

	app.logger.Info(ctx, "scheduler started", "schedule", app.config.CronSchedule)
	c.Start()

	<-ctx.Done()

	stopCtx := c.Stop()
	<-stopCtx.Done()

	return nil
}
