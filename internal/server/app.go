// Package server initializes and runs the catalog API server: it wires the
// Postgres repositories, the S3 object store and the HTTP surface, and
// handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/dpatil-neu/skycatalog/internal/logging"
	"github.com/dpatil-neu/skycatalog/internal/objstore"
	"github.com/dpatil-neu/skycatalog/internal/server/config"
	"github.com/dpatil-neu/skycatalog/internal/server/httpapi"
	"github.com/dpatil-neu/skycatalog/internal/server/quota"
	"github.com/dpatil-neu/skycatalog/internal/server/shared/db"
	"github.com/dpatil-neu/skycatalog/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewDefault()

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

	clock := clockwork.NewRealClock()
	userService := users.NewService(rm.Users(), cfg.SecretKey, cfg.AccessTokenValidityDuration)
	gate := quota.NewGate(rm.Users(), rm.AccessLog(), clock)

	srv := httpapi.NewServer(cfg, logger, userService, rm.Catalog(), rm.AccessLog(), gate, store, clock)

	return &App{config: cfg, logger: logger, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}
