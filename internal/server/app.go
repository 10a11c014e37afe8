// Package server wires the configured storage, the services and the gRPC
// transport into one process and runs them until a termination signal.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/yogatrack/internal/logging"
	"github.com/dmitrijs2005/yogatrack/internal/server/config"
	"github.com/dmitrijs2005/yogatrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/yogatrack/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/yogatrack/internal/server/grpc"
)

// Sweeper removes expired sessions.
type Sweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	identity    *services.IdentityService
	tracker     *services.Tracker
}

// NewApp opens the configured storage and builds the services on top of it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel, c.LogFormat)

	rm, err := repomanager.Open(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	return newApp(c, logger, rm), nil
}

func newApp(c *config.Config, logger logging.Logger, rm repomanager.RepositoryManager) *App {
	identity := services.NewIdentityService(rm, c.SecretKey, services.WithLogger(logger))
	engine := services.NewProgressEngine(rm, services.WithLogger(logger))

	return &App{
		config:      c,
		logger:      logger,
		repomanager: rm,
		identity:    identity,
		tracker:     services.NewTracker(engine, identity),
	}
}

// runSweeper deletes expired sessions every interval until ctx is done.
func runSweeper(ctx context.Context, s Sweeper, interval time.Duration, logger logging.Logger) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.SweepExpired(ctx); err != nil && !errors.Is(err, context.Canceled) {
				// a failed sweep is retried on the next tick
				logger.Warn(ctx, "session sweep failed", "error", err)
			}
		}
	}
}

// Run serves until SIGINT/SIGTERM/SIGQUIT or until a component fails.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageBackend)

	srv := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.identity, app.tracker, app.config.AdminToken)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})
	g.Go(func() error {
		return runSweeper(ctx, app.identity, app.config.SessionSweepInterval, app.logger)
	})

	err := g.Wait()

	if cerr := app.repomanager.Close(); cerr != nil {
		app.logger.Error(ctx, "storage close error", "error", cerr)
	}
	app.logger.Info(context.Background(), "App stopped")
	return err
}
