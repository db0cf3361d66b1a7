// Package server wires the development directory backend: storage
// selection, migrations, org seeding and the HTTP listener with graceful
// shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/groupe-sii/lumext/internal/logging"
	"github.com/groupe-sii/lumext/internal/server/config"
	"github.com/groupe-sii/lumext/internal/server/httpapi"
	"github.com/groupe-sii/lumext/internal/server/repositories/repomanager"
	"github.com/groupe-sii/lumext/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	handler     http.Handler
}

// openStore picks Postgres when a DSN is configured, memory otherwise.
func openStore(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		return repomanager.NewMemoryRepositoryManager(), nil
	}
	return repomanager.OpenPostgres(ctx, c.DatabaseDSN)
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	rm, err := openStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	orgs := services.NewOrgService(rm, logger)
	if err := orgs.EnsureOrgs(ctx, c.Orgs); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("org seeding error: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h := httpapi.NewRouter(
		services.NewSessionService(rm, c, logger),
		orgs,
		services.NewDirectoryService(rm, c.BcryptCost, logger),
		httpapi.Options{BaseURL: c.BaseURL, Logger: logger, Registry: reg},
	)

	return &App{config: c, logger: logger, repomanager: rm, handler: h}, nil
}

// Serve answers on ln until ctx is done, then drains in-flight requests.
func (app *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.logger.Info(ctx, "listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if cerr := app.repomanager.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")

	ln, err := net.Listen("tcp", app.config.EndpointAddr)
	if err != nil {
		_ = app.repomanager.Close()
		return fmt.Errorf("listen error: %w", err)
	}
	return app.Serve(ctx, ln)
}
