package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/tcat/transit-catalogue/internal/appconf"
	"github.com/tcat/transit-catalogue/internal/catalogue"
	"github.com/tcat/transit-catalogue/internal/gtfs"
	"github.com/tcat/transit-catalogue/internal/logging"
	"github.com/tcat/transit-catalogue/internal/requests"
	"github.com/tcat/transit-catalogue/internal/router"
)

// Application holds the dependencies shared by the command-line entry points.
type Application struct {
	Config appconf.Config
	Logger *slog.Logger
}

func New(cfg appconf.Config, logger *slog.Logger) *Application {
	return &Application{
		Config: cfg,
		Logger: logger,
	}
}

// RoutingDefaults are the routing settings applied when a batch brings none.
func (app *Application) RoutingDefaults() router.Settings {
	return router.NewSettings(app.Config.Routing.BusWaitTime, app.Config.Routing.BusVelocity)
}

// ProcessBatch answers a self-contained request batch read from r.
func (app *Application) ProcessBatch(ctx context.Context, r io.Reader, w io.Writer) error {
	return app.process(ctx, "batch", r, w, catalogue.New())
}

// ProcessGTFS loads a GTFS feed and answers the batch read from r on top of
// it. Base requests in the batch extend the imported network.
func (app *Application) ProcessGTFS(ctx context.Context, source string, r io.Reader, w io.Writer) error {
	if source == "" {
		source = app.Config.GTFS.Source
	}
	if source == "" {
		return errors.New("no GTFS source configured")
	}

	c, err := gtfs.Load(ctx, source, app.Logger)
	if err != nil {
		return err
	}
	return app.process(ctx, "gtfs", r, w, c)
}

func (app *Application) process(ctx context.Context, mode string, r io.Reader, w io.Writer, c *catalogue.Catalogue) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	if err := requests.Process(r, w, c, app.RoutingDefaults(), app.Logger); err != nil {
		logging.LogError(app.Logger, "failed to process request batch", err, slog.String("mode", mode))
		return err
	}

	logging.LogOperation(app.Logger, "request_batch_processed",
		slog.String("mode", mode),
		slog.String("env", app.Config.Env.String()),
		slog.Duration("duration", time.Since(start)))
	return nil
}
