package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tcat/transit-catalogue/internal/app"
	"github.com/tcat/transit-catalogue/internal/appconf"
	"github.com/tcat/transit-catalogue/internal/logging"
)

// newCLI builds the command tree. Logs go to logOutput so that results on
// stdout stay machine-readable.
func newCLI(logOutput io.Writer) *cli.App {
	var application *app.Application

	return &cli.App{
		Name:  "tcat",
		Usage: "Transit catalogue and journey planner",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: "environment (development|test|production)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug|info|warn|error)",
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := appconf.Load(c.String("config"))
			if err != nil {
				return err
			}
			if c.IsSet("env") {
				cfg.EnvName = c.String("env")
				cfg.Env = appconf.EnvFlagToEnvironment(cfg.EnvName)
			}
			if c.IsSet("log-level") {
				cfg.LogLevel = c.String("log-level")
			}

			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logger := logging.NewLogger(logOutput, level, logging.Format(cfg.LogFormat))
			application = app.New(cfg, logger)
			c.Context = logging.WithLogger(c.Context, logger)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "process",
				Usage: "answer a JSON request batch",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "input",
						Usage: "request batch file (default stdin)",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "response file (default stdout)",
					},
				},
				Action: func(c *cli.Context) error {
					return withStreams(c, application, func(in io.Reader, out io.Writer) error {
						return application.ProcessBatch(c.Context, in, out)
					})
				},
			},
			{
				Name:  "gtfs",
				Usage: "load a static GTFS feed and answer a request batch against it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "source",
						Usage: "GTFS zip path or URL (default from config)",
					},
					&cli.StringFlag{
						Name:  "requests",
						Usage: "request batch file (default stdin)",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "response file (default stdout)",
					},
					&cli.Float64Flag{
						Name:  "wait-time",
						Usage: "minutes spent waiting at each boarding",
					},
					&cli.Float64Flag{
						Name:  "velocity",
						Usage: "bus speed in km/h",
					},
				},
				Action: func(c *cli.Context) error {
					if c.IsSet("wait-time") {
						application.Config.Routing.BusWaitTime = c.Float64("wait-time")
					}
					if c.IsSet("velocity") {
						application.Config.Routing.BusVelocity = c.Float64("velocity")
					}
					if err := application.Config.Validate(); err != nil {
						return err
					}

					return withStreams(c, application, func(in io.Reader, out io.Writer) error {
						return application.ProcessGTFS(c.Context, c.String("source"), in, out)
					})
				},
			},
		},
	}
}

// withStreams opens the input and output named by the command flags, falling
// back to the app's reader and writer.
func withStreams(c *cli.Context, application *app.Application, run func(io.Reader, io.Writer) error) (err error) {
	in := c.App.Reader
	inputPath := c.String("input")
	if inputPath == "" {
		inputPath = c.String("requests")
	}
	if inputPath != "" {
		inputFile, openErr := os.Open(inputPath)
		if openErr != nil {
			return fmt.Errorf("opening input: %w", openErr)
		}
		defer logging.SafeCloseWithLogging(inputFile, application.Logger, "close_input")
		in = inputFile
	}

	out := c.App.Writer
	if outputPath := c.String("output"); outputPath != "" {
		outputFile, createErr := os.Create(outputPath)
		if createErr != nil {
			return fmt.Errorf("creating output: %w", createErr)
		}
		defer logging.HandleDeferredError(&err, outputFile.Close, application.Logger, "close_output")
		out = outputFile
	}

	return run(in, out)
}
