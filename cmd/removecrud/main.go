package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/rs/zerolog"
	"github.com/shishobooks/removecrud/pkg/config"
	"github.com/shishobooks/removecrud/pkg/errcodes"
	"github.com/shishobooks/removecrud/pkg/version"
	"github.com/shishobooks/removecrud/pkg/worker"
	"github.com/urfave/cli/v2"
)

func main() {
	os.Exit(int(run(context.Background(), os.Args)))
}

// run executes one invocation and returns the exit status for the host. It
// never panics.
func run(ctx context.Context, args []string) (status errcodes.ExitStatus) {
	log := logger.New()
	ctx = log.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Err(errors.Errorf("panic: %v", r)).Error("unexpected error")
			status = errcodes.StatusError
		}
	}()

	// --help and --version return without running, which the host must not
	// read as a successful cleanup.
	status = errcodes.StatusError
	app := newApp(func(c *cli.Context, o config.Overrides) error {
		status = execute(ctx, o)
		return nil
	})

	if err := app.RunContext(ctx, args); err != nil {
		// Usage errors are the caller's misconfiguration.
		fmt.Fprintln(os.Stderr, err)
		return errcodes.StatusError
	}
	return status
}

func newApp(action func(c *cli.Context, o config.Overrides) error) *cli.App {
	return &cli.App{
		Name:      "removecrud",
		Usage:     "strip trailing junk from media file names after a download completes",
		UsageText: "removecrud [options] [directory]",
		Version:   version.Version,
		Description: "Scans a completed download directory and renames video, subtitle and image " +
			"files whose names carry junk after the media extension. Settings are read from " +
			"the NZBPP_ and NZBPO_ environment variables the host passes to post-processing " +
			"scripts; flags take precedence over them.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "directory",
				Aliases: []string{"d"},
				Usage:   "download directory to clean up (overrides NZBPP_DIRECTORY)",
			},
			&cli.BoolFlag{
				Name:  "enabled",
				Usage: "enable the extension (overrides NZBPO_ENABLED)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides NZBPO_LOGLEVEL)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "log the renames without performing them (overrides NZBPO_DRYRUN)",
			},
			&cli.StringFlag{
				Name:  "report-file",
				Usage: "write a JSON report of the run to this path (overrides NZBPO_REPORTFILE)",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "write Prometheus metrics to this path (overrides NZBPO_METRICSFILE)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Action: func(c *cli.Context) error {
			return action(c, overridesFrom(c))
		},
	}
}

func overridesFrom(c *cli.Context) config.Overrides {
	o := config.Overrides{
		ConfigFile:  c.String("config"),
		Directory:   c.String("directory"),
		LogLevel:    c.String("log-level"),
		ReportFile:  c.String("report-file"),
		MetricsFile: c.String("metrics-file"),
	}
	if c.Args().Present() {
		o.Directory = c.Args().First()
	}
	if c.IsSet("enabled") {
		o.Enabled = pointerutil.Bool(c.Bool("enabled"))
	}
	if c.IsSet("dry-run") {
		o.DryRun = pointerutil.Bool(c.Bool("dry-run"))
	}
	return o
}

func execute(ctx context.Context, o config.Overrides) errcodes.ExitStatus {
	cfg, err := config.New(o)
	if err != nil {
		return errcodes.Handle(ctx, err)
	}
	zerolog.SetGlobalLevel(cfg.Level())

	log := logger.FromContext(ctx)
	log.Info("starting removecrud", logger.Data{
		"version":  version.Version,
		"nzb_name": cfg.NZBName,
		"category": cfg.Category,
		"dry_run":  cfg.DryRun,
	})

	report, status := worker.New(cfg).Run(ctx)

	log.Info("finished removecrud", logger.Data{
		"status":      status.String(),
		"exit_code":   int(status),
		"run_id":      report.RunID,
		"duration_ms": report.Duration().Milliseconds(),
	})
	return status
}
