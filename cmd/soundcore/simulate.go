package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/soundcore/app/player"
	"github.com/dmitrymomot/soundcore/core/audio/audiotest"
	"github.com/dmitrymomot/soundcore/core/config"
	"github.com/dmitrymomot/soundcore/core/listener"
	"github.com/dmitrymomot/soundcore/core/logger"
	"github.com/dmitrymomot/soundcore/core/models"
	"github.com/dmitrymomot/soundcore/core/tracing"
)

type simulateOptions struct {
	uris     []string
	failing  []string
	volume   int
	logLevel string
	json     bool
	trace    bool
	metrics  bool
}

// Simulate plays a scripted session through a fake audio engine and logs every
// event the listeners receive.
func Simulate() *cli.Command {
	return &cli.Command{
		Name:     "simulate",
		Usage:    "plays a scripted session and logs the emitted events",
		Category: "debug",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "uri",
				Usage:   "track URIs to play in order",
				Aliases: []string{"u"},
				Value:   cli.NewStringSlice("dummy:track:1", "dummy:track:2"),
			},
			&cli.StringSliceFlag{
				Name:  "fail",
				Usage: "track URIs the fake engine fails to play",
			},
			&cli.IntFlag{
				Name:  "volume",
				Usage: "volume announced at the start of the session",
				Value: 42,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "sets the minimum log level",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "writes logs as JSON",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "exports spans to stdout",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "prints listener counters when the session ends",
			},
		},
		Action: func(c *cli.Context) error {
			return runSimulation(c.Context, c.App.Writer, simulateOptions{
				uris:     c.StringSlice("uri"),
				failing:  c.StringSlice("fail"),
				volume:   c.Int("volume"),
				logLevel: c.String("log-level"),
				json:     c.Bool("json"),
				trace:    c.Bool("trace"),
				metrics:  c.Bool("metrics"),
			})
		},
	}
}

func runSimulation(ctx context.Context, out io.Writer, opts simulateOptions) error {
	if opts.volume < 0 || opts.volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", opts.volume)
	}

	var cfg player.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.json {
		cfg.Log.Format = "json"
	}
	if opts.trace {
		cfg.Tracing.Exporter = tracing.ExporterStdout
	}

	log := logger.NewFromConfig(cfg.Log,
		logger.WithOutput(out),
		logger.WithAttr(slog.String("service", cfg.AppName)))

	tp, shutdown, err := tracing.Setup(ctx, cfg.Tracing, tracing.WithWriter(out))
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Error("tracer shutdown failed", logger.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()

	app, err := player.NewApp(
		player.WithConfig(cfg),
		player.WithLogger(log),
		player.WithMetricsRegisterer(reg),
		player.WithTracerProvider(tp),
	)
	if err != nil {
		return err
	}

	if _, err := app.Listen(player.NewEventLogger(log), listener.WithActorName("event-log")); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return app.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return playSession(gctx, app, opts)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.metrics {
		return printCounters(out, reg)
	}
	return nil
}

// playSession drives the fake engine and the core emitter through one session.
func playSession(ctx context.Context, app *player.App, opts simulateOptions) error {
	pb := app.Playback()
	engine := audiotest.New(app.Dispatcher(), audiotest.WithLogger(app.Logger()))

	for _, uri := range opts.failing {
		engine.TriggerFakePlaybackFailure(models.URI(uri))
	}

	if err := pb.TracklistChanged(ctx); err != nil {
		return err
	}
	if err := pb.VolumeChanged(ctx, models.Percentage(opts.volume)); err != nil {
		return err
	}

	state := models.PlaybackStopped
	for i, raw := range opts.uris {
		tlTrack := models.TlTrack{
			TLID:  models.TracklistID(i + 1),
			Track: models.Track{URI: models.URI(raw), Name: fmt.Sprintf("Track %d", i+1)},
		}

		engine.PrepareChange()
		if err := engine.SetURI(tlTrack.Track.URI, false); err != nil {
			return err
		}
		if !engine.StartPlayback(ctx) {
			app.Logger().WarnContext(ctx, "playback failed, skipping track", logger.Key("uri", raw))
			continue
		}

		if state != models.PlaybackPlaying {
			if err := pb.PlaybackStateChanged(ctx, state, models.PlaybackPlaying); err != nil {
				return err
			}
			state = models.PlaybackPlaying
		}
		if err := pb.TrackPlaybackStarted(ctx, tlTrack); err != nil {
			return err
		}

		position := models.DurationMs(1000)
		engine.SetPosition(ctx, position)
		if err := pb.Seeked(ctx, position); err != nil {
			return err
		}
		if err := pb.TrackPlaybackEnded(ctx, tlTrack, position); err != nil {
			return err
		}
	}

	if engine.URI() != "" {
		engine.StopPlayback(ctx)
	}
	if state != models.PlaybackStopped {
		if err := pb.PlaybackStateChanged(ctx, state, models.PlaybackStopped); err != nil {
			return err
		}
	}
	return engine.Err()
}

func printCounters(out io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)

	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
