// Command transition-demo is an interactive terminal host for one
// transitioned element. Each menu choice changes the element's mounted flag
// and every resulting frame is printed.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/amp-labs/amp-transition/cli"
	"github.com/amp-labs/amp-transition/config"
	"github.com/amp-labs/amp-transition/element"
	"github.com/amp-labs/amp-transition/logger"
	"github.com/amp-labs/amp-transition/motion"
	"github.com/amp-labs/amp-transition/scheduler"
	"github.com/amp-labs/amp-transition/shutdown"
	"github.com/amp-labs/amp-transition/telemetry"
	"github.com/amp-labs/amp-transition/transition"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	appName         = "transition-demo"
	elementName     = "drawer"
	shutdownTimeout = 5 * time.Second
)

// builtinFade is used when no definitions file is configured.
var builtinFade = transition.Definition{ //nolint:gochecknoglobals
	Property: "opacity",
	In:       transition.Style{"opacity": "1"},
	Out:      transition.Style{"opacity": "0"},
}

func main() {
	ctx, stop := shutdown.SetupHandler(context.Background())

	err := run(ctx)

	stop()

	if err != nil {
		slog.Error("transition-demo failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) (err error) {
	if _, err := logger.ConfigureLogging(ctx, appName); err != nil {
		return err
	}

	var hooks shutdown.Group

	defer func() {
		// The run context may already be cancelled by a signal.
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		err = errors.Join(err, hooks.Run(cleanupCtx))
	}()

	if err := setupTelemetry(ctx, &hooks); err != nil {
		return err
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	def, err := loadDefinition(cfg)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		serveMetrics(ctx, cfg.MetricsAddr, &hooks)
	}

	loop := scheduler.NewLoop(ctx)
	hooks.Add("loop", func(context.Context) error {
		loop.Stop()

		return nil
	})

	demo := &demo{
		loop:       loop,
		preference: motion.FromEnv(ctx),
	}

	painter := newTermPainter(os.Stdout, loop.Now)

	if err := loop.Run(func() {
		demo.elem = element.New(ctx, elementName, false, loop, painter,
			element.WithDefinition(def),
			element.WithDuration(cfg.Duration),
			element.WithTimingFunction(cfg.TimingFunction),
			element.WithPreference(demo.preference),
		)
	}); err != nil {
		return err
	}

	hooks.Add("element", func(context.Context) error {
		err := loop.Run(func() { _ = demo.elem.Close() })
		if errors.Is(err, scheduler.ErrLoopStopped) {
			// A signal already stopped the loop; no commit can fire any more.
			return nil
		}

		return err
	})

	return demo.prompt(ctx)
}

func setupTelemetry(ctx context.Context, hooks *shutdown.Group) error {
	otelCfg, err := telemetry.LoadConfigFromEnv(ctx, appName)
	if err != nil {
		return err
	}

	tel, err := telemetry.Initialize(ctx, otelCfg)
	if err != nil {
		return err
	}

	hooks.Add("telemetry", tel.Shutdown)

	if handler := tel.LogHandler(); handler != nil {
		if _, err := logger.ConfigureLogging(ctx, appName, logger.WithHandler(handler)); err != nil {
			return err
		}
	}

	return nil
}

// loadDefinition picks the configured transition from the definitions file,
// or the built-in fade when no file is set.
func loadDefinition(cfg *config.Config) (transition.Definition, error) {
	if cfg.DefinitionsPath == "" {
		defs := transition.NewDefinitions()
		if err := defs.Register(config.DefaultTransition, builtinFade); err != nil {
			return transition.Definition{}, err
		}

		return defs.Lookup(cfg.Transition)
	}

	defs, err := transition.LoadDefinitions(cfg.DefinitionsPath)
	if err != nil {
		return transition.Definition{}, err
	}

	return defs.Lookup(cfg.Transition)
}

func serveMetrics(ctx context.Context, addr string, hooks *shutdown.Group) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Get(ctx).Info("Serving metrics", "addr", addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Get(ctx).Error("Metrics server stopped", "error", err)
		}
	}()

	hooks.Add("metrics", srv.Shutdown)
}

type demo struct {
	loop       *scheduler.Loop
	elem       *element.Element
	preference *motion.Toggle
	mounted    bool
}

var choices = []cli.Choice{ //nolint:gochecknoglobals
	{Key: "show", Label: "Show"},
	{Key: "hide", Label: "Hide"},
	{Key: "flicker", Label: "Toggle twice quickly"},
	{Key: "motion", Label: "Toggle reduced motion"},
	{Key: "duration", Label: "Change duration"},
	{Key: "status", Label: "Print status"},
	{Key: "quit", Label: "Quit"},
}

func (d *demo) prompt(ctx context.Context) error {
	for ctx.Err() == nil {
		choice, err := cli.Select(elementName, choices...)
		if err != nil {
			if cli.Interrupted(err) {
				return nil
			}

			return err
		}

		if choice == "quit" {
			quit, err := cli.PromptConfirm("Quit")
			if err != nil && !cli.Interrupted(err) {
				return err
			}

			if quit || err != nil {
				return nil
			}

			continue
		}

		if err := d.apply(ctx, choice); err != nil {
			return err
		}
	}

	return nil
}

func (d *demo) apply(ctx context.Context, choice string) error {
	switch choice {
	case "show":
		return d.set(ctx, true)
	case "hide":
		return d.set(ctx, false)
	case "flicker":
		// Both requests land in one loop turn, so the first never commits.
		return d.loop.Run(func() {
			d.elem.Update(ctx, !d.mounted)
			d.elem.Update(ctx, d.mounted)
		})
	case "motion":
		reduced := !d.preference.ReducedMotion()
		d.preference.Set(reduced)
		fmt.Printf("reduced motion: %t\n", reduced) //nolint:forbidigo
	case "duration":
		return d.changeDuration()
	case "status":
		return d.loop.Run(func() {
			ctrl := d.elem.Controller()
			fmt.Printf("status=%s pending=%t render=%t\n", //nolint:forbidigo
				ctrl.Status(), ctrl.Pending(), ctrl.ShouldRender())
		})
	}

	return nil
}

func (d *demo) set(ctx context.Context, mounted bool) error {
	d.mounted = mounted

	return d.loop.Run(func() {
		if !d.elem.Update(ctx, mounted) {
			fmt.Println("no change") //nolint:forbidigo
		}
	})
}

func (d *demo) changeDuration() error {
	var current time.Duration

	if err := d.loop.Run(func() { current = d.elem.Duration() }); err != nil {
		return err
	}

	duration, err := cli.PromptDuration("Duration", current)
	if err != nil {
		if cli.Interrupted(err) {
			return nil
		}

		return err
	}

	return d.loop.Run(func() { d.elem.SetDuration(duration) })
}
