// Package shutdown runs a host's teardown hooks once, in reverse order of
// registration, when the process is asked to stop.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Hook releases one resource.
type Hook func(ctx context.Context) error

type namedHook struct {
	name string
	fn   Hook
}

// Group collects hooks. The zero value is ready to use.
type Group struct {
	mut   sync.Mutex
	hooks []namedHook
	done  bool
}

// Add registers a hook. Hooks added after Run are ignored.
func (g *Group) Add(name string, fn Hook) {
	g.mut.Lock()
	defer g.mut.Unlock()

	if g.done {
		slog.Warn("Shutdown hook registered after shutdown", "hook", name)

		return
	}

	g.hooks = append(g.hooks, namedHook{name: name, fn: fn})
}

// Run calls every hook, last registered first, and joins their errors. Only
// the first call does anything.
func (g *Group) Run(ctx context.Context) error {
	g.mut.Lock()
	hooks := g.hooks
	alreadyDone := g.done
	g.hooks = nil
	g.done = true
	g.mut.Unlock()

	if alreadyDone {
		return nil
	}

	var errs []error

	for i := len(hooks) - 1; i >= 0; i-- {
		hook := hooks[i]

		if err := hook.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "Shutdown hook failed", "hook", hook.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", hook.name, err))

			continue
		}

		slog.DebugContext(ctx, "Shutdown hook finished", "hook", hook.name)
	}

	return errors.Join(errs...)
}

// SetupHandler returns a context cancelled on SIGINT or SIGTERM. Call stop
// to release the signal handler; stop also cancels the context.
func SetupHandler(parent context.Context) (ctx context.Context, stop context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-signals:
			slog.Warn("Received " + sig.String() + ", shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(signals)
		cancel()
	}
}
