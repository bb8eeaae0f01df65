// Command ecsloop runs the demo scene in a window, or headless for a fixed
// number of ticks.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/plus3/ecsloop/config"
	"github.com/plus3/ecsloop/injector"
)

func main() {
	configPath := flag.String("config", "", "Settings file. Built-in defaults are used when empty.")
	headless := flag.Bool("headless", false, "Run without a window.")
	ticks := flag.Uint64("ticks", 0, "Stop a headless run after this many ticks. Zero runs until interrupted.")
	describe := flag.Bool("describe", false, "Print the scene's systems and entities before running.")
	flag.Parse()

	if err := run(*configPath, *headless, *ticks, *describe); err != nil {
		fmt.Fprintln(os.Stderr, "ecsloop:", err)
		os.Exit(1)
	}
}

func run(configPath string, headless bool, ticks uint64, describe bool) error {
	settings := config.Default()
	if configPath != "" {
		var err error
		if settings, err = config.Load(configPath); err != nil {
			return err
		}
	}

	var (
		app     *injector.App
		cleanup func()
		err     error
	)
	if headless {
		app, cleanup, err = injector.InitializeHeadless(settings, injector.StopAfter(ticks))
	} else {
		app, cleanup, err = injector.InitializeWindowed(settings)
	}
	if err != nil {
		return err
	}
	defer cleanup()

	if describe || settings.Debug.Describe {
		if err := app.Scene.Describe(os.Stdout); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if app.Window == nil {
		return ignoreCancel(app.Engine.Run(ctx))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer app.Window.Close()
		return ignoreCancel(app.Engine.Run(ctx))
	})

	// Ebiten must own the main goroutine.
	winErr := app.Window.Run()
	if winErr != nil {
		app.Logger.Error("window failed", zap.Error(winErr))
	}
	app.Engine.Stop()
	return errors.Join(winErr, g.Wait())
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
