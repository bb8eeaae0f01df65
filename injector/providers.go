// Package injector assembles the application from settings. The wiring is
// generated by wire from wire.go into wire_gen.go.
package injector

import (
	"fmt"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/plus3/ecsloop/config"
	"github.com/plus3/ecsloop/ecs/debugui"
	debugui_ebiten "github.com/plus3/ecsloop/ecs/debugui/ebiten"
	"github.com/plus3/ecsloop/engine"
	"github.com/plus3/ecsloop/input"
	"github.com/plus3/ecsloop/logging"
	"github.com/plus3/ecsloop/scene"
	"github.com/plus3/ecsloop/surface"
	"github.com/plus3/ecsloop/surface/window"
)

// App is a wired application. Exactly one of Window and Headless is set.
type App struct {
	Settings *config.Settings
	Logger   *zap.Logger
	Scene    *scene.Scene
	Binder   *input.Binder
	Engine   *engine.Engine
	Overlay  *debugui.Overlay
	Window   *window.Window
	Headless *surface.Headless
}

// StopAfter closes a headless surface after that many ticks. Zero runs until
// the loop is stopped.
type StopAfter uint64

var baseSet = wire.NewSet(
	ProvideLogger,
	ProvideScene,
	ProvideBinder,
	ProvideEngine,
)

// WindowedSet wires an app presenting to an Ebiten window.
var WindowedSet = wire.NewSet(
	baseSet,
	ProvideOverlay,
	ProvideImguiBackend,
	ProvideWindow,
	wire.Bind(new(engine.Surface), new(*window.Window)),
	ProvideWindowedApp,
)

// HeadlessSet wires an app without a window.
var HeadlessSet = wire.NewSet(
	baseSet,
	ProvideHeadless,
	wire.Bind(new(engine.Surface), new(*surface.Headless)),
	ProvideHeadlessApp,
)

func ProvideLogger(settings *config.Settings) (*zap.Logger, func(), error) {
	logger, err := logging.New(settings.Logging)
	if err != nil {
		return nil, nil, err
	}
	logger = logger.Named(settings.Name)
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvideScene(settings *config.Settings, logger *zap.Logger) (*scene.Scene, error) {
	return scene.New(settings, logger)
}

// ProvideBinder creates a binder posting to the scene's command queue. Its
// default bindings are installed once the engine exists.
func ProvideBinder(sc *scene.Scene, logger *zap.Logger) *input.Binder {
	return input.NewBinder(sc.Scheduler.Commands(), logger.Named("input"))
}

func ProvideEngine(settings *config.Settings, sc *scene.Scene, s engine.Surface, logger *zap.Logger) *engine.Engine {
	return engine.New(sc.Scheduler,
		engine.WithSurface(s),
		engine.WithTiming(settings.Timing()),
		engine.WithLogger(logger.Named("engine")),
	)
}

// ProvideOverlay returns nil when the overlay is disabled.
func ProvideOverlay(settings *config.Settings, sc *scene.Scene) (*debugui.Overlay, error) {
	if !settings.Debug.Overlay {
		return nil, nil
	}
	overlay := debugui.NewOverlay(sc.Scheduler)
	if err := sc.Scheduler.Register(overlay.SnapshotSystem(scene.SystemDebugSnapshot)); err != nil {
		return nil, fmt.Errorf("register overlay: %w", err)
	}
	return overlay, nil
}

func ProvideImguiBackend(settings *config.Settings, overlay *debugui.Overlay) *debugui_ebiten.ImguiBackend {
	if overlay == nil {
		return nil
	}
	return debugui_ebiten.NewImguiBackend(overlay, settings.Name, settings.Screen.Width, settings.Screen.Height)
}

func ProvideWindow(settings *config.Settings, sc *scene.Scene, binder *input.Binder, backend *debugui_ebiten.ImguiBackend, logger *zap.Logger) *window.Window {
	opts := []window.Option{
		window.WithTitle(settings.Name),
		window.WithLogger(logger.Named("window")),
	}
	if backend != nil {
		opts = append(opts, window.WithOverlay(backend))
	}
	return window.New(sc.Renderer, binder, settings.Screen.Width, settings.Screen.Height, opts...)
}

func ProvideHeadless(sc *scene.Scene, stopAfter StopAfter, logger *zap.Logger) *surface.Headless {
	return surface.NewHeadless(sc.Renderer,
		surface.WithStopAfter(uint64(stopAfter)),
		surface.WithLogger(logger.Named("headless")),
	)
}

func newApp(settings *config.Settings, logger *zap.Logger, sc *scene.Scene, binder *input.Binder, eng *engine.Engine) *App {
	players := sc.Players()
	input.BindDefaults(binder, players, eng)
	return &App{
		Settings: settings,
		Logger:   logger,
		Scene:    sc,
		Binder:   binder,
		Engine:   eng,
	}
}

func ProvideWindowedApp(settings *config.Settings, logger *zap.Logger, sc *scene.Scene, binder *input.Binder, eng *engine.Engine, overlay *debugui.Overlay, w *window.Window) *App {
	app := newApp(settings, logger, sc, binder, eng)
	app.Overlay = overlay
	app.Window = w
	return app
}

func ProvideHeadlessApp(settings *config.Settings, logger *zap.Logger, sc *scene.Scene, binder *input.Binder, eng *engine.Engine, h *surface.Headless) *App {
	app := newApp(settings, logger, sc, binder, eng)
	app.Headless = h
	return app
}
