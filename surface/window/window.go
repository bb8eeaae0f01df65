// Package window presents frames in an Ebiten window and feeds its keyboard
// into an input.Binder.
package window

import (
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/plus3/ecsloop/ecs"
	debugui_ebiten "github.com/plus3/ecsloop/ecs/debugui/ebiten"
	"github.com/plus3/ecsloop/engine"
	"github.com/plus3/ecsloop/input"
	"github.com/plus3/ecsloop/surface"
)

// Window is both an engine.Surface, called on the loop goroutine, and an
// ebiten.Game, called on the main goroutine. Frames cross between them
// through a surface.Buffer.
type Window struct {
	source surface.FrameSource
	binder *input.Binder
	imgui  *debugui_ebiten.ImguiBackend
	logger *zap.Logger

	title         string
	width, height int

	buffer    surface.Buffer
	closed    atomic.Bool
	presented atomic.Uint64
	drawn     uint64
}

type Option func(*Window)

func WithTitle(title string) Option {
	return func(w *Window) {
		w.title = title
	}
}

// WithOverlay draws the debug overlay over the scene. F1 toggles it.
func WithOverlay(backend *debugui_ebiten.ImguiBackend) Option {
	return func(w *Window) {
		w.imgui = backend
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(w *Window) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a window of the given size. binder may be nil.
func New(source surface.FrameSource, binder *input.Binder, width, height int, opts ...Option) *Window {
	w := &Window{
		source: source,
		binder: binder,
		width:  width,
		height: height,
		title:  "ecsloop",
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Present publishes the frame built during the tick.
func (w *Window) Present(report *ecs.TickReport) error {
	if w.closed.Load() {
		return engine.ErrSurfaceClosed
	}
	if report != nil && report.Failed() {
		w.logger.Debug("presenting failed tick", zap.Uint64("tick", report.Tick))
	}
	if w.source != nil {
		w.buffer.Store(w.source.Frame())
	}
	w.presented.Add(1)
	return nil
}

// Close makes the next Update end the game and the next Present report
// engine.ErrSurfaceClosed. Safe from any goroutine.
func (w *Window) Close() {
	w.closed.Store(true)
}

func (w *Window) Closed() bool {
	return w.closed.Load()
}

// Run opens the window and blocks until it is closed. It must be called from
// the main goroutine.
func (w *Window) Run() error {
	defer w.Close()
	if w.imgui == nil {
		ebiten.SetWindowSize(w.width, w.height)
		ebiten.SetWindowTitle(w.title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(false)

	w.logger.Info("window opened", zap.Int("width", w.width), zap.Int("height", w.height))
	err := ebiten.RunGame(w)
	w.logger.Info("window closed", zap.Uint64("presented", w.presented.Load()), zap.Uint64("drawn", w.drawn))
	return err
}

func (w *Window) Update() error {
	if w.closed.Load() {
		return ebiten.Termination
	}

	if w.imgui != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
			visible := w.imgui.Overlay().Toggle()
			w.logger.Debug("overlay toggled", zap.Bool("visible", visible))
		}
		w.imgui.Update()
	}

	if w.binder == nil {
		return nil
	}
	if !ebiten.IsFocused() {
		w.binder.ReleaseAll()
		return nil
	}
	if w.imgui != nil && w.imgui.Overlay().InputState().WantCaptureKeyboard {
		return nil
	}
	w.binder.Poll(IsKeyPressed)
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	frame, swaps := w.buffer.Load()
	if frame != nil {
		screen.Fill(frame.Background)
		for _, item := range frame.Items {
			drawItem(screen, item)
		}
		w.drawn = swaps
	}
	if w.imgui != nil {
		w.imgui.DrawOver(screen)
	}
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w.imgui != nil {
		w.imgui.Layout(outsideWidth, outsideHeight)
	}
	return w.width, w.height
}
