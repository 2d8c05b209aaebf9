// Package app wires the window tree to a terminal backend and drives the
// interactive session. It is the facade collaborator the tree code talks
// to: it owns the root window, tracks focus and supplies options and
// chrome styles.
package app

import (
	"fmt"

	"github.com/dshills/termwm/internal/config"
	"github.com/dshills/termwm/internal/log"
	"github.com/dshills/termwm/internal/renderer/backend"
	"github.com/dshills/termwm/internal/renderer/core"
	"github.com/dshills/termwm/internal/renderer/theme"
	"github.com/dshills/termwm/internal/surface"
	"github.com/dshills/termwm/internal/wm"
	"github.com/dshills/termwm/internal/wm/scroller"
)

// Options configures application startup.
type Options struct {
	// ConfigPath is the options file to load; empty uses defaults.
	ConfigPath string

	// LogFile receives diagnostics; empty discards them. Overrides the
	// configured log file.
	LogFile string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string
}

// Application owns the window tree, the focus state and the terminal
// backend for one session.
type Application struct {
	opts    config.Options
	backend backend.Backend
	th      *theme.Theme
	logger  *log.Logger

	root    wm.Window
	focus   wm.Window
	panes   int
	running bool
}

// New loads configuration and prepares an application. The terminal
// backend is attached separately so tests can supply a fake.
func New(o Options) (*Application, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logFile := cfg.LogFile
	if o.LogFile != "" {
		logFile = o.LogFile
	}
	level := cfg.LogLevel
	if o.LogLevel != "" {
		level = o.LogLevel
	}

	logger := log.Null
	if logFile != "" {
		logger, err = log.NewFile(logFile, log.ParseLevel(level), "app")
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
	}

	th := theme.Default()
	if cfg.StatusColor != "" {
		// Validated by config.Load.
		base, err := core.ColorFromHex(cfg.StatusColor)
		if err != nil {
			return nil, fmt.Errorf("theme color: %w", err)
		}
		th = theme.FromBase(base)
	}

	return &Application{
		opts:   cfg,
		th:     th,
		logger: logger,
	}, nil
}

// SetBackend attaches the terminal driver.
func (a *Application) SetBackend(b backend.Backend) {
	a.backend = b
}

// IsFocused reports whether w is the focused window.
func (a *Application) IsFocused(w wm.Window) bool { return a.focus == w }

// Focus moves focus to w and repaints both affected panes.
func (a *Application) Focus(w wm.Window) {
	if w == nil || a.focus == w {
		return
	}
	old := a.focus
	a.focus = w
	if old != nil {
		_ = old.Redraw(false)
	}
	_ = w.Redraw(true)
}

// SetRoot adopts w as the new tree root after the old root collapsed.
// Focus lands on a leaf so scroll keys keep working when the survivor is
// itself a splitter.
func (a *Application) SetRoot(w wm.Window) {
	a.root = w
	a.focus = firstLeaf(w)
	_ = w.Layout()
}

// firstLeaf descends through splitters to the first leaf pane.
func firstLeaf(w wm.Window) wm.Window {
	for {
		sp, ok := w.(*wm.Splitter)
		if !ok || sp.ChildCount() == 0 {
			return w
		}
		w = sp.Children()[0]
	}
}

// Options returns the window-manager options.
func (a *Application) Options() *config.Options { return &a.opts }

// Theme returns the chrome styles.
func (a *Application) Theme() *theme.Theme { return a.th }

// Root returns the current tree root.
func (a *Application) Root() wm.Window { return a.root }

// Focused returns the focused window.
func (a *Application) Focused() wm.Window { return a.focus }

// FocusedScroller returns the focused pane as a scrollback pane, or nil.
func (a *Application) FocusedScroller() *scroller.Scroller {
	s, _ := a.focus.(*scroller.Scroller)
	return s
}

// Run initializes the backend, builds the initial single-pane tree and
// processes events until quit. Always returns a non-nil error; a normal
// exit reports ErrQuit.
func (a *Application) Run() error {
	if a.backend == nil {
		return ErrNoBackend
	}
	if a.running {
		return ErrAlreadyRunning
	}
	a.running = true
	defer func() { a.running = false }()

	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Shutdown()

	width, height := a.backend.Size()
	a.logger.Info("session start %dx%d", width, height)

	pane := a.newPane()
	wm.Attach(pane, a, nil, surface.New(a.backend, 0, 0, height, width))
	a.root = pane
	a.focus = pane
	if err := pane.Layout(); err != nil {
		return err
	}

	return a.eventLoop()
}

// Shutdown releases the terminal. Safe to call on any exit path.
func (a *Application) Shutdown() {
	if a.backend != nil && a.running {
		a.backend.Shutdown()
	}
	a.logger.Info("session end")
}

// newPane creates the next scrollback pane with a numbered title.
func (a *Application) newPane() *scroller.Scroller {
	a.panes++
	return scroller.New(fmt.Sprintf("scroll %d", a.panes))
}

// splitFocused splits the focused pane along the given axis. When the
// root is a lone leaf it is first wrapped in a splitter spanning the
// screen.
func (a *Application) splitFocused(axis wm.Axis) error {
	target := a.focus
	if target == nil {
		return nil
	}

	parent := target.Base().Parent()
	if parent == nil {
		width, height := a.backend.Size()
		sp := wm.NewSplitter(axis)
		wm.Attach(sp, a, nil, surface.New(a.backend, 0, 0, height, width))
		a.root = sp
		if err := sp.Split(nil, target, axis); err != nil {
			return err
		}
		parent = sp
	}

	next := a.newPane()
	if err := parent.Split(target, next, axis); err != nil {
		return err
	}
	a.Focus(next)
	return nil
}

// closeFocused removes the focused pane. The last remaining pane cannot
// be closed.
func (a *Application) closeFocused() error {
	target := a.focus
	if target == nil {
		return nil
	}
	parent := target.Base().Parent()
	if parent == nil {
		a.logger.Debug("close ignored on last pane")
		return nil
	}
	return parent.Remove(target)
}

// resizeFocused grows or shrinks the focused pane along its parent's
// axis.
func (a *Application) resizeFocused(delta int) error {
	target := a.focus
	if target == nil {
		return nil
	}
	parent := target.Base().Parent()
	if parent == nil {
		return nil
	}
	size := parent.Axis().Extent(target.Base()) + delta
	return parent.ResizeWindow(target, parent.Axis(), size)
}

// focusNeighbor moves focus one pane in the given direction, keyed off
// the focused pane's origin.
func (a *Application) focusNeighbor(dir wm.Direction) {
	target := a.focus
	if target == nil {
		return
	}
	parent := target.Base().Parent()
	if parent == nil {
		return
	}
	n := target.Base()
	if next := parent.Neighbor(target, dir, core.NewScreenPos(n.Top, n.Left)); next != nil {
		a.Focus(next)
	}
}

// relayout re-places the whole tree after a terminal resize.
func (a *Application) relayout(width, height int) {
	a.logger.Debug("resize %dx%d", width, height)
	if a.root != nil {
		_ = wm.Place(a.root, 0, 0, height, width)
	}
}
