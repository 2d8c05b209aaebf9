package wm

import (
	"testing"

	"github.com/dshills/termwm/internal/config"
	"github.com/dshills/termwm/internal/renderer/backend"
	"github.com/dshills/termwm/internal/renderer/theme"
	"github.com/dshills/termwm/internal/surface"
)

// fakePane is a minimal leaf window for tree tests.
type fakePane struct {
	Node

	minH, minW int
	layouts    int
	redraws    int
	destroyed  bool
}

func newFakePane(minH, minW int) *fakePane {
	return &fakePane{minH: minH, minW: minW}
}

func (p *fakePane) Init() error { return nil }

func (p *fakePane) Destroy() error {
	p.destroyed = true
	p.releaseSurface()
	return nil
}

func (p *fakePane) Layout() error {
	p.layouts++
	return nil
}

func (p *fakePane) Redraw(_ bool) error {
	p.redraws++
	return nil
}

func (p *fakePane) MinimumSize() (int, int) {
	return p.minH, p.minW
}

// fakeManager is a facade double recording focus and root changes.
type fakeManager struct {
	focus Window
	root  Window
	opts  config.Options
	th    *theme.Theme
}

func newFakeManager() *fakeManager {
	return &fakeManager{opts: config.Default(), th: theme.Default()}
}

func (m *fakeManager) IsFocused(w Window) bool { return m.focus == w }
func (m *fakeManager) Focus(w Window)          { m.focus = w }
func (m *fakeManager) Options() *config.Options {
	return &m.opts
}
func (m *fakeManager) Theme() *theme.Theme { return m.th }

func (m *fakeManager) SetRoot(w Window) {
	m.root = w
	m.focus = w
	_ = w.Layout()
}

func newTestTree(t *testing.T, axis Axis, height, width int) (*Splitter, *fakeManager, *backend.NullBackend) {
	t.Helper()
	b := backend.NewNullBackend(width, height)
	if err := b.Init(); err != nil {
		t.Fatalf("backend init: %v", err)
	}
	mgr := newFakeManager()
	root := NewSplitter(axis)
	Attach(root, mgr, nil, surface.New(b, 0, 0, height, width))
	mgr.root = root
	return root, mgr, b
}

func TestWindowInterface(t *testing.T) {
	// Verify concrete panes satisfy the contract through Node embedding.
	var _ Window = (*Splitter)(nil)
	var _ Window = (*fakePane)(nil)

	p := newFakePane(1, 1)
	if p.Base() != &p.Node {
		t.Error("expected Base to return the embedded node")
	}
}

func TestNodeContentHeight(t *testing.T) {
	tests := []struct {
		name      string
		height    int
		statusBar bool
		expected  int
	}{
		{"no status bar", 10, false, 10},
		{"with status bar", 10, true, 9},
		{"single row with status bar", 1, true, 0},
		{"zero height", 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &Node{Height: tt.height}
			n.ShowStatusBar(tt.statusBar)
			if got := n.ContentHeight(); got != tt.expected {
				t.Errorf("expected content height %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestSetContextSyncsGeometry(t *testing.T) {
	b := backend.NewNullBackend(80, 24)
	_ = b.Init()
	surf := surface.New(b, 3, 5, 10, 40)

	p := newFakePane(1, 1)
	p.SetContext(nil, nil, surf)

	if p.Top != 3 || p.Left != 5 {
		t.Errorf("expected origin (3,5), got (%d,%d)", p.Top, p.Left)
	}
	if p.Height != 10 || p.Width != 40 {
		t.Errorf("expected size 10x40, got %dx%d", p.Height, p.Width)
	}
}

func TestPlaceAppliesGeometryAndLaysOut(t *testing.T) {
	b := backend.NewNullBackend(80, 24)
	_ = b.Init()

	p := newFakePane(1, 1)
	p.SetContext(nil, nil, surface.New(b, 0, 0, 24, 80))

	if err := Place(p, 2, 4, 10, 30); err != nil {
		t.Fatalf("place: %v", err)
	}
	top, left := p.Surface().Origin()
	height, width := p.Surface().Size()
	if top != 2 || left != 4 || height != 10 || width != 30 {
		t.Errorf("expected surface rect (2,4,10,30), got (%d,%d,%d,%d)", top, left, height, width)
	}
	if p.layouts != 1 {
		t.Errorf("expected 1 layout call, got %d", p.layouts)
	}
}

func TestMinDimensionFloorsByOptions(t *testing.T) {
	mgr := newFakeManager()
	mgr.opts.WinMinHeight = 4
	mgr.opts.WinMinWidth = 7

	p := newFakePane(2, 10)
	p.SetContext(mgr, nil, nil)

	if got := minDimension(p, AxisRows); got != 4 {
		t.Errorf("expected height floor 4, got %d", got)
	}
	if got := minDimension(p, AxisCols); got != 10 {
		t.Errorf("expected width 10, got %d", got)
	}
}
