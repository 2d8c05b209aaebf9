package app

import (
	"errors"
	"testing"

	"github.com/dshills/termwm/internal/renderer/backend"
	"github.com/dshills/termwm/internal/wm"
)

func newTestApp(t *testing.T, width, height int) (*Application, *backend.NullBackend) {
	t.Helper()
	a, err := New(Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	b := backend.NewNullBackend(width, height)
	a.SetBackend(b)
	return a, b
}

func keyRune(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}
}

func TestRunWithoutBackend(t *testing.T) {
	a, err := New(Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := a.Run(); !errors.Is(err, ErrNoBackend) {
		t.Errorf("expected ErrNoBackend, got %v", err)
	}
}

func TestRunQuit(t *testing.T) {
	a, b := newTestApp(t, 80, 24)
	b.PostEvent(keyRune('q'))

	if err := a.Run(); !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit, got %v", err)
	}
	if a.Root() == nil {
		t.Errorf("expected initial pane built")
	}
	if !a.IsFocused(a.Root()) {
		t.Errorf("expected lone pane focused")
	}
}

func TestSplitBuildsTree(t *testing.T) {
	a, b := newTestApp(t, 80, 24)
	b.PostEvent(keyRune('s'))
	b.PostEvent(keyRune('v'))
	b.PostEvent(keyRune('q'))

	if err := a.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("run: %v", err)
	}

	root, ok := a.Root().(*wm.Splitter)
	if !ok {
		t.Fatalf("expected splitter root, got %T", a.Root())
	}
	if root.Axis() != wm.AxisRows || root.ChildCount() != 2 {
		t.Fatalf("expected 2-child row splitter, got %v with %d children",
			root.Axis(), root.ChildCount())
	}
	sub, ok := root.Children()[1].(*wm.Splitter)
	if !ok {
		t.Fatalf("expected nested splitter, got %T", root.Children()[1])
	}
	if sub.Axis() != wm.AxisCols || sub.ChildCount() != 2 {
		t.Errorf("expected 2-child column splitter, got %v with %d children",
			sub.Axis(), sub.ChildCount())
	}
	if a.Focused() != sub.Children()[1] {
		t.Errorf("expected focus on newest pane")
	}
}

func TestCloseCollapses(t *testing.T) {
	a, b := newTestApp(t, 80, 24)
	b.PostEvent(keyRune('s'))
	b.PostEvent(keyRune('c'))
	b.PostEvent(keyRune('q'))

	if err := a.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("run: %v", err)
	}

	if _, ok := a.Root().(*wm.Splitter); ok {
		t.Errorf("expected root collapsed back to a leaf pane")
	}
	n := a.Root().Base()
	if n.Height != 24 || n.Width != 80 {
		t.Errorf("expected survivor spanning screen, got %dx%d", n.Height, n.Width)
	}
}

func TestCollapseToSplitterRootFocusesLeaf(t *testing.T) {
	a, b := newTestApp(t, 80, 24)
	b.PostEvent(keyRune('s'))
	b.PostEvent(keyRune('v'))
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyUp, Mod: backend.ModAlt})
	b.PostEvent(keyRune('c'))
	b.PostEvent(keyRune('q'))

	if err := a.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("run: %v", err)
	}

	// Closing the top pane leaves the column splitter as the new root.
	root, ok := a.Root().(*wm.Splitter)
	if !ok {
		t.Fatalf("expected splitter root, got %T", a.Root())
	}
	s := a.FocusedScroller()
	if s == nil {
		t.Fatalf("expected focus on a scrollback pane, got %T", a.Focused())
	}
	if a.Focused() != root.Children()[0] {
		t.Errorf("expected focus on the first leaf of the new root")
	}
}

func TestCloseLastPaneIgnored(t *testing.T) {
	a, b := newTestApp(t, 80, 24)
	b.PostEvent(keyRune('c'))
	b.PostEvent(keyRune('q'))

	if err := a.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("run: %v", err)
	}
	if a.Root() == nil || a.Root().Base().IsSplitter() {
		t.Errorf("expected lone pane to survive close request")
	}
}

func TestResizeKeyGrowsFocusedPane(t *testing.T) {
	a, b := newTestApp(t, 80, 24)
	b.PostEvent(keyRune('s'))
	b.PostEvent(keyRune('+'))
	b.PostEvent(keyRune('q'))

	if err := a.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("run: %v", err)
	}

	root := a.Root().(*wm.Splitter)
	sizes := make([]int, 0, 2)
	for _, c := range root.Children() {
		sizes = append(sizes, c.Base().Height)
	}
	if sizes[0]+sizes[1] != 24 {
		t.Fatalf("expected heights to sum to 24, got %v", sizes)
	}
	// The focused second pane grew by one row.
	if sizes[1] != 13 {
		t.Errorf("expected focused pane height 13, got %v", sizes)
	}
}

func TestTerminalResizeRelayouts(t *testing.T) {
	a, b := newTestApp(t, 80, 24)
	b.PostEvent(keyRune('s'))
	b.PostEvent(backend.Event{Type: backend.EventResize, Width: 100, Height: 40})
	b.PostEvent(keyRune('q'))

	if err := a.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("run: %v", err)
	}

	n := a.Root().Base()
	if n.Height != 40 || n.Width != 100 {
		t.Errorf("expected root re-placed to 40x100, got %dx%d", n.Height, n.Width)
	}
	root := a.Root().(*wm.Splitter)
	sum := 0
	for _, c := range root.Children() {
		sum += c.Base().Height
	}
	if sum != 40 {
		t.Errorf("expected child heights to sum to 40, got %d", sum)
	}
}

func TestFocusNavigation(t *testing.T) {
	a, b := newTestApp(t, 80, 24)
	b.PostEvent(keyRune('s'))
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyUp, Mod: backend.ModAlt})
	b.PostEvent(keyRune('q'))

	if err := a.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("run: %v", err)
	}

	root := a.Root().(*wm.Splitter)
	if a.Focused() != root.Children()[0] {
		t.Errorf("expected focus moved to the top pane")
	}
}

func TestAppendReachesFocusedPane(t *testing.T) {
	a, b := newTestApp(t, 80, 24)
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyEnter})
	b.PostEvent(keyRune('q'))

	if err := a.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("run: %v", err)
	}
	s := a.FocusedScroller()
	if s == nil {
		t.Fatalf("expected scrollback pane focused")
	}
	// Welcome text plus one fed line, each newline-terminated.
	if s.LineCount() < 5 {
		t.Errorf("expected fed lines in buffer, got %d", s.LineCount())
	}
}
