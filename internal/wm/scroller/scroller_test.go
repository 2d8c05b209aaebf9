package scroller

import (
	"testing"

	"github.com/dshills/termwm/internal/renderer/backend"
	"github.com/dshills/termwm/internal/renderer/core"
	"github.com/dshills/termwm/internal/surface"
	"github.com/dshills/termwm/internal/wm"
)

func newTestScroller(t *testing.T, height, width int) (*Scroller, *backend.NullBackend) {
	t.Helper()
	b := backend.NewNullBackend(width, height)
	if err := b.Init(); err != nil {
		t.Fatalf("backend init: %v", err)
	}
	s := New("test")
	wm.Attach(s, nil, nil, surface.New(b, 0, 0, height, width))
	if err := wm.Place(s, 0, 0, height, width); err != nil {
		t.Fatalf("place: %v", err)
	}
	return s, b
}

func TestScrollerIsWindow(t *testing.T) {
	var _ wm.Window = (*Scroller)(nil)

	s := New("test")
	if s.Base() == nil {
		t.Error("expected embedded node")
	}
}

func TestAppendTabExpansion(t *testing.T) {
	s, _ := newTestScroller(t, 3, 40)
	s.Append("abc\tdef")
	if got := s.Line(0); got != "abc     def" {
		t.Errorf("expected tab padded to column 8, got %q", got)
	}
}

func TestAppendBackspace(t *testing.T) {
	s, _ := newTestScroller(t, 3, 40)
	s.Append("abc\x08\x08xy")
	if got := s.Line(0); got != "axy" {
		t.Errorf("expected %q, got %q", "axy", got)
	}
}

func TestAppendCarriageReturn(t *testing.T) {
	s, _ := newTestScroller(t, 3, 40)
	s.Append("hello\rHE")
	if got := s.Line(0); got != "HEllo" {
		t.Errorf("expected %q, got %q", "HEllo", got)
	}
}

func TestAppendNewlines(t *testing.T) {
	s, _ := newTestScroller(t, 5, 40)
	s.Append("one\ntwo\nthree")
	if s.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", s.LineCount())
	}
	for i, expected := range []string{"one", "two", "three"} {
		if got := s.Line(i); got != expected {
			t.Errorf("line %d: expected %q, got %q", i, expected, got)
		}
	}
}

func TestAppendAcrossCalls(t *testing.T) {
	s, _ := newTestScroller(t, 3, 40)
	s.Append("par")
	s.Append("tial\n")
	s.Append("next")
	if got := s.Line(0); got != "partial" {
		t.Errorf("expected %q, got %q", "partial", got)
	}
	if got := s.Line(1); got != "next" {
		t.Errorf("expected %q, got %q", "next", got)
	}
}

func TestAppendTrimsBeyondWritePosition(t *testing.T) {
	s, _ := newTestScroller(t, 3, 40)
	s.Append("ab  \rX")
	if got := s.Line(0); got != "Xb" {
		t.Errorf("expected trailing spaces past write position trimmed, got %q", got)
	}
}

func TestEditLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		pos      int
		seg      string
		expected string
		endPos   int
	}{
		{"append to empty", "", 0, "abc", "abc", 3},
		{"overwrite middle", "hello", 0, "J", "Jello", 1},
		{"backspace at zero is no-op", "", 0, "\x08x", "x", 1},
		{"delete code", "abc", 3, "\x7Fz", "abz", 3},
		{"tab from column zero", "", 0, "\tx", "        x", 9},
		{"control characters dropped", "", 0, "a\x01\x02b", "ab", 2},
		{"lone escape dropped", "", 0, "a\x1bb", "ab", 2},
		{"malformed marker dropped", "", 0, "a\x1b[31xb", "a[31xb", 6},
		{"marker stored verbatim", "", 0, "\x1b[31mr", "\x1b[31mr", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, pos := editLine(tt.line, tt.pos, tt.seg)
			if line != tt.expected {
				t.Errorf("expected line %q, got %q", tt.expected, line)
			}
			if pos != tt.endPos {
				t.Errorf("expected pos %d, got %d", tt.endPos, pos)
			}
		})
	}
}

func TestMarkerLength(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		ok     bool
	}{
		{"reset marker", "\x1b[m", 3, true},
		{"single param", "\x1b[31m", 5, true},
		{"two params", "\x1b[1;37m", 7, true},
		{"trailing text", "\x1b[7mrest", 4, true},
		{"lone escape", "\x1b", 0, false},
		{"missing terminator", "\x1b[31x", 0, false},
		{"empty separator", "\x1b[;m", 0, false},
		{"dangling separator", "\x1b[1;m", 0, false},
		{"three params", "\x1b[1;2;3m", 0, false},
		{"plain text", "abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			length, ok := markerLength([]rune(tt.input))
			if ok != tt.ok || length != tt.length {
				t.Errorf("expected (%d,%v), got (%d,%v)", tt.length, tt.ok, length, ok)
			}
		})
	}
}

func TestVisibleLengthExcludesMarkers(t *testing.T) {
	line := "\x1b[31mred\x1b[0mnormal"
	if got := visibleLength(line); got != 9 {
		t.Errorf("expected visible length 9, got %d", got)
	}
	if got := visibleLength("plain"); got != 5 {
		t.Errorf("expected visible length 5, got %d", got)
	}
}

func TestApplyMarker(t *testing.T) {
	style := applyMarker(core.DefaultStyle(), []int{1, 31})
	if !style.Attributes.Has(core.AttrBold) {
		t.Errorf("expected bold set")
	}
	if !style.Foreground.Equals(core.ColorFromIndex(1)) {
		t.Errorf("expected red foreground, got %v", style.Foreground)
	}

	style = applyMarker(style, []int{0})
	if !style.Equals(core.DefaultStyle()) {
		t.Errorf("expected reset to default, got %v", style)
	}

	style = applyMarker(core.DefaultStyle(), []int{91})
	if !style.Attributes.Has(core.AttrBold) {
		t.Errorf("expected bright foreground to imply bold")
	}
	if !style.Foreground.Equals(core.ColorFromIndex(1)) {
		t.Errorf("expected bright red index, got %v", style.Foreground)
	}
}

func TestRenderStyledSegments(t *testing.T) {
	s, b := newTestScroller(t, 3, 20)
	s.Append("\x1b[31mred\x1b[0mnormal")
	if err := s.Redraw(false); err != nil {
		t.Fatalf("redraw: %v", err)
	}

	// Content rows are 0 and 1; the single line sits on the bottom one.
	if got := b.RowString(1); got != "rednormal" {
		t.Errorf("expected %q on bottom content row, got %q", "rednormal", got)
	}
	if got := b.GetCell(0, 1).Style.Foreground; !got.Equals(core.ColorFromIndex(1)) {
		t.Errorf("expected red cell, got %v", got)
	}
	if got := b.GetCell(3, 1).Style; !got.Equals(core.DefaultStyle()) {
		t.Errorf("expected default style after reset marker, got %v", got)
	}
}

func TestRenderWrapsLongLines(t *testing.T) {
	s, b := newTestScroller(t, 4, 10)
	s.Append("0123456789abcdefghijKLMNO")

	if err := s.Redraw(false); err != nil {
		t.Fatalf("redraw: %v", err)
	}

	// 25 visible cells wrap to three rows across the three content rows.
	expected := []string{"0123456789", "abcdefghij", "KLMNO"}
	for row, want := range expected {
		if got := b.RowString(row); got != want {
			t.Errorf("row %d: expected %q, got %q", row, want, got)
		}
	}
}

func TestScrollRoundTrip(t *testing.T) {
	s, _ := newTestScroller(t, 4, 10)
	for i := 0; i < 10; i++ {
		s.Append("0123456789abcde\n")
	}
	startLine, startCol := s.viewLine, s.viewCol

	s.ScrollUp(5)
	if s.viewLine == startLine && s.viewCol == startCol {
		t.Fatalf("expected scroll up to move the view")
	}
	s.ScrollDown(5)
	if s.viewLine != startLine || s.viewCol != startCol {
		t.Errorf("expected view restored to (%d,%d), got (%d,%d)",
			startLine, startCol, s.viewLine, s.viewCol)
	}
}

func TestScrollCountsWrappedRows(t *testing.T) {
	s, _ := newTestScroller(t, 4, 10)
	s.Append("short\n")
	s.Append("0123456789abcdefghijKLMNO\n")
	// Buffer: "short", the 25-cell line, "".
	if s.viewLine != 2 || s.viewCol != 0 {
		t.Fatalf("expected view at (2,0), got (%d,%d)", s.viewLine, s.viewCol)
	}

	// One row up lands on the last wrap row of the long line.
	s.ScrollUp(1)
	if s.viewLine != 1 || s.viewCol != 20 {
		t.Errorf("expected (1,20), got (%d,%d)", s.viewLine, s.viewCol)
	}
	s.ScrollUp(2)
	if s.viewLine != 1 || s.viewCol != 0 {
		t.Errorf("expected (1,0), got (%d,%d)", s.viewLine, s.viewCol)
	}
	s.ScrollUp(1)
	if s.viewLine != 0 || s.viewCol != 0 {
		t.Errorf("expected (0,0), got (%d,%d)", s.viewLine, s.viewCol)
	}
}

func TestScrollResnapsAfterResize(t *testing.T) {
	s, _ := newTestScroller(t, 4, 10)
	s.Append("0123456789abcdefghijKLMNO\n")
	// Buffer: the 25-cell line, "".
	s.ScrollUp(1)
	if s.viewLine != 0 || s.viewCol != 20 {
		t.Fatalf("expected (0,20), got (%d,%d)", s.viewLine, s.viewCol)
	}

	// Shrink the pane; the stale offset 20 is off the new 7-cell grid.
	if err := wm.Place(s, 0, 0, 4, 7); err != nil {
		t.Fatalf("place: %v", err)
	}
	s.ScrollUp(1)
	if s.viewLine != 0 || s.viewCol != 7 {
		t.Errorf("expected (0,7), got (%d,%d)", s.viewLine, s.viewCol)
	}

	s.ScrollDown(1)
	if s.viewCol%7 != 0 || s.viewCol < 0 {
		t.Errorf("expected offset on the 7-cell grid, got %d", s.viewCol)
	}
}

func TestScrollClampsAtEdges(t *testing.T) {
	s, _ := newTestScroller(t, 4, 10)
	s.Append("one\ntwo")

	s.Home()
	s.ScrollUp(100)
	if s.viewLine != 0 || s.viewCol != 0 {
		t.Errorf("expected clamp at top, got (%d,%d)", s.viewLine, s.viewCol)
	}

	s.ScrollDown(100)
	if !s.AtBottom() {
		t.Errorf("expected clamp at bottom, got line %d", s.viewLine)
	}
	s.ScrollDown(1)
	if !s.AtBottom() {
		t.Errorf("expected to stay at bottom")
	}
}

func TestHomeAndEnd(t *testing.T) {
	s, _ := newTestScroller(t, 4, 10)
	s.Append("a\nb\nc\nd\ne")

	s.Home()
	if s.viewLine != 0 || s.viewCol != 0 {
		t.Errorf("expected home at (0,0), got (%d,%d)", s.viewLine, s.viewCol)
	}
	s.End()
	if s.viewLine != 4 || s.viewCol != 0 {
		t.Errorf("expected end at (4,0), got (%d,%d)", s.viewLine, s.viewCol)
	}
}

func TestCursorShownWhenFocusedAtBottom(t *testing.T) {
	s, b := newTestScroller(t, 3, 20)
	s.Append("hi")

	if err := s.Redraw(true); err != nil {
		t.Fatalf("redraw: %v", err)
	}
	x, y, visible := b.CursorPosition()
	if !visible {
		t.Fatalf("expected cursor visible")
	}
	if x != 2 || y != 1 {
		t.Errorf("expected cursor at (2,1), got (%d,%d)", x, y)
	}

	// Scrolled away from the bottom the cursor hides.
	s.Append("one\ntwo\nthree")
	s.ScrollUp(2)
	if err := s.Redraw(true); err != nil {
		t.Fatalf("redraw: %v", err)
	}
	if _, _, visible := b.CursorPosition(); visible {
		t.Errorf("expected cursor hidden while scrolled back")
	}

	// Unfocused panes never show the cursor.
	s.End()
	if err := s.Redraw(false); err != nil {
		t.Fatalf("redraw: %v", err)
	}
	if _, _, visible := b.CursorPosition(); visible {
		t.Errorf("expected cursor hidden without focus")
	}
}

func TestStatusStripShowsTitle(t *testing.T) {
	s, b := newTestScroller(t, 3, 20)
	s.Append("content")
	if err := s.Redraw(false); err != nil {
		t.Fatalf("redraw: %v", err)
	}
	if got := b.RowString(2); got != " test" {
		t.Errorf("expected title on status strip, got %q", got)
	}
}

func TestMinimumSize(t *testing.T) {
	s := New("x")
	h, w := s.MinimumSize()
	if h != 2 || w != 2 {
		t.Errorf("expected minimum 2x2 with status strip, got %dx%d", h, w)
	}
	s.ShowStatusBar(false)
	h, _ = s.MinimumSize()
	if h != 1 {
		t.Errorf("expected minimum height 1 without status strip, got %d", h)
	}
}
