// Package scroller implements the scrollback pane: an append-only text
// buffer with terminal-style line editing, inline style markers and a
// bottom-up wrap renderer.
package scroller

import (
	"github.com/dshills/termwm/internal/renderer/core"
	"github.com/dshills/termwm/internal/renderer/theme"
	"github.com/dshills/termwm/internal/surface"
	"github.com/dshills/termwm/internal/wm"
)

// Scroller is a leaf pane showing the tail of a scrollback buffer. The
// view position is the logical line rendered at the bottom of the pane
// plus a horizontal wrap offset into that line, so scrolling moves by
// rendered rows rather than logical lines.
type Scroller struct {
	wm.Node

	title    string
	buf      *buffer
	viewLine int // logical line at the bottom of the view
	viewCol  int // wrap offset into viewLine, a multiple of the pane width
}

// New creates a scrollback pane with a status strip reserved at the
// bottom.
func New(title string) *Scroller {
	s := &Scroller{title: title}
	s.ShowStatusBar(true)
	_ = s.Init()
	return s
}

// Title returns the label shown on the status strip.
func (s *Scroller) Title() string { return s.title }

// SetTitle changes the status strip label.
func (s *Scroller) SetTitle(title string) { s.title = title }

// Init resets the buffer to a single empty line.
func (s *Scroller) Init() error {
	s.buf = newBuffer()
	s.viewLine = 0
	s.viewCol = 0
	return nil
}

// Destroy releases the pane's surface. The buffer is dropped with the
// pane.
func (s *Scroller) Destroy() error {
	s.SetContext(nil, nil, nil)
	return nil
}

// Layout clamps the view to the resized buffer window and repaints.
func (s *Scroller) Layout() error {
	if s.viewLine > s.buf.count()-1 {
		s.viewLine = s.buf.count() - 1
	}
	return s.Redraw(s.focusedSelf())
}

// MinimumSize is one content row plus the status strip, two columns wide.
func (s *Scroller) MinimumSize() (height, width int) {
	height = 1
	if s.StatusBarVisible() {
		height++
	}
	return height, 2
}

// Append streams raw text into the buffer and snaps the view back to the
// bottom. The text may contain newlines, carriage returns, backspaces,
// tabs and style markers; see editLine for the per-segment rules.
func (s *Scroller) Append(text string) {
	s.buf.append(text)
	s.End()
}

// LineCount returns the number of logical lines in the buffer.
func (s *Scroller) LineCount() int { return s.buf.count() }

// Line returns the raw logical line at index i, markers included.
func (s *Scroller) Line(i int) string { return s.buf.line(i) }

// ScrollUp moves the view up by nlines rendered rows, clamping at the top
// of the buffer.
func (s *Scroller) ScrollUp(nlines int) {
	width := s.Width
	if width <= 0 {
		return
	}
	// A resize can leave the wrap offset off the new width grid.
	if s.viewCol%width != 0 {
		s.viewCol = (s.viewCol / width) * width
	}
	for i := 0; i < nlines; i++ {
		if s.viewCol > 0 {
			s.viewCol -= width
		} else if s.viewLine > 0 {
			s.viewLine--
			s.viewCol = 0
			if l := visibleLength(s.buf.line(s.viewLine)); l > width {
				s.viewCol = ((l - 1) / width) * width
			}
		} else {
			break
		}
	}
}

// ScrollDown moves the view down by nlines rendered rows, clamping at the
// bottom of the buffer.
func (s *Scroller) ScrollDown(nlines int) {
	width := s.Width
	if width <= 0 {
		return
	}
	if s.viewCol%width != 0 {
		s.viewCol = (s.viewCol / width) * width
	}
	for i := 0; i < nlines; i++ {
		if s.viewCol < visibleLength(s.buf.line(s.viewLine))-width {
			s.viewCol += width
		} else if s.viewLine < s.buf.count()-1 {
			s.viewLine++
			s.viewCol = 0
		} else {
			break
		}
	}
}

// Home jumps the view to the top of the buffer.
func (s *Scroller) Home() {
	s.viewLine = 0
	s.viewCol = 0
}

// End jumps the view to the bottom of the buffer.
func (s *Scroller) End() {
	s.viewLine = s.buf.count() - 1
	s.viewCol = 0
	if width := s.Width; width > 0 {
		s.viewCol = (visibleLength(s.buf.last()) / width) * width
	}
}

// AtBottom reports whether the view shows the end of the buffer.
func (s *Scroller) AtBottom() bool {
	return s.viewLine == s.buf.count()-1
}

// Redraw repaints the pane bottom-up from the view position: the view
// line's wrap row goes on the last content row and earlier rendered rows
// walk backward through wrap offsets and logical lines until the pane is
// full or the buffer runs out.
func (s *Scroller) Redraw(focused bool) error {
	surf := s.Surface()
	if surf == nil {
		return nil
	}
	width := s.Width
	if width <= 0 {
		return nil
	}
	contentH := s.ContentHeight()

	r := s.viewLine
	c := s.viewCol
	if c%width != 0 {
		c = (c / width) * width
	}

	for n := 1; n <= contentH; n++ {
		row := contentH - n
		surf.ClearRow(row)
		if r >= 0 {
			s.renderLine(surf, row, s.buf.line(r), c, width)
		}
		if c > 0 {
			c -= width
		} else {
			r--
			if r >= 0 {
				if l := visibleLength(s.buf.line(r)); l > width {
					c = ((l - 1) / width) * width
				}
			}
		}
	}

	if s.StatusBarVisible() && s.Height > 0 {
		style := s.chromeTheme().StatusStyle(focused)
		surf.FillRow(s.Height-1, core.NewStyledCell(' ', style))
		surf.WriteString(s.Height-1, 1, s.title, style)
	}

	s.placeCursor(surf, focused, width, contentH)
	surf.Refresh()
	return nil
}

// renderLine draws the wrap segment [startCol, startCol+width) of one
// logical line. Style state starts from default at the head of the line
// so markers never bleed across logical lines.
func (s *Scroller) renderLine(surf *surface.Surface, row int, line string, startCol, width int) {
	rs := []rune(line)
	style := core.DefaultStyle()
	col := 0
	for i := 0; i < len(rs); i++ {
		if codes, n, ok := parseMarker(rs[i:]); ok {
			style = applyMarker(style, codes)
			i += n - 1
			continue
		}
		w := core.RuneWidth(rs[i])
		if w == 0 {
			continue
		}
		if col >= startCol+width {
			break
		}
		if col >= startCol {
			surf.SetCell(row, col-startCol, core.NewStyledCell(rs[i], style))
		}
		col += w
	}
}

// placeCursor shows the hardware cursor at the write position when the
// pane is focused and the view sits on the tail of the last line.
func (s *Scroller) placeCursor(surf *surface.Surface, focused bool, width, contentH int) {
	last := s.buf.count() - 1
	remaining := visibleLength(s.buf.last()) - s.viewCol
	show := focused && contentH > 0 && s.viewLine == last &&
		remaining >= 0 && remaining <= width

	col := visibleWidthBefore(s.buf.last(), s.buf.cursor) - s.viewCol
	if col > width {
		col = width
	}
	surf.SetCursor(show, contentH-1, col)
}

func (s *Scroller) focusedSelf() bool {
	mgr := s.Manager()
	return mgr != nil && mgr.IsFocused(s)
}

func (s *Scroller) chromeTheme() *theme.Theme {
	if mgr := s.Manager(); mgr != nil && mgr.Theme() != nil {
		return mgr.Theme()
	}
	return theme.Default()
}
