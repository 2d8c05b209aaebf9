// Package surface provides the rectangular terminal surface owned by each
// window node. A Surface is a positioned view onto a Backend; all drawing
// is in surface-relative coordinates and clipped to the surface extent.
package surface

import (
	"github.com/dshills/termwm/internal/renderer/backend"
	"github.com/dshills/termwm/internal/renderer/core"
)

// Surface is a movable, resizable rectangle of cells on a backend.
// A surface is an exclusive resource: it belongs to exactly one window
// node and is mutated only by that node's layout/redraw calls.
type Surface struct {
	b      backend.Backend
	top    int
	left   int
	height int
	width  int
}

// New creates a surface at the given origin and size.
func New(b backend.Backend, top, left, height, width int) *Surface {
	if height < 1 {
		height = 1
	}
	if width < 1 {
		width = 1
	}
	return &Surface{b: b, top: top, left: left, height: height, width: width}
}

// Origin returns the surface's top-left corner in screen coordinates.
func (s *Surface) Origin() (top, left int) {
	return s.top, s.left
}

// Size returns the surface dimensions.
func (s *Surface) Size() (height, width int) {
	return s.height, s.width
}

// Rect returns the surface extent in screen coordinates.
func (s *Surface) Rect() core.ScreenRect {
	return core.RectFromSize(s.top, s.left, s.height, s.width)
}

// Resize changes the surface dimensions, keeping the origin.
func (s *Surface) Resize(height, width int) {
	if height < 1 {
		height = 1
	}
	if width < 1 {
		width = 1
	}
	s.height = height
	s.width = width
}

// Move repositions the surface origin, keeping the size.
func (s *Surface) Move(top, left int) {
	s.top = top
	s.left = left
}

// Place resizes and then moves the surface. Resize must precede move so the
// surface never transiently extends past the physical screen extents.
func (s *Surface) Place(top, left, height, width int) {
	s.Resize(height, width)
	s.Move(top, left)
}

// Carve creates a new surface on the same backend at the given
// surface-relative origin. The carved surface is an independent handle;
// callers are responsible for keeping sibling surfaces disjoint.
func (s *Surface) Carve(top, left, height, width int) *Surface {
	return New(s.b, s.top+top, s.left+left, height, width)
}

// Erase fills the whole surface with empty cells.
func (s *Surface) Erase() {
	s.b.Fill(s.Rect(), core.EmptyCell())
}

// SetCell writes one cell at the given surface-relative position.
// Out-of-bounds writes are silently dropped.
func (s *Surface) SetCell(row, col int, cell core.Cell) {
	if row < 0 || row >= s.height || col < 0 || col >= s.width {
		return
	}
	s.b.SetCell(s.left+col, s.top+row, cell)
}

// ClearRow fills one surface row with empty cells.
func (s *Surface) ClearRow(row int) {
	s.FillRow(row, core.EmptyCell())
}

// FillRow fills one surface row with the given cell.
func (s *Surface) FillRow(row int, cell core.Cell) {
	if row < 0 || row >= s.height {
		return
	}
	s.b.Fill(core.RectFromSize(s.top+row, s.left, 1, s.width), cell)
}

// WriteString writes text starting at the given surface-relative position,
// clipped at the right edge. Returns the column after the last cell written.
func (s *Surface) WriteString(row, col int, text string, style core.Style) int {
	for _, cell := range core.CellsFromString(text, style) {
		if col >= s.width {
			break
		}
		s.SetCell(row, col, cell)
		col++
	}
	return col
}

// SetCursor shows the hardware cursor at the given surface-relative
// position, or hides it.
func (s *Surface) SetCursor(visible bool, row, col int) {
	if !visible || row < 0 || row >= s.height || col < 0 || col >= s.width {
		s.b.HideCursor()
		return
	}
	s.b.ShowCursor(s.left+col, s.top+row)
}

// Refresh flushes pending drawing to the physical screen.
func (s *Surface) Refresh() {
	s.b.Show()
}
