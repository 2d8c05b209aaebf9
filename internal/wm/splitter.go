package wm

import (
	"fmt"

	"github.com/dshills/termwm/internal/renderer/core"
)

// Splitter is a container pane dividing its rectangle among an ordered
// sequence of children along one axis. Children are laid out contiguously
// with no gaps; column-wise splits separate children with a 1-cell divider,
// row-wise splits consume no divider space (a pane's bottom status strip
// serves as the visual separator).
type Splitter struct {
	Node

	axis     Axis
	children []Window
}

// NewSplitter creates an empty splitter for the given axis.
func NewSplitter(axis Axis) *Splitter {
	s := &Splitter{axis: axis}
	s.isSplitter = true
	_ = s.Init()
	return s
}

// Axis returns the split axis.
func (s *Splitter) Axis() Axis { return s.axis }

// ChildCount returns the number of children.
func (s *Splitter) ChildCount() int { return len(s.children) }

// Children returns a copy of the child sequence in layout order.
func (s *Splitter) Children() []Window {
	out := make([]Window, len(s.children))
	copy(out, s.children)
	return out
}

// Init allocates the child sequence.
func (s *Splitter) Init() error {
	s.children = nil
	return nil
}

// Destroy destroys all children, then releases the splitter's own surface.
func (s *Splitter) Destroy() error {
	for _, child := range s.children {
		_ = child.Destroy()
	}
	s.children = nil
	s.releaseSurface()
	return nil
}

// dividers returns the cells consumed by separators between n children.
func (s *Splitter) dividers(n int) int {
	if s.axis == AxisCols && n > 1 {
		return n - 1
	}
	return 0
}

// usableExtent returns the along-axis cells available to children after
// separators.
func (s *Splitter) usableExtent() int {
	return s.axis.Extent(&s.Node) - s.dividers(len(s.children))
}

func (s *Splitter) indexOf(w Window) int {
	for i, child := range s.children {
		if child == w {
			return i
		}
	}
	return -1
}

// spliceOut removes w from the child sequence, preserving the order of the
// rest. Returns false if w is not a child.
func (s *Splitter) spliceOut(w Window) bool {
	i := s.indexOf(w)
	if i < 0 {
		return false
	}
	s.children = append(s.children[:i], s.children[i+1:]...)
	return true
}

func (s *Splitter) insertAt(i int, w Window) {
	s.children = append(s.children, nil)
	copy(s.children[i+1:], s.children[i:])
	s.children[i] = w
}

// Split inserts newWin into the tree.
//
// With a nil target the new window is appended, which requires the
// requested axis to match the splitter's own. With a matching axis the new
// window becomes a sibling adjacent to the target, receiving a degenerate
// 1x1 surface that the concluding layout pass resizes. With a differing
// axis a new splitter of that axis takes over the target's slot and
// surface and receives both windows; this is how perpendicular splits
// nest. Split concludes with a full layout pass on the splitter.
func (s *Splitter) Split(target, newWin Window, axis Axis) error {
	pos := len(s.children)
	if target != nil {
		i := s.indexOf(target)
		if i < 0 {
			return fmt.Errorf("split: %w", ErrNotAChild)
		}
		pos = i + 1
		if !s.splitAfter(axis) {
			pos = i
		}
	} else if axis != s.axis {
		return fmt.Errorf("split: %w", ErrAxisMismatch)
	}

	obj := newWin
	if axis == s.axis {
		// The new sibling starts on a degenerate carved surface; the
		// layout pass below assigns it real geometry.
		newWin.Base().SetContext(s.mgr, s, s.Surface().Carve(0, 0, 1, 1))
	} else {
		sub := NewSplitter(axis)
		sub.SetContext(s.mgr, s, target.Base().releaseSurface())
		s.spliceOut(target)
		if err := sub.Split(nil, target, axis); err != nil {
			return err
		}
		if err := sub.Split(target, newWin, axis); err != nil {
			return err
		}
		obj = sub
		// The sub-splitter takes the target's old slot instead of the one
		// after it.
		if s.splitAfter(axis) {
			pos--
		}
	}

	s.insertAt(pos, obj)
	return s.Layout()
}

// splitAfter reports whether new panes land after the split target, per
// the splitbelow/splitright options.
func (s *Splitter) splitAfter(axis Axis) bool {
	opts := s.options()
	if axis == AxisRows {
		return opts.SplitBelow
	}
	return opts.SplitRight
}

// Remove detaches and destroys w's subtree.
//
// If exactly one child remains afterward the splitter collapses: the
// surviving child is rebound directly under the grandparent in this
// splitter's slot (or becomes the new tree root), taking over this
// splitter's surface, and the emptied splitter is discarded.
func (s *Splitter) Remove(w Window) error {
	if len(s.children) < 2 {
		panic("wm: Remove on splitter with fewer than two children")
	}

	needFocus := s.focused(w) || s.focused(s)

	if !s.spliceOut(w) {
		return fmt.Errorf("remove: %w", ErrNotAChild)
	}
	_ = w.Destroy()

	if len(s.children) != 1 {
		if needFocus && s.mgr != nil {
			s.mgr.Focus(s.children[0])
		}
		return s.Layout()
	}

	// Collapse: hand the sole survivor to the grandparent.
	child := s.children[0]
	parent := s.parent
	s.children = nil

	if parent == nil {
		child.Base().SetContext(s.mgr, nil, s.releaseSurface())
		mgr := s.mgr
		_ = s.Destroy()
		if mgr != nil {
			mgr.SetRoot(child)
		}
		return nil
	}

	i := parent.indexOf(s)
	if i < 0 {
		return fmt.Errorf("remove: collapsing splitter: %w", ErrNotAChild)
	}
	parent.children[i] = child
	child.Base().SetContext(s.mgr, parent, s.releaseSurface())
	if needFocus && s.mgr != nil {
		s.mgr.Focus(child)
	}
	_ = s.Destroy()
	return parent.Layout()
}

// ResizeWindow negotiates a new along-axis size for one child without
// disturbing total space. Shrinking hands the freed cells to the adjacent
// sibling; growing borrows from later siblings first, then earlier ones,
// never taking a sibling below its minimum. Partial satisfaction is
// accepted silently.
func (s *Splitter) ResizeWindow(w Window, axis Axis, size int) error {
	if len(s.children) == 1 {
		return fmt.Errorf("resize: %w", ErrSingleChild)
	}
	if axis != s.axis {
		// Cross-axis resizing belongs to an ancestor splitter.
		return fmt.Errorf("resize: %w", ErrAxisMismatch)
	}

	i := s.indexOf(w)
	if i < 0 {
		return fmt.Errorf("resize: %w", ErrNotAChild)
	}

	// Clamp to what is possible.
	if m := minDimension(w, s.axis); size < m {
		size = m
	}
	max := s.axis.Extent(&s.Node) - s.dividers(len(s.children))
	for _, child := range s.children {
		if child != w {
			max -= minDimension(child, s.axis)
		}
	}
	if size > max {
		size = max
	}

	delta := size - s.axis.Extent(w.Base())
	if delta == 0 {
		return nil
	}

	if delta < 0 {
		s.shrinkChild(i, delta)
	} else {
		s.growChild(i, delta)
	}

	// Re-apply surfaces only for children whose recorded geometry changed,
	// avoiding needless surface churn.
	for _, child := range s.children {
		n := child.Base()
		surf := n.Surface()
		if surf == nil {
			continue
		}
		top, left := surf.Origin()
		height, width := surf.Size()
		if n.Top != top || n.Left != left || n.Height != height || n.Width != width {
			n.applyGeometry()
			if err := child.Layout(); err != nil {
				return err
			}
		}
	}
	return nil
}

// shrinkChild gives -delta cells from child i to its adjacent sibling.
func (s *Splitter) shrinkChild(i, delta int) {
	w := s.children[i].Base()
	var next *Node
	wrapped := false
	if i+1 == len(s.children) {
		next = s.children[i-1].Base()
		wrapped = true
	} else {
		next = s.children[i+1].Base()
	}
	s.axis.AddExtent(next, -delta)
	s.axis.AddExtent(w, delta)
	if wrapped {
		s.axis.AddPosition(w, -delta)
	} else {
		s.axis.AddPosition(next, delta)
	}
}

// growChild borrows delta cells for child i, from later siblings first,
// then earlier ones, each contributing down to its minimum.
func (s *Splitter) growChild(i, delta int) {
	w := s.children[i].Base()
	actual := 0

	// Borrow from successors.
	for j := i + 1; actual != delta && j < len(s.children); j++ {
		donor := s.children[j]
		avail := s.axis.Extent(donor.Base()) - minDimension(donor, s.axis)
		take := delta - actual
		if take > avail {
			take = avail
		}
		actual += take
		s.axis.AddPosition(donor.Base(), take)
		s.axis.AddExtent(donor.Base(), -take)
		s.axis.AddExtent(w, take)
		for k := i + 1; k < j; k++ {
			s.axis.AddPosition(s.children[k].Base(), take)
		}
	}

	// Borrow from predecessors.
	for j := i - 1; actual != delta && j >= 0; j-- {
		donor := s.children[j]
		avail := s.axis.Extent(donor.Base()) - minDimension(donor, s.axis)
		take := delta - actual
		if take > avail {
			take = avail
		}
		actual += take
		s.axis.AddExtent(donor.Base(), -take)
		s.axis.AddPosition(w, -take)
		s.axis.AddExtent(w, take)
		for k := i - 1; k > j; k-- {
			s.axis.AddPosition(s.children[k].Base(), -take)
		}
	}
}

// Layout recomputes child rectangles from their previous share of the
// previous total, scaled to the current total, then applies them and
// recurses. Falls back to equal distribution when a child still has the
// degenerate 1x1 size of a fresh split or when scaling would push a child
// below its minimum. Rounding is absorbed at the tail so assigned sizes
// always sum exactly to the splitter's extent.
func (s *Splitter) Layout() error {
	s.applyGeometry()
	n := len(s.children)
	if n == 0 {
		return nil
	}

	total := s.usableExtent()
	mins := make([]int, n)
	cur := make([]int, n)
	prevTotal := 0
	redistribute := false

	for i, child := range s.children {
		mins[i] = minDimension(child, s.axis)
		cur[i] = s.axis.Extent(child.Base())
		prevTotal += cur[i]
		// A 1x1 child is freshly split and carries no meaningful
		// proportion. A real pane deliberately resized to 1x1 re-triggers
		// equal distribution as well; see TestLayoutDegenerateOneByOne.
		if child.Base().Height == 1 && child.Base().Width == 1 {
			redistribute = true
		}
	}
	if prevTotal <= 0 {
		redistribute = true
	}
	if !redistribute {
		for i := range s.children {
			if cur[i]*total/prevTotal < mins[i] {
				redistribute = true
				break
			}
		}
	}

	sizes := make([]int, n)
	sum := 0
	if redistribute {
		for i := range sizes {
			sizes[i] = total / n
			sum += sizes[i]
		}
	} else {
		for i := range sizes {
			sizes[i] = cur[i] * total / prevTotal
			sum += sizes[i]
		}
	}
	remainder := total - sum

	position := s.axis.Position(&s.Node)
	for i, child := range s.children {
		size := sizes[i]
		for size < mins[i] && remainder > 0 {
			size++
			remainder--
		}
		if remainder > 0 && i == n-1 {
			size += remainder
			remainder = 0
		}

		cn := child.Base()
		if s.axis == AxisRows {
			cn.Top, cn.Left = position, s.Left
			cn.Height, cn.Width = size, s.Width
			position += size
		} else {
			cn.Top, cn.Left = s.Top, position
			cn.Height, cn.Width = s.Height, size
			position += size + 1
		}
		cn.applyGeometry()
		if err := child.Layout(); err != nil {
			return err
		}
	}

	return s.Redraw(false)
}

// Redraw repaints the splitter chrome and recurses into children. The
// focused flag is unused for containers; each child's focus state comes
// from the facade.
func (s *Splitter) Redraw(_ bool) error {
	surf := s.Surface()
	if surf == nil {
		return nil
	}
	th := s.chrome()

	surf.Erase()
	if s.axis == AxisCols {
		// Blank strip beneath vertical splits; children cannot draw under
		// the divider columns and the strip doubles as their status row
		// backdrop until they repaint it.
		surf.FillRow(s.Height-1, core.NewStyledCell(' ', th.Divider))
	}

	for i, child := range s.children {
		if err := child.Redraw(s.focused(child)); err != nil {
			return err
		}
		if s.axis == AxisCols && i < len(s.children)-1 {
			cn := child.Base()
			col := cn.Left + cn.Width - s.Left
			for row := 0; row < s.Height-1; row++ {
				surf.SetCell(row, col, core.NewStyledCell(th.DividerRune, th.Divider))
			}
		}
	}

	surf.Refresh()
	return nil
}

// MinimumSize sums the children's along-axis minimums, plus divider cells
// for column-wise splits, and takes the maximum across the cross axis.
func (s *Splitter) MinimumSize() (height, width int) {
	along, cross := 0, 0
	for _, child := range s.children {
		var cm Node
		cm.Height, cm.Width = child.MinimumSize()
		along += s.axis.Extent(&cm)
		if c := s.axis.CrossExtent(&cm); c > cross {
			cross = c
		}
	}
	along += s.dividers(len(s.children))
	if s.axis == AxisRows {
		return along, cross
	}
	return cross, along
}

// Neighbor returns the pane adjacent to w in the given direction, using
// pos to pick among the candidates of a nested splitter. Cross-axis
// queries delegate to the parent splitter; the result is always a leaf,
// never a splitter.
func (s *Splitter) Neighbor(w Window, dir Direction, pos core.ScreenPos) Window {
	if dir.Axis() != s.axis {
		if s.parent == nil {
			return nil
		}
		return s.parent.Neighbor(s, dir, pos)
	}

	i := s.indexOf(w)
	if i < 0 {
		return nil
	}

	var result Window
	if dir.Forward() {
		if i+1 < len(s.children) {
			result = s.children[i+1]
		}
	} else {
		if i > 0 {
			result = s.children[i-1]
		}
	}

	if sub, ok := result.(*Splitter); ok {
		result = sub.findWindowAt(pos)
	}
	return result
}

// findWindowAt descends to the leaf whose along-axis span contains pos.
// Boundary children absorb out-of-range positions.
func (s *Splitter) findWindowAt(pos core.ScreenPos) Window {
	var result Window
	value := s.axis.PointAlong(pos)

	for i, child := range s.children {
		cn := child.Base()
		lower := s.axis.Position(cn)
		upper := lower + s.axis.Extent(cn)
		if (value >= lower && value < upper) ||
			(i == 0 && value < lower) ||
			(i == len(s.children)-1 && value >= upper) {
			result = child
			break
		}
	}

	if sub, ok := result.(*Splitter); ok {
		return sub.findWindowAt(pos)
	}
	return result
}
