// Package wm implements the window-composition core: a recursive splitter
// tree that partitions a fixed character grid among nested panes.
//
// Every pane type satisfies the Window contract and embeds Node for
// geometry and tree linkage. Splitters exclusively own their children; a
// child's back-reference to its parent is a non-owning observation link.
// All operations are single-threaded and run to completion on the calling
// goroutine.
package wm

import (
	"github.com/dshills/termwm/internal/config"
	"github.com/dshills/termwm/internal/renderer/theme"
	"github.com/dshills/termwm/internal/surface"
)

// Window is the contract every pane satisfies.
type Window interface {
	// Base returns the pane's geometry and tree linkage.
	Base() *Node

	// Init allocates pane-specific state. Called once at construction.
	Init() error

	// Destroy releases all owned resources, children first for containers,
	// then the terminal surface. Must not be called twice on the same node.
	Destroy() error

	// Layout recomputes and applies descendant geometry from the node's
	// current rectangle. The owned surface matches the recorded geometry
	// exactly when Layout returns.
	Layout() error

	// Redraw repaints the pane's surface content. Containers recurse into
	// children. The focused flag indicates whether the terminal cursor
	// should be shown inside this pane.
	Redraw(focused bool) error

	// MinimumSize returns the smallest rectangle in which the pane, and
	// recursively its children, remains usable.
	MinimumSize() (height, width int)
}

// Manager is the window-manager facade collaborating with the tree. It
// supplies focus queries/changes, root replacement after a collapse at the
// top of the tree, and the options and theme the layout code reads.
type Manager interface {
	// IsFocused reports whether the window currently holds focus.
	IsFocused(w Window) bool

	// Focus moves focus to the window.
	Focus(w Window)

	// SetRoot adopts w as the new tree root after the old root collapsed.
	// The facade re-parents w, focuses it and triggers a layout pass.
	SetRoot(w Window)

	// Options returns the window-manager options.
	Options() *config.Options

	// Theme returns the chrome styles.
	Theme() *theme.Theme
}

// Node carries the state shared by every pane: the allocated rectangle,
// the owned terminal surface, the parent link and the container flag.
type Node struct {
	// Top, Left is the pane origin in screen coordinates.
	Top, Left int

	// Height, Width is the current allocated size. The owned surface has
	// exactly these dimensions after any layout pass completes; they may
	// transiently diverge mid-resize.
	Height, Width int

	surf       *surface.Surface
	parent     *Splitter
	mgr        Manager
	isSplitter bool
	statusBar  bool
}

// Base returns the node itself, satisfying the Window contract through
// embedding.
func (n *Node) Base() *Node { return n }

// Surface returns the owned terminal surface, nil before attachment.
func (n *Node) Surface() *surface.Surface { return n.surf }

// Parent returns the owning splitter, nil at the tree root.
func (n *Node) Parent() *Splitter { return n.parent }

// Manager returns the facade this node is attached to, nil before
// attachment.
func (n *Node) Manager() Manager { return n.mgr }

// IsSplitter reports whether the node is a container.
func (n *Node) IsSplitter() bool { return n.isSplitter }

// ShowStatusBar controls whether the pane's bottom row is reserved for a
// status strip.
func (n *Node) ShowStatusBar(show bool) { n.statusBar = show }

// StatusBarVisible reports whether the pane reserves a status strip row.
func (n *Node) StatusBarVisible() bool { return n.statusBar }

// ContentHeight returns the rows available for pane content, excluding the
// status strip.
func (n *Node) ContentHeight() int {
	h := n.Height
	if n.statusBar {
		h--
	}
	if h < 0 {
		h = 0
	}
	return h
}

// SetContext binds the node to a facade, a parent and a terminal surface,
// and syncs the recorded geometry from the surface. Passing the surface
// transfers its ownership to this node.
func (n *Node) SetContext(mgr Manager, parent *Splitter, surf *surface.Surface) {
	n.mgr = mgr
	n.parent = parent
	n.surf = surf
	if surf != nil {
		n.Top, n.Left = surf.Origin()
		n.Height, n.Width = surf.Size()
	}
}

// releaseSurface detaches the owned surface, returning it.
func (n *Node) releaseSurface() *surface.Surface {
	s := n.surf
	n.surf = nil
	return s
}

// applyGeometry resizes and then moves the owned surface to match the
// recorded geometry. Resize precedes move so the surface never transiently
// extends past the screen.
func (n *Node) applyGeometry() {
	if n.surf != nil {
		n.surf.Place(n.Top, n.Left, n.Height, n.Width)
	}
}

// options returns the facade options, or defaults when detached.
func (n *Node) options() config.Options {
	if n.mgr != nil && n.mgr.Options() != nil {
		return *n.mgr.Options()
	}
	return config.Default()
}

// chrome returns the facade theme, or the default when detached.
func (n *Node) chrome() *theme.Theme {
	if n.mgr != nil && n.mgr.Theme() != nil {
		return n.mgr.Theme()
	}
	return theme.Default()
}

// focused reports whether the facade considers w focused.
func (n *Node) focused(w Window) bool {
	return n.mgr != nil && n.mgr.IsFocused(w)
}

// Attach binds a window to a facade, parent and surface. The facade uses
// this to install the root window.
func Attach(w Window, mgr Manager, parent *Splitter, surf *surface.Surface) {
	w.Base().SetContext(mgr, parent, surf)
}

// Place sets a window's rectangle, applies it to the owned surface and
// runs a layout pass over the subtree.
func Place(w Window, top, left, height, width int) error {
	n := w.Base()
	n.Top, n.Left = top, left
	n.Height, n.Width = height, width
	n.applyGeometry()
	return w.Layout()
}

// minDimension returns a window's minimum extent along the given axis,
// floored by the winminheight/winminwidth options.
func minDimension(w Window, axis Axis) int {
	minH, minW := w.MinimumSize()
	opts := w.Base().options()

	if axis == AxisRows {
		if minH < opts.WinMinHeight {
			minH = opts.WinMinHeight
		}
		return minH
	}
	if minW < opts.WinMinWidth {
		minW = opts.WinMinWidth
	}
	return minW
}
