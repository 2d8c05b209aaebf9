package wm

import "github.com/dshills/termwm/internal/renderer/core"

// Axis is the direction along which a splitter arranges its children.
type Axis int

const (
	// AxisRows stacks children top to bottom; the along-axis extent is height.
	AxisRows Axis = iota
	// AxisCols arranges children left to right; the along-axis extent is width.
	AxisCols
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisRows:
		return "rows"
	case AxisCols:
		return "cols"
	default:
		return "unknown"
	}
}

// Extent returns the node's size along the axis.
func (a Axis) Extent(n *Node) int {
	if a == AxisRows {
		return n.Height
	}
	return n.Width
}

// SetExtent sets the node's size along the axis.
func (a Axis) SetExtent(n *Node, v int) {
	if a == AxisRows {
		n.Height = v
	} else {
		n.Width = v
	}
}

// AddExtent adjusts the node's size along the axis by delta.
func (a Axis) AddExtent(n *Node, delta int) {
	a.SetExtent(n, a.Extent(n)+delta)
}

// Position returns the node's origin coordinate along the axis.
func (a Axis) Position(n *Node) int {
	if a == AxisRows {
		return n.Top
	}
	return n.Left
}

// SetPosition sets the node's origin coordinate along the axis.
func (a Axis) SetPosition(n *Node, v int) {
	if a == AxisRows {
		n.Top = v
	} else {
		n.Left = v
	}
}

// AddPosition adjusts the node's origin coordinate along the axis by delta.
func (a Axis) AddPosition(n *Node, delta int) {
	a.SetPosition(n, a.Position(n)+delta)
}

// CrossExtent returns the node's size across the axis.
func (a Axis) CrossExtent(n *Node) int {
	if a == AxisRows {
		return n.Width
	}
	return n.Height
}

// PointAlong returns the along-axis coordinate of a screen position.
func (a Axis) PointAlong(pos core.ScreenPos) int {
	if a == AxisRows {
		return pos.Row
	}
	return pos.Col
}

// Direction identifies a spatial navigation direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Axis returns the axis the direction moves along.
func (d Direction) Axis() Axis {
	if d == DirUp || d == DirDown {
		return AxisRows
	}
	return AxisCols
}

// Forward returns true for directions that move toward later siblings.
func (d Direction) Forward() bool {
	return d == DirDown || d == DirRight
}
