package wm

import "errors"

// Window-manager errors. These report caller errors; the tree is never
// mutated when one is returned.
var (
	// ErrNotAChild indicates the target window is not a child of the splitter.
	ErrNotAChild = errors.New("window is not a child of this splitter")

	// ErrAxisMismatch indicates the requested axis does not match the
	// splitter's own axis.
	ErrAxisMismatch = errors.New("axis does not match splitter axis")

	// ErrSingleChild indicates the operation needs at least two children.
	ErrSingleChild = errors.New("splitter has a single child")
)
