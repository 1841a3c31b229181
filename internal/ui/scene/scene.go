// Package scene defines the UI-tree abstractions the window registry operates
// on. It decouples containment and pointer delivery from any concrete toolkit,
// enabling unit testing without a GTK runtime.
package scene

import "time"

// Node is one element of a UI scene tree. Implementations must keep identity
// stable for the lifetime of the element so containment checks can compare
// nodes directly.
type Node interface {
	// Contains reports whether other is this node or one of its descendants.
	// A nil other is never contained.
	Contains(other Node) bool

	// Anchored reports whether the node is still attached to a scene root.
	// Detached nodes are treated as outside every surface.
	Anchored() bool

	// Name returns a short identifier for diagnostics.
	Name() string
}

// PointerEvent is a single pointer press observed at the scene root.
type PointerEvent struct {
	// Target is the deepest node under the pointer, nil when the press landed
	// on no tracked node.
	Target Node

	// Root-relative press coordinates.
	X float64
	Y float64

	// Button is the pressed button number; 0 means any/unspecified.
	Button uint

	Time time.Time
}

// PointerListener consumes pointer presses.
type PointerListener func(PointerEvent)

// PointerSource delivers pointer presses captured at the scene root. The
// registry subscribes exactly once regardless of how many surfaces are
// registered.
type PointerSource interface {
	// AddListener registers fn and returns a removal function. The removal
	// function is idempotent.
	AddListener(fn PointerListener) (remove func())
}
