// This package defines the [Surface] capability that glitchfx effects
// target, and the opaque [Node] type used for snapshots and overlays.
//
// Surfaces are owned by the calling layer. Effects never create or
// destroy them: they only read their geometry, take snapshots, and
// mutate transform, opacity and overlay children. Backends live in
// their own packages (ebisurface, termsurface, dom).
package surface

import "reflect"

// A 2D transform applied to a surface: translation in surface units
// (pixels, or cells for terminal backends) and a uniform scale.
type Transform struct {
	X, Y  float64
	Scale float64
}

// The identity transform.
var Identity = Transform{Scale: 1}

// Returns the transform translated by (dx, dy).
func (self Transform) Translated(dx, dy float64) Transform {
	self.X += dx
	self.Y += dy
	return self
}

// Returns the transform with its scale multiplied by factor.
func (self Transform) Scaled(factor float64) Transform {
	self.Scale *= factor
	return self
}

// An opaque visual subtree. Snapshots and overlays are nodes.
type Node interface {
	// Returns an independent duplicate of the node. Mutating or
	// discarding the duplicate never affects the original.
	Clone() Node
}

// The interface effects use to read and mutate a visual object.
// All methods are synchronous and side-effecting on the host
// rendering layer.
type Surface interface {
	// Returns the surface size in surface units.
	Size() (width, height int)

	// Returns a fully detached duplicate of the current visual content.
	Snapshot() Node

	// Returns the current transform.
	Transform() Transform

	// Replaces the current transform.
	SetTransform(transform Transform)

	// Sets opacity in [0, 1].
	SetOpacity(opacity float64)

	// Attaches a node on top of the surface content. Overlays are
	// rendered in attachment order.
	AttachOverlay(node Node)

	// Detaches a previously attached node. Detaching an unknown
	// node does nothing.
	DetachOverlay(node Node)
}

// Absent reports whether s is nil, including a nil pointer held by a
// non-nil interface (such as a lookup that found no element). Effects
// treat absent surfaces as a no-op.
func Absent(s Surface) bool {
	if s == nil {
		return true
	}
	value := reflect.ValueOf(s)
	switch value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return value.IsNil()
	}
	return false
}
