// Package surfacetest provides an in-memory [surface.Surface] that
// records every mutation, for testing effects without a backend.
package surfacetest

import (
	"slices"

	"github.com/edwinsyarief/glitchfx/surface"
)

// Content is the node returned by [Recorder.Snapshot].
type Content struct {
	// Serial number of the snapshot this node duplicates.
	Serial int
	// Number of Clone() calls that led to this node.
	Depth int
}

func (self *Content) Clone() surface.Node {
	return &Content{Serial: self.Serial, Depth: self.Depth + 1}
}

// Recorder implements [surface.Surface] in memory.
type Recorder struct {
	Width, Height int

	transform  surface.Transform
	opacity    float64
	overlays   []surface.Node
	snapshots  int
	Transforms []surface.Transform // every SetTransform call, in order
	Attached   int                 // total AttachOverlay calls
	Detached   int                 // total effective DetachOverlay calls
}

// NewRecorder creates a recorder with the given size, identity
// transform and full opacity.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		Width: width, Height: height,
		transform: surface.Identity,
		opacity:   1,
	}
}

func (self *Recorder) Size() (int, int) { return self.Width, self.Height }

func (self *Recorder) Snapshot() surface.Node {
	self.snapshots += 1
	return &Content{Serial: self.snapshots}
}

func (self *Recorder) Transform() surface.Transform { return self.transform }

func (self *Recorder) SetTransform(transform surface.Transform) {
	self.transform = transform
	self.Transforms = append(self.Transforms, transform)
}

func (self *Recorder) Opacity() float64 { return self.opacity }

func (self *Recorder) SetOpacity(opacity float64) { self.opacity = opacity }

func (self *Recorder) AttachOverlay(node surface.Node) {
	self.overlays = append(self.overlays, node)
	self.Attached += 1
}

func (self *Recorder) DetachOverlay(node surface.Node) {
	index := slices.Index(self.overlays, node)
	if index < 0 {
		return
	}
	self.overlays = slices.Delete(self.overlays, index, index+1)
	self.Detached += 1
}

// Returns the currently attached overlays.
func (self *Recorder) Overlays() []surface.Node { return self.overlays }

// Returns how many snapshots have been taken.
func (self *Recorder) Snapshots() int { return self.snapshots }

// Panel is a trivial overlay node, useful as a stand-in for
// presentation content like a crash panel.
type Panel struct{ Label string }

func (self *Panel) Clone() surface.Node {
	clone := *self
	return &clone
}
