// Package ebisurface implements [surface.Surface] on top of Ebitengine
// images, and provides a [Stage] that drives a [sched.Loop] from the
// game update loop.
package ebisurface

import (
	"image/color"
	"slices"
	"time"

	"github.com/edwinsyarief/glitchfx/surface"
	"github.com/hajimehoshi/ebiten/v2"
)

// Image is the node type used by this package: snapshots are returned
// as images, and attaching an image as an overlay draws it on top of
// the surface content with the same transform.
//
// Images produced by [Surface.Snapshot] are never written to again, so
// clones share the underlying pixels.
type Image struct {
	Source *ebiten.Image
}

func (self *Image) Clone() surface.Node {
	return &Image{Source: self.Source}
}

type attachedOverlay struct {
	node    surface.Node
	start   time.Duration
	started bool
}

// Surfaces are logically sized canvases that effects can transform,
// fade and decorate with overlays. You draw your content to
// [Surface.Target]() and later project the surface, with every effect
// applied, into the screen or any other image.
//
// Creating a surface involves creating an [*ebiten.Image], so you want
// to store and reuse them. They also have to be manually cleared when
// required.
type Surface struct {
	canvas    *ebiten.Image
	width     int
	height    int
	transform surface.Transform
	opacity   float64
	overlays  []attachedOverlay

	drawImageOpts ebiten.DrawImageOptions
}

// Creates a new surface with the given logical size.
//
// Never invoke this per frame, always reuse surfaces.
func New(width, height int) *Surface {
	if width < 1 || height < 1 {
		panic("surface size must be at least (1, 1)")
	}
	return &Surface{
		canvas: ebiten.NewImage(width, height),
		width:  width, height: height,
		transform: surface.Identity,
		opacity:   1,
	}
}

// Returns the underlying canvas for the surface.
func (self *Surface) Target() *ebiten.Image {
	return self.canvas
}

// Clears the underlying canvas.
func (self *Surface) Clear() {
	self.canvas.Clear()
}

// Similar to [ebiten.Image.Fill]() on the underlying canvas.
func (self *Surface) Fill(fillColor color.Color) {
	self.canvas.Fill(fillColor)
}

// --- surface.Surface implementation ---

func (self *Surface) Size() (width, height int) {
	return self.width, self.height
}

func (self *Surface) Snapshot() surface.Node {
	copied := ebiten.NewImage(self.width, self.height)
	copied.DrawImage(self.canvas, nil)
	return &Image{Source: copied}
}

func (self *Surface) Transform() surface.Transform {
	return self.transform
}

func (self *Surface) SetTransform(transform surface.Transform) {
	self.transform = transform
}

func (self *Surface) Opacity() float64 {
	return self.opacity
}

func (self *Surface) SetOpacity(opacity float64) {
	self.opacity = min(max(opacity, 0), 1)
}

func (self *Surface) AttachOverlay(node surface.Node) {
	self.overlays = append(self.overlays, attachedOverlay{node: node})
}

func (self *Surface) DetachOverlay(node surface.Node) {
	index := slices.IndexFunc(self.overlays, func(entry attachedOverlay) bool {
		return entry.node == node
	})
	if index >= 0 {
		self.overlays = slices.Delete(self.overlays, index, index+1)
	}
}

// Returns the currently attached overlays, in attachment order.
func (self *Surface) Overlays() []surface.Node {
	nodes := make([]surface.Node, len(self.overlays))
	for i, entry := range self.overlays {
		nodes[i] = entry.node
	}
	return nodes
}

// --- projection ---

// Projects the surface into the given target with its top-left corner
// at (x, y), applying the current transform, opacity and overlays.
//
// Overlays are animated relative to the first projection after they
// were attached, so now must come from a monotonic clock (typically
// [Stage.Now]()).
func (self *Surface) Project(target *ebiten.Image, x, y float64, now time.Duration) {
	geom := Geometry(self.transform, self.width, self.height, x, y)

	self.drawImageOpts.GeoM = geom
	self.drawImageOpts.ColorScale.Reset()
	self.drawImageOpts.ColorScale.ScaleAlpha(float32(self.opacity))
	target.DrawImage(self.canvas, &self.drawImageOpts)

	for i := range self.overlays {
		entry := &self.overlays[i]
		if !entry.started {
			entry.start, entry.started = now, true
		}
		self.drawOverlay(target, entry.node, geom, now-entry.start)
	}
	self.drawImageOpts.GeoM.Reset()
}

// Geometry returns the GeoM used to project a surface of the given size
// with its top-left corner at (x, y). Scaling is applied around the
// surface center, translation in surface units afterwards.
func Geometry(transform surface.Transform, width, height int, x, y float64) ebiten.GeoM {
	var geom ebiten.GeoM
	cx, cy := float64(width)/2.0, float64(height)/2.0
	geom.Translate(-cx, -cy)
	geom.Scale(transform.Scale, transform.Scale)
	geom.Translate(cx+transform.X+x, cy+transform.Y+y)
	return geom
}
