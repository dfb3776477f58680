// Package termsurface implements [surface.Surface] over a rectangular
// region of a tcell screen.
//
// Content is drawn into the surface buffer with [Surface.SetContent] or
// [Surface.Print], and [Surface.Render] copies it to the screen with the
// current transform, opacity and overlays applied. Cells can't be
// scaled, so the scale component of the transform is ignored.
package termsurface

import (
	"math"
	"slices"
	"time"

	"github.com/edwinsyarief/glitchfx/surface"
	"github.com/gdamore/tcell/v2"
)

// Opacity below which content is rendered dimmed.
const DimThreshold = 0.5

// Horizontal displacements are expressed in pixels by the effects; this
// is how many of them make one terminal column.
const PixelsPerCell = 8

// A single terminal cell.
type Cell struct {
	Main      rune
	Combining []rune
	Style     tcell.Style
}

// Cells is the node type used by this package: snapshots are returned as
// cell grids, and attaching a grid as an overlay draws its non-empty
// cells on top of the surface content.
type Cells struct {
	Width, Height int
	Data          []Cell // row-major, Width*Height
}

func (self *Cells) Clone() surface.Node {
	clone := &Cells{Width: self.Width, Height: self.Height, Data: make([]Cell, len(self.Data))}
	for i, cell := range self.Data {
		clone.Data[i] = Cell{Main: cell.Main, Combining: slices.Clone(cell.Combining), Style: cell.Style}
	}
	return clone
}

// Returns the cell at (x, y), or an empty cell if out of bounds.
func (self *Cells) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= self.Width || y >= self.Height {
		return Cell{}
	}
	return self.Data[y*self.Width+x]
}

// NewCells creates a grid from text lines, all cells with the given style.
func NewCells(style tcell.Style, lines ...string) *Cells {
	width := 0
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}
	cells := &Cells{Width: width, Height: len(lines), Data: make([]Cell, width*len(lines))}
	for y, line := range lines {
		for x, r := range []rune(line) {
			cells.Data[y*width+x] = Cell{Main: r, Style: style}
		}
	}
	return cells
}

type attachedOverlay struct {
	node    surface.Node
	start   time.Duration
	started bool
}

// Surface is a region of a tcell screen that effects can target.
type Surface struct {
	screen    tcell.Screen
	x, y      int
	content   Cells
	transform surface.Transform
	opacity   float64
	overlays  []attachedOverlay
}

// Creates a surface covering the given region of the screen.
func New(screen tcell.Screen, x, y, width, height int) *Surface {
	if width < 1 || height < 1 {
		panic("surface size must be at least (1, 1)")
	}
	return &Surface{
		screen:    screen,
		x:         x,
		y:         y,
		content:   Cells{Width: width, Height: height, Data: make([]Cell, width*height)},
		transform: surface.Identity,
		opacity:   1,
	}
}

// Moves the surface region origin on the screen.
func (self *Surface) SetOrigin(x, y int) {
	self.x, self.y = x, y
}

// Sets a cell of the surface buffer. Out of bounds writes are ignored.
func (self *Surface) SetContent(x, y int, mainc rune, combining []rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= self.content.Width || y >= self.content.Height {
		return
	}
	self.content.Data[y*self.content.Width+x] = Cell{Main: mainc, Combining: combining, Style: style}
}

// Writes text to the surface buffer starting at (x, y). Text is not
// wrapped.
func (self *Surface) Print(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		self.SetContent(x, y, r, nil, style)
		x += 1
	}
}

// Clears the surface buffer.
func (self *Surface) Clear() {
	clear(self.content.Data)
}

// --- surface.Surface implementation ---

func (self *Surface) Size() (width, height int) {
	return self.content.Width, self.content.Height
}

func (self *Surface) Snapshot() surface.Node {
	return self.content.Clone()
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

// --- rendering ---

// Render draws the surface into its screen region. It doesn't call
// Show(), and it doesn't clear cells left behind by a previous
// translation, so hosts usually clear the screen once per frame.
//
// Overlays are animated relative to the first render after they were
// attached, so now must come from a monotonic clock.
func (self *Surface) Render(now time.Duration) {
	if self.opacity <= 0 {
		return
	}
	originX := self.x + int(math.Round(self.transform.X))
	originY := self.y + int(math.Round(self.transform.Y))
	dim := self.opacity < DimThreshold

	self.drawCells(&self.content, originX, originY, dim)
	for i := range self.overlays {
		entry := &self.overlays[i]
		if !entry.started {
			entry.start, entry.started = now, true
		}
		self.drawOverlay(entry.node, originX, originY, dim, now-entry.start)
	}
}

func (self *Surface) drawCells(cells *Cells, originX, originY int, dim bool) {
	for y := 0; y < cells.Height; y++ {
		for x := 0; x < cells.Width; x++ {
			cell := cells.Data[y*cells.Width+x]
			if cell.Main == 0 {
				continue
			}
			self.put(originX+x, originY+y, cell, dim)
		}
	}
}

func (self *Surface) put(x, y int, cell Cell, dim bool) {
	style := cell.Style
	if dim {
		style = style.Dim(true)
	}
	self.screen.SetContent(x, y, cell.Main, cell.Combining, style)
}
