package termsurface

import (
	"math"
	"time"

	"github.com/edwinsyarief/glitchfx/strips"
	"github.com/edwinsyarief/glitchfx/surface"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

func (self *Surface) drawOverlay(node surface.Node, originX, originY int, dim bool, elapsed time.Duration) {
	switch overlay := node.(type) {
	case *Cells:
		self.drawCells(overlay, originX, originY, dim)
	case *strips.Overlay:
		self.drawStrips(overlay, originX, originY, dim, elapsed)
	default:
		// unknown nodes belong to other backends
	}
}

func (self *Surface) drawStrips(overlay *strips.Overlay, originX, originY int, dim bool, elapsed time.Duration) {
	for i := range overlay.Bands {
		band := &overlay.Bands[i]
		slice, isCells := overlay.Slices[i].(*Cells)
		if !isCells {
			continue
		}
		shift, hue := band.Sample(elapsed)
		columns := ShiftColumns(shift)
		for y := band.Y; y < band.Y+band.Height; y++ {
			for x := 0; x < overlay.Width; x++ {
				// each band is clipped to the surface width
				shifted := x + columns
				if shifted < 0 || shifted >= overlay.Width {
					continue
				}
				cell := slice.At(x, y)
				if cell.Main == 0 {
					continue
				}
				cell.Style = RotateStyle(cell.Style, hue)
				self.put(originX+shifted, originY+y, cell, dim)
			}
		}
	}
}

// ShiftColumns converts a horizontal displacement in pixels to whole
// terminal columns.
func ShiftColumns(shift float64) int {
	return int(math.Round(shift / PixelsPerCell))
}

// RotateStyle rotates the hue of the style foreground by the given
// degrees. Default and invalid colors are left untouched.
func RotateStyle(style tcell.Style, degrees float64) tcell.Style {
	if degrees == 0 {
		return style
	}
	fg, _, _ := style.Decompose()
	return style.Foreground(RotateHue(fg, degrees))
}

// RotateHue rotates the hue of a color by the given degrees.
func RotateHue(color tcell.Color, degrees float64) tcell.Color {
	if !color.Valid() {
		return color
	}
	r, g, b := color.RGB()
	if r < 0 || g < 0 || b < 0 {
		return color
	}
	source := colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
	h, s, v := source.Hsv()
	h = math.Mod(h+degrees, 360)
	if h < 0 {
		h += 360
	}
	r8, g8, b8 := colorful.Hsv(h, s, v).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r8), int32(g8), int32(b8))
}
