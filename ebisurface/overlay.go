package ebisurface

import (
	"image"
	"math"
	"time"

	"github.com/edwinsyarief/glitchfx/strips"
	"github.com/edwinsyarief/glitchfx/surface"
	"github.com/edwinsyarief/glitchfx/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
)

func (self *Surface) drawOverlay(target *ebiten.Image, node surface.Node, geom ebiten.GeoM, elapsed time.Duration) {
	switch overlay := node.(type) {
	case *Image:
		if overlay.Source == nil {
			return
		}
		self.drawImageOpts.GeoM = geom
		target.DrawImage(overlay.Source, &self.drawImageOpts)
	case *strips.Overlay:
		self.drawStrips(target, overlay, geom, elapsed)
	default:
		// unknown nodes belong to other backends
	}
}

func (self *Surface) drawStrips(target *ebiten.Image, overlay *strips.Overlay, geom ebiten.GeoM, elapsed time.Duration) {
	var opts colorm.DrawImageOptions
	for i := range overlay.Bands {
		band := &overlay.Bands[i]
		slice, isImage := overlay.Slices[i].(*Image)
		if !isImage || slice.Source == nil {
			continue
		}
		rect := BandRect(band, overlay.Width)
		if rect.Empty() {
			continue
		}

		shift, hue := band.Sample(elapsed)
		var cm colorm.ColorM
		cm.RotateHue(HueRadians(hue))
		cm.Scale(1, 1, 1, self.opacity)

		opts.GeoM.Reset()
		opts.GeoM.Translate(shift, float64(band.Y))
		opts.GeoM.Concat(geom)
		source := utils.SubImage(slice.Source, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y)
		colorm.DrawImage(target, source, cm, &opts)
	}
}

// BandRect returns the region of the snapshot visible through a band.
func BandRect(band *strips.Band, width int) image.Rectangle {
	return utils.Rect(0, band.Y, width, band.Y+band.Height)
}

// HueRadians converts a hue rotation in degrees to radians.
func HueRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
