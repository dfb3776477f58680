// This package implements the glitch overlay: a surface is sliced into
// randomly sized horizontal bands, and every band shows its own copy of
// the surface content with independently randomized displacement, hue
// rotation and animation timing. Because no two bands are correlated,
// the result reads as a broken signal rather than a scripted animation.
package strips

import (
	"math"
	"time"

	"github.com/edwinsyarief/glitchfx/rng"
)

// Reference band count: band heights are drawn in [0, 2*height/Divisions)
// and then clamped, so on average a decomposition has about this many bands.
const Divisions = 12

// Minimum band height, except for a last band limited by remaining space.
const MinBandHeight = 3

// One of the three glitch animation variants.
type Variant uint8

const (
	Glitch1 Variant = iota
	Glitch2
	Glitch3

	variantEndSentinel
)

// Returns the animation name for the variant, e.g. "glitch-1".
func (self Variant) String() string {
	switch self {
	case Glitch1:
		return "glitch-1"
	case Glitch2:
		return "glitch-2"
	case Glitch3:
		return "glitch-3"
	default:
		panic("invalid strips.Variant")
	}
}

// A horizontal slice of a decomposed surface.
type Band struct {
	Y      int // top of the band, in surface units
	Height int

	ShiftX1, ShiftX2 float64 // horizontal displacements, rounded to whole units
	Hue1, Hue2       float64 // hue rotations in degrees, rounded

	Variant  Variant
	Duration time.Duration // animation period, looped
	Delay    time.Duration // time before the animation starts
}

// Decompose partitions a surface of the given height into bands. The
// bands cover [0, height) exactly once, in increasing Y order. The number
// of bands does not depend on intensity; only the displacement and hue
// magnitudes do.
func Decompose(height int, intensity float64, src rng.Source) []Band {
	if height <= 0 {
		return nil
	}
	src = rng.Or(src)

	var bands []Band
	for y := 0; y < height; {
		h := max(MinBandHeight, int(math.Floor(src.Float64()*(float64(height)/Divisions)*2)))
		h = min(h, height-y)
		band := Band{Y: y, Height: h}
		band.ShiftX1 = math.Round(src.Float64()*30*intensity - 15*intensity)
		band.ShiftX2 = math.Round(src.Float64()*30*intensity - 15*intensity)
		band.Hue1 = math.Round(src.Float64()*50*intensity - 25*intensity)
		band.Hue2 = math.Round(src.Float64()*50*intensity - 25*intensity)
		band.Variant = Variant(min(int(src.Float64()*float64(variantEndSentinel)), int(variantEndSentinel)-1))
		band.Duration = roundMillis(400 + src.Float64()*300)
		band.Delay = roundMillis(src.Float64() * 150)
		bands = append(bands, band)
		y += h
	}
	return bands
}

func roundMillis(ms float64) time.Duration {
	return time.Duration(math.Round(ms)) * time.Millisecond
}
