package shaker

import (
	"math"

	"github.com/edwinsyarief/glitchfx/rng"
)

// Factor applied to the surface scale while shaking, so that the
// displaced content keeps covering the surface bounds.
const OverscanScale = 1.05

// Configuration for a shake. Zero fields fall back to [DefaultConfig]
// values, so a zero Amplitude means the default 4 rather than no
// motion; to stop shaking, cancel the handle.
type Config struct {
	Amplitude float64 // max translation of the first layer, in surface units
	Speed     float64 // frequency multiplier (1 = default)
	Layers    int     // number of summed sine layers
}

// Returns the default shake configuration.
func DefaultConfig() Config {
	return Config{Amplitude: 4, Speed: 1, Layers: 4}
}

func (self Config) withDefaults() Config {
	def := DefaultConfig()
	if self.Amplitude == 0 {
		self.Amplitude = def.Amplitude
	}
	if self.Speed == 0 {
		self.Speed = def.Speed
	}
	if self.Layers <= 0 {
		self.Layers = def.Layers
	}
	return self
}

// A single sine contributor to the composite offset.
type Layer struct {
	FreqX, FreqY   float64
	AmpX, AmpY     float64
	PhaseX, PhaseY float64
}

// Returns the layer amplitude for the given index.
func layerAmplitude(amplitude float64, index int) float64 {
	return amplitude / (1 + float64(index)*0.6)
}

// NewLayers derives the layer parameters for a shake. Lower layers give
// large, slow sway and higher layers give small, fast tremor.
func NewLayers(config Config, src rng.Source) []Layer {
	config = config.withDefaults()
	src = rng.Or(src)

	layers := make([]Layer, config.Layers)
	for i := range layers {
		base := 0.25 + float64(i)*0.18
		amp := layerAmplitude(config.Amplitude, i)
		layers[i] = Layer{
			FreqX:  base * (0.8 + src.Float64()*0.4) * config.Speed,
			FreqY:  base * (0.8 + src.Float64()*0.4) * config.Speed,
			AmpX:   amp,
			AmpY:   amp,
			PhaseX: src.Float64() * math.Pi * 2,
			PhaseY: src.Float64() * math.Pi * 2,
		}
	}
	return layers
}

// Oscillator sums a set of layers. It implements [Shaker].
type Oscillator struct {
	Layers []Layer
}

func (self *Oscillator) Offsets(t float64) (float64, float64) {
	var x, y float64
	for _, l := range self.Layers {
		x += math.Sin(t*l.FreqX+l.PhaseX) * l.AmpX
		y += math.Sin(t*l.FreqY+l.PhaseY) * l.AmpY
	}
	return x, y
}

// Bound returns the largest offset magnitude a shake with the given
// amplitude and layer count can ever reach on either axis.
func Bound(amplitude float64, layers int) float64 {
	var bound float64
	for i := 0; i < layers; i++ {
		bound += layerAmplitude(math.Abs(amplitude), i)
	}
	return bound
}

// Masked reports whether the [OverscanScale] margin of a surface with
// the given size is enough to hide its edges for the whole shake.
func Masked(width, height int, config Config) bool {
	config = config.withDefaults()
	margin := float64(min(width, height)) * (OverscanScale - 1) / 2
	return Bound(config.Amplitude, config.Layers) <= margin
}
