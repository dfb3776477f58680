package strips

import (
	"time"

	"github.com/edwinsyarief/glitchfx/rng"
	"github.com/edwinsyarief/glitchfx/sched"
	"github.com/edwinsyarief/glitchfx/surface"
)

// Overlay is the node produced by [Build]. Backends recognize it when it
// is attached to one of their surfaces and render every band as the
// matching vertical slice of its own content copy, clipped to the band
// height, shifted and hue rotated as given by [Band.Sample].
type Overlay struct {
	Width, Height int
	Bands         []Band
	Slices        []surface.Node // Slices[i] is band i's copy of the snapshot
}

func (self *Overlay) Clone() surface.Node {
	clone := &Overlay{
		Width:  self.Width,
		Height: self.Height,
		Bands:  append([]Band(nil), self.Bands...),
		Slices: make([]surface.Node, len(self.Slices)),
	}
	for i, slice := range self.Slices {
		clone.Slices[i] = slice.Clone()
	}
	return clone
}

// Build takes one snapshot of the target and decomposes it into an
// overlay. The overlay is not attached. Returns nil if the target is
// absent (see [surface.Absent]).
func Build(target surface.Surface, intensity float64, src rng.Source) *Overlay {
	if surface.Absent(target) {
		return nil
	}
	width, height := target.Size()
	snapshot := target.Snapshot()
	bands := Decompose(height, intensity, src)
	slices := make([]surface.Node, len(bands))
	for i := range bands {
		slices[i] = snapshot.Clone()
	}
	return &Overlay{Width: width, Height: height, Bands: bands, Slices: slices}
}

// Configuration for [Fire].
type FireConfig struct {
	Duration   time.Duration // how long the overlay stays attached
	Intensity  float64       // displacement and hue multiplier; zero means 1
	OnComplete func()        // invoked after the overlay is detached
}

// Fire attaches a freshly built overlay to the target, keeps it for the
// configured duration, detaches it and invokes OnComplete.
//
// Cancelling the returned handle detaches the overlay right away and
// OnComplete is never invoked. Concurrent calls on the same surface are
// allowed and fully independent. An absent target makes Fire a no-op.
//
// A zero Intensity is the same as 1. For a barely visible glitch use a
// small positive intensity instead.
func Fire(target surface.Surface, scheduler sched.Scheduler, config FireConfig, src rng.Source) *sched.Handle {
	if surface.Absent(target) {
		return sched.Noop()
	}
	intensity := config.Intensity
	if intensity == 0 {
		intensity = 1
	}

	overlay := Build(target, intensity, src)
	target.AttachOverlay(overlay)

	var token sched.Token
	handle := sched.NewHandle(func() {
		scheduler.Cancel(token)
		target.DetachOverlay(overlay)
	})
	token = scheduler.After(config.Duration, func() {
		target.DetachOverlay(overlay)
		handle.Finish()
		if config.OnComplete != nil {
			config.OnComplete()
		}
	})
	return handle
}
