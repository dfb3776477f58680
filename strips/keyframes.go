package strips

import "time"

// keyframe weights: shift/hue at a given progress is
// w1*(ShiftX1, Hue1) + w2*(ShiftX2, Hue2)
type keyframe struct {
	at     float64
	w1, w2 float64
}

var keyframes = [variantEndSentinel][]keyframe{
	Glitch1: { // sway between both extremes
		{0, 1, 0}, {0.5, 0, 1}, {1, 1, 0},
	},
	Glitch2: { // twitch out and back to rest, twice
		{0, 0, 0}, {0.25, 1, 0}, {0.5, 0, 0}, {0.75, 0, 1}, {1, 0, 0},
	},
	Glitch3: { // hard cut between extremes
		{0, 0, 1}, {0.5, 0, 1}, {0.5, 1, 0}, {1, 1, 0},
	},
}

// Sample returns the horizontal shift and hue rotation (degrees) of the
// band after the given time since the overlay was attached. Before the
// band's delay the band is at rest; afterwards its variant loops
// forever with the band's duration as period.
func (self *Band) Sample(elapsed time.Duration) (shift, hue float64) {
	if elapsed < self.Delay || self.Duration <= 0 {
		return 0, 0
	}
	running := elapsed - self.Delay
	progress := float64(running%self.Duration) / float64(self.Duration)
	w1, w2 := sampleWeights(keyframes[self.Variant], progress)
	shift = w1*self.ShiftX1 + w2*self.ShiftX2
	hue = w1*self.Hue1 + w2*self.Hue2
	return shift, hue
}

func sampleWeights(frames []keyframe, progress float64) (float64, float64) {
	for i := 1; i < len(frames); i++ {
		next := frames[i]
		if progress >= next.at {
			continue
		}
		prev := frames[i-1]
		t := (progress - prev.at) / (next.at - prev.at)
		return prev.w1 + (next.w1-prev.w1)*t, prev.w2 + (next.w2-prev.w2)*t
	}
	last := frames[len(frames)-1]
	return last.w1, last.w2
}
