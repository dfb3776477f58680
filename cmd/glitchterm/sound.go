package main

import (
	"time"

	"github.com/edwinsyarief/glitchfx/rng"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(44100)
	noiseVolume  = 0.15
	humFrequency = 55
)

// crackle plays a burst of static while a glitch is on screen.
type crackle struct {
	seed uint32
}

func newCrackle() (*crackle, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &crackle{seed: uint32(time.Now().UnixNano())}, nil
}

// Plays static mixed with a low hum for the given duration.
func (self *crackle) play(duration time.Duration) {
	// the speaker pulls samples from its own goroutine, so every burst
	// owns its generator
	self.seed += 1
	noise := staticNoise(rng.NewMulberry32(self.seed), noiseVolume)
	hum, err := generators.SineTone(sampleRate, humFrequency)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(duration), beep.Mix(noise, hum)))
}

func (self *crackle) close() {
	speaker.Close()
}

// Returns an endless stream of white noise at the given volume.
func staticNoise(src rng.Source, volume float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			value := (src.Float64()*2 - 1) * volume
			samples[i][0] = value
			samples[i][1] = value
		}
		return len(samples), true
	})
}
