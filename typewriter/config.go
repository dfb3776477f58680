// Package typewriter drives a character-by-character reveal with human
// timing: every step waits a base delay plus uniform jitter, and
// slowdown rules let the last few steps linger for pacing.
//
// The package only sequences indices. Whatever a step means (showing a
// glyph, moving a cursor) is up to the onStep callback.
package typewriter

import (
	"fmt"
	"time"

	"github.com/edwinsyarief/glitchfx/rng"
)

// A slowdown rule: when at most Remaining steps are left, delays are
// Base + random jitter in [0, Jitter).
type Rule struct {
	Remaining int
	Base      time.Duration
	Jitter    time.Duration
}

// Configuration for a reveal.
type Config struct {
	StartDelay time.Duration // wait before the first step
	BaseDelay  time.Duration // default delay between steps
	Jitter     time.Duration // default jitter, added to BaseDelay
	Linger     time.Duration // wait after the sequence before completing

	// Checked in order, first match wins. Rules are not sorted; list
	// them with increasing Remaining thresholds. See [Config.Validate].
	Slowdown []Rule
}

// Returns the configuration used by the landing page hero title.
func DefaultConfig() Config {
	return Config{
		StartDelay: 400 * time.Millisecond,
		BaseDelay:  90 * time.Millisecond,
		Jitter:     60 * time.Millisecond,
		Linger:     200 * time.Millisecond,
		Slowdown: []Rule{
			{Remaining: 1, Base: 400 * time.Millisecond, Jitter: 200 * time.Millisecond},
			{Remaining: 2, Base: 250 * time.Millisecond, Jitter: 100 * time.Millisecond},
		},
	}
}

// Resolve returns the base delay and jitter used when the given number
// of steps remain.
func (self *Config) Resolve(remaining int) (base, jitter time.Duration) {
	for _, rule := range self.Slowdown {
		if rule.Remaining >= remaining {
			return rule.Base, rule.Jitter
		}
	}
	return self.BaseDelay, self.Jitter
}

// Delay draws a delay for the given number of remaining steps. Jitter is
// always added, never subtracted.
func (self *Config) Delay(remaining int, src rng.Source) time.Duration {
	base, jitter := self.Resolve(remaining)
	return base + time.Duration(rng.Or(src).Float64()*float64(jitter))
}

// Validate reports negative durations and slowdown rules that can never
// match because an earlier rule has an equal or higher threshold.
// [Start] does not call it: an invalid configuration still runs.
func (self *Config) Validate() error {
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"StartDelay", self.StartDelay},
		{"BaseDelay", self.BaseDelay},
		{"Jitter", self.Jitter},
		{"Linger", self.Linger},
	}
	for _, d := range durations {
		if d.value < 0 {
			return fmt.Errorf("typewriter: negative %s %v", d.name, d.value)
		}
	}
	for i, rule := range self.Slowdown {
		if rule.Base < 0 || rule.Jitter < 0 {
			return fmt.Errorf("typewriter: slowdown rule %d has negative delays", i)
		}
		for j := 0; j < i; j++ {
			if self.Slowdown[j].Remaining >= rule.Remaining {
				return fmt.Errorf("typewriter: slowdown rule %d (remaining %d) is shadowed by rule %d (remaining %d)",
					i, rule.Remaining, j, self.Slowdown[j].Remaining)
			}
		}
	}
	return nil
}
