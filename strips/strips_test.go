package strips

import (
	"math"
	"testing"
	"time"

	"github.com/edwinsyarief/glitchfx/rng"
	"github.com/edwinsyarief/glitchfx/sched"
	"github.com/edwinsyarief/glitchfx/surface/surfacetest"
)

func checkCoverage(t *testing.T, bands []Band, height int) {
	t.Helper()
	if len(bands) == 0 {
		t.Fatalf("Expected bands for height %d", height)
	}
	if bands[0].Y != 0 {
		t.Errorf("Expected first band at 0, got %d", bands[0].Y)
	}
	sum := 0
	for i, b := range bands {
		if b.Height < MinBandHeight && i != len(bands)-1 {
			t.Errorf("Height %d: band %d is only %d tall", height, i, b.Height)
		}
		if b.Height <= 0 {
			t.Errorf("Height %d: band %d has non-positive height %d", height, i, b.Height)
		}
		if i > 0 {
			prev := bands[i-1]
			if b.Y <= prev.Y {
				t.Errorf("Height %d: band %d Y %d not after %d", height, i, b.Y, prev.Y)
			}
			if prev.Y+prev.Height != b.Y {
				t.Errorf("Height %d: gap or overlap between bands %d and %d", height, i-1, i)
			}
		}
		sum += b.Height
	}
	last := bands[len(bands)-1]
	if sum != height || last.Y+last.Height != height {
		t.Errorf("Height %d: bands sum to %d, last ends at %d", height, sum, last.Y+last.Height)
	}
}

func TestDecompose_Coverage(t *testing.T) {
	src := rng.NewMulberry32(2024)
	for height := 1; height <= 400; height++ {
		for _, intensity := range []float64{0, 0.5, 1, 3} {
			checkCoverage(t, Decompose(height, intensity, src), height)
		}
	}
}

func TestDecompose_CoverageExtremeSources(t *testing.T) {
	for _, value := range []float64{0, 0.999999} {
		for _, height := range []int{1, 2, 3, 4, 7, 12, 100, 1081} {
			checkCoverage(t, Decompose(height, 1, rng.NewSequence(value)), height)
		}
	}
}

func TestDecompose_EmptySurface(t *testing.T) {
	if bands := Decompose(0, 1, nil); bands != nil {
		t.Errorf("Expected no bands for zero height, got %d", len(bands))
	}
	if bands := Decompose(-5, 1, nil); bands != nil {
		t.Errorf("Expected no bands for negative height, got %d", len(bands))
	}
}

func TestDecompose_IntensityIndependentLayout(t *testing.T) {
	low := Decompose(300, 0.2, rng.NewMulberry32(11))
	high := Decompose(300, 4, rng.NewMulberry32(11))
	if len(low) != len(high) {
		t.Fatalf("Expected same band count, got %d and %d", len(low), len(high))
	}
	for i := range low {
		if low[i].Y != high[i].Y || low[i].Height != high[i].Height {
			t.Errorf("Band %d layout differs: %+v vs %+v", i, low[i], high[i])
		}
	}
}

func TestDecompose_ParameterRanges(t *testing.T) {
	intensity := 2.0
	bands := Decompose(500, intensity, rng.NewMulberry32(3))
	for i, b := range bands {
		for _, shift := range []float64{b.ShiftX1, b.ShiftX2} {
			if math.Abs(shift) > 15*intensity || shift != math.Round(shift) {
				t.Errorf("Band %d: shift %f out of range", i, shift)
			}
		}
		for _, hue := range []float64{b.Hue1, b.Hue2} {
			if math.Abs(hue) > 25*intensity || hue != math.Round(hue) {
				t.Errorf("Band %d: hue %f out of range", i, hue)
			}
		}
		if b.Duration < 400*time.Millisecond || b.Duration > 700*time.Millisecond {
			t.Errorf("Band %d: duration %v out of range", i, b.Duration)
		}
		if b.Delay < 0 || b.Delay > 150*time.Millisecond {
			t.Errorf("Band %d: delay %v out of range", i, b.Delay)
		}
		if b.Variant >= variantEndSentinel {
			t.Errorf("Band %d: invalid variant %d", i, b.Variant)
		}
	}
}

func TestDecompose_DrawOrder(t *testing.T) {
	// height draw, 4 magnitudes, variant, duration, delay
	src := rng.NewSequence(0.99, 1, 0, 0.5, 0.5, 0.7, 0.5, 1)
	bands := Decompose(24, 1, src)
	b := bands[0]
	if b.Height != 3 {
		t.Errorf("Expected height 3 (floor(0.99*4)), got %d", b.Height)
	}
	if b.ShiftX1 != 15 || b.ShiftX2 != -15 || b.Hue1 != 0 || b.Hue2 != 0 {
		t.Errorf("Unexpected magnitudes: %+v", b)
	}
	if b.Variant != Glitch3 {
		t.Errorf("Expected glitch-3, got %s", b.Variant)
	}
	if b.Duration != 550*time.Millisecond || b.Delay != 150*time.Millisecond {
		t.Errorf("Expected 550ms/150ms, got %v/%v", b.Duration, b.Delay)
	}
}

func TestVariantString(t *testing.T) {
	names := map[Variant]string{Glitch1: "glitch-1", Glitch2: "glitch-2", Glitch3: "glitch-3"}
	for v, name := range names {
		if v.String() != name {
			t.Errorf("Expected %s, got %s", name, v.String())
		}
	}
}

func TestBandSample(t *testing.T) {
	b := Band{
		ShiftX1: 10, ShiftX2: -6, Hue1: 20, Hue2: -20,
		Variant: Glitch1, Duration: 400 * time.Millisecond, Delay: 100 * time.Millisecond,
	}
	if shift, hue := b.Sample(50 * time.Millisecond); shift != 0 || hue != 0 {
		t.Errorf("Expected rest before delay, got (%f, %f)", shift, hue)
	}
	if shift, hue := b.Sample(100 * time.Millisecond); shift != 10 || hue != 20 {
		t.Errorf("Expected first extreme at start, got (%f, %f)", shift, hue)
	}
	if shift, _ := b.Sample(300 * time.Millisecond); shift != -6 {
		t.Errorf("Expected second extreme at half period, got %f", shift)
	}
	if shift, _ := b.Sample(500 * time.Millisecond); shift != 10 {
		t.Errorf("Expected loop back to start after a period, got %f", shift)
	}

	b.Variant = Glitch3
	if shift, _ := b.Sample(150 * time.Millisecond); shift != -6 {
		t.Errorf("Expected glitch-3 first half at second extreme, got %f", shift)
	}
	if shift, _ := b.Sample(350 * time.Millisecond); shift != 10 {
		t.Errorf("Expected glitch-3 second half at first extreme, got %f", shift)
	}

	b.Variant = Glitch2
	if shift, _ := b.Sample(300 * time.Millisecond); shift != 0 {
		t.Errorf("Expected glitch-2 at rest mid-period, got %f", shift)
	}
}

func TestBuild_OneSnapshotManyCopies(t *testing.T) {
	target := surfacetest.NewRecorder(320, 240)
	overlay := Build(target, 1, rng.NewMulberry32(8))
	if target.Snapshots() != 1 {
		t.Errorf("Expected exactly one snapshot, got %d", target.Snapshots())
	}
	if len(overlay.Slices) != len(overlay.Bands) {
		t.Fatalf("Expected one slice per band, got %d for %d", len(overlay.Slices), len(overlay.Bands))
	}
	for i := range overlay.Slices {
		for j := i + 1; j < len(overlay.Slices); j++ {
			if overlay.Slices[i] == overlay.Slices[j] {
				t.Fatalf("Expected independent copies, slices %d and %d are shared", i, j)
			}
		}
	}
	if overlay.Width != 320 || overlay.Height != 240 {
		t.Errorf("Expected 320x240 overlay, got %dx%d", overlay.Width, overlay.Height)
	}
	checkCoverage(t, overlay.Bands, 240)

	if Build(nil, 1, nil) != nil {
		t.Error("Expected nil overlay for nil target")
	}
}

func TestFire_AttachHoldDetachComplete(t *testing.T) {
	loop := sched.NewLoop()
	target := surfacetest.NewRecorder(100, 50)
	completed := 0
	handle := Fire(target, loop, FireConfig{
		Duration:   800 * time.Millisecond,
		OnComplete: func() { completed++ },
	}, rng.NewMulberry32(1))

	if len(target.Overlays()) != 1 {
		t.Fatalf("Expected overlay attached immediately, got %d", len(target.Overlays()))
	}
	loop.Advance(799 * time.Millisecond)
	if completed != 0 || len(target.Overlays()) != 1 {
		t.Errorf("Expected overlay held until duration, completed=%d", completed)
	}
	loop.Advance(time.Millisecond)
	if completed != 1 || len(target.Overlays()) != 0 {
		t.Errorf("Expected detach and completion, completed=%d overlays=%d", completed, len(target.Overlays()))
	}
	if handle.Active() {
		t.Error("Expected handle finished after completion")
	}
	handle.Cancel()
	if target.Detached != 1 {
		t.Errorf("Expected cancel after completion to be a no-op, detached=%d", target.Detached)
	}
}

func TestFire_DefaultIntensity(t *testing.T) {
	loop := sched.NewLoop()
	target := surfacetest.NewRecorder(10, 10)
	Fire(target, loop, FireConfig{Duration: time.Millisecond}, rng.NewSequence(0.99, 1, 1, 1, 1))
	overlay := target.Overlays()[0].(*Overlay)
	if overlay.Bands[0].ShiftX1 != 15 {
		t.Errorf("Expected zero intensity to mean 1, got shift %f", overlay.Bands[0].ShiftX1)
	}
}

func TestFire_CancelDetachesWithoutCompletion(t *testing.T) {
	loop := sched.NewLoop()
	target := surfacetest.NewRecorder(100, 50)
	completed := false
	handle := Fire(target, loop, FireConfig{Duration: time.Second, OnComplete: func() { completed = true }}, nil)

	loop.Advance(100 * time.Millisecond)
	handle.Cancel()
	if len(target.Overlays()) != 0 {
		t.Error("Expected overlay detached on cancel")
	}
	loop.Advance(2 * time.Second)
	if completed {
		t.Error("Expected no completion after cancel")
	}
}

func TestFire_ConcurrentCallsAreIndependent(t *testing.T) {
	loop := sched.NewLoop()
	target := surfacetest.NewRecorder(100, 50)
	var done []string
	Fire(target, loop, FireConfig{Duration: 300 * time.Millisecond, OnComplete: func() { done = append(done, "long") }}, nil)
	Fire(target, loop, FireConfig{Duration: 100 * time.Millisecond, OnComplete: func() { done = append(done, "short") }}, nil)

	if target.Snapshots() != 2 || len(target.Overlays()) != 2 {
		t.Fatalf("Expected two snapshots and overlays, got %d and %d", target.Snapshots(), len(target.Overlays()))
	}
	loop.Advance(time.Second)
	if len(done) != 2 || done[0] != "short" || done[1] != "long" {
		t.Errorf("Expected [short long], got %v", done)
	}
}

func TestFire_NilTarget(t *testing.T) {
	loop := sched.NewLoop()
	completed := false
	handle := Fire(nil, loop, FireConfig{Duration: time.Millisecond, OnComplete: func() { completed = true }}, nil)
	loop.Advance(time.Second)
	if handle.Active() || completed {
		t.Error("Expected nil target to degrade to a no-op")
	}
}

func TestFire_MissingRecorder(t *testing.T) {
	loop := sched.NewLoop()
	var missing *surfacetest.Recorder
	if Build(missing, 1, nil) != nil {
		t.Error("Expected no overlay for a nil recorder")
	}
	completed := false
	handle := Fire(missing, loop, FireConfig{Duration: time.Millisecond, OnComplete: func() { completed = true }}, nil)
	loop.Advance(time.Second)
	if handle.Active() || completed {
		t.Error("Expected a nil recorder to degrade to a no-op")
	}
}
