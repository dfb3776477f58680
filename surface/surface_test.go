package surface_test

import (
	"testing"

	"github.com/edwinsyarief/glitchfx/surface"
	"github.com/edwinsyarief/glitchfx/surface/surfacetest"
)

func TestAbsent(t *testing.T) {
	var missing *surfacetest.Recorder
	if !surface.Absent(nil) {
		t.Error("Expected nil interface to be absent")
	}
	if !surface.Absent(missing) {
		t.Error("Expected nil recorder to be absent")
	}
	if surface.Absent(surfacetest.NewRecorder(1, 1)) {
		t.Error("Expected a recorder to be present")
	}
}

func TestTransform(t *testing.T) {
	got := surface.Identity.Scaled(1.05).Translated(2, -1)
	want := surface.Transform{X: 2, Y: -1, Scale: 1.05}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}
