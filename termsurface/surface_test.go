package termsurface

import (
	"testing"
	"time"

	"github.com/edwinsyarief/glitchfx/rng"
	"github.com/edwinsyarief/glitchfx/sched"
	"github.com/edwinsyarief/glitchfx/strips"
	"github.com/edwinsyarief/glitchfx/surface"
	"github.com/gdamore/tcell/v2"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	screen.SetSize(40, 10)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	mainc, _, _, _ := screen.GetContent(x, y)
	return mainc
}

func TestRender_Translation(t *testing.T) {
	screen := newTestScreen(t)
	surf := New(screen, 2, 1, 20, 4)
	surf.Print(0, 0, "hello", tcell.StyleDefault)

	surf.Render(0)
	if got := runeAt(screen, 2, 1); got != 'h' {
		t.Errorf("Expected 'h' at origin, got %q", got)
	}

	screen.Clear()
	surf.SetTransform(surface.Transform{X: 3.4, Y: 1.6, Scale: 1.05})
	surf.Render(0)
	if got := runeAt(screen, 5, 3); got != 'h' {
		t.Errorf("Expected 'h' at rounded offset (5, 3), got %q", got)
	}
}

func TestRender_Opacity(t *testing.T) {
	screen := newTestScreen(t)
	surf := New(screen, 0, 0, 10, 2)
	surf.Print(0, 0, "x", tcell.StyleDefault)

	surf.SetOpacity(0.3)
	surf.Render(0)
	_, _, style, _ := screen.GetContent(0, 0)
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrDim == 0 {
		t.Error("Expected dimmed style at low opacity")
	}

	screen.Clear()
	surf.SetOpacity(0)
	surf.Render(0)
	if got := runeAt(screen, 0, 0); got == 'x' {
		t.Error("Expected nothing drawn at zero opacity")
	}
}

func TestSnapshot_IsDetached(t *testing.T) {
	screen := newTestScreen(t)
	surf := New(screen, 0, 0, 4, 1)
	surf.Print(0, 0, "ab", tcell.StyleDefault)

	snapshot := surf.Snapshot().(*Cells)
	surf.Print(0, 0, "zz", tcell.StyleDefault)
	if snapshot.At(0, 0).Main != 'a' {
		t.Errorf("Expected snapshot unaffected by later writes, got %q", snapshot.At(0, 0).Main)
	}
	clone := snapshot.Clone().(*Cells)
	clone.Data[1].Main = 'q'
	if snapshot.At(1, 0).Main != 'b' {
		t.Error("Expected clone to be independent")
	}
}

func TestRender_StripShift(t *testing.T) {
	screen := newTestScreen(t)
	surf := New(screen, 0, 0, 10, 2)
	surf.Print(0, 0, "a", tcell.StyleDefault)
	surf.Print(0, 1, "b", tcell.StyleDefault)

	overlay := &strips.Overlay{
		Width: 10, Height: 2,
		Bands: []strips.Band{
			{Y: 0, Height: 1, ShiftX1: 16, Variant: strips.Glitch1, Duration: 400 * time.Millisecond},
			{Y: 1, Height: 1, ShiftX1: -16, Variant: strips.Glitch1, Duration: 400 * time.Millisecond,
				Delay: 100 * time.Millisecond},
		},
	}
	snapshot := surf.Snapshot()
	overlay.Slices = []surface.Node{snapshot.Clone(), snapshot.Clone()}
	surf.AttachOverlay(overlay)

	surf.Render(time.Second)
	if got := runeAt(screen, 2, 0); got != 'a' {
		t.Errorf("Expected first band shifted two columns, got %q", got)
	}
	if got := runeAt(screen, 0, 1); got != 'b' {
		t.Errorf("Expected delayed band at rest, got %q", got)
	}

	// the second band would move out of bounds and is clipped
	screen.Clear()
	surf.Render(time.Second + 100*time.Millisecond)
	for x := 0; x < 10; x++ {
		if x != 0 && runeAt(screen, x, 1) == 'b' {
			t.Errorf("Expected clipped band, found 'b' at column %d", x)
		}
	}

	surf.DetachOverlay(overlay)
	if len(surf.Overlays()) != 0 {
		t.Error("Expected overlay detached")
	}
}

func TestFire_WithTerminalSurface(t *testing.T) {
	screen := newTestScreen(t)
	loop := sched.NewLoop()
	surf := New(screen, 0, 0, 20, 6)
	surf.Print(0, 0, "glitch", tcell.StyleDefault.Foreground(tcell.ColorRed))

	handle := strips.Fire(surf, loop, strips.FireConfig{Duration: 250 * time.Millisecond}, rng.NewMulberry32(7))
	if len(surf.Overlays()) != 1 {
		t.Fatal("Expected overlay attached")
	}
	surf.Render(loop.Now())
	loop.Advance(250 * time.Millisecond)
	if handle.Active() || len(surf.Overlays()) != 0 {
		t.Error("Expected glitch over and overlay detached")
	}
}

func TestRotateHue(t *testing.T) {
	red := tcell.NewRGBColor(255, 0, 0)
	r, g, b := RotateHue(red, 120).RGB()
	if r != 0 || g != 255 || b != 0 {
		t.Errorf("Expected green, got (%d, %d, %d)", r, g, b)
	}
	r, g, b = RotateHue(red, -120).RGB()
	if r != 0 || g != 0 || b != 255 {
		t.Errorf("Expected blue, got (%d, %d, %d)", r, g, b)
	}
	if RotateHue(tcell.ColorDefault, 90) != tcell.ColorDefault {
		t.Error("Expected default color untouched")
	}
}

func TestShiftColumns(t *testing.T) {
	cases := []struct {
		shift float64
		want  int
	}{{0, 0}, {15, 2}, {-15, -2}, {3, 0}, {4, 1}, {-12, -2}}
	for _, c := range cases {
		if got := ShiftColumns(c.shift); got != c.want {
			t.Errorf("ShiftColumns(%f): expected %d, got %d", c.shift, c.want, got)
		}
	}
}

func TestNewCells(t *testing.T) {
	cells := NewCells(tcell.StyleDefault, "ab", "cde")
	if cells.Width != 3 || cells.Height != 2 {
		t.Fatalf("Expected 3x2, got %dx%d", cells.Width, cells.Height)
	}
	if cells.At(2, 1).Main != 'e' || cells.At(2, 0).Main != 0 || cells.At(5, 5).Main != 0 {
		t.Error("Unexpected cell contents")
	}
}
