package ebisurface

import (
	"time"

	"github.com/edwinsyarief/glitchfx/sched"
	"github.com/hajimehoshi/ebiten/v2"
)

// --- game ---

// The game interface for stages, which is the equivalent to
// [ebiten.Game] on Ebitengine but without the Layout() method.
type Game interface {
	// Updates the game logic. Effects scheduled on [Stage.Loop]()
	// have already been advanced when this is called.
	Update() error

	// Draws the game contents. The screen always has the logical
	// size given to [NewStage]().
	Draw(screen *ebiten.Image)
}

// Stage implements [ebiten.Game], advancing a [sched.Loop] by one tick
// worth of time on every update.
type Stage struct {
	game   Game
	loop   *sched.Loop
	width  int
	height int

	timeScale float64
	ticks     uint64
}

// Creates a stage for the given game with a fixed logical resolution.
func NewStage(game Game, width, height int) *Stage {
	if width < 1 || height < 1 {
		panic("stage resolution must be at least (1, 1)")
	}
	return &Stage{
		game:  game,
		loop:  sched.NewLoop(),
		width: width, height: height,
		timeScale: 1.0,
	}
}

// Equivalent to [ebiten.RunGame](), but for a stage.
func (self *Stage) Run() error {
	return ebiten.RunGame(self)
}

// Returns the loop effects should be scheduled on.
func (self *Stage) Loop() *sched.Loop {
	return self.loop
}

// Returns the stage clock, as seen by scheduled effects.
func (self *Stage) Now() time.Duration {
	return self.loop.Now()
}

// Returns the number of updates processed so far.
func (self *Stage) Ticks() uint64 {
	return self.ticks
}

// Sets how much scheduled time passes per real second. Useful to
// inspect effects in slow motion. Defaults to 1.
func (self *Stage) SetTimeScale(scale float64) {
	if scale < 0 {
		panic("time scale can't be negative")
	}
	self.timeScale = scale
}

// Returns the time that a single update advances the loop by.
func (self *Stage) TickDuration() time.Duration {
	return TickDuration(ebiten.TPS(), self.timeScale)
}

// TickDuration returns the scheduled time covered by one update at the
// given updates per second and time scale.
func TickDuration(tps int, scale float64) time.Duration {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Duration(float64(time.Second) * scale / float64(tps))
}

// --- ebiten.Game implementation ---

func (self *Stage) Update() error {
	self.ticks += 1
	self.loop.Advance(self.TickDuration())
	return self.game.Update()
}

func (self *Stage) Draw(screen *ebiten.Image) {
	self.game.Draw(screen)
}

func (self *Stage) Layout(logicWinWidth, logicWinHeight int) (int, int) {
	return self.width, self.height
}
