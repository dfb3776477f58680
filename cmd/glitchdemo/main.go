// Command glitchdemo shows the glitchfx effects in an Ebitengine window.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/edwinsyarief/glitchfx/rng"
	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"
)

var (
	debugFlag     = flag.Bool("debug", false, "Show effect counters on screen")
	seedFlag      = flag.Uint("seed", 0, "Seed for the effects (0 picks one from the clock)")
	timeScaleFlag = flag.Float64("timescale", 1, "Scheduled seconds per real second")
)

func main() {
	flag.Parse()

	seed := uint32(*seedFlag)
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
	}
	log.Printf("seed %d", seed)

	g := newGame(rng.NewMulberry32(seed), *debugFlag)
	g.stage.SetTimeScale(*timeScaleFlag)
	g.start()

	ebiten.SetWindowTitle("glitchfx")
	ebiten.SetWindowSize(canvasWidth*3, canvasHeight*3)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := g.stage.Run(); err != nil {
		log.Fatal(err)
	}
}
