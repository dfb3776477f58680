package main

import (
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/edwinsyarief/glitchfx"
	"github.com/edwinsyarief/glitchfx/drift"
	"github.com/edwinsyarief/glitchfx/ebisurface"
	"github.com/edwinsyarief/glitchfx/rng"
	"github.com/edwinsyarief/glitchfx/sched"
	"github.com/edwinsyarief/glitchfx/shaker"
	"github.com/edwinsyarief/glitchfx/strips"
	"github.com/edwinsyarief/glitchfx/surface"
	"github.com/edwinsyarief/glitchfx/typewriter"
	"github.com/edwinsyarief/glitchfx/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	canvasWidth  = 320
	canvasHeight = 180
	windowWidth  = 224
	windowHeight = 120
	titleText    = "GLITCHFX"
	revealKey    = "reveal"
)

var (
	backgroundColor = utils.RGB(8, 6, 16)
	windowColor     = utils.RGB(24, 20, 44)
	frameColor      = utils.RGB(90, 200, 255)
	panelColor      = utils.RGB(12, 12, 12)
)

const crashText = "   ___\n  /   \\\n | x x |\n  \\_^_/\n\nSegmentation fault\n  (core dumped)"

type game struct {
	stage    *ebisurface.Stage
	composer *glitchfx.Composer
	debug    bool

	window *ebisurface.Surface
	title  *ebisurface.Surface
	top    *ebisurface.Surface
	bottom *ebisurface.Surface
	panel  *ebisurface.Image
	shake  *sched.Handle
}

func newGame(src rng.Source, debug bool) *game {
	g := &game{debug: debug}
	g.stage = ebisurface.NewStage(g, canvasWidth, canvasHeight)
	g.composer = glitchfx.New(g.stage.Loop(), src)

	g.window = ebisurface.New(windowWidth, windowHeight)
	g.drawWindow()

	titleWidth, titleHeight := utils.TextSize(titleText+"_", 0)
	g.title = ebisurface.New(titleWidth, titleHeight)
	g.top = textSurface("procedural  visual")
	g.bottom = textSurface("  effects   engine")

	panel := utils.TextImage(crashText, 8, panelColor)
	g.panel = &ebisurface.Image{Source: centeredPanel(panel, windowWidth, windowHeight)}
	return g
}

func textSurface(text string) *ebisurface.Surface {
	width, height := utils.TextSize(text, 0)
	surf := ebisurface.New(width, height)
	ebitenutil.DebugPrintAt(surf.Target(), text, 0, 0)
	return surf
}

// Returns a window sized panel with the given image in the middle.
func centeredPanel(img *ebiten.Image, width, height int) *ebiten.Image {
	panel := ebiten.NewImage(width, height)
	panel.Fill(panelColor)
	bounds := img.Bounds()
	var opts ebiten.DrawImageOptions
	opts.GeoM.Translate(float64(width-bounds.Dx())/2, float64(height-bounds.Dy())/2)
	panel.DrawImage(img, &opts)
	return panel
}

func (self *game) drawWindow() {
	canvas := self.window.Target()
	self.window.Fill(frameColor)
	utils.SubImage(canvas, 1, 1, windowWidth-1, windowHeight-1).Fill(windowColor)
	utils.SubImage(canvas, 1, 12, windowWidth-1, 13).Fill(frameColor)
	ebitenutil.DebugPrintAt(canvas, "[x]", windowWidth-22, -2)
	ebitenutil.DebugPrintAt(canvas, "G glitch  X close  S shake  R replay", 6, windowHeight-18)
}

func (self *game) start() {
	self.reveal()
	self.composer.Drift(self.top, self.bottom, drift.DefaultConfig())
	self.toggleShake()
}

// Types the title, hides the cursor and glitches the title once.
func (self *game) reveal() {
	if self.composer.Latched(revealKey) {
		log.Println("reveal already running, trigger dropped")
		return
	}
	self.printTitle(0, true)
	self.composer.Guard(revealKey, self.title.Clear,
		self.composer.TypewriterStage(len(titleText), typewriter.DefaultConfig(), func(index int) {
			self.printTitle(index+1, true)
		}),
		glitchfx.CallStage(func() { self.printTitle(len(titleText), false) }),
		self.composer.GlitchStage(self.title, 300*time.Millisecond, 1),
	)
}

func (self *game) printTitle(typed int, cursor bool) {
	text := titleText[:typed]
	if cursor {
		text += "_"
	}
	self.title.Clear()
	ebitenutil.DebugPrintAt(self.title.Target(), text, 0, 0)
}

func (self *game) glitch() {
	self.composer.Glitch(self.window, strips.FireConfig{Duration: 400 * time.Millisecond})
}

func (self *game) segfault() {
	if self.composer.Latched(glitchfx.SegfaultKey(self.window)) {
		log.Println("segfault already running, trigger dropped")
		return
	}
	self.composer.Segfault(self.window, self.panel)
}

func (self *game) toggleShake() {
	if self.shake.Active() {
		self.shake.Cancel()
		return
	}
	self.shake = self.composer.Shake(self.window, shaker.DefaultConfig())
}

// Returns whether the crash panel is covering the window.
func (self *game) crashed() bool {
	return slices.Contains(self.window.Overlays(), surface.Node(self.panel))
}

// --- ebisurface.Game implementation ---

func (self *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		self.composer.CancelAll()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		self.glitch()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		self.segfault()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		self.toggleShake()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		self.reveal()
	}
	return nil
}

func (self *game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	now := self.stage.Now()

	x := float64(canvasWidth-windowWidth) / 2
	y := float64(canvasHeight-windowHeight) / 2
	self.window.Project(screen, x, y, now)
	if !self.crashed() {
		titleWidth, _ := self.title.Size()
		self.top.Project(screen, x+60, y+28, now)
		self.title.Project(screen, x+float64(windowWidth-titleWidth)/2, y+50, now)
		self.bottom.Project(screen, x+60, y+72, now)
	}

	if self.debug {
		info := fmt.Sprintf("TPS %.0f  effects %d  t %v", ebiten.ActualTPS(), self.composer.Active(), now.Truncate(time.Millisecond))
		ebitenutil.DebugPrintAt(screen, info, 2, 0)
	}
}
