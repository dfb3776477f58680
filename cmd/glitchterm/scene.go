package main

import (
	"log"
	"slices"
	"strings"
	"time"

	"github.com/edwinsyarief/glitchfx"
	"github.com/edwinsyarief/glitchfx/drift"
	"github.com/edwinsyarief/glitchfx/rng"
	"github.com/edwinsyarief/glitchfx/sched"
	"github.com/edwinsyarief/glitchfx/shaker"
	"github.com/edwinsyarief/glitchfx/strips"
	"github.com/edwinsyarief/glitchfx/surface"
	"github.com/edwinsyarief/glitchfx/termsurface"
	"github.com/edwinsyarief/glitchfx/typewriter"
	"github.com/gdamore/tcell/v2"
)

const (
	windowWidth  = 44
	windowHeight = 11
	titleText    = "GLITCHFX"
	cursorRune   = '█'
	revealKey    = "reveal"
)

var (
	frameStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(90, 200, 255))
	titleStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 80, 160)).Bold(true)
	lineStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(200, 200, 200))
	crashStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 70, 70)).Background(tcell.ColorBlack)
	helpStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

var crashPanel = []string{
	"         ___         ",
	"        /   \\        ",
	"       | x x |       ",
	"        \\_^_/        ",
	"                     ",
	" Segmentation fault  ",
	"   (core dumped)     ",
}

// terminal cells are coarse, so motion is scaled down
var (
	shakeConfig = shaker.Config{Amplitude: 0.6, Speed: 1, Layers: 4}
	driftConfig = drift.Config{
		StillChance: 0.35,
		MinShift:    1,
		MaxShift:    2,
		MinInterval: 2 * time.Second,
		MaxInterval: 5 * time.Second,
		StartDelay:  2 * time.Second,
	}
)

type scene struct {
	screen   tcell.Screen
	loop     *sched.Loop
	composer *glitchfx.Composer

	window *termsurface.Surface
	title  *termsurface.Surface
	top    *termsurface.Surface
	bottom *termsurface.Surface
	panel  *termsurface.Cells
	shake  *sched.Handle
	typing typewriter.Config

	// invoked whenever a glitch is fired, with its duration
	onGlitch func(duration time.Duration)
}

func newScene(screen tcell.Screen, loop *sched.Loop, src rng.Source) *scene {
	s := &scene{
		screen:   screen,
		loop:     loop,
		composer: glitchfx.New(loop, src),
		window:   termsurface.New(screen, 0, 0, windowWidth, windowHeight),
		title:    termsurface.New(screen, 0, 0, len(titleText)+1, 1),
		top:      termsurface.New(screen, 0, 0, 20, 1),
		bottom:   termsurface.New(screen, 0, 0, 20, 1),
		panel:    termsurface.NewCells(crashStyle, centered(crashPanel, windowWidth, windowHeight)...),
		typing:   typewriter.DefaultConfig(),
	}
	s.drawWindow()
	s.top.Print(0, 0, "procedural  visual", lineStyle)
	s.bottom.Print(0, 0, "  effects   engine", lineStyle)
	s.layout()
	return s
}

// Pads the lines so they are centered in a width x height block.
func centered(lines []string, width, height int) []string {
	block := make([]string, height)
	top := max((height-len(lines))/2, 0)
	for y := range block {
		line := ""
		if y >= top && y-top < len(lines) {
			line = lines[y-top]
		}
		left := max((width-len([]rune(line)))/2, 0)
		line = strings.Repeat(" ", left) + line
		block[y] = line + strings.Repeat(" ", max(width-len([]rune(line)), 0))
	}
	return block
}

func (self *scene) drawWindow() {
	w, h := self.window.Size()
	for x := 1; x < w-1; x++ {
		self.window.SetContent(x, 0, '─', nil, frameStyle)
		self.window.SetContent(x, h-1, '─', nil, frameStyle)
	}
	for y := 1; y < h-1; y++ {
		self.window.SetContent(0, y, '│', nil, frameStyle)
		self.window.SetContent(w-1, y, '│', nil, frameStyle)
	}
	self.window.SetContent(0, 0, '┌', nil, frameStyle)
	self.window.SetContent(w-1, 0, '┐', nil, frameStyle)
	self.window.SetContent(0, h-1, '└', nil, frameStyle)
	self.window.SetContent(w-1, h-1, '┘', nil, frameStyle)
	self.window.Print(w-4, 0, "[x]", frameStyle)
	self.window.Print(2, h-2, "g glitch  x close  s shake  r replay", helpStyle)
}

// Centers the window on the screen.
func (self *scene) layout() {
	width, height := self.screen.Size()
	x := max((width-windowWidth)/2, 0)
	y := max((height-windowHeight)/2, 0)
	self.window.SetOrigin(x, y)
	self.top.SetOrigin(x+12, y+2)
	self.title.SetOrigin(x+(windowWidth-len(titleText))/2, y+4)
	self.bottom.SetOrigin(x+12, y+6)
}

func (self *scene) start() {
	self.reveal()
	self.composer.Drift(self.top, self.bottom, driftConfig)
	self.toggleShake()
}

// Types the title, hides the cursor and glitches the title once.
func (self *scene) reveal() {
	if self.composer.Latched(revealKey) {
		log.Println("reveal already running, trigger dropped")
		return
	}
	self.title.Clear()
	self.title.SetContent(0, 0, cursorRune, nil, titleStyle)
	self.composer.Guard(revealKey, self.title.Clear,
		self.composer.TypewriterStage(len(titleText), self.typing, func(index int) {
			self.title.SetContent(index, 0, rune(titleText[index]), nil, titleStyle)
			self.title.SetContent(index+1, 0, cursorRune, nil, titleStyle)
		}),
		glitchfx.CallStage(func() {
			self.title.SetContent(len(titleText), 0, ' ', nil, titleStyle)
		}),
		self.glitchStage(self.title, 300*time.Millisecond),
	)
}

func (self *scene) glitchStage(target *termsurface.Surface, duration time.Duration) glitchfx.Stage {
	stage := self.composer.GlitchStage(target, duration, 1)
	return func(done func()) *sched.Handle {
		self.notifyGlitch(duration)
		return stage(done)
	}
}

func (self *scene) glitch() {
	duration := 400 * time.Millisecond
	self.notifyGlitch(duration)
	self.composer.Glitch(self.window, strips.FireConfig{Duration: duration})
}

func (self *scene) segfault() {
	if self.composer.Latched(glitchfx.SegfaultKey(self.window)) {
		log.Println("segfault already running, trigger dropped")
		return
	}
	self.notifyGlitch(glitchfx.SegfaultGlitchIn)
	self.composer.Segfault(self.window, self.panel)
}

func (self *scene) toggleShake() {
	if self.shake.Active() {
		self.shake.Cancel()
		log.Println("shake stopped")
		return
	}
	self.shake = self.composer.Shake(self.window, shakeConfig)
	log.Println("shake started")
}

func (self *scene) notifyGlitch(duration time.Duration) {
	log.Printf("glitch for %v", duration)
	if self.onGlitch != nil {
		self.onGlitch(duration)
	}
}

// Handles a key event, returning true if the demo should quit.
func (self *scene) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch strings.ToLower(string(ev.Rune())) {
		case "q":
			return true
		case "g":
			self.glitch()
		case "x":
			self.segfault()
		case "s":
			self.toggleShake()
		case "r":
			self.reveal()
		}
	}
	return false
}

func (self *scene) draw() {
	self.screen.Clear()
	now := self.loop.Now()
	self.window.Render(now)
	if !self.crashed() {
		self.top.Render(now)
		self.title.Render(now)
		self.bottom.Render(now)
	}
	self.screen.Show()
}

// Returns whether the crash panel is covering the window.
func (self *scene) crashed() bool {
	return slices.Contains(self.window.Overlays(), surface.Node(self.panel))
}

func (self *scene) stop() {
	self.composer.CancelAll()
}
