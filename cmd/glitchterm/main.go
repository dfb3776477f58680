// Command glitchterm shows the glitchfx effects in a terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/edwinsyarief/glitchfx/rng"
	"github.com/edwinsyarief/glitchfx/sched"
	"github.com/gdamore/tcell/v2"
)

var (
	debugFlag = flag.Bool("debug", false, "Write a debug log to logs/glitchterm.log")
	seedFlag  = flag.Uint("seed", 0, "Seed for the effects (0 picks one from the clock)")
	soundFlag = flag.Bool("sound", false, "Play a crackle on every glitch")
	typeFlag  = flag.Duration("typing", 90*time.Millisecond, "Base delay between typed title characters")
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

func main() {
	flag.Parse()
	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	defer screen.Fini()

	// restore the terminal even if the demo crashes
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "glitchterm crashed: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	seed := uint32(*seedFlag)
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
	}
	log.Printf("seed %d", seed)

	loop := sched.NewLoop()
	s := newScene(screen, loop, rng.NewMulberry32(seed))
	typing := s.typing
	typing.BaseDelay = *typeFlag
	if err := typing.Validate(); err != nil {
		log.Printf("Invalid typing delay: %v (using defaults)", err)
	} else {
		s.typing = typing
	}
	if *soundFlag {
		if sound, err := newCrackle(); err == nil {
			s.onGlitch = sound.play
			defer sound.close()
		} else {
			log.Printf("Audio initialization failed: %v (continuing without audio)", err)
		}
	}

	run(screen, loop, s)
}

func run(screen tcell.Screen, loop *sched.Loop, s *scene) {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	s.start()
	defer s.stop()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if s.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
				s.layout()
			}
		case now := <-ticker.C:
			loop.Advance(now.Sub(last))
			last = now
			s.draw()
		}
	}
}
