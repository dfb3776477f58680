//go:build js
// +build js

// Command glitchweb wires the glitchfx effects into a page when compiled
// with GopherJS.
package main

import (
	"log"
	"time"

	"github.com/edwinsyarief/glitchfx"
	"github.com/edwinsyarief/glitchfx/dom"
	"github.com/edwinsyarief/glitchfx/drift"
	"github.com/edwinsyarief/glitchfx/shaker"
	"github.com/edwinsyarief/glitchfx/strips"
	"github.com/edwinsyarief/glitchfx/typewriter"
	"github.com/gopherjs/gopherjs/js"
)

const skull = `    ___
   /   \
  | x x |
   \_^_/`

const segfaultHTML = "<pre>" + skull + "</pre>" +
	`<div class="glitch-segfault-msg">Segmentation fault (core dumped)</div>` +
	`<div class="glitch-segfault-detail">[12.481032] chromium[4821]: segfault at 0<br>` +
	`ip 00007f3a rsp 00007ffd err 6 in libcontent.so</div>`

func main() {
	composer := glitchfx.New(dom.NewScheduler(), nil)
	doc := js.Global.Get("document")

	initTypewriter(composer, doc)
	initDrift(composer)

	// every [data-segfault] window crashes when one of its close buttons
	// is clicked
	roots := doc.Call("querySelectorAll", "[data-segfault]")
	for i := 0; i < roots.Length(); i++ {
		initSegfault(composer, roots.Index(i), ".window-close")
	}

	shakers := doc.Call("querySelectorAll", "[data-shake]")
	for i := 0; i < shakers.Length(); i++ {
		composer.Shake(dom.New(shakers.Index(i)), shaker.DefaultConfig())
	}

	js.Global.Set("glitchfx", map[string]interface{}{
		"glitch": func(selector string, duration int) {
			if el := dom.Query(selector); el != nil {
				composer.Glitch(el, strips.FireConfig{Duration: time.Duration(duration) * time.Millisecond})
			}
		},
		"active": func() int {
			return composer.Active()
		},
		"cancelAll": func() {
			composer.CancelAll()
		},
	})

	js.Global.Call("addEventListener", "beforeunload", func() {
		composer.CancelAll()
	})
}

// Reveals the hero characters one by one, then retires the cursor.
func initTypewriter(composer *glitchfx.Composer, doc *js.Object) {
	chars := doc.Call("querySelectorAll", "#hero-spark .hero-char")
	cursor := dom.Query("#hero-cursor")
	if chars.Length() == 0 || cursor == nil {
		log.Println("glitchweb: no hero text, typewriter skipped")
		return
	}
	composer.Typewriter(chars.Length(), typewriter.DefaultConfig(),
		func(index int) {
			chars.Index(index).Get("classList").Call("add", "typed")
		},
		func() {
			cursor.Object().Get("classList").Call("add", "done")
		},
	)
}

func initDrift(composer *glitchfx.Composer) {
	top := dom.Query(".hero-line-top")
	bottom := dom.Query(".hero-line-bottom")
	if top == nil || bottom == nil {
		return
	}
	composer.Drift(top, bottom, drift.DefaultConfig())
}

func initSegfault(composer *glitchfx.Composer, root *js.Object, closeSelector string) {
	target := dom.New(root)
	if target == nil {
		return
	}
	panel := dom.NewPanel("glitch-segfault", segfaultHTML)
	buttons := root.Call("querySelectorAll", closeSelector)
	for i := 0; i < buttons.Length(); i++ {
		buttons.Index(i).Call("addEventListener", "click", func() {
			// retriggers are dropped while the sequence runs
			composer.Segfault(target, panel)
		})
	}
}
