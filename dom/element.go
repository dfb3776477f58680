// Package dom implements [surface.Surface] over HTML elements and a
// [sched.Scheduler] over the browser timers, for builds with GopherJS.
//
// Strip overlays rely on the page stylesheet defining the glitch-1,
// glitch-2 and glitch-3 keyframes in terms of the --gx1, --gx2, --gh1
// and --gh2 custom properties, and a .glitch-strip rule with absolute
// positioning and hidden overflow.
package dom

import (
	"fmt"
	"strconv"

	"github.com/edwinsyarief/glitchfx/strips"
	"github.com/edwinsyarief/glitchfx/surface"
	"github.com/gopherjs/gopherjs/js"
)

// Node wraps a detached DOM subtree.
type Node struct {
	Object *js.Object
}

func (self *Node) Clone() surface.Node {
	return &Node{Object: self.Object.Call("cloneNode", true)}
}

// Creates a div with the given class and inner HTML, typically used as
// a panel overlay.
func NewPanel(className, innerHTML string) *Node {
	div := js.Global.Get("document").Call("createElement", "div")
	div.Set("className", className)
	div.Set("innerHTML", innerHTML)
	return &Node{Object: div}
}

// Element adapts an HTML element to [surface.Surface].
type Element struct {
	object    *js.Object
	transform surface.Transform
	rendered  map[surface.Node]*js.Object
}

// Wraps an element. Returns nil if the object is null or undefined.
// Check the result before handing it to an effect as a surface.
func New(object *js.Object) *Element {
	if object == nil || object == js.Undefined {
		return nil
	}
	return &Element{
		object:    object,
		transform: surface.Identity,
		rendered:  make(map[surface.Node]*js.Object),
	}
}

// Wraps the first element matching the selector, or returns nil.
func Query(selector string) *Element {
	return New(js.Global.Get("document").Call("querySelector", selector))
}

// Returns the underlying element.
func (self *Element) Object() *js.Object {
	return self.object
}

// --- surface.Surface implementation ---

func (self *Element) Size() (width, height int) {
	return self.object.Get("offsetWidth").Int(), self.object.Get("offsetHeight").Int()
}

func (self *Element) Snapshot() surface.Node {
	width, height := self.Size()
	snapshot := self.object.Call("cloneNode", true)
	snapshot.Get("classList").Call("remove", "glitch-root")
	style := snapshot.Get("style")
	style.Set("position", "absolute")
	style.Set("top", "0")
	style.Set("left", "0")
	style.Set("width", px(float64(width)))
	style.Set("height", px(float64(height)))
	style.Set("margin", "0")
	return &Node{Object: snapshot}
}

func (self *Element) Transform() surface.Transform {
	return self.transform
}

func (self *Element) SetTransform(transform surface.Transform) {
	self.transform = transform
	self.object.Get("style").Set("transform", TransformCSS(transform))
}

func (self *Element) SetOpacity(opacity float64) {
	self.object.Get("style").Set("opacity", strconv.FormatFloat(opacity, 'f', -1, 64))
}

func (self *Element) AttachOverlay(node surface.Node) {
	var object *js.Object
	switch overlay := node.(type) {
	case *Node:
		object = overlay.Object
	case *strips.Overlay:
		object = buildStrips(overlay)
	default:
		// unknown nodes belong to other backends
		return
	}
	self.rendered[node] = object
	self.object.Call("appendChild", object)
}

func (self *Element) DetachOverlay(node surface.Node) {
	object, found := self.rendered[node]
	if !found {
		return
	}
	delete(self.rendered, node)
	object.Call("remove")
}

// --- css helpers ---

// TransformCSS returns the CSS transform property value for a transform.
// The identity transform clears the property.
func TransformCSS(transform surface.Transform) string {
	if transform == surface.Identity {
		return ""
	}
	return fmt.Sprintf("translate(%.2fpx, %.2fpx) scale(%g)", transform.X, transform.Y, transform.Scale)
}

// AnimationCSS returns the CSS animation property value for a band.
func AnimationCSS(band *strips.Band) string {
	return fmt.Sprintf("%s %dms linear infinite", band.Variant, band.Duration.Milliseconds())
}

func px(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "px"
}

func deg(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "deg"
}

func buildStrips(overlay *strips.Overlay) *js.Object {
	document := js.Global.Get("document")
	container := document.Call("createElement", "div")
	container.Set("className", "glitch-overlay")
	style := container.Get("style")
	style.Set("position", "absolute")
	style.Set("inset", "0")
	style.Set("zIndex", "11")
	style.Set("overflow", "hidden")
	style.Set("pointerEvents", "none")

	for i := range overlay.Bands {
		band := &overlay.Bands[i]
		slice, isNode := overlay.Slices[i].(*Node)
		if !isNode {
			continue
		}
		strip := document.Call("createElement", "div")
		strip.Set("className", "glitch-strip")
		stripStyle := strip.Get("style")
		stripStyle.Set("top", px(float64(band.Y)))
		stripStyle.Set("height", px(float64(band.Height)))
		stripStyle.Call("setProperty", "--gx1", px(band.ShiftX1))
		stripStyle.Call("setProperty", "--gx2", px(band.ShiftX2))
		stripStyle.Call("setProperty", "--gh1", deg(band.Hue1))
		stripStyle.Call("setProperty", "--gh2", deg(band.Hue2))
		stripStyle.Set("animation", AnimationCSS(band))
		stripStyle.Set("animationDelay", strconv.FormatInt(band.Delay.Milliseconds(), 10)+"ms")

		slice.Object.Get("style").Set("top", px(float64(-band.Y)))
		strip.Call("appendChild", slice.Object)
		container.Call("appendChild", strip)
	}
	return container
}
