// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: jshost/jshost.go
// Summary: Browser host binding the scrollbar controller to DOM elements.
// Usage: Bind looks up track, thumb and indicator by selector and returns the
// collaborators a scrollbar.Controller needs.

//go:build js && wasm

package jshost

import (
	"log"
	"strconv"
	"sync"
	"syscall/js"

	"github.com/framegrace/texelscroll/scrollbar"
)

// Selectors locate the widget in the page.
type Selectors struct {
	Track         string
	Thumb         string
	Indicator     string
	OptInClass    string
	DraggingClass string
}

// DefaultSelectors returns the stock markup contract.
func DefaultSelectors() Selectors {
	return Selectors{
		Track:         ".scroll-track",
		Thumb:         ".scroll-thumb",
		Indicator:     ".scroll-indicator",
		OptInClass:    "touch-scrollbar",
		DraggingClass: "is-dragging",
	}
}

func (s Selectors) withDefaults() Selectors {
	def := DefaultSelectors()
	if s.Track == "" {
		s.Track = def.Track
	}
	if s.Thumb == "" {
		s.Thumb = def.Thumb
	}
	if s.Indicator == "" {
		s.Indicator = def.Indicator
	}
	if s.OptInClass == "" {
		s.OptInClass = def.OptInClass
	}
	if s.DraggingClass == "" {
		s.DraggingClass = def.DraggingClass
	}
	return s
}

var eventNames = map[scrollbar.EventKind]string{
	scrollbar.PointerDown:        "pointerdown",
	scrollbar.PointerMove:        "pointermove",
	scrollbar.PointerUp:          "pointerup",
	scrollbar.PointerCancel:      "pointercancel",
	scrollbar.LostPointerCapture: "lostpointercapture",
	scrollbar.Scroll:             "scroll",
	scrollbar.Resize:             "resize",
	scrollbar.VisibilityChange:   "visibilitychange",
	scrollbar.Load:               "load",
}

// binding holds the resolved page objects shared by every wrapper.
type binding struct {
	window   js.Value
	document js.Value
	track    *element
	thumb    *thumbElement
	sel      Selectors
}

// Bind resolves the widget elements. It returns false when the track or the
// thumb is missing; the indicator is optional.
func Bind(sel Selectors) (scrollbar.Host, bool) {
	sel = sel.withDefaults()
	window := js.Global()
	document := window.Get("document")
	if !document.Truthy() {
		log.Printf("[SCROLLBAR] No document available")
		return scrollbar.Host{}, false
	}

	trackNode := document.Call("querySelector", sel.Track)
	thumbNode := document.Call("querySelector", sel.Thumb)
	if !trackNode.Truthy() || !thumbNode.Truthy() {
		log.Printf("[SCROLLBAR] Missing elements: track %q found=%v, thumb %q found=%v",
			sel.Track, trackNode.Truthy(), sel.Thumb, thumbNode.Truthy())
		return scrollbar.Host{}, false
	}

	b := &binding{window: window, document: document, sel: sel}
	b.track = &element{b: b, node: trackNode}
	b.thumb = &thumbElement{element: element{b: b, node: thumbNode}}

	host := scrollbar.Host{
		Document: &page{b: b},
		Window:   &windowTarget{b: b},
		Track:    b.track,
		Thumb:    b.thumb,
		Frames:   frames{window: window},
		Pointer:  pointerEnv{b: b},
	}
	if node := document.Call("querySelector", sel.Indicator); node.Truthy() {
		host.Indicator = indicator{node: node}
	}
	return host, true
}

// listen attaches fn to node for kind. Pointer listeners are registered as
// non-passive so the controller can cancel default handling.
func (b *binding) listen(node js.Value, kind scrollbar.EventKind, fn func(*scrollbar.Event)) func() {
	name, ok := eventNames[kind]
	if !ok {
		return func() {}
	}
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		var raw js.Value
		if len(args) > 0 {
			raw = args[0]
		}
		fn(b.event(kind, raw))
		return nil
	})
	opts := map[string]any{"passive": !isPointer(kind)}
	node.Call("addEventListener", name, cb, opts)

	var once sync.Once
	return func() {
		once.Do(func() {
			node.Call("removeEventListener", name, cb, opts)
			cb.Release()
		})
	}
}

func isPointer(kind scrollbar.EventKind) bool {
	switch kind {
	case scrollbar.PointerDown, scrollbar.PointerMove, scrollbar.PointerUp, scrollbar.PointerCancel:
		return true
	}
	return false
}

func (b *binding) event(kind scrollbar.EventKind, raw js.Value) *scrollbar.Event {
	ev := &scrollbar.Event{Kind: kind}
	if raw.Type() != js.TypeObject {
		return ev
	}
	if id := raw.Get("pointerId"); id.Type() == js.TypeNumber {
		ev.PointerID = scrollbar.PointerID(id.Int())
	}
	if y := raw.Get("clientY"); y.Type() == js.TypeNumber {
		ev.ClientY = y.Float()
	}
	ev.Target = b.targetOf(raw.Get("target"))
	if raw.Get("cancelable").Truthy() {
		ev.OnPreventDefault = func() { raw.Call("preventDefault") }
	}
	return ev
}

// targetOf maps a DOM event target onto the wrapper the controller compares
// against. Anything inside the thumb counts as the thumb. js.Value is not
// comparable, so unknown targets map to nil.
func (b *binding) targetOf(node js.Value) any {
	if node.Type() != js.TypeObject {
		return nil
	}
	thumb := b.thumb.node
	if node.Equal(thumb) || (node.Get("nodeType").Truthy() && thumb.Call("contains", node).Bool()) {
		return b.thumb
	}
	if node.Equal(b.track.node) {
		return b.track
	}
	return nil
}

// scrollRoot is the element whose scroll metrics describe the page.
func (b *binding) scrollRoot() js.Value {
	if root := b.document.Get("scrollingElement"); root.Truthy() {
		return root
	}
	return b.document.Get("documentElement")
}

// call invokes a DOM method that may throw, logging instead of panicking.
func call(node js.Value, method string, args ...any) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[SCROLLBAR] %s failed: %v", method, r)
		}
	}()
	node.Call(method, args...)
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// windowTarget routes window-level events. Visibility changes are observed on
// the document, where browsers fire them.
type windowTarget struct {
	b *binding
}

func (w *windowTarget) Listen(kind scrollbar.EventKind, fn func(*scrollbar.Event)) func() {
	if kind == scrollbar.VisibilityChange {
		return w.b.listen(w.b.document, kind, fn)
	}
	return w.b.listen(w.b.window, kind, fn)
}

type page struct {
	b *binding
}

func (p *page) Listen(kind scrollbar.EventKind, fn func(*scrollbar.Event)) func() {
	return p.b.listen(p.b.document, kind, fn)
}

func (p *page) ScrollMetrics() scrollbar.ScrollMetrics {
	root := p.b.scrollRoot()
	return scrollbar.ScrollMetrics{
		ScrollTop:    root.Get("scrollTop").Float(),
		ScrollHeight: root.Get("scrollHeight").Float(),
		ClientHeight: root.Get("clientHeight").Float(),
	}
}

func (p *page) ScrollTo(top float64) {
	p.b.window.Call("scrollTo", map[string]any{"top": top, "behavior": "auto"})
}

func (p *page) Visible() bool {
	return p.b.document.Get("visibilityState").String() != "hidden"
}

type element struct {
	b    *binding
	node js.Value
}

func (e *element) Listen(kind scrollbar.EventKind, fn func(*scrollbar.Event)) func() {
	return e.b.listen(e.node, kind, fn)
}

func (e *element) ClientHeight() float64 {
	return e.node.Get("clientHeight").Float()
}

func (e *element) BoundingTop() float64 {
	return e.node.Call("getBoundingClientRect").Get("top").Float()
}

type thumbElement struct {
	element
}

func (t *thumbElement) SetHeight(v float64) {
	t.node.Get("style").Set("height", px(v))
}

func (t *thumbElement) SetTranslateY(v float64) {
	t.node.Get("style").Set("transform", "translate3d(0, "+px(v)+", 0)")
}

func (t *thumbElement) SetDragging(on bool) {
	t.node.Get("classList").Call("toggle", t.b.sel.DraggingClass, on)
}

func (t *thumbElement) SetPointerCapture(id scrollbar.PointerID) {
	call(t.node, "setPointerCapture", int(id))
}

func (t *thumbElement) ReleasePointerCapture(id scrollbar.PointerID) {
	if !t.node.Call("hasPointerCapture", int(id)).Bool() {
		return
	}
	call(t.node, "releasePointerCapture", int(id))
}

type indicator struct {
	node js.Value
}

func (i indicator) SetVisible(visible bool) {
	display := ""
	if !visible {
		display = "none"
	}
	i.node.Get("style").Set("display", display)
}

// frames schedules one-shot requestAnimationFrame callbacks.
type frames struct {
	window js.Value
}

func (f frames) RequestFrame(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	f.window.Call("requestAnimationFrame", cb)
}

type pointerEnv struct {
	b *binding
}

func (p pointerEnv) FinePointer() bool {
	mm := p.b.window.Get("matchMedia")
	if mm.Type() != js.TypeFunction {
		return true
	}
	return p.b.window.Call("matchMedia", "(pointer: fine)").Get("matches").Bool()
}

// OptedIn checks the opt-in class on <body> and <html>.
func (p pointerEnv) OptedIn() bool {
	for _, node := range []js.Value{p.b.document.Get("body"), p.b.document.Get("documentElement")} {
		if node.Truthy() && node.Get("classList").Call("contains", p.b.sel.OptInClass).Bool() {
			return true
		}
	}
	return false
}
