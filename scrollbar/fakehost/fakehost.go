// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/fakehost/fakehost.go
// Summary: In-memory host for driving a scrollbar controller without a browser.
// Usage: Tests and the headless simulator set layout values, dispatch pointer
// events and flush animation frames by hand.

package fakehost

import (
	"github.com/framegrace/texelscroll/scrollbar"
)

// Host is a complete in-memory page: a document, a window, a track with a
// thumb inside it, an indicator and a manual frame queue.
type Host struct {
	Window    *Target
	Doc       *Document
	Track     *Element
	Thumb     *Thumb
	Indicator *Indicator
	Frames    *FrameQueue
	Pointer   *PointerEnv
}

// New returns a page with a 1000px viewport, a 3000px document and a 900px
// track at the top of the viewport.
func New() *Host {
	h := &Host{
		Window:    newTarget(),
		Indicator: &Indicator{Visible: true},
		Frames:    &FrameQueue{},
		Pointer:   &PointerEnv{Fine: true},
	}
	h.Doc = &Document{Target: newTarget(), window: h.Window, visible: true, scrollHeight: 3000, clientHeight: 1000}
	h.Track = &Element{Target: newTarget(), height: 900}
	h.Thumb = &Thumb{Element: Element{Target: newTarget()}, track: h.Track, captured: make(map[scrollbar.PointerID]bool)}
	return h
}

// Scrollbar exposes the page as controller collaborators.
func (h *Host) Scrollbar() scrollbar.Host {
	return scrollbar.Host{
		Document:  h.Doc,
		Window:    h.Window,
		Track:     h.Track,
		Thumb:     h.Thumb,
		Indicator: h.Indicator,
		Frames:    h.Frames,
		Pointer:   h.Pointer,
	}
}

// SetLayout replaces document and track sizes without dispatching events.
func (h *Host) SetLayout(scrollHeight, clientHeight, trackHeight float64) {
	h.Doc.scrollHeight = scrollHeight
	h.Doc.clientHeight = clientHeight
	h.Track.height = trackHeight
	h.Doc.scrollTop = scrollbar.Clamp(h.Doc.scrollTop, 0, h.Doc.maxScrollTop())
}

// Resize applies a new layout and dispatches a window resize.
func (h *Host) Resize(scrollHeight, clientHeight, trackHeight float64) {
	h.SetLayout(scrollHeight, clientHeight, trackHeight)
	h.Window.Dispatch(&scrollbar.Event{Kind: scrollbar.Resize})
}

// Load dispatches the window load event.
func (h *Host) Load() {
	h.Window.Dispatch(&scrollbar.Event{Kind: scrollbar.Load})
}

// SetHidden flips page visibility and dispatches visibilitychange.
func (h *Host) SetHidden(hidden bool) {
	h.Doc.visible = !hidden
	h.Window.Dispatch(&scrollbar.Event{Kind: scrollbar.VisibilityChange})
}

// Scroll moves the document as a wheel or keyboard scroll would.
func (h *Host) Scroll(top float64) {
	h.Doc.ScrollTo(top)
}

// PointerDown presses pointer id at viewport y. Presses on the thumb are
// dispatched to the thumb and then bubble to the track.
func (h *Host) PointerDown(id scrollbar.PointerID, y float64) *scrollbar.Event {
	switch {
	case h.Thumb.contains(y):
		ev := &scrollbar.Event{Kind: scrollbar.PointerDown, PointerID: id, ClientY: y, Target: h.Thumb}
		h.Thumb.Dispatch(ev)
		h.Track.Dispatch(ev)
		return ev
	case h.Track.contains(y):
		ev := &scrollbar.Event{Kind: scrollbar.PointerDown, PointerID: id, ClientY: y, Target: h.Track}
		h.Track.Dispatch(ev)
		return ev
	}
	return &scrollbar.Event{Kind: scrollbar.PointerDown, PointerID: id, ClientY: y}
}

// PointerMove moves pointer id. Captured pointers always target the thumb.
// Move, up and cancel events bubble to the window last.
func (h *Host) PointerMove(id scrollbar.PointerID, y float64) *scrollbar.Event {
	return h.pointerEvent(scrollbar.PointerMove, id, y)
}

// PointerUp releases pointer id. Capture is released implicitly afterwards.
func (h *Host) PointerUp(id scrollbar.PointerID, y float64) *scrollbar.Event {
	ev := h.pointerEvent(scrollbar.PointerUp, id, y)
	h.Thumb.ReleasePointerCapture(id)
	return ev
}

// PointerCancel cancels pointer id, as a browser does when it takes over a
// touch for panning.
func (h *Host) PointerCancel(id scrollbar.PointerID) *scrollbar.Event {
	ev := h.pointerEvent(scrollbar.PointerCancel, id, 0)
	h.Thumb.ReleasePointerCapture(id)
	return ev
}

// LoseCapture drops capture for id without an up or cancel.
func (h *Host) LoseCapture(id scrollbar.PointerID) {
	if !h.Thumb.captured[id] {
		return
	}
	delete(h.Thumb.captured, id)
	h.Thumb.Dispatch(&scrollbar.Event{Kind: scrollbar.LostPointerCapture, PointerID: id, Target: h.Thumb})
}

func (h *Host) pointerEvent(kind scrollbar.EventKind, id scrollbar.PointerID, y float64) *scrollbar.Event {
	ev := &scrollbar.Event{Kind: kind, PointerID: id, ClientY: y}
	switch {
	case h.Thumb.captured[id], h.Thumb.contains(y):
		ev.Target = h.Thumb
		h.Thumb.Dispatch(ev)
	case h.Track.contains(y):
		ev.Target = h.Track
		h.Track.Dispatch(ev)
	}
	h.Window.Dispatch(ev)
	return ev
}

// Target is a listener registry.
type Target = scrollbar.Listeners

func newTarget() *Target { return &Target{} }

// Document is the scrolling root.
type Document struct {
	*Target
	window       *Target
	scrollTop    float64
	scrollHeight float64
	clientHeight float64
	visible      bool
	scrollCalls  int
}

func (d *Document) maxScrollTop() float64 {
	if d.scrollHeight <= d.clientHeight {
		return 0
	}
	return d.scrollHeight - d.clientHeight
}

// ScrollMetrics implements scrollbar.Document.
func (d *Document) ScrollMetrics() scrollbar.ScrollMetrics {
	return scrollbar.ScrollMetrics{
		ScrollTop:    d.scrollTop,
		ScrollHeight: d.scrollHeight,
		ClientHeight: d.clientHeight,
	}
}

// ScrollTo clamps top into range and dispatches a window scroll when the
// position changes.
func (d *Document) ScrollTo(top float64) {
	d.scrollCalls++
	top = scrollbar.Clamp(top, 0, d.maxScrollTop())
	if top == d.scrollTop {
		return
	}
	d.scrollTop = top
	d.window.Dispatch(&scrollbar.Event{Kind: scrollbar.Scroll})
}

// Visible implements scrollbar.Document.
func (d *Document) Visible() bool { return d.visible }

// ScrollTop returns the current scroll position.
func (d *Document) ScrollTop() float64 { return d.scrollTop }

// ScrollCalls counts ScrollTo invocations, including no-op ones.
func (d *Document) ScrollCalls() int { return d.scrollCalls }

// Element is a block with a height and a viewport-relative top.
type Element struct {
	*Target
	top    float64
	height float64
	reads  int
}

// ClientHeight implements scrollbar.Element.
func (e *Element) ClientHeight() float64 { return e.height }

// BoundingTop implements scrollbar.Element and counts layout reads.
func (e *Element) BoundingTop() float64 {
	e.reads++
	return e.top
}

// SetTop moves the element within the viewport.
func (e *Element) SetTop(top float64) { e.top = top }

// LayoutReads counts BoundingTop calls.
func (e *Element) LayoutReads() int { return e.reads }

func (e *Element) contains(y float64) bool {
	return y >= e.top && y < e.top+e.height
}

// Thumb is positioned inside its track by a vertical translation.
type Thumb struct {
	Element
	track      *Element
	translateY float64
	dragging   bool
	captured   map[scrollbar.PointerID]bool

	// RefuseCapture makes SetPointerCapture a no-op, as when the pointer
	// was already released before the call landed.
	RefuseCapture bool
}

// BoundingTop is the track top plus the applied translation.
func (t *Thumb) BoundingTop() float64 {
	t.reads++
	return t.track.top + t.translateY
}

func (t *Thumb) contains(y float64) bool {
	top := t.track.top + t.translateY
	return y >= top && y < top+t.height
}

// SetHeight implements scrollbar.Thumb.
func (t *Thumb) SetHeight(px float64) { t.height = px }

// SetTranslateY implements scrollbar.Thumb.
func (t *Thumb) SetTranslateY(px float64) { t.translateY = px }

// SetDragging implements scrollbar.Thumb.
func (t *Thumb) SetDragging(on bool) { t.dragging = on }

// SetPointerCapture implements scrollbar.Thumb.
func (t *Thumb) SetPointerCapture(id scrollbar.PointerID) {
	if t.RefuseCapture {
		return
	}
	t.captured[id] = true
}

// ReleasePointerCapture implements scrollbar.Thumb. Releasing a held capture
// dispatches lostpointercapture.
func (t *Thumb) ReleasePointerCapture(id scrollbar.PointerID) {
	if !t.captured[id] {
		return
	}
	delete(t.captured, id)
	t.Dispatch(&scrollbar.Event{Kind: scrollbar.LostPointerCapture, PointerID: id, Target: t})
}

// Height returns the inline height.
func (t *Thumb) Height() float64 { return t.height }

// TranslateY returns the inline vertical translation.
func (t *Thumb) TranslateY() float64 { return t.translateY }

// Dragging reports whether the dragging class is set.
func (t *Thumb) Dragging() bool { return t.dragging }

// HasCapture reports whether id is captured by the thumb.
func (t *Thumb) HasCapture(id scrollbar.PointerID) bool { return t.captured[id] }

// Indicator records visibility toggles.
type Indicator struct {
	Visible bool
	Toggles int
}

// SetVisible implements scrollbar.Indicator.
func (i *Indicator) SetVisible(visible bool) {
	i.Visible = visible
	i.Toggles++
}

// FrameQueue holds animation-frame callbacks until Flush.
type FrameQueue struct {
	queue []func()
}

// RequestFrame implements scrollbar.FrameScheduler.
func (q *FrameQueue) RequestFrame(fn func()) {
	q.queue = append(q.queue, fn)
}

// Pending returns the number of queued callbacks.
func (q *FrameQueue) Pending() int { return len(q.queue) }

// Flush runs the callbacks queued before the call. Callbacks requested
// while flushing wait for the next Flush, as in a browser.
func (q *FrameQueue) Flush() int {
	queued := q.queue
	q.queue = nil
	for _, fn := range queued {
		fn()
	}
	return len(queued)
}

// PointerEnv answers the pointer capability checks.
type PointerEnv struct {
	Fine  bool
	OptIn bool
}

// FinePointer implements scrollbar.PointerEnvironment.
func (p *PointerEnv) FinePointer() bool { return p.Fine }

// OptedIn implements scrollbar.PointerEnvironment.
func (p *PointerEnv) OptedIn() bool { return p.OptIn }
