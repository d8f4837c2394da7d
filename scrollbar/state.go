// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/state.go
// Summary: Idle/Dragging state machine and its named transitions.

package scrollbar

import "log"

// State is the interaction state of a controller.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// dragSession holds everything scoped to one drag.
type dragSession struct {
	pointer PointerID
	offset  float64 // pointer Y minus thumb top at drag start
	remove  []func()
}

// onThumbPointerDown: Idle -> Dragging.
func (c *Controller) onThumbPointerDown(ev *Event) {
	ev.PreventDefault()
	if !c.enabled || c.state == Dragging {
		return
	}
	c.beginDrag(ev.PointerID, ev.ClientY)
}

// onTrackPointerDown: Idle -> Idle, jumping the thumb under the pointer.
func (c *Controller) onTrackPointerDown(ev *Event) {
	if ev.Target == any(c.thumb) {
		return
	}
	ev.PreventDefault()
	if !c.enabled || c.state == Dragging {
		return
	}
	c.jump(ev.ClientY)
}

func (c *Controller) beginDrag(id PointerID, pointerY float64) {
	c.CacheTrackBounds()
	c.thumb.SetPointerCapture(id)

	c.session = dragSession{
		pointer: id,
		offset:  pointerY - c.thumb.BoundingTop(),
	}
	c.dragOffset = c.session.offset
	c.state = Dragging
	c.thumb.SetDragging(true)

	c.session.remove = []func(){
		c.thumb.Listen(PointerMove, c.onSessionMove),
		c.thumb.Listen(PointerUp, c.onSessionEnd),
		c.thumb.Listen(PointerCancel, c.onSessionEnd),
		c.thumb.Listen(LostPointerCapture, c.onSessionEnd),
		// Capture can fail silently; a release anywhere still ends the drag.
		c.window.Listen(PointerUp, c.onSessionEnd),
		c.window.Listen(PointerCancel, c.onSessionEnd),
	}
}

func (c *Controller) onSessionMove(ev *Event) {
	if c.state != Dragging || ev.PointerID != c.session.pointer {
		return
	}
	ev.PreventDefault()
	c.dragTo(ev.ClientY)
}

func (c *Controller) onSessionEnd(ev *Event) {
	if c.state != Dragging || ev.PointerID != c.session.pointer {
		return
	}
	c.endDrag(ev.Kind != LostPointerCapture)
}

// dragTo: Dragging -> Dragging.
func (c *Controller) dragTo(pointerY float64) {
	c.ScrollToThumbPosition(pointerY)
}

// endDrag: Dragging -> Idle. Capture is already gone when the platform
// reported its loss.
func (c *Controller) endDrag(release bool) {
	if c.state != Dragging {
		return
	}
	session := c.session
	c.session = dragSession{}
	c.dragOffset = 0
	c.state = Idle

	for _, remove := range session.remove {
		remove()
	}
	c.thumb.SetDragging(false)
	if release {
		c.thumb.ReleasePointerCapture(session.pointer)
	}
}

// jump centers the thumb under the pointer without entering Dragging.
func (c *Controller) jump(pointerY float64) {
	c.CacheTrackBounds()
	c.dragOffset = c.layout.ThumbHeight / 2
	c.ScrollToThumbPosition(pointerY)
	if c.opts.Debug {
		log.Printf("[SCROLLBAR] Jump: pointerY=%.1f offset=%.1f target=%.1f", pointerY, c.dragOffset, c.stats.LastScrollTarget)
	}
}
