// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/controller.go
// Summary: Controller keeps a custom thumb in sync with document scroll.
// Usage: scrollbar.New(host, opts).Attach() once per track/thumb pair.
// Not safe for concurrent use; the host serializes events and frames.

package scrollbar

import "log"

// Stats counts controller work. Useful for asserting coalescing.
type Stats struct {
	FramesRequested  int
	FramesRendered   int
	ScrollCommands   int
	LastScrollTarget float64
}

// Controller binds one track and thumb to a document.
type Controller struct {
	doc       Document
	window    EventTarget
	track     Track
	thumb     Thumb
	indicator Indicator
	frames    FrameScheduler
	pointer   PointerEnvironment
	opts      Options

	layout     LayoutSnapshot
	enabled    bool
	thumbTop   float64
	dragOffset float64

	state   State
	session dragSession

	framePending bool
	attached     bool
	unsupported  bool
	listeners    []func()

	indicatorKnown bool
	indicatorShown bool

	stats Stats
}

// New creates a controller for host. A host missing its document, track or
// thumb yields an inert controller whose Attach reports false.
func New(host Host, opts Options) *Controller {
	window := host.Window
	if window == nil && host.Document != nil {
		window = host.Document
	}
	opts = opts.normalized()
	return &Controller{
		doc:       host.Document,
		window:    window,
		track:     host.Track,
		thumb:     host.Thumb,
		indicator: host.Indicator,
		frames:    host.Frames,
		pointer:   host.Pointer,
		opts:      opts,
		layout:    LayoutSnapshot{ThumbHeight: opts.ThumbHeight},
	}
}

// Attach installs the persistent listeners and renders the initial position.
// It reports whether the widget is live.
func (c *Controller) Attach() bool {
	if c.attached {
		return true
	}
	if c.doc == nil || c.track == nil || c.thumb == nil {
		log.Printf("[SCROLLBAR] Missing track or thumb, scrollbar inactive")
		return false
	}
	if c.opts.RequireFinePointer && c.pointer != nil && !c.pointer.FinePointer() && !c.pointer.OptedIn() {
		c.unsupported = true
		c.enabled = false
		c.showIndicator(false)
		log.Printf("[SCROLLBAR] Coarse pointer without opt-in, scrollbar disabled")
		return false
	}

	c.attached = true
	c.listeners = append(c.listeners,
		c.thumb.Listen(PointerDown, c.onThumbPointerDown),
		c.track.Listen(PointerDown, c.onTrackPointerDown),
		c.window.Listen(Scroll, c.onScroll),
		c.window.Listen(Resize, c.onResize),
		c.window.Listen(Load, c.onResize),
		c.window.Listen(VisibilityChange, c.onScroll),
	)

	c.SetThumbSize()
	c.CacheTrackBounds()
	c.RefreshScrollBounds()
	c.RenderThumb()
	return true
}

// Detach ends any drag and removes every listener the controller installed.
func (c *Controller) Detach() {
	if !c.attached {
		return
	}
	c.endDrag(true)
	for _, remove := range c.listeners {
		remove()
	}
	c.listeners = nil
	c.attached = false
	c.framePending = false
}

func (c *Controller) onScroll(*Event) { c.ScheduleThumbSync() }

func (c *Controller) onResize(*Event) {
	c.SetThumbSize()
	c.CacheTrackBounds()
	c.ScheduleThumbSync()
}

// RefreshScrollBounds re-reads the document metrics and decides whether the
// widget is usable, hiding the indicator when it is not.
func (c *Controller) RefreshScrollBounds() {
	if c.doc == nil {
		return
	}
	c.layout.ScrollMetrics = c.doc.ScrollMetrics()
	c.enabled = !c.unsupported && c.layout.Scrollable(c.opts.EnableTolerance)
	c.showIndicator(c.enabled)
}

// SetThumbSize forces the thumb to its fixed height and re-reads the track
// height that bounds its travel.
func (c *Controller) SetThumbSize() {
	if c.thumb == nil || c.track == nil {
		return
	}
	c.thumb.SetHeight(c.opts.ThumbHeight)
	c.layout.ThumbHeight = c.opts.ThumbHeight
	c.layout.TrackHeight = c.track.ClientHeight()
}

// CacheTrackBounds snapshots the track's viewport-relative top so drags
// don't query layout on every move.
func (c *Controller) CacheTrackBounds() {
	if c.track == nil {
		return
	}
	c.layout.TrackTop = c.track.BoundingTop()
}

// RenderThumb moves the thumb to match the document. Hidden pages are skipped.
func (c *Controller) RenderThumb() {
	if c.doc == nil || c.thumb == nil || !c.doc.Visible() {
		return
	}
	c.RefreshScrollBounds()
	if !c.enabled {
		return
	}
	c.thumbTop = c.layout.ThumbTop()
	c.thumb.SetTranslateY(c.thumbTop)
	c.stats.FramesRendered++
}

// ScheduleThumbSync requests a render on the next frame. Calls made while a
// frame is pending are folded into it.
func (c *Controller) ScheduleThumbSync() {
	if c.framePending {
		return
	}
	if c.frames == nil {
		c.RenderThumb()
		return
	}
	c.framePending = true
	c.stats.FramesRequested++
	c.frames.RequestFrame(func() {
		if !c.framePending {
			return
		}
		c.framePending = false
		c.RenderThumb()
	})
}

// ScrollToThumbPosition scrolls the document so the thumb's top sits at
// pointerY minus the current drag offset. The jump is immediate.
func (c *Controller) ScrollToThumbPosition(pointerY float64) {
	if !c.enabled || c.doc == nil {
		return
	}
	thumbTop := c.layout.ThumbTopForPointer(pointerY, c.dragOffset)
	c.RefreshScrollBounds()
	target := c.layout.ScrollTopFor(thumbTop)
	c.stats.ScrollCommands++
	c.stats.LastScrollTarget = target
	c.doc.ScrollTo(target)
}

func (c *Controller) showIndicator(visible bool) {
	if c.indicator == nil {
		return
	}
	if c.indicatorKnown && c.indicatorShown == visible {
		return
	}
	c.indicatorKnown = true
	c.indicatorShown = visible
	c.indicator.SetVisible(visible)
}

// State returns the interaction state.
func (c *Controller) State() State { return c.state }

// Enabled reports whether the document is scrollable and the widget live.
func (c *Controller) Enabled() bool { return c.enabled }

// Supported is false when the pointer check disabled the widget.
func (c *Controller) Supported() bool { return !c.unsupported }

// Layout returns the most recent layout snapshot.
func (c *Controller) Layout() LayoutSnapshot { return c.layout }

// ThumbTop returns the last rendered thumb offset.
func (c *Controller) ThumbTop() float64 { return c.thumbTop }

// DragOffset returns the pointer-to-thumb-top offset in use.
func (c *Controller) DragOffset() float64 { return c.dragOffset }

// Stats returns work counters.
func (c *Controller) Stats() Stats { return c.stats }
