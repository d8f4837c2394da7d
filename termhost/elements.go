// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termhost/elements.go
// Summary: Terminal implementations of the scrollbar collaborators.
// Rows are the length unit: the viewport is the screen minus the status
// line, the track is the rightmost column.

package termhost

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelscroll/scrollbar"
)

// page is the scrolling document: wrapped content rows in a fixed viewport.
type page struct {
	scrollbar.Listeners
	v   *Viewer
	top int
	// want is the row last asked for by a scroll. Reloads and resizes clamp
	// top against the current document but leave want alone, so a file that
	// is briefly truncated while being saved comes back at the same row.
	want int
}

func (p *page) ScrollMetrics() scrollbar.ScrollMetrics {
	return scrollbar.ScrollMetrics{
		ScrollTop:    float64(p.top),
		ScrollHeight: float64(p.v.doc.Rows()),
		ClientHeight: float64(p.v.viewportRows()),
	}
}

func (p *page) maxTop() int {
	max := p.v.doc.Rows() - p.v.viewportRows()
	if max < 0 {
		return 0
	}
	return max
}

// ScrollTo rounds to a whole row and dispatches a window scroll on change.
func (p *page) ScrollTo(top float64) {
	row := int(math.Round(top))
	if row > p.maxTop() {
		row = p.maxTop()
	}
	if row < 0 {
		row = 0
	}
	p.want = row
	if row == p.top {
		return
	}
	p.top = row
	p.v.window.Dispatch(&scrollbar.Event{Kind: scrollbar.Scroll})
}

// fit recomputes top from want after the document or viewport changed.
func (p *page) fit() {
	p.top = min(p.want, p.maxTop())
}

func (p *page) Visible() bool { return p.v.focused }

// track is the rightmost screen column above the status line.
type track struct {
	scrollbar.Listeners
	v *Viewer
}

func (t *track) ClientHeight() float64 { return float64(t.v.viewportRows()) }
func (t *track) BoundingTop() float64  { return 0 }

// thumb is a run of block cells inside the track.
type thumb struct {
	scrollbar.Listeners
	v          *Viewer
	height     float64
	translateY float64
	dragging   bool
	captured   bool
	pointer    scrollbar.PointerID
}

func (t *thumb) ClientHeight() float64    { return t.height }
func (t *thumb) BoundingTop() float64     { return t.translateY }
func (t *thumb) SetHeight(px float64)     { t.height = px }
func (t *thumb) SetTranslateY(px float64) { t.translateY = px }
func (t *thumb) SetDragging(on bool)      { t.dragging = on }

func (t *thumb) SetPointerCapture(id scrollbar.PointerID) {
	t.captured = true
	t.pointer = id
}

func (t *thumb) ReleasePointerCapture(id scrollbar.PointerID) {
	if !t.captured || t.pointer != id {
		return
	}
	t.loseCapture()
}

func (t *thumb) loseCapture() {
	if !t.captured {
		return
	}
	t.captured = false
	t.Dispatch(&scrollbar.Event{Kind: scrollbar.LostPointerCapture, PointerID: t.pointer, Target: t})
}

// rows returns the screen rows the thumb covers, [start, end).
func (t *thumb) rows() (int, int) {
	start := int(math.Round(t.translateY))
	return start, start + int(math.Round(t.height))
}

func (t *thumb) contains(y int) bool {
	start, end := t.rows()
	return y >= start && y < end
}

// indicator toggles drawing of the whole bar.
type indicator struct {
	visible bool
}

func (i *indicator) SetVisible(visible bool) { i.visible = visible }

// frameTick and quitTick travel through tcell.EventInterrupt.
type (
	frameTick struct{}
	quitTick  struct{}
)

// frames queues animation-frame callbacks until the event loop drains the
// posted frameTick. Only one tick is in flight at a time.
type frames struct {
	screen tcell.Screen
	queue  []func()
	posted bool
}

func (f *frames) RequestFrame(fn func()) {
	f.queue = append(f.queue, fn)
	if f.posted {
		return
	}
	f.posted = true
	if err := f.screen.PostEvent(tcell.NewEventInterrupt(frameTick{})); err != nil {
		// The queue is full; the next event drains frames anyway.
		f.posted = false
	}
}

// flush runs the callbacks queued before the call.
func (f *frames) flush() int {
	f.posted = false
	queued := f.queue
	f.queue = nil
	for _, fn := range queued {
		fn()
	}
	return len(queued)
}

// pointerEnv reports terminal mouse input as precise unless configured
// otherwise.
type pointerEnv struct {
	fine  bool
	optIn bool
}

func (p pointerEnv) FinePointer() bool { return p.fine }
func (p pointerEnv) OptedIn() bool     { return p.optIn }
