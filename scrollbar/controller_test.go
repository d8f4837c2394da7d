// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scrollbar_test

import (
	"math"
	"testing"

	"github.com/framegrace/texelscroll/scrollbar"
	"github.com/framegrace/texelscroll/scrollbar/fakehost"
)

func attach(t *testing.T, h *fakehost.Host) *scrollbar.Controller {
	t.Helper()
	c := scrollbar.New(h.Scrollbar(), scrollbar.DefaultOptions())
	if !c.Attach() {
		t.Fatalf("expected controller to attach")
	}
	return c
}

func TestAttachSetsThumbHeightAndPosition(t *testing.T) {
	h := fakehost.New()
	c := attach(t, h)

	if got := h.Thumb.Height(); got != 67 {
		t.Fatalf("thumb height = %v, want 67", got)
	}
	if !c.Enabled() {
		t.Fatalf("expected enabled for 3000/1000 document")
	}
	if got := h.Thumb.TranslateY(); got != 0 {
		t.Fatalf("initial translateY = %v, want 0", got)
	}
	if got := c.Layout().MaxThumbTop(); got != 833 {
		t.Fatalf("MaxThumbTop = %v, want 833", got)
	}
}

func TestScrollRendersOnNextFrame(t *testing.T) {
	h := fakehost.New()
	c := attach(t, h)

	h.Scroll(1000)
	if got := h.Thumb.TranslateY(); got != 0 {
		t.Fatalf("thumb moved before frame: %v", got)
	}
	h.Frames.Flush()
	if got := h.Thumb.TranslateY(); got != 416.5 {
		t.Fatalf("translateY = %v, want 416.5", got)
	}
	if got := c.ThumbTop(); got != 416.5 {
		t.Fatalf("ThumbTop = %v, want 416.5", got)
	}
}

func TestScrollEventsCoalesceIntoOneFrame(t *testing.T) {
	h := fakehost.New()
	c := attach(t, h)
	before := c.Stats()

	for i := 1; i <= 25; i++ {
		h.Scroll(float64(i * 40))
	}
	h.Resize(3000, 1000, 900)
	h.SetHidden(false)

	if got := h.Frames.Pending(); got != 1 {
		t.Fatalf("pending frames = %d, want 1", got)
	}
	h.Frames.Flush()
	after := c.Stats()
	if got := after.FramesRendered - before.FramesRendered; got != 1 {
		t.Fatalf("rendered %d frames, want 1", got)
	}
	if got := h.Thumb.TranslateY(); got != 416.5 {
		t.Fatalf("translateY = %v, want 416.5", got)
	}

	h.Scroll(0)
	if got := h.Frames.Pending(); got != 1 {
		t.Fatalf("expected a new frame after the previous one fired, got %d", got)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	h := fakehost.New()
	c := attach(t, h)
	h.Scroll(1234)
	h.Frames.Flush()

	first := h.Thumb.TranslateY()
	c.RenderThumb()
	c.RenderThumb()
	if got := h.Thumb.TranslateY(); got != first {
		t.Fatalf("translateY changed from %v to %v", first, got)
	}
}

func TestHiddenPageSkipsRender(t *testing.T) {
	h := fakehost.New()
	c := attach(t, h)

	h.SetHidden(true)
	h.Frames.Flush()
	h.Scroll(1000)
	h.Frames.Flush()
	if got := h.Thumb.TranslateY(); got != 0 {
		t.Fatalf("hidden page rendered thumb at %v", got)
	}

	h.SetHidden(false)
	h.Frames.Flush()
	if got := h.Thumb.TranslateY(); got != 416.5 {
		t.Fatalf("translateY after becoming visible = %v, want 416.5", got)
	}
	if c.State() != scrollbar.Idle {
		t.Fatalf("state = %v, want idle", c.State())
	}
}

func TestNonScrollableDocumentDisables(t *testing.T) {
	h := fakehost.New()
	h.SetLayout(1000, 1000, 900)
	c := attach(t, h)

	if c.Enabled() {
		t.Fatalf("expected disabled when scrollHeight == clientHeight")
	}
	if h.Indicator.Visible {
		t.Fatalf("expected indicator hidden")
	}

	ev := h.PointerDown(1, 500)
	if !ev.DefaultPrevented {
		t.Fatalf("expected pointerdown default prevented")
	}
	if got := h.Doc.ScrollCalls(); got != 0 {
		t.Fatalf("disabled widget scrolled %d times", got)
	}
	c.RenderThumb()
	if got := h.Thumb.TranslateY(); got != 0 {
		t.Fatalf("disabled widget moved thumb to %v", got)
	}

	h.Resize(3000, 1000, 900)
	h.Frames.Flush()
	if !c.Enabled() || !h.Indicator.Visible {
		t.Fatalf("expected widget to come back once content overflows")
	}
}

func TestTrackShorterThanThumb(t *testing.T) {
	h := fakehost.New()
	h.SetLayout(3000, 1000, 40)
	c := attach(t, h)

	if got := c.Layout().MaxThumbTop(); got != 1 {
		t.Fatalf("MaxThumbTop = %v, want 1", got)
	}
	h.Scroll(2000)
	h.Frames.Flush()
	if got := h.Thumb.TranslateY(); got != 1 {
		t.Fatalf("translateY = %v, want 1", got)
	}
}

func TestTrackClickJumps(t *testing.T) {
	h := fakehost.New()
	c := attach(t, h)

	ev := h.PointerDown(1, 500)
	if !ev.DefaultPrevented {
		t.Fatalf("expected pointerdown default prevented")
	}
	if c.State() != scrollbar.Idle {
		t.Fatalf("jump entered %v", c.State())
	}
	if got := c.DragOffset(); got != 33.5 {
		t.Fatalf("jump offset = %v, want 33.5", got)
	}

	want := 466.5 / 833 * 2000
	if got := h.Doc.ScrollTop(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("scrollTop = %v, want %v", got, want)
	}
	h.Frames.Flush()
	if got := h.Thumb.TranslateY(); math.Abs(got-466.5) > 1e-9 {
		t.Fatalf("translateY = %v, want 466.5", got)
	}
}

func TestTrackClickUsesCachedTrackTop(t *testing.T) {
	h := fakehost.New()
	h.Track.SetTop(100)
	attach(t, h)

	h.PointerDown(1, 600)
	want := 466.5 / 833 * 2000
	if got := h.Doc.ScrollTop(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("scrollTop = %v, want %v", got, want)
	}
}

func TestDragScrollsDocument(t *testing.T) {
	h := fakehost.New()
	c := attach(t, h)

	h.PointerDown(7, 10)
	if c.State() != scrollbar.Dragging {
		t.Fatalf("state = %v, want dragging", c.State())
	}
	if !h.Thumb.Dragging() || !h.Thumb.HasCapture(7) {
		t.Fatalf("expected dragging class and pointer capture")
	}
	if got := c.DragOffset(); got != 10 {
		t.Fatalf("drag offset = %v, want 10", got)
	}

	reads := h.Track.LayoutReads()
	h.PointerMove(7, 426.5)
	h.PointerMove(7, 426.5)
	if got := h.Track.LayoutReads(); got != reads {
		t.Fatalf("drag moves read track layout %d times", got-reads)
	}
	if got := h.Doc.ScrollTop(); got != 1000 {
		t.Fatalf("scrollTop = %v, want 1000", got)
	}

	h.PointerMove(7, 5000)
	if got := h.Doc.ScrollTop(); got != 2000 {
		t.Fatalf("scrollTop past track end = %v, want 2000", got)
	}
	h.PointerMove(7, -300)
	if got := h.Doc.ScrollTop(); got != 0 {
		t.Fatalf("scrollTop above track = %v, want 0", got)
	}

	h.PointerUp(7, 0)
	if c.State() != scrollbar.Idle {
		t.Fatalf("state after pointerup = %v, want idle", c.State())
	}
	if h.Thumb.Dragging() || h.Thumb.HasCapture(7) {
		t.Fatalf("expected dragging class and capture cleared")
	}
	if got := c.DragOffset(); got != 0 {
		t.Fatalf("drag offset after pointerup = %v, want 0", got)
	}
}

func TestWindowPointerUpEndsDragWithoutCapture(t *testing.T) {
	h := fakehost.New()
	c := attach(t, h)
	h.Thumb.RefuseCapture = true

	h.PointerDown(4, 10)
	if c.State() != scrollbar.Dragging || h.Thumb.HasCapture(4) {
		t.Fatalf("state = %v capture = %v, want dragging without capture", c.State(), h.Thumb.HasCapture(4))
	}
	for _, kind := range []scrollbar.EventKind{scrollbar.PointerUp, scrollbar.PointerCancel} {
		if got := h.Window.Count(kind); got != 1 {
			t.Fatalf("window %v listeners during drag = %d, want 1", kind, got)
		}
	}

	// Released over the track, away from the thumb.
	h.PointerUp(4, 600)
	if c.State() != scrollbar.Idle {
		t.Fatalf("state after release off the thumb = %v, want idle", c.State())
	}
	if h.Thumb.Dragging() {
		t.Fatalf("dragging class left on after release")
	}
	for _, kind := range []scrollbar.EventKind{scrollbar.PointerUp, scrollbar.PointerCancel} {
		if got := h.Window.Count(kind); got != 0 {
			t.Fatalf("window %v listeners after drag = %d, want 0", kind, got)
		}
	}

	// The next press on the thumb starts a fresh drag.
	h.Thumb.RefuseCapture = false
	h.PointerDown(5, 10)
	if c.State() != scrollbar.Dragging || !h.Thumb.HasCapture(5) {
		t.Fatalf("second press did not start a captured drag")
	}
}

func TestWindowPointerUpIgnoresOtherPointers(t *testing.T) {
	h := fakehost.New()
	c := attach(t, h)

	h.PointerDown(1, 10)
	h.Window.Dispatch(&scrollbar.Event{Kind: scrollbar.PointerUp, PointerID: 2})
	if c.State() != scrollbar.Dragging {
		t.Fatalf("foreign pointerup ended the drag")
	}
	h.Window.Dispatch(&scrollbar.Event{Kind: scrollbar.PointerCancel, PointerID: 1})
	if c.State() != scrollbar.Idle {
		t.Fatalf("window pointercancel left state %v", c.State())
	}
}

func TestDragIgnoresOtherPointers(t *testing.T) {
	h := fakehost.New()
	c := attach(t, h)

	h.PointerDown(1, 10)
	h.Thumb.SetPointerCapture(2)
	h.PointerMove(2, 426.5)
	if got := h.Doc.ScrollTop(); got != 0 {
		t.Fatalf("foreign pointer scrolled to %v", got)
	}
	h.PointerUp(2, 426.5)
	if c.State() != scrollbar.Dragging {
		t.Fatalf("foreign pointerup ended drag")
	}
}

func TestPointerCancelEndsDragAndRemovesListeners(t *testing.T) {
	h := fakehost.New()
	c := attach(t, h)

	h.PointerDown(3, 10)
	for _, kind := range []scrollbar.EventKind{scrollbar.PointerMove, scrollbar.PointerUp, scrollbar.PointerCancel, scrollbar.LostPointerCapture} {
		if got := h.Thumb.Count(kind); got != 1 {
			t.Fatalf("%v listeners during drag = %d, want 1", kind, got)
		}
	}
	h.PointerMove(3, 426.5)
	h.Frames.Flush()

	h.PointerCancel(3)
	if c.State() != scrollbar.Idle {
		t.Fatalf("state after cancel = %v, want idle", c.State())
	}
	if got := c.DragOffset(); got != 0 {
		t.Fatalf("drag offset after cancel = %v, want 0", got)
	}
	for _, kind := range []scrollbar.EventKind{scrollbar.PointerMove, scrollbar.PointerUp, scrollbar.PointerCancel, scrollbar.LostPointerCapture} {
		if got := h.Thumb.Count(kind); got != 0 {
			t.Fatalf("%v listeners after cancel = %d, want 0", kind, got)
		}
	}

	fired := h.Thumb.Fired(scrollbar.PointerMove)
	scrolls := h.Doc.ScrollCalls()
	h.PointerMove(3, 450)
	h.PointerMove(3, 100)
	if got := h.Thumb.Fired(scrollbar.PointerMove); got != fired {
		t.Fatalf("pointermove listener fired %d times after cancel", got-fired)
	}
	if got := h.Doc.ScrollCalls(); got != scrolls {
		t.Fatalf("document scrolled after cancel")
	}
}

func TestLostCaptureEndsDrag(t *testing.T) {
	h := fakehost.New()
	c := attach(t, h)

	h.PointerDown(4, 10)
	h.LoseCapture(4)
	if c.State() != scrollbar.Idle {
		t.Fatalf("state after lost capture = %v, want idle", c.State())
	}
	if h.Thumb.Dragging() {
		t.Fatalf("expected dragging class cleared")
	}
	if got := h.Thumb.Count(scrollbar.PointerMove); got != 0 {
		t.Fatalf("pointermove listeners = %d, want 0", got)
	}
}

func TestRepeatedDragsDoNotLeakListeners(t *testing.T) {
	h := fakehost.New()
	attach(t, h)

	for i := 0; i < 5; i++ {
		h.PointerDown(1, h.Thumb.TranslateY()+5)
		h.PointerMove(1, 300)
		h.PointerUp(1, 300)
		h.Frames.Flush()
	}
	if got := h.Thumb.Count(scrollbar.PointerMove); got != 0 {
		t.Fatalf("pointermove listeners = %d, want 0", got)
	}
	if got := h.Thumb.Count(scrollbar.PointerDown); got != 1 {
		t.Fatalf("pointerdown listeners = %d, want 1", got)
	}
}

func TestCoarsePointerWithoutOptInDisables(t *testing.T) {
	h := fakehost.New()
	h.Pointer.Fine = false
	c := scrollbar.New(h.Scrollbar(), scrollbar.DefaultOptions())

	if c.Attach() {
		t.Fatalf("expected attach to fail on coarse pointer")
	}
	if c.Supported() || c.Enabled() {
		t.Fatalf("expected unsupported and disabled")
	}
	if h.Indicator.Visible {
		t.Fatalf("expected indicator hidden")
	}
	if got := h.Track.Count(scrollbar.PointerDown); got != 0 {
		t.Fatalf("track listeners installed: %d", got)
	}
	h.PointerDown(1, 500)
	if got := h.Doc.ScrollCalls(); got != 0 {
		t.Fatalf("disabled widget scrolled")
	}
}

func TestCoarsePointerWithOptInAttaches(t *testing.T) {
	h := fakehost.New()
	h.Pointer.Fine = false
	h.Pointer.OptIn = true
	c := attach(t, h)
	if !c.Enabled() {
		t.Fatalf("expected opted-in coarse pointer to be enabled")
	}
}

func TestCoarsePointerCheckCanBeSkipped(t *testing.T) {
	h := fakehost.New()
	h.Pointer.Fine = false
	opts := scrollbar.DefaultOptions()
	opts.RequireFinePointer = false
	if !scrollbar.New(h.Scrollbar(), opts).Attach() {
		t.Fatalf("expected attach without pointer check")
	}
}

func TestMissingElementsAreInert(t *testing.T) {
	h := fakehost.New()
	host := h.Scrollbar()
	host.Thumb = nil
	c := scrollbar.New(host, scrollbar.DefaultOptions())
	if c.Attach() {
		t.Fatalf("expected inert controller")
	}
	c.RenderThumb()
	c.ScheduleThumbSync()
	c.ScrollToThumbPosition(500)
	c.Detach()
	if got := h.Track.Count(scrollbar.PointerDown); got != 0 {
		t.Fatalf("inert controller installed listeners")
	}
}

func TestDetachRemovesListeners(t *testing.T) {
	h := fakehost.New()
	c := attach(t, h)

	h.PointerDown(1, 10)
	h.Scroll(500)
	c.Detach()

	if c.State() != scrollbar.Idle {
		t.Fatalf("detach left state %v", c.State())
	}
	for _, kind := range []scrollbar.EventKind{scrollbar.Scroll, scrollbar.Resize, scrollbar.Load, scrollbar.VisibilityChange} {
		if got := h.Window.Count(kind); got != 0 {
			t.Fatalf("%v listeners after detach = %d", kind, got)
		}
	}
	rendered := c.Stats().FramesRendered
	h.Frames.Flush()
	if got := c.Stats().FramesRendered; got != rendered {
		t.Fatalf("stale frame rendered after detach")
	}
}

func TestIndependentInstances(t *testing.T) {
	a := fakehost.New()
	b := fakehost.New()
	ca := attach(t, a)
	cb := attach(t, b)

	a.PointerDown(1, 10)
	if cb.State() != scrollbar.Idle {
		t.Fatalf("drag on one instance affected the other")
	}
	a.PointerMove(1, 426.5)
	if b.Doc.ScrollTop() != 0 {
		t.Fatalf("drag on one instance scrolled the other")
	}
	if ca.State() != scrollbar.Dragging {
		t.Fatalf("state = %v, want dragging", ca.State())
	}
}

func TestResizeReadsNewTrackHeight(t *testing.T) {
	h := fakehost.New()
	c := attach(t, h)
	h.Scroll(1000)
	h.Frames.Flush()

	h.Resize(3000, 1000, 467)
	h.Frames.Flush()
	if got := c.Layout().MaxThumbTop(); got != 400 {
		t.Fatalf("MaxThumbTop = %v, want 400", got)
	}
	if got := h.Thumb.TranslateY(); got != 200 {
		t.Fatalf("translateY = %v, want 200", got)
	}
}
