// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termhost/viewer.go
// Summary: Terminal file viewer driven by a scrollbar controller.
// Usage: NewViewer wires a tcell screen to a content.Document; Handle feeds it
// events one at a time and Draw paints the screen.

package termhost

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelscroll/scrollbar"
	"github.com/framegrace/texelscroll/termhost/content"
)

// mousePointer is the only pointer a terminal reports.
const mousePointer scrollbar.PointerID = 1

// Options configure a Viewer.
type Options struct {
	Scrollbar   scrollbar.Options
	ScrollStep  int
	FinePointer bool
	OptIn       bool
	// InitialTop is the first visible row after Start.
	InitialTop int
	// Follow, when set, is reloaded with Content each time it changes.
	Follow  string
	Content content.Options
}

// DefaultOptions returns terminal-sized defaults: a three row thumb.
func DefaultOptions() Options {
	sb := scrollbar.DefaultOptions()
	sb.ThumbHeight = 3
	return Options{
		Scrollbar:   sb,
		ScrollStep:  3,
		FinePointer: true,
	}
}

// Viewer shows a document with a custom scrollbar in the rightmost column.
type Viewer struct {
	screen tcell.Screen
	doc    *content.Document
	opts   Options
	ctrl   *scrollbar.Controller

	window scrollbar.Listeners
	page   *page
	track  *track
	thumb  *thumb
	bar    *indicator
	frames *frames

	width, height int
	focused       bool
	pressed       bool

	trackStyle  tcell.Style
	thumbStyle  tcell.Style
	dragStyle   tcell.Style
	statusStyle tcell.Style
}

// NewViewer builds a viewer over an initialised screen.
func NewViewer(screen tcell.Screen, doc *content.Document, opts Options) *Viewer {
	if opts.ScrollStep <= 0 {
		opts.ScrollStep = 1
	}
	// The controller's own fallback is sized in pixels.
	if opts.Scrollbar.ThumbHeight < 1 {
		opts.Scrollbar.ThumbHeight = DefaultOptions().Scrollbar.ThumbHeight
	}
	v := &Viewer{
		screen:  screen,
		doc:     doc,
		opts:    opts,
		focused: true,
		bar:     &indicator{visible: true},
		frames:  &frames{screen: screen},
	}
	v.page = &page{v: v}
	v.track = &track{v: v}
	v.thumb = &thumb{v: v}

	_, bg, _ := doc.Base.Decompose()
	v.trackStyle = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(bg)
	v.thumbStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(bg)
	v.dragStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(bg)
	v.statusStyle = tcell.StyleDefault.Reverse(true)

	v.width, v.height = screen.Size()
	v.doc.Rewrap(v.contentWidth())

	v.ctrl = scrollbar.New(scrollbar.Host{
		Document:  v.page,
		Window:    &v.window,
		Track:     v.track,
		Thumb:     v.thumb,
		Indicator: v.bar,
		Frames:    v.frames,
		Pointer:   pointerEnv{fine: opts.FinePointer, optIn: opts.OptIn},
	}, opts.Scrollbar)
	return v
}

// Start attaches the controller, restores the initial row and fires the
// load event. It reports whether the scrollbar is active.
func (v *Viewer) Start() bool {
	attached := v.ctrl.Attach()
	if v.opts.InitialTop > 0 {
		v.page.ScrollTo(float64(v.opts.InitialTop))
	}
	if attached {
		v.window.Dispatch(&scrollbar.Event{Kind: scrollbar.Load})
	}
	return attached
}

// Replace swaps in a new version of the document. The row last scrolled to
// is shown again once the document is long enough to reach it.
func (v *Viewer) Replace(doc *content.Document) {
	v.doc = doc
	v.doc.Rewrap(v.contentWidth())
	v.page.fit()
	v.window.Dispatch(&scrollbar.Event{Kind: scrollbar.Resize})
}

// Controller exposes the scrollbar controller.
func (v *Viewer) Controller() *scrollbar.Controller { return v.ctrl }

// Top returns the first visible row.
func (v *Viewer) Top() int { return v.page.top }

// ThumbRows returns the screen rows covered by the thumb, [start, end).
func (v *Viewer) ThumbRows() (int, int) { return v.thumb.rows() }

// TrackColumn is the screen column holding the scrollbar.
func (v *Viewer) TrackColumn() int { return v.width - 1 }

func (v *Viewer) viewportRows() int {
	if v.height <= 1 {
		return 1
	}
	return v.height - 1
}

// contentWidth leaves a gap column and the track column.
func (v *Viewer) contentWidth() int {
	if v.width <= 4 {
		return 2
	}
	return v.width - 2
}

// Handle processes one event. It returns false when the viewer should exit.
func (v *Viewer) Handle(ev tcell.Event) bool {
	switch tev := ev.(type) {
	case *tcell.EventInterrupt:
		switch data := tev.Data().(type) {
		case quitTick:
			return false
		case frameTick:
			v.frames.flush()
		case reloadTick:
			v.Replace(data.doc)
		}
	case *tcell.EventResize:
		w, h := tev.Size()
		v.resize(w, h)
	case *tcell.EventFocus:
		v.setFocused(tev.Focused)
	case *tcell.EventKey:
		switch {
		case tev.Key() == tcell.KeyEscape, tev.Key() == tcell.KeyCtrlC:
			return false
		case tev.Key() == tcell.KeyRune && tev.Rune() == 'q':
			return false
		}
	case *tcell.EventMouse:
		v.handleMouse(tev)
	}
	if len(v.frames.queue) > 0 && !v.frames.posted {
		v.frames.flush()
	}
	return true
}

func (v *Viewer) resize(w, h int) {
	v.width, v.height = w, h
	v.doc.Rewrap(v.contentWidth())
	v.page.fit()
	v.window.Dispatch(&scrollbar.Event{Kind: scrollbar.Resize})
}

func (v *Viewer) setFocused(focused bool) {
	if v.focused == focused {
		return
	}
	v.focused = focused
	if !focused {
		v.pressed = false
		v.thumb.loseCapture()
	}
	v.window.Dispatch(&scrollbar.Event{Kind: scrollbar.VisibilityChange})
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		v.page.ScrollTo(float64(v.page.top - v.opts.ScrollStep))
	case buttons&tcell.WheelDown != 0:
		v.page.ScrollTo(float64(v.page.top + v.opts.ScrollStep))
	case buttons&tcell.Button1 != 0:
		if v.pressed {
			v.pointerMove(y)
			return
		}
		v.pressed = true
		if x == v.TrackColumn() && y < v.viewportRows() {
			v.pointerDown(y)
		}
	default:
		if v.pressed {
			v.pressed = false
			v.pointerUp(y)
		}
	}
}

func (v *Viewer) pointerDown(y int) {
	if v.thumb.contains(y) {
		ev := &scrollbar.Event{Kind: scrollbar.PointerDown, PointerID: mousePointer, ClientY: float64(y), Target: v.thumb}
		v.thumb.Dispatch(ev)
		v.track.Dispatch(ev)
		return
	}
	v.track.Dispatch(&scrollbar.Event{Kind: scrollbar.PointerDown, PointerID: mousePointer, ClientY: float64(y), Target: v.track})
}

func (v *Viewer) pointerMove(y int) {
	if !v.thumb.captured {
		return
	}
	v.thumb.Dispatch(&scrollbar.Event{Kind: scrollbar.PointerMove, PointerID: mousePointer, ClientY: float64(y), Target: v.thumb})
}

// pointerUp reaches the thumb only while it holds capture, then bubbles to
// the window.
func (v *Viewer) pointerUp(y int) {
	ev := &scrollbar.Event{Kind: scrollbar.PointerUp, PointerID: mousePointer, ClientY: float64(y)}
	if v.thumb.captured {
		ev.Target = v.thumb
		v.thumb.Dispatch(ev)
		v.thumb.ReleasePointerCapture(mousePointer)
	}
	v.window.Dispatch(ev)
}

// Draw paints content, scrollbar and status line.
func (v *Viewer) Draw() {
	v.screen.Clear()
	v.drawContent()
	v.drawBar()
	v.drawStatus()
	v.screen.Show()
}

func (v *Viewer) drawContent() {
	width := v.contentWidth()
	for y := 0; y < v.viewportRows(); y++ {
		for x := 0; x < width; x++ {
			v.screen.SetContent(x, y, ' ', nil, v.doc.Base)
		}
		x := 0
		for _, c := range v.doc.Row(v.page.top + y) {
			if x+c.Width > width {
				break
			}
			v.screen.SetContent(x, y, c.Ch, nil, c.Style)
			x += c.Width
		}
	}
}

func (v *Viewer) drawBar() {
	if !v.bar.visible || v.width < 3 {
		return
	}
	col := v.TrackColumn()
	start, end := v.thumb.rows()
	thumbStyle := v.thumbStyle
	if v.thumb.dragging {
		thumbStyle = v.dragStyle
	}
	for y := 0; y < v.viewportRows(); y++ {
		if y >= start && y < end {
			v.screen.SetContent(col, y, '█', nil, thumbStyle)
			continue
		}
		v.screen.SetContent(col, y, '│', nil, v.trackStyle)
	}
}

func (v *Viewer) drawStatus() {
	y := v.height - 1
	if y < 1 {
		return
	}
	for x := 0; x < v.width; x++ {
		v.screen.SetContent(x, y, ' ', nil, v.statusStyle)
	}
	x := 0
	for _, r := range v.statusText() {
		if x >= v.width {
			break
		}
		v.screen.SetContent(x, y, r, nil, v.statusStyle)
		x += runewidth.RuneWidth(r)
	}
}

func (v *Viewer) statusText() string {
	rows := v.doc.Rows()
	last := v.page.top + v.viewportRows()
	if last > rows {
		last = rows
	}
	pct := 100
	if max := v.page.maxTop(); max > 0 {
		pct = v.page.top * 100 / max
	}
	text := fmt.Sprintf(" %s · %s · %d-%d/%d · %d%%", v.doc.Name, v.doc.Language, v.page.top+1, last, rows, pct)
	switch {
	case !v.ctrl.Supported():
		text += " · scrollbar off"
	case v.ctrl.State() == scrollbar.Dragging:
		text += " · drag"
	}
	return text
}

// logStats writes controller counters to the log on exit.
func (v *Viewer) logStats() {
	st := v.ctrl.Stats()
	log.Printf("[SCROLLVIEW] frames requested=%d rendered=%d scroll commands=%d",
		st.FramesRequested, st.FramesRendered, st.ScrollCommands)
}
