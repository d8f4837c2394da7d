// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/host.go
// Summary: Collaborator interfaces the controller drives.
// Usage: A host (browser, terminal, in-memory fake) implements these and
// delivers all events and frame callbacks on a single goroutine.

package scrollbar

// EventKind identifies an event delivered through an EventTarget.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	PointerCancel
	LostPointerCapture
	Scroll
	Resize
	VisibilityChange
	Load
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case PointerUp:
		return "pointerup"
	case PointerCancel:
		return "pointercancel"
	case LostPointerCapture:
		return "lostpointercapture"
	case Scroll:
		return "scroll"
	case Resize:
		return "resize"
	case VisibilityChange:
		return "visibilitychange"
	case Load:
		return "load"
	default:
		return "unknown"
	}
}

// PointerID identifies one pointer (mouse, pen or touch contact).
type PointerID int

// Event is a host event. Pointer fields are zero for non-pointer kinds.
type Event struct {
	Kind      EventKind
	PointerID PointerID
	ClientY   float64

	// Target is the host object the event was dispatched to. The controller
	// compares it against its Thumb to tell thumb presses from track presses.
	Target any

	DefaultPrevented bool

	// OnPreventDefault lets a host forward PreventDefault to the platform.
	OnPreventDefault func()
}

// PreventDefault suppresses the platform's default action for the event.
func (e *Event) PreventDefault() {
	if e == nil || e.DefaultPrevented {
		return
	}
	e.DefaultPrevented = true
	if e.OnPreventDefault != nil {
		e.OnPreventDefault()
	}
}

// EventTarget registers listeners. The returned func removes the listener
// and is safe to call more than once.
type EventTarget interface {
	Listen(kind EventKind, fn func(*Event)) (remove func())
}

// Document is the scrolling document.
type Document interface {
	EventTarget
	ScrollMetrics() ScrollMetrics
	// ScrollTo jumps to top without animation.
	ScrollTo(top float64)
	// Visible reports whether the page is currently shown to the user.
	Visible() bool
}

// Element is the layout surface shared by track and thumb.
type Element interface {
	EventTarget
	ClientHeight() float64
	// BoundingTop is the viewport-relative top edge.
	BoundingTop() float64
}

// Track is the channel the thumb travels in.
type Track interface {
	Element
}

// Thumb is the draggable handle.
type Thumb interface {
	Element
	SetHeight(px float64)
	SetTranslateY(px float64)
	SetDragging(on bool)
	SetPointerCapture(id PointerID)
	ReleasePointerCapture(id PointerID)
}

// Indicator is the optional visual wrapper shown while the widget is usable.
type Indicator interface {
	SetVisible(visible bool)
}

// FrameScheduler runs fn before the next repaint.
type FrameScheduler interface {
	RequestFrame(fn func())
}

// PointerEnvironment answers the input-capability checks made on attach.
type PointerEnvironment interface {
	// FinePointer reports whether the primary pointer is precise (mouse, pen).
	FinePointer() bool
	// OptedIn reports whether the page opts coarse pointers into the widget.
	OptedIn() bool
}

// Host bundles the collaborators for one scrollbar instance.
// Window receives scroll, resize, visibility and load events; Indicator and
// Pointer are optional.
type Host struct {
	Document  Document
	Window    EventTarget
	Track     Track
	Thumb     Thumb
	Indicator Indicator
	Frames    FrameScheduler
	Pointer   PointerEnvironment
}
