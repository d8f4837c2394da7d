// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/layout.go
// Summary: LayoutSnapshot value object and the scroll <-> thumb mapping.
// Usage: Pure arithmetic; the controller refreshes a snapshot from the host
// and asks it for positions, so the math is testable without a browser.

package scrollbar

// ScrollMetrics is the document scroll state as reported by the host.
type ScrollMetrics struct {
	ScrollTop    float64
	ScrollHeight float64
	ClientHeight float64
}

// LayoutSnapshot captures every layout value the controller needs.
// All fields are in the host's length unit (CSS pixels in a browser,
// rows in a terminal).
type LayoutSnapshot struct {
	ScrollMetrics

	TrackHeight float64
	TrackTop    float64 // viewport-relative, cached
	ThumbHeight float64
}

// MaxScroll is the largest reachable scrollTop, never less than 1.
func (l LayoutSnapshot) MaxScroll() float64 {
	return atLeastOne(l.ScrollHeight - l.ClientHeight)
}

// MaxThumbTop is the largest thumb offset within the track, never less than 1.
func (l LayoutSnapshot) MaxThumbTop() float64 {
	return atLeastOne(l.TrackHeight - l.ThumbHeight)
}

// Scrollable reports whether the document overflows the viewport by more
// than tolerance. The tolerance absorbs sub-pixel rounding.
func (l LayoutSnapshot) Scrollable(tolerance float64) bool {
	return l.ScrollHeight > l.ClientHeight+tolerance
}

// ThumbTop maps the current scrollTop onto the track.
func (l LayoutSnapshot) ThumbTop() float64 {
	return ThumbTopFor(l.ScrollTop, l.MaxScroll(), l.MaxThumbTop())
}

// ScrollTopFor maps a thumb offset back to a document scroll position.
func (l LayoutSnapshot) ScrollTopFor(thumbTop float64) float64 {
	return ScrollTopFor(thumbTop, l.MaxThumbTop(), l.MaxScroll())
}

// ThumbTopForPointer converts a viewport-relative pointer Y into a clamped
// thumb offset, given the distance from the pointer to the thumb's top edge.
func (l LayoutSnapshot) ThumbTopForPointer(pointerY, dragOffset float64) float64 {
	trackY := pointerY - l.TrackTop
	return Clamp(trackY-dragOffset, 0, l.MaxThumbTop())
}

// ThumbTopFor computes (scrollTop / maxScroll) * maxThumbTop with guarded
// denominators.
func ThumbTopFor(scrollTop, maxScroll, maxThumbTop float64) float64 {
	return (scrollTop / atLeastOne(maxScroll)) * maxThumbTop
}

// ScrollTopFor computes (thumbTop / maxThumbTop) * maxScroll with guarded
// denominators.
func ScrollTopFor(thumbTop, maxThumbTop, maxScroll float64) float64 {
	return (thumbTop / atLeastOne(maxThumbTop)) * maxScroll
}

// Clamp keeps n within [lo, hi].
func Clamp(n, lo, hi float64) float64 {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func atLeastOne(v float64) float64 {
	if v < 1 {
		return 1
	}
	return v
}
