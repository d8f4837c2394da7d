// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scrollbar

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func referenceLayout() LayoutSnapshot {
	return LayoutSnapshot{
		ScrollMetrics: ScrollMetrics{ScrollHeight: 3000, ClientHeight: 1000},
		TrackHeight:   900,
		ThumbHeight:   67,
	}
}

func TestLayoutReferenceScenario(t *testing.T) {
	l := referenceLayout()
	if got := l.MaxScroll(); got != 2000 {
		t.Fatalf("MaxScroll = %v, want 2000", got)
	}
	if got := l.MaxThumbTop(); got != 833 {
		t.Fatalf("MaxThumbTop = %v, want 833", got)
	}
	l.ScrollTop = 1000
	if got := l.ThumbTop(); got != 416.5 {
		t.Fatalf("ThumbTop = %v, want 416.5", got)
	}
}

func TestThumbTopStaysInRangeAndIsMonotonic(t *testing.T) {
	l := referenceLayout()
	maxThumb := l.MaxThumbTop()
	prev := -1.0
	for s := 0.0; s <= l.MaxScroll(); s += 7 {
		l.ScrollTop = s
		got := l.ThumbTop()
		if got < 0 || got > maxThumb {
			t.Fatalf("scrollTop %v: thumb %v outside [0, %v]", s, got, maxThumb)
		}
		if got < prev {
			t.Fatalf("scrollTop %v: thumb %v decreased from %v", s, got, prev)
		}
		prev = got
	}
}

func TestThumbTopIsLinear(t *testing.T) {
	l := referenceLayout()
	l.ScrollTop = 400
	a := l.ThumbTop()
	l.ScrollTop = 800
	b := l.ThumbTop()
	if !approx(b, 2*a) {
		t.Fatalf("expected doubling scrollTop to double thumb: %v vs %v", a, b)
	}
}

func TestRoundTrip(t *testing.T) {
	l := referenceLayout()
	for _, s := range []float64{0, 1, 333.3, 1000, 1999.5, 2000} {
		l.ScrollTop = s
		back := l.ScrollTopFor(l.ThumbTop())
		if math.Abs(back-s) > 1e-6 {
			t.Errorf("round trip of %v gave %v", s, back)
		}
	}
}

func TestDegenerateLayouts(t *testing.T) {
	tests := []struct {
		name        string
		layout      LayoutSnapshot
		maxScroll   float64
		maxThumbTop float64
		scrollable  bool
	}{
		{
			name:        "content fits viewport",
			layout:      LayoutSnapshot{ScrollMetrics: ScrollMetrics{ScrollHeight: 1000, ClientHeight: 1000}, TrackHeight: 900, ThumbHeight: 67},
			maxScroll:   1,
			maxThumbTop: 833,
			scrollable:  false,
		},
		{
			name:        "track shorter than thumb",
			layout:      LayoutSnapshot{ScrollMetrics: ScrollMetrics{ScrollHeight: 3000, ClientHeight: 1000}, TrackHeight: 40, ThumbHeight: 67},
			maxScroll:   2000,
			maxThumbTop: 1,
			scrollable:  true,
		},
		{
			name:        "sub-pixel overflow",
			layout:      LayoutSnapshot{ScrollMetrics: ScrollMetrics{ScrollHeight: 1000.5, ClientHeight: 1000}, TrackHeight: 900, ThumbHeight: 67},
			maxScroll:   1,
			maxThumbTop: 833,
			scrollable:  false,
		},
		{
			name:        "zero sized",
			layout:      LayoutSnapshot{},
			maxScroll:   1,
			maxThumbTop: 1,
			scrollable:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.layout.MaxScroll(); got != tt.maxScroll {
				t.Errorf("MaxScroll = %v, want %v", got, tt.maxScroll)
			}
			if got := tt.layout.MaxThumbTop(); got != tt.maxThumbTop {
				t.Errorf("MaxThumbTop = %v, want %v", got, tt.maxThumbTop)
			}
			if got := tt.layout.Scrollable(DefaultEnableTolerance); got != tt.scrollable {
				t.Errorf("Scrollable = %v, want %v", got, tt.scrollable)
			}
			if got := tt.layout.ThumbTop(); math.IsNaN(got) || math.IsInf(got, 0) {
				t.Errorf("ThumbTop = %v, want finite", got)
			}
		})
	}
}

func TestThumbTopForPointerClamps(t *testing.T) {
	l := referenceLayout()
	l.TrackTop = 50

	if got := l.ThumbTopForPointer(550, 33.5); got != 466.5 {
		t.Fatalf("ThumbTopForPointer = %v, want 466.5", got)
	}
	if got := l.ThumbTopForPointer(0, 33.5); got != 0 {
		t.Fatalf("pointer above track: got %v, want 0", got)
	}
	if got := l.ThumbTopForPointer(5000, 33.5); got != 833 {
		t.Fatalf("pointer below track: got %v, want 833", got)
	}
}
