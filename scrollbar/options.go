// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/options.go
// Summary: Tunables for a scrollbar controller.

package scrollbar

// DefaultThumbHeight is the fixed thumb height in CSS pixels.
const DefaultThumbHeight = 67

// DefaultEnableTolerance is the overflow (in pixels) below which the document
// is treated as not scrollable.
const DefaultEnableTolerance = 1

// Options configures a Controller.
type Options struct {
	// ThumbHeight is forced onto the thumb on load and resize.
	ThumbHeight float64

	// EnableTolerance guards against sub-pixel overflow enabling the widget.
	EnableTolerance float64

	// RequireFinePointer disables the widget on coarse-pointer devices
	// unless the page opts in.
	RequireFinePointer bool

	// Debug logs every jump and drag transition.
	Debug bool
}

// DefaultOptions returns the browser defaults.
func DefaultOptions() Options {
	return Options{
		ThumbHeight:        DefaultThumbHeight,
		EnableTolerance:    DefaultEnableTolerance,
		RequireFinePointer: true,
	}
}

func (o Options) normalized() Options {
	if o.ThumbHeight <= 0 {
		o.ThumbHeight = DefaultThumbHeight
	}
	if o.EnableTolerance < 0 {
		o.EnableTolerance = 0
	}
	return o
}
