// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/scrollbar.go
// Summary: Typed view of the "scrollbar" section.

package config

import "github.com/framegrace/texelscroll/scrollbar"

// ScrollbarSection is the system config section read by every host.
const ScrollbarSection = "scrollbar"

// Scrollbar holds the widget settings shared by the browser and terminal hosts.
type Scrollbar struct {
	ThumbHeight        float64
	EnableTolerance    float64
	RequireFinePointer bool
	OptInClass         string
	TrackSelector      string
	ThumbSelector      string
	IndicatorSelector  string
	DraggingClass      string
	Debug              bool
}

// Scrollbar reads the scrollbar section, falling back to built-in defaults
// for missing or mistyped keys.
func (c Config) Scrollbar() Scrollbar {
	def := scrollbar.DefaultOptions()
	return Scrollbar{
		ThumbHeight:        c.GetFloat(ScrollbarSection, "thumb_height", def.ThumbHeight),
		EnableTolerance:    c.GetFloat(ScrollbarSection, "enable_tolerance", def.EnableTolerance),
		RequireFinePointer: c.GetBool(ScrollbarSection, "require_fine_pointer", def.RequireFinePointer),
		OptInClass:         c.GetString(ScrollbarSection, "opt_in_class", "touch-scrollbar"),
		TrackSelector:      c.GetString(ScrollbarSection, "track_selector", ".scroll-track"),
		ThumbSelector:      c.GetString(ScrollbarSection, "thumb_selector", ".scroll-thumb"),
		IndicatorSelector:  c.GetString(ScrollbarSection, "indicator_selector", ".scroll-indicator"),
		DraggingClass:      c.GetString(ScrollbarSection, "dragging_class", "is-dragging"),
		Debug:              c.GetBool(ScrollbarSection, "debug", false),
	}
}

// Options converts the section to controller options.
func (s Scrollbar) Options() scrollbar.Options {
	return scrollbar.Options{
		ThumbHeight:        s.ThumbHeight,
		EnableTolerance:    s.EnableTolerance,
		RequireFinePointer: s.RequireFinePointer,
		Debug:              s.Debug,
	}
}
