// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values registered on top of whatever was loaded, so keys
// added in later releases appear in older config files.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults(ScrollbarSection, Section{
		"thumb_height":         67,
		"enable_tolerance":     1,
		"require_fine_pointer": true,
		"opt_in_class":         "touch-scrollbar",
		"track_selector":       ".scroll-track",
		"thumb_selector":       ".scroll-thumb",
		"indicator_selector":   ".scroll-indicator",
		"dragging_class":       "is-dragging",
		"debug":                false,
	})
}

func applyAppDefaults(app string, cfg Config) {
	if cfg == nil {
		return
	}
	switch app {
	case "scrollview":
		cfg.RegisterDefaults("scrollview", Section{
			"thumb_height":      3,
			"scroll_step":       3,
			"style":             "catppuccin-mocha",
			"tab_width":         4,
			"follow":            false,
			"remember_position": true,
			"remember_limit":    500,
			"log_file":          "",
		})
	}
}
