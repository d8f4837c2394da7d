// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/scrollbar-wasm/main.go
// Summary: WebAssembly entry point binding the scrollbar to the current page.
// Usage: GOOS=js GOARCH=wasm go build -o scrollbar.wasm ./cmd/scrollbar-wasm

//go:build js && wasm

package main

import (
	"log"

	"github.com/framegrace/texelscroll/config"
	"github.com/framegrace/texelscroll/jshost"
	"github.com/framegrace/texelscroll/scrollbar"
)

func main() {
	cfg := config.System().Scrollbar()

	host, ok := jshost.Bind(jshost.Selectors{
		Track:         cfg.TrackSelector,
		Thumb:         cfg.ThumbSelector,
		Indicator:     cfg.IndicatorSelector,
		OptInClass:    cfg.OptInClass,
		DraggingClass: cfg.DraggingClass,
	})
	if !ok {
		return
	}

	ctrl := scrollbar.New(host, cfg.Options())
	if !ctrl.Attach() {
		log.Printf("[SCROLLBAR] Not attached (supported=%v)", ctrl.Supported())
		return
	}

	// Listeners live as long as the Go runtime.
	select {}
}
