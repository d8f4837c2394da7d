// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termhost/run.go
// Summary: Event loop hosting a Viewer inside a local tcell screen.

package termhost

import (
	"context"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelscroll/termhost/content"
)

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// Run shows doc until the user quits or ctx is cancelled. It returns the
// first visible row at exit.
func Run(ctx context.Context, doc *content.Document, opts Options) (int, error) {
	screen, err := screenFactory()
	if err != nil {
		return 0, fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return 0, fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()
	screen.EnableMouse(tcell.MouseButtonEvents, tcell.MouseDragEvents)
	defer screen.DisableMouse()
	screen.EnableFocus()
	defer screen.DisableFocus()

	v := NewViewer(screen, doc, opts)
	defer v.logStats()
	v.Start()
	v.Draw()

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if opts.Follow != "" {
		if err := watchFile(loopCtx, screen, opts.Follow, opts.Content); err != nil {
			log.Printf("[SCROLLVIEW] Follow disabled: %v", err)
		}
	}
	go func() {
		<-loopCtx.Done()
		if ctx.Err() != nil {
			screen.PostEvent(tcell.NewEventInterrupt(quitTick{}))
		}
	}()

	for {
		ev := screen.PollEvent()
		if ev == nil {
			return v.Top(), ctx.Err()
		}
		if !v.Handle(ev) {
			return v.Top(), nil
		}
		v.Draw()
	}
}
