// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termhost/watch.go
// Summary: Reloads the viewed file when it changes on disk.
// The directory is watched rather than the file so editors that save by
// rename are still seen. Parsing happens on the watcher goroutine; the new
// document is handed to the event loop through a reloadTick interrupt.

package termhost

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelscroll/termhost/content"
)

// reloadDelay is how long the file must stay quiet before it is reloaded.
// A save usually lands as a truncate followed by one or more writes.
var reloadDelay = 150 * time.Millisecond

// reloadTick carries a freshly parsed document to the event loop.
type reloadTick struct {
	doc *content.Document
}

// watchFile posts a reloadTick to screen once path has been written or
// recreated and then left alone for reloadDelay. The watcher stops when ctx
// is done.
func watchFile(ctx context.Context, screen tcell.Screen, path string, opts content.Options) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	delay := reloadDelay
	go func() {
		defer w.Close()
		timer := time.NewTimer(delay)
		timer.Stop()
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(delay)
			case <-timer.C:
				doc, err := content.Load(path, opts)
				if err != nil {
					log.Printf("[SCROLLVIEW] Reload %s failed: %v", path, err)
					continue
				}
				if err := screen.PostEvent(tcell.NewEventInterrupt(reloadTick{doc: doc})); err != nil {
					log.Printf("[SCROLLVIEW] Dropped reload: %v", err)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("[SCROLLVIEW] Watcher error: %v", err)
			}
		}
	}()
	return nil
}
