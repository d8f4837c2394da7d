// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/scrollview/main.go
// Summary: Terminal file viewer with a draggable scrollbar.
// Usage: scrollview [-thumb N] [-style NAME] [-fine-pointer=false] [-follow] FILE

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/framegrace/texelscroll/config"
	"github.com/framegrace/texelscroll/positions"
	"github.com/framegrace/texelscroll/termhost"
	"github.com/framegrace/texelscroll/termhost/content"
)

const appName = "scrollview"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// Keep config chatter off the terminal until the log file is known.
	log.SetOutput(io.Discard)

	appCfg := config.App(appName)
	sbCfg := config.System().Scrollbar()

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	thumb := fs.Int("thumb", appCfg.GetInt(appName, "thumb_height", 3), "Thumb height in rows")
	step := fs.Int("step", appCfg.GetInt(appName, "scroll_step", 3), "Rows scrolled per wheel notch")
	style := fs.String("style", appCfg.GetString(appName, "style", "catppuccin-mocha"), "Chroma style name")
	tabWidth := fs.Int("tab-width", appCfg.GetInt(appName, "tab_width", 4), "Tab stop width")
	finePointer := fs.Bool("fine-pointer", true, "Treat the mouse as a precise pointer")
	optIn := fs.Bool("opt-in", false, "Enable the scrollbar for coarse pointers")
	follow := fs.Bool("follow", appCfg.GetBool(appName, "follow", false), "Reload the file when it changes")
	remember := fs.Bool("remember", appCfg.GetBool(appName, "remember_position", true), "Restore and save the scroll position")
	logFile := fs.String("log", appCfg.GetString(appName, "log_file", ""), "Append logs to this file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: %s [flags] FILE", appName)
	}
	if *thumb < 1 {
		return fmt.Errorf("-thumb must be at least 1 row, got %d", *thumb)
	}

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	}
	if err := config.Err(); err != nil {
		log.Printf("Config: using defaults: %v", err)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	path := fs.Arg(0)
	contentOpts := content.Options{Style: *style, TabWidth: *tabWidth}
	doc, err := content.Load(path, contentOpts)
	if err != nil {
		return err
	}

	opts := termhost.DefaultOptions()
	opts.Scrollbar = sbCfg.Options()
	opts.Scrollbar.ThumbHeight = float64(*thumb)
	opts.ScrollStep = *step
	opts.FinePointer = *finePointer
	opts.OptIn = *optIn
	opts.Content = contentOpts
	if *follow {
		opts.Follow = path
	}

	var store *positions.Store
	if *remember {
		store = openPositions()
	}
	if store != nil {
		defer store.Close()
		if row, ok, err := store.Get(path); err != nil {
			log.Printf("[SCROLLVIEW] %v", err)
		} else if ok {
			opts.InitialTop = row
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("[SCROLLVIEW] Viewing %s (%s)", doc.Name, doc.Language)
	top, err := termhost.Run(ctx, doc, opts)
	if err != nil {
		return err
	}
	if store != nil {
		if err := store.Put(path, top); err != nil {
			log.Printf("[SCROLLVIEW] %v", err)
		}
		if _, err := store.Prune(appCfg.GetInt(appName, "remember_limit", 500)); err != nil {
			log.Printf("[SCROLLVIEW] %v", err)
		}
	}
	return nil
}

// openPositions opens the position store, logging and returning nil when it
// is unavailable.
func openPositions() *positions.Store {
	dbPath, err := positions.DefaultPath()
	if err != nil {
		log.Printf("[SCROLLVIEW] Positions disabled: %v", err)
		return nil
	}
	store, err := positions.Open(dbPath)
	if err != nil {
		log.Printf("[SCROLLVIEW] Positions disabled: %v", err)
		return nil
	}
	return store
}
