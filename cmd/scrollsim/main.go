// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/scrollsim/main.go
// Summary: Headless scrollbar simulator.
// Usage: scrollsim -doc 3000 -viewport 1000 -track 900 -script "scroll 1000; down 500; move 600; up" [-dump]

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/framegrace/texelscroll/config"
	"github.com/framegrace/texelscroll/scrollbar"
	"github.com/framegrace/texelscroll/scrollbar/fakehost"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	log.SetOutput(io.Discard)
	sbCfg := config.System().Scrollbar()

	fs := flag.NewFlagSet("scrollsim", flag.ContinueOnError)
	docHeight := fs.Float64("doc", 3000, "Document scroll height")
	viewport := fs.Float64("viewport", 1000, "Viewport height")
	trackHeight := fs.Float64("track", 900, "Track height")
	trackTop := fs.Float64("track-top", 0, "Track top within the viewport")
	thumb := fs.Float64("thumb", sbCfg.ThumbHeight, "Thumb height")
	coarse := fs.Bool("coarse", false, "Simulate a coarse pointer")
	optIn := fs.Bool("opt-in", false, "Opt coarse pointers in")
	script := fs.String("script", "", "Steps to replay, separated by ';'")
	verbose := fs.Bool("v", false, "Log controller diagnostics to stderr")
	dump := fs.Bool("dump", false, "Dump the final layout snapshot and counters")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *verbose {
		log.SetOutput(os.Stderr)
	}

	steps, err := parseScript(*script)
	if err != nil {
		return fmt.Errorf("parse script: %w", err)
	}

	h := fakehost.New()
	h.SetLayout(*docHeight, *viewport, *trackHeight)
	h.Track.SetTop(*trackTop)
	h.Pointer.Fine = !*coarse
	h.Pointer.OptIn = *optIn

	opts := sbCfg.Options()
	opts.ThumbHeight = *thumb
	opts.Debug = *verbose
	ctrl := scrollbar.New(h.Scrollbar(), opts)
	if !ctrl.Attach() {
		fmt.Fprintf(out, "not attached (supported=%v)\n", ctrl.Supported())
		return nil
	}
	h.Load()

	p := &player{host: h}
	report(out, "attach", h, ctrl)
	for _, st := range steps {
		p.apply(st)
		report(out, st.String(), h, ctrl)
	}
	if h.Frames.Pending() > 0 {
		h.Frames.Flush()
		report(out, "flush", h, ctrl)
	}

	st := ctrl.Stats()
	fmt.Fprintf(out, "frames requested=%d rendered=%d scroll commands=%d\n",
		st.FramesRequested, st.FramesRendered, st.ScrollCommands)
	if *dump {
		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		dumper.Fdump(out, ctrl.Layout(), st)
	}
	return nil
}

func report(out io.Writer, label string, h *fakehost.Host, ctrl *scrollbar.Controller) {
	fmt.Fprintf(out, "%-16s state=%-8s enabled=%-5v scrollTop=%.2f thumbTop=%.2f translate=%.2f pending=%d\n",
		label, ctrl.State(), ctrl.Enabled(), h.Doc.ScrollTop(), ctrl.ThumbTop(), h.Thumb.TranslateY(), h.Frames.Pending())
}
