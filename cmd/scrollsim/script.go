// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/scrollsim/script.go
// Summary: Parser and player for scrollsim interaction scripts.
// A script is a ';' or newline separated list of steps such as
// "scroll 1000; down 500; move 600; up; flush".

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/framegrace/texelscroll/scrollbar"
	"github.com/framegrace/texelscroll/scrollbar/fakehost"
)

const simPointer scrollbar.PointerID = 1

type stepKind int

const (
	stepScroll stepKind = iota
	stepDown
	stepMove
	stepUp
	stepCancel
	stepLost
	stepResize
	stepHide
	stepShow
	stepFlush
)

// arity is the number of numeric arguments each verb takes; -1 means the
// argument is optional.
var verbs = map[string]struct {
	kind  stepKind
	arity int
}{
	"scroll": {stepScroll, 1},
	"down":   {stepDown, 1},
	"move":   {stepMove, 1},
	"up":     {stepUp, -1},
	"cancel": {stepCancel, 0},
	"lost":   {stepLost, 0},
	"resize": {stepResize, 3},
	"hide":   {stepHide, 0},
	"show":   {stepShow, 0},
	"flush":  {stepFlush, 0},
}

type step struct {
	kind stepKind
	text string
	args []float64
}

func (s step) String() string { return s.text }

func parseScript(src string) ([]step, error) {
	fields := strings.FieldsFunc(src, func(r rune) bool { return r == ';' || r == '\n' })
	steps := make([]step, 0, len(fields))
	for i, raw := range fields {
		words := strings.Fields(raw)
		if len(words) == 0 {
			continue
		}
		verb, ok := verbs[strings.ToLower(words[0])]
		if !ok {
			return nil, fmt.Errorf("step %d: unknown command %q", i+1, words[0])
		}
		nargs := len(words) - 1
		switch {
		case verb.arity >= 0 && nargs != verb.arity:
			return nil, fmt.Errorf("step %d: %s takes %d argument(s), got %d", i+1, words[0], verb.arity, nargs)
		case verb.arity < 0 && nargs > 1:
			return nil, fmt.Errorf("step %d: %s takes at most 1 argument, got %d", i+1, words[0], nargs)
		}
		st := step{kind: verb.kind, text: strings.Join(words, " ")}
		for _, w := range words[1:] {
			v, err := strconv.ParseFloat(w, 64)
			if err != nil {
				return nil, fmt.Errorf("step %d: bad number %q: %w", i+1, w, err)
			}
			st.args = append(st.args, v)
		}
		steps = append(steps, st)
	}
	return steps, nil
}

// player replays steps against an in-memory page.
type player struct {
	host  *fakehost.Host
	lastY float64
}

func (p *player) apply(st step) {
	h := p.host
	switch st.kind {
	case stepScroll:
		h.Scroll(st.args[0])
	case stepDown:
		p.lastY = st.args[0]
		h.PointerDown(simPointer, p.lastY)
	case stepMove:
		p.lastY = st.args[0]
		h.PointerMove(simPointer, p.lastY)
	case stepUp:
		if len(st.args) == 1 {
			p.lastY = st.args[0]
		}
		h.PointerUp(simPointer, p.lastY)
	case stepCancel:
		h.PointerCancel(simPointer)
	case stepLost:
		h.LoseCapture(simPointer)
	case stepResize:
		h.Resize(st.args[0], st.args[1], st.args[2])
	case stepHide:
		h.SetHidden(true)
	case stepShow:
		h.SetHidden(false)
	case stepFlush:
		h.Frames.Flush()
	}
}
