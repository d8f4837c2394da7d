// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseScript(t *testing.T) {
	steps, err := parseScript("scroll 1000; down 500\nmove 600;  up ; resize 4000 1000 900;flush")
	if err != nil {
		t.Fatalf("parseScript: %v", err)
	}
	want := []stepKind{stepScroll, stepDown, stepMove, stepUp, stepResize, stepFlush}
	if len(steps) != len(want) {
		t.Fatalf("got %d steps, want %d", len(steps), len(want))
	}
	for i, k := range want {
		if steps[i].kind != k {
			t.Fatalf("step %d kind = %v, want %v", i, steps[i].kind, k)
		}
	}
	if steps[4].args[0] != 4000 || steps[4].args[2] != 900 {
		t.Fatalf("unexpected resize args: %v", steps[4].args)
	}
	if steps[3].String() != "up" {
		t.Fatalf("step text = %q", steps[3].String())
	}
}

func TestParseScriptErrors(t *testing.T) {
	cases := []struct {
		name   string
		script string
		want   string
	}{
		{"unknown verb", "jump 10", "unknown command"},
		{"missing arg", "scroll", "takes 1 argument"},
		{"extra arg", "cancel 3", "takes 0 argument"},
		{"bad number", "move ten", "bad number"},
		{"optional overflow", "up 1 2", "at most 1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseScript(tc.script)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestParseEmptyScript(t *testing.T) {
	steps, err := parseScript(" ; ;")
	if err != nil || len(steps) != 0 {
		t.Fatalf("steps=%v err=%v", steps, err)
	}
}

func TestRunDragToEnd(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	err := run([]string{"-doc", "3000", "-viewport", "1000", "-track", "900",
		"-script", "down 10; move 2000; up"}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "state=dragging") {
		t.Fatalf("expected a dragging step in output:\n%s", text)
	}
	if !strings.Contains(text, "scrollTop=2000.00") {
		t.Fatalf("expected scroll to the end:\n%s", text)
	}
	if !strings.Contains(text, "translate=833.00") {
		t.Fatalf("expected thumb at the bottom after the final flush:\n%s", text)
	}
}

func TestRunCoarsePointer(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	if err := run([]string{"-coarse"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "not attached") {
		t.Fatalf("unexpected output: %s", out.String())
	}
}

func TestRunDump(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	if err := run([]string{"-script", "scroll 1000", "-dump"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"LayoutSnapshot", "ScrollTop: (float64) 1000", "FramesRendered"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("dump missing %q:\n%s", want, out.String())
		}
	}
}
