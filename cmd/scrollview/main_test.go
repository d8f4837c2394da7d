// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"strings"
	"testing"
)

func TestRunRejectsThumbBelowOneRow(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	for _, thumb := range []string{"0", "-2"} {
		err := run([]string{"-thumb", thumb, "notes.txt"})
		if err == nil || !strings.Contains(err.Error(), "-thumb must be at least 1") {
			t.Fatalf("-thumb %s: error = %v, want a thumb height error", thumb, err)
		}
	}
}

func TestRunRequiresOneFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := run(nil); err == nil || !strings.Contains(err.Error(), "usage:") {
		t.Fatalf("error = %v, want usage", err)
	}
}
