// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Default configuration shipped inside the binaries.
// texelscroll.json holds the widget section; apps/<name>/config.json holds
// per-binary settings.

package defaults

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
)

//go:embed texelscroll.json apps/*/config.json
var files embed.FS

// ErrUnknownApp is returned by AppConfig for apps without shipped defaults.
var ErrUnknownApp = errors.New("no embedded defaults")

// SystemConfig returns the embedded system config JSON.
func SystemConfig() ([]byte, error) {
	return files.ReadFile("texelscroll.json")
}

// AppConfig returns the embedded config JSON for the named app.
func AppConfig(app string) ([]byte, error) {
	if app == "" || path.Base(app) != app {
		return nil, fmt.Errorf("invalid app name %q", app)
	}
	data, err := files.ReadFile(path.Join("apps", app, "config.json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("app %q: %w", app, ErrUnknownApp)
	}
	return data, err
}

// Apps lists the apps that ship defaults.
func Apps() []string {
	entries, err := files.ReadDir("apps")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}
