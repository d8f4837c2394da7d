// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texelscroll configuration.

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Root returns the configuration directory ($XDG_CONFIG_HOME/texelscroll).
func Root() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texelscroll"), nil
}

func systemConfigPath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

func appConfigPath(app string) (string, error) {
	if app == "" {
		return "", fmt.Errorf("app name is required")
	}
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "apps", app, "config.json"), nil
}
