// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Load logic shared by the system and app files.
// A missing or empty file is seeded from the embedded defaults and written
// back; an unreadable file is left alone and defaults are used in memory. An
// unresolvable config directory (e.g. in a browser) also falls back to
// in-memory defaults.

package config

import (
	"fmt"
	"log"
)

// source describes one config file and where its defaults come from.
type source struct {
	label string
	path  func() (string, error)
	seed  func() Config
	fill  func(Config)
}

func systemSource() source {
	return source{
		label: "system",
		path:  systemConfigPath,
		seed:  defaultSystemConfig,
		fill:  applySystemDefaults,
	}
}

func appSource(name string) source {
	return source{
		label: fmt.Sprintf("app %q", name),
		path:  func() (string, error) { return appConfigPath(name) },
		seed:  func() Config { return defaultAppConfig(name) },
		fill:  func(cfg Config) { applyAppDefaults(name, cfg) },
	}
}

func loadSystem() (Config, error) { return systemSource().load() }

func loadApp(name string) (Config, error) { return appSource(name).load() }

// load always returns a usable config; the error reports why it may not
// reflect the file on disk.
func (src source) load() (Config, error) {
	fallback := func() Config {
		cfg := src.seed()
		if cfg == nil {
			cfg = make(Config)
		}
		src.fill(cfg)
		return cfg
	}

	path, err := src.path()
	if err != nil {
		log.Printf("Config: Failed to resolve %s config path: %v", src.label, err)
		return fallback(), err
	}

	cfg, exists, err := readConfig(path)
	if err != nil {
		log.Printf("Config: Failed to read %s config %s: %v", src.label, path, err)
		return fallback(), err
	}

	if !exists || len(cfg) == 0 {
		cfg = fallback()
		if err := writeConfig(path, cfg); err != nil {
			log.Printf("Config: Failed to write default %s config: %v", src.label, err)
			return cfg, err
		}
		return cfg, nil
	}

	src.fill(cfg)
	log.Printf("Config: Loaded %s config from %s", src.label, path)
	return cfg, nil
}
