// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Parsed copies of the embedded defaults.
// Each file is decoded once; callers always receive a private clone.

package config

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/framegrace/texelscroll/defaults"
)

// systemKey addresses the system file in the parsed cache; app names are
// never empty.
const systemKey = ""

var (
	parsedMu sync.Mutex
	parsed   = make(map[string]Config)
)

func embeddedDefaults(name string) (Config, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()
	if cfg, ok := parsed[name]; ok {
		return cfg, nil
	}

	var (
		data []byte
		err  error
	)
	if name == systemKey {
		data, err = defaults.SystemConfig()
	} else {
		data, err = defaults.AppConfig(name)
	}
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	parsed[name] = cfg
	return cfg, nil
}

// defaultSystemConfig returns a clone of the embedded system defaults, or nil.
func defaultSystemConfig() Config {
	cfg, err := embeddedDefaults(systemKey)
	if err != nil {
		log.Printf("Config: Embedded system defaults unavailable: %v", err)
		return nil
	}
	return cloneConfig(cfg)
}

// defaultAppConfig returns a clone of the embedded app defaults, or nil when
// the app ships none.
func defaultAppConfig(app string) Config {
	cfg, err := embeddedDefaults(app)
	if err != nil {
		if !errors.Is(err, defaults.ErrUnknownApp) {
			log.Printf("Config: Embedded defaults for %q unavailable: %v", app, err)
		}
		return nil
	}
	return cloneConfig(cfg)
}

// cloneConfig copies cfg one section deep. Section values are scalars.
func cloneConfig(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	out := make(Config, len(cfg))
	for name, v := range cfg {
		section, ok := asSection(v)
		if !ok {
			out[name] = v
			continue
		}
		cp := make(Section, len(section))
		for k, sv := range section {
			cp[k] = sv
		}
		out[name] = cp
	}
	return out
}

func asSection(v interface{}) (Section, bool) {
	switch s := v.(type) {
	case Section:
		return s, true
	case map[string]interface{}:
		return Section(s), true
	}
	return nil, false
}
