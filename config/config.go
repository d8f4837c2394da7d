// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: System + app configuration store for texelscroll.
// System settings (texelscroll.json) describe the widget itself; app
// settings (apps/<name>/config.json) belong to a host binary.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const systemConfigName = "texelscroll.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

// store is the process-wide configuration cache.
type store struct {
	mu      sync.RWMutex
	system  Config
	apps    map[string]Config
	loadErr error
}

var (
	storeOnce sync.Once
	current   *store
)

func active() *store {
	storeOnce.Do(func() {
		s := &store{apps: make(map[string]Config)}
		s.system, s.loadErr = loadSystem()
		current = s
	})
	return current
}

// Err returns the most recent system config load error.
func Err() error {
	s := active()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// System returns the system configuration.
func System() Config {
	s := active()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.system
}

// App returns the config for a named app, loading it on first use. A load
// failure yields the embedded defaults.
func App(name string) Config {
	if name == "" {
		return nil
	}
	s := active()

	s.mu.RLock()
	cfg, ok := s.apps[name]
	s.mu.RUnlock()
	if ok {
		return cfg
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg, ok := s.apps[name]; ok {
		return cfg
	}
	cfg, err := loadApp(name)
	if err != nil {
		log.Printf("Config: Failed to load app %q config: %v", name, err)
	}
	s.apps[name] = cfg
	return cfg
}

// Reload re-reads the system config and every app loaded so far. Apps that
// fail to reload keep their previous values.
func Reload() error {
	s := active()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.system, s.loadErr = loadSystem()
	for name := range s.apps {
		cfg, err := loadApp(name)
		if err != nil {
			log.Printf("Config: Failed to reload app %q config: %v", name, err)
			continue
		}
		s.apps[name] = cfg
	}
	return s.loadErr
}

// SaveSystem persists the current system config.
func SaveSystem() error {
	s := active()
	s.mu.RLock()
	defer s.mu.RUnlock()
	path, err := systemConfigPath()
	if err != nil {
		return err
	}
	return writeConfig(path, s.system)
}

// SaveApp persists a named app config, creating it from defaults when the
// app was never loaded.
func SaveApp(name string) error {
	if name == "" {
		return nil
	}
	path, err := appConfigPath(name)
	if err != nil {
		return err
	}
	return writeConfig(path, App(name))
}

// SetSystem replaces the in-memory system config with a copy of cfg.
func SetSystem(cfg Config) {
	s := active()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.system = cloneOrEmpty(cfg)
}

// SetApp replaces the in-memory app config with a copy of cfg.
func SetApp(name string, cfg Config) {
	if name == "" {
		return
	}
	s := active()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps[name] = cloneOrEmpty(cfg)
}

func cloneOrEmpty(cfg Config) Config {
	if cfg == nil {
		return make(Config)
	}
	return cloneConfig(cfg)
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
