// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.recyclingplant.io/plant/container"
)

// ErrInvalidPlantConfig is returned by Validate.
var ErrInvalidPlantConfig = errors.New("InvalidPlantConfig")

// Config describes one plant simulation run.
type Config struct {
	Container   container.Config
	Realization string
	Cranes      int
	// Seed for crane loads; cranes use Seed, Seed+1, ...
	Seed int64

	UnloadDelay  time.Duration
	ReplaceDelay time.Duration
	// Duration of the run, zero runs until interrupted.
	Duration time.Duration
	// Grace bounds the wait for cranes to finish their last cycle.
	Grace time.Duration

	// StatusAddr enables the introspection API when not empty.
	StatusAddr string
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Container:    container.Config{MaxContainer: 1000, MaxCraneLoad: 100},
		Realization:  container.MonitorRealization,
		Cranes:       4,
		Seed:         1,
		UnloadDelay:  10 * time.Millisecond,
		ReplaceDelay: 50 * time.Millisecond,
		Duration:     10 * time.Second,
		Grace:        time.Second,
	}
}

// Validate ...
func (c Config) Validate() error {
	if err := c.Container.Validate(); err != nil {
		return err
	}
	if c.Realization != container.MonitorRealization && c.Realization != container.ServerRealization {
		return fmt.Errorf("%w: unknown realization %q", ErrInvalidPlantConfig, c.Realization)
	}
	if c.Cranes <= 0 {
		return fmt.Errorf("%w: cranes %d must be positive", ErrInvalidPlantConfig, c.Cranes)
	}
	if c.UnloadDelay < 0 || c.ReplaceDelay < 0 || c.Duration < 0 || c.Grace < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidPlantConfig)
	}
	return nil
}

type fileConfig struct {
	Container    container.Config `toml:"container"`
	Realization  string           `toml:"realization"`
	Cranes       int              `toml:"cranes"`
	Seed         int64            `toml:"seed"`
	UnloadDelay  string           `toml:"unload_delay"`
	ReplaceDelay string           `toml:"replace_delay"`
	Duration     string           `toml:"duration"`
	Grace        string           `toml:"grace"`
	StatusAddr   string           `toml:"status_addr"`
}

// Load reads a TOML file on top of Default. Keys absent from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load plant config: %w", err)
	}

	if meta.IsDefined("container", "max_container") {
		cfg.Container.MaxContainer = raw.Container.MaxContainer
	}

	if meta.IsDefined("container", "max_crane_load") {
		cfg.Container.MaxCraneLoad = raw.Container.MaxCraneLoad
	}

	if meta.IsDefined("realization") {
		cfg.Realization = strings.TrimSpace(raw.Realization)
	}

	if meta.IsDefined("cranes") {
		cfg.Cranes = raw.Cranes
	}

	if meta.IsDefined("seed") {
		cfg.Seed = raw.Seed
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"unload_delay", raw.UnloadDelay, &cfg.UnloadDelay},
		{"replace_delay", raw.ReplaceDelay, &cfg.ReplaceDelay},
		{"duration", raw.Duration, &cfg.Duration},
		{"grace", raw.Grace, &cfg.Grace},
	}
	for _, d := range durations {
		if !meta.IsDefined(d.key) {
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(d.raw))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.dst = v
	}

	if meta.IsDefined("status_addr") {
		cfg.StatusAddr = strings.TrimSpace(raw.StatusAddr)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
