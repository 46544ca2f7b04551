// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package container

import "fmt"

// Config holds the limits fixed at construction time.
type Config struct {
	// MaxContainer is the container capacity.
	MaxContainer int `toml:"max_container"`
	// MaxCraneLoad bounds the load of a single call. Only used for argument validation.
	MaxCraneLoad int `toml:"max_crane_load"`
}

// Validate rejects limits under which a crane load could never be deposited.
func (c Config) Validate() error {
	if c.MaxContainer <= 0 {
		return fmt.Errorf("%w: max container %d must be positive", ErrInvalidConfig, c.MaxContainer)
	}
	if c.MaxCraneLoad <= 0 {
		return fmt.Errorf("%w: max crane load %d must be positive", ErrInvalidConfig, c.MaxCraneLoad)
	}
	if c.MaxCraneLoad > c.MaxContainer {
		return fmt.Errorf("%w: max crane load %d exceeds max container %d", ErrInvalidConfig, c.MaxCraneLoad, c.MaxContainer)
	}
	return nil
}

func (c Config) checkLoad(p int) error {
	if p <= 0 || p > c.MaxCraneLoad {
		return &InvalidLoadError{Load: p, MaxCraneLoad: c.MaxCraneLoad}
	}
	return nil
}
