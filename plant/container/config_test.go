// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{MaxContainer: 100, MaxCraneLoad: 60}.Validate())
	assert.NoError(t, Config{MaxContainer: 100, MaxCraneLoad: 100}.Validate())

	for _, cfg := range []Config{
		{MaxContainer: 0, MaxCraneLoad: 1},
		{MaxContainer: 100, MaxCraneLoad: 0},
		{MaxContainer: -5, MaxCraneLoad: -5},
		{MaxContainer: 50, MaxCraneLoad: 60},
	} {
		err := cfg.Validate()
		assert.True(t, errors.Is(err, ErrInvalidConfig), "%+v: %v", cfg, err)
	}
}

func TestCheckLoad(t *testing.T) {
	cfg := Config{MaxContainer: 100, MaxCraneLoad: 60}
	assert.NoError(t, cfg.checkLoad(1))
	assert.NoError(t, cfg.checkLoad(60))

	err := cfg.checkLoad(61)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, "InvalidArgument: load 61 outside (0, 60]", err.Error())
}

func TestLifecycleNames(t *testing.T) {
	assert.Equal(t, ReadyStateName, Ready.String())
	assert.Equal(t, ReplaceableStateName, Replaceable.String())
	assert.Equal(t, ReplacingStateName, Replacing.String())
	assert.Equal(t, "Cannot stringify container.Lifecycle.7", Lifecycle(7).String())
}
