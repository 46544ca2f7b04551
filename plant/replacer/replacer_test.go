// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package replacer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.recyclingplant.io/plant/container"
	"golang.org/x/sync/errgroup"
)

func TestReplaceOnce(t *testing.T) {
	m := container.NewMonitor(container.Config{MaxContainer: 100, MaxCraneLoad: 60})
	r := NewReplacer(m, time.Millisecond)

	var errg errgroup.Group
	errg.Go(func() error { r.ReplaceOnce(); return nil })

	require.NoError(t, m.IncrementWeight(60))
	require.NoError(t, m.NotifyWeight(50))
	assert.Equal(t, int64(0), r.Replacements())

	m.NotifyRelease()
	require.NoError(t, errg.Wait())

	d := m.Describe()
	assert.Equal(t, int64(1), r.Replacements())
	assert.Equal(t, 0, d.Weight)
	assert.Equal(t, container.ReadyStateName, d.Lifecycle)
}
