// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.recyclingplant.io/plant/container/statejson"
	"golang.org/x/sync/errgroup"
)

func TestMonitorCountsWaiters(t *testing.T) {
	m := NewMonitor(scenarioConfig)
	var errg errgroup.Group

	preparer := goCall(&errg, func() error { m.PrepareReplacement(); return nil })
	eventuallyDescribed(t, m, func(d statejson.ContainerDescription) bool { return d.PrepareWaiting == 1 })

	require.NoError(t, m.IncrementWeight(60))
	require.NoError(t, m.NotifyWeight(50))
	m.NotifyRelease()
	require.Eventually(t, closed(preparer), waitFor, tick)

	notifier := goCall(&errg, func() error { return m.NotifyWeight(10) })
	eventuallyDescribed(t, m, func(d statejson.ContainerDescription) bool { return d.NotifyWaiting == 1 })

	m.NotifyReplacementDone()
	require.Eventually(t, closed(notifier), waitFor, tick)

	d := m.Describe()
	assert.Equal(t, 0, d.NotifyWaiting)
	assert.Equal(t, 0, d.PrepareWaiting)
	assert.Equal(t, MonitorRealization, d.Realization)
	assert.NoError(t, errg.Wait())
}

func TestMonitorPromotionAppliesIncrementBeforeResuming(t *testing.T) {
	m := NewMonitor(scenarioConfig)

	m.mu.Lock()
	m.state.weight = 80
	req := newDeferredIncrement(10, &m.mu)
	m.deferred = append(m.deferred, req)
	assert.True(t, m.promoteDeferredUnsafe())
	assert.True(t, req.resumed)
	assert.Equal(t, 90, m.state.weight)
	assert.Equal(t, 1, m.state.activeDepositors)
	assert.Empty(t, m.deferred)
	assert.False(t, m.promoteDeferredUnsafe())
	m.mu.Unlock()
}
