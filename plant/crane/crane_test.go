// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package crane

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.recyclingplant.io/plant/container"
	"go.recyclingplant.io/plant/container/statejson"
)

type mockController struct {
	mock.Mock
	calls []string
}

func (m *mockController) NotifyWeight(p int) error {
	m.calls = append(m.calls, "NotifyWeight")
	return m.Called(p).Error(0)
}

func (m *mockController) IncrementWeight(p int) error {
	m.calls = append(m.calls, "IncrementWeight")
	return m.Called(p).Error(0)
}

func (m *mockController) NotifyRelease() {
	m.calls = append(m.calls, "NotifyRelease")
	m.Called()
}

func (m *mockController) PrepareReplacement() {
	m.Called()
}

func (m *mockController) NotifyReplacementDone() {
	m.Called()
}

func (m *mockController) Describe() statejson.ContainerDescription {
	return m.Called().Get(0).(statejson.ContainerDescription)
}

func TestDepositCycle(t *testing.T) {
	ctrl := &mockController{}
	ctrl.On("NotifyWeight", 30).Return(nil)
	ctrl.On("IncrementWeight", 30).Return(nil)
	ctrl.On("NotifyRelease").Return()

	c := NewCrane(ctrl, NewFixedLoads(30), 0)
	require.NoError(t, c.DepositCycle(context.Background()))

	ctrl.AssertExpectations(t)
	assert.Equal(t, []string{"NotifyWeight", "IncrementWeight", "NotifyRelease"}, ctrl.calls)
	assert.Equal(t, int64(1), c.Deposits())
	assert.Equal(t, int64(30), c.Deposited())
}

func TestDepositCycleStopsOnRejectedNotify(t *testing.T) {
	ctrl := &mockController{}
	rejected := &container.InvalidLoadError{Load: 70, MaxCraneLoad: 60}
	ctrl.On("NotifyWeight", 70).Return(rejected)

	c := NewCrane(ctrl, NewFixedLoads(70), 0)
	err := c.DepositCycle(context.Background())

	assert.True(t, errors.Is(err, container.ErrInvalidArgument))
	assert.Equal(t, []string{"NotifyWeight"}, ctrl.calls)
	assert.Equal(t, int64(0), c.Deposits())
}

func TestDepositCycleDoesNotReleaseRejectedIncrement(t *testing.T) {
	ctrl := &mockController{}
	ctrl.On("NotifyWeight", 70).Return(nil)
	ctrl.On("IncrementWeight", 70).Return(container.ErrInvalidArgument)

	c := NewCrane(ctrl, NewFixedLoads(70), 0)
	err := c.DepositCycle(context.Background())

	assert.True(t, errors.Is(err, container.ErrInvalidArgument))
	assert.Equal(t, []string{"NotifyWeight", "IncrementWeight"}, ctrl.calls)
	ctrl.AssertNotCalled(t, "NotifyRelease")
}

func TestRunUntilCanceled(t *testing.T) {
	m := container.NewMonitor(container.Config{MaxContainer: 1000000, MaxCraneLoad: 10})
	c := NewCrane(m, NewFixedLoads(10), time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, c.Run(ctx))

	d := m.Describe()
	assert.True(t, c.Deposits() > 0)
	assert.Equal(t, c.Deposited(), int64(d.Weight))
	assert.Equal(t, 0, d.ActiveDepositors)
}

func TestRunReturnsFirstError(t *testing.T) {
	m := container.NewMonitor(container.Config{MaxContainer: 100, MaxCraneLoad: 10})
	c := NewCrane(m, NewFixedLoads(10, 11), 0)

	err := c.Run(context.Background())
	assert.True(t, errors.Is(err, container.ErrInvalidArgument))
	assert.Equal(t, int64(1), c.Deposits())
}

func TestLoads(t *testing.T) {
	fixed := NewFixedLoads(1, 2, 3)
	var got []int
	for i := 0; i < 5; i++ {
		got = append(got, fixed.Next())
	}
	assert.Equal(t, []int{1, 2, 3, 1, 2}, got)

	random := NewRandomLoads(42, 5)
	for i := 0; i < 100; i++ {
		p := random.Next()
		assert.True(t, p >= 1 && p <= 5, "load %d", p)
	}
}
