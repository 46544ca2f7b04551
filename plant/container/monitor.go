// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"slices"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.recyclingplant.io/plant/container/statejson"
)

// Monitor implements Controller with a mutex and condition variables.
type Monitor struct {
	mu sync.Mutex

	// GUARDED_BY(mu)
	state containerState

	// Signalled when NotifyWeight may proceed.
	notifyCondition *sync.Cond
	notifyWaiting   int

	// Signalled when PrepareReplacement may proceed.
	prepareCondition *sync.Cond
	prepareWaiting   int

	// Suspended IncrementWeight calls in arrival order.
	//
	// GUARDED_BY(mu)
	deferred []*deferredIncrement
}

// NewMonitor returns new Monitor instance. cfg is expected to be valid.
func NewMonitor(cfg Config) *Monitor {
	m := &Monitor{state: newContainerState(cfg)}
	m.notifyCondition = sync.NewCond(&m.mu)
	m.prepareCondition = sync.NewCond(&m.mu)
	return m
}

// NotifyWeight ...
func (m *Monitor) NotifyWeight(p int) error {
	if err := m.state.cfg.checkLoad(p); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for !m.state.canNotify() {
		log.WithField("load", p).Debug("NotifyWeight blocked while replacing")
		m.notifyWaiting++
		m.notifyCondition.Wait()
		m.notifyWaiting--
	}

	m.state.notify(p)
	m.releaseUnsafe()
	return nil
}

// IncrementWeight ...
func (m *Monitor) IncrementWeight(p int) error {
	if err := m.state.cfg.checkLoad(p); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.state.canIncrement(p) {
		req := newDeferredIncrement(p, &m.mu)
		m.deferred = append(m.deferred, req)
		log.WithFields(log.Fields{"load": p, "weight": m.state.weight, "queued": len(m.deferred)}).Debug("Deferring increment")
		// Applied by whoever resumes us.
		req.SuspendUnsafe()
		return nil
	}

	m.state.increment(p)
	m.releaseUnsafe()
	return nil
}

// NotifyRelease ...
func (m *Monitor) NotifyRelease() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.release()
	if m.state.activeDepositors < 0 {
		log.WithField("activeDepositors", m.state.activeDepositors).Warn("NotifyRelease without matching IncrementWeight")
	}
	m.releaseUnsafe()
}

// PrepareReplacement ...
func (m *Monitor) PrepareReplacement() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for !m.state.canPrepare() {
		log.Debug("PrepareReplacement blocked")
		m.prepareWaiting++
		m.prepareCondition.Wait()
		m.prepareWaiting--
	}

	m.state.prepare()
	m.releaseUnsafe()
}

// NotifyReplacementDone ...
func (m *Monitor) NotifyReplacementDone() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.replaced()
	m.releaseUnsafe()
}

// Describe ...
func (m *Monitor) Describe() statejson.ContainerDescription {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := m.state.describe(MonitorRealization, len(m.deferred))
	res.NotifyWaiting = m.notifyWaiting
	res.PrepareWaiting = m.prepareWaiting
	return res
}

// releaseUnsafe wakes the waiters whose condition holds after a state change.
// Woken NotifyWeight and PrepareReplacement callers re-check their condition.
// Deferred increments are applied here, so every promotion changes the state
// and the pass is repeated until no deferred increment fits.
func (m *Monitor) releaseUnsafe() {
	for {
		if m.state.canNotify() && m.notifyWaiting > 0 {
			m.notifyCondition.Signal()
		}

		if m.state.canPrepare() && m.prepareWaiting > 0 {
			m.prepareCondition.Signal()
		}

		if !m.promoteDeferredUnsafe() {
			return
		}
	}
}

// promoteDeferredUnsafe resumes the oldest deferred increment that fits.
func (m *Monitor) promoteDeferredUnsafe() bool {
	for i, req := range m.deferred {
		if !m.state.canIncrement(req.amount) {
			continue
		}

		m.deferred = slices.Delete(m.deferred, i, i+1)
		m.state.increment(req.amount)
		req.ResumeUnsafe()
		log.WithFields(log.Fields{
			"load":    req.amount,
			"weight":  m.state.weight,
			"waited":  time.Since(req.enqueued),
			"pending": len(m.deferred),
		}).Debug("Released deferred increment")
		return true
	}
	return false
}
