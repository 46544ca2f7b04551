// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"time"

	"go.recyclingplant.io/plant/container/statejson"
)

// containerState is the shared state. It is never touched outside the
// owning realization's exclusion region.
type containerState struct {
	cfg Config

	weight           int
	lifecycle        Lifecycle
	activeDepositors int

	lastModified time.Time
}

func newContainerState(cfg Config) containerState {
	return containerState{cfg: cfg, lifecycle: Ready, lastModified: time.Now()}
}

func (s *containerState) touch() {
	s.lastModified = time.Now()
}

// canNotify is the NotifyWeight condition.
func (s *containerState) canNotify() bool {
	return s.lifecycle != Replacing
}

// canIncrement is the IncrementWeight condition for load p.
func (s *containerState) canIncrement(p int) bool {
	return s.lifecycle != Replacing && s.weight+p <= s.cfg.MaxContainer
}

// canPrepare is the PrepareReplacement condition.
func (s *containerState) canPrepare() bool {
	return s.lifecycle == Replaceable && s.activeDepositors == 0
}

func (s *containerState) notify(p int) {
	if s.weight+p > s.cfg.MaxContainer {
		s.lifecycle = Replaceable
	} else {
		s.lifecycle = Ready
	}
	s.touch()
}

func (s *containerState) increment(p int) {
	s.weight += p
	s.activeDepositors++
	s.touch()
}

// release does not guard against unmatched calls, the counter may go negative.
func (s *containerState) release() {
	s.activeDepositors--
	s.touch()
}

func (s *containerState) prepare() {
	s.lifecycle = Replacing
	s.touch()
}

func (s *containerState) replaced() {
	s.weight = 0
	s.lifecycle = Ready
	s.activeDepositors = 0
	s.touch()
}

func (s *containerState) describe(realization string, deferred int) statejson.ContainerDescription {
	return statejson.ContainerDescription{
		Realization:        realization,
		Weight:             s.weight,
		MaxContainer:       s.cfg.MaxContainer,
		Lifecycle:          s.lifecycle.String(),
		ActiveDepositors:   s.activeDepositors,
		DeferredIncrements: deferred,
		LastModified:       s.lastModified.UnixNano() / int64(time.Millisecond),
	}
}
