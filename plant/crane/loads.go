// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package crane

import (
	"math/rand"
	"sync"
)

// LoadSource yields the weight of the next piece of scrap a crane picks up.
type LoadSource interface {
	Next() int
}

type randomLoads struct {
	mu  sync.Mutex
	rnd *rand.Rand
	max int
}

// NewRandomLoads returns loads uniformly drawn from [1, max].
func NewRandomLoads(seed int64, max int) LoadSource {
	return &randomLoads{rnd: rand.New(rand.NewSource(seed)), max: max}
}

func (r *randomLoads) Next() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(r.max) + 1
}

// FixedLoads cycles through a fixed sequence of loads.
type FixedLoads struct {
	mu    sync.Mutex
	loads []int
	next  int
}

// NewFixedLoads ...
func NewFixedLoads(loads ...int) *FixedLoads {
	return &FixedLoads{loads: loads}
}

// Next ...
func (f *FixedLoads) Next() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.loads[f.next%len(f.loads)]
	f.next++
	return p
}
