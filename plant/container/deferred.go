// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"sync"
	"time"
)

// deferredIncrement is a suspended IncrementWeight call. Its condition shares
// the monitor mutex, so SuspendUnsafe and ResumeUnsafe must be called with the
// mutex held.
type deferredIncrement struct {
	amount   int
	enqueued time.Time

	resumeCondition *sync.Cond
	resumed         bool
}

func newDeferredIncrement(amount int, l sync.Locker) *deferredIncrement {
	return &deferredIncrement{
		amount:          amount,
		enqueued:        time.Now(),
		resumeCondition: sync.NewCond(l),
	}
}

// SuspendUnsafe suspends the caller until ResumeUnsafe is called.
func (d *deferredIncrement) SuspendUnsafe() {
	for !d.resumed {
		d.resumeCondition.Wait()
	}
}

// ResumeUnsafe wakes the suspended caller. The increment must already have
// been applied.
func (d *deferredIncrement) ResumeUnsafe() {
	d.resumed = true
	d.resumeCondition.Signal()
}
