// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package crane

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.recyclingplant.io/plant/container"
)

// Crane picks up scrap and deposits it in the shared container.
type Crane struct {
	ID string

	controller  container.Controller
	loads       LoadSource
	unloadDelay time.Duration

	deposits  atomic.Int64
	deposited atomic.Int64
}

// NewCrane returns new Crane instance with a random ID.
func NewCrane(controller container.Controller, loads LoadSource, unloadDelay time.Duration) *Crane {
	return &Crane{
		ID:          uuid.New().String(),
		controller:  controller,
		loads:       loads,
		unloadDelay: unloadDelay,
	}
}

// DepositCycle announces, deposits and releases one load. The unload delay is
// the only part that honours ctx: a call blocked on the container waits until
// the container lets it through.
func (c *Crane) DepositCycle(ctx context.Context) error {
	p := c.loads.Next()
	logger := log.WithFields(log.Fields{"crane": c.ID, "load": p})

	if err := c.controller.NotifyWeight(p); err != nil {
		return fmt.Errorf("crane %s: notify weight: %w", c.ID, err)
	}

	if err := c.controller.IncrementWeight(p); err != nil {
		return fmt.Errorf("crane %s: increment weight: %w", c.ID, err)
	}
	// the increment committed, the release must follow whatever happens
	defer c.controller.NotifyRelease()

	logger.Debug("Unloading")
	if c.unloadDelay > 0 {
		timer := time.NewTimer(c.unloadDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
		}
	}

	c.deposits.Add(1)
	c.deposited.Add(int64(p))
	return nil
}

// Run loops deposit cycles until ctx is done. ctx is checked between cycles.
func (c *Crane) Run(ctx context.Context) error {
	log.WithField("crane", c.ID).Debug("Crane started")
	for ctx.Err() == nil {
		if err := c.DepositCycle(ctx); err != nil {
			log.WithError(err).WithField("crane", c.ID).Warn("Deposit cycle failed")
			return err
		}
	}
	log.WithFields(log.Fields{"crane": c.ID, "deposits": c.Deposits()}).Debug("Crane stopped")
	return nil
}

// Deposits returns the number of completed deposit cycles.
func (c *Crane) Deposits() int64 {
	return c.deposits.Load()
}

// Deposited returns the total weight deposited.
func (c *Crane) Deposited() int64 {
	return c.deposited.Load()
}
