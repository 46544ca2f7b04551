// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package replacer

import (
	"context"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"go.recyclingplant.io/plant/container"
)

// Replacer swaps the full container for an empty one whenever the
// controller lets it.
type Replacer struct {
	controller   container.Controller
	replaceDelay time.Duration

	replacements atomic.Int64
}

// NewReplacer returns new Replacer instance.
func NewReplacer(controller container.Controller, replaceDelay time.Duration) *Replacer {
	return &Replacer{controller: controller, replaceDelay: replaceDelay}
}

// ReplaceOnce waits until the container may be replaced, simulates the slow
// physical swap and installs the empty container. The swap is never cut
// short: the container must not stay in Replacing.
func (r *Replacer) ReplaceOnce() {
	r.controller.PrepareReplacement()
	log.Debug("Replacing container")

	if r.replaceDelay > 0 {
		time.Sleep(r.replaceDelay)
	}

	r.controller.NotifyReplacementDone()
	n := r.replacements.Add(1)
	log.WithField("replacements", n).Debug("Container replaced")
}

// Run loops replacements until ctx is done. ctx is checked between
// replacements.
func (r *Replacer) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		r.ReplaceOnce()
	}
	return nil
}

// Replacements returns the number of completed replacements.
func (r *Replacer) Replacements() int64 {
	return r.replacements.Load()
}
