// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"context"
	"fmt"

	"go.recyclingplant.io/plant/container/statejson"
)

// Realization names accepted by New.
const (
	MonitorRealization = "monitor"
	ServerRealization  = "server"
)

// Controller is the container synchronization interface shared by cranes and
// the replacement crew.
type Controller interface {
	// NotifyWeight announces a load of p. Blocks while the container is being
	// replaced, then marks it Replaceable if p would overflow it, Ready otherwise.
	NotifyWeight(p int) error
	// IncrementWeight deposits p. Deferred until the container is not being
	// replaced and p fits.
	IncrementWeight(p int) error
	// NotifyRelease reports that a depositor left the container. Must be paired
	// with exactly one successful IncrementWeight.
	NotifyRelease()
	// PrepareReplacement blocks until the container is Replaceable with no
	// active depositors, then marks it Replacing.
	PrepareReplacement()
	// NotifyReplacementDone installs an empty Ready container.
	NotifyReplacementDone()
	// Describe returns a consistent snapshot of the controller state.
	Describe() statejson.ContainerDescription
}

// New returns the named realization. The context only bounds the server
// realization's goroutine.
func New(ctx context.Context, realization string, cfg Config) (Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch realization {
	case MonitorRealization:
		return NewMonitor(cfg), nil
	case ServerRealization:
		return NewServer(ctx, cfg), nil
	}
	return nil, fmt.Errorf("%w: unknown realization %q", ErrInvalidConfig, realization)
}
