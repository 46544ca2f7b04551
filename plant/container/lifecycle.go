// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package container

import "fmt"

// Lifecycle is the container lifecycle state.
type Lifecycle int

const (
	// Ready container accepts more scrap.
	Ready Lifecycle = iota
	// Replaceable container would overflow with at least one announced load.
	Replaceable
	// Replacing container is being swapped, no scrap may be deposited.
	Replacing
)

// String values of possible lifecycle states
const (
	ReadyStateName       = "Ready"
	ReplaceableStateName = "Replaceable"
	ReplacingStateName   = "Replacing"
)

func (l Lifecycle) String() string {
	switch l {
	case Ready:
		return ReadyStateName
	case Replaceable:
		return ReplaceableStateName
	case Replacing:
		return ReplacingStateName
	}
	return fmt.Sprintf("Cannot stringify container.Lifecycle.%d", int(l))
}
