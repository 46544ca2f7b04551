// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package container provides the synchronization unit guarding the shared scrap
container of the recycling plant.

# Operations

Every crane and the replacement crew talk to the container through the
Controller interface:

	type Controller interface {
		NotifyWeight(p int) error
		IncrementWeight(p int) error
		NotifyRelease()
		PrepareReplacement()
		NotifyReplacementDone()
		Describe() statejson.ContainerDescription
	}

A deposit cycle is NotifyWeight -> IncrementWeight -> NotifyRelease. Loads
outside (0, MaxCraneLoad] fail immediately with ErrInvalidArgument. Every other
unmet condition suspends the caller until some other actor makes it hold.

# Lifecycle

	Ready -> Replaceable   NotifyWeight sees weight+p > MaxContainer
	Replaceable -> Ready   NotifyWeight sees weight+p <= MaxContainer
	Replaceable -> Replacing   PrepareReplacement, no active depositors
	Replacing -> Ready     NotifyReplacementDone, weight and depositors reset

# Realizations

Monitor guards the state with a mutex, one condition per guarded operation and
one resumption handle per deferred increment. Server owns the state in a single
goroutine and accepts requests over channels whose receive cases are enabled
only while the operation's condition holds.

Both keep deferred increments in arrival order and, after each state change,
resume the oldest ones that fit. A deferred increment is applied by the actor
that resumes it, so the resumed caller returns without re-checking.
*/
package container
