// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a load is outside (0, MaxCraneLoad].
var ErrInvalidArgument = errors.New("InvalidArgument")

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("InvalidConfig")

// InvalidLoadError carries the rejected load. It matches ErrInvalidArgument
// under errors.Is.
type InvalidLoadError struct {
	Load         int
	MaxCraneLoad int
}

func (e *InvalidLoadError) Error() string {
	return fmt.Sprintf("%s: load %d outside (0, %d]", ErrInvalidArgument, e.Load, e.MaxCraneLoad)
}

// Is reports whether target is ErrInvalidArgument.
func (e *InvalidLoadError) Is(target error) bool {
	return target == ErrInvalidArgument
}
