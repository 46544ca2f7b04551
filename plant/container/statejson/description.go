// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statejson

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"
)

// ContainerDescription describes internal state of the container controller for debugging purposes
type ContainerDescription struct {
	Realization        string `json:"realization"`
	Weight             int    `json:"weight"`
	MaxContainer       int    `json:"maxContainer"`
	Lifecycle          string `json:"lifecycle"`
	ActiveDepositors   int    `json:"activeDepositors"`
	DeferredIncrements int    `json:"deferredIncrements"`
	// Waiter counts are only known to the monitor realization.
	NotifyWaiting  int   `json:"notifyWaiting,omitempty"`
	PrepareWaiting int   `json:"prepareWaiting,omitempty"`
	LastModified   int64 `json:"lastModified"`
}

func (s *ContainerDescription) AsJSON() []byte {
	bytes, err := json.Marshal(s)
	if err != nil {
		log.Panicf("Failed to marshall container state: %s", err)
	}
	return bytes
}
