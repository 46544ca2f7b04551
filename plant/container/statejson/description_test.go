// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statejson

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainerDescriptionAsJSON(t *testing.T) {
	d := ContainerDescription{
		Realization:        "server",
		Weight:             60,
		MaxContainer:       100,
		Lifecycle:          "Replaceable",
		ActiveDepositors:   1,
		DeferredIncrements: 2,
		LastModified:       1234,
	}

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(d.AsJSON(), &decoded))

	assert.Equal(t, "Replaceable", decoded["lifecycle"])
	assert.Equal(t, float64(60), decoded["weight"])
	assert.Equal(t, float64(2), decoded["deferredIncrements"])
	assert.NotContains(t, decoded, "notifyWaiting")
	assert.NotContains(t, decoded, "prepareWaiting")
}
