// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package standalone

import (
	"net/http"

	"github.com/go-chi/render"
)

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pong"))
}

func InternalStateHandler(w http.ResponseWriter, r *http.Request, d Describer) {
	state := d.Describe()
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &state)
}
