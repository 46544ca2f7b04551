// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package standalone

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	log "github.com/sirupsen/logrus"
)

// standaloneAccessLogDecorator logs failed requests at error level and the
// rest at debug level.
func standaloneAccessLogDecorator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		entry := log.WithFields(log.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"status":  status,
			"elapsed": time.Since(start),
		})
		if status/100 != 2 {
			entry.Error("status: request failed")
		} else {
			entry.Debug("status: request served")
		}
	})
}
