// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package standalone

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"
	"go.recyclingplant.io/plant/container/statejson"
)

// Describer is the read-only view of a container controller.
type Describer interface {
	Describe() statejson.ContainerDescription
}

// NewHTTPRouter exposes the controller state. None of the container
// operations are reachable from it.
func NewHTTPRouter(d Describer) *chi.Mux {
	r := chi.NewRouter()
	r.Use(standaloneAccessLogDecorator)

	r.Get("/test/ping", func(w http.ResponseWriter, r *http.Request) { PingHandler(w, r) })
	r.Get("/test/internalState", func(w http.ResponseWriter, r *http.Request) { InternalStateHandler(w, r, d) })
	return r
}

// ListenAndServe serves the router on addr until ctx is done.
func ListenAndServe(ctx context.Context, addr string, d Describer) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: NewHTTPRouter(d),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("Failed to shut down status server")
		}
	}()

	log.Infof("Status API listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
