// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package container

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.recyclingplant.io/plant/container/statejson"
)

type notifyRequest struct {
	amount int
	done   chan struct{}
}

type incrementRequest struct {
	amount int
	ack    chan struct{}
}

// Server implements Controller with a single goroutine owning the state.
// Requests arrive over channels; a receive case is enabled only while the
// condition of its operation holds.
type Server struct {
	cfg Config

	notifyCh    chan notifyRequest
	incrementCh chan *incrementRequest
	releaseCh   chan struct{}
	prepareCh   chan chan struct{}
	replacedCh  chan struct{}
	describeCh  chan chan statejson.ContainerDescription
}

// NewServer starts the server goroutine. It exits when ctx is done, callers
// still waiting at that point stay blocked. cfg is expected to be valid.
func NewServer(ctx context.Context, cfg Config) *Server {
	s := &Server{
		cfg:         cfg,
		notifyCh:    make(chan notifyRequest),
		incrementCh: make(chan *incrementRequest),
		releaseCh:   make(chan struct{}),
		prepareCh:   make(chan chan struct{}),
		replacedCh:  make(chan struct{}),
		describeCh:  make(chan chan statejson.ContainerDescription),
	}

	go s.serve(ctx)
	return s
}

// NotifyWeight ...
func (s *Server) NotifyWeight(p int) error {
	if err := s.cfg.checkLoad(p); err != nil {
		return err
	}

	req := notifyRequest{amount: p, done: make(chan struct{})}
	s.notifyCh <- req
	<-req.done
	return nil
}

// IncrementWeight ...
func (s *Server) IncrementWeight(p int) error {
	if err := s.cfg.checkLoad(p); err != nil {
		return err
	}

	req := &incrementRequest{amount: p, ack: make(chan struct{})}
	s.incrementCh <- req
	<-req.ack
	return nil
}

// NotifyRelease ...
func (s *Server) NotifyRelease() {
	s.releaseCh <- struct{}{}
}

// PrepareReplacement ...
func (s *Server) PrepareReplacement() {
	done := make(chan struct{})
	s.prepareCh <- done
	<-done
}

// NotifyReplacementDone ...
func (s *Server) NotifyReplacementDone() {
	s.replacedCh <- struct{}{}
}

// Describe ...
func (s *Server) Describe() statejson.ContainerDescription {
	reply := make(chan statejson.ContainerDescription, 1)
	s.describeCh <- reply
	return <-reply
}

func (s *Server) serve(ctx context.Context) {
	state := newContainerState(s.cfg)
	var deferred []*incrementRequest

	for {
		// nil channels disable their case
		var notifyIn <-chan notifyRequest
		var incrementIn <-chan *incrementRequest
		var prepareIn <-chan chan struct{}

		if state.canNotify() {
			notifyIn = s.notifyCh
			incrementIn = s.incrementCh
		}
		if state.canPrepare() {
			prepareIn = s.prepareCh
		}

		changed := true

		select {
		case <-ctx.Done():
			log.WithField("deferred", len(deferred)).Debug("Container server stopped")
			return
		case req := <-notifyIn:
			state.notify(req.amount)
			close(req.done)
		case req := <-incrementIn:
			if state.canIncrement(req.amount) {
				state.increment(req.amount)
				close(req.ack)
			} else {
				deferred = append(deferred, req)
				log.WithFields(log.Fields{"load": req.amount, "weight": state.weight, "queued": len(deferred)}).Debug("Deferring increment")
			}
		case <-s.releaseCh:
			state.release()
			if state.activeDepositors < 0 {
				log.WithField("activeDepositors", state.activeDepositors).Warn("NotifyRelease without matching IncrementWeight")
			}
		case done := <-prepareIn:
			state.prepare()
			close(done)
			// nothing deferred can fit while replacing
			changed = false
		case <-s.replacedCh:
			state.replaced()
		case reply := <-s.describeCh:
			reply <- state.describe(ServerRealization, len(deferred))
			changed = false
		}

		if changed {
			deferred = drainDeferred(&state, deferred)
		}
	}
}

// drainDeferred grants every deferred increment that fits, oldest first.
// Each pass rotates the queue once, so requests that are not granted keep
// their relative order. Passes repeat while a grant happened.
func drainDeferred(state *containerState, queue []*incrementRequest) []*incrementRequest {
	for granted := true; granted; {
		granted = false
		for n := len(queue); n > 0; n-- {
			req := queue[0]
			queue[0] = nil
			queue = queue[1:]

			if state.canIncrement(req.amount) {
				state.increment(req.amount)
				close(req.ack)
				granted = true
				log.WithFields(log.Fields{"load": req.amount, "weight": state.weight, "pending": len(queue)}).Debug("Released deferred increment")
				continue
			}
			queue = append(queue, req)
		}
	}
	return queue
}
