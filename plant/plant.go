// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package plant wires cranes and the replacement crew to one container
// controller and runs them concurrently.
package plant

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"go.recyclingplant.io/plant/config"
	"go.recyclingplant.io/plant/container"
	"go.recyclingplant.io/plant/container/statejson"
	"go.recyclingplant.io/plant/crane"
	"go.recyclingplant.io/plant/replacer"
	"golang.org/x/sync/errgroup"
)

// Plant owns the single container controller shared by every actor.
type Plant struct {
	cfg config.Config

	Controller container.Controller
	Cranes     []*crane.Crane
	Replacer   *replacer.Replacer

	running atomic.Int32
	stop    context.CancelFunc
}

// CraneReport ...
type CraneReport struct {
	ID        string `json:"id"`
	Deposits  int64  `json:"deposits"`
	Deposited int64  `json:"deposited"`
}

// Report summarizes a run.
type Report struct {
	Cranes       []CraneReport                  `json:"cranes"`
	Replacements int64                          `json:"replacements"`
	Stranded     int                            `json:"stranded"`
	Container    statejson.ContainerDescription `json:"container"`
}

// AsJSON ...
func (r *Report) AsJSON() []byte {
	bytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		log.Panicf("Failed to marshall plant report: %s", err)
	}
	return bytes
}

// New builds the controller and the actors. Close releases the controller.
func New(cfg config.Config) (*Plant, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, stop := context.WithCancel(context.Background())
	controller, err := container.New(ctx, cfg.Realization, cfg.Container)
	if err != nil {
		stop()
		return nil, err
	}

	p := &Plant{
		cfg:        cfg,
		Controller: controller,
		Replacer:   replacer.NewReplacer(controller, cfg.ReplaceDelay),
		stop:       stop,
	}
	for i := 0; i < cfg.Cranes; i++ {
		loads := crane.NewRandomLoads(cfg.Seed+int64(i), cfg.Container.MaxCraneLoad)
		p.Cranes = append(p.Cranes, crane.NewCrane(controller, loads, cfg.UnloadDelay))
	}
	return p, nil
}

// Run starts every actor and stops them when ctx is done or the configured
// duration elapsed. Cranes finish their current cycle first; those still
// blocked on the container after the grace period are reported as stranded
// and left behind.
func (p *Plant) Run(ctx context.Context) (*Report, error) {
	if p.cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Duration)
		defer cancel()
	}

	errg, runCtx := errgroup.WithContext(ctx)
	for _, c := range p.Cranes {
		c := c
		p.running.Add(1)
		errg.Go(func() error {
			defer p.running.Add(-1)
			return c.Run(runCtx)
		})
	}

	// may stay blocked in PrepareReplacement, never waited for
	go p.Replacer.Run(runCtx)

	log.WithFields(log.Fields{
		"cranes":       len(p.Cranes),
		"realization":  p.cfg.Realization,
		"maxContainer": p.cfg.Container.MaxContainer,
		"maxCraneLoad": p.cfg.Container.MaxCraneLoad,
	}).Info("Plant started")

	finished := make(chan error, 1)
	go func() { finished <- errg.Wait() }()

	<-runCtx.Done()

	var err error
	grace := time.NewTimer(p.cfg.Grace)
	defer grace.Stop()
	select {
	case err = <-finished:
	case <-grace.C:
		log.WithField("stranded", p.running.Load()).Warn("Cranes still waiting on the container after grace period")
	}

	report := p.Report()
	log.WithFields(log.Fields{
		"replacements": report.Replacements,
		"stranded":     report.Stranded,
		"weight":       report.Container.Weight,
	}).Info("Plant stopped")
	return report, err
}

// Report returns a snapshot of the actors' counters and the container.
func (p *Plant) Report() *Report {
	r := &Report{
		Replacements: p.Replacer.Replacements(),
		Stranded:     int(p.running.Load()),
		Container:    p.Controller.Describe(),
	}
	for _, c := range p.Cranes {
		r.Cranes = append(r.Cranes, CraneReport{ID: c.ID, Deposits: c.Deposits(), Deposited: c.Deposited()})
	}
	return r
}

// Close stops the controller. Calls still blocked on it stay blocked.
func (p *Plant) Close() {
	p.stop()
}
