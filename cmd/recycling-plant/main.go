// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.recyclingplant.io/plant"
	"go.recyclingplant.io/plant/config"
	"go.recyclingplant.io/plant/logging"
	"go.recyclingplant.io/plant/standalone"

	log "github.com/sirupsen/logrus"
)

type options struct {
	LogLevel    string        `long:"log-level" default:"info" description:"log level"`
	Config      string        `long:"config" description:"plant TOML config file"`
	Realization string        `long:"realization" choice:"monitor" choice:"server" description:"container controller realization"`
	Cranes      int           `long:"cranes" description:"number of cranes"`
	Duration    time.Duration `long:"duration" description:"run duration, 0 runs until interrupted"`
	StatusAddr  string        `long:"status-addr" description:"address of the read-only status API"`
}

func main() {
	opts := getCLIArgs()
	if err := logging.SetLogLevel(opts.LogLevel); err != nil {
		log.WithError(err).Fatal("Failed to set log level")
	}

	cfg, err := getConfig(opts)
	if err != nil {
		log.WithError(err).Fatal("Failed to load plant config")
	}

	p, err := plant.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to build plant")
	}
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go signalHandler(cancel)

	if cfg.StatusAddr != "" {
		go func() {
			if err := standalone.ListenAndServe(ctx, cfg.StatusAddr, p.Controller); err != nil {
				log.WithError(err).Error("Status API stopped")
			}
		}()
	}

	report, err := p.Run(ctx)
	cancel()
	os.Stdout.Write(append(report.AsJSON(), '\n'))
	if err != nil {
		log.WithError(err).Fatal("Plant run failed")
	}
}

func getCLIArgs() options {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(os.Args[1:]); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.WithError(err).Fatal("Failed to parse command line arguments:", os.Args)
	}
	return opts
}

// getConfig loads the file config, if any, and applies flag overrides.
func getConfig(opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return config.Config{}, err
		}
	}

	if opts.Realization != "" {
		cfg.Realization = opts.Realization
	}
	if opts.Cranes > 0 {
		cfg.Cranes = opts.Cranes
	}
	if opts.Duration > 0 {
		cfg.Duration = opts.Duration
	}
	if opts.StatusAddr != "" {
		cfg.StatusAddr = opts.StatusAddr
	}
	return cfg, cfg.Validate()
}

// Trap SIGINT and SIGTERM signals and stop the run
func signalHandler(cancel context.CancelFunc) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	sigReceived := <-sig
	log.WithField("signal", sigReceived.String()).Info("Received signal")
	cancel()
}
