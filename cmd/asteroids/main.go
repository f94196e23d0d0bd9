package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/asteroids/internal/core/observability/log"
	"github.com/zeusync/asteroids/internal/core/simulation"
	"github.com/zeusync/asteroids/internal/core/systems/physics"
	"github.com/zeusync/asteroids/internal/injector"
)

const (
	exitOK = iota
	exitFailure
	exitUsage
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run returns the process exit code. Every deferred cleanup has run by the
// time it returns.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("asteroids", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "scene config file (.yaml, .yml or .json)")
		frames     = fs.Int("frames", 0, "number of frames to run, 0 runs until interrupted")
		engine     = fs.String("engine", "", "physics engine: chipmunk or box2d")
		seed       = fs.Uint64("seed", 0, "seed for asteroid shapes")
		logLevel   = fs.String("log-level", "", "debug, info, warn or error")
		strict     = fs.Bool("strict", false, "fail on stale body handles instead of skipping them")
		out        = fs.String("out", "", "write frames as JSON lines to this file")
		logOut     = fs.String("log-out", "stderr", "log destination path")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg := simulation.DefaultConfig()
	if *configPath != "" {
		loaded, err := simulation.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintln(stderr, "Error loading config:", err)
			return exitUsage
		}
		cfg = *loaded
	}

	// explicit flags override the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frames":
			cfg.Frames = *frames
		case "engine":
			cfg.Engine = physics.Kind(*engine)
		case "seed":
			cfg.Seed = *seed
		case "log-level":
			cfg.LogLevel = *logLevel
		case "strict":
			cfg.StrictHandles = *strict
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "Error in config:", err)
		return exitUsage
	}

	logger := injector.ProvideLogger(cfg, log.WithEncoding("console"), log.WithOutputs(*logOut))
	defer func() { _ = logger.Sync() }()

	sim, err := injector.InitializeSimulation(cfg, logger)
	if err != nil {
		logger.Error("failed to build simulation", log.Error(err))
		return exitFailure
	}

	sinks := simulation.MultiSink{simulation.NewLogSink(logger)}
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Error("failed to open frame output", log.String("path", *out), log.Error(err))
			return exitFailure
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Error("failed to close frame output", log.String("path", *out), log.Error(err))
			}
		}()
		sinks = append(sinks, simulation.NewJSONSink(f))
	}

	if err = sim.Run(ctx, sinks); err != nil {
		logger.Error("simulation failed", log.Error(err))
		return exitFailure
	}
	return exitOK
}
