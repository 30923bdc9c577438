package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/rewild/config"
	"github.com/pthm-cable/rewild/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, snapshots and config copy")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	level := flag.Int("level", 0, "Starting level index")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	realtime := flag.Bool("realtime", false, "Run ticks on the wall-clock scheduler instead of as fast as possible")
	scrubs := flag.Int("scrubs-per-tick", 5, "Autopilot scrub calls per tick (0 = no player)")
	retries := flag.Int("retries", 1, "Retries allowed per level after the timer runs out")
	campaign := flag.Bool("campaign", true, "Advance to the next level on completion")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.NewGameWithOptions(game.Options{
		Seed:      rngSeed,
		Level:     *level,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		Config:    cfg,
	})
	if err != nil {
		slog.Error("failed to start game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := &runner{
		game:     g,
		retries:  *retries,
		left:     *retries,
		campaign: *campaign,
		maxTicks: *maxTicks,
	}
	if *scrubs > 0 {
		r.pilot = game.NewAutopilot(*scrubs)
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"level", *level,
		"max_ticks", *maxTicks,
		"realtime", *realtime,
		"scrubs_per_tick", *scrubs,
	)

	if *realtime {
		r.runRealtime(ctx)
	} else {
		r.runFast(ctx)
	}
	slog.Info("simulation finished", "tick", g.Tick(), "biomass", g.View().Biomass)
}
