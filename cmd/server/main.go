package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"airport_director/internal/advisor"
	"airport_director/internal/api"
	"airport_director/internal/config"
	"airport_director/internal/game"
	"airport_director/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	lg := logger.New(cfg.Logging.Level, cfg.Logging.Dir)

	engine := game.NewEngine(game.Options{
		Seed:               cfg.Sim.Seed,
		TickInterval:       cfg.Sim.TickInterval,
		StartingBalance:    cfg.Sim.StartingBalance,
		StartingDemand:     cfg.Sim.StartingDemand,
		StartingReputation: cfg.Sim.StartingReputation,
		Logger:             lg,
	})

	// No external generator is wired by default; the advisor runs on its
	// deterministic offline fallbacks.
	adv := advisor.New(nil, engine, lg, cfg.Sim.Seed+1)
	if cfg.Advisor.Enabled {
		engine.SetObserver(adv)
	}

	engine.StartSim(1)
	if cfg.Sim.StartPaused {
		engine.TogglePause()
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	lg.Info("server listening", "addr", addr)
	if err := http.ListenAndServe(addr, api.New(engine, adv)); err != nil {
		lg.Error("server exited", "err", err)
		os.Exit(1)
	}
}
