// cmd/starstrike/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/opd-ai/go-starstrike/pkg/config"
	"github.com/opd-ai/go-starstrike/pkg/engine"
	"github.com/opd-ai/go-starstrike/pkg/event"
	"github.com/opd-ai/go-starstrike/pkg/health"
	"github.com/opd-ai/go-starstrike/pkg/logging"
	"github.com/opd-ai/go-starstrike/pkg/render"
	"github.com/opd-ai/go-starstrike/pkg/weapon"
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithSessionID(context.Background(), "")

	configPath := flag.String("config", "starstrike.toml", "Path to configuration file (.toml or .json)")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	ticks := flag.Int("ticks", 3000, "Number of ticks to simulate")
	step := flag.Float64("dt", 0.02, "Simulated seconds per tick")
	realtime := flag.Bool("realtime", false, "Pace ticks on the wall clock")
	framesPath := flag.String("frames", "", "Write msgpack snapshot frames to this file")
	viewEvery := flag.Int("view", 0, "Draw a terminal view every N ticks (0 disables)")
	healthAddr := flag.String("health", "", "Serve /health and /ready on this address")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	gameConfig, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}

	game, err := engine.NewGame(gameConfig, engine.WithLogger(logger), engine.WithContext(ctx))
	if err != nil {
		logger.Error(ctx, "Failed to create game", err)
		os.Exit(1)
	}
	subscribeEvents(ctx, logger, game.EventBus)

	var frames *msgpack.Encoder
	if *framesPath != "" {
		f, err := os.Create(*framesPath)
		if err != nil {
			logger.Error(ctx, "Failed to create frames file", err, "path", *framesPath)
			os.Exit(1)
		}
		defer f.Close()
		frames = msgpack.NewEncoder(f)
	}

	var view *render.TerminalRenderer
	if *viewEvery > 0 {
		view = render.NewTerminalRenderer(80, 24, gameConfig.Arena.Radius/40)
		view.SetClearScreen(true)
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var healthServer *http.Server
	if *healthAddr != "" {
		healthServer = startHealthServer(ctx, logger, game, *healthAddr)
	}

	game.Start()
	pilot := newAutopilot()
	var ticker *time.Ticker
	if *realtime {
		ticker = time.NewTicker(time.Duration(*step * float64(time.Second)))
		defer ticker.Stop()
	}

	for i := 0; i < *ticks && game.GetStatus() == engine.GameStatusActive; i++ {
		if ticker != nil {
			select {
			case <-runCtx.Done():
			case <-ticker.C:
			}
		}
		if runCtx.Err() != nil {
			logger.Info(ctx, "Interrupted, stopping simulation", "tick", i)
			break
		}

		fly(ctx, logger, game, pilot)
		if ticker != nil {
			game.Update()
		} else {
			game.Tick(*step)
		}

		snap := game.Snapshot()
		if frames != nil {
			if err := frames.Encode(snap); err != nil {
				logger.Error(ctx, "Failed to write frame", err, "tick", snap.Tick)
				frames = nil
			}
		}
		if view != nil && snap.Tick%uint64(*viewEvery) == 0 {
			view.Draw(snap)
			view.Present(os.Stdout, snap)
		}
	}

	final := game.Snapshot()
	logger.Info(ctx, "Simulation finished",
		"status", final.Status,
		"ticks", final.Tick,
		"time", final.Time,
		"galaxy", final.Galaxy,
		"score", final.Score,
		"kills", final.Kills,
	)

	if healthServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Health check server shutdown failed", err)
		}
	}
}

func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.GameConfig, error) {
	var gameConfig *config.GameConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		gameConfig = config.DefaultConfig()
	} else {
		gameConfig, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnvironmentOverrides(gameConfig); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}
	return gameConfig, nil
}

// fly applies one autopilot decision to the game
func fly(ctx context.Context, logger *logging.Logger, game *engine.Game, pilot *autopilot) {
	d := pilot.decide(game.Snapshot())
	game.SteerPlayer(d.controls)
	if d.explore {
		game.Explore()
	}
	if !d.fire {
		return
	}
	if _, err := game.FirePlayer(); err != nil && !errors.Is(err, weapon.ErrCoolingDown) {
		logger.Debug(ctx, "Autopilot could not fire", "error", err)
	}
}

func subscribeEvents(ctx context.Context, logger *logging.Logger, bus *event.Bus) {
	bus.Subscribe(event.BossActivated, func(e event.Event) {
		b := e.(*event.BossEvent)
		logger.Info(ctx, "Boss approaching", "encounter_id", b.EncounterID)
	})
	bus.Subscribe(event.BossPhaseChanged, func(e event.Event) {
		b := e.(*event.BossEvent)
		logger.Info(ctx, "Boss phase changed", "encounter_id", b.EncounterID, "phase", b.Phase)
	})
	bus.Subscribe(event.BossDefeated, func(e event.Event) {
		b := e.(*event.BossEvent)
		logger.Info(ctx, "Boss defeated", "encounter_id", b.EncounterID)
	})
	bus.Subscribe(event.GalaxyAdvanced, func(e event.Event) {
		p := e.(*event.ProgressEvent)
		logger.Info(ctx, "Galaxy cleared", "galaxy", p.Galaxy, "score", p.Score)
	})
	bus.Subscribe(event.PlayerDied, func(e event.Event) {
		p := e.(*event.PlayerEvent)
		logger.Warn(ctx, "Player ship lost", "lives_left", p.LivesLeft)
	})
	bus.Subscribe(event.GameOver, func(e event.Event) {
		p := e.(*event.ProgressEvent)
		logger.Warn(ctx, "Game over", "galaxy", p.Galaxy, "score", p.Score)
	})
}

func startHealthServer(ctx context.Context, logger *logging.Logger, game *engine.Game, addr string) *http.Server {
	checker := health.NewHealthChecker()
	checker.AddCheck(health.NewSimulationCheck(
		func() string { return game.GetStatus().String() },
		game.LastTickAt,
		5*time.Second,
	))
	checker.AddCheck(health.NewEntityBudgetCheck(10000, game.EntityCount))
	checker.AddCheck(health.NewMemoryHealthCheck(500, nil))

	server := &http.Server{
		Addr:         addr,
		Handler:      checker.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info(ctx, "Starting health check server", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "Health check server failed", err)
		}
	}()
	return server
}
