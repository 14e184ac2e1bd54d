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

	"go.uber.org/zap"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/config"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/agent"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/board"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/spectate"
)

var configPath = flag.String("config", "", "path to configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := spectate.NewHub(logger)
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	srv := &http.Server{Addr: cfg.Spectate.Address, Handler: mux}
	go func() {
		logger.Info("spectator server starting", zap.String("address", cfg.Spectate.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("spectator server error", zap.Error(err))
			stop()
		}
	}()

	if err := playForever(ctx, cfg, hub, logger); err != nil {
		logger.Error("game aborted", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("spectator server shutdown", zap.Error(err))
	}
}

// playForever runs one game after another until ctx ends, pausing between
// turns so spectators can follow along.
func playForever(ctx context.Context, cfg *config.Config, hub *spectate.Hub, logger *zap.Logger) error {
	schema := board.Classic()
	if cfg.Simulation.Board != "" {
		var err error
		if schema, err = board.LoadFile(cfg.Simulation.Board); err != nil {
			return err
		}
	}

	for seed := cfg.Game.Seed; ctx.Err() == nil; seed++ {
		specs := make([]game.PlayerSpec, len(cfg.Simulation.Agents))
		for i, name := range cfg.Simulation.Agents {
			provider, ok := agent.New(name)
			if !ok {
				return fmt.Errorf("unknown agent %q", name)
			}
			specs[i] = game.PlayerSpec{Name: fmt.Sprintf("player%d-%s", i+1, name), Provider: provider}
		}

		opts := cfg.Options(seed, logger)
		if cfg.Spectate.TurnDelay > 0 {
			opts.Setup = append(opts.Setup, pace(ctx, cfg.Spectate.TurnDelay))
		}
		gs, err := game.NewGame(schema, specs, opts)
		if err != nil {
			return err
		}

		unwatch := hub.Watch(gs)
		res, err := gs.Run(ctx)
		unwatch()
		if err != nil {
			return err
		}
		logger.Info("game finished",
			zap.Int64("seed", seed),
			zap.String("winner", res.Winner),
			zap.String("reason", string(res.Reason)),
		)
	}
	return nil
}

// pace delays every dice roll, which keeps the engine itself unaware of
// spectators.
func pace(ctx context.Context, delay time.Duration) game.SetupFunc {
	return func(gs *game.GameState) error {
		return gs.Hooks.Register(game.HookRollDie, func(gs *game.GameState) ([]int, error) {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
			}
			return game.DefaultRollDice(gs)
		})
	}
}
