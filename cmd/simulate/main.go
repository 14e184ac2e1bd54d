package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"go.uber.org/zap"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/config"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/board"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/store"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/tournament"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	games      = flag.Int("games", 0, "override simulation.games")
	seed       = flag.Int64("seed", -1, "override game.seed")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *games > 0 {
		cfg.Simulation.Games = *games
	}
	if *seed >= 0 {
		cfg.Game.Seed = *seed
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting simulator",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	schema := board.Classic()
	if cfg.Simulation.Board != "" {
		schema, err = board.LoadFile(cfg.Simulation.Board)
		if err != nil {
			logger.Fatal("failed to load board", zap.String("path", cfg.Simulation.Board), zap.Error(err))
		}
	}

	tcfg := tournament.Config{
		Name:        "simulate",
		Games:       cfg.Simulation.Games,
		Agents:      cfg.Simulation.Agents,
		Workers:     cfg.Simulation.Workers,
		Seed:        cfg.Game.Seed,
		Board:       schema,
		GameOptions: cfg.Options,
	}
	if cfg.Simulation.ReplayDir != "" {
		tcfg.Recorder = game.NewReplayRecorder(logger, cfg.Simulation.ReplayDir)
	}
	if cfg.Store.DSN != "" {
		results, err := store.New(ctx, cfg.Store.DSN, cfg.Store.MaxConns, logger)
		if err != nil {
			logger.Fatal("failed to connect to results store", zap.Error(err))
		}
		defer results.Close()
		if err := results.EnsureSchema(ctx); err != nil {
			logger.Fatal("failed to prepare results store", zap.Error(err))
		}
		tcfg.Sink = results
	}

	manager := tournament.NewManager(logger)
	tour, err := manager.CreateTournament(tcfg)
	if err != nil {
		logger.Fatal("invalid tournament", zap.Error(err))
	}
	if err := tour.Run(ctx); err != nil {
		logger.Warn("tournament interrupted", zap.Error(err))
	}

	printSummary(tour.Snapshot())
}

func printSummary(snap tournament.TournamentSnapshot) {
	seats := snap.Seats
	sort.SliceStable(seats, func(i, j int) bool { return seats[i].Wins > seats[j].Wins })

	fmt.Printf("tournament %s: %d/%d games played, %d aborted\n", snap.ID, snap.Played, snap.Games, snap.Aborted)
	for _, s := range seats {
		rate := 0.0
		if snap.Played > 0 {
			rate = 100 * float64(s.Wins) / float64(snap.Played)
		}
		fmt.Printf("  %-24s wins %4d (%5.1f%%)  losses %4d  survived %4d\n", s.Name, s.Wins, rate, s.Losses, s.Survivals)
	}
}
