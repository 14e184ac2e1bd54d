// Package config loads simulator configuration. MONOPOLY_ environment
// variables override the YAML file, which overrides the defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/novelty"
)

// EnvPrefix prefixes every environment override, e.g. MONOPOLY_GAME_SEED.
const EnvPrefix = "MONOPOLY"

// Config is the full configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Game       GameConfig       `mapstructure:"game"`
	Variants   VariantsConfig   `mapstructure:"variants"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Store      StoreConfig      `mapstructure:"store"`
	Spectate   SpectateConfig   `mapstructure:"spectate"`
}

// LoggingConfig selects the zap level and encoding.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GameConfig holds per-game engine settings.
type GameConfig struct {
	Seed               int64         `mapstructure:"seed"`
	MaxDieRolls        int           `mapstructure:"max_die_rolls"`
	MaxTimeSteps       int           `mapstructure:"max_time_steps"`
	MaxDuration        time.Duration `mapstructure:"max_duration"`
	SuccessfulTries    int           `mapstructure:"successful_tries"`
	UnsuccessfulTries  int           `mapstructure:"unsuccessful_tries"`
	MaxPhaseMoves      int           `mapstructure:"max_phase_moves"`
	MaxPhaseFailures   int           `mapstructure:"max_phase_failures"`
	MaxOutOfTurnRounds int           `mapstructure:"max_out_of_turn_rounds"`
	SuccessCode        int           `mapstructure:"success_code"`
	FailureCode        int           `mapstructure:"failure_code"`
}

// VariantsConfig turns on rule variants. A nil section leaves the variant off.
type VariantsConfig struct {
	Tax *struct {
		Percentage float64 `mapstructure:"percentage"`
		Minimum    int     `mapstructure:"minimum"`
	} `mapstructure:"tax"`
	Monopoly *struct {
		Multipliers map[string]int `mapstructure:"multipliers"`
	} `mapstructure:"monopoly"`
	GoBonus *struct {
		LandingMultiplier int `mapstructure:"landing_multiplier"`
		Bonus             int `mapstructure:"bonus"`
	} `mapstructure:"go_bonus"`
	Improvement *struct {
		MaxHouses   int  `mapstructure:"max_houses"`
		AllowHotels bool `mapstructure:"allow_hotels"`
	} `mapstructure:"improvement"`
}

// SimulationConfig describes a tournament run.
type SimulationConfig struct {
	Games int `mapstructure:"games"`
	// Agents names one decision provider per seat.
	Agents []string `mapstructure:"agents"`
	// Board is a YAML board file. Empty means the classic board.
	Board     string `mapstructure:"board"`
	Workers   int    `mapstructure:"workers"`
	ReplayDir string `mapstructure:"replay_dir"`
}

// StoreConfig locates the results database. An empty DSN disables storage.
type StoreConfig struct {
	DSN      string `mapstructure:"dsn"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// SpectateConfig configures the live spectator server.
type SpectateConfig struct {
	Address   string        `mapstructure:"address"`
	TurnDelay time.Duration `mapstructure:"turn_delay"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.seed", 0)
	v.SetDefault("game.max_die_rolls", game.DefaultMaxDieRolls)
	v.SetDefault("game.max_time_steps", 0)
	v.SetDefault("game.max_duration", 0)
	v.SetDefault("game.successful_tries", game.DefaultSuccessfulTries)
	v.SetDefault("game.unsuccessful_tries", game.DefaultUnsuccessfulTries)
	v.SetDefault("game.max_phase_moves", game.DefaultMaxPhaseMoves)
	v.SetDefault("game.max_phase_failures", game.DefaultMaxPhaseFailures)
	v.SetDefault("game.max_out_of_turn_rounds", game.DefaultMaxOutOfTurnRounds)
	v.SetDefault("game.success_code", int(game.DefaultSuccess))
	v.SetDefault("game.failure_code", int(game.DefaultFailure))

	v.SetDefault("simulation.games", 100)
	v.SetDefault("simulation.agents", []string{"background", "background", "background", "background"})
	v.SetDefault("simulation.board", "")
	v.SetDefault("simulation.workers", 4)
	v.SetDefault("simulation.replay_dir", "")

	v.SetDefault("store.dsn", "")
	v.SetDefault("store.max_conns", 4)

	v.SetDefault("spectate.address", ":8080")
	v.SetDefault("spectate.turn_delay", 250*time.Millisecond)
}

// Load reads path, applies environment overrides and validates the result.
// An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	g := c.Game
	if g.SuccessCode == g.FailureCode {
		errs = append(errs, fmt.Errorf("game.success_code and game.failure_code must differ"))
	}
	for name, value := range map[string]int{
		"game.max_die_rolls":          g.MaxDieRolls,
		"game.max_time_steps":         g.MaxTimeSteps,
		"game.successful_tries":       g.SuccessfulTries,
		"game.unsuccessful_tries":     g.UnsuccessfulTries,
		"game.max_phase_moves":        g.MaxPhaseMoves,
		"game.max_phase_failures":     g.MaxPhaseFailures,
		"game.max_out_of_turn_rounds": g.MaxOutOfTurnRounds,
	} {
		if value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", name))
		}
	}
	if c.Simulation.Games < 1 {
		errs = append(errs, fmt.Errorf("simulation.games must be positive"))
	}
	if len(c.Simulation.Agents) < 2 {
		errs = append(errs, fmt.Errorf("simulation.agents needs at least two seats"))
	}
	if c.Simulation.Workers < 1 {
		errs = append(errs, fmt.Errorf("simulation.workers must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Variants converts the configured variant sections.
func (c VariantsConfig) Variants() game.Variants {
	var out game.Variants
	if c.Tax != nil {
		out.Tax = &game.TaxVariant{Percentage: c.Tax.Percentage, Minimum: c.Tax.Minimum}
	}
	if c.Monopoly != nil {
		out.Monopoly = &game.MonopolyVariant{Multipliers: c.Monopoly.Multipliers}
	}
	if c.GoBonus != nil {
		out.GoBonus = &game.GoBonusVariant{LandingMultiplier: c.GoBonus.LandingMultiplier, Bonus: c.GoBonus.Bonus}
	}
	if c.Improvement != nil {
		out.Improvement = &game.ImprovementVariant{MaxHouses: c.Improvement.MaxHouses, AllowHotels: c.Improvement.AllowHotels}
	}
	return out
}

// Options builds engine options for one game, with the configured variants
// installed. The caller supplies the seed so a tournament can derive one per
// game.
func (c *Config) Options(seed int64, logger *zap.Logger) game.Options {
	g := c.Game
	variants := c.Variants.Variants()
	return game.Options{
		Seed:               seed,
		Logger:             logger,
		Codes:              game.ResultCodes{Success: game.Code(g.SuccessCode), Failure: game.Code(g.FailureCode)},
		MaxDieRolls:        g.MaxDieRolls,
		MaxTimeSteps:       g.MaxTimeSteps,
		MaxDuration:        g.MaxDuration,
		SuccessfulTries:    g.SuccessfulTries,
		UnsuccessfulTries:  g.UnsuccessfulTries,
		MaxPhaseMoves:      g.MaxPhaseMoves,
		MaxPhaseFailures:   g.MaxPhaseFailures,
		MaxOutOfTurnRounds: g.MaxOutOfTurnRounds,
		Variants:           variants,
		Setup:              novelty.For(variants),
	}
}
