package game

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/board"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/dice"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/rules"
)

// Defaults applied to zero-valued Options fields.
const (
	DefaultSuccessfulTries    = 10
	DefaultUnsuccessfulTries  = 3
	DefaultMaxPhaseMoves      = 50
	DefaultMaxPhaseFailures   = 3
	DefaultMaxOutOfTurnRounds = 3
	DefaultMaxDieRolls        = 1000
)

// Options configures a game.
type Options struct {
	ID     string
	Seed   int64
	Logger *zap.Logger
	Codes  ResultCodes

	// Stopping conditions. Zero disables a cap, except MaxDieRolls which
	// falls back to DefaultMaxDieRolls.
	MaxDieRolls  int
	MaxTimeSteps int
	MaxDuration  time.Duration

	// Negative cash recovery budgets.
	SuccessfulTries   int
	UnsuccessfulTries int

	MaxPhaseMoves      int
	MaxPhaseFailures   int
	MaxOutOfTurnRounds int

	Variants Variants
	Setup    []SetupFunc

	// Replay, when set, receives a snapshot at every turn boundary.
	Replay *Replay
}

func (o *Options) applyDefaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.Codes == (ResultCodes{}) {
		o.Codes = DefaultCodes()
	}
	if o.MaxDieRolls == 0 {
		o.MaxDieRolls = DefaultMaxDieRolls
	}
	if o.SuccessfulTries == 0 {
		o.SuccessfulTries = DefaultSuccessfulTries
	}
	if o.UnsuccessfulTries == 0 {
		o.UnsuccessfulTries = DefaultUnsuccessfulTries
	}
	if o.MaxPhaseMoves == 0 {
		o.MaxPhaseMoves = DefaultMaxPhaseMoves
	}
	if o.MaxPhaseFailures == 0 {
		o.MaxPhaseFailures = DefaultMaxPhaseFailures
	}
	if o.MaxOutOfTurnRounds == 0 {
		o.MaxOutOfTurnRounds = DefaultMaxOutOfTurnRounds
	}
}

// PlayerSpec seats a player.
type PlayerSpec struct {
	Name     string
	Provider DecisionProvider
}

// GameState is the single mutable aggregate of a game. It is owned by one
// goroutine for the lifetime of the game.
type GameState struct {
	ID string

	// Board holds one location per slot. Its length never changes.
	Board   []Location
	Players []*Player
	Bank    *Bank

	Chance         *Deck
	CommunityChest *Deck
	Dice           []*dice.Die

	Hooks    *Hooks
	Variants Variants

	CurrentDieTotal int
	LastRoll        []int
	TimeStep        int
	DieRolls        int

	GoPosition   int
	JailPosition int

	logger      *zap.Logger
	codes       ResultCodes
	opts        Options
	locations   map[string]Location
	colorGroups map[string][]*RealEstate

	history []HistoryEntry
	events  *rules.EventBus
	turns   *rules.TurnManager

	rng       *rand.Rand
	cardSeed  int64
	startedAt time.Time

	current         int
	doublesStreak   int
	pendingPurchase Property
}

// NewGame builds a game from a board schema and seats players in order.
func NewGame(schema *board.Schema, players []PlayerSpec, opts Options) (*GameState, error) {
	if schema == nil {
		return nil, fmt.Errorf("%w: board schema", ErrMissingConfig)
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	if len(players) < 2 {
		return nil, fmt.Errorf("need at least two players, got %d", len(players))
	}
	opts.applyDefaults()
	if opts.Codes.Success == opts.Codes.Failure {
		return nil, fmt.Errorf("%w: success and failure codes are both %d", ErrInvariantViolation, opts.Codes.Success)
	}

	gs := &GameState{
		ID:           opts.ID,
		Bank:         newBank(schema.Bank),
		Hooks:        NewHooks(),
		Variants:     opts.Variants,
		GoPosition:   schema.GoPosition,
		JailPosition: schema.JailPosition,
		logger:       opts.Logger,
		codes:        opts.Codes,
		opts:         opts,
		locations:    make(map[string]Location, len(schema.Locations)),
		colorGroups:  make(map[string][]*RealEstate),
		events:       rules.NewEventBus(),
		rng:          rand.New(rand.NewSource(opts.Seed)),
		cardSeed:     opts.Seed,
	}

	gs.Board = make([]Location, schema.Length())
	for _, spec := range schema.Locations {
		loc, err := newLocation(spec)
		if err != nil {
			return nil, err
		}
		for pos := spec.Start; pos < spec.End; pos++ {
			gs.Board[pos] = loc
		}
		gs.locations[spec.Name] = loc
		if re, ok := loc.(*RealEstate); ok {
			gs.colorGroups[re.Color] = append(gs.colorGroups[re.Color], re)
		}
	}

	for i, spec := range schema.Dice {
		d, err := dice.New(spec.Sides)
		if err != nil {
			return nil, fmt.Errorf("die %d: %w", i, err)
		}
		if spec.Distribution != "" {
			d.Distribution = dice.Distribution(spec.Distribution)
		}
		d.Weights = append([]int(nil), spec.Weights...)
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("die %d: %w", i, err)
		}
		gs.Dice = append(gs.Dice, d)
	}

	gs.Chance = newDeck(DeckChance, schema.Chance)
	gs.CommunityChest = newDeck(DeckCommunityChest, schema.CommunityChest)

	seen := make(map[string]bool, len(players))
	for _, ps := range players {
		name := strings.TrimSpace(ps.Name)
		if name == "" || seen[name] {
			return nil, fmt.Errorf("invalid or duplicate player name %q", ps.Name)
		}
		if ps.Provider == nil {
			return nil, fmt.Errorf("%w: decision provider for %s", ErrMissingConfig, name)
		}
		seen[name] = true
		gs.Players = append(gs.Players, newPlayer(name, schema.StartingCash, ps.Provider))
	}
	gs.turns = rules.NewTurnManager(gs.Players[0].Name)

	for _, setup := range opts.Setup {
		if err := setup(gs); err != nil {
			return nil, fmt.Errorf("game setup: %w", err)
		}
	}
	// Setup hooks are part of the rules; later changes are history.
	gs.Hooks.Observe(gs.recordHookChange)
	return gs, nil
}

// Codes returns the game's success/failure values.
func (gs *GameState) Codes() ResultCodes { return gs.codes }

// Logger returns the game logger.
func (gs *GameState) Logger() *zap.Logger { return gs.logger }

// Location looks a location up by name.
func (gs *GameState) Location(name string) (Location, bool) {
	loc, ok := gs.locations[name]
	return loc, ok
}

// Property looks up a purchasable location by name.
func (gs *GameState) Property(name string) (Property, bool) {
	prop, ok := gs.locations[name].(Property)
	return prop, ok
}

// LocationAt returns the location at a board slot.
func (gs *GameState) LocationAt(pos int) Location { return gs.Board[pos] }

// Player looks a player up by name.
func (gs *GameState) Player(name string) (*Player, bool) {
	for _, p := range gs.Players {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// ActivePlayers returns the players that have not lost, in seat order.
func (gs *GameState) ActivePlayers() []*Player {
	var out []*Player
	for _, p := range gs.Players {
		if !p.Lost() {
			out = append(out, p)
		}
	}
	return out
}

// CurrentPlayer returns the player whose turn it is.
func (gs *GameState) CurrentPlayer() *Player { return gs.Players[gs.current] }

// Phase returns the phase of the current turn.
func (gs *GameState) Phase() rules.Phase { return gs.turns.CurrentPhase() }

// Turn returns the 1-based turn number.
func (gs *GameState) Turn() int { return gs.turns.TurnNumber() }

// ColorGroup returns the streets of a color.
func (gs *GameState) ColorGroup(color string) []*RealEstate {
	return gs.colorGroups[color]
}

// PendingPurchase returns the bank-owned asset the current player may buy.
func (gs *GameState) PendingPurchase() Property { return gs.pendingPurchase }

// Options returns the options the game was built with.
func (gs *GameState) Options() Options { return gs.opts }

func (gs *GameState) indexOf(p *Player) int {
	for i, other := range gs.Players {
		if other == p {
			return i
		}
	}
	return -1
}

// setOwner moves prop to a new holder, nil meaning the bank, and keeps the
// derived holding counters in step.
func (gs *GameState) setOwner(prop Property, to *Player) {
	a := prop.asset()
	from := a.owner
	if from != nil {
		from.removeAsset(prop)
	}
	a.owner = to
	if to != nil {
		to.assets = append(to.assets, prop)
	}
	gs.refreshHoldings(from, prop)
	gs.refreshHoldings(to, prop)

	params := map[string]any{"asset": prop.Name(), "from": "bank", "to": "bank"}
	if from != nil {
		params["from"] = from.Name
	}
	if to != nil {
		params["to"] = to.Name
	}
	gs.record(rules.EventAssetTransferred, "transfer_asset", to, params, gs.codes.Success)
}

func (gs *GameState) refreshHoldings(p *Player, prop Property) {
	if p == nil {
		return
	}
	switch v := prop.(type) {
	case *Railroad:
		p.NumRailroads = 0
		for _, a := range p.assets {
			if _, ok := a.(*Railroad); ok {
				p.NumRailroads++
			}
		}
	case *Utility:
		p.NumUtilities = 0
		for _, a := range p.assets {
			if _, ok := a.(*Utility); ok {
				p.NumUtilities++
			}
		}
	case *RealEstate:
		full := true
		for _, re := range gs.colorGroups[v.Color] {
			if re.Owner() != p {
				full = false
				break
			}
		}
		if full {
			p.FullColorSets[v.Color] = true
		} else {
			delete(p.FullColorSets, v.Color)
		}
	}
}
