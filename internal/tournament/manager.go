package tournament

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/agent"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/board"
)

// TournamentState represents the state of a tournament
type TournamentState int

const (
	TournamentStateWaiting TournamentState = iota
	TournamentStateInProgress
	TournamentStateFinished
	TournamentStateCancelled
)

func (s TournamentState) String() string {
	switch s {
	case TournamentStateWaiting:
		return "WAITING"
	case TournamentStateInProgress:
		return "IN_PROGRESS"
	case TournamentStateFinished:
		return "FINISHED"
	case TournamentStateCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// OptionsFunc builds the engine options for the game played with seed.
type OptionsFunc func(seed int64, logger *zap.Logger) game.Options

// ResultSink receives every finished game.
type ResultSink interface {
	SaveResult(ctx context.Context, tournamentID string, seed int64, res *game.Result) error
}

// Config describes a batch of seeded games between fixed seats.
type Config struct {
	Name  string
	Games int
	// Agents names one decision provider per seat; see agent.New.
	Agents  []string
	Workers int
	// Seed of the first game. Game i is played with Seed+i.
	Seed  int64
	Board *board.Schema

	GameOptions OptionsFunc
	Recorder    *game.ReplayRecorder
	Sink        ResultSink
}

// Seat is one tournament participant. Seats keep their names across games
// while the seating order rotates.
type Seat struct {
	Name      string
	Agent     string
	Wins      int
	Losses    int
	Survivals int
}

// GameRecord is the outcome of one tournament game.
type GameRecord struct {
	Index  int
	Seed   int64
	Result *game.Result
	Err    error
}

// SeatSnapshot captures seat data for external use.
type SeatSnapshot struct {
	Name      string
	Agent     string
	Wins      int
	Losses    int
	Survivals int
}

// TournamentSnapshot captures a consistent view of a tournament.
type TournamentSnapshot struct {
	ID         string
	Name       string
	State      TournamentState
	Games      int
	Played     int
	Aborted    int
	Seats      []SeatSnapshot
	CreateTime time.Time
	StartTime  *time.Time
	EndTime    *time.Time
}

// Tournament plays Games seeded games on a worker pool and tallies wins.
type Tournament struct {
	ID   string
	Name string

	cfg    Config
	logger *zap.Logger

	mu         sync.RWMutex
	State      TournamentState
	seats      []*Seat
	records    []GameRecord
	aborted    int
	CreateTime time.Time
	StartTime  *time.Time
	EndTime    *time.Time
}

// NewTournament validates cfg and seats one player per agent.
func NewTournament(cfg Config, logger *zap.Logger) (*Tournament, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var errs []error
	if cfg.Games < 1 {
		errs = append(errs, fmt.Errorf("games must be positive"))
	}
	if len(cfg.Agents) < 2 {
		errs = append(errs, fmt.Errorf("need at least two seats"))
	}
	for _, name := range cfg.Agents {
		if _, ok := agent.New(name); !ok {
			errs = append(errs, fmt.Errorf("unknown agent %q", name))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("%w: %w", game.ErrMissingConfig, err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Board == nil {
		cfg.Board = board.Classic()
	}
	if cfg.GameOptions == nil {
		cfg.GameOptions = func(seed int64, logger *zap.Logger) game.Options {
			return game.Options{Seed: seed, Logger: logger}
		}
	}

	seats := make([]*Seat, len(cfg.Agents))
	for i, name := range cfg.Agents {
		seats[i] = &Seat{Name: fmt.Sprintf("player%d-%s", i+1, name), Agent: name}
	}

	return &Tournament{
		ID:         uuid.New().String(),
		Name:       cfg.Name,
		cfg:        cfg,
		logger:     logger,
		State:      TournamentStateWaiting,
		seats:      seats,
		CreateTime: time.Now(),
	}, nil
}

// Run plays every game and returns once all workers are done. Aborted
// games are counted, not returned; Run fails only when ctx ends first.
func (t *Tournament) Run(ctx context.Context) error {
	t.mu.Lock()
	if t.State != TournamentStateWaiting {
		t.mu.Unlock()
		return fmt.Errorf("tournament already started")
	}
	now := time.Now()
	t.StartTime = &now
	t.State = TournamentStateInProgress
	t.mu.Unlock()

	t.logger.Info("tournament started",
		zap.String("tournament_id", t.ID),
		zap.Int("games", t.cfg.Games),
		zap.Strings("agents", t.cfg.Agents),
		zap.Int("workers", t.cfg.Workers),
	)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range t.cfg.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				t.record(ctx, t.playGame(ctx, i))
			}
		}()
	}

feed:
	for i := range t.cfg.Games {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	t.mu.Lock()
	end := time.Now()
	t.EndTime = &end
	t.State = TournamentStateFinished
	if ctx.Err() != nil {
		t.State = TournamentStateCancelled
	}
	t.mu.Unlock()

	t.logger.Info("tournament finished",
		zap.String("tournament_id", t.ID),
		zap.String("state", t.GetState().String()),
		zap.Int("played", len(t.Records())),
		zap.Duration("elapsed", end.Sub(now)),
	)
	return ctx.Err()
}

// playGame seats fresh agents rotated by index so every seat moves first
// equally often.
func (t *Tournament) playGame(ctx context.Context, index int) GameRecord {
	seed := t.cfg.Seed + int64(index)
	rec := GameRecord{Index: index, Seed: seed}

	n := len(t.seats)
	specs := make([]game.PlayerSpec, n)
	for i := range n {
		seat := t.seats[(i+index)%n]
		provider, _ := agent.New(seat.Agent)
		specs[i] = game.PlayerSpec{Name: seat.Name, Provider: provider}
	}

	logger := t.logger.With(zap.Int("game", index), zap.Int64("seed", seed))
	opts := t.cfg.GameOptions(seed, logger)
	opts.ID = uuid.New().String()
	if t.cfg.Recorder != nil {
		opts.Replay = t.cfg.Recorder.StartRecording(opts.ID, seed)
	}

	gs, err := game.NewGame(t.cfg.Board, specs, opts)
	if err != nil {
		rec.Err = fmt.Errorf("failed to set up game %d: %w", index, err)
		t.discardReplay(opts.ID)
		return rec
	}
	rec.Result, rec.Err = gs.Run(ctx)
	if rec.Err != nil {
		t.discardReplay(opts.ID)
		return rec
	}
	if t.cfg.Recorder != nil {
		if err := t.cfg.Recorder.SaveReplay(opts.ID); err != nil {
			logger.Warn("failed to save replay", zap.Error(err))
		}
	}
	return rec
}

func (t *Tournament) discardReplay(gameID string) {
	if t.cfg.Recorder != nil {
		t.cfg.Recorder.Discard(gameID)
	}
}

func (t *Tournament) record(ctx context.Context, rec GameRecord) {
	if rec.Err == nil && t.cfg.Sink != nil {
		if err := t.cfg.Sink.SaveResult(ctx, t.ID, rec.Seed, rec.Result); err != nil {
			t.logger.Warn("failed to store result", zap.Int("game", rec.Index), zap.Error(err))
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = append(t.records, rec)
	if rec.Err != nil {
		t.aborted++
		t.logger.Warn("game aborted", zap.Int("game", rec.Index), zap.Error(rec.Err))
		return
	}

	for _, st := range rec.Result.Standings {
		seat := t.seatLocked(st.Name)
		if seat == nil {
			continue
		}
		switch {
		case st.Name == rec.Result.Winner:
			seat.Wins++
		case st.Status == game.StatusLost:
			seat.Losses++
		}
		if st.Status != game.StatusLost {
			seat.Survivals++
		}
	}
}

func (t *Tournament) seatLocked(name string) *Seat {
	for _, s := range t.seats {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// GetState returns the tournament state.
func (t *Tournament) GetState() TournamentState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.State
}

// Records returns the finished games ordered by index.
func (t *Tournament) Records() []GameRecord {
	t.mu.RLock()
	out := make([]GameRecord, len(t.records))
	copy(out, t.records)
	t.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Snapshot returns a consistent copy of the tournament state.
func (t *Tournament) Snapshot() TournamentSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	seats := make([]SeatSnapshot, 0, len(t.seats))
	for _, s := range t.seats {
		seats = append(seats, SeatSnapshot(*s))
	}
	return TournamentSnapshot{
		ID:         t.ID,
		Name:       t.Name,
		State:      t.State,
		Games:      t.cfg.Games,
		Played:     len(t.records),
		Aborted:    t.aborted,
		Seats:      seats,
		CreateTime: t.CreateTime,
		StartTime:  cloneTime(t.StartTime),
		EndTime:    cloneTime(t.EndTime),
	}
}

func cloneTime(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	cp := *src
	return &cp
}

// Manager manages tournaments
type Manager struct {
	tournaments map[string]*Tournament
	mu          sync.RWMutex
	logger      *zap.Logger
}

// NewManager creates a new tournament manager
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		tournaments: make(map[string]*Tournament),
		logger:      logger,
	}
}

// CreateTournament creates and registers a new tournament
func (m *Manager) CreateTournament(cfg Config) (*Tournament, error) {
	tournament, err := NewTournament(cfg, m.logger.With(zap.String("tournament", cfg.Name)))
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.tournaments[tournament.ID] = tournament
	m.mu.Unlock()

	m.logger.Info("tournament created",
		zap.String("tournament_id", tournament.ID),
		zap.String("name", cfg.Name),
		zap.Int("games", cfg.Games),
	)
	return tournament, nil
}

// GetTournament retrieves a tournament by ID
func (m *Manager) GetTournament(tournamentID string) (*Tournament, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tournament, ok := m.tournaments[tournamentID]
	return tournament, ok
}
