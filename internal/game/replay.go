package game

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

const replayVersion = 1

// Replay is a recorded game: one snapshot per turn boundary, each with its
// checksum so a loaded replay can be verified.
type Replay struct {
	GameID    string
	Seed      int64
	States    []*Snapshot
	Checksums []string

	cursor int
	mu     sync.RWMutex
}

// NewReplay creates an empty replay.
func NewReplay(gameID string, seed int64) *Replay {
	return &Replay{GameID: gameID, Seed: seed}
}

// RecordState appends a snapshot.
func (r *Replay) RecordState(snapshot *Snapshot) {
	sum := ""
	if checksum, err := snapshot.ComputeChecksum(); err == nil {
		sum = checksum.Hash
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.States = append(r.States, snapshot)
	r.Checksums = append(r.Checksums, sum)
}

// Size returns the number of recorded snapshots.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.States)
}

// StateAt returns the snapshot at index, or nil when out of range.
func (r *Replay) StateAt(index int) *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index >= 0 && index < len(r.States) {
		return r.States[index]
	}
	return nil
}

// Last returns the most recent snapshot.
func (r *Replay) Last() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

// Rewind moves the playback cursor to the start.
func (r *Replay) Rewind() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursor = 0
}

// Next returns the snapshot under the cursor and advances it.
func (r *Replay) Next() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cursor >= len(r.States) {
		return nil
	}
	state := r.States[r.cursor]
	r.cursor++
	return state
}

// Verify recomputes every checksum and names the first snapshot that no
// longer matches.
func (r *Replay) Verify() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i, state := range r.States {
		ok, err := state.VerifyChecksum(&SerializationChecksum{Hash: r.Checksums[i]})
		if err != nil {
			return fmt.Errorf("state %d: %w", i, err)
		}
		if !ok {
			return fmt.Errorf("state %d: checksum mismatch", i)
		}
	}
	return nil
}

type replayMetadata struct {
	GameID     string
	Seed       int64
	Timestamp  time.Time
	Version    int
	StateCount int
	Checksums  []string
}

func replayPath(directory, gameID string) string {
	return filepath.Join(directory, fmt.Sprintf("%s.replay", gameID))
}

// SaveToFile writes the replay as a gzipped gob stream named after the game.
func (r *Replay) SaveToFile(directory string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(replayPath(directory, r.GameID))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	defer gz.Close()
	encoder := gob.NewEncoder(gz)

	metadata := replayMetadata{
		GameID:     r.GameID,
		Seed:       r.Seed,
		Timestamp:  time.Now(),
		Version:    replayVersion,
		StateCount: len(r.States),
		Checksums:  r.Checksums,
	}
	if err := encoder.Encode(&metadata); err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	for i, state := range r.States {
		if err := encoder.Encode(state); err != nil {
			return fmt.Errorf("failed to encode state %d: %w", i, err)
		}
	}
	return nil
}

// LoadReplayFromFile reads a replay written by SaveToFile.
func LoadReplayFromFile(directory, gameID string) (*Replay, error) {
	file, err := os.Open(replayPath(directory, gameID))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()
	decoder := gob.NewDecoder(gz)

	var metadata replayMetadata
	if err := decoder.Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if metadata.Version != replayVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", metadata.Version)
	}

	replay := NewReplay(metadata.GameID, metadata.Seed)
	replay.Checksums = metadata.Checksums
	for i := 0; i < metadata.StateCount; i++ {
		var state Snapshot
		if err := decoder.Decode(&state); err != nil {
			return nil, fmt.Errorf("failed to decode state %d: %w", i, err)
		}
		replay.States = append(replay.States, &state)
	}
	return replay, nil
}

// ReplayRecorder keeps the replays of games in flight and writes them to a
// directory when they finish.
type ReplayRecorder struct {
	logger  *zap.Logger
	mu      sync.Mutex
	replays map[string]*Replay
	saveDir string
}

// NewReplayRecorder creates a recorder that saves into saveDir.
func NewReplayRecorder(logger *zap.Logger, saveDir string) *ReplayRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReplayRecorder{
		logger:  logger,
		replays: make(map[string]*Replay),
		saveDir: saveDir,
	}
}

// StartRecording returns the replay to pass as Options.Replay for a game.
func (rr *ReplayRecorder) StartRecording(gameID string, seed int64) *Replay {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	replay := NewReplay(gameID, seed)
	rr.replays[gameID] = replay
	rr.logger.Debug("started replay recording", zap.String("game_id", gameID), zap.Int64("seed", seed))
	return replay
}

// SaveReplay writes a game's replay to disk and forgets it.
func (rr *ReplayRecorder) SaveReplay(gameID string) error {
	rr.mu.Lock()
	replay, ok := rr.replays[gameID]
	delete(rr.replays, gameID)
	rr.mu.Unlock()
	if !ok {
		return fmt.Errorf("no replay found for game %s", gameID)
	}

	if err := replay.SaveToFile(rr.saveDir); err != nil {
		return fmt.Errorf("failed to save replay: %w", err)
	}
	rr.logger.Info("saved replay to disk",
		zap.String("game_id", gameID),
		zap.Int("state_count", replay.Size()),
		zap.String("directory", rr.saveDir),
	)
	return nil
}

// Discard drops a game's replay without saving it.
func (rr *ReplayRecorder) Discard(gameID string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	delete(rr.replays, gameID)
}

// LoadReplay reads a saved replay from the recorder's directory.
func (rr *ReplayRecorder) LoadReplay(gameID string) (*Replay, error) {
	return LoadReplayFromFile(rr.saveDir, gameID)
}
