package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Snapshot is a complete, self-contained copy of a game at a turn boundary.
type Snapshot struct {
	GameID    string
	Timestamp time.Time

	Turn            int
	TimeStep        int
	DieRolls        int
	Phase           string
	ActivePlayer    string
	CurrentDieTotal int
	LastRoll        []int
	CardSeed        int64

	Bank           BankSnapshot
	Players        []PlayerSnapshot
	Locations      []LocationSnapshot
	Chance         DeckSnapshot
	CommunityChest DeckSnapshot
	DiceHistory    [][]int
	Hooks          []string
}

// BankSnapshot is the bank's mutable state.
type BankSnapshot struct {
	Cash   int
	Houses int
	Hotels int
}

// PlayerSnapshot is one player's state.
type PlayerSnapshot struct {
	Name      string
	Status    string
	Cash      int
	Position  int
	Assets    []string
	InJail    bool
	JailTurns int
	JailCards []string
}

// LocationSnapshot is one location's state.
type LocationSnapshot struct {
	Name      string
	Kind      string
	Start     int
	End       int
	Owner     string
	Mortgaged bool
	Houses    int
	Hotels    int
}

// DeckSnapshot lists the cards left in a pack and those drawn so far.
type DeckSnapshot struct {
	Cards  []string
	Picked []string
}

func locationKind(loc Location) string {
	switch loc.(type) {
	case *RealEstate:
		return "real_estate"
	case *Railroad:
		return "railroad"
	case *Utility:
		return "utility"
	case *Tax:
		return "tax"
	case *ActionLocation:
		return "action"
	case *DoNothing:
		return "do_nothing"
	default:
		return fmt.Sprintf("%T", loc)
	}
}

func snapshotDeck(d *Deck) DeckSnapshot {
	var out DeckSnapshot
	for _, c := range d.Cards {
		out.Cards = append(out.Cards, c.Name)
	}
	for _, c := range d.Picked {
		out.Picked = append(out.Picked, c.Name)
	}
	return out
}

// Snapshot captures the current state.
func (gs *GameState) Snapshot() *Snapshot {
	s := &Snapshot{
		GameID:          gs.ID,
		Timestamp:       time.Now(),
		Turn:            gs.Turn(),
		TimeStep:        gs.TimeStep,
		DieRolls:        gs.DieRolls,
		Phase:           gs.Phase().String(),
		ActivePlayer:    gs.CurrentPlayer().Name,
		CurrentDieTotal: gs.CurrentDieTotal,
		LastRoll:        append([]int(nil), gs.LastRoll...),
		CardSeed:        gs.cardSeed,
		Bank:            BankSnapshot{Cash: gs.Bank.Cash, Houses: gs.Bank.Houses, Hotels: gs.Bank.Hotels},
		Chance:          snapshotDeck(gs.Chance),
		CommunityChest:  snapshotDeck(gs.CommunityChest),
	}

	for _, p := range gs.Players {
		ps := PlayerSnapshot{
			Name:      p.Name,
			Status:    string(p.Status),
			Cash:      p.Cash,
			Position:  p.Position,
			InJail:    p.InJail,
			JailTurns: p.JailTurns,
		}
		for _, a := range p.assets {
			ps.Assets = append(ps.Assets, a.Name())
		}
		for kind, names := range p.JailCards {
			for _, name := range names {
				ps.JailCards = append(ps.JailCards, string(kind)+":"+name)
			}
		}
		sort.Strings(ps.JailCards)
		s.Players = append(s.Players, ps)
	}

	seen := make(map[Location]bool, len(gs.Board))
	for _, loc := range gs.Board {
		if seen[loc] {
			continue
		}
		seen[loc] = true
		ls := LocationSnapshot{Name: loc.Name(), Kind: locationKind(loc), Start: loc.Start(), End: loc.End()}
		if prop, ok := loc.(Property); ok {
			if owner := prop.Owner(); owner != nil {
				ls.Owner = owner.Name
			}
			ls.Mortgaged = prop.asset().Mortgaged
		}
		if re, ok := loc.(*RealEstate); ok {
			ls.Houses, ls.Hotels = re.Houses, re.Hotels
		}
		s.Locations = append(s.Locations, ls)
	}

	for _, d := range gs.Dice {
		s.DiceHistory = append(s.DiceHistory, append([]int(nil), d.History...))
	}
	for _, name := range gs.Hooks.Names() {
		s.Hooks = append(s.Hooks, string(name))
	}
	return s
}

// SerializationChecksum is a deterministic digest of a snapshot.
type SerializationChecksum struct {
	Hash      string // SHA-256 of the canonical representation
	Timestamp string
	Version   int
}

// ComputeChecksum digests every field except the game ID and timestamp, so
// two games played from the same seed produce the same checksum.
func (snapshot *Snapshot) ComputeChecksum() (*SerializationChecksum, error) {
	hash := sha256.New()
	if _, err := hash.Write([]byte(snapshot.buildDeterministicRepresentation())); err != nil {
		return nil, fmt.Errorf("failed to compute hash: %w", err)
	}
	return &SerializationChecksum{
		Hash:      hex.EncodeToString(hash.Sum(nil)),
		Timestamp: snapshot.Timestamp.Format("2006-01-02T15:04:05.000Z"),
		Version:   1,
	}, nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}

// buildDeterministicRepresentation renders the snapshot canonically. Player,
// location and card order are part of the game state and are kept as is.
func (snapshot *Snapshot) buildDeterministicRepresentation() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "GAME:%d|%d|%d|%s|%s|%d|%s|%d\n",
		snapshot.Turn,
		snapshot.TimeStep,
		snapshot.DieRolls,
		snapshot.Phase,
		snapshot.ActivePlayer,
		snapshot.CurrentDieTotal,
		joinInts(snapshot.LastRoll),
		snapshot.CardSeed,
	)
	fmt.Fprintf(&buf, "BANK:%d|%d|%d\n", snapshot.Bank.Cash, snapshot.Bank.Houses, snapshot.Bank.Hotels)

	for _, p := range snapshot.Players {
		fmt.Fprintf(&buf, "PLAYER:%s|%s|%d|%d|%t|%d|%s\n",
			p.Name, p.Status, p.Cash, p.Position, p.InJail, p.JailTurns, strings.Join(p.JailCards, ","))
		fmt.Fprintf(&buf, "  ASSETS:%s\n", strings.Join(p.Assets, ","))
	}

	for _, l := range snapshot.Locations {
		fmt.Fprintf(&buf, "LOCATION:%s|%s|%d|%d|%s|%t|%d|%d\n",
			l.Name, l.Kind, l.Start, l.End, l.Owner, l.Mortgaged, l.Houses, l.Hotels)
	}

	fmt.Fprintf(&buf, "CHANCE:%s\n", strings.Join(snapshot.Chance.Cards, ","))
	fmt.Fprintf(&buf, "CHANCE_PICKED:%s\n", strings.Join(snapshot.Chance.Picked, ","))
	fmt.Fprintf(&buf, "COMMUNITY_CHEST:%s\n", strings.Join(snapshot.CommunityChest.Cards, ","))
	fmt.Fprintf(&buf, "COMMUNITY_CHEST_PICKED:%s\n", strings.Join(snapshot.CommunityChest.Picked, ","))

	for i, history := range snapshot.DiceHistory {
		fmt.Fprintf(&buf, "DIE:%d|%s\n", i, joinInts(history))
	}

	hooks := append([]string(nil), snapshot.Hooks...)
	sort.Strings(hooks)
	fmt.Fprintf(&buf, "HOOKS:%s\n", strings.Join(hooks, ","))

	return buf.String()
}

// VerifyChecksum reports whether the snapshot still matches expected.
func (snapshot *Snapshot) VerifyChecksum(expected *SerializationChecksum) (bool, error) {
	computed, err := snapshot.ComputeChecksum()
	if err != nil {
		return false, fmt.Errorf("failed to compute checksum: %w", err)
	}
	return computed.Hash == expected.Hash, nil
}

// SerializeToBytes gob-encodes the snapshot.
func (snapshot *Snapshot) SerializeToBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snapshot); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializeSnapshot decodes a gob-encoded snapshot.
func DeserializeSnapshot(data []byte) (*Snapshot, error) {
	var snapshot Snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snapshot, nil
}

// ValidateSerializationRoundtrip checks that encoding and decoding preserve
// the checksum.
func ValidateSerializationRoundtrip(snapshot *Snapshot) error {
	original, err := snapshot.ComputeChecksum()
	if err != nil {
		return fmt.Errorf("failed to compute original checksum: %w", err)
	}
	data, err := snapshot.SerializeToBytes()
	if err != nil {
		return fmt.Errorf("failed to serialize: %w", err)
	}
	decoded, err := DeserializeSnapshot(data)
	if err != nil {
		return fmt.Errorf("failed to deserialize: %w", err)
	}
	roundTripped, err := decoded.ComputeChecksum()
	if err != nil {
		return fmt.Errorf("failed to compute deserialized checksum: %w", err)
	}
	if original.Hash != roundTripped.Hash {
		return fmt.Errorf("checksum mismatch: original=%s, deserialized=%s", original.Hash, roundTripped.Hash)
	}
	return nil
}
