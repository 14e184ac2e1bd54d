package rules

import (
	"fmt"
	"strings"
)

// Phase represents the phases a Monopoly turn moves through.
type Phase int

const (
	PhasePreRoll Phase = iota
	PhaseRoll
	PhasePostRoll
	PhaseOutOfTurn
)

var phaseNames = map[Phase]string{
	PhasePreRoll:   "PRE_ROLL",
	PhaseRoll:      "ROLL",
	PhasePostRoll:  "POST_ROLL",
	PhaseOutOfTurn: "OUT_OF_TURN",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// turnSequence is the fixed order of phases inside one player's turn.
var turnSequence = []Phase{
	PhasePreRoll,
	PhaseRoll,
	PhasePostRoll,
	PhaseOutOfTurn,
}

// TurnManager tracks the active player, the current phase and turn progression.
type TurnManager struct {
	orderIndex   int
	turnNumber   int
	activePlayer string
	// actingPlayer differs from activePlayer only during the out-of-turn phase.
	actingPlayer string
}

// NewTurnManager creates a new turn manager initialized at turn 1, pre-roll phase.
func NewTurnManager(activePlayer string) *TurnManager {
	active := strings.TrimSpace(activePlayer)
	return &TurnManager{
		turnNumber:   1,
		activePlayer: active,
		actingPlayer: active,
	}
}

// CurrentPhase returns the phase currently in progress.
func (tm *TurnManager) CurrentPhase() Phase {
	return turnSequence[tm.orderIndex]
}

// TurnNumber returns the current turn number (1-based).
func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

// ActivePlayer returns the player whose turn it is.
func (tm *TurnManager) ActivePlayer() string {
	return tm.activePlayer
}

// ActingPlayer returns the player currently being asked for a move.
func (tm *TurnManager) ActingPlayer() string {
	return tm.actingPlayer
}

// SetActing records which player is making an out-of-turn move.
func (tm *TurnManager) SetActing(player string) {
	tm.actingPlayer = strings.TrimSpace(player)
}

// AdvancePhase moves to the next phase of the turn. When the sequence wraps,
// the turn number is incremented and the active player is rotated to
// nextActivePlayer if provided.
func (tm *TurnManager) AdvancePhase(nextActivePlayer string) Phase {
	tm.orderIndex++
	if tm.orderIndex >= len(turnSequence) {
		tm.orderIndex = 0
		tm.turnNumber++
		if next := strings.TrimSpace(nextActivePlayer); next != "" {
			tm.activePlayer = next
		}
	}

	tm.actingPlayer = tm.activePlayer
	return tm.CurrentPhase()
}

// EndTurn jumps past any remaining phases and starts the next player's turn.
func (tm *TurnManager) EndTurn(nextActivePlayer string) {
	tm.orderIndex = len(turnSequence) - 1
	tm.AdvancePhase(nextActivePlayer)
}

// Rewind returns to an earlier phase of the current turn, as when a player
// rolls doubles and goes again.
func (tm *TurnManager) Rewind(phase Phase) {
	for i, p := range turnSequence {
		if p == phase && i <= tm.orderIndex {
			tm.orderIndex = i
			tm.actingPlayer = tm.activePlayer
			return
		}
	}
}
