package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/rules"
)

// HistoryEntry is one record of the append-only game log.
type HistoryEntry = rules.Event

// record appends an entry to the history and publishes it to subscribers.
func (gs *GameState) record(eventType rules.EventType, function string, p *Player, params map[string]any, ret any) {
	entry := HistoryEntry{
		Type:      eventType,
		Function:  function,
		Params:    params,
		Return:    ret,
		TimeStep:  gs.TimeStep,
		Timestamp: time.Now(),
	}
	if p != nil {
		entry.PlayerID = p.Name
	}
	gs.history = append(gs.history, entry)
	gs.events.Publish(entry)

	gs.logger.Debug("history",
		zap.String("game_id", gs.ID),
		zap.String("function", function),
		zap.String("player", entry.PlayerID),
		zap.Any("return", ret),
		zap.Int("time_step", gs.TimeStep),
	)
}

func (gs *GameState) recordHookChange(name HookName, installed bool) {
	function := "register_hook"
	if !installed {
		function = "remove_hook"
	}
	gs.record(rules.EventHook, function, nil, map[string]any{"hook": string(name)}, gs.codes.Success)
}

// History returns a copy of the log.
func (gs *GameState) History() []HistoryEntry {
	out := make([]HistoryEntry, len(gs.history))
	copy(out, gs.history)
	return out
}

// LastHistoryEntry returns the most recent entry, if any.
func (gs *GameState) LastHistoryEntry() (HistoryEntry, bool) {
	if len(gs.history) == 0 {
		return HistoryEntry{}, false
	}
	return gs.history[len(gs.history)-1], true
}

// Events exposes the bus history entries are published on.
func (gs *GameState) Events() *rules.EventBus { return gs.events }
