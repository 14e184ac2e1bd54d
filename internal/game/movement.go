package game

import (
	"fmt"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/rules"
)

// GoPass classifies how a forward move relates to the Go square.
type GoPass int

const (
	GoPassNone GoPass = iota
	// GoPassLanded means the move ended exactly on Go.
	GoPassLanded
	// GoPassWrapped means the move went past the last slot back to the start.
	GoPassWrapped
	// GoPassCrossed means the move stepped over a Go that is not at slot 0
	// without wrapping.
	GoPassCrossed
)

var goPassNames = map[GoPass]string{
	GoPassNone:    "none",
	GoPassLanded:  "landed",
	GoPassWrapped: "wrapped",
	GoPassCrossed: "crossed",
}

func (g GoPass) String() string {
	if name, ok := goPassNames[g]; ok {
		return name
	}
	return fmt.Sprintf("go_pass_%d", int(g))
}

// ClassifyGoPass reports whether moving steps slots forward from oldPos on a
// board of length boardLen reaches goPos, and how. Valid for
// 0 < steps < boardLen; anything else is GoPassNone.
func ClassifyGoPass(oldPos, steps, goPos, boardLen int) GoPass {
	if boardLen <= 0 || steps <= 0 || steps >= boardLen {
		return GoPassNone
	}
	dist := ((goPos-oldPos)%boardLen + boardLen) % boardLen
	if dist == 0 || dist > steps {
		return GoPassNone
	}
	newPos := (oldPos + steps) % boardLen
	switch {
	case dist == steps:
		return GoPassLanded
	case newPos < oldPos:
		return GoPassWrapped
	default:
		return GoPassCrossed
	}
}

// DefaultMovePlayer moves p forward. Every time the move reaches Go the
// increment is credited from the bank, then the on_pass_go hook runs. The
// landing itself is resolved by the caller.
func DefaultMovePlayer(gs *GameState, p *Player, steps int) error {
	if steps < 0 {
		return invariantf("forward move of %d steps", steps)
	}
	length := len(gs.Board)
	laps, rem := steps/length, steps%length
	old := p.Position
	pass := ClassifyGoPass(old, rem, gs.GoPosition, length)

	p.Position = (old + rem) % length
	gs.record(rules.EventMoved, "move_player", p,
		map[string]any{"from": old, "to": p.Position, "steps": steps},
		gs.codes.Success)

	for i := 0; i < laps; i++ {
		if err := gs.passGo(p, GoPassWrapped); err != nil {
			return err
		}
	}
	if pass != GoPassNone {
		return gs.passGo(p, pass)
	}
	return nil
}

func (gs *GameState) passGo(p *Player, pass GoPass) error {
	code := gs.Receive(p, gs.Bank.GoIncrement, true)
	gs.record(rules.EventPassedGo, "pass_go", p,
		map[string]any{"case": pass.String(), "amount": gs.Bank.GoIncrement},
		code)
	if fn, ok := Lookup[PassGoFunc](gs.Hooks, HookOnPassGo); ok {
		if err := fn(gs, p, pass); err != nil {
			return fmt.Errorf("on pass go: %w", err)
		}
	}
	return nil
}

// moveAfterRoll moves p by the dice total through the installed hook.
func (gs *GameState) moveAfterRoll(p *Player, steps int) error {
	move := lookupOr(gs.Hooks, HookMovePlayerAfterDieRoll, MoveFunc(DefaultMovePlayer))
	return move(gs, p, steps)
}

// advanceTo moves p forward to pos, collecting Go on the way.
func (gs *GameState) advanceTo(p *Player, pos int) error {
	length := len(gs.Board)
	steps := ((pos-p.Position)%length + length) % length
	if steps == 0 {
		return nil
	}
	return DefaultMovePlayer(gs, p, steps)
}

// relocate puts p on pos directly. Go is never collected.
func (gs *GameState) relocate(p *Player, pos int) {
	old := p.Position
	p.Position = pos
	gs.record(rules.EventMoved, "relocate_player", p,
		map[string]any{"from": old, "to": pos},
		gs.codes.Success)
}

// SendToJail moves p to jail without passing Go.
func (gs *GameState) SendToJail(p *Player) {
	gs.relocate(p, gs.JailPosition)
	p.InJail = true
	p.JailTurns = 0
	if gs.CurrentPlayer() == p {
		gs.doublesStreak = 0
	}
	gs.record(rules.EventJail, "send_to_jail", p, nil, gs.codes.Success)
}

// releaseFromJail frees p. The caller settles any fine or card.
func (gs *GameState) releaseFromJail(p *Player, how string) {
	p.InJail = false
	p.JailTurns = 0
	gs.record(rules.EventJail, "release_from_jail", p,
		map[string]any{"via": how}, gs.codes.Success)
}

// nextOfKind returns the first slot after p's position holding a location
// accepted by match.
func (gs *GameState) nextOfKind(from int, match func(Location) bool) (int, bool) {
	length := len(gs.Board)
	for i := 1; i <= length; i++ {
		pos := (from + i) % length
		if match(gs.Board[pos]) {
			return pos, true
		}
	}
	return 0, false
}
