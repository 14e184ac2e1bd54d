package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/dice"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/rules"
)

// StopReason says why a game ended.
type StopReason string

const (
	StopLastPlayerStanding StopReason = "last_player_standing"
	StopDieRollLimit       StopReason = "die_roll_limit"
	StopTimeStepLimit      StopReason = "time_step_limit"
	StopTimeLimit          StopReason = "time_limit"
	StopCancelled          StopReason = "cancelled"
)

// jailTurnsBeforeFine is how many failed rolls a jailed player gets before
// the fine is forced.
const jailTurnsBeforeFine = 3

// doublesToJail consecutive doubles send the roller to jail.
const doublesToJail = 3

// Standing is one player's final position.
type Standing struct {
	Name     string
	Status   PlayerStatus
	Cash     int
	NetWorth int
}

// Result summarizes a finished game.
type Result struct {
	GameID    string
	Winner    string
	Reason    StopReason
	Turns     int
	TimeSteps int
	DieRolls  int
	Duration  time.Duration
	Standings []Standing
}

// DefaultRollDice rolls every die with the game's seeded source.
func DefaultRollDice(gs *GameState) ([]int, error) {
	return dice.RollAll(gs.rng, gs.Dice), nil
}

// Run plays turns until a stopping condition holds. An error means the game
// was aborted on a fatal violation.
func (gs *GameState) Run(ctx context.Context) (*Result, error) {
	gs.startedAt = time.Now()
	names := make([]string, len(gs.Players))
	for i, p := range gs.Players {
		names[i] = p.Name
	}
	gs.record(rules.EventGameStarted, "start_game", nil,
		map[string]any{"players": names, "board_size": len(gs.Board)}, gs.codes.Success)
	gs.logger.Info("game started",
		zap.String("game_id", gs.ID),
		zap.Strings("players", names),
	)

	for {
		if reason, done := gs.stopReason(ctx); done {
			return gs.finish(reason), nil
		}
		if err := gs.PlayTurn(ctx); err != nil {
			gs.record(rules.EventGameOver, "abort_game", nil,
				map[string]any{"error": err.Error()}, gs.codes.Failure)
			gs.logger.Error("game aborted",
				zap.String("game_id", gs.ID),
				zap.Int("time_step", gs.TimeStep),
				zap.Error(err),
			)
			return nil, fmt.Errorf("game %s aborted at time step %d: %w", gs.ID, gs.TimeStep, err)
		}
	}
}

func (gs *GameState) stopReason(ctx context.Context) (StopReason, bool) {
	switch {
	case len(gs.ActivePlayers()) <= 1:
		return StopLastPlayerStanding, true
	case ctx.Err() != nil:
		return StopCancelled, true
	case gs.opts.MaxDieRolls > 0 && gs.DieRolls >= gs.opts.MaxDieRolls:
		return StopDieRollLimit, true
	case gs.opts.MaxTimeSteps > 0 && gs.TimeStep >= gs.opts.MaxTimeSteps:
		return StopTimeStepLimit, true
	case gs.opts.MaxDuration > 0 && !gs.startedAt.IsZero() && time.Since(gs.startedAt) >= gs.opts.MaxDuration:
		return StopTimeLimit, true
	}
	return "", false
}

// Winner returns the surviving player, or the richest active player by net
// worth when several remain. Ties go to the earlier seat.
func (gs *GameState) Winner() *Player {
	var best *Player
	for _, p := range gs.ActivePlayers() {
		if best == nil || p.NetWorth() > best.NetWorth() {
			best = p
		}
	}
	return best
}

func (gs *GameState) finish(reason StopReason) *Result {
	res := &Result{
		GameID:    gs.ID,
		Reason:    reason,
		Turns:     gs.Turn(),
		TimeSteps: gs.TimeStep,
		DieRolls:  gs.DieRolls,
		Duration:  time.Since(gs.startedAt),
	}
	if w := gs.Winner(); w != nil {
		res.Winner = w.Name
	}
	for _, p := range gs.Players {
		res.Standings = append(res.Standings, Standing{
			Name:     p.Name,
			Status:   p.Status,
			Cash:     p.Cash,
			NetWorth: p.NetWorth(),
		})
	}

	gs.record(rules.EventGameOver, "end_game", nil,
		map[string]any{"reason": string(reason), "winner": res.Winner}, gs.codes.Success)
	gs.logger.Info("game over",
		zap.String("game_id", gs.ID),
		zap.String("reason", string(reason)),
		zap.String("winner", res.Winner),
		zap.Int("time_steps", gs.TimeStep),
		zap.Int("die_rolls", gs.DieRolls),
	)
	return res
}

// PlayTurn plays the current player's turn through every phase and hands
// the turn to the next player still in the game.
func (gs *GameState) PlayTurn(ctx context.Context) error {
	p := gs.CurrentPlayer()
	if p.Lost() {
		gs.advanceTurn()
		return nil
	}

	gs.TimeStep++
	gs.doublesStreak = 0
	p.Status = StatusCurrentMove
	gs.record(rules.EventTurnStarted, "start_turn", p,
		map[string]any{"turn": gs.Turn(), "cash": p.Cash, "position": p.Position}, gs.codes.Success)
	gs.logger.Debug("turn started",
		zap.String("game_id", gs.ID),
		zap.String("player", p.Name),
		zap.Int("turn", gs.Turn()),
		zap.Int("cash", p.Cash),
	)

	if _, err := gs.runPhase(p, rules.PhasePreRoll, p.Provider.PreRollMove); err != nil {
		return err
	}
	gs.enterPhase(rules.PhaseRoll)

	for !p.Lost() {
		again, err := gs.rollPhase(p)
		if err != nil {
			return err
		}
		gs.enterPhase(rules.PhasePostRoll)
		if err := gs.postRollPhase(p); err != nil {
			return err
		}
		if !again || p.Lost() || p.InJail || ctx.Err() != nil {
			break
		}
		if gs.opts.MaxDieRolls > 0 && gs.DieRolls >= gs.opts.MaxDieRolls {
			break
		}
		gs.turns.Rewind(rules.PhaseRoll)
	}

	gs.enterPhase(rules.PhaseOutOfTurn)
	if err := gs.outOfTurnPhase(); err != nil {
		return err
	}

	gs.expireOffers()
	if !p.Lost() {
		p.Status = StatusWaiting
	}
	gs.advanceTurn()
	if gs.opts.Replay != nil {
		gs.opts.Replay.RecordState(gs.Snapshot())
	}
	return nil
}

func (gs *GameState) enterPhase(phase rules.Phase) {
	for gs.turns.CurrentPhase() != phase {
		gs.turns.AdvancePhase("")
	}
	gs.record(rules.EventPhase, "enter_phase", gs.CurrentPlayer(),
		map[string]any{"phase": phase.String()}, gs.codes.Success)
}

func (gs *GameState) advanceTurn() {
	n := len(gs.Players)
	for i := 1; i <= n; i++ {
		next := (gs.current + i) % n
		if !gs.Players[next].Lost() {
			gs.current = next
			break
		}
	}
	gs.turns.EndTurn(gs.Players[gs.current].Name)
}

type moveFunc func(p *Player, gs *GameState, allowed ActionSet) Move

// runPhase asks p for moves until p concludes, only concluding is left, the
// failure budget runs out or the move cap is hit. It reports whether p did
// anything besides concluding.
func (gs *GameState) runPhase(p *Player, phase rules.Phase, ask moveFunc) (bool, error) {
	acted := false
	failures := 0
	for moves := 0; moves < gs.opts.MaxPhaseMoves && !p.Lost(); moves++ {
		allowed := gs.AllowableActions(p, phase)
		if len(allowed) <= 1 {
			return acted, nil
		}
		move := ask(p, gs, allowed)
		if move.Action == ActionConcludeActions || move.Action == ActionSkipTurn {
			gs.record(rules.EventDecision, phaseFunction(phase), p,
				map[string]any{"action": string(move.Action)}, gs.codes.Success)
			return acted, nil
		}

		code := gs.codes.Failure
		if allowed.Has(move.Action) {
			var err error
			if code, err = gs.Execute(p, move); err != nil {
				return acted, err
			}
		}
		gs.record(rules.EventDecision, phaseFunction(phase), p,
			map[string]any{"action": string(move.Action), "asset": move.Params.Asset}, code)
		acted = true
		if code != gs.codes.Success {
			failures++
			if failures >= gs.opts.MaxPhaseFailures {
				return acted, nil
			}
		}
		if err := gs.HandleNegativeCash(p); err != nil {
			return acted, err
		}
	}
	return acted, nil
}

func phaseFunction(phase rules.Phase) string {
	switch phase {
	case rules.PhasePreRoll:
		return "make_pre_roll_move"
	case rules.PhasePostRoll:
		return "make_post_roll_move"
	case rules.PhaseOutOfTurn:
		return "make_out_of_turn_move"
	default:
		return "make_move"
	}
}

// rollPhase rolls, moves and resolves the landing. It reports whether the
// player rolled doubles and may roll again.
func (gs *GameState) rollPhase(p *Player) (bool, error) {
	gs.pendingPurchase = nil
	roll := lookupOr(gs.Hooks, HookRollDie, RollFunc(DefaultRollDice))
	faces, err := roll(gs)
	if err != nil {
		return false, fmt.Errorf("roll dice: %w", err)
	}
	if len(faces) == 0 {
		return false, invariantf("roll produced no faces")
	}
	gs.LastRoll = faces
	gs.CurrentDieTotal = dice.Sum(faces)
	gs.DieRolls++
	doubles := dice.IsDoubles(faces)
	gs.record(rules.EventDiceRolled, "roll_die", p,
		map[string]any{"faces": append([]int(nil), faces...), "total": gs.CurrentDieTotal, "doubles": doubles},
		gs.codes.Success)

	if p.InJail {
		switch {
		case doubles:
			gs.releaseFromJail(p, "doubles")
		default:
			p.JailTurns++
			if p.JailTurns < jailTurnsBeforeFine {
				return false, nil
			}
			gs.Charge(p, gs.Bank.JailFine, true)
			gs.releaseFromJail(p, "forced_fine")
		}
		// Leaving jail never earns another roll.
		doubles = false
	} else if doubles {
		gs.doublesStreak++
		if gs.doublesStreak >= doublesToJail {
			gs.SendToJail(p)
			return false, nil
		}
	} else {
		gs.doublesStreak = 0
	}

	if err := gs.moveAfterRoll(p, gs.CurrentDieTotal); err != nil {
		return false, fmt.Errorf("move %s: %w", p.Name, err)
	}
	if err := gs.resolveLanding(p, landing{}); err != nil {
		return false, err
	}
	if err := gs.settleDebts(); err != nil {
		return false, err
	}
	return doubles, nil
}

// postRollPhase offers the pending purchase, runs the post-roll moves and
// auctions the asset if it is still unsold.
func (gs *GameState) postRollPhase(p *Player) error {
	if prop := gs.pendingPurchase; prop != nil && !p.Lost() {
		if p.Cash >= prop.asset().Price && p.Provider.BuyProperty(p, gs, prop) {
			gs.BuyProperty(p, prop.Name())
		}
	}
	if _, err := gs.runPhase(p, rules.PhasePostRoll, p.Provider.PostRollMove); err != nil {
		return err
	}

	prop := gs.pendingPurchase
	gs.pendingPurchase = nil
	if prop != nil && prop.asset().OwnedByBank() {
		start := (gs.indexOf(p) + 1) % len(gs.Players)
		if _, err := gs.Auction(start, prop); err != nil {
			return fmt.Errorf("auction %q: %w", prop.Name(), err)
		}
	}
	return gs.settleDebts()
}

// outOfTurnPhase gives every other active player a chance to act, repeating
// while anyone acts, up to the configured number of rounds.
func (gs *GameState) outOfTurnPhase() error {
	n := len(gs.Players)
	defer gs.turns.SetActing(gs.CurrentPlayer().Name)
	for round := 0; round < gs.opts.MaxOutOfTurnRounds; round++ {
		anyActed := false
		for i := 1; i < n; i++ {
			other := gs.Players[(gs.current+i)%n]
			if other.Lost() {
				continue
			}
			gs.turns.SetActing(other.Name)
			acted, err := gs.runPhase(other, rules.PhaseOutOfTurn, other.Provider.OutOfTurnMove)
			if err != nil {
				return err
			}
			anyActed = anyActed || acted
		}
		if !anyActed {
			return nil
		}
	}
	return nil
}
