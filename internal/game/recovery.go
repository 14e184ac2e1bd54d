package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/rules"
)

// recovery polls a player's decision provider for moves that raise cash.
//
// Two budgets bound it. Every attempt spends one successful try and a failed
// attempt gives it back, so successfulTries only runs out after that many
// actions went through. A failed attempt also spends one unsuccessful try;
// running out of those ends recovery with failure. The provider is therefore
// called at most successfulTries+unsuccessfulTries times.
type recovery struct {
	gs                *GameState
	player            *Player
	successfulTries   int
	unsuccessfulTries int
	calls             int
}

func newRecovery(gs *GameState, p *Player) *recovery {
	return &recovery{
		gs:                gs,
		player:            p,
		successfulTries:   gs.opts.SuccessfulTries,
		unsuccessfulTries: gs.opts.UnsuccessfulTries,
	}
}

// allowed lists the recovery moves. Proposing a trade is never one of them.
func (r *recovery) allowed() ActionSet {
	set := ActionSet{ActionConcludeActions: true}
	p := r.player
	for _, prop := range p.assets {
		if !prop.asset().Mortgaged && !r.gs.groupImproved(prop) {
			set[ActionMortgageProperty] = true
		}
		// Listed for completeness; with negative cash it always fails.
		if prop.asset().Mortgaged {
			set[ActionFreeMortgage] = true
		}
		if !r.gs.groupImproved(prop) {
			set[ActionSellProperty] = true
		}
		if re, ok := prop.(*RealEstate); ok && re.Improved() {
			set[ActionSellHouseHotel] = true
		}
	}
	if p.OutstandingOffer != nil {
		set[ActionAcceptTradeOffer] = true
	}
	return set
}

func (r *recovery) run() (Code, error) {
	codes := r.gs.codes
	p := r.player
	for {
		if p.Cash >= 0 {
			return codes.Success, nil
		}
		if r.unsuccessfulTries <= 0 {
			return codes.Failure, nil
		}
		if r.successfulTries <= 0 {
			return codes.Success, nil
		}

		allowed := r.allowed()
		move := p.Provider.HandleNegativeCashBalance(p, r.gs, allowed)
		r.calls++
		r.successfulTries--
		if move.Action == ActionConcludeActions {
			return codes.Success, nil
		}

		code := codes.Failure
		if allowed.Has(move.Action) {
			var err error
			code, err = r.gs.Execute(p, move)
			if err != nil {
				return codes.Failure, err
			}
		}
		if code != codes.Success {
			r.successfulTries++
			r.unsuccessfulTries--
		}
	}
}

// DefaultNegativeCashRecovery runs the bounded recovery loop for p.
func DefaultNegativeCashRecovery(gs *GameState, p *Player) (Code, error) {
	return newRecovery(gs, p).run()
}

// settleDebts runs recovery for every player left with negative cash, the
// current player first, and bankrupts those who cannot recover.
func (gs *GameState) settleDebts() error {
	order := append([]*Player{gs.CurrentPlayer()}, gs.Players...)
	for _, p := range order {
		if err := gs.HandleNegativeCash(p); err != nil {
			return err
		}
	}
	return nil
}

// HandleNegativeCash recovers p's balance through the installed hook and
// bankrupts p if the balance is still negative afterwards.
func (gs *GameState) HandleNegativeCash(p *Player) error {
	if p.Lost() || p.Cash >= 0 {
		return nil
	}
	fn := lookupOr(gs.Hooks, HookHandleNegativeCashBalance, RecoveryFunc(DefaultNegativeCashRecovery))
	code, err := fn(gs, p)
	if err != nil {
		return fmt.Errorf("negative cash recovery for %s: %w", p.Name, err)
	}
	gs.record(rules.EventDecision, "handle_negative_cash_balance", p,
		map[string]any{"cash": p.Cash}, code)
	if code != gs.codes.Success || p.Cash < 0 {
		gs.Bankrupt(p)
	}
	return nil
}

// Bankrupt eliminates p. Holdings go back to the bank unmortgaged, buildings
// return to the bank's stock and held jail cards return to their packs. The
// remaining balance stays with p.
func (gs *GameState) Bankrupt(p *Player) {
	if p.Lost() {
		return
	}
	p.Status = StatusLost
	for _, prop := range p.Assets() {
		if re, ok := prop.(*RealEstate); ok {
			gs.Bank.Houses += re.Houses
			gs.Bank.Hotels += re.Hotels
			re.Houses, re.Hotels = 0, 0
		}
		prop.asset().Mortgaged = false
		gs.setOwner(prop, nil)
	}
	for _, kind := range []DeckKind{DeckChance, DeckCommunityChest} {
		for len(p.JailCards[kind]) > 0 {
			if err := gs.returnJailCard(p, kind); err != nil {
				gs.logger.Error("jail card not returned", zap.String("player", p.Name), zap.Error(err))
			}
		}
	}
	p.OutstandingOffer = nil
	for _, other := range gs.Players {
		if other.OutstandingOffer != nil && other.OutstandingOffer.From == p.Name {
			other.OutstandingOffer = nil
		}
	}
	if gs.pendingPurchase != nil && gs.CurrentPlayer() == p {
		gs.pendingPurchase = nil
	}
	p.InJail = false

	gs.record(rules.EventBankrupt, "bankrupt", p, map[string]any{"cash": p.Cash}, gs.codes.Success)
	gs.logger.Info("player bankrupt",
		zap.String("game_id", gs.ID),
		zap.String("player", p.Name),
		zap.Int("cash", p.Cash),
		zap.Int("time_step", gs.TimeStep),
	)
}
