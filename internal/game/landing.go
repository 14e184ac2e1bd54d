package game

import (
	"fmt"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/board"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/rules"
)

// landing adjusts what an owned asset charges, for cards that send a player
// somewhere with special terms.
type landing struct {
	dueMultiplier  int
	rollMultiplier int
}

func defaultLocationAction(action string) (LocationActionFunc, bool) {
	switch action {
	case board.ActionPickChance:
		return func(gs *GameState, p *Player, _ *ActionLocation) (Code, error) {
			return gs.DrawCard(p, DeckChance)
		}, true
	case board.ActionPickCommunityChest:
		return func(gs *GameState, p *Player, _ *ActionLocation) (Code, error) {
			return gs.DrawCard(p, DeckCommunityChest)
		}, true
	case board.ActionGoToJail:
		return func(gs *GameState, p *Player, _ *ActionLocation) (Code, error) {
			gs.SendToJail(p)
			return gs.codes.Success, nil
		}, true
	}
	return nil, false
}

// resolveLanding applies the consequence of the location under p.
func (gs *GameState) resolveLanding(p *Player, opts landing) error {
	loc := gs.Board[p.Position]
	switch l := loc.(type) {
	case *DoNothing:
		return nil
	case *RealEstate:
		return gs.landOnProperty(p, l, opts)
	case *Railroad:
		return gs.landOnProperty(p, l, opts)
	case *Utility:
		return gs.landOnProperty(p, l, opts)
	case *Tax:
		due, err := gs.CalculateDue(l, p)
		if err != nil {
			return err
		}
		gs.Charge(p, due, true)
		return nil
	case *ActionLocation:
		fn, ok := Lookup[LocationActionFunc](gs.Hooks, ActionHook(l.Action))
		if !ok {
			fn, ok = defaultLocationAction(l.Action)
		}
		if !ok {
			return fmt.Errorf("%w: no handler for action %q at %q", ErrMissingConfig, l.Action, l.Name())
		}
		if _, err := fn(gs, p, l); err != nil {
			return fmt.Errorf("action %q: %w", l.Action, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %T at slot %d", ErrUnknownLocation, loc, p.Position)
	}
}

func (gs *GameState) landOnProperty(p *Player, prop Property, opts landing) error {
	owner := prop.Owner()
	switch {
	case owner == nil:
		gs.pendingPurchase = prop
		gs.record(rules.EventDecision, "purchase_offered", p,
			map[string]any{"asset": prop.Name(), "price": prop.asset().Price}, gs.codes.Success)
		return nil
	case owner == p, prop.asset().Mortgaged:
		return nil
	}

	var due int
	if _, isUtility := prop.(*Utility); isUtility && opts.rollMultiplier > 0 {
		due = gs.CurrentDieTotal * opts.rollMultiplier
	} else {
		d, err := gs.CalculateDue(prop, p)
		if err != nil {
			return err
		}
		due = d
		if opts.dueMultiplier > 1 {
			due *= opts.dueMultiplier
		}
	}
	gs.Transfer(p, owner, due)
	return nil
}
