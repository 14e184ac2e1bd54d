package agent

import (
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game"
)

// Passive never buys, bids, builds or trades. In debt it sells buildings and
// mortgages what it holds, in acquisition order.
type Passive struct{}

func (Passive) PreRollMove(*game.Player, *game.GameState, game.ActionSet) game.Move {
	return game.Conclude()
}

func (Passive) PostRollMove(*game.Player, *game.GameState, game.ActionSet) game.Move {
	return game.Conclude()
}

func (Passive) OutOfTurnMove(*game.Player, *game.GameState, game.ActionSet) game.Move {
	return game.Conclude()
}

func (Passive) BuyProperty(*game.Player, *game.GameState, game.Property) bool { return false }

func (Passive) Bid(*game.Player, *game.GameState, game.Property, int) int { return 0 }

func (Passive) HandleNegativeCashBalance(p *game.Player, gs *game.GameState, allowed game.ActionSet) game.Move {
	if allowed.Has(game.ActionSellHouseHotel) {
		if m, ok := sellBuilding(p); ok {
			return m
		}
	}
	for _, prop := range p.Assets() {
		if groupImproved(gs, prop) {
			continue
		}
		if allowed.Has(game.ActionMortgageProperty) && !game.AssetOf(prop).Mortgaged {
			return game.Move{Action: game.ActionMortgageProperty, Params: game.Params{Asset: prop.Name()}}
		}
	}
	return game.Conclude()
}

// New returns the provider registered under name, or false.
func New(name string) (game.DecisionProvider, bool) {
	switch name {
	case "background":
		return NewBackground(), true
	case "passive":
		return Passive{}, true
	}
	return nil, false
}
