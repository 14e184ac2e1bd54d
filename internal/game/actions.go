package game

import (
	"go.uber.org/zap"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/rules"
)

// AllowableActions computes what p may do in phase.
func (gs *GameState) AllowableActions(p *Player, phase rules.Phase) ActionSet {
	set := ActionSet{ActionConcludeActions: true}
	if p.Lost() {
		return set
	}

	hasUnmortgaged, hasMortgaged, hasImproved, hasSellable, canImprove := false, false, false, false, false
	for _, prop := range p.assets {
		a := prop.asset()
		improved := gs.groupImproved(prop)
		if a.Mortgaged {
			hasMortgaged = true
		} else if !improved {
			hasUnmortgaged = true
		}
		if !improved {
			hasSellable = true
		}
		if re, ok := prop.(*RealEstate); ok {
			if re.Improved() {
				hasImproved = true
			}
			if p.FullColorSets[re.Color] {
				canImprove = true
			}
		}
	}

	switch phase {
	case rules.PhasePreRoll, rules.PhaseOutOfTurn:
		set[ActionSkipTurn] = true
		set[ActionMortgageProperty] = hasUnmortgaged
		set[ActionFreeMortgage] = hasMortgaged
		set[ActionImproveProperty] = canImprove
		set[ActionSellHouseHotel] = hasImproved
		set[ActionSellProperty] = hasSellable
		set[ActionMakeTradeOffer] = len(gs.ActivePlayers()) > 1
		if p.OutstandingOffer != nil {
			set[ActionAcceptTradeOffer] = true
			set[ActionDeclineTradeOffer] = true
		}
		if phase == rules.PhasePreRoll && p.InJail {
			set[ActionUseJailCard] = p.HasJailCard()
			set[ActionPayJailFine] = p.Cash >= gs.Bank.JailFine
		}
	case rules.PhasePostRoll:
		set[ActionMortgageProperty] = hasUnmortgaged
		set[ActionSellHouseHotel] = hasImproved
		set[ActionSellProperty] = hasSellable
		if prop := gs.pendingPurchase; prop != nil && prop.asset().OwnedByBank() && gs.CurrentPlayer() == p {
			set[ActionBuyProperty] = p.Cash >= prop.asset().Price
		}
	}

	for a, ok := range set {
		if !ok {
			delete(set, a)
		}
	}
	return set
}

// Execute performs move for p. Rule failures come back as the failure code;
// an error means the game cannot continue.
func (gs *GameState) Execute(p *Player, move Move) (Code, error) {
	params := move.Params
	switch move.Action {
	case ActionConcludeActions, ActionSkipTurn:
		return gs.codes.Success, nil
	case ActionBuyProperty:
		return gs.BuyProperty(p, params.Asset), nil
	case ActionSellProperty:
		return gs.SellProperty(p, params.Asset), nil
	case ActionSellHouseHotel:
		return gs.SellHouseHotel(p, params.Asset, params.Hotel), nil
	case ActionImproveProperty:
		return gs.ImproveProperty(p, params.Asset, params.Hotel), nil
	case ActionMortgageProperty:
		return gs.MortgageProperty(p, params.Asset), nil
	case ActionFreeMortgage:
		return gs.FreeMortgage(p, params.Asset), nil
	case ActionMakeTradeOffer:
		return gs.MakeTradeOffer(p, params.Offer), nil
	case ActionAcceptTradeOffer:
		return gs.AcceptTradeOffer(p), nil
	case ActionDeclineTradeOffer:
		return gs.DeclineTradeOffer(p), nil
	case ActionUseJailCard:
		return gs.UseJailCard(p), nil
	case ActionPayJailFine:
		return gs.PayJailFine(p), nil
	default:
		gs.record(rules.EventDecision, "execute", p,
			map[string]any{"action": string(move.Action)}, gs.codes.Failure)
		return gs.codes.Failure, nil
	}
}

// UseJailCard frees p with a held card and returns the card to its pack.
func (gs *GameState) UseJailCard(p *Player) Code {
	if !p.InJail {
		return gs.codes.Failure
	}
	for _, kind := range []DeckKind{DeckChance, DeckCommunityChest} {
		if len(p.JailCards[kind]) == 0 {
			continue
		}
		if err := gs.returnJailCard(p, kind); err != nil {
			gs.logger.Error("jail card not returned", zap.String("player", p.Name), zap.Error(err))
			return gs.codes.Failure
		}
		gs.releaseFromJail(p, "card:"+string(kind))
		return gs.codes.Success
	}
	return gs.codes.Failure
}

// PayJailFine frees p for the bank's fine.
func (gs *GameState) PayJailFine(p *Player) Code {
	if !p.InJail || p.Cash < gs.Bank.JailFine {
		return gs.codes.Failure
	}
	gs.Charge(p, gs.Bank.JailFine, true)
	gs.releaseFromJail(p, "fine")
	return gs.codes.Success
}
