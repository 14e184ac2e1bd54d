// Package agent provides decision providers that play without a human.
package agent

import (
	"sort"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game"
)

const (
	defaultReserve = 200
	defaultBidStep = 10
)

// Background is a heuristic player. It keeps a cash reserve, buys what it
// can afford above that reserve, builds on its color sets, chases the last
// street of a set through trade offers and raises cash cheapest-first when
// it falls into debt.
type Background struct {
	// Reserve is the cash it tries to keep after any voluntary spend.
	Reserve int
	// BidStep is how much it raises the current bid in an auction.
	BidStep int

	lastOffer int
}

// NewBackground returns a Background agent with the default reserve.
func NewBackground() *Background {
	return &Background{Reserve: defaultReserve, BidStep: defaultBidStep, lastOffer: -1}
}

func price(prop game.Property) int { return game.AssetOf(prop).Price }

// completesSet reports whether owning prop would give p its whole color set.
func completesSet(p *game.Player, gs *game.GameState, prop game.Property) bool {
	re, ok := prop.(*game.RealEstate)
	if !ok {
		return false
	}
	for _, other := range gs.ColorGroup(re.Color) {
		if other != re && other.Owner() != p {
			return false
		}
	}
	return true
}

func groupImproved(gs *game.GameState, prop game.Property) bool {
	re, ok := prop.(*game.RealEstate)
	if !ok {
		return false
	}
	for _, other := range gs.ColorGroup(re.Color) {
		if other.Improved() {
			return true
		}
	}
	return false
}

func (b *Background) PreRollMove(p *game.Player, gs *game.GameState, allowed game.ActionSet) game.Move {
	switch {
	case allowed.Has(game.ActionUseJailCard):
		return game.Move{Action: game.ActionUseJailCard}
	case allowed.Has(game.ActionPayJailFine) && p.Cash-gs.Bank.JailFine >= b.Reserve:
		return game.Move{Action: game.ActionPayJailFine}
	}
	if m, ok := b.answerOffer(p, gs, allowed); ok {
		return m
	}
	if m, ok := b.improve(p, gs, allowed); ok {
		return m
	}
	if m, ok := b.freeMortgage(p, gs, allowed); ok {
		return m
	}
	if m, ok := b.proposeTrade(p, gs, allowed); ok {
		return m
	}
	return game.Conclude()
}

// PostRollMove concludes. Purchases are answered through BuyProperty.
func (b *Background) PostRollMove(*game.Player, *game.GameState, game.ActionSet) game.Move {
	return game.Conclude()
}

func (b *Background) OutOfTurnMove(p *game.Player, gs *game.GameState, allowed game.ActionSet) game.Move {
	if m, ok := b.answerOffer(p, gs, allowed); ok {
		return m
	}
	if m, ok := b.freeMortgage(p, gs, allowed); ok {
		return m
	}
	return game.Conclude()
}

func (b *Background) BuyProperty(p *game.Player, gs *game.GameState, prop game.Property) bool {
	cost := price(prop)
	if completesSet(p, gs, prop) {
		return cost <= p.Cash
	}
	return p.Cash-cost >= b.Reserve
}

func (b *Background) Bid(p *game.Player, gs *game.GameState, prop game.Property, current int) int {
	limit := min(price(prop), p.Cash-b.Reserve)
	if completesSet(p, gs, prop) {
		limit = min(price(prop)*3/2, p.Cash)
	}
	next := current + b.BidStep
	if next > limit {
		return 0
	}
	return next
}

func (b *Background) HandleNegativeCashBalance(p *game.Player, gs *game.GameState, allowed game.ActionSet) game.Move {
	if allowed.Has(game.ActionSellHouseHotel) {
		if m, ok := sellBuilding(p); ok {
			return m
		}
	}
	if allowed.Has(game.ActionMortgageProperty) {
		if prop, ok := cheapestMortgage(p, gs); ok {
			return game.Move{Action: game.ActionMortgageProperty, Params: game.Params{Asset: prop.Name()}}
		}
	}
	if allowed.Has(game.ActionAcceptTradeOffer) && p.OutstandingOffer.CashOffered > p.OutstandingOffer.CashWanted {
		return game.Move{Action: game.ActionAcceptTradeOffer}
	}
	if allowed.Has(game.ActionSellProperty) {
		for _, prop := range p.Assets() {
			if !game.AssetOf(prop).Mortgaged && !groupImproved(gs, prop) {
				return game.Move{Action: game.ActionSellProperty, Params: game.Params{Asset: prop.Name()}}
			}
		}
	}
	return game.Conclude()
}

// answerOffer accepts an offer that brings in more value than it costs and
// declines the rest.
func (b *Background) answerOffer(p *game.Player, gs *game.GameState, allowed game.ActionSet) (game.Move, bool) {
	offer := p.OutstandingOffer
	if offer == nil || !allowed.Has(game.ActionAcceptTradeOffer) {
		return game.Move{}, false
	}
	gain := offer.CashOffered - offer.CashWanted
	for _, name := range offer.PropertiesOffered {
		if prop, ok := gs.Property(name); ok {
			gain += price(prop)
		}
	}
	for _, name := range offer.PropertiesWanted {
		if prop, ok := gs.Property(name); ok {
			if p.FullColorSets[colorOf(prop)] {
				return game.Move{Action: game.ActionDeclineTradeOffer}, true
			}
			gain -= price(prop)
		}
	}
	if gain > 0 && p.Cash-offer.CashWanted >= 0 {
		return game.Move{Action: game.ActionAcceptTradeOffer}, true
	}
	return game.Move{Action: game.ActionDeclineTradeOffer}, true
}

func colorOf(prop game.Property) string {
	if re, ok := prop.(*game.RealEstate); ok {
		return re.Color
	}
	return ""
}

func (b *Background) improve(p *game.Player, gs *game.GameState, allowed game.ActionSet) (game.Move, bool) {
	if !allowed.Has(game.ActionImproveProperty) {
		return game.Move{}, false
	}
	for _, hotel := range []bool{false, true} {
		for _, prop := range p.Assets() {
			re, ok := prop.(*game.RealEstate)
			if !ok || p.Cash-re.PriceHouse < b.Reserve {
				continue
			}
			if gs.ImprovementPossible(p, re, hotel) {
				return game.Move{Action: game.ActionImproveProperty, Params: game.Params{Asset: re.Name(), Hotel: hotel}}, true
			}
		}
	}
	return game.Move{}, false
}

func (b *Background) freeMortgage(p *game.Player, gs *game.GameState, allowed game.ActionSet) (game.Move, bool) {
	if !allowed.Has(game.ActionFreeMortgage) {
		return game.Move{}, false
	}
	for _, prop := range p.Mortgaged() {
		if p.Cash-gs.FreeMortgageCost(p, prop) >= b.Reserve {
			return game.Move{Action: game.ActionFreeMortgage, Params: game.Params{Asset: prop.Name()}}, true
		}
	}
	return game.Move{}, false
}

// proposeTrade offers cash for the one street missing from a color set, at
// most once per time step.
func (b *Background) proposeTrade(p *game.Player, gs *game.GameState, allowed game.ActionSet) (game.Move, bool) {
	if !allowed.Has(game.ActionMakeTradeOffer) || b.lastOffer == gs.TimeStep {
		return game.Move{}, false
	}
	for _, prop := range p.Assets() {
		re, ok := prop.(*game.RealEstate)
		if !ok || p.FullColorSets[re.Color] {
			continue
		}
		var missing *game.RealEstate
		count := 0
		for _, other := range gs.ColorGroup(re.Color) {
			if other.Owner() != p {
				missing = other
				count++
			}
		}
		if count != 1 {
			continue
		}
		owner := missing.Owner()
		if owner == nil || owner.Lost() || owner.OutstandingOffer != nil || missing.Mortgaged || groupImproved(gs, missing) {
			continue
		}
		cash := missing.Price * 3 / 2
		if p.Cash-cash < b.Reserve {
			continue
		}
		b.lastOffer = gs.TimeStep
		return game.Move{
			Action: game.ActionMakeTradeOffer,
			Params: game.Params{Offer: &game.TradeOffer{
				To:               owner.Name,
				PropertiesWanted: []string{missing.Name()},
				CashOffered:      cash,
			}},
		}, true
	}
	return game.Move{}, false
}

// sellBuilding picks a building whose sale keeps the color group even.
func sellBuilding(p *game.Player) (game.Move, bool) {
	var best *game.RealEstate
	for _, prop := range p.Assets() {
		re, ok := prop.(*game.RealEstate)
		if !ok {
			continue
		}
		if re.Hotels > 0 {
			return game.Move{Action: game.ActionSellHouseHotel, Params: game.Params{Asset: re.Name(), Hotel: true}}, true
		}
		if re.Houses > 0 && (best == nil || re.Houses > best.Houses) {
			best = re
		}
	}
	if best == nil {
		return game.Move{}, false
	}
	return game.Move{Action: game.ActionSellHouseHotel, Params: game.Params{Asset: best.Name()}}, true
}

// cheapestMortgage returns the mortgageable asset worth least, preferring
// assets outside completed color sets.
func cheapestMortgage(p *game.Player, gs *game.GameState) (game.Property, bool) {
	var candidates []game.Property
	for _, prop := range p.Assets() {
		if !game.AssetOf(prop).Mortgaged && !groupImproved(gs, prop) {
			candidates = append(candidates, prop)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := p.FullColorSets[colorOf(candidates[i])], p.FullColorSets[colorOf(candidates[j])]
		if si != sj {
			return !si
		}
		return game.AssetOf(candidates[i]).MortgageValue < game.AssetOf(candidates[j]).MortgageValue
	})
	return candidates[0], true
}
