package game

import (
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/rules"
)

// DefaultFreeMortgageCost is the mortgage value plus the bank's interest.
func DefaultFreeMortgageCost(gs *GameState, p *Player, prop Property) int {
	a := prop.asset()
	return int(float64(a.MortgageValue) * (1 + gs.Bank.MortgagePercentage))
}

// DefaultImprovementPossible checks the building rules: the owner holds the
// color set, nothing in it is mortgaged, building is even across the set and
// the bank has stock.
func DefaultImprovementPossible(gs *GameState, p *Player, re *RealEstate, hotel bool) bool {
	if re.Owner() != p || !p.FullColorSets[re.Color] || p.Cash < re.PriceHouse {
		return false
	}
	maxHouses := gs.Bank.MaxHousesPerProperty
	for _, other := range gs.colorGroups[re.Color] {
		if other.Mortgaged {
			return false
		}
	}
	if hotel {
		if re.Hotels > 0 || re.Houses != maxHouses || gs.Bank.Hotels <= 0 {
			return false
		}
		for _, other := range gs.colorGroups[re.Color] {
			if other.Hotels == 0 && other.Houses < maxHouses {
				return false
			}
		}
		return true
	}
	if re.Hotels > 0 || re.Houses >= maxHouses || gs.Bank.Houses <= 0 {
		return false
	}
	for _, other := range gs.colorGroups[re.Color] {
		if other.Hotels == 0 && other.Houses < re.Houses {
			return false
		}
	}
	return true
}

func (gs *GameState) ownedBy(p *Player, name string) (Property, bool) {
	prop, ok := gs.Property(name)
	if !ok || prop.Owner() != p {
		return nil, false
	}
	return prop, true
}

// groupImproved reports whether prop, or any street sharing its color, has
// buildings.
func (gs *GameState) groupImproved(prop Property) bool {
	re, ok := prop.(*RealEstate)
	if !ok {
		return false
	}
	for _, other := range gs.colorGroups[re.Color] {
		if other.Improved() {
			return true
		}
	}
	return false
}

// BuyProperty buys the asset p just landed on at list price.
func (gs *GameState) BuyProperty(p *Player, name string) Code {
	prop := gs.pendingPurchase
	if prop == nil || prop.Name() != name || !prop.asset().OwnedByBank() || p.Cash < prop.asset().Price {
		gs.record(rules.EventAssetTransferred, "buy_property", p, map[string]any{"asset": name}, gs.codes.Failure)
		return gs.codes.Failure
	}
	gs.Charge(p, prop.asset().Price, true)
	gs.setOwner(prop, p)
	gs.pendingPurchase = nil
	return gs.codes.Success
}

// MortgageProperty pledges an unimproved asset to the bank for its mortgage
// value.
func (gs *GameState) MortgageProperty(p *Player, name string) Code {
	prop, ok := gs.ownedBy(p, name)
	if !ok || prop.asset().Mortgaged || gs.groupImproved(prop) {
		gs.record(rules.EventMortgaged, "mortgage_property", p, map[string]any{"asset": name}, gs.codes.Failure)
		return gs.codes.Failure
	}
	a := prop.asset()
	if gs.Receive(p, a.MortgageValue, true) != gs.codes.Success {
		return gs.codes.Failure
	}
	a.Mortgaged = true
	gs.record(rules.EventMortgaged, "mortgage_property", p,
		map[string]any{"asset": name, "amount": a.MortgageValue}, gs.codes.Success)
	return gs.codes.Success
}

// FreeMortgage lifts a mortgage for the installed cost.
func (gs *GameState) FreeMortgage(p *Player, name string) Code {
	prop, ok := gs.ownedBy(p, name)
	if !ok || !prop.asset().Mortgaged {
		gs.record(rules.EventMortgageFreed, "free_mortgage", p, map[string]any{"asset": name}, gs.codes.Failure)
		return gs.codes.Failure
	}
	cost := gs.freeMortgageCost(p, prop)
	if p.Cash < cost {
		gs.record(rules.EventMortgageFreed, "free_mortgage", p,
			map[string]any{"asset": name, "cost": cost}, gs.codes.Failure)
		return gs.codes.Failure
	}
	gs.Charge(p, cost, true)
	prop.asset().Mortgaged = false
	gs.record(rules.EventMortgageFreed, "free_mortgage", p,
		map[string]any{"asset": name, "cost": cost}, gs.codes.Success)
	return gs.codes.Success
}

func (gs *GameState) freeMortgageCost(p *Player, prop Property) int {
	fn := lookupOr(gs.Hooks, HookFreeMortgageCost, CostFunc(DefaultFreeMortgageCost))
	return fn(gs, p, prop)
}

// FreeMortgageCost is what p would pay to lift the mortgage on prop under
// the installed rules.
func (gs *GameState) FreeMortgageCost(p *Player, prop Property) int {
	return gs.freeMortgageCost(p, prop)
}

// ImprovementPossible reports whether p may build on re under the installed
// rules.
func (gs *GameState) ImprovementPossible(p *Player, re *RealEstate, hotel bool) bool {
	possible := lookupOr(gs.Hooks, HookImprovementPossible, ImprovementFunc(DefaultImprovementPossible))
	return possible(gs, p, re, hotel)
}

// SellProperty sells an unimproved asset back to the bank for its price
// times the sell percentage. A mortgaged asset's payoff is deducted.
func (gs *GameState) SellProperty(p *Player, name string) Code {
	prop, ok := gs.ownedBy(p, name)
	if !ok || gs.groupImproved(prop) {
		gs.record(rules.EventAssetTransferred, "sell_property", p, map[string]any{"asset": name}, gs.codes.Failure)
		return gs.codes.Failure
	}
	a := prop.asset()
	proceeds := int(float64(a.Price) * gs.Bank.PropertySellPercentage)
	if a.Mortgaged {
		proceeds -= gs.freeMortgageCost(p, prop)
	}
	switch {
	case proceeds > 0:
		if gs.Receive(p, proceeds, true) != gs.codes.Success {
			return gs.codes.Failure
		}
	case proceeds < 0:
		gs.Charge(p, -proceeds, true)
	}
	a.Mortgaged = false
	gs.setOwner(prop, nil)
	gs.record(rules.EventAssetTransferred, "sell_property", p,
		map[string]any{"asset": name, "proceeds": proceeds}, gs.codes.Success)
	return gs.codes.Success
}

// ImproveProperty builds a house, or a hotel when hotel is set, on a street.
func (gs *GameState) ImproveProperty(p *Player, name string, hotel bool) Code {
	prop, ok := gs.ownedBy(p, name)
	re, isStreet := prop.(*RealEstate)
	if !ok || !isStreet {
		gs.record(rules.EventImproved, "improve_property", p, map[string]any{"asset": name}, gs.codes.Failure)
		return gs.codes.Failure
	}
	if !gs.ImprovementPossible(p, re, hotel) || p.Cash < re.PriceHouse {
		gs.record(rules.EventImproved, "improve_property", p,
			map[string]any{"asset": name, "hotel": hotel}, gs.codes.Failure)
		return gs.codes.Failure
	}
	if hotel && gs.Bank.Hotels <= 0 || !hotel && gs.Bank.Houses <= 0 {
		gs.record(rules.EventImproved, "improve_property", p,
			map[string]any{"asset": name, "hotel": hotel, "reason": "bank out of stock"}, gs.codes.Failure)
		return gs.codes.Failure
	}

	gs.Charge(p, re.PriceHouse, true)
	if hotel {
		gs.Bank.Hotels--
		gs.Bank.Houses += re.Houses
		re.Houses = 0
		re.Hotels = 1
	} else {
		gs.Bank.Houses--
		re.Houses++
	}
	gs.record(rules.EventImproved, "improve_property", p,
		map[string]any{"asset": name, "hotel": hotel, "houses": re.Houses, "hotels": re.Hotels}, gs.codes.Success)
	return gs.codes.Success
}

// SellHouseHotel sells one building back to the bank at the house sell
// percentage. Houses come off the most built street first. A hotel is
// swapped back for houses when the bank has them.
func (gs *GameState) SellHouseHotel(p *Player, name string, hotel bool) Code {
	prop, ok := gs.ownedBy(p, name)
	re, isStreet := prop.(*RealEstate)
	fail := func(reason string) Code {
		gs.record(rules.EventImprovementSold, "sell_house_hotel", p,
			map[string]any{"asset": name, "hotel": hotel, "reason": reason}, gs.codes.Failure)
		return gs.codes.Failure
	}
	if !ok || !isStreet {
		return fail("not owned")
	}
	if hotel && re.Hotels == 0 {
		return fail("no hotel")
	}
	if !hotel {
		if re.Hotels > 0 || re.Houses == 0 {
			return fail("no houses")
		}
		for _, other := range gs.colorGroups[re.Color] {
			if other.Hotels > 0 || other.Houses > re.Houses {
				return fail("uneven")
			}
		}
	}

	price := int(float64(re.PriceHouse) * gs.Bank.HouseSellPercentage)
	maxHouses := gs.Bank.MaxHousesPerProperty
	refund := price
	if hotel && gs.Bank.Houses < maxHouses {
		refund += price * maxHouses
	}
	if gs.Receive(p, refund, true) != gs.codes.Success {
		return gs.codes.Failure
	}

	if hotel {
		re.Hotels = 0
		gs.Bank.Hotels++
		if gs.Bank.Houses >= maxHouses {
			gs.Bank.Houses -= maxHouses
			re.Houses = maxHouses
		}
	} else {
		re.Houses--
		gs.Bank.Houses++
	}
	gs.record(rules.EventImprovementSold, "sell_house_hotel", p,
		map[string]any{"asset": name, "hotel": hotel, "refund": refund}, gs.codes.Success)
	return gs.codes.Success
}
