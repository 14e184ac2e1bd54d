package game

import "fmt"

// DefaultRent is the standard street rent. An unimproved street in a full
// color set owned by one player charges base rent times the bank's monopoly
// multiplier; improved streets charge the house tier or hotel rent.
func DefaultRent(gs *GameState, loc Location, payer *Player) (int, error) {
	re, ok := loc.(*RealEstate)
	if !ok {
		return 0, invariantf("rent requested for %T %q", loc, loc.Name())
	}
	switch {
	case re.Hotels > 0:
		return re.RentHotel, nil
	case re.Houses > len(re.RentHouses):
		return 0, invariantf("%q has %d houses", re.Name(), re.Houses)
	case re.Houses > 0:
		return re.RentHouses[re.Houses-1], nil
	}
	if owner := re.Owner(); owner != nil && owner.FullColorSets[re.Color] {
		return re.Rent * gs.Bank.MonopolyMultiplier, nil
	}
	return re.Rent, nil
}

// DefaultRailroadDues indexes the railroad's dues by the owner's railroad
// count.
func DefaultRailroadDues(gs *GameState, loc Location, payer *Player) (int, error) {
	rr, ok := loc.(*Railroad)
	if !ok {
		return 0, invariantf("railroad dues requested for %T %q", loc, loc.Name())
	}
	owner := rr.Owner()
	if owner == nil {
		return 0, invariantf("railroad dues requested for bank-owned %q", rr.Name())
	}
	count := owner.NumRailroads
	if count < 0 || count >= len(rr.Dues) {
		return 0, invariantf("%s owns %d railroads", owner.Name, count)
	}
	return rr.Dues[count], nil
}

// DefaultUtilityDues multiplies the current die total by the multiplier for
// the owner's utility count.
func DefaultUtilityDues(gs *GameState, loc Location, payer *Player) (int, error) {
	u, ok := loc.(*Utility)
	if !ok {
		return 0, invariantf("utility dues requested for %T %q", loc, loc.Name())
	}
	owner := u.Owner()
	if owner == nil {
		return 0, invariantf("utility dues requested for bank-owned %q", u.Name())
	}
	count := owner.NumUtilities
	mult, ok := u.Multipliers[count]
	if !ok || count < 1 || count > 2 {
		return 0, invariantf("%s owns %d utilities", owner.Name, count)
	}
	return gs.CurrentDieTotal * mult, nil
}

// DefaultTax charges the location's fixed amount.
func DefaultTax(gs *GameState, loc Location, payer *Player) (int, error) {
	t, ok := loc.(*Tax)
	if !ok {
		return 0, invariantf("tax requested for %T %q", loc, loc.Name())
	}
	return t.Amount, nil
}

// CalculateDue returns what payer owes for landing on loc, going through the
// installed hook for the location's class.
func (gs *GameState) CalculateDue(loc Location, payer *Player) (int, error) {
	var fn DueFunc
	switch loc.(type) {
	case *RealEstate:
		fn = lookupOr(gs.Hooks, HookCalculateRent, DueFunc(DefaultRent))
	case *Railroad:
		fn = lookupOr(gs.Hooks, HookCalculateRailroadDues, DueFunc(DefaultRailroadDues))
	case *Utility:
		fn = lookupOr(gs.Hooks, HookCalculateUtilityDues, DueFunc(DefaultUtilityDues))
	case *Tax:
		fn = lookupOr(gs.Hooks, HookCalculateTax, DueFunc(DefaultTax))
	case *ActionLocation, *DoNothing:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnknownLocation, loc)
	}
	due, err := fn(gs, loc, payer)
	if err != nil {
		return 0, fmt.Errorf("calculate due for %q: %w", loc.Name(), err)
	}
	return due, nil
}
