// Package novelty holds rule variants. Each one is a game.SetupFunc that
// reads its family from GameState.Variants and installs hooks; the engine
// itself never learns about them.
package novelty

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game"
)

// ProgressiveTax charges tax locations a share of the payer's net worth.
func ProgressiveTax(gs *game.GameState) error {
	v := gs.Variants.Tax
	if v == nil {
		return fmt.Errorf("%w: tax variant", game.ErrMissingConfig)
	}
	if v.Percentage < 0 || v.Minimum < 0 {
		return fmt.Errorf("%w: negative tax variant", game.ErrInvariantViolation)
	}
	return gs.Hooks.Register(game.HookCalculateTax, func(gs *game.GameState, loc game.Location, payer *game.Player) (int, error) {
		return max(v.Minimum, int(v.Percentage*float64(payer.NetWorth()))), nil
	})
}

// MonopolyMultiplier replaces the bank's monopoly multiplier with one per
// color. Colors without an entry keep the bank's.
func MonopolyMultiplier(gs *game.GameState) error {
	v := gs.Variants.Monopoly
	if v == nil {
		return fmt.Errorf("%w: monopoly variant", game.ErrMissingConfig)
	}
	return gs.Hooks.Register(game.HookCalculateRent, func(gs *game.GameState, loc game.Location, payer *game.Player) (int, error) {
		re, ok := loc.(*game.RealEstate)
		if !ok || re.Improved() || re.Owner() == nil || !re.Owner().FullColorSets[re.Color] {
			return game.DefaultRent(gs, loc, payer)
		}
		mult, ok := v.Multipliers[re.Color]
		if !ok {
			return game.DefaultRent(gs, loc, payer)
		}
		return re.Rent * mult, nil
	})
}

// GoBonus pays extra for an exact landing on Go. The first time anyone
// reaches Go it swaps itself for a hook that pays Bonus on the next pass,
// after which only the landing extra remains.
func GoBonus(gs *game.GameState) error {
	v := gs.Variants.GoBonus
	if v == nil {
		return fmt.Errorf("%w: go bonus variant", game.ErrMissingConfig)
	}

	landingExtra := func(gs *game.GameState, p *game.Player, pass game.GoPass) {
		if pass == game.GoPassLanded && v.LandingMultiplier > 1 {
			gs.Receive(p, gs.Bank.GoIncrement*(v.LandingMultiplier-1), true)
		}
	}
	plain := func(gs *game.GameState, p *game.Player, pass game.GoPass) error {
		landingExtra(gs, p, pass)
		return nil
	}
	bonus := func(gs *game.GameState, p *game.Player, pass game.GoPass) error {
		landingExtra(gs, p, pass)
		if v.Bonus > 0 {
			gs.Receive(p, v.Bonus, true)
		}
		gs.Logger().Debug("go bonus paid", zap.String("player", p.Name), zap.Int("bonus", v.Bonus))
		return gs.Hooks.Register(game.HookOnPassGo, plain)
	}
	armed := func(gs *game.GameState, p *game.Player, pass game.GoPass) error {
		landingExtra(gs, p, pass)
		return gs.Hooks.Register(game.HookOnPassGo, bonus)
	}
	return gs.Hooks.Register(game.HookOnPassGo, armed)
}

// ImprovementCap limits houses per street and optionally forbids hotels.
// A hotel still needs the bank's full house count first.
func ImprovementCap(gs *game.GameState) error {
	v := gs.Variants.Improvement
	if v == nil {
		return fmt.Errorf("%w: improvement variant", game.ErrMissingConfig)
	}
	return gs.Hooks.Register(game.HookImprovementPossible, func(gs *game.GameState, p *game.Player, re *game.RealEstate, hotel bool) bool {
		if hotel && !v.AllowHotels {
			return false
		}
		if !hotel && re.Houses >= v.MaxHouses {
			return false
		}
		return game.DefaultImprovementPossible(gs, p, re, hotel)
	})
}

// For returns the setups for every variant family configured in v.
func For(v game.Variants) []game.SetupFunc {
	var setups []game.SetupFunc
	if v.Tax != nil {
		setups = append(setups, ProgressiveTax)
	}
	if v.Monopoly != nil {
		setups = append(setups, MonopolyMultiplier)
	}
	if v.GoBonus != nil {
		setups = append(setups, GoBonus)
	}
	if v.Improvement != nil {
		setups = append(setups, ImprovementCap)
	}
	return setups
}
