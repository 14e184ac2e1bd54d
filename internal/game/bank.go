package game

import "github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/board"

// Bank is the single counterparty for purchases, taxes and payouts. It also
// holds the house and hotel inventory and the global rule parameters.
type Bank struct {
	Cash   int
	Houses int
	Hotels int

	MortgagePercentage     float64
	MonopolyMultiplier     int
	PropertySellPercentage float64
	HouseSellPercentage    float64
	MaxHousesPerProperty   int
	GoIncrement            int
	JailFine               int
}

func newBank(spec board.BankSpec) *Bank {
	return &Bank{
		Cash:                   spec.Cash,
		Houses:                 spec.Houses,
		Hotels:                 spec.Hotels,
		MortgagePercentage:     spec.MortgagePercentage,
		MonopolyMultiplier:     spec.MonopolyMultiplier,
		PropertySellPercentage: spec.PropertySellPercentage,
		HouseSellPercentage:    spec.HouseSellPercentage,
		MaxHousesPerProperty:   spec.MaxHousesPerProperty,
		GoIncrement:            spec.GoIncrement,
		JailFine:               spec.JailFine,
	}
}

// CanPay reports whether the bank pool covers amount.
func (b *Bank) CanPay(amount int) bool { return b.Cash >= amount }
