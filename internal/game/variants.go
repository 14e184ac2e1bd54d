package game

// Variants carries the configuration of optional rule families. A nil field
// means the family is off. Rule variants read their family here when they
// are installed and fail with ErrMissingConfig if it is absent.
type Variants struct {
	Tax         *TaxVariant
	Monopoly    *MonopolyVariant
	GoBonus     *GoBonusVariant
	Improvement *ImprovementVariant
}

// TaxVariant configures progressive taxation: a share of the payer's net
// worth, never less than Minimum.
type TaxVariant struct {
	Percentage float64
	Minimum    int
}

// MonopolyVariant overrides the monopoly rent multiplier per color.
type MonopolyVariant struct {
	Multipliers map[string]int
}

// GoBonusVariant changes what passing or landing on Go pays.
type GoBonusVariant struct {
	// LandingMultiplier scales the Go increment when a move ends exactly on Go.
	LandingMultiplier int
	// Bonus is paid on the pass following the first one after installation.
	Bonus int
}

// ImprovementVariant caps building.
type ImprovementVariant struct {
	MaxHouses   int
	AllowHotels bool
}

// SetupFunc runs once at the end of NewGame, typically to install hooks.
type SetupFunc func(gs *GameState) error
