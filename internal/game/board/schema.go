// Package board holds the static description of a game board: locations,
// card packs, dice and bank parameters. A Schema is plain data; the game
// package turns it into live state.
package board

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Location kinds understood by the engine.
const (
	KindRealEstate = "real_estate"
	KindRailroad   = "railroad"
	KindUtility    = "utility"
	KindTax        = "tax"
	KindAction     = "action"
	KindDoNothing  = "do_nothing"
)

// Card kinds understood by the engine.
const (
	CardAdvanceTo             = "advance_to"
	CardAdvanceRelative       = "advance_relative"
	CardNearestRailroad       = "nearest_railroad"
	CardNearestUtility        = "nearest_utility"
	CardBankPays              = "bank_pays"
	CardPayBank               = "pay_bank"
	CardPayEachPlayer         = "pay_each_player"
	CardCollectFromEachPlayer = "collect_from_each_player"
	CardGoToJail              = "go_to_jail"
	CardGetOutOfJailFree      = "get_out_of_jail_free"
	CardStreetRepairs         = "street_repairs"
)

// ErrInvalidSchema wraps every schema validation failure.
var ErrInvalidSchema = errors.New("invalid board schema")

// Schema is a full board definition.
type Schema struct {
	Name           string         `yaml:"name"`
	StartingCash   int            `yaml:"starting_cash"`
	GoPosition     int            `yaml:"go_position"`
	JailPosition   int            `yaml:"jail_position"`
	Bank           BankSpec       `yaml:"bank"`
	Dice           []DieSpec      `yaml:"dice"`
	Locations      []LocationSpec `yaml:"locations"`
	Chance         []CardSpec     `yaml:"chance"`
	CommunityChest []CardSpec     `yaml:"community_chest"`
}

// BankSpec carries the global rule parameters owned by the bank.
type BankSpec struct {
	Cash                   int     `yaml:"cash"`
	Houses                 int     `yaml:"houses"`
	Hotels                 int     `yaml:"hotels"`
	MortgagePercentage     float64 `yaml:"mortgage_percentage"`
	MonopolyMultiplier     int     `yaml:"monopoly_multiplier"`
	PropertySellPercentage float64 `yaml:"property_sell_percentage"`
	HouseSellPercentage    float64 `yaml:"house_sell_percentage"`
	MaxHousesPerProperty   int     `yaml:"max_houses_per_property"`
	GoIncrement            int     `yaml:"go_increment"`
	JailFine               int     `yaml:"jail_fine"`
}

// DieSpec describes one die.
type DieSpec struct {
	Sides        int    `yaml:"sides"`
	Distribution string `yaml:"distribution"`
	Weights      []int  `yaml:"weights,omitempty"`
}

// LocationSpec describes one board location. Only the fields relevant to
// Kind are read.
type LocationSpec struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`

	Price      int    `yaml:"price,omitempty"`
	Mortgage   int    `yaml:"mortgage,omitempty"`
	Color      string `yaml:"color,omitempty"`
	Rent       int    `yaml:"rent,omitempty"`
	RentHouses []int  `yaml:"rent_houses,omitempty"`
	RentHotel  int    `yaml:"rent_hotel,omitempty"`
	PriceHouse int    `yaml:"price_house,omitempty"`

	// Railroad dues indexed by the owner's railroad count (0-4).
	Dues []int `yaml:"dues,omitempty"`
	// Utility multipliers keyed by the owner's utility count (1-2).
	Multipliers map[int]int `yaml:"multipliers,omitempty"`

	Amount int    `yaml:"amount,omitempty"`
	Action string `yaml:"action,omitempty"`
}

// CardSpec describes a card template. Count copies are placed in the pack.
type CardSpec struct {
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`
	Destination string `yaml:"destination,omitempty"`
	Amount      int    `yaml:"amount,omitempty"`
	PerHouse    int    `yaml:"per_house,omitempty"`
	PerHotel    int    `yaml:"per_hotel,omitempty"`
	Count       int    `yaml:"count,omitempty"`
}

// LoadFile reads a YAML schema from disk and validates it.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML schema and validates it.
func Parse(data []byte) (*Schema, error) {
	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return &schema, nil
}

// Marshal encodes the schema as YAML.
func (s *Schema) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Length returns the number of board slots.
func (s *Schema) Length() int {
	length := 0
	for _, loc := range s.Locations {
		if loc.End > length {
			length = loc.End
		}
	}
	return length
}

// Validate checks that locations tile the board exactly once and that every
// cross reference resolves.
func (s *Schema) Validate() error {
	if len(s.Locations) == 0 {
		return fmt.Errorf("%w: no locations", ErrInvalidSchema)
	}
	if len(s.Dice) == 0 {
		return fmt.Errorf("%w: no dice", ErrInvalidSchema)
	}

	sorted := make([]LocationSpec, len(s.Locations))
	copy(sorted, s.Locations)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	names := make(map[string]bool, len(sorted))
	next := 0
	for _, loc := range sorted {
		if loc.Start != next || loc.End <= loc.Start {
			return fmt.Errorf("%w: location %q covers [%d,%d), expected start %d", ErrInvalidSchema, loc.Name, loc.Start, loc.End, next)
		}
		if names[loc.Name] {
			return fmt.Errorf("%w: duplicate location %q", ErrInvalidSchema, loc.Name)
		}
		names[loc.Name] = true
		next = loc.End
		if err := loc.validate(); err != nil {
			return err
		}
	}

	if s.GoPosition < 0 || s.GoPosition >= next {
		return fmt.Errorf("%w: go position %d off board", ErrInvalidSchema, s.GoPosition)
	}
	if s.JailPosition < 0 || s.JailPosition >= next {
		return fmt.Errorf("%w: jail position %d off board", ErrInvalidSchema, s.JailPosition)
	}

	for _, pack := range [][]CardSpec{s.Chance, s.CommunityChest} {
		for _, card := range pack {
			if card.Kind == CardAdvanceTo && !names[card.Destination] {
				return fmt.Errorf("%w: card %q targets unknown location %q", ErrInvalidSchema, card.Name, card.Destination)
			}
		}
	}
	return nil
}

func (l LocationSpec) validate() error {
	switch l.Kind {
	case KindRealEstate:
		if len(l.RentHouses) != 4 {
			return fmt.Errorf("%w: %q needs four house rents", ErrInvalidSchema, l.Name)
		}
		if l.Color == "" {
			return fmt.Errorf("%w: %q has no color", ErrInvalidSchema, l.Name)
		}
	case KindRailroad:
		if len(l.Dues) != 5 {
			return fmt.Errorf("%w: %q needs dues for 0-4 railroads", ErrInvalidSchema, l.Name)
		}
	case KindUtility:
		if len(l.Multipliers) == 0 {
			return fmt.Errorf("%w: %q has no multipliers", ErrInvalidSchema, l.Name)
		}
	case KindTax, KindDoNothing:
	case KindAction:
		if l.Action == "" {
			return fmt.Errorf("%w: %q has no action", ErrInvalidSchema, l.Name)
		}
	default:
		return fmt.Errorf("%w: %q has unknown kind %q", ErrInvalidSchema, l.Name, l.Kind)
	}
	return nil
}
