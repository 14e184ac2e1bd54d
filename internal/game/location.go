package game

import (
	"fmt"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/board"
)

// Location is a board location. The set of implementations is closed:
// *RealEstate, *Railroad, *Utility, *Tax, *ActionLocation and *DoNothing.
type Location interface {
	Name() string
	Start() int
	End() int
	base() *LocationBase
}

// Property is a location that can be owned, mortgaged and traded.
type Property interface {
	Location
	Owner() *Player
	asset() *Asset
}

// LocationBase holds the fields every location shares.
type LocationBase struct {
	name  string
	start int
	end   int
}

func (b *LocationBase) Name() string        { return b.name }
func (b *LocationBase) Start() int          { return b.start }
func (b *LocationBase) End() int            { return b.end }
func (b *LocationBase) base() *LocationBase { return b }

// Asset holds ownership and mortgage state of a purchasable location.
// A nil owner means the bank holds the asset.
type Asset struct {
	Price         int
	MortgageValue int
	Mortgaged     bool
	owner         *Player
}

// Owner returns the owning player, or nil when the bank holds the asset.
func (a *Asset) Owner() *Player { return a.owner }

// OwnedByBank reports whether the bank holds the asset.
func (a *Asset) OwnedByBank() bool { return a.owner == nil }

func (a *Asset) asset() *Asset { return a }

// AssetOf returns the ownership and mortgage state of prop.
func AssetOf(prop Property) *Asset { return prop.asset() }

// RealEstate is a colored street that can be improved.
type RealEstate struct {
	LocationBase
	Asset
	Color      string
	Rent       int
	RentHouses [4]int
	RentHotel  int
	PriceHouse int
	Houses     int
	Hotels     int
}

// Improved reports whether any house or hotel stands on the street.
func (r *RealEstate) Improved() bool { return r.Houses > 0 || r.Hotels > 0 }

// Railroad dues depend on how many railroads the owner holds.
type Railroad struct {
	LocationBase
	Asset
	// Dues indexed by the owner's railroad count.
	Dues [5]int
}

// Utility dues are the die total times a multiplier keyed by utility count.
type Utility struct {
	LocationBase
	Asset
	Multipliers map[int]int
}

// Tax charges a fixed amount to the bank.
type Tax struct {
	LocationBase
	Amount int
}

// ActionLocation runs a named action when landed on.
type ActionLocation struct {
	LocationBase
	Action string
}

// DoNothing has no landing consequence.
type DoNothing struct {
	LocationBase
}

func newLocation(spec board.LocationSpec) (Location, error) {
	b := LocationBase{name: spec.Name, start: spec.Start, end: spec.End}
	a := Asset{Price: spec.Price, MortgageValue: spec.Mortgage}

	switch spec.Kind {
	case board.KindRealEstate:
		re := &RealEstate{
			LocationBase: b,
			Asset:        a,
			Color:        spec.Color,
			Rent:         spec.Rent,
			RentHotel:    spec.RentHotel,
			PriceHouse:   spec.PriceHouse,
		}
		copy(re.RentHouses[:], spec.RentHouses)
		return re, nil
	case board.KindRailroad:
		rr := &Railroad{LocationBase: b, Asset: a}
		copy(rr.Dues[:], spec.Dues)
		return rr, nil
	case board.KindUtility:
		mult := make(map[int]int, len(spec.Multipliers))
		for k, v := range spec.Multipliers {
			mult[k] = v
		}
		return &Utility{LocationBase: b, Asset: a, Multipliers: mult}, nil
	case board.KindTax:
		return &Tax{LocationBase: b, Amount: spec.Amount}, nil
	case board.KindAction:
		return &ActionLocation{LocationBase: b, Action: spec.Action}, nil
	case board.KindDoNothing:
		return &DoNothing{LocationBase: b}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, spec.Kind)
	}
}
