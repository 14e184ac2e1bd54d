package game

// PlayerStatus tracks where a player is in the turn rotation.
type PlayerStatus string

const (
	StatusWaiting     PlayerStatus = "waiting_for_move"
	StatusCurrentMove PlayerStatus = "current_move"
	StatusLost        PlayerStatus = "lost"
)

// Player is a participant in a game.
type Player struct {
	Name     string
	Status   PlayerStatus
	Cash     int
	Position int

	NumRailroads  int
	NumUtilities  int
	FullColorSets map[string]bool

	InJail    bool
	JailTurns int
	// Names of get-out-of-jail-free cards held, keyed by the pack they came
	// from, in draw order.
	JailCards map[DeckKind][]string

	Provider DecisionProvider

	// Memory is a free-form store for rule variants and agents that need to
	// keep state across turns without coordinating a schema.
	Memory map[string]any

	// OutstandingOffer is the trade offer currently addressed to this player.
	OutstandingOffer *TradeOffer

	assets []Property
}

func newPlayer(name string, cash int, provider DecisionProvider) *Player {
	return &Player{
		Name:          name,
		Status:        StatusWaiting,
		Cash:          cash,
		FullColorSets: make(map[string]bool),
		JailCards:     make(map[DeckKind][]string),
		Provider:      provider,
		Memory:        make(map[string]any),
	}
}

// Lost reports whether the player has been eliminated.
func (p *Player) Lost() bool { return p.Status == StatusLost }

// Assets returns the player's holdings in acquisition order.
func (p *Player) Assets() []Property {
	out := make([]Property, len(p.assets))
	copy(out, p.assets)
	return out
}

// Mortgaged returns the subset of the player's holdings that is mortgaged.
func (p *Player) Mortgaged() []Property {
	var out []Property
	for _, a := range p.assets {
		if a.asset().Mortgaged {
			out = append(out, a)
		}
	}
	return out
}

// Owns reports whether prop is held by the player.
func (p *Player) Owns(prop Property) bool {
	return prop != nil && prop.Owner() == p
}

// MonopolyCount returns how many full color sets the player holds.
func (p *Player) MonopolyCount() int {
	n := 0
	for _, full := range p.FullColorSets {
		if full {
			n++
		}
	}
	return n
}

// HasJailCard reports whether any get-out-of-jail-free card is held.
func (p *Player) HasJailCard() bool {
	return p.JailCardCount() > 0
}

// JailCardCount is the number of get-out-of-jail-free cards held.
func (p *Player) JailCardCount() int {
	n := 0
	for _, names := range p.JailCards {
		n += len(names)
	}
	return n
}

// AddJailCard hands p the named card from pack kind.
func (p *Player) AddJailCard(kind DeckKind, name string) {
	p.JailCards[kind] = append(p.JailCards[kind], name)
}

// NetWorth is cash plus the price of unmortgaged holdings, the mortgage
// value of mortgaged ones and the cost of standing improvements.
func (p *Player) NetWorth() int {
	worth := p.Cash
	for _, prop := range p.assets {
		a := prop.asset()
		if a.Mortgaged {
			worth += a.MortgageValue
		} else {
			worth += a.Price
		}
		if re, ok := prop.(*RealEstate); ok {
			worth += re.PriceHouse * (re.Houses + re.Hotels*5)
		}
	}
	return worth
}

func (p *Player) removeAsset(prop Property) bool {
	for i, a := range p.assets {
		if a == prop {
			p.assets = append(p.assets[:i], p.assets[i+1:]...)
			return true
		}
	}
	return false
}
