package game

import (
	"fmt"
	"math/rand"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/board"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/rules"
)

// DeckKind identifies a card pack.
type DeckKind string

const (
	DeckChance         DeckKind = "chance"
	DeckCommunityChest DeckKind = "community_chest"
)

// Card is a drawn card. Cards are never mutated after the deck is built.
type Card struct {
	Name        string
	Kind        string
	Pack        DeckKind
	Destination string
	Amount      int
	PerHouse    int
	PerHotel    int
}

// Deck is a card pack. Ordinary cards stay in Cards after being drawn;
// get-out-of-jail-free cards leave it until used.
type Deck struct {
	Kind   DeckKind
	Cards  []*Card
	Picked []*Card

	templates map[string]Card
}

func newDeck(kind DeckKind, specs []board.CardSpec) *Deck {
	d := &Deck{Kind: kind, templates: make(map[string]Card, len(specs))}
	for _, spec := range specs {
		card := Card{
			Name:        spec.Name,
			Kind:        spec.Kind,
			Pack:        kind,
			Destination: spec.Destination,
			Amount:      spec.Amount,
			PerHouse:    spec.PerHouse,
			PerHotel:    spec.PerHotel,
		}
		d.templates[card.Name] = card
		count := spec.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			c := card
			d.Cards = append(d.Cards, &c)
		}
	}
	return d
}

// Draw picks a card using a generator seeded with seed. The same deck and
// seed always yield the same card.
func (d *Deck) Draw(seed int64) (*Card, bool) {
	if len(d.Cards) == 0 {
		return nil, false
	}
	idx := rand.New(rand.NewSource(seed)).Intn(len(d.Cards))
	card := d.Cards[idx]
	d.Picked = append(d.Picked, card)
	if card.Kind == board.CardGetOutOfJailFree {
		d.Cards = append(d.Cards[:idx:idx], d.Cards[idx+1:]...)
	}
	return card, true
}

// restoreJailCard returns a fresh copy of the named jail card to the pack.
func (d *Deck) restoreJailCard(name string) error {
	tmpl, ok := d.templates[name]
	if !ok || tmpl.Kind != board.CardGetOutOfJailFree {
		return invariantf("%s pack has no jail card %q", d.Kind, name)
	}
	d.Cards = append(d.Cards, &tmpl)
	return nil
}

// returnJailCard takes the most recently drawn card of pack kind from p and
// puts it back in its pack.
func (gs *GameState) returnJailCard(p *Player, kind DeckKind) error {
	names := p.JailCards[kind]
	if len(names) == 0 {
		return invariantf("%s holds no %s jail card", p.Name, kind)
	}
	name := names[len(names)-1]
	if len(names) == 1 {
		delete(p.JailCards, kind)
	} else {
		p.JailCards[kind] = names[:len(names)-1]
	}
	deck, err := gs.deck(kind)
	if err != nil {
		return err
	}
	return deck.restoreJailCard(name)
}

func (gs *GameState) deck(kind DeckKind) (*Deck, error) {
	switch kind {
	case DeckChance:
		return gs.Chance, nil
	case DeckCommunityChest:
		return gs.CommunityChest, nil
	default:
		return nil, invariantf("unknown deck %q", kind)
	}
}

// DrawCard draws from a pack and applies the card to p.
func (gs *GameState) DrawCard(p *Player, kind DeckKind) (Code, error) {
	deck, err := gs.deck(kind)
	if err != nil {
		return gs.codes.Failure, err
	}
	seed := gs.cardSeed
	gs.cardSeed++

	card, ok := deck.Draw(seed)
	if !ok {
		gs.record(rules.EventCardDrawn, "pick_card", p,
			map[string]any{"pack": string(kind), "seed": seed}, gs.codes.Failure)
		return gs.codes.Failure, nil
	}
	gs.record(rules.EventCardDrawn, "pick_card", p,
		map[string]any{"pack": string(kind), "seed": seed, "card": card.Name}, gs.codes.Success)

	if err := gs.applyCard(p, card); err != nil {
		return gs.codes.Failure, fmt.Errorf("card %q: %w", card.Name, err)
	}
	return gs.codes.Success, nil
}

func (gs *GameState) applyCard(p *Player, card *Card) error {
	switch card.Kind {
	case board.CardAdvanceTo:
		dest, ok := gs.locations[card.Destination]
		if !ok {
			return fmt.Errorf("%w: destination %q", ErrMissingConfig, card.Destination)
		}
		if err := gs.advanceTo(p, dest.Start()); err != nil {
			return err
		}
		return gs.resolveLanding(p, landing{})
	case board.CardAdvanceRelative:
		length := len(gs.Board)
		if card.Amount >= 0 {
			if err := DefaultMovePlayer(gs, p, card.Amount); err != nil {
				return err
			}
		} else {
			gs.relocate(p, ((p.Position+card.Amount)%length+length)%length)
		}
		return gs.resolveLanding(p, landing{})
	case board.CardNearestRailroad:
		return gs.advanceToNearest(p, func(l Location) bool { _, ok := l.(*Railroad); return ok },
			landing{dueMultiplier: 2})
	case board.CardNearestUtility:
		return gs.advanceToNearest(p, func(l Location) bool { _, ok := l.(*Utility); return ok },
			landing{rollMultiplier: 10})
	case board.CardBankPays:
		gs.Receive(p, card.Amount, true)
	case board.CardPayBank:
		gs.Charge(p, card.Amount, true)
	case board.CardPayEachPlayer:
		for _, other := range gs.ActivePlayers() {
			if other != p {
				gs.Transfer(p, other, card.Amount)
			}
		}
	case board.CardCollectFromEachPlayer:
		for _, other := range gs.ActivePlayers() {
			if other != p {
				gs.Transfer(other, p, card.Amount)
			}
		}
	case board.CardGoToJail:
		gs.SendToJail(p)
	case board.CardGetOutOfJailFree:
		p.AddJailCard(card.Pack, card.Name)
	case board.CardStreetRepairs:
		houses, hotels := 0, 0
		for _, prop := range p.assets {
			if re, ok := prop.(*RealEstate); ok {
				houses += re.Houses
				hotels += re.Hotels
			}
		}
		if cost := houses*card.PerHouse + hotels*card.PerHotel; cost > 0 {
			gs.Charge(p, cost, true)
		}
	default:
		return invariantf("unknown card kind %q", card.Kind)
	}
	return nil
}

func (gs *GameState) advanceToNearest(p *Player, match func(Location) bool, opts landing) error {
	pos, ok := gs.nextOfKind(p.Position, match)
	if !ok {
		return fmt.Errorf("%w: no matching location on board", ErrMissingConfig)
	}
	if err := gs.advanceTo(p, pos); err != nil {
		return err
	}
	return gs.resolveLanding(p, opts)
}
