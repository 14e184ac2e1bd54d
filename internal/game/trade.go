package game

import (
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/rules"
)

// TradeOffer proposes an exchange of assets and cash between two players.
// Each recipient holds at most one offer, and offers expire at the end of the
// turn they were made in.
type TradeOffer struct {
	From              string
	To                string
	PropertiesOffered []string
	PropertiesWanted  []string
	CashOffered       int
	CashWanted        int
}

func (o *TradeOffer) params() map[string]any {
	return map[string]any{
		"from":               o.From,
		"to":                 o.To,
		"properties_offered": append([]string(nil), o.PropertiesOffered...),
		"properties_wanted":  append([]string(nil), o.PropertiesWanted...),
		"cash_offered":       o.CashOffered,
		"cash_wanted":        o.CashWanted,
	}
}

// tradeable reports whether every named asset is held by owner and free of
// buildings.
func (gs *GameState) tradeable(owner *Player, names []string) bool {
	for _, name := range names {
		prop, ok := gs.ownedBy(owner, name)
		if !ok || gs.groupImproved(prop) {
			return false
		}
	}
	return true
}

// DefaultMakeTradeOffer validates offer and files it with its recipient.
func DefaultMakeTradeOffer(gs *GameState, from *Player, offer *TradeOffer) Code {
	fail := func(reason string) Code {
		params := map[string]any{"reason": reason}
		if offer != nil {
			params = offer.params()
			params["reason"] = reason
		}
		gs.record(rules.EventTradeOffered, "make_trade_offer", from, params, gs.codes.Failure)
		return gs.codes.Failure
	}
	if offer == nil {
		return fail("no offer")
	}
	to, ok := gs.Player(offer.To)
	switch {
	case !ok || to == from:
		return fail("unknown recipient")
	case to.Lost():
		return fail("recipient eliminated")
	case to.OutstandingOffer != nil:
		return fail("recipient already holds an offer")
	case offer.CashOffered < 0 || offer.CashWanted < 0:
		return fail("negative cash")
	case offer.CashOffered > from.Cash:
		return fail("cash offered exceeds balance")
	case len(offer.PropertiesOffered)+len(offer.PropertiesWanted) == 0 && offer.CashOffered+offer.CashWanted == 0:
		return fail("empty offer")
	case !gs.tradeable(from, offer.PropertiesOffered):
		return fail("offered assets not tradeable")
	case !gs.tradeable(to, offer.PropertiesWanted):
		return fail("wanted assets not tradeable")
	}

	filed := *offer
	filed.From = from.Name
	filed.PropertiesOffered = append([]string(nil), offer.PropertiesOffered...)
	filed.PropertiesWanted = append([]string(nil), offer.PropertiesWanted...)
	to.OutstandingOffer = &filed
	gs.record(rules.EventTradeOffered, "make_trade_offer", from, filed.params(), gs.codes.Success)
	return gs.codes.Success
}

// DefaultAcceptTradeOffer executes the offer held by p after checking that
// both sides can still honor it.
func DefaultAcceptTradeOffer(gs *GameState, p *Player) Code {
	offer := p.OutstandingOffer
	if offer == nil {
		gs.record(rules.EventTradeAccepted, "accept_trade_offer", p, nil, gs.codes.Failure)
		return gs.codes.Failure
	}
	p.OutstandingOffer = nil

	from, ok := gs.Player(offer.From)
	if !ok || from.Lost() ||
		from.Cash < offer.CashOffered || p.Cash < offer.CashWanted ||
		!gs.tradeable(from, offer.PropertiesOffered) || !gs.tradeable(p, offer.PropertiesWanted) {
		gs.record(rules.EventTradeAccepted, "accept_trade_offer", p, offer.params(), gs.codes.Failure)
		return gs.codes.Failure
	}

	for _, name := range offer.PropertiesOffered {
		prop, _ := gs.Property(name)
		gs.setOwner(prop, p)
	}
	for _, name := range offer.PropertiesWanted {
		prop, _ := gs.Property(name)
		gs.setOwner(prop, from)
	}
	if offer.CashOffered > 0 {
		gs.Transfer(from, p, offer.CashOffered)
	}
	if offer.CashWanted > 0 {
		gs.Transfer(p, from, offer.CashWanted)
	}
	gs.record(rules.EventTradeAccepted, "accept_trade_offer", p, offer.params(), gs.codes.Success)
	return gs.codes.Success
}

// MakeTradeOffer files offer through the installed hook.
func (gs *GameState) MakeTradeOffer(from *Player, offer *TradeOffer) Code {
	fn := lookupOr(gs.Hooks, HookMakeTradeOffer, MakeTradeFunc(DefaultMakeTradeOffer))
	return fn(gs, from, offer)
}

// AcceptTradeOffer accepts the offer p holds through the installed hook.
func (gs *GameState) AcceptTradeOffer(p *Player) Code {
	fn := lookupOr(gs.Hooks, HookAcceptTradeOffer, AcceptTradeFunc(DefaultAcceptTradeOffer))
	return fn(gs, p)
}

// DeclineTradeOffer discards the offer p holds.
func (gs *GameState) DeclineTradeOffer(p *Player) Code {
	if p.OutstandingOffer == nil {
		return gs.codes.Failure
	}
	params := p.OutstandingOffer.params()
	p.OutstandingOffer = nil
	gs.record(rules.EventTradeAccepted, "decline_trade_offer", p, params, gs.codes.Success)
	return gs.codes.Success
}

func (gs *GameState) expireOffers() {
	for _, p := range gs.Players {
		p.OutstandingOffer = nil
	}
}
