package game

import (
	"sort"
)

// ActionType names a move a player can choose.
type ActionType string

const (
	ActionConcludeActions   ActionType = "conclude_actions"
	ActionSkipTurn          ActionType = "skip_turn"
	ActionBuyProperty       ActionType = "buy_property"
	ActionSellProperty      ActionType = "sell_property"
	ActionSellHouseHotel    ActionType = "sell_house_hotel"
	ActionImproveProperty   ActionType = "improve_property"
	ActionMortgageProperty  ActionType = "mortgage_property"
	ActionFreeMortgage      ActionType = "free_mortgage"
	ActionMakeTradeOffer    ActionType = "make_trade_offer"
	ActionAcceptTradeOffer  ActionType = "accept_trade_offer"
	ActionDeclineTradeOffer ActionType = "decline_trade_offer"
	ActionUseJailCard       ActionType = "use_get_out_of_jail_card"
	ActionPayJailFine       ActionType = "pay_jail_fine"
)

// Params carries the arguments of a move. Only fields relevant to the action
// are read.
type Params struct {
	Asset string
	Hotel bool
	Offer *TradeOffer
}

// Move is a decision provider's answer: an action and its arguments.
type Move struct {
	Action ActionType
	Params Params
}

// Conclude is the move that ends a phase.
func Conclude() Move { return Move{Action: ActionConcludeActions} }

// ActionSet is the set of actions allowed at a decision point.
type ActionSet map[ActionType]bool

// Has reports whether a is allowed.
func (s ActionSet) Has(a ActionType) bool { return s[a] }

// List returns the allowed actions sorted by name.
func (s ActionSet) List() []ActionType {
	out := make([]ActionType, 0, len(s))
	for a, ok := range s {
		if ok {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DecisionProvider answers the engine's questions for one player. Calls are
// synchronous; the engine waits for every answer.
type DecisionProvider interface {
	PreRollMove(p *Player, gs *GameState, allowed ActionSet) Move
	PostRollMove(p *Player, gs *GameState, allowed ActionSet) Move
	OutOfTurnMove(p *Player, gs *GameState, allowed ActionSet) Move
	BuyProperty(p *Player, gs *GameState, asset Property) bool
	Bid(p *Player, gs *GameState, asset Property, currentBid int) int
	// HandleNegativeCashBalance returns a recovery move. Concluding ends
	// recovery, whether or not the balance has been restored.
	HandleNegativeCashBalance(p *Player, gs *GameState, allowed ActionSet) Move
}
