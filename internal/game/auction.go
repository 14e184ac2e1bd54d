package game

import (
	"go.uber.org/zap"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/rules"
)

type auctionState int

const (
	auctionAwaitingBidder auctionState = iota
	auctionOpen
	auctionClosed
)

// auctionSession lives for one auction.
type auctionSession struct {
	state      auctionState
	asset      Property
	highBid    int
	winner     *Player
	eliminated map[*Player]bool
}

func (s *auctionSession) remaining(players []*Player) int {
	n := 0
	for _, p := range players {
		if !p.Lost() && !s.eliminated[p] {
			n++
		}
	}
	return n
}

// DefaultAuction sells prop to the highest bidder, asking players in seat
// order from startIndex. A bid of zero, a bid not above the current high
// bid, or a bid the bidder cannot cover drops that bidder from the auction.
// Bidding stops once at most one bidder is left.
func DefaultAuction(gs *GameState, startIndex int, prop Property) (Code, error) {
	if !prop.asset().OwnedByBank() {
		return gs.codes.Failure, invariantf("auction of %q owned by %s", prop.Name(), prop.Owner().Name)
	}
	n := len(gs.Players)
	session := &auctionSession{
		state:      auctionAwaitingBidder,
		asset:      prop,
		eliminated: make(map[*Player]bool),
	}

	idx := -1
	for i := 0; i < n; i++ {
		candidate := ((startIndex+i)%n + n) % n
		if !gs.Players[candidate].Lost() {
			idx = candidate
			break
		}
	}
	if idx < 0 {
		gs.record(rules.EventAuctionClosed, "auction", nil,
			map[string]any{"asset": prop.Name(), "reason": "no eligible bidders"}, gs.codes.Failure)
		return gs.codes.Failure, nil
	}
	session.state = auctionOpen

	for session.remaining(gs.Players) > 1 {
		bidder := gs.Players[idx]
		idx = (idx + 1) % n
		if bidder.Lost() || session.eliminated[bidder] {
			continue
		}

		bid := bidder.Provider.Bid(bidder, gs, prop, session.highBid)
		gs.record(rules.EventBidRequested, "bid", bidder,
			map[string]any{"asset": prop.Name(), "current_bid": session.highBid, "bid": bid}, gs.codes.Success)

		if bid <= 0 || bid <= session.highBid || bid > bidder.Cash {
			session.eliminated[bidder] = true
			continue
		}
		session.highBid = bid
		session.winner = bidder
	}
	session.state = auctionClosed

	if session.winner == nil {
		gs.record(rules.EventAuctionClosed, "auction", nil,
			map[string]any{"asset": prop.Name(), "reason": "no bids"}, gs.codes.Failure)
		return gs.codes.Failure, nil
	}

	gs.Charge(session.winner, session.highBid, true)
	gs.setOwner(prop, session.winner)
	gs.record(rules.EventAuctionClosed, "auction", session.winner,
		map[string]any{"asset": prop.Name(), "price": session.highBid}, gs.codes.Success)
	gs.logger.Info("auction closed",
		zap.String("game_id", gs.ID),
		zap.String("asset", prop.Name()),
		zap.String("winner", session.winner.Name),
		zap.Int("price", session.highBid),
	)
	return gs.codes.Success, nil
}

// Auction runs the installed auction for prop.
func (gs *GameState) Auction(startIndex int, prop Property) (Code, error) {
	fn := lookupOr(gs.Hooks, HookAuction, AuctionFunc(DefaultAuction))
	return fn(gs, startIndex, prop)
}
