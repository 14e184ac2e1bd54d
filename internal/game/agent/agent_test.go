package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/board"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/rules"
)

func newGame(t *testing.T, seed int64, providers ...game.DecisionProvider) *game.GameState {
	t.Helper()
	names := []string{"alice", "bob", "carol", "dave"}
	specs := make([]game.PlayerSpec, len(providers))
	for i, provider := range providers {
		specs[i] = game.PlayerSpec{Name: names[i], Provider: provider}
	}
	gs, err := game.NewGame(board.Classic(), specs, game.Options{Seed: seed})
	require.NoError(t, err)
	return gs
}

func property(t *testing.T, gs *game.GameState, name string) game.Property {
	t.Helper()
	prop, ok := gs.Property(name)
	require.True(t, ok)
	return prop
}

func TestBackgroundBidding(t *testing.T) {
	b := NewBackground()
	gs := newGame(t, 1, b, Passive{})
	p := gs.Players[0]
	boardwalk := property(t, gs, "Boardwalk")

	assert.Equal(t, 10, b.Bid(p, gs, boardwalk, 0))
	assert.Equal(t, 400, b.Bid(p, gs, boardwalk, 390))
	assert.Zero(t, b.Bid(p, gs, boardwalk, 395))

	p.Cash = 300
	assert.Equal(t, 100, b.Bid(p, gs, boardwalk, 90))
	assert.Zero(t, b.Bid(p, gs, boardwalk, 95))
}

func TestBackgroundBuyKeepsReserve(t *testing.T) {
	b := NewBackground()
	gs := newGame(t, 1, b, Passive{})
	p := gs.Players[0]
	boardwalk := property(t, gs, "Boardwalk")

	assert.True(t, b.BuyProperty(p, gs, boardwalk))
	p.Cash = 500
	assert.False(t, b.BuyProperty(p, gs, boardwalk))
}

func TestBackgroundLeavesJail(t *testing.T) {
	b := NewBackground()
	gs := newGame(t, 1, b, Passive{})
	p := gs.Players[0]
	gs.SendToJail(p)

	move := b.PreRollMove(p, gs, gs.AllowableActions(p, rules.PhasePreRoll))
	assert.Equal(t, game.ActionPayJailFine, move.Action)

	p.AddJailCard(game.DeckChance, "Get Out of Jail Free")
	move = b.PreRollMove(p, gs, gs.AllowableActions(p, rules.PhasePreRoll))
	assert.Equal(t, game.ActionUseJailCard, move.Action)
}

func TestBackgroundAnswersOffers(t *testing.T) {
	b := NewBackground()
	gs := newGame(t, 1, b, Passive{})
	p := gs.Players[0]

	p.OutstandingOffer = &game.TradeOffer{From: "bob", To: "alice", CashOffered: 100}
	move := b.OutOfTurnMove(p, gs, gs.AllowableActions(p, rules.PhaseOutOfTurn))
	assert.Equal(t, game.ActionAcceptTradeOffer, move.Action)

	p.OutstandingOffer = &game.TradeOffer{From: "bob", To: "alice", PropertiesOffered: []string{"Baltic Avenue"}, CashWanted: 100}
	move = b.OutOfTurnMove(p, gs, gs.AllowableActions(p, rules.PhaseOutOfTurn))
	assert.Equal(t, game.ActionDeclineTradeOffer, move.Action)
}

func TestBackgroundBuysDuringTurn(t *testing.T) {
	gs := newGame(t, 1, NewBackground(), Passive{})
	require.NoError(t, gs.Hooks.Register(game.HookRollDie, func(*game.GameState) ([]int, error) {
		return []int{1, 2}, nil
	}))

	require.NoError(t, gs.PlayTurn(context.Background()))

	assert.Equal(t, gs.Players[0], property(t, gs, "Baltic Avenue").Owner())
	assert.Equal(t, 1440, gs.Players[0].Cash)
}

func TestRecoveryWithNothingToSellConcludes(t *testing.T) {
	gs := newGame(t, 1, NewBackground(), Passive{})
	for _, p := range gs.Players {
		p.Cash = -10
		allowed := gs.AllowableActions(p, rules.PhasePostRoll)
		assert.Equal(t, game.ActionConcludeActions, p.Provider.HandleNegativeCashBalance(p, gs, allowed).Action)
	}
}

func TestBackgroundGamesFinish(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		gs := newGame(t, seed, NewBackground(), NewBackground(), NewBackground(), Passive{})
		total := gs.TotalCash()

		res, err := gs.Run(context.Background())
		require.NoError(t, err, "seed %d", seed)

		assert.NotEmpty(t, res.Winner)
		assert.Equal(t, total, gs.TotalCash(), "seed %d", seed)
		for _, p := range gs.Players {
			if p.Lost() {
				assert.Empty(t, p.Assets())
			}
		}
	}
}

func TestNew(t *testing.T) {
	_, ok := New("background")
	assert.True(t, ok)
	_, ok = New("passive")
	assert.True(t, ok)
	_, ok = New("random")
	assert.False(t, ok)
}
