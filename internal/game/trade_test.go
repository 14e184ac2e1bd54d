package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeRoundTrip(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	alice, bob := gs.Players[0], gs.Players[1]
	codes := gs.Codes()
	give(t, gs, alice, "Boardwalk")
	give(t, gs, bob, "Park Place")
	total := gs.TotalCash()

	offer := &TradeOffer{To: "bob", PropertiesOffered: []string{"Boardwalk"}, PropertiesWanted: []string{"Park Place"}, CashWanted: 100}
	require.Equal(t, codes.Success, gs.MakeTradeOffer(alice, offer))
	require.NotNil(t, bob.OutstandingOffer)
	assert.Equal(t, "alice", bob.OutstandingOffer.From)

	require.Equal(t, codes.Success, gs.AcceptTradeOffer(bob))
	assert.True(t, bob.Owns(mustProperty(t, gs, "Boardwalk")))
	assert.True(t, alice.Owns(mustProperty(t, gs, "Park Place")))
	assert.False(t, alice.FullColorSets["Blue"])
	assert.Equal(t, 1600, alice.Cash)
	assert.Equal(t, 1400, bob.Cash)
	assert.Nil(t, bob.OutstandingOffer)
	assert.Equal(t, total, gs.TotalCash())
}

func TestTradeOfferValidation(t *testing.T) {
	gs, _ := newTestGame(t, 3, Options{})
	alice, bob := gs.Players[0], gs.Players[1]
	fail := gs.Codes().Failure
	give(t, gs, alice, "Boardwalk")

	cases := map[string]*TradeOffer{
		"nil offer":         nil,
		"self":              {To: "alice", CashWanted: 1},
		"unknown recipient": {To: "zoe", CashWanted: 1},
		"negative cash":     {To: "bob", CashOffered: -5},
		"over balance":      {To: "bob", CashOffered: 5000},
		"empty":             {To: "bob"},
		"not owned":         {To: "bob", PropertiesOffered: []string{"Park Place"}},
		"wanted not owned":  {To: "bob", PropertiesWanted: []string{"Boardwalk"}},
	}
	for name, offer := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, fail, gs.MakeTradeOffer(alice, offer))
			assert.Nil(t, bob.OutstandingOffer)
		})
	}
}

func TestOneOutstandingOfferPerRecipient(t *testing.T) {
	gs, _ := newTestGame(t, 3, Options{})
	alice, bob, carol := gs.Players[0], gs.Players[1], gs.Players[2]
	codes := gs.Codes()

	require.Equal(t, codes.Success, gs.MakeTradeOffer(alice, &TradeOffer{To: "carol", CashOffered: 10}))
	assert.Equal(t, codes.Failure, gs.MakeTradeOffer(bob, &TradeOffer{To: "carol", CashOffered: 20}))
	assert.Equal(t, "alice", carol.OutstandingOffer.From)

	require.Equal(t, codes.Success, gs.DeclineTradeOffer(carol))
	assert.Nil(t, carol.OutstandingOffer)
	assert.Equal(t, codes.Failure, gs.DeclineTradeOffer(carol))
}

func TestAcceptRevalidates(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	alice, bob := gs.Players[0], gs.Players[1]
	codes := gs.Codes()
	give(t, gs, alice, "Boardwalk")

	require.Equal(t, codes.Success, gs.MakeTradeOffer(alice, &TradeOffer{To: "bob", PropertiesOffered: []string{"Boardwalk"}, CashWanted: 300}))
	require.Equal(t, codes.Success, gs.SellProperty(alice, "Boardwalk"))

	assert.Equal(t, codes.Failure, gs.AcceptTradeOffer(bob))
	assert.Nil(t, bob.OutstandingOffer)
	assert.Equal(t, 1500, bob.Cash)
}

func TestOffersExpireAtEndOfTurn(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	require.Equal(t, gs.Codes().Success, gs.MakeTradeOffer(gs.Players[0], &TradeOffer{To: "bob", CashOffered: 10}))

	gs.expireOffers()
	assert.Nil(t, gs.Players[1].OutstandingOffer)
}
