package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/board"
)

func TestDrawIsDeterministicPerSeed(t *testing.T) {
	a, _ := newTestGame(t, 2, Options{})
	b, _ := newTestGame(t, 2, Options{})

	for seed := int64(0); seed < 50; seed++ {
		ca, ok := a.CommunityChest.Draw(seed)
		require.True(t, ok)
		cb, ok := b.CommunityChest.Draw(seed)
		require.True(t, ok)
		require.Equal(t, ca.Name, cb.Name, "seed %d", seed)
	}
}

func TestJailCardLeavesPackUntilUsed(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	p := gs.Players[0]
	size := len(gs.Chance.Cards)
	card := &Card{Name: "Get Out of Jail Free", Kind: board.CardGetOutOfJailFree, Pack: DeckChance}

	// Pull the card the way Draw does, then hand it over.
	for i, c := range gs.Chance.Cards {
		if c.Kind == board.CardGetOutOfJailFree {
			gs.Chance.Cards = append(gs.Chance.Cards[:i:i], gs.Chance.Cards[i+1:]...)
			break
		}
	}
	require.NoError(t, gs.applyCard(p, card))
	require.True(t, p.HasJailCard())
	require.Len(t, gs.Chance.Cards, size-1)

	gs.SendToJail(p)
	assert.Equal(t, gs.Codes().Success, gs.UseJailCard(p))
	assert.False(t, p.InJail)
	assert.False(t, p.HasJailCard())
	assert.Len(t, gs.Chance.Cards, size)
}

func TestDrawRemovesJailCardFromPack(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	size := len(gs.CommunityChest.Cards)

	drew := false
	for seed := int64(0); seed < 500 && !drew; seed++ {
		card, ok := gs.CommunityChest.Draw(seed)
		require.True(t, ok)
		drew = card.Kind == board.CardGetOutOfJailFree
	}
	require.True(t, drew)
	assert.Len(t, gs.CommunityChest.Cards, size-1)
	for _, c := range gs.CommunityChest.Cards {
		assert.NotEqual(t, board.CardGetOutOfJailFree, c.Kind)
	}
}

func TestNearestRailroadChargesDouble(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	owner, p := gs.Players[0], gs.Players[1]
	give(t, gs, owner, "Pennsylvania Railroad")
	p.Position = 7

	require.NoError(t, gs.applyCard(p, &Card{Kind: board.CardNearestRailroad, Pack: DeckChance}))

	assert.Equal(t, 15, p.Position)
	assert.Equal(t, 1450, p.Cash)
	assert.Equal(t, 1550, owner.Cash)
}

func TestNearestRailroadWrapsPastGo(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	p := gs.Players[1]
	p.Position = 36

	require.NoError(t, gs.applyCard(p, &Card{Kind: board.CardNearestRailroad, Pack: DeckChance}))

	assert.Equal(t, 5, p.Position)
	assert.Equal(t, 1700, p.Cash)
	assert.Equal(t, "Reading Railroad", gs.PendingPurchase().Name())
}

func TestNearestUtilityChargesTenTimesRoll(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	owner, p := gs.Players[0], gs.Players[1]
	give(t, gs, owner, "Water Works")
	p.Position = 22
	gs.CurrentDieTotal = 6

	require.NoError(t, gs.applyCard(p, &Card{Kind: board.CardNearestUtility, Pack: DeckChance}))

	assert.Equal(t, 28, p.Position)
	assert.Equal(t, 1440, p.Cash)
}

func TestGoBackThreeSpacesSkipsGo(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	p := gs.Players[0]
	p.Position = 2

	require.NoError(t, gs.applyCard(p, &Card{Kind: board.CardAdvanceRelative, Amount: -3, Pack: DeckChance}))

	assert.Equal(t, 39, p.Position)
	assert.Equal(t, 1500, p.Cash)
}

func TestStreetRepairs(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	p := gs.Players[0]
	give(t, gs, p, "Mediterranean Avenue", "Baltic Avenue")
	mustProperty(t, gs, "Mediterranean Avenue").(*RealEstate).Houses = 2
	mustProperty(t, gs, "Baltic Avenue").(*RealEstate).Hotels = 1

	require.NoError(t, gs.applyCard(p, &Card{Kind: board.CardStreetRepairs, PerHouse: 40, PerHotel: 115}))

	assert.Equal(t, 1500-80-115, p.Cash)
}

func TestPlayerToPlayerCards(t *testing.T) {
	gs, _ := newTestGame(t, 3, Options{})
	p := gs.Players[0]
	total := gs.TotalCash()

	require.NoError(t, gs.applyCard(p, &Card{Kind: board.CardPayEachPlayer, Amount: 50}))
	assert.Equal(t, 1400, p.Cash)
	require.NoError(t, gs.applyCard(p, &Card{Kind: board.CardCollectFromEachPlayer, Amount: 10}))
	assert.Equal(t, 1420, p.Cash)
	assert.Equal(t, 1540, gs.Players[1].Cash)
	assert.Equal(t, total, gs.TotalCash())
}

func TestUnknownCardKindIsFatal(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	err := gs.applyCard(gs.Players[0], &Card{Kind: "teleport"})
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestDrawCardAdvancesSeed(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	p := gs.Players[0]

	_, err := gs.DrawCard(p, DeckCommunityChest)
	require.NoError(t, err)
	_, err = gs.DrawCard(p, DeckCommunityChest)
	require.NoError(t, err)

	assert.Len(t, gs.CommunityChest.Picked, 2)
	assert.Equal(t, int64(2), gs.cardSeed-gs.Options().Seed)
}

func jailCardGame(t *testing.T) *GameState {
	t.Helper()
	schema := board.Classic()
	schema.Chance = []board.CardSpec{
		{Name: "Get Out of Jail Free", Kind: board.CardGetOutOfJailFree, Count: 2},
		{Name: "Parole", Kind: board.CardGetOutOfJailFree},
	}
	gs, err := NewGame(schema, []PlayerSpec{
		{Name: "alice", Provider: &scriptedProvider{}},
		{Name: "bob", Provider: &scriptedProvider{}},
	}, Options{Seed: 9})
	require.NoError(t, err)
	return gs
}

func cardNames(cards []*Card) []string {
	names := make([]string, 0, len(cards))
	for _, c := range cards {
		names = append(names, c.Name)
	}
	return names
}

func TestEveryHeldJailCardReturnsToPack(t *testing.T) {
	gs := jailCardGame(t)
	p := gs.Players[0]
	codes := gs.Codes()

	for range 3 {
		code, err := gs.DrawCard(p, DeckChance)
		require.NoError(t, err)
		require.Equal(t, codes.Success, code)
	}
	require.Empty(t, gs.Chance.Cards)
	require.Equal(t, 3, p.JailCardCount())

	for i := 1; i <= 3; i++ {
		gs.SendToJail(p)
		require.Equal(t, codes.Success, gs.UseJailCard(p), "use %d", i)
		assert.Len(t, gs.Chance.Cards, i)
	}
	assert.ElementsMatch(t, []string{"Get Out of Jail Free", "Get Out of Jail Free", "Parole"}, cardNames(gs.Chance.Cards))
	assert.False(t, p.HasJailCard())

	gs.SendToJail(p)
	assert.Equal(t, codes.Failure, gs.UseJailCard(p))
}

func TestBankruptcyReturnsEveryJailCard(t *testing.T) {
	gs := jailCardGame(t)
	p := gs.Players[0]
	for range 3 {
		_, err := gs.DrawCard(p, DeckChance)
		require.NoError(t, err)
	}

	gs.Bankrupt(p)

	assert.Empty(t, p.JailCards)
	assert.ElementsMatch(t, []string{"Get Out of Jail Free", "Get Out of Jail Free", "Parole"}, cardNames(gs.Chance.Cards))
}

func TestRestoreUnknownJailCardFails(t *testing.T) {
	gs := jailCardGame(t)
	assert.ErrorIs(t, gs.Chance.restoreJailCard("Bail Bond"), ErrInvariantViolation)
}
