package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonopolyRentDoubling(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	owner, payer := gs.Players[0], gs.Players[1]
	baltic := mustProperty(t, gs, "Baltic Avenue").(*RealEstate)

	give(t, gs, owner, "Baltic Avenue")
	due, err := gs.CalculateDue(baltic, payer)
	require.NoError(t, err)
	assert.Equal(t, 4, due)

	give(t, gs, owner, "Mediterranean Avenue")
	require.True(t, owner.FullColorSets["Brown"])
	due, err = gs.CalculateDue(baltic, payer)
	require.NoError(t, err)
	assert.Equal(t, baltic.Rent*gs.Bank.MonopolyMultiplier, due)

	baltic.Houses = 2
	due, err = gs.CalculateDue(baltic, payer)
	require.NoError(t, err)
	assert.Equal(t, baltic.RentHouses[1], due)

	baltic.Houses, baltic.Hotels = 0, 1
	due, err = gs.CalculateDue(baltic, payer)
	require.NoError(t, err)
	assert.Equal(t, baltic.RentHotel, due)
}

func TestHouseRentIgnoresMonopolyStatus(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	baltic := mustProperty(t, gs, "Baltic Avenue").(*RealEstate)
	give(t, gs, gs.Players[0], "Baltic Avenue")
	baltic.Houses = 2

	due, err := gs.CalculateDue(baltic, gs.Players[1])
	require.NoError(t, err)
	assert.Equal(t, 60, due)
}

func TestRailroadDuesByCount(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	owner := gs.Players[0]
	reading := mustProperty(t, gs, "Reading Railroad")

	give(t, gs, owner, "Reading Railroad")
	due, err := gs.CalculateDue(reading, gs.Players[1])
	require.NoError(t, err)
	assert.Equal(t, 25, due)

	give(t, gs, owner, "Pennsylvania Railroad", "B&O Railroad", "Short Line")
	assert.Equal(t, 4, owner.NumRailroads)
	due, err = gs.CalculateDue(reading, gs.Players[1])
	require.NoError(t, err)
	assert.Equal(t, 200, due)
}

func TestRailroadCountOutOfRangeIsFatal(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	owner := gs.Players[0]
	give(t, gs, owner, "Reading Railroad")
	owner.NumRailroads = 5

	_, err := gs.CalculateDue(mustProperty(t, gs, "Reading Railroad"), gs.Players[1])
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvariantViolation))
}

func TestUtilityDues(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	owner := gs.Players[0]
	electric := mustProperty(t, gs, "Electric Company")
	gs.CurrentDieTotal = 7

	give(t, gs, owner, "Electric Company")
	due, err := gs.CalculateDue(electric, gs.Players[1])
	require.NoError(t, err)
	assert.Equal(t, 28, due)

	give(t, gs, owner, "Water Works")
	due, err = gs.CalculateDue(electric, gs.Players[1])
	require.NoError(t, err)
	assert.Equal(t, 70, due)

	owner.NumUtilities = 3
	_, err = gs.CalculateDue(electric, gs.Players[1])
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestRentHookOverridesDefault(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	give(t, gs, gs.Players[0], "Boardwalk")
	require.NoError(t, gs.Hooks.Register(HookCalculateRent, func(gs *GameState, loc Location, payer *Player) (int, error) {
		return 999, nil
	}))

	due, err := gs.CalculateDue(mustProperty(t, gs, "Boardwalk"), gs.Players[1])
	require.NoError(t, err)
	assert.Equal(t, 999, due)

	gs.Hooks.Remove(HookCalculateRent)
	due, err = gs.CalculateDue(mustProperty(t, gs, "Boardwalk"), gs.Players[1])
	require.NoError(t, err)
	assert.Equal(t, 50, due)
}

func TestTaxDue(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	loc, ok := gs.Location("Luxury Tax")
	require.True(t, ok)

	due, err := gs.CalculateDue(loc, gs.Players[0])
	require.NoError(t, err)
	assert.Equal(t, 100, due)
}
