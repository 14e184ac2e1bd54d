package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/rules"
)

func TestRegisterRejectsWrongFamily(t *testing.T) {
	h := NewHooks()

	err := h.Register(HookCalculateRent, func(gs *GameState) ([]int, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrInvalidHook)

	err = h.Register(HookCalculateRent, "not a function")
	assert.ErrorIs(t, err, ErrInvalidHook)

	err = h.Register("no_such_hook", DueFunc(DefaultRent))
	assert.ErrorIs(t, err, ErrInvalidHook)

	assert.Empty(t, h.Names())
}

func TestRegisterAcceptsLiteralsAndNamedTypes(t *testing.T) {
	h := NewHooks()

	require.NoError(t, h.Register(HookCalculateTax, DefaultTax))
	require.NoError(t, h.Register(HookCalculateRent, func(*GameState, Location, *Player) (int, error) {
		return 1, nil
	}))

	fn, ok := Lookup[DueFunc](h, HookCalculateRent)
	require.True(t, ok)
	due, err := fn(nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, due)

	_, ok = Lookup[RollFunc](h, HookCalculateRent)
	assert.False(t, ok)

	assert.Equal(t, []HookName{HookCalculateRent, HookCalculateTax}, h.Names())
}

func TestRemoveAndHas(t *testing.T) {
	h := NewHooks()
	require.NoError(t, h.Register(HookRollDie, DefaultRollDice))

	assert.True(t, h.Has(HookRollDie))
	assert.True(t, h.Remove(HookRollDie))
	assert.False(t, h.Has(HookRollDie))
	assert.False(t, h.Remove(HookRollDie))
}

func TestActionHookOverridesLandingAction(t *testing.T) {
	gs, _ := newTestGame(t, 2, Options{})
	p := gs.Players[0]
	var landedOn string
	require.NoError(t, gs.Hooks.Register(ActionHook("go_to_jail"), func(gs *GameState, p *Player, loc *ActionLocation) (Code, error) {
		landedOn = loc.Name()
		return gs.Codes().Success, nil
	}))

	p.Position = 30
	require.NoError(t, gs.resolveLanding(p, landing{}))

	assert.Equal(t, "Go to Jail", landedOn)
	assert.False(t, p.InJail)
	assert.Equal(t, 30, p.Position)
}

func TestActionHookNameNeedsSuffix(t *testing.T) {
	h := NewHooks()
	err := h.Register(ActionHook(""), func(*GameState, *Player, *ActionLocation) (Code, error) { return 0, nil })
	assert.ErrorIs(t, err, ErrInvalidHook)
}

func TestHookChangesAfterSetupAreRecorded(t *testing.T) {
	setup := func(gs *GameState) error {
		return gs.Hooks.Register(HookCalculateTax, DueFunc(DefaultTax))
	}
	gs, _ := newTestGame(t, 2, Options{Setup: []SetupFunc{setup}})
	require.Empty(t, gs.History())

	var seen []rules.EventType
	gs.Events().Subscribe(func(e rules.Event) { seen = append(seen, e.Type) })

	require.NoError(t, gs.Hooks.Register(HookAuction, AuctionFunc(DefaultAuction)))
	assert.True(t, gs.Hooks.Remove(HookAuction))
	assert.False(t, gs.Hooks.Remove(HookAuction))

	history := gs.History()
	require.Len(t, history, 2)
	assert.Equal(t, []rules.EventType{rules.EventHook, rules.EventHook}, seen)
	assert.Equal(t, "register_hook", history[0].Function)
	assert.Equal(t, "remove_hook", history[1].Function)
	assert.Equal(t, map[string]any{"hook": "auction"}, history[1].Params)
}
