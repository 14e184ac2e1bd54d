package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/board"
)

// scriptedProvider replays queued answers and concludes once a queue is
// empty.
type scriptedProvider struct {
	preRoll   []Move
	postRoll  []Move
	outOfTurn []Move
	recovery  []Move
	bids      []int
	buy       bool

	recoveryCalls int
	bidCalls      int
}

func pop(queue *[]Move) Move {
	if len(*queue) == 0 {
		return Conclude()
	}
	m := (*queue)[0]
	*queue = (*queue)[1:]
	return m
}

func (s *scriptedProvider) PreRollMove(*Player, *GameState, ActionSet) Move {
	return pop(&s.preRoll)
}

func (s *scriptedProvider) PostRollMove(*Player, *GameState, ActionSet) Move {
	return pop(&s.postRoll)
}

func (s *scriptedProvider) OutOfTurnMove(*Player, *GameState, ActionSet) Move {
	return pop(&s.outOfTurn)
}

func (s *scriptedProvider) BuyProperty(*Player, *GameState, Property) bool { return s.buy }

func (s *scriptedProvider) Bid(*Player, *GameState, Property, int) int {
	s.bidCalls++
	if len(s.bids) == 0 {
		return 0
	}
	b := s.bids[0]
	s.bids = s.bids[1:]
	return b
}

func (s *scriptedProvider) HandleNegativeCashBalance(*Player, *GameState, ActionSet) Move {
	s.recoveryCalls++
	return pop(&s.recovery)
}

var playerNames = []string{"alice", "bob", "carol", "dave"}

func newTestGame(t *testing.T, players int, opts Options) (*GameState, []*scriptedProvider) {
	t.Helper()
	providers := make([]*scriptedProvider, players)
	specs := make([]PlayerSpec, players)
	for i := range specs {
		providers[i] = &scriptedProvider{}
		specs[i] = PlayerSpec{Name: playerNames[i], Provider: providers[i]}
	}
	gs, err := NewGame(board.Classic(), specs, opts)
	require.NoError(t, err)
	return gs, providers
}

func mustProperty(t *testing.T, gs *GameState, name string) Property {
	t.Helper()
	prop, ok := gs.Property(name)
	require.True(t, ok, "no property %q", name)
	return prop
}

func give(t *testing.T, gs *GameState, p *Player, names ...string) {
	t.Helper()
	for _, name := range names {
		gs.setOwner(mustProperty(t, gs, name), p)
	}
}

// fixedRoll installs a roll hook that returns the given rolls in order.
func fixedRoll(t *testing.T, gs *GameState, rolls ...[]int) {
	t.Helper()
	require.NoError(t, gs.Hooks.Register(HookRollDie, func(*GameState) ([]int, error) {
		if len(rolls) == 0 {
			return []int{1, 2}, nil
		}
		r := rolls[0]
		rolls = rolls[1:]
		return r, nil
	}))
}
