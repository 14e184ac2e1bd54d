package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game"
)

// testStore connects to MONOPOLY_TEST_DSN or skips.
func testStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("MONOPOLY_TEST_DSN")
	if dsn == "" {
		t.Skip("MONOPOLY_TEST_DSN not set")
	}
	ctx := context.Background()
	s, err := New(ctx, dsn, 2, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	require.NoError(t, s.EnsureSchema(ctx))
	return s
}

func result(winner string) *game.Result {
	return &game.Result{
		GameID:    uuid.NewString(),
		Winner:    winner,
		Reason:    game.StopLastPlayerStanding,
		Turns:     40,
		TimeSteps: 10,
		DieRolls:  80,
		Duration:  1500 * time.Millisecond,
		Standings: []game.Standing{
			{Name: "alice", Status: game.StatusWaiting, Cash: 2000, NetWorth: 2600},
			{Name: "bob", Status: game.StatusLost, Cash: -20, NetWorth: 0},
		},
	}
}

func TestSaveAndListResults(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	tournament := uuid.NewString()

	first := result("alice")
	require.NoError(t, s.SaveResult(ctx, tournament, 1, first))
	require.NoError(t, s.SaveResult(ctx, tournament, 2, result("bob")))

	first.Turns = 41
	require.NoError(t, s.SaveResult(ctx, tournament, 1, first), "saving again replaces the row")

	records, err := s.ListResults(ctx, tournament)
	require.NoError(t, err)
	require.Len(t, records, 2)

	var got Record
	for _, rec := range records {
		if rec.Result.GameID == first.GameID {
			got = rec
		}
	}
	assert.Equal(t, int64(1), got.Seed)
	assert.Equal(t, 41, got.Result.Turns)
	assert.Equal(t, game.StopLastPlayerStanding, got.Result.Reason)
	assert.Equal(t, 1500*time.Millisecond, got.Result.Duration)
	assert.Equal(t, first.Standings, got.Result.Standings)

	counts, err := s.WinCounts(ctx, tournament)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"alice": 1, "bob": 1}, counts)
}

func TestNewRejectsBadDSN(t *testing.T) {
	_, err := New(context.Background(), "::not a dsn::", 1, nil)
	assert.Error(t, err)
}
