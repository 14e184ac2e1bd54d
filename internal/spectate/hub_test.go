package spectate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/agent"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/board"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/rules"
)

func newGame(t *testing.T) *game.GameState {
	t.Helper()
	gs, err := game.NewGame(board.Classic(), []game.PlayerSpec{
		{Name: "alice", Provider: agent.NewBackground()},
		{Name: "bob", Provider: agent.Passive{}},
	}, game.Options{Seed: 3})
	require.NoError(t, err)
	return gs
}

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestWatchStreamsEventsAndStandings(t *testing.T) {
	hub, url := startHub(t)
	gs := newGame(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// the first standings frame proves the client is registered
	hub.send(Standings(gs))
	first := readMessage(t, conn)
	require.Equal(t, MessageStandings, first.Type)
	require.Len(t, first.Players, 2)
	assert.Equal(t, 1500, first.Players[0].Cash)

	stop := hub.Watch(gs)
	defer stop()
	require.NoError(t, gs.PlayTurn(context.Background()))

	var sawTurn, sawRoll, sawStandings bool
	for !(sawTurn && sawRoll && sawStandings) {
		msg := readMessage(t, conn)
		assert.Equal(t, gs.ID, msg.GameID)
		switch msg.Type {
		case MessageEvent:
			require.NotNil(t, msg.Event)
			switch msg.Event.Type {
			case rules.EventTurnStarted:
				sawTurn = true
				assert.Equal(t, "alice", msg.Event.Player)
			case rules.EventDiceRolled:
				sawRoll = true
			}
		case MessageStandings:
			sawStandings = true
		}
	}
}

func TestStandings(t *testing.T) {
	gs := newGame(t)
	gs.Players[1].Cash = 900

	msg := Standings(gs)
	assert.Equal(t, MessageStandings, msg.Type)
	assert.Equal(t, "bob", msg.Players[1].Name)
	assert.Equal(t, 900, msg.Players[1].Cash)
	assert.Equal(t, string(game.StatusWaiting), msg.Players[1].Status)
	assert.Empty(t, msg.Players[1].Assets)

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.True(t, isStandings(data))
	assert.False(t, isStandings([]byte(`{"type":"event"}`)))
	assert.False(t, isStandings([]byte(`not json`)))
}

func TestBroadcastAfterStop(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	// fill the buffer so only the stopped hub can unblock Broadcast
	for range sendBuffer {
		hub.broadcast <- []byte("{}")
	}
	assert.False(t, hub.Broadcast([]byte("{}")))
}
