// Package spectate streams a running game to websocket clients.
package spectate

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game"
	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game/rules"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Spectators only send control frames.
	maxMessageSize = 512
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message types sent to spectators.
const (
	MessageEvent     = "event"
	MessageStandings = "standings"
)

// Message is one frame sent to spectators.
type Message struct {
	Type    string       `json:"type"`
	GameID  string       `json:"game_id"`
	Event   *EventView   `json:"event,omitempty"`
	Players []PlayerView `json:"players,omitempty"`
}

// EventView is the wire form of a history entry.
type EventView struct {
	Type     rules.EventType `json:"type"`
	Function string          `json:"function"`
	Player   string          `json:"player,omitempty"`
	Params   map[string]any  `json:"params,omitempty"`
	Return   any             `json:"return,omitempty"`
	TimeStep int             `json:"time_step"`
}

// PlayerView is the wire form of a player.
type PlayerView struct {
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	Cash     int      `json:"cash"`
	NetWorth int      `json:"net_worth"`
	Position int      `json:"position"`
	InJail   bool     `json:"in_jail"`
	Assets   []string `json:"assets"`
}

// Client is one connected spectator.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans game messages out to every connected client.
type Hub struct {
	logger *zap.Logger

	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	// latest standings, replayed to clients that join mid-game
	latest []byte
}

// NewHub creates a hub. Call Run before serving clients.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger:     logger,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run owns the client set until ctx ends, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			if h.latest != nil {
				client.send <- h.latest
			}
			h.logger.Info("spectator joined", zap.Int("clients", len(h.clients)))

		case client := <-h.unregister:
			h.drop(client)

		case message := <-h.broadcast:
			if isStandings(message) {
				h.latest = message
			}
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.logger.Warn("spectator too slow, dropping")
					h.drop(client)
				}
			}

		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return
		}
	}
}

func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.logger.Info("spectator left", zap.Int("clients", len(h.clients)))
	}
}

// Broadcast queues a frame for every client. It returns false once the hub
// has stopped.
func (h *Hub) Broadcast(message []byte) bool {
	select {
	case h.broadcast <- message:
		return true
	case <-h.done:
		return false
	}
}

// Watch streams every history entry of gs, followed by standings at each
// turn start and at game over. The returned func stops watching. Events are
// published from the game goroutine, so the standings read is race free.
func (h *Hub) Watch(gs *game.GameState) func() {
	bus := gs.Events()
	handle := bus.Subscribe(func(e rules.Event) {
		h.send(Message{
			Type:   MessageEvent,
			GameID: gs.ID,
			Event: &EventView{
				Type:     e.Type,
				Function: e.Function,
				Player:   e.PlayerID,
				Params:   e.Params,
				Return:   e.Return,
				TimeStep: e.TimeStep,
			},
		})
		if e.Type == rules.EventTurnStarted || e.Type == rules.EventGameOver {
			h.send(Standings(gs))
		}
	})
	return func() { bus.Unsubscribe(handle) }
}

func (h *Hub) send(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Warn("failed to encode spectator message", zap.String("type", msg.Type), zap.Error(err))
		return
	}
	h.Broadcast(data)
}

// Standings builds a standings message from the current state.
func Standings(gs *game.GameState) Message {
	players := make([]PlayerView, 0, len(gs.Players))
	for _, p := range gs.Players {
		view := PlayerView{
			Name:     p.Name,
			Status:   string(p.Status),
			Cash:     p.Cash,
			NetWorth: p.NetWorth(),
			Position: p.Position,
			InJail:   p.InJail,
			Assets:   []string{},
		}
		for _, prop := range p.Assets() {
			view.Assets = append(view.Assets, prop.Name())
		}
		players = append(players, view)
	}
	return Message{Type: MessageStandings, GameID: gs.ID, Players: players}
}

func isStandings(message []byte) bool {
	var head struct {
		Type string `json:"type"`
	}
	return json.Unmarshal(message, &head) == nil && head.Type == MessageStandings
}

// ServeWS upgrades the request and registers the connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump discards client frames but keeps the pong deadline moving.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
