package rules

import (
	"sync"
	"time"
)

// EventType indicates the category of a game event.
type EventType string

const (
	// Turn events
	EventGameStarted EventType = "GAME_STARTED"
	EventTurnStarted EventType = "TURN_STARTED"
	EventPhase       EventType = "PHASE_CHANGED"
	EventDiceRolled  EventType = "DICE_ROLLED"
	EventMoved       EventType = "PLAYER_MOVED"
	EventPassedGo    EventType = "PASSED_GO"
	EventGameOver    EventType = "GAME_OVER"

	// Ledger events
	EventCashCharged  EventType = "CASH_CHARGED"
	EventCashReceived EventType = "CASH_RECEIVED"
	EventBankShort    EventType = "BANK_INSUFFICIENT_FUNDS"

	// Asset events
	EventAssetTransferred EventType = "ASSET_TRANSFERRED"
	EventMortgaged        EventType = "MORTGAGED"
	EventMortgageFreed    EventType = "MORTGAGE_FREED"
	EventImproved         EventType = "IMPROVED"
	EventImprovementSold  EventType = "IMPROVEMENT_SOLD"

	// Interaction events
	EventCardDrawn     EventType = "CARD_DRAWN"
	EventBidRequested  EventType = "BID_REQUESTED"
	EventAuctionClosed EventType = "AUCTION_CLOSED"
	EventTradeOffered  EventType = "TRADE_OFFERED"
	EventTradeAccepted EventType = "TRADE_ACCEPTED"
	EventJail          EventType = "JAIL"
	EventBankrupt      EventType = "BANKRUPT"

	// Decision events
	EventDecision EventType = "DECISION"
	EventHook     EventType = "HOOK"
)

// Event represents one entry of the append-only game history.
type Event struct {
	Type      EventType
	Function  string         // Operation that produced the entry
	PlayerID  string         // Player the operation acted on, if any
	Params    map[string]any // Parameter snapshot
	Return    any            // Return value of the operation
	TimeStep  int            // Game time step the operation happened in
	Timestamp time.Time
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
// Listeners run in handle order so that replays observe a stable sequence.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for handle := 0; handle < bus.nextHandle; handle++ {
		if listener, ok := bus.listeners[handle]; ok {
			listener(event)
		}
	}

	for _, listener := range bus.typedListeners[event.Type] {
		listener.Callback(event)
	}
}
