package rules

import (
	"testing"
)

func TestEventBusSubscribeTyped(t *testing.T) {
	bus := NewEventBus()

	chargeCount := 0
	bankruptCount := 0

	handle := bus.SubscribeTyped(EventCashCharged, func(e Event) {
		chargeCount++
	})
	bus.SubscribeTyped(EventBankrupt, func(e Event) {
		bankruptCount++
	})

	bus.Publish(Event{Type: EventCashCharged, PlayerID: "player_1"})
	if chargeCount != 1 || bankruptCount != 0 {
		t.Fatalf("expected counts 1/0, got %d/%d", chargeCount, bankruptCount)
	}

	bus.Unsubscribe(handle)
	bus.Publish(Event{Type: EventCashCharged, PlayerID: "player_1"})
	if chargeCount != 1 {
		t.Fatalf("expected charge count still 1 after unsubscribe, got %d", chargeCount)
	}

	bus.Publish(Event{Type: EventBankrupt, PlayerID: "player_2"})
	if bankruptCount != 1 {
		t.Fatalf("expected bankrupt count 1, got %d", bankruptCount)
	}
}

func TestEventBusSubscribeAllInOrder(t *testing.T) {
	bus := NewEventBus()

	var order []int
	bus.Subscribe(func(e Event) { order = append(order, 0) })
	bus.Subscribe(func(e Event) { order = append(order, 1) })
	bus.Subscribe(func(e Event) { order = append(order, 2) })

	bus.Publish(Event{Type: EventMoved})

	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Fatalf("expected listeners in subscription order, got %v", order)
	}
}

func TestEventBusNilListener(t *testing.T) {
	bus := NewEventBus()
	if h := bus.Subscribe(nil); h != -1 {
		t.Fatalf("expected -1 handle for nil listener, got %d", h)
	}
	if h := bus.SubscribeTyped(EventMoved, nil); h != -1 {
		t.Fatalf("expected -1 handle for nil typed listener, got %d", h)
	}
}
