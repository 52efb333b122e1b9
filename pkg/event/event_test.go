// pkg/event/event_test.go
package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-starship/pkg/physics"
	"github.com/opd-ai/go-starship/pkg/starship"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	require.NotNil(t, bus)
	assert.NotNil(t, bus.handlers)
	assert.Equal(t, uint64(1), bus.nextID)
}

func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{"GameStarted event", GameStarted, "test_source"},
		{"SweepCompleted event", SweepCompleted, 123},
		{"Empty source", GameEnded, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &BaseEvent{EventType: tt.eventType, Source: tt.source}

			assert.Equal(t, tt.eventType, e.GetType())
			assert.Equal(t, tt.source, e.GetSource())
		})
	}
}

func TestBusSubscribe_MultipleHandlers_UniqueIDs(t *testing.T) {
	bus := NewEventBus()

	sub1 := bus.Subscribe(ShipCollided, func(Event) {})
	sub2 := bus.Subscribe(ShipCollided, func(Event) {})
	sub3 := bus.Subscribe(SweepCompleted, func(Event) {})

	assert.NotZero(t, sub1.ID)
	assert.NotEqual(t, sub1.ID, sub2.ID)
	assert.NotEqual(t, sub2.ID, sub3.ID)
	assert.Len(t, bus.handlers[ShipCollided], 2)
}

func TestBusPublish_CallsHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int

	bus.Subscribe(SweepCompleted, func(Event) { order = append(order, 1) })
	bus.Subscribe(SweepCompleted, func(Event) { order = append(order, 2) })
	bus.Subscribe(GameEnded, func(Event) { order = append(order, 99) })

	bus.Publish(NewSweepEvent(nil, 1, 360))

	assert.Equal(t, []int{1, 2}, order)
}

func TestBusPublish_NoSubscribers(t *testing.T) {
	bus := NewEventBus()
	assert.NotPanics(t, func() { bus.Publish(&BaseEvent{EventType: GameStarted}) })
}

func TestSubscriptionCancel_StopsDelivery(t *testing.T) {
	bus := NewEventBus()
	var a, b int

	subA := bus.Subscribe(ShipCollided, func(Event) { a++ })
	bus.Subscribe(ShipCollided, func(Event) { b++ })

	bus.Publish(NewCollisionEvent(nil, physics.Vector2D{}, 1, 1))
	subA.Cancel()
	bus.Publish(NewCollisionEvent(nil, physics.Vector2D{}, 1, 2))

	assert.Equal(t, 1, a, "cancelled handler")
	assert.Equal(t, 2, b, "remaining handler")

	assert.NotPanics(t, subA.Cancel, "cancelling twice is harmless")
}

func TestBusPublish_HandlerMayUnsubscribeItself(t *testing.T) {
	bus := NewEventBus()
	calls := 0

	var sub *Subscription
	sub = bus.Subscribe(GameStarted, func(Event) {
		calls++
		sub.Cancel()
	})

	bus.Publish(&BaseEvent{EventType: GameStarted})
	bus.Publish(&BaseEvent{EventType: GameStarted})

	assert.Equal(t, 1, calls)
}

func TestTypedEvents(t *testing.T) {
	in := NewInputEvent(DirectionPressed, "game", starship.Left, 7)
	assert.Equal(t, DirectionPressed, in.GetType())
	assert.Equal(t, starship.Left, in.Direction)
	assert.Equal(t, uint64(7), in.Tick)

	col := NewCollisionEvent("game", physics.Vector2D{X: 1, Y: 2}, 3.5, 9)
	assert.Equal(t, ShipCollided, col.GetType())
	assert.Equal(t, physics.Vector2D{X: 1, Y: 2}, col.Position)
	assert.Equal(t, 3.5, col.Speed)

	sw := NewSweepEvent("game", 2, 720)
	assert.Equal(t, SweepCompleted, sw.GetType())
	assert.Equal(t, uint64(2), sw.Revolution)
	assert.Equal(t, "game", sw.GetSource())
}
