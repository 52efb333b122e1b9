// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-starship/pkg/physics"
	"github.com/opd-ai/go-starship/pkg/starship"
)

// Type represents the type of event
type Type string

// Game event types
const (
	GameStarted       Type = "game_started"
	GameEnded         Type = "game_ended"
	DirectionPressed  Type = "direction_pressed"
	DirectionReleased Type = "direction_released"
	ShipCollided      Type = "ship_collided"
	SweepCompleted    Type = "sweep_completed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus dispatches events synchronously to subscribed handlers, in
// subscription order.
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Type:   eventType,
		Cancel: func() { b.Unsubscribe(eventType, id) },
	}
}

// Unsubscribe removes the handler registered under id. Unknown ids are ignored.
func (b *Bus) Unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers. Handlers may subscribe
// or unsubscribe while being called; the change applies to the next Publish.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := append([]registration(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// InputEvent reports a logical direction press or release
type InputEvent struct {
	BaseEvent
	Direction starship.Direction
	Tick      uint64
}

// NewInputEvent creates a new input event
func NewInputEvent(eventType Type, source interface{}, direction starship.Direction, tick uint64) *InputEvent {
	return &InputEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		Direction: direction,
		Tick:      tick,
	}
}

// CollisionEvent reports that the ship's movement was blocked by a wall
type CollisionEvent struct {
	BaseEvent
	Position physics.Vector2D
	Speed    float64
	Tick     uint64
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source interface{}, position physics.Vector2D, speed float64, tick uint64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{EventType: ShipCollided, Source: source},
		Position:  position,
		Speed:     speed,
		Tick:      tick,
	}
}

// SweepEvent reports a completed sensor revolution
type SweepEvent struct {
	BaseEvent
	Revolution uint64
	Tick       uint64
}

// NewSweepEvent creates a new sweep event
func NewSweepEvent(source interface{}, revolution, tick uint64) *SweepEvent {
	return &SweepEvent{
		BaseEvent:  BaseEvent{EventType: SweepCompleted, Source: source},
		Revolution: revolution,
		Tick:       tick,
	}
}
