package game

import "sync"

// EventType indicates the category of an engine event.
type EventType string

const (
	EventSpawn         EventType = "SPAWN"
	EventDestroy       EventType = "DESTROY"
	EventDrawCard      EventType = "DRAW_CARD"
	EventZoneChange    EventType = "ZONE_CHANGE"
	EventManaCapChange EventType = "MANA_CAP_CHANGE"
	EventPhaseChanged  EventType = "PHASE_CHANGED"
	EventTurnEnd       EventType = "TURN_END"
)

// Event represents a state change that cards and subsystems may react to.
type Event struct {
	Type     EventType
	Card     *Card
	Player   *Player
	FromZone Zone
	ToZone   Zone
	Amount   int
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// EventBus provides a synchronous publish/subscribe implementation. The
// server subscribes here to log state changes; card hooks are not driven by
// subscriptions but walked in board order (see Game.publish), so a card's
// position on the board determines trigger order.
type EventBus struct {
	mu         sync.RWMutex
	listeners  map[int]Listener
	nextHandle int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{listeners: make(map[int]Listener)}
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

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	for _, listener := range bus.listeners {
		listener(event)
	}
}
