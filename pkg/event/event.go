// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	EnemySpawned      Type = "enemy_spawned"
	EnemyKilled       Type = "enemy_killed"
	PlayerDamaged     Type = "player_damaged"
	PlayerDied        Type = "player_died"
	GameOver          Type = "game_over"
	BossActivated     Type = "boss_activated"
	BossEngaged       Type = "boss_engaged"
	BossPhaseChanged  Type = "boss_phase_changed"
	BossAttackStarted Type = "boss_attack_started"
	BossDefeated      Type = "boss_defeated"
	GalaxyAdvanced    Type = "galaxy_advanced"
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

// Subscription identifies a registered handler and can cancel it.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registeredHandler struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registeredHandler
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registeredHandler),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registeredHandler{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, h := range handlers {
		if h.id == id {
			b.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			return
		}
	}
}

// HandlerCount returns how many handlers are registered for eventType
func (b *Bus) HandlerCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, h := range handlers {
		h.handler(event)
	}
}

// Sink accepts events raised by simulation components
type Sink interface {
	Emit(e Event)
}

// Queue collects events raised during a tick so they can be delivered once
// the tick has finished mutating state. It is not safe for concurrent use.
type Queue struct {
	pending []Event
}

// Emit appends an event to the queue
func (q *Queue) Emit(e Event) {
	q.pending = append(q.pending, e)
}

// Len returns the number of queued events
func (q *Queue) Len() int {
	return len(q.pending)
}

// Drain returns the queued events in emission order and empties the queue
func (q *Queue) Drain() []Event {
	out := q.pending
	q.pending = nil
	return out
}

// FlushTo publishes every queued event on the bus in emission order
func (q *Queue) FlushTo(b *Bus) {
	for _, e := range q.Drain() {
		b.Publish(e)
	}
}

// Specific event implementations

// EnemyEvent describes an enemy being spawned or killed
type EnemyEvent struct {
	BaseEvent
	EnemyID uint64
	Kind    string
	Points  int
}

// NewEnemyEvent creates a new enemy event
func NewEnemyEvent(eventType Type, source interface{}, enemyID uint64, kind string, points int) *EnemyEvent {
	return &EnemyEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		EnemyID:   enemyID,
		Kind:      kind,
		Points:    points,
	}
}

// PlayerEvent describes a change in the player's health or lives
type PlayerEvent struct {
	BaseEvent
	Amount    int
	Health    int
	LivesLeft int
}

// NewPlayerEvent creates a new player event
func NewPlayerEvent(eventType Type, source interface{}, amount, health, livesLeft int) *PlayerEvent {
	return &PlayerEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		Amount:    amount,
		Health:    health,
		LivesLeft: livesLeft,
	}
}

// BossEvent describes a boss encounter transition
type BossEvent struct {
	BaseEvent
	EncounterID string
	Phase       int
	Pattern     string
}

// NewBossEvent creates a new boss event
func NewBossEvent(eventType Type, source interface{}, encounterID string, phase int, pattern string) *BossEvent {
	return &BossEvent{
		BaseEvent:   BaseEvent{EventType: eventType, Source: source},
		EncounterID: encounterID,
		Phase:       phase,
		Pattern:     pattern,
	}
}

// ProgressEvent describes galaxy advancement and final score
type ProgressEvent struct {
	BaseEvent
	Galaxy int
	Score  int
}

// NewProgressEvent creates a new progress event
func NewProgressEvent(eventType Type, source interface{}, galaxy, score int) *ProgressEvent {
	return &ProgressEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		Galaxy:    galaxy,
		Score:     score,
	}
}
