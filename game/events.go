package game

import "rival-snake/game/types"

type EventType int

const (
	EventEat EventType = iota
	EventBonus
	EventPenalty
	EventGameOver
	EventSpecialSpawned
	EventSpeedUp
	EventRestart
)

func (t EventType) String() string {
	switch t {
	case EventEat:
		return "eat"
	case EventBonus:
		return "bonus"
	case EventPenalty:
		return "penalty"
	case EventGameOver:
		return "game-over"
	case EventSpecialSpawned:
		return "special-spawned"
	case EventSpeedUp:
		return "speed-up"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Cause says what triggered a life-loss penalty.
type Cause int

const (
	CauseNone Cause = iota
	CauseWall
	CauseSelf
	CauseRival
)

func (c Cause) String() string {
	switch c {
	case CauseWall:
		return "wall"
	case CauseSelf:
		return "self"
	case CauseRival:
		return "rival"
	default:
		return "none"
	}
}

// Event is emitted by the game during a tick or a command.
type Event struct {
	Type  EventType
	Pos   types.Point
	Cause Cause
	Score int
	Lives int
	FPS   int
}

type EventHandler func(Event)

// EventBus fans events out to subscribers synchronously, in subscription order.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for t := EventEat; t <= EventRestart; t++ {
		eb.Subscribe(t, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}

// Cue is a sound the shell plays in response to an event.
type Cue int

const (
	CueNone Cue = iota
	CueEat
	CueBonus
	CuePenalty
)

// Cue maps the event to its sound. A game over that follows a penalty is
// silent since the penalty already played.
func (e Event) Cue() Cue {
	switch e.Type {
	case EventEat:
		return CueEat
	case EventBonus:
		return CueBonus
	case EventPenalty:
		return CuePenalty
	case EventGameOver:
		if e.Lives > 0 {
			return CuePenalty
		}
	}
	return CueNone
}
