package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventAdventureCreated EventType = "adventure_created"
	EventSessionStarted   EventType = "session_started"
	EventNodeSelected     EventType = "node_selected"
	EventMoveRejected     EventType = "move_rejected"
	EventResultViewed     EventType = "result_viewed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	UserID    string    `json:"user_id,omitempty"`
}

// AdventureEvent is emitted when a template is created.
type AdventureEvent struct {
	EventBase
	Nodes int `json:"nodes"`
}

// StepEvent is emitted for session progress.
type StepEvent struct {
	EventBase
	NodeID   int `json:"node_id"`
	Selected int `json:"selected"` // size of the explored path after the event
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnAdventureCreated func(context.Context, *AdventureEvent)
	OnSessionStarted   func(context.Context, *StepEvent)
	OnNodeSelected     func(context.Context, *StepEvent)
	OnMoveRejected     func(context.Context, *StepEvent)
	OnResultViewed     func(context.Context, *StepEvent)
}
