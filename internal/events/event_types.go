package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionRestored      EventType = "session_restored"
	EventSessionRestoreFailed EventType = "session_restore_failed"
	EventSessionCleared       EventType = "session_cleared"
	EventOrderContextDegraded EventType = "order_context_degraded"
	EventRestaurantSwitched   EventType = "restaurant_switched"
)

// Event represents a lifecycle event emitted by the stores and aggregator.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// SessionRestoredPayload payload.
type SessionRestoredPayload struct {
	Path  string `json:"path"` // "refresh" or "decode_lookup"
	Roles int    `json:"roles"`
}

// OrderContextDegradedPayload payload.
type OrderContextDegradedPayload struct {
	OrderID int64    `json:"order_id"`
	Missing []string `json:"missing"`
}

// RestaurantSwitchedPayload payload.
type RestaurantSwitchedPayload struct {
	RestaurantID int64 `json:"restaurant_id"`
}
