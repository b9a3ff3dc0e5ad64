package notify

import "context"

// Lifecycle event types pushed to users.
const (
	EventChatRequest  = "chat_request"
	EventChatApproved = "chat_approved"
	EventChatDeclined = "chat_declined"
	EventChatMessage  = "chat_message"
)

// Event is the payload delivered to a user's live connections.
type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Notifier delivers events best-effort: no persistence, no retry, no
// delivery guarantee. Implementations must never block the caller on a slow
// or dead consumer.
type Notifier interface {
	Emit(ctx context.Context, userID string, ev Event)
}

// Fanout emits to every wrapped notifier.
type Fanout []Notifier

func (f Fanout) Emit(ctx context.Context, userID string, ev Event) {
	for _, n := range f {
		n.Emit(ctx, userID, ev)
	}
}

// Discard drops everything; used in tests and when no transport is wired.
type Discard struct{}

func (Discard) Emit(context.Context, string, Event) {}
