// Package pubsub provides a small generic publish/subscribe broker used to
// push background notifications (log entries, config file changes) into the
// Bubble Tea update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType tags what happened to the payload.
type EventType string

const (
	// AppendedEvent marks a new entry added to a stream (log lines).
	AppendedEvent EventType = "appended"
	// ChangedEvent marks a watched resource that changed on disk.
	ChangedEvent EventType = "changed"
	// FailedEvent carries an error from a background producer.
	FailedEvent EventType = "failed"
)

// Event is a published payload with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out event channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher sends events to subscribers.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T) int
}
