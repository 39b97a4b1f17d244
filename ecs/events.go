package ecs

import (
	"time"

	"github.com/milk9111/colliders/collision"
)

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventCollision = "collision"

// CollisionEvent is emitted when a host's collider reports a contact.
type CollisionEvent struct {
	Host      Entity
	Candidate Entity
	At        time.Duration
	Verdict   collision.Verdict
	// Data is a copy of the detailed result, nil for simple tests.
	Data *collision.Data
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
