package ecs

// Event is something a system reports for the caller to act on after the
// tick: a sound to play, the end of a round.
type Event struct {
	Type string
	// Tick is the world tick the event was emitted on.
	Tick uint64
	Data any
}

// EventQueue buffers events in emission order until they are drained.
type EventQueue struct {
	items []Event
}

// Emit stamps an event with the current tick and queues it.
func Emit(w *World, typ string, data any) {
	if w == nil {
		return
	}
	w.events.Push(Event{Type: typ, Tick: w.tick, Data: data})
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain hands over the queued events and empties the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q != nil {
		q.items = q.items[:0]
	}
}
