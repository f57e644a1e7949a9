// Package activity is the best-effort audit side channel. Recording never
// blocks or fails an admission: events go through a bounded queue and are
// dropped (with a local log line) when the sink cannot keep up.
package activity

import (
	"log"
	"time"
)

const (
	EventReservationCreated = "ReservationCreated"
	EventReservationReused  = "ReservationReused"
)

// Event is one audit record.
type Event struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id"`
	ResourceID    string    `json:"resource_id"`
	GuestID       string    `json:"guest_id"`
	Total         string    `json:"total"`
	Currency      string    `json:"currency"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Recorder accepts events fire-and-forget.
type Recorder interface {
	Record(ev Event)
}

// Sink delivers events; delivery errors are the sink's to swallow.
type Sink interface {
	Write(ev Event)
	Close()
}

// Dispatcher fans events into a Sink from a bounded queue.
type Dispatcher struct {
	inbox chan Event
	done  chan struct{}
	sink  Sink
}

func NewDispatcher(sink Sink, buf int) *Dispatcher {
	if buf <= 0 {
		buf = 256
	}
	d := &Dispatcher{
		inbox: make(chan Event, buf),
		done:  make(chan struct{}),
		sink:  sink,
	}
	go d.loop()
	return d
}

// Record enqueues without blocking; a full queue drops the event.
func (d *Dispatcher) Record(ev Event) {
	select {
	case d.inbox <- ev:
	default:
		log.Printf("WARN: activity queue full, dropping event type=%s reservation=%s", ev.Type, ev.ReservationID)
	}
}

// Close drains remaining events and stops the loop.
func (d *Dispatcher) Close() {
	close(d.inbox)
	<-d.done
	d.sink.Close()
}

func (d *Dispatcher) loop() {
	for ev := range d.inbox {
		d.sink.Write(ev)
	}
	close(d.done)
}

// LogSink writes events to the local log. The default sink when no broker is
// configured.
type LogSink struct{}

func (LogSink) Write(ev Event) {
	log.Printf("activity type=%s reservation=%s resource=%s guest=%s total=%s %s",
		ev.Type, ev.ReservationID, ev.ResourceID, ev.GuestID, ev.Total, ev.Currency)
}

func (LogSink) Close() {}

// Discard ignores every event (tests).
type Discard struct{}

func (Discard) Record(Event) {}
