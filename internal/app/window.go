package app

import (
	"time"

	"github.com/raulbellosom/travel-sub002/internal/domain"
)

// Window is a half-open interval [Start, End) in absolute time.
type Window struct {
	Start time.Time
	End   time.Time
}

// ResolveWindow pads a raw booking interval with the resource's buffer,
// symmetrically on both ends. A zero or negative buffer yields the raw
// interval. The same resolution is applied to the incoming request and to
// every existing reservation, always with the buffer the resource carries at
// evaluation time.
func ResolveWindow(start, end time.Time, bufferMinutes int) Window {
	if bufferMinutes < 0 {
		bufferMinutes = 0
	}
	buf := time.Duration(bufferMinutes) * time.Minute
	return Window{Start: start.Add(-buf), End: end.Add(buf)}
}

// Overlaps tests half-open interval overlap. Exact boundary touches
// (w.End == other.Start) are not overlaps, which is what allows back-to-back
// bookings.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// ReservationWindow resolves an existing reservation's occupied window using
// the given buffer. ok is false when the reservation's temporal fields are
// incomplete; such rows cannot be positioned in time and are skipped by the
// availability scan.
func ReservationWindow(r domain.Reservation, bufferMinutes int) (Window, bool) {
	start, end, ok := r.WindowBounds()
	if !ok {
		return Window{}, false
	}
	return ResolveWindow(start, end, bufferMinutes), true
}
