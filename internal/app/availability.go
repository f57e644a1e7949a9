package app

import (
	"time"

	"github.com/raulbellosom/travel-sub002/internal/domain"
)

// candidateLimit caps the conflict-candidate scan. The listing is not
// paginated beyond this, so a resource with more than candidateLimit live
// pending/confirmed reservations can miss conflicts. Known gap, kept on
// purpose.
const candidateLimit = 100

// CheckAvailability scans existing reservations for a window conflict with
// the incoming window. Non-blocking reservations (expired holds, cancelled,
// completed) are skipped; the rest are padded with the resource's current
// buffer and tested for half-open overlap. Returns the first conflicting
// reservation id, or ok=true when the window is free.
func CheckAvailability(incoming Window, existing []domain.Reservation, bufferMinutes int, now time.Time) (conflictID string, ok bool) {
	for _, r := range existing {
		if !Blocks(r.Status, r.HoldExpiresAt, now) {
			continue
		}
		w, resolvable := ReservationWindow(r, bufferMinutes)
		if !resolvable {
			continue
		}
		if w.Overlaps(incoming) {
			return r.ID, false
		}
	}
	return "", true
}
