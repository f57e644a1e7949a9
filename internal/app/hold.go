package app

import (
	"time"

	"github.com/raulbellosom/travel-sub002/internal/domain"
)

// Blocks reports whether a reservation still occupies its window at now.
//
// Confirmed reservations always block. Pending reservations block while their
// hold has not expired; a pending row without a hold expiry blocks too, so
// malformed data fails safe instead of silently allowing a double booking.
// (The storage layer scans unparseable expiry values to nil, which lands in
// the same fail-safe branch.) Every other status has released its window.
func Blocks(status domain.ReservationStatus, holdExpiresAt *time.Time, now time.Time) bool {
	switch status {
	case domain.ReservationConfirmed:
		return true
	case domain.ReservationPending:
		if holdExpiresAt == nil {
			return true
		}
		return holdExpiresAt.After(now)
	default:
		return false
	}
}
