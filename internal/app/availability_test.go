package app

import (
	"testing"
	"time"

	"github.com/raulbellosom/travel-sub002/internal/domain"
)

func TestCheckAvailability(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(h int) time.Time {
		return time.Date(2025, 3, 2, h, 0, 0, 0, time.UTC)
	}
	future := now.Add(time.Hour)

	slot := func(id string, start, end time.Time, status domain.ReservationStatus, expiry *time.Time) domain.Reservation {
		return domain.Reservation{
			ID:            id,
			Shape:         domain.ShapeTimeSlot,
			StartsAt:      &start,
			EndsAt:        &end,
			Status:        status,
			HoldExpiresAt: expiry,
		}
	}

	t.Run("no candidates is available", func(t *testing.T) {
		if _, ok := CheckAvailability(ResolveWindow(at(10), at(12), 0), nil, 0, now); !ok {
			t.Fatalf("expected available")
		}
	})

	t.Run("back-to-back at exact boundary is available", func(t *testing.T) {
		existing := []domain.Reservation{slot("r1", at(8), at(10), domain.ReservationConfirmed, nil)}
		if _, ok := CheckAvailability(ResolveWindow(at(10), at(12), 0), existing, 0, now); !ok {
			t.Fatalf("expected boundary touch to be available")
		}
	})

	t.Run("overlap conflicts and reports the reservation", func(t *testing.T) {
		existing := []domain.Reservation{slot("r1", at(9), at(11), domain.ReservationConfirmed, nil)}
		conflictID, ok := CheckAvailability(ResolveWindow(at(10), at(12), 0), existing, 0, now)
		if ok {
			t.Fatalf("expected conflict")
		}
		if conflictID != "r1" {
			t.Fatalf("expected conflict with r1, got %s", conflictID)
		}
	})

	t.Run("buffer symmetry", func(t *testing.T) {
		const buffer = 30
		existing := []domain.Reservation{slot("r1", at(8), at(10), domain.ReservationConfirmed, nil)}

		// Starting exactly buffer*2 after the raw end: padded end of the
		// existing (10:30) meets the padded start of the incoming (10:30),
		// which is a boundary touch, not a conflict.
		incoming := ResolveWindow(at(11), at(13), buffer)
		if _, ok := CheckAvailability(incoming, existing, buffer, now); !ok {
			t.Fatalf("expected window starting beyond buffer to be available")
		}

		oneMinuteLess := ResolveWindow(at(11).Add(-time.Minute), at(13), buffer)
		if _, ok := CheckAvailability(oneMinuteLess, existing, buffer, now); ok {
			t.Fatalf("expected window one minute inside the buffer to conflict")
		}
	})

	t.Run("expired hold yields availability", func(t *testing.T) {
		expired := now.Add(-1 * time.Second)
		existing := []domain.Reservation{slot("r1", at(10), at(12), domain.ReservationPending, &expired)}
		if _, ok := CheckAvailability(ResolveWindow(at(10), at(12), 0), existing, 0, now); !ok {
			t.Fatalf("expected expired hold not to block the identical window")
		}
	})

	t.Run("live pending hold blocks", func(t *testing.T) {
		existing := []domain.Reservation{slot("r1", at(10), at(12), domain.ReservationPending, &future)}
		if _, ok := CheckAvailability(ResolveWindow(at(11), at(13), 0), existing, 0, now); ok {
			t.Fatalf("expected live hold to conflict")
		}
	})

	t.Run("released statuses are skipped", func(t *testing.T) {
		existing := []domain.Reservation{
			slot("r1", at(10), at(12), domain.ReservationCancelled, nil),
			slot("r2", at(10), at(12), domain.ReservationCompleted, nil),
			slot("r3", at(10), at(12), domain.ReservationExpired, nil),
		}
		if _, ok := CheckAvailability(ResolveWindow(at(10), at(12), 0), existing, 0, now); !ok {
			t.Fatalf("expected released reservations not to block")
		}
	})

	t.Run("date range candidates conflict with date range windows", func(t *testing.T) {
		checkIn := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		checkOut := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
		existing := []domain.Reservation{{
			ID:       "r1",
			Shape:    domain.ShapeDateRange,
			CheckIn:  &checkIn,
			CheckOut: &checkOut,
			Status:   domain.ReservationConfirmed,
		}}

		incoming := ResolveWindow(
			time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC),
			0,
		)
		if _, ok := CheckAvailability(incoming, existing, 0, now); ok {
			t.Fatalf("expected overlapping stay to conflict")
		}

		adjacent := ResolveWindow(
			time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC),
			0,
		)
		if _, ok := CheckAvailability(adjacent, existing, 0, now); !ok {
			t.Fatalf("expected same-day turnover to be available")
		}
	})
}
