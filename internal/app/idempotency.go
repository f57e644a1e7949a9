package app

import (
	"context"
	"log"
	"time"

	"github.com/raulbellosom/travel-sub002/internal/domain"
)

// pendingFinder is the slice of the reservation repository the idempotency
// lookup needs.
type pendingFinder interface {
	FindPendingByClientRef(ctx context.Context, resourceID, guestID, externalRef string) (*domain.Reservation, error)
}

// resolveIdempotent returns a previously created pending reservation for the
// same resource, guest, and client token, provided its hold is still live. An
// expired hold is not reusable; the caller falls through and creates a fresh
// reservation.
//
// A store failure here degrades to "no match" instead of failing the request:
// the worst case is a double submission, which is preferred over rejecting a
// valid booking on a transient read error.
func resolveIdempotent(ctx context.Context, repo pendingFinder, resourceID, guestID, token string, now time.Time) *domain.Reservation {
	if token == "" {
		return nil
	}

	found, err := repo.FindPendingByClientRef(ctx, resourceID, guestID, domain.ClientRef(token))
	if err != nil {
		log.Printf("WARN: idempotency lookup failed resource=%s guest=%s: %v", resourceID, guestID, err)
		return nil
	}
	if found == nil {
		return nil
	}
	if found.PaymentStatus != domain.PaymentUnpaid || !found.Enabled {
		return nil
	}
	if !Blocks(found.Status, found.HoldExpiresAt, now) {
		return nil
	}
	return found
}
