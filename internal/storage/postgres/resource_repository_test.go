package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/raulbellosom/travel-sub002/internal/domain"
	"github.com/raulbellosom/travel-sub002/internal/testutil"
)

func TestResourceRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	ownerID := testutil.InsertUser(t, ctx, pool, "owner@example.com", true)
	resourceID := testutil.InsertResource(t, ctx, pool, ownerID, 150000, 30)

	repo := NewResourceRepository(pool)

	t.Run("get round trip", func(t *testing.T) {
		got, err := repo.Get(ctx, resourceID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.OwnerID != ownerID {
			t.Fatalf("owner mismatch: %q", got.OwnerID)
		}
		if got.PriceCents != 150000 || got.PricingModel != domain.PricingPerNight {
			t.Fatalf("pricing mismatch: %+v", got)
		}
		if got.SlotBufferMinutes != 30 || got.MaxGuests != 6 {
			t.Fatalf("limits mismatch: %+v", got)
		}
		if got.CommercialMode != domain.ModeRentShortTerm {
			t.Fatalf("mode mismatch: %s", got.CommercialMode)
		}
		if !got.Published || !got.Enabled {
			t.Fatalf("expected seeded resource live, got %+v", got)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if _, err := repo.Get(ctx, uuid.NewString()); !errors.Is(err, domain.ErrResourceNotFound) {
			t.Fatalf("expected ErrResourceNotFound, got %v", err)
		}
		if _, err := repo.Get(ctx, "not-a-uuid"); !errors.Is(err, domain.ErrResourceNotFound) {
			t.Fatalf("expected ErrResourceNotFound for malformed id, got %v", err)
		}
	})

	t.Run("increment reservation count", func(t *testing.T) {
		if err := repo.IncrementReservationCount(ctx, resourceID); err != nil {
			t.Fatalf("increment: %v", err)
		}
		if err := repo.IncrementReservationCount(ctx, resourceID); err != nil {
			t.Fatalf("increment again: %v", err)
		}

		got, err := repo.Get(ctx, resourceID)
		if err != nil {
			t.Fatalf("get after increment: %v", err)
		}
		if got.ReservationCount != 2 {
			t.Fatalf("expected count 2, got %d", got.ReservationCount)
		}

		if err := repo.IncrementReservationCount(ctx, uuid.NewString()); !errors.Is(err, domain.ErrResourceNotFound) {
			t.Fatalf("expected ErrResourceNotFound for unknown id, got %v", err)
		}
	})
}
