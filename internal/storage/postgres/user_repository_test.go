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

func TestUserRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := NewUserRepository(pool)
	userID := testutil.InsertUser(t, ctx, pool, "verified@example.com", true)

	t.Run("get round trip", func(t *testing.T) {
		got, err := repo.GetUser(ctx, userID)
		if err != nil {
			t.Fatalf("get user: %v", err)
		}
		if got.ID != userID || got.Email != "verified@example.com" || !got.EmailVerified {
			t.Fatalf("unexpected user %+v", got)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := repo.GetUser(ctx, uuid.NewString()); !errors.Is(err, domain.ErrAuthRequired) {
			t.Fatalf("expected ErrAuthRequired, got %v", err)
		}
		if _, err := repo.GetUser(ctx, "not-a-uuid"); !errors.Is(err, domain.ErrAuthRequired) {
			t.Fatalf("expected ErrAuthRequired for malformed id, got %v", err)
		}
	})
}
