package entitlement

import (
	"context"
	"errors"
	"testing"
)

func TestStaticRequireModule(t *testing.T) {
	t.Parallel()

	svc := NewStatic([]string{ModuleScheduling}, nil)
	ctx := context.Background()

	if err := svc.RequireModule(ctx, ModuleBookings); err != nil {
		t.Fatalf("expected bookings enabled, got %v", err)
	}

	err := svc.RequireModule(ctx, ModuleScheduling)
	var disabled *ModuleDisabledError
	if !errors.As(err, &disabled) {
		t.Fatalf("expected ModuleDisabledError, got %v", err)
	}
	if disabled.Module != ModuleScheduling {
		t.Fatalf("expected module %q, got %q", ModuleScheduling, disabled.Module)
	}
}

func TestStaticLimits(t *testing.T) {
	t.Parallel()

	svc := NewStatic(nil, map[string]int{LimitReservationsPerMonth: 2})
	ctx := context.Background()

	if got := svc.NumericLimit(ctx, LimitReservationsPerMonth, 20); got != 2 {
		t.Fatalf("expected configured limit 2, got %d", got)
	}
	if got := svc.NumericLimit(ctx, "unknown_key", 7); got != 7 {
		t.Fatalf("expected default 7 for unset key, got %d", got)
	}

	if err := svc.AssertWithinLimit(ctx, LimitReservationsPerMonth, 1, 20); err != nil {
		t.Fatalf("expected 1/2 within limit, got %v", err)
	}

	err := svc.AssertWithinLimit(ctx, LimitReservationsPerMonth, 2, 20)
	var exceeded *LimitExceededError
	if !errors.As(err, &exceeded) {
		t.Fatalf("expected LimitExceededError, got %v", err)
	}
	if exceeded.Limit != 2 || exceeded.Current != 2 {
		t.Fatalf("unexpected error detail %+v", exceeded)
	}
}

func TestStaticZeroLimitIsUnlimited(t *testing.T) {
	t.Parallel()

	svc := NewStatic(nil, map[string]int{LimitReservationsPerMonth: 0})
	if err := svc.AssertWithinLimit(context.Background(), LimitReservationsPerMonth, 1000, 20); err != nil {
		t.Fatalf("expected zero limit to mean unlimited, got %v", err)
	}
}
