// Package entitlement is the consulted contract of the feature-flag/limit
// service. The decision logic itself lives outside this service; admission
// only asks "is this module on" and "is this count within the plan limit".
package entitlement

import (
	"context"
	"fmt"
)

// Module and limit keys consulted during admission.
const (
	ModuleResources  = "resources"
	ModuleBookings   = "bookings"
	ModuleScheduling = "scheduling"
	ModulePayments   = "payments"

	LimitReservationsPerMonth = "reservations_per_month"
)

// ModuleDisabledError signals that a required feature module is off for the
// tenant. Transport renders it as a 403-class response with its own shape.
type ModuleDisabledError struct {
	Module string
}

func (e *ModuleDisabledError) Error() string {
	return fmt.Sprintf("module %s is disabled", e.Module)
}

// LimitExceededError signals that a numeric plan limit was hit.
type LimitExceededError struct {
	Key     string
	Limit   int
	Current int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("limit %s exceeded (%d/%d)", e.Key, e.Current, e.Limit)
}

// Service is what admission consults. Implementations are external; the
// static one below exists for single-tenant deploys and tests.
type Service interface {
	// RequireModule returns *ModuleDisabledError when the module is off.
	RequireModule(ctx context.Context, module string) error
	// NumericLimit returns the configured limit for key, or def when unset.
	NumericLimit(ctx context.Context, key string, def int) int
	// AssertWithinLimit returns *LimitExceededError when current has reached
	// the limit for key.
	AssertWithinLimit(ctx context.Context, key string, current, def int) error
}

// Static is an env-driven Service: a set of disabled modules and a map of
// numeric limits.
type Static struct {
	disabled map[string]bool
	limits   map[string]int
}

func NewStatic(disabledModules []string, limits map[string]int) *Static {
	d := make(map[string]bool, len(disabledModules))
	for _, m := range disabledModules {
		d[m] = true
	}
	if limits == nil {
		limits = map[string]int{}
	}
	return &Static{disabled: d, limits: limits}
}

func (s *Static) RequireModule(_ context.Context, module string) error {
	if s.disabled[module] {
		return &ModuleDisabledError{Module: module}
	}
	return nil
}

func (s *Static) NumericLimit(_ context.Context, key string, def int) int {
	if v, ok := s.limits[key]; ok {
		return v
	}
	return def
}

func (s *Static) AssertWithinLimit(ctx context.Context, key string, current, def int) error {
	limit := s.NumericLimit(ctx, key, def)
	if limit > 0 && current >= limit {
		return &LimitExceededError{Key: key, Limit: limit, Current: current}
	}
	return nil
}
