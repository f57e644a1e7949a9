package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/raulbellosom/travel-sub002/internal/activity"
	"github.com/raulbellosom/travel-sub002/internal/clock"
	"github.com/raulbellosom/travel-sub002/internal/domain"
	"github.com/raulbellosom/travel-sub002/internal/entitlement"
	"github.com/raulbellosom/travel-sub002/internal/identity"
	"github.com/raulbellosom/travel-sub002/internal/taxonomy"
)

type ReservationRepository interface {
	ListCandidates(ctx context.Context, resourceID string, limit int) ([]domain.Reservation, error)
	FindPendingByClientRef(ctx context.Context, resourceID, guestID, externalRef string) (*domain.Reservation, error)
	CountActiveForGuestSince(ctx context.Context, guestID string, since time.Time) (int, error)
	Create(ctx context.Context, r domain.Reservation) error
	GetByID(ctx context.Context, id string) (domain.Reservation, error)
}

type ResourceRepository interface {
	Get(ctx context.Context, id string) (domain.Resource, error)
	IncrementReservationCount(ctx context.Context, id string) error
}

const (
	defaultHoldTTL      = 30 * time.Minute
	defaultMonthlyLimit = 20
)

// AdmissionService decides whether a booking request can be admitted, prices
// it, and creates the pending reservation. Every gate before the create step
// is read-only; the create, the resource counter increment, and the activity
// record are the only side effects.
type AdmissionService struct {
	reservations ReservationRepository
	resources    ResourceRepository
	users        identity.Provider
	entitlements entitlement.Service
	modes        taxonomy.Resolver
	recorder     activity.Recorder
	locker       Locker
	clock        clock.Clock

	holdTTL      time.Duration
	monthlyLimit int
}

type AdmissionServiceOption func(*AdmissionService)

// WithHoldTTL overrides how long a pending reservation holds its window.
func WithHoldTTL(d time.Duration) AdmissionServiceOption {
	return func(s *AdmissionService) {
		if d > 0 {
			s.holdTTL = d
		}
	}
}

// WithMonthlyLimitDefault overrides the fallback monthly reservation cap used
// when the entitlement service has no configured value.
func WithMonthlyLimitDefault(n int) AdmissionServiceOption {
	return func(s *AdmissionService) {
		if n > 0 {
			s.monthlyLimit = n
		}
	}
}

func NewAdmissionService(
	reservations ReservationRepository,
	resources ResourceRepository,
	users identity.Provider,
	entitlements entitlement.Service,
	modes taxonomy.Resolver,
	recorder activity.Recorder,
	locker Locker,
	clk clock.Clock,
	opts ...AdmissionServiceOption,
) *AdmissionService {
	svc := &AdmissionService{
		reservations: reservations,
		resources:    resources,
		users:        users,
		entitlements: entitlements,
		modes:        modes,
		recorder:     recorder,
		locker:       locker,
		clock:        clk,
		holdTTL:      defaultHoldTTL,
		monthlyLimit: defaultMonthlyLimit,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type AdmitInput struct {
	GuestID    string
	ResourceID string
	GuestCount int
	Currency   string

	Shape    domain.BookingShape
	CheckIn  *time.Time
	CheckOut *time.Time
	StartsAt *time.Time
	EndsAt   *time.Time

	Fees domain.Cents
	Tax  domain.Cents

	ClientToken string
}

type AdmitResult struct {
	Reservation domain.Reservation
	Reused      bool
}

// Admit runs the full admission lifecycle. Gates run in a fixed order and
// each failure aborts with a typed error; an idempotent hit short-circuits to
// success with the previously created reservation.
func (s *AdmissionService) Admit(ctx context.Context, in AdmitInput) (AdmitResult, error) {
	if in.GuestID == "" {
		return AdmitResult{}, domain.ErrAuthRequired
	}

	user, err := s.users.GetUser(ctx, in.GuestID)
	if err != nil {
		return AdmitResult{}, fmt.Errorf("identity lookup: %w", err)
	}
	if user.Email == "" || !user.EmailVerified {
		return AdmitResult{}, domain.ErrEmailUnverified
	}

	if err := s.entitlements.RequireModule(ctx, entitlement.ModuleResources); err != nil {
		return AdmitResult{}, err
	}

	res, err := s.resources.Get(ctx, in.ResourceID)
	if err != nil {
		return AdmitResult{}, err
	}
	if !res.Published || !res.Enabled {
		return AdmitResult{}, domain.ErrResourceUnavailable
	}
	if res.OwnerID == "" {
		return AdmitResult{}, domain.ErrMissingOwner
	}

	profile, err := s.modes.Profile(res)
	if err != nil {
		return AdmitResult{}, err
	}
	if profile.BookingModule != "" {
		if err := s.entitlements.RequireModule(ctx, profile.BookingModule); err != nil {
			return AdmitResult{}, err
		}
	}
	if profile.ContactOnly {
		return AdmitResult{}, domain.ErrContactOnly
	}
	if profile.RequiresPayment {
		if err := s.entitlements.RequireModule(ctx, entitlement.ModulePayments); err != nil {
			return AdmitResult{}, err
		}
	}

	now := s.clock.Now()

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	active, err := s.reservations.CountActiveForGuestSince(ctx, in.GuestID, monthStart)
	if err != nil {
		return AdmitResult{}, fmt.Errorf("count active reservations: %w", err)
	}
	if err := s.entitlements.AssertWithinLimit(ctx, entitlement.LimitReservationsPerMonth, active, s.monthlyLimit); err != nil {
		return AdmitResult{}, err
	}

	if in.GuestCount < 1 || (res.MaxGuests > 0 && in.GuestCount > res.MaxGuests) {
		return AdmitResult{}, domain.ErrInvalidGuestCount
	}

	if reused := resolveIdempotent(ctx, s.reservations, in.ResourceID, in.GuestID, in.ClientToken, now); reused != nil {
		s.recorder.Record(s.event(activity.EventReservationReused, *reused, now))
		return AdmitResult{Reservation: *reused, Reused: true}, nil
	}

	shape := in.Shape
	if shape == "" {
		shape = profile.Shape
	}
	if shape.SlotBased() != profile.Shape.SlotBased() {
		return AdmitResult{}, domain.ErrInvalidShape
	}

	start, end, nights, err := resolveTemporalFields(shape, in)
	if err != nil {
		return AdmitResult{}, err
	}

	if in.Fees < 0 || in.Tax < 0 {
		return AdmitResult{}, domain.ErrInvalidAmount
	}

	unlock, err := s.locker.Lock(ctx, in.ResourceID)
	if err != nil {
		return AdmitResult{}, fmt.Errorf("acquire admission lock: %w", err)
	}
	defer unlock()

	candidates, err := s.reservations.ListCandidates(ctx, in.ResourceID, candidateLimit)
	if err != nil {
		return AdmitResult{}, fmt.Errorf("list candidates: %w", err)
	}
	incoming := ResolveWindow(start, end, res.SlotBufferMinutes)
	if conflictID, ok := CheckAvailability(incoming, candidates, res.SlotBufferMinutes, now); !ok {
		log.Printf("admission conflict resource=%s guest=%s against=%s", in.ResourceID, in.GuestID, conflictID)
		return AdmitResult{}, domain.ErrWindowConflict
	}

	quote, err := Price(res, shape, nights, in.Fees, in.Tax, in.Currency)
	if err != nil {
		return AdmitResult{}, err
	}

	holdExpiry := now.Add(s.holdTTL)
	reservation := domain.Reservation{
		ID:            uuid.NewString(),
		ResourceID:    res.ID,
		GuestID:       user.ID,
		GuestName:     user.Name,
		GuestEmail:    user.Email,
		GuestPhone:    user.Phone,
		Shape:         shape,
		GuestCount:    in.GuestCount,
		Nights:        quote.Nights,
		BaseCents:     quote.Base,
		FeesCents:     quote.Fees,
		TaxCents:      quote.Tax,
		TotalCents:    quote.Total,
		Currency:      quote.Currency,
		Status:        domain.ReservationPending,
		PaymentStatus: domain.PaymentUnpaid,
		HoldExpiresAt: &holdExpiry,
		Enabled:       true,
		CreatedAt:     now,
	}
	if shape.SlotBased() {
		reservation.StartsAt = &start
		reservation.EndsAt = &end
	} else {
		reservation.CheckIn = &start
		reservation.CheckOut = &end
	}
	if in.ClientToken != "" {
		reservation.ExternalRef = domain.ClientRef(in.ClientToken)
	}

	if err := s.reservations.Create(ctx, reservation); err != nil {
		return AdmitResult{}, fmt.Errorf("create reservation: %w", err)
	}

	// The reservation wins: a failed counter bump is logged, never rolled back.
	if err := s.resources.IncrementReservationCount(ctx, res.ID); err != nil {
		log.Printf("WARN: reservation counter increment failed resource=%s: %v", res.ID, err)
	}

	s.recorder.Record(s.event(activity.EventReservationCreated, reservation, now))

	return AdmitResult{Reservation: reservation}, nil
}

// GetReservation fetches a reservation for its own guest. Other guests get
// not-found rather than a hint the id exists.
func (s *AdmissionService) GetReservation(ctx context.Context, id, guestID string) (domain.Reservation, error) {
	if guestID == "" {
		return domain.Reservation{}, domain.ErrAuthRequired
	}
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, err
	}
	if r.GuestID != guestID || !r.Enabled {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	return r, nil
}

func resolveTemporalFields(shape domain.BookingShape, in AdmitInput) (start, end time.Time, nights int, err error) {
	if shape.SlotBased() {
		if in.StartsAt == nil || in.EndsAt == nil {
			return time.Time{}, time.Time{}, 0, domain.ErrInvalidWindow
		}
		if !in.EndsAt.After(*in.StartsAt) {
			return time.Time{}, time.Time{}, 0, domain.ErrInvalidWindow
		}
		return in.StartsAt.UTC(), in.EndsAt.UTC(), 0, nil
	}

	if in.CheckIn == nil || in.CheckOut == nil {
		return time.Time{}, time.Time{}, 0, domain.ErrInvalidWindow
	}
	nights, err = NightCount(*in.CheckIn, *in.CheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	return in.CheckIn.UTC(), in.CheckOut.UTC(), nights, nil
}

func (s *AdmissionService) event(typ string, r domain.Reservation, now time.Time) activity.Event {
	return activity.Event{
		ID:            uuid.NewString(),
		Type:          typ,
		ReservationID: r.ID,
		ResourceID:    r.ResourceID,
		GuestID:       r.GuestID,
		Total:         r.TotalCents.String(),
		Currency:      r.Currency,
		OccurredAt:    now,
	}
}
