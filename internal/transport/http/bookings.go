package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/raulbellosom/travel-sub002/internal/app"
	"github.com/raulbellosom/travel-sub002/internal/domain"
	"github.com/raulbellosom/travel-sub002/internal/entitlement"
)

// Admitter is the minimal interface needed to admit a booking request.
type Admitter interface {
	Admit(ctx context.Context, in app.AdmitInput) (app.AdmitResult, error)
}

// ReservationGetter is the minimal interface needed to fetch a reservation.
type ReservationGetter interface {
	GetReservation(ctx context.Context, id, guestID string) (domain.Reservation, error)
}

// AdmissionObserver receives the outcome of each admission attempt.
type AdmissionObserver interface {
	ObserveAdmission(outcome string, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveAdmission(string, time.Duration) {}

// HandleCreateBooking returns the handler for the admission endpoint.
func HandleCreateBooking(svc Admitter, obs AdmissionObserver) http.HandlerFunc {
	if obs == nil {
		obs = nopObserver{}
	}
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()

		var req createBookingRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			obs.ObserveAdmission("rejected", time.Since(started))
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		in, err := req.toInput(GuestID(r.Context()))
		if err != nil {
			obs.ObserveAdmission("rejected", time.Since(started))
			writeDomainError(w, err)
			return
		}

		res, err := svc.Admit(r.Context(), in)
		if err != nil {
			obs.ObserveAdmission(outcomeFor(err), time.Since(started))
			writeDomainError(w, err)
			return
		}

		if res.Reused {
			obs.ObserveAdmission("reused", time.Since(started))
		} else {
			obs.ObserveAdmission("admitted", time.Since(started))
		}

		w.Header().Set("Content-Type", "application/json")
		if res.Reused {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusCreated)
		}
		_ = json.NewEncoder(w).Encode(toBookingResponse(res.Reservation, res.Reused))
	}
}

// HandleGetBooking returns the handler for fetching one reservation.
func HandleGetBooking(svc ReservationGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		reservation, err := svc.GetReservation(r.Context(), id, GuestID(r.Context()))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(toBookingResponse(reservation, false))
	}
}

type createBookingRequest struct {
	ResourceID  string          `json:"resource_id"`
	GuestCount  int             `json:"guest_count"`
	Currency    string          `json:"currency"`
	Shape       string          `json:"shape"`
	CheckIn     string          `json:"check_in"`
	CheckOut    string          `json:"check_out"`
	StartsAt    string          `json:"starts_at"`
	EndsAt      string          `json:"ends_at"`
	Fees        json.RawMessage `json:"fees"`
	Tax         json.RawMessage `json:"tax"`
	ClientToken string          `json:"client_token"`
}

func (r createBookingRequest) toInput(guestID string) (app.AdmitInput, error) {
	if r.ResourceID == "" {
		return app.AdmitInput{}, domain.ErrResourceNotFound
	}

	fees, err := parseAmount(r.Fees)
	if err != nil {
		return app.AdmitInput{}, domain.ErrInvalidAmount
	}
	tax, err := parseAmount(r.Tax)
	if err != nil {
		return app.AdmitInput{}, domain.ErrInvalidAmount
	}

	in := app.AdmitInput{
		GuestID:     guestID,
		ResourceID:  r.ResourceID,
		GuestCount:  r.GuestCount,
		Currency:    r.Currency,
		Shape:       domain.BookingShape(r.Shape),
		Fees:        fees,
		Tax:         tax,
		ClientToken: r.ClientToken,
	}

	if in.CheckIn, err = parseTimeField(r.CheckIn); err != nil {
		return app.AdmitInput{}, domain.ErrInvalidWindow
	}
	if in.CheckOut, err = parseTimeField(r.CheckOut); err != nil {
		return app.AdmitInput{}, domain.ErrInvalidWindow
	}
	if in.StartsAt, err = parseTimeField(r.StartsAt); err != nil {
		return app.AdmitInput{}, domain.ErrInvalidWindow
	}
	if in.EndsAt, err = parseTimeField(r.EndsAt); err != nil {
		return app.AdmitInput{}, domain.ErrInvalidWindow
	}
	return in, nil
}

// parseAmount accepts fees/tax as a JSON number or a decimal string; an
// absent field means zero.
func parseAmount(raw json.RawMessage) (domain.Cents, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal(raw, &unquoted); err != nil {
			return 0, err
		}
		s = unquoted
	}
	return domain.ParseCents(s)
}

// parseTimeField accepts RFC 3339 timestamps and bare dates.
func parseTimeField(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}

type bookingResponse struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	Shape         string     `json:"shape"`
	CheckIn       *time.Time `json:"check_in,omitempty"`
	CheckOut      *time.Time `json:"check_out,omitempty"`
	StartsAt      *time.Time `json:"starts_at,omitempty"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
	GuestCount    int        `json:"guest_count"`
	Nights        int        `json:"nights"`
	Base          string     `json:"base"`
	Fees          string     `json:"fees"`
	Tax           string     `json:"tax"`
	Total         string     `json:"total"`
	Currency      string     `json:"currency"`
	HoldExpiresAt *time.Time `json:"hold_expires_at,omitempty"`
	Reused        bool       `json:"reused"`
}

func toBookingResponse(r domain.Reservation, reused bool) bookingResponse {
	return bookingResponse{
		ID:            r.ID,
		Status:        string(r.Status),
		PaymentStatus: string(r.PaymentStatus),
		Shape:         string(r.Shape),
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		StartsAt:      r.StartsAt,
		EndsAt:        r.EndsAt,
		GuestCount:    r.GuestCount,
		Nights:        r.Nights,
		Base:          r.BaseCents.String(),
		Fees:          r.FeesCents.String(),
		Tax:           r.TaxCents.String(),
		Total:         r.TotalCents.String(),
		Currency:      r.Currency,
		HoldExpiresAt: r.HoldExpiresAt,
		Reused:        reused,
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	var moduleErr *entitlement.ModuleDisabledError
	if errors.As(err, &moduleErr) {
		writeModuleDisabled(w, moduleErr.Module)
		return
	}
	var limitErr *entitlement.LimitExceededError
	if errors.As(err, &limitErr) {
		writeLimitExceeded(w, limitErr.Key, limitErr.Limit, limitErr.Current)
		return
	}

	switch {
	case errors.Is(err, domain.ErrAuthRequired):
		writeError(w, http.StatusUnauthorized, codeAuthRequired, err.Error())
	case errors.Is(err, domain.ErrEmailUnverified):
		writeError(w, http.StatusUnauthorized, codeEmailUnverified, err.Error())
	case errors.Is(err, domain.ErrResourceNotFound):
		writeError(w, http.StatusNotFound, codeResourceNotFound, err.Error())
	case errors.Is(err, domain.ErrReservationNotFound):
		writeError(w, http.StatusNotFound, codeReservationNotFound, err.Error())
	case errors.Is(err, domain.ErrResourceUnavailable):
		writeError(w, http.StatusNotFound, codeResourceUnavailable, err.Error())
	case errors.Is(err, domain.ErrContactOnly):
		writeError(w, http.StatusForbidden, codeContactOnly, err.Error())
	case errors.Is(err, domain.ErrInvalidGuestCount):
		writeError(w, http.StatusBadRequest, codeInvalidGuestCount, err.Error())
	case errors.Is(err, domain.ErrInvalidShape):
		writeError(w, http.StatusBadRequest, codeInvalidShape, err.Error())
	case errors.Is(err, domain.ErrInvalidWindow):
		writeError(w, http.StatusBadRequest, codeInvalidWindow, err.Error())
	case errors.Is(err, domain.ErrNightsOutOfRange):
		writeError(w, http.StatusBadRequest, codeNightsOutOfRange, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, codeInvalidAmount, err.Error())
	case errors.Is(err, domain.ErrCurrencyUnsupported):
		writeError(w, http.StatusBadRequest, codeCurrencyUnsupported, err.Error())
	case errors.Is(err, domain.ErrWindowConflict):
		writeError(w, http.StatusConflict, codeWindowConflict, err.Error())
	case errors.Is(err, domain.ErrUnpricedResource), errors.Is(err, domain.ErrMissingOwner):
		// Configuration problems on the resource are the owner's to fix; the
		// guest only learns the booking cannot be taken.
		writeError(w, http.StatusInternalServerError, codeResourceMisconfig, "resource is misconfigured")
	default:
		log.Printf("ERROR: admission failed: %v", err)
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrWindowConflict):
		return "conflict"
	case errors.Is(err, domain.ErrAuthRequired),
		errors.Is(err, domain.ErrEmailUnverified),
		errors.Is(err, domain.ErrResourceNotFound),
		errors.Is(err, domain.ErrResourceUnavailable),
		errors.Is(err, domain.ErrContactOnly),
		errors.Is(err, domain.ErrInvalidGuestCount),
		errors.Is(err, domain.ErrInvalidShape),
		errors.Is(err, domain.ErrInvalidWindow),
		errors.Is(err, domain.ErrNightsOutOfRange),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrCurrencyUnsupported):
		return "rejected"
	default:
		var moduleErr *entitlement.ModuleDisabledError
		var limitErr *entitlement.LimitExceededError
		if errors.As(err, &moduleErr) || errors.As(err, &limitErr) {
			return "rejected"
		}
		return "error"
	}
}
