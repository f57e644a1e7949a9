package app

import (
	"math"
	"time"

	"github.com/raulbellosom/travel-sub002/internal/domain"
)

const (
	minNights = 1
	maxNights = 365
)

// Quote is the priced outcome of an admission request.
type Quote struct {
	Nights   int
	Base     domain.Cents
	Fees     domain.Cents
	Tax      domain.Cents
	Total    domain.Cents
	Currency string
}

// NightCount computes the night/day count for a date-range booking:
// ceil((checkOut - checkIn) / 24h). The result must lie in [1, 365]; anything
// outside is a rejected request, never a clamp.
func NightCount(checkIn, checkOut time.Time) (int, error) {
	if !checkOut.After(checkIn) {
		return 0, domain.ErrNightsOutOfRange
	}
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < minNights || nights > maxNights {
		return 0, domain.ErrNightsOutOfRange
	}
	return nights, nil
}

// Price computes base/fees/tax/total for a booking against a resource.
//
// The unit amount is the resource price, which must be positive: an unpriced
// resource is a configuration error, not a free booking. The night multiplier
// applies only to date-range bookings under per-night/per-day pricing and
// never drops below 1; fixed-priced resources charge the unit amount
// regardless of stay length. The request's explicit currency wins over the
// resource's configured one.
func Price(res domain.Resource, shape domain.BookingShape, nights int, fees, tax domain.Cents, requestCurrency string) (Quote, error) {
	if res.PriceCents <= 0 {
		return Quote{}, domain.ErrUnpricedResource
	}
	if fees < 0 || tax < 0 {
		return Quote{}, domain.ErrInvalidAmount
	}

	currency := res.Currency
	if requestCurrency != "" {
		currency = requestCurrency
	}
	if !domain.SupportedCurrency(currency) {
		return Quote{}, domain.ErrCurrencyUnsupported
	}

	multiplier := 1
	if shape == domain.ShapeDateRange &&
		(res.PricingModel == domain.PricingPerNight || res.PricingModel == domain.PricingPerDay) {
		multiplier = nights
		if multiplier < 1 {
			multiplier = 1
		}
	}

	base := res.PriceCents.Mul(multiplier)
	return Quote{
		Nights:   nights,
		Base:     base,
		Fees:     fees,
		Tax:      tax,
		Total:    base + fees + tax,
		Currency: currency,
	}, nil
}
