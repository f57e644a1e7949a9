package domain

import "errors"

var (
	ErrAuthRequired    = errors.New("authentication required")
	ErrEmailUnverified = errors.New("verified email required")

	ErrResourceNotFound    = errors.New("resource not found")
	ErrResourceUnavailable = errors.New("resource unavailable")
	ErrContactOnly         = errors.New("resource accepts manual contact only")

	ErrInvalidGuestCount   = errors.New("invalid guest count")
	ErrInvalidShape        = errors.New("booking shape not allowed for resource")
	ErrInvalidWindow       = errors.New("invalid booking window")
	ErrNightsOutOfRange    = errors.New("night count out of range")
	ErrInvalidAmount       = errors.New("invalid monetary amount")
	ErrCurrencyUnsupported = errors.New("unsupported currency")

	ErrWindowConflict = errors.New("window conflicts with an existing reservation")

	ErrUnpricedResource = errors.New("resource has no positive price")
	ErrMissingOwner     = errors.New("resource has no owner")

	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidID           = errors.New("invalid id")
)
