package domain

// PricingModel describes how a resource's unit price applies to a booking.
type PricingModel string

const (
	PricingPerNight PricingModel = "per_night"
	PricingPerDay   PricingModel = "per_day"
	PricingFixed    PricingModel = "fixed"
)

// CommercialMode is the resource's monetization mode. It determines the booking
// shape, the feature modules that must be enabled, and whether online payment
// is required.
type CommercialMode string

const (
	ModeSale          CommercialMode = "sale"
	ModeRentLongTerm  CommercialMode = "rent_long_term"
	ModeRentShortTerm CommercialMode = "rent_short_term"
	ModeRentHourly    CommercialMode = "rent_hourly"
)

// Resource is a bookable listing. It is owned by the catalog side of the
// marketplace and read-only here, except for ReservationCount which the
// admission flow increments after a successful create.
type Resource struct {
	ID                string
	OwnerID           string
	Published         bool
	Enabled           bool
	PriceCents        Cents
	PricingModel      PricingModel
	Currency          string
	MaxGuests         int
	SlotBufferMinutes int
	CommercialMode    CommercialMode
	ContactOnly       bool
	ReservationCount  int
}
