package domain

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationExpired   ReservationStatus = "expired"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// BookingShape distinguishes date-pair bookings from timestamp-pair bookings.
type BookingShape string

const (
	ShapeDateRange  BookingShape = "date_range"
	ShapeTimeSlot   BookingShape = "time_slot"
	ShapeFixedEvent BookingShape = "fixed_event"
)

// SlotBased reports whether the shape uses a start/end timestamp pair rather
// than a check-in/check-out date pair.
func (s BookingShape) SlotBased() bool {
	return s == ShapeTimeSlot || s == ShapeFixedEvent
}

// Reservation is one admitted booking request. Created pending/unpaid with a
// hold expiry; payment and moderation flows transition it later.
type Reservation struct {
	ID         string
	ResourceID string

	GuestID    string
	GuestName  string
	GuestEmail string
	GuestPhone string

	Shape    BookingShape
	CheckIn  *time.Time
	CheckOut *time.Time
	StartsAt *time.Time
	EndsAt   *time.Time

	GuestCount int
	Nights     int

	BaseCents  Cents
	FeesCents  Cents
	TaxCents   Cents
	TotalCents Cents
	Currency   string

	Status        ReservationStatus
	PaymentStatus PaymentStatus
	HoldExpiresAt *time.Time
	ExternalRef   string
	Enabled       bool
	CreatedAt     time.Time
}

// WindowBounds returns the raw start/end of the reservation's occupied time,
// regardless of shape. ok is false when the temporal fields are incomplete.
func (r Reservation) WindowBounds() (start, end time.Time, ok bool) {
	if r.Shape.SlotBased() {
		if r.StartsAt == nil || r.EndsAt == nil {
			return time.Time{}, time.Time{}, false
		}
		return *r.StartsAt, *r.EndsAt, true
	}
	if r.CheckIn == nil || r.CheckOut == nil {
		return time.Time{}, time.Time{}, false
	}
	return *r.CheckIn, *r.CheckOut, true
}

// ClientRef formats a client idempotency token as stored in ExternalRef.
func ClientRef(token string) string {
	return "client:" + token
}
