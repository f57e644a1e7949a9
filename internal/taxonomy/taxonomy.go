// Package taxonomy maps a resource's commercial mode to its booking profile:
// which booking shape applies, which feature modules must be on, and whether
// the flow requires online payment. The mapping is owned by the catalog side;
// this is a read-only consultation.
package taxonomy

import (
	"github.com/raulbellosom/travel-sub002/internal/domain"
	"github.com/raulbellosom/travel-sub002/internal/entitlement"
)

// Profile is the resolved booking behavior for one resource.
type Profile struct {
	Shape           domain.BookingShape
	BookingModule   string
	RequiresPayment bool
	ContactOnly     bool
}

// Resolver resolves a resource's profile once per admission; every gate after
// the resource fetch reuses the result.
type Resolver interface {
	Profile(res domain.Resource) (Profile, error)
}

// Static is the built-in mode table. Sale and long-term rent close over
// direct contact; short-term rent books date ranges through the bookings
// module; hourly rent books time slots through the scheduling module. A
// resource can force contact-only regardless of mode.
type Static struct{}

func NewStatic() Static {
	return Static{}
}

func (Static) Profile(res domain.Resource) (Profile, error) {
	var p Profile
	switch res.CommercialMode {
	case domain.ModeSale, domain.ModeRentLongTerm:
		p = Profile{Shape: domain.ShapeDateRange, ContactOnly: true}
	case domain.ModeRentShortTerm:
		p = Profile{
			Shape:           domain.ShapeDateRange,
			BookingModule:   entitlement.ModuleBookings,
			RequiresPayment: true,
		}
	case domain.ModeRentHourly:
		p = Profile{
			Shape:           domain.ShapeTimeSlot,
			BookingModule:   entitlement.ModuleScheduling,
			RequiresPayment: true,
		}
	default:
		return Profile{}, domain.ErrResourceUnavailable
	}
	if res.ContactOnly {
		p.ContactOnly = true
	}
	return p, nil
}
