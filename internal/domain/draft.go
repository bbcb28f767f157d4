package domain

import (
	"math"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// LocationType defines where the service is performed and which address
// fields are required before submission
type LocationType string

const (
	LocationClientAddress    LocationType = "client_address"
	LocationProviderLocation LocationType = "provider_location"
	LocationCustomLocation   LocationType = "custom_location"
)

// RequiresAddress returns true if the location type requires a physical
// address and city before the draft is submittable
func (lt LocationType) RequiresAddress() bool {
	return lt == LocationClientAddress || lt == LocationCustomLocation
}

// IsValid returns true for a known location type
func (lt LocationType) IsValid() bool {
	switch lt {
	case LocationClientAddress, LocationProviderLocation, LocationCustomLocation:
		return true
	}
	return false
}

// BookingDraft is the in-progress appointment assembled across wizard steps
// The draft is a value: each step transition produces an updated copy, the
// session never mutates a draft shared with the caller.
type BookingDraft struct {
	ServiceID  int64  `json:"serviceId"`
	ProviderID int64  `json:"providerId"`
	QuoteID    *int64 `json:"quoteId,omitempty"`

	AppointmentDate time.Time        `json:"appointmentDate"`
	AppointmentTime types.TimeString `json:"appointmentTime"`
	DurationHours   int              `json:"durationHours"`

	BasePrice  float64 `json:"basePrice"`
	TotalPrice float64 `json:"totalPrice"`
	TravelFee  float64 `json:"travelFee"`

	LocationType         LocationType `json:"locationType"`
	ClientAddress        string       `json:"clientAddress"`
	ClientCity           string       `json:"clientCity"`
	ClientPostalCode     string       `json:"clientPostalCode"`
	LocationInstructions string       `json:"locationInstructions"`

	ClientPhone       string `json:"clientPhone"`
	ClientEmail       string `json:"clientEmail"`
	ContactPreference string `json:"contactPreference"`

	SpecialRequirements string `json:"specialRequirements"`
	PaymentMethod       string `json:"paymentMethod"`
	AgreedToTerms       bool   `json:"agreedToTerms"`
	BookingSource       string `json:"bookingSource"`
}

// WithSchedule returns a copy of the draft with the schedule fields set
func (d BookingDraft) WithSchedule(date time.Time, start types.TimeString) BookingDraft {
	d.AppointmentDate = date
	d.AppointmentTime = start
	return d
}

// WithDuration returns a copy of the draft with the duration set and the
// total price recomputed. Invariant: totalPrice == round(basePrice × hours).
func (d BookingDraft) WithDuration(hours int) BookingDraft {
	d.DurationHours = hours
	d.TotalPrice = math.Round(d.BasePrice * float64(hours))
	return d
}

// WithBasePrice returns a copy of the draft with the base price set and the
// total price recomputed for the current duration
func (d BookingDraft) WithBasePrice(basePrice float64) BookingDraft {
	d.BasePrice = basePrice
	if d.DurationHours > 0 {
		d.TotalPrice = math.Round(basePrice * float64(d.DurationHours))
	}
	return d
}

// HasContact returns true if at least one contact channel is filled in
func (d BookingDraft) HasContact() bool {
	return d.ClientPhone != "" || d.ClientEmail != ""
}

// DiffAgainst returns the names of fields that differ from the original
// snapshot. Used by the change flows: an empty diff means submission is a
// no-op.
func (d BookingDraft) DiffAgainst(original BookingDraft) []string {
	var changed []string

	if !d.AppointmentDate.Equal(original.AppointmentDate) {
		changed = append(changed, "appointmentDate")
	}
	if d.AppointmentTime != original.AppointmentTime {
		changed = append(changed, "appointmentTime")
	}
	if d.DurationHours != original.DurationHours {
		changed = append(changed, "durationHours")
	}
	if d.LocationType != original.LocationType {
		changed = append(changed, "locationType")
	}
	if d.ClientAddress != original.ClientAddress {
		changed = append(changed, "clientAddress")
	}
	if d.ClientCity != original.ClientCity {
		changed = append(changed, "clientCity")
	}
	if d.ClientPostalCode != original.ClientPostalCode {
		changed = append(changed, "clientPostalCode")
	}
	if d.LocationInstructions != original.LocationInstructions {
		changed = append(changed, "locationInstructions")
	}
	if d.ClientPhone != original.ClientPhone {
		changed = append(changed, "clientPhone")
	}
	if d.ClientEmail != original.ClientEmail {
		changed = append(changed, "clientEmail")
	}
	if d.ContactPreference != original.ContactPreference {
		changed = append(changed, "contactPreference")
	}
	if d.SpecialRequirements != original.SpecialRequirements {
		changed = append(changed, "specialRequirements")
	}

	return changed
}
