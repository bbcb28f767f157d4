package get_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	ClientID   int64  `json:"clientId"`
	ProviderID int64  `json:"providerId"`
	ServiceID  int64  `json:"serviceId"`
	QuoteID    *int64 `json:"quoteId,omitempty"`

	AppointmentDate string `json:"appointmentDate"`
	StartTime       string `json:"startTime"`
	DurationHours   int    `json:"durationHours"`

	BasePrice  float64 `json:"basePrice"`
	TotalPrice float64 `json:"totalPrice"`
	TravelFee  float64 `json:"travelFee"`

	LocationType         string  `json:"locationType"`
	ClientAddress        *string `json:"clientAddress,omitempty"`
	ClientCity           *string `json:"clientCity,omitempty"`
	ClientPostalCode     *string `json:"clientPostalCode,omitempty"`
	LocationInstructions *string `json:"locationInstructions,omitempty"`

	ClientPhone       *string `json:"clientPhone,omitempty"`
	ClientEmail       *string `json:"clientEmail,omitempty"`
	ContactPreference *string `json:"contactPreference,omitempty"`

	SpecialRequirements *string `json:"specialRequirements,omitempty"`
	PaymentMethod       string  `json:"paymentMethod,omitempty"`
	BookingSource       string  `json:"bookingSource,omitempty"`

	Status string `json:"status"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomain конвертирует доменную запись в HTTP response
func FromDomain(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                   appt.ID,
		ClientID:             appt.ClientID,
		ProviderID:           appt.ProviderID,
		ServiceID:            appt.ServiceID,
		QuoteID:              appt.QuoteID,
		AppointmentDate:      appt.AppointmentDate.Format(domain.DateFormat),
		StartTime:            appt.StartTime.String(),
		DurationHours:        appt.DurationHours,
		BasePrice:            appt.BasePrice,
		TotalPrice:           appt.TotalPrice,
		TravelFee:            appt.TravelFee,
		LocationType:         string(appt.LocationType),
		ClientAddress:        appt.ClientAddress,
		ClientCity:           appt.ClientCity,
		ClientPostalCode:     appt.ClientPostalCode,
		LocationInstructions: appt.LocationInstructions,
		ClientPhone:          appt.ClientPhone,
		ClientEmail:          appt.ClientEmail,
		ContactPreference:    appt.ContactPreference,
		SpecialRequirements:  appt.SpecialRequirements,
		PaymentMethod:        appt.PaymentMethod,
		BookingSource:        appt.BookingSource,
		Status:               string(appt.Status),
		CancellationReason:   appt.CancellationReason,
		CancelledAt:          appt.CancelledAt,
		CreatedAt:            appt.CreatedAt,
		UpdatedAt:            appt.UpdatedAt,
	}
}
