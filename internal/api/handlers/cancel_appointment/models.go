package cancel_appointment

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// CancelAppointmentRequest HTTP request model, тело опционально
type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	ID                 int64   `json:"id"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(appt *domain.Appointment) *CancelAppointmentResponse {
	return &CancelAppointmentResponse{
		ID:                 appt.ID,
		Status:             string(appt.Status),
		CancellationReason: appt.CancellationReason,
	}
}
