package list_client_appointments

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ClientAppointmentsResponse HTTP response model
type ClientAppointmentsResponse struct {
	ClientID     int64                `json:"clientId"`
	Appointments []AppointmentSummary `json:"appointments"`
}

// AppointmentSummary краткая карточка записи для списка
type AppointmentSummary struct {
	ID         int64 `json:"id"`
	ProviderID int64 `json:"providerId"`
	ServiceID  int64 `json:"serviceId"`

	AppointmentDate string `json:"appointmentDate"`
	StartTime       string `json:"startTime"`
	DurationHours   int    `json:"durationHours"`

	TotalPrice   float64 `json:"totalPrice"`
	LocationType string  `json:"locationType"`
	Status       string  `json:"status"`
}

// FromDomain конвертирует список доменных записей в HTTP response
func FromDomain(clientID int64, appointments []*domain.Appointment) *ClientAppointmentsResponse {
	summaries := make([]AppointmentSummary, len(appointments))
	for i, appt := range appointments {
		summaries[i] = AppointmentSummary{
			ID:              appt.ID,
			ProviderID:      appt.ProviderID,
			ServiceID:       appt.ServiceID,
			AppointmentDate: appt.AppointmentDate.Format(domain.DateFormat),
			StartTime:       appt.StartTime.String(),
			DurationHours:   appt.DurationHours,
			TotalPrice:      appt.TotalPrice,
			LocationType:    string(appt.LocationType),
			Status:          string(appt.Status),
		}
	}

	return &ClientAppointmentsResponse{
		ClientID:     clientID,
		Appointments: summaries,
	}
}
