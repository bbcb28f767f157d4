package start_wizard_session

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/wizardsession/models"
)

// StartWizardSessionRequest HTTP request model
type StartWizardSessionRequest struct {
	ProviderID int64  `json:"providerId"`
	ServiceID  int64  `json:"serviceId"`
	QuoteID    *int64 `json:"quoteId,omitempty"`

	PreselectedDate *string `json:"preselectedDate,omitempty"`
	PreselectedTime *string `json:"preselectedTime,omitempty"`

	BookingSource string `json:"bookingSource,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *StartWizardSessionRequest) ToServiceRequest(clientID int64) *models.StartSessionRequest {
	return &models.StartSessionRequest{
		ClientID:        clientID,
		ProviderID:      r.ProviderID,
		ServiceID:       r.ServiceID,
		QuoteID:         r.QuoteID,
		PreselectedDate: r.PreselectedDate,
		PreselectedTime: r.PreselectedTime,
		BookingSource:   r.BookingSource,
	}
}
