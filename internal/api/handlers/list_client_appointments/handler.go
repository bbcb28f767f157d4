package list_client_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	listClientAppointments "github.com/m04kA/SMC-AppointmentService/internal/usecase/list_client_appointments"
)

const (
	msgMissingUserID   = "отсутствует ID пользователя"
	msgInvalidClientID = "некорректный ID клиента"
	msgInvalidStatus   = "некорректный статус записи"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	useCase ListClientAppointmentsUseCase
	logger  Logger
}

func NewHandler(useCase ListClientAppointmentsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/appointments
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	clientIDStr := mux.Vars(r)["clientId"]
	clientID, err := strconv.ParseInt(clientIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /clients/{id}/appointments - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	var status *domain.AppointmentStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		s := domain.AppointmentStatus(statusStr)
		if !s.IsValid() {
			h.logger.Warn("GET /clients/{id}/appointments - Invalid status: %s", statusStr)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		status = &s
	}

	appointments, err := h.useCase.Execute(r.Context(), clientID, userID, status)
	if err != nil {
		switch {
		case errors.Is(err, listClientAppointments.ErrAccessDenied):
			h.logger.Warn("GET /clients/{id}/appointments - Access denied: client_id=%d, user_id=%d",
				clientID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, listClientAppointments.ErrInvalidInput):
			h.logger.Warn("GET /clients/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidClientID)

		default:
			h.logger.Error("GET /clients/{id}/appointments - Failed: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{id}/appointments - History retrieved: client_id=%d, count=%d",
		clientID, len(appointments))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(clientID, appointments))
}
