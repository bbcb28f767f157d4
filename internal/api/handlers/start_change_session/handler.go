package start_change_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	startChangeSession "github.com/m04kA/SMC-AppointmentService/internal/usecase/start_change_session"
)

const (
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgNotChangeable        = "запись больше нельзя изменить"
)

type Handler struct {
	useCase StartChangeSessionUseCase
	logger  Logger
}

func NewHandler(useCase StartChangeSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/change-session
// Режим определяется статусом записи: pending открывается в режиме
// прямого редактирования, остальные активные статусы - в режиме
// запроса переноса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/change-session - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	appointmentIDStr := mux.Vars(r)["appointmentId"]
	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/change-session - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), appointmentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, startChangeSession.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/change-session - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, startChangeSession.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{id}/change-session - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, startChangeSession.ErrNotChangeable):
			h.logger.Warn("POST /appointments/{id}/change-session - Not changeable: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgNotChangeable)

		case errors.Is(err, startChangeSession.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/change-session - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		default:
			h.logger.Error("POST /appointments/{id}/change-session - Failed: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/change-session - Session opened: session_id=%s, appointment_id=%d, mode=%s",
		result.SessionID, appointmentID, result.Mode)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
