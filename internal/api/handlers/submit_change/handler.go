package submit_change

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	submitChange "github.com/m04kA/SMC-AppointmentService/internal/usecase/submit_change"
)

const (
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingSessionID     = "ID сессии обязателен"
	msgSessionNotFound      = "сессия не найдена или истекла"
	msgForbidden            = "доступ запрещен"
	msgWrongMode            = "сессия не является сессией изменения"
	msgSessionMismatch      = "сессия привязана к другой записи"
	msgNotFound             = "запись не найдена"
	msgNoChanges            = "изменений нет, отправлять нечего"
	msgSlotConflict         = "выбранное время уже занято, обновите список слотов"
	msgReschedulePending    = "по записи уже есть запрос на перенос, ожидающий одобрения"
	msgPastDate             = "дата записи не может быть в прошлом"
	msgDateTooFar           = "дата записи слишком далеко в будущем"
	msgStatusChanged        = "статус записи изменился, откройте сессию изменения заново"
	msgAlreadyInFlight      = "отправка уже выполняется"
	msgDraftIncomplete      = "черновик изменения не завершён"
)

type Handler struct {
	useCase SubmitChangeUseCase
	logger  Logger
}

func NewHandler(useCase SubmitChangeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/change
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/change - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	appointmentIDStr := mux.Vars(r)["appointmentId"]
	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/change - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req SubmitChangeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/change - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.SessionID == "" {
		h.logger.Warn("POST /appointments/{id}/change - Missing session ID")
		handlers.RespondBadRequest(w, msgMissingSessionID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &submitChange.Request{
		SessionID:     req.SessionID,
		ClientID:      userID,
		AppointmentID: appointmentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, submitChange.ErrSessionNotFound):
			h.logger.Warn("POST /appointments/{id}/change - Session not found: session_id=%s", req.SessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, submitChange.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{id}/change - Access denied: session_id=%s, user_id=%d",
				req.SessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, submitChange.ErrWrongMode):
			h.logger.Warn("POST /appointments/{id}/change - Wrong session mode: session_id=%s", req.SessionID)
			handlers.RespondConflict(w, msgWrongMode)

		case errors.Is(err, submitChange.ErrSessionMismatch):
			h.logger.Warn("POST /appointments/{id}/change - Session mismatch: session_id=%s, appointment_id=%d",
				req.SessionID, appointmentID)
			handlers.RespondConflict(w, msgSessionMismatch)

		case errors.Is(err, submitChange.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/change - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, submitChange.ErrNoChanges):
			h.logger.Warn("POST /appointments/{id}/change - No changes: session_id=%s", req.SessionID)
			handlers.RespondConflict(w, msgNoChanges)

		case errors.Is(err, submitChange.ErrInvalidDate):
			h.logger.Warn("POST /appointments/{id}/change - Past date: session_id=%s", req.SessionID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, submitChange.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments/{id}/change - Date too far in future: session_id=%s", req.SessionID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, submitChange.ErrSlotConflict):
			h.logger.Warn("POST /appointments/{id}/change - Slot conflict: session_id=%s", req.SessionID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, submitChange.ErrReschedulePending):
			h.logger.Warn("POST /appointments/{id}/change - Reschedule already pending: appointment_id=%d",
				appointmentID)
			handlers.RespondConflict(w, msgReschedulePending)

		case errors.Is(err, submitChange.ErrStatusChanged):
			h.logger.Warn("POST /appointments/{id}/change - Status changed: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgStatusChanged)

		case errors.Is(err, submitChange.ErrSubmissionInFlight):
			h.logger.Warn("POST /appointments/{id}/change - Submission in flight: session_id=%s", req.SessionID)
			handlers.RespondConflict(w, msgAlreadyInFlight)

		case errors.Is(err, submitChange.ErrDraftIncomplete):
			h.logger.Warn("POST /appointments/{id}/change - Draft incomplete: session_id=%s, error=%v",
				req.SessionID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgDraftIncomplete)

		default:
			h.logger.Error("POST /appointments/{id}/change - Failed: session_id=%s, error=%v", req.SessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/change - Change submitted: appointment_id=%d, mode=%s, applied=%t",
		appointmentID, result.Mode, result.Applied)
	handlers.RespondJSON(w, http.StatusOK, result)
}
