package submit_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	submitBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/submit_booking"
)

const (
	msgMissingUserID    = "отсутствует ID пользователя"
	msgSessionNotFound  = "сессия не найдена или истекла"
	msgForbidden        = "доступ запрещен"
	msgWrongMode        = "сессия не является сессией записи"
	msgDraftIncomplete  = "черновик записи не завершён"
	msgPastDate         = "дата записи не может быть в прошлом"
	msgDateTooFar       = "дата записи слишком далеко в будущем"
	msgSlotConflict     = "выбранное время уже занято, обновите список слотов"
	msgAlreadyInFlight  = "отправка уже выполняется"
	msgSubmissionFailed = "не удалось создать запись"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/wizard-sessions/{sessionId}/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /wizard-sessions/{id}/submit - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.useCase.Execute(r.Context(), &submitBooking.Request{
		SessionID: sessionID,
		ClientID:  userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, submitBooking.ErrSessionNotFound):
			h.logger.Warn("POST /wizard-sessions/{id}/submit - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, submitBooking.ErrAccessDenied):
			h.logger.Warn("POST /wizard-sessions/{id}/submit - Access denied: session_id=%s, user_id=%d",
				sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, submitBooking.ErrWrongMode):
			h.logger.Warn("POST /wizard-sessions/{id}/submit - Wrong session mode: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgWrongMode)

		case errors.Is(err, submitBooking.ErrDraftIncomplete):
			h.logger.Warn("POST /wizard-sessions/{id}/submit - Draft incomplete: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgDraftIncomplete)

		case errors.Is(err, submitBooking.ErrInvalidDate):
			h.logger.Warn("POST /wizard-sessions/{id}/submit - Past date: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, submitBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /wizard-sessions/{id}/submit - Date too far in future: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, submitBooking.ErrSlotConflict):
			h.logger.Warn("POST /wizard-sessions/{id}/submit - Slot conflict: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, submitBooking.ErrSubmissionInFlight):
			h.logger.Warn("POST /wizard-sessions/{id}/submit - Submission in flight: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgAlreadyInFlight)

		case errors.Is(err, submitBooking.ErrSubmissionFailed):
			h.logger.Error("POST /wizard-sessions/{id}/submit - Submission failed: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgSubmissionFailed)

		default:
			h.logger.Error("POST /wizard-sessions/{id}/submit - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /wizard-sessions/{id}/submit - Appointment created: session_id=%s, appointment_id=%d, quote_accepted=%t",
		sessionID, result.AppointmentID, result.QuoteAccepted)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
