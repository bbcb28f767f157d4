package advance_wizard_step

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/wizardsession"
	"github.com/m04kA/SMC-AppointmentService/internal/service/wizardsession/models"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "сессия не найдена или истекла"
	msgForbidden          = "доступ запрещен"
	msgAlreadySubmitted   = "сессия уже завершена"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	service WizardSessionService
	logger  Logger
}

func NewHandler(service WizardSessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/wizard-sessions/{sessionId}/advance
// Тело содержит ровно одну секцию ввода, соответствующую текущему шагу.
// При ошибках валидации шага возвращается 200 с заполненным errors:
// сессия остаётся на текущем шаге, UI подсвечивает все проблемные поля
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /wizard-sessions/{id}/advance - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	sessionID := mux.Vars(r)["sessionId"]

	var req models.AdvanceStepRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard-sessions/{id}/advance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SessionID = sessionID
	req.ClientID = userID

	result, err := h.service.Advance(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, wizardsession.ErrSessionNotFound):
			h.logger.Warn("POST /wizard-sessions/{id}/advance - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, wizardsession.ErrAccessDenied):
			h.logger.Warn("POST /wizard-sessions/{id}/advance - Access denied: session_id=%s, user_id=%d",
				sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, wizardsession.ErrAlreadySubmitted):
			h.logger.Warn("POST /wizard-sessions/{id}/advance - Session already submitted: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgAlreadySubmitted)

		case errors.Is(err, wizardsession.ErrInvalidInput):
			h.logger.Warn("POST /wizard-sessions/{id}/advance - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /wizard-sessions/{id}/advance - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /wizard-sessions/{id}/advance - Step processed: session_id=%s, step=%s, validation_errors=%d",
		sessionID, result.CurrentStep, len(result.Errors))
	handlers.RespondJSON(w, http.StatusOK, result)
}
