package get_wizard_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/wizardsession"
)

const (
	msgMissingUserID   = "отсутствует ID пользователя"
	msgSessionNotFound = "сессия не найдена или истекла"
	msgForbidden       = "доступ запрещен"
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

// Handle GET /api/v1/wizard-sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /wizard-sessions/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.service.Get(r.Context(), sessionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, wizardsession.ErrSessionNotFound):
			h.logger.Warn("GET /wizard-sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, wizardsession.ErrAccessDenied):
			h.logger.Warn("GET /wizard-sessions/{id} - Access denied: session_id=%s, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /wizard-sessions/{id} - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /wizard-sessions/{id} - Session retrieved: session_id=%s, step=%s", sessionID, result.CurrentStep)
	handlers.RespondJSON(w, http.StatusOK, result)
}
