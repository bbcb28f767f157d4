package abandon_wizard_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/wizardsession"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
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

// Handle DELETE /api/v1/wizard-sessions/{sessionId}
// Отмена идемпотентна: повторное удаление или истёкшая сессия - не ошибка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /wizard-sessions/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	sessionID := mux.Vars(r)["sessionId"]

	if err := h.service.Abandon(r.Context(), sessionID, userID); err != nil {
		switch {
		case errors.Is(err, wizardsession.ErrAccessDenied):
			h.logger.Warn("DELETE /wizard-sessions/{id} - Access denied: session_id=%s, user_id=%d",
				sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /wizard-sessions/{id} - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /wizard-sessions/{id} - Session abandoned: session_id=%s, user_id=%d", sessionID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
