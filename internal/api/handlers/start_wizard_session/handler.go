package start_wizard_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/wizardsession"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgProviderNotFound   = "мастер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgQuoteNotFound      = "смета не найдена"
	msgQuoteNotAcceptable = "смета не может быть принята"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/wizard-sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /wizard-sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req StartWizardSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard-sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Start(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, wizardsession.ErrProviderNotFound):
			h.logger.Warn("POST /wizard-sessions - Provider not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, wizardsession.ErrServiceNotFound):
			h.logger.Warn("POST /wizard-sessions - Service not found: provider_id=%d, service_id=%d",
				req.ProviderID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, wizardsession.ErrQuoteNotFound):
			h.logger.Warn("POST /wizard-sessions - Quote not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgQuoteNotFound)

		case errors.Is(err, wizardsession.ErrQuoteNotAcceptable):
			h.logger.Warn("POST /wizard-sessions - Quote not acceptable: user_id=%d", userID)
			handlers.RespondConflict(w, msgQuoteNotAcceptable)

		case errors.Is(err, wizardsession.ErrAccessDenied):
			h.logger.Warn("POST /wizard-sessions - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, wizardsession.ErrInvalidInput):
			h.logger.Warn("POST /wizard-sessions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /wizard-sessions - Failed to start session: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /wizard-sessions - Session started: session_id=%s, user_id=%d, mode=%s, step=%s",
		result.SessionID, userID, result.Mode, result.CurrentStep)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
