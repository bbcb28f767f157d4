package get_max_duration

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getMaxDuration "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_max_duration"
)

const (
	msgInvalidProviderID = "некорректный ID мастера"
	msgMissingDate       = "дата обязательна"
	msgMissingStartTime  = "время начала обязательно"
	msgInvalidParams     = "некорректный формат даты или времени"
	msgProviderNotFound  = "мастер не найден"
)

type Handler struct {
	useCase GetMaxDurationUseCase
	logger  Logger
}

func NewHandler(useCase GetMaxDurationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/max-duration
// Query params: date (required, YYYY-MM-DD), startTime (required, HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerIDStr := vars["providerId"]
	providerID, err := strconv.ParseInt(providerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/max-duration - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /providers/{id}/max-duration - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	startTimeStr := r.URL.Query().Get("startTime")
	if startTimeStr == "" {
		h.logger.Warn("GET /providers/{id}/max-duration - Missing start time")
		handlers.RespondBadRequest(w, msgMissingStartTime)
		return
	}

	useCaseReq, err := ToUseCaseRequest(providerID, dateStr, startTimeStr)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/max-duration - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getMaxDuration.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/max-duration - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getMaxDuration.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/max-duration - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /providers/{id}/max-duration - Failed: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/max-duration - Max duration computed: provider_id=%d, date=%s, start=%s, max=%d, fallback=%t",
		providerID, dateStr, startTimeStr, result.MaxDurationHours, result.Fallback)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
