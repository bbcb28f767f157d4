package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgInvalidProviderID = "некорректный ID мастера"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgMissingServiceID  = "ID услуги обязателен"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration   = "некорректная длительность услуги"
	msgPastDate          = "дата не может быть в прошлом"
	msgDateTooFar        = "дата записи слишком далеко в будущем"
	msgProviderNotFound  = "мастер не найден"
	msgServiceNotFound   = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD),
// durationHours (optional, по умолчанию 1)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем providerId из URL
	providerIDStr := vars["providerId"]
	providerID, err := strconv.ParseInt(providerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/available-slots - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	// Извлекаем serviceId из query параметров
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /providers/{id}/available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /providers/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Длительность опциональна: по умолчанию минимальная
	durationHours := domain.MinDurationHours
	if durationStr := r.URL.Query().Get("durationHours"); durationStr != "" {
		durationHours, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /providers/{id}/available-slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	// Эндпоинт публичный: ID клиента берём из заголовка, если он есть
	var clientID int64
	if userIDStr := r.Header.Get("X-User-ID"); userIDStr != "" {
		clientID, _ = strconv.ParseInt(userIDStr, 10, 64)
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(clientID, providerID, serviceID, dateStr, durationHours)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/available-slots - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /providers/{id}/available-slots - Service not found: provider_id=%d, service_id=%d",
				providerID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /providers/{id}/available-slots - Past date: provider_id=%d, date=%s",
				providerID, dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /providers/{id}/available-slots - Date too far in future: provider_id=%d, date=%s",
				providerID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /providers/{id}/available-slots - Failed to get slots: provider_id=%d, service_id=%d, error=%v",
				providerID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /providers/{id}/available-slots - Slots retrieved: provider_id=%d, service_id=%d, date=%s, slots_count=%d",
		providerID, serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
