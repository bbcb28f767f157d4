package get_max_duration

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	providerClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
)

// UseCase use case для вычисления максимальной длительности записи
// от выбранного времени начала до конца рабочего дня мастера
type UseCase struct {
	providerClient ProviderServiceClient
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(providerClient ProviderServiceClient, logger Logger) *UseCase {
	return &UseCase{
		providerClient: providerClient,
		logger:         logger,
	}
}

// Execute выполняет use case вычисления максимальной длительности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	// 2. Получаем график мастера
	// Недоступность графика не блокирует шаг выбора длительности:
	// возвращаем значение по умолчанию с флагом fallback
	workingHours, err := uc.providerClient.GetWorkingHoursWithGracefulDegradation(ctx, req.ProviderID, req.Date)
	if err != nil {
		if errors.Is(err, providerClient.ErrAvailabilityUnknown) {
			uc.logger.Warn("GetMaxDuration: availability unknown for provider=%d, using fallback %dh",
				req.ProviderID, domain.FallbackMaxDurationHours)
			return uc.fallbackResponse(req), nil
		}
		if errors.Is(err, providerClient.ErrProviderNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	// 3. Мастер не работает в этот день - тоже fallback, а не ошибка
	if !workingHours.IsAvailable {
		uc.logger.Info("GetMaxDuration: provider=%d not available on %s, using fallback %dh",
			req.ProviderID, req.Date.Format(domain.DateFormat), domain.FallbackMaxDurationHours)
		return uc.fallbackResponse(req), nil
	}

	// 4. Вычисляем целое число часов от начала до конца рабочего дня
	maxHours, err := workingHours.MaxDurationFrom(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid working hours: %v", ErrInternal, err)
	}

	uc.logger.Info("GetMaxDuration: provider=%d date=%s start=%s -> %dh",
		req.ProviderID, req.Date.Format(domain.DateFormat), req.StartTime, maxHours)

	return &Response{
		ProviderID:       req.ProviderID,
		Date:             req.Date,
		StartTime:        req.StartTime,
		MaxDurationHours: maxHours,
	}, nil
}

func (uc *UseCase) fallbackResponse(req *Request) *Response {
	return &Response{
		ProviderID:       req.ProviderID,
		Date:             req.Date,
		StartTime:        req.StartTime,
		MaxDurationHours: domain.FallbackMaxDurationHours,
		Fallback:         true,
	}
}
