package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	providerClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	appointmentRepo    AppointmentRepository
	providerClient     ProviderServiceClient
	timeProvider       TimeProvider
	granularityMinutes int
	minLeadTimeMinutes int
	maxAdvanceDays     int
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	providerClient ProviderServiceClient,
	granularityMinutes int,
	minLeadTimeMinutes int,
	maxAdvanceDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:    appointmentRepo,
		providerClient:     providerClient,
		timeProvider:       &RealTimeProvider{},
		granularityMinutes: granularityMinutes,
		minLeadTimeMinutes: minLeadTimeMinutes,
		maxAdvanceDays:     maxAdvanceDays,
		logger:             logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: client=%d, provider=%d, service=%d, date=%s, duration=%dh",
		req.ClientID, req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat), req.DurationHours)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты
	if err := validateDate(req.Date, now, uc.maxAdvanceDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date %s rejected: %v", req.Date.Format(domain.DateFormat), err)
		return nil, err
	}

	// 4. Проверяем существование услуги у мастера
	if _, err := uc.providerClient.GetService(ctx, req.ProviderID, req.ServiceID); err != nil {
		switch {
		case errors.Is(err, providerClient.ErrProviderNotFound):
			uc.logger.Warn("GetAvailableSlots: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		case errors.Is(err, providerClient.ErrServiceNotFound):
			uc.logger.Warn("GetAvailableSlots: service id=%d not found for provider id=%d", req.ServiceID, req.ProviderID)
			return nil, ErrServiceNotFound
		default:
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	// 5. Получаем график мастера на дату
	// При недоступности ProviderService отвечаем мягкой деградацией:
	// пустой список слотов с флагом availabilityUnknown вместо ошибки
	workingHours, err := uc.providerClient.GetWorkingHoursWithGracefulDegradation(ctx, req.ProviderID, req.Date)
	if err != nil {
		if errors.Is(err, providerClient.ErrAvailabilityUnknown) {
			uc.logger.Warn("GetAvailableSlots: availability unknown for provider=%d date=%s",
				req.ProviderID, req.Date.Format(domain.DateFormat))
			return uc.response(req, []domain.Slot{}, true), nil
		}
		if errors.Is(err, providerClient.ErrProviderNotFound) {
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	// 6. Мастер не работает в этот день
	if !workingHours.IsAvailable {
		uc.logger.Info("GetAvailableSlots: provider=%d is not available on %s",
			req.ProviderID, req.Date.Format(domain.DateFormat))
		return uc.response(req, []domain.Slot{}, false), nil
	}

	// 7. Получаем занятые интервалы мастера на дату
	booked, err := uc.appointmentRepo.GetIntervalsByProviderAndDate(ctx, req.ProviderID, req.Date, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked intervals: %v", ErrInternal, err)
	}

	// 8. Вычисляем доступные слоты
	slots, err := computeSlots(
		workingHours,
		booked,
		req.DurationHours,
		uc.granularityMinutes,
		req.Date,
		now,
		uc.minLeadTimeMinutes,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: computed %d slots for provider=%d, service=%d, date=%s",
		len(slots), req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return uc.response(req, slots, false), nil
}

func (uc *UseCase) response(req *Request, slots []domain.Slot, unknown bool) *Response {
	return &Response{
		ProviderID:          req.ProviderID,
		ServiceID:           req.ServiceID,
		Date:                req.Date,
		DurationHours:       req.DurationHours,
		Slots:               slots,
		AvailabilityUnknown: unknown,
	}
}
