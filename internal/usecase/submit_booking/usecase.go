package submit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	quoteRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/quote"
	sessionStore "github.com/m04kA/SMC-AppointmentService/internal/infra/session"
)

// UseCase use case отправки собранного черновика как одной атомарной записи.
// Сериализуемая транзакция с блокировкой интервалов мастера защищает от
// гонки за слот между параллельными клиентами
type UseCase struct {
	appointmentRepo AppointmentRepository
	quoteRepo       QuoteRepository
	sessions        SessionStore
	txManager       TransactionManager
	timeProvider    TimeProvider
	maxAdvanceDays  int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	quoteRepo QuoteRepository,
	sessions SessionStore,
	txManager TransactionManager,
	maxAdvanceDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		quoteRepo:       quoteRepo,
		sessions:        sessions,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		maxAdvanceDays:  maxAdvanceDays,
		logger:          logger,
	}
}

// Execute выполняет use case отправки записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: session=%s, client=%d", req.SessionID, req.ClientID)

	// 1. Блокировка сабмита: повторный клик по кнопке, пока запрос в полёте,
	// не породит второй запрос к БД
	locked, err := uc.sessions.AcquireSubmitLock(ctx, req.SessionID)
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to acquire submit lock: %v", err)
		return nil, fmt.Errorf("%w: acquire submit lock: %v", ErrInternal, err)
	}
	if !locked {
		uc.logger.Warn("SubmitBooking: submission already in flight for session=%s", req.SessionID)
		return nil, ErrSubmissionInFlight
	}
	defer func() {
		if err := uc.sessions.ReleaseSubmitLock(ctx, req.SessionID); err != nil {
			uc.logger.Error("SubmitBooking: failed to release submit lock: %v", err)
		}
	}()

	// 2. Загружаем сессию и проверяем владельца
	sess, err := uc.sessions.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("SubmitBooking: failed to load session: %v", err)
		return nil, fmt.Errorf("%w: load session: %v", ErrInternal, err)
	}
	if sess.ClientID != req.ClientID {
		return nil, ErrAccessDenied
	}
	if sess.IsChangeMode() {
		return nil, ErrWrongMode
	}

	// 3. Страховочная валидация полного черновика
	if err := validateDraft(sess.Draft); err != nil {
		uc.logger.Warn("SubmitBooking: draft validation failed: %v", err)
		return nil, err
	}

	// Дата могла выйти за горизонт записи, пока сессия лежала в Redis
	if err := validateDate(sess.Draft.AppointmentDate, uc.timeProvider.Now(), uc.maxAdvanceDays); err != nil {
		uc.logger.Warn("SubmitBooking: date validation failed: %v", err)
		return nil, err
	}

	draft := sess.Draft
	var created *domain.Appointment
	quoteAccepted := false

	// 4. Сериализуемая транзакция: перепроверка слота и вставка
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Занятые интервалы мастера на дату с блокировкой FOR UPDATE
		intervals, err := uc.appointmentRepo.GetIntervalsByProviderAndDate(
			txCtx, draft.ProviderID, draft.AppointmentDate, nil)
		if err != nil {
			uc.logger.Error("SubmitBooking: failed to get intervals: %v", err)
			return fmt.Errorf("%w: get intervals: %v", ErrSubmissionFailed, err)
		}

		// 4.2. Слот мог быть занят после выбора времени клиентом
		start := draft.AppointmentTime
		end, err := start.AddMinutes(draft.DurationHours * domain.MinutesPerHour)
		if err != nil {
			return fmt.Errorf("%w: invalid appointment time: %v", ErrInternal, err)
		}
		for _, interval := range intervals {
			if interval.Overlaps(start, end) {
				uc.logger.Warn("SubmitBooking: slot %s-%s conflicts with interval %s-%s",
					start, end, interval.StartTime, interval.EndTime)
				return ErrSlotConflict
			}
		}

		// 4.3. Вставка записи; ключ идемпотентности сессии закрывает дубликаты
		appt := appointmentFromDraft(draft, sess)
		created, err = uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, apptRepo.ErrDuplicateSubmission) {
				// Повторный сабмит того же черновика: возвращаем уже
				// созданную запись вместо дубликата
				existing, getErr := uc.appointmentRepo.GetByIdempotencyKey(txCtx, sess.IdempotencyKey)
				if getErr != nil {
					return fmt.Errorf("%w: load existing appointment: %v", ErrInternal, getErr)
				}
				uc.logger.Info("SubmitBooking: duplicate submission, returning appointment id=%d", existing.ID)
				created = existing
				return nil
			}
			uc.logger.Error("SubmitBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: create appointment: %v", ErrSubmissionFailed, err)
		}

		// 4.4. Вторая фаза для флоу сметы: помечаем смету принятой.
		// "Уже принята" - безобидное состояние, запись из первой фазы
		// в любом случае остаётся в силе
		if draft.QuoteID != nil {
			err := uc.quoteRepo.MarkAccepted(txCtx, *draft.QuoteID)
			switch {
			case err == nil:
				quoteAccepted = true
			case errors.Is(err, quoteRepo.ErrAlreadyAccepted):
				uc.logger.Info("SubmitBooking: quote id=%d already accepted", *draft.QuoteID)
				quoteAccepted = true
			default:
				uc.logger.Error("SubmitBooking: failed to mark quote id=%d accepted: %v", *draft.QuoteID, err)
			}
		}

		return nil
	})
	if err != nil {
		// Черновик не тронут: сессия остаётся в хранилище, клиент может
		// повторить отправку сразу же
		return nil, err
	}

	// 5. Успех: сессия превращается в короткоживущее надгробие, чтобы
	// отставшая вкладка получила конфликт вместо "сессия не найдена"
	sess.MarkSubmitted(created.ID)
	if err := uc.sessions.SaveSubmitted(ctx, sess); err != nil {
		uc.logger.Error("SubmitBooking: failed to mark session=%s submitted: %v", req.SessionID, err)
	}

	uc.logger.Info("SubmitBooking: appointment id=%d created for client=%d", created.ID, req.ClientID)

	return &Response{
		AppointmentID: created.ID,
		Status:        string(created.Status),
		TotalPrice:    created.TotalPrice,
		QuoteAccepted: quoteAccepted,
	}, nil
}

// appointmentFromDraft собирает доменную запись из черновика сессии
func appointmentFromDraft(draft domain.BookingDraft, sess *domain.WizardSession) *domain.Appointment {
	appt := &domain.Appointment{
		ClientID:        sess.ClientID,
		ProviderID:      draft.ProviderID,
		ServiceID:       draft.ServiceID,
		QuoteID:         draft.QuoteID,
		AppointmentDate: draft.AppointmentDate,
		StartTime:       draft.AppointmentTime,
		DurationHours:   draft.DurationHours,
		BasePrice:       draft.BasePrice,
		TotalPrice:      draft.TotalPrice,
		TravelFee:       draft.TravelFee,
		LocationType:    draft.LocationType,
		PaymentMethod:   draft.PaymentMethod,
		BookingSource:   draft.BookingSource,
		IdempotencyKey:  sess.IdempotencyKey,
		Status:          domain.StatusPending,
	}

	appt.ClientAddress = optional(draft.ClientAddress)
	appt.ClientCity = optional(draft.ClientCity)
	appt.ClientPostalCode = optional(draft.ClientPostalCode)
	appt.LocationInstructions = optional(draft.LocationInstructions)
	appt.ClientPhone = optional(draft.ClientPhone)
	appt.ClientEmail = optional(draft.ClientEmail)
	appt.ContactPreference = optional(draft.ContactPreference)
	appt.SpecialRequirements = optional(draft.SpecialRequirements)

	return appt
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
