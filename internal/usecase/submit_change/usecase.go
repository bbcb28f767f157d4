package submit_change

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	sessionStore "github.com/m04kA/SMC-AppointmentService/internal/infra/session"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	rescheduleStorage "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/reschedule"
)

// UseCase use case отправки изменений существующей записи.
// Режим edit перезаписывает pending запись напрямую; режим reschedule
// создаёт запрос на перенос, ожидающий одобрения мастера
type UseCase struct {
	appointmentRepo AppointmentRepository
	rescheduleRepo  RescheduleRepository
	sessions        SessionStore
	txManager       TransactionManager
	timeProvider    TimeProvider
	maxAdvanceDays  int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	rescheduleRepo RescheduleRepository,
	sessions SessionStore,
	txManager TransactionManager,
	maxAdvanceDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		rescheduleRepo:  rescheduleRepo,
		sessions:        sessions,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		maxAdvanceDays:  maxAdvanceDays,
		logger:          logger,
	}
}

// Execute выполняет use case отправки изменений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitChange: session=%s, client=%d", req.SessionID, req.ClientID)

	locked, err := uc.sessions.AcquireSubmitLock(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: acquire submit lock: %v", ErrInternal, err)
	}
	if !locked {
		return nil, ErrSubmissionInFlight
	}
	defer func() {
		if err := uc.sessions.ReleaseSubmitLock(ctx, req.SessionID); err != nil {
			uc.logger.Error("SubmitChange: failed to release submit lock: %v", err)
		}
	}()

	sess, err := uc.sessions.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: load session: %v", ErrInternal, err)
	}
	if sess.ClientID != req.ClientID {
		return nil, ErrAccessDenied
	}
	if !sess.IsChangeMode() || sess.AppointmentID == nil {
		return nil, ErrWrongMode
	}
	if req.AppointmentID != 0 && *sess.AppointmentID != req.AppointmentID {
		return nil, ErrSessionMismatch
	}

	// Пустой diff против снимка: отправка - no-op, UI должен был
	// заблокировать действие
	changed := sess.Draft.DiffAgainst(derefDraft(sess.Original))
	if sess.Original != nil && len(changed) == 0 {
		uc.logger.Info("SubmitChange: session=%s has no changes", sess.ID)
		return nil, ErrNoChanges
	}

	if err := validateDraft(sess); err != nil {
		uc.logger.Warn("SubmitChange: draft validation failed: %v", err)
		return nil, err
	}

	// Новая дата должна оставаться в допустимом горизонте записи
	if err := validateDate(sess.Draft.AppointmentDate, uc.timeProvider.Now(), uc.maxAdvanceDays); err != nil {
		uc.logger.Warn("SubmitChange: date validation failed: %v", err)
		return nil, err
	}

	resp := &Response{
		AppointmentID: *sess.AppointmentID,
		Mode:          string(sess.Mode),
		ChangedFields: changed,
	}

	switch sess.Mode {
	case domain.ModeEdit:
		err = uc.applyDirectEdit(ctx, sess)
		resp.Applied = err == nil
	case domain.ModeReschedule:
		var created *domain.RescheduleRequest
		created, err = uc.createRescheduleRequest(ctx, sess)
		if err == nil {
			resp.RescheduleRequestID = &created.ID
		}
	default:
		return nil, ErrWrongMode
	}
	if err != nil {
		return nil, err
	}

	// Завершённая сессия остаётся коротким надгробием для отставших вкладок
	sess.MarkSubmitted(*sess.AppointmentID)
	if err := uc.sessions.SaveSubmitted(ctx, sess); err != nil {
		uc.logger.Error("SubmitChange: failed to mark session=%s submitted: %v", req.SessionID, err)
	}

	uc.logger.Info("SubmitChange: session=%s completed in mode=%s, %d fields changed",
		sess.ID, sess.Mode, len(changed))

	return resp, nil
}

// applyDirectEdit применяет черновик к pending записи внутри сериализуемой
// транзакции с перепроверкой нового времени
func (uc *UseCase) applyDirectEdit(ctx context.Context, sess *domain.WizardSession) error {
	draft := sess.Draft

	return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := uc.appointmentRepo.GetByID(txCtx, *sess.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: get appointment: %v", ErrInternal, err)
		}

		// Статус мог смениться после открытия сессии: подтверждённая запись
		// больше не редактируется напрямую
		if !appt.CanBeEditedDirectly() {
			return ErrStatusChanged
		}

		// Новое время не должно конфликтовать с другими записями мастера;
		// собственный интервал записи исключается из проверки
		intervals, err := uc.appointmentRepo.GetIntervalsByProviderAndDate(
			txCtx, appt.ProviderID, draft.AppointmentDate, &appt.ID)
		if err != nil {
			return fmt.Errorf("%w: get intervals: %v", ErrInternal, err)
		}

		start := draft.AppointmentTime
		end, err := start.AddMinutes(draft.DurationHours * domain.MinutesPerHour)
		if err != nil {
			return fmt.Errorf("%w: invalid appointment time: %v", ErrInternal, err)
		}
		for _, interval := range intervals {
			if interval.Overlaps(start, end) {
				return ErrSlotConflict
			}
		}

		applyDraft(appt, draft)
		if err := uc.appointmentRepo.Update(txCtx, appt); err != nil {
			return fmt.Errorf("%w: update appointment: %v", ErrInternal, err)
		}

		return nil
	})
}

// createRescheduleRequest создаёт запрос на перенос в статусе ожидания
// одобрения; сама запись не меняется
func (uc *UseCase) createRescheduleRequest(ctx context.Context, sess *domain.WizardSession) (*domain.RescheduleRequest, error) {
	draft := sess.Draft

	appt, err := uc.appointmentRepo.GetByID(ctx, *sess.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: get appointment: %v", ErrInternal, err)
	}
	if !appt.CanBeRescheduled() {
		return nil, ErrStatusChanged
	}

	// По одной записи допускается не более одного неодобренного запроса
	pending, err := uc.rescheduleRepo.GetPendingByAppointmentID(ctx, *sess.AppointmentID)
	if err != nil && !errors.Is(err, rescheduleStorage.ErrRequestNotFound) {
		return nil, fmt.Errorf("%w: check pending reschedule: %v", ErrInternal, err)
	}
	if pending != nil {
		uc.logger.Warn("SubmitChange: appointment=%d already has pending reschedule request=%d",
			*sess.AppointmentID, pending.ID)
		return nil, ErrReschedulePending
	}

	request := &domain.RescheduleRequest{
		AppointmentID: *sess.AppointmentID,
		ClientID:      sess.ClientID,
		RequestedDate: draft.AppointmentDate,
		RequestedTime: draft.AppointmentTime,
		DurationHours: draft.DurationHours,
		Reason:        sess.RescheduleReason,
		Notes:         sess.RescheduleNotes,
		LocationType:  draft.LocationType,
	}

	request.ClientAddress = optional(draft.ClientAddress)
	request.ClientCity = optional(draft.ClientCity)
	request.ClientPostalCode = optional(draft.ClientPostalCode)
	request.LocationInstructions = optional(draft.LocationInstructions)
	request.ClientPhone = optional(draft.ClientPhone)
	request.ClientEmail = optional(draft.ClientEmail)
	request.ContactPreference = optional(draft.ContactPreference)

	created, err := uc.rescheduleRepo.Create(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("%w: create reschedule request: %v", ErrInternal, err)
	}

	return created, nil
}

// validateDraft проверяет обязательные поля черновика изменения
func validateDraft(sess *domain.WizardSession) error {
	draft := sess.Draft

	if draft.AppointmentDate.IsZero() || draft.AppointmentTime.IsZero() {
		return fmt.Errorf("%w: schedule is not selected", ErrDraftIncomplete)
	}
	if draft.DurationHours < domain.MinDurationHours {
		return fmt.Errorf("%w: duration is not selected", ErrDraftIncomplete)
	}
	if !draft.LocationType.IsValid() {
		return fmt.Errorf("%w: location type is not selected", ErrDraftIncomplete)
	}
	if draft.LocationType.RequiresAddress() && (draft.ClientAddress == "" || draft.ClientCity == "") {
		return fmt.Errorf("%w: address is incomplete", ErrDraftIncomplete)
	}
	if !draft.HasContact() {
		return fmt.Errorf("%w: contact is missing", ErrDraftIncomplete)
	}

	// Для переноса обязательны причина и заметки
	if sess.Mode == domain.ModeReschedule {
		if !sess.RescheduleReason.IsValid() {
			return fmt.Errorf("%w: reschedule reason is required", ErrDraftIncomplete)
		}
		if sess.RescheduleNotes == "" {
			return fmt.Errorf("%w: reschedule notes are required", ErrDraftIncomplete)
		}
	}

	return nil
}

// validateDate проверяет, что новая дата не в прошлом и не дальше горизонта
func validateDate(date, now time.Time, maxAdvanceDays int) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(today) {
		return ErrInvalidDate
	}

	// Если maxAdvanceDays = 0, горизонт не ограничен
	if maxAdvanceDays == 0 {
		return nil
	}

	if dateOnly.After(today.AddDate(0, 0, maxAdvanceDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}

// applyDraft переносит редактируемые поля черновика в запись
func applyDraft(appt *domain.Appointment, draft domain.BookingDraft) {
	appt.AppointmentDate = draft.AppointmentDate
	appt.StartTime = draft.AppointmentTime
	appt.DurationHours = draft.DurationHours
	appt.TotalPrice = draft.TotalPrice
	appt.LocationType = draft.LocationType
	appt.ClientAddress = optional(draft.ClientAddress)
	appt.ClientCity = optional(draft.ClientCity)
	appt.ClientPostalCode = optional(draft.ClientPostalCode)
	appt.LocationInstructions = optional(draft.LocationInstructions)
	appt.ClientPhone = optional(draft.ClientPhone)
	appt.ClientEmail = optional(draft.ClientEmail)
	appt.ContactPreference = optional(draft.ContactPreference)
	appt.SpecialRequirements = optional(draft.SpecialRequirements)
}

func derefDraft(d *domain.BookingDraft) domain.BookingDraft {
	if d == nil {
		return domain.BookingDraft{}
	}
	return *d
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
