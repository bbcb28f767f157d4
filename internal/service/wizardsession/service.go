package wizardsession

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	providerClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
	quoteRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/quote"
	sessionStore "github.com/m04kA/SMC-AppointmentService/internal/infra/session"
	"github.com/m04kA/SMC-AppointmentService/internal/service/wizardsession/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Service управляет сессиями мастера записи: пошаговым заполнением черновика
// с валидацией перед каждым переходом вперёд и свободной навигацией назад
type Service struct {
	store          SessionStore
	quoteRepo      QuoteRepository
	providerClient ProviderServiceClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	store SessionStore,
	quoteRepo QuoteRepository,
	providerClient ProviderServiceClient,
	logger Logger,
) *Service {
	return &Service{
		store:          store,
		quoteRepo:      quoteRepo,
		providerClient: providerClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Start открывает новую сессию записи.
// Шаг выбора времени пропускается, если слот предвыбран (deep-link со
// страницы услуги) или сессия создана из принятия сметы
func (s *Service) Start(ctx context.Context, req *models.StartSessionRequest) (*models.SessionResponse, error) {
	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	now := s.timeProvider.Now()

	sess := &domain.WizardSession{
		ID:             uuid.NewString(),
		ClientID:       req.ClientID,
		Mode:           domain.ModeBooking,
		StepHistory:    []domain.WizardStep{},
		IdempotencyKey: uuid.NewString(),
		CreatedAt:      now,
	}
	sess.Draft.BookingSource = req.BookingSource

	if req.QuoteID != nil {
		if err := s.seedFromQuote(ctx, sess, req, now); err != nil {
			return nil, err
		}
	} else {
		if err := s.seedFromService(ctx, sess, req); err != nil {
			return nil, err
		}
	}

	if err := s.store.Save(ctx, sess); err != nil {
		s.logger.Error("Start: failed to save session: %v", err)
		return nil, fmt.Errorf("%w: Start - save session: %v", ErrInternal, err)
	}

	s.logger.Info("Start: session=%s created for client=%d, mode=%s, step=%s",
		sess.ID, sess.ClientID, sess.Mode, sess.CurrentStep)

	return models.FromDomainSession(sess, s.readyToSubmit(sess)), nil
}

// StartChange открывает сессию изменения существующей записи.
// Снимок записи кладётся в Original: diff черновика против снимка
// определяет, есть ли изменения для отправки
func (s *Service) StartChange(ctx context.Context, clientID int64, appt *domain.Appointment) (*models.SessionResponse, error) {
	mode := domain.ModeReschedule
	firstStep := domain.StepRescheduleDetails
	if appt.CanBeEditedDirectly() {
		mode = domain.ModeEdit
		firstStep = domain.StepTimeSelection
	}

	draft := draftFromAppointment(appt)
	original := draft

	sess := &domain.WizardSession{
		ID:             uuid.NewString(),
		ClientID:       clientID,
		Mode:           mode,
		CurrentStep:    firstStep,
		StepHistory:    []domain.WizardStep{},
		Draft:          draft,
		Original:       &original,
		AppointmentID:  &appt.ID,
		IdempotencyKey: uuid.NewString(),
		CreatedAt:      s.timeProvider.Now(),
	}

	// Максимальная длительность для уже выбранного времени
	maxHours, err := s.computeMaxDuration(ctx, appt.ProviderID, appt.AppointmentDate, appt.StartTime)
	if err != nil {
		return nil, err
	}
	sess.MaxDurationHours = maxHours

	if err := s.store.Save(ctx, sess); err != nil {
		s.logger.Error("StartChange: failed to save session: %v", err)
		return nil, fmt.Errorf("%w: StartChange - save session: %v", ErrInternal, err)
	}

	s.logger.Info("StartChange: session=%s created for client=%d, appointment=%d, mode=%s",
		sess.ID, clientID, appt.ID, mode)

	return models.FromDomainSession(sess, s.readyToSubmit(sess)), nil
}

// Get возвращает текущее состояние сессии
func (s *Service) Get(ctx context.Context, sessionID string, clientID int64) (*models.SessionResponse, error) {
	sess, err := s.loadOwned(ctx, sessionID, clientID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSession(sess, s.readyToSubmit(sess)), nil
}

// GetDomainSession возвращает доменную сессию для usecase сабмита
func (s *Service) GetDomainSession(ctx context.Context, sessionID string, clientID int64) (*domain.WizardSession, error) {
	return s.loadOwned(ctx, sessionID, clientID)
}

// Advance обрабатывает ввод текущего шага и переводит сессию на следующий.
// При ошибках валидации сессия остаётся на месте, ошибки возвращаются
// все вместе в поле Errors
func (s *Service) Advance(ctx context.Context, req *models.AdvanceStepRequest) (*models.SessionResponse, error) {
	sess, err := s.loadOwned(ctx, req.SessionID, req.ClientID)
	if err != nil {
		return nil, err
	}

	if sess.IsSubmitted() {
		return nil, ErrAlreadySubmitted
	}

	var fieldErrors []models.FieldError

	switch sess.CurrentStep {
	case domain.StepRescheduleDetails:
		fieldErrors, err = s.advanceRescheduleDetails(sess, req.RescheduleDetails)
	case domain.StepTimeSelection:
		fieldErrors, err = s.advanceTimeSelection(ctx, sess, req.TimeSelection)
	case domain.StepDuration:
		fieldErrors, err = s.advanceDuration(sess, req.Duration)
	case domain.StepLocation:
		fieldErrors, err = s.advanceLocation(sess, req.Location)
	case domain.StepPayment:
		fieldErrors, err = s.advancePayment(sess, req.Payment)
	default:
		return nil, fmt.Errorf("%w: unexpected step %s", ErrInternal, sess.CurrentStep)
	}

	if err != nil {
		return nil, err
	}

	if len(fieldErrors) > 0 {
		s.logger.Info("Advance: session=%s step=%s rejected with %d validation errors",
			sess.ID, sess.CurrentStep, len(fieldErrors))
		resp := models.FromDomainSession(sess, false)
		resp.Errors = fieldErrors
		return resp, nil
	}

	if err := s.store.Save(ctx, sess); err != nil {
		s.logger.Error("Advance: failed to save session=%s: %v", sess.ID, err)
		return nil, fmt.Errorf("%w: Advance - save session: %v", ErrInternal, err)
	}

	s.logger.Info("Advance: session=%s moved to step=%s", sess.ID, sess.CurrentStep)
	return models.FromDomainSession(sess, s.readyToSubmit(sess)), nil
}

// Back возвращает сессию на предыдущий шаг.
// Данные, введённые на шагах дальше целевого, сохраняются в черновике:
// пользователь, вернувшийся вперёд, видит свои прежние значения
func (s *Service) Back(ctx context.Context, sessionID string, clientID int64) (*models.SessionResponse, error) {
	sess, err := s.loadOwned(ctx, sessionID, clientID)
	if err != nil {
		return nil, err
	}

	if sess.IsSubmitted() {
		return nil, ErrAlreadySubmitted
	}

	sess.GoBack()

	if err := s.store.Save(ctx, sess); err != nil {
		s.logger.Error("Back: failed to save session=%s: %v", sess.ID, err)
		return nil, fmt.Errorf("%w: Back - save session: %v", ErrInternal, err)
	}

	return models.FromDomainSession(sess, s.readyToSubmit(sess)), nil
}

// Abandon закрывает сессию без отправки. Черновик удаляется, никаких
// побочных эффектов не происходит
func (s *Service) Abandon(ctx context.Context, sessionID string, clientID int64) error {
	sess, err := s.loadOwned(ctx, sessionID, clientID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			// Сессия уже истекла - считаем отменённой
			return nil
		}
		return err
	}

	if err := s.store.Delete(ctx, sess.ID); err != nil {
		s.logger.Error("Abandon: failed to delete session=%s: %v", sess.ID, err)
		return fmt.Errorf("%w: Abandon - delete session: %v", ErrInternal, err)
	}

	s.logger.Info("Abandon: session=%s discarded", sess.ID)
	return nil
}

// Шаги

func (s *Service) advanceRescheduleDetails(sess *domain.WizardSession, input *models.RescheduleDetailsInput) ([]models.FieldError, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: rescheduleDetails input is required", ErrInvalidInput)
	}

	if errs := validateRescheduleDetails(input); len(errs) > 0 {
		return errs, nil
	}

	sess.RescheduleReason = domain.RescheduleReason(input.Reason)
	sess.RescheduleNotes = input.Notes
	sess.GoTo(domain.StepTimeSelection)

	return nil, nil
}

func (s *Service) advanceTimeSelection(ctx context.Context, sess *domain.WizardSession, input *models.TimeSelectionInput) ([]models.FieldError, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: timeSelection input is required", ErrInvalidInput)
	}

	date, err := models.ParseDate(input.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, input.Date)
	}
	start, err := models.ParseTime(input.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid time %q", ErrInvalidInput, input.Time)
	}

	sess.Draft = sess.Draft.WithSchedule(date, start)

	// Выбранное время определяет максимум для следующего шага
	maxHours, err := s.computeMaxDuration(ctx, sess.Draft.ProviderID, date, start)
	if err != nil {
		return nil, err
	}
	sess.MaxDurationHours = maxHours

	// Выбор слота - самодостаточный ввод шага, переход происходит сразу
	sess.GoTo(domain.StepDuration)

	return nil, nil
}

func (s *Service) advanceDuration(sess *domain.WizardSession, input *models.DurationInput) ([]models.FieldError, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: duration input is required", ErrInvalidInput)
	}

	maxHours := sess.MaxDurationHours
	if maxHours <= 0 {
		maxHours = domain.FallbackMaxDurationHours
	}

	if errs := validateDuration(input, maxHours); len(errs) > 0 {
		return errs, nil
	}

	// Инвариант: totalPrice пересчитывается при каждой смене длительности
	sess.Draft = sess.Draft.WithDuration(input.DurationHours)
	sess.GoTo(domain.StepLocation)

	return nil, nil
}

func (s *Service) advanceLocation(sess *domain.WizardSession, input *models.LocationInput) ([]models.FieldError, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: location input is required", ErrInvalidInput)
	}

	if errs := validateLocation(input); len(errs) > 0 {
		return errs, nil
	}

	sess.Draft.LocationType = domain.LocationType(input.LocationType)
	sess.Draft.ClientAddress = input.ClientAddress
	sess.Draft.ClientCity = input.ClientCity
	sess.Draft.ClientPostalCode = input.ClientPostalCode
	sess.Draft.LocationInstructions = input.LocationInstructions
	sess.Draft.ClientPhone = input.ClientPhone
	sess.Draft.ClientEmail = input.ClientEmail
	sess.Draft.ContactPreference = input.ContactPreference
	sess.Draft.SpecialRequirements = input.SpecialRequirements

	// Режимы изменения пропускают шаг оплаты: локация - последний шаг
	if !sess.IsChangeMode() {
		sess.GoTo(domain.StepPayment)
	}

	return nil, nil
}

func (s *Service) advancePayment(sess *domain.WizardSession, input *models.PaymentInput) ([]models.FieldError, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: payment input is required", ErrInvalidInput)
	}

	if errs := validatePayment(input); len(errs) > 0 {
		return errs, nil
	}

	// Последний шаг: сессия остаётся на нём до сабмита
	sess.Draft.PaymentMethod = input.PaymentMethod
	sess.Draft.AgreedToTerms = input.AgreedToTerms

	return nil, nil
}

// Вспомогательные методы

func (s *Service) seedFromService(ctx context.Context, sess *domain.WizardSession, req *models.StartSessionRequest) error {
	if req.ProviderID <= 0 || req.ServiceID <= 0 {
		return fmt.Errorf("%w: providerID and serviceID must be positive", ErrInvalidInput)
	}

	svc, err := s.providerClient.GetService(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		switch {
		case errors.Is(err, providerClient.ErrProviderNotFound):
			return ErrProviderNotFound
		case errors.Is(err, providerClient.ErrServiceNotFound):
			return ErrServiceNotFound
		default:
			s.logger.Error("Start: failed to get service provider=%d service=%d: %v",
				req.ProviderID, req.ServiceID, err)
			return fmt.Errorf("%w: Start - get service: %v", ErrInternal, err)
		}
	}

	sess.Draft.ProviderID = req.ProviderID
	sess.Draft.ServiceID = req.ServiceID
	sess.Draft.TravelFee = svc.TravelFee
	sess.Draft = sess.Draft.WithBasePrice(svc.BasePrice)

	// Предвыбранный слот пропускает шаг выбора времени
	if req.PreselectedDate != nil && req.PreselectedTime != nil {
		date, err := models.ParseDate(*req.PreselectedDate)
		if err != nil {
			return fmt.Errorf("%w: invalid preselected date %q", ErrInvalidInput, *req.PreselectedDate)
		}
		start, err := models.ParseTime(*req.PreselectedTime)
		if err != nil {
			return fmt.Errorf("%w: invalid preselected time %q", ErrInvalidInput, *req.PreselectedTime)
		}

		sess.Draft = sess.Draft.WithSchedule(date, start)

		maxHours, err := s.computeMaxDuration(ctx, req.ProviderID, date, start)
		if err != nil {
			return err
		}
		sess.MaxDurationHours = maxHours
		sess.CurrentStep = domain.StepDuration
		return nil
	}

	sess.CurrentStep = domain.StepTimeSelection
	return nil
}

func (s *Service) seedFromQuote(ctx context.Context, sess *domain.WizardSession, req *models.StartSessionRequest, now time.Time) error {
	quote, err := s.quoteRepo.GetByID(ctx, *req.QuoteID)
	if err != nil {
		if errors.Is(err, quoteRepo.ErrQuoteNotFound) {
			return ErrQuoteNotFound
		}
		s.logger.Error("Start: failed to get quote id=%d: %v", *req.QuoteID, err)
		return fmt.Errorf("%w: Start - get quote: %v", ErrInternal, err)
	}

	if quote.ClientID != req.ClientID {
		return ErrAccessDenied
	}
	if !quote.IsAcceptable(now) {
		return ErrQuoteNotAcceptable
	}

	// Смета несёт слот, длительность и цену - заполняем черновик целиком,
	// шаг выбора времени пропускается
	sess.Draft.ProviderID = quote.ProviderID
	sess.Draft.ServiceID = quote.ServiceID
	sess.Draft.QuoteID = &quote.ID
	sess.Draft.TravelFee = quote.TravelFee
	sess.Draft = sess.Draft.
		WithBasePrice(quote.BasePrice).
		WithSchedule(quote.ProposedDate, quote.ProposedTime).
		WithDuration(quote.DurationHours)

	maxHours, err := s.computeMaxDuration(ctx, quote.ProviderID, quote.ProposedDate, quote.ProposedTime)
	if err != nil {
		return err
	}
	sess.MaxDurationHours = maxHours
	sess.CurrentStep = domain.StepDuration

	return nil
}

// computeMaxDuration вычисляет максимум для шага длительности.
// Недоступный график не блокирует мастер записи: используется
// консервативное значение по умолчанию
func (s *Service) computeMaxDuration(ctx context.Context, providerID int64, date time.Time, start types.TimeString) (int, error) {
	hours, err := s.providerClient.GetWorkingHoursWithGracefulDegradation(ctx, providerID, date)
	if err != nil {
		if errors.Is(err, providerClient.ErrAvailabilityUnknown) {
			s.logger.Warn("computeMaxDuration: availability unknown for provider=%d, fallback %dh",
				providerID, domain.FallbackMaxDurationHours)
			return domain.FallbackMaxDurationHours, nil
		}
		if errors.Is(err, providerClient.ErrProviderNotFound) {
			return 0, ErrProviderNotFound
		}
		return 0, fmt.Errorf("%w: computeMaxDuration: %v", ErrInternal, err)
	}

	if !hours.IsAvailable {
		return domain.FallbackMaxDurationHours, nil
	}

	maxHours, err := hours.MaxDurationFrom(start)
	if err != nil {
		return 0, fmt.Errorf("%w: computeMaxDuration: invalid time %q: %v", ErrInvalidInput, start, err)
	}
	if maxHours < domain.MinDurationHours {
		// Время у самого конца рабочего дня: предлагать нечего, но шаг
		// не блокируем
		maxHours = domain.MinDurationHours
	}

	return maxHours, nil
}

func (s *Service) loadOwned(ctx context.Context, sessionID string, clientID int64) (*domain.WizardSession, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("loadOwned: failed to load session=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: load session: %v", ErrInternal, err)
	}

	if sess.ClientID != clientID {
		s.logger.Warn("loadOwned: client=%d denied access to session=%s", clientID, sessionID)
		return nil, ErrAccessDenied
	}

	return sess, nil
}

// readyToSubmit проверяет, что черновик собран полностью и сессию можно отправлять
func (s *Service) readyToSubmit(sess *domain.WizardSession) bool {
	d := sess.Draft

	if d.AppointmentDate.IsZero() || d.AppointmentTime.IsZero() {
		return false
	}
	if d.DurationHours < domain.MinDurationHours {
		return false
	}
	if !d.LocationType.IsValid() {
		return false
	}
	if d.LocationType.RequiresAddress() && (d.ClientAddress == "" || d.ClientCity == "") {
		return false
	}
	if !d.HasContact() {
		return false
	}

	if sess.IsChangeMode() {
		// Для изменений пустой diff означает, что отправлять нечего
		return sess.HasChanges()
	}

	return d.PaymentMethod != "" && d.AgreedToTerms
}

// draftFromAppointment строит черновик из существующей записи
func draftFromAppointment(appt *domain.Appointment) domain.BookingDraft {
	draft := domain.BookingDraft{
		ServiceID:       appt.ServiceID,
		ProviderID:      appt.ProviderID,
		QuoteID:         appt.QuoteID,
		AppointmentDate: appt.AppointmentDate,
		AppointmentTime: appt.StartTime,
		DurationHours:   appt.DurationHours,
		BasePrice:       appt.BasePrice,
		TotalPrice:      appt.TotalPrice,
		TravelFee:       appt.TravelFee,
		LocationType:    appt.LocationType,
		PaymentMethod:   appt.PaymentMethod,
		BookingSource:   appt.BookingSource,
		AgreedToTerms:   true,
	}

	draft.ClientAddress = stringValue(appt.ClientAddress)
	draft.ClientCity = stringValue(appt.ClientCity)
	draft.ClientPostalCode = stringValue(appt.ClientPostalCode)
	draft.LocationInstructions = stringValue(appt.LocationInstructions)
	draft.ClientPhone = stringValue(appt.ClientPhone)
	draft.ClientEmail = stringValue(appt.ClientEmail)
	draft.ContactPreference = stringValue(appt.ContactPreference)
	draft.SpecialRequirements = stringValue(appt.SpecialRequirements)

	return draft
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
