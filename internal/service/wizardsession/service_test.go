package wizardsession

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	sessionStore "github.com/m04kA/SMC-AppointmentService/internal/infra/session"
	quoteRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/quote"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/wizardsession/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// memoryStore хранит сессии в памяти, сериализуя их как настоящее хранилище,
// чтобы тесты не зависели от разделяемых указателей
type memoryStore struct {
	data map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
}

func (m *memoryStore) Save(_ context.Context, sess *domain.WizardSession) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	m.data[sess.ID] = raw
	return nil
}

func (m *memoryStore) Get(_ context.Context, sessionID string) (*domain.WizardSession, error) {
	raw, ok := m.data[sessionID]
	if !ok {
		return nil, sessionStore.ErrSessionNotFound
	}
	var sess domain.WizardSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (m *memoryStore) Delete(_ context.Context, sessionID string) error {
	delete(m.data, sessionID)
	return nil
}

type fakeQuoteRepo struct {
	quotes map[int64]*domain.Quote
}

func (f *fakeQuoteRepo) GetByID(_ context.Context, id int64) (*domain.Quote, error) {
	q, ok := f.quotes[id]
	if !ok {
		return nil, quoteRepo.ErrQuoteNotFound
	}
	return q, nil
}

type fakeProviderClient struct {
	service  *providerservice.ServiceInfo
	hours    *domain.WorkingHours
	hoursErr error
}

func (f *fakeProviderClient) GetService(_ context.Context, _, _ int64) (*providerservice.ServiceInfo, error) {
	if f.service == nil {
		return nil, providerservice.ErrServiceNotFound
	}
	return f.service, nil
}

func (f *fakeProviderClient) GetWorkingHoursWithGracefulDegradation(_ context.Context, _ int64, _ time.Time) (*domain.WorkingHours, error) {
	if f.hoursErr != nil {
		return nil, f.hoursErr
	}
	return f.hours, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *memoryStore, *fakeQuoteRepo, *fakeProviderClient) {
	t.Helper()

	store := newMemoryStore()
	quotes := &fakeQuoteRepo{quotes: map[int64]*domain.Quote{}}
	provider := &fakeProviderClient{
		service: &providerservice.ServiceInfo{
			ID:         7,
			ProviderID: 42,
			Name:       "Deep cleaning",
			BasePrice:  120,
			TravelFee:  15,
		},
		hours: &domain.WorkingHours{
			IsAvailable: true,
			StartTime:   types.TimeString("09:00"),
			EndTime:     types.TimeString("17:00"),
		},
	}

	svc := NewService(store, quotes, provider, nopLogger{})
	svc.timeProvider = fixedTime{now: testNow}

	return svc, store, quotes, provider
}

func startBooking(t *testing.T, svc *Service) *models.SessionResponse {
	t.Helper()

	resp, err := svc.Start(context.Background(), &models.StartSessionRequest{
		ClientID:   101,
		ProviderID: 42,
		ServiceID:  7,
	})
	require.NoError(t, err)
	return resp
}

func TestStart_BookingBeginsAtTimeSelection(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	resp := startBooking(t, svc)

	assert.Equal(t, string(domain.ModeBooking), resp.Mode)
	assert.Equal(t, string(domain.StepTimeSelection), resp.CurrentStep)
	assert.Equal(t, 120.0, resp.Draft.BasePrice)
	assert.Equal(t, 15.0, resp.Draft.TravelFee)
	assert.False(t, resp.ReadyToSubmit)
}

func TestStart_PreselectedSlotSkipsTimeSelection(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	resp, err := svc.Start(context.Background(), &models.StartSessionRequest{
		ClientID:        101,
		ProviderID:      42,
		ServiceID:       7,
		PreselectedDate: ptr.Ptr("2026-03-15"),
		PreselectedTime: ptr.Ptr("13:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StepDuration), resp.CurrentStep)
	assert.Equal(t, "2026-03-15", resp.Draft.AppointmentDate)
	assert.Equal(t, "13:00", resp.Draft.AppointmentTime)
	// 13:00 до 17:00 - максимум 4 часа
	assert.Equal(t, 4, resp.MaxDurationHours)
}

func TestStart_UnknownService(t *testing.T) {
	svc, _, _, provider := newTestService(t)
	provider.service = nil

	_, err := svc.Start(context.Background(), &models.StartSessionRequest{
		ClientID:   101,
		ProviderID: 42,
		ServiceID:  999,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func advance(t *testing.T, svc *Service, sessionID string, input models.AdvanceStepRequest) *models.SessionResponse {
	t.Helper()

	input.SessionID = sessionID
	input.ClientID = 101
	resp, err := svc.Advance(context.Background(), &input)
	require.NoError(t, err)
	return resp
}

func TestAdvance_FullBookingFlow(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	sess := startBooking(t, svc)

	// Шаг выбора времени: слот выбран, переход происходит сразу
	resp := advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		TimeSelection: &models.TimeSelectionInput{Date: "2026-03-15", Time: "10:00"},
	})
	require.Empty(t, resp.Errors)
	assert.Equal(t, string(domain.StepDuration), resp.CurrentStep)
	assert.Equal(t, 7, resp.MaxDurationHours)

	// Шаг длительности: totalPrice пересчитан
	resp = advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Duration: &models.DurationInput{DurationHours: 3},
	})
	require.Empty(t, resp.Errors)
	assert.Equal(t, string(domain.StepLocation), resp.CurrentStep)
	assert.Equal(t, 360.0, resp.Draft.TotalPrice)

	// Шаг локации
	resp = advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Location: &models.LocationInput{
			LocationType:  string(domain.LocationClientAddress),
			ClientAddress: "12 Main St",
			ClientCity:    "Springfield",
			ClientPhone:   "+1 (555) 123-4567",
		},
	})
	require.Empty(t, resp.Errors)
	assert.Equal(t, string(domain.StepPayment), resp.CurrentStep)
	assert.False(t, resp.ReadyToSubmit)

	// Шаг оплаты: последний, сессия остаётся на нём и готова к отправке
	resp = advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Payment: &models.PaymentInput{PaymentMethod: "card", AgreedToTerms: true},
	})
	require.Empty(t, resp.Errors)
	assert.Equal(t, string(domain.StepPayment), resp.CurrentStep)
	assert.True(t, resp.ReadyToSubmit)
}

func TestAdvance_DurationOutOfRange(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	sess := startBooking(t, svc)

	advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		TimeSelection: &models.TimeSelectionInput{Date: "2026-03-15", Time: "13:00"},
	})

	// Максимум 4 часа (13:00-17:00), запрашиваем 6
	resp := advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Duration: &models.DurationInput{DurationHours: 6},
	})

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, domain.CodeDurationOutOfRange, resp.Errors[0].Code)
	// Сессия осталась на шаге длительности
	assert.Equal(t, string(domain.StepDuration), resp.CurrentStep)
}

func TestAdvance_LocationErrorsCollectedTogether(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	sess := startBooking(t, svc)

	advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		TimeSelection: &models.TimeSelectionInput{Date: "2026-03-15", Time: "10:00"},
	})
	advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Duration: &models.DurationInput{DurationHours: 2},
	})

	// Адресный тип локации без адреса и города, контактов нет,
	// все ошибки шага возвращаются разом
	resp := advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Location: &models.LocationInput{
			LocationType: string(domain.LocationClientAddress),
		},
	})

	codes := make([]string, len(resp.Errors))
	for i, e := range resp.Errors {
		codes[i] = e.Code
	}
	assert.ElementsMatch(t, []string{
		domain.CodeLocationIncomplete,
		domain.CodeLocationIncomplete,
		domain.CodeContactMissing,
	}, codes)
}

func TestAdvance_ContactMissingOnly(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	sess := startBooking(t, svc)

	advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		TimeSelection: &models.TimeSelectionInput{Date: "2026-03-15", Time: "10:00"},
	})
	advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Duration: &models.DurationInput{DurationHours: 2},
	})

	// Адрес заполнен, контактов нет: ровно одна ошибка CONTACT_MISSING
	resp := advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Location: &models.LocationInput{
			LocationType:  string(domain.LocationClientAddress),
			ClientAddress: "12 Main St",
			ClientCity:    "Springfield",
		},
	})

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, domain.CodeContactMissing, resp.Errors[0].Code)
}

func TestAdvance_InvalidContactFormats(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	sess := startBooking(t, svc)

	advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		TimeSelection: &models.TimeSelectionInput{Date: "2026-03-15", Time: "10:00"},
	})
	advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Duration: &models.DurationInput{DurationHours: 2},
	})

	resp := advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Location: &models.LocationInput{
			LocationType: string(domain.LocationProviderLocation),
			ClientPhone:  "123",
			ClientEmail:  "not-an-email",
		},
	})

	codes := make([]string, len(resp.Errors))
	for i, e := range resp.Errors {
		codes[i] = e.Code
	}
	assert.ElementsMatch(t, []string{
		domain.CodeContactInvalid,
		domain.CodeContactInvalid,
	}, codes)
}

func TestAdvance_TermsNotAccepted(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	sess := startBooking(t, svc)

	advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		TimeSelection: &models.TimeSelectionInput{Date: "2026-03-15", Time: "10:00"},
	})
	advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Duration: &models.DurationInput{DurationHours: 2},
	})
	advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Location: &models.LocationInput{
			LocationType: string(domain.LocationProviderLocation),
			ClientEmail:  "client@example.com",
		},
	})

	resp := advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Payment: &models.PaymentInput{PaymentMethod: "card", AgreedToTerms: false},
	})

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, domain.CodeTermsNotAccepted, resp.Errors[0].Code)
	assert.False(t, resp.ReadyToSubmit)
}

func TestBack_PreservesEnteredData(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	sess := startBooking(t, svc)

	advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		TimeSelection: &models.TimeSelectionInput{Date: "2026-03-15", Time: "10:00"},
	})
	advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Duration: &models.DurationInput{DurationHours: 3},
	})

	// Назад к шагу длительности
	resp, err := svc.Back(context.Background(), sess.SessionID, 101)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StepDuration), resp.CurrentStep)
	// Введённая длительность и цена не сброшены
	assert.Equal(t, 3, resp.Draft.DurationHours)
	assert.Equal(t, 360.0, resp.Draft.TotalPrice)

	// Ещё раз назад - к выбору времени, расписание на месте
	resp, err = svc.Back(context.Background(), sess.SessionID, 101)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StepTimeSelection), resp.CurrentStep)
	assert.Equal(t, "2026-03-15", resp.Draft.AppointmentDate)

	// На первом шаге Back ничего не делает
	resp, err = svc.Back(context.Background(), sess.SessionID, 101)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StepTimeSelection), resp.CurrentStep)
}

func TestBack_ThenForwardAgain(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	sess := startBooking(t, svc)

	advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		TimeSelection: &models.TimeSelectionInput{Date: "2026-03-15", Time: "10:00"},
	})
	advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Duration: &models.DurationInput{DurationHours: 3},
	})

	_, err := svc.Back(context.Background(), sess.SessionID, 101)
	require.NoError(t, err)
	_, err = svc.Back(context.Background(), sess.SessionID, 101)
	require.NoError(t, err)

	// Пользователь выбирает другое время и проходит вперёд:
	// длительность с предыдущего захода сохранена
	resp := advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		TimeSelection: &models.TimeSelectionInput{Date: "2026-03-16", Time: "11:00"},
	})
	assert.Equal(t, string(domain.StepDuration), resp.CurrentStep)
	assert.Equal(t, 3, resp.Draft.DurationHours)
	assert.Equal(t, "2026-03-16", resp.Draft.AppointmentDate)
}

func TestAdvance_PriceInvariantAcrossDurationChanges(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	sess := startBooking(t, svc)

	advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		TimeSelection: &models.TimeSelectionInput{Date: "2026-03-15", Time: "09:00"},
	})
	resp := advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Duration: &models.DurationInput{DurationHours: 2},
	})
	assert.Equal(t, 240.0, resp.Draft.TotalPrice)

	// Возврат и смена длительности: цена следует за последним значением
	_, err := svc.Back(context.Background(), sess.SessionID, 101)
	require.NoError(t, err)
	resp = advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Duration: &models.DurationInput{DurationHours: 5},
	})
	assert.Equal(t, 600.0, resp.Draft.TotalPrice)
}

func TestStart_QuoteFlowPrefillsDraft(t *testing.T) {
	svc, _, quotes, _ := newTestService(t)

	quotes.quotes[9] = &domain.Quote{
		ID:            9,
		ClientID:      101,
		ProviderID:    42,
		ServiceID:     7,
		BasePrice:     200,
		TravelFee:     25,
		ProposedDate:  time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		ProposedTime:  types.TimeString("10:00"),
		DurationHours: 3,
		Status:        domain.QuoteStatusPending,
	}

	resp, err := svc.Start(context.Background(), &models.StartSessionRequest{
		ClientID: 101,
		QuoteID:  ptr.Ptr(int64(9)),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StepDuration), resp.CurrentStep)
	assert.Equal(t, "2026-03-20", resp.Draft.AppointmentDate)
	assert.Equal(t, 3, resp.Draft.DurationHours)
	assert.Equal(t, 600.0, resp.Draft.TotalPrice)
	require.NotNil(t, resp.Draft.QuoteID)
	assert.Equal(t, int64(9), *resp.Draft.QuoteID)
}

func TestStart_QuoteOfAnotherClient(t *testing.T) {
	svc, _, quotes, _ := newTestService(t)

	quotes.quotes[9] = &domain.Quote{
		ID:       9,
		ClientID: 202,
		Status:   domain.QuoteStatusPending,
	}

	_, err := svc.Start(context.Background(), &models.StartSessionRequest{
		ClientID: 101,
		QuoteID:  ptr.Ptr(int64(9)),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestStart_ExpiredQuote(t *testing.T) {
	svc, _, quotes, _ := newTestService(t)

	expired := testNow.Add(-time.Hour)
	quotes.quotes[9] = &domain.Quote{
		ID:        9,
		ClientID:  101,
		Status:    domain.QuoteStatusPending,
		ExpiresAt: &expired,
	}

	_, err := svc.Start(context.Background(), &models.StartSessionRequest{
		ClientID: 101,
		QuoteID:  ptr.Ptr(int64(9)),
	})
	assert.ErrorIs(t, err, ErrQuoteNotAcceptable)
}

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              55,
		ClientID:        101,
		ProviderID:      42,
		ServiceID:       7,
		AppointmentDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationHours:   2,
		BasePrice:       120,
		TotalPrice:      240,
		LocationType:    domain.LocationClientAddress,
		ClientAddress:   ptr.Ptr("12 Main St"),
		ClientCity:      ptr.Ptr("Springfield"),
		ClientPhone:     ptr.Ptr("+1 555 123 4567"),
		PaymentMethod:   "card",
		Status:          domain.StatusPending,
	}
}

func TestStartChange_PendingAppointmentUsesEditMode(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	resp, err := svc.StartChange(context.Background(), 101, pendingAppointment())
	require.NoError(t, err)

	assert.Equal(t, string(domain.ModeEdit), resp.Mode)
	assert.Equal(t, string(domain.StepTimeSelection), resp.CurrentStep)
	// Черновик совпадает со снимком - изменений нет, отправлять нечего
	assert.False(t, resp.HasChanges)
	assert.False(t, resp.ReadyToSubmit)
}

func TestStartChange_ConfirmedAppointmentUsesRescheduleMode(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	appt := pendingAppointment()
	appt.Status = domain.StatusConfirmed

	resp, err := svc.StartChange(context.Background(), 101, appt)
	require.NoError(t, err)

	assert.Equal(t, string(domain.ModeReschedule), resp.Mode)
	assert.Equal(t, string(domain.StepRescheduleDetails), resp.CurrentStep)
}

func TestAdvance_RescheduleDetailsValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	appt := pendingAppointment()
	appt.Status = domain.StatusConfirmed
	sess, err := svc.StartChange(context.Background(), 101, appt)
	require.NoError(t, err)

	// Неизвестная причина и пустые заметки
	resp := advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		RescheduleDetails: &models.RescheduleDetailsInput{Reason: "bored"},
	})
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, string(domain.StepRescheduleDetails), resp.CurrentStep)

	// Валидная причина открывает шаг выбора времени
	resp = advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		RescheduleDetails: &models.RescheduleDetailsInput{
			Reason: string(domain.ReasonWorkConflict),
			Notes:  "need to move this to the afternoon",
		},
	})
	require.Empty(t, resp.Errors)
	assert.Equal(t, string(domain.StepTimeSelection), resp.CurrentStep)
}

func TestAdvance_ChangeFlowSkipsPayment(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	sess, err := svc.StartChange(context.Background(), 101, pendingAppointment())
	require.NoError(t, err)

	// Сдвигаем время записи
	resp := advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		TimeSelection: &models.TimeSelectionInput{Date: "2026-03-21", Time: "11:00"},
	})
	require.Empty(t, resp.Errors)

	resp = advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Duration: &models.DurationInput{DurationHours: 2},
	})
	require.Empty(t, resp.Errors)

	resp = advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Location: &models.LocationInput{
			LocationType:  string(domain.LocationClientAddress),
			ClientAddress: "12 Main St",
			ClientCity:    "Springfield",
			ClientPhone:   "+1 555 123 4567",
		},
	})
	require.Empty(t, resp.Errors)

	// Локация - последний шаг режима изменения, шага оплаты нет
	assert.Equal(t, string(domain.StepLocation), resp.CurrentStep)
	assert.True(t, resp.HasChanges)
	assert.True(t, resp.ReadyToSubmit)
}

func TestAdvance_UnchangedDraftNotReady(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	sess, err := svc.StartChange(context.Background(), 101, pendingAppointment())
	require.NoError(t, err)

	// Проходим шаги, вводя исходные значения без изменений
	advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		TimeSelection: &models.TimeSelectionInput{Date: "2026-03-20", Time: "10:00"},
	})
	advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Duration: &models.DurationInput{DurationHours: 2},
	})
	resp := advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		Location: &models.LocationInput{
			LocationType:  string(domain.LocationClientAddress),
			ClientAddress: "12 Main St",
			ClientCity:    "Springfield",
			ClientPhone:   "+1 555 123 4567",
		},
	})

	require.Empty(t, resp.Errors)
	assert.False(t, resp.HasChanges)
	// Пустой diff: отправка должна быть заблокирована
	assert.False(t, resp.ReadyToSubmit)
}

func TestGet_AccessDenied(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	sess := startBooking(t, svc)

	_, err := svc.Get(context.Background(), sess.SessionID, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestAdvance_SubmittedSessionRejected(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	sess := startBooking(t, svc)

	stored, err := store.Get(context.Background(), sess.SessionID)
	require.NoError(t, err)
	stored.MarkSubmitted(500)
	require.NoError(t, store.Save(context.Background(), stored))

	// Завершённая сессия — надгробие: шаги по ней больше не ходят
	_, err = svc.Advance(context.Background(), &models.AdvanceStepRequest{
		SessionID:     sess.SessionID,
		ClientID:      101,
		TimeSelection: &models.TimeSelectionInput{Date: "2026-03-15", Time: "10:00"},
	})
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	_, err = svc.Back(context.Background(), sess.SessionID, 101)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestAbandon_RemovesSession(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	sess := startBooking(t, svc)

	require.NoError(t, svc.Abandon(context.Background(), sess.SessionID, 101))

	_, err := svc.Get(context.Background(), sess.SessionID, 101)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Повторная отмена уже исчезнувшей сессии безобидна
	assert.NoError(t, svc.Abandon(context.Background(), sess.SessionID, 101))
}

func TestAdvance_MaxDurationFallbackWhenAvailabilityUnknown(t *testing.T) {
	svc, _, _, provider := newTestService(t)
	sess := startBooking(t, svc)

	provider.hoursErr = providerservice.ErrAvailabilityUnknown

	// График недоступен: шаг не блокируется, максимум по умолчанию
	resp := advance(t, svc, sess.SessionID, models.AdvanceStepRequest{
		TimeSelection: &models.TimeSelectionInput{Date: "2026-03-15", Time: "10:00"},
	})
	require.Empty(t, resp.Errors)
	assert.Equal(t, string(domain.StepDuration), resp.CurrentStep)
	assert.Equal(t, domain.FallbackMaxDurationHours, resp.MaxDurationHours)
}
