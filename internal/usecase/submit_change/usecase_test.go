package submit_change

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	sessionStore "github.com/m04kA/SMC-AppointmentService/internal/infra/session"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	rescheduleStorage "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/reschedule"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
	intervals   []domain.BookedInterval
	updated     *domain.Appointment
	updateErr   error
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if f.appointment == nil || f.appointment.ID != id {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, appt *domain.Appointment) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = appt
	return nil
}

func (f *fakeAppointmentRepo) GetIntervalsByProviderAndDate(_ context.Context, _ int64, _ time.Time, _ *int64) ([]domain.BookedInterval, error) {
	return f.intervals, nil
}

type fakeRescheduleRepo struct {
	created   *domain.RescheduleRequest
	pending   *domain.RescheduleRequest
	createErr error
}

func (f *fakeRescheduleRepo) Create(_ context.Context, req *domain.RescheduleRequest) (*domain.RescheduleRequest, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	req.ID = 900
	req.Status = domain.RescheduleStatusPending
	f.created = req
	return req, nil
}

func (f *fakeRescheduleRepo) GetPendingByAppointmentID(_ context.Context, appointmentID int64) (*domain.RescheduleRequest, error) {
	if f.pending == nil || f.pending.AppointmentID != appointmentID {
		return nil, rescheduleStorage.ErrRequestNotFound
	}
	return f.pending, nil
}

type fakeSessions struct {
	sessions map[string]*domain.WizardSession
	locked   map[string]bool
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		sessions: map[string]*domain.WizardSession{},
		locked:   map[string]bool{},
	}
}

func (f *fakeSessions) Get(_ context.Context, id string) (*domain.WizardSession, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return nil, sessionStore.ErrSessionNotFound
	}
	return sess, nil
}

func (f *fakeSessions) SaveSubmitted(_ context.Context, sess *domain.WizardSession) error {
	f.sessions[sess.ID] = sess
	return nil
}

func (f *fakeSessions) AcquireSubmitLock(_ context.Context, id string) (bool, error) {
	if f.locked[id] {
		return false, nil
	}
	f.locked[id] = true
	return true, nil
}

func (f *fakeSessions) ReleaseSubmitLock(_ context.Context, id string) error {
	delete(f.locked, id)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func baseDraft() domain.BookingDraft {
	return domain.BookingDraft{
		ServiceID:       7,
		ProviderID:      42,
		AppointmentDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		AppointmentTime: types.TimeString("10:00"),
		DurationHours:   2,
		BasePrice:       120,
		TotalPrice:      240,
		LocationType:    domain.LocationClientAddress,
		ClientAddress:   "12 Main St",
		ClientCity:      "Springfield",
		ClientPhone:     "+1 555 123 4567",
		AgreedToTerms:   true,
	}
}

func pendingAppointment() *domain.Appointment {
	draft := baseDraft()
	return &domain.Appointment{
		ID:              300,
		ClientID:        101,
		ProviderID:      42,
		ServiceID:       7,
		Status:          domain.StatusPending,
		AppointmentDate: draft.AppointmentDate,
		StartTime:       draft.AppointmentTime,
		DurationHours:   draft.DurationHours,
		TotalPrice:      draft.TotalPrice,
		LocationType:    draft.LocationType,
		ClientAddress:   ptr.Ptr(draft.ClientAddress),
		ClientCity:      ptr.Ptr(draft.ClientCity),
		ClientPhone:     ptr.Ptr(draft.ClientPhone),
	}
}

func editSession() *domain.WizardSession {
	original := baseDraft()
	changed := original.WithSchedule(
		time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC),
		types.TimeString("14:00"),
	)
	return &domain.WizardSession{
		ID:            "sess-1",
		ClientID:      101,
		Mode:          domain.ModeEdit,
		CurrentStep:   domain.StepLocation,
		Draft:         changed,
		Original:      &original,
		AppointmentID: ptr.Ptr(int64(300)),
	}
}

func rescheduleSession() *domain.WizardSession {
	sess := editSession()
	sess.Mode = domain.ModeReschedule
	sess.RescheduleReason = domain.ReasonWorkConflict
	sess.RescheduleNotes = "Смена рабочего графика, нужен другой день"
	return sess
}

type fakeTimeProvider struct {
	now time.Time
}

func (f fakeTimeProvider) Now() time.Time {
	return f.now
}

func newChangeUseCase(sessions *fakeSessions, appts *fakeAppointmentRepo, resch *fakeRescheduleRepo) *UseCase {
	uc := NewUseCase(appts, resch, sessions, fakeTxManager{}, 90, nopLogger{})
	uc.timeProvider = fakeTimeProvider{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_DirectEdit_Success(t *testing.T) {
	sessions := newFakeSessions()
	sessions.sessions["sess-1"] = editSession()
	appts := &fakeAppointmentRepo{appointment: pendingAppointment()}

	uc := newChangeUseCase(sessions, appts, &fakeRescheduleRepo{})

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "sess-1", ClientID: 101})
	require.NoError(t, err)

	assert.Equal(t, int64(300), resp.AppointmentID)
	assert.Equal(t, string(domain.ModeEdit), resp.Mode)
	assert.True(t, resp.Applied)
	assert.Nil(t, resp.RescheduleRequestID)
	assert.ElementsMatch(t, []string{"appointmentDate", "appointmentTime"}, resp.ChangedFields)

	// Запись перезаписана полями черновика
	require.NotNil(t, appts.updated)
	assert.Equal(t, time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC), appts.updated.AppointmentDate)
	assert.Equal(t, types.TimeString("14:00"), appts.updated.StartTime)

	// Сессия превращена в надгробие, блокировка снята
	tombstone, ok := sessions.sessions["sess-1"]
	require.True(t, ok)
	assert.True(t, tombstone.IsSubmitted())
	require.NotNil(t, tombstone.SubmittedAppointmentID)
	assert.Equal(t, int64(300), *tombstone.SubmittedAppointmentID)
	assert.False(t, sessions.locked["sess-1"])
}

func TestExecute_DirectEdit_SlotConflict(t *testing.T) {
	sessions := newFakeSessions()
	sessions.sessions["sess-1"] = editSession()
	appts := &fakeAppointmentRepo{
		appointment: pendingAppointment(),
		intervals: []domain.BookedInterval{
			{StartTime: types.TimeString("15:00"), EndTime: types.TimeString("17:00")},
		},
	}

	uc := newChangeUseCase(sessions, appts, &fakeRescheduleRepo{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: "sess-1", ClientID: 101})
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Сессия сохранена для повторного выбора времени
	_, ok := sessions.sessions["sess-1"]
	assert.True(t, ok)
	assert.Nil(t, appts.updated)
}

func TestExecute_DirectEdit_AdjacentIntervalNotConflicting(t *testing.T) {
	sessions := newFakeSessions()
	sessions.sessions["sess-1"] = editSession()
	appts := &fakeAppointmentRepo{
		appointment: pendingAppointment(),
		// 12:00-14:00 заканчивается ровно в начале нового слота 14:00
		intervals: []domain.BookedInterval{
			{StartTime: types.TimeString("12:00"), EndTime: types.TimeString("14:00")},
			{StartTime: types.TimeString("16:00"), EndTime: types.TimeString("17:00")},
		},
	}

	uc := newChangeUseCase(sessions, appts, &fakeRescheduleRepo{})

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "sess-1", ClientID: 101})
	require.NoError(t, err)
	assert.True(t, resp.Applied)
}

func TestExecute_DirectEdit_StatusChanged(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusConfirmed

	sessions := newFakeSessions()
	sessions.sessions["sess-1"] = editSession()
	appts := &fakeAppointmentRepo{appointment: appt}

	uc := newChangeUseCase(sessions, appts, &fakeRescheduleRepo{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: "sess-1", ClientID: 101})
	assert.ErrorIs(t, err, ErrStatusChanged)
	assert.Nil(t, appts.updated)
}

func TestExecute_Reschedule_Success(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusConfirmed

	sessions := newFakeSessions()
	sessions.sessions["sess-1"] = rescheduleSession()
	appts := &fakeAppointmentRepo{appointment: appt}
	resch := &fakeRescheduleRepo{}

	uc := newChangeUseCase(sessions, appts, resch)

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "sess-1", ClientID: 101})
	require.NoError(t, err)

	assert.Equal(t, string(domain.ModeReschedule), resp.Mode)
	assert.False(t, resp.Applied)
	require.NotNil(t, resp.RescheduleRequestID)
	assert.Equal(t, int64(900), *resp.RescheduleRequestID)

	// Сама запись не изменена: перенос ждёт одобрения исполнителя
	assert.Nil(t, appts.updated)

	require.NotNil(t, resch.created)
	assert.Equal(t, int64(300), resch.created.AppointmentID)
	assert.Equal(t, domain.ReasonWorkConflict, resch.created.Reason)
	assert.Equal(t, types.TimeString("14:00"), resch.created.RequestedTime)
	assert.Equal(t, domain.RescheduleStatusPending, resch.created.Status)

	tombstone, ok := sessions.sessions["sess-1"]
	require.True(t, ok)
	assert.True(t, tombstone.IsSubmitted())
}

func TestExecute_DirectEdit_DateBeyondAdvanceHorizon(t *testing.T) {
	sess := editSession()
	sess.Draft.AppointmentDate = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	sessions := newFakeSessions()
	sessions.sessions["sess-1"] = sess
	appts := &fakeAppointmentRepo{appointment: pendingAppointment()}

	uc := newChangeUseCase(sessions, appts, &fakeRescheduleRepo{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: "sess-1", ClientID: 101})
	require.ErrorIs(t, err, ErrDateTooFarInFuture)

	// Запись не тронута, сессия сохранена
	assert.Nil(t, appts.updated)
	_, ok := sessions.sessions["sess-1"]
	assert.True(t, ok)
}

func TestExecute_Reschedule_AlreadyPending(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusConfirmed

	sessions := newFakeSessions()
	sessions.sessions["sess-1"] = rescheduleSession()
	appts := &fakeAppointmentRepo{appointment: appt}
	resch := &fakeRescheduleRepo{
		pending: &domain.RescheduleRequest{
			ID:            850,
			AppointmentID: 300,
			Status:        domain.RescheduleStatusPending,
		},
	}

	uc := newChangeUseCase(sessions, appts, resch)

	_, err := uc.Execute(context.Background(), &Request{SessionID: "sess-1", ClientID: 101})
	require.ErrorIs(t, err, ErrReschedulePending)

	// Новый запрос не создан, сессия сохранена для повторной попытки позже
	assert.Nil(t, resch.created)
	_, ok := sessions.sessions["sess-1"]
	assert.True(t, ok)
}

func TestExecute_Reschedule_MissingReason(t *testing.T) {
	sess := rescheduleSession()
	sess.RescheduleReason = ""
	sess.RescheduleNotes = ""

	sessions := newFakeSessions()
	sessions.sessions["sess-1"] = sess

	uc := newChangeUseCase(sessions, &fakeAppointmentRepo{appointment: pendingAppointment()}, &fakeRescheduleRepo{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: "sess-1", ClientID: 101})
	assert.ErrorIs(t, err, ErrDraftIncomplete)
}

func TestExecute_NoChanges(t *testing.T) {
	sess := rescheduleSession()
	sess.Draft = *sess.Original

	sessions := newFakeSessions()
	sessions.sessions["sess-1"] = sess
	appts := &fakeAppointmentRepo{appointment: pendingAppointment()}
	resch := &fakeRescheduleRepo{}

	uc := newChangeUseCase(sessions, appts, resch)

	_, err := uc.Execute(context.Background(), &Request{SessionID: "sess-1", ClientID: 101})
	assert.ErrorIs(t, err, ErrNoChanges)

	// Ничего не создано и не изменено
	assert.Nil(t, appts.updated)
	assert.Nil(t, resch.created)
	_, ok := sessions.sessions["sess-1"]
	assert.True(t, ok)
}

func TestExecute_WrongMode(t *testing.T) {
	sess := editSession()
	sess.Mode = domain.ModeBooking
	sess.AppointmentID = nil

	sessions := newFakeSessions()
	sessions.sessions["sess-1"] = sess

	uc := newChangeUseCase(sessions, &fakeAppointmentRepo{}, &fakeRescheduleRepo{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: "sess-1", ClientID: 101})
	assert.ErrorIs(t, err, ErrWrongMode)
}

func TestExecute_SessionMismatch(t *testing.T) {
	sessions := newFakeSessions()
	sessions.sessions["sess-1"] = editSession()

	uc := newChangeUseCase(sessions, &fakeAppointmentRepo{appointment: pendingAppointment()}, &fakeRescheduleRepo{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: "sess-1", ClientID: 101, AppointmentID: 999})
	assert.ErrorIs(t, err, ErrSessionMismatch)
}

func TestExecute_AccessDenied(t *testing.T) {
	sessions := newFakeSessions()
	sessions.sessions["sess-1"] = editSession()

	uc := newChangeUseCase(sessions, &fakeAppointmentRepo{}, &fakeRescheduleRepo{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: "sess-1", ClientID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_SessionNotFound(t *testing.T) {
	uc := newChangeUseCase(newFakeSessions(), &fakeAppointmentRepo{}, &fakeRescheduleRepo{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: "missing", ClientID: 101})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExecute_SubmissionInFlight(t *testing.T) {
	sessions := newFakeSessions()
	sessions.sessions["sess-1"] = editSession()
	sessions.locked["sess-1"] = true

	uc := newChangeUseCase(sessions, &fakeAppointmentRepo{appointment: pendingAppointment()}, &fakeRescheduleRepo{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: "sess-1", ClientID: 101})
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
}

func TestExecute_AppointmentGone(t *testing.T) {
	sessions := newFakeSessions()
	sessions.sessions["sess-1"] = editSession()

	uc := newChangeUseCase(sessions, &fakeAppointmentRepo{}, &fakeRescheduleRepo{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: "sess-1", ClientID: 101})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
