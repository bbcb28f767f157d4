package cancel_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointment *domain.Appointment

	cancelledID     int64
	cancelledStatus domain.AppointmentStatus
	cancelledReason *string
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if f.appointment == nil || f.appointment.ID != id {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id int64, status domain.AppointmentStatus, reason *string) error {
	f.cancelledID = id
	f.cancelledStatus = status
	f.cancelledReason = reason
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              300,
		ClientID:        101,
		ProviderID:      42,
		ServiceID:       7,
		AppointmentDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationHours:   2,
		Status:          domain.StatusPending,
	}
}

func TestExecute_ClientCancelsOwnAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: pendingAppointment()}
	uc := NewUseCase(repo, nopLogger{})

	reason := "планы изменились"
	appt, err := uc.Execute(context.Background(), 300, 101, &reason)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelledByClient, appt.Status)
	assert.Equal(t, int64(300), repo.cancelledID)
	assert.Equal(t, domain.StatusCancelledByClient, repo.cancelledStatus)
	require.NotNil(t, repo.cancelledReason)
	assert.Equal(t, reason, *repo.cancelledReason)
}

func TestExecute_ProviderCancels(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: pendingAppointment()}
	uc := NewUseCase(repo, nopLogger{})

	appt, err := uc.Execute(context.Background(), 300, 42, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelledByProvider, appt.Status)
	assert.Nil(t, repo.cancelledReason)
}

func TestExecute_StrangerDenied(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: pendingAppointment()}
	uc := NewUseCase(repo, nopLogger{})

	_, err := uc.Execute(context.Background(), 300, 777, nil)
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.cancelledID)
}

func TestExecute_InProgressNotCancellable(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusInProgress
	repo := &fakeAppointmentRepo{appointment: appt}
	uc := NewUseCase(repo, nopLogger{})

	_, err := uc.Execute(context.Background(), 300, 101, nil)
	require.ErrorIs(t, err, ErrCannotCancel)
	assert.Zero(t, repo.cancelledID)
}

func TestExecute_NotFound(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), 999, 101, nil)
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}
