package list_client_appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error

	gotClientID int64
	gotStatus   *domain.AppointmentStatus
}

func (f *fakeAppointmentRepo) GetByClientID(_ context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	f.gotClientID = clientID
	f.gotStatus = status
	if f.err != nil {
		return nil, f.err
	}
	return f.appointments, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func clientAppointments() []*domain.Appointment {
	return []*domain.Appointment{
		{
			ID:              300,
			ClientID:        101,
			ProviderID:      42,
			ServiceID:       7,
			AppointmentDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
			StartTime:       types.TimeString("10:00"),
			DurationHours:   2,
			Status:          domain.StatusPending,
		},
		{
			ID:              301,
			ClientID:        101,
			ProviderID:      42,
			ServiceID:       7,
			AppointmentDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
			StartTime:       types.TimeString("14:00"),
			DurationHours:   1,
			Status:          domain.StatusCompleted,
		},
	}
}

func TestExecute_ReturnsOwnHistory(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: clientAppointments()}
	uc := NewUseCase(repo, nopLogger{})

	appointments, err := uc.Execute(context.Background(), 101, 101, nil)
	require.NoError(t, err)

	assert.Len(t, appointments, 2)
	assert.Equal(t, int64(101), repo.gotClientID)
	assert.Nil(t, repo.gotStatus)
}

func TestExecute_PassesStatusFilter(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: clientAppointments()[:1]}
	uc := NewUseCase(repo, nopLogger{})

	status := domain.StatusPending
	appointments, err := uc.Execute(context.Background(), 101, 101, &status)
	require.NoError(t, err)

	assert.Len(t, appointments, 1)
	require.NotNil(t, repo.gotStatus)
	assert.Equal(t, domain.StatusPending, *repo.gotStatus)
}

func TestExecute_ForeignClientDenied(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: clientAppointments()}
	uc := NewUseCase(repo, nopLogger{})

	_, err := uc.Execute(context.Background(), 101, 202, nil)
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.gotClientID)
}

func TestExecute_InvalidIDs(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), 0, 101, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), 101, -1, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryError(t *testing.T) {
	repo := &fakeAppointmentRepo{err: errors.New("connection reset")}
	uc := NewUseCase(repo, nopLogger{})

	_, err := uc.Execute(context.Background(), 101, 101, nil)
	require.ErrorIs(t, err, ErrInternal)
}
