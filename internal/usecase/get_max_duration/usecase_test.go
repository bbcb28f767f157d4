package get_max_duration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	providerClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeProviderClient struct {
	hours *domain.WorkingHours
	err   error
}

func (f *fakeProviderClient) GetWorkingHoursWithGracefulDegradation(_ context.Context, _ int64, _ time.Time) (*domain.WorkingHours, error) {
	return f.hours, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

func TestExecute_DerivesFromWorkingHours(t *testing.T) {
	client := &fakeProviderClient{
		hours: &domain.WorkingHours{
			IsAvailable: true,
			StartTime:   types.TimeString("09:00"),
			EndTime:     types.TimeString("17:00"),
		},
	}
	uc := NewUseCase(client, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: 42,
		Date:       testDate,
		StartTime:  types.TimeString("13:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.MaxDurationHours)
	assert.False(t, resp.Fallback)
}

func TestExecute_CappedByCeiling(t *testing.T) {
	client := &fakeProviderClient{
		hours: &domain.WorkingHours{
			IsAvailable: true,
			StartTime:   types.TimeString("06:00"),
			EndTime:     types.TimeString("23:00"),
		},
	}
	uc := NewUseCase(client, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: 42,
		Date:       testDate,
		StartTime:  types.TimeString("06:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.MaxDurationCeilingHours, resp.MaxDurationHours)
}

func TestExecute_FallbackWhenAvailabilityUnknown(t *testing.T) {
	client := &fakeProviderClient{err: providerClient.ErrAvailabilityUnknown}
	uc := NewUseCase(client, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: 42,
		Date:       testDate,
		StartTime:  types.TimeString("10:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.FallbackMaxDurationHours, resp.MaxDurationHours)
	assert.True(t, resp.Fallback)
}

func TestExecute_FallbackWhenProviderUnavailableThatDay(t *testing.T) {
	client := &fakeProviderClient{hours: &domain.WorkingHours{IsAvailable: false}}
	uc := NewUseCase(client, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: 42,
		Date:       testDate,
		StartTime:  types.TimeString("10:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.FallbackMaxDurationHours, resp.MaxDurationHours)
	assert.True(t, resp.Fallback)
}

func TestExecute_ProviderNotFound(t *testing.T) {
	client := &fakeProviderClient{err: providerClient.ErrProviderNotFound}
	uc := NewUseCase(client, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: 42,
		Date:       testDate,
		StartTime:  types.TimeString("10:00"),
	})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeProviderClient{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: 0,
		Date:       testDate,
		StartTime:  types.TimeString("10:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
