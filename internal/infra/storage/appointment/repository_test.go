package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func newTestRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func sampleAppointment() *domain.Appointment {
	return &domain.Appointment{
		ClientID:        101,
		ProviderID:      42,
		ServiceID:       7,
		AppointmentDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationHours:   2,
		BasePrice:       120,
		TotalPrice:      240,
		LocationType:    domain.LocationClientAddress,
		PaymentMethod:   "card",
		IdempotencyKey:  "idem-1",
		Status:          domain.StatusPending,
	}
}

func TestCreate(t *testing.T) {
	repo, mock := newTestRepo(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO appointments`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(500), now, now))

	appt, err := repo.Create(context.Background(), sampleAppointment())
	require.NoError(t, err)

	assert.Equal(t, int64(500), appt.ID)
	assert.Equal(t, now, appt.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateIdempotencyKey(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`INSERT INTO appointments`).
		WillReturnError(&pq.Error{Code: pqUniqueViolation})

	_, err := repo.Create(context.Background(), sampleAppointment())
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM appointments WHERE id = \$1`).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows(appointmentColumns))

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetIntervalsByProviderAndDate(t *testing.T) {
	repo, mock := newTestRepo(t)

	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"start_time", "duration_hours"}).
		AddRow("09:00", 2).
		AddRow("14:00", 1)

	mock.ExpectQuery(`SELECT start_time, duration_hours FROM appointments`).
		WillReturnRows(rows)

	intervals, err := repo.GetIntervalsByProviderAndDate(context.Background(), 42, date, nil)
	require.NoError(t, err)

	require.Len(t, intervals, 2)
	assert.Equal(t, types.TimeString("09:00"), intervals[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), intervals[0].EndTime)
	assert.Equal(t, types.TimeString("14:00"), intervals[1].StartTime)
	assert.Equal(t, types.TimeString("15:00"), intervals[1].EndTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetIntervalsByProviderAndDate_ExcludesAppointment(t *testing.T) {
	repo, mock := newTestRepo(t)

	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	excludeID := int64(300)

	// Исключённая запись не попадает в выборку: собственный интервал
	// не конфликтует сам с собой при переносе
	mock.ExpectQuery(`SELECT start_time, duration_hours FROM appointments .+ id <> \$\d`).
		WillReturnRows(sqlmock.NewRows([]string{"start_time", "duration_hours"}))

	intervals, err := repo.GetIntervalsByProviderAndDate(context.Background(), 42, date, &excludeID)
	require.NoError(t, err)
	assert.Empty(t, intervals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(`UPDATE appointments SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	appt := sampleAppointment()
	appt.ID = 999

	err := repo.Update(context.Background(), appt)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(`UPDATE appointments SET status = \$\d, cancellation_reason`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	reason := "клиент передумал"
	err := repo.Cancel(context.Background(), 500, domain.StatusCancelledByClient, &reason)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(`UPDATE appointments SET status`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 999, domain.StatusCancelledByClient, nil)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
