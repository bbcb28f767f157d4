package reschedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с запросами на перенос записи
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория запросов на перенос
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запрос на перенос в статусе pending_approval
func (r *Repository) Create(ctx context.Context, req *domain.RescheduleRequest) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reschedule_requests").
		Columns(
			"appointment_id",
			"client_id",
			"requested_date",
			"requested_time",
			"duration_hours",
			"reason",
			"notes",
			"location_type",
			"client_address",
			"client_city",
			"client_postal_code",
			"location_instructions",
			"client_phone",
			"client_email",
			"contact_preference",
			"status",
		).
		Values(
			req.AppointmentID,
			req.ClientID,
			req.RequestedDate,
			req.RequestedTime,
			req.DurationHours,
			req.Reason,
			req.Notes,
			req.LocationType,
			req.ClientAddress,
			req.ClientCity,
			req.ClientPostalCode,
			req.LocationInstructions,
			req.ClientPhone,
			req.ClientEmail,
			req.ContactPreference,
			domain.RescheduleStatusPending,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.Status = domain.RescheduleStatusPending
	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetPendingByAppointmentID получает активный запрос на перенос для записи, если он есть
func (r *Repository) GetPendingByAppointmentID(ctx context.Context, appointmentID int64) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"appointment_id",
		"client_id",
		"requested_date",
		"requested_time",
		"duration_hours",
		"reason",
		"notes",
		"location_type",
		"client_address",
		"client_city",
		"client_postal_code",
		"location_instructions",
		"client_phone",
		"client_email",
		"contact_preference",
		"status",
		"created_at",
		"updated_at",
	).
		From("reschedule_requests").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		Where(squirrel.Eq{"status": domain.RescheduleStatusPending}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByAppointmentID - build select query: %v", ErrBuildQuery, err)
	}

	var req domain.RescheduleRequest
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&req.AppointmentID,
		&req.ClientID,
		&req.RequestedDate,
		&req.RequestedTime,
		&req.DurationHours,
		&req.Reason,
		&req.Notes,
		&req.LocationType,
		&req.ClientAddress,
		&req.ClientCity,
		&req.ClientPostalCode,
		&req.LocationInstructions,
		&req.ClientPhone,
		&req.ClientEmail,
		&req.ContactPreference,
		&req.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByAppointmentID - scan request: %v", ErrScanRow, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}
