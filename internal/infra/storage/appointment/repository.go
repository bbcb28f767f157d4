package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const pqUniqueViolation = "23505"

var appointmentColumns = []string{
	"id",
	"client_id",
	"provider_id",
	"service_id",
	"quote_id",
	"appointment_date",
	"start_time",
	"duration_hours",
	"base_price",
	"total_price",
	"travel_fee",
	"location_type",
	"client_address",
	"client_city",
	"client_postal_code",
	"location_instructions",
	"client_phone",
	"client_email",
	"contact_preference",
	"special_requirements",
	"payment_method",
	"booking_source",
	"idempotency_key",
	"status",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись на услугу
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Вставка защищена уникальным индексом по idempotency_key: повторный сабмит
// того же черновика возвращает ErrDuplicateSubmission, вызывающая сторона
// может получить уже созданную запись через GetByIdempotencyKey
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"client_id",
			"provider_id",
			"service_id",
			"quote_id",
			"appointment_date",
			"start_time",
			"duration_hours",
			"base_price",
			"total_price",
			"travel_fee",
			"location_type",
			"client_address",
			"client_city",
			"client_postal_code",
			"location_instructions",
			"client_phone",
			"client_email",
			"contact_preference",
			"special_requirements",
			"payment_method",
			"booking_source",
			"idempotency_key",
			"status",
		).
		Values(
			appt.ClientID,
			appt.ProviderID,
			appt.ServiceID,
			appt.QuoteID,
			appt.AppointmentDate,
			appt.StartTime,
			appt.DurationHours,
			appt.BasePrice,
			appt.TotalPrice,
			appt.TravelFee,
			appt.LocationType,
			appt.ClientAddress,
			appt.ClientCity,
			appt.ClientPostalCode,
			appt.LocationInstructions,
			appt.ClientPhone,
			appt.ClientEmail,
			appt.ContactPreference,
			appt.SpecialRequirements,
			appt.PaymentMethod,
			appt.BookingSource,
			appt.IdempotencyKey,
			appt.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrDuplicateSubmission
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanAppointment(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByIdempotencyKey получает запись по ключу идемпотентности
// Используется для возврата уже созданной записи при повторном сабмите
func (r *Repository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"idempotency_key": key}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanAppointment(executor.QueryRowContext(ctx, query, args...), "GetByIdempotencyKey")
}

// GetIntervalsByProviderAndDate получает занятые интервалы мастера на дату.
// Учитываются только активные записи (pending, confirmed, in_progress) -
// завершенные и отмененные слоты не занимают.
//
// excludeAppointmentID исключает конкретную запись из выборки: при переносе
// или редактировании собственный интервал записи не должен конфликтовать сам с собой.
//
// Если вызов выполняется внутри транзакции, строки блокируются через FOR UPDATE
// для защиты от параллельного создания пересекающейся записи
func (r *Repository) GetIntervalsByProviderAndDate(ctx context.Context, providerID int64, date time.Time, excludeAppointmentID *int64) ([]domain.BookedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("start_time", "duration_hours").
		From("appointments").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"appointment_date": date}).
		Where(squirrel.Eq{"status": activeStatusStrings}).
		OrderBy("start_time ASC")

	if excludeAppointmentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeAppointmentID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetIntervalsByProviderAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetIntervalsByProviderAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.BookedInterval, 0)
	for rows.Next() {
		var startTime types.TimeString
		var durationHours int

		if err := rows.Scan(&startTime, &durationHours); err != nil {
			return nil, fmt.Errorf("%w: GetIntervalsByProviderAndDate - scan row: %v", ErrScanRow, err)
		}

		endTime, err := startTime.AddMinutes(durationHours * domain.MinutesPerHour)
		if err != nil {
			return nil, fmt.Errorf("%w: GetIntervalsByProviderAndDate - compute end time: %v", ErrScanRow, err)
		}

		intervals = append(intervals, domain.BookedInterval{
			StartTime: startTime,
			EndTime:   endTime,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetIntervalsByProviderAndDate - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// GetByClientID получает список записей клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("appointment_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt, err := r.scanAppointmentRow(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// Update перезаписывает редактируемые поля записи (дата, время, длительность,
// локация, контакты, цены). Используется при прямом редактировании pending записи
func (r *Repository) Update(ctx context.Context, appt *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("appointment_date", appt.AppointmentDate).
		Set("start_time", appt.StartTime).
		Set("duration_hours", appt.DurationHours).
		Set("total_price", appt.TotalPrice).
		Set("location_type", appt.LocationType).
		Set("client_address", appt.ClientAddress).
		Set("client_city", appt.ClientCity).
		Set("client_postal_code", appt.ClientPostalCode).
		Set("location_instructions", appt.LocationInstructions).
		Set("client_phone", appt.ClientPhone).
		Set("client_email", appt.ClientEmail).
		Set("contact_preference", appt.ContactPreference).
		Set("special_requirements", appt.SpecialRequirements).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appt.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Cancel переводит запись в статус отмены с опциональной причиной
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanAppointment(row rowScanner, op string) (*domain.Appointment, error) {
	appt, err := scanInto(row)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %v", ErrScanRow, op, err)
	}
	return appt, nil
}

func (r *Repository) scanAppointmentRow(row rowScanner) (*domain.Appointment, error) {
	appt, err := scanInto(row)
	if err != nil {
		return nil, fmt.Errorf("%w: scanAppointmentRow - scan row: %v", ErrScanRow, err)
	}
	return appt, nil
}

func scanInto(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.ClientID,
		&appt.ProviderID,
		&appt.ServiceID,
		&appt.QuoteID,
		&appt.AppointmentDate,
		&appt.StartTime,
		&appt.DurationHours,
		&appt.BasePrice,
		&appt.TotalPrice,
		&appt.TravelFee,
		&appt.LocationType,
		&appt.ClientAddress,
		&appt.ClientCity,
		&appt.ClientPostalCode,
		&appt.LocationInstructions,
		&appt.ClientPhone,
		&appt.ClientEmail,
		&appt.ContactPreference,
		&appt.SpecialRequirements,
		&appt.PaymentMethod,
		&appt.BookingSource,
		&appt.IdempotencyKey,
		&appt.Status,
		&appt.CancellationReason,
		&appt.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}
