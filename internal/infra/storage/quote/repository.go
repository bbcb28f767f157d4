package quote

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы со сметами мастеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория смет
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает смету по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Quote, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"client_id",
		"provider_id",
		"service_id",
		"base_price",
		"travel_fee",
		"proposed_date",
		"proposed_time",
		"duration_hours",
		"status",
		"expires_at",
		"created_at",
		"updated_at",
	).
		From("quotes").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var q domain.Quote
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&q.ID,
		&q.ClientID,
		&q.ProviderID,
		&q.ServiceID,
		&q.BasePrice,
		&q.TravelFee,
		&q.ProposedDate,
		&q.ProposedTime,
		&q.DurationHours,
		&q.Status,
		&q.ExpiresAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan quote: %v", ErrScanRow, err)
	}

	q.CreatedAt = createdAt.Time
	q.UpdatedAt = updatedAt.Time

	return &q, nil
}

// MarkAccepted переводит смету в статус accepted.
// Условный UPDATE по статусу pending: если смета уже принята, возвращает
// ErrAlreadyAccepted, если отклонена или истекла - ErrNotAcceptable.
// Вызывается внутри транзакции сабмита записи (двухфазное принятие)
func (r *Repository) MarkAccepted(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("quotes").
		Set("status", domain.QuoteStatusAccepted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.QuoteStatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkAccepted - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkAccepted - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkAccepted - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected > 0 {
		return nil
	}

	// UPDATE не сработал: выясняем текущее состояние сметы
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	switch current.Status {
	case domain.QuoteStatusAccepted:
		return ErrAlreadyAccepted
	default:
		return ErrNotAcceptable
	}
}
