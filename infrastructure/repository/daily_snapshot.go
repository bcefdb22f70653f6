package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

const dailySalesTable = "daily_sales"

// DailySnapshotRepository acessa o histórico imutável de vendas diárias.
// InsertBatch roda dentro da transação do arquivamento: ou todos os
// snapshots do dia entram, ou nenhum.
type DailySnapshotRepository interface {
	InsertBatch(ctx context.Context, tx *sql.Tx, snapshots []*domain.DailySnapshot) error
	GetByDate(ctx context.Context, date time.Time) ([]*domain.DailySnapshot, error)
	GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*domain.DailySnapshot, error)
	GetByMonth(ctx context.Context, year int, month time.Month) ([]*domain.DailySnapshot, error)
	ListAll(ctx context.Context) ([]*domain.DailySnapshot, error)
}

type dailySnapshotRepository struct {
	conn *postgres.Connection
}

func NewDailySnapshotRepository(conn *postgres.Connection) DailySnapshotRepository {
	return &dailySnapshotRepository{
		conn: conn,
	}
}

func (r *dailySnapshotRepository) InsertBatch(ctx context.Context, tx *sql.Tx, snapshots []*domain.DailySnapshot) error {
	for _, snapshot := range snapshots {
		query, args, err := squirrel.StatementBuilder.
			Insert(dailySalesTable).
			Columns("employee_name", "day", "weekday", "value", "batch_id").
			Values(
				snapshot.EmployeeName,
				snapshot.Date.Format(time.DateOnly),
				snapshot.Weekday.String(),
				snapshot.Value,
				snapshot.BatchID,
			).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return wrapStoreError(err)
		}
	}

	return nil
}

func (r *dailySnapshotRepository) GetByDate(ctx context.Context, date time.Time) ([]*domain.DailySnapshot, error) {
	return r.query(ctx, squirrel.Eq{"day": date.Format(time.DateOnly)})
}

func (r *dailySnapshotRepository) GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*domain.DailySnapshot, error) {
	return r.query(ctx, squirrel.And{
		squirrel.GtOrEq{"day": startDate.Format(time.DateOnly)},
		squirrel.LtOrEq{"day": endDate.Format(time.DateOnly)},
	})
}

func (r *dailySnapshotRepository) GetByMonth(ctx context.Context, year int, month time.Month) ([]*domain.DailySnapshot, error) {
	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.AddDate(0, 1, -1)
	return r.GetByDateRange(ctx, firstDay, lastDay)
}

func (r *dailySnapshotRepository) ListAll(ctx context.Context) ([]*domain.DailySnapshot, error) {
	return r.query(ctx, nil)
}

func (r *dailySnapshotRepository) query(ctx context.Context, where interface{}) ([]*domain.DailySnapshot, error) {
	builder := squirrel.
		Select("id", "employee_name", "day", "weekday", "value", "batch_id", "created_at").
		From(dailySalesTable).
		OrderBy("created_at DESC, employee_name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	defer rows.Close()

	snapshots := make([]*domain.DailySnapshot, 0)
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshot diário: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}

func scanSnapshot(rows *sql.Rows) (*domain.DailySnapshot, error) {
	snapshot := &domain.DailySnapshot{}
	var weekdayKey string

	err := rows.Scan(
		&snapshot.ID,
		&snapshot.EmployeeName,
		&snapshot.Date,
		&weekdayKey,
		&snapshot.Value,
		&snapshot.BatchID,
		&snapshot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	weekday, err := domain.ParseWeekday(weekdayKey)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter dia da semana: %w", err)
	}
	snapshot.Weekday = weekday

	return snapshot, nil
}
