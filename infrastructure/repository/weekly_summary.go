package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

const resumoHistoryTable = "resumo_history"

// WeeklySummaryRepository acessa o histórico de resumos semanais fechados.
// Insert roda dentro da transação do fechamento, junto com o zeramento da
// planilha.
type WeeklySummaryRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, summary *domain.WeeklySummary) error
	List(ctx context.Context) ([]*domain.WeeklySummary, error)
}

type weeklySummaryRepository struct {
	conn *postgres.Connection
}

func NewWeeklySummaryRepository(conn *postgres.Connection) WeeklySummaryRepository {
	return &weeklySummaryRepository{
		conn: conn,
	}
}

func (r *weeklySummaryRepository) Insert(ctx context.Context, tx *sql.Tx, summary *domain.WeeklySummary) error {
	breakdownJSON, err := json.Marshal(summary.Breakdown)
	if err != nil {
		return fmt.Errorf("erro ao serializar breakdown para JSON: %w", err)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert(resumoHistoryTable).
		Columns("week_label", "started_at", "ended_at", "total", "breakdown").
		Values(
			summary.WeekLabel,
			summary.StartedAt,
			summary.EndedAt,
			summary.Total,
			breakdownJSON,
		).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = tx.QueryRowContext(ctx, query, args...).Scan(&summary.ID, &summary.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", wrapStoreError(err), pqErr.Code)
		}
		return wrapStoreError(err)
	}

	return nil
}

func (r *weeklySummaryRepository) List(ctx context.Context) ([]*domain.WeeklySummary, error) {
	query, args, err := squirrel.
		Select("id", "week_label", "started_at", "ended_at", "total", "breakdown", "created_at").
		From(resumoHistoryTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	defer rows.Close()

	summaries := make([]*domain.WeeklySummary, 0)
	for rows.Next() {
		summary := &domain.WeeklySummary{}
		var breakdownJSON []byte

		err := rows.Scan(
			&summary.ID,
			&summary.WeekLabel,
			&summary.StartedAt,
			&summary.EndedAt,
			&summary.Total,
			&breakdownJSON,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear resumo semanal: %w", err)
		}

		if breakdownJSON != nil {
			if err := json.Unmarshal(breakdownJSON, &summary.Breakdown); err != nil {
				return nil, fmt.Errorf("erro ao deserializar JSON de breakdown: %w", err)
			}
		}

		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return summaries, nil
}
