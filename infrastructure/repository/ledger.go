package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

const salesTable = "sales"

// LedgerRepository acessa a planilha viva: um valor por (vendedor, dia útil).
type LedgerRepository interface {
	Load(ctx context.Context) (domain.Ledger, error)
	SaveAll(ctx context.Context, ledger domain.Ledger) error
	UpsertValue(ctx context.Context, employee string, day domain.Weekday, value float64) error
	ZeroAll(ctx context.Context, tx *sql.Tx) error
}

type ledgerRepository struct {
	conn *postgres.Connection
}

func NewLedgerRepository(conn *postgres.Connection) LedgerRepository {
	return &ledgerRepository{
		conn: conn,
	}
}

func (r *ledgerRepository) Load(ctx context.Context) (domain.Ledger, error) {
	query, args, err := squirrel.
		Select("employee_name", "day", "value").
		From(salesTable).
		OrderBy("employee_name ASC").
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

	ledger := make(domain.Ledger)
	for rows.Next() {
		var employee, dayKey string
		var value float64

		if err := rows.Scan(&employee, &dayKey, &value); err != nil {
			return nil, fmt.Errorf("erro ao escanear a planilha: %w", err)
		}

		day, err := domain.ParseWeekday(dayKey)
		if err != nil {
			// Linhas com dias desconhecidos são ignoradas, não derrubam a
			// leitura inteira da planilha.
			continue
		}

		values := ledger[employee]
		values.SetValue(day, value)
		ledger[employee] = values
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ledger, nil
}

func (r *ledgerRepository) SaveAll(ctx context.Context, ledger domain.Ledger) error {
	names := make([]string, 0, len(ledger))
	for name := range ledger {
		names = append(names, name)
	}
	sort.Strings(names)

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, name := range names {
			values := ledger[name]
			for _, day := range domain.Weekdays() {
				if err := upsertValue(ctx, tx, name, day, values.Value(day)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *ledgerRepository) UpsertValue(ctx context.Context, employee string, day domain.Weekday, value float64) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return upsertValue(ctx, tx, employee, day, value)
	})
}

// ZeroAll zera todos os campos de dia útil de todos os vendedores dentro da
// transação do fechamento semanal.
func (r *ledgerRepository) ZeroAll(ctx context.Context, tx *sql.Tx) error {
	query, args, err := squirrel.
		Update(salesTable).
		Set("value", 0).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return wrapStoreError(err)
	}

	return nil
}

func upsertValue(ctx context.Context, tx *sql.Tx, employee string, day domain.Weekday, value float64) error {
	query, args, err := squirrel.StatementBuilder.
		Insert(salesTable).
		Columns("employee_name", "day", "value").
		Values(employee, day.String(), value).
		Suffix(`
			ON CONFLICT (employee_name, day) DO UPDATE SET
				value = EXCLUDED.value
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return wrapStoreError(err)
	}

	return nil
}
