package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-tracker-api/internal/config"
)

type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(*sql.Tx) error) error
}

// TxRunner é o recorte de Conn usado por quem só precisa de transações.
type TxRunner interface {
	RunInTransaction(context.Context, func(*sql.Tx) error) error
}

type Connection struct {
	*sql.DB
}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return &Connection{DB: db}, nil
}

// NewConnectionWithRetry tenta conectar repetidamente enquanto o banco sobe
// junto com a aplicação (deploy via docker-compose).
func NewConnectionWithRetry(
	ctx context.Context,
	cfg config.Database,
	attempts int,
	wait time.Duration,
) (*Connection, error) {
	var conn *Connection
	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		conn, err = NewConnection(ctx, cfg)
		if err == nil {
			return conn, nil
		}

		logrus.WithError(err).Warnf("Banco ainda não está pronto (tentativa %d/%d), aguardando...", attempt, attempts)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, err
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// RunInTransaction executa fn dentro de uma transação única: commit no
// sucesso, rollback em erro ou panic.
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if err := tx.Rollback(); err != nil {
			return err
		}
		return err
	}

	return tx.Commit()
}
