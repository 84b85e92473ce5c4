package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arcana-cards/arcana/internal/domain/transactor"
	"github.com/uptrace/bun"
)

const DefaultTxTimeout = 30 * time.Second

type txKey struct{}

// TxOptions configures transaction behavior
type TxOptions struct {
	IsolationLevel sql.IsolationLevel
	Timeout        time.Duration
}

func StandardTxOptions() TxOptions {
	return TxOptions{
		IsolationLevel: sql.LevelReadCommitted,
		Timeout:        DefaultTxTimeout,
	}
}

// TxManager runs units of work in a bun transaction carried by the context.
// Nested calls join the outer transaction.
type TxManager struct {
	db   *bun.DB
	opts TxOptions
}

var _ transactor.Transactor = (*TxManager)(nil)

func NewTxManager(db *bun.DB, opts TxOptions) *TxManager {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTxTimeout
	}
	return &TxManager{db: db, opts: opts}
}

func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(bun.Tx); ok {
		return fn(ctx)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, m.opts.Timeout)
	defer cancel()

	tx, err := m.db.BeginTx(timeoutCtx, &sql.TxOptions{Isolation: m.opts.IsolationLevel})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(timeoutCtx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Conn returns the transaction carried by ctx, or db when there is none.
func Conn(ctx context.Context, db *bun.DB) bun.IDB {
	if tx, ok := ctx.Value(txKey{}).(bun.Tx); ok {
		return tx
	}
	return db
}
