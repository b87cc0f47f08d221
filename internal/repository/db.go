package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBConn is the subset of pgxpool.Pool (and pgx.Tx) used by the repositories.
type DBConn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Transactor runs fn inside a database transaction. Repository calls made
// with the ctx passed to fn join that transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}

// conn returns the transaction bound to ctx, or db when there is none.
func conn(ctx context.Context, db DBConn) DBConn {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return db
}

type TxManager struct {
	db          DBConn
	lockTimeout time.Duration
}

// NewTxManager returns a Transactor. A positive lockTimeout bounds how long a
// transaction waits for a row lock before failing with ErrStorageUnavailable.
func NewTxManager(db DBConn, lockTimeout time.Duration) *TxManager {
	return &TxManager{db: db, lockTimeout: lockTimeout}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", translateError(err, nil))
	}

	rollback := func() {
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}
	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if m.lockTimeout > 0 {
		if _, err := tx.Exec(ctx, lockTimeoutStatement(m.lockTimeout)); err != nil {
			rollback()
			return fmt.Errorf("set lock timeout: %w", translateError(err, nil))
		}
	}

	if err := fn(withTx(ctx, tx)); err != nil {
		rollback()
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", translateError(err, nil))
	}
	return nil
}

func lockTimeoutStatement(d time.Duration) string {
	return fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", d.Milliseconds())
}

var _ Transactor = (*TxManager)(nil)
