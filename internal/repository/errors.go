package repository

import (
	"errors"
	"fmt"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgInvalidText         = "22P02"
	pgLockNotAvailable    = "55P03"
	pgQueryCanceled       = "57014"
	pgDeadlockDetected    = "40P01"
)

// translateError maps driver errors onto domain sentinels. notFound replaces
// pgx.ErrNoRows when given.
func translateError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if notFound != nil {
			return notFound
		}
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, pgErr.ConstraintName)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %s", domain.ErrReferentialConflict, pgErr.ConstraintName)
	case pgCheckViolation, pgInvalidText:
		return domain.NewValidationError("%s", pgErr.Message)
	case pgLockNotAvailable, pgQueryCanceled, pgDeadlockDetected:
		return fmt.Errorf("%w: %s", domain.ErrStorageUnavailable, pgErr.Message)
	}
	return err
}
