package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/tair/pos-engine/pkg/apperror"
)

// PostgreSQL error codes that mean "another transaction got in the way".
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

// IsConflict reports whether err is a retryable concurrency failure.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
			return true
		}
	}
	return false
}

// Classify maps a raw persistence error into the application taxonomy.
// Errors that already carry a kind pass through unchanged.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &apperror.Error{Kind: apperror.KindNotFound, Message: op + ": record not found", Cause: err}
	}

	if IsConflict(err) {
		return apperror.Conflict(err)
	}

	return apperror.Store(op, err)
}
