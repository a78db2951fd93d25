package errors

import (
	"context"
	stderrs "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLSTATE classes the store reacts to
const (
	pgUniqueViolation        = "23505"
	pgForeignKeyViolation    = "23503"
	pgNotNullViolation       = "23502"
	pgCheckViolation         = "23514"
	pgStringTruncation       = "22001"
	pgInvalidText            = "22P02"
	pgSerializationFailure   = "40001"
	pgDeadlockDetected       = "40P01"
	pgLockNotAvailable       = "55P03"
	pgReadOnlyTransaction    = "25006"
	pgCannotConnectNow       = "57P03"
	pgAdminShutdown          = "57P01"
	pgQueryCanceledByTimeout = "57014"
)

// StoreCode classifies a driver error from either backend; ok is false for non driver errors
func StoreCode(err error) (ErrorCode, bool) {
	var pe *pgconn.PgError
	if stderrs.As(err, &pe) {
		switch pe.Code {
		case pgUniqueViolation:
			return ErrorCodeDuplicateKey, true
		case pgNotNullViolation, pgCheckViolation:
			return ErrorCodeValidation, true
		case pgForeignKeyViolation, pgStringTruncation, pgInvalidText:
			return ErrorCodeInvalidArgument, true
		case pgReadOnlyTransaction, pgCannotConnectNow, pgAdminShutdown:
			return ErrorCodeUnavailable, true
		}
		return ErrorCodeDB, true
	}
	var se *sqlite.Error
	if stderrs.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return ErrorCodeDuplicateKey, true
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL, sqlite3.SQLITE_CONSTRAINT_CHECK:
			return ErrorCodeValidation, true
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return ErrorCodeInvalidArgument, true
		}
		if busy(se) {
			return ErrorCodeUnavailable, true
		}
		return ErrorCodeDB, true
	}
	return ErrorCodeUnknown, false
}

// FromStore wraps a storage error under msg; project errors keep their code
// and unclassified ones become ErrorCodeDB. nil stays nil
func FromStore(err error, msg string) error {
	if err == nil {
		return nil
	}
	code := ErrorCodeDB
	if e, ok := As(err); ok {
		code = e.code
	} else if c, ok := StoreCode(err); ok {
		code = c
	}
	return Wrap(err, code, msg)
}

// FromStoref is FromStore with formatting
func FromStoref(err error, format string, a ...any) error {
	return FromStore(err, fmt.Sprintf(format, a...))
}

// Retryable reports whether rerunning the whole transaction may succeed: postgres
// serialization, deadlock and lock timeouts, or a locked sqlite database
// caller cancellation is never retryable
func Retryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	var pe *pgconn.PgError
	if stderrs.As(err, &pe) {
		switch pe.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable, pgQueryCanceledByTimeout:
			return true
		}
		return false
	}
	var se *sqlite.Error
	return stderrs.As(err, &se) && busy(se)
}

func busy(se *sqlite.Error) bool {
	c := se.Code() & 0xff
	return c == sqlite3.SQLITE_BUSY || c == sqlite3.SQLITE_LOCKED
}
