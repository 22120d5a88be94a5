package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE values the groups store can produce
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgStringTooLong       = "22001"
	pgInvalidText         = "22P02"
	pgSerialization       = "40001"
	pgDeadlock            = "40P01"
	pgQueryCanceled       = "57014" // statement_timeout
	pgCannotConnectNow    = "57P03"
	pgReadOnly            = "25006"
)

var codeBySQLState = map[string]ErrorCode{
	pgUniqueViolation:     ErrorCodeDuplicateKey,
	pgForeignKeyViolation: ErrorCodeInvalidArgument,
	pgNotNullViolation:    ErrorCodeValidation,
	pgCheckViolation:      ErrorCodeValidation,
	pgStringTooLong:       ErrorCodeInvalidArgument,
	pgInvalidText:         ErrorCodeInvalidArgument,
	pgSerialization:       ErrorCodeDB,
	pgDeadlock:            ErrorCodeDB,
	pgQueryCanceled:       ErrorCodeUnavailable,
	pgCannotConnectNow:    ErrorCodeUnavailable,
	pgReadOnly:            ErrorCodeUnavailable,
}

// PgError returns the *pgconn.PgError in err's chain
func PgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	if stderrs.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// FromPostgres wraps err with msg and a code derived from its SQLSTATE
// non postgres errors become ErrorCodeDB, nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code := ErrorCodeDB
	if pe, ok := PgError(err); ok {
		if c, known := codeBySQLState[pe.Code]; known {
			code = c
		}
		if pe.ColumnName != "" {
			return WithField(Wrap(err, code, msg), pe.ColumnName)
		}
	}
	return Wrap(err, code, msg)
}
