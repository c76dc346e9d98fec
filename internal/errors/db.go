package errors

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapDBError maps errors from a direct Postgres connection to AppError instances.
// Unrecognised errors are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{Code: ErrCodeTimeout, Message: "Request timed out. Please try again.", Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{Code: ErrCodeCanceled, Message: "Request was canceled.", Cause: err}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &AppError{Code: ErrCodeNotFound, Message: "Resource not found", Cause: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return FromSQLState(pgErr.Code, pgErr.Message, pgErr)
	}
	return err
}

// FromSQLState classifies a Postgres SQLSTATE. The hosted backend's REST layer reports the
// same codes in its error bodies, so both transports share this mapping.
func FromSQLState(code, message string, cause error) *AppError {
	if cause == nil {
		cause = fmt.Errorf("sqlstate %s: %s", code, message)
	}
	switch {
	case code == pgerrcode.InsufficientPrivilege:
		return Permission("The backend denied access to this data.", cause)
	case code == pgerrcode.UndefinedTable, code == pgerrcode.UndefinedColumn:
		return &AppError{
			Code:    ErrCodeConfiguration,
			Message: "The backend schema is missing an expected table or column.",
			Cause:   cause,
		}
	case code == pgerrcode.QueryCanceled:
		return &AppError{Code: ErrCodeTimeout, Message: "Request timed out. Please try again.", Cause: cause}
	case pgerrcode.IsIntegrityConstraintViolation(code), pgerrcode.IsDataException(code):
		return &AppError{Code: ErrCodeValidation, Message: "The backend rejected the data.", Cause: cause}
	default:
		return Upstream("A database error occurred. Please try again.", cause)
	}
}
