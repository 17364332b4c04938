package driver

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrCanceled is returned when a context is done before, or while, a statement runs
	ErrCanceled = errors.New("sqlbuilder driver: query canceled")

	// ErrEmptyDSN is returned when no data source name is provided
	ErrEmptyDSN = errors.New("sqlbuilder driver: empty data source name")

	// ErrInvalidDSN is returned when the data source name cannot be passed to the engine
	ErrInvalidDSN = errors.New("sqlbuilder driver: invalid data source name")

	// ErrExecContextNotSupported is returned when the engine connection does not support ExecContext
	ErrExecContextNotSupported = errors.New("sqlbuilder driver: connection does not support ExecContext")

	// ErrCursorClosed is returned when a closed cursor is read
	ErrCursorClosed = errors.New("sqlbuilder driver: cursor is closed")

	// ErrCursorOutOfBounds is returned when a cursor is read while not positioned on a row
	ErrCursorOutOfBounds = errors.New("sqlbuilder driver: cursor is not positioned on a row")

	// ErrColumnOutOfRange is returned when a column index does not exist in the result set
	ErrColumnOutOfRange = errors.New("sqlbuilder driver: column index out of range")

	// ErrTypeMismatch is returned when a column value cannot be converted to the requested type
	ErrTypeMismatch = errors.New("sqlbuilder driver: column type mismatch")
)

// ExecutionError is returned for every engine failure other than cancellation:
// constraint violations, SQL rejected by the engine, I/O failures.
type ExecutionError struct {
	// Query is the SQL text that failed
	Query string
	// Err is the error reported by the engine
	Err error
}

// Error implements the error interface
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("sqlbuilder driver: failed to execute %q: %v", e.Query, e.Err)
}

// Unwrap returns the engine error
func (e *ExecutionError) Unwrap() error {
	return e.Err
}
