package sqlbuilder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/sqlbuilder/driver"
)

// Standard error messages and error creation functions for consistency
var (
	// ErrMissingTable indicates that no FROM target was configured
	ErrMissingTable = errors.New("sqlbuilder: tables not set")

	// ErrUnknownColumn indicates a requested projection name is absent from the projection map
	ErrUnknownColumn = errors.New("sqlbuilder: unknown column")

	// ErrMissingProjection indicates that neither a projection nor a projection map was given
	ErrMissingProjection = errors.New("sqlbuilder: no projection and no projection map")

	// ErrEmptyUnion indicates a union was attempted over zero subqueries
	ErrEmptyUnion = errors.New("sqlbuilder: union requires at least one subquery")

	// ErrInvalidClause indicates a malformed or inconsistent clause combination
	ErrInvalidClause = errors.New("sqlbuilder: invalid clause")

	// ErrCanceled indicates the query was canceled before dispatch, while
	// waiting for a connection, or while running
	ErrCanceled = driver.ErrCanceled
)

// ExecutionError is the engine failure passed through unmodified by Query.
type ExecutionError = driver.ExecutionError

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	TableName string
	Column    string
	Clause    string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
	}
}

// WithTable adds table context to the error
func (ec *ErrorContext) WithTable(tableName string) *ErrorContext {
	ec.TableName = tableName
	return ec
}

// WithColumn adds column context to the error
func (ec *ErrorContext) WithColumn(column string) *ErrorContext {
	ec.Column = column
	return ec
}

// WithClause adds clause context to the error
func (ec *ErrorContext) WithClause(clause string) *ErrorContext {
	ec.Clause = clause
	return ec
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context
func (ec *ErrorContext) Error(baseErr error) error {
	var parts []string
	parts = append(parts, fmt.Sprintf("sqlbuilder: %s failed", ec.Operation))

	if ec.TableName != "" {
		parts = append(parts, "table: "+ec.TableName)
	}

	if ec.Column != "" {
		parts = append(parts, "column: "+ec.Column)
	}

	if ec.Clause != "" {
		parts = append(parts, "clause: "+ec.Clause)
	}

	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", context, baseErr)
	}
	return fmt.Errorf("%s", context)
}
