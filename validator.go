package sqlbuilder

import (
	"regexp"
	"strings"
)

// limitPattern accepts "n" and "offset, n"
var limitPattern = regexp.MustCompile(`^\s*\d+\s*(,\s*\d+\s*)?$`)

// validator handles clause validation for query assembly
type validator struct{}

// newValidator creates a new validator instance
func newValidator() *validator {
	return &validator{}
}

// validateTables checks that a FROM target is configured
func (v *validator) validateTables(operation, tables string) error {
	if strings.TrimSpace(tables) == "" {
		return NewErrorContext(operation).Error(ErrMissingTable)
	}
	return nil
}

// validateLimit checks that a LIMIT clause is a count or an "offset, count" pair
func (v *validator) validateLimit(operation, limit string) error {
	if limit == "" || limitPattern.MatchString(limit) {
		return nil
	}
	return NewErrorContext(operation).
		WithClause("LIMIT").
		WithDetails("invalid LIMIT clause: " + limit).
		Error(ErrInvalidClause)
}

// validateHaving checks that HAVING is only used together with GROUP BY
func (v *validator) validateHaving(operation, groupBy, having string) error {
	if having != "" && groupBy == "" {
		return NewErrorContext(operation).
			WithClause("HAVING").
			WithDetails("HAVING clauses are only permitted when using a GROUP BY clause").
			Error(ErrInvalidClause)
	}
	return nil
}
