package sqlbuilder

import (
	"strings"

	"github.com/nao1215/sqlbuilder/driver"
)

// QueryBuilder accumulates the parts of a SELECT statement: the FROM text,
// the DISTINCT flag, an optional projection map, and WHERE fragments that are
// parenthesized and joined with AND. Use NewQueryBuilder to create one, then
// chain setters to configure it.
//
// The typical usage pattern is:
//
//	builder := sqlbuilder.NewQueryBuilder().
//		SetTables("employee").
//		AppendWhere("salary > 1000")
//	sql, err := builder.BuildQuery([]string{"name", "salary"}, "", "", "", "name", "")
//	if err != nil {
//		return err
//	}
//
// A QueryBuilder is not safe for concurrent mutation. Building and querying
// only read its state.
type QueryBuilder struct {
	// tables is the raw FROM clause, used verbatim
	tables string
	// distinct selects SELECT DISTINCT and UNION over UNION ALL
	distinct bool
	// projectionMap translates requested column names when set
	projectionMap *ProjectionMap
	// whereClause holds "(a) AND (b)" fragments
	whereClause strings.Builder
	// cursorFactory overrides the engine's default cursor construction
	cursorFactory driver.CursorFactory
	// strict disables alias pass-through and validates selections before Query
	strict bool
}

// NewQueryBuilder creates an empty query builder.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

// SetTables sets the FROM clause. The text is used verbatim, so it may be a
// join such as "x AS a, x AS b". It is not escaped or validated; never build
// it from untrusted input.
//
// Returns the builder for method chaining.
func (b *QueryBuilder) SetTables(tables string) *QueryBuilder {
	b.tables = tables
	return b
}

// Tables returns the FROM clause.
func (b *QueryBuilder) Tables() string {
	return b.tables
}

// SetDistinct marks the query as SELECT DISTINCT. For BuildUnionQuery it
// selects UNION (true) over UNION ALL (false).
//
// Returns the builder for method chaining.
func (b *QueryBuilder) SetDistinct(distinct bool) *QueryBuilder {
	b.distinct = distinct
	return b
}

// IsDistinct reports whether SetDistinct(true) was called.
func (b *QueryBuilder) IsDistinct() bool {
	return b.distinct
}

// SetProjectionMap sets the map used to translate requested column names.
// Pass nil to clear it.
//
// Returns the builder for method chaining.
func (b *QueryBuilder) SetProjectionMap(projectionMap *ProjectionMap) *QueryBuilder {
	b.projectionMap = projectionMap
	return b
}

// SetCursorFactory sets the factory used by Query to build cursors. Pass nil
// to use the engine default.
//
// Returns the builder for method chaining.
func (b *QueryBuilder) SetCursorFactory(factory driver.CursorFactory) *QueryBuilder {
	b.cursorFactory = factory
	return b
}

// SetStrict toggles strict mode. In strict mode a requested column that is
// not in the projection map is always rejected, and Query compiles the
// caller's selection wrapped in an extra pair of parentheses before running
// it, so a selection that closes the WHERE parenthesis early fails.
//
// Returns the builder for method chaining.
func (b *QueryBuilder) SetStrict(strict bool) *QueryBuilder {
	b.strict = strict
	return b
}

// IsStrict reports whether strict mode is on.
func (b *QueryBuilder) IsStrict() bool {
	return b.strict
}

// AppendWhere adds predicate to the WHERE clause as "(predicate)", joined to
// earlier fragments with " AND ". Empty predicates are ignored. The text is
// raw SQL and is not escaped.
//
// Returns the builder for method chaining.
func (b *QueryBuilder) AppendWhere(predicate string) *QueryBuilder {
	if predicate == "" {
		return b
	}
	b.openWhereFragment()
	b.whereClause.WriteString(predicate)
	b.whereClause.WriteByte(')')
	return b
}

// AppendWhereEscapeString adds value to the WHERE clause as a quoted SQL
// string literal, "('value')", with single quotes inside value doubled.
//
// Returns the builder for method chaining.
func (b *QueryBuilder) AppendWhereEscapeString(value string) *QueryBuilder {
	b.openWhereFragment()
	AppendEscapedSQLString(&b.whereClause, value)
	b.whereClause.WriteByte(')')
	return b
}

// WhereClause returns the accumulated WHERE fragments.
func (b *QueryBuilder) WhereClause() string {
	return b.whereClause.String()
}

// openWhereFragment starts a new parenthesized fragment
func (b *QueryBuilder) openWhereFragment() {
	if b.whereClause.Len() > 0 {
		b.whereClause.WriteString(" AND ")
	}
	b.whereClause.WriteByte('(')
}

// BuildQuery assembles a SELECT statement from the builder state and the
// per-call clauses without changing the builder.
//
// projectionIn is translated through the projection map (see
// ResolveProjection). selection is ANDed with the accumulated WHERE
// fragments for this call only. groupBy, having, orderBy and limit are
// appended verbatim; empty strings omit the clause.
//
// HAVING without GROUP BY is passed on to the engine here; only
// BuildQueryString rejects it.
func (b *QueryBuilder) BuildQuery(projectionIn []string, selection, groupBy, having, orderBy, limit string) (string, error) {
	const operation = "build query"

	v := newValidator()
	if err := v.validateTables(operation, b.tables); err != nil {
		return "", err
	}
	if err := v.validateLimit(operation, limit); err != nil {
		return "", err
	}

	projection, err := ResolveProjection(projectionIn, b.projectionMap, b.strict)
	if err != nil {
		return "", err
	}

	where := CombineWhere(b.whereClause.String(), selection)
	return assembleQuery(b.distinct, b.tables, projection, where, groupBy, having, orderBy, limit), nil
}

// CombineWhere joins an accumulated WHERE clause such as "(a) AND (b)" with a
// raw selection: "(a) AND (b) AND (selection)". Either side may be empty.
func CombineWhere(whereClause, selection string) string {
	if selection == "" {
		return whereClause
	}

	var where strings.Builder
	where.Grow(len(whereClause) + len(selection) + 7)
	if whereClause != "" {
		where.WriteString(whereClause)
		where.WriteString(" AND ")
	}
	where.WriteByte('(')
	where.WriteString(selection)
	where.WriteByte(')')
	return where.String()
}
