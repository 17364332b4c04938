package sqlbuilder

import "strings"

// AppendColumns writes columns to sb separated by ", ", followed by a single
// trailing space: ["name", "age"] becomes "name, age ". Empty entries are
// skipped.
func AppendColumns(sb *strings.Builder, columns []string) {
	written := false
	for _, column := range columns {
		if column == "" {
			continue
		}
		if written {
			sb.WriteString(", ")
		}
		sb.WriteString(column)
		written = true
	}
	sb.WriteByte(' ')
}

// AppendClause writes name followed by clause to sb when clause is not empty.
func AppendClause(sb *strings.Builder, name, clause string) {
	if clause != "" {
		sb.WriteString(name)
		sb.WriteString(clause)
	}
}

// AppendEscapedSQLString writes s to sb as a single-quoted SQL string
// literal, doubling every single quote inside it.
func AppendEscapedSQLString(sb *strings.Builder, s string) {
	sb.WriteByte('\'')
	sb.WriteString(strings.ReplaceAll(s, "'", "''"))
	sb.WriteByte('\'')
}

// EscapeSQLString returns s as a single-quoted SQL string literal.
func EscapeSQLString(s string) string {
	var sb strings.Builder
	AppendEscapedSQLString(&sb, s)
	return sb.String()
}

// FindEditTable returns the first table named in a FROM clause: the text up
// to the first space or comma. "employee AS e, people" yields "employee".
func FindEditTable(tables string) string {
	tables = strings.TrimSpace(tables)
	if i := strings.IndexAny(tables, " ,"); i >= 0 {
		return tables[:i]
	}
	return tables
}

// BuildQueryString assembles a SELECT statement from its clauses:
//
//	SELECT [DISTINCT] <columns> FROM <tables> [WHERE <where>] [GROUP BY <groupBy>]
//	[HAVING <having>] [ORDER BY <orderBy>] [LIMIT <limit>]
//
// Empty clauses are omitted and where is emitted verbatim. A column list
// with no non-empty entry selects "*".
//
// It fails with ErrMissingTable when tables is empty and with
// ErrInvalidClause when having is given without groupBy or limit is not a
// count or an "offset, count" pair.
func BuildQueryString(distinct bool, tables string, columns []string, where, groupBy, having, orderBy, limit string) (string, error) {
	const operation = "build query string"

	v := newValidator()
	if err := v.validateTables(operation, tables); err != nil {
		return "", err
	}
	if err := v.validateHaving(operation, groupBy, having); err != nil {
		return "", err
	}
	if err := v.validateLimit(operation, limit); err != nil {
		return "", err
	}
	return assembleQuery(distinct, tables, columns, where, groupBy, having, orderBy, limit), nil
}

// assembleQuery writes the clauses in their fixed order without validating them
func assembleQuery(distinct bool, tables string, columns []string, where, groupBy, having, orderBy, limit string) string {
	var query strings.Builder
	query.Grow(120)

	query.WriteString("SELECT ")
	if distinct {
		query.WriteString("DISTINCT ")
	}
	if hasColumns(columns) {
		AppendColumns(&query, columns)
	} else {
		query.WriteString("* ")
	}
	query.WriteString("FROM ")
	query.WriteString(tables)
	AppendClause(&query, " WHERE ", where)
	AppendClause(&query, " GROUP BY ", groupBy)
	AppendClause(&query, " HAVING ", having)
	AppendClause(&query, " ORDER BY ", orderBy)
	AppendClause(&query, " LIMIT ", limit)

	return query.String()
}

// hasColumns reports whether AppendColumns would write at least one column
func hasColumns(columns []string) bool {
	for _, column := range columns {
		if column != "" {
			return true
		}
	}
	return false
}
