package sqlbuilder

import "strings"

// BuildUnionSubQuery builds one branch of a UNION over tables that share a
// logical column superset, so all branches line up column by column.
//
// For each name in unionColumns, in order:
//   - the discriminator column becomes 'typeDiscriminatorValue' AS typeDiscriminatorColumn
//   - a column before computedColumnsOffset, or one present in
//     columnsPresentInTable, is selected as is
//   - any other column becomes NULL AS name
//
// A nil columnsPresentInTable means every union column is present. The
// branch is assembled with BuildQuery, so it uses the builder's tables,
// WHERE fragments and projection map; it never carries ORDER BY or LIMIT.
func (b *QueryBuilder) BuildUnionSubQuery(
	typeDiscriminatorColumn string,
	unionColumns []string,
	columnsPresentInTable map[string]bool,
	computedColumnsOffset int,
	typeDiscriminatorValue string,
	selection, groupBy, having string,
) (string, error) {
	projectionIn := make([]string, len(unionColumns))
	for i, unionColumn := range unionColumns {
		switch {
		case unionColumn == typeDiscriminatorColumn:
			projectionIn[i] = EscapeSQLString(typeDiscriminatorValue) + " AS " + typeDiscriminatorColumn
		case i < computedColumnsOffset || columnPresent(unionColumn, unionColumns, columnsPresentInTable):
			projectionIn[i] = unionColumn
		default:
			projectionIn[i] = "NULL AS " + unionColumn
		}
	}
	return b.BuildQuery(projectionIn, selection, groupBy, having, "", "")
}

// columnPresent reports whether column exists in the branch table
func columnPresent(column string, unionColumns []string, columnsPresentInTable map[string]bool) bool {
	if columnsPresentInTable == nil {
		for _, c := range unionColumns {
			if c == column {
				return true
			}
		}
		return false
	}
	return columnsPresentInTable[column]
}

// BuildUnionQuery joins subQueries with " UNION " when the builder is
// distinct and " UNION ALL " otherwise, then appends ORDER BY and LIMIT once
// for the whole union.
//
// It fails with ErrEmptyUnion when subQueries is empty and with
// ErrInvalidClause when limit is malformed.
func (b *QueryBuilder) BuildUnionQuery(subQueries []string, orderBy, limit string) (string, error) {
	return BuildUnionQueryString(b.distinct, subQueries, orderBy, limit)
}

// BuildUnionQueryString is BuildUnionQuery without a builder.
func BuildUnionQueryString(distinct bool, subQueries []string, orderBy, limit string) (string, error) {
	const operation = "build union query"

	if len(subQueries) == 0 {
		return "", NewErrorContext(operation).Error(ErrEmptyUnion)
	}
	if err := newValidator().validateLimit(operation, limit); err != nil {
		return "", err
	}

	unionOperator := " UNION ALL "
	if distinct {
		unionOperator = " UNION "
	}

	var query strings.Builder
	query.Grow(128)
	for i, subQuery := range subQueries {
		if i > 0 {
			query.WriteString(unionOperator)
		}
		query.WriteString(subQuery)
	}
	AppendClause(&query, " ORDER BY ", orderBy)
	AppendClause(&query, " LIMIT ", limit)

	return query.String(), nil
}
