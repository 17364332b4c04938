// Package sqlbuilder provides a SQL SELECT builder that assembles table
// lists, projections, filters, grouping, ordering, limits and UNIONs into
// SQL text, and hands that text to an embedded SQLite engine.
//
// # Features
//
//   - Accumulated WHERE fragments, each parenthesized and joined with AND
//   - Projection maps that translate caller-facing names into SQL expressions
//   - Escaped string literals for values compared inside WHERE
//   - Column-aligned UNION branches over tables with different columns
//   - Context-aware execution with a single cancellation error
//
// # Basic Usage
//
//	builder := sqlbuilder.NewQueryBuilder().
//	    SetTables("employee").
//	    AppendWhere("age > 25")
//
//	query, err := builder.BuildQuery([]string{"name", "age"}, "", "", "", "name", "10")
//	// SELECT name, age FROM employee WHERE (age > 25) ORDER BY name LIMIT 10
//
// # Projection Maps
//
//	projection := sqlbuilder.NewProjectionMap().
//	    Put("EmployeeName", "name").
//	    Put("EmployeeAge", "age")
//
//	builder := sqlbuilder.NewQueryBuilder().
//	    SetTables("employee").
//	    SetProjectionMap(projection)
//
//	query, err := builder.BuildQuery([]string{"EmployeeName"}, "", "", "", "", "")
//	// SELECT name FROM employee
//
// A requested name missing from the map fails with ErrUnknownColumn.
//
// # Unions
//
// BuildUnionSubQuery pads columns a table does not have with NULL so every
// branch has the same shape, and BuildUnionQuery joins the branches with
// UNION (distinct builder) or UNION ALL.
//
// # Execution
//
// QueryBuilder.Query builds the statement and runs it on an Executor; Open
// returns the SQLite-backed one. Cancel the context to abort a query that is
// queued for a connection or already running; the error matches ErrCanceled.
//
// # Safety
//
// Tables, WHERE fragments, GROUP BY, HAVING and ORDER BY are raw SQL. Bind
// values through selection arguments ("?") or AppendWhereEscapeString.
//
// For SQLite syntax, see: https://www.sqlite.org/lang_select.html
package sqlbuilder
