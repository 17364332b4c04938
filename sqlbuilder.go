// Package sqlbuilder assembles SQL SELECT statements and runs them on the
// embedded SQLite engine.
package sqlbuilder

import (
	"context"

	"github.com/nao1215/sqlbuilder/driver"
)

// Type aliases for engine types from the driver package
type (
	// Database is the SQLite execution engine
	Database = driver.Database
	// Options configures how the engine is opened
	Options = driver.Options
	// Cursor is a random-access handle over a query result
	Cursor = driver.Cursor
	// CursorFactory builds the Cursor returned for a query
	CursorFactory = driver.CursorFactory
	// CursorFactoryFunc adapts a function to CursorFactory
	CursorFactoryFunc = driver.CursorFactoryFunc
)

// NewOptions creates engine options with default values (one connection,
// 5s busy timeout, foreign keys on)
var NewOptions = driver.NewOptions

// Open opens the SQLite database at dsn (a file path or ":memory:") for use
// with QueryBuilder.Query.
//
// Example usage:
//
//	db, err := sqlbuilder.Open(ctx, "company.db")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
//
//	cursor, err := sqlbuilder.NewQueryBuilder().
//		SetTables("employee").
//		Query(ctx, db, []string{"name", "sum(salary)"}, "", nil, "name", "sum(salary) > 1000", "name", "")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer cursor.Close()
//
//	for cursor.MoveToNext() {
//		name, _ := cursor.GetString(0)
//		total, _ := cursor.GetInt(1)
//		fmt.Printf("%s: %d\n", name, total)
//	}
func Open(ctx context.Context, dsn string, opts ...Options) (*Database, error) {
	return driver.Open(ctx, dsn, opts...)
}
