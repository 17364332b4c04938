// Package driver provides the SQLite execution engine used by sqlbuilder.
//
// This package wraps modernc.org/sqlite behind database/sql and exposes a
// Database that accepts finished SQL text plus positional arguments and
// returns a Cursor. Connections are configured with pragmas at connect time
// and the pool is sized through Options.
//
// Key features:
//   - Context-aware execution with a single cancellation error kind
//   - Pluggable cursor construction through CursorFactory
//   - Prepare-only SQL validation
//   - Transactions for callers that need to hold the connection
//
// Usage:
//
//	db, err := driver.Open(ctx, "employees.db")
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//	cursor, err := db.RawQueryWithFactory(ctx, nil, "SELECT name FROM employee", nil, "employee")
package driver

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Driver implements database/sql/driver.Driver interface on top of the
// embedded SQLite engine. It serves as the entry point for creating connectors.
type Driver struct {
	options Options
}

// Connector implements database/sql/driver.Connector interface.
// It holds the data source name and applies connection pragmas on every new connection.
type Connector struct {
	driver *Driver
	dsn    string // Data source name passed to the SQLite engine
}

// NewDriver creates a new driver configured with the given options
func NewDriver(options ...Options) *Driver {
	opts := NewOptions()
	if len(options) > 0 {
		opts = options[0]
	}
	return &Driver{options: opts}
}

// Open implements driver.Driver interface
func (d *Driver) Open(dsn string) (driver.Conn, error) {
	connector, err := d.OpenConnector(dsn)
	if err != nil {
		return nil, err
	}
	return connector.Connect(context.Background())
}

// OpenConnector implements driver.DriverContext interface
func (d *Driver) OpenConnector(dsn string) (driver.Connector, error) {
	if err := validateDSN(dsn); err != nil {
		return nil, err
	}
	return &Connector{
		driver: d,
		dsn:    dsn,
	}, nil
}

// Connect implements driver.Connector interface
func (c *Connector) Connect(ctx context.Context) (driver.Conn, error) {
	sqliteDriver := &sqlite.Driver{}
	conn, err := sqliteDriver.Open(c.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := c.applyPragmas(ctx, conn); err != nil {
		_ = conn.Close() // Ignore close error since we're already returning an error
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	return conn, nil
}

// Driver implements driver.Connector interface
func (c *Connector) Driver() driver.Driver {
	return c.driver
}

// applyPragmas configures a freshly opened connection
func (c *Connector) applyPragmas(ctx context.Context, conn driver.Conn) error {
	execer, ok := conn.(driver.ExecerContext)
	if !ok {
		return ErrExecContextNotSupported
	}
	for _, pragma := range c.driver.options.pragmas() {
		if _, err := execer.ExecContext(ctx, pragma, nil); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

// validateDSN rejects data source names the engine cannot open
func validateDSN(dsn string) error {
	if strings.TrimSpace(dsn) == "" {
		return ErrEmptyDSN
	}
	if strings.Contains(dsn, "\x00") {
		return ErrInvalidDSN
	}
	return nil
}

// Database is the execution engine handle. It owns a database/sql pool of
// SQLite connections and turns SQL text plus arguments into cursors.
type Database struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens the SQLite database at dsn (a file path or ":memory:").
//
// By default the pool holds a single connection, so concurrent queries are
// serialized and a caller holding a transaction blocks everyone else until it
// finishes. Use Options.WithMaxOpenConns to change this.
func Open(ctx context.Context, dsn string, options ...Options) (*Database, error) {
	opts := NewOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	connector, err := NewDriver(opts).OpenConnector(dsn)
	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, errors.Join(
				fmt.Errorf("failed to connect to database: %w", err),
				fmt.Errorf("failed to close database: %w", closeErr),
			)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{
		db:     db,
		logger: opts.logger(),
	}, nil
}

// Close closes every connection in the pool.
func (d *Database) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// DB returns the underlying sql.DB.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Exec executes a statement that returns no rows, such as DDL or INSERT.
func (d *Database) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, d.canceled(ctx, query, err)
	}
	d.logger.DebugContext(ctx, "executing statement", "sql", query, "args", len(args))

	result, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, d.queryError(ctx, query, err)
	}
	return result, nil
}

// RawQueryWithFactory runs query with args bound positionally and builds the
// returned cursor with factory, or DefaultCursorFactory when factory is nil.
//
// The factory runs while the rows are open; the rows are closed before this
// method returns, so a factory must read everything it needs.
//
// Cancellation of ctx before dispatch, while waiting for a pooled connection,
// or while the engine is running the statement yields an error matching
// ErrCanceled. Every other failure is an *ExecutionError.
func (d *Database) RawQueryWithFactory(ctx context.Context, factory CursorFactory, query string, args []any, editTable string) (Cursor, error) {
	if factory == nil {
		factory = DefaultCursorFactory
	}
	if err := ctx.Err(); err != nil {
		return nil, d.canceled(ctx, query, err)
	}
	d.logger.DebugContext(ctx, "executing query", "sql", query, "args", len(args), "edit_table", editTable)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, d.queryError(ctx, query, err)
	}
	defer rows.Close()

	cursor, err := factory.NewCursor(editTable, query, rows)
	if err != nil {
		return nil, d.queryError(ctx, query, err)
	}

	// A statement that completed after cancellation is still reported as canceled.
	if err := ctx.Err(); err != nil {
		closeErr := cursor.Close()
		if closeErr != nil {
			return nil, errors.Join(d.canceled(ctx, query, err), closeErr)
		}
		return nil, d.canceled(ctx, query, err)
	}
	return cursor, nil
}

// ValidateSQL compiles query without running it.
func (d *Database) ValidateSQL(ctx context.Context, query string) error {
	if err := ctx.Err(); err != nil {
		return d.canceled(ctx, query, err)
	}

	stmt, err := d.db.PrepareContext(ctx, query)
	if err != nil {
		return d.queryError(ctx, query, err)
	}
	return stmt.Close()
}

// Begin starts a transaction. The transaction holds a pooled connection until
// it is committed or rolled back.
func (d *Database) Begin(ctx context.Context) (*Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, d.canceled(ctx, "BEGIN", err)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, d.queryError(ctx, "BEGIN", err)
	}
	return &Transaction{tx: tx, database: d}, nil
}

// queryError normalizes an engine failure into ErrCanceled or *ExecutionError
func (d *Database) queryError(ctx context.Context, query string, err error) error {
	if isCancellation(ctx, err) {
		cause := ctx.Err()
		if cause == nil {
			cause = err
		}
		return d.canceled(ctx, query, cause)
	}
	d.logger.WarnContext(ctx, "query failed", "sql", query, "error", err)
	return &ExecutionError{Query: query, Err: err}
}

// canceled builds the cancellation error and logs it
func (d *Database) canceled(ctx context.Context, query string, cause error) error {
	d.logger.InfoContext(ctx, "query canceled", "sql", query, "cause", cause)
	return fmt.Errorf("%w: %w", ErrCanceled, cause)
}

// isCancellation reports whether err was caused by ctx being done or by the
// engine being interrupted
func isCancellation(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_INTERRUPT
	}
	return false
}

// Transaction wraps a database/sql transaction bound to one pooled connection.
type Transaction struct {
	tx       *sql.Tx
	database *Database
}

// Exec executes a statement inside the transaction.
func (t *Transaction) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	result, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, t.database.queryError(ctx, query, err)
	}
	return result, nil
}

// Commit commits the transaction and releases its connection.
func (t *Transaction) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction and releases its connection.
func (t *Transaction) Rollback() error {
	return t.tx.Rollback()
}
