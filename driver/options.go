package driver

import (
	"fmt"
	"log/slog"
	"time"
)

// Options configures how the engine is opened.
//
// Example:
//
//	options := driver.NewOptions().
//		WithMaxOpenConns(4).
//		WithBusyTimeout(time.Second)
//
//	db, err := driver.Open(ctx, "app.db", options)
type Options struct {
	// MaxOpenConns is the size of the connection pool
	MaxOpenConns int
	// BusyTimeout is how long SQLite waits on a locked database file
	BusyTimeout time.Duration
	// ForeignKeys enables foreign key enforcement
	ForeignKeys bool
	// Logger receives query logs; nil means slog.Default()
	Logger *slog.Logger
}

// NewOptions creates default options (one connection, 5s busy timeout,
// foreign keys on, default logger).
//
// Modify with:
//   - WithMaxOpenConns(): Change pool size
//   - WithBusyTimeout(): Change lock wait
//   - WithForeignKeys(): Toggle foreign key enforcement
//   - WithLogger(): Route query logs
func NewOptions() Options {
	return Options{
		MaxOpenConns: 1,
		BusyTimeout:  5 * time.Second,
		ForeignKeys:  true,
	}
}

// WithMaxOpenConns sets the pool size. Values below 1 are ignored.
func (o Options) WithMaxOpenConns(n int) Options {
	if n > 0 {
		o.MaxOpenConns = n
	}
	return o
}

// WithBusyTimeout sets how long a connection waits on a locked database file.
func (o Options) WithBusyTimeout(timeout time.Duration) Options {
	if timeout >= 0 {
		o.BusyTimeout = timeout
	}
	return o
}

// WithForeignKeys toggles foreign key enforcement.
func (o Options) WithForeignKeys(enabled bool) Options {
	o.ForeignKeys = enabled
	return o
}

// WithLogger sets the logger used for query logs.
func (o Options) WithLogger(logger *slog.Logger) Options {
	o.Logger = logger
	return o
}

// pragmas returns the statements run on every new connection
func (o Options) pragmas() []string {
	foreignKeys := "OFF"
	if o.ForeignKeys {
		foreignKeys = "ON"
	}
	return []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", o.BusyTimeout.Milliseconds()),
		"PRAGMA foreign_keys = " + foreignKeys,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}
