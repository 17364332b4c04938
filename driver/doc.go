// Package driver provides the SQLite execution engine for sqlbuilder.
// It runs finished SQL text with positional arguments and returns cursors.
package driver
