package driver

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// Cursor is a random-access handle over a query result.
//
// A new cursor is positioned before the first row; call MoveToFirst or
// MoveToNext before reading columns.
type Cursor interface {
	// Count returns the number of rows in the result
	Count() int
	// Position returns the current row index, -1 before the first row and Count() after the last
	Position() int
	// MoveToFirst moves to the first row and reports whether it exists
	MoveToFirst() bool
	// MoveToLast moves to the last row and reports whether it exists
	MoveToLast() bool
	// MoveToNext moves one row forward and reports whether the cursor is on a row
	MoveToNext() bool
	// MoveToPrevious moves one row back and reports whether the cursor is on a row
	MoveToPrevious() bool
	// MoveToPosition moves to an absolute row and reports whether it exists
	MoveToPosition(position int) bool
	// IsBeforeFirst reports whether the cursor is before the first row
	IsBeforeFirst() bool
	// IsAfterLast reports whether the cursor is after the last row
	IsAfterLast() bool
	// ColumnNames returns the result column names in order
	ColumnNames() []string
	// ColumnIndex returns the index of the named column, or -1
	ColumnIndex(name string) int
	// IsNull reports whether the column value of the current row is NULL
	IsNull(column int) (bool, error)
	// GetString returns the column value of the current row as text
	GetString(column int) (string, error)
	// GetInt returns the column value of the current row as an int
	GetInt(column int) (int, error)
	// GetInt64 returns the column value of the current row as an int64
	GetInt64(column int) (int64, error)
	// GetFloat64 returns the column value of the current row as a float64
	GetFloat64(column int) (float64, error)
	// GetBytes returns the column value of the current row as raw bytes
	GetBytes(column int) ([]byte, error)
	// Close releases the rows held by the cursor
	Close() error
}

// CursorFactory builds the Cursor returned for a query.
//
// editTable is the first table of the query's FROM clause and query is the
// SQL text that produced rows. rows is closed by the caller once NewCursor
// returns.
type CursorFactory interface {
	NewCursor(editTable, query string, rows *sql.Rows) (Cursor, error)
}

// CursorFactoryFunc adapts a function to CursorFactory.
type CursorFactoryFunc func(editTable, query string, rows *sql.Rows) (Cursor, error)

// NewCursor calls f.
func (f CursorFactoryFunc) NewCursor(editTable, query string, rows *sql.Rows) (Cursor, error) {
	return f(editTable, query, rows)
}

// DefaultCursorFactory materializes rows into a *RowCursor.
var DefaultCursorFactory CursorFactory = CursorFactoryFunc(func(editTable, query string, rows *sql.Rows) (Cursor, error) {
	cursor, err := NewRowCursor(editTable, query, rows)
	if err != nil {
		return nil, err
	}
	return cursor, nil
})

// RowCursor is the default Cursor. It reads the whole result set up front,
// which makes Count and backward movement free.
type RowCursor struct {
	editTable string
	query     string
	columns   []string
	rows      [][]any
	position  int
	closed    bool
}

// NewRowCursor reads every remaining row from rows.
func NewRowCursor(editTable, query string, rows *sql.Rows) (*RowCursor, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	records := make([][]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &RowCursor{
		editTable: editTable,
		query:     query,
		columns:   columns,
		rows:      records,
		position:  -1,
	}, nil
}

// EditTable returns the table the query was issued against.
func (c *RowCursor) EditTable() string { return c.editTable }

// Query returns the SQL text that produced the cursor.
func (c *RowCursor) Query() string { return c.query }

// Count implements Cursor.
func (c *RowCursor) Count() int { return len(c.rows) }

// Position implements Cursor.
func (c *RowCursor) Position() int { return c.position }

// MoveToFirst implements Cursor.
func (c *RowCursor) MoveToFirst() bool { return c.MoveToPosition(0) }

// MoveToLast implements Cursor.
func (c *RowCursor) MoveToLast() bool { return c.MoveToPosition(len(c.rows) - 1) }

// MoveToNext implements Cursor.
func (c *RowCursor) MoveToNext() bool { return c.MoveToPosition(c.position + 1) }

// MoveToPrevious implements Cursor.
func (c *RowCursor) MoveToPrevious() bool { return c.MoveToPosition(c.position - 1) }

// MoveToPosition implements Cursor. Positions outside the result clamp to
// before-first or after-last and report false.
func (c *RowCursor) MoveToPosition(position int) bool {
	count := len(c.rows)
	switch {
	case position < 0:
		c.position = -1
		return false
	case position >= count:
		c.position = count
		return false
	default:
		c.position = position
		return true
	}
}

// IsBeforeFirst implements Cursor.
func (c *RowCursor) IsBeforeFirst() bool { return len(c.rows) == 0 || c.position < 0 }

// IsAfterLast implements Cursor.
func (c *RowCursor) IsAfterLast() bool { return len(c.rows) == 0 || c.position >= len(c.rows) }

// ColumnNames implements Cursor.
func (c *RowCursor) ColumnNames() []string {
	names := make([]string, len(c.columns))
	copy(names, c.columns)
	return names
}

// ColumnIndex implements Cursor.
func (c *RowCursor) ColumnIndex(name string) int {
	for i, column := range c.columns {
		if column == name {
			return i
		}
	}
	return -1
}

// IsNull implements Cursor.
func (c *RowCursor) IsNull(column int) (bool, error) {
	value, err := c.value(column)
	if err != nil {
		return false, err
	}
	return value == nil, nil
}

// GetString implements Cursor. NULL reads as the empty string.
func (c *RowCursor) GetString(column int) (string, error) {
	value, err := c.value(column)
	if err != nil {
		return "", err
	}
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// GetInt implements Cursor.
func (c *RowCursor) GetInt(column int) (int, error) {
	v, err := c.GetInt64(column)
	return int(v), err
}

// GetInt64 implements Cursor. NULL reads as 0; text is parsed.
func (c *RowCursor) GetInt64(column int) (int64, error) {
	value, err := c.value(column)
	if err != nil {
		return 0, err
	}
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		return parseInt(v, column)
	case []byte:
		return parseInt(string(v), column)
	default:
		return 0, fmt.Errorf("%w: column %d holds %T", ErrTypeMismatch, column, value)
	}
}

// GetFloat64 implements Cursor. NULL reads as 0; text is parsed.
func (c *RowCursor) GetFloat64(column int) (float64, error) {
	value, err := c.value(column)
	if err != nil {
		return 0, err
	}
	switch v := value.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		return parseFloat(v, column)
	case []byte:
		return parseFloat(string(v), column)
	default:
		return 0, fmt.Errorf("%w: column %d holds %T", ErrTypeMismatch, column, value)
	}
}

// GetBytes implements Cursor. NULL reads as nil.
func (c *RowCursor) GetBytes(column int) ([]byte, error) {
	value, err := c.value(column)
	if err != nil {
		return nil, err
	}
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		out := make([]byte, len(v))
		copy(out, v)
		return out, nil
	case string:
		return []byte(v), nil
	default:
		s, err := c.GetString(column)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	}
}

// Close implements Cursor. It is safe to call more than once.
func (c *RowCursor) Close() error {
	c.closed = true
	c.rows = nil
	return nil
}

// value returns the raw value at column of the current row
func (c *RowCursor) value(column int) (any, error) {
	if c.closed {
		return nil, ErrCursorClosed
	}
	if c.position < 0 || c.position >= len(c.rows) {
		return nil, fmt.Errorf("%w: position %d of %d", ErrCursorOutOfBounds, c.position, len(c.rows))
	}
	if column < 0 || column >= len(c.columns) {
		return nil, fmt.Errorf("%w: %d of %d", ErrColumnOutOfRange, column, len(c.columns))
	}
	return c.rows[c.position][column], nil
}

func parseInt(s string, column int) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: column %d: %w", ErrTypeMismatch, column, err)
	}
	return n, nil
}

func parseFloat(s string, column int) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: column %d: %w", ErrTypeMismatch, column, err)
	}
	return f, nil
}
