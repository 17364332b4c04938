package sqlbuilder

import (
	"context"
	"fmt"

	"github.com/nao1215/sqlbuilder/driver"
)

// Executor runs finished SQL. *driver.Database implements it.
//
// RawQueryWithFactory must report cancellation with an error matching
// ErrCanceled, whether ctx was done before dispatch, while waiting for a
// connection, or while the statement ran.
type Executor interface {
	RawQueryWithFactory(ctx context.Context, factory driver.CursorFactory, query string, args []any, editTable string) (driver.Cursor, error)
	ValidateSQL(ctx context.Context, query string) error
}

// Query builds a statement with BuildQuery and runs it on exec with
// selectionArgs bound to the "?" placeholders in order. The cursor comes from
// the builder's cursor factory, or the engine default when none is set.
//
// Assembly errors are returned before anything reaches exec. A ctx that is
// already done fails with ErrCanceled without dispatching. Engine errors,
// including cancellation, are returned as exec reported them.
func (b *QueryBuilder) Query(
	ctx context.Context,
	exec Executor,
	projectionIn []string,
	selection string,
	selectionArgs []any,
	groupBy, having, orderBy, limit string,
) (driver.Cursor, error) {
	sql, err := b.BuildQuery(projectionIn, selection, groupBy, having, orderBy, limit)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCanceled, err)
	}

	if b.strict && selection != "" {
		// A selection such as "x) GROUP BY (y" compiles on its own but not when wrapped again.
		validation, err := b.BuildQuery(projectionIn, "("+selection+")", groupBy, having, orderBy, limit)
		if err != nil {
			return nil, err
		}
		if err := exec.ValidateSQL(ctx, validation); err != nil {
			return nil, err
		}
	}

	return exec.RawQueryWithFactory(ctx, b.cursorFactory, sql, selectionArgs, FindEditTable(b.tables))
}
