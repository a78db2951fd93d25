package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"unirank/internal/platform/store/sqlite"
	"unirank/internal/platform/store/trace"
)

// sqliteAdapter wraps sqlite.DB and implements RowQuerier + TxRunner
// modernc binds $N placeholders, so repos share statements with postgres
type sqliteAdapter struct {
	d *sqlite.DB
}

func newSQLiteAdapter(d *sqlite.DB) *sqliteAdapter { return &sqliteAdapter{d: d} }

func (a *sqliteAdapter) Dialect() Dialect { return DialectSQLite }

func (a *sqliteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.d == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.d.DB.PingContext(ctx)
}

func (a *sqliteAdapter) Close() error { return a.d.Close() }

func (a *sqliteAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return sqlExec(ctx, a.d.DB, a.emitter(), sql, args)
}

func (a *sqliteAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return sqlQuery(ctx, a.d.DB, a.emitter(), sql, args)
}

func (a *sqliteAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return sqlQueryRow(ctx, a.d.DB, a.emitter(), sql, args)
}

func (a *sqliteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(sqlTxQuerier{tx: tx, emit: a.emitter()}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (a *sqliteAdapter) emitter() emitFunc {
	if a == nil || a.d == nil || a.d.Tracer == nil {
		return nil
	}
	tracer, slowMs := a.d.Tracer, a.d.SlowMs
	return func(ctx context.Context, sql string, args []any, start time.Time, err error) {
		elapsedUS := time.Since(start).Microseconds()
		tracer.OnQuery(ctx, trace.QueryEvent{
			Driver:    string(DialectSQLite),
			SQL:       sql,
			Args:      args,
			ElapsedUS: elapsedUS,
			Err:       err,
			Slow:      trace.IsSlow(elapsedUS, slowMs),
		})
	}
}

// sqlTxQuerier satisfies RowQuerier inside a database/sql transaction
type sqlTxQuerier struct {
	tx   *sql.Tx
	emit emitFunc
}

func (t sqlTxQuerier) Dialect() Dialect { return DialectSQLite }

func (t sqlTxQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return sqlExec(ctx, t.tx, t.emit, sql, args)
}

func (t sqlTxQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return sqlQuery(ctx, t.tx, t.emit, sql, args)
}

func (t sqlTxQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return sqlQueryRow(ctx, t.tx, t.emit, sql, args)
}

// shared database/sql plumbing for the handle and its transactions

type emitFunc func(ctx context.Context, sql string, args []any, start time.Time, err error)

type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func sqlExec(ctx context.Context, c sqlConn, emit emitFunc, q string, args []any) (CommandTag, error) {
	start := time.Now()
	res, err := c.ExecContext(ctx, q, args...)
	if emit != nil {
		emit(ctx, q, args, start, err)
	}
	if err != nil {
		return nil, err
	}
	n, _ := res.RowsAffected()
	return sqlTag{n: n}, nil
}

func sqlQuery(ctx context.Context, c sqlConn, emit emitFunc, q string, args []any) (Rows, error) {
	start := time.Now()
	rs, err := c.QueryContext(ctx, q, args...)
	if emit != nil {
		emit(ctx, q, args, start, err)
	}
	if err != nil {
		return nil, err
	}
	return &sqlRows{r: rs}, nil
}

func sqlQueryRow(ctx context.Context, c sqlConn, emit emitFunc, q string, args []any) Row {
	start := time.Now()
	r := c.QueryRowContext(ctx, q, args...)
	return sqlRow{
		r: r,
		after: func(scanErr error) {
			if emit != nil {
				emit(ctx, q, args, start, scanErr)
			}
		},
	}
}

type sqlRow struct {
	r     *sql.Row
	after func(error)
}

func (x sqlRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type sqlRows struct {
	r   *sql.Rows
	err error
}

func (x *sqlRows) Next() bool            { return x.r.Next() }
func (x *sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x *sqlRows) Close()                { x.err = x.r.Close() }
func (x *sqlRows) Err() error {
	if err := x.r.Err(); err != nil {
		return err
	}
	return x.err
}

// sqlTag mimics the postgres command tag text for logs
type sqlTag struct{ n int64 }

func (t sqlTag) String() string      { return fmt.Sprintf("OK %d", t.n) }
func (t sqlTag) RowsAffected() int64 { return t.n }
