// Package adapter is the thin pass-through surface over a PostgreSQL
// driver connection (spec.md §4.G): prepare_execute/query/stream forward
// untouched, while execute additionally normalizes its result shape and
// re-tags certain errors as reset signals.
package adapter

import (
	"context"
	"errors"

	"github.com/hashicorp/go-hclog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// featureNotSupportedCode is PostgreSQL's SQLSTATE for feature_not_supported
// (spec.md §4.G).
const featureNotSupportedCode = "0A000"

// Conn is the slice of a driver connection the adapter forwards to. It is
// satisfied by *pgx.Conn and *pgxpool.Pool.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Adapter forwards rendered SQL to a driver connection, adding only the
// normalization and reset-tagging execute needs (spec.md §4.G).
type Adapter struct {
	conn Conn
	log  hclog.Logger
}

// New constructs an Adapter over conn. A nil logger defaults to a null
// logger, matching the ambient "logging is opt-in" posture of this package.
func New(conn Conn, logger hclog.Logger) *Adapter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Adapter{conn: conn, log: logger}
}

// PreparedQuery names a statement the caller has (or believes it has)
// prepared against the connection. Name is opaque to the adapter; it is
// only carried through for diagnostics (Execute logs it), since Result
// has no field for a statement name at all — whatever ref the driver
// re-prepares under is hidden by construction, not by comparing it
// against Name.
type PreparedQuery struct {
	Name string
	SQL  string
}

// Result is Execute's normalized success shape, deliberately narrower than
// pgconn.CommandTag so a re-prepared statement's new internal name never
// leaks to the caller (spec.md §4.G "synthesize an {ok, result} shape that
// hides the new ref").
type Result struct {
	RowsAffected int64
}

// ResetSignal wraps an error that means the caller's cached prepared
// statement is no longer valid and must be discarded (spec.md §4.G, §7).
type ResetSignal struct {
	Err error
}

func (r *ResetSignal) Error() string { return "adapter: reset required: " + r.Err.Error() }
func (r *ResetSignal) Unwrap() error { return r.Err }

// PrepareExecute prepares (if needed) and executes sql, a transparent
// pass-through (spec.md §4.G).
func (a *Adapter) PrepareExecute(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	a.log.Trace("prepare_execute", "sql", sql)
	return a.conn.Exec(ctx, sql, args...)
}

// Query is a transparent pass-through to the driver's Query.
func (a *Adapter) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	a.log.Trace("query", "sql", sql)
	return a.conn.Query(ctx, sql, args...)
}

// Stream is a transparent pass-through; PostgreSQL cursors are modeled the
// same way a plain query is at this layer, the streaming behavior lives in
// how the caller consumes pgx.Rows.
func (a *Adapter) Stream(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	a.log.Trace("stream", "sql", sql)
	return a.conn.Query(ctx, sql, args...)
}

// Execute runs q against the connection and normalizes the result shape,
// re-tagging feature_not_supported and query-protocol errors as a
// ResetSignal so the caller can invalidate its cached prepared statement
// (spec.md §4.G, §7 "All rendering errors ... Driver errors are passed
// through ... except for feature_not_supported and query errors"). On
// success, Result carries only RowsAffected: whatever internal ref the
// driver re-prepared q.SQL under never reaches the caller, which is what
// "hides the new ref" means here — there is nothing to compare q.Name
// against, since Result has no name field to disagree with it.
func (a *Adapter) Execute(ctx context.Context, q PreparedQuery, params []any) (Result, error) {
	a.log.Trace("execute", "name", q.Name, "sql", q.SQL)
	tag, err := a.conn.Exec(ctx, q.SQL, params...)
	if err != nil {
		return Result{}, tagResetSignal(err)
	}
	return Result{RowsAffected: tag.RowsAffected()}, nil
}

func tagResetSignal(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == featureNotSupportedCode {
		return &ResetSignal{Err: err}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return err
	}
	if isQueryError(err) {
		return &ResetSignal{Err: err}
	}
	return err
}

// isQueryError reports whether err represents a protocol-level mismatch
// between the statement the caller believes it prepared and what the
// connection actually holds, rather than an ordinary data/constraint error.
func isQueryError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "26000", // invalid_sql_statement_name
		"08003", // connection_does_not_exist
		"08006": // connection_failure
		return true
	default:
		return false
	}
}
