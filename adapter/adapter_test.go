package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	execSQL  string
	execArgs []any
	execTag  pgconn.CommandTag
	execErr  error

	querySQL string
}

func (f *fakeConn) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = sql
	f.execArgs = args
	return f.execTag, f.execErr
}

func (f *fakeConn) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	f.querySQL = sql
	return nil, nil
}

func (f *fakeConn) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return nil
}

func TestNewDefaultsToNullLogger(t *testing.T) {
	a := New(&fakeConn{}, nil)
	assert.NotNil(t, a)
}

func TestPrepareExecuteAndQueryAndStreamPassThrough(t *testing.T) {
	conn := &fakeConn{execTag: pgconn.NewCommandTag("UPDATE 1")}
	a := New(conn, nil)

	_, err := a.PrepareExecute(context.Background(), "UPDATE users SET x = $1", 1)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET x = $1", conn.execSQL)

	_, err = a.Query(context.Background(), "SELECT 1")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", conn.querySQL)

	_, err = a.Stream(context.Background(), "SELECT 2")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 2", conn.querySQL)
}

func TestExecuteNormalizesResult(t *testing.T) {
	conn := &fakeConn{execTag: pgconn.NewCommandTag("UPDATE 3")}
	a := New(conn, nil)

	result, err := a.Execute(context.Background(), PreparedQuery{Name: "p1", SQL: "UPDATE users SET x = $1"}, []any{1})
	require.NoError(t, err)
	assert.Equal(t, Result{RowsAffected: 3}, result)
	assert.Equal(t, "UPDATE users SET x = $1", conn.execSQL)
}

func TestExecuteWrapsFeatureNotSupportedAsResetSignal(t *testing.T) {
	pgErr := &pgconn.PgError{Code: featureNotSupportedCode}
	conn := &fakeConn{execErr: pgErr}
	a := New(conn, nil)

	_, err := a.Execute(context.Background(), PreparedQuery{SQL: "ALTER TABLE x"}, nil)
	require.Error(t, err)
	var reset *ResetSignal
	require.ErrorAs(t, err, &reset)
	assert.Same(t, pgErr, reset.Err)
}

func TestExecutePassesThroughOrdinaryError(t *testing.T) {
	plain := errors.New("boom")
	conn := &fakeConn{execErr: plain}
	a := New(conn, nil)

	_, err := a.Execute(context.Background(), PreparedQuery{SQL: "SELECT 1"}, nil)
	require.Error(t, err)
	var reset *ResetSignal
	assert.False(t, errors.As(err, &reset))
	assert.Same(t, plain, err)
}

func TestTagResetSignalFeatureNotSupported(t *testing.T) {
	pgErr := &pgconn.PgError{Code: featureNotSupportedCode}
	err := tagResetSignal(pgErr)
	var reset *ResetSignal
	require.ErrorAs(t, err, &reset)
	assert.Same(t, pgErr, reset.Err)
}

func TestTagResetSignalNoRowsPassesThrough(t *testing.T) {
	err := tagResetSignal(pgx.ErrNoRows)
	assert.Same(t, pgx.ErrNoRows, err)
}

func TestTagResetSignalConnectErrorPassesThrough(t *testing.T) {
	connErr := &pgconn.ConnectError{}
	err := tagResetSignal(connErr)
	assert.Same(t, connErr, err)
}

func TestTagResetSignalQueryProtocolErrorIsTagged(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "08003"}
	err := tagResetSignal(pgErr)
	var reset *ResetSignal
	require.ErrorAs(t, err, &reset)
	assert.Same(t, pgErr, reset.Err)
}

func TestTagResetSignalDefaultPassesThrough(t *testing.T) {
	plain := errors.New("boom")
	err := tagResetSignal(plain)
	assert.Same(t, plain, err)
}

func TestIsQueryError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"invalid_sql_statement_name", &pgconn.PgError{Code: "26000"}, true},
		{"connection_does_not_exist", &pgconn.PgError{Code: "08003"}, true},
		{"connection_failure", &pgconn.PgError{Code: "08006"}, true},
		{"unrelated pg error", &pgconn.PgError{Code: "23505"}, false},
		{"non pg error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isQueryError(tt.err))
		})
	}
}

func TestResetSignalErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection is closed")
	r := &ResetSignal{Err: cause}
	assert.Equal(t, "adapter: reset required: connection is closed", r.Error())
	assert.Same(t, cause, r.Unwrap())
}
