package render

import (
	"fmt"

	"github.com/aptinio/ecto-sql"
)

// Kind enumerates the synchronous rendering error kinds (spec.md §7). All of
// them are programmer errors raised at render time, never at query-execution
// time.
type Kind string

const (
	KindUnsupportedFeature Kind = "unsupported-feature"
	KindUnknownUpdateOp    Kind = "unknown-update-op"
	KindMissingSchema      Kind = "missing-schema"
	KindInvalidIdentifier  Kind = "invalid-identifier"
	KindInvalidDefault     Kind = "invalid-default"
)

// Error is the single error type every rendering failure surfaces as.
type Error struct {
	Kind    Kind
	Query   *ectosql.Query // the offending query, when available
	Message string
	Err     error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a *Error with the same Kind, so callers can
// write errors.Is(err, &render.Error{Kind: render.KindMissingSchema}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind Kind, q *ectosql.Query, format string, args ...any) *Error {
	return &Error{Kind: kind, Query: q, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, q *ectosql.Query, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Query: q, Message: fmt.Sprintf(format, args...), Err: err}
}
