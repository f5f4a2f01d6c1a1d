package render

import (
	"github.com/aptinio/ecto-sql"
	"github.com/aptinio/ecto-sql/internal/sources"
)

// ctx bundles the per-render-call state threaded through expression and
// clause rendering: the resolved source table for alias/field lookups and
// the original query, used to look up source shapes at FROM/JOIN callsites
// and so error messages can reference it (spec.md §7: "All rendering errors
// carry the originating query when available").
//
// Unlike the teacher's renderContext, ctx carries no parameter counter: for
// SELECT/UPDATE/DELETE, placeholder numbers come straight from the AST
// (spec.md §3.5), so there is nothing to thread. INSERT row rendering uses
// its own local counter (see insert.go) because it is the one place the
// renderer assigns numbers itself.
type ctx struct {
	q    *ectosql.Query
	srcs *sources.Table
	cfg  Config
}
