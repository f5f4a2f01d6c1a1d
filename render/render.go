// Package render implements the PostgreSQL dialect SQL/DDL renderer: a pure,
// side-effect-free translator from the ectosql query and migration ASTs into
// wire-ready SQL text plus positional parameters.
package render

import (
	"github.com/aptinio/ecto-sql"
)

// Renderer renders ectosql ASTs into PostgreSQL SQL text. It is stateless
// and safe for concurrent use: every method is a pure function of its
// arguments plus the Config it was constructed with.
type Renderer struct {
	cfg Config
}

// New constructs a Renderer bound to cfg.
func New(cfg Config) *Renderer {
	return &Renderer{cfg: cfg}
}

func (r *Renderer) newCtx(q *ectosql.Query) (*ctx, error) {
	srcs, err := r.buildSources(q)
	if err != nil {
		return nil, err
	}
	return &ctx{q: q, srcs: srcs, cfg: r.cfg}, nil
}

// All renders a full SELECT statement from q.
func (r *Renderer) All(q *ectosql.Query) ([]byte, error) {
	c, err := r.newCtx(q)
	if err != nil {
		return nil, err
	}
	out, err := r.renderSelect(q, c)
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// UpdateAll renders a statement-level UPDATE from q, lowering any inner
// joins into a FROM clause (spec.md §4.D "UPDATE").
func (r *Renderer) UpdateAll(q *ectosql.Query, prefix string) ([]byte, error) {
	c, err := r.newCtx(q)
	if err != nil {
		return nil, err
	}
	out, err := r.renderUpdateAll(q, prefix, c)
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// DeleteAll renders a statement-level DELETE from q, lowering any inner
// joins into a USING clause (spec.md §4.D "DELETE").
func (r *Renderer) DeleteAll(q *ectosql.Query) ([]byte, error) {
	c, err := r.newCtx(q)
	if err != nil {
		return nil, err
	}
	out, err := r.renderDeleteAll(q, c)
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// TableExistsQuery returns the fixed existence-check statement and its
// single parameter (spec.md §6.1).
func (r *Renderer) TableExistsQuery(name string) (string, []any) {
	const sql = `SELECT true FROM information_schema.tables WHERE table_name = $1 AND table_schema = current_schema() LIMIT 1`
	return sql, []any{name}
}
