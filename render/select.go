package render

import (
	"github.com/aptinio/ecto-sql"
	"github.com/aptinio/ecto-sql/internal/iolist"
)

// renderSelect assembles a full SELECT statement in the clause order spec.md
// §4.D fixes: WITH, SELECT, FROM, JOINs, WHERE, GROUP BY, HAVING, WINDOW,
// set-op combinations, ORDER BY, LIMIT, OFFSET, lock suffix.
func (r *Renderer) renderSelect(q *ectosql.Query, c *ctx) (*iolist.Builder, error) {
	out := iolist.New()

	if q.WithCTEs != nil && len(q.WithCTEs.CTEs) > 0 {
		with, err := r.renderWith(q.WithCTEs, c)
		if err != nil {
			return nil, err
		}
		out.WriteList(with).WriteByte(' ')
	}

	selectClause, err := r.renderSelectFields(q, c)
	if err != nil {
		return nil, err
	}
	out.WriteString("SELECT ").WriteList(selectClause)

	from, err := r.renderSourceRef(q.From, c)
	if err != nil {
		return nil, err
	}
	out.WriteString(" FROM ").WriteList(from)

	for _, j := range q.Joins {
		joinSQL, err := r.renderJoin(j, c)
		if err != nil {
			return nil, err
		}
		out.WriteByte(' ').WriteList(joinSQL)
	}

	if len(q.Wheres) > 0 {
		where, err := r.renderBooleanList(q.Wheres, c)
		if err != nil {
			return nil, err
		}
		out.WriteString(" WHERE ").WriteList(where)
	}

	if len(q.GroupBys) > 0 {
		groupBys, err := r.exprList(q.GroupBys, c)
		if err != nil {
			return nil, err
		}
		out.WriteString(" GROUP BY ").Join(groupBys, ", ")
	}

	if len(q.Havings) > 0 {
		having, err := r.renderBooleanList(q.Havings, c)
		if err != nil {
			return nil, err
		}
		out.WriteString(" HAVING ").WriteList(having)
	}

	if len(q.Windows) > 0 {
		windows, err := r.renderNamedWindows(q.Windows, c)
		if err != nil {
			return nil, err
		}
		out.WriteString(" WINDOW ").WriteList(windows)
	}

	for _, comb := range q.Combinations {
		combSQL, err := r.renderCombination(comb, c)
		if err != nil {
			return nil, err
		}
		out.WriteByte(' ').WriteList(combSQL)
	}

	orderBys := append(append([]ectosql.OrderByExpr{}, q.Distinct.On...), q.OrderBys...)
	if len(orderBys) > 0 {
		orderBy, err := r.renderOrderBy(orderBys, c)
		if err != nil {
			return nil, err
		}
		out.WriteString(" ORDER BY ").WriteList(orderBy)
	}

	if q.Limit != nil {
		limit, err := r.expr(q.Limit, c)
		if err != nil {
			return nil, err
		}
		out.WriteString(" LIMIT ").WriteList(limit)
	}

	if q.Offset != nil {
		offset, err := r.expr(q.Offset, c)
		if err != nil {
			return nil, err
		}
		out.WriteString(" OFFSET ").WriteList(offset)
	}

	if q.Lock != nil {
		out.WriteByte(' ').WriteString(string(*q.Lock))
	}

	return out, nil
}

// renderSelectFields implements spec.md §4.D's SELECT-list rules: an empty
// field list renders SELECT TRUE; DISTINCT/DISTINCT ON prefixes the list.
func (r *Renderer) renderSelectFields(q *ectosql.Query, c *ctx) (*iolist.Builder, error) {
	prefix := iolist.New()
	if q.Distinct.All {
		prefix.WriteString("DISTINCT ")
	} else if len(q.Distinct.On) > 0 {
		on, err := r.exprList(onExprs(q.Distinct.On), c)
		if err != nil {
			return nil, err
		}
		prefix.WriteString("DISTINCT ON (").Join(on, ", ").WriteString(") ")
	}

	if len(q.Select) == 0 {
		return prefix.WriteString("TRUE"), nil
	}

	fields := make([]*iolist.Builder, len(q.Select))
	for i, e := range q.Select {
		rendered, err := r.renderSelectField(e, c)
		if err != nil {
			return nil, err
		}
		fields[i] = rendered
	}
	return prefix.Join(fields, ", "), nil
}

func onExprs(items []ectosql.OrderByExpr) []ectosql.Expr {
	out := make([]ectosql.Expr, len(items))
	for i, it := range items {
		out[i] = it.Expr
	}
	return out
}

// renderSelectField handles the SourceRef special case: selecting a whole
// source by its bare index expands to that source's rendered representation,
// which requires the source to carry a schema tag (spec.md §4.D, §7
// "missing-schema").
func (r *Renderer) renderSelectField(e ectosql.Expr, c *ctx) (*iolist.Builder, error) {
	ref, ok := e.(ectosql.SourceRef)
	if !ok {
		return r.expr(e, c)
	}
	entry, err := c.srcs.Get(ref.Source)
	if err != nil {
		return nil, wrapError(KindUnsupportedFeature, c.q, err, "select field source reference")
	}
	if entry.Schema == "" {
		return nil, newError(KindMissingSchema, c.q, "SELECT &%d requires an explicit field list: source has no schema", ref.Source)
	}
	return iolist.New().WriteString(entry.Alias), nil
}

var joinTokens = map[ectosql.JoinQualifier]string{
	ectosql.JoinInner:        "INNER JOIN",
	ectosql.JoinInnerLateral: "INNER JOIN LATERAL",
	ectosql.JoinLeft:         "LEFT OUTER JOIN",
	ectosql.JoinLeftLateral:  "LEFT OUTER JOIN LATERAL",
	ectosql.JoinRight:        "RIGHT OUTER JOIN",
	ectosql.JoinFull:         "FULL OUTER JOIN",
	ectosql.JoinCross:        "CROSS JOIN",
}

func (r *Renderer) renderJoin(j ectosql.Join, c *ctx) (*iolist.Builder, error) {
	if len(j.Hints) > 0 {
		return nil, newError(KindUnsupportedFeature, c.q, "table hints are not supported for PostgreSQL")
	}
	token, ok := joinTokens[j.Qualifier]
	if !ok {
		return nil, newError(KindUnsupportedFeature, c.q, "unknown join qualifier %q", j.Qualifier)
	}
	src, err := r.renderSourceRef(j.SourceIndex, c)
	if err != nil {
		return nil, err
	}
	out := iolist.New().WriteString(token).WriteByte(' ').WriteList(src)
	if j.Qualifier == ectosql.JoinCross {
		return out, nil
	}
	on, err := r.expr(j.On, c)
	if err != nil {
		return nil, err
	}
	return out.WriteString(" ON ").WriteList(on), nil
}

func (r *Renderer) renderNamedWindows(windows []ectosql.NamedWindow, c *ctx) (*iolist.Builder, error) {
	rendered := make([]*iolist.Builder, len(windows))
	for i, w := range windows {
		spec, err := r.renderWindowSpec(w, c)
		if err != nil {
			return nil, err
		}
		name, err := iolist.QuoteName(w.Name)
		if err != nil {
			return nil, wrapError(KindInvalidIdentifier, c.q, err, "WINDOW name")
		}
		rendered[i] = iolist.New().WriteList(name).WriteString(" AS (").WriteList(spec).WriteByte(')')
	}
	return iolist.New().Join(rendered, ", "), nil
}

func (r *Renderer) renderCombination(comb ectosql.Combination, c *ctx) (*iolist.Builder, error) {
	token, ok := combinationTokens[comb.Kind]
	if !ok {
		return nil, newError(KindUnsupportedFeature, c.q, "unknown combination kind %q", comb.Kind)
	}
	sub, err := r.All(comb.Query)
	if err != nil {
		return nil, err
	}
	return iolist.New().WriteString(token).WriteByte(' ').WriteByte('(').Write(sub).WriteByte(')'), nil
}

var combinationTokens = map[ectosql.CombinationKind]string{
	ectosql.CombinationUnion:        "UNION",
	ectosql.CombinationUnionAll:     "UNION ALL",
	ectosql.CombinationExcept:       "EXCEPT",
	ectosql.CombinationExceptAll:    "EXCEPT ALL",
	ectosql.CombinationIntersect:    "INTERSECT",
	ectosql.CombinationIntersectAll: "INTERSECT ALL",
}

// renderWith assembles the WITH [RECURSIVE] header: each CTE is either a
// full subquery (parenthesized) or a raw expression body.
func (r *Renderer) renderWith(w *ectosql.WithClause, c *ctx) (*iolist.Builder, error) {
	ctes := make([]*iolist.Builder, len(w.CTEs))
	for i, cte := range w.CTEs {
		name, err := iolist.QuoteName(cte.Name)
		if err != nil {
			return nil, wrapError(KindInvalidIdentifier, c.q, err, "CTE name")
		}
		body := iolist.New()
		switch {
		case cte.Query != nil:
			sub, err := r.All(cte.Query)
			if err != nil {
				return nil, err
			}
			body.WriteByte('(').Write(sub).WriteByte(')')
		case cte.Expr != nil:
			rendered, err := r.expr(cte.Expr, c)
			if err != nil {
				return nil, err
			}
			body.WriteList(rendered)
		default:
			return nil, newError(KindUnsupportedFeature, c.q, "CTE %q has neither a query nor an expression body", cte.Name)
		}
		ctes[i] = iolist.New().WriteList(name).WriteString(" AS ").WriteList(body)
	}

	out := iolist.New().WriteString("WITH ")
	if w.Recursive {
		out.WriteString("RECURSIVE ")
	}
	return out.Join(ctes, ", "), nil
}
