package render

import (
	"fmt"

	"github.com/aptinio/ecto-sql"
	"github.com/aptinio/ecto-sql/internal/iolist"
)

// Insert renders a multi-row INSERT statement (spec.md §4.D "INSERT"). The
// alias is only emitted when the conflict clause carries a full UPDATE
// query, the one case Postgres requires it for (EXCLUDED vs. a named
// target row alias), and is derived from that query's own source alias so
// it matches whatever renderUpdateOpsFromQuery references in DO UPDATE SET.
func (r *Renderer) Insert(prefix, table string, header []string, rows [][]ectosql.RowValue, onConflict ectosql.OnConflict, returning []string) ([]byte, error) {
	tableSQL, err := iolist.QuoteTable(prefix, table)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "INSERT table name")
	}

	out := iolist.New().WriteString("INSERT INTO ").WriteList(tableSQL)
	if onConflict.Kind == ectosql.ConflictUpdateQuery {
		alias, err := r.conflictQueryAlias(onConflict.Query)
		if err != nil {
			return nil, err
		}
		out.WriteString(" AS ").WriteString(alias)
	}

	cols := make([]*iolist.Builder, len(header))
	for i, h := range header {
		q, err := iolist.QuoteName(h)
		if err != nil {
			return nil, wrapError(KindInvalidIdentifier, nil, err, "INSERT column name")
		}
		cols[i] = q
	}
	if len(header) > 0 {
		out.WriteString(" (").Join(cols, ",").WriteByte(')')
	}

	values, err := r.renderInsertRows(header, rows)
	if err != nil {
		return nil, err
	}
	out.WriteString(" VALUES ").WriteList(values)

	conflict, err := r.renderOnConflict(onConflict)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		out.WriteByte(' ').WriteList(conflict)
	}

	if len(returning) > 0 {
		ret, err := renderReturning(returning)
		if err != nil {
			return nil, err
		}
		out.WriteString(" RETURNING ").WriteList(ret)
	}

	return out.Bytes(), nil
}

// renderInsertRows threads the renderer-assigned parameter counter across
// every row and slot, in appearance order (spec.md §3.5, Design Notes §9).
// Header columns and row tuples are interspersed with a bare comma, matching
// Ecto's INSERT formatting (distinct from the ", "-joined lists used by
// SELECT/SET/WHERE elsewhere in this package). With no header every row
// renders as a single literal "(DEFAULT)" group regardless of its width —
// one DEFAULT group per row, not one DEFAULT slot per column.
func (r *Renderer) renderInsertRows(header []string, rows [][]ectosql.RowValue) (*iolist.Builder, error) {
	counter := 1
	rendered := make([]*iolist.Builder, len(rows))
	for ri, row := range rows {
		if len(header) == 0 {
			rendered[ri] = iolist.New().WriteString("(DEFAULT)")
			continue
		}
		slots := make([]*iolist.Builder, len(row))
		for si, v := range row {
			switch {
			case v.Default:
				slots[si] = iolist.New().WriteString("DEFAULT")
			case v.Subquery != nil:
				sub, err := r.All(v.Subquery.Query)
				if err != nil {
					return nil, err
				}
				slots[si] = iolist.New().WriteByte('(').Write(sub).WriteByte(')')
				counter += v.Subquery.ParamCount
			default:
				slots[si] = iolist.New().WriteString(fmt.Sprintf("$%d", counter))
				counter++
			}
		}
		rendered[ri] = iolist.New().WriteByte('(').Join(slots, ",").WriteByte(')')
	}
	return iolist.New().Join(rendered, ","), nil
}

func (r *Renderer) renderOnConflict(oc ectosql.OnConflict) (*iolist.Builder, error) {
	if oc.Kind == ectosql.ConflictRaise {
		return nil, nil
	}

	out := iolist.New().WriteString("ON CONFLICT")
	target, err := r.renderConflictTarget(oc.Target)
	if err != nil {
		return nil, err
	}
	if target != nil {
		out.WriteByte(' ').WriteList(target)
	}

	switch oc.Kind {
	case ectosql.ConflictNothing:
		out.WriteString(" DO NOTHING")
	case ectosql.ConflictUpdateFields:
		sets := make([]*iolist.Builder, len(oc.Fields))
		for i, f := range oc.Fields {
			col, err := iolist.QuoteName(f)
			if err != nil {
				return nil, wrapError(KindInvalidIdentifier, nil, err, "ON CONFLICT update field")
			}
			sets[i] = iolist.New().WriteList(col).WriteString(" = EXCLUDED.").WriteList(col)
		}
		out.WriteString(" DO UPDATE SET ").Join(sets, ", ")
	case ectosql.ConflictUpdateQuery:
		c, err := r.newCtx(oc.Query)
		if err != nil {
			return nil, err
		}
		set, err := r.renderUpdateOpsFromQuery(oc.Query, c)
		if err != nil {
			return nil, err
		}
		out.WriteString(" DO UPDATE SET ").WriteList(set)
	default:
		return nil, newError(KindUnsupportedFeature, oc.Query, "unknown ON CONFLICT kind %d", oc.Kind)
	}
	return out, nil
}

// renderUpdateOpsFromQuery renders just the SET list of an UPDATE-shaped
// query, for the ON CONFLICT DO UPDATE SET ... from a sub-query form.
func (r *Renderer) renderUpdateOpsFromQuery(q *ectosql.Query, c *ctx) (*iolist.Builder, error) {
	table, ok := q.Sources[q.From].(ectosql.Table)
	if !ok {
		return nil, newError(KindUnsupportedFeature, q, "ON CONFLICT update query target must be a real table")
	}
	entry, err := c.srcs.Get(q.From)
	if err != nil {
		return nil, wrapError(KindUnsupportedFeature, q, err, "ON CONFLICT update query source")
	}
	return r.renderUpdateOps(table, entry.Alias, q.Updates, c)
}

// conflictQueryAlias derives the alias the INSERT target must be declared
// under (the "AS" clause) so it matches the alias renderUpdateOpsFromQuery
// assigns the same query's source when rendering DO UPDATE SET — Ecto
// aliases the INSERT target with the on_conflict query's own source alias
// rather than a fixed name, so the two always resolve to the same row.
func (r *Renderer) conflictQueryAlias(q *ectosql.Query) (string, error) {
	c, err := r.newCtx(q)
	if err != nil {
		return "", err
	}
	entry, err := c.srcs.Get(q.From)
	if err != nil {
		return "", wrapError(KindUnsupportedFeature, q, err, "ON CONFLICT update query source")
	}
	return entry.Alias, nil
}

func (r *Renderer) renderConflictTarget(t ectosql.ConflictTarget) (*iolist.Builder, error) {
	switch t.Kind {
	case ectosql.ConflictTargetNone:
		return nil, nil
	case ectosql.ConflictTargetConstraint:
		name, err := iolist.QuoteName(t.Constraint)
		if err != nil {
			return nil, wrapError(KindInvalidIdentifier, nil, err, "ON CONFLICT constraint name")
		}
		return iolist.New().WriteString("ON CONSTRAINT ").WriteList(name), nil
	case ectosql.ConflictTargetFragment:
		if t.Fragment == nil {
			return nil, newError(KindUnsupportedFeature, nil, "ON CONFLICT unsafe_fragment target has no fragment")
		}
		return r.renderFragment(*t.Fragment, &ctx{})
	case ectosql.ConflictTargetColumns:
		if len(t.Columns) == 0 {
			return nil, nil
		}
		cols := make([]*iolist.Builder, len(t.Columns))
		for i, c := range t.Columns {
			q, err := iolist.QuoteName(c)
			if err != nil {
				return nil, wrapError(KindInvalidIdentifier, nil, err, "ON CONFLICT target column")
			}
			cols[i] = q
		}
		return iolist.New().WriteByte('(').Join(cols, ", ").WriteByte(')'), nil
	default:
		return nil, newError(KindUnsupportedFeature, nil, "unknown ON CONFLICT target kind %d", t.Kind)
	}
}

func renderReturning(cols []string) (*iolist.Builder, error) {
	rendered := make([]*iolist.Builder, len(cols))
	for i, c := range cols {
		q, err := iolist.QuoteName(c)
		if err != nil {
			return nil, wrapError(KindInvalidIdentifier, nil, err, "RETURNING column")
		}
		rendered[i] = q
	}
	return iolist.New().Join(rendered, ", "), nil
}
