package render

import (
	"fmt"

	"github.com/aptinio/ecto-sql"
	"github.com/aptinio/ecto-sql/internal/iolist"
)

// Update renders a single-row, by-primary-key UPDATE (spec.md §6.1): fields
// are the SET column names and filters the WHERE column names (typically
// the primary key), each consuming the next positional parameter in
// appearance order — every field first, then every filter.
func (r *Renderer) Update(prefix, table string, fields, filters, returning []string) ([]byte, error) {
	tableSQL, err := iolist.QuoteTable(prefix, table)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "UPDATE table name")
	}

	counter := 1
	sets := make([]*iolist.Builder, len(fields))
	for i, f := range fields {
		col, err := iolist.QuoteName(f)
		if err != nil {
			return nil, wrapError(KindInvalidIdentifier, nil, err, "UPDATE field name")
		}
		sets[i] = iolist.New().WriteList(col).WriteString(fmt.Sprintf(" = $%d", counter))
		counter++
	}

	out := iolist.New().WriteString("UPDATE ").WriteList(tableSQL).WriteString(" SET ").Join(sets, ", ")

	if len(filters) > 0 {
		wheres := make([]*iolist.Builder, len(filters))
		for i, f := range filters {
			col, err := iolist.QuoteName(f)
			if err != nil {
				return nil, wrapError(KindInvalidIdentifier, nil, err, "UPDATE filter name")
			}
			wheres[i] = iolist.New().WriteList(col).WriteString(fmt.Sprintf(" = $%d", counter))
			counter++
		}
		out.WriteString(" WHERE ").Join(wheres, " AND ")
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

// renderUpdateAll assembles a statement-level UPDATE, lowering the query's
// joins into a FROM clause with their ON-expressions folded into WHERE
// (spec.md §4.D "UPDATE"). Only inner joins may be lowered this way; any
// other qualifier is rejected (spec.md §3.5).
func (r *Renderer) renderUpdateAll(q *ectosql.Query, prefix string, c *ctx) (*iolist.Builder, error) {
	entry, err := c.srcs.Get(q.From)
	if err != nil {
		return nil, wrapError(KindUnsupportedFeature, q, err, "UPDATE target source")
	}

	table, ok := q.Sources[q.From].(ectosql.Table)
	if !ok {
		return nil, newError(KindUnsupportedFeature, q, "UPDATE target must be a real table")
	}
	tableSQL, err := iolist.QuoteTable(prefix, table.Name)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, q, err, "UPDATE target table name")
	}

	out := iolist.New().WriteString("UPDATE ").WriteList(tableSQL).WriteString(" AS ").WriteString(entry.Alias)

	set, err := r.renderUpdateOps(table, entry.Alias, q.Updates, c)
	if err != nil {
		return nil, err
	}
	out.WriteString(" SET ").WriteList(set)

	wheres := append([]ectosql.BooleanExpr{}, q.Wheres...)
	if len(q.Joins) > 0 {
		fromJoins, joinWheres, err := lowerJoins(q.Joins, "UPDATE/DELETE")
		if err != nil {
			return nil, err
		}
		from, err := r.renderJoinSourceList(fromJoins, c)
		if err != nil {
			return nil, err
		}
		out.WriteString(" FROM ").WriteList(from)
		wheres = append(wheres, joinWheres...)
	}

	if len(wheres) > 0 {
		where, err := r.renderBooleanList(wheres, c)
		if err != nil {
			return nil, err
		}
		out.WriteString(" WHERE ").WriteList(where)
	}

	return out, nil
}

// renderUpdateOps renders the SET list, dispatching each op kind to its SQL
// shape (spec.md §4.D "Update-ops").
func (r *Renderer) renderUpdateOps(table ectosql.Table, alias string, ops []ectosql.UpdateOp, c *ctx) (*iolist.Builder, error) {
	rendered := make([]*iolist.Builder, len(ops))
	for i, op := range ops {
		col, err := iolist.QuoteName(op.Key)
		if err != nil {
			return nil, wrapError(KindInvalidIdentifier, c.q, err, "update column name")
		}
		value, err := r.expr(op.Expr, c)
		if err != nil {
			return nil, err
		}
		qualifiedCol := iolist.New().WriteString(alias).WriteByte('.').WriteList(col)

		var rhs *iolist.Builder
		switch op.Op {
		case ectosql.UpdateSet:
			rhs = value
		case ectosql.UpdateInc:
			rhs = iolist.New().WriteList(qualifiedCol).WriteString(" + ").WriteList(value)
		case ectosql.UpdatePush:
			rhs = iolist.New().WriteString("array_append(").WriteList(qualifiedCol).WriteString(", ").WriteList(value).WriteByte(')')
		case ectosql.UpdatePull:
			rhs = iolist.New().WriteString("array_remove(").WriteList(qualifiedCol).WriteString(", ").WriteList(value).WriteByte(')')
		default:
			return nil, newError(KindUnknownUpdateOp, c.q, "unknown update op %q", op.Op)
		}

		rendered[i] = iolist.New().WriteList(col).WriteString(" = ").WriteList(rhs)
	}
	return iolist.New().Join(rendered, ", "), nil
}

// lowerJoins validates that every join is an inner join and splits it into
// a (source index list, ON-expressions folded as AND clauses) pair suitable
// for a FROM/USING lowering (spec.md §3.5, §4.D).
func lowerJoins(joins []ectosql.Join, context string) ([]int, []ectosql.BooleanExpr, error) {
	sourceIdx := make([]int, len(joins))
	wheres := make([]ectosql.BooleanExpr, 0, len(joins))
	for i, j := range joins {
		if j.Qualifier != ectosql.JoinInner {
			return nil, nil, newError(KindUnsupportedFeature, nil, "%s only supports lowering INNER joins, got %q", context, j.Qualifier)
		}
		sourceIdx[i] = j.SourceIndex
		wheres = append(wheres, ectosql.BooleanExpr{Expr: j.On, Op: ectosql.BoolAnd})
	}
	return sourceIdx, wheres, nil
}

func (r *Renderer) renderJoinSourceList(sourceIdx []int, c *ctx) (*iolist.Builder, error) {
	rendered := make([]*iolist.Builder, len(sourceIdx))
	for i, idx := range sourceIdx {
		src, err := r.renderSourceRef(idx, c)
		if err != nil {
			return nil, err
		}
		rendered[i] = src
	}
	return iolist.New().Join(rendered, ", "), nil
}
