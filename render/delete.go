package render

import (
	"fmt"

	"github.com/aptinio/ecto-sql"
	"github.com/aptinio/ecto-sql/internal/iolist"
)

// Delete renders a single-row, by-primary-key DELETE (spec.md §6.1):
// filters are the WHERE column names (typically the primary key), each
// consuming the next positional parameter in appearance order.
func (r *Renderer) Delete(prefix, table string, filters, returning []string) ([]byte, error) {
	tableSQL, err := iolist.QuoteTable(prefix, table)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "DELETE table name")
	}

	out := iolist.New().WriteString("DELETE FROM ").WriteList(tableSQL)

	if len(filters) > 0 {
		wheres := make([]*iolist.Builder, len(filters))
		for i, f := range filters {
			col, err := iolist.QuoteName(f)
			if err != nil {
				return nil, wrapError(KindInvalidIdentifier, nil, err, "DELETE filter name")
			}
			wheres[i] = iolist.New().WriteList(col).WriteString(fmt.Sprintf(" = $%d", i+1))
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

// renderDeleteAll assembles a statement-level DELETE, lowering joins into a
// USING clause exactly as renderUpdateAll lowers them into FROM (spec.md
// §4.D "DELETE").
func (r *Renderer) renderDeleteAll(q *ectosql.Query, c *ctx) (*iolist.Builder, error) {
	entry, err := c.srcs.Get(q.From)
	if err != nil {
		return nil, wrapError(KindUnsupportedFeature, q, err, "DELETE target source")
	}
	table, ok := q.Sources[q.From].(ectosql.Table)
	if !ok {
		return nil, newError(KindUnsupportedFeature, q, "DELETE target must be a real table")
	}
	tableSQL, err := iolist.QuoteTable(table.Prefix, table.Name)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, q, err, "DELETE target table name")
	}

	out := iolist.New().WriteString("DELETE FROM ").WriteList(tableSQL).WriteString(" AS ").WriteString(entry.Alias)

	wheres := append([]ectosql.BooleanExpr{}, q.Wheres...)
	if len(q.Joins) > 0 {
		usingJoins, joinWheres, err := lowerJoins(q.Joins, "UPDATE/DELETE")
		if err != nil {
			return nil, err
		}
		using, err := r.renderJoinSourceList(usingJoins, c)
		if err != nil {
			return nil, err
		}
		out.WriteString(" USING ").WriteList(using)
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
