package render

import (
	"github.com/aptinio/ecto-sql"
	"github.com/aptinio/ecto-sql/internal/iolist"
	"github.com/aptinio/ecto-sql/internal/sources"
)

// buildSources resolves a query's source vector into the alias table the
// expression renderer looks field/source indices up against (spec.md §4.B).
// Real tables get their SQL pre-rendered here; subqueries and fragments are
// left with an empty Rendered field and are re-rendered at the FROM/JOIN
// callsite instead (spec.md §4.B "get_source").
func (r *Renderer) buildSources(q *ectosql.Query) (*sources.Table, error) {
	descs := make([]sources.SourceDesc, len(q.Sources))
	for i, src := range q.Sources {
		switch s := src.(type) {
		case ectosql.Table:
			rendered, err := iolist.QuoteTable(s.Prefix, s.Name)
			if err != nil {
				return nil, wrapError(KindInvalidIdentifier, q, err, "source %d table name", i)
			}
			descs[i] = sources.SourceDesc{Kind: sources.KindTable, Rendered: rendered.String(), TableName: s.Name, Schema: s.Schema}
		case ectosql.SubquerySource:
			descs[i] = sources.SourceDesc{Kind: sources.KindSubquery}
		case ectosql.FragmentSource:
			descs[i] = sources.SourceDesc{Kind: sources.KindFragment}
		default:
			return nil, newError(KindUnsupportedFeature, q, "unknown source type %T at index %d", src, i)
		}
	}
	return sources.New(descs)
}

// renderSourceRef renders "<source sql> AS <alias>" for a FROM/JOIN
// position, re-rendering subqueries and fragments on demand.
func (r *Renderer) renderSourceRef(idx int, c *ctx) (*iolist.Builder, error) {
	entry, err := c.srcs.Get(idx)
	if err != nil {
		return nil, wrapError(KindUnsupportedFeature, c.q, err, "source reference")
	}

	var body *iolist.Builder
	switch s := c.q.Sources[idx].(type) {
	case ectosql.Table:
		body = iolist.New().WriteString(entry.Rendered)
	case ectosql.SubquerySource:
		sub, err := r.All(s.Query)
		if err != nil {
			return nil, err
		}
		body = iolist.New().WriteByte('(').Write(sub).WriteByte(')')
	case ectosql.FragmentSource:
		rendered, err := r.renderFragment(ectosql.Fragment{Parts: s.Parts}, c)
		if err != nil {
			return nil, err
		}
		body = rendered
	default:
		return nil, newError(KindUnsupportedFeature, c.q, "unknown source type %T at index %d", s, idx)
	}

	return iolist.New().WriteList(body).WriteString(" AS ").WriteString(entry.Alias), nil
}
