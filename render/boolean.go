package render

import (
	"github.com/aptinio/ecto-sql"
	"github.com/aptinio/ecto-sql/internal/iolist"
)

func boolOpToken(op ectosql.BoolOp) string {
	if op == ectosql.BoolOr {
		return "OR"
	}
	return "AND"
}

// renderBooleanList folds a WHERE/HAVING clause list into one rendered
// expression (spec.md §4.C "boolean clauses group with precedence
// sensitivity"): runs of the same connective flatten without extra parens,
// and a change of connective re-parenthesizes everything accumulated so
// far. The whole result is wrapped once more, matching the worked example
// in spec.md §8 ("Simple select"): a single condition still comes out
// parenthesized.
func (r *Renderer) renderBooleanList(items []ectosql.BooleanExpr, c *ctx) (*iolist.Builder, error) {
	if len(items) == 0 {
		return nil, nil
	}

	acc, err := r.expr(items[0].Expr, c)
	if err != nil {
		return nil, err
	}
	accOp := ""

	for _, item := range items[1:] {
		token := boolOpToken(item.Op)
		rendered, err := r.expr(item.Expr, c)
		if err != nil {
			return nil, err
		}
		if accOp != "" && token != accOp {
			acc = parenExpr(acc)
		}
		acc = iolist.New().WriteList(acc).WriteByte(' ').WriteString(token).WriteByte(' ').WriteList(rendered)
		accOp = token
	}

	return parenExpr(acc), nil
}
