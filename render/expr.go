package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aptinio/ecto-sql"
	"github.com/aptinio/ecto-sql/internal/iolist"
)

// binaryOpTokens is the operator table (spec.md §4.C, Design Notes §9
// "Operator table"): binary-op symbol → SQL infix token.
var binaryOpTokens = map[ectosql.BinOp]string{
	ectosql.OpEq:    "=",
	ectosql.OpNeq:   "!=",
	ectosql.OpLte:   "<=",
	ectosql.OpGte:   ">=",
	ectosql.OpLt:    "<",
	ectosql.OpGt:    ">",
	ectosql.OpAdd:   "+",
	ectosql.OpSub:   "-",
	ectosql.OpMul:   "*",
	ectosql.OpDiv:   "/",
	ectosql.OpAnd:   "AND",
	ectosql.OpOr:    "OR",
	ectosql.OpILike: "ILIKE",
	ectosql.OpLike:  "LIKE",
}

// expr renders a single AST expression node (spec.md §4.C). It is pure and
// recursive: the only state it consults is c.srcs (for alias/field
// resolution) and c.q (attached to errors). Tagged-type mapping is a fixed
// table and does not read c.cfg.
func (r *Renderer) expr(e ectosql.Expr, c *ctx) (*iolist.Builder, error) {
	switch n := e.(type) {
	case ectosql.Param:
		return iolist.New().WriteString("$" + strconv.Itoa(n.Ix+1)), nil

	case ectosql.Field:
		alias, err := c.srcs.Alias(n.Source)
		if err != nil {
			return nil, wrapError(KindInvalidIdentifier, c.q, err, "field %q references an unknown source", n.Name)
		}
		nameChunk, err := iolist.QuoteName(n.Name)
		if err != nil {
			return nil, wrapError(KindInvalidIdentifier, c.q, err, "field name")
		}
		return iolist.New().WriteString(alias).WriteByte('.').WriteList(nameChunk), nil

	case ectosql.SourceRef:
		alias, err := c.srcs.Alias(n.Source)
		if err != nil {
			return nil, wrapError(KindInvalidIdentifier, c.q, err, "source reference to an unknown source")
		}
		return iolist.New().WriteString(alias), nil

	case ectosql.Subquery:
		sub, err := r.All(n.Query)
		if err != nil {
			return nil, err
		}
		return iolist.New().WriteByte('(').Write(sub).WriteByte(')'), nil

	case ectosql.In:
		return r.renderIn(n, c)

	case ectosql.IsNil:
		inner, err := r.expr(n.Expr, c)
		if err != nil {
			return nil, err
		}
		return iolist.New().WriteList(inner).WriteString(" IS NULL"), nil

	case ectosql.Not:
		if isNil, ok := n.Expr.(ectosql.IsNil); ok {
			inner, err := r.expr(isNil.Expr, c)
			if err != nil {
				return nil, err
			}
			return iolist.New().WriteList(inner).WriteString(" IS NOT NULL"), nil
		}
		inner, err := r.expr(n.Expr, c)
		if err != nil {
			return nil, err
		}
		return iolist.New().WriteString("NOT (").WriteList(inner).WriteByte(')'), nil

	case ectosql.Fragment:
		return r.renderFragment(n, c)

	case ectosql.DatetimeAdd:
		return r.renderDatetimeAdd(n, c)

	case ectosql.Filter:
		agg, err := r.expr(n.Agg, c)
		if err != nil {
			return nil, err
		}
		cond, err := r.expr(n.Cond, c)
		if err != nil {
			return nil, err
		}
		return iolist.New().WriteList(agg).WriteString(" FILTER (WHERE ").WriteList(cond).WriteByte(')'), nil

	case ectosql.Over:
		return r.renderOver(n, c)

	case ectosql.Tuple:
		items, err := r.exprList(n.Items, c)
		if err != nil {
			return nil, err
		}
		return iolist.New().WriteByte('(').Join(items, ", ").WriteByte(')'), nil

	case ectosql.CountStar:
		return iolist.New().WriteString("count(*)"), nil

	case ectosql.Call:
		return r.renderCall(n, c)

	case ectosql.Binary:
		return r.renderBinary(n, c)

	case ectosql.List:
		items, err := r.exprList(n.Items, c)
		if err != nil {
			return nil, err
		}
		return iolist.New().WriteString("ARRAY[").Join(items, ", ").WriteByte(']'), nil

	case ectosql.Decimal:
		return iolist.New().WriteString(n.Value.String()), nil

	case ectosql.Tagged:
		return r.renderTagged(n, c)

	case ectosql.Null:
		return iolist.New().WriteString("NULL"), nil

	case ectosql.Bool:
		if n.Value {
			return iolist.New().WriteString("TRUE"), nil
		}
		return iolist.New().WriteString("FALSE"), nil

	case ectosql.Bytes:
		return iolist.SingleQuote(string(n.Value)), nil

	case ectosql.Int:
		return iolist.New().WriteString(strconv.FormatInt(n.Value, 10)), nil

	case ectosql.Float:
		return iolist.New().WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64) + "::float"), nil

	default:
		return nil, newError(KindUnsupportedFeature, c.q, "unrenderable expression node %T", e)
	}
}

func (r *Renderer) exprList(items []ectosql.Expr, c *ctx) ([]*iolist.Builder, error) {
	out := make([]*iolist.Builder, len(items))
	for i, it := range items {
		rendered, err := r.expr(it, c)
		if err != nil {
			return nil, err
		}
		out[i] = rendered
	}
	return out, nil
}

// exprOperand renders e for use as an operand of a binary op, parenthesizing
// it when its own head is itself a binary op (spec.md §4.C, Design Notes §9).
func (r *Renderer) exprOperand(e ectosql.Expr, c *ctx) (*iolist.Builder, error) {
	rendered, err := r.expr(e, c)
	if err != nil {
		return nil, err
	}
	if _, ok := e.(ectosql.Binary); ok {
		return parenExpr(rendered), nil
	}
	return rendered, nil
}

func parenExpr(b *iolist.Builder) *iolist.Builder {
	return iolist.New().WriteByte('(').WriteList(b).WriteByte(')')
}

func (r *Renderer) renderBinary(n ectosql.Binary, c *ctx) (*iolist.Builder, error) {
	token, ok := binaryOpTokens[n.Op]
	if !ok {
		return nil, newError(KindUnsupportedFeature, c.q, "unknown binary operator %q", n.Op)
	}
	left, err := r.exprOperand(n.Left, c)
	if err != nil {
		return nil, err
	}
	right, err := r.exprOperand(n.Right, c)
	if err != nil {
		return nil, err
	}
	return iolist.New().WriteList(left).WriteByte(' ').WriteString(token).WriteByte(' ').WriteList(right), nil
}

func (r *Renderer) renderCall(n ectosql.Call, c *ctx) (*iolist.Builder, error) {
	args := n.Args
	distinct := false
	if len(args) > 0 {
		if d, ok := args[len(args)-1].(ectosql.DistinctArg); ok {
			distinct = true
			args = append(append([]ectosql.Expr{}, args[:len(args)-1]...), d.Expr)
		}
	}
	rendered, err := r.exprList(args, c)
	if err != nil {
		return nil, err
	}
	out := iolist.New().WriteString(n.Fun).WriteByte('(')
	if distinct {
		out.WriteString("DISTINCT ")
	}
	out.Join(rendered, ", ")
	out.WriteByte(')')
	return out, nil
}

func (r *Renderer) renderIn(n ectosql.In, c *ctx) (*iolist.Builder, error) {
	switch right := n.Right.(type) {
	case ectosql.List:
		if len(right.Items) == 0 {
			return iolist.New().WriteString("false"), nil
		}
		left, err := r.expr(n.Left, c)
		if err != nil {
			return nil, err
		}
		items, err := r.exprList(right.Items, c)
		if err != nil {
			return nil, err
		}
		return iolist.New().WriteList(left).WriteString(" IN (").Join(items, ", ").WriteByte(')'), nil

	case ectosql.Param:
		left, err := r.expr(n.Left, c)
		if err != nil {
			return nil, err
		}
		param, err := r.expr(right, c)
		if err != nil {
			return nil, err
		}
		return iolist.New().WriteList(left).WriteString(" = ANY(").WriteList(param).WriteByte(')'), nil

	case ectosql.Subquery:
		left, err := r.expr(n.Left, c)
		if err != nil {
			return nil, err
		}
		sub, err := r.All(right.Query)
		if err != nil {
			return nil, err
		}
		return iolist.New().WriteList(left).WriteString(" = ANY(").Write(sub).WriteByte(')'), nil

	default:
		return nil, newError(KindUnsupportedFeature, c.q, "IN right-hand side must be a List, Param, or Subquery, got %T", n.Right)
	}
}

func (r *Renderer) renderFragment(n ectosql.Fragment, c *ctx) (*iolist.Builder, error) {
	out := iolist.New()
	for _, part := range n.Parts {
		switch part.Kind {
		case ectosql.FragmentRaw:
			out.Write(part.Raw)
		case ectosql.FragmentExprPart:
			rendered, err := r.expr(part.Expr, c)
			if err != nil {
				return nil, err
			}
			out.WriteList(rendered)
		default:
			return nil, newError(KindUnsupportedFeature, c.q, "fragment part must be raw or expr, got kind %d", part.Kind)
		}
	}
	if parensForSelect(n.Parts) {
		return parenExpr(out), nil
	}
	return out, nil
}

// parensForSelect implements the heuristic documented in spec.md §9: it
// checks only the first raw part, case-insensitively, for a SELECT prefix. A
// fragment whose first part starts with whitespace before SELECT is not
// detected, and that is intentional — spec.md explicitly says not to "fix"
// this silently.
func parensForSelect(parts []ectosql.FragmentPart) bool {
	if len(parts) == 0 || parts[0].Kind != ectosql.FragmentRaw {
		return false
	}
	return strings.HasPrefix(strings.ToUpper(string(parts[0].Raw)), "SELECT")
}

func (r *Renderer) renderDatetimeAdd(n ectosql.DatetimeAdd, c *ctx) (*iolist.Builder, error) {
	left, err := r.expr(n.Expr, c)
	if err != nil {
		return nil, err
	}
	if _, tagged := n.Expr.(ectosql.Tagged); !tagged {
		cast := "::timestamp"
		if n.Kind == ectosql.IntervalDate {
			cast = "::date"
		}
		left = iolist.New().WriteList(left).WriteString(cast)
	}
	interval, err := r.renderInterval(n.Count, n.Unit, c)
	if err != nil {
		return nil, err
	}
	result := iolist.New().WriteList(left).WriteString(" + ").WriteList(interval)
	if n.Kind == ectosql.IntervalDate {
		return iolist.New().WriteByte('(').WriteList(result).WriteString(")::date"), nil
	}
	return result, nil
}

func (r *Renderer) renderInterval(count ectosql.Expr, unit ectosql.DateUnit, c *ctx) (*iolist.Builder, error) {
	switch n := count.(type) {
	case ectosql.Int:
		return iolist.New().WriteString(fmt.Sprintf("interval '%d %s'", n.Value, unit)), nil
	case ectosql.Float:
		return iolist.New().WriteString(fmt.Sprintf("interval '%s %s'", formatCompactFloat(n.Value), unit)), nil
	default:
		rendered, err := r.expr(count, c)
		if err != nil {
			return nil, err
		}
		return iolist.New().WriteByte('(').WriteList(rendered).WriteString("::numeric * interval '1 " + string(unit) + "')"), nil
	}
}

// formatCompactFloat trims trailing zeros from a float's decimal
// representation, the "compact binary representation" spec.md §4.C calls
// for in the float-count interval form.
func formatCompactFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	return s
}

func (r *Renderer) renderOver(n ectosql.Over, c *ctx) (*iolist.Builder, error) {
	agg, err := r.expr(n.Agg, c)
	if err != nil {
		return nil, err
	}
	out := iolist.New().WriteList(agg).WriteString(" OVER ")
	if n.Window.Name != "" {
		name, err := iolist.QuoteName(n.Window.Name)
		if err != nil {
			return nil, wrapError(KindInvalidIdentifier, c.q, err, "OVER window name")
		}
		return out.WriteList(name), nil
	}
	if n.Window.Inline == nil {
		return nil, newError(KindUnsupportedFeature, c.q, "OVER requires either a window name or an inline window spec")
	}
	inline, err := r.renderWindowSpec(*n.Window.Inline, c)
	if err != nil {
		return nil, err
	}
	return out.WriteByte('(').WriteList(inline).WriteByte(')'), nil
}

func (r *Renderer) renderWindowSpec(w ectosql.NamedWindow, c *ctx) (*iolist.Builder, error) {
	out := iolist.New()
	wrote := false
	if len(w.PartitionBy) > 0 {
		items, err := r.exprList(w.PartitionBy, c)
		if err != nil {
			return nil, err
		}
		out.WriteString("PARTITION BY ").Join(items, ", ")
		wrote = true
	}
	if len(w.OrderBy) > 0 {
		if wrote {
			out.WriteByte(' ')
		}
		orderBy, err := r.renderOrderBy(w.OrderBy, c)
		if err != nil {
			return nil, err
		}
		out.WriteString("ORDER BY ").WriteList(orderBy)
	}
	return out, nil
}

func (r *Renderer) renderTagged(n ectosql.Tagged, c *ctx) (*iolist.Builder, error) {
	if b, ok := n.Value.(ectosql.Bytes); ok {
		return iolist.Bytea(b.Value), nil
	}
	rendered, err := r.expr(n.Value, c)
	if err != nil {
		return nil, err
	}
	dbType, err := taggedToDB(n.Type)
	if err != nil {
		return nil, wrapError(KindInvalidDefault, c.q, err, "tagged type")
	}
	return iolist.New().WriteList(rendered).WriteString("::" + dbType), nil
}

// taggedToDB maps a logical tag to the cast target used for Tagged "other"
// values (spec.md §4.C "Tagged other"): integer/id to bigint, arrays to
// "<elem>[]", everything else through the same ecto_to_db table the DDL
// renderer uses for column types.
func taggedToDB(tag string) (string, error) {
	if strings.HasSuffix(tag, "[]") {
		elem, err := taggedToDB(strings.TrimSuffix(tag, "[]"))
		if err != nil {
			return "", err
		}
		return elem + "[]", nil
	}
	switch tag {
	case "integer", "id":
		return "bigint", nil
	default:
		return ectoToDB(tag), nil
	}
}

func (r *Renderer) renderOrderBy(items []ectosql.OrderByExpr, c *ctx) (*iolist.Builder, error) {
	rendered := make([]*iolist.Builder, len(items))
	for i, item := range items {
		e, err := r.expr(item.Expr, c)
		if err != nil {
			return nil, err
		}
		rendered[i] = iolist.New().WriteList(e).WriteString(orderDirectionSuffix(item.Direction))
	}
	return iolist.New().Join(rendered, ", "), nil
}

// orderDirectionSuffix implements spec.md §4.D "Order direction suffixes":
// plain ASC is implicit (empty suffix); everything else is spelled out.
func orderDirectionSuffix(d ectosql.Direction) string {
	switch d {
	case ectosql.DirAsc, "":
		return ""
	case ectosql.DirAscNullsFirst:
		return " ASC NULLS FIRST"
	case ectosql.DirAscNullsLast:
		return " ASC NULLS LAST"
	case ectosql.DirDesc:
		return " DESC"
	case ectosql.DirDescNullsFirst:
		return " DESC NULLS FIRST"
	case ectosql.DirDescNullsLast:
		return " DESC NULLS LAST"
	default:
		return " " + string(d)
	}
}
