package ectosql

import "github.com/shopspring/decimal"

// Expr is the expression AST (spec.md §3.2): leaves and nodes that the
// render package's expression renderer walks recursively.
type Expr interface {
	isExpr()
}

// --- Leaves ---

// Int is an integer literal.
type Int struct{ Value int64 }

func (Int) isExpr() {}

// Float is a floating-point literal, rendered with an explicit ::float cast.
type Float struct{ Value float64 }

func (Float) isExpr() {}

// Bool is a boolean literal.
type Bool struct{ Value bool }

func (Bool) isExpr() {}

// Null is the NULL literal.
type Null struct{}

func (Null) isExpr() {}

// Bytes is the binary/string leaf (spec.md §3.2 "binary/string"): bare, it
// renders single-quoted; wrapped in Tagged, it renders as a `'\xHH...'::bytea`
// literal (spec.md §4.C "Tagged binary").
type Bytes struct{ Value []byte }

func (Bytes) isExpr() {}

// Decimal is a fixed-point literal, rendered via decimal.Decimal.String().
type Decimal struct{ Value decimal.Decimal }

func (Decimal) isExpr() {}

// Tagged is a value explicitly tagged with a logical type, triggering
// `::dbtype` casting (spec.md §4.C "Tagged other" / "Tagged binary").
type Tagged struct {
	Value Expr
	Type  string
}

func (Tagged) isExpr() {}

// Param is a positional placeholder referencing the caller's parameter list
// by index (spec.md §3.2 `{^, ix}`); the renderer emits `$(ix+1)`.
type Param struct{ Ix int }

func (Param) isExpr() {}

// Field is a qualified column reference `alias(Source).Name`.
type Field struct {
	Source int
	Name   string
}

func (Field) isExpr() {}

// SourceRef is a bare source reference (an unqualified alias), used e.g. to
// select an entire joined row.
type SourceRef struct{ Source int }

func (SourceRef) isExpr() {}

// Subquery embeds a nested Query as a scalar/row expression.
type Subquery struct{ Query *Query }

func (Subquery) isExpr() {}

// --- Nodes ---

// BinOp enumerates the binary operators the renderer knows how to infix.
type BinOp string

const (
	OpEq    BinOp = "=="
	OpNeq   BinOp = "!="
	OpLte   BinOp = "<="
	OpGte   BinOp = ">="
	OpLt    BinOp = "<"
	OpGt    BinOp = ">"
	OpAdd   BinOp = "+"
	OpSub   BinOp = "-"
	OpMul   BinOp = "*"
	OpDiv   BinOp = "/"
	OpAnd   BinOp = "and"
	OpOr    BinOp = "or"
	OpILike BinOp = "ilike"
	OpLike  BinOp = "like"
)

// Binary is a binary operator application (spec.md §3.2 "binary op").
type Binary struct {
	Op    BinOp
	Left  Expr
	Right Expr
}

func (Binary) isExpr() {}

// DistinctArg marks the final argument of a Call as `DISTINCT <rest>`
// (spec.md §4.C "Generic call"); it wraps the preceding expression.
type DistinctArg struct{ Expr Expr }

func (DistinctArg) isExpr() {}

// Call is a named function/aggregate call with an arbitrary argument list
// (spec.md §3.2 "named call"). Binary operators have their own node
// (Binary); Call covers everything else: func(args...), and
// func(DISTINCT x) when the last arg is a DistinctArg.
type Call struct {
	Fun  string
	Args []Expr
}

func (Call) isExpr() {}

// In is `left IN right`; right may be a List (literal set, possibly empty),
// a Param (a parameter holding a Go slice, rendered `= ANY($n)`), or a
// Subquery (rendered `= ANY(subquery)`).
type In struct {
	Left  Expr
	Right Expr
}

func (In) isExpr() {}

// IsNil is `expr IS NULL`.
type IsNil struct{ Expr Expr }

func (IsNil) isExpr() {}

// Not negates a boolean expression. Not{IsNil{x}} renders as `x IS NOT
// NULL`; anything else renders as `NOT (x)`.
type Not struct{ Expr Expr }

func (Not) isExpr() {}

// FragmentPartKind discriminates the two legal Fragment part shapes.
type FragmentPartKind int

const (
	FragmentRaw FragmentPartKind = iota
	FragmentExprPart
)

// FragmentPart is one piece of a raw SQL fragment.
type FragmentPart struct {
	Kind FragmentPartKind
	Raw  []byte
	Expr Expr
}

// Fragment is a raw SQL fragment built from raw/expr parts (spec.md §4.C).
// If the first Raw part starts with "SELECT"/"select" (case-insensitively),
// the rendered output is wrapped in parentheses.
type Fragment struct {
	Parts []FragmentPart
}

func (Fragment) isExpr() {}

// DateUnit enumerates the interval units datetime_add/date_add accept.
type DateUnit string

// IntervalKind distinguishes `datetime_add` (timestamp arithmetic) from
// `date_add` (date arithmetic, cast back to ::date).
type IntervalKind int

const (
	IntervalDatetime IntervalKind = iota
	IntervalDate
)

// DatetimeAdd is `expr + interval 'count unit'`, optionally re-cast to
// ::date for the date_add form (spec.md §4.C).
type DatetimeAdd struct {
	Kind  IntervalKind
	Expr  Expr
	Count Expr
	Unit  DateUnit
}

func (DatetimeAdd) isExpr() {}

// Filter is `agg FILTER (WHERE cond)`.
type Filter struct {
	Agg  Expr
	Cond Expr
}

func (Filter) isExpr() {}

// WindowRef is either a named window or an inline window spec.
type WindowRef struct {
	Name   string // non-empty means "OVER name"
	Inline *NamedWindow
}

// Over is `agg OVER name` or `agg OVER (window_exprs)`.
type Over struct {
	Agg    Expr
	Window WindowRef
}

func (Over) isExpr() {}

// CountStar is `count(*)`.
type CountStar struct{}

func (CountStar) isExpr() {}

// List is a list literal, rendered `ARRAY[...]` when used as a standalone
// expression (spec.md §4.C "List").
type List struct{ Items []Expr }

func (List) isExpr() {}

// Tuple is a parenthesized group `(e1, ..., en)`.
type Tuple struct{ Items []Expr }

func (Tuple) isExpr() {}

// JSONDefault is a map/JSON column default value, encoded through the
// renderer's configured JSON encoder and single-quoted (spec.md §4.E
// "Defaults"). It only appears as a DDL column default, never in a query.
type JSONDefault struct{ Value any }

func (JSONDefault) isExpr() {}
