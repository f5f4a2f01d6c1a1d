package ectosql

// Source is one entry of a query's source vector: a real table, a subquery,
// or a raw fragment (spec.md §3.1, §3.4).
type Source interface {
	isSource()
}

// Table is a real-table source, optionally schema-tagged and namespaced under
// a prefix (Postgres schema/namespace, not to be confused with the "schema
// tag" used for SELECT &idx expansion).
type Table struct {
	Name   string
	Schema string // opaque tag carried for SELECT &idx expansion; "" means untagged
	Prefix string // Postgres schema/namespace, e.g. "public"
}

func (Table) isSource() {}

// SubquerySource embeds a nested Query as a FROM/JOIN source.
type SubquerySource struct {
	Query *Query
}

func (SubquerySource) isSource() {}

// FragmentSource is a raw SQL fragment used as a source.
type FragmentSource struct {
	Parts []FragmentPart
}

func (FragmentSource) isSource() {}

// JoinQualifier enumerates the join kinds a Query's Joins may carry.
type JoinQualifier string

const (
	JoinInner        JoinQualifier = "inner"
	JoinInnerLateral JoinQualifier = "inner_lateral"
	JoinLeft         JoinQualifier = "left"
	JoinLeftLateral  JoinQualifier = "left_lateral"
	JoinRight        JoinQualifier = "right"
	JoinFull         JoinQualifier = "full"
	JoinCross        JoinQualifier = "cross"
)

// Join is one JOIN clause, referencing a source by its index in Query.Sources.
type Join struct {
	Qualifier   JoinQualifier
	SourceIndex int
	On          Expr // nil for cross joins
	Hints       []string
}

// BoolOp is the connective between successive items of a WHERE/HAVING list.
type BoolOp string

const (
	BoolAnd BoolOp = "and"
	BoolOr  BoolOp = "or"
)

// BooleanExpr pairs an expression with how it combines with whatever
// preceded it in the same clause list.
type BooleanExpr struct {
	Expr Expr
	Op   BoolOp
}

// Direction is an ORDER BY direction, including NULLS placement.
type Direction string

const (
	DirAsc          Direction = "asc"
	DirAscNullsFirst Direction = "asc_nulls_first"
	DirAscNullsLast  Direction = "asc_nulls_last"
	DirDesc          Direction = "desc"
	DirDescNullsFirst Direction = "desc_nulls_first"
	DirDescNullsLast  Direction = "desc_nulls_last"
)

// OrderByExpr is one ORDER BY term.
type OrderByExpr struct {
	Expr      Expr
	Direction Direction
}

// Distinct captures either a bare DISTINCT or a DISTINCT ON (...) list.
type Distinct struct {
	All bool          // DISTINCT with no expression list
	On  []OrderByExpr // DISTINCT ON (...); these are prepended to ORDER BY
}

// NamedWindow is one entry of a WINDOW clause: a name and its definition,
// itself rendered from partition/order expressions.
type NamedWindow struct {
	Name       string
	PartitionBy []Expr
	OrderBy     []OrderByExpr
}

// CombinationKind enumerates the set-operation kinds a Query may combine
// with another query.
type CombinationKind string

const (
	CombinationUnion        CombinationKind = "union"
	CombinationUnionAll     CombinationKind = "union_all"
	CombinationExcept       CombinationKind = "except"
	CombinationExceptAll    CombinationKind = "except_all"
	CombinationIntersect    CombinationKind = "intersect"
	CombinationIntersectAll CombinationKind = "intersect_all"
)

// Combination is one entry of Query.Combinations.
type Combination struct {
	Kind  CombinationKind
	Query *Query
}

// NamedCTE is one entry of a WITH clause: either a full subquery or a raw
// expression body.
type NamedCTE struct {
	Name  string
	Query *Query // mutually exclusive with Expr
	Expr  Expr
}

// WithClause is a query's WITH [RECURSIVE] header.
type WithClause struct {
	Recursive bool
	CTEs      []NamedCTE
}

// UpdateOpKind enumerates the kinds of per-field update ops a Query may carry
// in UPDATE position (spec.md §3.1, §4.D "Update-ops").
type UpdateOpKind string

const (
	UpdateSet  UpdateOpKind = "set"
	UpdateInc  UpdateOpKind = "inc"
	UpdatePush UpdateOpKind = "push"
	UpdatePull UpdateOpKind = "pull"
)

// UpdateOp is one SET-list entry of an UPDATE query.
type UpdateOp struct {
	Op   UpdateOpKind
	Key  string
	Expr Expr
}

// LockKind enumerates the row-locking suffixes a SELECT may request.
type LockKind string

const (
	LockForUpdate         LockKind = "FOR UPDATE"
	LockForNoKeyUpdate    LockKind = "FOR NO KEY UPDATE"
	LockForShare          LockKind = "FOR SHARE"
	LockForKeyShare       LockKind = "FOR KEY SHARE"
)

// Query is the AST for a SELECT and, after join-lowering, the shape consumed
// by UpdateAll/DeleteAll (spec.md §3.1).
type Query struct {
	Sources []Source

	From  int // index into Sources; carries no table hints (only Join has Hints)
	Joins []Join

	Wheres  []BooleanExpr
	Havings []BooleanExpr

	GroupBys []Expr
	OrderBys []OrderByExpr
	Windows  []NamedWindow

	WithCTEs     *WithClause
	Combinations []Combination

	Distinct Distinct

	Limit  Expr
	Offset Expr
	Lock   *LockKind

	// Select is nil for "no explicit field list" (SELECT TRUE for empty,
	// handled by the renderer); non-nil but empty is likewise "no fields".
	Select []Expr

	// Updates is non-nil only when this Query is being rendered through
	// UpdateAll.
	Updates []UpdateOp
}
