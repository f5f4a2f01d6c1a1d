// Package ectosql defines the query, expression, and migration AST consumed
// by the render, constraints, adapter, and ddllog packages, and documents the
// shape a caller is expected to build before handing a tree to them.
//
// The AST itself is "opaque" in the sense that nothing in this module builds
// it: query construction, changesets, and migration planning are external
// collaborators (see spec.md §1). What lives here is the data model those
// collaborators are expected to produce and this module's render package is
// written to consume.
//
// # Basic usage
//
//	q := &ectosql.Query{
//		Sources: []ectosql.Source{ectosql.Table{Name: "users", Schema: "u"}},
//		Select:  []ectosql.Expr{ectosql.Field{Source: 0, Name: "id"}},
//		Wheres: []ectosql.BooleanExpr{{
//			Expr: ectosql.Binary{Op: ectosql.OpGt, Left: ectosql.Field{Source: 0, Name: "age"}, Right: ectosql.Param{Ix: 0}},
//		}},
//	}
//	r := render.New(render.Config{})
//	sql, err := r.All(q)
package ectosql
