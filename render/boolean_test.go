package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ectosql "github.com/aptinio/ecto-sql"
)

func TestRenderBooleanListEmpty(t *testing.T) {
	r := New(Config{})
	c := newTestCtx(t, singleTableQuery())
	out, err := r.renderBooleanList(nil, c)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestRenderBooleanListSingleItemStillParenthesizes(t *testing.T) {
	r := New(Config{})
	c := newTestCtx(t, singleTableQuery())
	out, err := r.renderBooleanList([]ectosql.BooleanExpr{{Expr: ectosql.Bool{Value: true}}}, c)
	require.NoError(t, err)
	assert.Equal(t, "(TRUE)", out.String())
}

func TestRenderBooleanListRunsOfSameConnectiveDoNotReparenthesize(t *testing.T) {
	r := New(Config{})
	c := newTestCtx(t, singleTableQuery())
	items := []ectosql.BooleanExpr{
		{Expr: ectosql.Bool{Value: true}},
		{Expr: ectosql.Bool{Value: false}, Op: ectosql.BoolAnd},
		{Expr: ectosql.Bool{Value: true}, Op: ectosql.BoolAnd},
	}
	out, err := r.renderBooleanList(items, c)
	require.NoError(t, err)
	assert.Equal(t, "(TRUE AND FALSE AND TRUE)", out.String())
}

func TestBoolOpToken(t *testing.T) {
	assert.Equal(t, "OR", boolOpToken(ectosql.BoolOr))
	assert.Equal(t, "AND", boolOpToken(ectosql.BoolAnd))
	assert.Equal(t, "AND", boolOpToken(ectosql.BoolOp("")))
}
