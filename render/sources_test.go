package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ectosql "github.com/aptinio/ecto-sql"
)

func TestBuildSourcesRendersTablesAndLeavesOthersEmpty(t *testing.T) {
	r := New(Config{})
	q := &ectosql.Query{Sources: []ectosql.Source{
		ectosql.Table{Name: "users", Prefix: "public"},
		ectosql.SubquerySource{Query: singleTableQuery()},
		ectosql.FragmentSource{Parts: []ectosql.FragmentPart{{Kind: ectosql.FragmentRaw, Raw: []byte("x")}}},
	}}
	srcs, err := r.buildSources(q)
	require.NoError(t, err)

	e0, err := srcs.Get(0)
	require.NoError(t, err)
	assert.Equal(t, `"public"."users"`, e0.Rendered)

	e1, err := srcs.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "", e1.Rendered)
	assert.Equal(t, "s1", e1.Alias)
}

func TestBuildSourcesRejectsInvalidTableName(t *testing.T) {
	r := New(Config{})
	q := &ectosql.Query{Sources: []ectosql.Source{ectosql.Table{Name: `bad"name`}}}
	_, err := r.buildSources(q)
	require.Error(t, err)
	assert.Equal(t, KindInvalidIdentifier, err.(*Error).Kind)
}

func TestRenderSourceRefFragment(t *testing.T) {
	r := New(Config{})
	q := &ectosql.Query{Sources: []ectosql.Source{
		ectosql.FragmentSource{Parts: []ectosql.FragmentPart{{Kind: ectosql.FragmentRaw, Raw: []byte("generate_series(1, 10)")}}},
	}}
	c, err := r.newCtx(q)
	require.NoError(t, err)
	out, err := r.renderSourceRef(0, c)
	require.NoError(t, err)
	assert.Equal(t, "generate_series(1, 10) AS f0", out.String())
}
