package ectosql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTableCmdToDBMLTable(t *testing.T) {
	cmd := CreateTableCmd{
		Table: MigrationTable{Name: "posts"},
		Columns: []ColumnChange{
			{Kind: ColumnAdd, Name: "id", Type: ColumnType{Name: "bigserial"}},
			{Kind: ColumnAdd, Name: "title", Type: ColumnType{Name: "string"}},
			{Kind: ColumnAdd, Name: "tags", Type: ColumnType{Name: "string", IsArray: true}},
			{Kind: ColumnAdd, Name: "author_id", Type: ColumnType{Reference: &Reference{Table: "users", Column: "id"}}},
			// modify changes describe a transition, not a final column, and are skipped.
			{Kind: ColumnModify, Name: "title", Type: ColumnType{Name: "text"}},
		},
	}

	table, err := cmd.ToDBMLTable()
	require.NoError(t, err)
	assert.Equal(t, "posts", table.Name)
	require.Len(t, table.Columns, 4)
	assert.Equal(t, "id", table.Columns[0].Name)
	assert.Equal(t, "bigserial", table.Columns[0].Type)
	assert.Equal(t, "string[]", table.Columns[2].Type)
	assert.Equal(t, "bigint", table.Columns[3].Type)
}

func TestCreateTableCmdToDBMLTableRejectsEmptyColumnType(t *testing.T) {
	cmd := CreateTableCmd{
		Table:   MigrationTable{Name: "posts"},
		Columns: []ColumnChange{{Kind: ColumnAdd, Name: "bad", Type: ColumnType{}}},
	}
	_, err := cmd.ToDBMLTable()
	assert.Error(t, err)
}

func TestToDBMLProject(t *testing.T) {
	tables := []CreateTableCmd{
		{Table: MigrationTable{Name: "users"}, Columns: []ColumnChange{{Kind: ColumnAdd, Name: "id", Type: ColumnType{Name: "bigserial"}}}},
		{Table: MigrationTable{Name: "posts"}, Columns: []ColumnChange{{Kind: ColumnAdd, Name: "id", Type: ColumnType{Name: "bigserial"}}}},
	}
	project, err := ToDBMLProject("app", tables)
	require.NoError(t, err)
	require.Len(t, project.Tables, 2)
	names := make([]string, 0, len(project.Tables))
	for _, table := range project.Tables {
		names = append(names, table.Name)
	}
	assert.Contains(t, names, "users")
	assert.Contains(t, names, "posts")
}
