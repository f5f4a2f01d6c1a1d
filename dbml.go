package ectosql

import (
	"fmt"

	"github.com/zoobzio/dbml"
)

// ToDBMLTable converts the table a CreateTableCmd would create into a
// dbml.Table, so the same migration AST that feeds the DDL renderer can also
// drive schema documentation or schema-diffing tooling built on
// zoobzio/dbml (spec.md §3.3; SPEC_FULL.md domain stack).
//
// Only column changes of kind add/add_if_not_exists are represented; a
// migration's modify/remove changes describe a transition, not a final
// shape, and have no single DBML column to produce.
func (c CreateTableCmd) ToDBMLTable() (*dbml.Table, error) {
	table := dbml.NewTable(c.Table.Name)
	for _, change := range c.Columns {
		if change.Kind != ColumnAdd && change.Kind != ColumnAddIfNotExists {
			continue
		}
		colType, err := columnDBMLType(change.Type)
		if err != nil {
			return nil, fmt.Errorf("ectosql: column %q: %w", change.Name, err)
		}
		table.AddColumn(dbml.NewColumn(change.Name, colType))
	}
	return table, nil
}

// columnDBMLType reduces a ColumnType to the bare type name DBML expects;
// references are represented by their target column's logical type, since
// DBML captures the relationship separately from the column's own type.
func columnDBMLType(t ColumnType) (string, error) {
	if t.Reference != nil {
		if t.Reference.Type != "" {
			return t.Reference.Type, nil
		}
		return "bigint", nil
	}
	if t.Name == "" {
		return "", fmt.Errorf("column type has neither a name nor a reference")
	}
	if t.IsArray {
		return t.Name + "[]", nil
	}
	return t.Name, nil
}

// ToDBMLProject folds a set of CreateTableCmd values into a single
// dbml.Project, one table per command. dbml.Project keeps its tables in a
// map, so the order of the commands is not preserved.
func ToDBMLProject(name string, tables []CreateTableCmd) (*dbml.Project, error) {
	project := dbml.NewProject(name)
	for _, cmd := range tables {
		table, err := cmd.ToDBMLTable()
		if err != nil {
			return nil, err
		}
		project.AddTable(table)
	}
	return project, nil
}
