package render

import (
	"fmt"
	"strings"

	"github.com/aptinio/ecto-sql"
	"github.com/aptinio/ecto-sql/internal/iolist"
)

// ExecuteDDL renders one migration command into an ordered list of
// statements (spec.md §4.E): the primary DDL statement followed by any
// auxiliary COMMENT ON statements. The ordering is observable and part of
// the contract.
func (r *Renderer) ExecuteDDL(cmd ectosql.DDLCommand) ([][]byte, error) {
	switch {
	case cmd.CreateTable != nil:
		return r.renderCreateTable(*cmd.CreateTable)
	case cmd.DropTable != nil:
		return r.renderDropTable(*cmd.DropTable)
	case cmd.AlterTable != nil:
		return r.renderAlterTable(*cmd.AlterTable)
	case cmd.CreateIndex != nil:
		return r.renderCreateIndex(*cmd.CreateIndex, false)
	case cmd.CreateIndexIfNotExists != nil:
		return r.renderCreateIndex(*cmd.CreateIndexIfNotExists, true)
	case cmd.DropIndex != nil:
		return r.renderDropIndex(*cmd.DropIndex)
	case cmd.RenameTable != nil:
		return r.renderRenameTable(*cmd.RenameTable)
	case cmd.RenameColumn != nil:
		return r.renderRenameColumn(*cmd.RenameColumn)
	case cmd.CreateConstraint != nil:
		return r.renderCreateConstraint(*cmd.CreateConstraint)
	case cmd.DropConstraint != nil:
		return r.renderDropConstraint(*cmd.DropConstraint)
	case cmd.Raw != "":
		return [][]byte{[]byte(cmd.Raw)}, nil
	default:
		return nil, newError(KindUnsupportedFeature, nil, "DDL command has no recognized payload")
	}
}

func (r *Renderer) renderCreateTable(cmd ectosql.CreateTableCmd) ([][]byte, error) {
	tableSQL, err := iolist.QuoteTable(cmd.Table.Prefix, cmd.Table.Name)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "CREATE TABLE name")
	}

	defs := make([]*iolist.Builder, 0, len(cmd.Columns)+1)
	var pk []string
	var comments [][]byte
	for _, col := range cmd.Columns {
		def, err := r.columnDefSQL(col, cmd.Table.Name)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
		if col.Opts.PrimaryKey {
			pk = append(pk, col.Name)
		}
		if col.Opts.Comment != "" {
			stmt, err := columnCommentSQL(cmd.Table, col.Name, col.Opts.Comment)
			if err != nil {
				return nil, err
			}
			comments = append(comments, stmt)
		}
	}
	if len(pk) > 0 {
		pkCols := make([]*iolist.Builder, len(pk))
		for i, name := range pk {
			q, err := iolist.QuoteName(name)
			if err != nil {
				return nil, wrapError(KindInvalidIdentifier, nil, err, "primary key column")
			}
			pkCols[i] = q
		}
		defs = append(defs, iolist.New().WriteString("PRIMARY KEY (").Join(pkCols, ", ").WriteByte(')'))
	}

	out := iolist.New().WriteString("CREATE TABLE ")
	if cmd.IfNotExists {
		out.WriteString("IF NOT EXISTS ")
	}
	out.WriteList(tableSQL).WriteString(" (").Join(defs, ", ").WriteByte(')')

	stmts := [][]byte{out.Bytes()}
	if cmd.Table.Comment != "" {
		stmt, err := tableCommentSQL(cmd.Table)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	stmts = append(stmts, comments...)
	return stmts, nil
}

func (r *Renderer) renderDropTable(cmd ectosql.DropTableCmd) ([][]byte, error) {
	tableSQL, err := iolist.QuoteTable(cmd.Table.Prefix, cmd.Table.Name)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "DROP TABLE name")
	}
	out := iolist.New().WriteString("DROP TABLE ")
	if cmd.IfExists {
		out.WriteString("IF EXISTS ")
	}
	out.WriteList(tableSQL)
	return [][]byte{out.Bytes()}, nil
}

func (r *Renderer) renderAlterTable(cmd ectosql.AlterTableCmd) ([][]byte, error) {
	tableSQL, err := iolist.QuoteTable(cmd.Table.Prefix, cmd.Table.Name)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "ALTER TABLE name")
	}

	var alters []*iolist.Builder
	var pk []string
	var comments [][]byte
	for _, change := range cmd.Changes {
		clauses, comment, err := r.columnChangeClauses(change, cmd.Table.Name)
		if err != nil {
			return nil, err
		}
		alters = append(alters, clauses...)
		if change.Opts.PrimaryKey {
			pk = append(pk, change.Name)
		}
		if comment != nil {
			stmt, err := columnCommentSQL(cmd.Table, change.Name, change.Opts.Comment)
			if err != nil {
				return nil, err
			}
			comments = append(comments, stmt)
		}
	}
	if len(pk) > 0 {
		pkCols := make([]*iolist.Builder, len(pk))
		for i, name := range pk {
			q, err := iolist.QuoteName(name)
			if err != nil {
				return nil, wrapError(KindInvalidIdentifier, nil, err, "primary key column")
			}
			pkCols[i] = q
		}
		alters = append(alters, iolist.New().WriteString("ADD PRIMARY KEY (").Join(pkCols, ", ").WriteByte(')'))
	}

	out := iolist.New().WriteString("ALTER TABLE ").WriteList(tableSQL).WriteByte(' ').Join(alters, ", ")
	stmts := [][]byte{out.Bytes()}
	stmts = append(stmts, comments...)
	return stmts, nil
}

// columnChangeClauses renders the comma-separated ALTER TABLE clauses for
// one column change (spec.md §4.E "Column changes"). tableName is the table
// being altered, used to derive a default foreign key constraint name.
// comment is non-nil when the column carries a comment that needs its own
// statement.
func (r *Renderer) columnChangeClauses(change ectosql.ColumnChange, tableName string) ([]*iolist.Builder, *string, error) {
	name, err := iolist.QuoteName(change.Name)
	if err != nil {
		return nil, nil, wrapError(KindInvalidIdentifier, nil, err, "column name")
	}

	switch change.Kind {
	case ectosql.ColumnAdd, ectosql.ColumnAddIfNotExists:
		def, err := r.columnDefSQL(change, tableName)
		if err != nil {
			return nil, nil, err
		}
		prefix := "ADD COLUMN "
		if change.Kind == ectosql.ColumnAddIfNotExists {
			prefix = "ADD COLUMN IF NOT EXISTS "
		}
		clauses := []*iolist.Builder{iolist.New().WriteString(prefix).WriteList(def)}
		return clauses, commentPtr(change.Opts.Comment), nil

	case ectosql.ColumnRemove:
		return []*iolist.Builder{iolist.New().WriteString("DROP COLUMN ").WriteList(name)}, nil, nil

	case ectosql.ColumnRemoveIfExists:
		return []*iolist.Builder{iolist.New().WriteString("DROP COLUMN IF EXISTS ").WriteList(name)}, nil, nil

	case ectosql.ColumnModify:
		var clauses []*iolist.Builder
		if change.Opts.From != nil {
			fkName := change.Opts.From.Name
			if fkName == "" {
				fkName = defaultFKName(tableName, change.Name)
			}
			fk, err := iolist.QuoteName(fkName)
			if err != nil {
				return nil, nil, wrapError(KindInvalidIdentifier, nil, err, "previous foreign key name")
			}
			clauses = append(clauses, iolist.New().WriteString("DROP CONSTRAINT ").WriteList(fk))
		}
		typeSQL, err := r.columnTypeSQL(change.Type, change.Opts)
		if err != nil {
			return nil, nil, err
		}
		clauses = append(clauses, iolist.New().WriteString("ALTER COLUMN ").WriteList(name).WriteString(" TYPE ").WriteString(typeSQL))
		if change.Opts.Null != nil {
			if *change.Opts.Null {
				clauses = append(clauses, iolist.New().WriteString("ALTER COLUMN ").WriteList(name).WriteString(" DROP NOT NULL"))
			} else {
				clauses = append(clauses, iolist.New().WriteString("ALTER COLUMN ").WriteList(name).WriteString(" SET NOT NULL"))
			}
		}
		if change.Opts.Default != nil {
			def, err := r.renderDefault(change.Opts.Default, typeSQL)
			if err != nil {
				return nil, nil, err
			}
			clauses = append(clauses, iolist.New().WriteString("ALTER COLUMN ").WriteList(name).WriteString(" SET DEFAULT ").WriteList(def))
		}
		return clauses, commentPtr(change.Opts.Comment), nil

	default:
		return nil, nil, newError(KindUnsupportedFeature, nil, "unknown column change kind %q", change.Kind)
	}
}

func commentPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// columnDefSQL renders one inline column definition for CREATE TABLE/ADD
// COLUMN: name, type, nullability, default, and an inline foreign key
// constraint when the column is a Reference (spec.md §8 scenario 5).
// tableName is the owning table, used to derive a default constraint name.
func (r *Renderer) columnDefSQL(change ectosql.ColumnChange, tableName string) (*iolist.Builder, error) {
	name, err := iolist.QuoteName(change.Name)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "column name")
	}
	typeSQL, err := r.columnTypeSQL(change.Type, change.Opts)
	if err != nil {
		return nil, err
	}

	out := iolist.New().WriteList(name).WriteByte(' ').WriteString(typeSQL)
	if change.Opts.Null != nil {
		if *change.Opts.Null {
			out.WriteString(" NULL")
		} else {
			out.WriteString(" NOT NULL")
		}
	}
	if change.Opts.Default != nil {
		def, err := r.renderDefault(change.Opts.Default, typeSQL)
		if err != nil {
			return nil, err
		}
		out.WriteString(" DEFAULT ").WriteList(def)
	}
	if change.Type.Reference != nil {
		fk, err := r.referenceClauseSQL(tableName, change.Name, *change.Type.Reference)
		if err != nil {
			return nil, err
		}
		out.WriteByte(' ').WriteList(fk)
	}
	return out, nil
}

// referenceClauseSQL renders the inline `CONSTRAINT name REFERENCES
// target(col) ON DELETE x ON UPDATE y` suffix (spec.md §4.E "References").
// The default constraint name is derived from the owning table
// (tableName), not the referenced one, matching Ecto's
// "#{table.name}_#{column}_fkey".
func (r *Renderer) referenceClauseSQL(tableName, columnName string, ref ectosql.Reference) (*iolist.Builder, error) {
	fkName := ref.Name
	if fkName == "" {
		fkName = defaultFKName(tableName, columnName)
	}
	name, err := iolist.QuoteName(fkName)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "foreign key constraint name")
	}
	target, err := iolist.QuoteTable(ref.Prefix, ref.Table)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "foreign key target table")
	}
	col, err := iolist.QuoteName(ref.Column)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "foreign key target column")
	}

	out := iolist.New().WriteString("CONSTRAINT ").WriteList(name).WriteString(" REFERENCES ").WriteList(target).WriteByte('(').WriteList(col).WriteByte(')')
	if action := fkActionSQL(ref.OnDelete); action != "" {
		out.WriteString(" ON DELETE ").WriteString(action)
	}
	if action := fkActionSQL(ref.OnUpdate); action != "" {
		out.WriteString(" ON UPDATE ").WriteString(action)
	}
	return out, nil
}

func defaultFKName(table, column string) string {
	return fmt.Sprintf("%s_%s_fkey", table, column)
}

// fkActionSQL implements spec.md §4.E's ON DELETE/UPDATE mapping.
func fkActionSQL(a ectosql.FKAction) string {
	switch a {
	case ectosql.FKNilifyAll:
		return "SET NULL"
	case ectosql.FKDeleteAll, ectosql.FKUpdateAll:
		return "CASCADE"
	case ectosql.FKRestrict:
		return "RESTRICT"
	default:
		return ""
	}
}

// columnTypeSQL implements the ecto_to_db mapping plus precision/scale/size
// rules (spec.md §4.E "Type mapping").
func (r *Renderer) columnTypeSQL(ct ectosql.ColumnType, opts ectosql.ColumnOpts) (string, error) {
	if ct.Reference != nil {
		base := referenceColumnType(*ct.Reference)
		if ct.IsArray {
			base += "[]"
		}
		return base, nil
	}

	var base string
	if ct.Name == "map" {
		mt, err := r.cfg.mapType()
		if err != nil {
			return "", wrapError(KindInvalidDefault, nil, err, "map column type")
		}
		base = mt
	} else {
		base = ectoToDB(ct.Name)
	}

	switch {
	case base == "varchar":
		size := 255
		if opts.Size != nil {
			size = *opts.Size
		}
		base = fmt.Sprintf("%s(%d)", base, size)
	case ct.Name == "time" || ct.Name == "utc_datetime" || ct.Name == "naive_datetime":
		precision := 0
		if opts.Precision != nil {
			precision = *opts.Precision
		}
		base = fmt.Sprintf("%s(%d)", base, precision)
	case strings.HasSuffix(ct.Name, "_usec"):
		if opts.Precision != nil {
			base = fmt.Sprintf("%s(%d)", base, *opts.Precision)
		}
	case ct.Name == "numeric" || ct.Name == "decimal":
		if opts.Precision != nil {
			scale := 0
			if opts.Scale != nil {
				scale = *opts.Scale
			}
			base = fmt.Sprintf("%s(%d,%d)", base, *opts.Precision, scale)
		}
	}

	if ct.IsArray {
		base += "[]"
	}
	return base, nil
}

// referenceColumnType implements spec.md §4.E "Reference type": serial
// becomes integer, bigserial becomes bigint, else the target type maps
// through the same ecto_to_db table.
func referenceColumnType(ref ectosql.Reference) string {
	switch ref.Type {
	case "serial":
		return "integer"
	case "bigserial", "":
		return "bigint"
	default:
		return ectoToDB(ref.Type)
	}
}

// renderDefault implements spec.md §4.E "Defaults".
func (r *Renderer) renderDefault(e ectosql.Expr, colType string) (*iolist.Builder, error) {
	switch v := e.(type) {
	case ectosql.Bytes:
		if strings.ContainsRune(string(v.Value), 0) {
			return nil, newError(KindInvalidDefault, nil, "default value contains a NUL byte")
		}
		return iolist.SingleQuote(string(v.Value)), nil
	case ectosql.Int:
		return iolist.New().WriteString(fmt.Sprintf("%d", v.Value)), nil
	case ectosql.Float:
		return iolist.New().WriteString(formatCompactFloat(v.Value)), nil
	case ectosql.Bool:
		if v.Value {
			return iolist.New().WriteString("TRUE"), nil
		}
		return iolist.New().WriteString("FALSE"), nil
	case ectosql.List:
		items := make([]*iolist.Builder, len(v.Items))
		for i, it := range v.Items {
			rendered, err := r.renderDefault(it, colType)
			if err != nil {
				return nil, err
			}
			items[i] = rendered
		}
		return iolist.New().WriteString("ARRAY[").Join(items, ", ").WriteString("]::" + colType), nil
	case ectosql.JSONDefault:
		encoded, err := r.cfg.jsonEncoder().Marshal(v.Value)
		if err != nil {
			return nil, wrapError(KindInvalidDefault, nil, err, "JSON-encoding map default")
		}
		return iolist.SingleQuote(string(encoded)), nil
	case ectosql.Fragment:
		return r.renderFragment(v, &ctx{})
	default:
		return nil, newError(KindInvalidDefault, nil, "unrecognized default value shape %T for type %q", e, colType)
	}
}

func (r *Renderer) renderCreateIndex(cmd ectosql.CreateIndexCmd, ifNotExists bool) ([][]byte, error) {
	if ifNotExists && cmd.Index.Concurrently {
		return nil, newError(KindUnsupportedFeature, nil, "create_if_not_exists index does not support concurrently")
	}

	stmt, err := r.createIndexStatement(cmd.Index)
	if err != nil {
		return nil, err
	}

	var primary []byte
	if ifNotExists {
		primary = []byte(fmt.Sprintf(
			"DO $$ BEGIN %s; EXCEPTION WHEN duplicate_table THEN END; $$;",
			string(stmt),
		))
	} else {
		primary = stmt
	}

	stmts := [][]byte{primary}
	if cmd.Index.Comment != "" {
		comment, err := indexCommentSQL(cmd.Index)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, comment)
	}
	return stmts, nil
}

func (r *Renderer) createIndexStatement(idx ectosql.IndexDef) ([]byte, error) {
	name, err := iolist.QuoteName(idx.Name)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "index name")
	}
	tableSQL, err := iolist.QuoteTable(idx.Prefix, idx.Table)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "index target table")
	}
	cols := make([]*iolist.Builder, len(idx.Columns))
	for i, c := range idx.Columns {
		q, err := iolist.QuoteName(c)
		if err != nil {
			return nil, wrapError(KindInvalidIdentifier, nil, err, "index column")
		}
		cols[i] = q
	}

	out := iolist.New().WriteString("CREATE ")
	if idx.Unique {
		out.WriteString("UNIQUE ")
	}
	out.WriteString("INDEX ")
	if idx.Concurrently {
		out.WriteString("CONCURRENTLY ")
	}
	out.WriteList(name).WriteString(" ON ").WriteList(tableSQL)
	if idx.Using != "" {
		out.WriteString(" USING ").WriteString(idx.Using)
	}
	out.WriteString(" (").Join(cols, ", ").WriteByte(')')
	if idx.Where != "" {
		out.WriteString(" WHERE ").WriteString(idx.Where)
	}
	return out.Bytes(), nil
}

func (r *Renderer) renderDropIndex(cmd ectosql.DropIndexCmd) ([][]byte, error) {
	name, err := iolist.QuoteName(cmd.Index.Name)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "index name")
	}
	out := iolist.New().WriteString("DROP INDEX ")
	if cmd.Index.Concurrently {
		out.WriteString("CONCURRENTLY ")
	}
	if cmd.IfExists {
		out.WriteString("IF EXISTS ")
	}
	out.WriteList(name)
	return [][]byte{out.Bytes()}, nil
}

func (r *Renderer) renderRenameTable(cmd ectosql.RenameTableCmd) ([][]byte, error) {
	fromSQL, err := iolist.QuoteTable(cmd.From.Prefix, cmd.From.Name)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "RENAME TABLE source name")
	}
	to, err := iolist.QuoteName(cmd.To)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "RENAME TABLE target name")
	}
	out := iolist.New().WriteString("ALTER TABLE ").WriteList(fromSQL).WriteString(" RENAME TO ").WriteList(to)
	return [][]byte{out.Bytes()}, nil
}

func (r *Renderer) renderRenameColumn(cmd ectosql.RenameColumnCmd) ([][]byte, error) {
	tableSQL, err := iolist.QuoteTable(cmd.Table.Prefix, cmd.Table.Name)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "RENAME COLUMN table name")
	}
	from, err := iolist.QuoteName(cmd.From)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "RENAME COLUMN source name")
	}
	to, err := iolist.QuoteName(cmd.To)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "RENAME COLUMN target name")
	}
	out := iolist.New().WriteString("ALTER TABLE ").WriteList(tableSQL).WriteString(" RENAME COLUMN ").WriteList(from).WriteString(" TO ").WriteList(to)
	return [][]byte{out.Bytes()}, nil
}

func (r *Renderer) renderCreateConstraint(cmd ectosql.CreateConstraintCmd) ([][]byte, error) {
	con := cmd.Constraint
	tableSQL, err := iolist.QuoteTable(con.Prefix, con.Table)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "constraint table name")
	}
	name, err := iolist.QuoteName(con.Name)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "constraint name")
	}

	out := iolist.New().WriteString("ALTER TABLE ").WriteList(tableSQL).WriteString(" ADD CONSTRAINT ").WriteList(name).WriteByte(' ')
	switch {
	case con.Check != "":
		out.WriteString("CHECK (").WriteString(con.Check).WriteByte(')')
	case con.Exclude != "":
		out.WriteString("EXCLUDE USING ").WriteString(con.Exclude)
	default:
		return nil, newError(KindUnsupportedFeature, nil, "constraint %q has neither a check nor an exclude clause", con.Name)
	}

	stmts := [][]byte{out.Bytes()}
	if con.Comment != "" {
		comment, err := constraintCommentSQL(con)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, comment)
	}
	return stmts, nil
}

func (r *Renderer) renderDropConstraint(cmd ectosql.DropConstraintCmd) ([][]byte, error) {
	con := cmd.Constraint
	tableSQL, err := iolist.QuoteTable(con.Prefix, con.Table)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "constraint table name")
	}
	name, err := iolist.QuoteName(con.Name)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "constraint name")
	}
	out := iolist.New().WriteString("ALTER TABLE ").WriteList(tableSQL).WriteString(" DROP CONSTRAINT ")
	if cmd.IfExists {
		out.WriteString("IF EXISTS ")
	}
	out.WriteList(name)
	return [][]byte{out.Bytes()}, nil
}

func tableCommentSQL(t ectosql.MigrationTable) ([]byte, error) {
	tableSQL, err := iolist.QuoteTable(t.Prefix, t.Name)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "table comment target")
	}
	return iolist.New().WriteString("COMMENT ON TABLE ").WriteList(tableSQL).WriteString(" IS ").WriteList(iolist.SingleQuote(t.Comment)).Bytes(), nil
}

func columnCommentSQL(t ectosql.MigrationTable, column, comment string) ([]byte, error) {
	tableSQL, err := iolist.QuoteTable(t.Prefix, t.Name)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "column comment target table")
	}
	col, err := iolist.QuoteName(column)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "column comment target column")
	}
	return iolist.New().WriteString("COMMENT ON COLUMN ").WriteList(tableSQL).WriteByte('.').WriteList(col).WriteString(" IS ").WriteList(iolist.SingleQuote(comment)).Bytes(), nil
}

func indexCommentSQL(idx ectosql.IndexDef) ([]byte, error) {
	name, err := iolist.QuoteName(idx.Name)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "index comment target")
	}
	return iolist.New().WriteString("COMMENT ON INDEX ").WriteList(name).WriteString(" IS ").WriteList(iolist.SingleQuote(idx.Comment)).Bytes(), nil
}

func constraintCommentSQL(con ectosql.ConstraintDef) ([]byte, error) {
	name, err := iolist.QuoteName(con.Name)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "constraint comment target")
	}
	tableSQL, err := iolist.QuoteTable(con.Prefix, con.Table)
	if err != nil {
		return nil, wrapError(KindInvalidIdentifier, nil, err, "constraint comment target table")
	}
	return iolist.New().WriteString("COMMENT ON CONSTRAINT ").WriteList(name).WriteString(" ON ").WriteList(tableSQL).WriteString(" IS ").WriteList(iolist.SingleQuote(con.Comment)).Bytes(), nil
}
