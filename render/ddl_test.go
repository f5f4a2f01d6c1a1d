package render

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ectosql "github.com/aptinio/ecto-sql"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func TestExecuteDDLCreateTableWithReference(t *testing.T) {
	r := New(Config{})
	notNull := boolPtr(false)
	cmd := ectosql.DDLCommand{CreateTable: &ectosql.CreateTableCmd{
		Table: ectosql.MigrationTable{Name: "posts"},
		Columns: []ectosql.ColumnChange{
			{Kind: ectosql.ColumnAdd, Name: "id", Type: ectosql.ColumnType{Name: "bigserial"}, Opts: ectosql.ColumnOpts{PrimaryKey: true, Null: notNull}},
			{Kind: ectosql.ColumnAdd, Name: "author_id", Type: ectosql.ColumnType{Reference: &ectosql.Reference{Table: "users", Column: "id", OnDelete: ectosql.FKDeleteAll}}, Opts: ectosql.ColumnOpts{Null: notNull}},
		},
	}}
	stmts, err := r.ExecuteDDL(cmd)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t,
		`CREATE TABLE "posts" ("id" bigserial NOT NULL, "author_id" bigint NOT NULL CONSTRAINT "posts_author_id_fkey" REFERENCES "users"("id") ON DELETE CASCADE, PRIMARY KEY ("id"))`,
		string(stmts[0]))
}

func TestExecuteDDLCreateTableBinaryIDColumnWithUUIDDefault(t *testing.T) {
	r := New(Config{})
	fixedTenant := uuid.New()
	cmd := ectosql.DDLCommand{CreateTable: &ectosql.CreateTableCmd{
		Table: ectosql.MigrationTable{Name: "tenants"},
		Columns: []ectosql.ColumnChange{
			{Kind: ectosql.ColumnAdd, Name: "id", Type: ectosql.ColumnType{Name: "binary_id"}, Opts: ectosql.ColumnOpts{
				PrimaryKey: true,
				Default:    ectosql.Bytes{Value: []byte(fixedTenant.String())},
			}},
		},
	}}
	stmts, err := r.ExecuteDDL(cmd)
	require.NoError(t, err)
	assert.Equal(t,
		fmt.Sprintf(`CREATE TABLE "tenants" ("id" uuid DEFAULT '%s', PRIMARY KEY ("id"))`, fixedTenant.String()),
		string(stmts[0]))
}

func TestExecuteDDLCreateTableIfNotExistsWithComments(t *testing.T) {
	r := New(Config{})
	cmd := ectosql.DDLCommand{CreateTable: &ectosql.CreateTableCmd{
		IfNotExists: true,
		Table:       ectosql.MigrationTable{Name: "tags", Comment: "lookup table"},
		Columns: []ectosql.ColumnChange{
			{Kind: ectosql.ColumnAdd, Name: "name", Type: ectosql.ColumnType{Name: "string"}, Opts: ectosql.ColumnOpts{Comment: "display name"}},
		},
	}}
	stmts, err := r.ExecuteDDL(cmd)
	require.NoError(t, err)
	require.Len(t, stmts, 3)
	assert.Equal(t, `CREATE TABLE IF NOT EXISTS "tags" ("name" varchar(255))`, string(stmts[0]))
	assert.Equal(t, `COMMENT ON TABLE "tags" IS 'lookup table'`, string(stmts[1]))
	assert.Equal(t, `COMMENT ON COLUMN "tags"."name" IS 'display name'`, string(stmts[2]))
}

func TestColumnTypeSQLPrecisionRules(t *testing.T) {
	r := New(Config{})
	tests := []struct {
		name string
		ct   ectosql.ColumnType
		opts ectosql.ColumnOpts
		want string
	}{
		{"varchar default size", ectosql.ColumnType{Name: "string"}, ectosql.ColumnOpts{}, "varchar(255)"},
		{"varchar explicit size", ectosql.ColumnType{Name: "string"}, ectosql.ColumnOpts{Size: intPtr(32)}, "varchar(32)"},
		{"timestamp default precision", ectosql.ColumnType{Name: "utc_datetime"}, ectosql.ColumnOpts{}, "timestamp(0)"},
		{"time_usec no precision", ectosql.ColumnType{Name: "time_usec"}, ectosql.ColumnOpts{}, "time"},
		{"time_usec with precision", ectosql.ColumnType{Name: "time_usec"}, ectosql.ColumnOpts{Precision: intPtr(6)}, "time(6)"},
		{"numeric no precision", ectosql.ColumnType{Name: "numeric"}, ectosql.ColumnOpts{}, "numeric"},
		{"numeric with precision default scale", ectosql.ColumnType{Name: "numeric"}, ectosql.ColumnOpts{Precision: intPtr(10)}, "numeric(10,0)"},
		{"numeric with precision and scale", ectosql.ColumnType{Name: "numeric"}, ectosql.ColumnOpts{Precision: intPtr(10), Scale: intPtr(2)}, "numeric(10,2)"},
		{"array suffix", ectosql.ColumnType{Name: "integer", IsArray: true}, ectosql.ColumnOpts{}, "integer[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.columnTypeSQL(tt.ct, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumnTypeSQLMapRequiresConfig(t *testing.T) {
	r := New(Config{})
	_, err := r.columnTypeSQL(ectosql.ColumnType{Name: "map"}, ectosql.ColumnOpts{})
	require.Error(t, err)
	assert.Equal(t, KindInvalidDefault, err.(*Error).Kind)

	r2 := New(Config{MapType: "jsonb"})
	got, err := r2.columnTypeSQL(ectosql.ColumnType{Name: "map"}, ectosql.ColumnOpts{})
	require.NoError(t, err)
	assert.Equal(t, "jsonb", got)
}

func TestReferenceColumnType(t *testing.T) {
	tests := []struct {
		refType string
		want    string
	}{
		{"serial", "integer"},
		{"bigserial", "bigint"},
		{"", "bigint"},
		{"string", "varchar"},
	}
	for _, tt := range tests {
		t.Run(tt.refType, func(t *testing.T) {
			assert.Equal(t, tt.want, referenceColumnType(ectosql.Reference{Type: tt.refType}))
		})
	}
}

func TestRenderDefaultVariants(t *testing.T) {
	r := New(Config{})

	bytesDefault, err := r.renderDefault(ectosql.Bytes{Value: []byte("active")}, "varchar(255)")
	require.NoError(t, err)
	assert.Equal(t, "'active'", bytesDefault.String())

	_, err = r.renderDefault(ectosql.Bytes{Value: []byte{0}}, "varchar(255)")
	require.Error(t, err)
	assert.Equal(t, KindInvalidDefault, err.(*Error).Kind)

	listDefault, err := r.renderDefault(ectosql.List{Items: []ectosql.Expr{ectosql.Int{Value: 1}, ectosql.Int{Value: 2}}}, "integer[]")
	require.NoError(t, err)
	assert.Equal(t, "ARRAY[1, 2]::integer[]", listDefault.String())

	jsonDefault, err := r.renderDefault(ectosql.JSONDefault{Value: map[string]any{"a": 1}}, "jsonb")
	require.NoError(t, err)
	assert.Equal(t, `'{"a":1}'`, jsonDefault.String())

	fragDefault, err := r.renderDefault(ectosql.Fragment{Parts: []ectosql.FragmentPart{{Kind: ectosql.FragmentRaw, Raw: []byte("now()")}}}, "timestamp(0)")
	require.NoError(t, err)
	assert.Equal(t, "now()", fragDefault.String())

	_, err = r.renderDefault(ectosql.Field{Source: 0, Name: "x"}, "integer")
	require.Error(t, err)
	assert.Equal(t, KindInvalidDefault, err.(*Error).Kind)
}

func TestExecuteDDLAlterTableColumnChanges(t *testing.T) {
	r := New(Config{})
	newNull := boolPtr(true)
	cmd := ectosql.DDLCommand{AlterTable: &ectosql.AlterTableCmd{
		Table: ectosql.MigrationTable{Name: "users"},
		Changes: []ectosql.ColumnChange{
			{Kind: ectosql.ColumnAddIfNotExists, Name: "nickname", Type: ectosql.ColumnType{Name: "string"}},
			{Kind: ectosql.ColumnRemove, Name: "legacy_flag"},
			{Kind: ectosql.ColumnModify, Name: "email", Type: ectosql.ColumnType{Name: "string"}, Opts: ectosql.ColumnOpts{Null: newNull}},
		},
	}}
	stmts, err := r.ExecuteDDL(cmd)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t,
		`ALTER TABLE "users" ADD COLUMN IF NOT EXISTS "nickname" varchar(255), DROP COLUMN "legacy_flag", ALTER COLUMN "email" TYPE varchar(255), ALTER COLUMN "email" DROP NOT NULL`,
		string(stmts[0]))
}

func TestExecuteDDLAlterTableModifyDropsPreviousReferenceConstraint(t *testing.T) {
	r := New(Config{})
	cmd := ectosql.DDLCommand{AlterTable: &ectosql.AlterTableCmd{
		Table: ectosql.MigrationTable{Name: "posts"},
		Changes: []ectosql.ColumnChange{
			{Kind: ectosql.ColumnModify, Name: "author_id", Type: ectosql.ColumnType{Name: "bigint"}, Opts: ectosql.ColumnOpts{From: &ectosql.Reference{Table: "users"}}},
		},
	}}
	stmts, err := r.ExecuteDDL(cmd)
	require.NoError(t, err)
	assert.Equal(t,
		`ALTER TABLE "posts" DROP CONSTRAINT "posts_author_id_fkey", ALTER COLUMN "author_id" TYPE bigint`,
		string(stmts[0]))
}

func TestExecuteDDLDropTable(t *testing.T) {
	r := New(Config{})
	stmts, err := r.ExecuteDDL(ectosql.DDLCommand{DropTable: &ectosql.DropTableCmd{Table: ectosql.MigrationTable{Name: "posts"}, IfExists: true}})
	require.NoError(t, err)
	assert.Equal(t, `DROP TABLE IF EXISTS "posts"`, string(stmts[0]))
}

func TestExecuteDDLCreateIndex(t *testing.T) {
	r := New(Config{})
	stmts, err := r.ExecuteDDL(ectosql.DDLCommand{CreateIndex: &ectosql.CreateIndexCmd{
		Index: ectosql.IndexDef{Name: "posts_author_id_idx", Table: "posts", Columns: []string{"author_id"}, Unique: true},
	}})
	require.NoError(t, err)
	assert.Equal(t, `CREATE UNIQUE INDEX "posts_author_id_idx" ON "posts" ("author_id")`, string(stmts[0]))
}

func TestExecuteDDLCreateIndexIfNotExistsWrapsInDoBlock(t *testing.T) {
	r := New(Config{})
	stmts, err := r.ExecuteDDL(ectosql.DDLCommand{CreateIndexIfNotExists: &ectosql.CreateIndexCmd{
		Index: ectosql.IndexDef{Name: "posts_idx", Table: "posts", Columns: []string{"id"}},
	}})
	require.NoError(t, err)
	assert.Contains(t, string(stmts[0]), "DO $$ BEGIN CREATE INDEX")
	assert.Contains(t, string(stmts[0]), "EXCEPTION WHEN duplicate_table THEN END; $$;")
}

func TestExecuteDDLCreateIndexIfNotExistsRejectsConcurrently(t *testing.T) {
	r := New(Config{})
	_, err := r.ExecuteDDL(ectosql.DDLCommand{CreateIndexIfNotExists: &ectosql.CreateIndexCmd{
		Index: ectosql.IndexDef{Name: "posts_idx", Table: "posts", Columns: []string{"id"}, Concurrently: true},
	}})
	require.Error(t, err)
	assert.Equal(t, KindUnsupportedFeature, err.(*Error).Kind)
}

func TestExecuteDDLRenameTableAndColumn(t *testing.T) {
	r := New(Config{})
	stmts, err := r.ExecuteDDL(ectosql.DDLCommand{RenameTable: &ectosql.RenameTableCmd{From: ectosql.MigrationTable{Name: "old_name"}, To: "new_name"}})
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "old_name" RENAME TO "new_name"`, string(stmts[0]))

	stmts, err = r.ExecuteDDL(ectosql.DDLCommand{RenameColumn: &ectosql.RenameColumnCmd{Table: ectosql.MigrationTable{Name: "users"}, From: "nick", To: "nickname"}})
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "users" RENAME COLUMN "nick" TO "nickname"`, string(stmts[0]))
}

func TestExecuteDDLConstraints(t *testing.T) {
	r := New(Config{})
	stmts, err := r.ExecuteDDL(ectosql.DDLCommand{CreateConstraint: &ectosql.CreateConstraintCmd{
		Constraint: ectosql.ConstraintDef{Name: "users_age_check", Table: "users", Check: "age >= 0", Comment: "non-negative"},
	}})
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Equal(t, `ALTER TABLE "users" ADD CONSTRAINT "users_age_check" CHECK (age >= 0)`, string(stmts[0]))
	assert.Equal(t, `COMMENT ON CONSTRAINT "users_age_check" ON "users" IS 'non-negative'`, string(stmts[1]))

	stmts, err = r.ExecuteDDL(ectosql.DDLCommand{DropConstraint: &ectosql.DropConstraintCmd{
		Constraint: ectosql.ConstraintDef{Name: "users_age_check", Table: "users"}, IfExists: true,
	}})
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "users" DROP CONSTRAINT IF EXISTS "users_age_check"`, string(stmts[0]))
}

func TestExecuteDDLRaw(t *testing.T) {
	r := New(Config{})
	stmts, err := r.ExecuteDDL(ectosql.DDLCommand{Raw: "VACUUM ANALYZE users"})
	require.NoError(t, err)
	assert.Equal(t, []string{"VACUUM ANALYZE users"}, []string{string(stmts[0])})
}

func TestExecuteDDLEmptyCommandIsUnsupported(t *testing.T) {
	r := New(Config{})
	_, err := r.ExecuteDDL(ectosql.DDLCommand{})
	require.Error(t, err)
	assert.Equal(t, KindUnsupportedFeature, err.(*Error).Kind)
}
