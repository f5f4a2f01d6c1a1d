package ectosql

// MigrationTable is the `create table`/`drop table`/`alter` target
// (spec.md §3.3).
type MigrationTable struct {
	Name    string
	Prefix  string
	Comment string
	Options []string // string-only fragments, passed through verbatim
}

// ColumnChangeKind enumerates the column-change operations a migration may
// apply within an `alter`.
type ColumnChangeKind string

const (
	ColumnAdd               ColumnChangeKind = "add"
	ColumnAddIfNotExists    ColumnChangeKind = "add_if_not_exists"
	ColumnModify            ColumnChangeKind = "modify"
	ColumnRemove            ColumnChangeKind = "remove"
	ColumnRemoveIfExists    ColumnChangeKind = "remove_if_exists"
)

// ColumnType is either a bare Ecto-ish logical type name ("string",
// "integer", "uuid", ...), an array of one, or a Reference.
type ColumnType struct {
	Name      string // logical type name; "" when Reference is set
	IsArray   bool
	Reference *Reference
}

// ColumnOpts carries the per-column options spec.md §3.3 enumerates.
type ColumnOpts struct {
	PrimaryKey bool
	Null       *bool // nil means "unspecified", letting Postgres default apply
	Default    Expr
	Size       *int
	Precision  *int
	Scale      *int
	Comment    string
	From       *Reference // previous reference, for `modify`
}

// ColumnChange is one column-level operation inside an `alter`, or the sole
// payload of a `create`'s column list.
type ColumnChange struct {
	Kind ColumnChangeKind
	Name string
	Type ColumnType
	Opts ColumnOpts
}

// FKAction enumerates ON DELETE/ON UPDATE behaviors for a Reference.
type FKAction string

const (
	FKNilifyAll  FKAction = "nilify_all"
	FKDeleteAll  FKAction = "delete_all"
	FKUpdateAll  FKAction = "update_all"
	FKRestrict   FKAction = "restrict"
	FKNothing    FKAction = "" // omit the clause entirely
)

// Reference is a foreign-key column descriptor (spec.md §3.3, §4.E
// "References").
type Reference struct {
	Table    string
	Column   string
	Prefix   string
	Type     string // target column's logical type, for type-matching the FK column
	Name     string // constraint name override; "" means derive "<table>_<col>_fkey"
	OnDelete FKAction
	OnUpdate FKAction
}

// IndexDef is a `create index`/`drop index` command (spec.md §3.3).
type IndexDef struct {
	Name          string
	Table         string
	Prefix        string
	Columns       []string
	Unique        bool
	Concurrently  bool
	Using         string
	Where         string
	Comment       string
}

// ConstraintDef is a `create constraint`/`drop constraint` command.
type ConstraintDef struct {
	Name    string
	Table   string
	Prefix  string
	Check   string // mutually exclusive with Exclude
	Exclude string
	Comment string
}

// DDLCommand is the migration AST's root node: exactly one of the fields
// below is set, mirroring the variant described in spec.md §4.E.
type DDLCommand struct {
	CreateTable             *CreateTableCmd
	DropTable               *DropTableCmd
	AlterTable              *AlterTableCmd
	CreateIndex             *CreateIndexCmd
	CreateIndexIfNotExists  *CreateIndexCmd
	DropIndex               *DropIndexCmd
	RenameTable             *RenameTableCmd
	RenameColumn            *RenameColumnCmd
	CreateConstraint        *CreateConstraintCmd
	DropConstraint          *DropConstraintCmd
	Raw                     string
}

type CreateTableCmd struct {
	Table       MigrationTable
	IfNotExists bool
	Columns     []ColumnChange
}

type DropTableCmd struct {
	Table    MigrationTable
	IfExists bool
}

type AlterTableCmd struct {
	Table   MigrationTable
	Changes []ColumnChange
}

type CreateIndexCmd struct {
	Index IndexDef
}

type DropIndexCmd struct {
	Index    IndexDef
	IfExists bool
}

type RenameTableCmd struct {
	From MigrationTable
	To   string
}

type RenameColumnCmd struct {
	Table MigrationTable
	From  string
	To    string
}

type CreateConstraintCmd struct {
	Constraint ConstraintDef
}

type DropConstraintCmd struct {
	Constraint ConstraintDef
	IfExists   bool
}
