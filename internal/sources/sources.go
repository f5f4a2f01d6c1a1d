// Package sources implements the source table: the per-query, positional
// vector of (rendered source, alias, schema tag) triples the expression and
// DML renderers resolve field/source references against (spec.md §3.4,
// §4.B).
package sources

import "fmt"

// Entry is one resolved source: its pre-rendered SQL (empty for a
// subquery/fragment, whose SQL is substituted at the call site instead), its
// derived alias, and the opaque schema tag carried by table sources.
type Entry struct {
	Rendered string
	Alias    string
	Schema   string
}

// Table is the immutable, indexed vector of resolved sources for one query.
type Table struct {
	entries []Entry
}

// New builds a Table from one SourceDesc per source, in query.Sources order.
// Kind selects the alias-derivation rule (spec.md §3.4): KindTable uses the
// first character of TableName when it is an ASCII letter, else "t";
// KindSubquery uses "s<ix>"; KindFragment uses "f<ix>".
func New(descs []SourceDesc) (*Table, error) {
	entries := make([]Entry, len(descs))
	for i, d := range descs {
		alias, err := deriveAlias(d, i)
		if err != nil {
			return nil, err
		}
		entries[i] = Entry{Rendered: d.Rendered, Alias: alias, Schema: d.Schema}
	}
	return &Table{entries: entries}, nil
}

// SourceDesc is the renderer's input for one source vector entry.
type SourceDesc struct {
	Kind     Kind
	Rendered string // pre-rendered table/subquery/fragment SQL ("" for subquery/fragment placeholders filled at callsite)
	TableName string // only meaningful for Kind == KindTable; used for alias derivation
	Schema   string
}

// Kind discriminates the three source shapes.
type Kind int

const (
	KindTable Kind = iota
	KindSubquery
	KindFragment
)

func deriveAlias(d SourceDesc, ix int) (string, error) {
	switch d.Kind {
	case KindTable:
		letter := "t"
		if len(d.TableName) > 0 {
			c := d.TableName[0]
			if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
				letter = string(c)
			}
		}
		return fmt.Sprintf("%s%d", letter, ix), nil
	case KindSubquery:
		return fmt.Sprintf("s%d", ix), nil
	case KindFragment:
		return fmt.Sprintf("f%d", ix), nil
	default:
		return "", fmt.Errorf("sources: unknown source kind %d at index %d", d.Kind, ix)
	}
}

// Len returns the number of sources.
func (t *Table) Len() int { return len(t.entries) }

// Get returns the entry at idx, erroring if idx is out of range (spec.md
// §3.5: "Every source index referenced by {&idx,...} must lie within the
// source vector").
func (t *Table) Get(idx int) (Entry, error) {
	if idx < 0 || idx >= len(t.entries) {
		return Entry{}, fmt.Errorf("sources: index %d out of range (have %d sources)", idx, len(t.entries))
	}
	return t.entries[idx], nil
}

// Alias is a convenience accessor for Get(idx).Alias.
func (t *Table) Alias(idx int) (string, error) {
	e, err := t.Get(idx)
	if err != nil {
		return "", err
	}
	return e.Alias, nil
}
