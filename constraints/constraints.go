// Package constraints decodes PostgreSQL driver errors into
// constraint-violation tuples (spec.md §4.F), the one piece of the renderer
// that inspects driver error shapes rather than producing SQL.
package constraints

import "strings"

// Kind enumerates the constraint-violation kinds the decoder recognizes.
type Kind string

const (
	KindUnique     Kind = "unique"
	KindForeignKey Kind = "foreign_key"
	KindExclusion  Kind = "exclusion"
	KindCheck      Kind = "check"
)

// Violation is one decoded (kind, constraint name) tuple.
type Violation struct {
	Kind Kind
	Name string
}

// Error is the minimal shape to_constraints needs from a driver error: a
// structured (code, constraint) pair when the driver supplies one, and
// always the raw message for the legacy fallback (spec.md §4.F).
type Error struct {
	Code       string
	Constraint string
	Message    string
}

var codeKinds = map[string]Kind{
	"unique_violation":            KindUnique,
	"foreign_key_violation":       KindForeignKey,
	"exclusion_violation":         KindExclusion,
	"check_violation":             KindCheck,
	"23505":                       KindUnique, // SQLSTATE, in case Code carries the raw state
	"23503":                       KindForeignKey,
	"23P01":                       KindExclusion,
	"23514":                       KindCheck,
}

// ToConstraints decodes err into the list of violations it represents.
// Structured errors (driver-supplied code and constraint name) are decoded
// directly; legacy errors are recovered by splitting the message on the
// sentinel substrings Postgres has used since 9.2 (spec.md §4.F, §9 "Open
// questions": mirror the split-on-literal-substring approach without
// second-guessing it). Unrecognized errors decode to an empty list.
func ToConstraints(err Error) []Violation {
	if err.Constraint != "" {
		if kind, ok := codeKinds[err.Code]; ok {
			return []Violation{{Kind: kind, Name: err.Constraint}}
		}
	}
	return legacyDecode(err.Message)
}

var legacySentinels = []struct {
	marker string
	kind   Kind
}{
	{" unique constraint ", KindUnique},
	{" foreign key constraint ", KindForeignKey},
	{" exclusion constraint ", KindExclusion},
	{" check constraint ", KindCheck},
}

func legacyDecode(message string) []Violation {
	for _, s := range legacySentinels {
		idx := strings.Index(message, s.marker)
		if idx < 0 {
			continue
		}
		rest := message[idx+len(s.marker):]
		if s.kind == KindForeignKey {
			if onIdx := strings.Index(rest, " on table "); onIdx >= 0 {
				rest = rest[:onIdx]
			}
		}
		name := strings.Trim(strings.TrimSpace(rest), `"`)
		if quoteEnd := strings.Index(name, `"`); quoteEnd >= 0 {
			name = name[:quoteEnd]
		}
		if name == "" {
			continue
		}
		return []Violation{{Kind: s.kind, Name: name}}
	}
	return nil
}
