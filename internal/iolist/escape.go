package iolist

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ErrInvalidIdentifier is returned by QuoteName/QuoteTable when an identifier
// contains a double quote (spec.md §3.5, §4.A).
type ErrInvalidIdentifier struct {
	Identifier string
}

func (e ErrInvalidIdentifier) Error() string {
	return fmt.Sprintf("invalid identifier %q: identifiers cannot contain a double quote", e.Identifier)
}

// QuoteName double-quotes an identifier, rejecting any identifier that
// itself contains a double quote rather than attempting to escape it
// (spec.md §3.5).
func QuoteName(name string) (*Builder, error) {
	if strings.Contains(name, `"`) {
		return nil, ErrInvalidIdentifier{Identifier: name}
	}
	return New().WriteByte('"').WriteString(name).WriteByte('"'), nil
}

// QuoteTable renders `[prefix.]name`, each part double-quoted.
func QuoteTable(prefix, name string) (*Builder, error) {
	nameChunk, err := QuoteName(name)
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		return nameChunk, nil
	}
	prefixChunk, err := QuoteName(prefix)
	if err != nil {
		return nil, err
	}
	return New().WriteList(prefixChunk).WriteByte('.').WriteList(nameChunk), nil
}

// SingleQuote wraps s in single quotes, doubling any embedded single quote.
func SingleQuote(s string) *Builder {
	return New().WriteByte('\'').WriteString(EscapeString(s)).WriteByte('\'')
}

// EscapeString doubles every single quote in s, the one escape rule
// PostgreSQL string literals need (spec.md §4.A).
func EscapeString(s string) string {
	if !strings.Contains(s, "'") {
		return s
	}
	return strings.ReplaceAll(s, "'", "''")
}

// Bytea renders a byte string as PostgreSQL's `'\xHH...'::bytea` literal.
func Bytea(b []byte) *Builder {
	return New().
		WriteString(`'\x`).
		WriteString(hex.EncodeToString(b)).
		WriteString(`'::bytea`)
}
