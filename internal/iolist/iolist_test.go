package iolist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderChaining(t *testing.T) {
	b := New().WriteString("SELECT ").WriteByte('*').WriteString(" FROM ").Write([]byte(`"users"`))
	assert.Equal(t, `SELECT * FROM "users"`, b.String())
	assert.Equal(t, len(`SELECT * FROM "users"`), b.Len())
}

func TestBuilderEmptyWritesAreNoOps(t *testing.T) {
	b := New().WriteString("").Write(nil).WriteString("x")
	assert.Equal(t, "x", b.String())
}

func TestBuilderWriteListPreservesOrder(t *testing.T) {
	left := New().WriteString("a")
	right := New().WriteString("b").WriteString("c")
	out := New().WriteList(left).WriteList(right)
	assert.Equal(t, "abc", out.String())
}

func TestBuilderWriteListNilIsNoOp(t *testing.T) {
	out := New().WriteString("a").WriteList(nil).WriteString("b")
	assert.Equal(t, "ab", out.String())
}

func TestBuilderJoin(t *testing.T) {
	items := []*Builder{New().WriteString("a"), New().WriteString("b"), New().WriteString("c")}
	out := New().Join(items, ", ")
	assert.Equal(t, "a, b, c", out.String())
}

func TestBuilderJoinEmpty(t *testing.T) {
	out := New().Join(nil, ", ")
	assert.Equal(t, "", out.String())
}

func TestQuoteName(t *testing.T) {
	b, err := QuoteName("users")
	require.NoError(t, err)
	assert.Equal(t, `"users"`, b.String())
}

func TestQuoteNameRejectsDoubleQuote(t *testing.T) {
	_, err := QuoteName(`us"ers`)
	require.Error(t, err)
	var target ErrInvalidIdentifier
	require.ErrorAs(t, err, &target)
	assert.Equal(t, `us"ers`, target.Identifier)
}

func TestQuoteTable(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		table    string
		expected string
	}{
		{"no prefix", "", "users", `"users"`},
		{"with prefix", "public", "users", `"public"."users"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := QuoteTable(tt.prefix, tt.table)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, b.String())
		})
	}
}

func TestSingleQuote(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "hello", "'hello'"},
		{"embedded quote", "o'brien", "'o''brien'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SingleQuote(tt.input).String())
		})
	}
}

func TestBytea(t *testing.T) {
	assert.Equal(t, `'\xdeadbeef'::bytea`, Bytea([]byte{0xDE, 0xAD, 0xBE, 0xEF}).String())
}
