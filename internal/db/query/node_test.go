package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	testCases := []struct {
		name string
		node Node

		want string
	}{
		{
			name: "nil",
			node: nil,
			want: "",
		},
		{
			name: "column",
			node: C("Title"),
			want: "[Title]",
		},
		{
			name: "column with bracket is not escaped",
			node: C("a]b"),
			want: "[a]b]",
		},
		{
			name: "value",
			node: Value{V: "x"},
			want: "'x'",
		},
		{
			name: "compare",
			node: C("Id").LTE(9),
			want: "[Id]<=9",
		},
		{
			name: "like keeps its spacing",
			node: C("Name").Like("%a%"),
			want: "[Name] Like '%a%'",
		},
		{
			name: "null check",
			node: NullCheck{Column: C("DeletedAt"), MustBeNull: true},
			want: "[DeletedAt] Is Null",
		},
		{
			name: "not null check",
			node: C("DeletedAt").IsNotNull(),
			want: "[DeletedAt] Is Not Null",
		},
		{
			name: "nested logical of other operator is parenthesised",
			node: NewLogical(OpAnd, NewLogical(OpOr, C("a").EQ(1), C("b").EQ(2)), C("c").EQ(3)),
			want: "([a]=1 Or [b]=2) And [c]=3",
		},
		{
			name: "nested logical of same operator is not parenthesised",
			node: NewLogical(OpOr, C("a").EQ(1), NewLogical(OpOr, C("b").EQ(2), C("c").EQ(3))),
			want: "[a]=1 Or [b]=2 Or [c]=3",
		},
		{
			name: "single child logical renders its child",
			node: NewLogical(OpAnd, C("a").EQ(1)),
			want: "[a]=1",
		},
		{
			name: "single child wrapper around other operator",
			node: NewLogical(OpAnd, NewLogical(OpAnd, NewLogical(OpOr, C("a").EQ(1), C("b").EQ(2))), C("c").EQ(3)),
			want: "([a]=1 Or [b]=2) And [c]=3",
		},
		{
			name: "empty logical",
			node: NewLogical(OpOr),
			want: "",
		},
		{
			name: "empty logical child is skipped",
			node: NewLogical(OpAnd, C("a").EQ(1), NewLogical(OpOr), C("b").EQ(2)),
			want: "[a]=1 And [b]=2",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Render(tc.node))
		})
	}
}

func TestClone(t *testing.T) {
	src := NewLogical(OpAnd, C("a").EQ(1), NewLogical(OpOr, C("b").EQ(2), C("c").EQ(3)))
	cp, ok := Clone(src).(*Logical)
	assert.True(t, ok)
	assert.Equal(t, src, cp)
	assert.NotSame(t, src, cp)

	inner := cp.Children[1].(*Logical)
	inner.Children = append(inner.Children, C("d").EQ(4))
	assert.Equal(t, "[a]=1 And ([b]=2 Or [c]=3)", Render(src))
	assert.Equal(t, "[a]=1 And ([b]=2 Or [c]=3 Or [d]=4)", Render(cp))

	assert.Nil(t, Clone(nil))
	assert.Nil(t, Clone((*Logical)(nil)))
	assert.Equal(t, C("x").IsNull(), Clone(C("x").IsNull()))
}

func TestFormatValue(t *testing.T) {
	when := time.Date(2025, time.January, 8, 14, 3, 0, 0, time.UTC)

	testCases := []struct {
		name string
		val  any

		want string
	}{
		{name: "int", val: 42, want: "42"},
		{name: "negative int", val: -7, want: "-7"},
		{name: "int32", val: int32(7), want: "7"},
		{name: "int64 is quoted", val: int64(7), want: "'7'"},
		{name: "uint is quoted", val: uint(5), want: "'5'"},
		{name: "float is quoted", val: 3.14, want: "'3.14'"},
		{name: "true", val: true, want: "'True'"},
		{name: "false", val: false, want: "'False'"},
		{name: "string", val: "NYC", want: "'NYC'"},
		{name: "empty string", val: "", want: "''"},
		{name: "quotes are doubled", val: "it's 'x'", want: "'it''s ''x'''"},
		{name: "date", val: when, want: "'08 Jan 2025 14:03:00'"},
		{name: "date pointer", val: &when, want: "'08 Jan 2025 14:03:00'"},
		{name: "nil date pointer", val: (*time.Time)(nil), want: "''"},
		{name: "nil", val: nil, want: "''"},
		{name: "stringer", val: stringer("O'Hara"), want: "'O''Hara'"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatValue(tc.val))
		})
	}
}

type stringer string

func (s stringer) String() string {
	return string(s)
}
