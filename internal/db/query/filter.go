package query

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ErrInvalidArgument is returned when a nil or empty condition is merged
// into a filter.
var ErrInvalidArgument = errors.New("query: invalid argument")

// IFilter is what the repository layer needs from a filter: the fragment to
// place after WHERE, possibly empty.
type IFilter interface {
	ExpressionString() string
}

// Filter builds a WHERE clause as a predicate tree. Each condition method
// joins its predicate to the existing tree with AND; the Or-prefixed twin
// joins with OR. Runs of the same operator are kept in a single n-ary node:
//
//	NewFilter().EqualTo("A", 1).OrEqualTo("B", 2).EqualTo("C", 3)
//	// ([A]=1 Or [B]=2) And [C]=3
//
// A Filter is not safe for concurrent mutation.
type Filter struct {
	root Node
}

func NewFilter() *Filter {
	return &Filter{}
}

// Empty returns a filter without conditions.
func Empty() *Filter {
	return &Filter{}
}

func (f *Filter) EqualTo(column string, value any) *Filter {
	return f.and(C(column).EQ(value))
}

func (f *Filter) OrEqualTo(column string, value any) *Filter {
	return f.or(C(column).EQ(value))
}

func (f *Filter) NotEqualTo(column string, value any) *Filter {
	return f.and(C(column).NE(value))
}

func (f *Filter) OrNotEqualTo(column string, value any) *Filter {
	return f.or(C(column).NE(value))
}

func (f *Filter) LessThan(column string, value any) *Filter {
	return f.and(C(column).LT(value))
}

func (f *Filter) OrLessThan(column string, value any) *Filter {
	return f.or(C(column).LT(value))
}

func (f *Filter) LessThanOrEqualTo(column string, value any) *Filter {
	return f.and(C(column).LTE(value))
}

func (f *Filter) OrLessThanOrEqualTo(column string, value any) *Filter {
	return f.or(C(column).LTE(value))
}

func (f *Filter) GreaterThan(column string, value any) *Filter {
	return f.and(C(column).GT(value))
}

func (f *Filter) OrGreaterThan(column string, value any) *Filter {
	return f.or(C(column).GT(value))
}

func (f *Filter) GreaterThanOrEqualTo(column string, value any) *Filter {
	return f.and(C(column).GTE(value))
}

func (f *Filter) OrGreaterThanOrEqualTo(column string, value any) *Filter {
	return f.or(C(column).GTE(value))
}

// Like matches column against a wildcard pattern, commonly using %.
func (f *Filter) Like(column, pattern string) *Filter {
	return f.and(C(column).Like(pattern))
}

func (f *Filter) OrLike(column, pattern string) *Filter {
	return f.or(C(column).Like(pattern))
}

// ContainsString matches rows whose column contains sub anywhere.
func (f *Filter) ContainsString(column, sub string) *Filter {
	return f.and(C(column).Like("%" + sub + "%"))
}

func (f *Filter) OrContainsString(column, sub string) *Filter {
	return f.or(C(column).Like("%" + sub + "%"))
}

func (f *Filter) StartsWithString(column, prefix string) *Filter {
	return f.and(C(column).Like(prefix + "%"))
}

func (f *Filter) OrStartsWithString(column, prefix string) *Filter {
	return f.or(C(column).Like(prefix + "%"))
}

// ContainsStringWithinCommaSeparatedValues matches rows whose column holds a
// comma separated list (no spaces) that includes value.
func (f *Filter) ContainsStringWithinCommaSeparatedValues(column, value string) *Filter {
	return f.and(csvMembership(column, value))
}

func (f *Filter) OrContainsStringWithinCommaSeparatedValues(column, value string) *Filter {
	return f.or(csvMembership(column, value))
}

func csvMembership(column, value string) Node {
	c := C(column)
	return NewLogical(OpOr,
		c.EQ(value),
		c.Like(value+",%"),
		c.Like("%,"+value),
		c.Like("%,"+value+",%"),
	)
}

func (f *Filter) IsNull(column string) *Filter {
	return f.and(C(column).IsNull())
}

func (f *Filter) OrIsNull(column string) *Filter {
	return f.or(C(column).IsNull())
}

func (f *Filter) IsNotNull(column string) *Filter {
	return f.and(C(column).IsNotNull())
}

func (f *Filter) OrIsNotNull(column string) *Filter {
	return f.or(C(column).IsNotNull())
}

// And joins the conditions of each sub-filter with AND, in order. Nil and
// empty sub-filters are skipped. Sub-filter trees are copied, so later
// changes to either side do not leak into the other.
func (f *Filter) And(filters ...*Filter) *Filter {
	return f.compose(OpAnd, filters)
}

// Or joins the conditions of each sub-filter with OR, in order.
func (f *Filter) Or(filters ...*Filter) *Filter {
	return f.compose(OpOr, filters)
}

func (f *Filter) compose(op LogicalOperator, filters []*Filter) *Filter {
	for _, sub := range filters {
		if !sub.HasExpression() {
			continue
		}
		// merge copies the sub-filter root, which is never nil here
		_ = f.merge(op, sub.root)
	}
	return f
}

// AndNode merges a copy of a hand-built node with AND. Nil children are
// dropped from the copy; it fails with ErrInvalidArgument when nothing is
// left. n may be shared with other filters, including this filter's Root.
func (f *Filter) AndNode(n Node) error {
	return f.merge(OpAnd, n)
}

// OrNode merges a hand-built node with OR.
func (f *Filter) OrNode(n Node) error {
	return f.merge(OpOr, n)
}

func (f *Filter) and(n Node) *Filter {
	// nodes built by the condition methods are never nil
	_ = f.merge(OpAnd, n)
	return f
}

func (f *Filter) or(n Node) *Filter {
	_ = f.merge(OpOr, n)
	return f
}

func (f *Filter) merge(op LogicalOperator, n Node) error {
	if isNil(n) {
		return fmt.Errorf("%w: condition may not be nil", ErrInvalidArgument)
	}
	n = prune(n)
	if n == nil {
		return fmt.Errorf("%w: logical condition has no conditions", ErrInvalidArgument)
	}

	if f.root == nil {
		f.root = n
		return nil
	}
	if top, ok := f.root.(*Logical); ok && top.Op == op {
		top.Children = append(top.Children, n)
		return nil
	}
	// push the existing root down beneath a new node of the desired operator
	f.root = NewLogical(op, f.root, n)
	return nil
}

// Root returns the current top node, nil for an empty filter. Merging it back
// through AndNode or OrNode merges a copy.
func (f *Filter) Root() Node {
	if f == nil {
		return nil
	}
	return f.root
}

// HasExpression reports whether any condition has been set.
func (f *Filter) HasExpression() bool {
	return f != nil && f.root != nil
}

// ExpressionString returns the WHERE clause body without the keyword, or ""
// when the filter is empty.
func (f *Filter) ExpressionString() string {
	if !f.HasExpression() {
		return ""
	}
	return Render(f.root)
}

// String returns the clause prefixed with "Where ", e.g. Where [Id]=1.
func (f *Filter) String() string {
	if !f.HasExpression() {
		return ""
	}
	return "Where " + f.ExpressionString()
}

// Equal compares filters by their rendered expression.
func (f *Filter) Equal(other *Filter) bool {
	return f.ExpressionString() == other.ExpressionString()
}

// Hash is derived from the rendered expression, so equal filters hash alike.
func (f *Filter) Hash() uint64 {
	return xxhash.Sum64String(f.ExpressionString())
}
