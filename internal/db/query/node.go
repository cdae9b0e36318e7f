package query

import "strings"

// LogicalOperator combines the children of a Logical node.
type LogicalOperator int

const (
	OpAnd LogicalOperator = iota
	OpOr
)

func (o LogicalOperator) String() string {
	if o == OpOr {
		return "Or"
	}
	return "And"
}

// CompareOp is the exact lexeme written between a column and its value.
type CompareOp string

const (
	OpEqual              CompareOp = "="
	OpNotEqual           CompareOp = "<>"
	OpLessThan           CompareOp = "<"
	OpLessThanOrEqual    CompareOp = "<="
	OpGreaterThan        CompareOp = ">"
	OpGreaterThanOrEqual CompareOp = ">="
	// OpLike carries its own surrounding spaces; consumers rely on the
	// rendered "[col] Like 'x'" form.
	OpLike CompareOp = " Like "
)

// Node is an element of a predicate tree. The set of implementations is
// closed: *Logical, Compare, NullCheck, Column and Value.
type Node interface {
	node()
}

// Logical joins two or more children with a single operator.
type Logical struct {
	Op       LogicalOperator
	Children []Node
}

// Compare is a binary comparison between a column and a literal.
type Compare struct {
	Left  Column
	Right Value
	Op    CompareOp
}

// NullCheck tests a column against NULL.
type NullCheck struct {
	Column     Column
	MustBeNull bool
}

// Column references a column by name. The name is written verbatim
// between brackets; a ']' inside the name is not escaped.
type Column struct {
	Name string
}

// Value is a literal rendered by FormatValue.
type Value struct {
	V any
}

func (*Logical) node()  {}
func (Compare) node()   {}
func (NullCheck) node() {}
func (Column) node()    {}
func (Value) node()     {}

// NewLogical returns a Logical node over the given children.
func NewLogical(op LogicalOperator, children ...Node) *Logical {
	return &Logical{Op: op, Children: children}
}

// C returns a column reference, e.g. C("Title").
func C(name string) Column {
	return Column{Name: name}
}

func (c Column) compare(op CompareOp, val any) Compare {
	return Compare{Left: c, Right: Value{V: val}, Op: op}
}

// EQ builds [c]=val.
func (c Column) EQ(val any) Compare {
	return c.compare(OpEqual, val)
}

// NE builds [c]<>val.
func (c Column) NE(val any) Compare {
	return c.compare(OpNotEqual, val)
}

func (c Column) LT(val any) Compare {
	return c.compare(OpLessThan, val)
}

func (c Column) LTE(val any) Compare {
	return c.compare(OpLessThanOrEqual, val)
}

func (c Column) GT(val any) Compare {
	return c.compare(OpGreaterThan, val)
}

func (c Column) GTE(val any) Compare {
	return c.compare(OpGreaterThanOrEqual, val)
}

func (c Column) Like(pattern string) Compare {
	return c.compare(OpLike, pattern)
}

func (c Column) IsNull() NullCheck {
	return NullCheck{Column: c, MustBeNull: true}
}

func (c Column) IsNotNull() NullCheck {
	return NullCheck{Column: c, MustBeNull: false}
}

// Render writes the SQL text of a node. A nil node renders as "".
func Render(n Node) string {
	var sb strings.Builder
	render(&sb, n)
	return sb.String()
}

func render(sb *strings.Builder, n Node) {
	switch exp := n.(type) {
	case *Logical:
		if exp == nil {
			return
		}
		renderLogical(sb, exp)
	case Compare:
		render(sb, exp.Left)
		sb.WriteString(string(exp.Op))
		render(sb, exp.Right)
	case NullCheck:
		render(sb, exp.Column)
		if exp.MustBeNull {
			sb.WriteString(" Is Null")
		} else {
			sb.WriteString(" Is Not Null")
		}
	case Column:
		sb.WriteString(quoteColumn(exp.Name))
	case Value:
		sb.WriteString(FormatValue(exp.V))
	}
}

func renderLogical(sb *strings.Builder, l *Logical) {
	first := true
	for _, child := range l.Children {
		child = unwrap(child)
		if child == nil {
			continue
		}
		if !first {
			sb.WriteByte(' ')
			sb.WriteString(l.Op.String())
			sb.WriteByte(' ')
		}
		first = false

		sub, lp := child.(*Logical)
		paren := lp && sub.Op != l.Op
		if paren {
			sb.WriteByte('(')
		}
		render(sb, child)
		if paren {
			sb.WriteByte(')')
		}
	}
}

// unwrap collapses Logical nodes with fewer than two children: an empty one
// disappears and a single-child one stands for its child.
func unwrap(n Node) Node {
	for {
		l, ok := n.(*Logical)
		if !ok {
			return n
		}
		switch {
		case l == nil || len(l.Children) == 0:
			return nil
		case len(l.Children) == 1:
			n = l.Children[0]
		default:
			return l
		}
	}
}

// Clone returns a deep copy of n. Only Logical nodes carry mutable state,
// the remaining variants are copied by value.
func Clone(n Node) Node {
	l, ok := n.(*Logical)
	if !ok {
		return n
	}
	if l == nil {
		return nil
	}
	children := make([]Node, len(l.Children))
	for i, child := range l.Children {
		children[i] = Clone(child)
	}
	return &Logical{Op: l.Op, Children: children}
}

// prune copies n without nil children or empty Logical nodes, replacing
// single-child Logical nodes by their child. It returns nil when no
// condition is left.
func prune(n Node) Node {
	if isNil(n) {
		return nil
	}
	l, ok := n.(*Logical)
	if !ok {
		return n
	}
	children := make([]Node, 0, len(l.Children))
	for _, child := range l.Children {
		if child = prune(child); child != nil {
			children = append(children, child)
		}
	}
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	}
	return &Logical{Op: l.Op, Children: children}
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	l, ok := n.(*Logical)
	return ok && l == nil
}
