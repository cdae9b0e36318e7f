package query

import "strings"

// IOrder is what the repository layer needs from an ordering: the fragment
// to place after ORDER BY, possibly empty.
type IOrder interface {
	ExpressionString() string
}

type orderCriterion struct {
	expression string
	ascending  bool
}

// Order builds an ORDER BY list. Expressions are written as given, without
// bracketing, so callers may pass compound expressions.
type Order struct {
	criteria []orderCriterion
}

func NewOrder() *Order {
	return &Order{}
}

func (o *Order) Asc(expression string) *Order {
	o.criteria = append(o.criteria, orderCriterion{expression: expression, ascending: true})
	return o
}

func (o *Order) Desc(expression string) *Order {
	o.criteria = append(o.criteria, orderCriterion{expression: expression, ascending: false})
	return o
}

func (o *Order) HasExpression() bool {
	return o != nil && len(o.criteria) > 0
}

// ExpressionString returns e.g. "Name asc, Age desc" without the keyword.
func (o *Order) ExpressionString() string {
	if !o.HasExpression() {
		return ""
	}
	var sb strings.Builder
	for i, c := range o.criteria {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.expression)
		if c.ascending {
			sb.WriteString(" asc")
		} else {
			sb.WriteString(" desc")
		}
	}
	return sb.String()
}

func (o *Order) String() string {
	if !o.HasExpression() {
		return ""
	}
	return "Order By " + o.ExpressionString()
}
