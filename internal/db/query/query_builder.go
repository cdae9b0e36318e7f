package query

import (
	"strconv"
	"strings"
)

// QueryBuilder splices filter and order fragments into SELECT, COUNT and
// DELETE statements. Table and column names are written verbatim.
type QueryBuilder struct {
	table   string
	columns []string
	filter  IFilter
	order   IOrder
	limit   int
	offset  int
}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	qb.columns = append(qb.columns, columns...)
	return qb
}

func (qb *QueryBuilder) From(table string) *QueryBuilder {
	qb.table = table
	return qb
}

func (qb *QueryBuilder) Where(filter IFilter) *QueryBuilder {
	qb.filter = filter
	return qb
}

func (qb *QueryBuilder) OrderBy(order IOrder) *QueryBuilder {
	qb.order = order
	return qb
}

// Limit caps the number of rows; zero or less means no LIMIT clause.
func (qb *QueryBuilder) Limit(limit int) *QueryBuilder {
	qb.limit = limit
	return qb
}

func (qb *QueryBuilder) Offset(offset int) *QueryBuilder {
	qb.offset = offset
	return qb
}

// Build renders SELECT cols FROM table [WHERE …] [ORDER BY …] [LIMIT n] [OFFSET m].
func (qb *QueryBuilder) Build() string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if len(qb.columns) > 0 {
		sb.WriteString(strings.Join(qb.columns, ", "))
	} else {
		sb.WriteByte('*')
	}
	sb.WriteString(" FROM ")
	sb.WriteString(qb.table)
	qb.writeWhere(&sb)

	if o := fragment(qb.order); o != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(o)
	}
	if qb.limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(qb.limit))
	}
	if qb.offset > 0 {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(qb.offset))
	}
	return sb.String()
}

// BuildCount renders SELECT COUNT(*) FROM table [WHERE …]; ordering and
// paging are ignored.
func (qb *QueryBuilder) BuildCount() string {
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) FROM ")
	sb.WriteString(qb.table)
	qb.writeWhere(&sb)
	return sb.String()
}

// BuildDelete renders DELETE FROM table [WHERE …].
func (qb *QueryBuilder) BuildDelete() string {
	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(qb.table)
	qb.writeWhere(&sb)
	return sb.String()
}

func (qb *QueryBuilder) writeWhere(sb *strings.Builder) {
	if w := fragment(qb.filter); w != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(w)
	}
}

type fragmenter interface {
	ExpressionString() string
}

// fragment tolerates nil interfaces; typed nil *Filter and *Order are
// handled by their own methods.
func fragment(f fragmenter) string {
	if f == nil {
		return ""
	}
	return f.ExpressionString()
}
