package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryBuilder_Build(t *testing.T) {
	testCases := []struct {
		name    string
		builder func() *QueryBuilder

		wantSQL string
	}{
		{
			name: "select all",
			builder: func() *QueryBuilder {
				return NewQueryBuilder().From("articles")
			},
			wantSQL: "SELECT * FROM articles",
		},
		{
			name: "columns, filter, order and paging",
			builder: func() *QueryBuilder {
				return NewQueryBuilder().
					Select("id", "title").
					From("articles").
					Where(NewFilter().EqualTo("author", "ann").IsNull("deleted_at")).
					OrderBy(NewOrder().Desc("published_at")).
					Limit(10).
					Offset(20)
			},
			wantSQL: "SELECT id, title FROM articles WHERE [author]='ann' And [deleted_at] Is Null ORDER BY published_at desc LIMIT 10 OFFSET 20",
		},
		{
			name: "empty filter and order are omitted",
			builder: func() *QueryBuilder {
				return NewQueryBuilder().From("articles").Where(NewFilter()).OrderBy(NewOrder())
			},
			wantSQL: "SELECT * FROM articles",
		},
		{
			name: "typed nil filter and order",
			builder: func() *QueryBuilder {
				var f *Filter
				var o *Order
				return NewQueryBuilder().From("articles").Where(f).OrderBy(o)
			},
			wantSQL: "SELECT * FROM articles",
		},
		{
			name: "limit without offset",
			builder: func() *QueryBuilder {
				return NewQueryBuilder().From("articles").Limit(5)
			},
			wantSQL: "SELECT * FROM articles LIMIT 5",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantSQL, tc.builder().Build())
		})
	}
}

func TestQueryBuilder_BuildCount(t *testing.T) {
	qb := NewQueryBuilder().
		From("articles").
		Where(NewFilter().ContainsStringWithinCommaSeparatedValues("tags", "go")).
		OrderBy(NewOrder().Asc("title")).
		Limit(10)
	assert.Equal(t,
		"SELECT COUNT(*) FROM articles WHERE [tags]='go' Or [tags] Like 'go,%' Or [tags] Like '%,go' Or [tags] Like '%,go,%'",
		qb.BuildCount())
	assert.Equal(t, "SELECT COUNT(*) FROM articles", NewQueryBuilder().From("articles").BuildCount())
}

func TestQueryBuilder_BuildDelete(t *testing.T) {
	qb := NewQueryBuilder().From("articles").Where(NewFilter().EqualTo("id", 7))
	assert.Equal(t, "DELETE FROM articles WHERE [id]=7", qb.BuildDelete())
}
