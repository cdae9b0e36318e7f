package repository

import (
	"cms-extensions/internal/db/query"
	"cms-extensions/internal/model"
)

type ArticleRepository interface {
	PagedRepository[model.Article]
	SlugTaken(slug string, exceptID int) (bool, error)
}

type articleRepository struct {
	*BaseRepository[model.Article]
}

func NewArticleRepository() ArticleRepository {
	return &articleRepository{
		BaseRepository: NewBaseRepository[model.Article](model.Article{}.TableName(), "id"),
	}
}

// SlugTaken reports whether another article already uses slug.
func (r *articleRepository) SlugTaken(slug string, exceptID int) (bool, error) {
	f := query.NewFilter().EqualTo("slug", slug)
	if exceptID != 0 {
		f.NotEqualTo("id", exceptID)
	}
	return r.Exists(f)
}
