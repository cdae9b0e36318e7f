package service

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"cms-extensions/internal/db/query"
	"cms-extensions/internal/model"
	"cms-extensions/internal/repository"
	"cms-extensions/internal/text"
	"cms-extensions/utilities"
)

var (
	ErrInvalidArticle = errors.New("article: title is required")
	ErrSlugTaken      = errors.New("article: slug already in use")
	ErrInvalidSort    = errors.New("article: unknown sort field")
)

// SearchCriteria narrows an article listing. Zero values mean "no
// restriction", except that soft-deleted rows are hidden unless
// IncludeDeleted is set.
type SearchCriteria struct {
	Tag            string
	Author         string
	TitlePrefix    string
	Text           string
	PublishedOnly  bool
	IncludeDeleted bool
	PublishedAfter *time.Time
	// Sort lists field names, "-field" for descending.
	Sort      []string
	PageIndex int
	PageSize  int
}

// sortColumns maps public sort keys to order expressions.
var sortColumns = map[string]string{
	"id":        "id",
	"title":     "title",
	"author":    "author",
	"published": "published_at",
	"created":   "created_at",
	"updated":   "updated_at",
}

type ArticleService interface {
	Search(c SearchCriteria) (repository.Page[model.Article], error)
	Get(id int) (model.Article, error)
	Save(a *model.Article) error
	Delete(id int) error
	Purge(id int) error
	ExportPDF(w io.Writer, c SearchCriteria) error
}

type articleService struct {
	repo repository.ArticleRepository
	now  func() time.Time
}

func NewArticleService(repo repository.ArticleRepository) ArticleService {
	return &articleService{repo: repo, now: time.Now}
}

// SearchFilter translates criteria into a filter over the articles table.
func SearchFilter(c SearchCriteria) *query.Filter {
	f := query.NewFilter()
	if !c.IncludeDeleted {
		f.IsNull("deleted_at")
	}
	if c.PublishedOnly {
		f.IsNotNull("published_at")
	}
	if c.Author != "" {
		f.EqualTo("author", c.Author)
	}
	if c.Tag != "" {
		f.ContainsStringWithinCommaSeparatedValues("tags", strings.ToLower(c.Tag))
	}
	if c.TitlePrefix != "" {
		f.StartsWithString("title", c.TitlePrefix)
	}
	if c.PublishedAfter != nil {
		f.GreaterThanOrEqualTo("published_at", *c.PublishedAfter)
	}
	if c.Text != "" {
		f.And(query.NewFilter().
			ContainsString("title", c.Text).
			OrContainsString("body", c.Text))
	}
	return f
}

// SortOrder builds the order for keys such as "title" or "-published".
func SortOrder(keys []string) (*query.Order, error) {
	o := query.NewOrder()
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		desc := strings.HasPrefix(k, "-")
		col, ok := sortColumns[strings.ToLower(strings.TrimPrefix(k, "-"))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSort, k)
		}
		if desc {
			o.Desc(col)
		} else {
			o.Asc(col)
		}
	}
	return o, nil
}

func (s *articleService) Search(c SearchCriteria) (repository.Page[model.Article], error) {
	order, err := SortOrder(c.Sort)
	if err != nil {
		return repository.Page[model.Article]{}, err
	}
	return s.repo.FindAllPaged(c.PageIndex, c.PageSize, SearchFilter(c), order)
}

func (s *articleService) Get(id int) (model.Article, error) {
	return s.repo.Get(id)
}

// Save normalises the article, derives a slug when none is given and
// persists it.
func (s *articleService) Save(a *model.Article) error {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return ErrInvalidArticle
	}
	if a.Slug == "" {
		a.Slug = text.Slugify(a.Title)
	} else {
		a.Slug = text.Slugify(a.Slug)
	}
	if a.Slug == "" {
		return ErrInvalidArticle
	}
	a.Tags = strings.ToLower(strings.Join(text.SplitAndTrim(a.Tags, ","), ","))

	taken, err := s.repo.SlugTaken(a.Slug, a.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	return s.repo.SaveOrUpdate(a)
}

// Delete hides the article from default searches.
func (s *articleService) Delete(id int) error {
	a, err := s.repo.Get(id)
	if err != nil {
		return err
	}
	if a.DeletedAt != nil {
		return nil
	}
	now := s.now()
	a.DeletedAt = &now
	return s.repo.SaveOrUpdate(&a)
}

// Purge removes the row for good.
func (s *articleService) Purge(id int) error {
	return s.repo.Delete(model.Article{Entity: model.Entity{ID: id}})
}

const pdfBylineTemplate = "[author] - [published format=short]"

// ExportPDF writes one page listing the articles matched by c.
func (s *articleService) ExportPDF(w io.Writer, c SearchCriteria) error {
	page, err := s.Search(c)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Articles", true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Articles")
	pdf.Ln(14)

	for _, a := range page.Items {
		line, err := byline(a)
		if err != nil {
			return err
		}

		pdf.SetFont("Arial", "B", 13)
		pdf.MultiCell(0, 7, tr(a.Title), "", "L", false)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, tr(text.TrimIntraWords(text.StripTags(a.Body))), "", "L", false)
		pdf.Ln(6)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("article: pdf: %w", err)
	}
	utilities.Info("exported %d of %d articles to pdf", len(page.Items), page.TotalRecords)
	return nil
}

func byline(a model.Article) (string, error) {
	tk := text.NewTokenizer()
	author := a.Author
	if author == "" {
		author = "anonymous"
	}
	tk.Bind("author", author)
	tk.BindFunc("published", func(t text.Token) string {
		if a.PublishedAt == nil {
			return "draft"
		}
		if t.Param("format") == "short" {
			return a.PublishedAt.Format("02 Jan 2006")
		}
		return a.PublishedAt.Format(time.RFC1123)
	})
	return tk.Render(pdfBylineTemplate)
}

// InitArticleEventListeners logs repository changes to the articles table.
func InitArticleEventListeners() (unsubscribe func()) {
	audit := func(verb string) utilities.EventHandler {
		return func(data interface{}) {
			ev, ok := data.(repository.EntityEvent)
			if !ok || ev.Table != (model.Article{}).TableName() {
				return
			}
			utilities.Info("article %d %s", ev.ID, verb)
		}
	}
	offSaved := utilities.GlobalEventBus.Subscribe(repository.EventEntitySaved, audit("saved"))
	offDeleted := utilities.GlobalEventBus.Subscribe(repository.EventEntityDeleted, audit("deleted"))
	return func() {
		offSaved()
		offDeleted()
	}
}
