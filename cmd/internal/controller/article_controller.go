package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cms-extensions/internal/model"
	"cms-extensions/internal/repository"
	"cms-extensions/internal/service"
	"cms-extensions/internal/text"
	"cms-extensions/utilities"
)

const plainTextWidth = 80

type ArticleController struct {
	ArticleService service.ArticleService
}

func NewArticleController(articleService service.ArticleService) *ArticleController {
	return &ArticleController{ArticleService: articleService}
}

// criteriaFromQuery reads list parameters such as
// ?tag=go&author=ann&sort=-published,title&page=2&page_size=10.
func criteriaFromQuery(c *gin.Context) (service.SearchCriteria, error) {
	crit := service.SearchCriteria{
		Tag:         c.Query("tag"),
		Author:      c.Query("author"),
		TitlePrefix: c.Query("title"),
		Text:        c.Query("q"),
	}
	var err error
	if crit.PublishedOnly, err = boolQuery(c, "published"); err != nil {
		return crit, err
	}
	if crit.IncludeDeleted, err = boolQuery(c, "include_deleted"); err != nil {
		return crit, err
	}
	if v := c.Query("published_after"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return crit, fmt.Errorf("published_after: %w", err)
		}
		crit.PublishedAfter = &t
	}
	if v := c.Query("sort"); v != "" {
		crit.Sort = text.SplitAndTrim(v, ",")
	}
	if crit.PageIndex, err = intQuery(c, "page"); err != nil {
		return crit, err
	}
	if crit.PageSize, err = intQuery(c, "page_size"); err != nil {
		return crit, err
	}
	return crit, nil
}

func boolQuery(c *gin.Context, key string) (bool, error) {
	v := c.Query(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func intQuery(c *gin.Context, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// respondError maps service errors onto status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
	case errors.Is(err, service.ErrInvalidSort), errors.Is(err, service.ErrInvalidArticle):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		utilities.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return 0, false
	}
	return id, true
}

// Search handles GET /articles
func (ac *ArticleController) Search(c *gin.Context) {
	crit, err := criteriaFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	page, err := ac.ArticleService.Search(crit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get handles GET /articles/:id and honours If-None-Match.
func (ac *ArticleController) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	a, err := ac.ArticleService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := json.Marshal(a)
	if err != nil {
		respondError(c, err)
		return
	}
	etag := `"` + text.MD5(string(body)) + `"`
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// PlainText handles GET /articles/:id/text
func (ac *ArticleController) PlainText(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	a, err := ac.ArticleService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	body := text.WordWrap(strings.TrimSpace(text.TrimIntraWords(text.StripTags(a.Body))), plainTextWidth, false, "\n")
	c.String(http.StatusOK, "%s\n%s\n\n%s\n", a.Title, strings.Repeat("=", len([]rune(a.Title))), body)
}

// Export handles GET /articles/export
func (ac *ArticleController) Export(c *gin.Context) {
	crit, err := criteriaFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var buf bytes.Buffer
	if err := ac.ArticleService.ExportPDF(&buf, crit); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=articles.pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// Save handles POST /articles and PUT /articles/:id
func (ac *ArticleController) Save(c *gin.Context) {
	var a model.Article
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	status := http.StatusCreated
	if c.Param("id") != "" {
		id, ok := idParam(c)
		if !ok {
			return
		}
		existing, err := ac.ArticleService.Get(id)
		if err != nil {
			respondError(c, err)
			return
		}
		a.ID = id
		a.CreatedAt = existing.CreatedAt
		a.DeletedAt = existing.DeletedAt
		status = http.StatusOK
	} else {
		a.ID = 0
	}
	if err := ac.ArticleService.Save(&a); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, a)
}

// Delete handles DELETE /articles/:id. ?purge=true removes the row.
func (ac *ArticleController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	purge, err := boolQuery(c, "purge")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if purge {
		err = ac.ArticleService.Purge(id)
	} else {
		err = ac.ArticleService.Delete(id)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
