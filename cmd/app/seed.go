package main

import (
	"time"

	"cms-extensions/internal/model"
	"cms-extensions/internal/service"
	"cms-extensions/utilities"
)

// seedArticles fills an empty articles table with a few samples.
func seedArticles(articleService service.ArticleService) error {
	page, err := articleService.Search(service.SearchCriteria{IncludeDeleted: true, PageSize: 1})
	if err != nil {
		return err
	}
	if page.TotalRecords > 0 {
		return nil
	}

	published := time.Now().UTC().Truncate(time.Second)
	samples := []model.Article{
		{
			Title:       "Welcome to the CMS",
			Author:      "admin",
			Tags:        "news,welcome",
			Body:        "<p>This site is running on <b>CMS Extensions</b>.</p>",
			PublishedAt: &published,
		},
		{
			Title:  "Writing Filters",
			Author: "admin",
			Tags:   "go,howto",
			Body:   "<p>Compose <code>query.Filter</code> values with And and Or.</p>",
		},
	}
	for i := range samples {
		if err := articleService.Save(&samples[i]); err != nil {
			return err
		}
	}
	utilities.Info("seeded %d articles", len(samples))
	return nil
}
