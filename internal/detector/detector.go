// Package detector enriches extracted page metadata with article-level
// signals from go-readability.
package detector

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/sitetruth/sitetruth/models"
)

// Enrich runs readability over the raw HTML and fills in the metadata
// fields the tag-based extractor cannot see. Existing values win; only
// empty fields are filled.
func Enrich(pageURL, html string, meta *models.PageMeta) error {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return fmt.Errorf("failed to parse page URL: %w", err)
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		return fmt.Errorf("readability parse failed: %w", err)
	}

	if meta.Author == "" {
		meta.Author = article.Byline
	}
	if meta.Description == "" {
		meta.Description = article.Excerpt
	}
	meta.Excerpt = article.Excerpt
	meta.SiteName = article.SiteName
	meta.Favicon = article.Favicon
	meta.LeadImage = article.Image
	if article.PublishedTime != nil {
		meta.PublishedTime = article.PublishedTime.Format("2006-01-02")
	}

	return nil
}
