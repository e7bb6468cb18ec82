// Package export renders stored page records as Markdown documents.
// The HTML body is sanitized before conversion so scripts and event
// handlers never reach the output.
package export

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sitetruth/sitetruth/models"
)

type Exporter struct {
	converter *converter.Converter
	policy    *bluemonday.Policy
}

func NewExporter() *Exporter {
	return &Exporter{
		converter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Markdown sanitizes an HTML fragment and converts it to Markdown.
// The source URL resolves relative links in the output.
func (e *Exporter) Markdown(html, sourceURL string) (string, error) {
	clean := e.policy.Sanitize(html)

	markdown, err := e.converter.ConvertString(clean, converter.WithDomain(sourceURL))
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

// PageMarkdown renders a full export document for one page: a header
// built from the extracted record, followed by the converted body.
func (e *Exporter) PageMarkdown(page *models.ExtractedPage, html string) (string, error) {
	body, err := e.Markdown(html, page.URL)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	title := page.Meta.Title
	if title == "" {
		title = page.Slug
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- Source: %s\n", page.URL)
	fmt.Fprintf(&b, "- Extraction confidence: %.2f\n", page.Confidence)
	if page.Meta.Description != "" {
		fmt.Fprintf(&b, "- Description: %s\n", page.Meta.Description)
	}
	if page.Meta.Language != "" {
		fmt.Fprintf(&b, "- Language: %s\n", page.Meta.Language)
	}

	if len(page.Navbar) > 0 {
		b.WriteString("\n## Navigation\n\n")
		for _, item := range page.Navbar {
			fmt.Fprintf(&b, "%s- [%s](%s)\n", strings.Repeat("  ", item.Depth), item.Text, item.Href)
		}
	}

	if body != "" {
		b.WriteString("\n## Content\n\n")
		b.WriteString(body)
		b.WriteString("\n")
	}

	return b.String(), nil
}
