package export

import (
	"strings"
	"testing"

	"github.com/sitetruth/sitetruth/models"
)

func TestMarkdownSanitizes(t *testing.T) {
	e := NewExporter()

	md, err := e.Markdown(
		`<h2>Pricing</h2><script>alert("xss")</script><p>Driveways from $99.</p>`,
		"https://example.com")
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}

	if !strings.Contains(md, "## Pricing") {
		t.Errorf("markdown missing heading:\n%s", md)
	}
	if !strings.Contains(md, "Driveways from $99.") {
		t.Errorf("markdown missing paragraph:\n%s", md)
	}
	if strings.Contains(md, "alert") {
		t.Errorf("script content leaked into markdown:\n%s", md)
	}
}

func TestMarkdownResolvesRelativeLinks(t *testing.T) {
	e := NewExporter()

	md, err := e.Markdown(`<p><a href="/contact">Contact us</a></p>`, "https://example.com")
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}
	if !strings.Contains(md, "https://example.com/contact") {
		t.Errorf("relative link not resolved:\n%s", md)
	}
}

func TestPageMarkdownHeader(t *testing.T) {
	e := NewExporter()

	page := &models.ExtractedPage{
		URL:  "https://example.com/services",
		Slug: "services",
		Meta: models.PageMeta{
			Title:       "Our Services",
			Description: "Pressure washing services.",
		},
		Navbar: []models.NavItem{
			{Text: "home", Href: "https://example.com", Depth: 0},
			{Text: "washing", Href: "https://example.com/services/washing", Depth: 1},
		},
		Confidence: 0.72,
	}

	md, err := e.PageMarkdown(page, `<h1>Our Services</h1><p>We wash things.</p>`)
	if err != nil {
		t.Fatalf("PageMarkdown() error = %v", err)
	}

	for _, want := range []string{
		"# Our Services",
		"- Source: https://example.com/services",
		"- Extraction confidence: 0.72",
		"## Navigation",
		"  - [washing](https://example.com/services/washing)",
		"## Content",
		"We wash things.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("export missing %q:\n%s", want, md)
		}
	}
}

func TestPageMarkdownFallsBackToSlugTitle(t *testing.T) {
	e := NewExporter()

	page := &models.ExtractedPage{URL: "https://example.com/about", Slug: "about"}
	md, err := e.PageMarkdown(page, "")
	if err != nil {
		t.Fatalf("PageMarkdown() error = %v", err)
	}
	if !strings.HasPrefix(md, "# about\n") {
		t.Errorf("export does not start with slug title:\n%s", md)
	}
}
