package assembler

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitetruth/sitetruth/models"
)

const testBaseURL = "https://example.com"

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

const fullPage = `<html><head>
	<title>Acme Washing</title>
	<meta name="description" content="Pressure washing for homes and businesses.">
	<meta property="og:title" content="Acme Washing">
</head><body>
	<header><img src="/assets/logo.svg" class="site-logo" width="40" height="40"></header>
	<nav><a href="/services">Services</a><a href="/contact">Contact</a></nav>
	<main>
		<h1>Acme Washing</h1>
		<p>We have washed driveways, roofs, and storefronts across the county since 1998.</p>
	</main>
	<footer><a href="/privacy">Privacy Policy</a></footer>
</body></html>`

func TestAssembleFullPage(t *testing.T) {
	page := Assemble(parseDoc(t, fullPage), testBaseURL, models.DefaultOptions())

	if page.Slug != "home" {
		t.Errorf("slug = %q, want home", page.Slug)
	}
	if page.Meta.Title != "Acme Washing" {
		t.Errorf("title = %q", page.Meta.Title)
	}
	if page.Images.Status != models.StatusOK || len(page.Images.Value) != 1 {
		t.Fatalf("images = %+v, want one ok image", page.Images)
	}
	if page.Images.Value[0].Placement.Zone != models.ZoneLogo {
		t.Errorf("zone = %q, want logo", page.Images.Value[0].Placement.Zone)
	}
	if len(page.Navbar) != 2 {
		t.Errorf("navbar = %d items, want 2", len(page.Navbar))
	}
	if len(page.FooterNav) != 1 {
		t.Errorf("footer nav = %d items, want 1", len(page.FooterNav))
	}
	if len(page.Blocks) != 2 {
		t.Errorf("blocks = %d, want heading + paragraph", len(page.Blocks))
	}
	if !page.Diagnostics.HasOpenGraph {
		t.Error("open graph not flagged")
	}
	if page.Confidence <= 0 || page.Confidence > 0.95 {
		t.Errorf("confidence = %v, want within (0, 0.95]", page.Confidence)
	}
}

func TestAssembleEmptyDocument(t *testing.T) {
	page := Assemble(parseDoc(t, `<html><body></body></html>`), testBaseURL, models.DefaultOptions())

	if page.Images.Status != models.StatusMissing {
		t.Errorf("images status = %q, want missing", page.Images.Status)
	}
	if page.Images.Confidence != 0 {
		t.Errorf("missing field confidence = %v, want 0", page.Images.Confidence)
	}
	if page.Images.Notes == "" {
		t.Error("missing field has no explanatory note")
	}
	if len(page.Navbar) != 0 {
		t.Errorf("navbar = %#v, want no items", page.Navbar)
	}
	if page.Confidence != 0 {
		t.Errorf("confidence = %v, want 0 for empty document", page.Confidence)
	}
	if page.Diagnostics.ReadabilityScore == nil || *page.Diagnostics.ReadabilityScore != 0 {
		t.Errorf("readability = %v, want zero score", page.Diagnostics.ReadabilityScore)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	opts := models.DefaultOptions()
	first := Assemble(parseDoc(t, fullPage), testBaseURL, opts)
	second := Assemble(parseDoc(t, fullPage), testBaseURL, opts)

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over the same document differ")
	}
}

func TestAssembleRoundTrip(t *testing.T) {
	page := Assemble(parseDoc(t, fullPage), testBaseURL, models.DefaultOptions())

	data, err := json.Marshal(page)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored models.ExtractedPage
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(page, restored) {
		t.Error("record changed across a serialize/deserialize cycle")
	}
}

func TestRollupConfidenceGrowsWithCoverage(t *testing.T) {
	sparse := Assemble(parseDoc(t, `<html><head><title>Acme</title></head><body></body></html>`),
		testBaseURL, models.DefaultOptions())
	full := Assemble(parseDoc(t, fullPage), testBaseURL, models.DefaultOptions())

	if sparse.Confidence >= full.Confidence {
		t.Errorf("sparse %v >= full %v, want coverage to raise the rollup",
			sparse.Confidence, full.Confidence)
	}
}
