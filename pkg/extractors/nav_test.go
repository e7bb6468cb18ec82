package extractors

import (
	"testing"

	"github.com/sitetruth/sitetruth/models"
)

func TestExtractNavDedupByRawHref(t *testing.T) {
	doc := parseDoc(t, `<html><body><nav>
		<a href="/about">About</a>
		<a href="/about">About Us</a>
		<a href="/services">Services</a>
	</nav></body></html>`)

	items := ExtractNav(doc, testBaseURL, models.DefaultOptions())

	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 (dedup by raw href)", len(items))
	}
	if items[0].Href != "https://example.com/about" {
		t.Errorf("href = %q, want absolute /about", items[0].Href)
	}
	if items[0].Text != "about" {
		t.Errorf("text = %q, want slug-like label", items[0].Text)
	}
}

func TestExtractNavDepth(t *testing.T) {
	doc := parseDoc(t, `<html><body><nav><ul>
		<li><a href="/services">Services</a>
			<ul>
				<li><a href="/services/washing">Pressure Washing</a></li>
			</ul>
		</li>
		<li><a href="/contact">Contact</a></li>
	</ul></nav></body></html>`)

	items := ExtractNav(doc, testBaseURL, models.DefaultOptions())

	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}

	depths := map[string]int{}
	for _, item := range items {
		depths[item.Text] = item.Depth
	}
	if depths["services"] != 0 {
		t.Errorf("top-level depth = %d, want 0", depths["services"])
	}
	if depths["pressure-washing"] != 1 {
		t.Errorf("nested depth = %d, want 1", depths["pressure-washing"])
	}
}

func TestExtractNavMaxDepth(t *testing.T) {
	doc := parseDoc(t, `<html><body><nav><ul>
		<li><a href="/a">About</a>
		<ul><li><a href="/b">Team</a>
		<ul><li><a href="/c">History</a>
		<ul><li><a href="/d">Archive</a></li></ul>
		</li></ul></li></ul></li>
	</ul></nav></body></html>`)

	opts := models.DefaultOptions()
	opts.MaxNavDepth = 2
	items := ExtractNav(doc, testBaseURL, opts)

	for _, item := range items {
		if item.Depth > 2 {
			t.Errorf("item %q at depth %d exceeds max 2", item.Text, item.Depth)
		}
	}
	if len(items) != 3 {
		t.Errorf("items = %d, want 3 (deepest excluded)", len(items))
	}
}

func TestExtractNavHeaderFallback(t *testing.T) {
	doc := parseDoc(t, `<html><body><header>
		<a href="/">Home</a>
		<a href="/pricing">Pricing</a>
	</header><main><a href="/ignored">Elsewhere</a></main></body></html>`)

	items := ExtractNav(doc, testBaseURL, models.DefaultOptions())

	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 from header fallback", len(items))
	}
	for _, item := range items {
		if item.Depth != 0 {
			t.Errorf("fallback item depth = %d, want 0", item.Depth)
		}
	}
}

func TestExtractNavFiltersNoise(t *testing.T) {
	doc := parseDoc(t, `<html><body><nav>
		<a href="/about">About</a>
		<a href="tel:5551234567">(555) 123-4567</a>
		<a href="/quote">Get a Quote Today</a>
	</nav></body></html>`)

	items := ExtractNav(doc, testBaseURL, models.DefaultOptions())

	if len(items) != 1 {
		t.Fatalf("items = %d, want 1 after noise filtering", len(items))
	}
	if items[0].Text != "about" {
		t.Errorf("kept item = %q, want about", items[0].Text)
	}
}

func TestExtractNavExternalClassification(t *testing.T) {
	doc := parseDoc(t, `<html><body><nav>
		<a href="/about">About</a>
		<a href="https://partner.example.org/portal">Partner Portal</a>
	</nav></body></html>`)

	items := ExtractNav(doc, testBaseURL, models.DefaultOptions())

	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].IsExternal {
		t.Error("same-site link classified external")
	}
	if !items[1].IsExternal {
		t.Error("off-site link classified internal")
	}
}

func TestExtractNavExternalClassificationOnSubpage(t *testing.T) {
	doc := parseDoc(t, `<html><body><nav>
		<a href="/about">About</a>
		<a href="https://partner.example.org/portal">Partner Portal</a>
	</nav></body></html>`)

	items := ExtractNav(doc, "https://example.com/services/washing", models.DefaultOptions())

	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].IsExternal {
		t.Error("same-site link classified external on a subpage")
	}
	if !items[1].IsExternal {
		t.Error("off-site link classified internal")
	}
}

func TestBreadcrumbsAndFooterStaySeparate(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<nav><a href="/services">Services</a></nav>
		<div class="breadcrumb"><a href="/">Home</a> / <a href="/services">Services</a></div>
		<footer><a href="/privacy">Privacy Policy</a></footer>
	</body></html>`)

	nav := ExtractNav(doc, testBaseURL, models.DefaultOptions())
	crumbs := ExtractBreadcrumbs(doc, testBaseURL)
	footer := ExtractFooterNav(doc, testBaseURL)

	if len(nav) != 1 {
		t.Errorf("nav items = %d, want 1", len(nav))
	}
	if len(crumbs) != 2 {
		t.Errorf("breadcrumbs = %d, want 2", len(crumbs))
	}
	if len(footer) != 1 {
		t.Errorf("footer items = %d, want 1", len(footer))
	}
	if footer[0].Text != "privacy-policy" {
		t.Errorf("footer item = %q, want privacy-policy", footer[0].Text)
	}
}

func TestExtractSocials(t *testing.T) {
	doc := parseDoc(t, `<html><body><footer>
		<a href="https://www.facebook.com/acmewash">Facebook</a>
		<a href="https://instagram.com/acmewash">Instagram</a>
		<a href="https://www.facebook.com/acmewash">Facebook again</a>
		<a href="/contact">Contact</a>
	</footer></body></html>`)

	socials := ExtractSocials(doc, testBaseURL)

	if len(socials) != 2 {
		t.Fatalf("socials = %d, want 2", len(socials))
	}
	if socials[0].Platform != "facebook" || socials[1].Platform != "instagram" {
		t.Errorf("platforms = %q, %q", socials[0].Platform, socials[1].Platform)
	}
}
