package extractors

import (
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitetruth/sitetruth/models"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse fixture HTML: %v", err)
	}
	return doc
}

const testBaseURL = "https://example.com"

func TestExtractImagesLogoScenario(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<img src="/assets/logo.svg" class="site-logo" width="40" height="40">
	</body></html>`)

	field := ExtractImages(doc, testBaseURL, models.DefaultOptions())

	if field.Status != models.StatusOK {
		t.Fatalf("status = %q, want ok", field.Status)
	}
	if len(field.Value) != 1 {
		t.Fatalf("images = %d, want 1", len(field.Value))
	}

	img := field.Value[0]
	if img.Placement.Zone != models.ZoneLogo {
		t.Errorf("zone = %q, want logo", img.Placement.Zone)
	}
	if img.Role != "logo" {
		t.Errorf("role = %q, want logo", img.Role)
	}
	if img.Format != "svg" {
		t.Errorf("format = %q, want svg", img.Format)
	}
	if img.Src != "https://example.com/assets/logo.svg" {
		t.Errorf("src = %q, want absolute URL", img.Src)
	}
	if len(img.ID) != 16 {
		t.Errorf("id length = %d, want 16", len(img.ID))
	}
}

func TestExtractImagesBackgroundHeroScenario(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<div class="hero-banner" style="background-image:url('/img/banner.jpg')"></div>
	</body></html>`)

	field := ExtractImages(doc, testBaseURL, models.DefaultOptions())

	if field.Status != models.StatusOK {
		t.Fatalf("status = %q, want ok", field.Status)
	}
	if len(field.Value) != 1 {
		t.Fatalf("images = %d, want 1", len(field.Value))
	}

	img := field.Value[0]
	if img.Role != "hero" {
		t.Errorf("role = %q, want hero", img.Role)
	}
	if img.Src != "https://example.com/img/banner.jpg" {
		t.Errorf("src = %q", img.Src)
	}
}

func TestExtractImagesDedupBySrc(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<img src="/a.png">
		<img src="/a.png" alt="duplicate">
		<img src="/b.png">
		<div style="background-image:url('/a.png')"></div>
	</body></html>`)

	field := ExtractImages(doc, testBaseURL, models.DefaultOptions())

	if len(field.Value) != 2 {
		t.Fatalf("images = %d, want 2 after dedup", len(field.Value))
	}

	srcs := make(map[string]int)
	for _, img := range field.Value {
		srcs[img.Src]++
	}
	for src, count := range srcs {
		if count > 1 {
			t.Errorf("src %q appears %d times", src, count)
		}
	}

	// First occurrence wins, insertion order preserved.
	if field.Value[0].Src != "https://example.com/a.png" {
		t.Errorf("first image src = %q, want a.png", field.Value[0].Src)
	}
	if field.Value[0].Alt != "" {
		t.Errorf("first occurrence should win, got alt %q", field.Value[0].Alt)
	}
}

func TestExtractImagesRejections(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<img src="/tiny.png" width="10" height="10">
		<img src="/doc.pdf">
		<img src="data:image/png;base64,AAAA">
		<img src="">
		<img src="/ok.jpg" width="300" height="200">
	</body></html>`)

	field := ExtractImages(doc, testBaseURL, models.DefaultOptions())

	if len(field.Value) != 1 {
		t.Fatalf("images = %d, want 1 (rejects never abort extraction)", len(field.Value))
	}
	if field.Value[0].Src != "https://example.com/ok.jpg" {
		t.Errorf("kept src = %q, want ok.jpg", field.Value[0].Src)
	}
	if field.Value[0].Aspect != 1.5 {
		t.Errorf("aspect = %v, want 1.5", field.Value[0].Aspect)
	}
}

func TestExtractImagesDimensionGateNeedsLogoEvidence(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<img src="/pixel.png" width="10" height="10">
		<img src="/brand-mark.png" class="logo" width="32" height="32">
	</body></html>`)

	field := ExtractImages(doc, testBaseURL, models.DefaultOptions())

	// Geometry alone calls a small square a logo, but that never opens
	// the dimension gate; the marked-up logo passes on its class.
	if len(field.Value) != 1 {
		t.Fatalf("images = %d, want 1", len(field.Value))
	}
	img := field.Value[0]
	if img.Src != "https://example.com/brand-mark.png" {
		t.Errorf("kept src = %q, want brand-mark.png", img.Src)
	}
	if img.Placement.Zone != models.ZoneLogo {
		t.Errorf("zone = %q, want logo", img.Placement.Zone)
	}
}

func TestExtractImagesHeaderTagContext(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<header><img src="/photo.jpg" width="800" height="200"></header>
	</body></html>`)

	field := ExtractImages(doc, testBaseURL, models.DefaultOptions())

	if len(field.Value) != 1 {
		t.Fatalf("images = %d, want 1", len(field.Value))
	}
	var hasDOM bool
	for _, sig := range field.Value[0].Placement.Signals {
		if sig.Source == models.SourceDOMContext {
			hasDOM = true
		}
	}
	if !hasDOM {
		t.Error("bare <header> ancestor produced no DOM signal")
	}
}

func TestExtractImagesMissing(t *testing.T) {
	doc := parseDoc(t, `<html><body><p>text only</p></body></html>`)

	field := ExtractImages(doc, testBaseURL, models.DefaultOptions())

	if field.Status != models.StatusMissing {
		t.Errorf("status = %q, want missing", field.Status)
	}
	if field.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", field.Confidence)
	}
	if field.Notes != "no <img> tags detected" {
		t.Errorf("notes = %q", field.Notes)
	}
	if len(field.Value) != 0 {
		t.Errorf("value = %v, want empty", field.Value)
	}
}

func TestExtractImagesIdempotent(t *testing.T) {
	html := `<html><body>
		<header><img src="/logo.png" class="brand" width="60" height="60"></header>
		<div class="gallery">
			<img src="/g1.jpg"><img src="/g2.jpg">
		</div>
		<div class="hero" style="background-image:url('/hero.webp')"></div>
	</body></html>`

	first := ExtractImages(parseDoc(t, html), testBaseURL, models.DefaultOptions())
	second := ExtractImages(parseDoc(t, html), testBaseURL, models.DefaultOptions())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestExtractImagesCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 10; i++ {
		b.WriteString(`<img src="/img-` + string(rune('a'+i)) + `.png">`)
	}
	b.WriteString("</body></html>")

	opts := models.DefaultOptions()
	opts.MaxImages = 3
	field := ExtractImages(parseDoc(t, b.String()), testBaseURL, opts)

	if len(field.Value) != 3 {
		t.Errorf("images = %d, want capped at 3", len(field.Value))
	}
}

func TestExtractImagesConfidenceMonotonic(t *testing.T) {
	// DOM+URL agreement must score at least as high as DOM alone.
	domOnly := ExtractImages(parseDoc(t,
		`<img src="/assets/mark.svg" class="site-logo">`), testBaseURL, models.DefaultOptions())
	both := ExtractImages(parseDoc(t,
		`<img src="/assets/logo.svg" class="site-logo">`), testBaseURL, models.DefaultOptions())

	if both.Value[0].Placement.Confidence < domOnly.Value[0].Placement.Confidence {
		t.Errorf("confidence with two signals (%v) < one signal (%v)",
			both.Value[0].Placement.Confidence, domOnly.Value[0].Placement.Confidence)
	}
}

func TestHeroAndLogoViews(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<img src="/logo.svg" class="site-logo" width="60" height="60">
		<img src="/logo-flat.png" class="footer-logo" width="60" height="60">
		<div class="hero" style="background-image:url('/hero-1.jpg')"></div>
		<img src="/banner-wide.jpg" width="1920" height="400">
		<img src="/plain.jpg">
	</body></html>`)

	field := ExtractImages(doc, testBaseURL, models.DefaultOptions())

	heroes := HeroImages(field.Value)
	if len(heroes) == 0 {
		t.Fatal("no hero candidates found")
	}
	for _, img := range heroes {
		zone := img.Placement.Zone
		if zone != models.ZoneHero && zone != models.ZoneTopBanner && img.Role != "hero" {
			t.Errorf("non-hero image %q in hero view (zone=%q role=%q)", img.Src, zone, img.Role)
		}
	}
	for i := 1; i < len(heroes); i++ {
		if heroes[i].Placement.Confidence > heroes[i-1].Placement.Confidence {
			t.Error("hero view not sorted by confidence desc")
		}
	}

	logos := LogoImages(field.Value)
	if len(logos) != 2 {
		t.Fatalf("logos = %d, want 2", len(logos))
	}
	// Equal confidence: SVG preference breaks the tie.
	if logos[0].Format != "svg" {
		t.Errorf("first logo format = %q, want svg preferred", logos[0].Format)
	}
}
