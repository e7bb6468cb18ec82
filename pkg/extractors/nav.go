package extractors

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitetruth/sitetruth/models"
	"github.com/sitetruth/sitetruth/pkg/identity"
)

// navSelectors denote navigation regions, tried in order. The first
// selector that yields items wins, so a page's primary nav is not
// polluted by sidebar or footer menus.
var navSelectors = []string{
	"nav",
	"[role='navigation']",
	".navbar",
	".navigation",
	".menu",
	".main-menu",
	".primary-menu",
	".nav-menu",
	".site-nav",
	".main-nav",
	".header-nav",
	".nav-links",
}

var phoneLabelPattern = regexp.MustCompile(`\(\d{3}\)\s*\d{3}-\d{4}|\d{3}[-.]\d{3}[-.]\d{4}`)

// ctaLabels are call-to-action phrases that show up inside nav regions
// but are not navigation.
var ctaLabels = []string{
	"call us", "get a quote", "free estimate", "click here",
	"learn more", "read more", "view more", "shop now", "buy now",
	"sign up", "subscribe", "follow us", "special offer",
}

// commonNavWords are allowed even when very short.
var commonNavWords = map[string]struct{}{
	"home": {}, "about": {}, "contact": {}, "services": {}, "work": {},
	"blog": {}, "news": {}, "shop": {}, "store": {}, "products": {},
	"gallery": {}, "portfolio": {}, "team": {}, "careers": {}, "faq": {},
	"help": {}, "support": {}, "menu": {},
}

// ExtractNav produces the ordered navigation item list for a page.
// Items are deduplicated by raw href (the first occurrence's normalized
// form is kept) and nesting depth is bounded by MaxNavDepth.
func ExtractNav(doc *goquery.Document, baseURL string, opts models.ExtractOptions) []models.NavItem {
	opts = opts.Normalize()

	for _, selector := range navSelectors {
		var items []models.NavItem
		seen := make(map[string]struct{})
		doc.Find(selector).Each(func(_ int, region *goquery.Selection) {
			items = append(items, collectNavItems(region, baseURL, opts.MaxNavDepth, seen)...)
		})
		if len(items) > 0 {
			return items
		}
	}

	// Fallback: header-region links at depth 0.
	seen := make(map[string]struct{})
	var items []models.NavItem
	doc.Find("header a[href]").Each(func(_ int, link *goquery.Selection) {
		if item, ok := navItemFromLink(link, baseURL, 0, seen); ok {
			items = append(items, item)
		}
	})
	return items
}

// collectNavItems walks every link under a navigation region in
// document order, deriving each item's depth from how many list
// elements sit between it and the region root. The region's own
// top-level list is depth 0.
func collectNavItems(region *goquery.Selection, baseURL string, maxDepth int, seen map[string]struct{}) []models.NavItem {
	var items []models.NavItem

	region.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		depth := link.ParentsUntilSelection(region).Filter("ul,ol").Length()
		if depth > 0 {
			depth--
		}
		if depth > maxDepth {
			return
		}
		if item, ok := navItemFromLink(link, baseURL, depth, seen); ok {
			items = append(items, item)
		}
	})

	return items
}

// navItemFromLink builds one NavItem, or reports false when the link is
// a duplicate, unresolvable, or carries a non-navigation label.
func navItemFromLink(link *goquery.Selection, baseURL string, depth int, seen map[string]struct{}) (models.NavItem, bool) {
	rawHref, _ := link.Attr("href")
	if _, dup := seen[rawHref]; dup {
		return models.NavItem{}, false
	}

	label := strings.TrimSpace(link.Text())
	if !isGoodNavLabel(label) {
		return models.NavItem{}, false
	}

	resolved, err := identity.ResolveURL(baseURL, rawHref)
	if err != nil {
		return models.NavItem{}, false
	}
	seen[rawHref] = struct{}{}

	normalized := identity.NormalizeURL(resolved)
	return models.NavItem{
		Text:       identity.Slugify(label),
		Href:       normalized,
		IsExternal: isExternalHref(normalized, baseURL),
		Depth:      depth,
	}, true
}

// isGoodNavLabel filters out phone numbers, call-to-action buttons, and
// noise labels that land inside navigation markup.
func isGoodNavLabel(label string) bool {
	if label == "" {
		return false
	}
	if phoneLabelPattern.MatchString(label) {
		return false
	}

	lower := strings.ToLower(label)
	for _, cta := range ctaLabels {
		if strings.Contains(lower, cta) {
			return false
		}
	}

	if _, ok := commonNavWords[lower]; ok {
		return true
	}
	if len(label) < 3 {
		return false
	}

	letters := 0
	for _, r := range label {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters++
		}
	}
	return letters >= 2
}

// isExternalHref keeps the substring-prefix semantics used by existing
// stored artifacts: a link is external iff its normalized form does not
// begin with the base URL's scheme and host. The prefix is the site
// origin, not the full page URL, so subpages classify their own
// same-site links as internal.
func isExternalHref(normalizedHref, baseURL string) bool {
	return !strings.HasPrefix(normalizedHref, siteOrigin(baseURL))
}

// siteOrigin trims a page URL down to scheme://host. Unparseable or
// host-less URLs come back unchanged.
func siteOrigin(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return pageURL
	}
	return u.Scheme + "://" + u.Host
}

// ExtractBreadcrumbs scans breadcrumb regions only. Results never
// intermix with the navbar.
func ExtractBreadcrumbs(doc *goquery.Document, baseURL string) []models.NavItem {
	selectors := []string{
		".breadcrumb a[href]",
		".breadcrumbs a[href]",
		"[aria-label='breadcrumb'] a[href]",
		"[itemtype*='BreadcrumbList'] a[href]",
	}

	seen := make(map[string]struct{})
	var items []models.NavItem
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, link *goquery.Selection) {
			if item, ok := navItemFromLink(link, baseURL, 0, seen); ok {
				items = append(items, item)
			}
		})
		if len(items) > 0 {
			break
		}
	}
	return items
}

// ExtractFooterNav scans footer-region links only.
func ExtractFooterNav(doc *goquery.Document, baseURL string) []models.NavItem {
	seen := make(map[string]struct{})
	var items []models.NavItem
	doc.Find("footer a[href], .footer a[href]").Each(func(_ int, link *goquery.Selection) {
		if item, ok := navItemFromLink(link, baseURL, 0, seen); ok {
			items = append(items, item)
		}
	})
	return items
}

// socialHosts maps hostnames to platform names.
var socialHosts = map[string]string{
	"facebook.com":  "facebook",
	"fb.com":        "facebook",
	"twitter.com":   "twitter",
	"x.com":         "twitter",
	"instagram.com": "instagram",
	"linkedin.com":  "linkedin",
	"youtube.com":   "youtube",
	"youtu.be":      "youtube",
	"tiktok.com":    "tiktok",
	"pinterest.com": "pinterest",
	"github.com":    "github",
}

// ExtractSocials detects social-media profile links anywhere on the
// page, platform guessed by hostname, deduplicated by resolved URL.
func ExtractSocials(doc *goquery.Document, baseURL string) []models.Social {
	seen := make(map[string]struct{})
	var socials []models.Social

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		resolved, err := identity.ResolveURL(baseURL, link.AttrOr("href", ""))
		if err != nil {
			return
		}
		platform := guessSocialPlatform(resolved)
		if platform == "" {
			return
		}
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}
		socials = append(socials, models.Social{
			Platform: platform,
			URL:      resolved,
			Label:    strings.TrimSpace(link.Text()),
		})
	})

	return socials
}

func guessSocialPlatform(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	for domain, platform := range socialHosts {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return platform
		}
	}
	return ""
}
