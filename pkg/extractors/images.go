package extractors

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitetruth/sitetruth/models"
	"github.com/sitetruth/sitetruth/pkg/identity"
	"github.com/sitetruth/sitetruth/pkg/placement"
	"github.com/sitetruth/sitetruth/pkg/signals"
)

// maxAncestorDepth bounds how far up the tree the DOM-context signal
// looks for keyword evidence.
const maxAncestorDepth = 5

var bgImagePattern = regexp.MustCompile(`(?i)background-image:\s*url\(['"]?([^'")]+)['"]?\)`)

// ExtractImages walks the document's <img> elements and CSS
// background-image carriers and produces classified image candidates.
// Each element class is capped and stops early on its own; resolution
// failures and rejected candidates are skipped silently.
func ExtractImages(doc *goquery.Document, baseURL string, opts models.ExtractOptions) models.Field[[]models.Image] {
	opts = opts.Normalize()

	allowed := make(map[string]struct{}, len(opts.AllowedFormats))
	for _, format := range opts.AllowedFormats {
		allowed[strings.ToLower(format)] = struct{}{}
	}

	pageSlug := identity.PageSlug(baseURL)
	seen := make(map[string]struct{})
	var images []models.Image

	// <img> elements
	added := 0
	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if added >= opts.MaxImages {
			return false
		}
		img, ok := imageFromTag(s, baseURL, pageSlug, allowed, opts, seen)
		if ok {
			images = append(images, img)
			added++
		}
		return true
	})

	// CSS background images, processed independently of the <img> cap
	added = 0
	doc.Find("[style*='background-image']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if added >= opts.MaxImages {
			return false
		}
		img, ok := imageFromBackground(s, baseURL, pageSlug, allowed, seen)
		if ok {
			images = append(images, img)
			added++
		}
		return true
	})

	if len(images) == 0 {
		return models.MissingField[[]models.Image]("no <img> tags detected")
	}

	var total float64
	for _, img := range images {
		total += img.Placement.Confidence
	}
	confidence := total / float64(len(images))
	if confidence > placement.MaxConfidence {
		confidence = placement.MaxConfidence
	}

	return models.OKField(images, confidence)
}

// imageFromTag builds one candidate from an <img> element. Returns
// false when the candidate is rejected (bad URL, disallowed format,
// sub-minimum dimensions, or duplicate src).
func imageFromTag(s *goquery.Selection, baseURL, pageSlug string, allowed map[string]struct{}, opts models.ExtractOptions, seen map[string]struct{}) (models.Image, bool) {
	src, err := identity.ResolveURL(baseURL, s.AttrOr("src", ""))
	if err != nil {
		return models.Image{}, false
	}

	format := identity.FormatFromURL(src)
	if _, ok := allowed[format]; !ok {
		return models.Image{}, false
	}

	if _, dup := seen[src]; dup {
		return models.Image{}, false
	}

	width, _ := strconv.Atoi(s.AttrOr("width", ""))
	height, _ := strconv.Atoi(s.AttrOr("height", ""))

	var geo *signals.Geometry
	var aspect float64
	if width > 0 && height > 0 {
		geo = &signals.Geometry{Width: width, Height: height}
		aspect = geo.Aspect()
	}

	ref := placement.Classify(domContext(s), src, geo)

	// The dimension gate drops tracking pixels and UI icons. Logos are
	// legitimately small, so they pass when DOM or URL evidence marks
	// them as logos. Geometry is advisory and cannot open the gate by
	// itself.
	if ((width > 0 && width < opts.MinWidth) || (height > 0 && height < opts.MinHeight)) &&
		!logoEvidence(ref) {
		return models.Image{}, false
	}
	seen[src] = struct{}{}

	return models.Image{
		ID:        identity.ImageID(src),
		PageSlug:  pageSlug,
		Src:       src,
		Alt:       strings.TrimSpace(s.AttrOr("alt", "")),
		Width:     width,
		Height:    height,
		Aspect:    aspect,
		Format:    format,
		Role:      models.RoleForZone(ref.Zone),
		Placement: ref,
		Hash:      identity.ContentHash([]byte(src)),
	}, true
}

// logoEvidence reports whether a logo classification is backed by a
// DOM or URL signal rather than geometry alone.
func logoEvidence(ref models.PlacementRef) bool {
	if ref.Zone != models.ZoneLogo {
		return false
	}
	for _, sig := range ref.Signals {
		if sig.Zone == models.ZoneLogo && sig.Source != models.SourceGeometry {
			return true
		}
	}
	return false
}

// imageFromBackground builds one candidate from an element carrying an
// inline background-image style. Background candidates keep the legacy
// "bg" role unless classified as hero.
func imageFromBackground(s *goquery.Selection, baseURL, pageSlug string, allowed map[string]struct{}, seen map[string]struct{}) (models.Image, bool) {
	match := bgImagePattern.FindStringSubmatch(s.AttrOr("style", ""))
	if match == nil {
		return models.Image{}, false
	}

	src, err := identity.ResolveURL(baseURL, match[1])
	if err != nil {
		return models.Image{}, false
	}

	format := identity.FormatFromURL(src)
	if _, ok := allowed[format]; !ok {
		return models.Image{}, false
	}

	if _, dup := seen[src]; dup {
		return models.Image{}, false
	}
	seen[src] = struct{}{}

	ref := placement.Classify(domContext(s), src, nil)
	if len(ref.Signals) == 0 {
		// Unsignaled backgrounds are decorative, not inline content.
		ref.Zone = models.ZoneBG
	}
	role := "bg"
	if ref.Zone == models.ZoneHero {
		role = "hero"
	}

	return models.Image{
		ID:        identity.ImageID(src),
		PageSlug:  pageSlug,
		Src:       src,
		Format:    format,
		Role:      role,
		Placement: ref,
		Hash:      identity.ContentHash([]byte(src)),
	}, true
}

// domContext flattens an element's tag and class/id attributes plus its
// bounded ancestor chain into the shape the DOM-context signal
// consumes. Ancestor entries carry the tag name too, so semantic
// containers like <header> count as evidence without any class.
func domContext(s *goquery.Selection) signals.DOMContext {
	ctx := signals.DOMContext{
		Tag:   goquery.NodeName(s),
		Attrs: s.AttrOr("class", "") + " " + s.AttrOr("id", ""),
	}

	s.Parents().EachWithBreak(func(i int, parent *goquery.Selection) bool {
		if i >= maxAncestorDepth {
			return false
		}
		ctx.Ancestors = append(ctx.Ancestors,
			goquery.NodeName(parent)+" "+parent.AttrOr("class", "")+" "+parent.AttrOr("id", ""))
		return true
	})

	return ctx
}

// HeroImages is a pure view over extracted images: the top hero and
// banner candidates ordered by confidence, then by pixel area.
func HeroImages(images []models.Image) []models.Image {
	var heroes []models.Image
	for _, img := range images {
		zone := img.Placement.Zone
		if zone == models.ZoneHero || zone == models.ZoneTopBanner || img.Role == "hero" {
			heroes = append(heroes, img)
		}
	}

	sort.SliceStable(heroes, func(i, j int) bool {
		if heroes[i].Placement.Confidence != heroes[j].Placement.Confidence {
			return heroes[i].Placement.Confidence > heroes[j].Placement.Confidence
		}
		return area(heroes[i]) > area(heroes[j])
	})

	if len(heroes) > 5 {
		heroes = heroes[:5]
	}
	return heroes
}

// LogoImages is a pure view over extracted images: logo candidates
// ordered by confidence, SVG preferred, then by pixel area.
func LogoImages(images []models.Image) []models.Image {
	var logos []models.Image
	for _, img := range images {
		if img.Placement.Zone == models.ZoneLogo || img.Role == "logo" {
			logos = append(logos, img)
		}
	}

	sort.SliceStable(logos, func(i, j int) bool {
		if logos[i].Placement.Confidence != logos[j].Placement.Confidence {
			return logos[i].Placement.Confidence > logos[j].Placement.Confidence
		}
		iSVG, jSVG := logos[i].Format == "svg", logos[j].Format == "svg"
		if iSVG != jSVG {
			return iSVG
		}
		return area(logos[i]) > area(logos[j])
	})

	return logos
}

func area(img models.Image) int {
	return img.Width * img.Height
}
