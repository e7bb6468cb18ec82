// Package signals contains the independent, stateless heuristics that
// observe a visual element and emit placement signals. Each extractor
// looks at exactly one evidence source and knows nothing about the
// others; fusing disagreeing signals is the placement package's job.
package signals

import (
	"regexp"
	"strings"

	"github.com/sitetruth/sitetruth/models"
	"github.com/sitetruth/sitetruth/pkg/identity"
)

// Signal weights by source. DOM context is the strongest evidence, URL
// patterns are secondary, geometry is advisory only and can never
// override the other two on its own.
const (
	WeightDOM      = 0.6
	WeightURL      = 0.3
	WeightGeometry = 0.15
)

// Geometry is the optional pixel-dimension evidence for an element.
type Geometry struct {
	Width  int
	Height int
}

// Aspect returns width/height, or 0 when either dimension is unknown.
func (g Geometry) Aspect() float64 {
	if g.Width <= 0 || g.Height <= 0 {
		return 0
	}
	return float64(g.Width) / float64(g.Height)
}

// DOMContext is a flattened view of an element's position in the
// document: its tag, its own class/id attributes, and the tag plus
// class/id attributes of its ancestors (nearest first, bounded depth).
// Tag names are keyword evidence like class names, so an element inside
// a bare <header> still carries DOM context.
type DOMContext struct {
	Tag       string
	Attrs     string
	Ancestors []string
}

var (
	logoPattern    = regexp.MustCompile(`logo`)
	heroPattern    = regexp.MustCompile(`hero|banner|masthead|header|jumbotron|splash`)
	galleryPattern = regexp.MustCompile(`gallery|carousel|slider|grid`)
)

// keywordZone classifies a single attribute string against the keyword
// classes. Categories are mutually exclusive by precedence
// logo > hero > gallery.
func keywordZone(s string) (models.PlacementZone, bool) {
	s = strings.ToLower(s)
	switch {
	case logoPattern.MatchString(s):
		return models.ZoneLogo, true
	case heroPattern.MatchString(s):
		return models.ZoneHero, true
	case galleryPattern.MatchString(s):
		return models.ZoneGallery, true
	}
	return "", false
}

// FromDOM scans the element's own attributes and its ancestor chain for
// keyword patterns. The first match per category wins; the categories
// then resolve by precedence. Returns nil when nothing matches.
func FromDOM(ctx DOMContext) *models.Signal {
	var matched [3]bool // logo, hero, gallery

	scan := func(s string) {
		if zone, ok := keywordZone(s); ok {
			switch zone {
			case models.ZoneLogo:
				matched[0] = true
			case models.ZoneHero:
				matched[1] = true
			case models.ZoneGallery:
				matched[2] = true
			}
		}
	}

	scan(ctx.Tag)
	scan(ctx.Attrs)
	for _, ancestor := range ctx.Ancestors {
		scan(ancestor)
	}

	zones := []models.PlacementZone{models.ZoneLogo, models.ZoneHero, models.ZoneGallery}
	for i, hit := range matched {
		if hit {
			return &models.Signal{Source: models.SourceDOMContext, Zone: zones[i], Weight: WeightDOM}
		}
	}
	return nil
}

// FromURL applies the same keyword classes to the path and filename of
// the resolved source URL.
func FromURL(src string) *models.Signal {
	filename := identity.URLFilename(src)
	zone, ok := keywordZone(filename)
	if !ok {
		zone, ok = keywordZone(src)
	}
	if !ok {
		return nil
	}
	return &models.Signal{Source: models.SourceURLPattern, Zone: zone, Weight: WeightURL}
}

// FromGeometry biases very wide elements toward banner/hero zones and
// small near-square elements toward logo. Advisory only: its weight is
// the lowest and it never overrides a DOM or URL match.
func FromGeometry(g Geometry) *models.Signal {
	aspect := g.Aspect()
	if aspect == 0 {
		return nil
	}

	area := g.Width * g.Height
	var zone models.PlacementZone
	switch {
	case aspect >= 3.0 && g.Width >= 600:
		zone = models.ZoneTopBanner
	case aspect >= 2.0 || area >= 500000:
		zone = models.ZoneHero
	case aspect >= 0.66 && aspect <= 1.5 && g.Width <= 256 && g.Height <= 256:
		zone = models.ZoneLogo
	default:
		return nil
	}

	return &models.Signal{Source: models.SourceGeometry, Zone: zone, Weight: WeightGeometry}
}
