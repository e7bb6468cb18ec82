// Package assembler merges the per-domain extractor outputs into one
// immutable page record with a rollup confidence score.
package assembler

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/sitetruth/sitetruth/models"
	"github.com/sitetruth/sitetruth/pkg/extractors"
	"github.com/sitetruth/sitetruth/pkg/identity"
	"github.com/sitetruth/sitetruth/pkg/placement"
)

// presenceConfidence is the score a structural section (nav, blocks,
// metadata) contributes when it produced at least one item. Sections
// carry no per-item scores of their own, so presence is the signal.
const presenceConfidence = 0.8

// Assemble runs every extractor over the document and merges the
// results. It always returns a complete record: a near-empty document
// produces missing fields and empty slices, never an error.
func Assemble(doc *goquery.Document, pageURL string, opts models.ExtractOptions) models.ExtractedPage {
	opts = opts.Normalize()

	page := models.ExtractedPage{
		URL:         pageURL,
		Slug:        identity.PageSlug(pageURL),
		Meta:        extractors.ExtractMeta(doc, opts),
		Links:       extractors.ExtractLinks(doc, pageURL, opts),
		Diagnostics: extractors.ExtractDiagnostics(doc, opts),
		Images:      extractors.ExtractImages(doc, pageURL, opts),
		Navbar:      extractors.ExtractNav(doc, pageURL, opts),
		Breadcrumbs: extractors.ExtractBreadcrumbs(doc, pageURL),
		FooterNav:   extractors.ExtractFooterNav(doc, pageURL),
		Socials:     extractors.ExtractSocials(doc, pageURL),
		Blocks:      extractors.ExtractBlocks(doc, opts),
	}
	page.Confidence = rollupConfidence(page)

	return page
}

// rollupConfidence averages the component scores: the image field's own
// confidence plus a presence score for metadata, navigation, and
// content blocks. The result stays within the same heuristic cap as
// per-image placement.
func rollupConfidence(page models.ExtractedPage) float64 {
	scores := []float64{
		page.Images.Confidence,
		presence(page.Meta.Title != "" || page.Meta.Description != ""),
		presence(len(page.Navbar) > 0),
		presence(len(page.Blocks) > 0),
	}

	var total float64
	for _, s := range scores {
		total += s
	}
	confidence := total / float64(len(scores))
	if confidence > placement.MaxConfidence {
		confidence = placement.MaxConfidence
	}
	return confidence
}

func presence(found bool) float64 {
	if found {
		return presenceConfidence
	}
	return 0
}
