package extractors

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/kaptinlin/jsonrepair"
	"github.com/pemistahl/lingua-go"
	"github.com/sitetruth/sitetruth/models"
	"github.com/sitetruth/sitetruth/pkg/identity"
)

// ExtractMeta reads page-level metadata from the head section.
func ExtractMeta(doc *goquery.Document, opts models.ExtractOptions) models.PageMeta {
	meta := models.PageMeta{
		Title:       normalizeText(doc.Find("title").First().Text()),
		Description: metaContent(doc, "description"),
		Keywords:    metaContent(doc, "keywords"),
		Author:      metaContent(doc, "author"),
		Robots:      metaContent(doc, "robots"),
	}

	if opts.DetectLanguage {
		if lang, confidence, ok := detectLanguage(doc.Find("body").Text()); ok {
			meta.Language = lang
			meta.LanguageConfidence = confidence
		}
	}

	return meta
}

func metaContent(doc *goquery.Document, name string) string {
	return strings.TrimSpace(doc.Find("meta[name='" + name + "']").First().AttrOr("content", ""))
}

// ExtractLinks collects the page's link sets with global dedup by
// normalized href. External links are included only when opted in.
func ExtractLinks(doc *goquery.Document, baseURL string, opts models.ExtractOptions) models.Links {
	links := models.Links{Internal: []string{}, External: []string{}}
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		resolved, err := identity.ResolveURL(baseURL, s.AttrOr("href", ""))
		if err != nil {
			return
		}
		normalized := identity.NormalizeURL(resolved)
		if _, dup := seen[normalized]; dup {
			return
		}
		seen[normalized] = struct{}{}

		if isExternalHref(normalized, baseURL) {
			if opts.IncludeExternalLinks {
				links.External = append(links.External, normalized)
			}
			return
		}
		links.Internal = append(links.Internal, normalized)
	})

	return links
}

// ExtractDiagnostics computes page-health signals: body word count,
// structured-data and Open Graph presence, and the optional
// readability score.
func ExtractDiagnostics(doc *goquery.Document, opts models.ExtractOptions) models.Diagnostics {
	bodyText := doc.Find("body").Text()

	diagnostics := models.Diagnostics{
		WordCount: len(strings.Fields(bodyText)),
	}

	if opts.ExtractSchemaOrg {
		diagnostics.HasSchemaOrg = hasSchemaOrg(doc)
	}
	if opts.ExtractOpenGraph {
		diagnostics.HasOpenGraph = doc.Find("meta[property^='og:']").Length() > 0
	}
	if opts.CalculateReadability {
		score := FleschReadingEase(bodyText)
		diagnostics.ReadabilityScore = &score
	}

	return diagnostics
}

// hasSchemaOrg reports whether the page carries structured data: a
// parseable JSON-LD block, microdata itemscope, or RDFa typeof.
// Malformed JSON-LD gets one repair attempt before being skipped.
func hasSchemaOrg(doc *goquery.Document) bool {
	found := false
	doc.Find("script[type='application/ld+json']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}
		if json.Valid([]byte(raw)) {
			found = true
			return false
		}
		// Repair is only for blocks that plausibly are JSON. Arbitrary
		// text must stay unparseable, not get rewritten into something
		// valid.
		if raw[0] == '{' || raw[0] == '[' {
			if repaired, err := jsonrepair.JSONRepair(raw); err == nil && json.Valid([]byte(repaired)) {
				found = true
				return false
			}
		}
		return true // malformed block skipped, keep looking
	})
	if found {
		return true
	}

	return doc.Find("[itemscope]").Length() > 0 || doc.Find("[typeof]").Length() > 0
}

var sentenceSplitPattern = regexp.MustCompile(`[.!?]+`)

// FleschReadingEase computes the simplified Flesch Reading Ease score
// for a text, clamped to [0, 100] and rounded. Zero words or zero
// sentences yield 0 rather than a division error.
func FleschReadingEase(text string) int {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	sentences := 0
	for _, segment := range sentenceSplitPattern.Split(text, -1) {
		if strings.TrimSpace(segment) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		return 0
	}

	syllables := 0
	for _, word := range words {
		syllables += countSyllables(word)
	}

	score := 206.835 - 1.015*(float64(len(words))/float64(sentences)) - 84.6*(float64(syllables)/float64(len(words)))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}

// countSyllables estimates syllables by counting vowel groups, with a
// correction for a silent trailing 'e'. Every word counts as at least
// one syllable.
func countSyllables(word string) int {
	word = strings.ToLower(word)

	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

// Language detection is expensive to initialize, so the detector is
// built once per process. It is read-only and safe to share across
// extraction calls.
var (
	languageDetectorOnce sync.Once
	languageDetector     lingua.LanguageDetector
)

func detectLanguage(text string) (string, float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", 0, false
	}

	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English, lingua.Spanish, lingua.French,
				lingua.German, lingua.Portuguese, lingua.Italian,
			).
			Build()
	})

	language, exists := languageDetector.DetectLanguageOf(text)
	if !exists {
		return "", 0, false
	}
	confidence := languageDetector.ComputeLanguageConfidence(text, language)
	return strings.ToLower(language.IsoCode639_1().String()), confidence, true
}
