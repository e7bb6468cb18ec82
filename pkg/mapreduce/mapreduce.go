// Package mapreduce aggregates per-page keyword frequencies into
// run-level keyword reports.
package mapreduce

import (
	"github.com/sitetruth/sitetruth/models"
	"github.com/sitetruth/sitetruth/pkg/analytics"
)

// Map generates a word frequency map for a single page's content blocks.
func Map(page *models.ExtractedPage, a *analytics.Analytics) map[string]int {
	return a.WordFrequency(analytics.BlocksText(page.Blocks))
}

// Reduce aggregates a slice of word frequency maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}
