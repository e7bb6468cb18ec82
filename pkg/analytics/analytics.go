// Package analytics computes keyword frequencies over extracted page
// content for run-level reporting.
package analytics

import (
	"sort"
	"strings"

	"github.com/sitetruth/sitetruth/models"
)

type Analytics struct{}

// IsStopword checks if a word is a common stopword that should be filtered out.
func IsStopword(word string) bool {
	_, exists := commonWords[strings.ToLower(word)]
	return exists
}

// BlocksText flattens extracted content blocks into plain text for
// frequency analysis. Headings, paragraphs, list items, quotes, and
// table cells all contribute; structure is discarded.
func BlocksText(blocks []models.Block) string {
	var b strings.Builder
	for _, block := range blocks {
		switch block.Type {
		case models.BlockList:
			for _, item := range block.Items {
				b.WriteString(item)
				b.WriteString(" ")
			}
		case models.BlockTable:
			if block.Table == nil {
				continue
			}
			for _, h := range block.Table.Headers {
				b.WriteString(h)
				b.WriteString(" ")
			}
			for _, row := range block.Table.Rows {
				for _, cell := range row {
					b.WriteString(cell)
					b.WriteString(" ")
				}
			}
		default:
			b.WriteString(block.Text)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}

func (a *Analytics) WordFrequency(text string) map[string]int {
	words := strings.Fields(strings.ToLower(text))
	frequencies := make(map[string]int)

	for _, word := range words {
		// Keep only lowercase letters and numbers
		word = strings.TrimFunc(word, func(r rune) bool {
			return ('a' > r || r > 'z') && ('0' > r || r > '9')
		})

		if _, exists := commonWords[word]; exists || word == "" {
			continue
		}

		frequencies[word]++
	}

	return frequencies
}

type wordCount struct {
	Word  string
	Count int
}

func (a *Analytics) TopNWords(text string, n int) []string {
	frequencies := a.WordFrequency(text)

	counts := make([]wordCount, 0, len(frequencies))
	for k, v := range frequencies {
		counts = append(counts, wordCount{k, v})
	}

	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	limit := n
	if len(counts) < n {
		limit = len(counts)
	}

	topN := make([]string, limit)
	for i := 0; i < limit; i++ {
		topN[i] = counts[i].Word
	}

	return topN
}
