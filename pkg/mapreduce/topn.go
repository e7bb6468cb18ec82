package mapreduce

import (
	"fmt"
	"sort"
	"strings"
)

// isValidKeyword filters malformed tokens: unmatched delimiters,
// trailing special chars, unmatched quotes. Conservative, so technical
// terms like x_train survive.
func isValidKeyword(word string) bool {
	if strings.HasSuffix(word, ":") || strings.HasSuffix(word, "=") {
		return false
	}

	if strings.Contains(word, "(") && !strings.Contains(word, ")") {
		return false
	}
	if strings.Contains(word, "[") && !strings.Contains(word, "]") {
		return false
	}
	if strings.Contains(word, "{") && !strings.Contains(word, "}") {
		return false
	}

	if strings.Count(word, "\"")%2 != 0 {
		return false
	}
	if strings.Count(word, "'")%2 != 0 {
		return false
	}

	return true
}

type keywordCount struct {
	Word  string
	Count int
}

func rankKeywords(wordCounts map[string]int, n int) []keywordCount {
	ranked := make([]keywordCount, 0, len(wordCounts))
	for word, count := range wordCounts {
		if isValidKeyword(word) {
			ranked = append(ranked, keywordCount{word, count})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TopKeywords returns the top N keywords from aggregated word counts,
// each formatted as "word:count".
func TopKeywords(wordCounts map[string]int, n int) []string {
	ranked := rankKeywords(wordCounts, n)

	keywords := make([]string, len(ranked))
	for i, kc := range ranked {
		keywords[i] = fmt.Sprintf("%s:%d", kc.Word, kc.Count)
	}
	return keywords
}

// PrintTopKeywords prints the top N keywords in a numbered list format.
func PrintTopKeywords(wordCounts map[string]int, n int) {
	for i, kc := range rankKeywords(wordCounts, n) {
		fmt.Printf("%d. %s: %d\n", i+1, kc.Word, kc.Count)
	}
}
