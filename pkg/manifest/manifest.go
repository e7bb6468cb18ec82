package manifest

// RunManifest is a lightweight overview of one batch run: per-page
// status and the run's aggregate keywords, readable without opening the
// full page records.
type RunManifest struct {
	RunID             string        `json:"run_id"`
	GeneratedAt       string        `json:"generated_at"`
	TotalPages        int           `json:"total_pages"`
	Successful        int           `json:"successful"`
	Failed            int           `json:"failed"`
	AggregateKeywords []string      `json:"aggregate_keywords"`
	Pages             []PageSummary `json:"pages"`
}

// PageSummary is the manifest entry for a single page.
type PageSummary struct {
	URL          string   `json:"url"`
	Slug         string   `json:"slug,omitempty"`
	FilePath     string   `json:"file_path,omitempty"`
	Status       string   `json:"status"` // "success" or "error"
	ErrorMessage string   `json:"error_message,omitempty"`
	Confidence   float64  `json:"confidence,omitempty"`
	WordCount    int      `json:"word_count,omitempty"`
	ImageCount   int      `json:"image_count,omitempty"`
	TopKeywords  []string `json:"top_keywords,omitempty"`
}
