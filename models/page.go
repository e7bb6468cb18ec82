package models

// PageMeta holds page-level metadata from meta tags, with optional
// readability enrichment filled in by the pipeline layer.
type PageMeta struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
	Author      string `json:"author,omitempty"`
	Robots      string `json:"robots,omitempty"`

	// Enrichment (from go-readability, set outside the core extractors)
	Excerpt       string `json:"excerpt,omitempty"`
	SiteName      string `json:"site_name,omitempty"`
	Favicon       string `json:"favicon,omitempty"`
	LeadImage     string `json:"lead_image,omitempty"`
	PublishedTime string `json:"published_time,omitempty"`

	Language           string  `json:"language,omitempty"` // ISO-639-1
	LanguageConfidence float64 `json:"language_confidence,omitempty"`
}

// Links separates same-site from off-site link sets.
type Links struct {
	Internal []string `json:"internal"`
	External []string `json:"external"`
}

// Diagnostics carries page-health signals used to weigh the record.
type Diagnostics struct {
	WordCount        int  `json:"word_count"`
	HasSchemaOrg     bool `json:"has_schema_org"`
	HasOpenGraph     bool `json:"has_open_graph"`
	ReadabilityScore *int `json:"readability_score,omitempty"` // Flesch Reading Ease, 0-100
}

// ExtractedPage is the aggregate record for one crawled page. It is
// assembled once and never mutated afterwards.
type ExtractedPage struct {
	URL         string         `json:"url"`
	Slug        string         `json:"slug"`
	Meta        PageMeta       `json:"meta"`
	Links       Links          `json:"links"`
	Diagnostics Diagnostics    `json:"diagnostics"`
	Images      Field[[]Image] `json:"images"`
	Navbar      []NavItem      `json:"navbar"`
	Breadcrumbs []NavItem      `json:"breadcrumbs,omitempty"`
	FooterNav   []NavItem      `json:"footer_nav,omitempty"`
	Socials     []Social       `json:"socials,omitempty"`
	Blocks      []Block        `json:"blocks"`
	Confidence  float64        `json:"confidence"` // rollup across extractors
}
