package models

// NavItem is one entry in a navigation region. Href is always absolute;
// Depth reflects nesting within the navigation subtree.
type NavItem struct {
	Text       string `json:"text"` // normalized slug-like label
	Href       string `json:"href"`
	IsExternal bool   `json:"is_external"`
	Depth      int    `json:"depth"`
}

// Social is a detected social-media profile link, platform guessed by
// hostname.
type Social struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Label    string `json:"label,omitempty"`
}
