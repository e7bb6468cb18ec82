package models

// Block kinds. A Block is a tagged union: Type selects which of the
// optional payload fields is meaningful.
const (
	BlockHeading   = "heading"
	BlockParagraph = "paragraph"
	BlockList      = "list"
	BlockQuote     = "quote"
	BlockTable     = "table"
)

type Table struct {
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows"`
}

// Block represents a semantic block of content in reading order.
type Block struct {
	Type    string   `json:"type"`
	Level   int      `json:"level,omitempty"`   // heading level 1-6
	Text    string   `json:"text,omitempty"`    // heading, paragraph, quote
	Ordered bool     `json:"ordered,omitempty"` // list
	Items   []string `json:"items,omitempty"`   // list
	Cite    string   `json:"cite,omitempty"`    // quote
	Table   *Table   `json:"table,omitempty"`
}
