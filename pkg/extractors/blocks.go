package extractors

import (
	"bufio"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitetruth/sitetruth/models"
)

// blockSelector matches the elements that become semantic blocks.
const blockSelector = "h1,h2,h3,h4,h5,h6,p,ul,ol,blockquote,table"

// ExtractBlocks produces the page's semantic blocks in reading order:
// the order elements appear in the document, not a reconstructed
// layout order.
func ExtractBlocks(doc *goquery.Document, opts models.ExtractOptions) []models.Block {
	opts = opts.Normalize()

	var blocks []models.Block
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// Nested matches belong to their container block: a <p> inside
		// a blockquote is the quote's text, not a second block.
		if s.ParentsFiltered(blockSelector).Length() > 0 {
			return
		}

		tag := goquery.NodeName(s)

		switch tag {
		case "p":
			text := normalizeText(s.Text())
			// Short paragraphs are UI chrome, not content.
			if len(text) < opts.MinParagraphLen {
				return
			}
			blocks = append(blocks, models.Block{Type: models.BlockParagraph, Text: text})

		case "ul", "ol":
			if block, ok := listBlock(s, tag == "ol"); ok {
				blocks = append(blocks, block)
			}

		case "blockquote":
			if block, ok := quoteBlock(s); ok {
				blocks = append(blocks, block)
			}

		case "table":
			if table := extractTable(s); table != nil {
				blocks = append(blocks, models.Block{Type: models.BlockTable, Table: table})
			}

		default: // h1-h6
			text := normalizeText(s.Text())
			if text == "" {
				return
			}
			blocks = append(blocks, models.Block{
				Type:  models.BlockHeading,
				Level: int(tag[1] - '0'),
				Text:  text,
			})
		}
	})

	return blocks
}

func listBlock(s *goquery.Selection, ordered bool) (models.Block, bool) {
	var items []string
	s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		if text := normalizeText(li.Text()); text != "" {
			items = append(items, text)
		}
	})
	if len(items) == 0 {
		return models.Block{}, false
	}
	return models.Block{Type: models.BlockList, Ordered: ordered, Items: items}, true
}

func quoteBlock(s *goquery.Selection) (models.Block, bool) {
	text := normalizeText(s.Text())
	if text == "" {
		return models.Block{}, false
	}

	cite := strings.TrimSpace(s.AttrOr("cite", ""))
	if cite == "" {
		cite = normalizeText(s.Find("cite").First().Text())
	}
	if cite != "" {
		// Nested citation text would otherwise duplicate inside the quote body.
		quoteOnly := s.Clone()
		quoteOnly.Find("cite").Remove()
		if t := normalizeText(quoteOnly.Text()); t != "" {
			text = t
		}
	}

	return models.Block{Type: models.BlockQuote, Text: text, Cite: cite}, true
}

// extractTable reads a table into headers and data rows. The first row
// counts as a header row only when it has more than one column.
func extractTable(s *goquery.Selection) *models.Table {
	var allRows [][]string
	s.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, normalizeText(cell.Text()))
		})
		if len(row) > 0 {
			allRows = append(allRows, row)
		}
	})

	if len(allRows) == 0 {
		return nil
	}

	table := &models.Table{}
	if len(allRows[0]) > 1 {
		table.Headers = allRows[0]
		table.Rows = allRows[1:]
	} else {
		table.Rows = allRows
	}
	return table
}

// normalizeText trims each line and joins non-empty lines with single
// spaces.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
