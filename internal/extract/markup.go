package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Section titles that bound the Positions block of a trade history report
const (
	positionsTitle = "positions"
)

var sectionClosers = map[string]bool{
	"orders":  true,
	"deals":   true,
	"results": true,
}

// Document is a parsed markup statement
type Document struct {
	doc *goquery.Document
}

// ParseDocument parses decoded markup text
func ParseDocument(text string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup document: %w", err)
	}
	return &Document{doc: doc}, nil
}

// RowCount returns the number of table rows anywhere in the document
func (d *Document) RowCount() int {
	return d.doc.Find("tr").Length()
}

// Text returns the whitespace-collapsed text of the whole document
func (d *Document) Text() string {
	return collapseSpace(d.doc.Text())
}

// PositionsRows returns the visible cells of every row inside the Positions
// section, in document order. The marker rows themselves are not included.
func (d *Document) PositionsRows() [][]string {
	var (
		rows   [][]string
		inside bool
	)

	d.doc.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		title := strings.ToLower(collapseSpace(tr.Text()))
		if !inside {
			inside = title == positionsTitle
			return true
		}
		if sectionClosers[title] {
			return false
		}
		if cells := VisibleCells(tr); len(cells) > 0 {
			rows = append(rows, cells)
		}
		return true
	})

	return rows
}

// Tables returns every table in the document as rows of visible cells.
// Rows of nested tables belong to the nested table only.
func (d *Document) Tables() [][][]string {
	var tables [][][]string
	d.doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		var rows [][]string
		collect := func(_ int, tr *goquery.Selection) {
			if cells := VisibleCells(tr); len(cells) > 0 {
				rows = append(rows, cells)
			}
		}
		table.ChildrenFiltered("tr").Each(collect)
		table.ChildrenFiltered("thead, tbody, tfoot").ChildrenFiltered("tr").Each(collect)
		if len(rows) > 0 {
			tables = append(tables, rows)
		}
	})
	return tables
}

// LabelValue finds a cell whose text equals label (case-insensitive, e.g.
// "Name:") and returns the text of the next cell in the same row.
func (d *Document) LabelValue(label string) string {
	want := strings.ToLower(label)
	var value string
	d.doc.Find("th, td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		if strings.ToLower(collapseSpace(cell.Text())) != want {
			return true
		}
		value = collapseSpace(cell.NextFiltered("th, td").Text())
		return value == ""
	})
	return value
}

// VisibleCells returns the trimmed text of a row's cells, skipping cells
// marked hidden by class, style or the hidden attribute.
func VisibleCells(tr *goquery.Selection) []string {
	var cells []string
	tr.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
		if IsHidden(cell) {
			return
		}
		cells = append(cells, collapseSpace(cell.Text()))
	})
	return cells
}

// IsHidden reports whether a cell is presentation padding
func IsHidden(cell *goquery.Selection) bool {
	if cell.HasClass("hidden") {
		return true
	}
	if _, ok := cell.Attr("hidden"); ok {
		return true
	}
	style, ok := cell.Attr("style")
	if !ok {
		return false
	}
	style = strings.ToLower(strings.Join(strings.Fields(style), ""))
	return strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden")
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
