// Package htmltext flattens GOV.UK HTML fragments into plain text and
// table rows so the per-benefit scrapers can run regex and keyword
// classification over them.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// Row is one table row's cell texts, in cell order.
type Row []string

// Table is one HTML table's rows, header rows included.
type Table []Row

// Text returns the fragment's text content with tags stripped and
// whitespace collapsed to single spaces. An unparseable fragment
// yields the input unchanged; the scrapers only need text to run
// pattern matching over, so a lossy fallback is acceptable.
func Text(fragment string) string {
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return collapse(fragment)
	}
	var sb strings.Builder
	collectText(root, &sb)
	return collapse(sb.String())
}

// Tables extracts every <table> in the fragment, in document order,
// as rows of collapsed cell texts.
func Tables(fragment string) []Table {
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil
	}
	var tables []Table
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "table" {
			tables = append(tables, parseTable(n))
			return false // don't descend into nested tables twice
		}
		return true
	})
	return tables
}

// Rows returns every row of every table in the fragment, flattened in
// document order. Scrapers that classify rows by label text don't care
// which table a row came from.
func Rows(fragment string) []Row {
	var rows []Row
	for _, table := range Tables(fragment) {
		rows = append(rows, table...)
	}
	return rows
}

// Joined returns the row's cells joined with single spaces, for
// whole-row keyword classification.
func (r Row) Joined() string {
	return strings.Join(r, " ")
}

func parseTable(table *html.Node) Table {
	var rows Table
	walk(table, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var row Row
			walk(n, func(cell *html.Node) bool {
				if cell.Type == html.ElementNode && (cell.Data == "td" || cell.Data == "th") {
					var sb strings.Builder
					collectText(cell, &sb)
					row = append(row, collapse(sb.String()))
					return false
				}
				return true
			})
			if len(row) > 0 {
				rows = append(rows, row)
			}
			return false
		}
		return true
	})
	return rows
}

// walk visits n's subtree depth-first; visit returning false prunes
// descent below that node.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, visit)
	}
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb)
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
