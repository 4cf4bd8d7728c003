package testutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML parses a rendered page or fragment for goquery assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// ProductRows returns the rendered product table rows.
func ProductRows(doc *goquery.Document) *goquery.Selection {
	return doc.Find("[data-product-table] [data-product-row]")
}

// ColumnTexts returns the trimmed text of every cell of field, in row order.
func ColumnTexts(doc *goquery.Document, field string) []string {
	var out []string
	ProductRows(doc).Each(func(_ int, row *goquery.Selection) {
		cell := row.Find(`td[data-field="` + field + `"]`)
		out = append(out, strings.TrimSpace(cell.Text()))
	})
	return out
}
