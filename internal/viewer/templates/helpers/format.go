package helpers

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
)

// linkPolicy keeps an anchor's href only for absolute http, https and mailto URLs.
var linkPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.RequireParseableURLs(true)
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowAttrs("href").OnElements("a")
	return p
}()

// TextComponent returns a templ component that renders escaped text.
func TextComponent(value string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(value))
		return err
	})
}

// SafeLink returns the href for a scraped URL, or templ's neutralised form when the URL is
// not safe to open.
func SafeLink(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if IsSafeLink(trimmed) {
		return trimmed
	}
	return string(templ.URL(trimmed))
}

// IsSafeLink reports whether the URL keeps its href under the link policy.
func IsSafeLink(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}
	anchor := `<a href="` + html.EscapeString(trimmed) + `">x</a>`
	return strings.Contains(linkPolicy.Sanitize(anchor), "href=")
}

// Date formats the timestamp in the provided layout (defaults to 2006-01-02 15:04 MST).
func Date(ts time.Time, layout string) string {
	if layout == "" {
		layout = "2006-01-02 15:04 MST"
	}
	return ts.In(time.Local).Format(layout)
}

// ByteSize renders a file size in binary units.
func ByteSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// TagClass maps tag emphasis to utility classes.
func TagClass(empty bool) string {
	if empty {
		return "tag tag--empty"
	}
	return "tag"
}
