package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"finitefield.org/product-viewer/internal/viewer/templates/helpers"
	"finitefield.org/product-viewer/public"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@1.9.12"

// Page wraps body in the document shell shared by every full page.
func Page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := helpers.NewWriter(out)
		w.Raw("<!DOCTYPE html>\n<html lang=\"zh-CN\"><head><meta charset=\"utf-8\">")
		w.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.Raw("<title>")
		w.Text(title)
		w.Raw("</title><link rel=\"stylesheet\"")
		w.Attr("href", public.Stylesheet)
		w.Raw("><script defer")
		w.Attr("src", htmxScriptURL)
		w.Raw("></script></head><body class=\"viewer\"><main class=\"viewer__main\">")
		w.Component(ctx, body)
		w.Raw("</main></body></html>")
		return w.Err()
	})
}
