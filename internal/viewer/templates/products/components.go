package products

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"finitefield.org/product-viewer/internal/viewer/templates/helpers"
	"finitefield.org/product-viewer/internal/viewer/templates/layout"
)

// TableTargetID is the element replaced by table fragment responses.
const TableTargetID = "product-table"

// Index renders the full browser page.
func Index(data PageData) templ.Component {
	return layout.Page(data.Title, body(data))
}

func body(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := helpers.NewWriter(out)
		w.Raw(`<header class="viewer__header"><h1>`)
		w.Component(ctx, helpers.TextComponent(data.Title))
		w.Raw(`</h1></header><div class="viewer__layout">`)
		w.Component(ctx, filterForm(data))
		w.Raw(`<section class="viewer__content"><h2>`)
		w.Text(ListHeading)
		w.Raw(`</h2><div`)
		w.Attr("id", TableTargetID)
		w.Raw(`>`)
		w.Component(ctx, Table(data.Table))
		w.Raw(`</div></section></div>`)
		return w.Err()
	})
}

func filterForm(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := helpers.NewWriter(out)
		w.Raw(`<aside class="viewer__sidebar"><h2>`)
		w.Text(FilterHeading)
		w.Raw(`</h2><form method="get" data-filter-form`)
		w.Attr("action", data.PageEndpoint)
		w.Attr("hx-get", data.TableEndpoint)
		w.Attr("hx-target", "#"+TableTargetID)
		w.Attr("hx-swap", "innerHTML")
		w.Attr("hx-trigger", "change, keyup changed delay:300ms from:input[name=q], submit")
		w.Raw(`>`)

		if data.Category.Available {
			w.Raw(`<label class="field"><span class="field__label">`)
			w.Text(CategoryLabel)
			w.Raw(`</span> <span class="field__hint" data-category-total>`)
			w.Text(data.Category.TotalLabel)
			w.Raw(`</span><select name="category" data-category-select>`)
			for _, opt := range data.Category.Options {
				w.Raw(`<option`)
				w.Attr("value", opt.Value)
				if opt.Selected {
					w.Raw(` selected`)
				}
				w.Raw(`>`)
				w.Text(opt.Label)
				w.Raw(`</option>`)
			}
			w.Raw(`</select></label>`)
		} else if data.Category.Note != "" {
			w.Raw(`<p class="field__note" data-category-note>`)
			w.Text(data.Category.Note)
			w.Raw(`</p>`)
		}

		w.Raw(`<label class="field"><span class="field__label">`)
		w.Text(SearchLabel)
		w.Raw(`</span><input type="search" name="q" autocomplete="off" data-search-input`)
		w.Attr("value", data.Query.Search)
		w.Raw(`></label><button type="submit" class="button">搜索 (Search)</button></form></aside>`)
		return w.Err()
	})
}

// Table renders the result table fragment.
func Table(data TableData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := helpers.NewWriter(out)
		w.Raw(`<div class="results" data-product-results`)
		w.Attr("data-state", data.State)
		w.Raw(`>`)

		if data.Error != "" {
			w.Raw(`<div class="alert alert--warning" role="alert" data-error><p>`)
			w.Text(data.Error)
			w.Raw(`</p>`)
			if data.ErrorDetail != "" {
				w.Raw(`<p class="alert__detail" data-error-detail>`)
				w.Text(data.ErrorDetail)
				w.Raw(`</p>`)
			}
			w.Raw(`</div></div>`)
			return w.Err()
		}

		w.Raw(`<p class="results__summary" data-summary>`)
		w.Text(data.Summary)
		w.Raw(`</p>`)
		if data.Source != nil {
			w.Raw(`<p class="results__source" data-source>`)
			w.Text(SourceLabel + data.Source.Name + " · " + data.Source.ModifiedAt + " · " +
				data.Source.Size + " · " + strconv.Itoa(data.Source.Records) + " records")
			w.Raw(`</p>`)
		}

		if data.EmptyMessage != "" {
			w.Raw(`<div class="alert alert--info" data-empty>`)
			w.Text(data.EmptyMessage)
			w.Raw(`</div></div>`)
			return w.Err()
		}

		w.Raw(`<div class="table-wrap"><table class="products" data-product-table><thead><tr>`)
		for _, col := range data.Columns {
			w.Raw(`<th`)
			w.Attr("data-field", col.Field)
			w.Attr("data-kind", col.Kind)
			w.Raw(`>`)
			w.Text(col.Label)
			w.Raw(`</th>`)
		}
		w.Raw(`</tr></thead><tbody>`)
		for _, row := range data.Rows {
			w.Raw(`<tr data-product-row>`)
			for i, cell := range row.Cells {
				w.Raw(`<td`)
				if i < len(data.Columns) {
					w.Attr("data-field", data.Columns[i].Field)
				}
				w.Raw(`>`)
				writeCell(w, cell)
				w.Raw(`</td>`)
			}
			w.Raw(`</tr>`)
		}
		w.Raw(`</tbody></table></div></div>`)
		return w.Err()
	})
}

func writeCell(w *helpers.Writer, cell CellView) {
	switch {
	case cell.Link != nil:
		if !cell.Link.Safe {
			w.Raw(`<span class="link--blocked"`)
			w.Attr("title", cell.Link.Raw)
			w.Raw(`>`)
			w.Text(cell.Link.Text)
			w.Raw(`</span>`)
			return
		}
		w.Raw(`<a target="_blank" rel="noopener noreferrer"`)
		w.Attr("href", cell.Link.Href)
		w.Attr("title", cell.Link.Title)
		w.Raw(`>`)
		w.Text(cell.Link.Text)
		w.Raw(`</a>`)
	case cell.Tags != nil:
		w.Raw(`<ul class="tags">`)
		for _, tag := range cell.Tags {
			w.Raw(`<li`)
			w.Attr("class", helpers.TagClass(tag.Empty))
			w.Raw(`>`)
			if tag.Empty {
				w.Text("-")
			} else {
				w.Text(tag.Text)
			}
			w.Raw(`</li>`)
		}
		w.Raw(`</ul>`)
	case cell.Segments != nil:
		for _, seg := range cell.Segments {
			if seg.Match {
				w.Raw(`<mark>`)
				w.Text(seg.Text)
				w.Raw(`</mark>`)
				continue
			}
			w.Text(seg.Text)
		}
	default:
		w.Text(cell.Text)
	}
}
