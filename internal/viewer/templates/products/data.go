package products

import (
	"strings"

	"finitefield.org/product-viewer/internal/viewer/catalog"
	"finitefield.org/product-viewer/internal/viewer/templates/helpers"
)

// PageData represents the payload for the full browser page.
type PageData struct {
	Title         string
	Query         QueryState
	PageEndpoint  string
	TableEndpoint string
	Category      CategorySelector
	Table         TableData
}

// QueryState holds the applied filter for rendering the form.
type QueryState struct {
	Category string
	Search   string
	Restored bool
}

// CategorySelector describes the category dropdown.
type CategorySelector struct {
	Available  bool
	Options    []SelectOption
	TotalLabel string
	Note       string
}

// SelectOption represents a dropdown option.
type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

// TableData represents the payload for the table fragment.
type TableData struct {
	State        string
	Error        string
	ErrorDetail  string
	EmptyMessage string
	Summary      string
	Source       *SourceView
	SearchTerm   string
	Columns      []ColumnView
	Rows         []RowView
}

// SourceView describes the snapshot file the table was read from.
type SourceView struct {
	Name       string
	ModifiedAt string
	Size       string
	Records    int
}

// ColumnView is a table header cell.
type ColumnView struct {
	Field string
	Label string
	Kind  string
}

// RowView is one table row.
type RowView struct {
	Cells []CellView
}

// CellView is one rendered cell. Exactly one of Segments, Tags or Link is used, depending
// on Kind.
type CellView struct {
	Kind     string
	Text     string
	Segments []helpers.HighlightSegment
	Tags     []TagView
	Link     *LinkView
}

// TagView is a single tag chip.
type TagView struct {
	Text  string
	Empty bool
}

// LinkView is an actionable link cell.
type LinkView struct {
	Href  string
	Text  string
	Title string
	Safe  bool
	Raw   string
}

// BuildPageData composes the payload for SSR rendering.
func BuildPageData(basePath string, state QueryState, view catalog.View, result catalog.Result, dataDir string) PageData {
	return PageData{
		Title:         PageTitle,
		Query:         state,
		PageEndpoint:  joinBase(basePath, "/"),
		TableEndpoint: joinBase(basePath, "/products/table"),
		Category:      categorySelector(view, state),
		Table:         TablePayload(state, view, result, dataDir),
	}
}

// TablePayload prepares the table fragment payload.
func TablePayload(state QueryState, view catalog.View, result catalog.Result, dataDir string) TableData {
	payload := TableData{
		State:      string(view.State),
		SearchTerm: state.Search,
	}

	if view.State == catalog.StateNoData {
		payload.Error = MessageNoData(dataDir)
		if result.Err != nil {
			payload.ErrorDetail = result.Err.Error()
		}
		return payload
	}

	payload.Summary = Summary(view.Stats)
	if !result.Snapshot.IsZero() {
		payload.Source = &SourceView{
			Name:       result.Snapshot.Name,
			ModifiedAt: helpers.Date(result.Snapshot.ModTime, ""),
			Size:       helpers.ByteSize(result.Snapshot.Size),
			Records:    result.Products.Len(),
		}
	}
	if view.State == catalog.StateNoMatches {
		payload.EmptyMessage = MessageNoMatches
		return payload
	}

	payload.Columns = make([]ColumnView, 0, len(view.Table.Columns))
	for _, col := range view.Table.Columns {
		payload.Columns = append(payload.Columns, ColumnView{Field: col.Field, Label: col.Label, Kind: string(col.Kind)})
	}
	payload.Rows = make([]RowView, 0, view.Table.Len())
	for _, row := range view.Table.Rows {
		cells := make([]CellView, 0, len(row.Cells))
		for i, value := range row.Cells {
			cells = append(cells, toCellView(view.Table.Columns[i], value, payload.SearchTerm))
		}
		payload.Rows = append(payload.Rows, RowView{Cells: cells})
	}
	return payload
}

func categorySelector(view catalog.View, state QueryState) CategorySelector {
	if view.State == catalog.StateNoData {
		return CategorySelector{}
	}
	if !view.Categories.Available {
		return CategorySelector{Note: MessageCategoryUnavailable}
	}

	selected := state.Category
	if catalog.IsAllCategories(selected) {
		selected = ""
	}
	options := make([]SelectOption, 0, len(view.Categories.Options)+1)
	options = append(options, SelectOption{
		Value:    catalog.AllCategories,
		Label:    AllCategoriesLabel,
		Selected: selected == "",
	})
	for _, opt := range view.Categories.Options {
		if opt.Value == "" {
			continue
		}
		options = append(options, SelectOption{
			Value:    opt.Value,
			Label:    CategoryOptionLabel(opt),
			Selected: opt.Value == selected,
		})
	}
	return CategorySelector{
		Available:  true,
		Options:    options,
		TotalLabel: CategoryTotal(view.Categories.Total),
	}
}

func toCellView(col catalog.Column, value catalog.Value, term string) CellView {
	cell := CellView{Kind: string(col.Kind)}
	switch col.Kind {
	case catalog.ColumnTags:
		items := value.Items()
		cell.Tags = make([]TagView, 0, len(items))
		for _, item := range items {
			cell.Tags = append(cell.Tags, TagView{Text: item, Empty: item == ""})
		}
	case catalog.ColumnLink:
		raw := strings.TrimSpace(value.String())
		if raw == "" {
			return cell
		}
		text, title := LinkText, LinkHelp
		if col.Field == catalog.FieldImageURL {
			text, title = ImageText, ImageHelp
		}
		cell.Link = &LinkView{
			Href:  helpers.SafeLink(raw),
			Text:  text,
			Title: title,
			Safe:  helpers.IsSafeLink(raw),
			Raw:   raw,
		}
	default:
		cell.Text = value.String()
		if col.Field == catalog.FieldName {
			cell.Segments = helpers.HighlightSegments(cell.Text, term)
		}
	}
	return cell
}

func joinBase(base, suffix string) string {
	base = strings.TrimRight(base, "/")
	if suffix == "/" {
		if base == "" {
			return "/"
		}
		return base + "/"
	}
	if !strings.HasPrefix(suffix, "/") {
		suffix = "/" + suffix
	}
	return base + suffix
}
