package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"finitefield.org/product-viewer/internal/viewer/catalog"
	productstpl "finitefield.org/product-viewer/internal/viewer/templates/products"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
)

type showOptions struct {
	category string
	search   string
	format   string
}

// showOutput is the machine readable form of a view.
type showOutput struct {
	catalog.View `yaml:",inline"`
	Snapshot     *catalog.Snapshot `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`
	Message      string            `json:"message,omitempty" yaml:"message,omitempty"`
	Error        string            `json:"error,omitempty" yaml:"error,omitempty"`
}

func (a *app) showCmd() *cobra.Command {
	var opts showOptions
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the filtered product table",
		Example: `  viewer show --category Brakes
  viewer show --search pad --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShow(opts)
		},
	}
	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "exact category to keep ("+catalog.AllCategories+" for all)")
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "case-insensitive name substring")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTable, "output format: table, json or yaml")
	return cmd
}

func (a *app) runShow(opts showOptions) error {
	format := strings.ToLower(strings.TrimSpace(opts.format))
	switch format {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", opts.format)
	}

	result := a.newSession().Load(a.cfg.Data.Dir)
	view := catalog.Browse(result.Products, catalog.Query{
		Category: opts.category,
		Search:   opts.search,
	})

	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(a.output(view, result), "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(a.out, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(a.output(view, result)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return a.printTable(view, result)
	}
}

func (a *app) output(view catalog.View, result catalog.Result) showOutput {
	out := showOutput{View: view}
	if !result.Snapshot.IsZero() {
		snapshot := result.Snapshot
		out.Snapshot = &snapshot
	}
	switch view.State {
	case catalog.StateNoData:
		out.Message = productstpl.MessageNoData(a.cfg.Data.Dir)
		if result.Err != nil {
			out.Error = result.Err.Error()
		}
	case catalog.StateNoMatches:
		out.Message = productstpl.MessageNoMatches
	}
	return out
}

func (a *app) printTable(view catalog.View, result catalog.Result) error {
	w := a.out
	if view.State == catalog.StateNoData {
		fmt.Fprintln(w, productstpl.MessageNoData(a.cfg.Data.Dir))
		if result.Err != nil {
			fmt.Fprintln(w, mutedStyle.Render(result.Err.Error()))
		}
		return nil
	}

	if view.HasNote(catalog.NoteCategoryUnavailable) {
		fmt.Fprintln(w, mutedStyle.Render(productstpl.MessageCategoryUnavailable))
	}
	fmt.Fprintln(w, productstpl.Summary(view.Stats))
	if !result.Snapshot.IsZero() {
		fmt.Fprintln(w, mutedStyle.Render(productstpl.SourceLabel+result.Snapshot.Name))
	}
	if view.State == catalog.StateNoMatches {
		fmt.Fprintln(w, productstpl.MessageNoMatches)
		return nil
	}

	_, err := io.WriteString(w, renderTable(view.Table)+"\n")
	return err
}

func renderTable(t catalog.DisplayTable) string {
	headers := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		headers = append(headers, col.Label)
	}
	rows := make([][]string, 0, t.Len())
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row.Cells))
		for i, value := range row.Cells {
			cells = append(cells, cellText(t.Columns[i], value))
		}
		rows = append(rows, cells)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

func cellText(col catalog.Column, value catalog.Value) string {
	if col.Kind != catalog.ColumnTags {
		return value.String()
	}
	items := value.Items()
	for i, item := range items {
		if item == "" {
			items[i] = "-"
		}
	}
	return strings.Join(items, " | ")
}
