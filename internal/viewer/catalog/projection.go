package catalog

import (
	"strings"

	"github.com/goccy/go-json"
)

// ColumnKind tells renderers how to present a column.
type ColumnKind string

const (
	// ColumnText renders the value as text.
	ColumnText ColumnKind = "text"
	// ColumnTags renders the value as a list of tags.
	ColumnTags ColumnKind = "tags"
	// ColumnLink renders the value as an actionable link.
	ColumnLink ColumnKind = "link"
)

// Column is one projected output column.
type Column struct {
	Field string     `json:"field"`
	Label string     `json:"label"`
	Kind  ColumnKind `json:"kind"`
}

// displayFields is the fixed order of projected columns.
var displayFields = []string{
	FieldName,
	FieldSKU,
	FieldItemNumber,
	FieldPrice,
	FieldCategory,
	FieldBrand,
	FieldAvailability,
	FieldSales,
	FieldFitment,
	FieldOENumber,
	FieldMaterial,
	FieldColor,
	FieldInstallation,
	FieldURL,
	FieldImageURL,
}

var columnLabels = map[string]string{
	FieldName:              "Name (产品名称)",
	FieldSKU:               "SKU",
	FieldItemNumber:        "Item Number (物料号)",
	FieldPrice:             "Price (价格)",
	FieldOriginalPrice:     "Original Price (原价)",
	FieldCategory:          "Category (分类)",
	FieldBrand:             "Brand (品牌)",
	FieldAvailability:      "Availability (库存状态)",
	FieldSales:             "Sales (销量)",
	FieldReviewCount:       "Review Count (评论数)",
	FieldReviewRating:      "Review Rating (评分)",
	FieldWarranty:          "Warranty (质保)",
	FieldFitment:           "Fitment (适配车型)",
	FieldOENumber:          "OE Number (OE号)",
	FieldInterchangeNumber: "Interchange Number (替换号)",
	FieldURL:               "Product URL (产品链接)",
	FieldImageURL:          "Image URL (图片链接)",
	FieldMaterial:          "Material (材质)",
	FieldColor:             "Color (颜色)",
	FieldInstallation:      "Installation (安装方式)",
}

// DisplayFields returns the projected field order.
func DisplayFields() []string {
	out := make([]string, len(displayFields))
	copy(out, displayFields)
	return out
}

// Label returns the human readable label of a field. Unknown fields keep their name.
func Label(field string) string {
	if label, ok := columnLabels[field]; ok {
		return label
	}
	return field
}

func columnKind(field string) ColumnKind {
	switch field {
	case FieldSKU, FieldFitment:
		return ColumnTags
	case FieldURL, FieldImageURL:
		return ColumnLink
	default:
		return ColumnText
	}
}

// Row holds the cells of one display row, aligned with DisplayTable.Columns.
type Row struct {
	Cells []Value
}

// DisplayTable is the projected, renamed view of a product set.
type DisplayTable struct {
	Columns []Column
	Rows    []Row
}

// Len returns the number of rows.
func (t DisplayTable) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the index of the column with the given label, or -1.
func (t DisplayTable) ColumnIndex(label string) int {
	for i, col := range t.Columns {
		if col.Label == label {
			return i
		}
	}
	return -1
}

// Cell returns the value of row i under label.
func (t DisplayTable) Cell(i int, label string) (Value, bool) {
	idx := t.ColumnIndex(label)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return Absent(), false
	}
	return t.Rows[i].Cells[idx], true
}

// Maps returns each row as a label to value mapping.
func (t DisplayTable) Maps() []map[string]Value {
	out := make([]map[string]Value, 0, len(t.Rows))
	for _, row := range t.Rows {
		m := make(map[string]Value, len(t.Columns))
		for i, col := range t.Columns {
			m[col.Label] = row.Cells[i]
		}
		out = append(out, m)
	}
	return out
}

// MarshalJSON encodes the table as its columns plus label keyed rows.
func (t DisplayTable) MarshalJSON() ([]byte, error) {
	columns := t.Columns
	if columns == nil {
		columns = []Column{}
	}
	return json.Marshal(struct {
		Columns []Column           `json:"columns"`
		Rows    []map[string]Value `json:"rows"`
	}{
		Columns: columns,
		Rows:    t.Maps(),
	})
}

// MarshalYAML encodes the table like MarshalJSON.
func (t DisplayTable) MarshalYAML() (any, error) {
	columns := t.Columns
	if columns == nil {
		columns = []Column{}
	}
	return struct {
		Columns []Column           `yaml:"columns"`
		Rows    []map[string]Value `yaml:"rows"`
	}{
		Columns: columns,
		Rows:    t.Maps(),
	}, nil
}

// Project selects the display columns present in the schema, renames them and normalises
// sku and fitment into tag sequences.
func Project(set ProductSet) DisplayTable {
	schema := set.Schema()
	fields := make([]string, 0, len(displayFields))
	columns := make([]Column, 0, len(displayFields))
	for _, field := range displayFields {
		if !schema.Has(field) {
			continue
		}
		fields = append(fields, field)
		columns = append(columns, Column{Field: field, Label: Label(field), Kind: columnKind(field)})
	}

	rows := make([]Row, 0, set.Len())
	for _, rec := range set.records {
		cells := make([]Value, len(fields))
		for i, field := range fields {
			value := rec.Get(field)
			switch field {
			case FieldSKU:
				value = SplitSKU(value)
			case FieldFitment:
				value = SplitFitment(value)
			}
			cells[i] = value
		}
		rows = append(rows, Row{Cells: cells})
	}
	return DisplayTable{Columns: columns, Rows: rows}
}

// SplitSKU splits a comma separated sku list into trimmed tags, dropping empty segments.
// Absent values yield an empty sequence.
func SplitSKU(value Value) Value {
	text := joinedText(value, ",")
	tags := make([]string, 0)
	for _, part := range strings.Split(text, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return Value{kind: KindSequence, items: tags}
}

// SplitFitment splits a semicolon separated fitment list into trimmed tags, keeping empty
// segments. Absent values and empty text yield an empty sequence.
func SplitFitment(value Value) Value {
	text := joinedText(value, ";")
	if text == "" {
		return Value{kind: KindSequence, items: []string{}}
	}
	parts := strings.Split(text, ";")
	tags := make([]string, len(parts))
	for i, part := range parts {
		tags[i] = strings.TrimSpace(part)
	}
	return Value{kind: KindSequence, items: tags}
}

func joinedText(value Value, sep string) string {
	switch value.Kind() {
	case KindScalar:
		return value.text
	case KindSequence:
		return strings.Join(value.items, sep)
	default:
		return ""
	}
}
