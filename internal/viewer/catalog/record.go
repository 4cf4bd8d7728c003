package catalog

import "sort"

// Field names recognised in product snapshots.
const (
	FieldName              = "name"
	FieldSKU               = "sku"
	FieldItemNumber        = "item_number"
	FieldPrice             = "price"
	FieldOriginalPrice     = "original_price"
	FieldCategory          = "category"
	FieldBrand             = "brand"
	FieldAvailability      = "availability"
	FieldSales             = "sales"
	FieldReviewCount       = "review_count"
	FieldReviewRating      = "review_rating"
	FieldWarranty          = "warranty"
	FieldFitment           = "fitment"
	FieldOENumber          = "oe_number"
	FieldInterchangeNumber = "interchange_number"
	FieldURL               = "url"
	FieldImageURL          = "image_url"
	FieldMaterial          = "material"
	FieldColor             = "color"
	FieldInstallation      = "installation"
)

// Record holds one product's attributes. Records are immutable after construction.
type Record struct {
	fields map[string]Value
}

// NewRecord builds a record from the provided fields. The map is copied.
func NewRecord(fields map[string]Value) *Record {
	copied := make(map[string]Value, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return &Record{fields: copied}
}

// Get returns the field value, or Absent when the key is missing.
func (r *Record) Get(field string) Value {
	if r == nil {
		return Absent()
	}
	return r.fields[field]
}

// Has reports whether the record carries the key, even with a null value.
func (r *Record) Has(field string) bool {
	if r == nil {
		return false
	}
	_, ok := r.fields[field]
	return ok
}

// Fields lists the record keys in lexical order.
func (r *Record) Fields() []string {
	if r == nil {
		return nil
	}
	return sortedKeys(r.fields)
}

// Schema is the union of keys across a snapshot. A field belongs to the schema as soon as
// one record carries it.
type Schema struct {
	fields map[string]struct{}
}

// NewSchema builds a schema from field names.
func NewSchema(fields ...string) Schema {
	set := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		set[field] = struct{}{}
	}
	return Schema{fields: set}
}

// Has reports whether the field is present in the schema.
func (s Schema) Has(field string) bool {
	_, ok := s.fields[field]
	return ok
}

// Fields lists the schema fields in lexical order.
func (s Schema) Fields() []string {
	return sortedKeys(s.fields)
}

// Len returns the number of fields.
func (s Schema) Len() int {
	return len(s.fields)
}

// ProductSet is an ordered, read-only sequence of records plus the schema of the snapshot
// it came from. Filtering produces new sets that share record pointers and keep the
// original schema.
type ProductSet struct {
	records []*Record
	schema  Schema
}

// NewProductSet builds a set in the given order and derives its schema from the records.
func NewProductSet(records []*Record) ProductSet {
	set := make(map[string]struct{})
	for _, rec := range records {
		if rec == nil {
			continue
		}
		for key := range rec.fields {
			set[key] = struct{}{}
		}
	}
	kept := make([]*Record, 0, len(records))
	for _, rec := range records {
		if rec != nil {
			kept = append(kept, rec)
		}
	}
	return ProductSet{records: kept, schema: Schema{fields: set}}
}

// Len returns the number of records.
func (p ProductSet) Len() int {
	return len(p.records)
}

// Empty reports whether the set holds no records.
func (p ProductSet) Empty() bool {
	return len(p.records) == 0
}

// At returns the record at index i.
func (p ProductSet) At(i int) *Record {
	return p.records[i]
}

// Records returns the records in order. The slice is a copy; the records are shared.
func (p ProductSet) Records() []*Record {
	out := make([]*Record, len(p.records))
	copy(out, p.records)
	return out
}

// Schema returns the schema of the originating snapshot.
func (p ProductSet) Schema() Schema {
	return p.schema
}

func (p ProductSet) filter(keep func(*Record) bool) ProductSet {
	kept := make([]*Record, 0, len(p.records))
	for _, rec := range p.records {
		if keep(rec) {
			kept = append(kept, rec)
		}
	}
	return ProductSet{records: kept, schema: p.schema}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
