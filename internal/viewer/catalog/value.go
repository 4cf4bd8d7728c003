package catalog

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Kind discriminates the shape of a field value as ingested from a snapshot.
type Kind uint8

const (
	// KindAbsent marks a missing key or a JSON null.
	KindAbsent Kind = iota
	// KindScalar marks a single text value.
	KindScalar
	// KindSequence marks an ordered list of text values.
	KindSequence
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	default:
		return "absent"
	}
}

// Value is the normalised form of a record field. Snapshot fields are loosely typed
// (oe_number may be a string or a list), so every field is converted into one of three
// shapes when the snapshot is decoded and downstream code switches on Kind only.
type Value struct {
	kind  Kind
	text  string
	items []string
}

// Absent returns the value used for missing or null fields.
func Absent() Value {
	return Value{}
}

// Scalar wraps a single text value.
func Scalar(text string) Value {
	return Value{kind: KindScalar, text: text}
}

// Sequence wraps an ordered list of text values. The slice is copied.
func Sequence(items ...string) Value {
	copied := make([]string, len(items))
	copy(copied, items)
	return Value{kind: KindSequence, items: copied}
}

// Kind reports the value shape.
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether the value is missing or null.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// Text returns the scalar text. ok is false for absent values and sequences.
func (v Value) Text() (string, bool) {
	if v.kind != KindScalar {
		return "", false
	}
	return v.text, true
}

// Items returns a copy of the sequence elements, or nil for non-sequences.
func (v Value) Items() []string {
	if v.kind != KindSequence {
		return nil
	}
	out := make([]string, len(v.items))
	copy(out, v.items)
	return out
}

// Len returns the number of sequence elements, 1 for scalars and 0 for absent values.
func (v Value) Len() int {
	switch v.kind {
	case KindScalar:
		return 1
	case KindSequence:
		return len(v.items)
	default:
		return 0
	}
}

// String renders the value as display text. Sequences are joined with ", ".
func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return v.text
	case KindSequence:
		return strings.Join(v.items, ", ")
	default:
		return ""
	}
}

// Equal reports whether both values have the same shape and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind || v.text != other.text || len(v.items) != len(other.items) {
		return false
	}
	for i := range v.items {
		if v.items[i] != other.items[i] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes absent values as null, scalars as strings and sequences as arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindScalar:
		return json.Marshal(v.text)
	case KindSequence:
		items := v.items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	default:
		return []byte("null"), nil
	}
}

// MarshalYAML mirrors MarshalJSON for YAML encoders.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case KindScalar:
		return v.text, nil
	case KindSequence:
		return v.Items(), nil
	default:
		return nil, nil
	}
}

// UnmarshalJSON decodes any JSON value into its normalised shape.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := decodeValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func decodeValue(raw []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return Value{}, fmt.Errorf("decode value: %w", err)
	}
	return valueOf(decoded), nil
}

func valueOf(decoded any) Value {
	switch t := decoded.(type) {
	case nil:
		return Absent()
	case []any:
		items := make([]string, 0, len(t))
		for _, item := range t {
			if item == nil {
				continue
			}
			items = append(items, scalarText(item))
		}
		return Value{kind: KindSequence, items: items}
	default:
		return Scalar(scalarText(t))
	}
}

func scalarText(decoded any) string {
	switch t := decoded.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		encoded, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(encoded)
	}
}
