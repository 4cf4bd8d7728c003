package catalog

import "strings"

// Stats summarises a filtered product set.
type Stats struct {
	RecordCount             int `json:"record_count" yaml:"record_count"`
	DistinctIdentifierCount int `json:"distinct_identifier_count" yaml:"distinct_identifier_count"`
}

// ComputeStats counts records and distinct OE numbers. It must run before projection so the
// identifier field is still available.
func ComputeStats(set ProductSet) Stats {
	return Stats{
		RecordCount:             set.Len(),
		DistinctIdentifierCount: len(identifierSet(set)),
	}
}

// DistinctIdentifiers lists the distinct trimmed OE numbers of the set in lexical order.
func DistinctIdentifiers(set ProductSet) []string {
	return sortedKeys(identifierSet(set))
}

// identifierSet collects trimmed, non-empty oe_number texts. Comparison is exact, so "A"
// and "a" are distinct.
func identifierSet(set ProductSet) map[string]struct{} {
	ids := make(map[string]struct{})
	add := func(raw string) {
		if id := strings.TrimSpace(raw); id != "" {
			ids[id] = struct{}{}
		}
	}
	for _, rec := range set.records {
		value := rec.Get(FieldOENumber)
		switch value.Kind() {
		case KindSequence:
			for _, item := range value.items {
				add(item)
			}
		case KindScalar:
			add(value.text)
		}
	}
	return ids
}
