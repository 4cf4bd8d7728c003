package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// AllCategories is the selector sentinel meaning "no category filter".
const AllCategories = "__all__"

// CategoryOption is one selectable category with its count in the unfiltered set.
type CategoryOption struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoryIndex enumerates the categories of a product set.
type CategoryIndex struct {
	Available bool             `json:"available"`
	Options   []CategoryOption `json:"options"`
	Total     int              `json:"total"`
}

// Categories counts the distinct category values of the set, sorted lexically. Available is
// false when no record carries a category field.
func Categories(set ProductSet) CategoryIndex {
	if !set.Schema().Has(FieldCategory) {
		return CategoryIndex{Options: []CategoryOption{}}
	}

	counts := make(map[string]int)
	for _, rec := range set.records {
		value, ok := rec.Get(FieldCategory).Text()
		if !ok {
			continue
		}
		counts[value]++
	}

	options := make([]CategoryOption, 0, len(counts))
	for _, value := range sortedKeys(counts) {
		options = append(options, CategoryOption{Value: value, Count: counts[value]})
	}
	return CategoryIndex{
		Available: true,
		Options:   options,
		Total:     len(options),
	}
}

// Count returns the occurrence count of the category, or 0 when unknown.
func (c CategoryIndex) Count(category string) int {
	for _, opt := range c.Options {
		if opt.Value == category {
			return opt.Count
		}
	}
	return 0
}

// IsAllCategories reports whether the selection means "no category filter".
func IsAllCategories(category string) bool {
	return category == "" || category == AllCategories
}

// FilterCategory keeps records whose category equals the selection exactly. The set is
// returned unchanged for the all-categories sentinel or when the schema lacks a category
// field.
func FilterCategory(set ProductSet, category string) ProductSet {
	if IsAllCategories(category) || !set.Schema().Has(FieldCategory) {
		return set
	}
	return set.filter(func(rec *Record) bool {
		value, ok := rec.Get(FieldCategory).Text()
		return ok && value == category
	})
}

// SearchName keeps records whose name contains term, ignoring case. An empty term or a
// schema without a name field leaves the set unchanged.
func SearchName(set ProductSet, term string) ProductSet {
	if term == "" || !set.Schema().Has(FieldName) {
		return set
	}
	folder := cases.Fold()
	needle := folder.String(term)
	return set.filter(func(rec *Record) bool {
		return strings.Contains(folder.String(rec.Get(FieldName).String()), needle)
	})
}
