package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func names(set ProductSet) []string {
	out := make([]string, 0, set.Len())
	for _, rec := range set.Records() {
		out = append(out, rec.Get(FieldName).String())
	}
	return out
}

func TestCategories(t *testing.T) {
	t.Parallel()

	set := mustParse(t, `[
		{"name": "a", "category": "Brakes"},
		{"name": "b", "category": "Alpha"},
		{"name": "c", "category": "Brakes"},
		{"name": "d", "category": null},
		{"name": "e"}
	]`)

	index := Categories(set)
	if !index.Available {
		t.Fatalf("expected categories to be available")
	}
	want := []CategoryOption{{Value: "Alpha", Count: 1}, {Value: "Brakes", Count: 2}}
	if diff := cmp.Diff(want, index.Options); diff != "" {
		t.Errorf("unexpected options (-want +got):\n%s", diff)
	}
	if index.Total != 2 {
		t.Errorf("expected total 2, got %d", index.Total)
	}
	if index.Count("Brakes") != 2 || index.Count("Missing") != 0 {
		t.Errorf("unexpected counts: %+v", index)
	}
}

func TestCategoriesUnavailable(t *testing.T) {
	t.Parallel()

	set := mustParse(t, `[{"name": "a"}]`)
	index := Categories(set)
	if index.Available {
		t.Fatalf("expected categories to be unavailable")
	}
	if len(index.Options) != 0 || index.Total != 0 {
		t.Errorf("expected no options, got %+v", index)
	}

	if got := FilterCategory(set, "Brakes"); got.Len() != 1 {
		t.Errorf("expected filter to be skipped, got %d records", got.Len())
	}
}

func TestFilterCategorySubset(t *testing.T) {
	t.Parallel()

	set := mustParse(t, brakesSnapshot)
	for _, option := range Categories(set).Options {
		filtered := FilterCategory(set, option.Value)
		if filtered.Len() != option.Count {
			t.Errorf("category %s: expected %d records, got %d", option.Value, option.Count, filtered.Len())
		}
		for _, rec := range filtered.Records() {
			if got, _ := rec.Get(FieldCategory).Text(); got != option.Value {
				t.Errorf("category %s: record with category %q leaked", option.Value, got)
			}
		}
		if diff := cmp.Diff(set.Schema().Fields(), filtered.Schema().Fields()); diff != "" {
			t.Errorf("filtering changed the schema (-want +got):\n%s", diff)
		}
	}

	for _, all := range []string{"", AllCategories} {
		if got := FilterCategory(set, all); got.Len() != set.Len() {
			t.Errorf("selection %q: expected all records, got %d", all, got.Len())
		}
	}
	if got := FilterCategory(set, "brakes"); got.Len() != 0 {
		t.Errorf("expected exact match only, got %d records", got.Len())
	}
}

func TestSearchName(t *testing.T) {
	t.Parallel()

	set := mustParse(t, `[
		{"name": "Front Brake PAD"},
		{"name": "Rear pad (2.0)"},
		{"name": ["Straße", "Kit"]},
		{"name": null},
		{"sku": "no-name"}
	]`)

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "empty term", term: "", want: []string{"Front Brake PAD", "Rear pad (2.0)", "Straße, Kit", "", ""}},
		{name: "case insensitive", term: "pad", want: []string{"Front Brake PAD", "Rear pad (2.0)"}},
		{name: "literal not pattern", term: "(2.0)", want: []string{"Rear pad (2.0)"}},
		{name: "unicode folding", term: "STRASSE", want: []string{"Straße, Kit"}},
		{name: "sequence joined", term: "e, k", want: []string{"Straße, Kit"}},
		{name: "no match", term: "wiper", want: []string{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := names(SearchName(set, tc.term))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("unexpected names (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSearchNameWithoutNameField(t *testing.T) {
	t.Parallel()

	set := mustParse(t, `[{"sku": "a"}, {"sku": "b"}]`)
	if got := SearchName(set, "zzz"); got.Len() != 2 {
		t.Errorf("expected search to be skipped, got %d records", got.Len())
	}
}
