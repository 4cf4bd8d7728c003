package catalog

import "strings"

// State describes what a View holds.
type State string

const (
	// StateReady means at least one row matched.
	StateReady State = "ready"
	// StateNoData means the snapshot was missing, unreadable or empty.
	StateNoData State = "no_data"
	// StateNoMatches means the filters removed every record.
	StateNoMatches State = "no_matches"
)

// Note flags a degradation that renderers should explain to the user.
type Note string

// NoteCategoryUnavailable is raised when the snapshot has no category field.
const NoteCategoryUnavailable Note = "category_unavailable"

// Query is the user's filter selection.
type Query struct {
	Category string `json:"category"`
	Search   string `json:"q" yaml:"q"`
}

// Normalize maps the all-categories sentinel to the empty selection.
func (q Query) Normalize() Query {
	if IsAllCategories(q.Category) {
		q.Category = ""
	}
	return q
}

// IsZero reports whether no filter is selected.
func (q Query) IsZero() bool {
	q = q.Normalize()
	return q.Category == "" && strings.TrimSpace(q.Search) == ""
}

// View is the result of one interaction with a product set.
type View struct {
	State      State         `json:"state"`
	Query      Query         `json:"query"`
	Categories CategoryIndex `json:"categories"`
	Notes      []Note        `json:"notes"`
	Stats      Stats         `json:"stats"`
	Table      DisplayTable  `json:"table"`
}

// HasNote reports whether the view carries the note.
func (v View) HasNote(note Note) bool {
	for _, n := range v.Notes {
		if n == note {
			return true
		}
	}
	return false
}

// Browse applies the category filter, the name search, the statistics and the projection to
// set, in that order. The input set is never modified.
func Browse(set ProductSet, q Query) View {
	q = q.Normalize()
	view := View{
		Query:      q,
		Categories: CategoryIndex{Options: []CategoryOption{}},
		Notes:      []Note{},
		Table:      DisplayTable{Columns: []Column{}, Rows: []Row{}},
	}
	if set.Empty() {
		view.State = StateNoData
		return view
	}

	view.Categories = Categories(set)
	if !view.Categories.Available {
		view.Notes = append(view.Notes, NoteCategoryUnavailable)
	}

	filtered := FilterCategory(set, q.Category)
	filtered = SearchName(filtered, q.Search)

	view.Stats = ComputeStats(filtered)
	view.Table = Project(filtered)
	if filtered.Empty() {
		view.State = StateNoMatches
	} else {
		view.State = StateReady
	}
	return view
}
