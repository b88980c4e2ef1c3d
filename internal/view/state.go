// Package view holds the ephemeral per-view interaction state —
// search, category filter, sort, drill-down — and projects the record
// set into display-ready rows.
package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"kina/internal/hierarchy"
	"kina/internal/model"
)

// SortKey selects the column a view sorts by.
type SortKey string

// Sortable columns.
const (
	SortByName       SortKey = "name"
	SortByCategory   SortKey = "category"
	SortByAlloc2024  SortKey = "allocation2024"
	SortByAlloc2025  SortKey = "allocation2025"
	SortByAlloc2026  SortKey = "allocation2026"
)

// SortDirection orders a sorted view.
type SortDirection int

// Sort directions.
const (
	SortDescending SortDirection = iota
	SortAscending
)

var collator = collate.New(language.English, collate.IgnoreCase)

// State is the mutable interaction state for one drill-capable view.
// It is owned by a single view and never shared, so no locking is
// needed. The zero value plus NewState's defaults is ready to use.
type State struct {
	SearchTerm         string
	SelectedCategories map[model.Category]struct{}
	SortKey            SortKey
	SortDirection      SortDirection

	// drillID is the single-level drill-down target. Drilling while
	// already drilled is not a direct transition: the user backs out
	// first. Empty means the root-level view.
	drillID string
}

// NewState returns interaction state with the default sort (2026
// allocation, descending) and no filters.
func NewState() *State {
	return &State{
		SelectedCategories: make(map[model.Category]struct{}),
		SortKey:            SortByAlloc2026,
		SortDirection:      SortDescending,
	}
}

// ToggleCategory adds or removes a category from the filter set.
func (s *State) ToggleCategory(c model.Category) {
	if _, on := s.SelectedCategories[c]; on {
		delete(s.SelectedCategories, c)
	} else {
		s.SelectedCategories[c] = struct{}{}
	}
}

// CategorySelected reports whether c passes the category filter. An
// empty selection means "no filter" and behaves exactly like all
// categories selected.
func (s *State) CategorySelected(c model.Category) bool {
	if len(s.SelectedCategories) == 0 {
		return true
	}
	_, on := s.SelectedCategories[c]
	return on
}

// ToggleSort flips direction when key is already active, otherwise
// switches to key with descending order.
func (s *State) ToggleSort(key SortKey) {
	if s.SortKey == key {
		if s.SortDirection == SortDescending {
			s.SortDirection = SortAscending
		} else {
			s.SortDirection = SortDescending
		}
		return
	}
	s.SortKey = key
	s.SortDirection = SortDescending
}

// DrillInto narrows the view to id's children. Search and drilling are
// mutually exclusive contexts, so the search term is cleared; category
// and sort state survive. Drilling while already drilled is refused.
func (s *State) DrillInto(id string) bool {
	if s.drillID != "" {
		return false
	}
	s.drillID = id
	s.SearchTerm = ""
	return true
}

// DrillUp returns to the root-level view. Filter and sort state are
// untouched — only the data scope changes.
func (s *State) DrillUp() {
	s.drillID = ""
}

// Reset clears the drill scope, search term, and category filter. Sort
// state is kept.
func (s *State) Reset() {
	s.drillID = ""
	s.SearchTerm = ""
	s.SelectedCategories = make(map[model.Category]struct{})
}

// Drilled returns the current drill-down target id, or "" at root.
func (s *State) Drilled() string {
	return s.drillID
}

// ApplyFilters returns the records matching both the search term
// (case-insensitive substring over name and description) and the
// category selection, preserving input order. Sorting is a separate,
// explicit step.
func (s *State) ApplyFilters(records []model.BudgetRecord) []model.BudgetRecord {
	needle := strings.ToLower(strings.TrimSpace(s.SearchTerm))

	var out []model.BudgetRecord
	for _, r := range records {
		if !s.CategorySelected(r.Category) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.Name), needle) &&
			!strings.Contains(strings.ToLower(r.Description), needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ApplySort returns a new slice ordered by the active sort key. The
// sort is stable: many records share identical allocations, and equal
// rows must not shuffle across re-renders. Name and category compare
// with locale-aware collation, allocations numerically.
func (s *State) ApplySort(records []model.BudgetRecord) []model.BudgetRecord {
	out := make([]model.BudgetRecord, len(records))
	copy(out, records)

	less := s.lessFunc()
	sort.SliceStable(out, func(i, j int) bool {
		if s.SortDirection == SortAscending {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

func (s *State) lessFunc() func(a, b model.BudgetRecord) bool {
	switch s.SortKey {
	case SortByName:
		return func(a, b model.BudgetRecord) bool {
			return collator.CompareString(a.Name, b.Name) < 0
		}
	case SortByCategory:
		return func(a, b model.BudgetRecord) bool {
			return collator.CompareString(string(a.Category), string(b.Category)) < 0
		}
	case SortByAlloc2024:
		return func(a, b model.BudgetRecord) bool { return a.Allocation2024 < b.Allocation2024 }
	case SortByAlloc2025:
		return func(a, b model.BudgetRecord) bool { return a.Allocation2025 < b.Allocation2025 }
	default:
		return func(a, b model.BudgetRecord) bool { return a.Allocation2026 < b.Allocation2026 }
	}
}

// Rows projects the current interaction state into the exact ordered
// records a view should render. Drilled views show the target's direct
// children (sorted, unfiltered — children are already a narrow scope);
// the root view shows the filtered, sorted record set.
func (s *State) Rows(records []model.BudgetRecord, resolver *hierarchy.Resolver) []model.BudgetRecord {
	if s.drillID != "" {
		return s.ApplySort(resolver.ChildrenOf(s.drillID))
	}
	return s.ApplySort(s.ApplyFilters(records))
}
