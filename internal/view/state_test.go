package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kina/internal/hierarchy"
	"kina/internal/model"
)

func sampleRecords() []model.BudgetRecord {
	return []model.BudgetRecord{
		{ID: "health", Name: "Health", Category: model.CategorySector, Allocation2026: 2_500_000_000, Description: "Hospitals and rural clinics"},
		{ID: "edu", Name: "Education", Category: model.CategorySector, Allocation2026: 2_500_000_000, Description: "Schools and TVET"},
		{ID: "morobe", Name: "Morobe", Category: model.CategoryProvince, Allocation2026: 1_200_000_000},
		{ID: "lae", Name: "Lae District", ParentID: "morobe", Category: model.CategoryDistrict, Allocation2026: 300_000_000},
		{ID: "connect-png", Name: "Connect PNG", Category: model.CategoryAgency, Allocation2026: 900_000_000, Description: "Road transport program"},
	}
}

func TestApplyFiltersEmptyCategorySetMatchesAll(t *testing.T) {
	s := NewState()
	got := s.ApplyFilters(sampleRecords())
	assert.Len(t, got, 5)

	s.ToggleCategory(model.CategorySector)
	got = s.ApplyFilters(sampleRecords())
	require.Len(t, got, 2)
	assert.Equal(t, "health", got[0].ID)

	// Toggling back off restores the unfiltered view.
	s.ToggleCategory(model.CategorySector)
	assert.Len(t, s.ApplyFilters(sampleRecords()), 5)
}

func TestApplyFiltersSearchesNameAndDescription(t *testing.T) {
	s := NewState()
	s.SearchTerm = "ROAD"
	got := s.ApplyFilters(sampleRecords())
	require.Len(t, got, 1)
	assert.Equal(t, "connect-png", got[0].ID)

	s.SearchTerm = "no such record"
	assert.Empty(t, s.ApplyFilters(sampleRecords()))
}

func TestApplyFiltersPreservesOrder(t *testing.T) {
	s := NewState()
	s.ToggleCategory(model.CategorySector)
	s.ToggleCategory(model.CategoryProvince)
	got := s.ApplyFilters(sampleRecords())
	require.Len(t, got, 3)
	assert.Equal(t, []string{"health", "edu", "morobe"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestApplySortStableOnTies(t *testing.T) {
	s := NewState() // default: 2026 descending
	got := s.ApplySort(sampleRecords())
	require.Len(t, got, 5)
	// health and edu tie at 2.5B; input order must hold.
	assert.Equal(t, "health", got[0].ID)
	assert.Equal(t, "edu", got[1].ID)
	assert.Equal(t, "morobe", got[2].ID)
}

func TestApplySortDoesNotMutateInput(t *testing.T) {
	s := NewState()
	in := sampleRecords()
	s.ApplySort(in)
	assert.Equal(t, "health", in[0].ID)
	assert.Equal(t, "connect-png", in[4].ID)
}

func TestToggleSortFlipsDirectionOnSameKey(t *testing.T) {
	s := NewState()
	assert.Equal(t, SortByAlloc2026, s.SortKey)
	assert.Equal(t, SortDescending, s.SortDirection)

	s.ToggleSort(SortByAlloc2026)
	assert.Equal(t, SortAscending, s.SortDirection)

	// Switching to a new key resets to descending.
	s.ToggleSort(SortByName)
	assert.Equal(t, SortByName, s.SortKey)
	assert.Equal(t, SortDescending, s.SortDirection)
}

func TestSortByNameAscending(t *testing.T) {
	s := NewState()
	s.ToggleSort(SortByName)
	s.ToggleSort(SortByName) // flip to ascending
	got := s.ApplySort(sampleRecords())
	assert.Equal(t, "connect-png", got[0].ID)
	assert.Equal(t, "edu", got[1].ID)
}

func TestDrillClearsSearchKeepsFilterAndSort(t *testing.T) {
	s := NewState()
	s.SearchTerm = "morobe"
	s.ToggleCategory(model.CategoryProvince)
	s.ToggleSort(SortByName)

	require.True(t, s.DrillInto("morobe"))
	assert.Empty(t, s.SearchTerm)
	assert.True(t, s.CategorySelected(model.CategoryProvince))
	assert.Equal(t, SortByName, s.SortKey)

	// Single-level policy: must back out before drilling elsewhere.
	assert.False(t, s.DrillInto("health"))
	assert.Equal(t, "morobe", s.Drilled())

	s.DrillUp()
	assert.Empty(t, s.Drilled())
	assert.True(t, s.CategorySelected(model.CategoryProvince))
	assert.Equal(t, SortByName, s.SortKey)
}

func TestResetClearsScopeKeepsSort(t *testing.T) {
	s := NewState()
	s.SearchTerm = "x"
	s.ToggleCategory(model.CategorySector)
	s.ToggleSort(SortByCategory)
	require.True(t, s.DrillInto("morobe"))

	s.Reset()
	assert.Empty(t, s.Drilled())
	assert.Empty(t, s.SearchTerm)
	assert.Empty(t, s.SelectedCategories)
	assert.Equal(t, SortByCategory, s.SortKey)
}

func TestRowsDrilledShowsChildren(t *testing.T) {
	records := sampleRecords()
	resolver := hierarchy.NewResolver(records)

	s := NewState()
	require.True(t, s.DrillInto("morobe"))
	got := s.Rows(records, resolver)
	require.Len(t, got, 1)
	assert.Equal(t, "lae", got[0].ID)

	s.DrillUp()
	got = s.Rows(records, resolver)
	assert.Len(t, got, 5)
}
