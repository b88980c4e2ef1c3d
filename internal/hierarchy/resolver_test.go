package hierarchy

import (
	"errors"
	"fmt"
	"testing"

	"kina/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []model.BudgetRecord {
	return []model.BudgetRecord{
		{ID: "S1", Name: "Education", Category: model.CategorySector, Allocation2026: 100},
		{ID: "A1", Name: "Teachers", ParentID: "S1", Category: model.CategoryAgency, Allocation2026: 40},
		{ID: "A2", Name: "TFF Subsidy", ParentID: "S1", Category: model.CategoryAgency, Allocation2026: 35},
		{ID: "P1", Name: "Morobe", Category: model.CategoryProvince, Allocation2026: 200},
		{ID: "D1", Name: "Lae", ParentID: "P1", Category: model.CategoryDistrict, Allocation2026: 10},
		{ID: "D2", Name: "Bulolo", ParentID: "P1", Category: model.CategoryDistrict, Allocation2026: 10},
		{ID: "G1", Name: "Nadzab Phase 2", ParentID: "P1", Category: model.CategoryAgency, Allocation2026: 50},
		{ID: "R1", Name: "GST", Category: model.CategoryRevenue, Allocation2026: 300},
	}
}

func TestChildrenOf(t *testing.T) {
	r := NewResolver(testRecords())

	kids := r.ChildrenOf("S1")
	require.Len(t, kids, 2)
	assert.Equal(t, "A1", kids[0].ID)
	assert.Equal(t, "A2", kids[1].ID)

	// Province children mix District and Agency records.
	kids = r.ChildrenOf("P1")
	require.Len(t, kids, 3)
	assert.Equal(t, "D1", kids[0].ID)
	assert.Equal(t, "G1", kids[2].ID)

	assert.Empty(t, r.ChildrenOf("A1"), "leaf has no children")
	assert.Empty(t, r.ChildrenOf("nope"), "unknown id yields empty, not error")
}

func TestRootsOf(t *testing.T) {
	r := NewResolver(testRecords())

	roots := r.RootsOf(model.CategorySector)
	require.Len(t, roots, 1)
	assert.Equal(t, "S1", roots[0].ID)

	// Agencies exist only as children here.
	assert.Empty(t, r.RootsOf(model.CategoryAgency))
}

func TestSubtreeTotalExcludesOwnField(t *testing.T) {
	r := NewResolver(testRecords())

	total, err := r.SubtreeTotal("S1", model.Year2026)
	require.NoError(t, err)
	assert.Equal(t, int64(75), total, "children sum, not the parent's independent 100")

	total, err = r.SubtreeTotal("P1", model.Year2026)
	require.NoError(t, err)
	assert.Equal(t, int64(70), total)

	total, err = r.SubtreeTotal("A1", model.Year2026)
	require.NoError(t, err)
	assert.Zero(t, total, "leaf subtree is empty")
}

func TestSubtreeTotalOrderIndependent(t *testing.T) {
	recs := testRecords()
	reversed := make([]model.BudgetRecord, len(recs))
	for i, rec := range recs {
		reversed[len(recs)-1-i] = rec
	}

	a, err := NewResolver(recs).SubtreeTotal("P1", model.Year2026)
	require.NoError(t, err)
	b, err := NewResolver(reversed).SubtreeTotal("P1", model.Year2026)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSubtreeTotalDeepChain(t *testing.T) {
	var recs []model.BudgetRecord
	recs = append(recs, model.BudgetRecord{ID: "n0", Category: model.CategorySector})
	for i := 1; i <= 500; i++ {
		recs = append(recs, model.BudgetRecord{
			ID:             fmt.Sprintf("n%d", i),
			ParentID:       fmt.Sprintf("n%d", i-1),
			Category:       model.CategorySector,
			Allocation2026: 1,
		})
	}

	total, err := NewResolver(recs).SubtreeTotal("n0", model.Year2026)
	require.NoError(t, err)
	assert.Equal(t, int64(500), total)
}

func TestSubtreeTotalDetectsCycle(t *testing.T) {
	recs := []model.BudgetRecord{
		{ID: "x", ParentID: "z", Category: model.CategorySector, Allocation2026: 1},
		{ID: "y", ParentID: "x", Category: model.CategorySector, Allocation2026: 1},
		{ID: "z", ParentID: "y", Category: model.CategorySector, Allocation2026: 1},
	}

	_, err := NewResolver(recs).SubtreeTotal("x", model.Year2026)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedHierarchy))
}
