package metrics

import (
	"testing"

	"kina/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthPercent(t *testing.T) {
	tests := []struct {
		name     string
		current  int64
		previous int64
		want     float64
		ok       bool
	}{
		{"ten percent up", 110, 100, 10.0, true},
		{"ten percent down", 90, 100, -10.0, true},
		{"flat", 100, 100, 0, true},
		{"zero baseline", 50, 0, 0, false},
		{"zero over zero", 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GrowthPercent(tt.current, tt.previous)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestPerCapita(t *testing.T) {
	v, ok := PerCapita(1_200_000_000, 970_170)
	require.True(t, ok)
	assert.InDelta(t, 1236.9, v, 0.1)

	_, ok = PerCapita(100, 0)
	assert.False(t, ok)
	_, ok = PerCapita(100, -5)
	assert.False(t, ok)
}

func TestCategoryTotalRootsOnly(t *testing.T) {
	records := []model.BudgetRecord{
		{ID: "S1", Category: model.CategorySector, Allocation2026: 100},
		{ID: "S1-A", ParentID: "S1", Category: model.CategorySector, Allocation2026: 40},
		{ID: "S2", Category: model.CategorySector, Allocation2026: 200},
		{ID: "R1", Category: model.CategoryRevenue, Allocation2026: 999},
	}

	assert.Equal(t, int64(300), CategoryTotal(records, model.CategorySector, model.Year2026),
		"roots only, no double counting of itemized detail")
	assert.Equal(t, int64(340), CategoryTotalAll(records, model.CategorySector, model.Year2026))
}

func TestTopNDeterministicTies(t *testing.T) {
	records := []model.BudgetRecord{
		{ID: "a", Allocation2026: 10},
		{ID: "b", Allocation2026: 30},
		{ID: "c", Allocation2026: 10},
		{ID: "d", Allocation2026: 20},
	}

	first := TopN(records, model.Year2026, 3)
	second := TopN(records, model.Year2026, 3)
	require.Len(t, first, 3)
	assert.Equal(t, first, second)

	assert.Equal(t, "b", first[0].ID)
	assert.Equal(t, "d", first[1].ID)
	assert.Equal(t, "a", first[2].ID, "tie broken by input order, a before c")
}

func TestTopNBounds(t *testing.T) {
	records := []model.BudgetRecord{{ID: "a", Allocation2026: 1}}

	assert.Nil(t, TopN(records, model.Year2026, 0))
	assert.Len(t, TopN(records, model.Year2026, 5), 1)
}

func TestTopNDoesNotMutateInput(t *testing.T) {
	records := []model.BudgetRecord{
		{ID: "a", Allocation2026: 1},
		{ID: "b", Allocation2026: 2},
	}

	TopN(records, model.Year2026, 2)
	assert.Equal(t, "a", records[0].ID)
}

func TestNationalPerCapita(t *testing.T) {
	records := []model.BudgetRecord{
		{ID: "S1", Category: model.CategorySector, Allocation2026: 3000},
		{ID: "S2", Category: model.CategorySector, Allocation2026: 1000},
		{ID: "P1", Category: model.CategoryProvince, Allocation2026: 500, Population: 1500},
		{ID: "P2", Category: model.CategoryProvince, Allocation2026: 500, Population: 500},
	}

	v, ok := NationalPerCapita(records)
	require.True(t, ok)
	assert.InDelta(t, 2.0, v, 1e-9)

	_, ok = NationalPerCapita([]model.BudgetRecord{
		{ID: "S1", Category: model.CategorySector, Allocation2026: 3000},
	})
	assert.False(t, ok, "no province population known")
}

func TestProvincePerCapitaSeries(t *testing.T) {
	records := []model.BudgetRecord{
		{ID: "P1", Category: model.CategoryProvince, Allocation2026: 100, Population: 100}, // 1.0
		{ID: "P2", Category: model.CategoryProvince, Allocation2026: 300, Population: 100}, // 3.0
		{ID: "P3", Category: model.CategoryProvince, Allocation2026: 100},                  // unknown
		{ID: "D1", ParentID: "P1", Category: model.CategoryDistrict, Allocation2026: 50},
	}

	series := ProvincePerCapitaSeries(records, model.Year2026)
	require.Len(t, series, 3)
	assert.Equal(t, "P2", series[0].Record.ID)
	assert.Equal(t, "P1", series[1].Record.ID)
	assert.Equal(t, "P3", series[2].Record.ID)
	assert.False(t, series[2].Known)
}
