// Package metrics provides pure, stateless computations over budget
// records. Every function is deterministic over its inputs.
package metrics

import (
	"sort"

	"kina/internal/model"
)

// GrowthPercent returns the percentage change from previous to
// current. ok is false when previous is zero (a new line item with no
// prior-year baseline); callers render a placeholder rather than ever
// seeing Inf or NaN.
func GrowthPercent(current, previous int64) (pct float64, ok bool) {
	if previous == 0 {
		return 0, false
	}
	return float64(current-previous) / float64(previous) * 100, true
}

// PerCapita returns allocation divided by population. ok is false when
// population is unknown or non-positive.
func PerCapita(allocation, population int64) (float64, bool) {
	if population <= 0 {
		return 0, false
	}
	return float64(allocation) / float64(population), true
}

// CategoryTotal sums the year's allocation over the category's root
// records only. Counting non-roots too would double-count itemized
// detail against its parent's own figure; callers that really want
// every matching record use CategoryTotalAll.
func CategoryTotal(records []model.BudgetRecord, category model.Category, year model.Year) int64 {
	var total int64
	for _, r := range records {
		if r.Category == category && r.IsRoot() {
			total += r.Allocation(year)
		}
	}
	return total
}

// CategoryTotalAll sums the year's allocation over every record of the
// category, roots and descendants alike. Only meaningful where parent
// and child figures are known not to overlap.
func CategoryTotalAll(records []model.BudgetRecord, category model.Category, year model.Year) int64 {
	var total int64
	for _, r := range records {
		if r.Category == category {
			total += r.Allocation(year)
		}
	}
	return total
}

// TopN returns the n largest records by the year's allocation,
// descending. Ties keep first-seen input order so repeated calls are
// identical.
func TopN(records []model.BudgetRecord, year model.Year, n int) []model.BudgetRecord {
	if n <= 0 {
		return nil
	}
	out := make([]model.BudgetRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Allocation(year) > out[j].Allocation(year)
	})
	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}

// NationalPerCapita returns total 2026 Sector spending divided by
// total Province population. This is a single aggregate ratio for the
// whole country, distinct from any one province's per-capita figure.
// ok is false when no province population is present.
func NationalPerCapita(records []model.BudgetRecord) (float64, bool) {
	spend := CategoryTotal(records, model.CategorySector, model.Year2026)
	var population int64
	for _, r := range records {
		if r.Category == model.CategoryProvince && r.IsRoot() {
			population += r.Population
		}
	}
	return PerCapita(spend, population)
}

// ShareOfTotal returns value as a percentage of total, or 0 when the
// total is zero.
func ShareOfTotal(value, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(value) / float64(total) * 100
}

// ProvincePerCapita holds one province's allocation for a year spread
// over its population, for the map view's equity banding.
type ProvincePerCapita struct {
	Record    model.BudgetRecord
	PerCapita float64
	Known     bool
}

// ProvincePerCapitaSeries computes per-capita figures for every
// Province root, sorted descending with unknown populations last.
// Ties and unknowns keep input order.
func ProvincePerCapitaSeries(records []model.BudgetRecord, year model.Year) []ProvincePerCapita {
	var series []ProvincePerCapita
	for _, r := range records {
		if r.Category != model.CategoryProvince || !r.IsRoot() {
			continue
		}
		pc, ok := PerCapita(r.Allocation(year), r.Population)
		series = append(series, ProvincePerCapita{Record: r, PerCapita: pc, Known: ok})
	}
	sort.SliceStable(series, func(i, j int) bool {
		if series[i].Known != series[j].Known {
			return series[i].Known
		}
		return series[i].PerCapita > series[j].PerCapita
	})
	return series
}

// YearSeries returns the record's allocations across all covered
// years, oldest first.
func YearSeries(r model.BudgetRecord) []int64 {
	out := make([]int64, len(model.Years))
	for i, y := range model.Years {
		out[i] = r.Allocation(y)
	}
	return out
}
