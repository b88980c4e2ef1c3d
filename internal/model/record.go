// Package model defines domain types for the kina budget dataset.
package model

// Category classifies a budget record within the hierarchy.
type Category string

// The closed set of record categories.
const (
	CategorySector   Category = "Sector"
	CategoryProvince Category = "Province"
	CategoryAgency   Category = "Agency"
	CategoryDistrict Category = "District"
	CategoryRevenue  Category = "Revenue"
)

// Categories lists all known categories in display order.
var Categories = []Category{
	CategorySector,
	CategoryProvince,
	CategoryAgency,
	CategoryDistrict,
	CategoryRevenue,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// Year selects one of the three fiscal years covered by the dataset.
type Year int

// Fiscal years: 2024 is actual, 2025 is estimate, 2026 is projection.
const (
	Year2024 Year = 2024
	Year2025 Year = 2025
	Year2026 Year = 2026
)

// Years lists the covered fiscal years in chronological order.
var Years = []Year{Year2024, Year2025, Year2026}

// Valid reports whether y is a covered fiscal year.
func (y Year) Valid() bool {
	return y >= Year2024 && y <= Year2026
}

// Prev returns the preceding fiscal year, or 0 if y is the first.
func (y Year) Prev() Year {
	if y <= Year2024 {
		return 0
	}
	return y - 1
}

// BudgetRecord is one line item in the national budget. Records form a
// forest via ParentID (District/Agency under Province, Agency under
// Sector, Revenue sub-item under Revenue). All monetary amounts are
// whole kina.
//
// A parent's own allocation is an independently authored top-line
// figure; its children are itemized detail, not a sum decomposition.
// Summing a subtree does not have to reconcile with the parent's field.
type BudgetRecord struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ParentID       string   `json:"parentId,omitempty"`
	Category       Category `json:"category"`
	Allocation2024 int64    `json:"allocation2024"`
	Allocation2025 int64    `json:"allocation2025"`
	Allocation2026 int64    `json:"allocation2026"`
	Population     int64    `json:"population,omitempty"` // Province roots only
	Description    string   `json:"description,omitempty"`
}

// Allocation returns the amount for the given fiscal year, or 0 for an
// unknown year.
func (r BudgetRecord) Allocation(y Year) int64 {
	switch y {
	case Year2024:
		return r.Allocation2024
	case Year2025:
		return r.Allocation2025
	case Year2026:
		return r.Allocation2026
	default:
		return 0
	}
}

// IsRoot reports whether the record has no parent and therefore anchors
// a top-level aggregate view of its category.
func (r BudgetRecord) IsRoot() bool {
	return r.ParentID == ""
}
