package dataset

import (
	"fmt"

	"kina/internal/model"
)

// Validate checks structural invariants over a record set. Duplicate
// ids and cycles are fatal. A dangling parent reference degrades to a
// warning — the record is treated as a root rather than rejected, per
// the error-handling policy for malformed hierarchies.
func Validate(records []model.BudgetRecord) (warnings []string, err error) {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: record %q has empty id", ErrDataUnavailable, r.Name)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrDataUnavailable, r.ID)
		}
		seen[r.ID] = struct{}{}
		if !r.Category.Valid() {
			return nil, fmt.Errorf("%w: record %q has unknown category %q", ErrDataUnavailable, r.ID, r.Category)
		}
	}

	parent := make(map[string]string, len(records))
	for _, r := range records {
		if r.ParentID == "" {
			continue
		}
		if _, ok := seen[r.ParentID]; !ok {
			warnings = append(warnings, fmt.Sprintf("record %q references unknown parent %q, treating as root", r.ID, r.ParentID))
			continue
		}
		parent[r.ID] = r.ParentID
	}

	// Walk each parent chain; a strict tree terminates well within
	// len(records) hops, so anything longer is a cycle.
	for id := range parent {
		cur := id
		for hops := 0; ; hops++ {
			next, ok := parent[cur]
			if !ok {
				break
			}
			if hops > len(records) {
				return nil, fmt.Errorf("%w: parent cycle involving %q", ErrDataUnavailable, id)
			}
			cur = next
		}
	}

	return warnings, nil
}
