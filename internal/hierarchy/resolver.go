// Package hierarchy answers structural queries over the budget record
// forest without rescanning the flat record list per query.
package hierarchy

import (
	"errors"
	"fmt"

	"kina/internal/model"
)

// ErrMalformedHierarchy indicates a cycle was found while traversing
// parent/child links. The dataset is supposed to be a strict tree;
// traversal fails rather than looping forever.
var ErrMalformedHierarchy = errors.New("hierarchy: malformed parent/child structure")

// Resolver indexes parent->children relationships once so drill-down
// queries cost O(children) instead of O(total records).
type Resolver struct {
	children map[string][]model.BudgetRecord
	roots    []model.BudgetRecord
}

// NewResolver builds the adjacency index. Children keep the record
// set's input order.
func NewResolver(records []model.BudgetRecord) *Resolver {
	r := &Resolver{
		children: make(map[string][]model.BudgetRecord),
	}
	for _, rec := range records {
		if rec.ParentID == "" {
			r.roots = append(r.roots, rec)
			continue
		}
		r.children[rec.ParentID] = append(r.children[rec.ParentID], rec)
	}
	return r
}

// ChildrenOf returns the ordered direct children of id. Unknown ids
// and leaves both yield an empty slice, not an error.
func (r *Resolver) ChildrenOf(id string) []model.BudgetRecord {
	return r.children[id]
}

// HasChildren reports whether id has at least one direct child.
func (r *Resolver) HasChildren(id string) bool {
	return len(r.children[id]) > 0
}

// Roots returns all records with no parent, in input order.
func (r *Resolver) Roots() []model.BudgetRecord {
	return r.roots
}

// RootsOf returns the parentless records of the given category.
func (r *Resolver) RootsOf(category model.Category) []model.BudgetRecord {
	var out []model.BudgetRecord
	for _, rec := range r.roots {
		if rec.Category == category {
			out = append(out, rec)
		}
	}
	return out
}

// SubtreeTotal sums the given year's allocation over all descendants
// of id, excluding id's own field — a parent's stated allocation is an
// independent top-line figure, not the sum of its children. A visited
// set guards against malformed cycles; hitting one returns
// ErrMalformedHierarchy instead of recursing forever.
func (r *Resolver) SubtreeTotal(id string, year model.Year) (int64, error) {
	visited := map[string]struct{}{id: {}}
	return r.sumDescendants(id, year, visited)
}

func (r *Resolver) sumDescendants(id string, year model.Year, visited map[string]struct{}) (int64, error) {
	var total int64
	for _, child := range r.children[id] {
		if _, seen := visited[child.ID]; seen {
			return 0, fmt.Errorf("%w: %q revisited under %q", ErrMalformedHierarchy, child.ID, id)
		}
		visited[child.ID] = struct{}{}
		total += child.Allocation(year)
		sub, err := r.sumDescendants(child.ID, year, visited)
		if err != nil {
			return 0, err
		}
		total += sub
	}
	return total, nil
}
