// Package dataset owns the authoritative in-memory budget record set.
// Records are loaded once at startup from a bundled or external source
// and are immutable thereafter.
package dataset

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"kina/internal/model"
)

//go:embed budget2026.json
var budgetJSON []byte

// ErrDataUnavailable indicates the record source could not be read or
// parsed. Loads are all-or-nothing; no partial record set is returned.
var ErrDataUnavailable = errors.New("dataset: budget data unavailable")

// Store holds the loaded record set with an id index for O(1) lookup.
// It exposes no write operations.
type Store struct {
	records  []model.BudgetRecord
	byID     map[string]model.BudgetRecord
	warnings []string
}

// Load decodes the bundled dataset and returns a ready Store.
func Load() (*Store, error) {
	return decode(budgetJSON)
}

// LoadFile reads a record set from a JSON file, honoring the same
// all-or-nothing contract as Load.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrDataUnavailable, path, err)
	}
	return decode(data)
}

func decode(data []byte) (*Store, error) {
	var records []model.BudgetRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parsing records: %v", ErrDataUnavailable, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty record set", ErrDataUnavailable)
	}
	return New(records)
}

// New builds a Store from an already-decoded record set. The input
// order is preserved; it is the display order for unsorted views.
// Validation warnings are kept on the store for the caller to surface;
// nothing is written to stderr here since the TUI owns the terminal.
func New(records []model.BudgetRecord) (*Store, error) {
	warnings, err := Validate(records)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.BudgetRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	// Degrade dangling parent references to roots so hierarchy queries
	// never dead-end on an id that resolves to nothing.
	for i, r := range records {
		if r.ParentID == "" {
			continue
		}
		if _, ok := byID[r.ParentID]; !ok {
			records[i].ParentID = ""
			byID[r.ID] = records[i]
		}
	}
	return &Store{records: records, byID: byID, warnings: warnings}, nil
}

// Warnings returns the validation warnings recorded at load time.
func (s *Store) Warnings() []string {
	return s.warnings
}

// Records returns the full ordered record set. Callers must not mutate
// the returned slice.
func (s *Store) Records() []model.BudgetRecord {
	return s.records
}

// FindByID returns the record with the given id.
func (s *Store) FindByID(id string) (model.BudgetRecord, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// Len returns the number of loaded records.
func (s *Store) Len() int {
	return len(s.records)
}
