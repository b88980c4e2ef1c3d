package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"kina/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []model.BudgetRecord {
	return []model.BudgetRecord{
		{ID: "health", Name: "Health", Category: model.CategorySector, Allocation2024: 2_500_000_000, Allocation2025: 2_800_000_000, Allocation2026: 3_200_000_000},
		{ID: "pmgh", Name: "Port Moresby General Hospital", ParentID: "health", Category: model.CategoryAgency, Allocation2026: 450_000_000},
		{ID: "morobe", Name: "Morobe", Category: model.CategoryProvince, Allocation2026: 900_000_000, Population: 674_810},
	}
}

func TestLoadEmbedded(t *testing.T) {
	store, err := Load()
	require.NoError(t, err)
	assert.Greater(t, store.Len(), 0)

	// Every embedded record must survive validation and be indexed.
	for _, r := range store.Records() {
		got, ok := store.FindByID(r.ID)
		require.True(t, ok)
		assert.Equal(t, r.Name, got.Name)
	}
}

func TestNewRejectsDuplicateID(t *testing.T) {
	recs := testRecords()
	recs = append(recs, model.BudgetRecord{ID: "health", Name: "Health again", Category: model.CategorySector})

	_, err := New(recs)
	require.ErrorIs(t, err, ErrDataUnavailable)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestNewRejectsUnknownCategory(t *testing.T) {
	recs := testRecords()
	recs[0].Category = "Ministry"

	_, err := New(recs)
	require.ErrorIs(t, err, ErrDataUnavailable)
}

func TestValidateRejectsParentCycle(t *testing.T) {
	recs := []model.BudgetRecord{
		{ID: "a", Name: "A", ParentID: "b", Category: model.CategorySector},
		{ID: "b", Name: "B", ParentID: "a", Category: model.CategorySector},
	}

	_, err := Validate(recs)
	require.ErrorIs(t, err, ErrDataUnavailable)
	assert.Contains(t, err.Error(), "cycle")
}

func TestDanglingParentDegradesToRoot(t *testing.T) {
	recs := testRecords()
	recs[1].ParentID = "no-such-record"

	warnings, err := Validate(recs)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "no-such-record")

	store, err := New(recs)
	require.NoError(t, err)

	got, ok := store.FindByID("pmgh")
	require.True(t, ok)
	assert.True(t, got.IsRoot())

	// The warning is recorded on the store, not printed; the CLI layer
	// decides whether to surface it (--quiet suppresses it).
	require.Len(t, store.Warnings(), 1)
	assert.Contains(t, store.Warnings()[0], "no-such-record")
}

func TestCleanLoadHasNoWarnings(t *testing.T) {
	store, err := New(testRecords())
	require.NoError(t, err)
	assert.Empty(t, store.Warnings())
}

func TestLoadFileMissingPath(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, ErrDataUnavailable)
}

func TestLoadFileEmptySet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))

	_, err := LoadFile(path)
	require.ErrorIs(t, err, ErrDataUnavailable)
}

func TestExportRoundTrip(t *testing.T) {
	store, err := New(testRecords())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "budget.db")
	require.NoError(t, Export(store, path))

	reloaded, err := OpenSQLite(path)
	require.NoError(t, err)
	require.Equal(t, store.Len(), reloaded.Len())

	// Position ordering must preserve the original record order.
	for i, want := range store.Records() {
		got := reloaded.Records()[i]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.ParentID, got.ParentID)
		assert.Equal(t, want.Allocation2026, got.Allocation2026)
		assert.Equal(t, want.Population, got.Population)
	}
}

func TestOpenSQLiteMissingFile(t *testing.T) {
	_, err := OpenSQLite(filepath.Join(t.TempDir(), "missing.db"))
	require.ErrorIs(t, err, ErrDataUnavailable)
}
