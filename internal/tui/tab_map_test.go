package tui

import (
	"strings"
	"testing"

	"kina/internal/dataset"
	"kina/internal/hierarchy"
	"kina/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func mapTestApp(t *testing.T) App {
	t.Helper()

	store, err := dataset.New([]model.BudgetRecord{
		{ID: "PROV-02", Name: "Morobe Province", Category: model.CategoryProvince, Allocation2026: 900_000_000, Population: 674_810},
		{ID: "PROV-01", Name: "National Capital District", Category: model.CategoryProvince, Allocation2026: 800_000_000, Population: 364_125},
		{ID: "DIST-01", Name: "Lae District", ParentID: "PROV-02", Category: model.CategoryDistrict, Allocation2026: 120_000_000},
		{ID: "AG-01", Name: "Nadzab Airport Redevelopment", ParentID: "PROV-02", Category: model.CategoryAgency, Allocation2026: 300_000_000},
	})
	if err != nil {
		t.Fatal(err)
	}

	return App{
		store:    store,
		resolver: hierarchy.NewResolver(store.Records()),
		loaded:   true,
		year:     model.Year2026,
		width:    100,
		height:   40,
		explorer: newExplorerState(),
	}
}

func TestMapCursorStaysInBounds(t *testing.T) {
	var m mapState

	m.handleKey("k", 3)
	if m.cursor != 0 {
		t.Fatalf("cursor went negative: %d", m.cursor)
	}
	for i := 0; i < 10; i++ {
		m.handleKey("j", 3)
	}
	if m.cursor != 2 {
		t.Fatalf("cursor overran list: %d", m.cursor)
	}
	m.handleKey("g", 3)
	if m.cursor != 0 {
		t.Fatalf("g did not jump to top: %d", m.cursor)
	}
	m.handleKey("G", 3)
	if m.cursor != 2 {
		t.Fatalf("G did not jump to bottom: %d", m.cursor)
	}
}

func TestMapDetailListsDistrictsAndFlagshipProjects(t *testing.T) {
	a := mapTestApp(t)

	// NCD ranks first by per-capita spend; step down to Morobe.
	a.mapTab.handleKey("j", a.mapRowCount())

	out := a.renderMapTab(100, 40)
	for _, want := range []string{
		"Morobe Province",
		"Lae District",
		"(District)",
		"Nadzab Airport Redevelopment",
		"(Flagship Project)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("map detail missing %q in:\n%s", want, out)
		}
	}
}

func TestMapSelectionFollowsCursor(t *testing.T) {
	a := mapTestApp(t)

	// Initial selection is the top-ranked province, which has no
	// itemized lines of its own.
	out := a.renderMapTab(100, 40)
	if !strings.Contains(out, "National Capital District") {
		t.Fatalf("expected top-ranked province in detail card:\n%s", out)
	}
	if strings.Contains(out, "Lae District") {
		t.Fatalf("unselected province's children shown:\n%s", out)
	}
}

func TestTabShortcutKeysSwitchTabs(t *testing.T) {
	a := mapTestApp(t)

	cases := []struct {
		key  rune
		want int
	}{
		{'m', tabMap},
		{'c', tabCompare},
		{'e', tabExplorer},
		{'o', tabOverview},
	}
	for _, tc := range cases {
		next, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{tc.key}})
		a = next.(App)
		if a.activeTab != tc.want {
			t.Fatalf("key %q -> tab %d, want %d", tc.key, a.activeTab, tc.want)
		}
	}
}
