package tui

import (
	"strings"
	"testing"

	"kina/internal/dataset"
	"kina/internal/hierarchy"
	"kina/internal/model"
)

func explorerTestApp(t *testing.T, year model.Year) App {
	t.Helper()

	store, err := dataset.New([]model.BudgetRecord{
		{ID: "health", Name: "Health", Category: model.CategorySector, Allocation2024: 2_500_000_000, Allocation2025: 2_800_000_000, Allocation2026: 3_200_000_000},
		{ID: "pmgh", Name: "Port Moresby General Hospital", ParentID: "health", Category: model.CategoryAgency, Allocation2026: 450_000_000},
	})
	if err != nil {
		t.Fatal(err)
	}

	return App{
		store:    store,
		resolver: hierarchy.NewResolver(store.Records()),
		loaded:   true,
		year:     year,
		width:    100,
		height:   30,
		explorer: newExplorerState(),
	}
}

func TestExplorerGrowthPlaceholderInFirstYear(t *testing.T) {
	// 2024 has no prior year, so every growth cell shows the placeholder.
	a := explorerTestApp(t, model.Year2024)

	out := a.renderExplorerTab(100, 24)
	if !strings.Contains(out, "n/a") {
		t.Fatalf("expected n/a growth for 2024, got:\n%s", out)
	}
	if strings.Contains(out, "%") && strings.Contains(out, "+") {
		t.Fatalf("no growth percentage should render for the first year:\n%s", out)
	}
}

func TestExplorerGrowthAgainstPriorYear(t *testing.T) {
	a := explorerTestApp(t, model.Year2026)

	out := a.renderExplorerTab(100, 24)
	if !strings.Contains(out, "+14.3%") {
		t.Fatalf("expected Health growth 2.8B -> 3.2B to render as +14.3%%, got:\n%s", out)
	}
}
