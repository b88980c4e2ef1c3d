package components

import (
	"strings"
	"testing"
)

func TestProgressBarFillMatchesPct(t *testing.T) {
	out := ProgressBar(0.5, 10)
	if got := strings.Count(out, "█"); got != 5 {
		t.Fatalf("filled cells = %d, want 5 in %q", got, out)
	}
	if !strings.Contains(out, "50%") {
		t.Fatalf("missing percentage label in %q", out)
	}
}

func TestProgressBarClampsOverflow(t *testing.T) {
	out := ProgressBar(1.5, 10)
	if got := strings.Count(out, "█"); got != 10 {
		t.Fatalf("overflowing pct should fill exactly the bar width, got %d cells", got)
	}
	if strings.Contains(out, "░") {
		t.Fatalf("no empty cells expected at full bar: %q", out)
	}
}
