package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/liralabs/lirabot/internal/tui/theme"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsExactly(t *testing.T) {
	for _, tc := range []struct{ total, n int }{
		{90, 3}, {91, 3}, {92, 3}, {7, 2}, {100, 1},
	} {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d): got %d widths", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d): widths sum to %d", tc.total, tc.n, sum)
		}
	}
}

func TestLayoutRowZeroCards(t *testing.T) {
	if widths := LayoutRow(80, 0); widths != nil {
		t.Errorf("expected nil for zero cards, got %v", widths)
	}
}

func TestMetricCardRowHeightsMatch(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]struct{ Label, Value string }{
		{"Session Cost", "$0.000985"},
		{"Queries", "12"},
		{"Tokens", "1.2K"},
	}, 90)

	lines := strings.Split(row, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) != lipgloss.Width(lines[0]) {
			t.Errorf("line %d width %d != line 0 width %d", i, lipgloss.Width(line), lipgloss.Width(lines[0]))
		}
	}
}

func TestContentCardIncludesTitleAndBody(t *testing.T) {
	theme.SetActive("flexoki-dark")

	card := ContentCard("Backend Usage", "groq  12 queries", 40)
	if !strings.Contains(card, "Backend Usage") {
		t.Error("card missing title")
	}
	if !strings.Contains(card, "groq") {
		t.Error("card missing body")
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('c'); got != 0 {
		t.Errorf("TabIdxByKey('c') = %d, want 0", got)
	}
	if got := TabIdxByKey('u'); got != 1 {
		t.Errorf("TabIdxByKey('u') = %d, want 1", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}
