package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestApplyGradient_PreservesText(t *testing.T) {
	got := ApplyGradient("सांगीत", lipgloss.Color("#ff9933"), lipgloss.Color("#e05297"))
	if ansi.Strip(got) != "सांगीत" {
		t.Errorf("stripped = %q", ansi.Strip(got))
	}
	if ApplyGradient("", "#000000", "#ffffff") != "" {
		t.Error("empty text should render empty")
	}
}

func TestApplyProgress(t *testing.T) {
	rest := lipgloss.NewStyle()
	from, to := lipgloss.Color("#ff9933"), lipgloss.Color("#e05297")

	for _, p := range []float64{-1, 0, 0.5, 1, 2} {
		if got := ansi.Strip(ApplyProgress("hello", p, from, to, rest)); got != "hello" {
			t.Errorf("ApplyProgress(%v) stripped = %q, want hello", p, got)
		}
	}
}

func TestBlendColors(t *testing.T) {
	colors := blendColors(3, "#000000", "#ffffff")
	if len(colors) != 3 {
		t.Fatalf("len = %d, want 3", len(colors))
	}
	if got := blendColors(1, "#000000", "#ffffff"); len(got) != 1 {
		t.Errorf("single color blend len = %d, want 1", len(got))
	}
}
