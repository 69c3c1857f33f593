package view

import (
	"testing"
	"time"

	"github.com/matzehuels/netgraph/pkg/dataset"
)

func TestEdgeOpacity(t *testing.T) {
	e := dataset.EdgeRecord{Source: "A", Target: "B"}
	tests := []struct {
		hover string
		want  float64
	}{
		{"", OpacityIdle},
		{"A", OpacityTouched},
		{"B", OpacityTouched},
		{"C", OpacityFaded},
	}
	for _, tt := range tests {
		t.Run("hover="+tt.hover, func(t *testing.T) {
			if got := EdgeOpacity(e, tt.hover); got != tt.want {
				t.Errorf("EdgeOpacity(hover=%q) = %v, want %v", tt.hover, got, tt.want)
			}
		})
	}
}

func TestTooltipFade(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tip := Tooltip{NodeID: "A"}.FadeTo(TooltipOpacity, start, 200*time.Millisecond)

	tests := []struct {
		at   time.Duration
		want float64
	}{
		{0, 0},
		{100 * time.Millisecond, 0.5},
		{200 * time.Millisecond, 1},
		{time.Second, 1},
	}
	for _, tt := range tests {
		if got := tip.OpacityAt(start.Add(tt.at)); !near(got, tt.want) {
			t.Errorf("OpacityAt(+%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
	if !tip.Fading(start.Add(100 * time.Millisecond)) {
		t.Error("tooltip should be fading mid-way")
	}
	if tip.Fading(start.Add(200 * time.Millisecond)) {
		t.Error("tooltip should not be fading at the end")
	}

	// Fading out midway starts from the current opacity.
	mid := start.Add(100 * time.Millisecond)
	out := tip.FadeTo(0, mid, 500*time.Millisecond)
	if !near(out.From, 0.5) {
		t.Errorf("fade-out starts at %v, want 0.5", out.From)
	}
	if got := out.OpacityAt(mid.Add(250 * time.Millisecond)); !near(got, 0.25) {
		t.Errorf("fade-out midway = %v, want 0.25", got)
	}
}

func TestTooltipVisible(t *testing.T) {
	if (Tooltip{}).Visible() {
		t.Error("zero tooltip should be hidden")
	}
	if !(Tooltip{NodeID: "A", Opacity: 0.1}).Visible() {
		t.Error("tooltip with node and opacity should be visible")
	}
	if (Tooltip{NodeID: "A"}).Visible() {
		t.Error("transparent tooltip should be hidden")
	}
}

func TestTextFor(t *testing.T) {
	age := 42.0
	got := TextFor(dataset.NodeRecord{ID: "A", Name: "Alice", Role: "professor", Department: "Physics", Age: &age})
	want := TooltipText{Name: "Alice", Role: "professor", Department: "Physics", Age: "42", Friends: "n/a"}
	if got != want {
		t.Errorf("TextFor = %+v, want %+v", got, want)
	}
}

func TestSceneEdgeOpacityBeforeFirstHover(t *testing.T) {
	s := Scene{Edges: []dataset.EdgeRecord{{Source: "A", Target: "B"}}}
	if got := s.EdgeOpacity(0); got != OpacityInitial {
		t.Errorf("initial opacity = %v, want %v", got, OpacityInitial)
	}
	s.Interaction.Hovered = true
	if got := s.EdgeOpacity(0); got != OpacityIdle {
		t.Errorf("opacity after hover = %v, want %v", got, OpacityIdle)
	}
}
