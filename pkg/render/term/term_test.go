package term

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/matzehuels/netgraph/pkg/dataset"
	"github.com/matzehuels/netgraph/pkg/force"
	"github.com/matzehuels/netgraph/pkg/view"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func scene(t *testing.T, edgeType string) view.Scene {
	t.Helper()
	d, err := dataset.New(
		[]dataset.NodeRecord{{ID: "A", Name: "Alice", Role: "professor"}, {ID: "B"}},
		[]dataset.EdgeRecord{{Source: "A", Target: "B", Type: edgeType}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return view.NewScene(d, force.Snapshot{Positions: []force.Point{{X: 100, Y: 200}, {X: 700, Y: 200}}}, 800, 400)
}

func TestRender(t *testing.T) {
	out := Render(scene(t, "directed"), 80, 20)

	if got := strings.Count(out, string(nodeGlyph)); got != 2 {
		t.Errorf("found %d nodes, want 2", got)
	}
	if !strings.Contains(out, "→") {
		t.Error("directed edge pointing right should end in →")
	}
	if !strings.Contains(out, string(edgeGlyph)) {
		t.Error("edge line missing")
	}
	for _, want := range []string{"● A", "● B", "rendered", "nodes 2", "edges 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestRenderUndirected(t *testing.T) {
	out := Render(scene(t, ""), 80, 20)
	for _, a := range []string{"→", "←", "↑", "↓"} {
		if strings.Contains(out, a) {
			t.Errorf("undirected edge drew arrow %s", a)
		}
	}
}

func TestRenderTooltip(t *testing.T) {
	s := scene(t, "")
	n, _ := s.Node("A")
	s.Interaction.Tooltip = view.Tooltip{NodeID: "A", Text: view.TextFor(n), Opacity: 1}
	out := Render(s, 80, 20)
	for _, want := range []string{"Alice", "Role: professor", "Friends: n/a"} {
		if !strings.Contains(out, want) {
			t.Errorf("tooltip missing %q", want)
		}
	}
}

func TestRenderOffCanvas(t *testing.T) {
	s := scene(t, "directed")
	s.Interaction.Zoom = view.Transform{K: 1, X: 5000, Y: 5000}
	out := Render(s, 40, 10)
	if strings.Contains(out, string(nodeGlyph)) {
		t.Error("nodes panned off canvas should not be drawn")
	}
}

func TestGrid(t *testing.T) {
	g := Grid{Cols: 80, Rows: 20, Width: 800, Height: 400}
	tests := []struct {
		p        force.Point
		col, row int
	}{
		{force.Point{X: 0, Y: 0}, 0, 0},
		{force.Point{X: 15, Y: 25}, 1, 1},
		{force.Point{X: 799, Y: 399}, 79, 19},
		{force.Point{X: -1, Y: 10}, -1, 0},
	}
	for _, tt := range tests {
		col, row := g.Cell(tt.p)
		if col != tt.col || row != tt.row {
			t.Errorf("Cell(%v) = (%d, %d), want (%d, %d)", tt.p, col, row, tt.col, tt.row)
		}
	}

	p := g.Point(3, 4)
	if col, row := g.Cell(p); col != 3 || row != 4 {
		t.Errorf("Cell(Point(3, 4)) = (%d, %d)", col, row)
	}
}

func TestArrow(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   rune
	}{
		{1, 0, '→'}, {-1, 0, '←'}, {0, 1, '↓'}, {0, -1, '↑'},
		{1, 1, '↘'}, {1, -1, '↗'}, {-1, 1, '↙'}, {-1, -1, '↖'},
	}
	for _, tt := range tests {
		if got := arrow(tt.dx, tt.dy); got != tt.want {
			t.Errorf("arrow(%d, %d) = %c, want %c", tt.dx, tt.dy, got, tt.want)
		}
	}
}
