package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/netgraph/pkg/dataset"
	"github.com/matzehuels/netgraph/pkg/force"
	"github.com/matzehuels/netgraph/pkg/view"
)

func testScene(t *testing.T) view.Scene {
	t.Helper()
	age, size := 51.0, 12.0
	since := 2019
	d, err := dataset.New(
		[]dataset.NodeRecord{
			{ID: "A", Name: "Alice", Role: "professor", Age: &age, Size: &size, Color: "#ff0000"},
			{ID: "B", Name: "Bob"},
		},
		[]dataset.EdgeRecord{{Source: "A", Target: "B", Relationship: "colleagues", Type: "directed", Since: &since}},
	)
	if err != nil {
		t.Fatal(err)
	}
	snap := force.Snapshot{Tick: 301, Alpha: 0.0009, Positions: []force.Point{{X: 10, Y: 20}, {X: 30, Y: 40}}}
	s := view.NewScene(d, snap, 800, 400)
	s.Settled = true
	return s
}

func TestFromScene(t *testing.T) {
	l := FromScene(testScene(t))

	if l.VizType != VizTypeForce || l.Width != 800 || l.Height != 400 {
		t.Errorf("header = %q %vx%v", l.VizType, l.Width, l.Height)
	}
	if l.Tick != 301 || !l.Settled {
		t.Errorf("tick/settled = %d/%v", l.Tick, l.Settled)
	}
	if len(l.Nodes) != 2 || l.Nodes[0].ID != "A" || l.Nodes[0].X != 10 || l.Nodes[1].Y != 40 {
		t.Errorf("nodes = %+v", l.Nodes)
	}
	if len(l.Edges) != 1 || *l.Edges[0].Since != 2019 {
		t.Errorf("edges = %+v", l.Edges)
	}
}

func TestLayoutScene(t *testing.T) {
	orig := testScene(t)
	s, err := FromScene(orig).Scene()
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Nodes) != 2 || len(s.Edges) != 1 {
		t.Fatalf("scene has %d nodes, %d edges", len(s.Nodes), len(s.Edges))
	}
	for _, id := range []string{"A", "B"} {
		want, _ := orig.Position(id)
		if got, _ := s.Position(id); got != want {
			t.Errorf("position %s = %v, want %v", id, got, want)
		}
	}
	if n, _ := s.Node("A"); n.Radius() != 12 || n.Fill() != "#ff0000" || *n.Age != 51 {
		t.Errorf("node A = %+v", n)
	}
	if !s.Settled || s.State != view.StateRendered {
		t.Errorf("settled=%v state=%q", s.Settled, s.State)
	}
}

func TestLayoutSceneLoadError(t *testing.T) {
	l := Layout{
		VizType:   VizTypeForce,
		Width:     800,
		Height:    400,
		Nodes:     []Node{{ID: dataset.ErrorNodeID, X: 400, Y: 200}},
		LoadError: "fetch nodes: no such file",
	}
	s, err := l.Scene()
	if err != nil {
		t.Fatal(err)
	}
	if s.State != view.StateRenderedWithError || s.LoadError == "" {
		t.Errorf("state=%q loadError=%q", s.State, s.LoadError)
	}
}

func TestLayoutSceneDuplicateNodes(t *testing.T) {
	l := Layout{VizType: VizTypeForce, Width: 1, Height: 1, Nodes: []Node{{ID: "A"}, {ID: "A"}}}
	if _, err := l.Scene(); err == nil {
		t.Error("duplicate node ids should fail")
	}
}

func TestUnmarshalLayout(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr string
	}{
		{"minimal", `{"width": 800, "height": 400, "nodes": [{"id": "A", "x": 1, "y": 2}]}`, ""},
		{"explicit type", `{"viz_type": "force", "width": 10, "height": 10}`, ""},
		{"bad json", `{`, "unmarshal layout"},
		{"wrong type", `{"viz_type": "tower", "width": 10, "height": 10}`, "unsupported viz_type"},
		{"no canvas", `{"nodes": []}`, "invalid canvas"},
		{"missing id", `{"width": 10, "height": 10, "nodes": [{"x": 1}]}`, "node without id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := UnmarshalLayout([]byte(tt.json))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if l.VizType != VizTypeForce {
					t.Errorf("VizType = %q, want force", l.VizType)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteReadLayout(t *testing.T) {
	l := FromScene(testScene(t))

	var buf bytes.Buffer
	if err := WriteLayout(l, &buf); err != nil {
		t.Fatal(err)
	}
	got, err := ReadLayout(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Nodes) != 2 || got.Nodes[1].X != 30 || got.Edges[0].Type != "directed" {
		t.Errorf("read back %+v", got)
	}
}

func TestLayoutFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(FromScene(testScene(t)), path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"viz_type": "force"`) {
		t.Errorf("file content:\n%s", data)
	}

	l, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if a := l.Nodes[0]; a.ID != "A" || a.X != 10 || a.Y != 20 {
		t.Errorf("first node = %+v, want A at (10, 20)", a)
	}

	if _, err := ReadLayoutFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
}
