package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netgraph/pkg/dataset"
	"github.com/matzehuels/netgraph/pkg/graph"
	"github.com/matzehuels/netgraph/pkg/render/svg"
	"github.com/matzehuels/netgraph/pkg/view"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"html", false},
		{"png", false},
		{"dot", false},
		{"json", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"svg", []string{"svg"}},
		{"svg,png", []string{"svg", "png"}},
		{" svg , json ,", []string{"svg", "json"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := ParseFormats(tt.in)
		if fmt.Sprint(got) != fmt.Sprint(tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOptionsValidateForLoad(t *testing.T) {
	opts := Options{Edges: "edges.csv"}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Missing nodes should fail")
	}

	opts = Options{Nodes: "nodes.csv"}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Missing edges should fail")
	}

	opts = Options{Nodes: "nodes.csv", Edges: "edges.csv"}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Valid options should pass: %v", err)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{MaxTicks: -5}
	opts.SetLayoutDefaults()

	if opts.Force.Width != DefaultWidth || opts.Force.Height != DefaultHeight {
		t.Errorf("canvas = %vx%v, want %vx%v", opts.Force.Width, opts.Force.Height, DefaultWidth, DefaultHeight)
	}
	if opts.Force.Seed != 42 {
		t.Errorf("Seed = %d, want 42", opts.Force.Seed)
	}
	if opts.MaxTicks != DefaultMaxTicks {
		t.Errorf("MaxTicks = %d, want %d", opts.MaxTicks, DefaultMaxTicks)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Nodes: "n", Edges: "e", Formats: []string{"json"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	width := opts.Force.Width
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.Force.Width != width || len(opts.Formats) != 1 {
		t.Error("options changed on second call")
	}

	bad := Options{Nodes: "n", Edges: "e", Formats: []string{"pdf"}}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("invalid format should fail validation")
	}
}

// =============================================================================
// Runner
// =============================================================================

func sampleLoader(fail bool) *dataset.Loader {
	tables := map[string]*dataset.Table{
		"nodes": dataset.NewTable(
			[]string{"id", "name", "role", "department"},
			[][]string{{"A", "Alice", "professor", "Physics"}, {"B", "Bob", "student", "Physics"}},
		),
		"edges": dataset.NewTable(
			[]string{"source", "target", "relationship", "type"},
			[][]string{{"A", "B", "colleagues", "directed"}, {"A", "Z", "friends", "undirected"}},
		),
	}
	f := dataset.FetcherFunc(func(_ context.Context, uri string) (*dataset.Table, error) {
		if fail && uri == "edges" {
			return nil, fmt.Errorf("connection refused")
		}
		t, ok := tables[uri]
		if !ok {
			return nil, fmt.Errorf("no such resource %q", uri)
		}
		return t, nil
	})
	return dataset.NewLoader(f, log.New(io.Discard))
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(sampleLoader(false), log.New(io.Discard))
	res, err := r.Execute(context.Background(), Options{
		Nodes:   "nodes",
		Edges:   "edges",
		Formats: []string{FormatSVG, FormatHTML, FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.LoadErr != nil {
		t.Errorf("LoadErr = %v", res.LoadErr)
	}
	if res.Stats.NodeCount != 2 || res.Stats.EdgeCount != 1 || res.Stats.Dropped != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if !res.Scene.Settled || res.Stats.Ticks == 0 {
		t.Errorf("settled=%v ticks=%d", res.Scene.Settled, res.Stats.Ticks)
	}
	if res.Scene.State != view.StateRendered {
		t.Errorf("state = %q", res.Scene.State)
	}

	for _, f := range []string{FormatSVG, FormatHTML, FormatDOT, FormatJSON} {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if got := strings.Count(string(res.Artifacts[FormatSVG]), "<circle"); got != 2 {
		t.Errorf("svg has %d circles, want 2", got)
	}
	if !bytes.Contains(res.Artifacts[FormatDOT], []byte("digraph")) {
		t.Errorf("dot artifact:\n%s", res.Artifacts[FormatDOT])
	}

	l, err := graph.UnmarshalLayout(res.Artifacts[FormatJSON])
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Nodes) != 2 || len(l.Edges) != 1 || !l.Settled {
		t.Errorf("layout = %+v", l)
	}
}

func TestRunnerLoadFailure(t *testing.T) {
	r := NewRunner(sampleLoader(true), log.New(io.Discard))
	res, err := r.Execute(context.Background(), Options{Nodes: "nodes", Edges: "edges"})
	if err != nil {
		t.Fatalf("load failure must not be an error: %v", err)
	}
	if res.LoadErr == nil {
		t.Fatal("LoadErr should be set")
	}
	if res.Scene.State != view.StateRenderedWithError || res.Scene.LoadError == "" {
		t.Errorf("state=%q loadError=%q", res.Scene.State, res.Scene.LoadError)
	}
	if len(res.Scene.Nodes) != 1 || res.Scene.Nodes[0].ID != dataset.ErrorNodeID {
		t.Errorf("nodes = %+v, want error graph", res.Scene.Nodes)
	}
	if !bytes.Contains(res.Artifacts[FormatSVG], []byte(dataset.ErrorNodeID)) {
		t.Error("svg should draw the error node")
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	r := NewRunner(sampleLoader(false), nil)
	if _, err := r.Execute(context.Background(), Options{Nodes: "nodes"}); err == nil {
		t.Error("missing edges should fail")
	}
	if _, err := r.Execute(context.Background(), Options{Nodes: "nodes", Edges: "edges", Formats: []string{"gif"}}); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(sampleLoader(false), log.New(io.Discard))
	if _, err := r.Layout(ctx, Options{Nodes: "nodes", Edges: "edges"}); err == nil {
		t.Error("canceled context should fail")
	}
}

func TestSettleMaxTicks(t *testing.T) {
	res := sampleLoader(false).Load(context.Background(), "nodes", "edges")
	s, ticks := Settle(res, Options{MaxTicks: 10})
	if ticks != 10 || s.Settled {
		t.Errorf("ticks=%d settled=%v, want 10 ticks unsettled", ticks, s.Settled)
	}
	if s.Width != DefaultWidth || s.Height != DefaultHeight {
		t.Errorf("canvas = %vx%v", s.Width, s.Height)
	}
}

func TestRenderLayoutData(t *testing.T) {
	data := []byte(`{
		"width": 800,
		"height": 400,
		"nodes": [{"id": "A", "role": "professor", "x": 350, "y": 200}, {"id": "B", "x": 450, "y": 200}],
		"edges": [{"source": "A", "target": "B", "type": "directed"}]
	}`)
	artifacts, err := RenderLayoutData(context.Background(), data, Options{
		Formats: []string{FormatSVG, FormatDOT},
		NoHint:  true,
		Title:   "ignored",
	})
	if err != nil {
		t.Fatal(err)
	}
	out := string(artifacts[FormatSVG])
	if !strings.Contains(out, `cx="350.00"`) || !strings.Contains(out, "marker-end") {
		t.Errorf("svg does not reflect the layout:\n%s", out)
	}
	if strings.Contains(out, svg.HintText) {
		t.Error("hint should be omitted")
	}
	if !strings.Contains(string(artifacts[FormatDOT]), `pos="350.00,200.00!"`) {
		t.Errorf("dot:\n%s", artifacts[FormatDOT])
	}

	if _, err := RenderLayoutData(context.Background(), []byte(`{`), Options{}); err == nil {
		t.Error("bad json should fail")
	}
}

func TestRenderSceneHTMLTitle(t *testing.T) {
	l := graph.Layout{VizType: graph.VizTypeForce, Width: 100, Height: 100, Nodes: []graph.Node{{ID: "A", X: 50, Y: 50}}}
	artifacts, err := RenderLayout(context.Background(), l, Options{Formats: []string{FormatHTML}, Title: "school"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(artifacts[FormatHTML]), "<title>school</title>") {
		t.Errorf("html:\n%s", artifacts[FormatHTML])
	}
}
