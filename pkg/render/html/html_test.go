package html

import (
	"strings"
	"testing"

	"github.com/matzehuels/netgraph/pkg/dataset"
	"github.com/matzehuels/netgraph/pkg/force"
	"github.com/matzehuels/netgraph/pkg/view"
)

func scene(t *testing.T) view.Scene {
	t.Helper()
	d, err := dataset.New([]dataset.NodeRecord{{ID: "A"}, {ID: "B"}}, []dataset.EdgeRecord{{Source: "A", Target: "B"}})
	if err != nil {
		t.Fatal(err)
	}
	return view.NewScene(d, force.Snapshot{Positions: []force.Point{{X: 10, Y: 10}, {X: 90, Y: 10}}}, 800, 400)
}

func TestRender(t *testing.T) {
	out := string(Render(scene(t), WithTitle("School <graph>")))
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>School &lt;graph&gt;</title>",
		`<div id="stage">`,
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		"</html>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(out, "EventSource") {
		t.Error("static page should not stream")
	}
}

func TestRenderLoadError(t *testing.T) {
	s := view.NewScene(dataset.ErrorDataset(), force.Snapshot{Positions: []force.Point{{X: 400, Y: 200}}}, 800, 400)
	s.State = view.StateRenderedWithError
	s.LoadError = "no such file"
	out := string(Render(s))
	if !strings.Contains(out, `<div class="status">no such file</div>`) {
		t.Error("load error should be shown under the frame")
	}
}

func TestLive(t *testing.T) {
	out := string(Live(WithPrefix("/api")))
	for _, want := range []string{
		`const prefix = "/api";`,
		"new EventSource(base + '/events')",
		"base + '/pointer'",
		"prefix + '/views'",
		`<div id="stage"></div>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(out, "%!") {
		t.Error("page has a formatting error")
	}
}

func TestDefaultTitle(t *testing.T) {
	if out := string(Live()); !strings.Contains(out, "<title>netgraph</title>") {
		t.Error("default title missing")
	}
}
