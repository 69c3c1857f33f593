package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/netgraph/pkg/dataset"
	"github.com/matzehuels/netgraph/pkg/render/svg"
	"github.com/matzehuels/netgraph/pkg/view"
)

// pointsPerInch converts pixel radii to Graphviz node sizes.
const pointsPerInch = 72.0

// Options configures DOT generation.
type Options struct {
	// Detailed adds name, role and department to node labels.
	// When false, only the node ID is shown.
	Detailed bool
}

// ToDOT converts a scene to Graphviz DOT with every node pinned at its
// layout position. Graphviz's y axis points up, so y is flipped against the
// canvas height. Render the result with [RenderSVG] or [RenderPNG].
func ToDOT(s view.Scene, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  graph [bgcolor=%q, inputscale=%g, notranslate=true, splines=false, outputorder=edgesfirst, bb=\"0,0,%g,%g\"];\n",
		svg.Background, pointsPerInch, s.Width, s.Height)
	fmt.Fprintf(&buf, "  node [shape=circle, fixedsize=true, style=filled, color=%q, penwidth=2, fontcolor=\"white\", fontsize=%d];\n",
		svg.NodeStroke, svg.LabelSize)
	fmt.Fprintf(&buf, "  edge [color=%q, penwidth=2, arrowsize=0.6];\n", svg.EdgeStroke)
	buf.WriteString("\n")

	for i, n := range s.Nodes {
		if i >= len(s.Positions) {
			break
		}
		p := s.Positions[i]
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed)),
			fmt.Sprintf("pos=\"%.2f,%.2f!\"", p.X, s.Height-p.Y),
			fmt.Sprintf("width=%.3f", 2*n.Radius()/pointsPerInch),
			fmt.Sprintf("fillcolor=%q", n.Fill()),
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range s.Edges {
		attrs := fmtEdgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n dataset.NodeRecord, detailed bool) string {
	if !detailed {
		return n.ID
	}
	parts := []string{n.ID}
	for _, v := range []string{n.Name, n.Role, n.Department} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "\n")
}

func fmtEdgeAttrs(e dataset.EdgeRecord) []string {
	var attrs []string
	if !e.Directed() {
		attrs = append(attrs, "dir=none")
	}
	if e.Relationship != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", e.Relationship))
	}
	return attrs
}

// RenderSVG lays out a DOT graph with neato, which honors pinned
// positions, and returns SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG lays out a DOT graph with neato and returns a PNG image.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based root element with one
// whose width and height match the viewBox.
func normalizeViewBox(data []byte) []byte {
	match := viewBoxRe.FindSubmatch(data)
	if match == nil {
		return data
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return data
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(data, []byte(root))
}
