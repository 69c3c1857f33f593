package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/netgraph/pkg/view"
)

// Colors and sizes of the rendered page.
const (
	Background   = "#f0f0f0"
	EdgeStroke   = "#888"
	NodeStroke   = "#fff"
	MarkerFill   = "#666"
	HintText     = "Use mouse wheel to zoom, drag to pan"
	MarkerID     = "arrowhead"
	MarkerPath   = "M 0,-4 L 8,0 L 0,4"
	MarkerRefX   = 50
	LabelSize    = 16
	HintFontSize = 12
)

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	hint    bool
	tooltip bool
	ids     bool
}

// WithoutHint omits the zoom hint text.
func WithoutHint() Option { return func(r *renderer) { r.hint = false } }

// WithoutTooltip omits the tooltip group even when the scene has one.
func WithoutTooltip() Option { return func(r *renderer) { r.tooltip = false } }

// WithIDs adds id and data-* attributes so a page script can address
// elements. Live pages use it to map pointer targets.
func WithIDs() Option { return func(r *renderer) { r.ids = true } }

// Render draws a scene as a standalone SVG document.
func Render(s view.Scene, opts ...Option) []byte {
	r := renderer{hint: true, tooltip: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" style="background: %s"`,
		num(s.Width), num(s.Height), num(s.Width), num(s.Height), Background)
	if r.ids {
		fmt.Fprintf(&buf, ` id="graph" data-view="%s" data-state="%s"`, escapeXML(s.ViewID), s.State)
	}
	buf.WriteString(">\n")
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", Background)

	fmt.Fprintf(&buf, `  <g class="zoom" transform="%s">`+"\n", s.Interaction.Zoom)
	renderDefs(&buf)
	renderEdges(&buf, s, r)
	renderNodes(&buf, s, r)
	renderLabels(&buf, s)
	buf.WriteString("  </g>\n")

	if r.hint {
		fmt.Fprintf(&buf, `  <text x="10" y="20" font-size="%dpx" fill="%s">%s</text>`+"\n", HintFontSize, MarkerFill, HintText)
	}
	if r.tooltip {
		renderTooltip(&buf, s)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer) {
	buf.WriteString("    <defs>\n")
	fmt.Fprintf(buf, `      <marker id="%s" viewBox="-0 -5 10 10" refX="%d" refY="0" orient="auto" markerWidth="4" markerHeight="4">`+"\n", MarkerID, MarkerRefX)
	fmt.Fprintf(buf, `        <path d="%s" fill="%s"/>`+"\n", MarkerPath, MarkerFill)
	buf.WriteString("      </marker>\n")
	buf.WriteString("    </defs>\n")
}

func renderEdges(buf *bytes.Buffer, s view.Scene, r renderer) {
	fmt.Fprintf(buf, `    <g class="links" stroke="%s" stroke-width="2">`+"\n", EdgeStroke)
	for i, e := range s.Edges {
		src, ok1 := s.Position(e.Source)
		tgt, ok2 := s.Position(e.Target)
		if !ok1 || !ok2 {
			continue
		}
		fmt.Fprintf(buf, `      <line x1="%s" y1="%s" x2="%s" y2="%s" stroke-opacity="%s"`,
			num(src.X), num(src.Y), num(tgt.X), num(tgt.Y), num(s.EdgeOpacity(i)))
		if e.Directed() {
			fmt.Fprintf(buf, ` marker-end="url(#%s)"`, MarkerID)
		}
		if r.ids {
			fmt.Fprintf(buf, ` data-source="%s" data-target="%s"`, escapeXML(e.Source), escapeXML(e.Target))
		}
		buf.WriteString("/>\n")
	}
	buf.WriteString("    </g>\n")
}

func renderNodes(buf *bytes.Buffer, s view.Scene, r renderer) {
	fmt.Fprintf(buf, `    <g class="nodes" stroke="%s" stroke-width="2">`+"\n", NodeStroke)
	for i, n := range s.Nodes {
		if i >= len(s.Positions) {
			break
		}
		p := s.Positions[i]
		buf.WriteString("      <circle")
		if r.ids {
			fmt.Fprintf(buf, ` data-id="%s"`, escapeXML(n.ID))
		}
		fmt.Fprintf(buf, ` cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n", num(p.X), num(p.Y), num(n.Radius()), escapeXML(n.Fill()))
	}
	buf.WriteString("    </g>\n")
}

func renderLabels(buf *bytes.Buffer, s view.Scene) {
	buf.WriteString(`    <g class="labels" pointer-events="none">` + "\n")
	for i, n := range s.Nodes {
		if i >= len(s.Positions) {
			break
		}
		p := s.Positions[i]
		fmt.Fprintf(buf, `      <text x="%s" y="%s" text-anchor="middle" dy=".35em" font-size="%d" fill="#fff">%s</text>`+"\n",
			num(p.X), num(p.Y), LabelSize, escapeXML(n.ID))
	}
	buf.WriteString("    </g>\n")
}

// Tooltip box layout.
const (
	tooltipPad    = 8.0
	tooltipLine   = 16.0
	tooltipWidth  = 180.0
	tooltipFont   = 12
	tooltipRadius = 4
)

func renderTooltip(buf *bytes.Buffer, s view.Scene) {
	tip := s.Interaction.Tooltip
	if !tip.Visible() {
		return
	}
	lines := TooltipLines(tip.Text)
	h := tooltipPad*2 + tooltipLine*float64(len(lines))
	fmt.Fprintf(buf, `  <g class="tooltip" transform="translate(%s,%s)" opacity="%s" pointer-events="none">`+"\n",
		num(tip.At.X), num(tip.At.Y), num(tip.Opacity))
	fmt.Fprintf(buf, `    <rect width="%s" height="%s" rx="%d" fill="rgba(0, 0, 0, 0.8)"/>`+"\n", num(tooltipWidth), num(h), tooltipRadius)
	fmt.Fprintf(buf, `    <text fill="white" font-size="%dpx">`+"\n", tooltipFont)
	for i, line := range lines {
		weight := ""
		if i == 0 {
			weight = ` font-weight="bold"`
		}
		fmt.Fprintf(buf, `      <tspan x="%s" y="%s"%s>%s</tspan>`+"\n",
			num(tooltipPad), num(tooltipPad+tooltipLine*float64(i+1)-4), weight, escapeXML(line))
	}
	buf.WriteString("    </text>\n")
	buf.WriteString("  </g>\n")
}

// TooltipLines returns the tooltip text, name first.
func TooltipLines(t view.TooltipText) []string {
	return []string{
		t.Name,
		"Role: " + t.Role,
		"Department: " + t.Department,
		"Age: " + t.Age,
		"Friends: " + t.Friends,
	}
}

func num(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
