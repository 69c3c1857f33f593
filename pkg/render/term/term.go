package term

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/netgraph/pkg/force"
	"github.com/matzehuels/netgraph/pkg/view"
)

// Glyphs.
const (
	nodeGlyph = '●'
	edgeGlyph = '·'
)

var (
	edgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
	brightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	arrowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#dddddd"))
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444"))
	tipStyle    = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("#222222")).Foreground(lipgloss.Color("#ffffff"))
	tipName     = lipgloss.NewStyle().Bold(true)
)

// Grid maps between scene screen coordinates and character cells.
type Grid struct {
	Cols, Rows    int
	Width, Height float64
}

// NewGrid returns a grid of cols x rows cells covering the scene canvas.
func NewGrid(s view.Scene, cols, rows int) Grid {
	return Grid{Cols: max(cols, 1), Rows: max(rows, 1), Width: s.Width, Height: s.Height}
}

// Cell returns the cell containing a screen point.
func (g Grid) Cell(p force.Point) (col, row int) {
	col = int(math.Floor(p.X / g.Width * float64(g.Cols)))
	row = int(math.Floor(p.Y / g.Height * float64(g.Rows)))
	return col, row
}

// Point returns the screen point at the center of a cell.
func (g Grid) Point(col, row int) force.Point {
	return force.Point{
		X: (float64(col) + 0.5) * g.Width / float64(g.Cols),
		Y: (float64(row) + 0.5) * g.Height / float64(g.Rows),
	}
}

func (g Grid) inside(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.Cols && row < g.Rows
}

type cell struct {
	ch    rune
	style *lipgloss.Style
}

type canvas struct {
	grid  Grid
	cells [][]cell
}

func newCanvas(g Grid) *canvas {
	c := &canvas{grid: g, cells: make([][]cell, g.Rows)}
	for r := range c.cells {
		c.cells[r] = make([]cell, g.Cols)
		for i := range c.cells[r] {
			c.cells[r][i].ch = ' '
		}
	}
	return c
}

func (c *canvas) set(col, row int, ch rune, st *lipgloss.Style) {
	if c.grid.inside(col, row) {
		c.cells[row][col] = cell{ch: ch, style: st}
	}
}

// line draws a Bresenham line and returns the cell just before the end.
func (c *canvas) line(x0, y0, x1, y1 int, st *lipgloss.Style) (int, int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	err := dx + dy
	px, py := x0, y0
	for {
		if x0 == x1 && y0 == y1 {
			return px, py
		}
		c.set(x0, y0, edgeGlyph, st)
		px, py = x0, y0
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for r, row := range c.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, cl := range row {
			if cl.style == nil {
				b.WriteRune(cl.ch)
				continue
			}
			b.WriteString(cl.style.Render(string(cl.ch)))
		}
	}
	return b.String()
}

// Render draws a scene on a cols x rows character canvas inside a rounded
// frame, with a status line and, when visible, the tooltip below it.
func Render(s view.Scene, cols, rows int) string {
	g := NewGrid(s, cols, rows)
	c := newCanvas(g)
	zoom := s.Interaction.Zoom

	cellOf := func(id string) (int, int, bool) {
		p, ok := s.Position(id)
		if !ok {
			return 0, 0, false
		}
		col, row := g.Cell(zoom.Apply(p))
		return col, row, true
	}

	for i, e := range s.Edges {
		x0, y0, ok0 := cellOf(e.Source)
		x1, y1, ok1 := cellOf(e.Target)
		if !ok0 || !ok1 {
			continue
		}
		st := edgeStyleFor(s.EdgeOpacity(i))
		ax, ay := c.line(x0, y0, x1, y1, st)
		if e.Directed() && (ax != x0 || ay != y0) {
			c.set(ax, ay, arrow(x1-ax, y1-ay), &arrowStyle)
		}
	}

	for _, n := range s.Nodes {
		col, row, ok := cellOf(n.ID)
		if !ok {
			continue
		}
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(n.Fill()))
		if n.ID == s.Interaction.Hover || n.ID == s.Interaction.Drag {
			st = st.Bold(true).Underline(true)
		}
		c.set(col, row, nodeGlyph, &st)
		c.set(col+1, row, ' ', nil)
		for k, ch := range n.ID {
			c.set(col+2+k, row, ch, &labelStyle)
		}
	}

	out := frameStyle.Render(c.String()) + "\n" + status(s)
	if tip := s.Interaction.Tooltip; tip.Visible() {
		out += "\n" + tooltip(tip.Text)
	}
	return out
}

func edgeStyleFor(opacity float64) *lipgloss.Style {
	switch {
	case opacity >= 1:
		return &brightStyle
	case opacity <= 0.1:
		return &faintStyle
	default:
		return &edgeStyle
	}
}

func status(s view.Scene) string {
	state := fmt.Sprintf("%s  nodes %d  edges %d  tick %d  alpha %.3f  zoom %.2fx",
		s.State, len(s.Nodes), len(s.Edges), s.Tick, s.Alpha, s.Interaction.Zoom.K)
	if s.Settled {
		state += "  settled"
	}
	if s.LoadError != "" {
		state += "  " + s.LoadError
	}
	return labelStyle.Render(state)
}

func tooltip(t view.TooltipText) string {
	lines := []string{
		tipName.Render(t.Name),
		"Role: " + t.Role,
		"Department: " + t.Department,
		"Age: " + t.Age,
		"Friends: " + t.Friends,
	}
	return tipStyle.Render(strings.Join(lines, "\n"))
}

// arrow picks a glyph pointing along (dx, dy).
func arrow(dx, dy int) rune {
	switch {
	case dx > 0 && dy == 0:
		return '→'
	case dx < 0 && dy == 0:
		return '←'
	case dx == 0 && dy > 0:
		return '↓'
	case dx == 0 && dy < 0:
		return '↑'
	case dx > 0 && dy > 0:
		return '↘'
	case dx > 0 && dy < 0:
		return '↗'
	case dx < 0 && dy > 0:
		return '↙'
	default:
		return '↖'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
