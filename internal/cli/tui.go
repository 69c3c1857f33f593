package cli

import (
	"bytes"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/netgraph/pkg/force"
	"github.com/matzehuels/netgraph/pkg/render/term"
	"github.com/matzehuels/netgraph/pkg/view"
)

// Lines below the canvas: frame border, status, tooltip box, help, log.
const reservedRows = 2 + 1 + 7 + 1 + 1

// wheelStep is the wheel delta sent per scroll notch.
const wheelStep = 100

var helpStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// WatchModel - live terminal view
// =============================================================================

type frameMsg view.Scene

type closedMsg struct{}

// WatchModel is the bubbletea model for `netgraph watch`. Mouse input is
// forwarded to the view as pointer events; frames come back through a
// subscription.
type WatchModel struct {
	view   *view.View
	frames <-chan view.Scene
	logs   *lastLine

	scene         view.Scene
	width, height int
	inside        bool
	err           error
}

// NewWatchModel subscribes to v. logs, if set, supplies the status line.
func NewWatchModel(v *view.View, frames <-chan view.Scene, logs *lastLine) WatchModel {
	return WatchModel{view: v, frames: frames, logs: logs, scene: v.Scene()}
}

func waitFrame(ch <-chan view.Scene) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return frameMsg(s)
	}
}

func (m WatchModel) Init() tea.Cmd {
	return waitFrame(m.frames)
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			m.pointer(view.PointerEvent{Type: view.PointerWheel, X: m.scene.Width / 2, Y: m.scene.Height / 2, DeltaY: -wheelStep})
		case "-", "_":
			m.pointer(view.PointerEvent{Type: view.PointerWheel, X: m.scene.Width / 2, Y: m.scene.Height / 2, DeltaY: wheelStep})
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.MouseMsg:
		m.mouse(msg)
	case frameMsg:
		m.scene = view.Scene(msg)
		return m, waitFrame(m.frames)
	case closedMsg:
		return m, tea.Quit
	}
	return m, nil
}

// canvasSize returns the canvas in cells, inside the frame border.
func (m WatchModel) canvasSize() (cols, rows int) {
	return max(m.width-2, 10), max(m.height-reservedRows, 4)
}

func (m WatchModel) grid() term.Grid {
	cols, rows := m.canvasSize()
	return term.NewGrid(m.scene, cols, rows)
}

// mouse translates a terminal mouse event into a pointer event.
func (m *WatchModel) mouse(msg tea.MouseMsg) {
	g := m.grid()
	col, row := msg.X-1, msg.Y-1
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		if m.inside {
			m.inside = false
			m.pointer(view.PointerEvent{Type: view.PointerLeave})
		}
		return
	}
	m.inside = true
	at := m.snap(g, col, row)

	ev := view.PointerEvent{X: at.X, Y: at.Y}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		ev.Type, ev.DeltaY = view.PointerWheel, -wheelStep
	case msg.Button == tea.MouseButtonWheelDown:
		ev.Type, ev.DeltaY = view.PointerWheel, wheelStep
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		ev.Type = view.PointerDown
	case msg.Action == tea.MouseActionRelease:
		ev.Type = view.PointerUp
	case msg.Action == tea.MouseActionMotion:
		ev.Type = view.PointerMove
	default:
		return
	}
	m.pointer(ev)
}

// snap returns the screen position of the node drawn in a cell, or the
// cell center. A cell is coarser than a node, so aiming at a glyph must
// land on the node.
func (m WatchModel) snap(g term.Grid, col, row int) force.Point {
	for _, p := range m.scene.Positions {
		sp := m.scene.Interaction.Zoom.Apply(p)
		if c, r := g.Cell(sp); c == col && r == row {
			return sp
		}
	}
	return g.Point(col, row)
}

func (m *WatchModel) pointer(ev view.PointerEvent) {
	if err := m.view.Pointer(ev); err != nil {
		m.err = err
	}
}

func (m WatchModel) View() string {
	if m.width == 0 {
		return StyleDim.Render("Loading...")
	}
	cols, rows := m.canvasSize()

	var b strings.Builder
	b.WriteString(term.Render(m.scene, cols, rows))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("drag nodes · drag background to pan · wheel or +/- to zoom · q quit"))
	switch {
	case m.err != nil:
		b.WriteString("\n" + styleIconError.Render(iconError) + " " + m.err.Error())
	case m.logs != nil && m.logs.String() != "":
		b.WriteString("\n" + StyleDim.Render(m.logs.String()))
	}
	return b.String()
}

// =============================================================================
// lastLine - log sink for the status line
// =============================================================================

// lastLine is an io.Writer that keeps the last complete line written.
type lastLine struct {
	mu   sync.Mutex
	line string
}

func (l *lastLine) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lines := bytes.Split(bytes.TrimRight(p, "\n"), []byte("\n"))
	if last := bytes.TrimSpace(lines[len(lines)-1]); len(last) > 0 {
		l.line = string(last)
	}
	return len(p), nil
}

func (l *lastLine) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.line
}
