package graph

import (
	"fmt"
	"math"

	"github.com/matzehuels/netgraph/pkg/dataset"
	"github.com/matzehuels/netgraph/pkg/force"
	"github.com/matzehuels/netgraph/pkg/view"
)

// =============================================================================
// Constants
// =============================================================================

// VizTypeForce identifies a force-directed layout.
const VizTypeForce = "force"

// =============================================================================
// Layout - Saved Visualization
// =============================================================================

// Layout is the serialization format of a laid-out graph: the records that
// were loaded plus the position of every node. It is what `netgraph layout`
// writes and `netgraph visualize` reads.
type Layout struct {
	VizType string  `json:"viz_type"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`

	// Simulation state at export time.
	Tick    int     `json:"tick"`
	Alpha   float64 `json:"alpha"`
	Settled bool    `json:"settled"`

	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	// LoadError is set when the layout is of the error graph.
	LoadError string `json:"load_error,omitempty"`
}

// =============================================================================
// Node - Positioned Node Record
// =============================================================================

// Node is a node record with its layout position.
type Node struct {
	ID         string   `json:"id"`
	Name       string   `json:"name,omitempty"`
	Role       string   `json:"role,omitempty"`
	Department string   `json:"department,omitempty"`
	Age        *float64 `json:"age,omitempty"`
	Friends    *float64 `json:"friends,omitempty"`
	Size       *float64 `json:"size,omitempty"`
	Color      string   `json:"color,omitempty"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
}

// =============================================================================
// Edge - Relationship
// =============================================================================

// Edge is an edge record.
type Edge struct {
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	Relationship string   `json:"relationship,omitempty"`
	Type         string   `json:"type,omitempty"`
	Strength     *float64 `json:"strength,omitempty"`
	Since        *int     `json:"since,omitempty"`
	Course       string   `json:"course,omitempty"`
	Department   string   `json:"department,omitempty"`
}

// =============================================================================
// Scene ↔ Layout Conversion
// =============================================================================

// FromScene captures a scene as a Layout. Node order is preserved so the
// layout re-renders identically.
func FromScene(s view.Scene) Layout {
	l := Layout{
		VizType:   VizTypeForce,
		Width:     s.Width,
		Height:    s.Height,
		Tick:      s.Tick,
		Alpha:     s.Alpha,
		Settled:   s.Settled,
		Nodes:     make([]Node, 0, len(s.Nodes)),
		Edges:     make([]Edge, len(s.Edges)),
		LoadError: s.LoadError,
	}
	for i, n := range s.Nodes {
		var p force.Point
		if i < len(s.Positions) {
			p = s.Positions[i]
		}
		l.Nodes = append(l.Nodes, Node{
			ID:         n.ID,
			Name:       n.Name,
			Role:       n.Role,
			Department: n.Department,
			Age:        n.Age,
			Friends:    n.Friends,
			Size:       n.Size,
			Color:      n.Color,
			X:          p.X,
			Y:          p.Y,
		})
	}
	for i, e := range s.Edges {
		l.Edges[i] = Edge(e)
	}
	return l
}

// Dataset rebuilds the node and edge records. Edges with unknown endpoints
// are dropped the same way a CSV load drops them.
func (l Layout) Dataset() (*dataset.Dataset, error) {
	nodes := make([]dataset.NodeRecord, len(l.Nodes))
	for i, n := range l.Nodes {
		nodes[i] = dataset.NodeRecord{
			ID:         n.ID,
			Name:       n.Name,
			Role:       n.Role,
			Department: n.Department,
			Age:        n.Age,
			Friends:    n.Friends,
			Size:       n.Size,
			Color:      n.Color,
		}
	}
	edges := make([]dataset.EdgeRecord, len(l.Edges))
	for i, e := range l.Edges {
		edges[i] = dataset.EdgeRecord(e)
	}
	return dataset.New(nodes, edges)
}

// Scene converts the layout back into a renderable scene.
func (l Layout) Scene() (view.Scene, error) {
	d, err := l.Dataset()
	if err != nil {
		return view.Scene{}, err
	}
	snap := force.Snapshot{Tick: l.Tick, Alpha: l.Alpha, Positions: make([]force.Point, len(l.Nodes))}
	for i, n := range l.Nodes {
		snap.Positions[i] = force.Point{X: n.X, Y: n.Y}
	}
	s := view.NewScene(d, snap, l.Width, l.Height)
	s.Settled = l.Settled
	if l.LoadError != "" {
		s.State = view.StateRenderedWithError
		s.LoadError = l.LoadError
	}
	return s, nil
}

func (l Layout) validate() error {
	if l.VizType != VizTypeForce {
		return fmt.Errorf("unsupported viz_type %q", l.VizType)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("invalid canvas %gx%g", l.Width, l.Height)
	}
	for _, n := range l.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node without id")
		}
		if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsInf(n.X, 0) || math.IsInf(n.Y, 0) {
			return fmt.Errorf("node %q has no finite position", n.ID)
		}
	}
	return nil
}
