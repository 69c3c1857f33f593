package view

import (
	"github.com/matzehuels/netgraph/pkg/dataset"
	"github.com/matzehuels/netgraph/pkg/force"
)

// Scene is one immutable frame: records, positions and interaction state.
// Every renderer draws from a Scene. Slices are shared between scenes and
// must not be modified.
type Scene struct {
	ViewID string  `json:"view,omitempty"`
	State  State   `json:"state"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Nodes     []dataset.NodeRecord `json:"nodes"`
	Edges     []dataset.EdgeRecord `json:"edges"`
	Positions []force.Point        `json:"positions"`

	Tick    int     `json:"tick"`
	Alpha   float64 `json:"alpha"`
	Settled bool    `json:"settled"`

	Interaction Interaction `json:"interaction"`

	// LoadError is the load failure message when State is RenderedWithError.
	LoadError string `json:"load_error,omitempty"`

	index map[string]int
}

// NewScene builds a scene for a dataset and snapshot with idle interaction.
func NewScene(d *dataset.Dataset, snap force.Snapshot, width, height float64) Scene {
	s := Scene{
		State:       StateRendered,
		Width:       width,
		Height:      height,
		Nodes:       d.Nodes,
		Edges:       d.Edges,
		Positions:   snap.Positions,
		Tick:        snap.Tick,
		Alpha:       snap.Alpha,
		Interaction: NewInteraction(),
	}
	return s.indexed()
}

func (s Scene) indexed() Scene {
	s.index = make(map[string]int, len(s.Nodes))
	for i, n := range s.Nodes {
		s.index[n.ID] = i
	}
	return s
}

// Position returns the graph position of a node.
func (s Scene) Position(id string) (force.Point, bool) {
	i, ok := s.lookup(id)
	if !ok || i >= len(s.Positions) {
		return force.Point{}, false
	}
	return s.Positions[i], true
}

// Node returns the record for id.
func (s Scene) Node(id string) (dataset.NodeRecord, bool) {
	i, ok := s.lookup(id)
	if !ok {
		return dataset.NodeRecord{}, false
	}
	return s.Nodes[i], true
}

func (s Scene) lookup(id string) (int, bool) {
	if s.index != nil {
		i, ok := s.index[id]
		return i, ok
	}
	for i, n := range s.Nodes {
		if n.ID == id {
			return i, true
		}
	}
	return 0, false
}

// EdgeOpacity returns the opacity of edge i under the current hover.
func (s Scene) EdgeOpacity(i int) float64 {
	if !s.Interaction.Hovered {
		return OpacityInitial
	}
	return EdgeOpacity(s.Edges[i], s.Interaction.Hover)
}
