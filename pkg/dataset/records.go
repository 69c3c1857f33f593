package dataset

import (
	neterrors "github.com/matzehuels/netgraph/pkg/errors"
)

// Render defaults for nodes that leave size or color blank.
const (
	DefaultRadius = 20.0
	DefaultColor  = "#3264a8"
)

// Relationship values with dedicated rest lengths.
const (
	RelFriends        = "friends"
	RelColleagues     = "colleagues"
	RelStudentTeacher = "student-teacher"
)

// Role that repels more strongly than everyone else.
const RoleProfessor = "professor"

// EdgeTypeDirected marks edges drawn with an arrowhead.
const EdgeTypeDirected = "directed"

// Column names of the node table.
const (
	ColID         = "id"
	ColName       = "name"
	ColRole       = "role"
	ColAge        = "age"
	ColDepartment = "department"
	ColFriends    = "friends"
	ColSize       = "size"
	ColColor      = "color"
)

// Column names of the edge table. ColDepartment is shared with nodes.
const (
	ColSource       = "source"
	ColTarget       = "target"
	ColRelationship = "relationship"
	ColCourse       = "course"
	ColSince        = "since"
	ColStrength     = "strength"
	ColType         = "type"
)

// NodeRecord is one row of the node table.
type NodeRecord struct {
	ID         string   `json:"id"`
	Name       string   `json:"name,omitempty"`
	Role       string   `json:"role,omitempty"`
	Department string   `json:"department,omitempty"`
	Age        *float64 `json:"age,omitempty"`
	Friends    *float64 `json:"friends,omitempty"`
	Size       *float64 `json:"size,omitempty"`
	Color      string   `json:"color,omitempty"`
}

// Radius returns the drawn circle radius: Size when positive, else DefaultRadius.
func (n NodeRecord) Radius() float64 {
	if n.Size != nil && *n.Size > 0 {
		return *n.Size
	}
	return DefaultRadius
}

// Fill returns the node color, or DefaultColor when none was given.
func (n NodeRecord) Fill() string {
	if n.Color != "" {
		return n.Color
	}
	return DefaultColor
}

// EdgeRecord is one row of the edge table.
type EdgeRecord struct {
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	Relationship string   `json:"relationship,omitempty"`
	Type         string   `json:"type,omitempty"`
	Strength     *float64 `json:"strength,omitempty"`
	Since        *int     `json:"since,omitempty"`
	Course       string   `json:"course,omitempty"`
	Department   string   `json:"department,omitempty"`
}

// Directed reports whether the edge is drawn with an arrowhead.
func (e EdgeRecord) Directed() bool { return e.Type == EdgeTypeDirected }

// Touches reports whether id is either endpoint of the edge.
func (e EdgeRecord) Touches(id string) bool { return e.Source == id || e.Target == id }

// Dataset is a loaded, referentially consistent node/edge pair.
type Dataset struct {
	Nodes []NodeRecord
	Edges []EdgeRecord

	// Gaps lists edges dropped because an endpoint did not resolve.
	Gaps []*neterrors.GapError

	index map[string]int
}

// New builds a Dataset from parsed records. Node ids must be unique.
// Edges with an unknown endpoint are dropped and recorded in Gaps.
func New(nodes []NodeRecord, edges []EdgeRecord) (*Dataset, error) {
	d := &Dataset{
		Nodes: nodes,
		Edges: make([]EdgeRecord, 0, len(edges)),
		index: make(map[string]int, len(nodes)),
	}
	for i, n := range nodes {
		if _, dup := d.index[n.ID]; dup {
			return nil, neterrors.New(neterrors.ErrCodeDuplicateNode, "duplicate node id %q (row %d)", n.ID, i+1)
		}
		d.index[n.ID] = i
	}
	for i, e := range edges {
		if gap := d.resolve(i+1, e); gap != nil {
			d.Gaps = append(d.Gaps, gap)
			continue
		}
		d.Edges = append(d.Edges, e)
	}
	return d, nil
}

func (d *Dataset) resolve(row int, e EdgeRecord) *neterrors.GapError {
	for _, id := range []string{e.Source, e.Target} {
		if _, ok := d.index[id]; !ok {
			return &neterrors.GapError{Row: row, Source: e.Source, Target: e.Target, Missing: id}
		}
	}
	return nil
}

// Node returns the record with the given id.
func (d *Dataset) Node(id string) (NodeRecord, bool) {
	i, ok := d.index[id]
	if !ok {
		return NodeRecord{}, false
	}
	return d.Nodes[i], true
}

// NodeIndex returns the position of id in Nodes, or -1.
func (d *Dataset) NodeIndex(id string) int {
	if i, ok := d.index[id]; ok {
		return i
	}
	return -1
}

// NodeCount returns the number of nodes.
func (d *Dataset) NodeCount() int { return len(d.Nodes) }

// EdgeCount returns the number of resolved edges.
func (d *Dataset) EdgeCount() int { return len(d.Edges) }

// ErrorNodeID is the id of the single node in ErrorDataset.
const ErrorNodeID = "Error"

// ErrorDataset returns the synthetic graph shown when loading fails:
// one red node and no edges.
func ErrorDataset() *Dataset {
	zero, size := 0.0, DefaultRadius
	d, _ := New([]NodeRecord{{
		ID:         ErrorNodeID,
		Name:       "CSV Load Error",
		Role:       "error",
		Department: "Error",
		Age:        &zero,
		Friends:    &zero,
		Size:       &size,
		Color:      "#ff0000",
	}}, nil)
	return d
}
