package dataset

import (
	"math"
	"strconv"

	neterrors "github.com/matzehuels/netgraph/pkg/errors"
)

// ParseNodes converts a node table into records. The id column is required
// and every row must carry a non-empty id; all other columns are optional.
func ParseNodes(t *Table) ([]NodeRecord, error) {
	if !t.Has(ColID) {
		return nil, neterrors.New(neterrors.ErrCodeLoadFailure, "node table has no %q column", ColID)
	}

	nodes := make([]NodeRecord, 0, t.Len())
	for i := range t.Rows {
		if t.blank(i) {
			continue
		}
		n := NodeRecord{
			ID:         t.Value(i, ColID),
			Name:       t.Value(i, ColName),
			Role:       t.Value(i, ColRole),
			Department: t.Value(i, ColDepartment),
			Color:      t.Value(i, ColColor),
		}
		if n.ID == "" {
			return nil, neterrors.New(neterrors.ErrCodeLoadFailure, "node row %d has an empty id", i+1)
		}

		var err error
		if n.Age, err = number(t, i, ColAge); err != nil {
			return nil, err
		}
		if n.Friends, err = number(t, i, ColFriends); err != nil {
			return nil, err
		}
		if n.Size, err = number(t, i, ColSize); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// ParseEdges converts an edge table into records. The source and target
// columns are required; course and department default to "".
func ParseEdges(t *Table) ([]EdgeRecord, error) {
	for _, col := range []string{ColSource, ColTarget} {
		if !t.Has(col) {
			return nil, neterrors.New(neterrors.ErrCodeLoadFailure, "edge table has no %q column", col)
		}
	}

	edges := make([]EdgeRecord, 0, t.Len())
	for i := range t.Rows {
		if t.blank(i) {
			continue
		}
		e := EdgeRecord{
			Source:       t.Value(i, ColSource),
			Target:       t.Value(i, ColTarget),
			Relationship: t.Value(i, ColRelationship),
			Type:         t.Value(i, ColType),
			Course:       t.Value(i, ColCourse),
			Department:   t.Value(i, ColDepartment),
		}

		var err error
		if e.Strength, err = number(t, i, ColStrength); err != nil {
			return nil, err
		}
		since, err := number(t, i, ColSince)
		if err != nil {
			return nil, err
		}
		if since != nil {
			y := int(math.Round(*since))
			e.Since = &y
		}
		edges = append(edges, e)
	}
	return edges, nil
}

// number parses a numeric cell. Empty cells are absent (nil); anything that
// is not a finite number makes the table unparseable.
func number(t *Table, row int, col string) (*float64, error) {
	s := t.Value(row, col)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, neterrors.New(neterrors.ErrCodeLoadFailure, "row %d: column %q is not a number: %q", row+1, col, s)
	}
	return &v, nil
}
