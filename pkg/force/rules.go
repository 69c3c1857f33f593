package force

import "github.com/matzehuels/netgraph/pkg/dataset"

// Rest lengths per relationship.
const (
	DistanceFriends        = 80.0
	DistanceColleagues     = 100.0
	DistanceStudentTeacher = 120.0
	DistanceDefault        = 100.0
)

// Many-body strengths per role. Negative values repel.
const (
	ChargeProfessor = -400.0
	ChargeDefault   = -200.0
)

// CollideMargin is added to the render radius to get the collision radius.
const CollideMargin = 5.0

// LinkDistance returns the rest length for an edge relationship.
func LinkDistance(relationship string) float64 {
	switch relationship {
	case dataset.RelFriends:
		return DistanceFriends
	case dataset.RelColleagues:
		return DistanceColleagues
	case dataset.RelStudentTeacher:
		return DistanceStudentTeacher
	default:
		return DistanceDefault
	}
}

// ChargeStrength returns the many-body strength for a node role.
func ChargeStrength(role string) float64 {
	if role == dataset.RoleProfessor {
		return ChargeProfessor
	}
	return ChargeDefault
}

// CollideRadius returns the minimum half-separation for a node.
func CollideRadius(n dataset.NodeRecord) float64 {
	return n.Radius() + CollideMargin
}

// Rules maps records to force parameters. The zero value uses the package
// functions above; non-nil maps override individual keys.
type Rules struct {
	Distances map[string]float64 `toml:"distances"`
	Charges   map[string]float64 `toml:"charges"`
	Margin    *float64           `toml:"collide_margin"`
}

func (r Rules) distance(rel string) float64 {
	if d, ok := r.Distances[rel]; ok {
		return d
	}
	return LinkDistance(rel)
}

func (r Rules) charge(role string) float64 {
	if c, ok := r.Charges[role]; ok {
		return c
	}
	return ChargeStrength(role)
}

func (r Rules) radius(n dataset.NodeRecord) float64 {
	if r.Margin != nil {
		return n.Radius() + *r.Margin
	}
	return CollideRadius(n)
}
