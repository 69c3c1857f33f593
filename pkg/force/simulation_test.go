package force

import (
	"math"
	"testing"

	"github.com/matzehuels/netgraph/pkg/dataset"
)

func ptr(v float64) *float64 { return &v }

func mustDataset(t *testing.T, nodes []dataset.NodeRecord, edges []dataset.EdgeRecord) *dataset.Dataset {
	t.Helper()
	d, err := dataset.New(nodes, edges)
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	return d
}

func pair(t *testing.T) *dataset.Dataset {
	return mustDataset(t,
		[]dataset.NodeRecord{
			{ID: "A", Role: "student", Size: ptr(10)},
			{ID: "B", Role: "professor", Size: ptr(15)},
		},
		[]dataset.EdgeRecord{{Source: "A", Target: "B", Relationship: "colleagues"}},
	)
}

func dist(a, b Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

func TestLinkDistance(t *testing.T) {
	tests := []struct {
		rel  string
		want float64
	}{
		{"friends", 80},
		{"colleagues", 100},
		{"student-teacher", 120},
		{"", 100},
		{"rivals", 100},
		{"Friends", 100},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			if got := LinkDistance(tt.rel); got != tt.want {
				t.Errorf("LinkDistance(%q) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}

func TestChargeStrength(t *testing.T) {
	tests := []struct {
		role string
		want float64
	}{
		{"professor", -400},
		{"student", -200},
		{"", -200},
		{"Professor", -200},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			if got := ChargeStrength(tt.role); got != tt.want {
				t.Errorf("ChargeStrength(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestCollideRadius(t *testing.T) {
	if got := CollideRadius(dataset.NodeRecord{Size: ptr(10)}); got != 15 {
		t.Errorf("CollideRadius(size 10) = %v, want 15", got)
	}
	if got := CollideRadius(dataset.NodeRecord{}); got != 25 {
		t.Errorf("CollideRadius(default) = %v, want 25", got)
	}
}

func TestRulesOverrides(t *testing.T) {
	margin := 0.0
	r := Rules{
		Distances: map[string]float64{"friends": 50},
		Charges:   map[string]float64{"student": -10},
		Margin:    &margin,
	}
	if got := r.distance("friends"); got != 50 {
		t.Errorf("distance(friends) = %v, want 50", got)
	}
	if got := r.distance("colleagues"); got != 100 {
		t.Errorf("distance(colleagues) = %v, want 100", got)
	}
	if got := r.charge("student"); got != -10 {
		t.Errorf("charge(student) = %v, want -10", got)
	}
	if got := r.charge("professor"); got != -400 {
		t.Errorf("charge(professor) = %v, want -400", got)
	}
	if got := r.radius(dataset.NodeRecord{Size: ptr(10)}); got != 10 {
		t.Errorf("radius = %v, want 10", got)
	}
}

func TestInitialPlacement(t *testing.T) {
	s := New(pair(t), DefaultConfig())
	a, _ := s.Body("A")
	if math.Abs(a.X-10*math.Sqrt(0.5)) > 1e-9 || a.Y != 0 {
		t.Errorf("A starts at (%v, %v), want (%v, 0)", a.X, a.Y, 10*math.Sqrt(0.5))
	}
	b, _ := s.Body("B")
	if r := math.Hypot(b.X, b.Y); math.Abs(r-10*math.Sqrt(1.5)) > 1e-9 {
		t.Errorf("B starts at radius %v, want %v", r, 10*math.Sqrt(1.5))
	}
	if s.Alpha() != 1 || s.AlphaTarget() != 0 {
		t.Errorf("alpha/target = %v/%v, want 1/0", s.Alpha(), s.AlphaTarget())
	}
}

func TestStepCoolsAlpha(t *testing.T) {
	s := New(pair(t), DefaultConfig())
	snap := s.Step()
	want := 1 - AlphaDecay
	if math.Abs(snap.Alpha-want) > 1e-12 {
		t.Errorf("alpha after one step = %v, want %v", snap.Alpha, want)
	}
	if snap.Tick != 1 {
		t.Errorf("tick = %d, want 1", snap.Tick)
	}
	if len(snap.Positions) != 2 {
		t.Fatalf("positions = %d, want 2", len(snap.Positions))
	}
}

func TestRunSettles(t *testing.T) {
	s := New(pair(t), DefaultConfig())
	snap := s.Run(0)
	if !s.Settled() {
		t.Fatal("simulation should settle")
	}
	if snap.Tick < 300 || snap.Tick > 301 {
		t.Errorf("settled after %d ticks, want 300 or 301", snap.Tick)
	}
	if snap.Alpha >= AlphaMin {
		t.Errorf("alpha = %v, want < %v", snap.Alpha, AlphaMin)
	}
}

func TestRunMaxTicks(t *testing.T) {
	s := New(pair(t), DefaultConfig())
	snap := s.Run(10)
	if snap.Tick != 10 || s.Settled() {
		t.Errorf("tick=%d settled=%v, want 10 and false", snap.Tick, s.Settled())
	}
}

func TestSettledLayout(t *testing.T) {
	cfg := DefaultConfig()
	s := New(pair(t), cfg)
	snap := s.Run(0)

	a, b := snap.Positions[0], snap.Positions[1]
	d := dist(a, b)
	if d < 25 {
		t.Errorf("A-B distance %v: circles overlap", d)
	}
	if d > 400 {
		t.Errorf("A-B distance %v: link did not hold", d)
	}

	cx, cy := (a.X+b.X)/2, (a.Y+b.Y)/2
	if math.Abs(cx-cfg.Width/2) > 1 || math.Abs(cy-cfg.Height/2) > 1 {
		t.Errorf("mean = (%v, %v), want near (%v, %v)", cx, cy, cfg.Width/2, cfg.Height/2)
	}
}

func TestSampleDatasetSpreadsOut(t *testing.T) {
	d := mustDataset(t,
		[]dataset.NodeRecord{
			{ID: "A", Role: "professor"},
			{ID: "B", Role: "student"},
			{ID: "C", Role: "student"},
			{ID: "D", Role: "student"},
		},
		[]dataset.EdgeRecord{
			{Source: "A", Target: "B", Relationship: "student-teacher"},
			{Source: "A", Target: "C", Relationship: "student-teacher"},
			{Source: "B", Target: "C", Relationship: "friends"},
		},
	)
	snap := New(d, DefaultConfig()).Run(0)
	for i := range snap.Positions {
		for j := i + 1; j < len(snap.Positions); j++ {
			if got := dist(snap.Positions[i], snap.Positions[j]); got < 40 {
				t.Errorf("nodes %d and %d are %v apart, want >= 40", i, j, got)
			}
		}
	}
}

func TestDeterministic(t *testing.T) {
	d := pair(t)
	a := New(d, DefaultConfig()).Run(0)
	b := New(d, DefaultConfig()).Run(0)
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatalf("position %d differs: %v vs %v", i, a.Positions[i], b.Positions[i])
		}
	}
}

func TestCoincidentNodesSeparate(t *testing.T) {
	d := mustDataset(t, []dataset.NodeRecord{{ID: "A"}, {ID: "B"}}, nil)
	s := New(d, DefaultConfig())
	place(s, map[string]Point{"A": {X: 400, Y: 200}, "B": {X: 400, Y: 200}})
	snap := s.Run(0)
	if got := dist(snap.Positions[0], snap.Positions[1]); got < 40 {
		t.Errorf("coincident nodes ended %v apart, want >= 40", got)
	}
}

func TestEmptyDataset(t *testing.T) {
	d := mustDataset(t, nil, nil)
	s := New(d, DefaultConfig())
	snap := s.Run(0)
	if len(snap.Positions) != 0 || !s.Settled() {
		t.Errorf("empty simulation: positions=%d settled=%v", len(snap.Positions), s.Settled())
	}
}

func TestDrag(t *testing.T) {
	s := New(pair(t), DefaultConfig())
	s.Run(0)
	if !s.Settled() {
		t.Fatal("expected settled before drag")
	}

	if err := s.DragStart("A"); err != nil {
		t.Fatalf("DragStart: %v", err)
	}
	if s.Settled() {
		t.Error("DragStart should restart the simulation")
	}
	if s.AlphaTarget() != DragTarget {
		t.Errorf("alphaTarget = %v, want %v", s.AlphaTarget(), DragTarget)
	}

	to := Point{X: 100, Y: 50}
	if err := s.DragMove("A", to); err != nil {
		t.Fatalf("DragMove: %v", err)
	}
	s.Step()
	a, _ := s.Body("A")
	if a.X != to.X || a.Y != to.Y || a.VX != 0 || a.VY != 0 {
		t.Errorf("pinned body = %+v, want at %v with zero velocity", a, to)
	}
	if !a.Pinned() {
		t.Error("body should be pinned while dragged")
	}
	if s.Alpha() <= AlphaMin {
		t.Errorf("alpha = %v should rise toward drag target", s.Alpha())
	}

	if err := s.DragEnd("A"); err != nil {
		t.Fatalf("DragEnd: %v", err)
	}
	if s.AlphaTarget() != 0 {
		t.Errorf("alphaTarget after release = %v, want 0", s.AlphaTarget())
	}
	a, _ = s.Body("A")
	if a.Pinned() || a.FX != nil || a.FY != nil {
		t.Error("DragEnd should clear the pin")
	}

	s.Run(0)
	if !s.Settled() {
		t.Error("simulation should settle again after release")
	}
}

func TestOverlappingDrags(t *testing.T) {
	s := New(pair(t), DefaultConfig())
	_ = s.DragStart("A")
	_ = s.DragStart("B")
	_ = s.DragEnd("A")
	if s.AlphaTarget() != DragTarget {
		t.Errorf("alphaTarget with one drag active = %v, want %v", s.AlphaTarget(), DragTarget)
	}
	_ = s.DragEnd("B")
	if s.AlphaTarget() != 0 {
		t.Errorf("alphaTarget after all drags = %v, want 0", s.AlphaTarget())
	}
}

func TestDragUnknownNode(t *testing.T) {
	s := New(pair(t), DefaultConfig())
	if err := s.DragStart("Z"); err == nil {
		t.Error("DragStart(Z) should fail")
	}
	if err := s.DragMove("Z", Point{}); err == nil {
		t.Error("DragMove(Z) should fail")
	}
	if err := s.DragEnd("Z"); err == nil {
		t.Error("DragEnd(Z) should fail")
	}
	if s.AlphaTarget() != 0 {
		t.Error("failed drag should not change alphaTarget")
	}
}

func TestHit(t *testing.T) {
	s := New(pair(t), DefaultConfig())
	place(s, map[string]Point{"A": {X: 100, Y: 100}, "B": {X: 300, Y: 100}})

	tests := []struct {
		name string
		p    Point
		want string
	}{
		{"center of A", Point{X: 100, Y: 100}, "A"},
		{"edge of A", Point{X: 110, Y: 100}, "A"},
		{"outside A", Point{X: 111, Y: 100}, ""},
		{"inside B", Point{X: 314, Y: 100}, "B"},
		{"empty", Point{X: 200, Y: 300}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Hit(tt.p); got != tt.want {
				t.Errorf("Hit(%v) = %q, want %q", tt.p, got, tt.want)
			}
		})
	}
}

// place moves bodies to fixed positions with zero velocity.
func place(s *Simulation, positions map[string]Point) {
	for id, p := range positions {
		i := s.index[id]
		s.bodies[i].X, s.bodies[i].Y = p.X, p.Y
		s.bodies[i].VX, s.bodies[i].VY = 0, 0
	}
}

func TestRepeatedDragStart(t *testing.T) {
	s := New(pair(t), DefaultConfig())
	s.Run(0)

	_ = s.DragStart("A")
	_ = s.DragStart("A")
	if err := s.DragEnd("A"); err != nil {
		t.Fatalf("DragEnd: %v", err)
	}
	if s.AlphaTarget() != 0 {
		t.Errorf("alphaTarget after release = %v, want 0", s.AlphaTarget())
	}
	if len(s.dragging) != 0 {
		t.Errorf("dragging = %v, want none", s.dragging)
	}

	s.Run(0)
	if !s.Settled() {
		t.Error("simulation should settle after a repeated DragStart is released")
	}
}

func TestDragWithoutStart(t *testing.T) {
	s := New(pair(t), DefaultConfig())
	s.Run(0)

	if err := s.DragMove("A", Point{X: 10, Y: 10}); err == nil {
		t.Error("DragMove without DragStart should fail")
	}
	if a, _ := s.Body("A"); a.Pinned() {
		t.Error("DragMove without DragStart pinned the body")
	}
	if err := s.DragEnd("A"); err != nil {
		t.Errorf("DragEnd without DragStart = %v, want nil", err)
	}
	if !s.Settled() || s.AlphaTarget() != 0 {
		t.Errorf("settled=%v alphaTarget=%v after stray drag calls", s.Settled(), s.AlphaTarget())
	}
}
