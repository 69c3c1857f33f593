package force

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/netgraph/pkg/dataset"
	neterrors "github.com/matzehuels/netgraph/pkg/errors"
)

// Alpha schedule. AlphaDecay cools alpha from 1 to AlphaMin in 300 steps.
const (
	AlphaStart    = 1.0
	AlphaMin      = 0.001
	DragTarget    = 0.3
	VelocityDecay = 0.4
)

var AlphaDecay = 1 - math.Pow(AlphaMin, 1.0/300)

// Initial phyllotaxis placement.
const initialRadius = 10.0

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// DefaultSeed seeds the jiggle source so layouts are reproducible.
const DefaultSeed = 42

// Config configures a Simulation.
type Config struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Seed   uint64  `toml:"seed"`
	Rules  Rules   `toml:"rules"`

	// Zero values select AlphaMin, AlphaDecay and VelocityDecay.
	AlphaMin      float64 `toml:"alpha_min"`
	AlphaDecay    float64 `toml:"alpha_decay"`
	VelocityDecay float64 `toml:"velocity_decay"`
}

// DefaultConfig returns the 800x400 canvas configuration.
func DefaultConfig() Config {
	return Config{
		Width:         800,
		Height:        400,
		Seed:          DefaultSeed,
		AlphaMin:      AlphaMin,
		AlphaDecay:    AlphaDecay,
		VelocityDecay: VelocityDecay,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Width <= 0 || c.Height <= 0 {
		c.Width, c.Height = def.Width, def.Height
	}
	if c.AlphaMin <= 0 {
		c.AlphaMin = def.AlphaMin
	}
	if c.AlphaDecay <= 0 {
		c.AlphaDecay = def.AlphaDecay
	}
	if c.VelocityDecay <= 0 {
		c.VelocityDecay = def.VelocityDecay
	}
	return c
}

// Point is a position in simulation space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Body is the mutable per-node simulation state. FX/FY pin the body when set.
type Body struct {
	ID     string
	X, Y   float64
	VX, VY float64
	FX, FY *float64
}

// Pinned reports whether the body is held in place.
func (b Body) Pinned() bool { return b.FX != nil && b.FY != nil }

type link struct {
	source, target int
	distance       float64
	strength       float64
	bias           float64
}

// Snapshot is the read-only result of a step. Positions follow the node
// order of the dataset the simulation was built from.
type Snapshot struct {
	Tick      int     `json:"tick"`
	Alpha     float64 `json:"alpha"`
	Positions []Point `json:"positions"`
}

// Simulation advances a force-directed layout one step at a time.
type Simulation struct {
	cfg     Config
	bodies  []Body
	index   map[string]int
	links   []link
	charges []float64
	radii   []float64
	drawn   []float64

	alpha       float64
	alphaTarget float64
	ticks       int
	stopped     bool
	dragging    map[string]bool

	rng *rand.Rand
}

// New builds a simulation for d. Nodes get phyllotaxis starting positions
// around the origin; the center force moves them onto the canvas on the
// first step.
func New(d *dataset.Dataset, cfg Config) *Simulation {
	cfg = cfg.withDefaults()
	s := &Simulation{
		cfg:      cfg,
		bodies:   make([]Body, len(d.Nodes)),
		index:    make(map[string]int, len(d.Nodes)),
		charges:  make([]float64, len(d.Nodes)),
		radii:    make([]float64, len(d.Nodes)),
		drawn:    make([]float64, len(d.Nodes)),
		alpha:    AlphaStart,
		dragging: map[string]bool{},
		rng:      rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)),
	}

	for i, n := range d.Nodes {
		r := initialRadius * math.Sqrt(0.5+float64(i))
		a := float64(i) * initialAngle
		s.bodies[i] = Body{ID: n.ID, X: r * math.Cos(a), Y: r * math.Sin(a)}
		s.index[n.ID] = i
		s.charges[i] = cfg.Rules.charge(n.Role)
		s.radii[i] = cfg.Rules.radius(n)
		s.drawn[i] = n.Radius()
	}

	degree := make([]int, len(d.Nodes))
	for _, e := range d.Edges {
		src, tgt := s.index[e.Source], s.index[e.Target]
		s.links = append(s.links, link{source: src, target: tgt, distance: cfg.Rules.distance(e.Relationship)})
		degree[src]++
		degree[tgt]++
	}
	for i := range s.links {
		l := &s.links[i]
		ds, dt := float64(degree[l.source]), float64(degree[l.target])
		l.strength = 1 / math.Min(ds, dt)
		l.bias = ds / (ds + dt)
	}
	return s
}

// Step advances the simulation by one tick and returns the new positions.
// A stopped simulation still steps; callers check Settled to decide
// whether to keep driving it.
func (s *Simulation) Step() Snapshot {
	s.alpha += (s.alphaTarget - s.alpha) * s.cfg.AlphaDecay

	s.applyLink()
	s.applyCharge()
	s.applyCenter()
	s.applyCollide()

	decay := 1 - s.cfg.VelocityDecay
	for i := range s.bodies {
		b := &s.bodies[i]
		if b.FX != nil {
			b.X, b.VX = *b.FX, 0
		} else {
			b.VX *= decay
			b.X += b.VX
		}
		if b.FY != nil {
			b.Y, b.VY = *b.FY, 0
		} else {
			b.VY *= decay
			b.Y += b.VY
		}
	}

	s.ticks++
	if s.alpha < s.cfg.AlphaMin {
		s.stopped = true
	}
	return s.Snapshot()
}

// Run steps until the simulation settles or maxTicks steps were taken, and
// returns the final snapshot. maxTicks <= 0 means no limit.
func (s *Simulation) Run(maxTicks int) Snapshot {
	snap := s.Snapshot()
	for n := 0; !s.Settled() && (maxTicks <= 0 || n < maxTicks); n++ {
		snap = s.Step()
	}
	return snap
}

// Snapshot returns the current positions without stepping.
func (s *Simulation) Snapshot() Snapshot {
	pts := make([]Point, len(s.bodies))
	for i, b := range s.bodies {
		pts[i] = Point{X: b.X, Y: b.Y}
	}
	return Snapshot{Tick: s.ticks, Alpha: s.alpha, Positions: pts}
}

// Settled reports whether alpha has fallen below the configured minimum and
// no restart happened since.
func (s *Simulation) Settled() bool { return s.stopped }

// Restart resumes a settled simulation without resetting alpha.
func (s *Simulation) Restart() { s.stopped = false }

// Alpha returns the current energy.
func (s *Simulation) Alpha() float64 { return s.alpha }

// AlphaTarget returns the value alpha decays toward.
func (s *Simulation) AlphaTarget() float64 { return s.alphaTarget }

// SetAlphaTarget changes the value alpha decays toward.
func (s *Simulation) SetAlphaTarget(v float64) { s.alphaTarget = v }

// Ticks returns the number of steps taken.
func (s *Simulation) Ticks() int { return s.ticks }

// Len returns the number of bodies.
func (s *Simulation) Len() int { return len(s.bodies) }

// Body returns a copy of the body for id.
func (s *Simulation) Body(id string) (Body, bool) {
	i, ok := s.index[id]
	if !ok {
		return Body{}, false
	}
	return s.bodies[i], true
}

// Hit returns the id of the topmost body whose drawn circle contains p, or
// "" if none does. Later nodes are drawn on top.
func (s *Simulation) Hit(p Point) string {
	for i := len(s.bodies) - 1; i >= 0; i-- {
		b := s.bodies[i]
		r := s.drawn[i]
		dx, dy := p.X-b.X, p.Y-b.Y
		if dx*dx+dy*dy <= r*r {
			return b.ID
		}
	}
	return ""
}

// DragStart pins id at its current position. The first active drag raises
// alphaTarget to DragTarget and restarts the simulation. Starting a drag on
// a body that is already dragged is a no-op.
func (s *Simulation) DragStart(id string) error {
	i, ok := s.index[id]
	if !ok {
		return neterrors.New(neterrors.ErrCodeNotFound, "node %q", id)
	}
	if s.dragging[id] {
		return nil
	}
	if len(s.dragging) == 0 {
		s.alphaTarget = DragTarget
		s.Restart()
	}
	s.dragging[id] = true
	b := &s.bodies[i]
	x, y := b.X, b.Y
	b.FX, b.FY = &x, &y
	return nil
}

// DragMove moves the pin of id to p. id must be dragged.
func (s *Simulation) DragMove(id string, p Point) error {
	i, ok := s.index[id]
	if !ok {
		return neterrors.New(neterrors.ErrCodeNotFound, "node %q", id)
	}
	if !s.dragging[id] {
		return neterrors.New(neterrors.ErrCodeInvalidInput, "node %q is not being dragged", id)
	}
	x, y := p.X, p.Y
	s.bodies[i].FX, s.bodies[i].FY = &x, &y
	return nil
}

// DragEnd releases the pin of id. When the last drag ends alphaTarget
// returns to 0 so the layout cools and stops. Ending a drag that is not
// active changes nothing.
func (s *Simulation) DragEnd(id string) error {
	i, ok := s.index[id]
	if !ok {
		return neterrors.New(neterrors.ErrCodeNotFound, "node %q", id)
	}
	if !s.dragging[id] {
		return nil
	}
	delete(s.dragging, id)
	if len(s.dragging) == 0 {
		s.alphaTarget = 0
	}
	s.bodies[i].FX, s.bodies[i].FY = nil, nil
	return nil
}

func (s *Simulation) jiggle() float64 {
	return (s.rng.Float64() - 0.5) * 1e-6
}
