package force

import "math"

// distanceMin2 bounds the many-body force for near-coincident bodies.
const distanceMin2 = 1.0

// applyLink pulls every edge toward its rest length. Positions are
// extrapolated by one velocity step; the correction is split between the
// endpoints by degree.
func (s *Simulation) applyLink() {
	for _, l := range s.links {
		src, tgt := &s.bodies[l.source], &s.bodies[l.target]
		x := tgt.X + tgt.VX - src.X - src.VX
		if x == 0 {
			x = s.jiggle()
		}
		y := tgt.Y + tgt.VY - src.Y - src.VY
		if y == 0 {
			y = s.jiggle()
		}
		d := math.Sqrt(x*x + y*y)
		d = (d - l.distance) / d * s.alpha * l.strength
		x, y = x*d, y*d
		tgt.VX -= x * l.bias
		tgt.VY -= y * l.bias
		src.VX += x * (1 - l.bias)
		src.VY += y * (1 - l.bias)
	}
}

// applyCharge applies the pairwise many-body force. Every body feels the
// charge of every other body, scaled by alpha over the squared distance.
func (s *Simulation) applyCharge() {
	for i := range s.bodies {
		bi := &s.bodies[i]
		for j := range s.bodies {
			if i == j {
				continue
			}
			bj := &s.bodies[j]
			x, y := bj.X-bi.X, bj.Y-bi.Y
			l := x*x + y*y
			if x == 0 {
				x = s.jiggle()
				l += x * x
			}
			if y == 0 {
				y = s.jiggle()
				l += y * y
			}
			if l < distanceMin2 {
				l = math.Sqrt(distanceMin2 * l)
			}
			w := s.charges[j] * s.alpha / l
			bi.VX += x * w
			bi.VY += y * w
		}
	}
}

// applyCenter translates all bodies so their mean lands on the canvas
// midpoint. It moves positions, not velocities.
func (s *Simulation) applyCenter() {
	n := len(s.bodies)
	if n == 0 {
		return
	}
	var sx, sy float64
	for _, b := range s.bodies {
		sx += b.X
		sy += b.Y
	}
	sx = sx/float64(n) - s.cfg.Width/2
	sy = sy/float64(n) - s.cfg.Height/2
	for i := range s.bodies {
		s.bodies[i].X -= sx
		s.bodies[i].Y -= sy
	}
}

// applyCollide separates overlapping circles, weighting the push by the
// squared radii so small bodies yield to large ones.
func (s *Simulation) applyCollide() {
	for i := range s.bodies {
		bi := &s.bodies[i]
		ri := s.radii[i]
		xi, yi := bi.X+bi.VX, bi.Y+bi.VY
		for j := i + 1; j < len(s.bodies); j++ {
			bj := &s.bodies[j]
			rj := s.radii[j]
			r := ri + rj
			x := xi - bj.X - bj.VX
			y := yi - bj.Y - bj.VY
			l := x*x + y*y
			if l >= r*r {
				continue
			}
			if x == 0 {
				x = s.jiggle()
				l += x * x
			}
			if y == 0 {
				y = s.jiggle()
				l += y * y
			}
			l = math.Sqrt(l)
			l = (r - l) / l
			x, y = x*l, y*l
			ri2, rj2 := ri*ri, rj*rj
			k := rj2 / (ri2 + rj2)
			bi.VX += x * k
			bi.VY += y * k
			bj.VX -= x * (1 - k)
			bj.VY -= y * (1 - k)
		}
	}
}
