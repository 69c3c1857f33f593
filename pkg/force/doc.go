// Package force implements the force-directed layout engine.
//
// A [Simulation] owns explicit per-node state ([Body]: position, velocity and
// optional pin) and advances it with a pure [Simulation.Step]: every step
// cools the energy scalar alpha toward its target, applies four forces in a
// fixed order and integrates velocities.
//
//   - link: each edge pulls its endpoints toward a rest length keyed by
//     relationship ([LinkDistance])
//   - charge: every node repels every other node with a strength keyed by
//     role ([ChargeStrength])
//   - center: the mean position is shifted onto the canvas midpoint
//   - collide: circles are pushed apart until they are at least
//     radius+margin apart ([CollideRadius])
//
// The force formulas, alpha schedule and initial phyllotaxis placement follow
// the d3-force conventions, so layouts look the way a browser rendition of
// the same data would.
//
// # Dragging
//
// [Simulation.DragStart] pins a node where it is and raises alphaTarget to
// 0.3 so the rest of the graph keeps adjusting; [Simulation.DragMove] moves
// the pin; [Simulation.DragEnd] clears it and lets alpha decay back to rest.
//
// # Concurrency
//
// A Simulation is not safe for concurrent use. The view package drives it
// from a single event loop.
package force
