// Package view turns a loaded dataset into a live, interactive rendition.
//
// A [View] starts in [StateLoading], loads its two resources and then moves
// to [StateRendered], or to [StateRenderedWithError] when the error graph was
// substituted. From then on a single loop goroutine owns the simulation and
// the [Interaction] state and serializes three kinds of work:
//
//   - frame ticks, which step the simulation until it settles
//   - pointer events (drag, pan, wheel zoom, hover, click)
//   - tooltip fade timers
//
// Each change produces a [Scene], an immutable frame that renderers draw.
// Subscribers receive scenes over buffered channels and skip frames they
// were too slow to read.
//
// Closing a View stops its ticker and pending timers and closes all
// subscriber channels. Reloading data means opening a new View.
package view
