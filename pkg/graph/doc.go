// Package graph provides the serialization format for laid-out graphs.
//
// A [Layout] holds everything needed to redraw a graph without loading or
// simulating again: canvas size, node and edge records, and the position of
// every node. `netgraph layout` writes one, `netgraph visualize` reads one,
// and the live server exposes the current layout of a view.
//
// # Architecture
//
// The package sits at the serialization boundary:
//
//   - [Layout], [Node], [Edge]: serialization types (this package)
//   - pkg/dataset: node and edge records
//   - pkg/view.Scene: the renderable frame
//
// Use [FromScene] and [Layout.Scene] to convert between them.
//
// # Format
//
//	{
//	  "viz_type": "force",
//	  "width": 800,
//	  "height": 400,
//	  "tick": 301,
//	  "alpha": 0.00099,
//	  "settled": true,
//	  "nodes": [{"id": "A", "role": "professor", "x": 371.2, "y": 188.4}],
//	  "edges": [{"source": "A", "target": "B", "type": "directed"}]
//	}
//
// Node order is significant: it is the drawing order.
//
// # File Operations
//
//	graph.WriteLayoutFile(l, "layout.json")
//	l, err := graph.ReadLayoutFile("layout.json")
package graph
