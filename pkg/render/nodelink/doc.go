// Package nodelink renders a laid-out scene through Graphviz.
//
// # Overview
//
// The force layout already decides where every node goes, so this package
// does not ask Graphviz for a layout. [ToDOT] writes each node with a pinned
// position (pos="x,y!") and the neato engine, which honors pins, only draws
// it. The result keeps the page's look: grey canvas, circles sized by node
// size, white outlines and labels, grey edges with arrowheads on directed
// edges only.
//
// # Usage
//
//	dot := nodelink.ToDOT(scene, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// The DOT text is also useful on its own: it can be saved and processed with
// external Graphviz tools (neato -n2 keeps positions as given).
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering,
// so no Graphviz installation is needed.
package nodelink
