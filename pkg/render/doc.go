// Package render groups the renderers that draw a [view.Scene].
//
// # Overview
//
// Every renderer consumes the same immutable Scene, so a frame looks the
// same whether it is written to a file, streamed to a browser or drawn in a
// terminal:
//
//   - [svg]: standalone SVG document (the reference rendition)
//   - [html]: browser page around an SVG frame, static or live
//   - [term]: styled character canvas for the terminal view
//   - [nodelink]: Graphviz DOT with pinned positions, rendered to SVG or PNG
//
// # Usage
//
//	data := svg.Render(scene)
//	page := html.Render(scene, html.WithTitle("school"))
//	text := term.Render(scene, 80, 24)
//	png, err := nodelink.RenderPNG(ctx, nodelink.ToDOT(scene, nodelink.Options{}))
//
// [svg]: github.com/matzehuels/netgraph/pkg/render/svg
// [html]: github.com/matzehuels/netgraph/pkg/render/html
// [term]: github.com/matzehuels/netgraph/pkg/render/term
// [nodelink]: github.com/matzehuels/netgraph/pkg/render/nodelink
package render
