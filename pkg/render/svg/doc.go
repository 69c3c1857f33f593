// Package svg draws a [view.Scene] as a standalone SVG document.
//
// The document is laid out the way the live page draws it: a light grey
// canvas, a zoom group holding an arrowhead marker, edge lines, node circles
// and centered id labels, a zoom hint in the corner and, when the scene has
// one, a tooltip box near the pointer.
//
//	data := svg.Render(scene)
//	data := svg.Render(scene, svg.WithIDs(), svg.WithoutHint())
//
// Only edges whose type is "directed" reference the arrowhead marker. Edge
// opacity follows [view.Scene.EdgeOpacity].
package svg
