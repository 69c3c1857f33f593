// Package term draws a [view.Scene] as styled text for terminal display.
//
// The canvas is a fixed grid of character cells scaled from the scene's
// pixel canvas. Edges are dotted lines whose brightness follows the edge
// opacity, directed edges end in an arrow glyph and nodes are colored dots
// labeled with their id. [Grid] converts between cells and screen points so
// terminal mouse events can be fed back into a view.
package term
