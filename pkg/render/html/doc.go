// Package html wraps rendered frames in a browser page.
//
// [Render] produces a static page around one SVG frame. [Live] produces the
// page served by the live view server: it opens a view with POST /views,
// replaces its frame on every server-sent event and posts pointer events to
// /views/{id}/pointer in the order they occur.
package html
