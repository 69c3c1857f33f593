// Package pkg provides the libraries behind netgraph, a force-directed
// network graph viewer for tabular data.
//
// # Overview
//
// netgraph reads a node table and an edge table, settles the graph with a
// force simulation and draws it. The pkg directory is organized into:
//
//  1. [dataset] - Records, CSV parsing and resource loading (file, HTTP,
//     Redis, MongoDB)
//  2. [force] - The physics simulation (links, many-body, centering,
//     collision)
//  3. [view] - Live views: simulation loop, pointer interaction, zoom and
//     tooltips
//  4. [render] - Renderers for a view scene (SVG, HTML, terminal, Graphviz)
//  5. [pipeline] - Orchestration (load → layout → render)
//  6. [graph] - Serialization of settled layouts
//
// # Architecture
//
// The typical data flow:
//
//	nodes.csv + edges.csv
//	         ↓
//	    [dataset] package (fetch, parse, resolve edge endpoints)
//	         ↓
//	    [force] package (simulate until alpha drops below alpha_min)
//	         ↓
//	    [view] package (scene + interaction)
//	         ↓
//	    [render] packages (SVG/HTML/PNG/DOT/terminal)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Nodes:   "nodes.csv",
//	    Edges:   "edges.csv",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("graph.svg", res.Artifacts["svg"], 0o644)
//
// A load failure is not an error: the result holds the error graph and
// [pipeline.Result.LoadErr] says why.
//
// # Supporting Packages
//
// [config] - TOML configuration for force constants, view timings, the
// server address and default sources.
//
// [errors] - Coded errors shared by the CLI and the HTTP server.
//
// [observability] - Hooks for load and interaction events.
//
// [buildinfo] - Version metadata set at build time.
//
// [dataset]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/dataset
// [force]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/force
// [view]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/view
// [render]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/pipeline
// [pipeline.Result.LoadErr]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/pipeline#Result
// [graph]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/graph
// [config]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/buildinfo
package pkg
