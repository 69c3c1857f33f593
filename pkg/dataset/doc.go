// Package dataset loads the two tabular resources that describe a network:
// a node table (people) and an edge table (relationships between them).
//
// # Records
//
// [NodeRecord] and [EdgeRecord] hold the display and physics inputs exactly
// as read from the tables, with numeric columns coerced from text. Numeric
// cells that are empty stay absent (nil) rather than becoming zero; the
// renderer applies its own defaults (radius 20, fill #3264a8).
//
// Position and pin state never live on the records. The force package keeps
// that in its own bodies, keyed by [NodeRecord.ID].
//
// # Sources
//
// A resource is addressed by URI:
//
//	nodes.csv, file:///data/nodes.csv     local CSV file
//	https://example.com/nodes.csv          CSV over HTTP (no retry)
//	redis://localhost:6379/0#graph:nodes   CSV text stored under a Redis key
//	mongodb://localhost/school#nodes       documents of a Mongo collection
//
// # Loading
//
// [Loader.Load] fetches both tables concurrently and succeeds only when both
// fetch and parse cleanly. On any failure it substitutes [ErrorDataset], a
// one-node graph with a red marker, and reports the cause on the [Result]
// instead of returning it:
//
//	res := dataset.NewLoader(nil, logger).Load(ctx, "nodes.csv", "edges.csv")
//	if res.Failed() {
//	    // res.Dataset is the synthetic error graph; res.Err says why
//	}
//
// Edges whose endpoints do not resolve are dropped and recorded on
// [Dataset.Gaps]; they never fail the load.
package dataset
