package dataset

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	neterrors "github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/observability"
)

// Result is the outcome of a Load. Dataset is never nil.
type Result struct {
	Dataset *Dataset

	// Err is set when loading failed and Dataset is the error graph.
	// It is informational only; the caller renders Dataset either way.
	Err error

	Elapsed time.Duration
}

// Failed reports whether the error graph was substituted.
func (r Result) Failed() bool { return r.Err != nil }

// Loader fetches and parses node/edge resources.
type Loader struct {
	Fetcher Fetcher
	Logger  *log.Logger
}

// NewLoader creates a Loader. A nil fetcher uses NewRouter; a nil logger
// uses log.Default().
func NewLoader(f Fetcher, logger *log.Logger) *Loader {
	if f == nil {
		f = NewRouter()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{Fetcher: f, Logger: logger}
}

// Load fetches both resources concurrently and parses them into a Dataset.
// It succeeds only when both fetch and parse; otherwise the Result carries
// ErrorDataset and the cause. There is no retry and no partial result.
func (l *Loader) Load(ctx context.Context, nodesURI, edgesURI string) Result {
	start := time.Now()
	observability.Load().OnLoadStart(ctx, nodesURI, edgesURI)

	d, err := l.load(ctx, nodesURI, edgesURI)
	res := Result{Dataset: d, Err: err, Elapsed: time.Since(start)}
	if err != nil {
		res.Dataset = ErrorDataset()
		l.Logger.Error("Error loading CSV files", "nodes", nodesURI, "edges", edgesURI, "err", err)
	} else {
		l.Logger.Info("Loaded nodes", "count", d.NodeCount(), "source", nodesURI)
		l.Logger.Info("Loaded edges", "count", d.EdgeCount(), "source", edgesURI)
		for _, gap := range d.Gaps {
			l.Logger.Warn("Dropped edge", "err", gap)
		}
	}

	observability.Load().OnLoadComplete(ctx, res.Dataset.NodeCount(), res.Dataset.EdgeCount(), res.Elapsed, err)
	return res
}

func (l *Loader) load(ctx context.Context, nodesURI, edgesURI string) (*Dataset, error) {
	var nodeTable, edgeTable *Table

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := l.Fetcher.Fetch(gctx, nodesURI)
		if err != nil {
			return neterrors.Wrap(neterrors.ErrCodeLoadFailure, err, "fetch nodes %s", nodesURI)
		}
		nodeTable = t
		return nil
	})
	g.Go(func() error {
		t, err := l.Fetcher.Fetch(gctx, edgesURI)
		if err != nil {
			return neterrors.Wrap(neterrors.ErrCodeLoadFailure, err, "fetch edges %s", edgesURI)
		}
		edgeTable = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	nodes, err := ParseNodes(nodeTable)
	if err != nil {
		return nil, neterrors.Wrap(neterrors.ErrCodeLoadFailure, err, "parse nodes %s", nodesURI)
	}
	edges, err := ParseEdges(edgeTable)
	if err != nil {
		return nil, neterrors.Wrap(neterrors.ErrCodeLoadFailure, err, "parse edges %s", edgesURI)
	}
	d, err := New(nodes, edges)
	if err != nil {
		return nil, neterrors.Wrap(neterrors.ErrCodeLoadFailure, err, "build dataset")
	}
	return d, nil
}
