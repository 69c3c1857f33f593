package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netgraph/pkg/dataset"
	neterrors "github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/force"
	"github.com/matzehuels/netgraph/pkg/graph"
	"github.com/matzehuels/netgraph/pkg/view"
)

// Runner executes the pipeline. It holds no per-run state, so one Runner
// can serve concurrent runs with different options.
type Runner struct {
	Loader *dataset.Loader
	Logger *log.Logger
}

// NewRunner creates a runner. A nil loader reads files, HTTP, Redis and
// MongoDB resources through dataset.NewRouter.
func NewRunner(loader *dataset.Loader, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if loader == nil {
		loader = dataset.NewLoader(nil, logger)
	}
	return &Runner{Loader: loader, Logger: logger}
}

// Execute runs the complete load → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result, err := r.Layout(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := RenderScene(ctx, result.Scene, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Layout runs the load and layout stages only. The returned Result has no
// artifacts.
func (r *Runner) Layout(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	opts.SetLayoutDefaults()

	// Stage 1: Load
	res := r.Loader.Load(ctx, opts.Nodes, opts.Edges)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := &Result{LoadErr: res.Err}
	result.Stats.LoadTime = res.Elapsed
	result.Stats.NodeCount = res.Dataset.NodeCount()
	result.Stats.EdgeCount = res.Dataset.EdgeCount()
	result.Stats.Dropped = len(res.Dataset.Gaps)

	// Stage 2: Layout
	layoutStart := time.Now()
	var ticks int
	result.Scene, ticks = Settle(res, opts)
	result.Layout = graph.FromScene(result.Scene)
	result.Stats.Ticks = ticks
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Info("computed layout",
		"nodes", result.Stats.NodeCount,
		"ticks", ticks,
		"settled", result.Scene.Settled,
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// Settle simulates a load result until it settles (or opts.MaxTicks) and
// returns the resulting scene and the number of ticks run. A failed load
// yields a scene in the RenderedWithError state.
func Settle(res dataset.Result, opts Options) (view.Scene, int) {
	opts.SetLayoutDefaults()

	sim := force.New(res.Dataset, opts.Force)
	snap := sim.Run(opts.MaxTicks)

	s := view.NewScene(res.Dataset, snap, opts.Force.Width, opts.Force.Height)
	s.Settled = sim.Settled()
	if res.Failed() {
		s.State = view.StateRenderedWithError
		s.LoadError = neterrors.UserMessage(res.Err)
	}
	return s, sim.Ticks()
}
