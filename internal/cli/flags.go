package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/pkg/pipeline"
)

// layoutFlags override the [force] and [layout] config sections.
type layoutFlags struct {
	width    float64
	height   float64
	seed     uint64
	maxTicks int
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "canvas width (default 800)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "canvas height (default 400)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed for the simulation (default 42)")
	cmd.Flags().IntVar(&f.maxTicks, "max-ticks", 0, "stop the simulation after n ticks (0: until settled)")
}

// pipelineOptions builds options from config, positional resources and any
// flags set on cmd.
func (c *CLI) pipelineOptions(cmd *cobra.Command, args []string, f *layoutFlags) pipeline.Options {
	nodes, edges := c.sources(args)
	opts := c.Config.PipelineOptions(nodes, edges, c.Logger)

	fl := cmd.Flags()
	if fl.Changed("width") {
		opts.Force.Width = f.width
	}
	if fl.Changed("height") {
		opts.Force.Height = f.height
	}
	if fl.Changed("seed") {
		opts.Force.Seed = f.seed
	}
	if fl.Changed("max-ticks") {
		opts.MaxTicks = f.maxTicks
	}
	return opts
}
