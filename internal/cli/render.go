package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/pkg/pipeline"
)

// renderOpts holds the render-only flags shared by render and visualize.
type renderOpts struct {
	output   string // output file (single format) or base path
	formats  string // comma-separated output formats
	title    string // HTML page title
	detailed bool   // role and department in DOT labels
	noHint   bool   // omit the zoom hint text
}

func (o *renderOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&o.formats, "format", "f", "", "output format(s): svg, html, png, dot, json (comma-separated)")
	cmd.Flags().StringVar(&o.title, "title", "", "HTML page title")
	cmd.Flags().BoolVar(&o.detailed, "detailed", false, "show role and department in DOT labels")
	cmd.Flags().BoolVar(&o.noHint, "no-hint", false, "omit the zoom hint text")
}

// apply copies render flags onto opts and validates the formats.
func (o *renderOpts) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	if cmd.Flags().Changed("format") {
		opts.Formats = pipeline.ParseFormats(o.formats)
	}
	opts.Title = o.title
	opts.Detailed = o.detailed
	opts.NoHint = o.noHint
	opts.SetRenderDefaults()
	return pipeline.ValidateFormats(opts.Formats)
}

// renderCommand creates the one-shot render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags layoutFlags
		ropts renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render [NODES] [EDGES]",
		Short: "Load, lay out and draw a graph in one step",
		Long: `Load, lay out and draw a graph in one step.

Writes one file per format. With a single format and an -o file name the
output goes exactly there; otherwise -o is a base path and each format adds
its own extension (netgraph.svg, netgraph.png, ...).

PNG output is drawn by Graphviz with the simulated positions pinned.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(cmd, args, &flags)
			if err := ropts.apply(cmd, &opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, ropts.output)
		},
	}

	flags.register(cmd)
	ropts.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string) error {
	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, "Rendering...")
	spinner.Start()

	res, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError(c.Out, "Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()
	prog.done("Rendered graph")

	paths, err := writeArtifacts(res.Artifacts, opts.Formats, appName, output)
	if err != nil {
		return err
	}

	c.reportLoad(res)
	printSuccess(c.Out, "Render complete")
	for _, p := range paths {
		printFile(c.Out, p)
	}
	printStats(c.Out, res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.Dropped, res.Stats.Ticks, res.Scene.Settled)
	return nil
}
