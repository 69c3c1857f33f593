package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/pkg/graph"
	"github.com/matzehuels/netgraph/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering a saved layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var ropts renderOpts

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render visualization from a computed layout",
		Long: `Render visualization from a computed layout.

The visualize command takes a layout.json file (produced by 'layout' or
'render -f json') and draws it without loading or simulating again.

Use 'render' as a shortcut to go directly from CSV tables to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Logger: c.Logger, Formats: pipeline.ParseFormats(c.Config.Layout.Formats)}
			if err := ropts.apply(cmd, &opts); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, ropts.output)
		},
	}

	ropts.register(cmd)

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string) error {
	l, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	spinner := newSpinner(ctx, os.Stderr, "Rendering...")
	spinner.Start()

	artifacts, err := pipeline.RenderLayout(ctx, l, opts)
	if err != nil {
		spinner.StopWithError(c.Out, "Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	paths, err := writeArtifacts(artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	printSuccess(c.Out, "Visualization complete")
	for _, p := range paths {
		printFile(c.Out, p)
	}
	printStats(c.Out, len(l.Nodes), len(l.Edges), 0, l.Tick, l.Settled)
	return nil
}
