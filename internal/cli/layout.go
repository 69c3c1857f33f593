package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	neterrors "github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/graph"
	"github.com/matzehuels/netgraph/pkg/pipeline"
)

// defaultLayoutFile is where `layout` writes when -o is not given.
const defaultLayoutFile = "layout.json"

// layoutCommand creates the layout command for computing a settled layout.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [NODES] [EDGES]",
		Short: "Load a graph and write its settled layout",
		Long: `Load a graph and write its settled layout.

The layout command loads the node and edge tables, runs the force simulation
until it settles and writes a layout.json file holding every record and
node position. Render it with 'visualize'.

NODES and EDGES default to the [sources] section of the config file.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), c.pipelineOptions(cmd, args, &flags), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", defaultLayoutFile, "output file")
	flags.register(cmd)

	return cmd
}

// runLayout loads and settles the graph, then writes the layout.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string) error {
	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, "Computing layout...")
	spinner.Start()

	res, err := c.newRunner().Layout(ctx, opts)
	if err != nil {
		spinner.StopWithError(c.Out, "Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	prog.done("Settled layout")

	if err := graph.WriteLayoutFile(res.Layout, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	c.reportLoad(res)
	printSuccess(c.Out, "Layout complete")
	printFile(c.Out, output)
	printStats(c.Out, res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.Dropped, res.Stats.Ticks, res.Scene.Settled)
	printNewline(c.Out)
	printNextStep(c.Out, "Render", appName+" visualize "+output)

	return nil
}

// reportLoad warns when the error graph stands in for the data.
func (c *CLI) reportLoad(res *pipeline.Result) {
	if res.LoadErr != nil {
		printWarning(c.Out, "Load failed, drew the error graph: %s", neterrors.UserMessage(res.LoadErr))
	}
}
