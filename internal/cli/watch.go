package cli

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/pkg/dataset"
	"github.com/matzehuels/netgraph/pkg/view"
)

// watchCommand creates the watch command for the live terminal view.
func (c *CLI) watchCommand() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "watch [NODES] [EDGES]",
		Short: "Explore a live view in the terminal",
		Long: `Explore a live view in the terminal.

The graph is simulated in place and drawn with character cells. Drag nodes
with the mouse, drag the background to pan and scroll to zoom. Hovering a
node shows its details; clicking logs it on the status line.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, edges := c.sources(args)
			return c.runWatch(cmd.Context(), nodes, edges, logFile)
		},
	}

	cmd.Flags().StringVar(&logFile, "log", "", "also write logs to this file")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, nodes, edges, logFile string) error {
	// The alternate screen owns the terminal, so logs go to the status line.
	status := &lastLine{}
	var w io.Writer = status
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = io.MultiWriter(status, f)
	}
	logger := log.NewWithOptions(w, log.Options{Level: c.Logger.GetLevel()})

	opts := c.Config.ViewOptions(logger)
	v := view.Open(ctx, dataset.NewLoader(nil, logger), nodes, edges, opts)
	defer v.Close()

	frames, unsubscribe := v.Subscribe()
	defer unsubscribe()

	p := tea.NewProgram(
		NewWatchModel(v, frames, status),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
