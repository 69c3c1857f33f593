package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/internal/server"
	"github.com/matzehuels/netgraph/pkg/observability"
)

// serveCommand creates the serve command for the live browser view.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr         string
		title        string
		allowSources bool
	)

	cmd := &cobra.Command{
		Use:   "serve [NODES] [EDGES]",
		Short: "Serve a live, interactive view in the browser",
		Long: `Serve a live, interactive view in the browser.

Every page load opens its own view: the graph is loaded, simulated on the
server and streamed to the page, where nodes can be dragged, the canvas
zoomed and panned, and nodes hovered for details.

By default every view loads NODES and EDGES. --allow-sources lets a client
name other resources in its POST /views body; the server will then read any
file or URL the client asks for, so only use it on a trusted network.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			nodes, edges := c.sources(args)
			return c.runServe(cmd.Context(), server.Options{
				Nodes:        nodes,
				Edges:        edges,
				Title:        title,
				AllowSources: allowSources,
			}, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&title, "title", "", "page title")
	cmd.Flags().BoolVar(&allowSources, "allow-sources", false, "let clients choose the node and edge resources")

	return cmd
}

// runServe fills in the loader, view options, logger and counters of opts
// and serves until ctx is done.
func (c *CLI) runServe(ctx context.Context, opts server.Options, addr string) error {
	counters := observability.NewCounters()
	observability.SetLoadHooks(counters)
	observability.SetViewHooks(counters)
	defer observability.Reset()

	opts.Loader = c.newLoader()
	opts.View = c.Config.ViewOptions(c.Logger)
	opts.Logger = c.Logger
	opts.Counters = counters
	srv := server.New(opts)
	if opts.AllowSources {
		printWarning(c.Out, "Clients may choose any file or URL as a source")
	}

	printSuccess(c.Out, "Serving %s", StyleLink.Render(displayURL(addr)))
	printNextStep(c.Out, "Stop", "ctrl+c")
	return srv.ListenAndServe(ctx, addr)
}

// displayURL turns a listen address into a browsable URL.
func displayURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
