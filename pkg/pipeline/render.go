package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/netgraph/pkg/graph"
	"github.com/matzehuels/netgraph/pkg/render/html"
	"github.com/matzehuels/netgraph/pkg/render/nodelink"
	"github.com/matzehuels/netgraph/pkg/render/svg"
	"github.com/matzehuels/netgraph/pkg/view"
)

// RenderScene generates output artifacts in the requested formats.
func RenderScene(ctx context.Context, s view.Scene, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svg.Render(s, svgOptions(opts)...)
		case FormatHTML:
			data = html.Render(s, htmlOptions(opts)...)
		case FormatDOT:
			if dot == "" {
				dot = nodelink.ToDOT(s, nodelink.Options{Detailed: opts.Detailed})
			}
			data = []byte(dot)
		case FormatPNG:
			if dot == "" {
				dot = nodelink.ToDOT(s, nodelink.Options{Detailed: opts.Detailed})
			}
			data, err = nodelink.RenderPNG(ctx, dot)
		case FormatJSON:
			data, err = graph.MarshalLayout(graph.FromScene(s))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderLayout renders a saved layout without loading or simulating.
func RenderLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	s, err := l.Scene()
	if err != nil {
		return nil, fmt.Errorf("convert layout: %w", err)
	}
	return RenderScene(ctx, s, opts)
}

// RenderLayoutData renders serialized layout JSON.
func RenderLayoutData(ctx context.Context, data []byte, opts Options) (map[string][]byte, error) {
	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return RenderLayout(ctx, l, opts)
}

func svgOptions(opts Options) []svg.Option {
	var out []svg.Option
	if opts.NoHint {
		out = append(out, svg.WithoutHint())
	}
	return out
}

func htmlOptions(opts Options) []html.Option {
	var out []html.Option
	if opts.Title != "" {
		out = append(out, html.WithTitle(opts.Title))
	}
	return out
}
