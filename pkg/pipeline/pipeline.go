// Package pipeline provides the one-shot load, settle and render pipeline.
//
// The CLI commands `layout`, `render` and `visualize` share this package so
// a graph drawn from the command line looks exactly like the first settled
// frame of a live view.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Fetch the node and edge resources and parse them into a dataset
//  2. Layout: Run the force simulation until it settles
//  3. Render: Generate output in various formats (SVG, HTML, PNG, DOT, JSON)
//
// A load failure is not an error: the synthetic error graph is laid out and
// rendered instead, and the failure is reported on the [Result].
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Nodes:   "nodes.csv",
//	    Edges:   "edges.csv",
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Render a saved layout:
//
//	l, err := graph.ReadLayoutFile("layout.json")
//	artifacts, err := pipeline.RenderLayout(ctx, l, opts)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netgraph/pkg/force"
	"github.com/matzehuels/netgraph/pkg/graph"
	"github.com/matzehuels/netgraph/pkg/view"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 400.0

	// DefaultMaxTicks bounds the layout stage. Zero runs until the
	// simulation settles, which takes about 300 ticks.
	DefaultMaxTicks = 0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatHTML: true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Load options
	Nodes string `json:"nodes,omitempty"`
	Edges string `json:"edges,omitempty"`

	// Layout options
	Force    force.Config `json:"force"`
	MaxTicks int          `json:"max_ticks,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Title    string   `json:"title,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // DOT labels carry role and department
	NoHint   bool     `json:"no_hint,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the settled frame every artifact was drawn from.
	Scene view.Scene

	// Layout is the serializable form of Scene.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// LoadErr is set when the error graph was rendered in place of the data.
	LoadErr error

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Dropped    int // edges dropped for unknown endpoints
	Ticks      int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, html, png, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that both resources are named.
func (o *Options) ValidateForLoad() error {
	if o.Nodes == "" {
		return fmt.Errorf("nodes resource is required")
	}
	if o.Edges == "" {
		return fmt.Errorf("edges resource is required")
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults fills canvas size and seed.
func (o *Options) SetLayoutDefaults() {
	if o.Force.Width <= 0 {
		o.Force.Width = DefaultWidth
	}
	if o.Force.Height <= 0 {
		o.Force.Height = DefaultHeight
	}
	if o.Force.Seed == 0 {
		o.Force.Seed = force.DefaultSeed
	}
	if o.MaxTicks < 0 {
		o.MaxTicks = DefaultMaxTicks
	}
	o.setLogger()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
