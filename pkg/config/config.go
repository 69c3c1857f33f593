// Package config loads netgraph settings from a TOML file.
//
// Lookup order: an explicit path (the --config flag), then
// $XDG_CONFIG_HOME/netgraph/config.toml, then built-in defaults. A missing
// default file is not an error; a missing explicit file is.
//
//	[force]
//	width = 800
//	height = 400
//	seed = 42
//
//	[force.rules.distances]
//	friends = 60
//
//	[view]
//	frame_interval = "16ms"
//	fade_out = "1s"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	neterrors "github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/force"
	"github.com/matzehuels/netgraph/pkg/pipeline"
	"github.com/matzehuels/netgraph/pkg/view"
)

// AppName names the config directory.
const AppName = "netgraph"

// Config holds netgraph configuration.
type Config struct {
	Force   force.Config  `toml:"force"`
	Layout  LayoutConfig  `toml:"layout"`
	View    ViewConfig    `toml:"view"`
	Server  ServerConfig  `toml:"server"`
	Sources SourcesConfig `toml:"sources"`
}

// LayoutConfig controls one-shot layouts.
type LayoutConfig struct {
	MaxTicks int    `toml:"max_ticks"` // 0 runs until settled
	Formats  string `toml:"formats"`   // comma-separated default for render
}

// ViewConfig controls live views.
type ViewConfig struct {
	FrameInterval time.Duration `toml:"frame_interval"`
	FadeIn        time.Duration `toml:"fade_in"`
	FadeOut       time.Duration `toml:"fade_out"`
}

// ServerConfig controls `netgraph serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// SourcesConfig names the resources used when a command gets none.
type SourcesConfig struct {
	Nodes string `toml:"nodes"`
	Edges string `toml:"edges"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Force:  force.DefaultConfig(),
		Layout: LayoutConfig{Formats: pipeline.FormatSVG},
		View: ViewConfig{
			FrameInterval: view.DefaultFrameInterval,
			FadeIn:        view.DefaultFadeIn,
			FadeOut:       view.DefaultFadeOut,
		},
		Server:  ServerConfig{Addr: ":8080"},
		Sources: SourcesConfig{Nodes: "nodes.csv", Edges: "edges.csv"},
	}
}

// Dir returns the netgraph config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppName)
}

// DefaultPath returns the path of the implicit config file.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config at path over the defaults. An empty path reads
// DefaultPath and tolerates its absence.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return nil, neterrors.Wrap(neterrors.ErrCodeNotFound, err, "config %s", path)
		}
		return nil, neterrors.Wrap(neterrors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, neterrors.New(neterrors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate rejects settings no component can honor.
func (c *Config) Validate() error {
	switch {
	case c.Force.Width <= 0 || c.Force.Height <= 0:
		return neterrors.New(neterrors.ErrCodeInvalidInput, "canvas must be positive, got %vx%v", c.Force.Width, c.Force.Height)
	case c.Force.AlphaMin < 0 || c.Force.AlphaMin >= 1:
		return neterrors.New(neterrors.ErrCodeInvalidInput, "alpha_min must be in [0, 1), got %v", c.Force.AlphaMin)
	case c.Force.AlphaDecay < 0 || c.Force.AlphaDecay >= 1:
		return neterrors.New(neterrors.ErrCodeInvalidInput, "alpha_decay must be in [0, 1), got %v", c.Force.AlphaDecay)
	case c.Force.VelocityDecay < 0 || c.Force.VelocityDecay >= 1:
		return neterrors.New(neterrors.ErrCodeInvalidInput, "velocity_decay must be in [0, 1), got %v", c.Force.VelocityDecay)
	case c.Layout.MaxTicks < 0:
		return neterrors.New(neterrors.ErrCodeInvalidInput, "max_ticks must not be negative")
	case c.View.FrameInterval < 0 || c.View.FadeIn < 0 || c.View.FadeOut < 0:
		return neterrors.New(neterrors.ErrCodeInvalidInput, "view durations must not be negative")
	}
	if err := pipeline.ValidateFormats(pipeline.ParseFormats(c.Layout.Formats)); err != nil {
		return neterrors.Wrap(neterrors.ErrCodeInvalidFormat, err, "layout.formats")
	}
	return nil
}

// ViewOptions returns options for a live view.
func (c *Config) ViewOptions(logger *log.Logger) view.Options {
	return view.Options{
		Force:         c.Force,
		FrameInterval: c.View.FrameInterval,
		FadeIn:        c.View.FadeIn,
		FadeOut:       c.View.FadeOut,
		Logger:        logger,
	}
}

// PipelineOptions returns pipeline options for the given resources.
func (c *Config) PipelineOptions(nodes, edges string, logger *log.Logger) pipeline.Options {
	return pipeline.Options{
		Nodes:    nodes,
		Edges:    edges,
		Force:    c.Force,
		MaxTicks: c.Layout.MaxTicks,
		Formats:  pipeline.ParseFormats(c.Layout.Formats),
		Logger:   logger,
	}
}
