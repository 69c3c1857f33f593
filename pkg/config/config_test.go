package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	neterrors "github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/force"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Force.Width != 800 || cfg.Force.Height != 400 {
		t.Errorf("canvas = %vx%v, want 800x400", cfg.Force.Width, cfg.Force.Height)
	}
	if cfg.Force.Seed != force.DefaultSeed {
		t.Errorf("seed = %d", cfg.Force.Seed)
	}
	if cfg.View.FadeIn != 200*time.Millisecond || cfg.View.FadeOut != 500*time.Millisecond {
		t.Errorf("fades = %v/%v", cfg.View.FadeIn, cfg.View.FadeOut)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	if dir := Dir(); dir != "/tmp/test-xdg/netgraph" {
		t.Errorf("expected /tmp/test-xdg/netgraph, got %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	if dir, want := Dir(), filepath.Join(home, ".config", "netgraph"); dir != want {
		t.Errorf("expected %q, got %q", want, dir)
	}
}

func TestLoadMissingDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != Default().Server.Addr {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadMissingExplicit(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !neterrors.Is(err, neterrors.ErrCodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[force]
width = 1024
seed = 7

[force.rules.distances]
friends = 60

[force.rules.charges]
professor = -800

[layout]
max_ticks = 120
formats = "svg,json"

[view]
frame_interval = "33ms"
fade_out = "1s"

[server]
addr = "127.0.0.1:9000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Force.Width != 1024 || cfg.Force.Height != 400 {
		t.Errorf("canvas = %vx%v, want 1024x400", cfg.Force.Width, cfg.Force.Height)
	}
	if cfg.Force.Seed != 7 {
		t.Errorf("seed = %d", cfg.Force.Seed)
	}
	if cfg.Force.Rules.Distances["friends"] != 60 || cfg.Force.Rules.Charges["professor"] != -800 {
		t.Errorf("rules = %+v", cfg.Force.Rules)
	}
	if cfg.View.FrameInterval != 33*time.Millisecond || cfg.View.FadeOut != time.Second {
		t.Errorf("view = %+v", cfg.View)
	}
	if cfg.View.FadeIn != 200*time.Millisecond {
		t.Errorf("unset fade_in should keep default, got %v", cfg.View.FadeIn)
	}

	opts := cfg.PipelineOptions("n.csv", "e.csv", nil)
	if opts.MaxTicks != 120 || len(opts.Formats) != 2 || opts.Force.Width != 1024 {
		t.Errorf("pipeline options = %+v", opts)
	}
	vopts := cfg.ViewOptions(nil)
	if vopts.FrameInterval != 33*time.Millisecond || vopts.Force.Seed != 7 {
		t.Errorf("view options = %+v", vopts)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[force\nwidth = 1", "parse config"},
		{"unknown key", "[force]\nwdth = 10", "unknown keys force.wdth"},
		{"negative canvas", "[force]\nheight = -1", "canvas must be positive"},
		{"alpha", "[force]\nalpha_decay = 1.5", "alpha_decay"},
		{"ticks", "[layout]\nmax_ticks = -1", "max_ticks"},
		{"format", "[layout]\nformats = \"svg,gif\"", "layout.formats"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Server.Addr = ":9999"
	cfg.Force.Seed = 99
	cfg.View.FadeOut = 750 * time.Millisecond
	if err := Save(cfg, path); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Server.Addr != ":9999" || got.Force.Seed != 99 || got.View.FadeOut != 750*time.Millisecond {
		t.Errorf("loaded = %+v", got)
	}
}
