package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tim-timman/git-tools/internal/discover"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()
	if cfg.Discover.Depth != discover.DefaultMaxDepth {
		t.Errorf("default depth = %d, want %d", cfg.Discover.Depth, discover.DefaultMaxDepth)
	}
	if cfg.Dispatch.Jobs != 1 {
		t.Errorf("default jobs = %d, want 1", cfg.Dispatch.Jobs)
	}
	if cfg.Output.Color != "auto" {
		t.Errorf("default color = %q, want auto", cfg.Output.Color)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	t.Parallel()
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("missing file config = %+v, want defaults", cfg)
	}
}

func TestLoadFromFull(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
[discover]
depth = 5
include = ["work/"]
exclude = ["archive", "scratch"]

[dispatch]
jobs = 8

[output]
prefix = "repo"
color = "never"
`)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Discover.Depth != 5 {
		t.Errorf("depth = %d, want 5", cfg.Discover.Depth)
	}
	if len(cfg.Discover.Include) != 1 || len(cfg.Discover.Exclude) != 2 {
		t.Errorf("filters = %+v", cfg.Discover)
	}
	if cfg.Dispatch.Jobs != 8 {
		t.Errorf("jobs = %d, want 8", cfg.Dispatch.Jobs)
	}
	if cfg.Output.Prefix != "repo" || cfg.Output.Color != "never" {
		t.Errorf("output = %+v", cfg.Output)
	}
}

func TestLoadFromPartialKeepsDefaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "[discover]\nexclude = [\"vendor\"]\n")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Discover.Depth != discover.DefaultMaxDepth {
		t.Errorf("depth = %d, want default", cfg.Discover.Depth)
	}
	if cfg.Dispatch.Jobs != 1 {
		t.Errorf("jobs = %d, want default 1", cfg.Dispatch.Jobs)
	}
}

func TestLoadFromInvalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", "[discover\n"},
		{"bad prefix", "[output]\nprefix = \"both\"\n"},
		{"bad color", "[output]\ncolor = \"rainbow\"\n"},
		{"bad jobs", "[dispatch]\njobs = 0\n"},
		{"bad depth", "[discover]\ndepth = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeConfig(t, tt.content)
			cfg, err := LoadFrom(path)
			if err == nil {
				t.Fatal("LoadFrom = nil error, want validation failure")
			}
			if !reflect.DeepEqual(cfg, Default()) {
				t.Errorf("invalid file config = %+v, want defaults", cfg)
			}
		})
	}
}
