package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/repeatmap/pkg/cache"
	"github.com/matzehuels/repeatmap/pkg/errors"
)

const sample = `
[feature]
border = "black"
label_size = 8

[track]
greytrack = false

[page]
fragments = 2

[render]
width = 1200
height = 0.2
formats = ["svg", "png"]

[cache]
backend = "file"
ttl = "72h"

[logo]
colors = "weblogo"
`

func TestRead(t *testing.T) {
	cfg, err := Read(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if cfg.Feature.LabelSize == nil || *cfg.Feature.LabelSize != 8 {
		t.Errorf("feature.label_size = %v", cfg.Feature.LabelSize)
	}
	if cfg.Feature.Border == nil || cfg.Feature.Border.Hex() != "#000000" {
		t.Errorf("feature.border = %v", cfg.Feature.Border)
	}
	if cfg.Track.Greytrack == nil || *cfg.Track.Greytrack {
		t.Errorf("track.greytrack = %v", cfg.Track.Greytrack)
	}
	if cfg.Page.Fragments == nil || *cfg.Page.Fragments != 2 {
		t.Errorf("page.fragments = %v", cfg.Page.Fragments)
	}
	if cfg.Render.Width != 1200 || cfg.Render.Height != 0.2 || len(cfg.Render.Formats) != 2 {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Cache.TTL.Duration != 72*time.Hour {
		t.Errorf("cache.ttl = %v", cfg.Cache.TTL)
	}
	if cfg.Logo.Colors != "weblogo" {
		t.Errorf("logo.colors = %q", cfg.Logo.Colors)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", "[feature\n"},
		{"unknown key", "[render]\ncolour = 1\n"},
		{"bad color", "[feature]\nborder = \"nope\"\n"},
		{"bad fragments", "[page]\nfragments = 0\n"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n"},
		{"bad duration", "[cache]\nttl = \"soon\"\n"},
		{"negative width", "[render]\nwidth = -5\n"},
		{"bad logo url", "[logo]\nurl = \"ftp://logos.example.org\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.input)); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Read() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Render.Width != 1200 {
		t.Errorf("render.width = %v", cfg.Render.Width)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Cache.Backend != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	none := &Config{Cache: Cache{Backend: CacheNone}}
	c, err := none.OpenCache(ctx, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("backend none opened %T", c)
	}

	dir := t.TempDir()
	file := &Config{Cache: Cache{Dir: dir}}
	c, err = file.OpenCache(ctx, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fc, ok := c.(*cache.FileCache)
	if !ok || fc.Dir() != dir {
		t.Errorf("file backend opened %T", c)
	}
}

func TestLoadExample(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "examples", "config.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Render.Width != 1200 {
		t.Errorf("Render.Width = %v, want 1200", cfg.Render.Width)
	}
	if cfg.Cache.TTL.Duration != 72*time.Hour {
		t.Errorf("Cache.TTL = %v, want 72h", cfg.Cache.TTL.Duration)
	}
}
