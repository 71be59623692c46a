package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/repeatmap/pkg/cache"
)

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := humanBytes(tt.n); got != tt.want {
			t.Errorf("humanBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestCacheClearCommand(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmp, "cache"))

	dir := filepath.Join(tmp, "cache", appName)
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := fc.Set(ctx, "artifact:abc", []byte("<svg/>"), cache.TTLArtifact); err != nil {
		t.Fatal(err)
	}

	for _, args := range [][]string{{"cache", "info"}, {"cache", "clear"}} {
		root := New(os.Stderr, LogInfo).RootCommand()
		root.SetArgs(args)
		if err := root.ExecuteContext(ctx); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	entries, _, err := fc.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if entries != 0 {
		t.Errorf("cache has %d entries after clear, want 0", entries)
	}
}
