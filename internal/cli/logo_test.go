package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/repeatmap/pkg/errors"
)

var fakePNG = []byte("\x89PNG\r\n\x1a\nlogo")

func newLogoServer(t *testing.T) *httptest.Server {
	t.Helper()
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{
				"uuid": id.String(),
				"url":  "http://" + r.Host + "/logo/" + id.String(),
			})
		case strings.HasPrefix(r.URL.Path, "/download/"+id.String()):
			_, _ = w.Write(fakePNG)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLogoCommand(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	srv := newLogoServer(t)

	hmm := filepath.Join(tmp, "family.hmm")
	if err := os.WriteFile(hmm, []byte("HMMER3/f [3.1b2]\nNAME  demo\n//\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(tmp, "demo.png")

	root := New(os.Stderr, LogInfo).RootCommand()
	root.SetArgs([]string{"logo", hmm, "--url", srv.URL, "--no-cache", "-o", out})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("logo: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, fakePNG) {
		t.Errorf("logo output = %q, want %q", got, fakePNG)
	}
}

func TestLogoCommandBadFormat(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := New(os.Stderr, LogInfo).RootCommand()
	root.SetArgs([]string{"logo", "--pfam", "PF00400", "-f", "gif"})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("expected error for an unsupported logo format")
	}
}

func TestLogoCommandBadURL(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := New(os.Stderr, LogInfo).RootCommand()
	root.SetArgs([]string{"logo", "--pfam", "PF00400", "--url", "ftp://logos.example.org", "--no-cache"})
	err := root.ExecuteContext(context.Background())
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("logo with ftp URL error = %v, want INVALID_INPUT", err)
	}
}
