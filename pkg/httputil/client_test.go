package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/repeatmap/pkg/errors"
	"github.com/matzehuels/repeatmap/pkg/observability"
)

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code      int
		wantCode  errors.Code
		retryable bool
	}{
		{200, "", false},
		{201, "", false},
		{404, errors.ErrCodeNotFound, false},
		{400, errors.ErrCodeNetwork, false},
		{429, errors.ErrCodeNetwork, true},
		{500, errors.ErrCodeNetwork, true},
		{503, errors.ErrCodeNetwork, true},
	}
	for _, tt := range tests {
		err := CheckStatus(tt.code)
		if tt.wantCode == "" {
			if err != nil {
				t.Errorf("CheckStatus(%d) = %v, want nil", tt.code, err)
			}
			continue
		}
		if !errors.Is(err, tt.wantCode) {
			t.Errorf("CheckStatus(%d) = %v, want %s", tt.code, err, tt.wantCode)
		}
		if IsRetryable(err) != tt.retryable {
			t.Errorf("CheckStatus(%d) retryable = %v, want %v", tt.code, IsRetryable(err), tt.retryable)
		}
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	requests  int
	responses []int
	errs      int
}

func (h *recordingHooks) OnRequest(context.Context, string, string, string) { h.requests++ }
func (h *recordingHooks) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	h.responses = append(h.responses, status)
}
func (h *recordingHooks) OnError(context.Context, string, string, string, error) { h.errs++ }

func TestClientDo(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	var gotAccept, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	c := NewClient(map[string]string{"User-Agent": "repeatmap-test", "Accept": "text/plain"})
	c.HTTP = srv.Client()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/x", nil)
	req.Header.Set("Accept", "image/png")
	resp, err := c.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	resp.Body.Close()

	if gotAccept != "image/png" {
		t.Errorf("Accept = %q, request header should win", gotAccept)
	}
	if gotAgent != "repeatmap-test" {
		t.Errorf("User-Agent = %q", gotAgent)
	}
	if hooks.requests != 1 || len(hooks.responses) != 1 || hooks.responses[0] != http.StatusTeapot {
		t.Errorf("hooks = %+v", hooks)
	}
}

func TestClientDoTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(nil)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	_, err := c.Do(context.Background(), req)
	if !errors.Is(err, errors.ErrCodeNetwork) || !IsRetryable(err) {
		t.Errorf("Do() error = %v, want retryable NETWORK_ERROR", err)
	}
}
