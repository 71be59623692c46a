package logo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/repeatmap/pkg/cache"
	"github.com/matzehuels/repeatmap/pkg/errors"
	"github.com/matzehuels/repeatmap/pkg/httputil"
)

// Service defaults.
const (
	DefaultBaseURL = "http://skylign.org"
	DefaultPfamURL = "http://pfam.xfam.org"

	DefaultFilename   = "query.hmm"
	DefaultProcessing = "hmm"
	DefaultColors     = "consensus"
)

// Logo formats accepted by [Client.Fetch].
const (
	FormatPNG  = "png"
	FormatJSON = "json"
)

// maxResponse bounds how much of a response body is read.
const maxResponse = 32 << 20

// Job is a logo created on the service.
type Job struct {
	UUID uuid.UUID `json:"uuid"`
	URL  string    `json:"url"`
	// Message is the service's status text, if any.
	Message string `json:"message,omitempty"`
}

// SubmitOptions control how an HMM is uploaded.
type SubmitOptions struct {
	// Filename is sent with the upload. Empty uses DefaultFilename.
	Filename string
	// Processing is the service's processing mode. Empty uses
	// DefaultProcessing.
	Processing string
	// Colors selects the color scheme of downloaded PNGs. Empty uses
	// DefaultColors.
	Colors string
}

func (o SubmitOptions) withDefaults() SubmitOptions {
	if o.Filename == "" {
		o.Filename = DefaultFilename
	}
	if o.Processing == "" {
		o.Processing = DefaultProcessing
	}
	if o.Colors == "" {
		o.Colors = DefaultColors
	}
	return o
}

// Client talks to the logo service.
type Client struct {
	http    *httputil.Client
	baseURL string
	pfamURL string
	policy  httputil.Policy
	cache   cache.Cache
	keyer   cache.Keyer
	logger  *log.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL points the client at another logo service.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithPfamURL points [Client.Pfam] at another Pfam mirror.
func WithPfamURL(u string) Option {
	return func(c *Client) { c.pfamURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http.HTTP = h }
}

// WithRetry sets the retry policy for transient failures.
func WithRetry(p httputil.Policy) Option {
	return func(c *Client) { c.policy = p }
}

// WithCache caches logos and Pfam HMMs. Keys come from keyer, or the
// default keyer when nil.
func WithCache(cc cache.Cache, keyer cache.Keyer) Option {
	return func(c *Client) {
		c.cache = cc
		if keyer != nil {
			c.keyer = keyer
		}
	}
}

// WithLogger sets the logger for request progress.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the public Skylign service.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    httputil.NewClient(map[string]string{"User-Agent": "repeatmap"}),
		baseURL: DefaultBaseURL,
		pfamURL: DefaultPfamURL,
		policy:  httputil.DefaultPolicy,
		cache:   cache.NewNullCache(),
		keyer:   cache.NewDefaultKeyer(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type submitResponse struct {
	UUID    string `json:"uuid"`
	URL     string `json:"url"`
	Message string `json:"message"`
	Error   any    `json:"error"`
}

// Submit uploads an HMM and returns the job describing the new logo.
func (c *Client) Submit(ctx context.Context, hmm []byte, opts SubmitOptions) (*Job, error) {
	if len(bytes.TrimSpace(hmm)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty HMM")
	}
	opts = opts.withDefaults()

	body, contentType, err := multipartBody(hmm, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode upload")
	}

	reqID := uuid.New()
	c.logger.Debug("submitting HMM", "request", reqID, "bytes", len(hmm), "service", c.baseURL)

	var out submitResponse
	err = httputil.Retry(ctx, c.policy, func() error {
		req, err := http.NewRequest(http.MethodPost, c.baseURL, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Accept", "application/json")
		data, err := c.do(ctx, req)
		if err != nil {
			return err
		}
		out = submitResponse{}
		if err := json.Unmarshal(data, &out); err != nil {
			return errors.Wrap(errors.ErrCodeLogoService, err, "decode logo service response")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("submit HMM: %w", err)
	}

	if out.Error != nil {
		return nil, errors.New(errors.ErrCodeLogoService, "logo service error: %v", out.Error)
	}
	id, err := uuid.Parse(out.UUID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLogoService, err, "logo service returned invalid uuid %q", out.UUID)
	}
	c.logger.Debug("logo created", "request", reqID, "uuid", id)
	return &Job{UUID: id, URL: out.URL, Message: out.Message}, nil
}

// Fetch downloads a submitted logo. FormatPNG returns the image drawn with
// the default colors; FormatJSON returns the logo data.
func (c *Client) Fetch(ctx context.Context, job *Job, format string) ([]byte, error) {
	return c.fetch(ctx, job, format, DefaultColors)
}

func (c *Client) fetch(ctx context.Context, job *Job, format, colors string) ([]byte, error) {
	if job == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil job")
	}
	var target, accept string
	switch format {
	case FormatPNG:
		q := url.Values{"colors": {colors}, "format": {"png"}}
		target = fmt.Sprintf("%s/download/%s/image?%s", c.baseURL, job.UUID, q.Encode())
		accept = "image/png"
	case FormatJSON:
		target = job.URL
		if target == "" {
			target = fmt.Sprintf("%s/logo/%s", c.baseURL, job.UUID)
		}
		accept = "application/json"
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported logo format %q", format)
	}

	var data []byte
	err := httputil.Retry(ctx, c.policy, func() error {
		req, err := http.NewRequest(http.MethodGet, target, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", accept)
		data, err = c.do(ctx, req)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch logo %s: %w", job.UUID, err)
	}
	return data, nil
}

// Logo submits hmm and fetches the logo in format. Results are cached by
// the hash of the HMM and the options.
func (c *Client) Logo(ctx context.Context, hmm []byte, opts SubmitOptions, format string) ([]byte, error) {
	opts = opts.withDefaults()
	key := c.keyer.LogoKey(cache.Hash(hmm), cache.LogoKeyOpts{
		Format:     format,
		Processing: opts.Processing,
		Colors:     opts.Colors,
	})
	if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
		c.logger.Debug("logo from cache", "format", format)
		return data, nil
	}

	start := time.Now()
	job, err := c.Submit(ctx, hmm, opts)
	if err != nil {
		return nil, err
	}
	data, err := c.fetch(ctx, job, format, opts.Colors)
	if err != nil {
		return nil, err
	}
	c.logger.Info("fetched logo", "uuid", job.UUID, "format", format, "bytes", len(data),
		"duration", time.Since(start).Round(time.Millisecond))

	if err := c.cache.Set(ctx, key, data, cache.TTLLogo); err != nil {
		c.logger.Warn("cache write failed", "err", err)
	}
	return data, nil
}

// Pfam downloads the HMM of a Pfam family, such as "PF00400".
func (c *Client) Pfam(ctx context.Context, family string) ([]byte, error) {
	family = strings.TrimSpace(family)
	if family == "" || strings.ContainsAny(family, "/?#") {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid Pfam family %q", family)
	}
	key := c.keyer.HTTPKey("pfam", family)
	if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
		return data, nil
	}

	target := fmt.Sprintf("%s/family/%s/hmm", c.pfamURL, url.PathEscape(family))
	var data []byte
	err := httputil.Retry(ctx, c.policy, func() error {
		req, err := http.NewRequest(http.MethodGet, target, nil)
		if err != nil {
			return err
		}
		data, err = c.do(ctx, req)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch Pfam %s: %w", family, err)
	}
	c.logger.Debug("fetched Pfam HMM", "family", family, "bytes", len(data))

	if err := c.cache.Set(ctx, key, data, cache.TTLHTTP); err != nil {
		c.logger.Warn("cache write failed", "err", err)
	}
	return data, nil
}

func (c *Client) do(ctx context.Context, req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := httputil.CheckStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read response"))
	}
	return data, nil
}

func multipartBody(hmm []byte, opts SubmitOptions) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", opts.Filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(hmm); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("processing", opts.Processing); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
