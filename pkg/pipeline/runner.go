package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/repeatmap/pkg/cache"
	rmio "github.com/matzehuels/repeatmap/pkg/io"
	"github.com/matzehuels/repeatmap/pkg/observability"
)

// Runner executes pipelines against a cache.
//
// A Runner holds no per-run state, so one Runner can serve concurrent runs
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is the lifetime of cached artifacts. Zero uses cache.TTLArtifact.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// the default key scheme and a nil logger uses the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: cache.Instrument(c), Keyer: keyer, Logger: logger}
}

// Execute runs import → build → render. When every requested format is
// cached for the imported document and options, the build is skipped and
// Result.Drawing is nil.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{RunID: uuid.New()}
	logger := opts.Logger.With("run", result.RunID.String()[:8])

	doc, err := r.importStage(ctx, opts, result)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	logger.Info("imported document",
		"name", doc.Name,
		"tracks", result.Stats.Tracks,
		"repeats", result.Stats.Repeats,
		"duration", result.Stats.ImportTime)

	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, result.DocumentHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			logger.Info("artifacts from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnBuildStart(ctx, doc.Name, len(doc.Tracks))
	drawing, err := Build(ctx, doc, opts)
	result.Stats.BuildTime = time.Since(start)
	hooks.OnBuildComplete(ctx, doc.Name, result.Stats.BuildTime, err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Drawing = drawing
	logger.Debug("built diagram",
		"width", drawing.Page.Width,
		"height", drawing.Page.Height,
		"orientation", drawing.Page.Orientation,
		"duration", result.Stats.BuildTime)

	start = time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, err := Render(drawing, opts.Formats)
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	logger.Info("rendered outputs", "formats", opts.Formats, "duration", result.Stats.RenderTime)

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(result.DocumentHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			logger.Warn("cache write failed", "format", format, "err", err)
		}
	}
	return result, nil
}

func (r *Runner) importStage(ctx context.Context, opts Options, result *Result) (*rmio.Document, error) {
	source := opts.Input
	if source == "" {
		source = "document"
	}
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnImportStart(ctx, source)

	doc, err := Import(ctx, opts)
	if err == nil {
		result.Document = doc
		result.Stats.Tracks = len(doc.Tracks)
		result.Stats.Repeats = len(doc.Repeats)
		result.DocumentHash, err = DocumentHash(doc)
	}
	result.Stats.ImportTime = time.Since(start)
	hooks.OnImportComplete(ctx, source, result.Stats.Tracks, result.Stats.Repeats, result.Stats.ImportTime, err)
	return doc, err
}

func (r *Runner) cachedArtifacts(ctx context.Context, docHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			return nil, false
		}
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
}

// DocumentHash returns the content hash of a document's JSON encoding.
func DocumentHash(doc *rmio.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("hash document: %w", err)
	}
	return cache.Hash(data), nil
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
