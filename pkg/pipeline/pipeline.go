// Package pipeline runs the import → build → render pipeline shared by the
// CLI commands.
//
// # Stages
//
//  1. Import: read a repeat-map document from a JSON, TOML or GFF file
//  2. Build: turn the document into a diagram and lay it out on a page
//  3. Render: encode the drawing in each requested format
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "repeats.gff",
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
//
// Rendered artifacts are cached under the hash of the imported document
// and the options that affect the output, so re-running with the same
// input and flags skips the build.
package pipeline

import (
	"encoding/json"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/repeatmap/pkg/cache"
	"github.com/matzehuels/repeatmap/pkg/diagram"
	"github.com/matzehuels/repeatmap/pkg/errors"
	rmio "github.com/matzehuels/repeatmap/pkg/io"
	"github.com/matzehuels/repeatmap/pkg/options"
	"github.com/matzehuels/repeatmap/pkg/render"
	"github.com/matzehuels/repeatmap/pkg/repeat"
)

const (
	// DefaultWidth is the page width in pixels.
	DefaultWidth = 800.0

	// DefaultHeightOrAspect gives each track a quarter of the width.
	DefaultHeightOrAspect = 0.25

	// DefaultScale is the PNG pixel density.
	DefaultScale = 1.0

	// DefaultStrand is applied to repeats that carry none.
	DefaultStrand = "."
)

// DefaultFormats are rendered when Options.Formats is empty.
var DefaultFormats = []string{render.FormatSVG}

// Options configure a pipeline run.
type Options struct {
	// Import
	Input       string         `json:"input,omitempty"`
	InputFormat string         `json:"input_format,omitempty"`
	Document    *rmio.Document `json:"-"`
	GFFTypes    []string       `json:"gff_types,omitempty"`
	Lengths     map[string]int `json:"lengths,omitempty"`

	// Build
	Name           string                   `json:"name,omitempty"`
	Strand         string                   `json:"strand,omitempty"`
	Width          float64                  `json:"width,omitempty"`
	HeightOrAspect float64                  `json:"height_or_aspect,omitempty"`
	Feature        options.FeatureOverrides `json:"feature,omitempty"`
	Track          options.TrackOverrides   `json:"track,omitempty"`
	Page           options.PageOverrides    `json:"page,omitempty"`

	// Render
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result is the output of a pipeline run.
type Result struct {
	// RunID identifies the run in logs.
	RunID uuid.UUID

	Document *rmio.Document
	// DocumentHash is the content hash of the imported document.
	DocumentHash string

	// Drawing is nil when every artifact came from the cache.
	Drawing   *render.Drawing
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds sizes and stage timings of a run.
type Stats struct {
	Tracks     int
	Repeats    int
	ImportTime time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo reports which stages were served from the cache.
type CacheInfo struct {
	RenderHit bool
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" && o.Document == nil {
		return errors.New(errors.ErrCodeInvalidInput, "input file or document is required")
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.HeightOrAspect == 0 {
		o.HeightOrAspect = DefaultHeightOrAspect
	}
	if err := errors.ValidateSize(o.Width, o.HeightOrAspect); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if o.Strand == "" {
		o.Strand = DefaultStrand
	}
	if _, err := repeat.ParseStrand(o.Strand); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(DefaultFormats)
	}
	formats, err := NormalizeFormats(o.Formats)
	if err != nil {
		return err
	}
	o.Formats = formats
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	o.validated = true
	return nil
}

// NormalizeFormats lower-cases formats and drops repeats, failing on any
// format the renderer does not support. Artifacts are keyed by the result.
func NormalizeFormats(formats []string) ([]string, error) {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		format, err := render.ParseFormat(f)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, format) {
			out = append(out, format)
		}
	}
	return out, nil
}

// DefaultStrandValue returns the parsed default strand.
func (o *Options) DefaultStrandValue() repeat.Strand {
	s, _ := repeat.ParseStrand(o.Strand)
	return s
}

// Size returns the requested page size.
func (o *Options) Size() diagram.Size {
	return diagram.Size{Width: o.Width, HeightOrAspect: o.HeightOrAspect}
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	overrides, _ := json.Marshal(struct {
		Feature options.FeatureOverrides `json:"feature"`
		Track   options.TrackOverrides   `json:"track"`
		Page    options.PageOverrides    `json:"page"`
	}{o.Feature, o.Track, o.Page})

	k := cache.ArtifactKeyOpts{
		Format:         format,
		Name:           o.Name,
		Width:          o.Width,
		HeightOrAspect: o.HeightOrAspect,
		Strand:         int(o.DefaultStrandValue()),
		Options:        string(overrides),
	}
	if format == render.FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
