package render

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/repeatmap/pkg/errors"
	"github.com/matzehuels/repeatmap/pkg/layout"
	"github.com/matzehuels/repeatmap/pkg/repeat"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Formats lists every output format in display order.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// ParseFormat normalizes a format name. Case and a leading dot are ignored.
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if !slices.Contains(Formats, f) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", s, strings.Join(Formats, ", "))
	}
	return f, nil
}

// FormatFromPath infers the output format from a file extension.
func FormatFromPath(path string) (string, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format of %q without an extension", path)
	}
	return ParseFormat(ext)
}

// Backend is the drawing capability the diagram core renders through.
type Backend interface {
	// BuildPage fixes the page geometry. It is called once, after all tracks
	// have been added.
	BuildPage(p layout.Page) error
	// AddTrack adds a track at the given stacking rank. Rank 1 is drawn at
	// the bottom; higher ranks are stacked above it.
	AddTrack(rank int, t Track) error
	// Render encodes the page in the given format.
	Render(format string) ([]byte, error)
}

// Factory creates a backend for a diagram with the given title.
type Factory func(name string) Backend

// Track is one sequence as handed to a backend, with options resolved.
type Track struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Start     int       `json:"start"`
	End       int       `json:"end"`
	Height    float64   `json:"height"`
	Greytrack bool      `json:"greytrack"`
	Features  []Feature `json:"features"`
}

// Feature is one repeat interval with its drawing options.
type Feature struct {
	Interval      repeat.Interval `json:"-"`
	Label         string          `json:"label,omitempty"`
	Color         colorful.Color  `json:"-"`
	Border        colorful.Color  `json:"-"`
	ShowLabel     bool            `json:"show_label"`
	LabelPosition string          `json:"label_position"`
	LabelSize     float64         `json:"label_size"`
	LabelAngle    float64         `json:"label_angle"`
}

// Ranked pairs a track with the rank it was added at.
type Ranked struct {
	Rank  int
	Track Track
}

// Drawing is a fully assembled diagram ready to be encoded.
type Drawing struct {
	Name   string
	Page   layout.Page
	Tracks []Ranked // ascending rank

	backend Backend
}

// NewDrawing wraps a backend that has received its page and tracks.
func NewDrawing(name string, page layout.Page, tracks []Ranked, b Backend) *Drawing {
	return &Drawing{Name: name, Page: page, Tracks: tracks, backend: b}
}

// Backend returns the backend the drawing renders through.
func (d *Drawing) Backend() Backend { return d.backend }

// Bytes renders the drawing in the given format.
func (d *Drawing) Bytes(format string) ([]byte, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return d.backend.Render(f)
}

// WriteFile renders the drawing to path. An empty format is inferred from
// the file extension.
func (d *Drawing) WriteFile(path, format string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if format == "" {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return err
		}
	}
	data, err := d.Bytes(format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
