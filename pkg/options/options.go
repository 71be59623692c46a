// Package options holds the drawing options of a repeat map.
//
// Options come in three independent records: [Feature] for each repeat
// interval, [Track] for each sequence and [Page] for the whole drawing.
// Records are values. Overrides are expressed as *Overrides records whose
// nil fields mean "keep", and Merge returns a new record without touching
// its receiver, so defaults can be shared safely:
//
//	f := options.DefaultFeature()
//	big := f.Merge(options.FeatureOverrides{LabelSize: options.Ptr(14.0)})
//	// f.LabelSize is still 10
//
// Override records decode from TOML, which is how configuration files and
// input documents supply them.
package options

import (
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/repeatmap/pkg/errors"
	"github.com/matzehuels/repeatmap/pkg/palette"
)

// Label positions along a feature.
const (
	LabelStart  = "start"
	LabelMiddle = "middle"
	LabelEnd    = "end"
)

// FormatLinear is the only page format.
const FormatLinear = "linear"

var labelPositions = []string{LabelStart, LabelMiddle, LabelEnd}

// Ptr returns a pointer to v, for building override records.
func Ptr[T any](v T) *T { return &v }

// Color is a colorful.Color that reads and writes #rrggbb text, and accepts
// the color names understood by [palette.Parse].
type Color struct {
	colorful.Color
}

// NewColor wraps c.
func NewColor(c colorful.Color) Color { return Color{c} }

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Color.Hex()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := palette.Parse(string(text))
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// Feature configures how each repeat interval is drawn.
type Feature struct {
	// Color fixes the fill of every feature. Nil assigns rainbow colors by
	// position in the track.
	Color         *Color
	Border        Color
	Label         bool
	LabelPosition string
	LabelSize     float64
	LabelAngle    float64
}

// DefaultFeature returns the feature defaults: light grey border, labels
// shown at the start in size 10, unrotated.
func DefaultFeature() Feature {
	return Feature{
		Border:        NewColor(palette.MustParse("lightgrey")),
		Label:         true,
		LabelPosition: LabelStart,
		LabelSize:     10,
		LabelAngle:    0,
	}
}

// Validate checks the label settings.
func (f Feature) Validate() error {
	if !slices.Contains(labelPositions, f.LabelPosition) {
		return errors.New(errors.ErrCodeInvalidInput, "label position %q must be one of %v", f.LabelPosition, labelPositions)
	}
	if f.LabelSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "label size must be non-negative, got %g", f.LabelSize)
	}
	return nil
}

// FeatureOverrides replaces the non-nil fields of a [Feature].
type FeatureOverrides struct {
	Color         *Color   `toml:"color" json:"color,omitempty"`
	Border        *Color   `toml:"border" json:"border,omitempty"`
	Label         *bool    `toml:"label" json:"label,omitempty"`
	LabelPosition *string  `toml:"label_position" json:"label_position,omitempty"`
	LabelSize     *float64 `toml:"label_size" json:"label_size,omitempty"`
	LabelAngle    *float64 `toml:"label_angle" json:"label_angle,omitempty"`
}

// Merge returns f with o applied.
func (f Feature) Merge(o FeatureOverrides) Feature {
	if o.Color != nil {
		c := *o.Color
		f.Color = &c
	}
	set(&f.Border, o.Border)
	set(&f.Label, o.Label)
	set(&f.LabelPosition, o.LabelPosition)
	set(&f.LabelSize, o.LabelSize)
	set(&f.LabelAngle, o.LabelAngle)
	return f
}

// Merge layers over on top of o; fields set in over win.
func (o FeatureOverrides) Merge(over FeatureOverrides) FeatureOverrides {
	pick(&o.Color, over.Color)
	pick(&o.Border, over.Border)
	pick(&o.Label, over.Label)
	pick(&o.LabelPosition, over.LabelPosition)
	pick(&o.LabelSize, over.LabelSize)
	pick(&o.LabelAngle, over.LabelAngle)
	return o
}

// Track configures the band each sequence is drawn in.
type Track struct {
	Greytrack bool
	Height    float64
	Start     int
	End       *int   // nil draws to the track's length
	Name      string // empty uses the track identifier
}

// DefaultTrack returns the track defaults: grey background, height 1,
// starting at 0.
func DefaultTrack() Track {
	return Track{Greytrack: true, Height: 1, Start: 0}
}

// Validate checks the track extent and height.
func (t Track) Validate() error {
	if t.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "track height must be non-negative, got %g", t.Height)
	}
	if t.Start < 0 || (t.End != nil && *t.End < t.Start) {
		return errors.New(errors.ErrCodeInvalidInput, "track range is invalid")
	}
	return nil
}

// TrackOverrides replaces the non-nil fields of a [Track].
type TrackOverrides struct {
	Greytrack *bool    `toml:"greytrack" json:"greytrack,omitempty"`
	Height    *float64 `toml:"height" json:"height,omitempty"`
	Start     *int     `toml:"start" json:"start,omitempty"`
	End       *int     `toml:"end" json:"end,omitempty"`
	Name      *string  `toml:"name" json:"name,omitempty"`
}

// Merge returns t with o applied.
func (t Track) Merge(o TrackOverrides) Track {
	set(&t.Greytrack, o.Greytrack)
	set(&t.Height, o.Height)
	set(&t.Start, o.Start)
	if o.End != nil {
		t.End = Ptr(*o.End)
	}
	set(&t.Name, o.Name)
	return t
}

// Merge layers over on top of o; fields set in over win.
func (o TrackOverrides) Merge(over TrackOverrides) TrackOverrides {
	pick(&o.Greytrack, over.Greytrack)
	pick(&o.Height, over.Height)
	pick(&o.Start, over.Start)
	pick(&o.End, over.End)
	pick(&o.Name, over.Name)
	return o
}

// Page configures the drawing as a whole. Margins X, Y and YT are fractions
// of the page size.
type Page struct {
	Format       string
	X, Y, YT     float64
	Start        int
	End          *int // nil draws to the longest track
	Fragments    int
	FragmentSize float64
}

// DefaultPage returns the page defaults: linear format, no margins, a single
// fragment starting at 0.
func DefaultPage() Page {
	return Page{Format: FormatLinear, Fragments: 1, FragmentSize: 1}
}

// Validate checks the format and the fragment settings. Margins are checked
// together with the geometry by the layout.
func (p Page) Validate() error {
	if p.Format != FormatLinear {
		return errors.New(errors.ErrCodeUnsupported, "page format %q is not supported", p.Format)
	}
	if p.Fragments < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "fragments must be at least 1, got %d", p.Fragments)
	}
	if p.Start < 0 || (p.End != nil && *p.End < p.Start) {
		return errors.New(errors.ErrCodeInvalidInput, "page range is invalid")
	}
	return nil
}

// PageOverrides replaces the non-nil fields of a [Page].
type PageOverrides struct {
	Format       *string  `toml:"format" json:"format,omitempty"`
	X            *float64 `toml:"x" json:"x,omitempty"`
	Y            *float64 `toml:"y" json:"y,omitempty"`
	YT           *float64 `toml:"yt" json:"yt,omitempty"`
	Start        *int     `toml:"start" json:"start,omitempty"`
	End          *int     `toml:"end" json:"end,omitempty"`
	Fragments    *int     `toml:"fragments" json:"fragments,omitempty"`
	FragmentSize *float64 `toml:"fragment_size" json:"fragment_size,omitempty"`
}

// Merge returns p with o applied.
func (p Page) Merge(o PageOverrides) Page {
	set(&p.Format, o.Format)
	set(&p.X, o.X)
	set(&p.Y, o.Y)
	set(&p.YT, o.YT)
	set(&p.Start, o.Start)
	if o.End != nil {
		p.End = Ptr(*o.End)
	}
	set(&p.Fragments, o.Fragments)
	set(&p.FragmentSize, o.FragmentSize)
	return p
}

// Merge layers over on top of o; fields set in over win.
func (o PageOverrides) Merge(over PageOverrides) PageOverrides {
	pick(&o.Format, over.Format)
	pick(&o.X, over.X)
	pick(&o.Y, over.Y)
	pick(&o.YT, over.YT)
	pick(&o.Start, over.Start)
	pick(&o.End, over.End)
	pick(&o.Fragments, over.Fragments)
	pick(&o.FragmentSize, over.FragmentSize)
	return o
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func pick[T any](dst **T, v *T) {
	if v != nil {
		*dst = Ptr(*v)
	}
}
