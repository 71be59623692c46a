// Package diagram assembles repeat maps.
//
// A [RepeatDiagram] owns a track registry, one append-only interval list per
// track and its own drawing defaults. Repeats are normalized when they are
// added; [RepeatDiagram.Build] colors them, computes the page geometry and
// hands everything to a rendering backend:
//
//	d, err := diagram.New(track.Pair{ID: "seqA", Length: 100}, track.Pair{ID: "seqB", Length: 50})
//	err = d.AddRepeat("seqA", [2]int{10, 30}, repeat.Unknown)
//	err = d.AddRepeats("seqB", tralRepeats, repeat.Forward)
//	drawing, err := d.Build("Repeats", diagram.BuildOptions{})
//	err = drawing.WriteFile("repeats.svg", "")
//
// Diagrams share no state with each other and are not safe for concurrent
// use.
package diagram

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/repeatmap/pkg/errors"
	"github.com/matzehuels/repeatmap/pkg/layout"
	"github.com/matzehuels/repeatmap/pkg/options"
	"github.com/matzehuels/repeatmap/pkg/palette"
	"github.com/matzehuels/repeatmap/pkg/render"
	"github.com/matzehuels/repeatmap/pkg/render/linear"
	"github.com/matzehuels/repeatmap/pkg/repeat"
	"github.com/matzehuels/repeatmap/pkg/track"
)

// DefaultName is the title used when Build is given none.
const DefaultName = "Repeat Diagram"

// Size is the requested image size. HeightOrAspect values of 1 or more are
// absolute pixel heights; smaller values are the aspect ratio of one track.
type Size struct {
	Width          float64
	HeightOrAspect float64
}

// DefaultSize is 800 pixels wide with tracks a quarter as tall as wide.
var DefaultSize = Size{Width: 800, HeightOrAspect: 0.25}

// BuildOptions are per-call settings for [RepeatDiagram.Build]. Overrides
// win over the diagram's defaults for this call only.
type BuildOptions struct {
	Size    Size // zero value uses DefaultSize
	Page    options.PageOverrides
	Track   options.TrackOverrides
	Feature options.FeatureOverrides
	Backend render.Factory // nil uses the linear backend
}

// RepeatDiagram is a set of tracks and the repeats found on them.
type RepeatDiagram struct {
	registry *track.Registry
	repeats  [][]repeat.Interval

	feature options.Feature
	track   options.Track
	page    options.Page
}

// New registers the given track descriptors, top to bottom. See
// [track.Resolve] for the accepted descriptor shapes.
func New(descriptors ...any) (*RepeatDiagram, error) {
	reg, err := track.NewRegistry(descriptors...)
	if err != nil {
		return nil, err
	}
	return &RepeatDiagram{
		registry: reg,
		repeats:  make([][]repeat.Interval, reg.Len()),
		feature:  options.DefaultFeature(),
		track:    options.DefaultTrack(),
		page:     options.DefaultPage(),
	}, nil
}

// Tracks returns the registered tracks in registration order.
func (d *RepeatDiagram) Tracks() []track.Track { return d.registry.Tracks() }

// AddRepeat adds a single (start, end) or (start, end, strand) repeat to a
// track. Pairs take strand; triples keep their own.
func (d *RepeatDiagram) AddRepeat(trk, r any, strand repeat.Strand) error {
	desc, err := repeat.Classify(r)
	if err != nil {
		return err
	}
	switch desc.(type) {
	case repeat.Pair, repeat.Triple:
	default:
		return errors.New(errors.ErrCodeUnsupportedRepeatType,
			"single repeat must be a coordinate pair or triple, got %T", r)
	}
	return d.add(trk, desc, strand)
}

// AddRepeats adds repeats in any shape [repeat.Classify] understands:
// coordinate tuples, alignment-derived repeats, repeat lists and slices of
// these. Either all intervals are added or, on error, none.
func (d *RepeatDiagram) AddRepeats(trk, repeats any, strand repeat.Strand) error {
	desc, err := repeat.Classify(repeats)
	if err != nil {
		return err
	}
	return d.add(trk, desc, strand)
}

func (d *RepeatDiagram) add(trk any, desc repeat.Descriptor, strand repeat.Strand) error {
	i, err := d.registry.Lookup(trk)
	if err != nil {
		return err
	}
	ivs, err := repeat.Normalize(desc, strand)
	if err != nil {
		return err
	}
	d.repeats[i] = append(d.repeats[i], ivs...)
	return nil
}

// Repeats returns a copy of the intervals added to a track.
func (d *RepeatDiagram) Repeats(trk any) ([]repeat.Interval, error) {
	i, err := d.registry.Lookup(trk)
	if err != nil {
		return nil, err
	}
	return slices.Clone(d.repeats[i]), nil
}

// FeatureDefaults returns the diagram's feature defaults.
func (d *RepeatDiagram) FeatureDefaults() options.Feature { return d.feature }

// TrackDefaults returns the diagram's track defaults.
func (d *RepeatDiagram) TrackDefaults() options.Track { return d.track }

// PageDefaults returns the diagram's page defaults.
func (d *RepeatDiagram) PageDefaults() options.Page { return d.page }

// SetFeatureDefaults merges o into the feature defaults of this diagram.
func (d *RepeatDiagram) SetFeatureDefaults(o options.FeatureOverrides) error {
	f := d.feature.Merge(o)
	if err := f.Validate(); err != nil {
		return err
	}
	d.feature = f
	return nil
}

// SetTrackDefaults merges o into the track defaults of this diagram.
func (d *RepeatDiagram) SetTrackDefaults(o options.TrackOverrides) error {
	t := d.track.Merge(o)
	if err := t.Validate(); err != nil {
		return err
	}
	d.track = t
	return nil
}

// SetPageDefaults merges o into the page defaults of this diagram.
func (d *RepeatDiagram) SetPageDefaults(o options.PageOverrides) error {
	p := d.page.Merge(o)
	if err := p.Validate(); err != nil {
		return err
	}
	d.page = p
	return nil
}

// Build assembles the diagram and renders it through a backend.
//
// Tracks are added in registration order with descending rank, so the first
// registered track is drawn on top. Each interval is colored by its position
// in the track's list unless opts.Feature fixes a color. The page size comes
// from opts.Size; the page range defaults to the longest track.
func (d *RepeatDiagram) Build(name string, opts BuildOptions) (*render.Drawing, error) {
	if name == "" {
		name = DefaultName
	}
	n := d.registry.Len()
	if n == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "diagram has no tracks")
	}

	feat := d.feature.Merge(opts.Feature)
	if err := feat.Validate(); err != nil {
		return nil, err
	}
	trk := d.track.Merge(opts.Track)
	if err := trk.Validate(); err != nil {
		return nil, err
	}
	page := d.page.Merge(opts.Page)
	if err := page.Validate(); err != nil {
		return nil, err
	}

	size := opts.Size
	if size == (Size{}) {
		size = DefaultSize
	}
	if err := errors.ValidateSize(size.Width, size.HeightOrAspect); err != nil {
		return nil, err
	}

	factory := opts.Backend
	if factory == nil {
		factory = linear.Factory()
	}
	backend := factory(name)

	ranked := make([]render.Ranked, 0, n)
	for i, t := range d.registry.Tracks() {
		rt := d.renderTrack(t, d.repeats[i], trk, feat)
		rank := layout.Rank(i, n)
		if err := backend.AddTrack(rank, rt); err != nil {
			return nil, fmt.Errorf("add track %s: %w", t.ID, err)
		}
		ranked = append(ranked, render.Ranked{Rank: rank, Track: rt})
	}
	slices.Reverse(ranked)

	end := d.registry.MaxLength()
	if page.End != nil {
		end = *page.End
	}
	lp := layout.Page{
		Geometry:     layout.ComputeGeometry(size.Width, size.HeightOrAspect, n, page.Fragments),
		Start:        page.Start,
		End:          end,
		Fragments:    page.Fragments,
		FragmentSize: page.FragmentSize,
		X:            page.X,
		Y:            page.Y,
		YT:           page.YT,
	}
	if err := backend.BuildPage(lp); err != nil {
		return nil, fmt.Errorf("build page: %w", err)
	}
	return render.NewDrawing(name, lp, ranked, backend), nil
}

func (d *RepeatDiagram) renderTrack(t track.Track, ivs []repeat.Interval, o options.Track, f options.Feature) render.Track {
	rt := render.Track{
		ID:        t.ID,
		Name:      o.Name,
		Start:     o.Start,
		End:       t.Length,
		Height:    o.Height,
		Greytrack: o.Greytrack,
		Features:  make([]render.Feature, len(ivs)),
	}
	if rt.Name == "" {
		rt.Name = t.ID
	}
	if o.End != nil {
		rt.End = *o.End
	}
	for j, iv := range ivs {
		color := palette.Rainbow(j)
		if f.Color != nil {
			color = f.Color.Color
		}
		rt.Features[j] = render.Feature{
			Interval:      iv,
			Label:         strconv.Itoa(j + 1),
			Color:         color,
			Border:        f.Border.Color,
			ShowLabel:     f.Label,
			LabelPosition: f.LabelPosition,
			LabelSize:     f.LabelSize,
			LabelAngle:    f.LabelAngle,
		}
	}
	return rt
}

// String lists the tracks and their lengths in registration order.
func (d *RepeatDiagram) String() string {
	parts := make([]string, 0, d.registry.Len())
	for _, t := range d.registry.Tracks() {
		parts = append(parts, fmt.Sprintf("(%s, %d)", t.ID, t.Length))
	}
	return "RepeatDiagram([" + strings.Join(parts, ", ") + "])"
}
