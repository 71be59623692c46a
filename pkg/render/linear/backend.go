package linear

import (
	"cmp"
	"context"
	"slices"

	"github.com/matzehuels/repeatmap/pkg/errors"
	"github.com/matzehuels/repeatmap/pkg/layout"
	"github.com/matzehuels/repeatmap/pkg/render"
)

// Option configures a [Backend].
type Option func(*Backend)

// WithScale sets the PNG scale factor (default 1, the page's pixel size).
func WithScale(s float64) Option { return func(b *Backend) { b.scale = s } }

// WithBackground sets the page background color (default white, "" for none).
func WithBackground(hex string) Option { return func(b *Backend) { b.background = hex } }

// WithContext bounds external conversions such as PDF export.
func WithContext(ctx context.Context) Option { return func(b *Backend) { b.ctx = ctx } }

// Backend is the default linear renderer.
type Backend struct {
	name   string
	page   *layout.Page
	tracks []render.Ranked

	scale      float64
	background string
	ctx        context.Context
}

var _ render.Backend = (*Backend)(nil)

// New creates a backend for a diagram titled name.
func New(name string, opts ...Option) *Backend {
	b := &Backend{name: name, scale: 1, background: "#ffffff", ctx: context.Background()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Factory adapts New to [render.Factory].
func Factory(opts ...Option) render.Factory {
	return func(name string) render.Backend { return New(name, opts...) }
}

// BuildPage fixes the page. It may be called again to replace the page.
func (b *Backend) BuildPage(p layout.Page) error {
	if err := p.Validate(); err != nil {
		return err
	}
	b.page = &p
	return nil
}

// AddTrack adds t at rank. Ranks start at 1 and must be unique.
func (b *Backend) AddTrack(rank int, t render.Track) error {
	if rank < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "track %q: rank must be at least 1, got %d", t.ID, rank)
	}
	for _, r := range b.tracks {
		if r.Rank == rank {
			return errors.New(errors.ErrCodeInvalidInput, "track %q: rank %d is taken by %q", t.ID, rank, r.Track.ID)
		}
	}
	b.tracks = append(b.tracks, render.Ranked{Rank: rank, Track: t})
	slices.SortFunc(b.tracks, func(x, y render.Ranked) int { return cmp.Compare(x.Rank, y.Rank) })
	return nil
}

// Tracks returns the added tracks in ascending rank.
func (b *Backend) Tracks() []render.Ranked {
	return slices.Clone(b.tracks)
}

// Render encodes the page. BuildPage must have been called.
func (b *Backend) Render(format string) ([]byte, error) {
	if b.page == nil {
		return nil, errors.New(errors.ErrCodeInternal, "render %s: page was not built", format)
	}
	switch format {
	case render.FormatSVG:
		return renderSVG(b.scene()), nil
	case render.FormatPNG:
		return renderPNG(b.scene(), b.scale)
	case render.FormatPDF:
		return render.ToPDF(b.ctx, renderSVG(b.scene()))
	case render.FormatJSON:
		return renderJSON(b.name, *b.page, b.placements(), b.tracks)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
}

func (b *Backend) placements() []layout.Placement {
	slots := make([]layout.Slot, len(b.tracks))
	for i, r := range b.tracks {
		slots[i] = layout.Slot{TrackID: r.Track.ID, Rank: r.Rank, Height: r.Track.Height}
	}
	return b.page.Arrange(slots)
}

func (b *Backend) track(rank int) render.Track {
	i, _ := slices.BinarySearchFunc(b.tracks, rank, func(r render.Ranked, rank int) int {
		return cmp.Compare(r.Rank, rank)
	})
	return b.tracks[i].Track
}
