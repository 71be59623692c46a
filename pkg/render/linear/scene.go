package linear

import (
	"github.com/matzehuels/repeatmap/pkg/layout"
	"github.com/matzehuels/repeatmap/pkg/options"
	"github.com/matzehuels/repeatmap/pkg/render"
	"github.com/matzehuels/repeatmap/pkg/repeat"
)

const (
	greytrackFill    = "#d3d3d3"
	greytrackOpacity = 0.5
	trackLineColor   = "#a0a0a0"
	trackNameColor   = "#808080"
	labelColor       = "#000000"
	featureInset     = 0.1
	minFeatureWidth  = 1.0
	labelGap         = 2.0
	trackNameMinSize = 6.0
	trackNameMaxSize = 12.0
)

type scene struct {
	width, height float64
	title         string
	shapes        []shape
}

func (s *scene) add(sh shape) { s.shapes = append(s.shapes, sh) }

type rect struct {
	x, y, w, h  float64
	fill        string // "" for none
	stroke      string // "" for none
	strokeWidth float64
	opacity     float64 // fill opacity; 0 means opaque
	class       string
}

type line struct {
	x1, y1, x2, y2 float64
	color          string
	width          float64
}

type text struct {
	x, y   float64
	size   float64
	angle  float64 // degrees, counterclockwise
	anchor string  // start, middle or end
	color  string
	value  string
}

func (b *Backend) scene() *scene {
	p := b.page
	s := &scene{width: p.Width, height: p.Height, title: b.name}
	if b.background != "" {
		s.add(rect{w: p.Width, h: p.Height, fill: b.background})
	}

	placements := b.placements()
	var labels []shape
	for _, pl := range placements {
		t := b.track(pl.Rank)
		if t.Greytrack {
			s.add(rect{
				x: pl.Left, y: pl.Top, w: pl.Width(), h: pl.Height(),
				fill: greytrackFill, opacity: greytrackOpacity, class: "track",
			})
			if t.Name != "" {
				size := min(trackNameMaxSize, max(trackNameMinSize, pl.Height()*0.3))
				labels = append(labels, text{
					x: pl.Left + 4, y: pl.Top + size, size: size,
					anchor: options.LabelStart, color: trackNameColor, value: t.Name,
				})
			}
		}

		extent := layout.Span{Start: t.Start, End: t.End}
		lo, hi, ok := pl.Scale.Span.Clip(extent.Start, extent.End)
		if !ok {
			continue
		}
		visible := layout.Span{Start: lo, End: hi}
		s.add(line{
			x1: pl.Scale.X(lo), y1: pl.CenterY(),
			x2: pl.Scale.X(hi), y2: pl.CenterY(),
			color: trackLineColor, width: 1,
		})

		for _, f := range t.Features {
			fr, label, ok := featureShapes(pl, visible, f)
			if !ok {
				continue
			}
			s.add(fr)
			if label != nil {
				labels = append(labels, *label)
			}
		}
	}
	s.shapes = append(s.shapes, labels...)
	return s
}

// featureShapes returns the box for f within one placement, plus its label.
func featureShapes(pl layout.Placement, visible layout.Span, f render.Feature) (rect, *text, bool) {
	lo, hi, ok := visible.Clip(f.Interval.Start, f.Interval.End)
	if !ok {
		return rect{}, nil, false
	}
	x0, x1 := pl.Scale.X(lo), pl.Scale.X(hi)
	if x1-x0 < minFeatureWidth {
		x1 = x0 + minFeatureWidth
	}
	top, bottom := strandBand(pl.Box, f.Interval.Strand)

	r := rect{
		x: x0, y: top, w: x1 - x0, h: bottom - top,
		fill: f.Color.Hex(), stroke: f.Border.Hex(), strokeWidth: 1,
		class: "repeat",
	}
	if !f.ShowLabel || f.Label == "" || f.LabelSize <= 0 {
		return r, nil, true
	}

	lx := x0
	switch f.LabelPosition {
	case options.LabelMiddle:
		lx = (x0 + x1) / 2
	case options.LabelEnd:
		lx = x1
	}
	return r, &text{
		x: lx, y: top - labelGap, size: f.LabelSize, angle: f.LabelAngle,
		anchor: options.LabelStart, color: labelColor, value: f.Label,
	}, true
}

// strandBand returns the vertical extent of a feature box. Forward repeats
// sit in the top half of the track, reverse ones in the bottom half.
func strandBand(b layout.Box, s repeat.Strand) (top, bottom float64) {
	pad := b.Height() * featureInset
	top, bottom = b.Top+pad, b.Bottom-pad
	switch s {
	case repeat.Forward:
		bottom = b.CenterY()
	case repeat.Reverse:
		top = b.CenterY()
	}
	return top, bottom
}
