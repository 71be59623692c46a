package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/repeatmap/pkg/errors"
)

// Span is a half-open range of sequence positions.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of positions in the span.
func (s Span) Len() int { return s.End - s.Start }

// Clip intersects [start, end) with the span. ok is false when they do not
// overlap; empty intervals on the span are kept so zero-length repeats still
// get a mark.
func (s Span) Clip(start, end int) (lo, hi int, ok bool) {
	if start == end {
		return start, end, start >= s.Start && start < s.End
	}
	lo, hi = max(start, s.Start), min(end, s.End)
	if lo >= hi {
		return 0, 0, false
	}
	return lo, hi, true
}

// Fragments splits [start, end) into n rows of equal length. The last row is
// clipped at end. n below 1 counts as 1.
func Fragments(start, end, n int) []Span {
	n = max(n, 1)
	if end < start {
		end = start
	}
	size := (end - start + n - 1) / n
	spans := make([]Span, n)
	for i := range spans {
		s := min(start+i*size, end)
		spans[i] = Span{Start: s, End: min(s+size, end)}
	}
	return spans
}

// Scale maps sequence positions within a span onto a pixel range.
type Scale struct {
	Span        Span
	Left, Right float64
}

// X returns the pixel position of pos. Positions outside the span are
// extrapolated.
func (s Scale) X(pos int) float64 {
	if s.Span.Len() <= 0 {
		return s.Left
	}
	return s.Left + float64(pos-s.Span.Start)/float64(s.Span.Len())*(s.Right-s.Left)
}

// Page is the resolved page record handed to a renderer.
//
// X and Y are the horizontal and bottom margins, YT the top margin, all as
// fractions of the page size. FragmentSize is the share of each fragment row
// filled by tracks; the rest is spacing.
type Page struct {
	Geometry
	Start        int     `json:"start"`
	End          int     `json:"end"`
	Fragments    int     `json:"fragments"`
	FragmentSize float64 `json:"fragment_size"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	YT           float64 `json:"yt"`
}

// Validate checks that the page can be laid out.
func (p Page) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "page size %gx%g must be positive", p.Width, p.Height)
	case p.End < p.Start || p.Start < 0:
		return errors.New(errors.ErrCodeInvalidInput, "page range [%d, %d) is invalid", p.Start, p.End)
	case p.Fragments < 1:
		return errors.New(errors.ErrCodeInvalidInput, "fragments must be at least 1, got %d", p.Fragments)
	case p.FragmentSize <= 0 || p.FragmentSize > 1:
		return errors.New(errors.ErrCodeInvalidInput, "fragment size must be in (0, 1], got %g", p.FragmentSize)
	case p.X < 0 || p.X >= 0.5:
		return errors.New(errors.ErrCodeInvalidInput, "horizontal margin must be in [0, 0.5), got %g", p.X)
	case p.Y < 0 || p.YT < 0 || p.Y+p.YT >= 1:
		return errors.New(errors.ErrCodeInvalidInput, "vertical margins %g and %g leave no room", p.Y, p.YT)
	}
	return nil
}

// Slot is one track to be placed on the page.
type Slot struct {
	TrackID string
	Rank    int
	Height  float64 // relative to the other slots
}

// Placement is a track's box within one fragment row.
type Placement struct {
	Box
	Rank     int
	Fragment int
	Scale    Scale
}

// Arrange places every slot in every fragment row. Within a row, slots are
// stacked top to bottom by descending rank and share the row's height in
// proportion to their Height. Placements are returned row by row, top first.
func (p Page) Arrange(slots []Slot) []Placement {
	if len(slots) == 0 {
		return nil
	}
	ordered := slices.Clone(slots)
	slices.SortStableFunc(ordered, func(a, b Slot) int { return cmp.Compare(b.Rank, a.Rank) })

	var total float64
	for _, s := range ordered {
		total += max(s.Height, 0)
	}

	left, right := p.X*p.Width, p.Width-p.X*p.Width
	top, bottom := p.YT*p.Height, p.Height-p.Y*p.Height
	spans := Fragments(p.Start, p.End, p.Fragments)
	band := (bottom - top) / float64(len(spans))
	used := band * p.FragmentSize

	out := make([]Placement, 0, len(spans)*len(ordered))
	for f, span := range spans {
		cursor := top + float64(f)*band + (band-used)/2
		for _, s := range ordered {
			share := 1 / float64(len(ordered))
			if total > 0 {
				share = max(s.Height, 0) / total
			}
			h := used * share
			out = append(out, Placement{
				Box:      Box{TrackID: s.TrackID, Left: left, Right: right, Top: cursor, Bottom: cursor + h},
				Rank:     s.Rank,
				Fragment: f,
				Scale:    Scale{Span: span, Left: left, Right: right},
			})
			cursor += h
		}
	}
	return out
}
