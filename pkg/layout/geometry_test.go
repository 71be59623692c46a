package layout

import (
	"slices"
	"testing"

	"github.com/matzehuels/repeatmap/pkg/errors"
)

func TestComputeGeometry(t *testing.T) {
	tests := []struct {
		name           string
		width, heightQ float64
		tracks, frags  int
		want           Geometry
	}{
		{
			name:  "aspect ratio tie is landscape",
			width: 800, heightQ: 0.25, tracks: 4, frags: 1,
			want: Geometry{Width: 800, Height: 800, Orientation: Landscape},
		},
		{
			name:  "absolute height",
			width: 800, heightQ: 1200, tracks: 4, frags: 1,
			want: Geometry{Width: 800, Height: 1200, Orientation: Portrait},
		},
		{
			name:  "absolute height ignores track count",
			width: 800, heightQ: 1200, tracks: 99, frags: 3,
			want: Geometry{Width: 800, Height: 1200, Orientation: Portrait},
		},
		{
			name:  "height of exactly one is absolute",
			width: 800, heightQ: 1, tracks: 10, frags: 1,
			want: Geometry{Width: 800, Height: 1, Orientation: Landscape},
		},
		{
			name:  "ceiling",
			width: 801, heightQ: 0.1, tracks: 1, frags: 1,
			want: Geometry{Width: 801, Height: 81, Orientation: Landscape},
		},
		{
			name:  "fragments multiply height",
			width: 800, heightQ: 0.25, tracks: 2, frags: 3,
			want: Geometry{Width: 800, Height: 1200, Orientation: Portrait},
		},
		{
			name:  "zero fragments counts as one",
			width: 800, heightQ: 0.25, tracks: 2, frags: 0,
			want: Geometry{Width: 800, Height: 400, Orientation: Landscape},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeGeometry(tt.width, tt.heightQ, tt.tracks, tt.frags)
			if got != tt.want {
				t.Errorf("ComputeGeometry() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRank(t *testing.T) {
	const n = 3
	var ranks []int
	for i := 0; i < n; i++ {
		ranks = append(ranks, Rank(i, n))
	}
	if !slices.Equal(ranks, []int{3, 2, 1}) {
		t.Errorf("ranks = %v, want [3 2 1]", ranks)
	}
}

func TestFragments(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		n          int
		want       []Span
	}{
		{"single", 0, 100, 1, []Span{{0, 100}}},
		{"even", 0, 100, 4, []Span{{0, 25}, {25, 50}, {50, 75}, {75, 100}}},
		{"last clipped", 0, 10, 3, []Span{{0, 4}, {4, 8}, {8, 10}}},
		{"offset start", 50, 70, 2, []Span{{50, 60}, {60, 70}}},
		{"empty range", 5, 5, 2, []Span{{5, 5}, {5, 5}}},
		{"zero n", 0, 10, 0, []Span{{0, 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fragments(tt.start, tt.end, tt.n); !slices.Equal(got, tt.want) {
				t.Errorf("Fragments() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanClip(t *testing.T) {
	s := Span{Start: 10, End: 20}
	tests := []struct {
		name       string
		start, end int
		lo, hi     int
		ok         bool
	}{
		{"inside", 12, 15, 12, 15, true},
		{"overhang left", 5, 15, 10, 15, true},
		{"overhang right", 15, 30, 15, 20, true},
		{"before", 0, 10, 0, 0, false},
		{"after", 20, 25, 0, 0, false},
		{"point inside", 12, 12, 12, 12, true},
		{"point at end", 20, 20, 20, 20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := s.Clip(tt.start, tt.end)
			if ok != tt.ok || (ok && (lo != tt.lo || hi != tt.hi)) {
				t.Errorf("Clip(%d, %d) = %d, %d, %v", tt.start, tt.end, lo, hi, ok)
			}
		})
	}
}

func TestScale(t *testing.T) {
	s := Scale{Span: Span{Start: 100, End: 200}, Left: 0, Right: 800}
	if got := s.X(150); got != 400 {
		t.Errorf("X(150) = %v, want 400", got)
	}
	if got := s.X(200); got != 800 {
		t.Errorf("X(200) = %v, want 800", got)
	}
	empty := Scale{Span: Span{Start: 5, End: 5}, Left: 10, Right: 20}
	if got := empty.X(5); got != 10 {
		t.Errorf("empty X(5) = %v, want 10", got)
	}
}

func TestPageValidate(t *testing.T) {
	valid := Page{Geometry: Geometry{Width: 800, Height: 200}, End: 100, Fragments: 1, FragmentSize: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Page)
	}{
		{"zero width", func(p *Page) { p.Width = 0 }},
		{"reversed range", func(p *Page) { p.Start, p.End = 50, 10 }},
		{"no fragments", func(p *Page) { p.Fragments = 0 }},
		{"fragment size", func(p *Page) { p.FragmentSize = 1.5 }},
		{"margin", func(p *Page) { p.X = 0.5 }},
		{"vertical margins", func(p *Page) { p.Y, p.YT = 0.5, 0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Validate() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestArrange(t *testing.T) {
	p := Page{
		Geometry:     Geometry{Width: 800, Height: 400},
		End:          100,
		Fragments:    2,
		FragmentSize: 1,
	}
	slots := []Slot{
		{TrackID: "seqB", Rank: 1, Height: 1},
		{TrackID: "seqA", Rank: 2, Height: 3},
	}
	got := p.Arrange(slots)
	if len(got) != 4 {
		t.Fatalf("Arrange() returned %d placements, want 4", len(got))
	}

	var order []string
	for _, pl := range got[:2] {
		order = append(order, pl.TrackID)
	}
	if !slices.Equal(order, []string{"seqA", "seqB"}) {
		t.Errorf("first row order = %v, want highest rank first", order)
	}

	a, b := got[0], got[1]
	if a.Top != 0 || a.Bottom != 150 {
		t.Errorf("seqA box = [%v, %v], want [0, 150]", a.Top, a.Bottom)
	}
	if b.Top != 150 || b.Bottom != 200 {
		t.Errorf("seqB box = [%v, %v], want [150, 200]", b.Top, b.Bottom)
	}
	if got[2].Fragment != 1 || got[2].Top != 200 {
		t.Errorf("second row starts at %v (fragment %d), want 200 (1)", got[2].Top, got[2].Fragment)
	}
	if got[2].Scale.Span != (Span{Start: 50, End: 100}) {
		t.Errorf("second row span = %v", got[2].Scale.Span)
	}
	if slots[0].TrackID != "seqB" {
		t.Error("Arrange() reordered the caller's slots")
	}
}

func TestArrangeMargins(t *testing.T) {
	p := Page{
		Geometry:     Geometry{Width: 1000, Height: 100},
		End:          10,
		Fragments:    1,
		FragmentSize: 0.5,
		X:            0.1,
		YT:           0.2,
	}
	got := p.Arrange([]Slot{{TrackID: "t", Rank: 1, Height: 0}})
	box := got[0]
	if box.Left != 100 || box.Right != 900 {
		t.Errorf("horizontal extent = [%v, %v], want [100, 900]", box.Left, box.Right)
	}
	if box.Top != 40 || box.Bottom != 80 {
		t.Errorf("vertical extent = [%v, %v], want [40, 80]", box.Top, box.Bottom)
	}
}
