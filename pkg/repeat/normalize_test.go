package repeat

import (
	"slices"
	"testing"

	"github.com/matzehuels/repeatmap/pkg/errors"
)

type tralRepeat struct {
	begin   int
	msa     []string
	spanned int
}

func (r tralRepeat) Begin() int              { return r.begin }
func (r tralRepeat) MSAOriginal() []string   { return r.msa }
func (r tralRepeat) RepeatRegionLength() int { return r.spanned }

type repeatList struct{ repeats []any }

func (l repeatList) Repeats() []any { return l.repeats }

func TestNormalizeTuples(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []Interval
	}{
		{"pair array", [2]int{10, 20}, []Interval{{10, 20, Unknown}}},
		{"pair slice", []int{10, 20}, []Interval{{10, 20, Unknown}}},
		{"triple array", [3]int{10, 20, 1}, []Interval{{10, 20, Forward}}},
		{"triple slice reverse", []int{10, 20, -1}, []Interval{{10, 20, Reverse}}},
		{"pair descriptor", Pair{0, 0}, []Interval{{0, 0, Unknown}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Classify(tt.value)
			if err != nil {
				t.Fatalf("Classify() error: %v", err)
			}
			got, err := Normalize(d, Unknown)
			if err != nil {
				t.Fatalf("Normalize() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeDefaultStrand(t *testing.T) {
	got, err := Normalize(Pair{10, 20}, Reverse)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Strand != Reverse {
		t.Errorf("pair strand = %v, want default %v", got[0].Strand, Reverse)
	}

	got, err = Normalize(Triple{10, 20, Forward}, Reverse)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Strand != Forward {
		t.Errorf("triple strand = %v, want own %v", got[0].Strand, Forward)
	}
}

func TestNormalizeMalformedTuples(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"strand out of range", [3]int{10, 20, 30}},
		{"single element", []int{10}},
		{"four elements", []int{1, 2, 3, 4}},
		{"floats", []float64{10, 20}},
		{"string", "10-20"},
		{"nested bad element", []any{[2]int{1, 2}, "oops"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Classify(tt.value)
			if err == nil {
				_, err = Normalize(d, Unknown)
			}
			if !errors.Is(err, errors.ErrCodeUnsupportedRepeatType) {
				t.Errorf("error = %v, want UNSUPPORTED_REPEAT_TYPE", err)
			}
		})
	}
}

func TestNormalizeInvalidInterval(t *testing.T) {
	for _, p := range []Pair{{20, 10}, {-1, 5}} {
		if _, err := Normalize(p, Unknown); !errors.Is(err, errors.ErrCodeInvalidInterval) {
			t.Errorf("Normalize(%v) error = %v, want INVALID_INTERVAL", p, err)
		}
	}
	if _, err := Normalize(Pair{1, 2}, Strand(5)); !errors.Is(err, errors.ErrCodeInvalidInterval) {
		t.Errorf("Normalize with bad default strand error = %v, want INVALID_INTERVAL", err)
	}
}

func TestNormalizeAlignment(t *testing.T) {
	r := tralRepeat{begin: 5, msa: []string{"AC-T", "A--G"}, spanned: 5}
	d, err := Classify(r)
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	got, err := Normalize(d, Unknown)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	want := []Interval{{4, 7, Unknown}, {7, 9, Unknown}}
	if !slices.Equal(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalizeAlignmentMismatch(t *testing.T) {
	for _, spanned := range []int{4, 6, 0} {
		r := tralRepeat{begin: 5, msa: []string{"AC-T", "A--G"}, spanned: spanned}
		d, _ := Classify(r)
		_, err := Normalize(d, Unknown)
		if !errors.Is(err, errors.ErrCodeRepeatDecomposition) {
			t.Errorf("spanned=%d: error = %v, want REPEAT_DECOMPOSITION", spanned, err)
		}
	}
}

func TestNormalizeCollection(t *testing.T) {
	list := repeatList{repeats: []any{
		tralRepeat{begin: 1, msa: []string{"AB", "A-"}, spanned: 3},
		[3]int{50, 60, -1},
		repeatList{repeats: []any{[2]int{70, 75}}},
	}}
	d, err := Classify(list)
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if _, ok := d.(Collection); !ok {
		t.Fatalf("Classify() = %T, want Collection", d)
	}

	got, err := Normalize(d, Forward)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	want := []Interval{
		{0, 2, Forward},
		{2, 3, Forward},
		{50, 60, Reverse},
		{70, 75, Forward},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalizeGenericIterable(t *testing.T) {
	d, err := Classify([][2]int{{1, 5}, {8, 9}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := d.(Sequence); !ok {
		t.Fatalf("Classify() = %T, want Sequence", d)
	}
	got, err := Normalize(d, Unknown)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1] != (Interval{8, 9, Unknown}) {
		t.Errorf("Normalize() = %v", got)
	}

	empty, err := Normalize(Sequence{}, Unknown)
	if err != nil || len(empty) != 0 {
		t.Errorf("Normalize(empty) = %v, %v", empty, err)
	}
}

func TestResidues(t *testing.T) {
	tests := []struct {
		row  string
		want int
	}{
		{"AC-T", 3},
		{"A--G", 2},
		{"----", 0},
		{"a.c*x_9", 5},
		{"é-ß", 2},
		{"Ω·α", 2},
		{"", 0},
	}
	for _, tt := range tests {
		if got := Residues(tt.row); got != tt.want {
			t.Errorf("Residues(%q) = %d, want %d", tt.row, got, tt.want)
		}
	}
}

func TestParseStrand(t *testing.T) {
	tests := []struct {
		in      string
		want    Strand
		wantErr bool
	}{
		{"+", Forward, false},
		{"-", Reverse, false},
		{".", Unknown, false},
		{"1", Forward, false},
		{"x", Unknown, true},
	}
	for _, tt := range tests {
		got, err := ParseStrand(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseStrand(%q) = %v, %v", tt.in, got, err)
		}
	}
}
