package repeat

import (
	"github.com/matzehuels/repeatmap/pkg/errors"
)

// Descriptor is the closed set of repeat shapes understood by [Normalize]:
// [Pair], [Triple], [Alignment], [Collection] and [Sequence].
type Descriptor interface {
	descriptor()
}

// Pair is a (start, end) repeat that takes the caller's default strand.
type Pair struct {
	Start, End int
}

// Triple is a (start, end, strand) repeat carrying its own strand.
type Triple struct {
	Start, End int
	Strand     Strand
}

// Alignment is a repeat decomposed by a multiple sequence alignment.
// Each row is one repeat unit, gaps included; Begin is 1-based and
// RegionLength is the number of residues the whole repeat spans.
type Alignment struct {
	Begin        int
	Rows         []string
	RegionLength int
}

// Collection is a repeat list object wrapping nested descriptors.
type Collection struct {
	Repeats []Descriptor
}

// Sequence is a plain list of descriptors.
type Sequence []Descriptor

func (Pair) descriptor()       {}
func (Triple) descriptor()     {}
func (Alignment) descriptor()  {}
func (Collection) descriptor() {}
func (Sequence) descriptor()   {}

// AlignedRepeat is implemented by host types describing one alignment-derived
// repeat, such as tandem repeat detector output.
type AlignedRepeat interface {
	Begin() int
	MSAOriginal() []string
	RepeatRegionLength() int
}

// Lister is implemented by host types holding a list of repeats.
type Lister interface {
	Repeats() []any
}

// Classify resolves a host value into a Descriptor.
//
// The specific forms are tried first: descriptors themselves, fixed-size int
// arrays, int slices of length 2 or 3, [AlignedRepeat] and [Lister]. Generic
// slices are the fallback and each element is classified recursively. Any
// other value fails with UNSUPPORTED_REPEAT_TYPE.
func Classify(v any) (Descriptor, error) {
	switch r := v.(type) {
	case Descriptor:
		return r, nil
	case [2]int:
		return Pair{Start: r[0], End: r[1]}, nil
	case [3]int:
		return Triple{Start: r[0], End: r[1], Strand: Strand(r[2])}, nil
	case []int:
		switch len(r) {
		case 2:
			return Pair{Start: r[0], End: r[1]}, nil
		case 3:
			return Triple{Start: r[0], End: r[1], Strand: Strand(r[2])}, nil
		}
		return nil, errors.New(errors.ErrCodeUnsupportedRepeatType,
			"coordinate tuple must have 2 or 3 elements, got %d", len(r))
	case AlignedRepeat:
		return Alignment{Begin: r.Begin(), Rows: r.MSAOriginal(), RegionLength: r.RepeatRegionLength()}, nil
	case Lister:
		nested, err := classifyAll(r.Repeats())
		if err != nil {
			return nil, err
		}
		return Collection{Repeats: nested}, nil
	case []Descriptor:
		return Sequence(r), nil
	case [][2]int:
		seq := make(Sequence, len(r))
		for i, p := range r {
			seq[i] = Pair{Start: p[0], End: p[1]}
		}
		return seq, nil
	case [][3]int:
		seq := make(Sequence, len(r))
		for i, p := range r {
			seq[i] = Triple{Start: p[0], End: p[1], Strand: Strand(p[2])}
		}
		return seq, nil
	case []any:
		nested, err := classifyAll(r)
		if err != nil {
			return nil, err
		}
		return Sequence(nested), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupportedRepeatType, "unknown repeat type %T", v)
}

func classifyAll(values []any) ([]Descriptor, error) {
	out := make([]Descriptor, 0, len(values))
	for _, v := range values {
		d, err := Classify(v)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
