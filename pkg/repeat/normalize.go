package repeat

import (
	"unicode"

	"github.com/matzehuels/repeatmap/pkg/errors"
)

// Normalize converts a descriptor into its ordered intervals.
//
// Pairs take defaultStrand; triples keep their own strand. Alignment rows are
// laid end to end starting at Begin-1, one interval per row, and must account
// for exactly RegionLength residues. Collections and sequences are flattened
// in order. The returned slice is freshly allocated.
func Normalize(d Descriptor, defaultStrand Strand) ([]Interval, error) {
	if !defaultStrand.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidInterval, "invalid default strand %d", int(defaultStrand))
	}
	return normalize(d, defaultStrand, nil)
}

func normalize(d Descriptor, strand Strand, dst []Interval) ([]Interval, error) {
	switch r := d.(type) {
	case Pair:
		iv, err := NewInterval(r.Start, r.End, strand)
		if err != nil {
			return nil, err
		}
		return append(dst, iv), nil
	case Triple:
		if !r.Strand.Valid() {
			return nil, errors.New(errors.ErrCodeUnsupportedRepeatType,
				"coordinate triple (%d, %d, %d) has no valid strand", r.Start, r.End, int(r.Strand))
		}
		iv, err := NewInterval(r.Start, r.End, r.Strand)
		if err != nil {
			return nil, err
		}
		return append(dst, iv), nil
	case Alignment:
		return decompose(r, strand, dst)
	case Collection:
		return normalizeAll(r.Repeats, strand, dst)
	case Sequence:
		return normalizeAll(r, strand, dst)
	case nil:
		return nil, errors.New(errors.ErrCodeUnsupportedRepeatType, "nil repeat")
	}
	return nil, errors.New(errors.ErrCodeUnsupportedRepeatType, "unknown repeat type %T", d)
}

func normalizeAll(ds []Descriptor, strand Strand, dst []Interval) ([]Interval, error) {
	var err error
	for _, d := range ds {
		if dst, err = normalize(d, strand, dst); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// decompose splits an alignment-derived repeat into one interval per row.
func decompose(a Alignment, strand Strand, dst []Interval) ([]Interval, error) {
	if a.Begin < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInterval, "alignment begin %d is not 1-based", a.Begin)
	}
	start := a.Begin - 1
	cursor := start
	for _, row := range a.Rows {
		l := Residues(row)
		dst = append(dst, Interval{Start: cursor, End: cursor + l, Strand: strand})
		cursor += l
	}
	if want := start + a.RegionLength; cursor != want {
		return nil, errors.New(errors.ErrCodeRepeatDecomposition,
			"alignment rows cover %d residues from position %d, repeat region spans %d (ends at %d, want %d)",
			cursor-start, a.Begin, a.RegionLength, cursor, want)
	}
	return dst, nil
}

// Residues counts the word characters of an alignment row: letters, digits
// and underscore. Gap and indel symbols are not residues.
func Residues(row string) int {
	n := 0
	for _, c := range row {
		if c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c) {
			n++
		}
	}
	return n
}
