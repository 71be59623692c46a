// Package repeat normalizes repeat descriptions into half-open intervals.
//
// Repeats reach a diagram in several shapes: explicit coordinate pairs and
// triples, repeats derived from a multiple sequence alignment, collections of
// repeats, and plain lists mixing any of these. [Classify] resolves a host
// value into the closed [Descriptor] variant once, at the boundary, and
// [Normalize] turns a descriptor into an ordered list of [Interval] values.
//
// # Coordinates
//
// Intervals are 0-based and half-open, [Start, End), the same convention as
// Go slice expressions: seq[iv.Start:iv.End] is the repeat. Alignment-derived
// repeats carry a 1-based begin position, which is converted on the way in.
package repeat

import (
	"fmt"

	"github.com/matzehuels/repeatmap/pkg/errors"
)

// Strand is the orientation of an interval on its track.
type Strand int

const (
	Reverse Strand = -1
	Unknown Strand = 0
	Forward Strand = 1
)

// Valid reports whether s is one of Reverse, Unknown or Forward.
func (s Strand) Valid() bool {
	return s >= Reverse && s <= Forward
}

func (s Strand) String() string {
	switch s {
	case Forward:
		return "+"
	case Reverse:
		return "-"
	case Unknown:
		return "."
	}
	return fmt.Sprintf("Strand(%d)", int(s))
}

// ParseStrand converts GFF-style strand notation to a Strand.
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+", "1", "+1":
		return Forward, nil
	case "-", "-1":
		return Reverse, nil
	case ".", "0", "", "?":
		return Unknown, nil
	}
	return Unknown, errors.New(errors.ErrCodeInvalidInput, "invalid strand %q", s)
}

// Interval is a half-open range [Start, End) on a track.
type Interval struct {
	Start  int
	End    int
	Strand Strand
}

// NewInterval validates and builds an interval.
func NewInterval(start, end int, strand Strand) (Interval, error) {
	iv := Interval{Start: start, End: end, Strand: strand}
	return iv, iv.Validate()
}

// Validate checks 0 <= Start <= End and that the strand is known.
func (iv Interval) Validate() error {
	if iv.Start < 0 || iv.End < iv.Start {
		return errors.New(errors.ErrCodeInvalidInterval, "invalid interval [%d, %d)", iv.Start, iv.End)
	}
	if !iv.Strand.Valid() {
		return errors.New(errors.ErrCodeInvalidInterval, "invalid strand %d", int(iv.Strand))
	}
	return nil
}

// Len returns the number of positions covered.
func (iv Interval) Len() int { return iv.End - iv.Start }

func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d)%s", iv.Start, iv.End, iv.Strand)
}
