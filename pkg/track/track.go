// Package track maps heterogeneous track descriptors to stable indices.
//
// A repeat map draws one horizontal track per sequence. Callers describe
// tracks with whatever they have at hand: a sequence record exposing an
// identifier, something with a name, a literal identifier/length [Pair], or
// any value with a length that prints sensibly. [Resolve] turns each of these
// into an (identifier, length) pair, and [Registry] assigns the resulting
// tracks their position in registration order.
//
// # Resolution Order
//
// Resolution prefers, in order:
//
//  1. [Identified]: ID() plus Len()
//  2. [Named]: Name() plus Len()
//  3. [Pair] (or *Pair): the literal identifier and length
//  4. string: the string itself, length 0
//  5. any value with Len(): fmt.Sprint(value) and its length
//
// Resolution is deterministic and has no side effects.
package track

import (
	"fmt"

	"github.com/matzehuels/repeatmap/pkg/errors"
)

// Identified is satisfied by sequence records that carry an identifier,
// such as FASTA-derived records.
type Identified interface {
	ID() string
	Len() int
}

// Named is satisfied by sequence objects that expose a name instead of an ID.
type Named interface {
	Name() string
	Len() int
}

// Lengther is the minimal capability needed for the fallback resolution.
type Lengther interface {
	Len() int
}

// Pair is a literal identifier/length track descriptor.
type Pair struct {
	ID     string
	Length int
}

// Track is a registered track.
type Track struct {
	ID     string // Opaque identifier, unique within a registry
	Length int    // Sequence length in residues (>= 0)
	Index  int    // Registration order, 0 = first (top)
}

func (t Track) String() string {
	return fmt.Sprintf("(%s, %d)", t.ID, t.Length)
}

// Resolve derives the identifier and length of a track descriptor.
// Descriptors without a length capability fail with INVALID_INPUT, as do
// negative lengths.
//
// A bare string names a track of length 0. The string's own character count
// is deliberately not used as the sequence length: an identifier like "chr1"
// says nothing about how long chr1 is. Give a [Pair] when the length matters.
func Resolve(descriptor any) (id string, length int, err error) {
	switch d := descriptor.(type) {
	case Identified:
		id, length = d.ID(), d.Len()
	case Named:
		id, length = d.Name(), d.Len()
	case Pair:
		id, length = d.ID, d.Length
	case *Pair:
		if d == nil {
			return "", 0, errors.New(errors.ErrCodeInvalidInput, "nil track descriptor")
		}
		id, length = d.ID, d.Length
	case string:
		id, length = d, 0
	case Lengther:
		id, length = fmt.Sprint(d), d.Len()
	case nil:
		return "", 0, errors.New(errors.ErrCodeInvalidInput, "nil track descriptor")
	default:
		return "", 0, errors.New(errors.ErrCodeInvalidInput,
			"cannot resolve track descriptor of type %T: it has no length", descriptor)
	}
	if length < 0 {
		return "", 0, errors.New(errors.ErrCodeInvalidInput, "track %q has negative length %d", id, length)
	}
	return id, length, nil
}
