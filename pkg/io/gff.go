package io

import (
	"fmt"
	"io"
	"slices"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"

	"github.com/matzehuels/repeatmap/pkg/errors"
	"github.com/matzehuels/repeatmap/pkg/repeat"
)

// GFFOptions control how GFF annotations become a document.
type GFFOptions struct {
	// Lengths fixes track lengths by sequence name. Sequences not listed
	// get the largest feature end seen on them.
	Lengths map[string]int
	// Types keeps only features whose type column is listed. Empty keeps
	// all features.
	Types []string
}

// ReadGFF builds a document from GFF feature lines. Each distinct sequence
// name becomes a track, in order of first appearance, and each feature one
// coordinate repeat on it.
func ReadGFF(r io.Reader, opts GFFOptions) (*Document, error) {
	doc := &Document{}
	in := gff.NewReader(r)
	for {
		f, err := in.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read GFF feature")
		}
		gf, ok := f.(*gff.Feature)
		if !ok {
			continue
		}
		if len(opts.Types) > 0 && !slices.Contains(opts.Types, gf.Feature) {
			continue
		}

		length := gf.FeatEnd
		if l, ok := opts.Lengths[gf.SeqName]; ok {
			length = l
		}
		doc.AddTrack(gf.SeqName, length)

		iv, err := repeat.NewInterval(gf.FeatStart, gf.FeatEnd, strandFromSeq(gf.FeatStrand))
		if err != nil {
			return nil, fmt.Errorf("feature on %s: %w", gf.SeqName, err)
		}
		doc.AddInterval(gf.SeqName, iv)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// WriteGFF writes the coordinate repeats of doc as GFF "repeat_region"
// features with the given source. Alignment-derived repeats are written
// once per repeat unit.
func WriteGFF(doc *Document, w io.Writer, source string) error {
	gw := gff.NewWriter(w, 60, true)
	gf := &gff.Feature{
		Source:    source,
		Feature:   "repeat_region",
		FeatFrame: gff.NoFrame,
	}
	for i, r := range doc.Repeats {
		desc, err := r.Descriptor()
		if err != nil {
			return fmt.Errorf("repeat %d: %w", i, err)
		}
		ivs, err := repeat.Normalize(desc, repeat.Unknown)
		if err != nil {
			return fmt.Errorf("repeat %d: %w", i, err)
		}
		for _, iv := range ivs {
			gf.SeqName = r.Track
			gf.FeatStart = iv.Start
			gf.FeatEnd = iv.End
			gf.FeatStrand = strandToSeq(iv.Strand)
			gf.FeatAttributes = gff.Attributes{{Tag: "Repeat", Value: fmt.Sprint(i + 1)}}
			if _, err := gw.Write(gf); err != nil {
				return fmt.Errorf("write GFF: %w", err)
			}
		}
	}
	return nil
}

func strandFromSeq(s seq.Strand) repeat.Strand {
	switch s {
	case seq.Plus:
		return repeat.Forward
	case seq.Minus:
		return repeat.Reverse
	}
	return repeat.Unknown
}

func strandToSeq(s repeat.Strand) seq.Strand {
	switch s {
	case repeat.Forward:
		return seq.Plus
	case repeat.Reverse:
		return seq.Minus
	}
	return seq.None
}
