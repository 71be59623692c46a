// Package io reads and writes repeat-map documents.
//
// # Overview
//
// A [Document] lists the tracks of a diagram, the repeats found on them and
// optional drawing defaults. Documents can be stored as JSON or TOML, or
// imported from GFF repeat annotations. [Document.Diagram] turns a document
// into a ready-to-build [diagram.RepeatDiagram].
//
// # JSON Format
//
//	{
//	  "name": "Tandem repeats",
//	  "tracks": [
//	    {"id": "seqA", "length": 100},
//	    {"id": "seqB", "length": 50}
//	  ],
//	  "repeats": [
//	    {"track": "seqA", "start": 10, "end": 30},
//	    {"track": "seqB", "start": 0, "end": 20, "strand": "+"},
//	    {"track": "seqA", "begin": 41, "msa": ["AC-T", "A--G"], "region_length": 5}
//	  ],
//	  "page": {"fragments": 2}
//	}
//
// Coordinate repeats are 0-based and half-open. Alignment-derived repeats
// carry a 1-based begin, the alignment rows and the number of residues they
// span, and are split into one interval per row. Strand is "+", "-" or "."
// (or omitted to use the document default).
//
// The TOML form uses the same keys, with [[tracks]] and [[repeats]] tables
// and [feature], [track] and [page] sections.
//
// # GFF
//
// [ReadGFF] builds a document from a GFF file with one track per sequence
// name. Track lengths come from [GFFOptions.Lengths] or default to the end
// of the last feature on the sequence. [WriteGFF] writes coordinate repeats
// back out.
//
// [diagram.RepeatDiagram]: github.com/matzehuels/repeatmap/pkg/diagram.RepeatDiagram
package io
