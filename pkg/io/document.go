package io

import (
	"fmt"

	"github.com/matzehuels/repeatmap/pkg/diagram"
	"github.com/matzehuels/repeatmap/pkg/errors"
	"github.com/matzehuels/repeatmap/pkg/options"
	"github.com/matzehuels/repeatmap/pkg/repeat"
	"github.com/matzehuels/repeatmap/pkg/track"
)

// Document is a serialized repeat map.
type Document struct {
	Name    string                   `json:"name,omitempty" toml:"name"`
	Tracks  []Track                  `json:"tracks" toml:"tracks"`
	Repeats []Repeat                 `json:"repeats,omitempty" toml:"repeats"`
	Feature options.FeatureOverrides `json:"feature,omitempty" toml:"feature"`
	Track   options.TrackOverrides   `json:"track,omitempty" toml:"track"`
	Page    options.PageOverrides    `json:"page,omitempty" toml:"page"`
}

// Track is one sequence of a document.
type Track struct {
	ID     string `json:"id" toml:"id"`
	Length int    `json:"length" toml:"length"`
}

// Repeat is either a coordinate repeat (Start, End, optional Strand) or an
// alignment-derived repeat (Begin, MSA, RegionLength).
type Repeat struct {
	Track        string   `json:"track" toml:"track"`
	Start        *int     `json:"start,omitempty" toml:"start"`
	End          *int     `json:"end,omitempty" toml:"end"`
	Strand       string   `json:"strand,omitempty" toml:"strand"`
	Begin        *int     `json:"begin,omitempty" toml:"begin"`
	MSA          []string `json:"msa,omitempty" toml:"msa"`
	RegionLength *int     `json:"region_length,omitempty" toml:"region_length"`
}

// Descriptor converts the record into a repeat descriptor.
func (r Repeat) Descriptor() (repeat.Descriptor, error) {
	if r.MSA != nil || r.Begin != nil {
		if r.Begin == nil || r.RegionLength == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"alignment repeat on %q needs begin, msa and region_length", r.Track)
		}
		if r.Start != nil || r.End != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"repeat on %q mixes coordinates with an alignment", r.Track)
		}
		return repeat.Alignment{Begin: *r.Begin, Rows: r.MSA, RegionLength: *r.RegionLength}, nil
	}
	if r.Start == nil || r.End == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "repeat on %q needs start and end", r.Track)
	}
	if r.Strand == "" {
		return repeat.Pair{Start: *r.Start, End: *r.End}, nil
	}
	s, err := repeat.ParseStrand(r.Strand)
	if err != nil {
		return nil, err
	}
	return repeat.Triple{Start: *r.Start, End: *r.End, Strand: s}, nil
}

// Validate checks track identifiers and that every repeat names a track.
func (d *Document) Validate() error {
	known := make(map[string]bool, len(d.Tracks))
	for _, t := range d.Tracks {
		if err := errors.ValidateTrackID(t.ID); err != nil {
			return err
		}
		if t.Length < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "track %q has negative length %d", t.ID, t.Length)
		}
		known[t.ID] = true
	}
	for i, r := range d.Repeats {
		if !known[r.Track] {
			return errors.New(errors.ErrCodeUnknownTrack, "repeat %d references unknown track %q", i, r.Track)
		}
	}
	return nil
}

// Diagram builds a diagram from the document. Repeats without a strand take
// defaultStrand. The document's option sections become the diagram's
// defaults.
func (d *Document) Diagram(defaultStrand repeat.Strand) (*diagram.RepeatDiagram, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	descriptors := make([]any, len(d.Tracks))
	for i, t := range d.Tracks {
		descriptors[i] = track.Pair{ID: t.ID, Length: t.Length}
	}
	dg, err := diagram.New(descriptors...)
	if err != nil {
		return nil, err
	}

	for i, r := range d.Repeats {
		desc, err := r.Descriptor()
		if err != nil {
			return nil, fmt.Errorf("repeat %d: %w", i, err)
		}
		if err := dg.AddRepeats(r.Track, desc, defaultStrand); err != nil {
			return nil, fmt.Errorf("repeat %d: %w", i, err)
		}
	}

	if err := dg.SetFeatureDefaults(d.Feature); err != nil {
		return nil, fmt.Errorf("feature options: %w", err)
	}
	if err := dg.SetTrackDefaults(d.Track); err != nil {
		return nil, fmt.Errorf("track options: %w", err)
	}
	if err := dg.SetPageDefaults(d.Page); err != nil {
		return nil, fmt.Errorf("page options: %w", err)
	}
	return dg, nil
}

// AddTrack appends a track, or raises the length of an existing one.
func (d *Document) AddTrack(id string, length int) {
	for i := range d.Tracks {
		if d.Tracks[i].ID == id {
			d.Tracks[i].Length = max(d.Tracks[i].Length, length)
			return
		}
	}
	d.Tracks = append(d.Tracks, Track{ID: id, Length: length})
}

// AddInterval appends a coordinate repeat.
func (d *Document) AddInterval(trackID string, iv repeat.Interval) {
	start, end := iv.Start, iv.End
	d.Repeats = append(d.Repeats, Repeat{
		Track:  trackID,
		Start:  &start,
		End:    &end,
		Strand: iv.Strand.String(),
	})
}
