package track

import (
	"github.com/matzehuels/repeatmap/pkg/errors"
)

// Registry holds the tracks of one diagram in registration order.
//
// The zero value is an empty registry. Registry is not safe for concurrent
// use without external synchronization.
type Registry struct {
	tracks  []Track
	indices map[string]int
}

// NewRegistry resolves and registers descriptors in order.
// Two descriptors resolving to the same identifier fail with DUPLICATE_TRACK;
// the earlier registration is never overwritten.
func NewRegistry(descriptors ...any) (*Registry, error) {
	r := &Registry{
		tracks:  make([]Track, 0, len(descriptors)),
		indices: make(map[string]int, len(descriptors)),
	}
	for _, d := range descriptors {
		if err := r.register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) register(descriptor any) error {
	id, length, err := Resolve(descriptor)
	if err != nil {
		return err
	}
	if r.indices == nil {
		r.indices = make(map[string]int)
	}
	if prev, ok := r.indices[id]; ok {
		return errors.New(errors.ErrCodeDuplicateTrack,
			"track %q registered twice (positions %d and %d)", id, prev, len(r.tracks))
	}
	idx := len(r.tracks)
	r.indices[id] = idx
	r.tracks = append(r.tracks, Track{ID: id, Length: length, Index: idx})
	return nil
}

// IndexOf returns the registration index of the track with the given id.
func (r *Registry) IndexOf(id string) (int, error) {
	idx, ok := r.indices[id]
	if !ok {
		return 0, errors.New(errors.ErrCodeUnknownTrack, "unknown track %q", id)
	}
	return idx, nil
}

// LengthOf returns the length of the track at index.
func (r *Registry) LengthOf(index int) (int, error) {
	if index < 0 || index >= len(r.tracks) {
		return 0, errors.New(errors.ErrCodeUnknownTrack, "no track at index %d", index)
	}
	return r.tracks[index].Length, nil
}

// Lookup resolves descriptor to an identifier and returns its index.
// Only the identifier takes part; the descriptor's length is ignored.
func (r *Registry) Lookup(descriptor any) (int, error) {
	id, _, err := Resolve(descriptor)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeUnknownTrack, err, "cannot look up track")
	}
	return r.IndexOf(id)
}

// Track returns the track at index.
func (r *Registry) Track(index int) (Track, bool) {
	if index < 0 || index >= len(r.tracks) {
		return Track{}, false
	}
	return r.tracks[index], true
}

// Tracks returns a copy of all tracks in registration order.
func (r *Registry) Tracks() []Track {
	out := make([]Track, len(r.tracks))
	copy(out, r.tracks)
	return out
}

// Len returns the number of registered tracks.
func (r *Registry) Len() int { return len(r.tracks) }

// MaxLength returns the length of the longest track, or 0 for an empty registry.
func (r *Registry) MaxLength() int {
	longest := 0
	for _, t := range r.tracks {
		longest = max(longest, t.Length)
	}
	return longest
}
