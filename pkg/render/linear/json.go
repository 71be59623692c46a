package linear

import (
	"encoding/json"

	"github.com/matzehuels/repeatmap/pkg/layout"
	"github.com/matzehuels/repeatmap/pkg/render"
)

type jsonOutput struct {
	Name   string      `json:"name"`
	Page   layout.Page `json:"page"`
	Tracks []jsonTrack `json:"tracks"`
}

type jsonTrack struct {
	Rank      int           `json:"rank"`
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Start     int           `json:"start"`
	End       int           `json:"end"`
	Height    float64       `json:"height"`
	Greytrack bool          `json:"greytrack"`
	Boxes     []jsonBox     `json:"boxes"`
	Features  []jsonFeature `json:"features"`
}

type jsonBox struct {
	Fragment int         `json:"fragment"`
	Span     layout.Span `json:"span"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
}

type jsonFeature struct {
	Start         int     `json:"start"`
	End           int     `json:"end"`
	Strand        string  `json:"strand"`
	Color         string  `json:"color"`
	Border        string  `json:"border"`
	Label         string  `json:"label,omitempty"`
	ShowLabel     bool    `json:"show_label"`
	LabelPosition string  `json:"label_position"`
	LabelSize     float64 `json:"label_size"`
	LabelAngle    float64 `json:"label_angle"`
}

// renderJSON exports the page, track boxes and features. Tracks are listed
// top to bottom.
func renderJSON(name string, page layout.Page, placements []layout.Placement, tracks []render.Ranked) ([]byte, error) {
	boxes := make(map[int][]jsonBox, len(tracks))
	for _, pl := range placements {
		boxes[pl.Rank] = append(boxes[pl.Rank], jsonBox{
			Fragment: pl.Fragment,
			Span:     pl.Scale.Span,
			X:        pl.Left,
			Y:        pl.Top,
			Width:    pl.Width(),
			Height:   pl.Height(),
		})
	}

	out := jsonOutput{Name: name, Page: page, Tracks: make([]jsonTrack, 0, len(tracks))}
	for i := len(tracks) - 1; i >= 0; i-- {
		r := tracks[i]
		t := r.Track
		jt := jsonTrack{
			Rank:      r.Rank,
			ID:        t.ID,
			Name:      t.Name,
			Start:     t.Start,
			End:       t.End,
			Height:    t.Height,
			Greytrack: t.Greytrack,
			Boxes:     boxes[r.Rank],
			Features:  make([]jsonFeature, 0, len(t.Features)),
		}
		for _, f := range t.Features {
			jt.Features = append(jt.Features, jsonFeature{
				Start:         f.Interval.Start,
				End:           f.Interval.End,
				Strand:        f.Interval.Strand.String(),
				Color:         f.Color.Hex(),
				Border:        f.Border.Hex(),
				Label:         f.Label,
				ShowLabel:     f.ShowLabel,
				LabelPosition: f.LabelPosition,
				LabelSize:     f.LabelSize,
				LabelAngle:    f.LabelAngle,
			})
		}
		out.Tracks = append(out.Tracks, jt)
	}
	return json.MarshalIndent(out, "", "  ")
}
