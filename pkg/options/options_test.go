package options

import (
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/repeatmap/pkg/errors"
	"github.com/matzehuels/repeatmap/pkg/palette"
)

func TestDefaults(t *testing.T) {
	f := DefaultFeature()
	if f.Border.Hex() != "#d3d3d3" || !f.Label || f.LabelPosition != LabelStart ||
		f.LabelSize != 10 || f.LabelAngle != 0 || f.Color != nil {
		t.Errorf("DefaultFeature() = %+v", f)
	}

	tr := DefaultTrack()
	if !tr.Greytrack || tr.Height != 1 || tr.Start != 0 || tr.End != nil {
		t.Errorf("DefaultTrack() = %+v", tr)
	}

	p := DefaultPage()
	if p.Format != FormatLinear || p.Fragments != 1 || p.FragmentSize != 1 ||
		p.X != 0 || p.Y != 0 || p.YT != 0 || p.Start != 0 || p.End != nil {
		t.Errorf("DefaultPage() = %+v", p)
	}
}

func TestFeatureMergeDoesNotMutate(t *testing.T) {
	base := DefaultFeature()
	red := NewColor(palette.MustParse("red"))
	merged := base.Merge(FeatureOverrides{
		Color:     &red,
		LabelSize: Ptr(14.0),
		Label:     Ptr(false),
	})

	if merged.LabelSize != 14 || merged.Label || merged.Color == nil {
		t.Errorf("Merge() = %+v", merged)
	}
	if merged.LabelPosition != LabelStart {
		t.Errorf("unset field changed: %q", merged.LabelPosition)
	}
	if base.LabelSize != 10 || !base.Label || base.Color != nil {
		t.Errorf("Merge() mutated receiver: %+v", base)
	}

	red.Color = palette.MustParse("blue")
	if merged.Color.Hex() != "#ff0000" {
		t.Error("merged record aliases the override's color")
	}
}

func TestTrackMerge(t *testing.T) {
	end := 40
	base := DefaultTrack()
	merged := base.Merge(TrackOverrides{End: &end, Name: Ptr("chr1"), Greytrack: Ptr(false)})

	end = 99
	if merged.End == nil || *merged.End != 40 {
		t.Errorf("End = %v, want 40", merged.End)
	}
	if merged.Name != "chr1" || merged.Greytrack || merged.Height != 1 {
		t.Errorf("Merge() = %+v", merged)
	}
	if base.End != nil || base.Name != "" {
		t.Errorf("Merge() mutated receiver: %+v", base)
	}
}

func TestPageMerge(t *testing.T) {
	merged := DefaultPage().Merge(PageOverrides{Fragments: Ptr(3), End: Ptr(500), X: Ptr(0.05)})
	if merged.Fragments != 3 || *merged.End != 500 || merged.X != 0.05 || merged.Format != FormatLinear {
		t.Errorf("Merge() = %+v", merged)
	}
}

func TestOverridesMerge(t *testing.T) {
	lower := PageOverrides{Fragments: Ptr(2), X: Ptr(0.1)}
	upper := PageOverrides{Fragments: Ptr(4)}
	got := lower.Merge(upper)

	if *got.Fragments != 4 || *got.X != 0.1 {
		t.Errorf("Merge() fragments=%d x=%v, want 4, 0.1", *got.Fragments, *got.X)
	}
	if *lower.Fragments != 2 {
		t.Error("Merge() mutated lower layer")
	}

	f := FeatureOverrides{LabelSize: Ptr(8.0)}.Merge(FeatureOverrides{LabelAngle: Ptr(45.0)})
	if *f.LabelSize != 8 || *f.LabelAngle != 45 {
		t.Errorf("FeatureOverrides.Merge() = %+v", f)
	}

	tr := TrackOverrides{Height: Ptr(2.0)}.Merge(TrackOverrides{Height: Ptr(3.0), Start: Ptr(5)})
	if *tr.Height != 3 || *tr.Start != 5 {
		t.Errorf("TrackOverrides.Merge() = %+v", tr)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code errors.Code
	}{
		{"label position", DefaultFeature().Merge(FeatureOverrides{LabelPosition: Ptr("top")}).Validate(), errors.ErrCodeInvalidInput},
		{"label size", DefaultFeature().Merge(FeatureOverrides{LabelSize: Ptr(-1.0)}).Validate(), errors.ErrCodeInvalidInput},
		{"track height", DefaultTrack().Merge(TrackOverrides{Height: Ptr(-1.0)}).Validate(), errors.ErrCodeInvalidInput},
		{"track range", DefaultTrack().Merge(TrackOverrides{Start: Ptr(10), End: Ptr(5)}).Validate(), errors.ErrCodeInvalidInput},
		{"page format", DefaultPage().Merge(PageOverrides{Format: Ptr("circular")}).Validate(), errors.ErrCodeUnsupported},
		{"page fragments", DefaultPage().Merge(PageOverrides{Fragments: Ptr(0)}).Validate(), errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.code) {
				t.Errorf("Validate() error = %v, want %s", tt.err, tt.code)
			}
		})
	}

	for _, err := range []error{DefaultFeature().Validate(), DefaultTrack().Validate(), DefaultPage().Validate()} {
		if err != nil {
			t.Errorf("defaults do not validate: %v", err)
		}
	}
}

func TestDecodeTOML(t *testing.T) {
	const doc = `
[feature]
border = "grey"
color = "#00ff00"
label_position = "middle"

[track]
greytrack = false
height = 2.5

[page]
fragments = 2
yt = 0.1
`
	var cfg struct {
		Feature FeatureOverrides `toml:"feature"`
		Track   TrackOverrides   `toml:"track"`
		Page    PageOverrides    `toml:"page"`
	}
	if _, err := toml.Decode(doc, &cfg); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	f := DefaultFeature().Merge(cfg.Feature)
	if f.Border.Hex() != "#808080" || f.Color == nil || f.Color.Hex() != "#00ff00" {
		t.Errorf("feature colors = %+v", f)
	}
	if f.LabelPosition != LabelMiddle || f.LabelSize != 10 {
		t.Errorf("feature = %+v", f)
	}

	tr := DefaultTrack().Merge(cfg.Track)
	if tr.Greytrack || tr.Height != 2.5 {
		t.Errorf("track = %+v", tr)
	}

	p := DefaultPage().Merge(cfg.Page)
	if p.Fragments != 2 || p.YT != 0.1 || p.Y != 0 {
		t.Errorf("page = %+v", p)
	}
}

func TestDecodeTOMLBadColor(t *testing.T) {
	var o FeatureOverrides
	_, err := toml.Decode(`border = "not-a-color"`, &o)
	if err == nil {
		t.Fatal("Decode() accepted an invalid color")
	}
}

func TestColorTextRoundTrip(t *testing.T) {
	for _, in := range []string{"#4682b4", "#010203", "#fefefe", "#7f7f7f"} {
		var c Color
		if err := c.UnmarshalText([]byte(in)); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", in, err)
		}
		out, err := c.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText: %v", err)
		}
		if string(out) != in {
			t.Errorf("round trip of %s = %s", in, out)
		}
	}
}
