package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/repeatmap/pkg/errors"
	"github.com/matzehuels/repeatmap/pkg/repeat"
)

const sampleJSON = `{
  "name": "Tandem repeats",
  "tracks": [
    {"id": "seqA", "length": 100},
    {"id": "seqB", "length": 50}
  ],
  "repeats": [
    {"track": "seqA", "start": 10, "end": 30},
    {"track": "seqB", "start": 0, "end": 20, "strand": "-"},
    {"track": "seqA", "begin": 41, "msa": ["AC-T", "A--G"], "region_length": 5}
  ],
  "page": {"fragments": 2},
  "feature": {"color": "red"}
}`

func TestReadJSON(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	assert.Equal(t, "Tandem repeats", doc.Name)
	assert.Equal(t, []Track{{ID: "seqA", Length: 100}, {ID: "seqB", Length: 50}}, doc.Tracks)
	require.Len(t, doc.Repeats, 3)
	assert.Equal(t, "-", doc.Repeats[1].Strand)
	assert.Equal(t, []string{"AC-T", "A--G"}, doc.Repeats[2].MSA)
	require.NotNil(t, doc.Page.Fragments)
	assert.Equal(t, 2, *doc.Page.Fragments)
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", `{"tracks": [`, errors.ErrCodeInvalidInput},
		{"unknown field", `{"tracks": [], "nodes": []}`, errors.ErrCodeInvalidInput},
		{"unknown track", `{"tracks": [{"id": "a", "length": 1}], "repeats": [{"track": "b", "start": 0, "end": 1}]}`, errors.ErrCodeUnknownTrack},
		{"bad id", `{"tracks": [{"id": "", "length": 1}]}`, errors.ErrCodeInvalidInput},
		{"negative length", `{"tracks": [{"id": "a", "length": -1}]}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "error %v, want %s", err, tt.code)
		})
	}
}

func TestReadTOML(t *testing.T) {
	input := `
name = "from toml"

[[tracks]]
id = "chr1"
length = 200

[[repeats]]
track = "chr1"
start = 5
end = 25
strand = "+"

[track]
greytrack = false

[page]
fragments = 3
`
	doc, err := ReadTOML(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "from toml", doc.Name)
	assert.Equal(t, []Track{{ID: "chr1", Length: 200}}, doc.Tracks)
	require.Len(t, doc.Repeats, 1)
	assert.Equal(t, 5, *doc.Repeats[0].Start)
	require.NotNil(t, doc.Track.Greytrack)
	assert.False(t, *doc.Track.Greytrack)

	_, err = ReadTOML(strings.NewReader("[[tracks]]\nid = \"a\"\nlength = 1\nbogus = 2\n"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestRepeatDescriptor(t *testing.T) {
	ptr := func(v int) *int { return &v }
	tests := []struct {
		name    string
		rec     Repeat
		want    repeat.Descriptor
		wantErr bool
	}{
		{"pair", Repeat{Start: ptr(1), End: ptr(4)}, repeat.Pair{Start: 1, End: 4}, false},
		{"triple", Repeat{Start: ptr(1), End: ptr(4), Strand: "-"}, repeat.Triple{Start: 1, End: 4, Strand: repeat.Reverse}, false},
		{"alignment", Repeat{Begin: ptr(3), MSA: []string{"AA"}, RegionLength: ptr(2)},
			repeat.Alignment{Begin: 3, Rows: []string{"AA"}, RegionLength: 2}, false},
		{"missing end", Repeat{Start: ptr(1)}, nil, true},
		{"alignment without length", Repeat{Begin: ptr(3), MSA: []string{"AA"}}, nil, true},
		{"mixed", Repeat{Start: ptr(1), End: ptr(2), Begin: ptr(3), MSA: []string{"A"}, RegionLength: ptr(1)}, nil, true},
		{"bad strand", Repeat{Start: ptr(1), End: ptr(4), Strand: "x"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rec.Descriptor()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocumentDiagram(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	d, err := doc.Diagram(repeat.Forward)
	require.NoError(t, err)

	a, err := d.Repeats("seqA")
	require.NoError(t, err)
	assert.Equal(t, []repeat.Interval{
		{Start: 10, End: 30, Strand: repeat.Forward},
		{Start: 40, End: 43, Strand: repeat.Forward},
		{Start: 43, End: 45, Strand: repeat.Forward},
	}, a)

	b, err := d.Repeats("seqB")
	require.NoError(t, err)
	assert.Equal(t, []repeat.Interval{{Start: 0, End: 20, Strand: repeat.Reverse}}, b)

	assert.Equal(t, 2, d.PageDefaults().Fragments)
	require.NotNil(t, d.FeatureDefaults().Color)
	assert.Equal(t, "#ff0000", d.FeatureDefaults().Color.Hex())
}

func TestDocumentDiagramBadRepeat(t *testing.T) {
	input := `{"tracks": [{"id": "a", "length": 10}], "repeats": [{"track": "a", "start": 5, "end": 2}]}`
	doc, err := ReadJSON(strings.NewReader(input))
	require.NoError(t, err)

	_, err = doc.Diagram(repeat.Unknown)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInterval), "error %v", err)
}

func TestJSONRoundTrip(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(doc, &buf))
	again, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc.Tracks, again.Tracks)
	assert.Equal(t, doc.Repeats, again.Repeats)
	assert.Equal(t, doc.Feature.Color.Hex(), again.Feature.Color.Hex())
}

func TestReadGFF(t *testing.T) {
	input := strings.Join([]string{
		"chr2\tTRF\ttandem_repeat\t11\t30\t.\t+\t.",
		"chr1\tTRF\ttandem_repeat\t1\t10\t.\t-\t.",
		"chr2\tRM\tgene\t50\t90\t.\t.\t.",
		"chr2\tTRF\ttandem_repeat\t41\t60\t.\t.\t.",
		"",
	}, "\n")

	doc, err := ReadGFF(strings.NewReader(input), GFFOptions{
		Types:   []string{"tandem_repeat"},
		Lengths: map[string]int{"chr1": 500},
	})
	require.NoError(t, err)
	assert.Equal(t, []Track{{ID: "chr2", Length: 60}, {ID: "chr1", Length: 500}}, doc.Tracks)

	d, err := doc.Diagram(repeat.Unknown)
	require.NoError(t, err)
	got, err := d.Repeats("chr2")
	require.NoError(t, err)
	assert.Equal(t, []repeat.Interval{
		{Start: 10, End: 30, Strand: repeat.Forward},
		{Start: 40, End: 60, Strand: repeat.Unknown},
	}, got)
	got, err = d.Repeats("chr1")
	require.NoError(t, err)
	assert.Equal(t, []repeat.Interval{{Start: 0, End: 10, Strand: repeat.Reverse}}, got)
}

func TestGFFRoundTrip(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteGFF(doc, &buf, "test"))
	assert.Equal(t, 4, strings.Count(buf.String(), "repeat_region"))

	again, err := ReadGFF(&buf, GFFOptions{})
	require.NoError(t, err)
	d, err := again.Diagram(repeat.Unknown)
	require.NoError(t, err)
	got, err := d.Repeats("seqA")
	require.NoError(t, err)
	assert.Equal(t, []repeat.Interval{
		{Start: 10, End: 30, Strand: repeat.Unknown},
		{Start: 40, End: 43, Strand: repeat.Unknown},
		{Start: 43, End: 45, Strand: repeat.Unknown},
	}, got)
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tandem.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tracks": [{"id": "a", "length": 5}]}`), 0o644))

	doc, err := ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tandem", doc.Name)

	_, err = ImportFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "error %v", err)

	_, err = ImportFile(filepath.Join(dir, "x.csv"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestExportFile(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"out.json", "out.toml", "out.gff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, ExportFile(doc, path))
			again, err := ImportFile(path)
			require.NoError(t, err)
			assert.Equal(t, []string{"seqA", "seqB"}, []string{again.Tracks[0].ID, again.Tracks[1].ID})
		})
	}
}

func TestExampleFiles(t *testing.T) {
	tests := []struct {
		file    string
		tracks  int
		repeats int
	}{
		{"tandem.json", 2, 4},
		{"tandem.toml", 2, 3},
		{"repeats.gff", 2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			doc, err := ImportFile(filepath.Join("..", "..", "examples", tt.file))
			require.NoError(t, err)
			assert.Len(t, doc.Tracks, tt.tracks)
			assert.Len(t, doc.Repeats, tt.repeats)

			_, err = doc.Diagram(repeat.Unknown)
			assert.NoError(t, err)
		})
	}
}
