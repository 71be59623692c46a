// Package render defines the boundary between the diagram core and the code
// that draws it.
//
// # Overview
//
// The core never draws. It hands a renderer three things through the
// [Backend] capability:
//
//   - the resolved page record ([layout.Page]) via BuildPage
//   - one [Track] per sequence, with its stacking rank, via AddTrack
//   - a request for encoded output via Render
//
// Any type satisfying [Backend] is interchangeable. The default
// implementation lives in the [linear] subpackage and writes SVG, PNG, PDF
// and JSON.
//
// # Drawings
//
// A [Drawing] wraps a backend that has received its page and tracks. It is
// what diagram assembly returns, and supports writing the rendering to bytes
// or to a file:
//
//	d, err := diagram.Build("Repeats", diagram.BuildOptions{})
//	svg, err := d.Bytes(render.FormatSVG)
//	err = d.WriteFile("repeats.png", "") // format from extension
//
// # Format Conversion
//
// [ToPDF] converts SVG to PDF with the external rsvg-convert tool (from
// librsvg). PNG is drawn natively by the linear backend.
//
// [linear]: github.com/matzehuels/repeatmap/pkg/render/linear
package render
