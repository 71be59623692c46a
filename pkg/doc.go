// Package pkg provides the libraries behind repeatmap, which draws repeat
// regions found on biological sequences.
//
// # Overview
//
// A repeat map shows one horizontal track per sequence with every repeat on
// it drawn as a colored feature. Repeats can be given as coordinates, as
// strand-tagged coordinates, or as a multiple sequence alignment whose rows
// are split into one interval each. The pkg directory is organized into
// three areas:
//
//  1. Core: tracks, repeat coordinates, colors, geometry and diagram assembly
//  2. Rendering: the backend capability and the linear SVG/PNG/PDF/JSON backend
//  3. Infrastructure: document import, caching, HTTP, logo service, pipeline
//
// # Architecture
//
// The typical data flow:
//
//	repeat-map document (JSON, TOML) or GFF annotation
//	         ↓
//	    [io] package (decode into a Document)
//	         ↓
//	    [diagram] package (register tracks, normalize repeats)
//	         ↓
//	    [layout] + [palette] (page geometry, render ranks, colors)
//	         ↓
//	    [render/linear] (SVG, PNG, PDF, JSON)
//
// # Quick Start
//
//	d, _ := diagram.New(track.Pair{ID: "seqA", Length: 100}, track.Pair{ID: "seqB", Length: 50})
//	_ = d.AddRepeats("seqA", repeat.Sequence{
//	    repeat.Pair{Start: 10, End: 30},
//	    repeat.Triple{Start: 40, End: 60, Strand: repeat.Reverse},
//	}, repeat.Unknown)
//
//	drawing, _ := d.Build("demo", diagram.BuildOptions{
//	    Size:    diagram.Size{Width: 800, HeightOrAspect: 0.25},
//	    Backend: linear.Factory(),
//	})
//	svg, _ := drawing.Bytes("svg")
//
// # Main Packages
//
// ## Core
//
// [track] - Track registry: resolves track descriptors to an identifier and a
// length, and looks tracks up by identifier or index.
//
// [repeat] - Repeat descriptors and [repeat.Normalize], which turns any
// descriptor into half-open intervals with a strand.
//
// [palette] - Rainbow colors for repeats by position, the HMM state gradient
// and HTML helpers.
//
// [layout] - Page size and orientation, render ranks and fragments.
//
// [options] - Feature, track and page drawing options with merge.
//
// [diagram] - RepeatDiagram, which composes all of the above and builds a
// drawing through a render backend.
//
// ## Rendering
//
// [render] - The backend capability and supported formats.
//
// [render/linear] - The linear backend drawing stacked tracks.
//
// ## Infrastructure
//
// [io] - Repeat-map documents in JSON and TOML, and GFF import/export.
//
// [pipeline] - Import → build → render with artifact caching, shared by the
// CLI commands.
//
// [cache] - File, redis and null byte caches with a key scheme.
//
// [logo] - Client for a Skylign-style HMM logo service and Pfam downloads.
//
// [httputil] - Retry with backoff and status classification.
//
// [config] - The TOML configuration file.
//
// [observability] - Optional hooks for pipeline, cache and HTTP events.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
//	go test ./...                  # All tests
//	go test ./pkg/diagram/...      # Specific package
//
// [track]: https://pkg.go.dev/github.com/matzehuels/repeatmap/pkg/track
// [repeat]: https://pkg.go.dev/github.com/matzehuels/repeatmap/pkg/repeat
// [repeat.Normalize]: https://pkg.go.dev/github.com/matzehuels/repeatmap/pkg/repeat#Normalize
// [palette]: https://pkg.go.dev/github.com/matzehuels/repeatmap/pkg/palette
// [layout]: https://pkg.go.dev/github.com/matzehuels/repeatmap/pkg/layout
// [options]: https://pkg.go.dev/github.com/matzehuels/repeatmap/pkg/options
// [diagram]: https://pkg.go.dev/github.com/matzehuels/repeatmap/pkg/diagram
// [render]: https://pkg.go.dev/github.com/matzehuels/repeatmap/pkg/render
// [render/linear]: https://pkg.go.dev/github.com/matzehuels/repeatmap/pkg/render/linear
// [io]: https://pkg.go.dev/github.com/matzehuels/repeatmap/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/repeatmap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/repeatmap/pkg/cache
// [logo]: https://pkg.go.dev/github.com/matzehuels/repeatmap/pkg/logo
// [httputil]: https://pkg.go.dev/github.com/matzehuels/repeatmap/pkg/httputil
// [config]: https://pkg.go.dev/github.com/matzehuels/repeatmap/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/repeatmap/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/repeatmap/pkg/errors
package pkg
