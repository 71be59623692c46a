// Package linear draws repeat maps as stacked horizontal tracks.
//
// # Overview
//
// [Backend] implements [render.Backend]. It collects tracks by rank, lays
// them out with [layout.Page.Arrange] and paints the result as a scene of
// rectangles, lines and text. The same scene is encoded by every format:
//
//   - svg: hand-written XML
//   - png: rasterized with fogleman/gg, labels in the Go Regular font
//   - pdf: the SVG converted by rsvg-convert
//   - json: page geometry, track boxes and feature coordinates
//
// # Tracks and Features
//
// Each track occupies a band whose height is proportional to its Height
// option. With Greytrack set the band gets a light grey background and the
// track name in its top left corner. A thin line marks the track's own
// extent. Repeats are drawn as boxes: forward-strand repeats fill the top
// half of the band, reverse-strand repeats the bottom half and repeats of
// unknown strand the full height.
//
// [render.Backend]: github.com/matzehuels/repeatmap/pkg/render.Backend
// [layout.Page.Arrange]: github.com/matzehuels/repeatmap/pkg/layout.Page.Arrange
package linear
