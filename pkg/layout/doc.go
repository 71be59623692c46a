// Package layout computes page geometry for repeat maps.
//
// # Overview
//
// A repeat map is a stack of horizontal tracks, one per sequence. This
// package decides how large the page is, which way it is oriented, how the
// sequence range is split into fragments and where each track lands:
//
//   - [ComputeGeometry] derives pixel size and orientation from a target
//     width and either an absolute height or a per-track aspect ratio
//   - [Rank] converts registration order into the renderer's stacking rank
//   - [Fragments] splits the page range into equal rows
//   - [Page.Arrange] places every track of every fragment as a [Box]
//
// # Height or Aspect Ratio
//
// The second size component is overloaded. Values of 1 or more are absolute
// pixel heights. Values below 1 are the height/width ratio of a single track,
// so the page grows with the number of tracks and fragments:
//
//	g := layout.ComputeGeometry(800, 0.25, 4, 1) // 800 x 800, landscape
//	g = layout.ComputeGeometry(800, 1200, 4, 1)  // 800 x 1200, portrait
//
// # Stacking
//
// Renderers stack tracks bottom to top by ascending rank. Tracks are shown
// top to bottom in registration order, so the first registered track gets
// the highest rank and the last one gets rank 1.
package layout
