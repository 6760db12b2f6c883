// Package geom is the geometry kernel of easel.
//
// Everything here is pure and allocation-light: point and rectangle
// arithmetic, the 4x4 matrices uploaded to the GPU, the hit tests used for
// picking, miter-join stroke generation and ear-clipping triangulation.
//
// Degenerate input (zero-length segments, polygons with fewer than three
// points, zero radii) never produces NaN, panics or errors. Functions return
// no geometry or report a miss instead, since such input is routine at
// animation extremes such as a shape collapsing during a drag.
package geom
