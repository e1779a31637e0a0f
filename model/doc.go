// Package model defines the shared data types for page structure
// reconstruction.
//
// # Geometry
//
// Text line positions come from OCR engines as quadrilaterals ([Quad]),
// four corner points that are not guaranteed to be axis-aligned. All
// derived metrics (Left, Top, Width, Height, CenterX) are computed over
// the min/max of each axis, so degenerate quads are legal and simply
// yield zero extents. Coordinates are page pixels with Y growing downward.
//
// # Lines and blocks
//
// A [Line] is one recognized text line: a quad, a text string, and a
// recognition confidence in [0, 1]. The layout classifier turns lines
// into [ClassifiedLine] values carrying a [Level] (p, h1, h2) and the
// computed line height; the block builder merges classified lines into
// [Block] values, the final output unit.
package model
