// Package model provides the shared data types for field-boundary
// refinement and evaluation.
//
// This package defines the value objects that flow between the evidence
// extractors, the coordinate snapper, and the scoring harness. All types
// are plain immutable values; refinement stages return new values rather
// than mutating their inputs.
//
// # Coordinate Spaces
//
// Two coordinate spaces appear in this module:
//
//   - Device space: the native units of a vector document page, origin at
//     the bottom-left. Used only inside the vector extractor.
//   - Page space: percentages of the page dimensions (0-100), origin at
//     the top-left. Every published coordinate is in page space.
//
// The conversion between the two happens exactly once, at the extraction
// boundary, via [DeviceToPage].
//
// # Geometry
//
// Geometric primitives support position and overlap calculations:
//
//   - [Box] - axis-aligned box in page space with IoU, intersection, union
//   - [Point] - 2D point with distance calculation
//   - [Matrix] - 2D affine transformation matrix
//
// # Fields and Evidence
//
// A [Field] is one form-field estimate with its label, type, and box.
// The evidence types [VectorLine], [RasterLine], [Word], and [LabelMatch]
// carry what the three independent extractors recovered from a page.
package model
