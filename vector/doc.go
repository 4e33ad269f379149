// Package vector recovers straight lines and rectangles from a page's
// drawing-command stream.
//
// The extractor is a small interpreter over the parsed operations: it
// maintains a coordinate-transform-matrix stack (q/Q/cm), constructs paths
// (m/l/re/h), and commits the accumulated segments when a paint operator
// arrives (S/s/f/F/f*/B/B*/b/b*/n). Committed segments that are
// overwhelmingly axis-aligned become [model.VectorLine] values; re
// operators above a small noise floor become [model.VectorRect] values.
// Curve operators are ignored: curves are never field borders in this
// domain.
//
// All results are converted from device space (bottom-left origin) to
// page space (percent, top-left origin) at the extraction boundary.
//
// A malformed or truncated stream yields whatever was committed before
// the anomaly, never an error.
package vector
