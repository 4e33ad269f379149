// Package raster detects straight printed lines in a page bitmap.
//
// The detector scans each row (and each column, for vertical lines) for
// runs of consecutive ink pixels, keeps runs longer than a configurable
// fraction of the page dimension, and merges adjacent runs that belong to
// the same printed rule. Anti-aliasing and compression artifacts routinely
// split one rule into several adjacent runs; merging restores one logical
// line per rule.
//
// This pass catches ruled lines the vector extractor cannot see: scanned
// pages, and documents that paint their rules as image content rather
// than drawing commands.
//
// Results are converted to page space (percent of the image dimensions).
package raster
