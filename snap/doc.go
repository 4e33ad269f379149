// Package snap refines field-boundary estimates against page evidence:
// matched label text, detected ruled lines, and drawn rectangles.
//
// Each snapper applies a single safety-gated transform and returns either
// a revised field or the untouched input. Refinement is advisory: when a
// precondition fails, or the revised box would violate the page-space
// invariants, the original coordinates are kept. Stages compose into a
// Pipeline; ordering is deliberate configuration, since the evidence
// sources do not commute.
package snap
