// Package score evaluates a refined field list against ground truth. It
// pairs predicted and truth fields by overlap and label agreement, then
// aggregates detection, coordinate, type, and label metrics into a single
// weighted score, which is how competing pipeline orderings are compared.
package score
