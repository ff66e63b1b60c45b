// Package calculator turns a bill snapshot into a per-person split.
//
// The pipeline runs in one direction and never mutates its input:
//
//	items ──AllocateItem──▶ ItemAllocation
//	      ──Aggregate─────▶ Aggregation (per person, split / unsplit subtotals)
//	      ──DistributeAdjustments──▶ Distribution (tax, service, discounts)
//	      ──Summarize─────▶ Summary
//
// All arithmetic goes through package money and is exact at the bill
// currency's minor-unit scale. No function in this package returns an error;
// degenerate bills (no items, no people, zero or negative subtotals) produce
// zero shares instead.
package calculator
