// Package models defines the core domain models for splitbill.
//
// # Models
//
//   - Bill: a receipt with items, bill-level adjustments and cached totals
//   - BillItem: one receipt line, shared by zero or more people
//   - Adjustment: tax, service charge or discount applied to the whole bill
//   - Person: a participant referenced by items
//   - User: the account that owns bills and people
//
// # Editing
//
// Bills are edited only through the update functions on *Bill (AddItem,
// AssignPerson, UpdateAdjustment, ...). Each one recomputes Totals so that
// GrandTotal always equals SubTotal plus the sum of adjustments.
//
// The calculator never mutates a bill. Callers hand it a snapshot (Bill.Clone)
// and recompute after every edit.
//
// # Shares
//
// A person listed more than once in BillItem.SelectedPeople holds one share per
// entry. The list is never deduplicated.
package models
