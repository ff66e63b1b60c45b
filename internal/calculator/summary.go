package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/money"
)

// PersonSummary is one person's line in the bill summary.
type PersonSummary struct {
	Person models.Person `json:"person"`

	// Items is the itemized breakdown with share counts, in bill order.
	Items []ItemShare `json:"items"`

	// Subtotal is the person's item total before adjustments.
	Subtotal decimal.Decimal `json:"subtotal"`

	// AdjustmentShare is the person's part of tax, service and discounts.
	AdjustmentShare decimal.Decimal `json:"adjustmentShare"`

	// AdjustedTotal is Subtotal + AdjustmentShare. It can be negative.
	AdjustedTotal decimal.Decimal `json:"adjustedTotal"`
}

// Summary is the display-ready result of a full recomputation.
type Summary struct {
	BillID          string          `json:"billId"`
	Currency        models.Currency `json:"currency"`
	DisplayCurrency string          `json:"displayCurrency"`
	Scale           int32           `json:"scale"`

	People []PersonSummary `json:"people"`

	// SplitTotal is the sum of every person's Subtotal.
	SplitTotal decimal.Decimal `json:"splitTotal"`

	// UnsplitTotal is the sum of unsplit item amounts.
	UnsplitTotal decimal.Decimal `json:"unsplitTotal"`

	TotalAdjustment        decimal.Decimal `json:"totalAdjustment"`
	AdjustmentsDistributed bool            `json:"adjustmentsDistributed"`
	UnsplitAdjustmentShare decimal.Decimal `json:"unsplitAdjustmentShare"`
	UnsplitAdjustedTotal   decimal.Decimal `json:"unsplitAdjustedTotal"`

	// GrandTotal is taken from the bill's stored totals, not recomputed.
	GrandTotal decimal.Decimal `json:"grandTotal"`

	// Discrepancy is GrandTotal minus every adjusted total including the
	// unsplit bucket. It is zero whenever the stored totals are current and the
	// adjustments could be distributed.
	Discrepancy decimal.Decimal `json:"discrepancy"`

	UnsplitItems []models.BillItem `json:"unsplitItems"`
	UnsplitCount int               `json:"unsplitCount"`
}

// Summarize runs the whole pipeline over a bill snapshot. The summary shares
// no slices with bill, so later edits to the bill leave it unchanged.
func Summarize(bill models.Bill) Summary {
	bill = bill.Clone()
	scale := money.Scale(bill.Currency.Original)
	agg := Aggregate(bill.Items, scale)
	dist := DistributeAdjustments(agg, bill.Adjustments, scale)

	s := Summary{
		BillID:                 bill.ID,
		Currency:               bill.Currency,
		DisplayCurrency:        bill.DisplayCurrency(),
		Scale:                  scale,
		People:                 make([]PersonSummary, 0, len(agg.People)),
		SplitTotal:             agg.SplitSubtotal,
		UnsplitTotal:           agg.UnsplitSubtotal,
		TotalAdjustment:        dist.TotalAdjustment,
		AdjustmentsDistributed: dist.Distributed,
		UnsplitAdjustmentShare: dist.UnsplitShare,
		UnsplitAdjustedTotal:   money.Sum(agg.UnsplitSubtotal, dist.UnsplitShare),
		GrandTotal:             bill.Totals.GrandTotal,
		UnsplitItems:           agg.UnsplitItems,
		UnsplitCount:           len(agg.UnsplitItems),
	}

	adjusted := s.UnsplitAdjustedTotal
	for _, p := range agg.People {
		share := dist.ShareFor(p.Person.ID)
		ps := PersonSummary{
			Person:          p.Person,
			Items:           p.Items,
			Subtotal:        p.Subtotal,
			AdjustmentShare: share,
			AdjustedTotal:   money.Sum(p.Subtotal, share),
		}
		adjusted = money.Sum(adjusted, ps.AdjustedTotal)
		s.People = append(s.People, ps)
	}
	s.Discrepancy = s.GrandTotal.Sub(adjusted)

	return s
}

// Person returns the summary line for a person ID.
func (s Summary) Person(id string) (PersonSummary, bool) {
	for _, p := range s.People {
		if p.Person.ID == id {
			return p, true
		}
	}
	return PersonSummary{}, false
}

// HasUnsplitItems reports whether any item still needs to be assigned.
func (s Summary) HasUnsplitItems() bool {
	return s.UnsplitCount > 0
}

// AdjustedTotal is the sum of every person's adjusted total plus the unsplit bucket.
func (s Summary) AdjustedTotal() decimal.Decimal {
	total := s.UnsplitAdjustedTotal
	for _, p := range s.People {
		total = total.Add(p.AdjustedTotal)
	}
	return total
}

// Reconciled reports whether the summary accounts for the stored grand total
// to within one minor unit.
func (s Summary) Reconciled() bool {
	tolerance := decimal.New(1, -s.Scale)
	return s.Discrepancy.Abs().LessThanOrEqual(tolerance)
}
