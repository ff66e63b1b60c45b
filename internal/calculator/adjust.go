package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/money"
)

// Distribution is how the bill-level adjustments are spread across people and
// the unsplit bucket.
type Distribution struct {
	// TotalAdjustment is the sum of all adjustments. It may be negative.
	TotalAdjustment decimal.Decimal

	// Distributed is false when the ratio is degenerate: no adjustments, a
	// split subtotal that is zero or negative, or an item subtotal (split plus
	// unsplit) that is zero or negative. Every share is then zero.
	Distributed bool

	// PersonShares maps person ID to that person's adjustment share.
	PersonShares map[string]decimal.Decimal

	// UnsplitShare is the part of TotalAdjustment attributable to unsplit items.
	UnsplitShare decimal.Decimal
}

// DistributeAdjustments spreads the sum of adjustments across every person and
// the unsplit bucket in proportion to their item amounts.
//
// The proportional base is the full item subtotal (split + unsplit) so the
// shares, including the unsplit one, always add up to TotalAdjustment. When
// nothing is unsplit this is exactly amount/splitSubtotal*total per person.
// Shares are rounded to scale with cumulative rounding (see money.Apportion).
func DistributeAdjustments(agg Aggregation, adjustments []models.Adjustment, scale int32) Distribution {
	dist := Distribution{
		TotalAdjustment: models.AdjustmentTotal(adjustments),
		PersonShares:    make(map[string]decimal.Decimal, len(agg.People)),
		UnsplitShare:    decimal.Zero,
	}
	for _, p := range agg.People {
		dist.PersonShares[p.Person.ID] = decimal.Zero
	}

	base := agg.Subtotal()
	if len(adjustments) == 0 || agg.SplitSubtotal.Sign() <= 0 || base.Sign() <= 0 {
		return dist
	}

	weights := make([]decimal.Decimal, 0, len(agg.People)+1)
	for _, p := range agg.People {
		weights = append(weights, p.Subtotal)
	}
	weights = append(weights, agg.UnsplitSubtotal)

	parts := money.Apportion(dist.TotalAdjustment, weights, scale)
	for i, p := range agg.People {
		dist.PersonShares[p.Person.ID] = parts[i]
	}
	dist.UnsplitShare = parts[len(parts)-1]
	dist.Distributed = true

	return dist
}

// ShareFor returns a person's adjustment share, zero for unknown IDs.
func (d Distribution) ShareFor(personID string) decimal.Decimal {
	if share, ok := d.PersonShares[personID]; ok {
		return share
	}
	return decimal.Zero
}

// DistributedTotal sums every share including the unsplit bucket.
func (d Distribution) DistributedTotal() decimal.Decimal {
	total := d.UnsplitShare
	for _, share := range d.PersonShares {
		total = total.Add(share)
	}
	return total
}
