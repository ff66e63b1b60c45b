package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/money"
)

// ItemShare is a person's part of one item, as rendered in their itemized breakdown.
type ItemShare struct {
	Item   models.BillItem `json:"item"`
	Shares int             `json:"shares"`
	Amount decimal.Decimal `json:"amount"`
}

// PersonAllocation collects everything allocated to one person across the bill.
type PersonAllocation struct {
	Person models.Person

	// Items are in bill order.
	Items []ItemShare

	// Subtotal is the sum of Items amounts, before adjustments.
	Subtotal decimal.Decimal

	itemIndex map[string]int
}

// Aggregation groups item allocations by person.
type Aggregation struct {
	// People are in first-appearance order across the bill's items.
	People []PersonAllocation

	// SplitSubtotal is the sum of every amount allocated to a person.
	SplitSubtotal decimal.Decimal

	// UnsplitSubtotal is the sum of amounts of items nobody is assigned to.
	UnsplitSubtotal decimal.Decimal

	// UnsplitItems are the items with an empty assignment list, in bill order.
	UnsplitItems []models.BillItem

	index map[string]int
}

// Aggregate allocates every item and merges the results per person.
// SplitSubtotal + UnsplitSubtotal always equals the sum of all item amounts.
func Aggregate(items []models.BillItem, scale int32) Aggregation {
	agg := Aggregation{
		SplitSubtotal:   decimal.Zero,
		UnsplitSubtotal: decimal.Zero,
		index:           make(map[string]int),
	}

	for _, item := range items {
		alloc := AllocateItem(item, scale)
		if alloc.Unsplit {
			agg.UnsplitItems = append(agg.UnsplitItems, item)
			agg.UnsplitSubtotal = money.Sum(agg.UnsplitSubtotal, alloc.UnsplitAmount)
			continue
		}

		for _, share := range alloc.People {
			person := agg.personFor(share.Person)
			person.add(item, share.Shares, share.Amount)
			agg.SplitSubtotal = money.Sum(agg.SplitSubtotal, share.Amount)
		}
	}

	return agg
}

func (a *Aggregation) personFor(p models.Person) *PersonAllocation {
	i, ok := a.index[p.ID]
	if !ok {
		i = len(a.People)
		a.index[p.ID] = i
		a.People = append(a.People, PersonAllocation{
			Person:    p,
			Subtotal:  decimal.Zero,
			itemIndex: make(map[string]int),
		})
	}
	return &a.People[i]
}

// add merges a share into the person's breakdown. Repeated item IDs accumulate.
func (p *PersonAllocation) add(item models.BillItem, shares int, amount decimal.Decimal) {
	if i, ok := p.itemIndex[item.ID]; ok {
		p.Items[i].Shares += shares
		p.Items[i].Amount = money.Sum(p.Items[i].Amount, amount)
	} else {
		p.itemIndex[item.ID] = len(p.Items)
		p.Items = append(p.Items, ItemShare{Item: item, Shares: shares, Amount: amount})
	}
	p.Subtotal = money.Sum(p.Subtotal, amount)
}

// Person returns the allocation for a person ID.
func (a Aggregation) Person(id string) (PersonAllocation, bool) {
	i, ok := a.index[id]
	if !ok {
		return PersonAllocation{}, false
	}
	return a.People[i], true
}

// PersonItems returns person ID → item ID → share, for callers that want lookups
// rather than ordered slices.
func (a Aggregation) PersonItems() map[string]map[string]ItemShare {
	out := make(map[string]map[string]ItemShare, len(a.People))
	for _, p := range a.People {
		items := make(map[string]ItemShare, len(p.Items))
		for _, share := range p.Items {
			items[share.Item.ID] = share
		}
		out[p.Person.ID] = items
	}
	return out
}

// Subtotal is SplitSubtotal + UnsplitSubtotal.
func (a Aggregation) Subtotal() decimal.Decimal {
	return money.Sum(a.SplitSubtotal, a.UnsplitSubtotal)
}
