package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/money"
)

// PersonItemShare is one distinct person's part of a single item.
type PersonItemShare struct {
	Person models.Person
	Shares int
	Amount decimal.Decimal
}

// ItemAllocation is the result of splitting one item across its assigned people.
type ItemAllocation struct {
	Item models.BillItem

	// Unsplit is true when nobody is assigned. UnsplitAmount then holds the
	// full item amount and People is empty.
	Unsplit       bool
	UnsplitAmount decimal.Decimal

	// TotalShares is the number of entries in the assignment list.
	TotalShares int

	// People holds one entry per distinct person, in first-appearance order.
	People []PersonItemShare
}

// AllocateItem splits item.Amount into len(SelectedPeople) equal shares at the
// given scale. Each distinct person receives shares*perShare. Whatever cannot
// be divided evenly is added to the person holding the first entry, so the
// allocated amounts always sum to item.Amount exactly.
func AllocateItem(item models.BillItem, scale int32) ItemAllocation {
	alloc := ItemAllocation{
		Item:          item,
		UnsplitAmount: decimal.Zero,
		TotalShares:   len(item.SelectedPeople),
	}
	if item.Unsplit() {
		alloc.Unsplit = true
		alloc.UnsplitAmount = item.Amount
		return alloc
	}

	index := make(map[string]int, len(item.SelectedPeople))
	for _, p := range item.SelectedPeople {
		i, ok := index[p.ID]
		if !ok {
			i = len(alloc.People)
			index[p.ID] = i
			alloc.People = append(alloc.People, PersonItemShare{Person: p})
		}
		alloc.People[i].Shares++
	}

	perShare, remainder := money.SplitEven(item.Amount, alloc.TotalShares, scale)
	for i := range alloc.People {
		alloc.People[i].Amount = perShare.Mul(decimal.NewFromInt(int64(alloc.People[i].Shares)))
	}
	alloc.People[0].Amount = alloc.People[0].Amount.Add(remainder)

	return alloc
}

// Allocated sums the per-person amounts of the allocation.
func (a ItemAllocation) Allocated() decimal.Decimal {
	total := decimal.Zero
	for _, p := range a.People {
		total = total.Add(p.Amount)
	}
	return total
}
