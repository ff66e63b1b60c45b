package display

import (
	"github.com/mmynk/splitbill/internal/calculator"
)

// ItemLine is one row of a person's itemized breakdown.
type ItemLine struct {
	ItemID string `json:"itemId"`
	Name   string `json:"name"`
	Shares int    `json:"shares"`
	Amount string `json:"amount"`
}

// PersonLine is one person's formatted totals.
type PersonLine struct {
	PersonID        string     `json:"personId"`
	Name            string     `json:"name"`
	Items           []ItemLine `json:"items"`
	Subtotal        string     `json:"subtotal"`
	AdjustmentShare string     `json:"adjustmentShare"`
	Total           string     `json:"total"`
}

// SummaryView is a calculator.Summary with every amount formatted in the
// bill's display currency.
type SummaryView struct {
	Currency        string       `json:"currency"`
	Locale          string       `json:"locale"`
	People          []PersonLine `json:"people"`
	SplitTotal      string       `json:"splitTotal"`
	UnsplitTotal    string       `json:"unsplitTotal"`
	TotalAdjustment string       `json:"totalAdjustment"`
	GrandTotal      string       `json:"grandTotal"`

	// UnsplitWarning is set when some items are not assigned to anyone yet.
	UnsplitWarning string `json:"unsplitWarning,omitempty"`
}

// Render formats a summary. Item names prefer the English translation when
// one exists.
func (f *Formatter) Render(s calculator.Summary) SummaryView {
	code := s.DisplayCurrency
	view := SummaryView{
		Currency:        code,
		Locale:          f.Locale(),
		People:          make([]PersonLine, 0, len(s.People)),
		SplitTotal:      f.Amount(s.SplitTotal, code),
		UnsplitTotal:    f.Amount(s.UnsplitTotal, code),
		TotalAdjustment: f.Amount(s.TotalAdjustment, code),
		GrandTotal:      f.Amount(s.GrandTotal, code),
	}

	for _, p := range s.People {
		line := PersonLine{
			PersonID:        p.Person.ID,
			Name:            p.Person.Name,
			Items:           make([]ItemLine, 0, len(p.Items)),
			Subtotal:        f.Amount(p.Subtotal, code),
			AdjustmentShare: f.Amount(p.AdjustmentShare, code),
			Total:           f.Amount(p.AdjustedTotal, code),
		}
		for _, is := range p.Items {
			name := is.Item.Name.English
			if name == "" {
				name = is.Item.Name.Original
			}
			line.Items = append(line.Items, ItemLine{
				ItemID: is.Item.ID,
				Name:   name,
				Shares: is.Shares,
				Amount: f.Amount(is.Amount, code),
			})
		}
		view.People = append(view.People, line)
	}

	if s.HasUnsplitItems() {
		view.UnsplitWarning = f.printer.Sprintf("%d items totalling %s are not split yet",
			s.UnsplitCount, f.Amount(s.UnsplitAdjustedTotal, code))
	}
	return view
}
