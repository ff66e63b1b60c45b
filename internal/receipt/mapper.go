// Package receipt turns a photographed receipt into an editable bill.
//
// An Extractor reads the image and returns ExtractedData. Map cleans that
// data up (dates, times and currency codes the model got wrong are dropped
// or replaced) and ProcessedBill.ToBill builds a fresh bill with every item
// unassigned.
package receipt

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/mmynk/splitbill/internal/models"
)

// UnknownCurrency is used when the receipt's currency cannot be recognised.
const UnknownCurrency = "XXX"

// defaultBillText prefixes the generated name of a bill without a merchant.
const defaultBillText = "Bill"

// ExtractedLine is a named amount read off the receipt.
type ExtractedLine struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// ExtractedData is the raw extraction result, exactly as the model returned it.
type ExtractedData struct {
	Restaurant  string          `json:"restaurant"`
	Items       []ExtractedLine `json:"items"`
	Adjustments []ExtractedLine `json:"adjustments"`
	SubTotal    decimal.Decimal `json:"subTotal"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
	Currency    string          `json:"currency"`
	Date        *string         `json:"date,omitempty"`
	Time        *string         `json:"time,omitempty"`
}

// ProcessedLine is an ExtractedLine with a localized name.
type ProcessedLine struct {
	Name   models.LocalizedName `json:"name"`
	Amount decimal.Decimal      `json:"amount"`
}

// ProcessedBill is extraction output that has passed validation.
type ProcessedBill struct {
	MerchantName models.LocalizedName `json:"merchantName"`
	Date         string               `json:"date,omitempty"`
	Time         string               `json:"time,omitempty"`
	Currency     string               `json:"currency"`
	Items        []ProcessedLine      `json:"items"`
	Adjustments  []ProcessedLine      `json:"adjustments"`

	// Totals are the totals printed on the receipt, not recomputed.
	Totals models.Totals `json:"totals"`
}

// Map validates extracted data. Invalid dates and times are dropped and an
// unrecognised currency becomes UnknownCurrency.
func Map(data ExtractedData) ProcessedBill {
	pb := ProcessedBill{
		MerchantName: models.LocalizedName{Original: strings.TrimSpace(data.Restaurant)},
		Date:         parseDate(data.Date),
		Time:         parseTime(data.Time),
		Currency:     parseCurrency(data.Currency),
		Items:        mapLines(data.Items),
		Adjustments:  mapLines(data.Adjustments),
		Totals: models.Totals{
			SubTotal:   data.SubTotal,
			GrandTotal: data.GrandTotal,
		},
	}
	return pb
}

func mapLines(lines []ExtractedLine) []ProcessedLine {
	out := make([]ProcessedLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, ProcessedLine{
			Name:   models.LocalizedName{Original: strings.TrimSpace(l.Name)},
			Amount: l.Amount,
		})
	}
	return out
}

func parseDate(s *string) string {
	if s == nil || !models.ValidDate(*s) {
		return ""
	}
	return *s
}

func parseTime(s *string) string {
	if s == nil {
		return ""
	}
	t, ok := models.NormalizeTime(*s)
	if !ok {
		return ""
	}
	return t
}

func parseCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if _, err := currency.ParseISO(code); err != nil {
		return UnknownCurrency
	}
	return code
}

// ToBill creates a new bill owned by ownerID. Items start unassigned and the
// bill's totals are computed from its lines, so they may differ from the
// printed totals (see TotalsMismatch).
func (pb ProcessedBill) ToBill(ownerID string) *models.Bill {
	bill := models.NewBill(pb.MerchantName, pb.Currency)
	bill.OwnerID = ownerID
	bill.Date = pb.Date
	bill.Time = pb.Time
	if bill.Name.Original == "" {
		bill.Name.Original = models.DefaultBillName(defaultBillText, bill.ID[:8])
	}
	for _, line := range pb.Items {
		bill.Items = append(bill.Items, models.NewBillItem(line.Name, line.Amount))
	}
	for _, line := range pb.Adjustments {
		bill.Adjustments = append(bill.Adjustments, models.NewAdjustment(line.Name, line.Amount))
	}
	bill.RecomputeTotals()
	return bill
}

// TotalsMismatch returns the printed grand total minus the bill's computed
// grand total. Zero means the extraction is self-consistent.
func (pb ProcessedBill) TotalsMismatch(bill *models.Bill) decimal.Decimal {
	return pb.Totals.GrandTotal.Sub(bill.Totals.GrandTotal)
}
