package display

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/models"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		locale string
		amount string
		scale  int32
		want   string
	}{
		{"en-US", "1234.5", 2, "1,234.50"},
		{"en-US", "-0.004", 2, "0.00"},
		{"en-US", "-12.345", 2, "-12.35"},
		{"en-US", "1000", 0, "1,000"},
		{"de-DE", "1234.5", 2, "1.234,50"},
		{"en-US", "12345678901234567.89", 2, "12,345,678,901,234,567.89"},
		{"de-DE", "98765432109876.54", 2, "98.765.432.109.876,54"},
		{"en-US", "0.05", 3, "0.050"},
		{"en-US", "1.235", 3, "1.235"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.amount, func(t *testing.T) {
			got := NewFormatter(tt.locale).Number(decimal.RequireFromString(tt.amount), tt.scale)
			if got != tt.want {
				t.Errorf("Number = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAmount(t *testing.T) {
	f := NewFormatter("en-US")
	tests := []struct {
		amount string
		code   string
		want   string
	}{
		{"1234.5", "USD", "$1,234.50"},
		{"-5.5", "USD", "-$5.50"},
		{"1000", "JPY", "¥1,000"},
		{"3", "NOPE", "NOPE3.00"},
	}

	for _, tt := range tests {
		t.Run(tt.code+"/"+tt.amount, func(t *testing.T) {
			if got := f.Amount(decimal.RequireFromString(tt.amount), tt.code); got != tt.want {
				t.Errorf("Amount = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewFormatterFallback(t *testing.T) {
	if got := NewFormatter("!!").Locale(); got != DefaultLocale {
		t.Errorf("Locale = %q, want %q", got, DefaultLocale)
	}
}

func TestCurrencyForLocale(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en-US", "USD"},
		{"en-GB", "GBP"},
		{"de-DE", "EUR"},
		{"ja-JP", "JPY"},
		{"fr", "EUR"},
		{"!!", DefaultCurrency},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			if got := CurrencyForLocale(tt.locale); got != tt.want {
				t.Errorf("CurrencyForLocale(%q) = %q, want %q", tt.locale, got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	alice := models.Person{ID: "alice", Name: "Alice"}
	bob := models.Person{ID: "bob", Name: "Bob"}

	bill := models.NewBill(models.LocalizedName{Original: "Dinner"}, "USD")
	bill.AddItem(models.LocalizedName{Original: "Bistecca", English: "Steak"}, decimal.RequireFromString("20"), alice)
	bill.AddItem(models.LocalizedName{Original: "Lobster"}, decimal.RequireFromString("80"), bob)
	bill.AddItem(models.LocalizedName{Original: "Bread"}, decimal.RequireFromString("4"))
	bill.AddAdjustment(models.LocalizedName{Original: "Tax"}, decimal.RequireFromString("10.40"))

	view := NewFormatter("en-US").Render(calculator.Summarize(*bill))

	if view.Currency != "USD" || len(view.People) != 2 {
		t.Fatalf("unexpected view: %+v", view)
	}
	a := view.People[0]
	if a.Name != "Alice" || a.Subtotal != "$20.00" || a.AdjustmentShare != "$2.00" || a.Total != "$22.00" {
		t.Errorf("unexpected alice line: %+v", a)
	}
	if a.Items[0].Name != "Steak" || a.Items[0].Amount != "$20.00" {
		t.Errorf("expected English item name, got %+v", a.Items[0])
	}
	if view.GrandTotal != "$114.40" {
		t.Errorf("GrandTotal = %q", view.GrandTotal)
	}
	if !strings.Contains(view.UnsplitWarning, "$4.40") {
		t.Errorf("UnsplitWarning = %q", view.UnsplitWarning)
	}
}
