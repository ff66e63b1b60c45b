package models

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitbill/internal/money"
)

var (
	ErrItemNotFound       = errors.New("bill item not found")
	ErrAdjustmentNotFound = errors.New("adjustment not found")
)

// LocalizedName is a name as printed on the receipt plus an optional English translation.
type LocalizedName struct {
	// Original is the text exactly as it appears on the receipt.
	Original string `json:"original"`

	// English is the translated name, empty when no translation exists.
	English string `json:"english,omitempty"`
}

// Currency describes the bill's source currency and an optional display currency.
//
// Target is presentation-only. No exchange rate is ever applied to it.
type Currency struct {
	// Original is the ISO 4217 code the receipt was issued in.
	Original string `json:"original" validate:"required,iso4217"`

	// Target is the ISO 4217 code amounts should be displayed in, if any.
	Target string `json:"target,omitempty" validate:"omitempty,iso4217"`
}

// Totals is a derived cache over the bill's items and adjustments.
// It must be recomputed after every edit (see Bill.RecomputeTotals).
type Totals struct {
	// SubTotal is the sum of all item amounts.
	SubTotal decimal.Decimal `json:"subTotal"`

	// GrandTotal is SubTotal plus the sum of all adjustments.
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// BillItem is a single line on the receipt.
type BillItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id" validate:"required"`

	Name LocalizedName `json:"name"`

	// Amount is signed. Negative amounts represent item-level discounts or promotions.
	Amount decimal.Decimal `json:"amount"`

	// SelectedPeople lists who shares this item. A person listed twice holds
	// two shares. An empty list means the item is unsplit.
	SelectedPeople []Person `json:"selectedPeople" validate:"dive"`
}

// Unsplit reports whether nobody has been assigned to the item.
func (i BillItem) Unsplit() bool {
	return len(i.SelectedPeople) == 0
}

// Adjustment is a bill-level charge or discount such as tax, service charge or a voucher.
type Adjustment struct {
	// ID is the unique identifier for the adjustment (UUID format).
	ID string `json:"id" validate:"required"`

	// TrackingID correlates an adjustment across edits. It is opaque to the calculator.
	TrackingID string `json:"trackingId"`

	Name LocalizedName `json:"name"`

	// Amount is signed. Negative amounts are discounts.
	Amount decimal.Decimal `json:"amount"`
}

// Bill is the root entity handed to the calculator as a snapshot.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string `json:"id" validate:"required"`

	// OwnerID is the user who owns this bill. Empty for anonymous calculations.
	OwnerID string `json:"ownerId,omitempty"`

	// Name is the merchant or display name of the bill.
	Name LocalizedName `json:"name"`

	// Date is an optional YYYY-MM-DD date.
	Date string `json:"date,omitempty" validate:"omitempty,billdate"`

	// Time is an optional 24-hour HH:MM time.
	Time string `json:"time,omitempty" validate:"omitempty,billtime"`

	Currency Currency `json:"currency"`

	Items []BillItem `json:"items" validate:"dive"`

	Adjustments []Adjustment `json:"adjustments" validate:"dive"`

	Totals Totals `json:"totals"`

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last edit.
	UpdatedAt int64 `json:"updatedAt"`
}

// NewBill creates an empty bill in the given source currency.
func NewBill(name LocalizedName, currencyCode string) *Bill {
	now := time.Now().Unix()
	b := &Bill{
		ID:          uuid.New().String(),
		Name:        name,
		Currency:    Currency{Original: currencyCode},
		Items:       []BillItem{},
		Adjustments: []Adjustment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.RecomputeTotals()
	return b
}

// NewBillItem creates an item with a fresh ID.
func NewBillItem(name LocalizedName, amount decimal.Decimal, people ...Person) BillItem {
	selected := make([]Person, len(people))
	copy(selected, people)
	return BillItem{
		ID:             uuid.New().String(),
		Name:           name,
		Amount:         amount,
		SelectedPeople: selected,
	}
}

// NewAdjustment creates an adjustment with a fresh ID and tracking ID.
func NewAdjustment(name LocalizedName, amount decimal.Decimal) Adjustment {
	return Adjustment{
		ID:         uuid.New().String(),
		TrackingID: uuid.New().String(),
		Name:       name,
		Amount:     amount,
	}
}

// DefaultBillName builds the fallback name used when a bill has no merchant name.
func DefaultBillName(billText, id string) string {
	return fmt.Sprintf("%s #%s", billText, id)
}

// SubTotal sums item amounts.
func SubTotal(items []BillItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}

// AdjustmentTotal sums adjustment amounts.
func AdjustmentTotal(adjustments []Adjustment) decimal.Decimal {
	total := decimal.Zero
	for _, adj := range adjustments {
		total = total.Add(adj.Amount)
	}
	return total
}

// RecomputeTotals refreshes the cached totals from items and adjustments.
func (b *Bill) RecomputeTotals() {
	sub := SubTotal(b.Items)
	b.Totals = Totals{
		SubTotal:   sub,
		GrandTotal: money.Sum(sub, AdjustmentTotal(b.Adjustments)),
	}
}

// DisplayCurrency is the target currency when set, otherwise the source currency.
func (b *Bill) DisplayCurrency() string {
	if b.Currency.Target != "" {
		return b.Currency.Target
	}
	return b.Currency.Original
}

// People returns every distinct person assigned to any item, in first-appearance order.
func (b *Bill) People() []Person {
	seen := make(map[string]bool)
	var people []Person
	for _, item := range b.Items {
		for _, p := range item.SelectedPeople {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			people = append(people, p)
		}
	}
	return people
}

// Clone returns a deep copy that shares no slices with b.
func (b *Bill) Clone() Bill {
	c := *b
	c.Items = make([]BillItem, len(b.Items))
	for i, item := range b.Items {
		item.SelectedPeople = append([]Person(nil), item.SelectedPeople...)
		c.Items[i] = item
	}
	c.Adjustments = append([]Adjustment(nil), b.Adjustments...)
	return c
}

func (b *Bill) touch() {
	b.RecomputeTotals()
	b.UpdatedAt = time.Now().Unix()
}

func (b *Bill) itemIndex(id string) (int, error) {
	for i := range b.Items {
		if b.Items[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

func (b *Bill) adjustmentIndex(id string) (int, error) {
	for i := range b.Adjustments {
		if b.Adjustments[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrAdjustmentNotFound, id)
}

// Rename changes the bill's display name.
func (b *Bill) Rename(name LocalizedName) {
	b.Name = name
	b.UpdatedAt = time.Now().Unix()
}

// SetDate sets the bill date. An empty string clears it.
func (b *Bill) SetDate(date string) error {
	if date != "" && !ValidDate(date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	b.Date = date
	b.UpdatedAt = time.Now().Unix()
	return nil
}

// SetTime sets the bill time. An empty string clears it.
func (b *Bill) SetTime(clock string) error {
	if clock == "" {
		b.Time = ""
		b.UpdatedAt = time.Now().Unix()
		return nil
	}
	normalized, ok := NormalizeTime(clock)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTime, clock)
	}
	b.Time = normalized
	b.UpdatedAt = time.Now().Unix()
	return nil
}

// SetTargetCurrency sets the display currency. An empty code clears it.
func (b *Bill) SetTargetCurrency(code string) {
	b.Currency.Target = code
	b.UpdatedAt = time.Now().Unix()
}

// AddItem appends a new item and returns it.
func (b *Bill) AddItem(name LocalizedName, amount decimal.Decimal, people ...Person) BillItem {
	item := NewBillItem(name, amount, people...)
	b.Items = append(b.Items, item)
	b.touch()
	return item
}

// UpdateItem changes an item's name and amount, keeping its assignments.
func (b *Bill) UpdateItem(id string, name LocalizedName, amount decimal.Decimal) error {
	i, err := b.itemIndex(id)
	if err != nil {
		return err
	}
	b.Items[i].Name = name
	b.Items[i].Amount = amount
	b.touch()
	return nil
}

// RemoveItem deletes an item.
func (b *Bill) RemoveItem(id string) error {
	i, err := b.itemIndex(id)
	if err != nil {
		return err
	}
	b.Items = slices.Delete(slices.Clone(b.Items), i, i+1)
	b.touch()
	return nil
}

// AssignPerson adds one share of the item to p. Assigning the same person
// again gives them an additional share; the list is never deduplicated.
func (b *Bill) AssignPerson(itemID string, p Person) error {
	i, err := b.itemIndex(itemID)
	if err != nil {
		return err
	}
	b.Items[i].SelectedPeople = append(b.Items[i].SelectedPeople, p)
	b.touch()
	return nil
}

// UnassignPerson removes one share held by personID, starting from the last
// occurrence so the first entry keeps its position. It is a no-op when the
// person holds no share.
func (b *Bill) UnassignPerson(itemID, personID string) error {
	i, err := b.itemIndex(itemID)
	if err != nil {
		return err
	}
	people := b.Items[i].SelectedPeople
	for j := len(people) - 1; j >= 0; j-- {
		if people[j].ID == personID {
			b.Items[i].SelectedPeople = slices.Delete(slices.Clone(people), j, j+1)
			break
		}
	}
	b.touch()
	return nil
}

// ClearAssignments makes the item unsplit.
func (b *Bill) ClearAssignments(itemID string) error {
	i, err := b.itemIndex(itemID)
	if err != nil {
		return err
	}
	b.Items[i].SelectedPeople = []Person{}
	b.touch()
	return nil
}

// AddAdjustment appends a new adjustment and returns it.
func (b *Bill) AddAdjustment(name LocalizedName, amount decimal.Decimal) Adjustment {
	adj := NewAdjustment(name, amount)
	b.Adjustments = append(b.Adjustments, adj)
	b.touch()
	return adj
}

// UpdateAdjustment changes an adjustment's name and amount. The tracking ID is preserved.
func (b *Bill) UpdateAdjustment(id string, name LocalizedName, amount decimal.Decimal) error {
	i, err := b.adjustmentIndex(id)
	if err != nil {
		return err
	}
	b.Adjustments[i].Name = name
	b.Adjustments[i].Amount = amount
	b.touch()
	return nil
}

// RemoveAdjustment deletes an adjustment.
func (b *Bill) RemoveAdjustment(id string) error {
	i, err := b.adjustmentIndex(id)
	if err != nil {
		return err
	}
	b.Adjustments = slices.Delete(slices.Clone(b.Adjustments), i, i+1)
	b.touch()
	return nil
}
