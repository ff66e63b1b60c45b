package calculator

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/money"
)

var (
	alice = models.Person{ID: "alice", Name: "Alice"}
	bob   = models.Person{ID: "bob", Name: "Bob"}
	carol = models.Person{ID: "carol", Name: "Carol"}
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(id, name, amount string, people ...models.Person) models.BillItem {
	return models.BillItem{
		ID:             id,
		Name:           models.LocalizedName{Original: name},
		Amount:         amt(amount),
		SelectedPeople: people,
	}
}

func adjustment(id, name, amount string) models.Adjustment {
	return models.Adjustment{
		ID:         id,
		TrackingID: "t-" + id,
		Name:       models.LocalizedName{Original: name},
		Amount:     amt(amount),
	}
}

func bill(items []models.BillItem, adjustments []models.Adjustment) models.Bill {
	b := models.Bill{
		ID:          "bill",
		Name:        models.LocalizedName{Original: "Dinner"},
		Currency:    models.Currency{Original: "USD"},
		Items:       items,
		Adjustments: adjustments,
	}
	b.RecomputeTotals()
	return b
}

func assertAmount(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(amt(want)) {
		t.Errorf("%s = %s, want %s", label, got, want)
	}
}

func TestAllocateItem(t *testing.T) {
	tests := []struct {
		name  string
		item  models.BillItem
		scale int32
		want  map[string]string
		// first lists the expected person order
		first []string
	}{
		{
			name:  "equal split",
			item:  item("pizza", "Pizza", "30.00", alice, bob, carol),
			scale: 2,
			want:  map[string]string{"alice": "10", "bob": "10", "carol": "10"},
			first: []string{"alice", "bob", "carol"},
		},
		{
			name:  "duplicate entry is an extra share",
			item:  item("pizza", "Pizza", "30.00", alice, alice, bob),
			scale: 2,
			want:  map[string]string{"alice": "20", "bob": "10"},
			first: []string{"alice", "bob"},
		},
		{
			name:  "remainder goes to first entry",
			item:  item("wine", "Wine", "10.00", bob, alice, carol),
			scale: 2,
			want:  map[string]string{"bob": "3.34", "alice": "3.33", "carol": "3.33"},
			first: []string{"bob", "alice", "carol"},
		},
		{
			name:  "negative remainder goes to first entry",
			item:  item("promo", "Promo", "-10.00", alice, bob, carol),
			scale: 2,
			want:  map[string]string{"alice": "-3.34", "bob": "-3.33", "carol": "-3.33"},
			first: []string{"alice", "bob", "carol"},
		},
		{
			name:  "zero decimal currency",
			item:  item("ramen", "Ramen", "1000", alice, bob, carol),
			scale: 0,
			want:  map[string]string{"alice": "334", "bob": "333", "carol": "333"},
			first: []string{"alice", "bob", "carol"},
		},
		{
			name:  "single person takes everything",
			item:  item("promo", "Promo", "-5.00", alice),
			scale: 2,
			want:  map[string]string{"alice": "-5"},
			first: []string{"alice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := AllocateItem(tt.item, tt.scale)
			if alloc.Unsplit {
				t.Fatal("expected item to be split")
			}
			if alloc.TotalShares != len(tt.item.SelectedPeople) {
				t.Errorf("TotalShares = %d, want %d", alloc.TotalShares, len(tt.item.SelectedPeople))
			}
			if len(alloc.People) != len(tt.first) {
				t.Fatalf("got %d people, want %d", len(alloc.People), len(tt.first))
			}
			for i, id := range tt.first {
				share := alloc.People[i]
				if share.Person.ID != id {
					t.Errorf("People[%d] = %s, want %s", i, share.Person.ID, id)
				}
				assertAmount(t, id, share.Amount, tt.want[id])
			}
			assertAmount(t, "allocated", alloc.Allocated(), tt.item.Amount.String())
		})
	}
}

func TestAllocateItemShareCounts(t *testing.T) {
	alloc := AllocateItem(item("pizza", "Pizza", "30.00", alice, bob, alice), 2)
	if alloc.People[0].Shares != 2 || alloc.People[1].Shares != 1 {
		t.Errorf("unexpected share counts: %+v", alloc.People)
	}
}

func TestAllocateItemUnsplit(t *testing.T) {
	alloc := AllocateItem(item("fee", "Service Fee", "15.00"), 2)
	if !alloc.Unsplit {
		t.Fatal("expected unsplit item")
	}
	if len(alloc.People) != 0 {
		t.Errorf("expected no people, got %d", len(alloc.People))
	}
	assertAmount(t, "UnsplitAmount", alloc.UnsplitAmount, "15")
	assertAmount(t, "Allocated", alloc.Allocated(), "0")
}

func TestAggregate(t *testing.T) {
	items := []models.BillItem{
		item("pizza", "Pizza", "30.00", alice, alice, bob),
		item("salad", "Salad", "12.00", bob),
		item("wine", "Wine", "20.00", carol, alice),
		item("fee", "Service Fee", "15.00"),
		item("bread", "Bread", "4.00"),
	}

	agg := Aggregate(items, 2)

	assertAmount(t, "SplitSubtotal", agg.SplitSubtotal, "62")
	assertAmount(t, "UnsplitSubtotal", agg.UnsplitSubtotal, "19")
	assertAmount(t, "Subtotal", agg.Subtotal(), "81")

	if len(agg.UnsplitItems) != 2 || agg.UnsplitItems[0].ID != "fee" || agg.UnsplitItems[1].ID != "bread" {
		t.Errorf("unexpected unsplit items: %+v", agg.UnsplitItems)
	}

	wantOrder := []string{"alice", "bob", "carol"}
	for i, id := range wantOrder {
		if agg.People[i].Person.ID != id {
			t.Errorf("People[%d] = %s, want %s", i, agg.People[i].Person.ID, id)
		}
	}

	a, ok := agg.Person("alice")
	if !ok {
		t.Fatal("missing alice")
	}
	assertAmount(t, "alice subtotal", a.Subtotal, "30")
	if len(a.Items) != 2 || a.Items[0].Item.ID != "pizza" || a.Items[0].Shares != 2 {
		t.Errorf("unexpected alice items: %+v", a.Items)
	}

	b, _ := agg.Person("bob")
	assertAmount(t, "bob subtotal", b.Subtotal, "22")

	byPerson := agg.PersonItems()
	assertAmount(t, "carol wine", byPerson["carol"]["wine"].Amount, "10")
	if byPerson["carol"]["wine"].Shares != 1 {
		t.Errorf("carol wine shares = %d, want 1", byPerson["carol"]["wine"].Shares)
	}
	if _, ok := byPerson["carol"]["pizza"]; ok {
		t.Error("carol should have no pizza share")
	}
}

func TestAggregateRepeatedItemIDAccumulates(t *testing.T) {
	items := []models.BillItem{
		item("beer", "Beer", "6.00", alice),
		item("beer", "Beer", "6.00", alice, bob),
	}

	agg := Aggregate(items, 2)
	a, _ := agg.Person("alice")
	if len(a.Items) != 1 {
		t.Fatalf("expected one merged item, got %d", len(a.Items))
	}
	if a.Items[0].Shares != 2 {
		t.Errorf("merged shares = %d, want 2", a.Items[0].Shares)
	}
	assertAmount(t, "merged amount", a.Items[0].Amount, "9")
}

func TestAggregateEmpty(t *testing.T) {
	agg := Aggregate(nil, 2)
	if len(agg.People) != 0 || len(agg.UnsplitItems) != 0 {
		t.Errorf("expected empty aggregation, got %+v", agg)
	}
	assertAmount(t, "SplitSubtotal", agg.SplitSubtotal, "0")
	assertAmount(t, "UnsplitSubtotal", agg.UnsplitSubtotal, "0")
	if _, ok := agg.Person("alice"); ok {
		t.Error("expected no person in empty aggregation")
	}
}

func TestDistributeAdjustments(t *testing.T) {
	tests := []struct {
		name            string
		items           []models.BillItem
		adjustments     []models.Adjustment
		wantDistributed bool
		wantShares      map[string]string
		wantUnsplit     string
	}{
		{
			name: "proportional tax",
			items: []models.BillItem{
				item("steak", "Steak", "20.00", alice),
				item("lobster", "Lobster", "80.00", bob),
			},
			adjustments:     []models.Adjustment{adjustment("tax", "Tax", "10.00")},
			wantDistributed: true,
			wantShares:      map[string]string{"alice": "2", "bob": "8"},
			wantUnsplit:     "0",
		},
		{
			name: "charges and discounts net out",
			items: []models.BillItem{
				item("steak", "Steak", "20.00", alice),
				item("lobster", "Lobster", "80.00", bob),
			},
			adjustments: []models.Adjustment{
				adjustment("svc", "Service", "10.00"),
				adjustment("voucher", "Voucher", "-15.00"),
			},
			wantDistributed: true,
			wantShares:      map[string]string{"alice": "-1", "bob": "-4"},
			wantUnsplit:     "0",
		},
		{
			name: "unsplit bucket takes its proportional part",
			items: []models.BillItem{
				item("steak", "Steak", "30.00", alice),
				item("pasta", "Pasta", "30.00", bob),
				item("fee", "Service Fee", "40.00"),
			},
			adjustments:     []models.Adjustment{adjustment("tax", "Tax", "10.00")},
			wantDistributed: true,
			wantShares:      map[string]string{"alice": "3", "bob": "3"},
			wantUnsplit:     "4",
		},
		{
			name: "rounding residue is kept",
			items: []models.BillItem{
				item("a", "A", "10.00", alice),
				item("b", "B", "10.00", bob),
				item("c", "C", "10.00", carol),
			},
			adjustments:     []models.Adjustment{adjustment("tax", "Tax", "1.00")},
			wantDistributed: true,
			wantShares:      map[string]string{"alice": "0.33", "bob": "0.34", "carol": "0.33"},
			wantUnsplit:     "0",
		},
		{
			name: "no adjustments",
			items: []models.BillItem{
				item("steak", "Steak", "20.00", alice),
			},
			wantDistributed: false,
			wantShares:      map[string]string{"alice": "0"},
			wantUnsplit:     "0",
		},
		{
			name: "zero split subtotal",
			items: []models.BillItem{
				item("fee", "Service Fee", "15.00"),
			},
			adjustments:     []models.Adjustment{adjustment("tax", "Tax", "1.50")},
			wantDistributed: false,
			wantShares:      map[string]string{},
			wantUnsplit:     "0",
		},
		{
			name: "negative split subtotal",
			items: []models.BillItem{
				item("promo", "Promo", "-5.00", alice),
			},
			adjustments:     []models.Adjustment{adjustment("tax", "Tax", "1.00")},
			wantDistributed: false,
			wantShares:      map[string]string{"alice": "0"},
			wantUnsplit:     "0",
		},
		{
			name: "unsplit credit outweighs split items",
			items: []models.BillItem{
				item("meal", "Meal", "10.00", alice),
				item("voucher", "Voucher", "-20.00"),
			},
			adjustments:     []models.Adjustment{adjustment("tax", "Tax", "1.00")},
			wantDistributed: false,
			wantShares:      map[string]string{"alice": "0"},
			wantUnsplit:     "0",
		},
		{
			name: "split items cancel out",
			items: []models.BillItem{
				item("meal", "Meal", "10.00", alice),
				item("refund", "Refund", "-10.00", bob),
			},
			adjustments:     []models.Adjustment{adjustment("tax", "Tax", "1.00")},
			wantDistributed: false,
			wantShares:      map[string]string{"alice": "0", "bob": "0"},
			wantUnsplit:     "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := Aggregate(tt.items, 2)
			dist := DistributeAdjustments(agg, tt.adjustments, 2)

			if dist.Distributed != tt.wantDistributed {
				t.Errorf("Distributed = %v, want %v", dist.Distributed, tt.wantDistributed)
			}
			for id, want := range tt.wantShares {
				assertAmount(t, id+" share", dist.ShareFor(id), want)
			}
			assertAmount(t, "unsplit share", dist.UnsplitShare, tt.wantUnsplit)
			assertAmount(t, "total adjustment", dist.TotalAdjustment, models.AdjustmentTotal(tt.adjustments).String())

			if dist.Distributed {
				assertAmount(t, "distributed total", dist.DistributedTotal(), dist.TotalAdjustment.String())
			} else {
				assertAmount(t, "distributed total", dist.DistributedTotal(), "0")
			}
		})
	}
}

func TestShareForUnknownPerson(t *testing.T) {
	dist := DistributeAdjustments(Aggregate(nil, 2), nil, 2)
	assertAmount(t, "unknown share", dist.ShareFor("nobody"), "0")
}

func TestSummarizeScenarios(t *testing.T) {
	t.Run("A equal split", func(t *testing.T) {
		s := Summarize(bill([]models.BillItem{item("pizza", "Pizza", "30.00", alice, bob, carol)}, nil))

		for _, id := range []string{"alice", "bob", "carol"} {
			p, ok := s.Person(id)
			if !ok {
				t.Fatalf("missing %s", id)
			}
			assertAmount(t, id+" subtotal", p.Subtotal, "10")
			assertAmount(t, id+" adjusted", p.AdjustedTotal, "10")
		}
		assertAmount(t, "SplitTotal", s.SplitTotal, "30")
		assertAmount(t, "UnsplitTotal", s.UnsplitTotal, "0")
		if s.HasUnsplitItems() {
			t.Error("expected no unsplit items")
		}
	})

	t.Run("B weighted shares", func(t *testing.T) {
		s := Summarize(bill([]models.BillItem{item("pizza", "Pizza", "30.00", alice, alice, bob)}, nil))

		a, _ := s.Person("alice")
		b, _ := s.Person("bob")
		assertAmount(t, "alice", a.AdjustedTotal, "20")
		assertAmount(t, "bob", b.AdjustedTotal, "10")
		if a.Items[0].Shares != 2 || b.Items[0].Shares != 1 {
			t.Errorf("unexpected share counts: alice=%d bob=%d", a.Items[0].Shares, b.Items[0].Shares)
		}
	})

	t.Run("C unsplit item", func(t *testing.T) {
		s := Summarize(bill([]models.BillItem{item("fee", "Service Fee", "15.00")}, nil))

		if len(s.People) != 0 {
			t.Errorf("expected no people, got %d", len(s.People))
		}
		assertAmount(t, "UnsplitTotal", s.UnsplitTotal, "15")
		assertAmount(t, "SplitTotal", s.SplitTotal, "0")
		if s.UnsplitCount != 1 || s.UnsplitItems[0].ID != "fee" {
			t.Errorf("unexpected unsplit items: %+v", s.UnsplitItems)
		}
	})

	t.Run("D proportional adjustment", func(t *testing.T) {
		s := Summarize(bill(
			[]models.BillItem{
				item("steak", "Steak", "20.00", alice),
				item("lobster", "Lobster", "80.00", bob),
			},
			[]models.Adjustment{adjustment("tax", "Tax", "10.00")},
		))

		a, _ := s.Person("alice")
		b, _ := s.Person("bob")
		assertAmount(t, "alice share", a.AdjustmentShare, "2")
		assertAmount(t, "bob share", b.AdjustmentShare, "8")
		assertAmount(t, "alice adjusted", a.AdjustedTotal, "22")
		assertAmount(t, "bob adjusted", b.AdjustedTotal, "88")
		assertAmount(t, "GrandTotal", s.GrandTotal, "110")
		if !s.Reconciled() {
			t.Errorf("expected reconciled summary, discrepancy %s", s.Discrepancy)
		}
	})

	t.Run("E negative item is not clamped", func(t *testing.T) {
		s := Summarize(bill(
			[]models.BillItem{
				item("promo", "Promo", "-5.00", alice),
				item("feast", "Feast", "25.00", bob),
			},
			[]models.Adjustment{adjustment("tax", "Tax", "2.00")},
		))

		a, _ := s.Person("alice")
		assertAmount(t, "alice subtotal", a.Subtotal, "-5")
		assertAmount(t, "alice share", a.AdjustmentShare, "-0.5")
		assertAmount(t, "alice adjusted", a.AdjustedTotal, "-5.5")

		b, _ := s.Person("bob")
		assertAmount(t, "bob adjusted", b.AdjustedTotal, "27.5")
	})

	t.Run("E negative item alone", func(t *testing.T) {
		s := Summarize(bill(
			[]models.BillItem{item("promo", "Promo", "-5.00", alice)},
			[]models.Adjustment{adjustment("tax", "Tax", "1.00")},
		))

		a, _ := s.Person("alice")
		assertAmount(t, "alice adjusted", a.AdjustedTotal, "-5")
		if s.AdjustmentsDistributed {
			t.Error("expected no distribution for a negative split subtotal")
		}
		assertAmount(t, "Discrepancy", s.Discrepancy, "1")
	})
}

func TestSummarizeUnsplitReconciliation(t *testing.T) {
	s := Summarize(bill(
		[]models.BillItem{
			item("steak", "Steak", "30.00", alice),
			item("pasta", "Pasta", "30.00", bob),
			item("fee", "Service Fee", "40.00"),
		},
		[]models.Adjustment{
			adjustment("tax", "Tax", "8.00"),
			adjustment("svc", "Service", "2.00"),
		},
	))

	assertAmount(t, "UnsplitAdjustmentShare", s.UnsplitAdjustmentShare, "4")
	assertAmount(t, "UnsplitAdjustedTotal", s.UnsplitAdjustedTotal, "44")
	assertAmount(t, "AdjustedTotal", s.AdjustedTotal(), "110")
	assertAmount(t, "Discrepancy", s.Discrepancy, "0")
}

func TestSummarizeDegenerateBills(t *testing.T) {
	t.Run("no items", func(t *testing.T) {
		s := Summarize(bill(nil, nil))
		if len(s.People) != 0 || s.UnsplitCount != 0 {
			t.Errorf("expected empty summary, got %+v", s)
		}
		assertAmount(t, "SplitTotal", s.SplitTotal, "0")
		assertAmount(t, "UnsplitTotal", s.UnsplitTotal, "0")
		assertAmount(t, "GrandTotal", s.GrandTotal, "0")
	})

	t.Run("adjustments without items", func(t *testing.T) {
		s := Summarize(bill(nil, []models.Adjustment{adjustment("tax", "Tax", "3.00")}))
		assertAmount(t, "UnsplitAdjustmentShare", s.UnsplitAdjustmentShare, "0")
		assertAmount(t, "GrandTotal", s.GrandTotal, "3")
	})

	t.Run("nobody assigned", func(t *testing.T) {
		s := Summarize(bill(
			[]models.BillItem{item("a", "A", "10.00"), item("b", "B", "5.00")},
			[]models.Adjustment{adjustment("tax", "Tax", "1.50")},
		))
		assertAmount(t, "UnsplitTotal", s.UnsplitTotal, "15")
		assertAmount(t, "UnsplitAdjustedTotal", s.UnsplitAdjustedTotal, "15")
		if s.UnsplitCount != 2 {
			t.Errorf("UnsplitCount = %d, want 2", s.UnsplitCount)
		}
	})
}

func TestSummarizeStaleTotals(t *testing.T) {
	b := bill([]models.BillItem{item("pizza", "Pizza", "30.00", alice)}, nil)
	b.Totals.GrandTotal = amt("35.00")

	s := Summarize(b)
	assertAmount(t, "GrandTotal", s.GrandTotal, "35")
	assertAmount(t, "Discrepancy", s.Discrepancy, "5")
	if s.Reconciled() {
		t.Error("expected stale totals to be flagged")
	}
}

func TestSummarizeDisplayCurrency(t *testing.T) {
	b := bill([]models.BillItem{item("ramen", "Ramen", "1000", alice, bob, carol)}, nil)
	b.Currency = models.Currency{Original: "JPY", Target: "EUR"}

	s := Summarize(b)
	if s.DisplayCurrency != "EUR" {
		t.Errorf("DisplayCurrency = %s, want EUR", s.DisplayCurrency)
	}
	if s.Scale != 0 {
		t.Errorf("Scale = %d, want 0", s.Scale)
	}
	a, _ := s.Person("alice")
	assertAmount(t, "alice", a.Subtotal, "334")
}

func TestSummarizeDoesNotMutateBill(t *testing.T) {
	b := bill(
		[]models.BillItem{item("pizza", "Pizza", "30.00", alice, alice, bob), item("fee", "Fee", "5.00")},
		[]models.Adjustment{adjustment("tax", "Tax", "3.00")},
	)
	before := b.Clone()

	Summarize(b)

	if !reflect.DeepEqual(before, b.Clone()) {
		t.Error("Summarize mutated its input")
	}
}

func TestSummaryIsDetachedFromBill(t *testing.T) {
	b := bill(
		[]models.BillItem{item("pizza", "Pizza", "30.00", alice, bob, carol), item("fee", "Fee", "5.00")},
		[]models.Adjustment{adjustment("tax", "Tax", "3.00"), adjustment("tip", "Tip", "2.00")},
	)
	want := Summarize(b.Clone())
	got := Summarize(b)

	if err := b.UnassignPerson("pizza", "bob"); err != nil {
		t.Fatalf("UnassignPerson failed: %v", err)
	}
	if err := b.RemoveAdjustment("tax"); err != nil {
		t.Fatalf("RemoveAdjustment failed: %v", err)
	}
	if err := b.RemoveItem("pizza"); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}

	if !reflect.DeepEqual(want, got) {
		t.Errorf("summary changed after editing the bill:\n%+v\n%+v", want, got)
	}
	carolSummary, _ := got.Person("carol")
	if people := carolSummary.Items[0].Item.SelectedPeople; len(people) != 3 || people[1].ID != "bob" {
		t.Errorf("summary item assignments changed: %+v", people)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	b := bill(
		[]models.BillItem{
			item("pizza", "Pizza", "31.00", alice, bob, carol),
			item("wine", "Wine", "18.50", bob, bob, carol),
			item("fee", "Fee", "4.25"),
		},
		[]models.Adjustment{adjustment("tax", "Tax", "5.37"), adjustment("disc", "Discount", "-2.00")},
	)

	first := Summarize(b)
	second := Summarize(b)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Summarize is not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestWithNames(t *testing.T) {
	s := Summarize(bill([]models.BillItem{item("pizza", "Pizza", "30.00", alice, bob)}, nil))
	renamed := s.WithNames(NewPeopleIndex([]models.Person{{ID: "alice", Name: "Alice Smith"}}))

	a, _ := renamed.Person("alice")
	b, _ := renamed.Person("bob")
	if a.Person.Name != "Alice Smith" {
		t.Errorf("alice name = %q", a.Person.Name)
	}
	if b.Person.Name != "Bob" {
		t.Errorf("bob name = %q, want name from bill", b.Person.Name)
	}

	orig, _ := s.Person("alice")
	if orig.Person.Name != "Alice" {
		t.Error("WithNames modified the original summary")
	}
}

// randomBill builds a bill with random signed amounts and random (possibly
// duplicated, possibly empty) assignments.
func randomBill(r *rand.Rand) models.Bill {
	people := []models.Person{alice, bob, carol, {ID: "dan", Name: "Dan"}}

	var items []models.BillItem
	for i := 0; i < 1+r.Intn(8); i++ {
		cents := int64(r.Intn(20000) - 2000)
		var selected []models.Person
		for j := 0; j < r.Intn(6); j++ {
			selected = append(selected, people[r.Intn(len(people))])
		}
		items = append(items, models.BillItem{
			ID:             fmt.Sprintf("item-%d", i),
			Amount:         decimal.New(cents, -2),
			SelectedPeople: selected,
		})
	}

	var adjustments []models.Adjustment
	for i := 0; i < r.Intn(4); i++ {
		cents := int64(r.Intn(3000) - 1000)
		adjustments = append(adjustments, models.Adjustment{
			ID:     fmt.Sprintf("adj-%d", i),
			Amount: decimal.New(cents, -2),
		})
	}

	return bill(items, adjustments)
}

func TestConservationProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for n := 0; n < 500; n++ {
		b := randomBill(r)

		for _, it := range b.Items {
			alloc := AllocateItem(it, 2)
			if alloc.Unsplit {
				continue
			}
			if !alloc.Allocated().Equal(it.Amount) {
				t.Fatalf("bill %d item %s: allocated %s, want %s", n, it.ID, alloc.Allocated(), it.Amount)
			}
		}

		agg := Aggregate(b.Items, 2)
		if !agg.Subtotal().Equal(models.SubTotal(b.Items)) {
			t.Fatalf("bill %d: split %s + unsplit %s != items %s",
				n, agg.SplitSubtotal, agg.UnsplitSubtotal, models.SubTotal(b.Items))
		}

		dist := DistributeAdjustments(agg, b.Adjustments, 2)
		if dist.Distributed {
			if !dist.DistributedTotal().Equal(money.Sum(dist.TotalAdjustment)) {
				t.Fatalf("bill %d: distributed %s, want %s", n, dist.DistributedTotal(), dist.TotalAdjustment)
			}
		} else if !dist.DistributedTotal().IsZero() {
			t.Fatalf("bill %d: degenerate distribution produced %s", n, dist.DistributedTotal())
		}

		s := Summarize(b)
		if dist.Distributed && !s.Reconciled() {
			t.Fatalf("bill %d: summary not reconciled, discrepancy %s", n, s.Discrepancy)
		}
	}
}
