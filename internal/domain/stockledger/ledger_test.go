package stockledger_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivaanlabs/gstbill-api/internal/domain/stockledger"
)

func d(value string, days int) stockledger.Event {
	return stockledger.Event{
		Date:     time.Date(2024, 1, days, 0, 0, 0, 0, time.UTC),
		Quantity: decimal.RequireFromString(value),
	}
}

func qty(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// TestReconstruct_ConcreteScenario is the reference scenario: current stock
// 50, one purchase of 30 on Jan 5, one sale of 10 on Jan 10. The implied
// initial stock must be 30 and the two rows must chain 30→60→50.
func TestReconstruct_ConcreteScenario(t *testing.T) {
	purchases := []stockledger.Event{{
		Date:      time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Quantity:  qty(30),
		Reference: "PO-104",
	}}
	sales := []stockledger.Event{{
		Date:      time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Quantity:  qty(10),
		Reference: "INV-0042",
	}}

	ledger := stockledger.Reconstruct(qty(50), purchases, sales, stockledger.Options{})

	assert.True(t, ledger.InitialStock.Equal(qty(30)), "initial = 50 - (30-10) = 30")
	assert.True(t, ledger.Opening.Equal(qty(30)))
	require.Len(t, ledger.Rows, 2)

	first := ledger.Rows[0]
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, []string{"PO-104"}, first.References)
	assert.True(t, first.Opening.Equal(qty(30)))
	assert.True(t, first.Purchased.Equal(qty(30)))
	assert.True(t, first.Sold.IsZero())
	assert.True(t, first.Closing.Equal(qty(60)))

	second := ledger.Rows[1]
	assert.Equal(t, []string{"INV-0042"}, second.References)
	assert.True(t, second.Opening.Equal(qty(60)))
	assert.True(t, second.Sold.Equal(qty(10)))
	assert.True(t, second.Closing.Equal(qty(50)), "final closing must equal current quantity")
}

// TestReconstruct_BalanceContinuity checks that over an unfiltered history
// every row's closing equals the next row's opening, and the last closing
// equals the current snapshot.
func TestReconstruct_BalanceContinuity(t *testing.T) {
	purchases := []stockledger.Event{d("12", 3), d("7", 8), d("20", 15), d("5", 21)}
	sales := []stockledger.Event{d("9", 10), d("14", 18), d("3", 25)}

	// current = initial(100) + 44 purchased - 26 sold
	current := qty(118)
	ledger := stockledger.Reconstruct(current, purchases, sales, stockledger.Options{})

	require.Len(t, ledger.Rows, 7)
	for i := 0; i < len(ledger.Rows)-1; i++ {
		assert.True(t, ledger.Rows[i].Closing.Equal(ledger.Rows[i+1].Opening),
			"closing of row %d must equal opening of row %d", i, i+1)
	}
	last := ledger.Rows[len(ledger.Rows)-1]
	assert.True(t, last.Closing.Equal(current))
	assert.True(t, ledger.InitialStock.Equal(qty(100)))
}

// TestReconstruct_EmptyHistory: with no events the ledger is empty and the
// implied initial stock equals the current quantity.
func TestReconstruct_EmptyHistory(t *testing.T) {
	ledger := stockledger.Reconstruct(qty(25), nil, nil, stockledger.Options{})

	assert.Empty(t, ledger.Rows)
	assert.True(t, ledger.InitialStock.Equal(qty(25)))
	assert.True(t, ledger.Opening.Equal(qty(25)))
}

// TestReconstruct_OrderIndependence: shuffling the input slices must not
// change the output (sorting happens internally).
func TestReconstruct_OrderIndependence(t *testing.T) {
	purchases := []stockledger.Event{d("4", 2), d("6", 9), d("11", 16), d("2", 23)}
	sales := []stockledger.Event{d("5", 6), d("8", 13), d("3", 27)}
	reference := stockledger.Reconstruct(qty(40), purchases, sales, stockledger.Options{})

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		p := append([]stockledger.Event(nil), purchases...)
		s := append([]stockledger.Event(nil), sales...)
		rng.Shuffle(len(p), func(a, b int) { p[a], p[b] = p[b], p[a] })
		rng.Shuffle(len(s), func(a, b int) { s[a], s[b] = s[b], s[a] })

		shuffled := stockledger.Reconstruct(qty(40), p, s, stockledger.Options{})
		assert.Equal(t, reference, shuffled)
	}
}

// TestReconstruct_OrderIndependenceSameDay: two purchases and two sales on
// a shared date must come out in the same row order no matter how the
// input slices are arranged.
func TestReconstruct_OrderIndependenceSameDay(t *testing.T) {
	jan10 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	purchases := []stockledger.Event{
		{Date: jan10, Quantity: qty(5), Reference: "PO-A"},
		{Date: jan10, Quantity: qty(3), Reference: "PO-B"},
	}
	sales := []stockledger.Event{
		{Date: jan10, Quantity: qty(2), Reference: "INV-0001"},
		{Date: jan10, Quantity: qty(4), Reference: "INV-0002"},
	}
	reference := stockledger.Reconstruct(qty(2), purchases, sales, stockledger.Options{})

	require.Len(t, reference.Rows, 4)
	assert.Equal(t, "PO-A", reference.Rows[0].References[0])
	assert.Equal(t, "PO-B", reference.Rows[1].References[0])

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 10; i++ {
		p := append([]stockledger.Event(nil), purchases...)
		s := append([]stockledger.Event(nil), sales...)
		rng.Shuffle(len(p), func(a, b int) { p[a], p[b] = p[b], p[a] })
		rng.Shuffle(len(s), func(a, b int) { s[a], s[b] = s[b], s[a] })

		shuffled := stockledger.Reconstruct(qty(2), p, s, stockledger.Options{})
		assert.Equal(t, reference, shuffled)
	}
}

// TestReconstruct_WindowExclusion: an event one day before the window start
// is excluded from the rows but still shifts the window's opening balance.
func TestReconstruct_WindowExclusion(t *testing.T) {
	purchases := []stockledger.Event{d("30", 5)}
	sales := []stockledger.Event{d("10", 10)}

	ledger := stockledger.Reconstruct(qty(50), purchases, sales, stockledger.Options{
		From: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
	})

	require.Len(t, ledger.Rows, 1, "the Jan 5 purchase must not appear as a row")
	assert.True(t, ledger.Opening.Equal(qty(60)), "opening must include the excluded purchase")
	assert.True(t, ledger.Rows[0].Sold.Equal(qty(10)))
	assert.True(t, ledger.Rows[0].Closing.Equal(qty(50)))
}

// TestReconstruct_WindowBeforeAnyEvent: a window entirely before recorded
// history yields no rows and an opening equal to the initial stock.
func TestReconstruct_WindowBeforeAnyEvent(t *testing.T) {
	purchases := []stockledger.Event{d("30", 20)}
	sales := []stockledger.Event{d("10", 25)}

	ledger := stockledger.Reconstruct(qty(50), purchases, sales, stockledger.Options{
		From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	})

	assert.Empty(t, ledger.Rows)
	assert.True(t, ledger.InitialStock.Equal(qty(30)))
	assert.True(t, ledger.Opening.Equal(qty(30)))
}

// TestReconstruct_InclusiveBounds: events dated exactly on From and To are
// part of the window.
func TestReconstruct_InclusiveBounds(t *testing.T) {
	purchases := []stockledger.Event{d("5", 10)}
	sales := []stockledger.Event{d("2", 20)}

	ledger := stockledger.Reconstruct(qty(3), purchases, sales, stockledger.Options{
		From: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
	})

	require.Len(t, ledger.Rows, 2)
	assert.True(t, ledger.Rows[0].Purchased.Equal(qty(5)))
	assert.True(t, ledger.Rows[1].Sold.Equal(qty(2)))
}

// TestReconstruct_SameDayPurchaseBeforeSale: in per-event mode a purchase
// and a sale on the same day stay as two rows, purchase first.
func TestReconstruct_SameDayPurchaseBeforeSale(t *testing.T) {
	purchases := []stockledger.Event{{
		Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Quantity: qty(8), Reference: "PO-9",
	}}
	sales := []stockledger.Event{{
		Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Quantity: qty(3), Reference: "INV-17",
	}}

	ledger := stockledger.Reconstruct(qty(5), purchases, sales, stockledger.Options{})

	require.Len(t, ledger.Rows, 2)
	assert.True(t, ledger.Rows[0].Purchased.Equal(qty(8)), "purchase credited before sale on a shared day")
	assert.True(t, ledger.Rows[0].Opening.Equal(qty(0)))
	assert.True(t, ledger.Rows[0].Closing.Equal(qty(8)))
	assert.True(t, ledger.Rows[1].Sold.Equal(qty(3)))
	assert.True(t, ledger.Rows[1].Closing.Equal(qty(5)))
}

// TestReconstruct_PerDayAggregation: per-day mode nets all same-day events
// into one row with combined references.
func TestReconstruct_PerDayAggregation(t *testing.T) {
	day10 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	purchases := []stockledger.Event{
		{Date: day10, Quantity: qty(8), Reference: "PO-9"},
		{Date: day10, Quantity: qty(2), Reference: "PO-10"},
	}
	sales := []stockledger.Event{
		{Date: day10, Quantity: qty(3), Reference: "INV-17"},
		{Date: day10.AddDate(0, 0, 2), Quantity: qty(4), Reference: "INV-18"},
	}

	ledger := stockledger.Reconstruct(qty(3), purchases, sales, stockledger.Options{
		Granularity: stockledger.PerDay,
	})

	require.Len(t, ledger.Rows, 2)
	first := ledger.Rows[0]
	assert.Equal(t, []string{"PO-9", "PO-10", "INV-17"}, first.References)
	assert.True(t, first.Purchased.Equal(qty(10)))
	assert.True(t, first.Sold.Equal(qty(3)))
	assert.True(t, first.Opening.Equal(qty(0)))
	assert.True(t, first.Closing.Equal(qty(7)))
	assert.True(t, ledger.Rows[1].Closing.Equal(qty(3)))
}

// TestReconstruct_NegativeBalancesNotClamped: when the snapshot disagrees
// with the event log the reconstruction may pass through negative figures;
// they must be reported as-is.
func TestReconstruct_NegativeBalancesNotClamped(t *testing.T) {
	sales := []stockledger.Event{d("10", 5)}

	ledger := stockledger.Reconstruct(qty(-3), nil, sales, stockledger.Options{})

	assert.True(t, ledger.InitialStock.Equal(qty(7)))
	require.Len(t, ledger.Rows, 1)
	assert.True(t, ledger.Rows[0].Closing.Equal(qty(-3)))
}

// TestReconstruct_TimeOfDayIgnored: timestamps inside a day must not affect
// grouping or window membership.
func TestReconstruct_TimeOfDayIgnored(t *testing.T) {
	purchases := []stockledger.Event{{
		Date:     time.Date(2024, 1, 10, 23, 45, 0, 0, time.UTC),
		Quantity: qty(6),
	}}
	sales := []stockledger.Event{{
		Date:     time.Date(2024, 1, 10, 1, 5, 0, 0, time.UTC),
		Quantity: qty(2),
	}}

	ledger := stockledger.Reconstruct(qty(4), purchases, sales, stockledger.Options{
		From:        time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
		Granularity: stockledger.PerDay,
	})

	require.Len(t, ledger.Rows, 1)
	assert.True(t, ledger.Rows[0].Purchased.Equal(qty(6)))
	assert.True(t, ledger.Rows[0].Sold.Equal(qty(2)))
}

func TestLedgerPage(t *testing.T) {
	purchases := []stockledger.Event{d("1", 1), d("1", 2), d("1", 3), d("1", 4), d("1", 5)}
	ledger := stockledger.Reconstruct(qty(5), purchases, nil, stockledger.Options{})
	require.Len(t, ledger.Rows, 5)

	page := ledger.Page(2, 2)
	require.Len(t, page, 2)
	assert.Equal(t, ledger.Rows[2], page[0])
	assert.Equal(t, ledger.Rows[3], page[1])

	assert.Len(t, ledger.Page(2, 4), 1, "trailing partial page")
	assert.Empty(t, ledger.Page(2, 10), "offset past the end")
	assert.Len(t, ledger.Page(0, 1), 4, "limit<=0 means rest of the rows")
}
