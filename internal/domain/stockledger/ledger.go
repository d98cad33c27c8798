// Package stockledger reconstructs a chronological opening/closing stock
// ledger for a product from its current on-hand snapshot and its full
// history of purchase (stock in) and sale (stock out) events.
//
// The computation is pure and synchronous: callers fetch the snapshot and
// both event lists first and only invoke Reconstruct once all three loaded.
// Precondition: the snapshot already reflects every recorded event. When it
// does not, the drift is absorbed into InitialStock and exposed to the
// caller rather than silently corrected; closing balances are never clamped
// at zero, so an inconsistent history may legitimately show negative
// intermediate figures.
package stockledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Event is a dated stock change with a reference label (supplier bill
// number for purchases, invoice number for sales). Quantity is positive.
type Event struct {
	Date      time.Time
	Quantity  decimal.Decimal
	Reference string
}

// Granularity selects how the ledger groups events.
type Granularity int

const (
	// PerEvent emits one row per purchase or sale. Purchases sort before
	// sales on a shared day, so stock is credited before it is debited.
	PerEvent Granularity = iota
	// PerDay aggregates all purchases and sales of a calendar day into a
	// single row with combined references.
	PerDay
)

// Options restricts and shapes the reconstruction. A zero From or To means
// unbounded on that side; both bounds are inclusive.
type Options struct {
	From        time.Time
	To          time.Time
	Granularity Granularity
}

// Row is one ledger line: opening balance, the day's (or event's) purchased
// and sold quantities, and the resulting closing balance.
type Row struct {
	Date       time.Time
	References []string
	Opening    decimal.Decimal
	Purchased  decimal.Decimal
	Sold       decimal.Decimal
	Closing    decimal.Decimal
}

// Ledger is the reconstructed report.
//
// InitialStock is the implied stock level before any recorded event:
// current − (Σpurchased − Σsold) over the full history, independent of any
// window. Opening is the balance at the window start (equals InitialStock
// when the window is unbounded on the left).
type Ledger struct {
	Rows         []Row
	InitialStock decimal.Decimal
	Opening      decimal.Decimal
}

type event struct {
	Event
	sale bool
}

// Reconstruct builds the ledger for a product given its current on-hand
// quantity and its complete purchase and sale histories, in any order.
// Output is deterministic: events are sorted internally by day, purchases
// before sales on equal days.
func Reconstruct(current decimal.Decimal, purchases, sales []Event, opts Options) Ledger {
	var totalPurchased, totalSold decimal.Decimal
	for _, p := range purchases {
		totalPurchased = totalPurchased.Add(p.Quantity)
	}
	for _, s := range sales {
		totalSold = totalSold.Add(s.Quantity)
	}
	initial := current.Sub(totalPurchased.Sub(totalSold))

	opening := initial
	if !opts.From.IsZero() {
		from := day(opts.From)
		for _, p := range purchases {
			if day(p.Date).Before(from) {
				opening = opening.Add(p.Quantity)
			}
		}
		for _, s := range sales {
			if day(s.Date).Before(from) {
				opening = opening.Sub(s.Quantity)
			}
		}
	}

	events := make([]event, 0, len(purchases)+len(sales))
	for _, p := range purchases {
		if inWindow(p.Date, opts) {
			events = append(events, event{Event: p, sale: false})
		}
	}
	for _, s := range sales {
		if inWindow(s.Date, opts) {
			events = append(events, event{Event: s, sale: true})
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		di, dj := day(events[i].Date), day(events[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		// credit before debit on a shared day
		if events[i].sale != events[j].sale {
			return !events[i].sale
		}
		// same day, same kind: order by reference then quantity so the
		// output does not depend on input slice order
		if events[i].Reference != events[j].Reference {
			return events[i].Reference < events[j].Reference
		}
		return events[i].Quantity.LessThan(events[j].Quantity)
	})

	ledger := Ledger{InitialStock: initial, Opening: opening}
	running := opening
	switch opts.Granularity {
	case PerDay:
		for start := 0; start < len(events); {
			end := start
			d := day(events[start].Date)
			for end < len(events) && day(events[end].Date).Equal(d) {
				end++
			}
			row := Row{Date: d, Opening: running}
			for _, e := range events[start:end] {
				if e.Reference != "" {
					row.References = append(row.References, e.Reference)
				}
				if e.sale {
					row.Sold = row.Sold.Add(e.Quantity)
				} else {
					row.Purchased = row.Purchased.Add(e.Quantity)
				}
			}
			row.Closing = row.Opening.Add(row.Purchased).Sub(row.Sold)
			running = row.Closing
			ledger.Rows = append(ledger.Rows, row)
			start = end
		}
	default: // PerEvent
		for _, e := range events {
			row := Row{Date: day(e.Date), Opening: running}
			if e.Reference != "" {
				row.References = []string{e.Reference}
			}
			if e.sale {
				row.Sold = e.Quantity
			} else {
				row.Purchased = e.Quantity
			}
			row.Closing = row.Opening.Add(row.Purchased).Sub(row.Sold)
			running = row.Closing
			ledger.Rows = append(ledger.Rows, row)
		}
	}
	return ledger
}

// Page returns the rows for one page of the ledger, chronological order
// preserved. Offset past the end yields an empty slice.
func (l Ledger) Page(limit, offset int) []Row {
	if offset < 0 || offset >= len(l.Rows) {
		return []Row{}
	}
	end := offset + limit
	if limit <= 0 || end > len(l.Rows) {
		end = len(l.Rows)
	}
	return l.Rows[offset:end]
}

func inWindow(t time.Time, opts Options) bool {
	d := day(t)
	if !opts.From.IsZero() && d.Before(day(opts.From)) {
		return false
	}
	if !opts.To.IsZero() && d.After(day(opts.To)) {
		return false
	}
	return true
}

// day truncates to calendar-day precision in UTC so that comparisons and
// grouping ignore the time-of-day component of stored timestamps.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
