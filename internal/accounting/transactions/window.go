package transactions

import "time"

// Window is a half-open date range [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// MonthToDate spans from the first day of asOf's month through the end of asOf's day.
// The calendar date is read in asOf's location and the bounds are UTC midnights,
// which is how posting dates come back from the database.
func MonthToDate(asOf time.Time) Window {
	y, m, d := asOf.Date()
	return Window{
		From: time.Date(y, m, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC),
	}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// Filter keeps the transactions dated inside the window.
func (w Window) Filter(txns []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txns))
	for _, t := range txns {
		if w.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}
