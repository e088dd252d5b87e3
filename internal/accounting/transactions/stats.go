package transactions

// ComputeStats splits the window into income and expense totals and counts
// unreconciled lines. Zero amounts count toward neither total but still count
// in TotalCount. No date filtering happens here; callers pass the window.
func ComputeStats(txns []Transaction) Stats {
	var s Stats
	for _, t := range txns {
		if t.Amount.IsPositive() {
			s.IncomeMTD = s.IncomeMTD.Add(t.Amount)
		} else {
			s.ExpenseMTD = s.ExpenseMTD.Add(t.Amount.Abs())
		}
		if !t.Reconciled() {
			s.UnreconciledCount++
		}
	}
	s.TotalCount = len(txns)
	return s
}
