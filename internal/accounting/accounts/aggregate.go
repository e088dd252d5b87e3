package accounts

import (
	"sort"

	"github.com/akount/akount/internal/money"
)

// GroupByCurrency partitions accounts by currency and sums each group's
// balances without conversion. Groups are ordered by the magnitude of their
// total, largest first, so heavy debt ranks alongside large holdings; ties
// keep the order in which each currency first appeared.
func GroupByCurrency(accounts []Account) []CurrencyGroup {
	groups := make([]CurrencyGroup, 0)
	index := make(map[money.Currency]int)
	for _, acct := range accounts {
		i, ok := index[acct.Currency]
		if !ok {
			i = len(groups)
			index[acct.Currency] = i
			groups = append(groups, CurrencyGroup{Currency: acct.Currency})
		}
		groups[i].Accounts = append(groups[i].Accounts, acct)
		groups[i].TotalBalance = groups[i].TotalBalance.Add(acct.CurrentBalance)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].TotalBalance.Abs().Cmp(groups[b].TotalBalance.Abs()) > 0
	})
	return groups
}
