package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akount/akount/internal/money"
)

func acct(name string, balance int64, cur money.Currency) Account {
	return Account{Name: name, CurrentBalance: money.FromInt(balance), Currency: cur}
}

func TestGroupByCurrencySumsWithinGroup(t *testing.T) {
	groups := GroupByCurrency([]Account{
		acct("chequing", 100000, money.CAD),
		acct("visa", -25000, money.CAD),
	})
	require.Len(t, groups, 1)
	assert.Equal(t, money.CAD, groups[0].Currency)
	assert.Equal(t, money.FromInt(75000), groups[0].TotalBalance)
	assert.Len(t, groups[0].Accounts, 2)
}

func TestGroupByCurrencyOrdersByMagnitude(t *testing.T) {
	groups := GroupByCurrency([]Account{
		acct("cad", 50000, money.CAD),
		acct("usd loan", -300000, money.USD),
		acct("eur", 100000, money.EUR),
	})
	order := make([]money.Currency, 0, len(groups))
	for _, g := range groups {
		order = append(order, g.Currency)
	}
	assert.Equal(t, []money.Currency{money.USD, money.EUR, money.CAD}, order)
}

func TestGroupByCurrencyTiesKeepFirstOccurrence(t *testing.T) {
	groups := GroupByCurrency([]Account{
		acct("a", 500, money.GBP),
		acct("b", -500, money.JPY),
		acct("c", 0, money.GBP),
		acct("d", 500, money.AUD),
	})
	require.Len(t, groups, 3)
	assert.Equal(t, money.GBP, groups[0].Currency)
	assert.Equal(t, money.JPY, groups[1].Currency)
	assert.Equal(t, money.AUD, groups[2].Currency)
}

func TestGroupByCurrencyEmpty(t *testing.T) {
	groups := GroupByCurrency(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestGroupByCurrencyDoesNotMutateInput(t *testing.T) {
	in := []Account{acct("a", 1, money.CAD), acct("b", 2, money.USD)}
	_ = GroupByCurrency(in)
	assert.Equal(t, "a", in[0].Name)
	assert.Equal(t, money.FromInt(1), in[0].CurrentBalance)
}
