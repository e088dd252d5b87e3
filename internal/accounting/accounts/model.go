package accounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/akount/akount/internal/money"
)

// AccountType enumerates CoA categories.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// Account is a ledger account owned by an entity. CurrentBalance is in the
// minor unit of Currency.
type Account struct {
	ID             uuid.UUID      `json:"id"`
	EntityID       uuid.UUID      `json:"entityId"`
	Name           string         `json:"name"`
	Type           AccountType    `json:"type"`
	Currency       money.Currency `json:"currency"`
	CurrentBalance money.Cents    `json:"currentBalance"`
	IsActive       bool           `json:"isActive"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// CurrencyGroup rolls up the accounts sharing one currency.
type CurrencyGroup struct {
	Currency     money.Currency `json:"currency"`
	Accounts     []Account      `json:"accounts"`
	TotalBalance money.Cents    `json:"totalBalance"`
}

// CreateInput carries a validated account creation request.
type CreateInput struct {
	EntityID       uuid.UUID
	Name           string
	Type           AccountType
	Currency       money.Currency
	OpeningBalance money.Cents
}
