// Package transactions covers imported bank transactions, their month-to-date
// statistics and reconciliation against journal entries.
package transactions

import (
	"time"

	"github.com/google/uuid"

	"github.com/akount/akount/internal/money"
)

// Transaction is a bank line. Amount is signed: positive is income, negative is expense.
type Transaction struct {
	ID             uuid.UUID      `json:"id"`
	EntityID       uuid.UUID      `json:"entityId"`
	AccountID      uuid.UUID      `json:"accountId"`
	Date           time.Time      `json:"date"`
	Description    string         `json:"description"`
	Amount         money.Cents    `json:"amount"`
	Currency       money.Currency `json:"currency"`
	JournalEntryID *string        `json:"journalEntryId,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// Reconciled reports whether the line is linked to a journal entry. A nil or
// empty id both mean unreconciled.
func (t Transaction) Reconciled() bool {
	return t.JournalEntryID != nil && *t.JournalEntryID != ""
}

// Stats summarises a caller-chosen window of transactions.
type Stats struct {
	IncomeMTD         money.Cents `json:"incomeMTD"`
	ExpenseMTD        money.Cents `json:"expenseMTD"`
	UnreconciledCount int         `json:"unreconciledCount"`
	TotalCount        int         `json:"totalCount"`
}

// ImportLine is one user-supplied line of an import batch. Amount is free
// text as typed, e.g. "$1,234.56" or "-45.10".
type ImportLine struct {
	AccountID   uuid.UUID
	Date        time.Time
	Description string
	Amount      string
}

// ImportResult reports the outcome of an import batch.
type ImportResult struct {
	Imported []Transaction `json:"imported"`
	Rejected []Rejection   `json:"rejected"`
}

// Rejection explains why an import line was skipped.
type Rejection struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}
