package transactions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akount/akount/internal/accounting/accounts"
	"github.com/akount/akount/internal/money"
	"github.com/akount/akount/internal/platform/cache"
)

// AccountLookup resolves the account a line is imported into.
type AccountLookup interface {
	Get(ctx context.Context, id uuid.UUID) (accounts.Account, error)
}

// Service exposes transaction use cases.
type Service struct {
	repo     Repository
	accounts AccountLookup
	cache    *cache.Versioned
	logger   *slog.Logger
	now      func() time.Time
	newID    func() uuid.UUID
}

// NewService constructs the service. cache may be nil.
func NewService(repo Repository, accts AccountLookup, cache *cache.Versioned, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		accounts: accts,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.New,
	}
}

// StatsQuery selects the month and the currency to total.
type StatsQuery struct {
	// AsOf picks the month; zero means today.
	AsOf time.Time
	// Currency keeps only lines in that currency; empty means money.DefaultCurrency.
	Currency money.Currency
}

// Stats computes month-to-date statistics for the month containing q.AsOf.
func (s *Service) Stats(ctx context.Context, entityID uuid.UUID, q StatsQuery) (Stats, error) {
	asOf := q.AsOf
	if asOf.IsZero() {
		asOf = s.now()
	}
	if q.Currency == "" {
		q.Currency = money.DefaultCurrency
	}
	window := MonthToDate(asOf)
	loader := func(ctx context.Context) (any, error) {
		txns, err := s.repo.ListInWindow(ctx, entityID, window)
		if err != nil {
			return nil, err
		}
		return ComputeStats(filterCurrency(window.Filter(txns), q.Currency)), nil
	}
	key, err := s.cache.BuildKey(ctx, "transactions", "stats", entityID.String(),
		window.From.Format(time.DateOnly), window.To.Format(time.DateOnly), string(q.Currency))
	if err != nil {
		return Stats{}, err
	}
	var stats Stats
	if err := s.cache.FetchJSON(ctx, key, &stats, loader); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func filterCurrency(txns []Transaction, cur money.Currency) []Transaction {
	out := make([]Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Currency == cur {
			out = append(out, t)
		}
	}
	return out
}

// Import parses and stores a batch of lines for entityID. Lines whose account
// is unknown, belongs to another entity, or whose amount does not parse are
// reported in the result and skipped.
func (s *Service) Import(ctx context.Context, entityID uuid.UUID, lines []ImportLine) (ImportResult, error) {
	if len(lines) == 0 {
		return ImportResult{}, ErrEmptyImport
	}
	result := ImportResult{Imported: []Transaction{}, Rejected: []Rejection{}}
	resolved := make(map[uuid.UUID]accounts.Account)
	for i, line := range lines {
		acct, ok := resolved[line.AccountID]
		if !ok {
			found, err := s.accounts.Get(ctx, line.AccountID)
			if errors.Is(err, accounts.ErrAccountNotFound) {
				result.Rejected = append(result.Rejected, Rejection{Line: i + 1, Reason: "account not found"})
				continue
			}
			if err != nil {
				return ImportResult{}, err
			}
			acct = found
			resolved[line.AccountID] = acct
		}
		if acct.EntityID != entityID {
			result.Rejected = append(result.Rejected, Rejection{Line: i + 1, Reason: "account not found"})
			continue
		}
		if line.Date.IsZero() {
			result.Rejected = append(result.Rejected, Rejection{Line: i + 1, Reason: "date required"})
			continue
		}
		amount, ok := money.Parse(line.Amount, acct.Currency)
		if !ok {
			result.Rejected = append(result.Rejected, Rejection{Line: i + 1, Reason: fmt.Sprintf("amount %q is not a number", line.Amount)})
			continue
		}
		result.Imported = append(result.Imported, Transaction{
			ID:          s.newID(),
			EntityID:    entityID,
			AccountID:   acct.ID,
			Date:        line.Date,
			Description: strings.TrimSpace(line.Description),
			Amount:      amount,
			Currency:    acct.Currency,
		})
	}
	if len(result.Imported) == 0 {
		return result, ErrNothingImported
	}
	if err := s.repo.InsertBatch(ctx, result.Imported); err != nil {
		return ImportResult{}, err
	}
	s.invalidate(ctx)
	s.logger.Info("transactions imported",
		slog.String("entity", entityID.String()),
		slog.Int("imported", len(result.Imported)),
		slog.Int("rejected", len(result.Rejected)))
	return result, nil
}

// Reconcile links a transaction to a posted journal entry.
func (s *Service) Reconcile(ctx context.Context, id uuid.UUID, journalEntryID string) (Transaction, error) {
	journalEntryID = strings.TrimSpace(journalEntryID)
	if journalEntryID == "" {
		return Transaction{}, ErrJournalEntryRequired
	}
	t, err := s.repo.Reconcile(ctx, id, journalEntryID)
	if err != nil {
		return Transaction{}, err
	}
	s.invalidate(ctx)
	return t, nil
}

// Entities lists the entities that own active accounts.
func (s *Service) Entities(ctx context.Context) ([]uuid.UUID, error) {
	return s.repo.ListEntities(ctx)
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("transactions cache bump", slog.Any("error", err))
	}
}
