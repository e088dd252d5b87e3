// Package dashboard assembles the per-entity overview: balances grouped by
// currency and the month-to-date transaction statistics.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/akount/akount/internal/accounting/accounts"
	"github.com/akount/akount/internal/accounting/transactions"
	"github.com/akount/akount/internal/money"
)

const loadTimeout = 2 * time.Second

// SummarySource loads balances grouped by currency.
type SummarySource interface {
	CurrencySummary(ctx context.Context, entityID uuid.UUID) ([]accounts.CurrencyGroup, error)
}

// StatsSource loads month-to-date statistics.
type StatsSource interface {
	Stats(ctx context.Context, entityID uuid.UUID, q transactions.StatsQuery) (transactions.Stats, error)
}

// Query selects the reporting currency and month of a dashboard.
type Query struct {
	AsOf     time.Time
	Currency money.Currency
}

// Dashboard is the rendered overview.
type Dashboard struct {
	EntityID   uuid.UUID              `json:"entityId"`
	Currency   money.Currency         `json:"currency"`
	Groups     []accounts.GroupView   `json:"groups"`
	Stats      transactions.StatsView `json:"stats"`
	NetMTD     money.Cents            `json:"netMtd"`
	NetDisplay string                 `json:"netFormatted"`
}

// Service builds dashboards.
type Service struct {
	summary SummarySource
	stats   StatsSource
	logger  *slog.Logger
}

// NewService wires the dashboard sources.
func NewService(summary SummarySource, stats StatsSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{summary: summary, stats: stats, logger: logger}
}

// Load fetches the currency summary and the statistics concurrently.
func (s *Service) Load(ctx context.Context, entityID uuid.UUID, q Query) (Dashboard, error) {
	cur := q.Currency
	if !cur.Valid() {
		cur = money.DefaultCurrency
	}
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	var (
		groups []accounts.CurrencyGroup
		stats  transactions.Stats
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		groups, err = s.summary.CurrencySummary(ctx, entityID)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.stats.Stats(ctx, entityID, transactions.StatsQuery{AsOf: q.AsOf, Currency: cur})
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	net := stats.IncomeMTD.Sub(stats.ExpenseMTD)
	return Dashboard{
		EntityID:   entityID,
		Currency:   cur,
		Groups:     accounts.PresentGroups(groups),
		Stats:      transactions.PresentStats(stats, cur),
		NetMTD:     net,
		NetDisplay: money.FormatWithSign(net, cur),
	}, nil
}
