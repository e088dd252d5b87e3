package transactions

import (
	"context"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akount/akount/internal/accounting/accounts"
	"github.com/akount/akount/internal/money"
	"github.com/akount/akount/internal/platform/cache"
)

type memRepo struct {
	mu        sync.Mutex
	txns      []Transaction
	listCalls int
}

func (m *memRepo) ListInWindow(ctx context.Context, entityID uuid.UUID, w Window) ([]Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	var out []Transaction
	for _, t := range m.txns {
		if t.EntityID == entityID && w.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memRepo) Get(ctx context.Context, id uuid.UUID) (Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.txns {
		if t.ID == id {
			return t, nil
		}
	}
	return Transaction{}, ErrTransactionNotFound
}

func (m *memRepo) InsertBatch(ctx context.Context, txns []Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns = append(m.txns, txns...)
	return nil
}

func (m *memRepo) Reconcile(ctx context.Context, id uuid.UUID, journalEntryID string) (Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.txns {
		if m.txns[i].ID != id {
			continue
		}
		if m.txns[i].Reconciled() {
			return Transaction{}, ErrAlreadyReconciled
		}
		m.txns[i].JournalEntryID = &journalEntryID
		return m.txns[i], nil
	}
	return Transaction{}, ErrTransactionNotFound
}

func (m *memRepo) ListEntities(ctx context.Context) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[uuid.UUID]bool{}
	var out []uuid.UUID
	for _, t := range m.txns {
		if !seen[t.EntityID] {
			seen[t.EntityID] = true
			out = append(out, t.EntityID)
		}
	}
	return out, nil
}

type stubAccounts map[uuid.UUID]accounts.Account

func (s stubAccounts) Get(ctx context.Context, id uuid.UUID) (accounts.Account, error) {
	a, ok := s[id]
	if !ok {
		return accounts.Account{}, accounts.ErrAccountNotFound
	}
	return a, nil
}

type fixture struct {
	svc     *Service
	repo    *memRepo
	entity  uuid.UUID
	cadAcct accounts.Account
	jpyAcct accounts.Account
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	entity := uuid.New()
	cad := accounts.Account{ID: uuid.New(), EntityID: entity, Name: "Chequing", Currency: money.CAD}
	jpy := accounts.Account{ID: uuid.New(), EntityID: entity, Name: "Tokyo", Currency: money.JPY}
	repo := &memRepo{}
	svc := NewService(repo, stubAccounts{cad.ID: cad, jpy.ID: jpy}, cache.NewVersioned(client, "akount", time.Minute), nil)
	svc.now = func() time.Time { return time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC) }
	return fixture{svc: svc, repo: repo, entity: entity, cadAcct: cad, jpyAcct: jpy}
}

func day(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }

func TestImportParsesAmountsPerCurrency(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.Import(context.Background(), f.entity, []ImportLine{
		{AccountID: f.cadAcct.ID, Date: day(2), Description: " Payroll ", Amount: "$1,234.56"},
		{AccountID: f.jpyAcct.ID, Date: day(3), Description: "Ramen", Amount: "-¥1,050"},
		{AccountID: f.cadAcct.ID, Date: day(4), Description: "Typo", Amount: "twelve"},
		{AccountID: uuid.New(), Date: day(4), Amount: "1"},
		{AccountID: f.cadAcct.ID, Amount: "1"},
	})
	require.NoError(t, err)
	require.Len(t, res.Imported, 2)
	assert.Equal(t, money.FromInt(123456), res.Imported[0].Amount)
	assert.Equal(t, "Payroll", res.Imported[0].Description)
	assert.Equal(t, money.FromInt(-1050), res.Imported[1].Amount)
	assert.Equal(t, money.JPY, res.Imported[1].Currency)

	require.Len(t, res.Rejected, 3)
	assert.Equal(t, 3, res.Rejected[0].Line)
	assert.Contains(t, res.Rejected[0].Reason, "twelve")
	assert.Equal(t, "account not found", res.Rejected[1].Reason)
	assert.Equal(t, "date required", res.Rejected[2].Reason)
	assert.Len(t, f.repo.txns, 2)
}

func TestImportRejectsForeignAccounts(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.Import(context.Background(), uuid.New(), []ImportLine{
		{AccountID: f.cadAcct.ID, Date: day(2), Amount: "10"},
	})
	assert.ErrorIs(t, err, ErrNothingImported)
	assert.Len(t, res.Rejected, 1)
	assert.Empty(t, f.repo.txns)
}

func TestImportEmpty(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Import(context.Background(), f.entity, nil)
	assert.ErrorIs(t, err, ErrEmptyImport)
}

func TestStatsCachedAndRefreshedAfterImport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.repo.txns = []Transaction{
		{ID: uuid.New(), EntityID: f.entity, Date: day(5), Amount: money.FromInt(10000), Currency: money.CAD},
		{ID: uuid.New(), EntityID: f.entity, Date: day(6), Amount: money.FromInt(-5000), Currency: money.CAD},
		{ID: uuid.New(), EntityID: f.entity, Date: day(7), Amount: money.Zero, Currency: money.CAD},
		{ID: uuid.New(), EntityID: f.entity, Date: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), Amount: money.FromInt(777), Currency: money.CAD},
	}

	stats, err := f.svc.Stats(ctx, f.entity, StatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, money.FromInt(10000), stats.IncomeMTD)
	assert.Equal(t, money.FromInt(5000), stats.ExpenseMTD)
	assert.Equal(t, 3, stats.TotalCount)
	assert.Equal(t, 3, stats.UnreconciledCount)

	_, err = f.svc.Stats(ctx, f.entity, StatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.listCalls)

	_, err = f.svc.Import(ctx, f.entity, []ImportLine{{AccountID: f.cadAcct.ID, Date: day(8), Amount: "-20.00"}})
	require.NoError(t, err)

	stats, err = f.svc.Stats(ctx, f.entity, StatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, f.repo.listCalls)
	assert.Equal(t, money.FromInt(7000), stats.ExpenseMTD)
	assert.Equal(t, 4, stats.TotalCount)
}

func TestStatsCurrencyFilterAndExplicitMonth(t *testing.T) {
	f := newFixture(t)
	f.repo.txns = []Transaction{
		{ID: uuid.New(), EntityID: f.entity, Date: time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC), Amount: money.FromInt(500), Currency: money.CAD},
		{ID: uuid.New(), EntityID: f.entity, Date: time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC), Amount: money.FromInt(-3000), Currency: money.JPY},
	}
	stats, err := f.svc.Stats(context.Background(), f.entity, StatsQuery{
		AsOf:     time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC),
		Currency: money.JPY,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalCount)
	assert.Equal(t, money.FromInt(3000), stats.ExpenseMTD)
	assert.True(t, stats.IncomeMTD.IsZero())
}

func TestStatsIncludesFirstOfMonthWhenClockIsWestOfUTC(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return time.Date(2026, 10, 18, 10, 0, 0, 0, time.FixedZone("EDT", -4*3600)) }
	f.repo.txns = []Transaction{
		{ID: uuid.New(), EntityID: f.entity, Date: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), Amount: money.FromInt(2500), Currency: money.CAD},
		{ID: uuid.New(), EntityID: f.entity, Date: time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC), Amount: money.FromInt(900), Currency: money.CAD},
	}

	stats, err := f.svc.Stats(context.Background(), f.entity, StatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalCount)
	assert.Equal(t, money.FromInt(2500), stats.IncomeMTD)
}

func TestStatsDefaultsToDefaultCurrency(t *testing.T) {
	f := newFixture(t)
	f.repo.txns = []Transaction{
		{ID: uuid.New(), EntityID: f.entity, Date: day(5), Amount: money.FromInt(10000), Currency: money.CAD},
		{ID: uuid.New(), EntityID: f.entity, Date: day(6), Amount: money.FromInt(10000), Currency: money.JPY},
	}

	stats, err := f.svc.Stats(context.Background(), f.entity, StatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalCount)
	assert.Equal(t, money.FromInt(10000), stats.IncomeMTD)
}

func TestReconcile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := uuid.New()
	f.repo.txns = []Transaction{{ID: id, EntityID: f.entity, Date: day(2), Amount: money.FromInt(100)}}

	_, err := f.svc.Reconcile(ctx, id, "  ")
	assert.ErrorIs(t, err, ErrJournalEntryRequired)

	got, err := f.svc.Reconcile(ctx, id, "je-42")
	require.NoError(t, err)
	assert.True(t, got.Reconciled())

	_, err = f.svc.Reconcile(ctx, id, "je-43")
	assert.ErrorIs(t, err, ErrAlreadyReconciled)

	_, err = f.svc.Reconcile(ctx, uuid.New(), "je-44")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}
