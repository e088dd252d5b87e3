package transactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akount/akount/internal/money"
	"github.com/akount/akount/internal/platform/db"
)

// Repository persists bank transactions.
type Repository interface {
	ListInWindow(ctx context.Context, entityID uuid.UUID, w Window) ([]Transaction, error)
	Get(ctx context.Context, id uuid.UUID) (Transaction, error)
	InsertBatch(ctx context.Context, txns []Transaction) error
	Reconcile(ctx context.Context, id uuid.UUID, journalEntryID string) (Transaction, error)
	ListEntities(ctx context.Context) ([]uuid.UUID, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a PostgreSQL backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const txnColumns = `id, entity_id, account_id, posted_on, description, amount, currency, journal_entry_id, created_at`

func (r *repository) ListInWindow(ctx context.Context, entityID uuid.UUID, w Window) ([]Transaction, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+txnColumns+` FROM bank_transactions
WHERE entity_id = $1 AND posted_on >= $2::date AND posted_on < $3::date
ORDER BY posted_on, created_at`, entityID, w.From.Format(time.DateOnly), w.To.Format(time.DateOnly))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Transaction, error) {
	t, err := scanTransaction(r.pool.QueryRow(ctx, `SELECT `+txnColumns+` FROM bank_transactions WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrTransactionNotFound
	}
	return t, err
}

// InsertBatch stores the lines and moves each account balance by its lines' sum in one transaction.
func (r *repository) InsertBatch(ctx context.Context, txns []Transaction) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		batch := &pgx.Batch{}
		deltas := make(map[uuid.UUID]money.Cents)
		for _, t := range txns {
			batch.Queue(`INSERT INTO bank_transactions (id, entity_id, account_id, posted_on, description, amount, currency, journal_entry_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				t.ID, t.EntityID, t.AccountID, t.Date, t.Description, t.Amount, string(t.Currency), t.JournalEntryID)
			deltas[t.AccountID] = deltas[t.AccountID].Add(t.Amount)
		}
		for accountID, delta := range deltas {
			batch.Queue(`UPDATE accounts SET current_balance = current_balance + $2, updated_at = NOW() WHERE id = $1`, accountID, delta)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("transactions: insert batch: %w", err)
		}
		return nil
	})
}

func (r *repository) Reconcile(ctx context.Context, id uuid.UUID, journalEntryID string) (Transaction, error) {
	t, err := scanTransaction(r.pool.QueryRow(ctx, `UPDATE bank_transactions
SET journal_entry_id = $2, updated_at = NOW()
WHERE id = $1 AND COALESCE(journal_entry_id, '') = ''
RETURNING `+txnColumns, id, journalEntryID))
	if !errors.Is(err, pgx.ErrNoRows) {
		return t, err
	}
	if _, getErr := r.Get(ctx, id); getErr != nil {
		return Transaction{}, getErr
	}
	return Transaction{}, ErrAlreadyReconciled
}

func (r *repository) ListEntities(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT entity_id FROM accounts WHERE is_active`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var (
		t        Transaction
		currency string
	)
	if err := row.Scan(&t.ID, &t.EntityID, &t.AccountID, &t.Date, &t.Description, &t.Amount, &currency, &t.JournalEntryID, &t.CreatedAt); err != nil {
		return Transaction{}, err
	}
	cur, ok := money.ParseCurrency(currency)
	if !ok {
		return Transaction{}, fmt.Errorf("%w: %q on transaction %s", ErrUnknownCurrency, currency, t.ID)
	}
	t.Currency = cur
	return t, nil
}
