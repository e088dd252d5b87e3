package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akount/akount/internal/money"
	"github.com/akount/akount/internal/platform/db"
)

// Repository persists accounts.
type Repository interface {
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]Account, error)
	Get(ctx context.Context, id uuid.UUID) (Account, error)
	Create(ctx context.Context, acct Account) (Account, error)
	AdjustBalance(ctx context.Context, id uuid.UUID, delta money.Cents) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns a PostgreSQL backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const accountColumns = `id, entity_id, name, type, currency, current_balance, is_active, created_at, updated_at`

func (r *repository) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE entity_id = $1 AND is_active ORDER BY name`, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	return a, err
}

func (r *repository) Create(ctx context.Context, acct Account) (Account, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO accounts (id, entity_id, name, type, currency, current_balance, is_active)
VALUES ($1, $2, $3, $4, $5, $6, TRUE)
RETURNING `+accountColumns,
		acct.ID, acct.EntityID, acct.Name, string(acct.Type), string(acct.Currency), acct.CurrentBalance)
	created, err := scanAccount(row)
	if db.IsUniqueViolation(err) {
		return Account{}, ErrDuplicateName
	}
	if err != nil {
		return Account{}, fmt.Errorf("accounts: insert: %w", err)
	}
	return created, nil
}

func (r *repository) AdjustBalance(ctx context.Context, id uuid.UUID, delta money.Cents) error {
	tag, err := r.db.Exec(ctx, `UPDATE accounts SET current_balance = current_balance + $2, updated_at = NOW() WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("accounts: adjust balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (Account, error) {
	var (
		a        Account
		typ      string
		currency string
	)
	if err := row.Scan(&a.ID, &a.EntityID, &a.Name, &typ, &currency, &a.CurrentBalance, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return Account{}, err
	}
	cur, ok := money.ParseCurrency(currency)
	if !ok {
		return Account{}, fmt.Errorf("%w: %q on account %s", ErrUnknownCurrency, currency, a.ID)
	}
	a.Type = AccountType(typ)
	a.Currency = cur
	return a, nil
}
