package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/akount/akount/internal/accounting/accounts"
	"github.com/akount/akount/internal/accounting/transactions"
	"github.com/akount/akount/internal/app"
	"github.com/akount/akount/internal/money"
	"github.com/akount/akount/internal/platform/db"
)

// demoEntity is stable so repeated seeds land on the same books.
var demoEntity = uuid.MustParse("6f1c2b1e-5d7a-4f0e-9c3b-2a8d4e6f7a10")

type seedAccount struct {
	name     string
	kind     accounts.AccountType
	currency money.Currency
	opening  string
}

var seedAccounts = []seedAccount{
	{"Operating Chequing", accounts.AccountTypeAsset, money.CAD, "$12,450.00"},
	{"Savings", accounts.AccountTypeAsset, money.CAD, "$30,000.00"},
	{"Visa", accounts.AccountTypeLiability, money.CAD, "-$1,210.33"},
	{"US Operating", accounts.AccountTypeAsset, money.USD, "$8,900.10"},
	{"Berlin Office", accounts.AccountTypeAsset, money.EUR, "4250.00 €"},
	{"Tokyo Petty Cash", accounts.AccountTypeAsset, money.JPY, "¥85,000"},
}

type seedLine struct {
	account     string
	day         int
	description string
	amount      string
}

var seedLines = []seedLine{
	{"Operating Chequing", 1, "Client retainer", "$4,500.00"},
	{"Operating Chequing", 2, "Office rent", "-$2,100.00"},
	{"Operating Chequing", 3, "Payroll", "-$6,320.18"},
	{"Visa", 3, "Software subscriptions", "-$189.99"},
	{"US Operating", 2, "Stripe payout", "$1,245.60"},
	{"Tokyo Petty Cash", 1, "Taxi", "-¥3,400"},
}

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg)
	ctx := context.Background()

	if err := db.Migrate(cfg.PGDSN); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	pool, err := db.New(ctx, cfg.PGDSN, db.Options{})
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	accountsRepo := accounts.NewRepository(pool)
	accountsService := accounts.NewService(accountsRepo, nil, logger)
	txnService := transactions.NewService(transactions.NewRepository(pool), accountsRepo, nil, logger)

	fmt.Println("→ Seeding accounts...")
	byName, created, err := seedChart(ctx, accountsService)
	if err != nil {
		log.Fatalf("seed accounts: %v", err)
	}
	if created == 0 {
		fmt.Println("✓ Already seeded, entity", demoEntity)
		return
	}

	fmt.Println("→ Seeding bank transactions...")
	if err := seedTransactions(ctx, txnService, byName); err != nil {
		log.Fatalf("seed transactions: %v", err)
	}

	fmt.Println("✓ Seed complete at", time.Now().Format(time.RFC3339), "entity", demoEntity)
}

func seedChart(ctx context.Context, svc *accounts.Service) (map[string]accounts.Account, int, error) {
	existing, err := svc.List(ctx, demoEntity)
	if err != nil {
		return nil, 0, err
	}
	created := 0
	byName := make(map[string]accounts.Account, len(seedAccounts))
	for _, a := range existing {
		byName[a.Name] = a
	}
	for _, sa := range seedAccounts {
		if _, ok := byName[sa.name]; ok {
			continue
		}
		opening, ok := money.Parse(sa.opening, sa.currency)
		if !ok {
			return nil, 0, fmt.Errorf("opening balance %q for %s", sa.opening, sa.name)
		}
		acct, err := svc.Create(ctx, accounts.CreateInput{
			EntityID:       demoEntity,
			Name:           sa.name,
			Type:           sa.kind,
			Currency:       sa.currency,
			OpeningBalance: opening,
		})
		if errors.Is(err, accounts.ErrDuplicateName) {
			continue
		}
		if err != nil {
			return nil, 0, fmt.Errorf("create %s: %w", sa.name, err)
		}
		byName[acct.Name] = acct
		created++
	}
	return byName, created, nil
}

func seedTransactions(ctx context.Context, svc *transactions.Service, byName map[string]accounts.Account) error {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lines := make([]transactions.ImportLine, 0, len(seedLines))
	for _, sl := range seedLines {
		acct, ok := byName[sl.account]
		if !ok {
			return fmt.Errorf("unknown account %s", sl.account)
		}
		lines = append(lines, transactions.ImportLine{
			AccountID:   acct.ID,
			Date:        monthStart.AddDate(0, 0, sl.day-1),
			Description: sl.description,
			Amount:      sl.amount,
		})
	}
	result, err := svc.Import(ctx, demoEntity, lines)
	if err != nil {
		return err
	}
	fmt.Printf("  imported %d, rejected %d\n", len(result.Imported), len(result.Rejected))
	return nil
}
