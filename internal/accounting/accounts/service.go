package accounts

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/akount/akount/internal/platform/cache"
)

// Service exposes account use cases.
type Service struct {
	repo   Repository
	cache  *cache.Versioned
	logger *slog.Logger
	newID  func() uuid.UUID
}

// NewService constructs the service. cache may be nil.
func NewService(repo Repository, cache *cache.Versioned, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, cache: cache, logger: logger, newID: uuid.New}
}

// List returns the active accounts of an entity.
func (s *Service) List(ctx context.Context, entityID uuid.UUID) ([]Account, error) {
	accts, err := s.repo.ListByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if accts == nil {
		accts = []Account{}
	}
	return accts, nil
}

// Create validates and stores a new account, then invalidates cached summaries.
func (s *Service) Create(ctx context.Context, in CreateInput) (Account, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Account{}, ErrNameRequired
	}
	if !in.Type.Valid() {
		return Account{}, ErrInvalidType
	}
	if !in.Currency.Valid() {
		return Account{}, ErrUnknownCurrency
	}
	created, err := s.repo.Create(ctx, Account{
		ID:             s.newID(),
		EntityID:       in.EntityID,
		Name:           name,
		Type:           in.Type,
		Currency:       in.Currency,
		CurrentBalance: in.OpeningBalance,
		IsActive:       true,
	})
	if err != nil {
		return Account{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

// CurrencySummary groups an entity's accounts by currency, served from cache when warm.
func (s *Service) CurrencySummary(ctx context.Context, entityID uuid.UUID) ([]CurrencyGroup, error) {
	loader := func(ctx context.Context) (any, error) {
		accts, err := s.repo.ListByEntity(ctx, entityID)
		if err != nil {
			return nil, err
		}
		return GroupByCurrency(accts), nil
	}
	key, err := s.cache.BuildKey(ctx, "accounts", "by_currency", entityID.String())
	if err != nil {
		return nil, err
	}
	var groups []CurrencyGroup
	if err := s.cache.FetchJSON(ctx, key, &groups, loader); err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []CurrencyGroup{}
	}
	return groups, nil
}

// Invalidate drops every cached summary.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("accounts cache bump", slog.Any("error", err))
	}
}
