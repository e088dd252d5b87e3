package accounts

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/akount/akount/internal/money"
	"github.com/akount/akount/internal/platform/httpx"
)

// AccountService is the subset of Service the handler depends on.
type AccountService interface {
	List(ctx context.Context, entityID uuid.UUID) ([]Account, error)
	Create(ctx context.Context, in CreateInput) (Account, error)
	CurrencySummary(ctx context.Context, entityID uuid.UUID) ([]CurrencyGroup, error)
}

// Handler serves account endpoints.
type Handler struct {
	service   AccountService
	logger    *slog.Logger
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service AccountService) *Handler {
	return &Handler{logger: logger, service: service, validator: httpx.NewValidator()}
}

// MountRoutes registers routes below /entities/{entityID}.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/accounts", h.list)
	r.Post("/accounts", h.create)
	r.Get("/accounts/by-currency", h.byCurrency)
}

// AccountView is an account with its display balance.
type AccountView struct {
	Account
	BalanceFormatted string `json:"balanceFormatted"`
}

// GroupView is a currency group with display strings.
type GroupView struct {
	Currency       money.Currency `json:"currency"`
	Flag           string         `json:"flag"`
	TotalBalance   money.Cents    `json:"totalBalance"`
	TotalFormatted string         `json:"totalFormatted"`
	Accounts       []AccountView  `json:"accounts"`
}

type createAccountRequest struct {
	Name           string      `json:"name" validate:"required,max=120"`
	Type           string      `json:"type" validate:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Currency       string      `json:"currency" validate:"required,currency"`
	OpeningBalance money.Cents `json:"openingBalance"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	entityID, ok := httpx.UUIDParam(w, r, "entityID")
	if !ok {
		return
	}
	accts, err := h.service.List(r.Context(), entityID)
	if err != nil {
		h.logger.Error("list accounts", slog.Any("error", err), slog.String("entity", entityID.String()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"accounts": presentAccounts(accts)})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	entityID, ok := httpx.UUIDParam(w, r, "entityID")
	if !ok {
		return
	}
	var req createAccountRequest
	if err := httpx.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		httpx.RespondValidation(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), CreateInput{
		EntityID:       entityID,
		Name:           req.Name,
		Type:           AccountType(req.Type),
		Currency:       money.Currency(req.Currency),
		OpeningBalance: req.OpeningBalance,
	})
	if err != nil {
		h.logger.Warn("create account", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, presentAccount(created))
}

func (h *Handler) byCurrency(w http.ResponseWriter, r *http.Request) {
	entityID, ok := httpx.UUIDParam(w, r, "entityID")
	if !ok {
		return
	}
	groups, err := h.service.CurrencySummary(r.Context(), entityID)
	if err != nil {
		h.logger.Error("currency summary", slog.Any("error", err), slog.String("entity", entityID.String()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"groups": PresentGroups(groups)})
}

func presentAccount(a Account) AccountView {
	return AccountView{Account: a, BalanceFormatted: money.Format(a.CurrentBalance, a.Currency)}
}

func presentAccounts(accts []Account) []AccountView {
	out := make([]AccountView, 0, len(accts))
	for _, a := range accts {
		out = append(out, presentAccount(a))
	}
	return out
}

// PresentGroups attaches display strings to currency groups.
func PresentGroups(groups []CurrencyGroup) []GroupView {
	out := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupView{
			Currency:       g.Currency,
			Flag:           money.Info(g.Currency).Flag,
			TotalBalance:   g.TotalBalance,
			TotalFormatted: money.Format(g.TotalBalance, g.Currency),
			Accounts:       presentAccounts(g.Accounts),
		})
	}
	return out
}
