package transactions

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/akount/akount/internal/money"
	"github.com/akount/akount/internal/platform/httpx"
)

// TransactionService is the subset of Service the handler depends on.
type TransactionService interface {
	Stats(ctx context.Context, entityID uuid.UUID, q StatsQuery) (Stats, error)
	Import(ctx context.Context, entityID uuid.UUID, lines []ImportLine) (ImportResult, error)
	Reconcile(ctx context.Context, id uuid.UUID, journalEntryID string) (Transaction, error)
}

// Handler serves transaction endpoints.
type Handler struct {
	service   TransactionService
	logger    *slog.Logger
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service TransactionService) *Handler {
	return &Handler{logger: logger, service: service, validator: httpx.NewValidator()}
}

// MountEntityRoutes registers routes below /entities/{entityID}.
func (h *Handler) MountEntityRoutes(r chi.Router) {
	r.Get("/transactions/stats", h.stats)
	r.Post("/transactions/import", h.importLines)
}

// MountRoutes registers routes below /transactions.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/{transactionID}/reconcile", h.reconcile)
}

// StatsView is Stats with display strings.
type StatsView struct {
	Stats
	Currency         money.Currency `json:"currency"`
	IncomeFormatted  string         `json:"incomeFormatted"`
	ExpenseFormatted string         `json:"expenseFormatted"`
}

// PresentStats formats stats in cur, falling back to the default currency.
func PresentStats(s Stats, cur money.Currency) StatsView {
	if !cur.Valid() {
		cur = money.DefaultCurrency
	}
	return StatsView{
		Stats:            s,
		Currency:         cur,
		IncomeFormatted:  money.Format(s.IncomeMTD, cur),
		ExpenseFormatted: money.Format(s.ExpenseMTD, cur),
	}
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	entityID, ok := httpx.UUIDParam(w, r, "entityID")
	if !ok {
		return
	}
	q, err := parseStatsQuery(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	stats, err := h.service.Stats(r.Context(), entityID, q)
	if err != nil {
		h.logger.Error("transaction stats", slog.Any("error", err), slog.String("entity", entityID.String()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, PresentStats(stats, q.Currency))
}

// parseStatsQuery reads as_of (YYYY-MM-DD) and currency query parameters.
func parseStatsQuery(r *http.Request) (StatsQuery, error) {
	q := StatsQuery{Currency: money.DefaultCurrency}
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		asOf, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return StatsQuery{}, errInvalidQuery("as_of must be YYYY-MM-DD")
		}
		q.AsOf = asOf
	}
	if raw := r.URL.Query().Get("currency"); raw != "" {
		cur, ok := money.ParseCurrency(raw)
		if !ok {
			return StatsQuery{}, errInvalidQuery("unsupported currency " + raw)
		}
		q.Currency = cur
	}
	return q, nil
}

type importRequest struct {
	Lines []importLineRequest `json:"lines" validate:"required,min=1,max=1000,dive"`
}

type importLineRequest struct {
	AccountID   string `json:"accountId" validate:"required,uuid"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Description string `json:"description" validate:"max=500"`
	Amount      string `json:"amount" validate:"required,max=64"`
}

func (h *Handler) importLines(w http.ResponseWriter, r *http.Request) {
	entityID, ok := httpx.UUIDParam(w, r, "entityID")
	if !ok {
		return
	}
	var req importRequest
	if err := httpx.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		httpx.RespondValidation(w, err)
		return
	}
	lines := make([]ImportLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		date, _ := time.Parse(time.DateOnly, l.Date)
		lines = append(lines, ImportLine{
			AccountID:   uuid.MustParse(l.AccountID),
			Date:        date,
			Description: l.Description,
			Amount:      l.Amount,
		})
	}
	result, err := h.service.Import(r.Context(), entityID, lines)
	if err != nil {
		h.logger.Warn("import transactions", slog.Any("error", err), slog.String("entity", entityID.String()))
		if len(result.Rejected) > 0 {
			httpx.JSON(w, http.StatusUnprocessableEntity, result)
			return
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, result)
}

type reconcileRequest struct {
	JournalEntryID string `json:"journalEntryId" validate:"required,max=64"`
}

func (h *Handler) reconcile(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.UUIDParam(w, r, "transactionID")
	if !ok {
		return
	}
	var req reconcileRequest
	if err := httpx.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		httpx.RespondValidation(w, err)
		return
	}
	t, err := h.service.Reconcile(r.Context(), id, req.JournalEntryID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, t)
}
