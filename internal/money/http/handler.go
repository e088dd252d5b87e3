// Package moneyhttp exposes the currency table and the formatting and parsing
// helpers over HTTP.
package moneyhttp

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/akount/akount/internal/money"
	"github.com/akount/akount/internal/platform/httpx"
)

// Style names a display convention.
type Style string

const (
	StyleStandard   Style = "standard"
	StyleSigned     Style = "signed"
	StyleCompact    Style = "compact"
	StyleAccounting Style = "accounting"
	StylePlain      Style = "plain"
)

var formatters = map[Style]func(money.Cents, money.Currency, ...money.FormatOption) string{
	StyleStandard:   money.Format,
	StyleSigned:     money.FormatWithSign,
	StyleCompact:    money.FormatCompact,
	StyleAccounting: money.FormatAccounting,
	StylePlain:      money.FormatPlain,
}

// Handler serves /money endpoints.
type Handler struct {
	logger    *slog.Logger
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger, validator: httpx.NewValidator()}
}

// MountRoutes registers routes below /money.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/currencies", h.currencies)
	r.Post("/format", h.format)
	r.Post("/parse", h.parse)
}

func (h *Handler) currencies(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{"currencies": money.Currencies()})
}

type formatRequest struct {
	Amount      money.Cents `json:"amount"`
	Currency    string      `json:"currency" validate:"required,currency"`
	Style       Style       `json:"style" validate:"omitempty,oneof=standard signed compact accounting plain"`
	UseCode     bool        `json:"useCode"`
	MinFraction *int        `json:"minFractionDigits" validate:"omitempty,min=0,max=6"`
	MaxFraction *int        `json:"maxFractionDigits" validate:"omitempty,min=0,max=6"`
}

type formatResponse struct {
	Amount    money.Cents    `json:"amount"`
	Currency  money.Currency `json:"currency"`
	Style     Style          `json:"style"`
	Formatted string         `json:"formatted"`
}

func (h *Handler) format(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := httpx.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		httpx.RespondValidation(w, err)
		return
	}
	style := req.Style
	if style == "" {
		style = StyleStandard
	}
	cur := money.Currency(req.Currency)
	var opts []money.FormatOption
	if req.UseCode {
		opts = append(opts, money.WithCode())
	}
	if req.MinFraction != nil || req.MaxFraction != nil {
		info := money.Info(cur)
		minDigits, maxDigits := info.Decimals, info.Decimals
		if req.MinFraction != nil {
			minDigits = *req.MinFraction
		}
		if req.MaxFraction != nil {
			maxDigits = *req.MaxFraction
		}
		opts = append(opts, money.WithFractionDigits(minDigits, maxDigits))
	}
	httpx.JSON(w, http.StatusOK, formatResponse{
		Amount:    req.Amount,
		Currency:  cur,
		Style:     style,
		Formatted: formatters[style](req.Amount, cur, opts...),
	})
}

type parseRequest struct {
	Value    string `json:"value" validate:"max=64"`
	Currency string `json:"currency" validate:"required,currency"`
}

type parseResponse struct {
	Amount    money.Cents    `json:"amount"`
	Currency  money.Currency `json:"currency"`
	Formatted string         `json:"formatted"`
}

func (h *Handler) parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := httpx.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		httpx.RespondValidation(w, err)
		return
	}
	cur := money.Currency(req.Currency)
	amount, ok := money.Parse(req.Value, cur)
	if !ok {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Unparseable Amount", "value is not a number")
		return
	}
	httpx.JSON(w, http.StatusOK, parseResponse{
		Amount:    amount,
		Currency:  cur,
		Formatted: money.Format(amount, cur),
	})
}
