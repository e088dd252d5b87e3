package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/akount/akount/internal/accounting/accounts"
	"github.com/akount/akount/internal/accounting/transactions"
	"github.com/akount/akount/internal/dashboard"
	moneyhttp "github.com/akount/akount/internal/money/http"
	"github.com/akount/akount/internal/observability"
	"github.com/akount/akount/internal/platform/httpx"
	"github.com/akount/akount/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	MoneyHandler        *moneyhttp.Handler
	AccountsHandler     *accounts.Handler
	TransactionsHandler *transactions.Handler
	DashboardHandler    *dashboard.Handler
	JobHandler          *jobs.Handler
	Metrics             *observability.Metrics
	// Ready reports dependency health for /healthz; nil means always ready.
	Ready func(r *http.Request) error
}

// NewRouter constructs the chi.Router with the API routes mounted.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}
	if !params.Config.IsProduction() {
		r.Use(chimw.Logger)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusMethodNotAllowed, "Method Not Allowed", r.Method+" is not supported here")
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if params.Ready != nil {
			if err := params.Ready(r); err != nil {
				params.Logger.Warn("health check", slog.Any("error", err))
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if params.MoneyHandler != nil {
		r.Route("/money", params.MoneyHandler.MountRoutes)
	}
	r.Route("/entities/{entityID}", func(r chi.Router) {
		if params.AccountsHandler != nil {
			params.AccountsHandler.MountRoutes(r)
		}
		if params.TransactionsHandler != nil {
			params.TransactionsHandler.MountEntityRoutes(r)
		}
		if params.DashboardHandler != nil {
			params.DashboardHandler.MountRoutes(r)
		}
	})
	if params.TransactionsHandler != nil {
		r.Route("/transactions", params.TransactionsHandler.MountRoutes)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
