package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/akount/akount/cmd/akount/cli"
	"github.com/akount/akount/internal/accounting/accounts"
	"github.com/akount/akount/internal/accounting/transactions"
	"github.com/akount/akount/internal/app"
	"github.com/akount/akount/internal/dashboard"
	moneyhttp "github.com/akount/akount/internal/money/http"
	"github.com/akount/akount/internal/observability"
	"github.com/akount/akount/internal/platform/cache"
	"github.com/akount/akount/internal/platform/db"
	"github.com/akount/akount/jobs"
)

const usage = `usage: akount [serve|migrate|format|parse|jobs] [flags]

  serve                         run the HTTP API (default)
  migrate                       apply database migrations and exit
  format -currency CAD 123456   render minor units
  parse  -currency CAD '$1.50'  convert user input to minor units
  jobs   trigger summary:warmup [entity-id ...] | jobs stats
`

func main() {
	args := os.Args[1:]
	cmd := "serve"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}
	switch cmd {
	case "serve":
		os.Exit(serve())
	case "migrate":
		os.Exit(runMigrate())
	case "format", "parse":
		os.Exit(runMoney(cmd, args))
	case "jobs":
		os.Exit(runJobs(args))
	default:
		_, _ = fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runMoney(cmd string, args []string) int {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	opts := cli.MoneyOptions{}
	fs.StringVar(&opts.Currency, "currency", "CAD", "ISO currency code")
	fs.StringVar(&opts.Style, "style", "standard", "standard|signed|compact|accounting|plain")
	fs.BoolVar(&opts.UseCode, "code", false, "show the ISO code instead of the symbol")
	fs.BoolVar(&opts.JSONOutput, "json", false, "emit JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		_, _ = fmt.Fprint(os.Stderr, usage)
		return 2
	}
	opts.Value = fs.Arg(0)
	if cmd == "parse" {
		return cli.ParseCommand(opts)
	}
	return cli.FormatCommand(opts)
}

func runJobs(args []string) int {
	if len(args) == 0 {
		_, _ = fmt.Fprint(os.Stderr, usage)
		return 2
	}
	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		return 1
	}
	jobsCLI := cli.NewJobsCLI(cfg.RedisAddr)
	defer func() { _ = jobsCLI.Close() }()

	opts := cli.JobsOptions{Action: args[0]}
	if len(args) > 1 {
		opts.Job, opts.EntityIDs = args[1], args[2:]
	}
	return jobsCLI.JobsCommand(context.Background(), opts)
}

func runMigrate() int {
	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		return 1
	}
	logger := app.NewLogger(cfg)
	if err := db.Migrate(cfg.PGDSN); err != nil {
		logger.Error("migrate", slog.Any("error", err))
		return 1
	}
	logger.Info("migrations applied")
	return 0
}

func serve() int {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		return 1
	}
	logger := app.NewLogger(cfg)

	if cfg.MigrateOnStart {
		if err := db.Migrate(cfg.PGDSN); err != nil {
			logger.Error("migrate", slog.Any("error", err))
			return 1
		}
	}

	pool, err := db.New(ctx, cfg.PGDSN, db.Options{MaxConns: cfg.PGMaxConns, MaxConnLifetime: cfg.PGConnLifetime})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		return 1
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, serving without cache", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}
	summaryCache := cache.NewVersioned(redisClient, "akount", cfg.CacheTTL)

	accountsRepo := accounts.NewRepository(pool)
	accountsService := accounts.NewService(accountsRepo, summaryCache, logger)
	transactionsService := transactions.NewService(transactions.NewRepository(pool), accountsRepo, summaryCache, logger)
	dashboardService := dashboard.NewService(accountsService, transactionsService, logger)

	var jobHandler *jobs.Handler
	if redisClient != nil {
		inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := inspector.Close(); err != nil {
				logger.Warn("inspector close", slog.Any("error", err))
			}
		}()
		jobHandler = jobs.NewHandler(inspector, logger)
	} else {
		jobHandler = jobs.NewHandler(nil, logger)
	}

	metrics := observability.NewMetrics()
	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		MoneyHandler:        moneyhttp.NewHandler(logger),
		AccountsHandler:     accounts.NewHandler(logger, accountsService),
		TransactionsHandler: transactions.NewHandler(logger, transactionsService),
		DashboardHandler:    dashboard.NewHandler(logger, dashboardService),
		JobHandler:          jobHandler,
		Metrics:             metrics,
		Ready: func(r *http.Request) error {
			return pool.Ping(r.Context())
		},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
		return 1
	}
	return 0
}
