package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/akount/akount/internal/accounting/accounts"
	"github.com/akount/akount/internal/accounting/transactions"
	jobmetrics "github.com/akount/akount/internal/jobs"
	"github.com/akount/akount/internal/money"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

const entityTimeout = 20 * time.Second

// SummarySource is the cached currency summary the job refreshes.
type SummarySource interface {
	CurrencySummary(ctx context.Context, entityID uuid.UUID) ([]accounts.CurrencyGroup, error)
}

// StatsSource is the cached statistics the job refreshes, plus entity discovery.
type StatsSource interface {
	Stats(ctx context.Context, entityID uuid.UUID, q transactions.StatsQuery) (transactions.Stats, error)
	Entities(ctx context.Context) ([]uuid.UUID, error)
}

// SummaryWarmupJob pre-populates the summary cache so dashboards load warm.
type SummaryWarmupJob struct {
	Summary SummarySource
	Stats   StatsSource
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewSummaryWarmupJob wires dependencies for the warmup handler.
func NewSummaryWarmupJob(summary SummarySource, stats StatsSource, logger *slog.Logger, metrics *jobmetrics.Metrics) *SummaryWarmupJob {
	return &SummaryWarmupJob{
		Summary: summary,
		Stats:   stats,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes summary warmup tasks.
func (j *SummaryWarmupJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Summary == nil || j.Stats == nil {
		return errors.New("summary warmup: handler not configured")
	}
	var payload SummaryWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	asOf, err := payload.asOf()
	if err != nil {
		j.logger().Warn("summary warmup payload", slog.Any("error", err))
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskSummaryWarmup)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	entities := payload.EntityIDs
	if len(entities) == 0 {
		entities, err = j.Stats.Entities(ctx)
		if err != nil {
			logger.Error("load warmup entities", slog.Any("error", err))
			return err
		}
	}
	if len(entities) == 0 {
		logger.Info("no entities discovered for warmup")
		return nil
	}

	start := j.now()
	warmed := 0
	for _, id := range entities {
		if err := j.warmEntity(ctx, id, asOf); err != nil {
			logger.Error("warm entity", slog.String("entity", id.String()), slog.Any("error", err))
			j.metrics().AddWarmed(warmed)
			return err
		}
		warmed++
	}
	j.metrics().AddWarmed(warmed)
	logger.Info("completed summary warmup", slog.Int("entities", warmed), slog.Duration("duration", j.now().Sub(start)))
	return nil
}

// warmEntity fills the keys the dashboard reads: the currency summary plus
// stats for the default reporting currency and every currency the entity holds.
func (j *SummaryWarmupJob) warmEntity(ctx context.Context, id uuid.UUID, asOf time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, entityTimeout)
	defer cancel()

	groups, err := j.Summary.CurrencySummary(ctx, id)
	if err != nil {
		return err
	}
	currencies := []money.Currency{money.DefaultCurrency}
	for _, g := range groups {
		if g.Currency != money.DefaultCurrency {
			currencies = append(currencies, g.Currency)
		}
	}
	for _, cur := range currencies {
		if _, err := j.Stats.Stats(ctx, id, transactions.StatsQuery{AsOf: asOf, Currency: cur}); err != nil {
			return err
		}
	}
	return nil
}

func (j *SummaryWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskSummaryWarmup))
	}
	return slog.Default().With(slog.String("job", TaskSummaryWarmup))
}

func (j *SummaryWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *SummaryWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
