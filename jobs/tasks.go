package jobs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSummaryWarmup precomputes the cached currency summaries and month-to-date stats.
	TaskSummaryWarmup = "summary:warmup"
)

// SummaryWarmupPayload scopes a warmup run. Empty EntityIDs means every entity
// with an active account.
type SummaryWarmupPayload struct {
	EntityIDs []uuid.UUID `json:"entity_ids,omitempty"`
	// AsOf is a YYYY-MM-DD date; empty means today.
	AsOf string `json:"as_of,omitempty"`
}

func (p SummaryWarmupPayload) asOf() (time.Time, error) {
	if p.AsOf == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, p.AsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("summary warmup: as_of: %w", err)
	}
	return t, nil
}

// NewSummaryWarmupTask constructs an Asynq task.
func NewSummaryWarmupTask(payload SummaryWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSummaryWarmup, data, asynq.MaxRetry(3), asynq.Timeout(5*time.Minute)), nil
}
