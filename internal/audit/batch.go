package audit

import (
	"context"

	"github.com/wzhuo/factgate/internal/logger"
	"github.com/wzhuo/factgate/internal/match"
	"github.com/wzhuo/factgate/internal/model"
	"github.com/wzhuo/factgate/internal/worker"
)

// BatchResult is the outcome of auditing one batch of drafts
type BatchResult struct {
	// Outcomes in input draft order. Unmatched and skipped drafts are
	// absent here and accounted for below.
	Outcomes []model.AuditOutcome

	// Unmatched drafts that could not be paired with any event
	Unmatched []match.Unmatched

	// Skipped counts drafts not audited because the batch was cancelled
	Skipped int
}

// AuditBatch pairs drafts with events and audits each draft on a worker
// pool. Output order matches input draft order regardless of completion
// order. Batches are not transactional: one draft's failure never aborts
// the others, and cancellation returns whatever completed so far.
func (a *Auditor) AuditBatch(ctx context.Context, drafts []model.DraftReport, events []model.Event, workers int) *BatchResult {
	matched := match.MatchDrafts(drafts, events)

	for _, pair := range matched.Pairs {
		if pair.Positional {
			logger.Log.Warnf("简报 %d 缺少有效事件ID，按位置回退匹配到事件 %q", pair.Index, pair.Event.ID)
		}
	}
	for _, um := range matched.Unmatched {
		logger.Log.Warnf("简报 %d (%s) 无法匹配任何事件，跳过审计: %s", um.Index, um.Title, um.Reason)
	}

	results := make([]*model.AuditOutcome, len(matched.Pairs))
	tasks := make([]worker.Task, len(matched.Pairs))
	for i, pair := range matched.Pairs {
		i, pair := i, pair
		tasks[i] = func(ctx context.Context) {
			// Cancellation applies between drafts; one already started
			// runs to completion under its own call timeouts.
			outcome := a.AuditDraft(context.WithoutCancel(ctx), pair.Draft, pair.Event)
			results[i] = &outcome
		}
	}

	skipped := worker.Run(ctx, workers, tasks)

	batch := &BatchResult{
		Unmatched: matched.Unmatched,
		Skipped:   skipped,
	}
	for _, outcome := range results {
		if outcome != nil {
			batch.Outcomes = append(batch.Outcomes, *outcome)
		}
	}
	return batch
}
