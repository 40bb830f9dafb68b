package manager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/showsync/showsync/pkg/logger"
	"github.com/showsync/showsync/pkg/store"
	"go.uber.org/zap"
)

type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeSoftFailures Outcome = "soft_failures"
	OutcomeFailed       Outcome = "failed"
)

// RunReport describes what one reconciliation run did.
type RunReport struct {
	RunID        string        `json:"run_id"`
	StartedAt    time.Time     `json:"started_at"`
	FinishedAt   time.Time     `json:"finished_at"`
	Outcome      Outcome       `json:"outcome"`
	Changes      []Change      `json:"changes"`
	Examined     []string      `json:"examined"`
	SoftFailures []SoftFailure `json:"soft_failures"`
	Wrote        bool          `json:"wrote"`
	Error        string        `json:"error,omitempty"`
}

// Sync runs one full reconciliation: fetch the collection, check seasons,
// gather recommendations, merge, and conditionally write back. A version
// conflict on the write triggers exactly one re-fetch and recompute; a second
// conflict ends the run with ErrSyncConflict and nothing written.
func (m Manager) Sync(ctx context.Context) (*RunReport, error) {
	log := logger.FromCtx(ctx)

	report := &RunReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	log.Info("starting sync run", zap.String("runID", report.RunID))

	var err error
	for attempt := 1; attempt <= 2; attempt++ {
		err = m.syncOnce(ctx, report)
		if !errors.Is(err, store.ErrConflict) {
			break
		}
		log.Warn("version conflict on write", zap.String("runID", report.RunID), zap.Int("attempt", attempt))
	}

	report.FinishedAt = time.Now()

	switch {
	case errors.Is(err, store.ErrConflict):
		err = ErrSyncConflict
		report.Outcome = OutcomeFailed
		report.Error = err.Error()
	case err != nil:
		report.Outcome = OutcomeFailed
		report.Error = err.Error()
	case len(report.SoftFailures) > 0:
		report.Outcome = OutcomeSoftFailures
	default:
		report.Outcome = OutcomeSuccess
	}

	log.Info("sync run finished",
		zap.String("runID", report.RunID),
		zap.String("outcome", string(report.Outcome)),
		zap.Int("changes", len(report.Changes)),
		zap.Int("softFailures", len(report.SoftFailures)))

	return report, err
}

func (m Manager) syncOnce(ctx context.Context, report *RunReport) error {
	log := logger.FromCtx(ctx)

	collection, token, err := m.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("%w: reading collection: %v", ErrCollaboratorUnavailable, err)
	}

	proposals, examined, failures := m.ReconcileSeasons(ctx, collection)

	insertions, err := m.ReconcileRecommendations(ctx, collection)
	if err != nil {
		return err
	}

	merged, changes, err := Merge(collection, proposals, insertions)
	if err != nil {
		return err
	}

	report.Changes = changes
	report.Examined = examined
	report.SoftFailures = failures

	if len(changes) == 0 {
		log.Debug("nothing changed, skipping write")
		return nil
	}

	if _, err := m.store.Put(ctx, merged, token); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return err
		}
		return fmt.Errorf("%w: writing collection: %v", ErrCollaboratorUnavailable, err)
	}

	report.Wrote = true
	return nil
}
