package manager

import (
	"context"
	"sort"
	"sync"

	"github.com/showsync/showsync/pkg/logger"
	"github.com/showsync/showsync/pkg/show"
	"go.uber.org/zap"
)

// Proposal is one transition the reconcilers want applied to the collection.
type Proposal struct {
	ID    string
	Event show.Event
	Args  show.TransitionArgs
}

// ReconcileSeasons checks every waiting show against series metadata and
// proposes a transition for each one with a newly available season. Lookup
// failures never abort the run; the affected shows are skipped and reported.
// Every show whose lookup succeeded comes back in examined, whether or not
// it produced a proposal. All three slices come back sorted by id so
// repeated runs over the same inputs produce identical output.
func (m Manager) ReconcileSeasons(ctx context.Context, collection *show.Collection) ([]Proposal, []string, []SoftFailure) {
	log := logger.FromCtx(ctx)

	waiting := collection.ByState(show.StateWaiting)
	log.Debug("checking waiting shows for new seasons", zap.Int("count", len(waiting)))

	var mu sync.Mutex
	var wg sync.WaitGroup
	proposals := make([]Proposal, 0, len(waiting))
	examined := make([]string, 0, len(waiting))
	failures := make([]SoftFailure, 0)

	for _, s := range waiting {
		if s.ExternalID == 0 {
			log.Warn("waiting show has no external id", zap.String("id", s.ID))
			mu.Lock()
			failures = append(failures, SoftFailure{ID: s.ID, Err: "no external id"})
			mu.Unlock()
			continue
		}

		wg.Add(1)
		go func(s show.Show) {
			defer wg.Done()

			lookupCtx, cancel := context.WithTimeout(ctx, m.config.LookupTimeout)
			defer cancel()

			details, err := m.metadata.GetSeriesDetails(lookupCtx, s.ExternalID)
			if err != nil {
				log.Warn("season lookup failed", zap.String("id", s.ID), zap.Error(err))
				mu.Lock()
				failures = append(failures, SoftFailure{ID: s.ID, Err: err.Error()})
				mu.Unlock()
				return
			}

			if details.TotalSeasons <= s.SeasonsWatched {
				log.Debug("no new season yet", zap.String("id", s.ID), zap.Int("totalSeasons", details.TotalSeasons))
				mu.Lock()
				examined = append(examined, s.ID)
				mu.Unlock()
				return
			}

			log.Info("new season available", zap.String("id", s.ID), zap.Int("totalSeasons", details.TotalSeasons))
			mu.Lock()
			examined = append(examined, s.ID)
			proposals = append(proposals, Proposal{
				ID:    s.ID,
				Event: show.EventSeasonAvailable,
				Args: show.TransitionArgs{
					TotalSeasons: details.TotalSeasons,
					ShowStatus:   details.Status,
				},
			})
			mu.Unlock()
		}(s)
	}

	wg.Wait()

	sort.Slice(proposals, func(i, j int) bool { return proposals[i].ID < proposals[j].ID })
	sort.Strings(examined)
	sort.Slice(failures, func(i, j int) bool { return failures[i].ID < failures[j].ID })

	return proposals, examined, failures
}
