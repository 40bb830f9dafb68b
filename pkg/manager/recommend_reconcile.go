package manager

import (
	"context"
	"fmt"

	"github.com/showsync/showsync/pkg/logger"
	"github.com/showsync/showsync/pkg/recommend"
	"github.com/showsync/showsync/pkg/show"
	"go.uber.org/zap"
)

// TasteProfile projects the finished shows into the input the recommender
// expects. Abandoned shows say nothing useful about taste and are left out.
func TasteProfile(collection *show.Collection) []recommend.TasteEntry {
	finished := collection.ByState(show.StateFinished)
	profile := make([]recommend.TasteEntry, 0, len(finished))
	for _, s := range finished {
		if s.Rating == show.RatingAbandonedHalfway {
			continue
		}
		profile = append(profile, recommend.TasteEntry{
			Title:  s.Title,
			Rating: s.Rating,
		})
	}
	return profile
}

// ReconcileRecommendations asks the recommender for candidates based on the
// finished shows and turns the survivors into new recommended records.
// A candidate is dropped when its normalized title matches any existing show
// in any state, or an earlier candidate in the same batch. An unreachable
// recommender fails the run.
func (m Manager) ReconcileRecommendations(ctx context.Context, collection *show.Collection) ([]show.Show, error) {
	log := logger.FromCtx(ctx)

	profile := TasteProfile(collection)
	if len(profile) == 0 {
		log.Debug("no finished shows to build a taste profile from")
		return nil, nil
	}

	reqCtx, cancel := context.WithTimeout(ctx, m.config.RequestTimeout)
	defer cancel()

	candidates, err := m.recommender.Recommend(reqCtx, profile)
	if err != nil {
		log.Error("recommendation request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCollaboratorUnavailable, err)
	}

	log.Debug("received recommendation candidates", zap.Int("count", len(candidates)))

	seen := make(map[string]struct{})
	insertions := make([]show.Show, 0, len(candidates))
	for _, c := range candidates {
		normalized := show.NormalizeTitle(c.Title)
		if normalized == "" {
			continue
		}

		if collection.HasTitle(c.Title) {
			log.Debug("dropping candidate already in collection", zap.String("title", c.Title))
			continue
		}

		if _, ok := seen[normalized]; ok {
			log.Debug("dropping duplicate candidate", zap.String("title", c.Title))
			continue
		}
		seen[normalized] = struct{}{}

		id := m.mintCandidateID(collection, insertions, c.Title)
		log.Info("new recommendation", zap.String("id", id), zap.String("title", c.Title))
		insertions = append(insertions, show.NewRecommended(id, c.Title, c.Reason))
	}

	return insertions, nil
}

// mintCandidateID picks a slug unique against both the collection and the
// candidates already accepted this batch.
func (m Manager) mintCandidateID(collection *show.Collection, accepted []show.Show, title string) string {
	taken := make(map[string]struct{}, len(accepted))
	for _, s := range accepted {
		taken[s.ID] = struct{}{}
	}

	base := show.Slugify(title)
	id := base
	for n := 2; ; n++ {
		if _, exists := collection.Get(id); !exists {
			if _, exists := taken[id]; !exists {
				return id
			}
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}
