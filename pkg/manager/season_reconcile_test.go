package manager

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/showsync/showsync/config"
	"github.com/showsync/showsync/pkg/show"
	"github.com/showsync/showsync/pkg/tmdb"
	tmdbMock "github.com/showsync/showsync/pkg/tmdb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testSyncConfig() config.Sync {
	return config.Sync{
		Interval:       time.Hour,
		LookupTimeout:  time.Second,
		RequestTimeout: time.Second,
	}
}

func waitingShow(id string, externalID, watched, total int) show.Show {
	return show.Show{
		ID:             id,
		Title:          id,
		ExternalID:     externalID,
		State:          show.StateWaiting,
		SeasonsWatched: watched,
		TotalSeasons:   total,
		ShowStatus:     show.StatusContinuing,
	}
}

func TestReconcileSeasons(t *testing.T) {
	t.Run("proposes transition when a new season exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		metadata := tmdbMock.NewMockClientInterface(ctrl)

		collection, err := show.NewCollection(waitingShow("foo", 100, 2, 2))
		require.NoError(t, err)

		metadata.EXPECT().GetSeriesDetails(gomock.Any(), 100).Return(&tmdb.SeriesDetails{
			TotalSeasons: 3,
			Status:       show.StatusContinuing,
		}, nil)

		m := New(metadata, nil, nil, testSyncConfig())
		proposals, examined, failures := m.ReconcileSeasons(context.Background(), collection)

		require.Len(t, proposals, 1)
		assert.Equal(t, []string{"foo"}, examined)
		assert.Empty(t, failures)
		assert.Equal(t, Proposal{
			ID:    "foo",
			Event: show.EventSeasonAvailable,
			Args: show.TransitionArgs{
				TotalSeasons: 3,
				ShowStatus:   show.StatusContinuing,
			},
		}, proposals[0])
	})

	t.Run("no-op when total seasons unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		metadata := tmdbMock.NewMockClientInterface(ctrl)

		collection, err := show.NewCollection(waitingShow("foo", 100, 2, 2))
		require.NoError(t, err)

		metadata.EXPECT().GetSeriesDetails(gomock.Any(), 100).Return(&tmdb.SeriesDetails{
			TotalSeasons: 2,
			Status:       show.StatusContinuing,
		}, nil)

		m := New(metadata, nil, nil, testSyncConfig())
		proposals, examined, failures := m.ReconcileSeasons(context.Background(), collection)

		assert.Empty(t, proposals)
		assert.Equal(t, []string{"foo"}, examined)
		assert.Empty(t, failures)
	})

	t.Run("lookup failure is soft", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		metadata := tmdbMock.NewMockClientInterface(ctrl)

		collection, err := show.NewCollection(
			waitingShow("bar", 200, 1, 1),
			waitingShow("foo", 100, 2, 2),
		)
		require.NoError(t, err)

		metadata.EXPECT().GetSeriesDetails(gomock.Any(), 100).Return(&tmdb.SeriesDetails{
			TotalSeasons: 3,
			Status:       show.StatusContinuing,
		}, nil)
		metadata.EXPECT().GetSeriesDetails(gomock.Any(), 200).Return(nil, errors.New("expected testing error"))

		m := New(metadata, nil, nil, testSyncConfig())
		proposals, examined, failures := m.ReconcileSeasons(context.Background(), collection)

		require.Len(t, proposals, 1)
		assert.Equal(t, "foo", proposals[0].ID)
		assert.Equal(t, []string{"foo"}, examined)
		require.Len(t, failures, 1)
		assert.Equal(t, "bar", failures[0].ID)
	})

	t.Run("missing external id is soft", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		metadata := tmdbMock.NewMockClientInterface(ctrl)

		collection, err := show.NewCollection(waitingShow("foo", 0, 2, 2))
		require.NoError(t, err)

		m := New(metadata, nil, nil, testSyncConfig())
		proposals, examined, failures := m.ReconcileSeasons(context.Background(), collection)

		assert.Empty(t, proposals)
		assert.Empty(t, examined)
		require.Len(t, failures, 1)
		assert.Equal(t, "foo", failures[0].ID)
	})

	t.Run("idempotent over its own output", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		metadata := tmdbMock.NewMockClientInterface(ctrl)

		collection, err := show.NewCollection(waitingShow("foo", 100, 2, 2))
		require.NoError(t, err)

		metadata.EXPECT().GetSeriesDetails(gomock.Any(), 100).Return(&tmdb.SeriesDetails{
			TotalSeasons: 3,
			Status:       show.StatusContinuing,
		}, nil)

		m := New(metadata, nil, nil, testSyncConfig())
		proposals, _, _ := m.ReconcileSeasons(context.Background(), collection)
		require.Len(t, proposals, 1)

		merged, _, err := Merge(collection, proposals, nil)
		require.NoError(t, err)

		// the show left waiting, so identical metadata produces nothing new
		proposals, examined, failures := m.ReconcileSeasons(context.Background(), merged)
		assert.Empty(t, proposals)
		assert.Empty(t, examined)
		assert.Empty(t, failures)
	})

	t.Run("proposals come back sorted by id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		metadata := tmdbMock.NewMockClientInterface(ctrl)

		collection, err := show.NewCollection(
			waitingShow("charlie", 3, 1, 1),
			waitingShow("alpha", 1, 1, 1),
			waitingShow("bravo", 2, 1, 1),
		)
		require.NoError(t, err)

		metadata.EXPECT().GetSeriesDetails(gomock.Any(), gomock.Any()).Times(3).Return(&tmdb.SeriesDetails{
			TotalSeasons: 2,
			Status:       show.StatusContinuing,
		}, nil)

		m := New(metadata, nil, nil, testSyncConfig())
		proposals, examined, failures := m.ReconcileSeasons(context.Background(), collection)

		require.Len(t, proposals, 3)
		assert.Empty(t, failures)
		assert.Equal(t, "alpha", proposals[0].ID)
		assert.Equal(t, "bravo", proposals[1].ID)
		assert.Equal(t, "charlie", proposals[2].ID)
		assert.Equal(t, []string{"alpha", "bravo", "charlie"}, examined)
	})

	t.Run("mixed missing ids and failed lookups report every skip", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		metadata := tmdbMock.NewMockClientInterface(ctrl)

		shows := make([]show.Show, 0, 40)
		want := make([]string, 0, 40)
		for i := 0; i < 20; i++ {
			unlinked := fmt.Sprintf("unlinked-%02d", i)
			unreachable := fmt.Sprintf("unreachable-%02d", i)
			shows = append(shows,
				waitingShow(unlinked, 0, 1, 1),
				waitingShow(unreachable, 1000+i, 1, 1),
			)
			want = append(want, unlinked, unreachable)
		}
		collection, err := show.NewCollection(shows...)
		require.NoError(t, err)

		metadata.EXPECT().GetSeriesDetails(gomock.Any(), gomock.Any()).Times(20).Return(nil, errors.New("expected testing error"))

		m := New(metadata, nil, nil, testSyncConfig())
		proposals, examined, failures := m.ReconcileSeasons(context.Background(), collection)

		assert.Empty(t, proposals)
		assert.Empty(t, examined)
		require.Len(t, failures, 40)
		sort.Strings(want)
		for i, f := range failures {
			assert.Equal(t, want[i], f.ID)
		}
	})
}
