package manager

import (
	"fmt"
	"testing"

	"github.com/showsync/showsync/pkg/show"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	t.Run("applies transitions and insertions", func(t *testing.T) {
		base, err := show.NewCollection(waitingShow("foo", 100, 2, 2))
		require.NoError(t, err)

		proposals := []Proposal{{
			ID:    "foo",
			Event: show.EventSeasonAvailable,
			Args: show.TransitionArgs{
				TotalSeasons: 3,
				ShowStatus:   show.StatusContinuing,
			},
		}}
		insertions := []show.Show{show.NewRecommended("bar", "Bar", "sounds good")}

		merged, changes, err := Merge(base, proposals, insertions)
		require.NoError(t, err)

		updated, ok := merged.Get("foo")
		require.True(t, ok)
		assert.Equal(t, show.StateAvailableNext, updated.State)
		assert.Equal(t, 3, updated.NextSeason)
		assert.Equal(t, 3, updated.TotalSeasons)

		added, ok := merged.Get("bar")
		require.True(t, ok)
		assert.Equal(t, show.StateRecommended, added.State)

		require.Len(t, changes, 2)
		assert.Equal(t, Change{ID: "foo", Kind: ChangeTransitioned, FromState: show.StateWaiting, ToState: show.StateAvailableNext, Title: "foo"}, changes[0])
		assert.Equal(t, Change{ID: "bar", Kind: ChangeAdded, ToState: show.StateRecommended, Title: "Bar"}, changes[1])

		// base is untouched
		original, ok := base.Get("foo")
		require.True(t, ok)
		assert.Equal(t, show.StateWaiting, original.State)
		_, ok = base.Get("bar")
		assert.False(t, ok)
	})

	t.Run("aborts the whole batch on a bad proposal", func(t *testing.T) {
		shows := make([]show.Show, 0, 5)
		for i := 0; i < 5; i++ {
			shows = append(shows, waitingShow(fmt.Sprintf("show-%d", i), 100+i, 2, 2))
		}
		base, err := show.NewCollection(shows...)
		require.NoError(t, err)

		proposals := make([]Proposal, 0, 5)
		for i := 0; i < 5; i++ {
			p := Proposal{
				ID:    fmt.Sprintf("show-%d", i),
				Event: show.EventSeasonAvailable,
				Args: show.TransitionArgs{
					TotalSeasons: 3,
					ShowStatus:   show.StatusContinuing,
				},
			}
			if i == 3 {
				// illegal from waiting
				p.Event = show.EventStartWatching
			}
			proposals = append(proposals, p)
		}
		insertions := []show.Show{
			show.NewRecommended("new-1", "New One", "a"),
			show.NewRecommended("new-2", "New Two", "b"),
		}

		merged, changes, err := Merge(base, proposals, insertions)
		require.ErrorIs(t, err, ErrMergeAborted)
		assert.Nil(t, changes)
		assert.Same(t, base, merged)

		for i := 0; i < 5; i++ {
			s, ok := base.Get(fmt.Sprintf("show-%d", i))
			require.True(t, ok)
			assert.Equal(t, show.StateWaiting, s.State)
		}
		assert.Equal(t, 5, base.Len())
	})

	t.Run("rejects a stale proposal", func(t *testing.T) {
		finished := finishedShow("foo", "Foo", show.RatingGood)
		base, err := show.NewCollection(finished)
		require.NoError(t, err)

		proposals := []Proposal{{
			ID:    "foo",
			Event: show.EventSeasonAvailable,
			Args:  show.TransitionArgs{TotalSeasons: 3},
		}}

		merged, _, err := Merge(base, proposals, nil)
		require.ErrorIs(t, err, ErrMergeAborted)
		assert.Same(t, base, merged)
	})

	t.Run("rejects an unknown show", func(t *testing.T) {
		base, err := show.NewCollection()
		require.NoError(t, err)

		proposals := []Proposal{{ID: "ghost", Event: show.EventSeasonAvailable}}
		_, _, err = Merge(base, proposals, nil)
		assert.ErrorIs(t, err, ErrMergeAborted)
	})

	t.Run("rejects an insertion duplicating a title", func(t *testing.T) {
		base, err := show.NewCollection(show.NewToExplore("foo", "Foo", "a show"))
		require.NoError(t, err)

		insertions := []show.Show{show.NewRecommended("foo-2", "foo", "dup title")}
		merged, _, err := Merge(base, nil, insertions)
		require.ErrorIs(t, err, ErrMergeAborted)
		assert.Same(t, base, merged)
		assert.Equal(t, 1, base.Len())
	})
}
