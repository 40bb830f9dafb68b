package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/showsync/showsync/pkg/manager"
	"github.com/showsync/showsync/pkg/show"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func testReport(runID string, startedAt time.Time) *manager.RunReport {
	return &manager.RunReport{
		RunID:      runID,
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(2 * time.Second),
		Outcome:    manager.OutcomeSoftFailures,
		Wrote:      true,
		Changes: []manager.Change{
			{ID: "foo", Kind: manager.ChangeTransitioned, FromState: show.StateWaiting, ToState: show.StateAvailableNext, Title: "Foo"},
		},
		Examined: []string{"foo", "quiet-show"},
		SoftFailures: []manager.SoftFailure{
			{ID: "bar", Err: "series not found"},
		},
	}
}

func TestRecordRun(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	report := testReport("run-1", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, store.RecordRun(ctx, report))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, report.RunID, got.RunID)
	assert.Equal(t, report.Outcome, got.Outcome)
	assert.True(t, got.Wrote)
	assert.Equal(t, report.Changes, got.Changes)
	assert.Equal(t, report.Examined, got.Examined)
	assert.Equal(t, report.SoftFailures, got.SoftFailures)
	assert.True(t, report.StartedAt.Equal(got.StartedAt))
}

func TestListRuns(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"run-1", "run-2", "run-3"} {
		require.NoError(t, store.RecordRun(ctx, testReport(id, base.Add(time.Duration(i)*time.Minute))))
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)

	require.Len(t, runs, 2)
	assert.Equal(t, "run-3", runs[0].RunID)
	assert.Equal(t, "run-2", runs[1].RunID)
}
