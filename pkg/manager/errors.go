package manager

import (
	"errors"
	"fmt"
)

var (
	// ErrMergeAborted means a proposal failed validation during merge and the
	// whole batch was discarded.
	ErrMergeAborted = errors.New("merge aborted")
	// ErrSyncConflict means both write attempts hit a version conflict.
	ErrSyncConflict = errors.New("sync conflict")
	// ErrCollaboratorUnavailable means the recommender or the store could not
	// be reached at all.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
)

// SoftFailure records a show the season check skipped this run.
type SoftFailure struct {
	ID  string `json:"id"`
	Err string `json:"error"`
}

func (f SoftFailure) String() string {
	return fmt.Sprintf("%s: %s", f.ID, f.Err)
}
