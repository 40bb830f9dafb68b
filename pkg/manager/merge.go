package manager

import (
	"fmt"

	"github.com/showsync/showsync/pkg/show"
)

// Change is one entry of the merge change log.
type Change struct {
	ID        string     `json:"id"`
	Kind      ChangeKind `json:"kind"`
	FromState show.State `json:"from_state,omitempty"`
	ToState   show.State `json:"to_state,omitempty"`
	Title     string     `json:"title,omitempty"`
}

type ChangeKind string

const (
	ChangeTransitioned ChangeKind = "transitioned"
	ChangeAdded        ChangeKind = "added"
)

// Merge applies a batch of proposed transitions and insertions to a copy of
// the base collection. Every proposal is validated again on the way in; a
// stale proposal must not corrupt state. Any failure aborts the whole batch
// and the base collection is returned untouched.
func Merge(base *show.Collection, proposals []Proposal, insertions []show.Show) (*show.Collection, []Change, error) {
	next := base.Clone()
	changes := make([]Change, 0, len(proposals)+len(insertions))

	for _, p := range proposals {
		current, ok := next.Get(p.ID)
		if !ok {
			return base, nil, fmt.Errorf("%w: show %q not in collection", ErrMergeAborted, p.ID)
		}

		updated, err := show.Apply(current, p.Event, p.Args)
		if err != nil {
			return base, nil, fmt.Errorf("%w: %v", ErrMergeAborted, err)
		}

		if err := next.Update(updated); err != nil {
			return base, nil, fmt.Errorf("%w: %v", ErrMergeAborted, err)
		}

		changes = append(changes, Change{
			ID:        p.ID,
			Kind:      ChangeTransitioned,
			FromState: current.State,
			ToState:   updated.State,
			Title:     current.Title,
		})
	}

	for _, s := range insertions {
		if next.HasTitle(s.Title) {
			return base, nil, fmt.Errorf("%w: title %q already tracked", ErrMergeAborted, s.Title)
		}

		if err := next.Add(s); err != nil {
			return base, nil, fmt.Errorf("%w: %v", ErrMergeAborted, err)
		}

		changes = append(changes, Change{
			ID:      s.ID,
			Kind:    ChangeAdded,
			ToState: s.State,
			Title:   s.Title,
		})
	}

	return next, changes, nil
}
