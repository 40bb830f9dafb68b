package manager

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const humanizeRound = 10 * time.Millisecond

// Summary renders a run report as human-readable text, suitable for a
// notification or the terminal.
func (r *RunReport) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "sync run %s (%s)\n", r.RunID, r.Outcome)
	fmt.Fprintf(&b, "finished %s in %s\n", humanize.Time(r.FinishedAt), r.FinishedAt.Sub(r.StartedAt).Round(humanizeRound))

	if len(r.Changes) == 0 {
		b.WriteString("no changes\n")
	}

	changed := make(map[string]struct{}, len(r.Changes))
	for _, c := range r.Changes {
		changed[c.ID] = struct{}{}
		switch c.Kind {
		case ChangeAdded:
			fmt.Fprintf(&b, "+ %s (%s): recommended\n", c.Title, c.ID)
		case ChangeTransitioned:
			fmt.Fprintf(&b, "~ %s (%s): %s -> %s\n", c.Title, c.ID, c.FromState, c.ToState)
		}
	}

	for _, id := range r.Examined {
		if _, ok := changed[id]; ok {
			continue
		}
		fmt.Fprintf(&b, "= %s: no new season\n", id)
	}

	for _, f := range r.SoftFailures {
		fmt.Fprintf(&b, "! skipped %s: %s\n", f.ID, f.Err)
	}

	if r.Error != "" {
		fmt.Fprintf(&b, "error: %s\n", r.Error)
	}

	return b.String()
}
