package show

import "fmt"

// TransitionArgs carries the side inputs an event may need. Fields not used
// by the event are ignored.
type TransitionArgs struct {
	Rating       Rating
	DateFinished string
	TotalSeasons int
	ShowStatus   Status
}

// Apply fires an event against a show and returns the resulting show.
// The input show is returned unchanged alongside a non-nil error when the
// event is not legal from the current state or the result would violate the
// field matrix.
func Apply(s Show, event Event, args TransitionArgs) (Show, error) {
	if s.State == StateFinished {
		return s, TerminalStateError{ID: s.ID, Event: event}
	}

	to, err := s.Machine().Fire(event)
	if err != nil {
		return s, InvalidTransitionError{State: s.State, Event: event}
	}

	next := s
	next.State = to

	switch event {
	case EventStartWatching:
		next.CurrentSeason = 1
		next.Blurb = ""
		next.Reason = ""

	case EventSeasonWatched:
		if s.TotalSeasons > 0 && s.CurrentSeason >= s.TotalSeasons {
			return s, fmt.Errorf("show %q: no season after %d to make available", s.ID, s.CurrentSeason)
		}
		next.NextSeason = s.CurrentSeason + 1
		next.SeasonsWatched = s.CurrentSeason
		next.CurrentSeason = 0

	case EventFinish:
		next.Rating = args.Rating
		next.DateFinished = args.DateFinished
		next.SeasonsWatched = s.CurrentSeason
		next.CurrentSeason = 0
		if args.ShowStatus != "" {
			next.ShowStatus = args.ShowStatus
		}

	case EventAbandon:
		next.Rating = RatingAbandonedHalfway
		next.DateFinished = args.DateFinished
		next.SeasonsWatched = s.CurrentSeason - 1
		if next.SeasonsWatched < 0 {
			next.SeasonsWatched = 0
		}
		next.CurrentSeason = 0

	case EventStartNextSeason:
		next.CurrentSeason = s.NextSeason
		next.NextSeason = 0

	case EventWaitForSeason:
		next.SeasonsWatched = s.CurrentSeason
		next.CurrentSeason = 0
		if args.ShowStatus != "" {
			next.ShowStatus = args.ShowStatus
		}

	case EventSeasonAvailable:
		next.NextSeason = s.SeasonsWatched + 1
		if args.TotalSeasons > 0 {
			next.TotalSeasons = args.TotalSeasons
		}
		if args.ShowStatus != "" {
			next.ShowStatus = args.ShowStatus
		}
	}

	if err := next.Validate(); err != nil {
		return s, err
	}

	return next, nil
}
